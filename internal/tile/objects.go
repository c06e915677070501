package tile

// ScrollingMode определяет режим бегущей строки объекта.
// ScrollingModeNone означает, что объект не поддерживает текст баннера.
type ScrollingMode uint8

const ScrollingModeNone ScrollingMode = 0xFF

// TerrainSurfaceObject описывает тип поверхности земли
type TerrainSurfaceObject struct {
	Name          string
	CanGrassGrow  bool
	NumImageBases uint8
}

// TerrainEdgeObject описывает тип края (склона) тайла
type TerrainEdgeObject struct {
	Name string
}

// SmallSceneryEntry описывает малую декорацию
type SmallSceneryEntry struct {
	Name string
	// CanWither - декорация стареет и увядает (цветы, кусты)
	CanWither bool
}

// LargeSceneryEntry описывает большую (многотайловую) декорацию
type LargeSceneryEntry struct {
	Name          string
	ScrollingMode ScrollingMode
	Tiles         uint8
}

// WallSceneryEntry описывает стену
type WallSceneryEntry struct {
	Name          string
	ScrollingMode ScrollingMode
}

// PathAdditionEntry описывает дополнение пешеходной дорожки (скамейка, фонарь, урна)
type PathAdditionEntry struct {
	Name        string
	IsLitterBin bool
	IsBreakable bool
}

// ObjectLookup разрешает индексы объектов в описания.
// Все методы возвращают nil, если объект не загружен.
type ObjectLookup interface {
	SurfaceObject(idx ObjectEntryIndex) *TerrainSurfaceObject
	EdgeObject(idx ObjectEntryIndex) *TerrainEdgeObject
	SmallSceneryEntry(idx ObjectEntryIndex) *SmallSceneryEntry
	LargeSceneryEntry(idx ObjectEntryIndex) *LargeSceneryEntry
	WallEntry(idx ObjectEntryIndex) *WallSceneryEntry
	PathAdditionEntry(idx ObjectEntryIndex) *PathAdditionEntry
}

// Banner - запись таблицы баннеров
type Banner struct {
	ID     BannerIndex
	Text   string
	Colour Colour
	Ride   RideID
	X, Y   int // координаты тайла
}

// BannerStore - внешнее хранилище баннеров
type BannerStore interface {
	GetBanner(idx BannerIndex) *Banner
	DeleteBanner(idx BannerIndex)
}

// WindowClass - класс окна интерфейса
type WindowClass uint8

const WindowClassBanner WindowClass = 1

// WindowCloser закрывает окна интерфейса, связанные с данными карты
type WindowCloser interface {
	CloseByNumber(class WindowClass, number uint16)
}
