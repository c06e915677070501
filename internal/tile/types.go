package tile

// ElementType определяет вид элемента тайла (дискриминант записи)
type ElementType uint8

const (
	TypeSurface ElementType = iota
	TypePath
	TypeTrack
	TypeSmallScenery
	TypeEntrance
	TypeWall
	TypeLargeScenery
	TypeBanner

	typeCount // всегда последний
)

// String возвращает строковое представление вида элемента
func (t ElementType) String() string {
	switch t {
	case TypeSurface:
		return "surface"
	case TypePath:
		return "path"
	case TypeTrack:
		return "track"
	case TypeSmallScenery:
		return "small_scenery"
	case TypeEntrance:
		return "entrance"
	case TypeWall:
		return "wall"
	case TypeLargeScenery:
		return "large_scenery"
	case TypeBanner:
		return "banner"
	default:
		return "unknown"
	}
}

// ParseElementType разбирает имя вида, возвращённое String
func ParseElementType(s string) (ElementType, bool) {
	for t := TypeSurface; t < typeCount; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

// Valid проверяет, что значение соответствует известному виду
func (t ElementType) Valid() bool {
	return t < typeCount
}

// Direction - направление по сторонам света (0-3)
type Direction uint8

const (
	DirectionWest Direction = iota
	DirectionNorth
	DirectionEast
	DirectionSouth
)

// Идентификаторы, ссылающиеся на внешние таблицы
type (
	BannerIndex      uint16
	RideID           uint16
	StationIndex     uint8
	ObjectEntryIndex uint16
	Colour           uint8
)

// Нулевые значения (sentinel) для индексов
const (
	BannerIndexNull      BannerIndex      = 0xFFFF
	RideIDNull           RideID           = 0xFFFF
	StationIndexNull     StationIndex     = 0xFF
	ObjectEntryIndexNull ObjectEntryIndex = 0xFFFF
)

// IsNull сообщает, что индекс баннера пустой
func (b BannerIndex) IsNull() bool { return b == BannerIndexNull }

// IsNull сообщает, что индекс аттракциона пустой
func (r RideID) IsNull() bool { return r == RideIDNull }

// IsNull сообщает, что индекс объекта пустой
func (o ObjectEntryIndex) IsNull() bool { return o == ObjectEntryIndexNull }

// Размеры записи
const (
	ElementSize = 16
	HeaderSize  = 5
	PayloadSize = ElementSize - HeaderSize
)

// Высоты
const (
	MinimumLandHeight = 2
	MaxElementHeight  = 255
	CoordsZStep       = 2  // мировая Z = высота * CoordsZStep
	WaterHeightStep   = 16 // шаг уровня воды в мировых единицах
)

// Маски байта Type
const (
	QuadrantMask           uint8 = 0b11000000
	TypeMask               uint8 = 0b00111100
	DirectionMask          uint8 = 0b00000011
	OccupiedQuadrantsMask  uint8 = 0b00001111
	OwnerMask              uint8 = 0b00001111
	surfaceTrackNeedsWater uint8 = 1 << 6
)

// Флаги байта Flags (верхний полубайт)
const (
	FlagGhost     uint8 = 1 << 4
	FlagInvisible uint8 = 1 << 5
	FlagLastTile  uint8 = 1 << 7
)

// Смещения полей заголовка
const (
	offType            = 0
	offFlags           = 1
	offBaseHeight      = 2
	offClearanceHeight = 3
	offOwner           = 4
)
