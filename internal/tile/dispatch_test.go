package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// testObjects - простая реализация ObjectLookup для тестов
type testObjects struct {
	surfaces  map[ObjectEntryIndex]*TerrainSurfaceObject
	large     map[ObjectEntryIndex]*LargeSceneryEntry
	walls     map[ObjectEntryIndex]*WallSceneryEntry
	additions map[ObjectEntryIndex]*PathAdditionEntry
}

func newTestObjects() *testObjects {
	return &testObjects{
		surfaces:  make(map[ObjectEntryIndex]*TerrainSurfaceObject),
		large:     make(map[ObjectEntryIndex]*LargeSceneryEntry),
		walls:     make(map[ObjectEntryIndex]*WallSceneryEntry),
		additions: make(map[ObjectEntryIndex]*PathAdditionEntry),
	}
}

func (o *testObjects) SurfaceObject(i ObjectEntryIndex) *TerrainSurfaceObject { return o.surfaces[i] }
func (o *testObjects) EdgeObject(ObjectEntryIndex) *TerrainEdgeObject          { return nil }
func (o *testObjects) SmallSceneryEntry(ObjectEntryIndex) *SmallSceneryEntry   { return nil }
func (o *testObjects) LargeSceneryEntry(i ObjectEntryIndex) *LargeSceneryEntry { return o.large[i] }
func (o *testObjects) WallEntry(i ObjectEntryIndex) *WallSceneryEntry          { return o.walls[i] }
func (o *testObjects) PathAdditionEntry(i ObjectEntryIndex) *PathAdditionEntry { return o.additions[i] }

// testBanners - хранилище баннеров с учетом удалений
type testBanners struct {
	banners map[BannerIndex]*Banner
	deleted []BannerIndex
}

func (b *testBanners) GetBanner(i BannerIndex) *Banner { return b.banners[i] }

func (b *testBanners) DeleteBanner(i BannerIndex) {
	delete(b.banners, i)
	b.deleted = append(b.deleted, i)
}

type testWindows struct {
	closed []uint16
}

func (w *testWindows) CloseByNumber(class WindowClass, number uint16) {
	if class == WindowClassBanner {
		w.closed = append(w.closed, number)
	}
}

func TestGetRideIndex_PartialMapping(t *testing.T) {
	track := newElement(TypeTrack)
	track.AsTrack().SetRideIndex(5)
	assert.Equal(t, RideID(5), track.GetRideIndex())

	entrance := newElement(TypeEntrance)
	entrance.AsEntrance().SetRideIndex(6)
	assert.Equal(t, RideID(6), entrance.GetRideIndex())

	queue := newElement(TypePath)
	queue.AsPath().SetCell(QueueCell{Ride: 8})
	assert.Equal(t, RideID(8), queue.GetRideIndex())

	for _, kind := range []ElementType{TypeSurface, TypeSmallScenery, TypeLargeScenery, TypeWall, TypeBanner} {
		e := newElement(kind)
		e[13], e[14] = 1, 0 // байты, похожие на индекс
		assert.Equal(t, RideIDNull, e.GetRideIndex(), "вид %s", kind)
	}
}

func TestGetBannerIndex(t *testing.T) {
	objs := newTestObjects()
	objs.large[1] = &LargeSceneryEntry{Name: "sign", ScrollingMode: 2}
	objs.large[2] = &LargeSceneryEntry{Name: "statue", ScrollingMode: ScrollingModeNone}
	objs.walls[1] = &WallSceneryEntry{Name: "wall-sign", ScrollingMode: 0}
	objs.walls[2] = &WallSceneryEntry{Name: "brick", ScrollingMode: ScrollingModeNone}

	large := newElement(TypeLargeScenery)
	large.AsLargeScenery().SetBannerIndex(11)

	// Объект не загружен
	large.AsLargeScenery().SetEntryIndex(9)
	assert.Equal(t, BannerIndexNull, large.GetBannerIndex(objs))
	// Объект без бегущей строки
	large.AsLargeScenery().SetEntryIndex(2)
	assert.Equal(t, BannerIndexNull, large.GetBannerIndex(objs))
	large.AsLargeScenery().SetEntryIndex(1)
	assert.Equal(t, BannerIndex(11), large.GetBannerIndex(objs))
	assert.Equal(t, BannerIndexNull, large.GetBannerIndex(nil))

	wall := newElement(TypeWall)
	wall.AsWall().SetBannerIndex(12)
	wall.AsWall().SetEntryIndex(2)
	assert.Equal(t, BannerIndexNull, wall.GetBannerIndex(objs))
	wall.AsWall().SetEntryIndex(1)
	assert.Equal(t, BannerIndex(12), wall.GetBannerIndex(objs))

	banner := newElement(TypeBanner)
	banner.AsBanner().SetIndex(13)
	assert.Equal(t, BannerIndex(13), banner.GetBannerIndex(nil), "баннер сообщает индекс без объектов")

	assert.Equal(t, BannerIndexNull, newElement(TypePath).GetBannerIndex(objs))
}

func TestSetBannerIndex(t *testing.T) {
	for _, kind := range []ElementType{TypeWall, TypeLargeScenery, TypeBanner} {
		e := newElement(kind)
		assert.NoError(t, e.SetBannerIndex(21), "вид %s", kind)
	}
	assert.Equal(t, BannerIndex(21), func() BannerIndex {
		e := newElement(TypeBanner)
		_ = e.SetBannerIndex(21)
		return e.AsBanner().GetIndex()
	}())

	surface := newElement(TypeSurface)
	before := *surface
	assert.ErrorIs(t, surface.SetBannerIndex(21), ErrNoBannerSlot)
	assert.Equal(t, before, *surface, "запись не изменилась")
}

func TestRemoveBannerEntry(t *testing.T) {
	banners := &testBanners{banners: map[BannerIndex]*Banner{
		4: {ID: 4, Text: "Welcome"},
	}}
	windows := &testWindows{}

	e := newElement(TypeBanner)
	e.AsBanner().SetIndex(4)
	e.RemoveBannerEntry(nil, banners, windows)

	assert.Equal(t, []BannerIndex{4}, banners.deleted)
	assert.Equal(t, []uint16{4}, windows.closed)
	assert.Nil(t, banners.GetBanner(4))

	// Повторное удаление - запись уже отсутствует
	e.RemoveBannerEntry(nil, banners, windows)
	assert.Len(t, banners.deleted, 1)

	// Пустой индекс - ничего не делаем
	path := newElement(TypePath)
	path.RemoveBannerEntry(nil, banners, windows)
	assert.Len(t, banners.deleted, 1)
	assert.Len(t, windows.closed, 1)
}
