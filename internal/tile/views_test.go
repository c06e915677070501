package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newElement(t ElementType) *Element {
	e := &Element{}
	e.ClearAs(t)
	return e
}

func TestPathElement_QueueCellScenario(t *testing.T) {
	path := newElement(TypePath).AsPath()
	require.NotNil(t, path)

	path.SetIsQueue(true)
	require.NoError(t, path.SetRideIndex(7))
	assert.Equal(t, RideID(7), path.GetRideIndex())
	assert.Equal(t, QueueCell{Ride: 7}, path.Cell())

	path.SetIsQueue(false)
	require.NoError(t, path.SetAdditionStatus(3))
	assert.Equal(t, uint8(3), path.GetAdditionStatus())
	assert.Equal(t, AdditionCell{Status: 3}, path.Cell())
	assert.Equal(t, RideIDNull, path.GetRideIndex(), "у обычной дорожки нет аттракциона")
}

func TestPathElement_CellMismatch(t *testing.T) {
	path := newElement(TypePath).AsPath()

	assert.ErrorIs(t, path.SetRideIndex(9), ErrPathCellMismatch)
	assert.Equal(t, uint8(0), path.GetAdditionStatus(), "неудачная запись не меняет байты")

	path.SetIsQueue(true)
	assert.Equal(t, RideIDNull, path.GetRideIndex(), "новая очередь без аттракциона")
	assert.ErrorIs(t, path.SetAdditionStatus(1), ErrPathCellMismatch)
	assert.Equal(t, uint8(0), path.GetAdditionStatus())
}

func TestPathElement_SetCell(t *testing.T) {
	path := newElement(TypePath).AsPath()

	path.SetCell(QueueCell{Ride: 300})
	assert.True(t, path.IsQueue())
	assert.Equal(t, RideID(300), path.GetRideIndex())

	path.SetCell(AdditionCell{Status: 0x42})
	assert.False(t, path.IsQueue())
	assert.Equal(t, uint8(0x42), path.GetAdditionStatus())
	assert.Equal(t, uint8(0), path[pathCell+1], "старший байт индекса аттракциона очищен")
}

func TestPathElement_Fields(t *testing.T) {
	e := newElement(TypePath)
	path := e.AsPath()

	path.SetSurfaceEntryIndex(513)
	path.SetRailingsEntryIndex(2)
	assert.Equal(t, ObjectEntryIndex(513), path.GetSurfaceEntryIndex())
	assert.Equal(t, ObjectEntryIndex(2), path.GetRailingsEntryIndex())
	assert.False(t, path.HasLegacyPathEntry())
	assert.Equal(t, ObjectEntryIndexNull, path.GetLegacyPathEntryIndex())

	path.SetLegacyPathEntryIndex(4)
	assert.True(t, path.HasLegacyPathEntry())
	assert.Equal(t, ObjectEntryIndex(4), path.GetLegacyPathEntryIndex())
	assert.Equal(t, ObjectEntryIndexNull, path.GetRailingsEntryIndex())

	assert.False(t, path.HasAddition())
	assert.Equal(t, ObjectEntryIndexNull, path.GetAdditionEntryIndex())
	path.SetAdditionEntryIndex(0)
	assert.True(t, path.HasAddition())
	assert.Equal(t, uint8(1), path.GetAddition())
	assert.Equal(t, ObjectEntryIndex(0), path.GetAdditionEntryIndex())
	path.SetAdditionEntryIndex(ObjectEntryIndexNull)
	assert.False(t, path.HasAddition())

	path.SetEdges(0b0101)
	path.SetCorners(0b1001)
	assert.Equal(t, uint8(0b0101), path.GetEdges())
	assert.Equal(t, uint8(0b1001), path.GetCorners())
	assert.Equal(t, uint8(0b10010101), path.GetEdgesAndCorners())
	path.SetEdges(0xFF)
	assert.Equal(t, uint8(0x0F), path.GetEdges())
	assert.Equal(t, uint8(0b1001), path.GetCorners())

	path.SetSloped(true)
	path.SetSlopeDirection(DirectionSouth)
	path.SetWide(true)
	path.SetQueueBannerDirection(DirectionEast)
	path.SetStationIndex(3)
	assert.True(t, path.IsSloped())
	assert.Equal(t, DirectionSouth, path.GetSlopeDirection())
	assert.True(t, path.IsWide())
	assert.Equal(t, DirectionEast, path.GetQueueBannerDirection())
	assert.Equal(t, StationIndex(3), path.GetStationIndex())
	assert.Equal(t, TypePath, e.GetType(), "флаги в байте Type не портят вид")
}

func TestPathElement_IsLevelCrossing(t *testing.T) {
	run := make([]Element, 3)
	run[0].ClearAs(TypeSurface)
	run[1].ClearAs(TypePath)
	run[1].SetBaseHeight(8)
	run[2].ClearAs(TypeTrack)
	run[2].SetBaseHeight(8)
	run[2].SetLastForTile(true)

	assert.True(t, run[1].AsPath().IsLevelCrossing(run))

	run[2].SetBaseHeight(12)
	assert.False(t, run[1].AsPath().IsLevelCrossing(run))

	run[2].SetBaseHeight(8)
	run[1].AsPath().SetIsQueue(true)
	assert.False(t, run[1].AsPath().IsLevelCrossing(run), "очередь не бывает переездом")
}

func TestSurfaceElement_Fields(t *testing.T) {
	e := newElement(TypeSurface)
	s := e.AsSurface()

	s.SetSlope(0xFF)
	assert.Equal(t, SurfaceSlopeMask, s.GetSlope())

	s.SetWaterHeight(96)
	assert.Equal(t, 96, s.GetWaterHeight())

	s.SetOwnership(OwnershipOwned)
	s.SetParkFences(0b0011)
	assert.Equal(t, OwnershipOwned, s.GetOwnership())
	assert.Equal(t, uint8(0b0011), s.GetParkFences())

	s.SetSurfaceObjectIndex(4)
	s.SetEdgeObjectIndex(2)
	assert.Equal(t, ObjectEntryIndex(4), s.GetSurfaceObjectIndex())
	assert.Equal(t, ObjectEntryIndex(2), s.GetEdgeObjectIndex())

	s.SetHasTrackThatNeedsWater(true)
	assert.True(t, s.HasTrackThatNeedsWater())
	assert.Equal(t, TypeSurface, e.GetType())
	s.SetHasTrackThatNeedsWater(false)
	assert.False(t, s.HasTrackThatNeedsWater())
}

func TestSurfaceElement_GrassGrowth(t *testing.T) {
	objs := newTestObjects()
	objs.surfaces[0] = &TerrainSurfaceObject{Name: "grass", CanGrassGrow: true}
	objs.surfaces[1] = &TerrainSurfaceObject{Name: "sand"}

	s := newElement(TypeSurface).AsSurface()
	s.SetGrassLength(GrassLengthClear0)

	// 16 шагов таймера - один шаг длины
	for i := 0; i < 16; i++ {
		s.UpdateGrassLength(objs, false)
	}
	assert.Equal(t, GrassLengthClear1, s.GetGrassLength())

	for i := 0; i < 16*10; i++ {
		s.UpdateGrassLength(objs, false)
	}
	assert.Equal(t, GrassLengthClumps2, s.GetGrassLength(), "трава не растет выше максимума")

	s.UpdateGrassLength(objs, true)
	assert.Equal(t, GrassLengthClear0, s.GetGrassLength(), "занятая поверхность скашивается")

	s.SetSurfaceObjectIndex(1)
	s.SetGrassLength(GrassLengthClumps0)
	s.UpdateGrassLength(objs, true)
	assert.Equal(t, GrassLengthClumps0, s.GetGrassLength(), "песок не трогаем")
}

func TestTrackElement_Fields(t *testing.T) {
	e := newElement(TypeTrack)
	track := e.AsTrack()

	track.SetTrackType(0x1234)
	track.SetSequenceIndex(0x1F)
	track.SetHasGreenLight(true)
	track.SetColourScheme(2)
	track.SetStationIndex(1)
	track.SetHasChain(true)
	track.SetInverted(true)
	track.SetRideType(77)
	track.SetRideIndex(12)
	track.SetBrakeBoosterSpeed(30)

	assert.Equal(t, uint16(0x1234), track.GetTrackType())
	assert.Equal(t, uint8(0x0F), track.GetSequenceIndex())
	assert.True(t, track.HasGreenLight())
	assert.Equal(t, uint8(2), track.GetColourScheme())
	assert.Equal(t, StationIndex(1), track.GetStationIndex())
	assert.True(t, track.HasChain())
	assert.True(t, track.IsInverted())
	assert.False(t, track.HasCableLift())
	assert.Equal(t, uint16(77), track.GetRideType())
	assert.Equal(t, RideID(12), track.GetRideIndex())
	assert.Equal(t, uint8(30), track.GetBrakeBoosterSpeed())
}

func TestSceneryElements(t *testing.T) {
	small := newElement(TypeSmallScenery).AsSmallScenery()
	small.SetEntryIndex(600)
	small.SetSceneryQuadrant(3)
	small.SetPrimaryColour(1)
	small.SetSecondaryColour(2)
	small.SetTertiaryColour(3)
	small.SetAge(254)
	small.IncreaseAge()
	small.IncreaseAge()

	assert.Equal(t, ObjectEntryIndex(600), small.GetEntryIndex())
	assert.Equal(t, uint8(3), small.GetSceneryQuadrant())
	assert.Equal(t, TypeSmallScenery, small.Base().GetType())
	assert.Equal(t, Colour(1), small.GetPrimaryColour())
	assert.Equal(t, Colour(2), small.GetSecondaryColour())
	assert.Equal(t, Colour(3), small.GetTertiaryColour())
	assert.Equal(t, uint8(255), small.GetAge(), "возраст не переполняется")
	assert.False(t, small.NeedsSupports())
	small.SetNeedsSupports()
	assert.True(t, small.NeedsSupports())

	large := newElement(TypeLargeScenery).AsLargeScenery()
	large.SetEntryIndex(3)
	large.SetBannerIndex(17)
	large.SetSequenceIndex(5)
	large.SetIsAccounted(true)
	assert.Equal(t, ObjectEntryIndex(3), large.GetEntryIndex())
	assert.Equal(t, BannerIndex(17), large.GetBannerIndex())
	assert.Equal(t, uint8(5), large.GetSequenceIndex())
	assert.True(t, large.IsAccounted())
}

func TestWallEntranceBannerElements(t *testing.T) {
	wall := newElement(TypeWall).AsWall()
	wall.SetSlope(2)
	wall.SetAnimationFrame(9)
	wall.SetAcrossTrack(true)
	assert.Equal(t, uint8(2), wall.GetSlope())
	assert.Equal(t, uint8(9), wall.GetAnimationFrame())
	assert.True(t, wall.IsAcrossTrack())
	assert.False(t, wall.AnimationIsBackwards())
	assert.Equal(t, TypeWall, wall.Base().GetType())

	entrance := newElement(TypeEntrance).AsEntrance()
	entrance.SetEntranceKind(EntranceKindRideExit)
	entrance.SetSequenceIndex(2)
	entrance.SetStationIndex(1)
	entrance.SetPathEntryIndex(8)
	entrance.SetRideIndex(44)
	assert.Equal(t, EntranceKindRideExit, entrance.GetEntranceKind())
	assert.Equal(t, uint8(2), entrance.GetSequenceIndex())
	assert.Equal(t, StationIndex(1), entrance.GetStationIndex())
	assert.Equal(t, ObjectEntryIndex(8), entrance.GetPathEntryIndex())
	assert.Equal(t, RideID(44), entrance.GetRideIndex())

	banner := newElement(TypeBanner).AsBanner()
	banner.SetIndex(99)
	banner.SetPosition(2)
	banner.ResetAllowedEdges()
	assert.Equal(t, BannerIndex(99), banner.GetIndex())
	assert.Equal(t, uint8(2), banner.GetPosition())
	assert.Equal(t, uint8(0x0F), banner.GetAllowedEdges())
}

func TestSurfaceElement_GrassUnderWater(t *testing.T) {
	objs := newTestObjects()
	objs.surfaces[0] = &TerrainSurfaceObject{Name: "grass", CanGrassGrow: true}

	s := newElement(TypeSurface).AsSurface()
	s.Base().SetBaseHeight(10) // z = 20
	s.SetWaterHeight(WaterHeightStep)
	s.SetGrassLength(GrassLengthClumps0)

	// Вода ниже поверхности траве не мешает
	for i := 0; i < 16; i++ {
		s.UpdateGrassLength(objs, false)
	}
	assert.Equal(t, GrassLengthClumps1, s.GetGrassLength())

	// Поверхность под водой скашивается
	s.SetWaterHeight(2 * WaterHeightStep)
	s.UpdateGrassLength(objs, false)
	assert.Equal(t, GrassLengthClear0, s.GetGrassLength())
}
