package world

import (
	"testing"

	"github.com/annel0/park-engine/internal/tile"
	"github.com/annel0/park-engine/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfaceGenerator_Deterministic(t *testing.T) {
	a := newTestMap(t, 16, 16)
	b := newTestMap(t, 16, 16)

	require.NoError(t, NewSurfaceGenerator(42).Generate(a))
	require.NoError(t, NewSurfaceGenerator(42).Generate(b))

	assert.Equal(t, a.Elements(), b.Elements())
	assert.NoError(t, a.CheckIntegrity())
}

func TestSurfaceGenerator_HeightsAndWater(t *testing.T) {
	m := newTestMap(t, 24, 24)
	gen := NewSurfaceGenerator(7)
	require.NoError(t, gen.Generate(m))

	waterZ := gen.WaterLevel * tile.WaterHeightStep
	maxHeight := landHeight(gen.MaxLevel)
	m.ForEachTile(func(pos vec.Vec2, run []tile.Element) bool {
		s := run[0].AsSurface()
		require.NotNil(t, s, "тайл %s", pos)
		h := s.Base().BaseHeight()
		assert.GreaterOrEqual(t, h, uint8(tile.MinimumLandHeight))
		assert.LessOrEqual(t, h, maxHeight)
		assert.Zero(t, (h-tile.MinimumLandHeight)%2, "высота суши кратна ступени")

		if s.Base().GetBaseZ() < waterZ {
			assert.Equal(t, waterZ, s.GetWaterHeight())
			assert.Equal(t, SurfaceDirt, s.GetSurfaceObjectIndex())
		} else {
			assert.Zero(t, s.GetWaterHeight())
		}
		return true
	})
}

func TestSurfaceGenerator_Trees(t *testing.T) {
	m := newTestMap(t, 20, 20)
	gen := NewSurfaceGenerator(3)
	gen.WaterLevel = 0
	gen.TreeDensity = 1
	gen.TreeEntry = 5
	require.NoError(t, gen.Generate(m))

	trees := 0
	m.ForEachTile(func(pos vec.Vec2, run []tile.Element) bool {
		for i := range run {
			if s := run[i].AsSmallScenery(); s != nil {
				trees++
				assert.Equal(t, tile.ObjectEntryIndex(5), s.GetEntryIndex())
				assert.Equal(t, SurfaceGrass, run[0].AsSurface().GetSurfaceObjectIndex())
			}
		}
		return true
	})
	assert.Positive(t, trees)
	assert.Equal(t, 400+trees, m.ElementCount())
	assert.NoError(t, m.CheckIntegrity())
}

func TestSurfaceGenerator_DefaultTree(t *testing.T) {
	objs := NewDefaultObjectTable()
	entry := objs.SmallSceneryEntry(DefaultTreeEntry)
	require.NotNil(t, entry)
	assert.Equal(t, "tree", entry.Name)

	// Без индекса дерева плотность ни на что не влияет
	m := newTestMap(t, 8, 8)
	gen := NewSurfaceGenerator(1)
	gen.WaterLevel = 0
	gen.TreeDensity = 1
	require.NoError(t, gen.Generate(m))
	assert.Equal(t, 64, m.ElementCount())

	m = newTestMap(t, 8, 8)
	gen.TreeEntry = DefaultTreeEntry
	require.NoError(t, gen.Generate(m))
	assert.Greater(t, m.ElementCount(), 64)
}
