package world

import (
	"testing"

	"github.com/annel0/park-engine/internal/tile"
	"github.com/annel0/park-engine/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeSize_Grow(t *testing.T) {
	m := newTestMap(t, 3, 3)
	edge := m.SurfaceAt(vec.Vec2{X: 2, Y: 1})
	edge.Base().SetBaseHeight(10)
	edge.Base().SetClearanceHeight(10)
	edge.SetOwnership(tile.OwnershipOwned)

	_, err := m.InsertElement(vec.Vec2{X: 1, Y: 1}, tile.TypePath, 2, 4, 0)
	require.NoError(t, err)

	var resized []ChangeEvent
	m.SetListener(func(ev ChangeEvent) { resized = append(resized, ev) })

	require.NoError(t, m.ChangeSize(vec.Vec2{X: 5, Y: 4}, nil, nil))
	assert.Equal(t, vec.Vec2{X: 5, Y: 4}, m.Size())
	assert.Equal(t, 21, m.ElementCount())
	assert.NoError(t, m.CheckIntegrity())

	// Старые цепочки сохранены
	assert.Len(t, m.Run(vec.Vec2{X: 1, Y: 1}), 2)

	// Новый тайл копирует соседнюю поверхность без владения
	grown := m.SurfaceAt(vec.Vec2{X: 4, Y: 1})
	require.NotNil(t, grown)
	assert.Equal(t, uint8(10), grown.Base().BaseHeight())
	assert.Zero(t, grown.GetOwnership())
	assert.Equal(t, uint8(tile.OwnershipOwned), m.SurfaceAt(vec.Vec2{X: 2, Y: 1}).GetOwnership())

	require.Len(t, resized, 1)
	assert.Equal(t, ChangeResized, resized[0].Kind)
	assert.Equal(t, vec.Vec2{X: 5, Y: 4}, resized[0].Pos)
}

func TestChangeSize_ShrinkRemovesBanners(t *testing.T) {
	m := newTestMap(t, 5, 5)
	banners := NewBannerTable()

	created, err := banners.Create(tile.Banner{Text: "Exit", X: 4, Y: 4})
	require.NoError(t, err)
	kept, err := banners.Create(tile.Banner{Text: "Entry", X: 0, Y: 0})
	require.NoError(t, err)

	ref, err := m.InsertElement(vec.Vec2{X: 4, Y: 4}, tile.TypeBanner, 4, 6, 0)
	require.NoError(t, err)
	require.NoError(t, m.Element(ref).SetBannerIndex(created.ID))

	require.NoError(t, m.ChangeSize(vec.Vec2{X: 3, Y: 3}, nil, banners))
	assert.Equal(t, 9, m.ElementCount())
	assert.Nil(t, banners.GetBanner(created.ID))
	assert.NotNil(t, banners.GetBanner(kept.ID))
	assert.NoError(t, m.CheckIntegrity())
}

func TestChangeSize_Limits(t *testing.T) {
	m := newTestMap(t, 3, 3)

	assert.ErrorIs(t, m.ChangeSize(vec.Vec2{X: 2, Y: 3}, nil, nil), ErrMapSize)
	assert.ErrorIs(t, m.ChangeSize(vec.Vec2{X: 3, Y: MaximumMapSize + 1}, nil, nil), ErrMapSize)
	assert.Equal(t, vec.Vec2{X: 3, Y: 3}, m.Size())

	require.NoError(t, m.ChangeSize(vec.Vec2{X: 3, Y: 3}, nil, nil))
	assert.Equal(t, 9, m.ElementCount())
}
