package world

import (
	"github.com/annel0/park-engine/internal/logging"
	"github.com/annel0/park-engine/internal/tile"
	"github.com/annel0/park-engine/internal/vec"
)

// ChangeSize меняет размер карты. Тайлы за новой границей удаляются вместе
// с записями их баннеров; новые тайлы получают копию поверхности ближайшего
// существующего тайла без прав владения.
func (m *TileMap) ChangeSize(size vec.Vec2, objs tile.ObjectLookup, banners tile.BannerStore) error {
	if err := validateSize(size); err != nil {
		return err
	}
	if size == m.size {
		return nil
	}

	elements := make([]tile.Element, 0, size.X*size.Y)
	offsets := make([]int, 0, size.X*size.Y)
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			offsets = append(offsets, len(elements))
			pos := vec.Vec2{X: x, Y: y}
			if pos.InBounds(m.size) {
				elements = append(elements, m.Run(pos)...)
				continue
			}

			src := m.SurfaceAt(vec.Vec2{X: min(x, m.size.X-1), Y: min(y, m.size.Y-1)})
			var e tile.Element
			if src != nil {
				e = *src.Base()
			} else {
				initFlatSurface(&e)
			}
			e.SetLastForTile(true)
			e.AsSurface().SetOwnership(0)
			e.AsSurface().SetParkFences(0)
			elements = append(elements, e)
		}
	}

	dropped := 0
	m.ForEachTile(func(pos vec.Vec2, run []tile.Element) bool {
		if pos.InBounds(size) {
			return true
		}
		for i := range run {
			run[i].RemoveBannerEntry(objs, banners, nil)
			dropped++
		}
		return true
	})

	logging.GetMapLogger().Info("Размер карты изменен: %s -> %s, удалено элементов: %d", m.size, size, dropped)

	m.size = size
	m.elements = elements
	m.offsets = offsets
	m.metrics.resized(len(m.elements))
	m.notify(ChangeEvent{Kind: ChangeResized, Pos: size})
	return nil
}
