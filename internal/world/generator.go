package world

import (
	"math/rand"

	"github.com/annel0/park-engine/internal/logging"
	"github.com/annel0/park-engine/internal/tile"
	"github.com/annel0/park-engine/internal/util"
	"github.com/annel0/park-engine/internal/vec"
)

// Индексы поверхностей базового набора (см. NewDefaultObjectTable)
const (
	SurfaceGrass tile.ObjectEntryIndex = 0
	SurfaceSand  tile.ObjectEntryIndex = 1
	SurfaceDirt  tile.ObjectEntryIndex = 2
	SurfaceRock  tile.ObjectEntryIndex = 3
)

const (
	beachBand   = 2 * 2 * tile.CoordsZStep // две ступени суши над водой - песок
	mountainMin = 0.75                     // доля шума, выше которой скалы
	treeHeight  = 8
)

// SurfaceGenerator задаёт рельеф карты шумом Перлина
type SurfaceGenerator struct {
	Seed        int64   // Сид для генерации шума
	NoiseScale  float64 // Масштаб шума высоты
	MaxLevel    int     // Максимальное число ступеней суши над минимальной высотой
	WaterLevel  int     // Уровень воды в шагах WaterHeightStep (0 - без воды)
	TreeDensity float64 // Доля травяных тайлов с деревом (от 0 до 1)
	TreeEntry   tile.ObjectEntryIndex
}

// NewSurfaceGenerator создаёт генератор с настройками по умолчанию
func NewSurfaceGenerator(seed int64) *SurfaceGenerator {
	return &SurfaceGenerator{
		Seed:        seed,
		NoiseScale:  0.05, // Настройка сглаженности ландшафта
		MaxLevel:    16,
		WaterLevel:  2,
		TreeDensity: 0,
		TreeEntry:   tile.ObjectEntryIndexNull,
	}
}

// landHeight переводит ступень суши в единицы высоты элемента
func landHeight(level int) uint8 {
	return uint8(min(tile.MinimumLandHeight+level*2, tile.MaxElementHeight))
}

// Generate перезаписывает поверхности всех тайлов карты.
// Остальные элементы не трогаются; деревья вставляются только на сухую траву.
func (g *SurfaceGenerator) Generate(m *TileMap) error {
	noise := util.NewNoiseField(g.Seed, g.NoiseScale)
	rng := rand.New(rand.NewSource(g.Seed))
	waterZ := g.WaterLevel * tile.WaterHeightStep

	type treeSpot struct {
		pos    vec.Vec2
		height uint8
	}
	var trees []treeSpot

	size := m.Size()
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			pos := vec.Vec2{X: x, Y: y}
			surface := m.SurfaceAt(pos)
			if surface == nil {
				continue
			}

			value := noise.At(x, y)
			level := int(value * float64(g.MaxLevel))
			height := landHeight(level)

			e := surface.Base()
			e.SetBaseHeight(height)
			e.SetClearanceHeight(height)
			surface.SetSlope(0)

			z := e.GetBaseZ()
			underwater := waterZ > 0 && z < waterZ
			if underwater {
				surface.SetWaterHeight(waterZ)
			} else {
				surface.SetWaterHeight(0)
			}

			switch {
			case underwater:
				surface.SetSurfaceObjectIndex(SurfaceDirt)
			case waterZ > 0 && z < waterZ+beachBand:
				surface.SetSurfaceObjectIndex(SurfaceSand)
			case value >= mountainMin:
				surface.SetSurfaceObjectIndex(SurfaceRock)
			default:
				surface.SetSurfaceObjectIndex(SurfaceGrass)
				surface.SetGrassLength(uint8(rng.Intn(int(tile.GrassLengthClumps2) + 1)))
				if g.TreeDensity > 0 && !g.TreeEntry.IsNull() && rng.Float64() < g.TreeDensity {
					trees = append(trees, treeSpot{pos: pos, height: height})
				}
			}
		}
	}

	// Вставка сдвигает индексы, поэтому деревья ставятся после прохода по поверхностям
	for _, t := range trees {
		clearance := uint8(min(int(t.height)+treeHeight, tile.MaxElementHeight))
		ref, err := m.InsertElement(t.pos, tile.TypeSmallScenery, t.height, clearance, 0b1111)
		if err != nil {
			return err
		}
		tree := m.Element(ref).AsSmallScenery()
		tree.SetEntryIndex(g.TreeEntry)
	}

	logging.GetMapLogger().Info("Рельеф сгенерирован: карта %s, сид %d, деревьев %d", size, g.Seed, len(trees))
	return nil
}
