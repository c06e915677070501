package world

import (
	"sync"

	"github.com/annel0/park-engine/internal/tile"
)

// ObjectTable - реестр загруженных объектов в памяти.
// Пустой реестр корректен: все запросы вернут nil.
type ObjectTable struct {
	mu        sync.RWMutex
	surfaces  map[tile.ObjectEntryIndex]*tile.TerrainSurfaceObject
	edges     map[tile.ObjectEntryIndex]*tile.TerrainEdgeObject
	small     map[tile.ObjectEntryIndex]*tile.SmallSceneryEntry
	large     map[tile.ObjectEntryIndex]*tile.LargeSceneryEntry
	walls     map[tile.ObjectEntryIndex]*tile.WallSceneryEntry
	additions map[tile.ObjectEntryIndex]*tile.PathAdditionEntry
}

// NewObjectTable создаёт пустой реестр
func NewObjectTable() *ObjectTable {
	return &ObjectTable{
		surfaces:  make(map[tile.ObjectEntryIndex]*tile.TerrainSurfaceObject),
		edges:     make(map[tile.ObjectEntryIndex]*tile.TerrainEdgeObject),
		small:     make(map[tile.ObjectEntryIndex]*tile.SmallSceneryEntry),
		large:     make(map[tile.ObjectEntryIndex]*tile.LargeSceneryEntry),
		walls:     make(map[tile.ObjectEntryIndex]*tile.WallSceneryEntry),
		additions: make(map[tile.ObjectEntryIndex]*tile.PathAdditionEntry),
	}
}

// DefaultTreeEntry - индекс дерева в базовом наборе объектов
const DefaultTreeEntry tile.ObjectEntryIndex = 0

// NewDefaultObjectTable создаёт реестр с базовым набором поверхностей и деревом
func NewDefaultObjectTable() *ObjectTable {
	t := NewObjectTable()
	t.RegisterSurface(0, &tile.TerrainSurfaceObject{Name: "grass", CanGrassGrow: true, NumImageBases: 1})
	t.RegisterSurface(1, &tile.TerrainSurfaceObject{Name: "sand", NumImageBases: 1})
	t.RegisterSurface(2, &tile.TerrainSurfaceObject{Name: "dirt", NumImageBases: 1})
	t.RegisterSurface(3, &tile.TerrainSurfaceObject{Name: "rock", NumImageBases: 1})
	t.RegisterEdge(0, &tile.TerrainEdgeObject{Name: "rock"})
	t.RegisterSmallScenery(DefaultTreeEntry, &tile.SmallSceneryEntry{Name: "tree"})
	return t
}

func (t *ObjectTable) RegisterSurface(idx tile.ObjectEntryIndex, obj *tile.TerrainSurfaceObject) {
	t.mu.Lock()
	t.surfaces[idx] = obj
	t.mu.Unlock()
}

func (t *ObjectTable) RegisterEdge(idx tile.ObjectEntryIndex, obj *tile.TerrainEdgeObject) {
	t.mu.Lock()
	t.edges[idx] = obj
	t.mu.Unlock()
}

func (t *ObjectTable) RegisterSmallScenery(idx tile.ObjectEntryIndex, entry *tile.SmallSceneryEntry) {
	t.mu.Lock()
	t.small[idx] = entry
	t.mu.Unlock()
}

func (t *ObjectTable) RegisterLargeScenery(idx tile.ObjectEntryIndex, entry *tile.LargeSceneryEntry) {
	t.mu.Lock()
	t.large[idx] = entry
	t.mu.Unlock()
}

func (t *ObjectTable) RegisterWall(idx tile.ObjectEntryIndex, entry *tile.WallSceneryEntry) {
	t.mu.Lock()
	t.walls[idx] = entry
	t.mu.Unlock()
}

func (t *ObjectTable) RegisterPathAddition(idx tile.ObjectEntryIndex, entry *tile.PathAdditionEntry) {
	t.mu.Lock()
	t.additions[idx] = entry
	t.mu.Unlock()
}

func (t *ObjectTable) SurfaceObject(idx tile.ObjectEntryIndex) *tile.TerrainSurfaceObject {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.surfaces[idx]
}

func (t *ObjectTable) EdgeObject(idx tile.ObjectEntryIndex) *tile.TerrainEdgeObject {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.edges[idx]
}

func (t *ObjectTable) SmallSceneryEntry(idx tile.ObjectEntryIndex) *tile.SmallSceneryEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.small[idx]
}

func (t *ObjectTable) LargeSceneryEntry(idx tile.ObjectEntryIndex) *tile.LargeSceneryEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.large[idx]
}

func (t *ObjectTable) WallEntry(idx tile.ObjectEntryIndex) *tile.WallSceneryEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.walls[idx]
}

func (t *ObjectTable) PathAdditionEntry(idx tile.ObjectEntryIndex) *tile.PathAdditionEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.additions[idx]
}
