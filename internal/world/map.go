package world

import (
	"errors"
	"fmt"
	"sort"

	"github.com/annel0/park-engine/internal/tile"
	"github.com/annel0/park-engine/internal/vec"
)

// Ограничения размера карты (в тайлах)
const (
	MinimumMapSize = 3
	MaximumMapSize = 1001
)

// Ошибки операций с картой
var (
	ErrOutOfBounds     = errors.New("тайл вне карты")
	ErrMapSize         = errors.New("недопустимый размер карты")
	ErrInvalidHeights  = errors.New("базовая высота выше высоты просвета")
	ErrInvalidRef      = errors.New("недействительная ссылка на элемент")
	ErrLastSurface     = errors.New("нельзя удалить поверхность тайла")
	ErrSurfaceRequired = errors.New("второй элемент поверхности на тайле")
	ErrCorruptElements = errors.New("поврежденный массив элементов")
)

// ElementRef - ссылка на элемент по индексу в массиве карты.
// Любая вставка или удаление делает прежние ссылки недействительными.
type ElementRef struct {
	Index int
}

// TileMap владеет всеми элементами карты: единый непрерывный массив,
// в котором цепочки тайлов лежат подряд в порядке строк (y, затем x).
//
// Карта не потокобезопасна: запись должна сериализовать вызывающая сторона.
type TileMap struct {
	size     vec.Vec2
	elements []tile.Element
	offsets  []int // начало цепочки каждого тайла, индекс y*size.X + x

	listener ChangeListener
	metrics  *Metrics
}

// NewTileMap создаёт карту, на каждом тайле которой лежит плоская поверхность
func NewTileMap(size vec.Vec2) (*TileMap, error) {
	if err := validateSize(size); err != nil {
		return nil, err
	}

	count := size.X * size.Y
	m := &TileMap{
		size:     size,
		elements: make([]tile.Element, count),
		offsets:  make([]int, count),
	}
	for i := 0; i < count; i++ {
		initFlatSurface(&m.elements[i])
		m.offsets[i] = i
	}
	return m, nil
}

// FromElements восстанавливает карту из сохраненного массива элементов.
// Цепочки определяются признаками конца; тайлов должно быть ровно size.X*size.Y,
// и каждая цепочка должна проходить проверку целостности.
func FromElements(size vec.Vec2, elements []tile.Element) (*TileMap, error) {
	if err := validateSize(size); err != nil {
		return nil, err
	}

	count := size.X * size.Y
	offsets := make([]int, 0, count)
	for i := 0; i < len(elements); {
		if len(offsets) == count {
			return nil, fmt.Errorf("%w: лишние элементы после %d тайлов", ErrCorruptElements, count)
		}
		n := tile.RunLength(elements, i)
		if !elements[i+n-1].IsLastForTile() {
			return nil, fmt.Errorf("%w: цепочка тайла %d не завершена", ErrCorruptElements, len(offsets))
		}
		offsets = append(offsets, i)
		i += n
	}
	if len(offsets) != count {
		return nil, fmt.Errorf("%w: найдено %d цепочек, ожидалось %d", ErrCorruptElements, len(offsets), count)
	}

	m := &TileMap{
		size:     size,
		elements: elements,
		offsets:  offsets,
	}
	if err := m.CheckIntegrity(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptElements, err)
	}
	return m, nil
}

func validateSize(size vec.Vec2) error {
	if size.X < MinimumMapSize || size.Y < MinimumMapSize ||
		size.X > MaximumMapSize || size.Y > MaximumMapSize {
		return fmt.Errorf("%w: %s", ErrMapSize, size)
	}
	return nil
}

func initFlatSurface(e *tile.Element) {
	e.ClearAs(tile.TypeSurface)
	e.SetLastForTile(true)
	e.SetOccupiedQuadrants(0b1111)
}

// SetListener подключает получателя событий изменения карты
func (m *TileMap) SetListener(l ChangeListener) {
	m.listener = l
}

// SetMetrics подключает метрики карты
func (m *TileMap) SetMetrics(metrics *Metrics) {
	m.metrics = metrics
	metrics.setElements(len(m.elements))
}

// Size возвращает размер карты в тайлах
func (m *TileMap) Size() vec.Vec2 { return m.size }

// ElementCount возвращает общее число элементов
func (m *TileMap) ElementCount() int { return len(m.elements) }

// Elements возвращает массив элементов карты (без копирования)
func (m *TileMap) Elements() []tile.Element { return m.elements }

func (m *TileMap) tileIndex(pos vec.Vec2) int {
	return pos.Y*m.size.X + pos.X
}

func (m *TileMap) runBounds(ti int) (int, int) {
	start := m.offsets[ti]
	end := len(m.elements)
	if ti+1 < len(m.offsets) {
		end = m.offsets[ti+1]
	}
	return start, end
}

// Run возвращает цепочку тайла. Срез указывает в массив карты:
// изменения через него сразу видны карте. Вне карты возвращается nil.
func (m *TileMap) Run(pos vec.Vec2) []tile.Element {
	if !pos.InBounds(m.size) {
		return nil
	}
	start, end := m.runBounds(m.tileIndex(pos))
	return m.elements[start:end:end]
}

// RunStart возвращает ссылку на первый элемент тайла
func (m *TileMap) RunStart(pos vec.Vec2) (ElementRef, bool) {
	if !pos.InBounds(m.size) {
		return ElementRef{}, false
	}
	return ElementRef{Index: m.offsets[m.tileIndex(pos)]}, true
}

// RefAt возвращает ссылку на i-й элемент цепочки тайла
func (m *TileMap) RefAt(pos vec.Vec2, i int) (ElementRef, error) {
	run := m.Run(pos)
	if run == nil {
		return ElementRef{}, fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}
	if i < 0 || i >= len(run) {
		return ElementRef{}, fmt.Errorf("%w: элемент %d на тайле %s", ErrInvalidRef, i, pos)
	}
	ref, _ := m.RunStart(pos)
	ref.Index += i
	return ref, nil
}

// Element возвращает элемент по ссылке или nil
func (m *TileMap) Element(ref ElementRef) *tile.Element {
	if ref.Index < 0 || ref.Index >= len(m.elements) {
		return nil
	}
	return &m.elements[ref.Index]
}

// TileOf возвращает тайл, которому принадлежит элемент
func (m *TileMap) TileOf(ref ElementRef) (vec.Vec2, bool) {
	if ref.Index < 0 || ref.Index >= len(m.elements) {
		return vec.Vec2{}, false
	}
	// последний тайл, чья цепочка начинается не позже ref.Index
	ti := sort.Search(len(m.offsets), func(i int) bool { return m.offsets[i] > ref.Index }) - 1
	return vec.Vec2{X: ti % m.size.X, Y: ti / m.size.X}, true
}

// SurfaceAt возвращает поверхность тайла или nil
func (m *TileMap) SurfaceAt(pos vec.Vec2) *tile.SurfaceElement {
	run := m.Run(pos)
	if i := tile.SurfaceIndex(run); i >= 0 {
		return run[i].AsSurface()
	}
	return nil
}

// IsUnderground сообщает, лежит ли элемент под поверхностью своего тайла
func (m *TileMap) IsUnderground(ref ElementRef) bool {
	return tile.IsUnderground(m.elements, ref.Index)
}

// InsertElement размещает новый пустой элемент вида kind на тайле.
// Элемент встаёт после всех элементов с базовой высотой не выше его собственной.
func (m *TileMap) InsertElement(pos vec.Vec2, kind tile.ElementType, base, clearance uint8, quadrants uint8) (ElementRef, error) {
	if !pos.InBounds(m.size) {
		return ElementRef{}, fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}
	if base > clearance {
		return ElementRef{}, fmt.Errorf("%w: %d > %d", ErrInvalidHeights, base, clearance)
	}
	if kind == tile.TypeSurface {
		return ElementRef{}, ErrSurfaceRequired
	}

	ti := m.tileIndex(pos)
	start, end := m.runBounds(ti)

	at := start
	for at < end && m.elements[at].BaseHeight() <= base {
		at++
	}

	var e tile.Element
	e.ClearAs(kind)
	e.SetBaseHeight(base)
	e.SetClearanceHeight(clearance)
	e.SetOccupiedQuadrants(quadrants)
	switch kind {
	case tile.TypeWall, tile.TypeLargeScenery, tile.TypeBanner:
		// баннер назначается отдельно
		_ = e.SetBannerIndex(tile.BannerIndexNull)
	}
	if at == end {
		// новый элемент завершает цепочку
		m.elements[end-1].SetLastForTile(false)
		e.SetLastForTile(true)
	}

	m.elements = append(m.elements, tile.Element{})
	copy(m.elements[at+1:], m.elements[at:])
	m.elements[at] = e
	for i := ti + 1; i < len(m.offsets); i++ {
		m.offsets[i]++
	}

	ref := ElementRef{Index: at}
	m.metrics.elementInserted(kind, len(m.elements))
	m.notify(ChangeEvent{Kind: ChangeInserted, Pos: pos, Index: at - start, ElementType: kind})
	return ref, nil
}

// RemoveElement удаляет элемент и уплотняет цепочку тайла.
// Поверхность удалить нельзя - на тайле должна оставаться ровно одна.
func (m *TileMap) RemoveElement(ref ElementRef) error {
	e := m.Element(ref)
	if e == nil {
		return fmt.Errorf("%w: %d", ErrInvalidRef, ref.Index)
	}
	if e.GetType() == tile.TypeSurface {
		return ErrLastSurface
	}

	pos, _ := m.TileOf(ref)
	ti := m.tileIndex(pos)
	start, _ := m.runBounds(ti)
	kind := e.GetType()

	if e.IsLastForTile() {
		if ref.Index == start {
			return fmt.Errorf("%w: элемент %d единственный на тайле %s", ErrCorruptElements, ref.Index, pos)
		}
		m.elements[ref.Index-1].SetLastForTile(true)
	}

	copy(m.elements[ref.Index:], m.elements[ref.Index+1:])
	m.elements = m.elements[:len(m.elements)-1]
	for i := ti + 1; i < len(m.offsets); i++ {
		m.offsets[i]--
	}

	m.metrics.elementRemoved(kind, len(m.elements))
	m.notify(ChangeEvent{Kind: ChangeRemoved, Pos: pos, Index: ref.Index - start, ElementType: kind})
	return nil
}

// MarkUpdated сообщает получателю об изменении полей элемента на месте
func (m *TileMap) MarkUpdated(ref ElementRef) {
	e := m.Element(ref)
	if e == nil {
		return
	}
	pos, _ := m.TileOf(ref)
	start, _ := m.runBounds(m.tileIndex(pos))
	m.notify(ChangeEvent{Kind: ChangeUpdated, Pos: pos, Index: ref.Index - start, ElementType: e.GetType()})
}

// ForEachTile обходит тайлы в порядке хранения; fn возвращает false, чтобы остановиться
func (m *TileMap) ForEachTile(fn func(pos vec.Vec2, run []tile.Element) bool) {
	for ti := range m.offsets {
		start, end := m.runBounds(ti)
		pos := vec.Vec2{X: ti % m.size.X, Y: ti / m.size.X}
		if !fn(pos, m.elements[start:end:end]) {
			return
		}
	}
}

// CheckIntegrity проверяет инварианты всех цепочек карты
func (m *TileMap) CheckIntegrity() error {
	var errs []error
	m.ForEachTile(func(pos vec.Vec2, run []tile.Element) bool {
		if err := tile.ValidateRun(run); err != nil {
			errs = append(errs, fmt.Errorf("тайл %s: %w", pos, err))
		}
		return true
	})
	if len(errs) > 0 {
		m.metrics.integrityFailed(len(errs))
	}
	return errors.Join(errs...)
}

func (m *TileMap) notify(ev ChangeEvent) {
	if m.listener != nil {
		m.listener(ev)
	}
}
