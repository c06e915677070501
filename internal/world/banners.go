package world

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/annel0/park-engine/internal/tile"
	"github.com/annel0/park-engine/internal/vec"
)

// MaxBanners - емкость таблицы баннеров
const MaxBanners = 8192

var (
	ErrBannerTableFull = errors.New("таблица баннеров заполнена")
	ErrBannerIndex     = errors.New("индекс баннера вне таблицы")
	ErrDanglingBanner  = errors.New("элемент ссылается на отсутствующий баннер")
)

// BannerTable хранит записи баннеров по индексу.
// Индексы удаленных записей переиспользуются, начиная с наименьшего.
type BannerTable struct {
	mu      sync.RWMutex
	banners map[tile.BannerIndex]*tile.Banner
}

// NewBannerTable создаёт пустую таблицу
func NewBannerTable() *BannerTable {
	return &BannerTable{banners: make(map[tile.BannerIndex]*tile.Banner)}
}

// Create выделяет свободный индекс и сохраняет запись.
// Поле ID переданной записи перезаписывается выделенным индексом.
func (t *BannerTable) Create(b tile.Banner) (*tile.Banner, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := 0; i < MaxBanners; i++ {
		idx := tile.BannerIndex(i)
		if _, used := t.banners[idx]; used {
			continue
		}
		b.ID = idx
		stored := b
		t.banners[idx] = &stored
		return &stored, nil
	}
	return nil, ErrBannerTableFull
}

// GetBanner возвращает запись или nil
func (t *BannerTable) GetBanner(idx tile.BannerIndex) *tile.Banner {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.banners[idx]
}

// DeleteBanner удаляет запись; отсутствие записи не ошибка
func (t *BannerTable) DeleteBanner(idx tile.BannerIndex) {
	t.mu.Lock()
	delete(t.banners, idx)
	t.mu.Unlock()
}

// Len возвращает число записей
func (t *BannerTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.banners)
}

// All возвращает копии всех записей в порядке индексов
func (t *BannerTable) All() []tile.Banner {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]tile.Banner, 0, len(t.banners))
	for _, b := range t.banners {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Restore сохраняет запись под её собственным индексом (при загрузке карты)
func (t *BannerTable) Restore(b tile.Banner) error {
	if int(b.ID) >= MaxBanners {
		return fmt.Errorf("%w: %d", ErrBannerIndex, b.ID)
	}
	t.mu.Lock()
	t.banners[b.ID] = &b
	t.mu.Unlock()
	return nil
}

// CheckBanners находит элементы, чей индекс баннера не разрешается в таблице.
// Пустой индекс не проверяется.
func (m *TileMap) CheckBanners(objs tile.ObjectLookup, banners tile.BannerStore) error {
	var errs []error
	m.ForEachTile(func(pos vec.Vec2, run []tile.Element) bool {
		for i := range run {
			idx := run[i].GetBannerIndex(objs)
			if idx.IsNull() {
				continue
			}
			if banners == nil || banners.GetBanner(idx) == nil {
				errs = append(errs, fmt.Errorf("%w: тайл %s элемент %d баннер %d", ErrDanglingBanner, pos, i, idx))
			}
		}
		return true
	})
	if len(errs) > 0 {
		m.metrics.integrityFailed(len(errs))
	}
	return errors.Join(errs...)
}
