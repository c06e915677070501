package api

import (
	"context"
	"errors"
	"sync"

	"github.com/annel0/park-engine/internal/eventbus"
	"github.com/annel0/park-engine/internal/logging"
	"github.com/annel0/park-engine/internal/storage"
	"github.com/annel0/park-engine/internal/world"
)

// ErrStorageDisabled - сервер запущен без хранилища карт
var ErrStorageDisabled = errors.New("хранилище карт не настроено")

// Park объединяет карту и её таблицы. Карта не потокобезопасна,
// поэтому все обработчики работают с ней под mu.
// Пустые Objects и Banners заменяются пустыми таблицами в NewRestServer и Save.
type Park struct {
	mu      sync.RWMutex
	Name    string
	Map     *world.TileMap
	Objects *world.ObjectTable
	Banners *world.BannerTable
	Storage *storage.MapStorage // может быть nil
}

// fillDefaults подставляет пустые таблицы вместо nil. Nil-указатель,
// переданный как tile.ObjectLookup или tile.BannerStore, не равен nil
// и уронил бы первый же вызов.
func (p *Park) fillDefaults() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Objects == nil {
		p.Objects = world.NewObjectTable()
	}
	if p.Banners == nil {
		p.Banners = world.NewBannerTable()
	}
}

// Read выполняет fn под блокировкой чтения
func (p *Park) Read(fn func(p *Park) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return fn(p)
}

// Write выполняет fn под эксклюзивной блокировкой
func (p *Park) Write(fn func(p *Park) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fn(p)
}

// Save сохраняет карту в хранилище под текущим именем и сообщает об этом
// в глобальную шину событий.
func (p *Park) Save() error {
	if p.Storage == nil {
		return ErrStorageDisabled
	}
	p.fillDefaults()
	var elements int
	err := p.Read(func(p *Park) error {
		elements = p.Map.ElementCount()
		return p.Storage.SaveMap(p.Name, p.Map, p.Banners)
	})
	if err != nil {
		return err
	}

	ev, err := eventbus.NewEnvelope("map:"+p.Name, "MapSaved", map[string]int{"elements": elements})
	if err == nil {
		err = eventbus.Publish(context.Background(), ev)
	}
	if err != nil {
		logging.GetAPILogger().Warn("Событие MapSaved не опубликовано: %v", err)
	}
	return nil
}
