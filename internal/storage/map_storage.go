package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/annel0/park-engine/internal/logging"
	"github.com/annel0/park-engine/internal/tile"
	"github.com/annel0/park-engine/internal/world"
	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"
)

// Префиксы ключей BadgerDB
const (
	mapKeyPrefix    = "map:"
	bannerKeyPrefix = "banners:"
)

// Первый байт значения карты: способ упаковки
const (
	encodingRaw  byte = 0
	encodingZstd byte = 1
)

var (
	ErrMapNotFound     = errors.New("карта не найдена")
	ErrStorageNotReady = errors.New("хранилище не готово")
	ErrInvalidMapName  = errors.New("недопустимое имя карты")
)

// MapStorage хранит сохранения карт в BadgerDB
type MapStorage struct {
	db       *badger.DB
	dbPath   string
	compress bool
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
	mutex    sync.RWMutex
	isReady  bool
}

// NewMapStorage открывает (или создаёт) хранилище в dataPath/maps
func NewMapStorage(dataPath string, compress bool) (*MapStorage, error) {
	dbPath := filepath.Join(dataPath, "maps")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось создать zstd-кодер: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		db.Close()
		return nil, fmt.Errorf("не удалось создать zstd-декодер: %w", err)
	}

	logging.GetStorageLogger().Info("Хранилище карт открыто: %s (сжатие: %v)", dbPath, compress)
	return &MapStorage{
		db:       db,
		dbPath:   dbPath,
		compress: compress,
		encoder:  encoder,
		decoder:  decoder,
		isReady:  true,
	}, nil
}

// Close закрывает хранилище данных
func (ms *MapStorage) Close() error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	if !ms.isReady {
		return nil
	}

	ms.isReady = false
	ms.encoder.Close()
	ms.decoder.Close()
	return ms.db.Close()
}

func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, ":/") {
		return fmt.Errorf("%w: %q", ErrInvalidMapName, name)
	}
	return nil
}

// SaveMap сохраняет карту и (если передана) таблицу баннеров одной транзакцией
func (ms *MapStorage) SaveMap(name string, m *world.TileMap, banners *world.BannerTable) error {
	if err := validateName(name); err != nil {
		return err
	}

	ms.mutex.RLock()
	defer ms.mutex.RUnlock()

	if !ms.isReady {
		return ErrStorageNotReady
	}

	raw := EncodeMap(m)
	value := make([]byte, 0, len(raw)+1)
	if ms.compress {
		value = append(value, encodingZstd)
		value = ms.encoder.EncodeAll(raw, value)
	} else {
		value = append(value, encodingRaw)
		value = append(value, raw...)
	}

	var bannerData []byte
	if banners != nil {
		var err error
		bannerData, err = json.Marshal(banners.All())
		if err != nil {
			return fmt.Errorf("ошибка сериализации баннеров: %w", err)
		}
	}

	err := ms.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(mapKeyPrefix+name), value); err != nil {
			return err
		}
		if bannerData == nil {
			return txn.Delete([]byte(bannerKeyPrefix + name))
		}
		return txn.Set([]byte(bannerKeyPrefix+name), bannerData)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения в BadgerDB: %w", err)
	}

	logging.GetStorageLogger().Debug("Карта %q сохранена: %d элементов, %d байт", name, m.ElementCount(), len(value))
	return nil
}

// LoadMap загружает карту; таблица баннеров пуста, если она не сохранялась
func (ms *MapStorage) LoadMap(name string) (*world.TileMap, *world.BannerTable, error) {
	if err := validateName(name); err != nil {
		return nil, nil, err
	}

	ms.mutex.RLock()
	defer ms.mutex.RUnlock()

	if !ms.isReady {
		return nil, nil, ErrStorageNotReady
	}

	var value, bannerData []byte
	err := ms.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(mapKeyPrefix + name))
		if err != nil {
			return err
		}
		if value, err = item.ValueCopy(nil); err != nil {
			return err
		}

		item, err = txn.Get([]byte(bannerKeyPrefix + name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		bannerData, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil, fmt.Errorf("%w: %q", ErrMapNotFound, name)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}

	raw, err := ms.unpack(value)
	if err != nil {
		return nil, nil, err
	}
	m, err := DecodeMap(raw)
	if err != nil {
		return nil, nil, err
	}

	banners := world.NewBannerTable()
	if bannerData != nil {
		var records []tile.Banner
		if err := json.Unmarshal(bannerData, &records); err != nil {
			return nil, nil, fmt.Errorf("%w: баннеры: %w", ErrCorruptSave, err)
		}
		for _, b := range records {
			if err := banners.Restore(b); err != nil {
				return nil, nil, fmt.Errorf("%w: %w", ErrCorruptSave, err)
			}
		}
	}

	logging.GetStorageLogger().Debug("Карта %q загружена: %s, %d элементов", name, m.Size(), m.ElementCount())
	return m, banners, nil
}

func (ms *MapStorage) unpack(value []byte) ([]byte, error) {
	if len(value) == 0 {
		return nil, fmt.Errorf("%w: пустое значение", ErrCorruptSave)
	}
	switch value[0] {
	case encodingRaw:
		return value[1:], nil
	case encodingZstd:
		raw, err := ms.decoder.DecodeAll(value[1:], nil)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrCorruptSave, err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: неизвестная упаковка %d", ErrCorruptSave, value[0])
	}
}

// DeleteMap удаляет карту и её баннеры
func (ms *MapStorage) DeleteMap(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	ms.mutex.RLock()
	defer ms.mutex.RUnlock()

	if !ms.isReady {
		return ErrStorageNotReady
	}

	err := ms.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(mapKeyPrefix + name)); err != nil {
			return err
		}
		if err := txn.Delete([]byte(mapKeyPrefix + name)); err != nil {
			return err
		}
		return txn.Delete([]byte(bannerKeyPrefix + name))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %q", ErrMapNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("ошибка удаления из BadgerDB: %w", err)
	}
	return nil
}

// ListMaps возвращает имена сохраненных карт по алфавиту
func (ms *MapStorage) ListMaps() ([]string, error) {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()

	if !ms.isReady {
		return nil, ErrStorageNotReady
	}

	var names []string
	err := ms.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(mapKeyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			names = append(names, strings.TrimPrefix(key, mapKeyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}

	sort.Strings(names)
	return names, nil
}
