package storage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/annel0/park-engine/internal/tile"
	"github.com/annel0/park-engine/internal/vec"
	"github.com/annel0/park-engine/internal/world"
)

// Формат сохранения карты
const (
	saveMagic   = "PKMP"
	SaveVersion = 1
	headerSize  = 4 + 2 + 2 + 2 + 4 // magic, version, width, height, count
)

// ErrCorruptSave - данные сохранения повреждены или в неизвестном формате
var ErrCorruptSave = errors.New("поврежденное сохранение карты")

// EncodeMap сериализует карту: заголовок и элементы в порядке хранения.
// Цепочки тайлов восстанавливаются по признакам конца.
func EncodeMap(m *world.TileMap) []byte {
	elements := m.Elements()
	size := m.Size()

	buf := make([]byte, headerSize, headerSize+len(elements)*tile.ElementSize)
	copy(buf, saveMagic)
	binary.LittleEndian.PutUint16(buf[4:], SaveVersion)
	binary.LittleEndian.PutUint16(buf[6:], uint16(size.X))
	binary.LittleEndian.PutUint16(buf[8:], uint16(size.Y))
	binary.LittleEndian.PutUint32(buf[10:], uint32(len(elements)))

	for i := range elements {
		buf = append(buf, elements[i][:]...)
	}
	return buf
}

// DecodeMap восстанавливает карту и проверяет целостность каждой цепочки
func DecodeMap(data []byte) (*world.TileMap, error) {
	if len(data) < headerSize || !bytes.Equal(data[:4], []byte(saveMagic)) {
		return nil, fmt.Errorf("%w: неверный заголовок", ErrCorruptSave)
	}
	if v := binary.LittleEndian.Uint16(data[4:]); v != SaveVersion {
		return nil, fmt.Errorf("%w: версия %d не поддерживается", ErrCorruptSave, v)
	}

	size := vec.Vec2{
		X: int(binary.LittleEndian.Uint16(data[6:])),
		Y: int(binary.LittleEndian.Uint16(data[8:])),
	}
	count := int(binary.LittleEndian.Uint32(data[10:]))
	body := data[headerSize:]
	if len(body) != count*tile.ElementSize {
		return nil, fmt.Errorf("%w: ожидалось %d элементов, получено %d байт", ErrCorruptSave, count, len(body))
	}

	elements := make([]tile.Element, count)
	for i := range elements {
		copy(elements[i][:], body[i*tile.ElementSize:])
	}

	m, err := world.FromElements(size, elements)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSave, err)
	}
	return m, nil
}
