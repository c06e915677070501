package storage

import (
	"encoding/binary"
	"testing"

	"github.com/annel0/park-engine/internal/tile"
	"github.com/annel0/park-engine/internal/vec"
	"github.com/annel0/park-engine/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMap_Layout(t *testing.T) {
	m, err := world.NewTileMap(vec.Vec2{X: 3, Y: 4})
	require.NoError(t, err)
	_, err = m.InsertElement(vec.Vec2{X: 1, Y: 1}, tile.TypeWall, 4, 8, 0b0001)
	require.NoError(t, err)

	data := EncodeMap(m)
	require.Len(t, data, headerSize+13*tile.ElementSize)
	assert.Equal(t, "PKMP", string(data[:4]))
	assert.Equal(t, uint16(SaveVersion), binary.LittleEndian.Uint16(data[4:]))
	assert.Equal(t, uint16(3), binary.LittleEndian.Uint16(data[6:]))
	assert.Equal(t, uint16(4), binary.LittleEndian.Uint16(data[8:]))
	assert.Equal(t, uint32(13), binary.LittleEndian.Uint32(data[10:]))

	// Каждая запись копируется байт в байт
	elements := m.Elements()
	assert.Equal(t, elements[5][:], data[headerSize+5*tile.ElementSize:headerSize+6*tile.ElementSize])
}

func TestDecodeMap_RoundTrip(t *testing.T) {
	m, err := world.NewTileMap(vec.Vec2{X: 5, Y: 5})
	require.NoError(t, err)
	require.NoError(t, world.NewSurfaceGenerator(99).Generate(m))
	_, err = m.InsertElement(vec.Vec2{X: 0, Y: 4}, tile.TypeTrack, 0, 2, 0b1111)
	require.NoError(t, err)

	decoded, err := DecodeMap(EncodeMap(m))
	require.NoError(t, err)
	assert.Equal(t, m.Size(), decoded.Size())
	assert.Equal(t, m.Elements(), decoded.Elements())

	ref, ok := decoded.RunStart(vec.Vec2{X: 0, Y: 4})
	require.True(t, ok)
	assert.True(t, decoded.IsUnderground(ref))
}

func TestDecodeMap_Corrupt(t *testing.T) {
	m, err := world.NewTileMap(vec.Vec2{X: 3, Y: 3})
	require.NoError(t, err)
	good := EncodeMap(m)

	cases := map[string]func([]byte) []byte{
		"короткий заголовок": func(b []byte) []byte { return b[:5] },
		"неверная сигнатура": func(b []byte) []byte { b[0] = 'X'; return b },
		"неизвестная версия": func(b []byte) []byte { binary.LittleEndian.PutUint16(b[4:], 9); return b },
		"обрезанные данные":  func(b []byte) []byte { return b[:len(b)-3] },
		"неверный размер": func(b []byte) []byte {
			binary.LittleEndian.PutUint16(b[6:], 4)
			return b
		},
		"нет поверхности": func(b []byte) []byte {
			// первый элемент становится дорожкой
			b[headerSize] = byte(tile.TypePath) << 2
			return b
		},
	}

	for name, corrupt := range cases {
		data := corrupt(append([]byte(nil), good...))
		_, err := DecodeMap(data)
		assert.ErrorIs(t, err, ErrCorruptSave, name)
	}
}
