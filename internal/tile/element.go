package tile

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Element - упакованная 16-байтовая запись элемента тайла.
//
// Байты 0-4 - общий заголовок (Type, Flags, BaseHeight, ClearanceHeight, Owner),
// байты 5-15 - полезная нагрузка, трактовка которой зависит только от вида.
// Раскладка совпадает с форматом сохранений и не должна меняться.
type Element [ElementSize]byte

// Ошибки структурной проверки элемента
var (
	ErrUnknownType    = errors.New("неизвестный вид элемента")
	ErrInvalidHeights = errors.New("базовая высота выше высоты просвета")
)

// GetType возвращает вид элемента
func (e *Element) GetType() ElementType {
	return ElementType((e[offType] & TypeMask) >> 2)
}

// SetType меняет вид, сохраняя остальные биты байта Type
func (e *Element) SetType(t ElementType) {
	e[offType] &^= TypeMask
	e[offType] |= (uint8(t) << 2) & TypeMask
}

// GetDirection возвращает направление (0-3)
func (e *Element) GetDirection() Direction {
	return Direction(e[offType] & DirectionMask)
}

// SetDirection устанавливает направление; лишние биты отбрасываются
func (e *Element) SetDirection(d Direction) {
	e[offType] &^= DirectionMask
	e[offType] |= uint8(d) & DirectionMask
}

// GetDirectionWithOffset возвращает направление, повернутое на offset, не меняя запись
func (e *Element) GetDirectionWithOffset(offset uint8) Direction {
	return Direction((uint8(e.GetDirection()) + offset) & DirectionMask)
}

// IsLastForTile сообщает, что элемент завершает цепочку тайла
func (e *Element) IsLastForTile() bool {
	return e[offFlags]&FlagLastTile != 0
}

// SetLastForTile устанавливает или снимает признак конца цепочки
func (e *Element) SetLastForTile(on bool) {
	e.setFlag(FlagLastTile, on)
}

// IsGhost сообщает, что элемент - предпросмотр размещения
func (e *Element) IsGhost() bool {
	return e[offFlags]&FlagGhost != 0
}

func (e *Element) SetGhost(on bool) {
	e.setFlag(FlagGhost, on)
}

func (e *Element) IsInvisible() bool {
	return e[offFlags]&FlagInvisible != 0
}

func (e *Element) SetInvisible(on bool) {
	e.setFlag(FlagInvisible, on)
}

func (e *Element) setFlag(flag uint8, on bool) {
	if on {
		e[offFlags] |= flag
	} else {
		e[offFlags] &^= flag
	}
}

// GetOccupiedQuadrants возвращает 4-битную маску занятых четвертей тайла
func (e *Element) GetOccupiedQuadrants() uint8 {
	return e[offFlags] & OccupiedQuadrantsMask
}

// SetOccupiedQuadrants записывает маску четвертей; значения > 15 усекаются до 4 бит
func (e *Element) SetOccupiedQuadrants(quadrants uint8) {
	e[offFlags] &^= OccupiedQuadrantsMask
	e[offFlags] |= quadrants & OccupiedQuadrantsMask
}

// BaseHeight возвращает базовую высоту в единицах хранения
func (e *Element) BaseHeight() uint8 { return e[offBaseHeight] }

// SetBaseHeight записывает базовую высоту в единицах хранения
func (e *Element) SetBaseHeight(h uint8) { e[offBaseHeight] = h }

// ClearanceHeight возвращает высоту просвета в единицах хранения
func (e *Element) ClearanceHeight() uint8 { return e[offClearanceHeight] }

// SetClearanceHeight записывает высоту просвета в единицах хранения
func (e *Element) SetClearanceHeight(h uint8) { e[offClearanceHeight] = h }

// GetBaseZ возвращает базовую высоту в мировых координатах
func (e *Element) GetBaseZ() int {
	return int(e[offBaseHeight]) * CoordsZStep
}

// SetBaseZ записывает базовую высоту из мировых координат
func (e *Element) SetBaseZ(z int) {
	e[offBaseHeight] = zToHeight(z)
}

// GetClearanceZ возвращает высоту просвета в мировых координатах
func (e *Element) GetClearanceZ() int {
	return int(e[offClearanceHeight]) * CoordsZStep
}

// SetClearanceZ записывает высоту просвета из мировых координат
func (e *Element) SetClearanceZ(z int) {
	e[offClearanceHeight] = zToHeight(z)
}

// zToHeight переводит мировую Z в единицы хранения, ограничивая диапазоном байта
func zToHeight(z int) uint8 {
	h := z / CoordsZStep
	if h < 0 {
		return 0
	}
	if h > MaxElementHeight {
		return MaxElementHeight
	}
	return uint8(h)
}

// GetOwner возвращает владельца (4 бита)
func (e *Element) GetOwner() uint8 {
	return e[offOwner] & OwnerMask
}

// SetOwner записывает владельца; значения вне маски молча усекаются
func (e *Element) SetOwner(owner uint8) {
	e[offOwner] &^= OwnerMask
	e[offOwner] |= owner & OwnerMask
}

// Payload возвращает копию 11 байт полезной нагрузки
func (e *Element) Payload() [PayloadSize]byte {
	var p [PayloadSize]byte
	copy(p[:], e[HeaderSize:])
	return p
}

// Validate проверяет структурную корректность отдельной записи
func (e *Element) Validate() error {
	if !e.GetType().Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownType, e.GetType())
	}
	if e.BaseHeight() > e.ClearanceHeight() {
		return fmt.Errorf("%w: %d > %d", ErrInvalidHeights, e.BaseHeight(), e.ClearanceHeight())
	}
	return nil
}

// Приведение к типизированным представлениям.
// При несовпадении вида возвращается nil - это штатный исход, не ошибка.

func (e *Element) AsSurface() *SurfaceElement {
	if e.GetType() != TypeSurface {
		return nil
	}
	return (*SurfaceElement)(e)
}

func (e *Element) AsPath() *PathElement {
	if e.GetType() != TypePath {
		return nil
	}
	return (*PathElement)(e)
}

func (e *Element) AsTrack() *TrackElement {
	if e.GetType() != TypeTrack {
		return nil
	}
	return (*TrackElement)(e)
}

func (e *Element) AsSmallScenery() *SmallSceneryElement {
	if e.GetType() != TypeSmallScenery {
		return nil
	}
	return (*SmallSceneryElement)(e)
}

func (e *Element) AsLargeScenery() *LargeSceneryElement {
	if e.GetType() != TypeLargeScenery {
		return nil
	}
	return (*LargeSceneryElement)(e)
}

func (e *Element) AsWall() *WallElement {
	if e.GetType() != TypeWall {
		return nil
	}
	return (*WallElement)(e)
}

func (e *Element) AsEntrance() *EntranceElement {
	if e.GetType() != TypeEntrance {
		return nil
	}
	return (*EntranceElement)(e)
}

func (e *Element) AsBanner() *BannerElement {
	if e.GetType() != TypeBanner {
		return nil
	}
	return (*BannerElement)(e)
}

// Вспомогательные функции для little-endian полей нагрузки

func (e *Element) u16(off int) uint16 {
	return binary.LittleEndian.Uint16(e[off : off+2])
}

func (e *Element) putU16(off int, v uint16) {
	binary.LittleEndian.PutUint16(e[off:off+2], v)
}

func (e *Element) bit(off int, mask uint8) bool {
	return e[off]&mask != 0
}

func (e *Element) setBit(off int, mask uint8, on bool) {
	if on {
		e[off] |= mask
	} else {
		e[off] &^= mask
	}
}
