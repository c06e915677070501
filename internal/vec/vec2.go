package vec

import "fmt"

// TileSize - размер тайла в мировых координатах
const TileSize = 32

// Vec2 представляет координаты тайла на карте
type Vec2 struct {
	X, Y int
}

// ToWorld преобразует координаты тайла в мировые (левый нижний угол тайла)
func (v Vec2) ToWorld() Vec2 {
	return Vec2{X: v.X * TileSize, Y: v.Y * TileSize}
}

// FromWorld преобразует мировые координаты в координаты тайла
func FromWorld(world Vec2) Vec2 {
	return Vec2{X: floorDiv(world.X, TileSize), Y: floorDiv(world.Y, TileSize)}
}

// InBounds проверяет, что тайл лежит внутри карты размером size
func (v Vec2) InBounds(size Vec2) bool {
	return v.X >= 0 && v.Y >= 0 && v.X < size.X && v.Y < size.Y
}

// Add возвращает сумму векторов
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// String возвращает строку вида "(x,y)"
func (v Vec2) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
