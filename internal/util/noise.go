package util

import (
	"github.com/aquilax/go-perlin"
)

// Параметры шума по умолчанию
const (
	noiseAlpha   = 2.0 // Сглаживание шума
	noiseBeta    = 2.0 // Частота шума
	noiseOctaves = 3   // Количество октав
)

// NoiseField - детерминированное поле шума Перлина для одного сида
type NoiseField struct {
	perlin *perlin.Perlin
	scale  float64
}

// NewNoiseField создаёт поле шума; scale масштабирует координаты тайлов
func NewNoiseField(seed int64, scale float64) *NoiseField {
	return &NoiseField{
		perlin: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed),
		scale:  scale,
	}
}

// At возвращает значение шума для координат тайла (от 0 до 1)
func (f *NoiseField) At(x, y int) float64 {
	// Значение шума от -1 до 1
	noise := f.perlin.Noise2D(float64(x)*f.scale, float64(y)*f.scale)
	return Clamp01((noise + 1.0) / 2.0)
}

// Clamp01 ограничивает значение отрезком [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
