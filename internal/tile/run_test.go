package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildRun(kinds ...ElementType) []Element {
	run := make([]Element, len(kinds))
	for i, k := range kinds {
		run[i].ClearAs(k)
	}
	run[len(run)-1].SetLastForTile(true)
	return run
}

func TestIsUnderground_LooksForwardOnly(t *testing.T) {
	run := buildRun(TypeSurface, TypeSmallScenery, TypePath)

	assert.False(t, IsUnderground(run, 0), "после поверхности нет другой поверхности")
	assert.False(t, IsUnderground(run, 1), "элемент над поверхностью")
	assert.False(t, IsUnderground(run, 2), "завершающий элемент")
}

func TestIsUnderground_SurfaceAfterElement(t *testing.T) {
	run := buildRun(TypePath, TypeTrack, TypeSurface, TypeWall)

	assert.True(t, IsUnderground(run, 0))
	assert.True(t, IsUnderground(run, 1))
	assert.False(t, IsUnderground(run, 2), "сама поверхность не считается")
	assert.False(t, IsUnderground(run, 3))
}

func TestIsUnderground_StopsAtTerminator(t *testing.T) {
	// Поверхность следующего тайла не должна учитываться
	elements := append(buildRun(TypePath, TypeSurface), buildRun(TypeTrack, TypeSmallScenery)...)
	elements = append(elements, buildRun(TypeSurface)...)

	assert.True(t, IsUnderground(elements, 0))
	assert.False(t, IsUnderground(elements, 2))
	assert.False(t, IsUnderground(elements, 3))
}

func TestIsUnderground_Malformed(t *testing.T) {
	run := []Element{{}, {}}
	run[0].ClearAs(TypePath)
	run[1].ClearAs(TypeTrack) // нет признака конца

	assert.False(t, IsUnderground(run, 0))
	assert.False(t, IsUnderground(run, -1))
	assert.False(t, IsUnderground(nil, 0))
}

func TestRunLength(t *testing.T) {
	elements := append(buildRun(TypeSurface, TypePath, TypeWall), buildRun(TypeSurface)...)

	assert.Equal(t, 3, RunLength(elements, 0))
	assert.Equal(t, 1, RunLength(elements, 3))
	assert.Equal(t, 2, RunLength(elements, 1))
}

func TestValidateRun(t *testing.T) {
	run := buildRun(TypeSurface, TypeSmallScenery, TypePath)

	// Ровно один завершающий элемент, и он последний
	last := 0
	for i := range run {
		if run[i].IsLastForTile() {
			last++
			assert.Equal(t, len(run)-1, i)
		}
	}
	assert.Equal(t, 1, last)
	assert.NoError(t, ValidateRun(run))
	assert.Equal(t, 0, SurfaceIndex(run))

	assert.ErrorIs(t, ValidateRun(nil), ErrEmptyRun)

	noSurface := buildRun(TypePath)
	assert.ErrorIs(t, ValidateRun(noSurface), ErrSurfaceCount)
	assert.Equal(t, -1, SurfaceIndex(noSurface))

	early := buildRun(TypeSurface, TypePath)
	early[0].SetLastForTile(true)
	assert.ErrorIs(t, ValidateRun(early), ErrEarlyTerminator)

	open := buildRun(TypeSurface, TypePath)
	open[1].SetLastForTile(false)
	assert.ErrorIs(t, ValidateRun(open), ErrMissingTerminator)

	heights := buildRun(TypeSurface, TypeWall)
	heights[1].SetBaseHeight(20)
	assert.ErrorIs(t, ValidateRun(heights), ErrInvalidHeights)
}
