package tile

import (
	"errors"
	"fmt"
)

// Ошибки проверки цепочки тайла
var (
	ErrEmptyRun          = errors.New("пустая цепочка тайла")
	ErrMissingTerminator = errors.New("цепочка тайла не завершена")
	ErrEarlyTerminator   = errors.New("признак конца цепочки не на последнем элементе")
	ErrSurfaceCount      = errors.New("на тайле должна быть ровно одна поверхность")
)

// IsUnderground сообщает, лежит ли элемент run[i] под поверхностью.
// Просматриваются только элементы после i: если run[i] завершает цепочку,
// ответ false; иначе true, если до конца цепочки встретилась поверхность.
func IsUnderground(run []Element, i int) bool {
	for {
		if i < 0 || i >= len(run) || run[i].IsLastForTile() {
			return false
		}
		i++
		if i < len(run) && run[i].GetType() == TypeSurface {
			return true
		}
	}
}

// RunLength считает элементы цепочки, начинающейся с elements[start], включая завершающий.
// Если признак конца не найден, возвращается длина до конца среза.
func RunLength(elements []Element, start int) int {
	for i := start; i < len(elements); i++ {
		if elements[i].IsLastForTile() {
			return i - start + 1
		}
	}
	return len(elements) - start
}

// SurfaceIndex возвращает позицию поверхности в цепочке или -1
func SurfaceIndex(run []Element) int {
	for i := range run {
		if run[i].GetType() == TypeSurface {
			return i
		}
		if run[i].IsLastForTile() {
			break
		}
	}
	return -1
}

// ValidateRun проверяет инварианты цепочки одного тайла
func ValidateRun(run []Element) error {
	if len(run) == 0 {
		return ErrEmptyRun
	}

	var errs []error
	surfaces := 0
	for i := range run {
		last := i == len(run)-1
		if run[i].IsLastForTile() && !last {
			errs = append(errs, fmt.Errorf("%w: позиция %d из %d", ErrEarlyTerminator, i, len(run)))
		}
		if last && !run[i].IsLastForTile() {
			errs = append(errs, ErrMissingTerminator)
		}
		if run[i].GetType() == TypeSurface {
			surfaces++
		}
		if err := run[i].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("элемент %d: %w", i, err))
		}
	}
	if surfaces != 1 {
		errs = append(errs, fmt.Errorf("%w: найдено %d", ErrSurfaceCount, surfaces))
	}
	return errors.Join(errs...)
}
