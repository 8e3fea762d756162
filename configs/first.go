package configs

import (
	"errors"
)

// First decodes the value of the first path found in any source.
// The zero value is returned when none is set.
func First[T any](loader Loader, paths ...string) T {
	var value T
	for _, path := range paths {
		err := loader.AssignFirst(path, &value)
		if err == nil {
			return value
		}
		if !errors.Is(err, ErrValueNotFound) {
			panic(err)
		}
	}
	return value
}
