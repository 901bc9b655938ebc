package trash

import "fmt"

// maxNameAttempts bounds collision resolution. The bound exists to keep the
// loop finite against a pathological bin, not as an optimization.
const maxNameAttempts = 100

// ResolveName returns a name that does not collide with any existing entry,
// as reported by exists. The base name is tried first, then base_1, base_2,
// and so on. The numeric suffix is always appended to the original base, so
// repeated trashing of "foo" yields foo, foo_1, foo_2, never foo_1_1.
//
// Fails with ErrTooManyCollisions once maxNameAttempts names have been
// rejected.
func ResolveName(base string, exists func(string) bool) (string, error) {
	if !exists(base) {
		return base, nil
	}

	for suffix := 1; suffix < maxNameAttempts; suffix++ {
		name := fmt.Sprintf("%s_%d", base, suffix)
		if !exists(name) {
			return name, nil
		}
	}

	return "", fmt.Errorf("%w: tried %d names for %q", ErrTooManyCollisions, maxNameAttempts, base)
}
