package store

// Copy-on-write slice helpers. Each returns a fresh backing array and never
// touches xs, so earlier snapshots stay valid.

func appendCopy[T any](xs []T, v T) []T {
	out := make([]T, len(xs), len(xs)+1)
	copy(out, xs)
	return append(out, v)
}

func replaceAt[T any](xs []T, i int, v T) []T {
	out := make([]T, len(xs))
	copy(out, xs)
	out[i] = v
	return out
}

func removeAt[T any](xs []T, i int) []T {
	out := make([]T, 0, len(xs)-1)
	out = append(out, xs[:i]...)
	return append(out, xs[i+1:]...)
}
