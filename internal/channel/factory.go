//go:build !debug

package channel

// New returns the channel used between observation producers and the
// collector. Production builds buffer to the given size.
func New[T any](size int) Channel[T] {
	return NewBuffered[T](size)
}
