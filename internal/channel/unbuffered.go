// internal/channel/unbuffered.go
package channel

// Unbuffered hands each observation directly from producer to consumer,
// making the interleaving deterministic.
type Unbuffered[T any] struct {
	ch chan T
}

// NewUnbuffered creates an unbuffered channel.
func NewUnbuffered[T any]() *Unbuffered[T] {
	return &Unbuffered[T]{ch: make(chan T)}
}

// Send blocks until the consumer takes the value.
func (u *Unbuffered[T]) Send(v T) {
	u.ch <- v
}

// Receive returns the receive-only side of the channel.
func (u *Unbuffered[T]) Receive() <-chan T {
	return u.ch
}

// Len always returns 0; nothing is ever queued.
func (u *Unbuffered[T]) Len() int {
	return 0
}

// Close signals that no more values will be sent.
func (u *Unbuffered[T]) Close() {
	close(u.ch)
}
