package channel

// Buffered absorbs bursts from observation producers so a slow consumer
// does not stall submission.
type Buffered[T any] struct {
	ch chan T
}

// NewBuffered creates a buffered channel holding up to size values.
func NewBuffered[T any](size int) *Buffered[T] {
	return &Buffered[T]{ch: make(chan T, size)}
}

// Send queues a value, blocking only when the buffer is full.
func (b *Buffered[T]) Send(v T) {
	b.ch <- v
}

// Receive returns the receive-only side of the channel.
func (b *Buffered[T]) Receive() <-chan T {
	return b.ch
}

// Len returns the number of queued, unconsumed values.
func (b *Buffered[T]) Len() int {
	return len(b.ch)
}

// Close signals that no more values will be sent.
func (b *Buffered[T]) Close() {
	close(b.ch)
}
