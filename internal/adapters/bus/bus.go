// Package bus is the cross-view sync channel: a typed publish/subscribe
// feed of "collection changed" notifications. Views subscribe and re-read
// the named collection in full; there is no payload diffing and no
// conflict resolution beyond last writer wins.
package bus

import (
	"context"
	"sync"

	"github.com/thebeat/pipeline/pkg/metrics"
)

const defaultSubscriberBuffer = 16

// Change announces that a collection was replaced.
type Change struct {
	// Key is the storage key of the collection that changed.
	Key string `json:"key"`

	// External marks changes detected from another process's write to the
	// shared store, as opposed to a save in this process.
	External bool `json:"external"`
}

// Bus fans out changes to every subscriber. A slow subscriber whose buffer
// is full misses the notification; since subscribers re-read whole
// collections, the next notification makes them whole.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan Change
	nextID int
	buffer int
	closed bool
}

// New creates a Bus with configuration options.
func New(opts ...Option) *Bus {
	b := &Bus{
		subs:   make(map[int]chan Change),
		buffer: defaultSubscriberBuffer,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish delivers the change to every subscriber without blocking.
func (b *Bus) Publish(change Change) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	metrics.RecordChangePublished(change.Key)
	for _, ch := range b.subs {
		select {
		case ch <- change:
		default:
			metrics.RecordChangeDropped()
		}
	}
}

// Subscribe registers a new listener. The returned cancel function must be
// called when the listener goes away; the channel closes on cancel or when
// the bus shuts down, and also drains when ctx ends.
func (b *Bus) Subscribe(ctx context.Context) (<-chan Change, func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	ch := make(chan Change, b.buffer)
	if b.closed {
		close(ch)
		b.mu.Unlock()
		return ch, func() {}
	}
	b.subs[id] = ch
	b.mu.Unlock()

	metrics.UpdateSubscriberCount(b.Len())

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			if _, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(ch)
			}
			b.mu.Unlock()
			metrics.UpdateSubscriberCount(b.Len())
		})
	}

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			cancel()
		}()
	}

	return ch, cancel
}

// Len returns the number of live subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close shuts down the bus and closes every subscriber channel.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
