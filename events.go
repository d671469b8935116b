package sheetfab

// TouchAction is the phase of a touch gesture on the overlay.
type TouchAction int

const (
	TouchDown TouchAction = iota
	TouchMove
	TouchUp
	TouchCancel
)

// Tap is published by the host when the control is clicked.
type Tap struct{}

// Touch is published by the host for each pointer event on the overlay.
type Touch struct {
	Action TouchAction
	X, Y   float32
}

// Layout is published by the host after a layout pass has settled.
type Layout struct{}

// Handler is a callback receiving bus events.
type Handler[T any] func(T)

// Bus delivers events to its subscribers in subscription order.
// It is meant to be used from the loop goroutine only, so it carries no locking.
type Bus[T any] struct {
	subs   []subscription[T]
	nextID int
}

type subscription[T any] struct {
	id int
	fn Handler[T]
}

// Subscribe registers fn and returns a function removing it again.
func (b *Bus[T]) Subscribe(fn Handler[T]) (unsubscribe func()) {
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscription[T]{id: id, fn: fn})

	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Once registers fn for the first event only.
func (b *Bus[T]) Once(fn Handler[T]) (unsubscribe func()) {
	var unsub func()
	unsub = b.Subscribe(func(ev T) {
		unsub()
		fn(ev)
	})
	return unsub
}

// Publish delivers ev to a snapshot of the current subscribers.
func (b *Bus[T]) Publish(ev T) {
	snapshot := make([]subscription[T], len(b.subs))
	copy(snapshot, b.subs)
	for _, s := range snapshot {
		s.fn(ev)
	}
}

// Len returns the number of subscribers.
func (b *Bus[T]) Len() int {
	return len(b.subs)
}

// Events groups the input buses the coordinator listens on.
// Hosts translate their toolkit callbacks into publications on these buses.
type Events struct {
	Tap    Bus[Tap]
	Touch  Bus[Touch]
	Layout Bus[Layout]
}
