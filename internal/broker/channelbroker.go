package broker

import (
	"slices"
	"sync"
)

type subscription[T comparable] struct {
	id   int
	out  chan T
	wake chan struct{}
	done chan struct{}

	mu      sync.Mutex
	pending []T
}

func newSubscription[T comparable](id int) *subscription[T] {
	return &subscription[T]{
		id:   id,
		out:  make(chan T),
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// push queues value unless an equal value is already waiting for the subscriber.
func (s *subscription[T]) push(value T) {
	s.mu.Lock()
	if !slices.Contains(s.pending, value) {
		s.pending = append(s.pending, value)
	}
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// forward delivers pending values in arrival order until the subscription ends.
func (s *subscription[T]) forward() {
	defer close(s.out)
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}
		s.mu.Lock()
		values := s.pending
		s.pending = nil
		s.mu.Unlock()
		for _, v := range values {
			select {
			case s.out <- v:
			case <-s.done:
				return
			}
		}
	}
}

// ChannelBroker fans published values out to every current subscriber.
//
// The broker is used for pushing change notifications to Server-Sent-Event streams. Publishers never block on slow
// subscribers. Values a subscriber has not received yet are coalesced: publishing a value equal to one still
// waiting for that subscriber is a no-op, while distinct values are all delivered.
type ChannelBroker[T comparable] struct {
	stopChannel        chan struct{}
	publishChannel     chan T
	subscribeChannel   chan *subscription[T]
	unsubscribeChannel chan int
	nextID             chan int
}

// NewChannelBroker creates a new ChannelBroker. Call Start in a goroutine to run it and Stop to shut it down.
func NewChannelBroker[T comparable]() *ChannelBroker[T] {
	b := ChannelBroker[T]{
		stopChannel:        make(chan struct{}),
		publishChannel:     make(chan T),
		subscribeChannel:   make(chan *subscription[T]),
		unsubscribeChannel: make(chan int),
		nextID:             make(chan int),
	}
	return &b
}

// Start listening for publish, subscribe, and unsubscribe events. This function blocks until Stop() is called,
// so it should be called in a goroutine. Subscriber channels are closed when the broker stops.
func (b *ChannelBroker[T]) Start() {
	subscribers := map[int]*subscription[T]{}
	id := 0
	defer func() {
		for _, s := range subscribers {
			close(s.done)
		}
	}()
	for {
		select {
		case <-b.stopChannel:
			return

		case b.nextID <- id:
			id++

		case s := <-b.subscribeChannel:
			subscribers[s.id] = s
			go s.forward()

		case subscriberID := <-b.unsubscribeChannel:
			if s, ok := subscribers[subscriberID]; ok {
				close(s.done)
				delete(subscribers, subscriberID)
			}

		case value := <-b.publishChannel:
			for _, s := range subscribers {
				s.push(value)
			}
		}
	}
}

// Stop the goroutine that handles the broker.
func (b *ChannelBroker[T]) Stop() {
	close(b.stopChannel)
}

// Subscribe returns a channel receiving published values and a function that cancels the subscription. The channel
// is closed after cancellation or when the broker stops.
func (b *ChannelBroker[T]) Subscribe() (<-chan T, func()) {
	var id int
	select {
	case id = <-b.nextID:
	case <-b.stopChannel:
		c := make(chan T)
		close(c)
		return c, func() {}
	}
	s := newSubscription[T](id)
	select {
	case b.subscribeChannel <- s:
	case <-b.stopChannel:
		close(s.out)
		return s.out, func() {}
	}
	return s.out, func() {
		select {
		case b.unsubscribeChannel <- id:
		case <-b.stopChannel:
		}
	}
}

// Publish delivers value to the current subscribers. It returns without delivering once the broker is stopped.
func (b *ChannelBroker[T]) Publish(value T) {
	select {
	case b.publishChannel <- value:
	case <-b.stopChannel:
	}
}
