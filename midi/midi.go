// package midi receives MIDI control messages and fans them out to
// subscribers.
package midi

import (
	"context"
	"log/slog"
	"sync"
)

// ChannelMask has one bit per MIDI channel.
type ChannelMask uint16

const AllChannels ChannelMask = 0xFFFF

// Listener is a function that blocks until its context is cancelled, calling
// the provided callback with raw MIDI bytes as they arrive.
type Listener func(context.Context, func([]byte)) error

type sub struct {
	f filter
	c chan Message
}

// Dispatcher routes MIDI messages to a set of channels.
type Dispatcher struct {
	mu      sync.Mutex
	subs    []sub
	closed  bool
	dropped int
	err     error
	done    chan struct{}
}

// Listen starts listening for MIDI messages in the background with the
// provided Listener. It returns a Dispatcher whose Subscribe method can be
// used to get a channel on which to receive Messages. When the listener
// returns, every subscription channel is closed and Wait reports its error.
func Listen(ctx context.Context, l Listener) *Dispatcher {
	d := &Dispatcher{done: make(chan struct{})}

	go func() {
		err := l(ctx, func(raw []byte) {
			msgs, err := ParseMessages(raw)
			if err != nil {
				slog.Debug("midi: bad message", "raw", raw, "err", err)
			}
			for _, m := range msgs {
				d.dispatch(m)
			}
		})
		d.mu.Lock()
		d.err = err
		d.mu.Unlock()
		d.close()
		close(d.done)
	}()

	return d
}

// Wait blocks until the listener has returned, and returns its error.
func (d *Dispatcher) Wait() error {
	<-d.done
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Dropped is the number of messages thrown away because a subscriber was
// not keeping up.
func (d *Dispatcher) Dropped() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dropped
}

func (d *Dispatcher) dispatch(msg Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range d.subs {
		if !s.f.match(msg) {
			continue
		}
		select {
		case s.c <- msg:
		default:
			d.dropped++
		}
	}
}

func (d *Dispatcher) close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range d.subs {
		close(s.c)
	}
	d.subs = d.subs[:0]
	d.closed = true
}

// Subscribe returns a channel of the messages that pass every filter. A
// subscription made after the listener has returned gets a closed channel.
func (d *Dispatcher) Subscribe(opts ...SubscriptionFilter) <-chan Message {
	f := defaultFilter()
	for _, o := range opts {
		o(&f)
	}

	c := make(chan Message, 100)
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		close(c)
		return c
	}
	d.subs = append(d.subs, sub{f: f, c: c})
	return c
}

type filter struct {
	channels ChannelMask
	kinds    [8]bool
}

func defaultFilter() filter {
	f := filter{
		channels: AllChannels,
	}
	for i := range f.kinds {
		f.kinds[i] = true
	}
	return f
}

func (f *filter) match(msg Message) bool {
	if f.channels&(1<<msg.Channel) == 0 {
		return false
	}
	return f.kinds[int(msg.Kind&0x7)]
}

type SubscriptionFilter func(f *filter)

func WithChannelMask(cm ChannelMask) SubscriptionFilter {
	return func(f *filter) { f.channels = cm }
}

// Channel restricts a subscription to one channel, numbered from zero.
func Channel(ch byte) SubscriptionFilter {
	return WithChannelMask(1 << (ch & 0xF))
}

func WithoutKind(k Kind) SubscriptionFilter {
	return func(f *filter) {
		f.kinds[int(k&0x7)] = false
	}
}

// OnlyKinds drops every kind but those given.
func OnlyKinds(ks ...Kind) SubscriptionFilter {
	return func(f *filter) {
		f.kinds = [8]bool{}
		for _, k := range ks {
			f.kinds[int(k&0x7)] = true
		}
	}
}
