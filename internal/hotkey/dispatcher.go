// Package hotkey routes key presses to whichever UI components have
// subscribed to them. One Dispatcher serves the whole program; components
// subscribe when they mount and unsubscribe when they are torn down.
package hotkey

import (
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler reacts to a matched key. It returns handled=false to let the key
// continue to earlier subscribers and then to the caller.
type Handler[T any] func(target T, msg tea.KeyMsg) (cmd tea.Cmd, handled bool)

type subscription[T any] struct {
	id      uint64
	owner   string
	name    string
	binding key.Binding
	handler Handler[T]
}

// Dispatcher is safe for concurrent use. T is the value handlers act on,
// typically a pointer to the root model.
type Dispatcher[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription[T]
}

// New returns an empty dispatcher.
func New[T any]() *Dispatcher[T] {
	return &Dispatcher[T]{}
}

// Subscribe attaches handler to binding on behalf of owner. name identifies
// the subscription within the owner; subscribing the same owner/name again
// replaces the earlier handler. The returned func unsubscribes and is
// idempotent.
func (d *Dispatcher[T]) Subscribe(owner, name string, binding key.Binding, handler Handler[T]) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.removeLocked(func(s subscription[T]) bool {
		return s.owner == owner && s.name == name
	})

	d.nextID++
	id := d.nextID
	d.subs = append(d.subs, subscription[T]{
		id:      id,
		owner:   owner,
		name:    name,
		binding: binding,
		handler: handler,
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			d.removeLocked(func(s subscription[T]) bool { return s.id == id })
		})
	}
}

// UnsubscribeOwner drops every subscription held by owner and returns how
// many were removed.
func (d *Dispatcher[T]) UnsubscribeOwner(owner string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.removeLocked(func(s subscription[T]) bool { return s.owner == owner })
}

// Subscribed reports whether owner currently holds any subscription.
func (d *Dispatcher[T]) Subscribed(owner string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range d.subs {
		if s.owner == owner {
			return true
		}
	}
	return false
}

// Len returns the number of live subscriptions.
func (d *Dispatcher[T]) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}

// Dispatch offers msg to matching subscribers, newest first, and stops at the
// first handler that reports it handled the key.
func (d *Dispatcher[T]) Dispatch(target T, msg tea.KeyMsg) (tea.Cmd, bool) {
	d.mu.Lock()
	matched := make([]Handler[T], 0, 2)
	for i := len(d.subs) - 1; i >= 0; i-- {
		s := d.subs[i]
		if s.binding.Enabled() && key.Matches(msg, s.binding) {
			matched = append(matched, s.handler)
		}
	}
	d.mu.Unlock()

	// Handlers run unlocked so they may subscribe or unsubscribe.
	for _, h := range matched {
		if cmd, handled := h(target, msg); handled {
			return cmd, true
		}
	}
	return nil, false
}

func (d *Dispatcher[T]) removeLocked(match func(subscription[T]) bool) int {
	kept := d.subs[:0]
	removed := 0
	for _, s := range d.subs {
		if match(s) {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(d.subs); i++ {
		d.subs[i] = subscription[T]{}
	}
	d.subs = kept
	return removed
}
