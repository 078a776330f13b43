package core

import (
	"slices"

	"github.com/google/uuid"
)

// SubscriptionID identifies one registered listener or frame callback.
type SubscriptionID string

type subscription struct {
	id      SubscriptionID
	name    string
	release func()
}

// Subscriptions tracks everything attached to the host during a mount so it
// can be detached on teardown. Release functions run at most once.
type Subscriptions struct {
	subs   []subscription
	closed bool
}

func NewSubscriptions() *Subscriptions {
	return &Subscriptions{}
}

// Add records a release function under a fresh id. Adding to a closed set
// releases immediately, so late registrations cannot leak.
func (s *Subscriptions) Add(name string, release func()) SubscriptionID {
	id := SubscriptionID(uuid.NewString())
	if s.closed {
		if release != nil {
			release()
		}
		return id
	}
	s.subs = append(s.subs, subscription{id: id, name: name, release: release})
	return id
}

// Remove releases a single subscription. Unknown ids are ignored.
func (s *Subscriptions) Remove(id SubscriptionID) bool {
	i := slices.IndexFunc(s.subs, func(sub subscription) bool { return sub.id == id })
	if i < 0 {
		return false
	}
	sub := s.subs[i]
	s.subs = slices.Delete(s.subs, i, i+1)
	if sub.release != nil {
		sub.release()
	}
	return true
}

// Len returns the number of live subscriptions.
func (s *Subscriptions) Len() int {
	return len(s.subs)
}

// Names lists live subscriptions in registration order.
func (s *Subscriptions) Names() []string {
	names := make([]string, len(s.subs))
	for i, sub := range s.subs {
		names[i] = sub.name
	}
	return names
}

// Close releases every subscription, newest first, and rejects new ones.
func (s *Subscriptions) Close() {
	subs := s.subs
	s.subs = nil
	s.closed = true
	for i := len(subs) - 1; i >= 0; i-- {
		if subs[i].release != nil {
			subs[i].release()
		}
	}
}

func (s *Subscriptions) Closed() bool {
	return s.closed
}
