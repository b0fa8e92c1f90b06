package graphz

import (
	"sync"
	"time"
)

// DefaultNotificationLifetime is how long a notification stays active.
const DefaultNotificationLifetime = 3000 * time.Millisecond

// NotificationKind drives how a notification is displayed.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyInfo    NotificationKind = "info"
)

// Notification is a short-lived message about the last user action.
type Notification struct {
	Message string           `json:"message"`
	Kind    NotificationKind `json:"type"`
}

// Notifier holds at most one active notification.
//
// A new notification replaces the active one and restarts the expiry: the
// pending timer is stopped, and a timer that fires anyway (it was already
// running) only clears the slot if it still holds its own notification.
type Notifier struct {
	mu       sync.Mutex
	lifetime time.Duration
	current  *Notification
	gen      uint64 // incremented on every Notify
	timer    *time.Timer
	onExpire func()
}

// NewNotifier returns a Notifier whose notifications last lifetime.
// onExpire, if not nil, is called (without any Notifier lock held) each time a
// notification clears itself.
func NewNotifier(lifetime time.Duration, onExpire func()) *Notifier {
	if lifetime <= 0 {
		lifetime = DefaultNotificationLifetime
	}
	return &Notifier{lifetime: lifetime, onExpire: onExpire}
}

// Notify makes msg the active notification.
func (n *Notifier) Notify(msg string, kind NotificationKind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.gen++
	gen := n.gen
	n.current = &Notification{Message: msg, Kind: kind}
	n.timer = time.AfterFunc(n.lifetime, func() { n.expire(gen) })
}

func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	if gen != n.gen || n.current == nil {
		n.mu.Unlock()
		return
	}
	n.current = nil
	n.timer = nil
	onExpire := n.onExpire
	n.mu.Unlock()

	if onExpire != nil {
		onExpire()
	}
}

// Current returns the active notification.
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}

// Stop cancels the pending expiry and clears the slot.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
	n.current = nil
}
