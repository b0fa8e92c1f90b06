package graphz

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestNotifier_Expires(t *testing.T) {
	expired := make(chan struct{}, 1)
	n := NewNotifier(20*time.Millisecond, func() { expired <- struct{}{} })

	n.Notify("Bought 1 shares of AAPL", NotifySuccess)
	got, ok := n.Current()
	if !ok || got.Message != "Bought 1 shares of AAPL" || got.Kind != NotifySuccess {
		t.Fatalf("Current() = %v, %v", got, ok)
	}

	select {
	case <-expired:
	case <-time.After(time.Second):
		t.Fatal("notification did not expire")
	}
	if _, ok := n.Current(); ok {
		t.Error("Current() still returns the expired notification")
	}
}

func TestNotifier_NewerReplacesOlder(t *testing.T) {
	var expirations atomic.Int32
	n := NewNotifier(300*time.Millisecond, func() { expirations.Add(1) })

	n.Notify("first", NotifyInfo)
	time.Sleep(180 * time.Millisecond)
	n.Notify("second", NotifyError)

	// past the lifetime of the first message, within the lifetime of the second
	time.Sleep(210 * time.Millisecond)
	got, ok := n.Current()
	if !ok || got.Message != "second" {
		t.Fatalf("Current() = %v, %v, want the second message still showing", got, ok)
	}
	if c := expirations.Load(); c != 0 {
		t.Errorf("onExpire called %d times before the second message expired", c)
	}

	time.Sleep(300 * time.Millisecond)
	if _, ok := n.Current(); ok {
		t.Error("second message did not expire")
	}
	if c := expirations.Load(); c != 1 {
		t.Errorf("onExpire called %d times, want 1", c)
	}
}

func TestNotifier_Stop(t *testing.T) {
	var expirations atomic.Int32
	n := NewNotifier(10*time.Millisecond, func() { expirations.Add(1) })

	n.Notify("pending", NotifyInfo)
	n.Stop()
	if _, ok := n.Current(); ok {
		t.Error("Current() returns a notification after Stop()")
	}
	time.Sleep(30 * time.Millisecond)
	if c := expirations.Load(); c != 0 {
		t.Errorf("onExpire called %d times after Stop()", c)
	}
}

func TestNewNotifier_DefaultLifetime(t *testing.T) {
	n := NewNotifier(0, nil)
	if n.lifetime != DefaultNotificationLifetime {
		t.Errorf("lifetime = %v, want %v", n.lifetime, DefaultNotificationLifetime)
	}
}
