package x11

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// stubDisplays replaces dialing and event startup for the test.
func stubDisplays(t *testing.T, open func(name string) (*Connection, error)) {
	t.Helper()
	prevOpen, prevStart := openDisplay, startEvents
	openDisplay = func(name string, _ Config) (*Connection, error) { return open(name) }
	startEvents = func(*Connection) {}
	t.Cleanup(func() {
		openDisplay, startEvents = prevOpen, prevStart
		connsMu.Lock()
		clear(conns)
		clear(dialing)
		connsMu.Unlock()
	})
}

func TestAcquireDoesNotBlockOtherDisplays(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var slowDials atomic.Int32
	stubDisplays(t, func(name string) (*Connection, error) {
		if name == ":slow" {
			if slowDials.Add(1) == 1 {
				close(entered)
			}
			<-release
		}
		return newTestConnection(), nil
	})

	var wg sync.WaitGroup
	slow := make([]*Connection, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		c, err := Acquire(Config{Display: ":slow"})
		if err != nil {
			t.Errorf("Acquire(:slow): %v", err)
		}
		slow[0] = c
	}()
	<-entered

	wg.Add(1)
	go func() {
		defer wg.Done()
		c, err := Acquire(Config{Display: ":slow"})
		if err != nil {
			t.Errorf("second Acquire(:slow): %v", err)
		}
		slow[1] = c
	}()

	fast := make(chan *Connection)
	go func() {
		c, err := Acquire(Config{Display: ":fast"})
		if err != nil {
			t.Errorf("Acquire(:fast): %v", err)
		}
		fast <- c
	}()
	select {
	case c := <-fast:
		if c == nil || c.refs != 1 {
			t.Fatalf("fast connection = %+v", c)
		}
	case <-time.After(time.Second):
		t.Fatal("Acquire on another display waited for a slow dial")
	}

	close(release)
	wg.Wait()

	if slowDials.Load() != 1 {
		t.Fatalf("slow display dialed %d times", slowDials.Load())
	}
	if slow[0] == nil || slow[0] != slow[1] || slow[0].refs != 2 {
		t.Fatalf("slow connections = %p, %p", slow[0], slow[1])
	}
}

func TestAcquireRetriesAfterFailedDial(t *testing.T) {
	attempts := 0
	stubDisplays(t, func(string) (*Connection, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("connection refused")
		}
		return newTestConnection(), nil
	})

	if _, err := Acquire(Config{Display: ":1"}); err == nil {
		t.Fatal("expected the first dial to fail")
	}
	c, err := Acquire(Config{Display: ":1"})
	if err != nil {
		t.Fatalf("second Acquire: %v", err)
	}
	if c.refs != 1 || attempts != 2 {
		t.Fatalf("refs = %d, attempts = %d", c.refs, attempts)
	}
}
