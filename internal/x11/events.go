package x11

import (
	"context"
	"sync"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// eventMask is selected on every window.
const eventMask = xproto.EventMaskExposure |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow

// eventQueue buffers events between the reader and the dispatcher.
type eventQueue struct {
	mu     sync.Mutex
	events []xgb.Event
}

func (q *eventQueue) push(ev xgb.Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// drain returns everything queued so far and empties the queue.
func (q *eventQueue) drain() []xgb.Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	batch := q.events
	q.events = nil
	return batch
}

// mapWaiter tracks the two conditions a map handshake waits for.
type mapWaiter struct {
	mapped  bool
	exposed bool
	done    chan struct{}
}

// expectMap registers a handshake for id. It must be called before the map
// request is sent.
func (c *Connection) expectMap(id xproto.Window) <-chan struct{} {
	c.waitMu.Lock()
	defer c.waitMu.Unlock()
	mw := &mapWaiter{done: make(chan struct{})}
	c.waiters[id] = mw
	return mw.done
}

// cancelMap releases anyone waiting on the handshake for id.
func (c *Connection) cancelMap(id xproto.Window) {
	c.waitMu.Lock()
	defer c.waitMu.Unlock()
	if mw, ok := c.waiters[id]; ok {
		close(mw.done)
		delete(c.waiters, id)
	}
}

func (c *Connection) noteMap(id xproto.Window, mapped, exposed bool) {
	c.waitMu.Lock()
	defer c.waitMu.Unlock()
	mw, ok := c.waiters[id]
	if !ok {
		return
	}
	mw.mapped = mw.mapped || mapped
	mw.exposed = mw.exposed || exposed
	if mw.mapped && mw.exposed {
		close(mw.done)
		delete(c.waiters, id)
	}
}

// read pulls events off the wire until the connection is closed. Handshake
// bookkeeping happens here so a map wait never depends on the dispatcher.
func (c *Connection) read() {
	defer close(c.readerDone)
	defer close(c.closed)

	conn := c.XUtil.Conn()
	for {
		ev, xerr := conn.WaitForEvent()
		if ev == nil && xerr == nil {
			return
		}
		if xerr != nil {
			c.log.Debug("x11 error", "error", xerr)
			continue
		}

		switch e := ev.(type) {
		case xproto.MapNotifyEvent:
			c.noteMap(e.Window, true, false)
		case xproto.ExposeEvent:
			c.noteMap(e.Window, false, true)
		case xproto.MappingNotifyEvent:
			c.keys.refresh()
			continue
		}
		c.queue.push(ev)
	}
}

// dispatch delivers queued events every poll interval until ctx is cancelled.
func (c *Connection) dispatch(ctx context.Context) {
	defer close(c.dispatchDone)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.deliver(c.queue.drain())
		}
	}
}

func (c *Connection) deliver(batch []xgb.Event) {
	for _, g := range coalesce(batch) {
		if w := c.lookup(g.window); w != nil {
			c.deliverGroup(w, g)
		}
	}
}

func (c *Connection) deliverGroup(w *Window, g eventGroup) {
	// A panicking callback must not take the dispatcher down.
	defer func() {
		if err := recover(); err != nil {
			c.log.Error("event dispatch panic recovered", "window", g.window, "error", err)
		}
	}()

	w.dispatchMu.Lock()
	defer w.dispatchMu.Unlock()
	if w.state.Hidden() {
		return
	}
	w.handle(g)
}

type eventClass int

const (
	classClientMessage eventClass = iota
	classConfigure
	classExpose
	classButtonPress
	classButtonRelease
	classKeyPress
	classKeyRelease
	classEnter
	classLeave
	classMotion
)

// coalesces reports whether later events of the class are folded into the
// first one of the same window.
func (k eventClass) coalesces() bool {
	switch k {
	case classClientMessage, classKeyPress, classKeyRelease:
		return false
	}
	return true
}

// opposite returns the class whose arrival ends a group of class k.
func (k eventClass) opposite() (eventClass, bool) {
	switch k {
	case classButtonPress:
		return classButtonRelease, true
	case classButtonRelease:
		return classButtonPress, true
	}
	return 0, false
}

// eventGroup is one delivery: a single event, or a coalesced run of
// same-class events for one window in arrival order.
type eventGroup struct {
	window xproto.Window
	class  eventClass
	events []xgb.Event
}

func (g eventGroup) last() xgb.Event {
	return g.events[len(g.events)-1]
}

func classify(ev xgb.Event) (xproto.Window, eventClass, bool) {
	switch e := ev.(type) {
	case xproto.ClientMessageEvent:
		return e.Window, classClientMessage, true
	case xproto.ConfigureNotifyEvent:
		return e.Window, classConfigure, true
	case xproto.ExposeEvent:
		return e.Window, classExpose, true
	case xproto.ButtonPressEvent:
		return e.Event, classButtonPress, true
	case xproto.ButtonReleaseEvent:
		return e.Event, classButtonRelease, true
	case xproto.KeyPressEvent:
		return e.Event, classKeyPress, true
	case xproto.KeyReleaseEvent:
		return e.Event, classKeyRelease, true
	case xproto.EnterNotifyEvent:
		return e.Event, classEnter, true
	case xproto.LeaveNotifyEvent:
		return e.Event, classLeave, true
	case xproto.MotionNotifyEvent:
		return e.Event, classMotion, true
	}
	return 0, 0, false
}

// coalesce splits a batch into deliveries. A coalescing event absorbs every
// later event of the same class and window; the group keeps the position of
// its first event. A button press closes the open release group of its
// window and the reverse, so the last delivery carries the latest buttons.
func coalesce(batch []xgb.Event) []eventGroup {
	type key struct {
		window xproto.Window
		class  eventClass
	}

	groups := make([]eventGroup, 0, len(batch))
	open := make(map[key]int)
	for _, ev := range batch {
		win, class, ok := classify(ev)
		if !ok {
			continue
		}
		if other, ok := class.opposite(); ok {
			delete(open, key{win, other})
		}
		if class.coalesces() {
			k := key{win, class}
			if i, seen := open[k]; seen {
				groups[i].events = append(groups[i].events, ev)
				continue
			}
			open[k] = len(groups)
		}
		groups = append(groups, eventGroup{window: win, class: class, events: []xgb.Event{ev}})
	}
	return groups
}
