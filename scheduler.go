package main

// TickToken identifies a callback scheduled on a TickSource. The zero
// token is never issued.
type TickToken uint64

// TickSource runs callbacks on the next display refresh.
type TickSource interface {
	Schedule(cb func()) TickToken
	Cancel(token TickToken)
}

// FrameClock is a TickSource driven by the window loop calling Tick once
// per refresh. Everything runs on the loop's goroutine.
type FrameClock struct {
	next    TickToken
	order   []TickToken
	pending map[TickToken]func()
}

func NewFrameClock() *FrameClock {
	return &FrameClock{pending: make(map[TickToken]func())}
}

func (c *FrameClock) Schedule(cb func()) TickToken {
	c.next++
	c.pending[c.next] = cb
	c.order = append(c.order, c.next)
	return c.next
}

// Cancel drops a scheduled callback. Unknown or already fired tokens
// are ignored.
func (c *FrameClock) Cancel(token TickToken) {
	delete(c.pending, token)
}

func (c *FrameClock) Pending() bool {
	return len(c.pending) > 0
}

// Tick runs the callbacks scheduled before it was called, in scheduling
// order. Callbacks scheduled while ticking wait for the next tick.
func (c *FrameClock) Tick() int {
	due := c.order
	c.order = nil
	fired := 0
	for _, token := range due {
		cb, ok := c.pending[token]
		if !ok {
			continue
		}
		delete(c.pending, token)
		cb()
		fired++
	}
	return fired
}

type FrameState int

const (
	FrameIdle FrameState = iota
	FramePending
)

func (s FrameState) String() string {
	if s == FramePending {
		return "Pending"
	}
	return "Idle"
}

// FrameScheduler coalesces redraw requests into at most one redraw per
// tick. At most one token is live at any time.
type FrameScheduler struct {
	ticks  TickSource
	redraw func()
	state  FrameState
	token  TickToken
}

func NewFrameScheduler(ticks TickSource, redraw func()) *FrameScheduler {
	return &FrameScheduler{ticks: ticks, redraw: redraw}
}

func (s *FrameScheduler) State() FrameState {
	return s.state
}

// RequestFrame supersedes any pending redraw with a new one.
func (s *FrameScheduler) RequestFrame() {
	if s.state == FramePending {
		s.ticks.Cancel(s.token)
	}
	s.token = s.ticks.Schedule(s.fire)
	s.state = FramePending
}

func (s *FrameScheduler) fire() {
	fired := s.token
	s.redraw()
	// a request made by the redraw itself stays pending
	if s.token == fired {
		s.token = 0
		s.state = FrameIdle
	}
}

// Cancel drops a pending redraw, if any.
func (s *FrameScheduler) Cancel() {
	if s.state == FramePending {
		s.ticks.Cancel(s.token)
		s.token = 0
		s.state = FrameIdle
	}
}
