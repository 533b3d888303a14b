package main

import "testing"

func TestFrameClock_Tick(t *testing.T) {
	clock := NewFrameClock()
	var order []int
	clock.Schedule(func() { order = append(order, 1) })
	tok := clock.Schedule(func() { order = append(order, 2) })
	clock.Schedule(func() { order = append(order, 3) })
	clock.Cancel(tok)
	if !clock.Pending() {
		t.Fatal("clock not pending")
	}
	if n := clock.Tick(); n != 2 {
		t.Errorf("Tick fired %d", n)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Errorf("order = %v", order)
	}
	if clock.Pending() {
		t.Error("clock still pending")
	}
	if n := clock.Tick(); n != 0 {
		t.Errorf("idle Tick fired %d", n)
	}
}

func TestFrameClock_ScheduleDuringTick(t *testing.T) {
	clock := NewFrameClock()
	ran := 0
	clock.Schedule(func() {
		clock.Schedule(func() { ran++ })
	})
	clock.Tick()
	if ran != 0 {
		t.Fatal("callback scheduled during a tick ran in the same tick")
	}
	clock.Tick()
	if ran != 1 {
		t.Errorf("ran = %d", ran)
	}
}

func TestFrameScheduler_Coalesces(t *testing.T) {
	clock := NewFrameClock()
	redraws := 0
	s := NewFrameScheduler(clock, func() { redraws++ })
	if s.State() != FrameIdle {
		t.Fatalf("initial state %v", s.State())
	}
	for range 10 {
		s.RequestFrame()
	}
	if s.State() != FramePending {
		t.Fatalf("state %v after requests", s.State())
	}
	if n := clock.Tick(); n != 1 {
		t.Errorf("Tick fired %d callbacks", n)
	}
	if redraws != 1 {
		t.Errorf("redraws = %d", redraws)
	}
	if s.State() != FrameIdle {
		t.Errorf("state %v after tick", s.State())
	}
	clock.Tick()
	if redraws != 1 {
		t.Errorf("redraws = %d after idle tick", redraws)
	}
}

func TestFrameScheduler_AtMostOneToken(t *testing.T) {
	clock := NewFrameClock()
	s := NewFrameScheduler(clock, func() {})
	for range 5 {
		s.RequestFrame()
		if n := len(clock.pending); n != 1 {
			t.Fatalf("%d callbacks pending", n)
		}
	}
}

func TestFrameScheduler_RequestDuringRedraw(t *testing.T) {
	clock := NewFrameClock()
	var s *FrameScheduler
	redraws := 0
	s = NewFrameScheduler(clock, func() {
		redraws++
		if redraws == 1 {
			s.RequestFrame()
		}
	})
	s.RequestFrame()
	clock.Tick()
	if s.State() != FramePending {
		t.Fatalf("state %v, want the request from the redraw kept", s.State())
	}
	clock.Tick()
	if redraws != 2 || s.State() != FrameIdle {
		t.Errorf("redraws = %d, state %v", redraws, s.State())
	}
}

func TestFrameScheduler_Cancel(t *testing.T) {
	clock := NewFrameClock()
	redraws := 0
	s := NewFrameScheduler(clock, func() { redraws++ })
	s.Cancel()
	s.RequestFrame()
	s.Cancel()
	clock.Tick()
	if redraws != 0 || s.State() != FrameIdle {
		t.Errorf("redraws = %d, state %v", redraws, s.State())
	}
}
