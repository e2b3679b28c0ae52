// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rotation_test

import (
	"sync"
	"time"

	"github.com/joycdecor/joycdecor/internal/console/rotation"
)

// manualClock fires timers only when Advance moves time past their deadline.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock    *manualClock
	deadline time.Duration
	callback func()
	done     bool
}

func (timer *manualTimer) Stop() bool {
	timer.clock.mu.Lock()
	defer timer.clock.mu.Unlock()
	if timer.done {
		return false
	}
	timer.done = true
	return true
}

func (clock *manualClock) AfterFunc(delay time.Duration, callback func()) rotation.Timer {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	timer := &manualTimer{clock: clock, deadline: clock.now + delay, callback: callback}
	clock.timers = append(clock.timers, timer)
	return timer
}

// Advance moves time forward, firing due timers in deadline order. Timers
// armed by a callback fire too if they fall inside the window.
func (clock *manualClock) Advance(elapsed time.Duration) {
	clock.mu.Lock()
	target := clock.now + elapsed
	clock.mu.Unlock()

	for {
		clock.mu.Lock()
		var next *manualTimer
		for _, timer := range clock.timers {
			if !timer.done && timer.deadline <= target && (next == nil || timer.deadline < next.deadline) {
				next = timer
			}
		}
		if next == nil {
			clock.now = target
			clock.mu.Unlock()
			return
		}
		next.done = true
		clock.now = next.deadline
		clock.mu.Unlock()

		next.callback()
	}
}

// Pending counts armed timers.
func (clock *manualClock) Pending() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	pending := 0
	for _, timer := range clock.timers {
		if !timer.done {
			pending++
		}
	}
	return pending
}

// fakePlayer records calls and can refuse playback.
type fakePlayer struct {
	plays   int
	pauses  int
	muted   bool
	refuses error
}

func (player *fakePlayer) Play(muted bool) error {
	player.plays++
	player.muted = muted
	return player.refuses
}

func (player *fakePlayer) Pause() {
	player.pauses++
}
