// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package rotation drives which media of a catalog item is on screen.

A [Rotator] owns the state of one rendered item: the current position in the
media timeline, whether a video is playing and whether the advance timer is
armed. It advances on a fixed interval, yields to manual navigation for a
quiet period, hands control to video playback and reacts to the item entering
or leaving the viewport.

# Timers

Each Rotator holds at most one timer per purpose (tick, resume, video end).
Arming a timer cancels the previous one of the same purpose, and every
callback carries a generation number so a fire that raced with a cancel is
discarded. Callbacks and public methods serialize on one mutex; they may
interleave but never overlap.

# Variants

[Gallery] cards resume rotation after [Options.QuietPeriod]. [Detail] views
list videos first and stop auto-advance for good after the first manual
navigation or thumbnail selection.
*/
package rotation

import (
	"sync"
	"time"

	"github.com/joycdecor/joycdecor/internal/core/catalog"
)

// # Configuration

// Variant selects the gallery-card or detail-view behavior.
type Variant int

const (
	// Gallery resumes auto-rotation after a quiet period.
	Gallery Variant = iota
	// Detail disables auto-rotation after any manual navigation.
	Detail
)

// Ordering returns the media timeline order the variant displays.
func (variant Variant) Ordering() catalog.Ordering {
	if variant == Detail {
		return catalog.VideosFirst
	}
	return catalog.ImagesFirst
}

const (
	DefaultInterval       = 4 * time.Second
	DefaultDetailInterval = 5 * time.Second
	DefaultQuietPeriod    = 10 * time.Second
	DefaultEndDelay       = 1 * time.Second
)

// Options configures a [Rotator]. Zero durations take the defaults.
type Options struct {
	Variant     Variant
	Interval    time.Duration
	QuietPeriod time.Duration
	EndDelay    time.Duration
	Clock       Clock

	// OnChange receives a snapshot after every state transition. It runs
	// outside the Rotator's lock and may call Snapshot but should not block.
	OnChange func(Snapshot)
}

func (options Options) withDefaults() Options {
	if options.Interval <= 0 {
		options.Interval = DefaultInterval
		if options.Variant == Detail {
			options.Interval = DefaultDetailInterval
		}
	}
	if options.QuietPeriod <= 0 {
		options.QuietPeriod = DefaultQuietPeriod
	}
	if options.EndDelay <= 0 {
		options.EndDelay = DefaultEndDelay
	}
	if options.Clock == nil {
		options.Clock = SystemClock()
	}
	return options
}

// Player is the video element bound to a Rotator.
type Player interface {
	// Play starts playback. Autoplay policies may refuse it with an error.
	Play(muted bool) error
	Pause()
}

// # State

// Snapshot is a read-only view of a Rotator.
type Snapshot struct {
	// Index is -1 when the timeline is empty.
	Index        int               `json:"index"`
	Total        int               `json:"total"`
	Media        *catalog.MediaRef `json:"media,omitempty"`
	Playing      bool              `json:"playing"`
	AutoRotating bool              `json:"autoRotating"`
	// Locked is set once a detail view has disabled auto-advance.
	Locked bool `json:"locked"`
}

// Move is a navigation request: one step forward, one back, or a jump.
type Move struct {
	step     int
	index    int
	absolute bool
}

var (
	// Next moves forward, wrapping to the first media.
	Next = Move{step: 1}
	// Prev moves backward, wrapping to the last media.
	Prev = Move{step: -1}
)

// To jumps to an explicit timeline position.
func To(index int) Move {
	return Move{index: index, absolute: true}
}

// timerSlot is one cancellable purpose-specific timer.
type timerSlot struct {
	timer      Timer
	generation uint64
}

// cancel stops the pending timer and invalidates any fire already in flight.
func (slot *timerSlot) cancel() {
	if slot.timer != nil {
		slot.timer.Stop()
		slot.timer = nil
	}
	slot.generation++
}

// Rotator is the rotation state machine for one rendered item.
type Rotator struct {
	mu       sync.Mutex
	options  Options
	timeline []catalog.MediaRef
	player   Player

	index        int
	playing      bool
	autoRotating bool
	locked       bool
	closed       bool

	tick   timerSlot
	resume timerSlot
	ended  timerSlot
}

// New builds a Rotator over a media timeline. It does not start rotating.
func New(timeline []catalog.MediaRef, player Player, options Options) *Rotator {
	return &Rotator{
		options:  options.withDefaults(),
		timeline: append([]catalog.MediaRef(nil), timeline...),
		player:   player,
	}
}

// # Automatic Rotation

/*
Start arms the advance timer.

It is a no-op when the timeline holds one entry or none, after a detail view
was locked, or once the Rotator is closed. Starting again replaces the
running timer.
*/
func (rotator *Rotator) Start() {
	rotator.mu.Lock()
	rotator.startLocked()
	rotator.unlockAndNotify()
}

// Stop cancels automatic advance and any scheduled resumption, including the
// step pending after a video ended. Idempotent.
func (rotator *Rotator) Stop() {
	rotator.mu.Lock()
	rotator.haltLocked()
	rotator.unlockAndNotify()
}

func (rotator *Rotator) startLocked() {
	if len(rotator.timeline) <= 1 || rotator.locked || rotator.closed {
		return
	}

	rotator.tick.cancel()
	generation := rotator.tick.generation
	rotator.tick.timer = rotator.options.Clock.AfterFunc(rotator.options.Interval, func() {
		rotator.onTick(generation)
	})
	rotator.autoRotating = true
}

// haltLocked stops the tick, any pending quiet-period resumption and any
// advance scheduled by the end of a video.
func (rotator *Rotator) haltLocked() {
	rotator.tick.cancel()
	rotator.resume.cancel()
	rotator.ended.cancel()
	rotator.autoRotating = false
}

func (rotator *Rotator) onTick(generation uint64) {
	rotator.mu.Lock()
	if generation != rotator.tick.generation || rotator.closed {
		rotator.mu.Unlock()
		return
	}

	rotator.pauseLocked()
	rotator.index = (rotator.index + 1) % len(rotator.timeline)
	rotator.startLocked()
	rotator.unlockAndNotify()
}

// # Manual Navigation

/*
Navigate moves to another media and reports whether the position changed.

Automatic advance stops and a playing video is paused. Gallery cards resume
rotating after the quiet period, replacing any resumption scheduled by an
earlier navigation; detail views stay still. An out-of-range jump is ignored.
*/
func (rotator *Rotator) Navigate(move Move) bool {
	rotator.mu.Lock()

	total := len(rotator.timeline)
	if total <= 1 || rotator.closed {
		rotator.mu.Unlock()
		return false
	}

	target := (rotator.index + move.step + total) % total
	if move.absolute {
		if move.index < 0 || move.index >= total {
			rotator.mu.Unlock()
			return false
		}
		target = move.index
	}

	rotator.haltLocked()
	rotator.pauseLocked()
	rotator.index = target

	if rotator.options.Variant == Detail {
		rotator.locked = true
	} else {
		rotator.scheduleResumeLocked(rotator.options.QuietPeriod)
	}

	rotator.unlockAndNotify()
	return true
}

// Select is a thumbnail click. It behaves like Navigate(To(index)).
func (rotator *Rotator) Select(index int) bool {
	return rotator.Navigate(To(index))
}

func (rotator *Rotator) scheduleResumeLocked(delay time.Duration) {
	rotator.resume.cancel()
	generation := rotator.resume.generation
	rotator.resume.timer = rotator.options.Clock.AfterFunc(delay, func() {
		rotator.mu.Lock()
		if generation != rotator.resume.generation || rotator.playing {
			rotator.mu.Unlock()
			return
		}
		rotator.resume.timer = nil
		rotator.startLocked()
		rotator.unlockAndNotify()
	})
}

// # Video Playback

/*
ToggleVideoPlayback plays or pauses the current video.

Starting playback stops rotation; pausing resumes it unless a detail view is
locked. If the player refuses to start, the Rotator stays "not playing",
rotation resumes and the player error is returned. It does nothing when the
current media is an image or no player is bound.
*/
func (rotator *Rotator) ToggleVideoPlayback() error {
	rotator.mu.Lock()

	if !rotator.currentIsVideoLocked() || rotator.player == nil || rotator.closed {
		rotator.mu.Unlock()
		return nil
	}

	if rotator.playing {
		rotator.pauseLocked()
		rotator.startLocked()
		rotator.unlockAndNotify()
		return nil
	}

	rotator.haltLocked()
	err := rotator.player.Play(false)
	if err != nil {
		rotator.startLocked()
	} else {
		rotator.playing = true
	}

	rotator.unlockAndNotify()
	return err
}

/*
OnVideoEnded reacts to the natural end of playback.

The playing flag clears at once. After [Options.EndDelay] the Rotator moves
one position forward and resumes rotation.
*/
func (rotator *Rotator) OnVideoEnded() {
	rotator.mu.Lock()
	if rotator.closed || len(rotator.timeline) == 0 {
		rotator.mu.Unlock()
		return
	}

	rotator.playing = false
	rotator.haltLocked()

	generation := rotator.ended.generation
	rotator.ended.timer = rotator.options.Clock.AfterFunc(rotator.options.EndDelay, func() {
		rotator.mu.Lock()
		if generation != rotator.ended.generation || rotator.closed {
			rotator.mu.Unlock()
			return
		}
		rotator.ended.timer = nil
		rotator.index = (rotator.index + 1) % len(rotator.timeline)
		rotator.startLocked()
		rotator.unlockAndNotify()
	})

	rotator.unlockAndNotify()
}

/*
SetVisible couples playback to the viewport.

Entering with a video on screen pauses rotation and tries muted playback. A
refused autoplay is not an error: the Rotator records "not playing" and goes
back to rotating. Leaving pauses a playing video and resumes rotation.
*/
func (rotator *Rotator) SetVisible(visible bool) {
	rotator.mu.Lock()
	if rotator.closed {
		rotator.mu.Unlock()
		return
	}

	if visible {
		if rotator.currentIsVideoLocked() && rotator.player != nil && !rotator.playing {
			rotator.haltLocked()
			if err := rotator.player.Play(true); err != nil {
				rotator.playing = false
				rotator.startLocked()
			} else {
				rotator.playing = true
			}
		}
	} else if rotator.playing {
		rotator.pauseLocked()
		rotator.startLocked()
	}

	rotator.unlockAndNotify()
}

// BindPlayer swaps the video element, pausing the previous one if it was playing.
func (rotator *Rotator) BindPlayer(player Player) {
	rotator.mu.Lock()
	rotator.pauseLocked()
	rotator.player = player
	rotator.unlockAndNotify()
}

// pauseLocked pauses the bound video if it is playing.
func (rotator *Rotator) pauseLocked() {
	if rotator.playing && rotator.player != nil {
		rotator.player.Pause()
	}
	rotator.playing = false
}

func (rotator *Rotator) currentIsVideoLocked() bool {
	return len(rotator.timeline) > 0 && rotator.timeline[rotator.index].IsVideo()
}

// # Lifecycle

// Close cancels every timer and releases the video binding. Later calls on
// the Rotator are no-ops.
func (rotator *Rotator) Close() {
	rotator.mu.Lock()
	defer rotator.mu.Unlock()

	rotator.haltLocked()
	rotator.pauseLocked()
	rotator.player = nil
	rotator.closed = true
}

// Snapshot returns the current state.
func (rotator *Rotator) Snapshot() Snapshot {
	rotator.mu.Lock()
	defer rotator.mu.Unlock()
	return rotator.snapshotLocked()
}

func (rotator *Rotator) snapshotLocked() Snapshot {
	snapshot := Snapshot{
		Index:        -1,
		Total:        len(rotator.timeline),
		Playing:      rotator.playing,
		AutoRotating: rotator.autoRotating,
		Locked:       rotator.locked,
	}
	if len(rotator.timeline) > 0 {
		media := rotator.timeline[rotator.index]
		snapshot.Index = rotator.index
		snapshot.Media = &media
	}
	return snapshot
}

// unlockAndNotify releases the lock, then hands a snapshot to OnChange.
func (rotator *Rotator) unlockAndNotify() {
	observer := rotator.options.OnChange
	if observer == nil || rotator.closed {
		rotator.mu.Unlock()
		return
	}
	snapshot := rotator.snapshotLocked()
	rotator.mu.Unlock()
	observer(snapshot)
}
