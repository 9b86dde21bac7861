package game

import (
	"time"

	"github.com/verte-zerg/tuiracer/internal/model"
)

// TimerKind identifies a session clock.
type TimerKind int

// Timer kinds.
const (
	TimerClock TimerKind = iota
	TimerLava
	TimerReveal
)

const (
	// ClockInterval is the period of the elapsed-seconds clock.
	ClockInterval = time.Second
	// LavaInterval is the period of the lava hazard clock.
	LavaInterval = 500 * time.Millisecond
	// RevealDelay is how long the prompt stays visible in invisible mode.
	RevealDelay = 3 * time.Second
)

func (k TimerKind) String() string {
	switch k {
	case TimerClock:
		return "clock"
	case TimerLava:
		return "lava"
	case TimerReveal:
		return "reveal"
	default:
		return "unknown"
	}
}

// Timer is a request to deliver Fire after Interval. Gen ties the timer to
// the session that armed it; a timer from an older session is ignored.
type Timer struct {
	Kind     TimerKind
	Interval time.Duration
	Repeat   bool
	Gen      uint64
}

func timersFor(mode model.Mode, gen uint64) []Timer {
	timers := []Timer{{Kind: TimerClock, Interval: ClockInterval, Repeat: true, Gen: gen}}
	switch mode {
	case model.ModeLava:
		timers = append(timers, Timer{Kind: TimerLava, Interval: LavaInterval, Repeat: true, Gen: gen})
	case model.ModeInvisible:
		timers = append(timers, Timer{Kind: TimerReveal, Interval: RevealDelay, Gen: gen})
	}
	return timers
}
