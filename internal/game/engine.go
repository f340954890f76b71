// internal/game/engine.go
//
// Core game controller for a single number-guessing session.
// Responsibilities:
//   - Start sessions with a clamped size and a uniformly drawn target.
//   - Apply guesses: range elimination on a miss, full elimination on a win.
//   - Track state transitions: awaiting → playing → won.
//   - Allow resizing only before the first guess.
//
// Notes:
//   - Invalid operations are silent: they return a KindIgnored change and
//     leave the session untouched.
//   - The controller is not safe for concurrent use; callers serialize
//     access (see internal/session).
package game

import (
	"crypto/rand"
	"math/big"
)

const (
	MinNumber  = 1
	DefaultMax = 256
	LowestMax  = 10
	HighestMax = 1024
)

// Picker returns the target for a session of the given size.
// Results outside [1, max] are clamped.
type Picker func(max int) int

// RandomPicker draws uniformly from [1, max] using crypto/rand.
// Falls back to 1 if the entropy source fails.
func RandomPicker(max int) int {
	if max <= MinNumber {
		return MinNumber
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return MinNumber
	}
	return int(nBig.Int64()) + MinNumber
}

// Fixed returns a Picker that always chooses n.
func Fixed(n int) Picker {
	return func(int) int { return n }
}

// ClampMax bounds a requested size into [LowestMax, HighestMax].
func ClampMax(n int) int {
	if n < LowestMax {
		return LowestMax
	}
	if n > HighestMax {
		return HighestMax
	}
	return n
}

// Controller owns one session and its rules.
type Controller struct {
	pick Picker

	target  int
	max     int
	guesses int
	state   State
	matched int
	out     []bool // index 1..max; true once eliminated

	last    Kind
	lastNum int
}

// NewController constructs a controller and starts a session of size max.
// A nil pick uses RandomPicker.
func NewController(max int, pick Picker) *Controller {
	if pick == nil {
		pick = RandomPicker
	}
	c := &Controller{pick: pick}
	c.Start(max)
	return c
}

// Start discards the current session and begins a new one.
func (c *Controller) Start(max int) Change {
	max = ClampMax(max)
	target := c.pick(max)
	if target < MinNumber {
		target = MinNumber
	} else if target > max {
		target = max
	}

	c.target = target
	c.max = max
	c.guesses = 0
	c.state = StateAwaiting
	c.matched = 0
	c.out = make([]bool, max+1)
	c.last, c.lastNum = KindStart, 0

	return c.change(KindStart, 0, nil)
}

// Reset restarts with the current size.
func (c *Controller) Reset() Change { return c.Start(c.max) }

// Resize restarts at a new size, but only before the first guess.
func (c *Controller) Resize(max int) Change {
	if c.guesses != 0 {
		return c.change(KindIgnored, 0, nil)
	}
	return c.Start(max)
}

// Guess applies a selection.
//
// Rules:
//   - Ignored if the session is won, n is out of range, or n is no longer selectable.
//   - n == target → won, every other number eliminated.
//   - n < target  → [1, n] eliminated, hint "higher".
//   - n > target  → [n, max] eliminated, hint "lower".
func (c *Controller) Guess(n int) Change {
	if c.state == StateWon || n < MinNumber || n > c.max || c.out[n] {
		return c.change(KindIgnored, n, nil)
	}
	c.guesses++

	var kind Kind
	var elim []int
	switch {
	case n == c.target:
		kind = KindWin
		c.state = StateWon
		c.matched = n
		elim = c.eliminate(MinNumber, c.max, n)
	case n < c.target:
		kind = KindHigher
		c.state = StatePlaying
		elim = c.eliminate(MinNumber, n, 0)
	default:
		kind = KindLower
		c.state = StatePlaying
		elim = c.eliminate(n, c.max, 0)
	}
	c.last, c.lastNum = kind, n
	return c.change(kind, n, elim)
}

// eliminate marks [lo, hi] as out, skipping keep, and returns the
// numbers that were not already out.
func (c *Controller) eliminate(lo, hi, keep int) []int {
	var fresh []int
	for n := lo; n <= hi; n++ {
		if n == keep || c.out[n] {
			continue
		}
		c.out[n] = true
		fresh = append(fresh, n)
	}
	return fresh
}

func (c *Controller) change(kind Kind, n int, elim []int) Change {
	return Change{
		Kind:       kind,
		Number:     n,
		Eliminated: elim,
		State:      c.state,
		Guesses:    c.guesses,
		Max:        c.max,
	}
}

// Snapshot copies the session.
func (c *Controller) Snapshot() Snapshot {
	out := make([]bool, len(c.out))
	copy(out, c.out)
	return Snapshot{
		Target:  c.target,
		Max:     c.max,
		Guesses: c.guesses,
		State:   c.state,
		Matched: c.matched,
		Last:    c.last,
		LastNum: c.lastNum,
		Out:     out,
	}
}

// Max returns the session size.
func (c *Controller) Max() int { return c.max }

// State returns the session state.
func (c *Controller) State() State { return c.state }
