// internal/game/types.go
//
// Core type definitions for the number-guessing engine.
// Defines:
//   - State: where a session sits in its lifecycle.
//   - Kind: what a single controller operation did.
//   - Change: the description of a transition, consumed by the renderer.
//   - Snapshot: a read-only copy of the session for rendering/debugging.

package game

// State is the lifecycle position of a game session.
//   - "awaiting": fresh session, size may still change.
//   - "playing":  at least one non-winning guess made, size frozen.
//   - "won":      target matched, terminal until reset.
type State string

const (
	StateAwaiting State = "awaiting"
	StatePlaying  State = "playing"
	StateWon      State = "won"
)

// Kind classifies a Change. It doubles as the feedback category
// shown to the player (start/higher/lower/win).
type Kind string

const (
	KindStart   Kind = "start"
	KindHigher  Kind = "higher"
	KindLower   Kind = "lower"
	KindWin     Kind = "win"
	KindIgnored Kind = "ignored"
)

// Change describes the outcome of one controller operation.
type Change struct {
	Kind       Kind  // What happened.
	Number     int   // The guessed number (the target on a win); 0 for start.
	Eliminated []int // Numbers newly eliminated by this change, ascending.
	State      State // Session state after the change.
	Guesses    int   // Guess count after the change.
	Max        int   // Session size after the change.
}

// Accepted reports whether the operation altered the session.
func (c Change) Accepted() bool { return c.Kind != KindIgnored }

// Snapshot is a copy of the session taken under the caller's control.
// Out is indexed by number (index 0 unused); Out[n] is true once n is
// no longer selectable.
type Snapshot struct {
	Target  int
	Max     int
	Guesses int
	State   State
	Matched int  // The matched number once won, else 0.
	Last    Kind // Kind of the last accepted change.
	LastNum int  // Number of the last accepted change.
	Out     []bool
}

// Selectable reports whether n can still be guessed.
func (s Snapshot) Selectable(n int) bool {
	if s.State == StateWon || n < MinNumber || n > s.Max {
		return false
	}
	return !s.Out[n]
}
