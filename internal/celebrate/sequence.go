// internal/celebrate/sequence.go
//
// Win celebration as data: a short list of visual effects, each with an
// offset from the moment the game was won. The page draws them; the game
// never reads them back.
//
// Timeline:
//   0ms     overlay shown, confetti launched, flyer starts its fly-by
//   3600ms  flyer hidden
//   4200ms  confetti cleared

package celebrate

import (
	"math/rand/v2"
	"time"
)

// Kind names a visual effect.
type Kind string

const (
	KindOverlayShow   Kind = "overlay-show"
	KindOverlayHide   Kind = "overlay-hide"
	KindConfetti      Kind = "confetti-launch"
	KindConfettiClear Kind = "confetti-clear"
	KindFlyer         Kind = "flyer-start"
	KindFlyerHide     Kind = "flyer-hide"
)

const (
	ConfettiPieces  = 120
	FlyerHideAt     = 3600 * time.Millisecond
	ConfettiClearAt = 4200 * time.Millisecond

	// FlyerAnimation is the CSS animation shorthand for the fly-by followed
	// by the rampage.
	FlyerAnimation = "charizard-fly 1200ms ease-in 1, charizard-rampage 2400ms ease-in-out 1 1100ms"
)

// Palette is cycled through by confetti pieces.
var Palette = []string{"#ff2f48", "#ff9f0a", "#ffcc00", "#34c759", "#007aff", "#af52de"}

// Piece is one confetti square. Left is a fraction of the viewport width;
// sizes are in px and times in seconds.
type Piece struct {
	Left     float64 `json:"left"`
	Color    string  `json:"color"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Delay    float64 `json:"delay"`
	Duration float64 `json:"duration"`
}

// Effect is one step of a sequence.
type Effect struct {
	Kind      Kind          `json:"kind"`
	At        time.Duration `json:"-"`
	AtMs      int64         `json:"atMs"`
	Title     string        `json:"title,omitempty"`
	Text      string        `json:"text,omitempty"`
	Number    int           `json:"number,omitempty"`
	Guesses   int           `json:"guesses,omitempty"`
	Animation string        `json:"animation,omitempty"`
	Pieces    []Piece       `json:"pieces,omitempty"`
}

func at(e Effect, d time.Duration) Effect {
	e.At = d
	e.AtMs = d.Milliseconds()
	return e
}

// Win builds the celebration for a matched number. rnd may be nil.
func Win(number, guesses int, title, text string, rnd *rand.Rand) []Effect {
	return []Effect{
		at(Effect{Kind: KindOverlayShow, Title: title, Text: text, Number: number, Guesses: guesses}, 0),
		at(Effect{Kind: KindConfetti, Pieces: Confetti(rnd)}, 0),
		at(Effect{Kind: KindFlyer, Animation: FlyerAnimation}, 0),
		at(Effect{Kind: KindFlyerHide}, FlyerHideAt),
		at(Effect{Kind: KindConfettiClear}, ConfettiClearAt),
	}
}

// Clear undoes every visible effect immediately.
func Clear() []Effect {
	return []Effect{
		at(Effect{Kind: KindOverlayHide}, 0),
		at(Effect{Kind: KindConfettiClear}, 0),
		at(Effect{Kind: KindFlyerHide}, 0),
	}
}

// Confetti generates a burst of pieces.
func Confetti(rnd *rand.Rand) []Piece {
	f := rand.Float64
	if rnd != nil {
		f = rnd.Float64
	}
	out := make([]Piece, ConfettiPieces)
	for i := range out {
		size := 8 + f()*10
		out[i] = Piece{
			Left:     f(),
			Color:    Palette[i%len(Palette)],
			Width:    size,
			Height:   size * 1.3,
			Delay:    f() * 0.7,
			Duration: 2 + f()*1.8,
		}
	}
	return out
}
