// Package render turns game snapshots and changes into the view model the
// page applies. It holds no state; every function is a pure mapping.
package render

import (
	"strconv"

	"github.com/robalobadob/pokeguess/internal/game"
)

// CellCategory is the visual class of a number button.
type CellCategory string

const (
	CellDefault    CellCategory = "default"
	CellEliminated CellCategory = "out"
	CellCorrect    CellCategory = "correct"
)

// Cell is one number button.
type Cell struct {
	Number   int          `json:"n"`
	Enabled  bool         `json:"enabled"`
	Category CellCategory `json:"category"`
	Label    string       `json:"label"`
	Hue      int          `json:"hue"`
}

// Feedback is the hint line.
type Feedback struct {
	Text     string    `json:"text"`
	Category game.Kind `json:"category"`
}

// Slider is the size control. It is only enabled before the first guess.
type Slider struct {
	Value    int  `json:"value"`
	Min      int  `json:"min"`
	Max      int  `json:"max"`
	Disabled bool `json:"disabled"`
}

// Overlay is the win dialog.
type Overlay struct {
	Hidden bool   `json:"hidden"`
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
}

// View is what the page needs to draw. When Full is false, Cells holds
// only the buttons that changed.
type View struct {
	Full      bool       `json:"full"`
	Title     string     `json:"title"`
	GridLabel string     `json:"gridLabel"`
	Feedback  Feedback   `json:"feedback"`
	Counter   string     `json:"counter"`
	Guesses   int        `json:"guesses"`
	State     game.State `json:"state"`
	Max       int        `json:"max"`
	Cells     []Cell     `json:"cells"`
	Slider    Slider     `json:"slider"`
	Overlay   Overlay    `json:"overlay"`
}

// Full renders the whole page state from a snapshot.
func Full(s game.Snapshot) View {
	v := frame(s)
	v.Full = true
	v.Cells = make([]Cell, 0, s.Max)
	for n := game.MinNumber; n <= s.Max; n++ {
		v.Cells = append(v.Cells, cell(s, n))
	}
	return v
}

// Patch renders the result of a change. A start change yields a full
// view because the grid is rebuilt; a guess yields only the touched cells.
func Patch(s game.Snapshot, ch game.Change) View {
	if ch.Kind == game.KindStart {
		return Full(s)
	}
	v := frame(s)
	v.Cells = make([]Cell, 0, len(ch.Eliminated)+1)
	for _, n := range ch.Eliminated {
		v.Cells = append(v.Cells, cell(s, n))
	}
	if ch.Kind == game.KindWin {
		v.Cells = append(v.Cells, cell(s, ch.Number))
	}
	return v
}

func frame(s game.Snapshot) View {
	max := strconv.Itoa(s.Max)
	return View{
		Title:     "Poké Guess 1–" + max,
		GridLabel: "Number choices from " + strconv.Itoa(game.MinNumber) + " to " + max,
		Feedback:  FeedbackFor(s.Last, s.LastNum, s.Max),
		Counter:   CounterText(s.Guesses),
		Guesses:   s.Guesses,
		State:     s.State,
		Max:       s.Max,
		Slider: Slider{
			Value:    s.Max,
			Min:      game.LowestMax,
			Max:      game.HighestMax,
			Disabled: s.Guesses > 0,
		},
		Overlay: OverlayFor(s),
	}
}

func cell(s game.Snapshot, n int) Cell {
	c := Cell{
		Number:   n,
		Enabled:  s.Selectable(n),
		Category: CellDefault,
		Label:    "Guess number " + strconv.Itoa(n),
		Hue:      Hue(n),
	}
	switch {
	case s.State == game.StateWon && n == s.Matched:
		c.Category = CellCorrect
	case s.Out[n]:
		c.Category = CellEliminated
	}
	return c
}

// Hue gives each number its rainbow colour.
func Hue(n int) int { return (n * 13) % 360 }

// FeedbackFor returns the hint for the last accepted change.
func FeedbackFor(kind game.Kind, n, max int) Feedback {
	switch kind {
	case game.KindHigher:
		return Feedback{Text: "Higher! ⬆️", Category: game.KindHigher}
	case game.KindLower:
		return Feedback{Text: "Lower! ⬇️", Category: game.KindLower}
	case game.KindWin:
		return Feedback{Text: "You got it! " + strconv.Itoa(n) + " is correct!", Category: game.KindWin}
	default:
		return Feedback{
			Text:     "Pick a number between " + strconv.Itoa(game.MinNumber) + " and " + strconv.Itoa(max) + "!",
			Category: game.KindStart,
		}
	}
}

// CounterText formats the guess counter.
func CounterText(guesses int) string { return "Guesses: " + strconv.Itoa(guesses) }

// OverlayFor returns the win dialog, hidden unless the session is won.
func OverlayFor(s game.Snapshot) Overlay {
	if s.State != game.StateWon {
		return Overlay{Hidden: true}
	}
	return Overlay{
		Title: "You got it!",
		Text:  WinText(s.Matched, s.Guesses),
	}
}

// WinText is the overlay sentence with the answer and guess total.
func WinText(number, guesses int) string {
	word := "guesses"
	if guesses == 1 {
		word = "guess"
	}
	return "The number was " + strconv.Itoa(number) + ". You did it in " + strconv.Itoa(guesses) + " " + word + "!"
}
