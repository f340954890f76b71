package render

import (
	"testing"

	"github.com/robalobadob/pokeguess/internal/game"
)

func TestFullFreshSession(t *testing.T) {
	c := game.NewController(50, game.Fixed(7))
	v := Full(c.Snapshot())

	if !v.Full || len(v.Cells) != 50 {
		t.Fatalf("Full: full=%v cells=%d", v.Full, len(v.Cells))
	}
	if v.Feedback.Text != "Pick a number between 1 and 50!" || v.Feedback.Category != game.KindStart {
		t.Fatalf("feedback = %+v", v.Feedback)
	}
	if v.Counter != "Guesses: 0" || v.Slider.Disabled || !v.Overlay.Hidden {
		t.Fatalf("frame = %+v", v)
	}
	if v.Title != "Poké Guess 1–50" || v.GridLabel != "Number choices from 1 to 50" {
		t.Fatalf("title=%q gridLabel=%q", v.Title, v.GridLabel)
	}
	for i, cl := range v.Cells {
		if cl.Number != i+1 || !cl.Enabled || cl.Category != CellDefault {
			t.Fatalf("cell %d = %+v", i, cl)
		}
	}
	if v.Cells[0].Label != "Guess number 1" || v.Cells[1].Hue != 26 {
		t.Fatalf("cell decoration = %+v", v.Cells[:2])
	}
}

func TestPatchMiss(t *testing.T) {
	c := game.NewController(50, game.Fixed(7))
	ch := c.Guess(25)
	v := Patch(c.Snapshot(), ch)

	if v.Full {
		t.Fatal("miss produced a full view")
	}
	if len(v.Cells) != 26 {
		t.Fatalf("cells = %d, want 26", len(v.Cells))
	}
	for _, cl := range v.Cells {
		if cl.Enabled || cl.Category != CellEliminated {
			t.Fatalf("cell %+v should be eliminated", cl)
		}
	}
	if v.Feedback.Text != "Lower! ⬇️" || v.Counter != "Guesses: 1" || !v.Slider.Disabled {
		t.Fatalf("frame = %+v", v)
	}

	ch = c.Guess(3)
	v = Patch(c.Snapshot(), ch)
	if v.Feedback.Category != game.KindHigher || v.Feedback.Text != "Higher! ⬆️" {
		t.Fatalf("feedback = %+v", v.Feedback)
	}
}

func TestPatchWin(t *testing.T) {
	c := game.NewController(10, game.Fixed(4))
	ch := c.Guess(4)
	v := Patch(c.Snapshot(), ch)

	if v.Feedback.Text != "You got it! 4 is correct!" || v.State != game.StateWon {
		t.Fatalf("frame = %+v", v)
	}
	if v.Overlay.Hidden || v.Overlay.Text != "The number was 4. You did it in 1 guess!" {
		t.Fatalf("overlay = %+v", v.Overlay)
	}
	var correct int
	for _, cl := range v.Cells {
		if cl.Enabled {
			t.Fatalf("cell %d still enabled", cl.Number)
		}
		if cl.Category == CellCorrect {
			correct++
			if cl.Number != 4 {
				t.Fatalf("wrong correct cell %d", cl.Number)
			}
		}
	}
	if correct != 1 || len(v.Cells) != 10 {
		t.Fatalf("correct=%d cells=%d", correct, len(v.Cells))
	}
}

func TestPatchStartIsFull(t *testing.T) {
	c := game.NewController(10, game.Fixed(4))
	c.Guess(4)
	ch := c.Reset()
	v := Patch(c.Snapshot(), ch)
	if !v.Full || len(v.Cells) != 10 || !v.Overlay.Hidden {
		t.Fatalf("reset view = %+v", v)
	}
	if v.State != game.StateAwaiting || v.Guesses != 0 || v.Feedback.Category != game.KindStart {
		t.Fatalf("reset view = %+v", v)
	}
}

func TestWinTextPlural(t *testing.T) {
	if got := WinText(12, 5); got != "The number was 12. You did it in 5 guesses!" {
		t.Fatalf("WinText = %q", got)
	}
}
