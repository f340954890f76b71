package session

import (
	"testing"
	"time"

	"github.com/robalobadob/pokeguess/internal/celebrate"
	"github.com/robalobadob/pokeguess/internal/game"
)

func next(t *testing.T, s *Subscriber) Message {
	t.Helper()
	select {
	case m := <-s.C():
		return m
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}
	}
}

func TestGuessPublishesView(t *testing.T) {
	p := New("p1", 50, game.Fixed(7))
	sub := p.Subscribe(64, nil)
	defer p.Unsubscribe(sub)

	out, ok := p.Guess(25)
	if !ok || out.View.Guesses != 1 || len(out.View.Cells) != 26 || out.Celebration != nil {
		t.Fatalf("Guess(25) = %+v ok=%v", out, ok)
	}
	m := next(t, sub)
	if m.Type != MessageView || m.View == nil || m.View.Feedback.Category != game.KindLower {
		t.Fatalf("message = %+v", m)
	}
}

func TestIgnoredGuessPublishesNothing(t *testing.T) {
	p := New("p1", 50, game.Fixed(7))
	p.Guess(25)
	sub := p.Subscribe(64, nil)

	if _, ok := p.Guess(30); ok {
		t.Fatal("guess of eliminated number accepted")
	}
	select {
	case m := <-sub.C():
		t.Fatalf("unexpected message %+v", m)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWinStartsCelebration(t *testing.T) {
	p := New("p1", 10, game.Fixed(3))
	sub := p.Subscribe(64, nil)

	out, ok := p.Guess(3)
	if !ok || len(out.Celebration) != 5 {
		t.Fatalf("winning guess = %+v ok=%v", out, ok)
	}
	if m := next(t, sub); m.Type != MessageView || m.View.State != game.StateWon {
		t.Fatalf("first message = %+v", m)
	}
	wantNow := []celebrate.Kind{celebrate.KindOverlayShow, celebrate.KindConfetti, celebrate.KindFlyer}
	for _, k := range wantNow {
		m := next(t, sub)
		if m.Type != MessageEffect || m.Effect.Kind != k {
			t.Fatalf("message = %+v, want effect %s", m, k)
		}
	}
	if n := p.sched.Cancel(); n != 2 {
		t.Fatalf("pending celebration steps = %d, want 2", n)
	}
}

func TestNewGameCancelsCelebration(t *testing.T) {
	p := New("p1", 10, game.Fixed(3))
	p.Guess(3)
	sub := p.Subscribe(64, nil)

	v := p.NewGame(0).View
	if !v.Full || v.Max != 10 || v.Guesses != 0 || !v.Overlay.Hidden {
		t.Fatalf("NewGame view = %+v", v)
	}
	if m := next(t, sub); m.Type != MessageView {
		t.Fatalf("first message = %+v", m)
	}
	for _, k := range []celebrate.Kind{celebrate.KindOverlayHide, celebrate.KindConfettiClear, celebrate.KindFlyerHide} {
		if m := next(t, sub); m.Effect == nil || m.Effect.Kind != k {
			t.Fatalf("message = %+v, want %s", m, k)
		}
	}
	if n := p.sched.Cancel(); n != 0 {
		t.Fatalf("%d celebration timers survived NewGame", n)
	}
}

func TestResizeOnlyPreGame(t *testing.T) {
	p := New("p1", 50, game.Fixed(7))
	if out, ok := p.Resize(120); !ok || out.View.Max != 120 {
		t.Fatalf("Resize pre-game = %+v ok=%v", out, ok)
	}
	p.Guess(100)
	if _, ok := p.Resize(30); ok {
		t.Fatal("Resize mid-game accepted")
	}
	if got := p.Snapshot().Max; got != 120 {
		t.Fatalf("Max = %d, want 120", got)
	}
}

func TestSlowSubscriberIsDropped(t *testing.T) {
	p := New("p1", 50, game.Fixed(7))
	dropped := make(chan struct{})
	p.Subscribe(1, func() { close(dropped) })

	p.Guess(40)
	p.Guess(30)

	select {
	case <-dropped:
	case <-time.After(time.Second):
		t.Fatal("slow subscriber not dropped")
	}
	if n := p.Subscribers(); n != 0 {
		t.Fatalf("Subscribers() = %d, want 0", n)
	}
}

func TestWatchStartsFromCurrentView(t *testing.T) {
	p := New("p1", 50, game.Fixed(7))
	p.Guess(25)

	sub, v := p.Watch(8, nil)
	defer p.Unsubscribe(sub)
	if !v.Full || v.Guesses != 1 || len(v.Cells) != 50 || v.Feedback.Category != game.KindLower {
		t.Fatalf("Watch view = full=%v guesses=%d cells=%d feedback=%+v", v.Full, v.Guesses, len(v.Cells), v.Feedback)
	}
	select {
	case m := <-sub.C():
		t.Fatalf("stale message queued before the view: %+v", m)
	default:
	}

	p.Guess(3)
	if m := next(t, sub); m.View == nil || m.View.Guesses != 2 {
		t.Fatalf("message after Watch = %+v", m)
	}
}
