// internal/session/player.go
//
// A Player is one browser's game: the controller, its celebration
// scheduler, and the live subscribers (open WebSocket tabs) that receive
// views and effects.
//
// Concurrency:
//   - Interactions are serialized by mu; each runs to completion before
//     the next one starts.
//   - Subscribers are guarded separately so timers can publish effects
//     without waiting on an interaction.
//   - publish never blocks; a subscriber whose buffer is full is dropped.

package session

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pokeguess/internal/celebrate"
	"github.com/robalobadob/pokeguess/internal/game"
	"github.com/robalobadob/pokeguess/internal/render"
)

// Message types sent to subscribers.
const (
	MessageView   = "view"
	MessageEffect = "effect"
)

// Message is what subscribers receive.
type Message struct {
	Type   string            `json:"type"`
	View   *render.View      `json:"view,omitempty"`
	Effect *celebrate.Effect `json:"effect,omitempty"`
}

// Outcome is the result of an accepted interaction: the view patch and,
// after a win, the celebration plan for clients that schedule it locally.
type Outcome struct {
	View        render.View        `json:"view"`
	Celebration []celebrate.Effect `json:"celebration,omitempty"`
}

// Subscriber is a live listener. Messages arrive on C; if the listener
// cannot keep up, it is removed and closeSlow is called.
type Subscriber struct {
	msgs      chan Message
	closeSlow func()
}

// C returns the message channel.
func (s *Subscriber) C() <-chan Message { return s.msgs }

// Player bundles a session with its scheduler and subscribers.
type Player struct {
	ID string

	mu    sync.Mutex // serializes interactions
	ctrl  *game.Controller
	sched *celebrate.Scheduler
	rnd   *rand.Rand

	subsMu sync.Mutex
	subs   map[*Subscriber]struct{}

	seen atomic.Int64 // unix nanos of last interaction
}

// New constructs a Player with a fresh session of size max.
func New(id string, max int, pick game.Picker) *Player {
	p := &Player{
		ID:   id,
		ctrl: game.NewController(max, pick),
		rnd:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		subs: make(map[*Subscriber]struct{}),
	}
	p.sched = celebrate.NewScheduler(func(e celebrate.Effect) {
		p.publish(Message{Type: MessageEffect, Effect: &e})
	})
	p.Touch()
	return p
}

// View renders the whole current state.
func (p *Player) View() render.View {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Touch()
	return render.Full(p.ctrl.Snapshot())
}

// Snapshot copies the session.
func (p *Player) Snapshot() game.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl.Snapshot()
}

// NewGame starts over. A non-positive max keeps the current size.
func (p *Player) NewGame(max int) Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()
	var ch game.Change
	if max <= 0 {
		ch = p.ctrl.Reset()
	} else {
		ch = p.ctrl.Start(max)
	}
	out, _ := p.apply(ch)
	return out
}

// Guess applies a selection. ok is false when the guess was ignored.
func (p *Player) Guess(n int) (out Outcome, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.apply(p.ctrl.Guess(n))
}

// Resize changes the size before the first guess. ok is false when the
// session has already started.
func (p *Player) Resize(max int) (out Outcome, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.apply(p.ctrl.Resize(max))
}

// apply renders and publishes an accepted change. Caller holds mu.
func (p *Player) apply(ch game.Change) (Outcome, bool) {
	p.Touch()
	if !ch.Accepted() {
		log.Debug().Str("player", p.ID).Int("number", ch.Number).Msg("ignored")
		return Outcome{}, false
	}
	out := Outcome{View: render.Patch(p.ctrl.Snapshot(), ch)}
	p.publish(Message{Type: MessageView, View: &out.View})

	switch ch.Kind {
	case game.KindStart:
		p.sched.Play(celebrate.Clear())
	case game.KindWin:
		out.Celebration = celebrate.Win(ch.Number, ch.Guesses, out.View.Overlay.Title, out.View.Overlay.Text, p.rnd)
		p.sched.Play(out.Celebration)
		log.Info().Str("player", p.ID).Int("number", ch.Number).Int("guesses", ch.Guesses).Msg("won")
	}
	log.Debug().
		Str("player", p.ID).
		Str("kind", string(ch.Kind)).
		Int("number", ch.Number).
		Str("state", string(ch.State)).
		Int("eliminated", len(ch.Eliminated)).
		Msg("change")
	return out, true
}

// Subscribe registers a listener with a buffer of size buf.
func (p *Player) Subscribe(buf int, closeSlow func()) *Subscriber {
	if buf <= 0 {
		buf = 16
	}
	s := &Subscriber{msgs: make(chan Message, buf), closeSlow: closeSlow}
	p.subsMu.Lock()
	p.subs[s] = struct{}{}
	p.subsMu.Unlock()
	return s
}

// Watch subscribes and returns the full view the subscription starts
// from. Both happen under the interaction lock, so every message on the
// subscriber is newer than the returned view.
func (p *Player) Watch(buf int, closeSlow func()) (*Subscriber, render.View) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Touch()
	return p.Subscribe(buf, closeSlow), render.Full(p.ctrl.Snapshot())
}

// Unsubscribe removes a listener.
func (p *Player) Unsubscribe(s *Subscriber) {
	p.subsMu.Lock()
	delete(p.subs, s)
	p.subsMu.Unlock()
}

// Subscribers reports the number of live listeners.
func (p *Player) Subscribers() int {
	p.subsMu.Lock()
	defer p.subsMu.Unlock()
	return len(p.subs)
}

// publish fans msg out without blocking.
func (p *Player) publish(msg Message) {
	p.subsMu.Lock()
	defer p.subsMu.Unlock()
	for s := range p.subs {
		select {
		case s.msgs <- msg:
		default:
			delete(p.subs, s)
			if s.closeSlow != nil {
				go s.closeSlow()
			}
		}
	}
}

// Close cancels pending effects and drops every subscriber.
func (p *Player) Close() {
	p.sched.Cancel()
	p.subsMu.Lock()
	for s := range p.subs {
		delete(p.subs, s)
		if s.closeSlow != nil {
			go s.closeSlow()
		}
	}
	p.subsMu.Unlock()
}

// Touch records activity.
func (p *Player) Touch() { p.seen.Store(time.Now().UnixNano()) }

// LastSeen returns the time of the last interaction.
func (p *Player) LastSeen() time.Time { return time.Unix(0, p.seen.Load()) }
