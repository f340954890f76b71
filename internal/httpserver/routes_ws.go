// internal/httpserver/routes_ws.go
//
// Live channel for the page: GET /game/ws.
//
// Protocol (JSON text frames):
//   client → server  {"type":"new"}  {"type":"guess","number":n}  {"type":"size","max":m}
//   server → client  {"type":"view","view":{...}}  {"type":"effect","effect":{...}}
//
// The first frame is always a full view. After that the connection is a
// player subscriber: whatever the player publishes (from this socket,
// another tab, or the HTTP routes) is forwarded. Celebration effects
// arrive as their timers fire.
//
// Inbound frames are rate limited per connection. Frames that do not
// decode are dropped like any other invalid input. A subscriber that
// cannot keep up is closed with a policy violation.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/robalobadob/pokeguess/internal/session"
)

const (
	wsLifetime     = 60 * time.Minute
	wsWriteTimeout = 5 * time.Second
)

// clientMsg is an inbound frame.
type clientMsg struct {
	Type   string `json:"type"`
	Number int    `json:"number"`
	Max    *int   `json:"max"`
}

// handleWS accepts the WebSocket connection and subscribes it to the
// player's messages.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	p := playerFrom(r)
	err := s.serveWS(w, r, p)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}
	if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
		websocket.CloseStatus(err) == websocket.StatusGoingAway {
		return
	}
	if err != nil {
		log.Warn().Err(err).Str("player", p.ID).Msg("websocket")
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request, p *session.Player) error {
	var mu sync.Mutex
	var c *websocket.Conn
	var closed bool
	sub, v := p.Watch(s.cfg.WSBuffer, func() {
		log.Warn().Str("player", p.ID).Msg("closing slow subscriber")
		mu.Lock()
		defer mu.Unlock()
		closed = true
		if c != nil {
			c.Close(websocket.StatusPolicyViolation, "connection too slow to keep up with messages")
		}
	})
	defer p.Unsubscribe(sub)

	opts := &websocket.AcceptOptions{}
	if host := s.originHost(); host != "" {
		opts.OriginPatterns = []string{host}
	}
	c2, err := websocket.Accept(w, r, opts)
	if err != nil {
		return err
	}
	mu.Lock()
	if closed {
		mu.Unlock()
		return net.ErrClosed
	}
	c = c2
	mu.Unlock()
	defer c.CloseNow()

	ctx, cancel := context.WithTimeout(r.Context(), wsLifetime)
	defer cancel()

	if err := writeTimeout(ctx, wsWriteTimeout, c, session.Message{Type: session.MessageView, View: &v}); err != nil {
		return err
	}

	readErr := make(chan error, 1)
	go func() {
		readErr <- s.listen(ctx, c, p, rate.NewLimiter(rate.Every(100*time.Millisecond), 10))
	}()

	for {
		select {
		case msg := <-sub.C():
			if err := writeTimeout(ctx, wsWriteTimeout, c, msg); err != nil {
				return err
			}
		case err := <-readErr:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// listen reads frames until the connection fails and dispatches them.
// A frame that does not decode is skipped; the socket stays open.
func (s *Server) listen(ctx context.Context, c *websocket.Conn, p *session.Player, l *rate.Limiter) error {
	for {
		if err := l.Wait(ctx); err != nil {
			return err
		}
		_, data, err := c.Read(ctx)
		if err != nil {
			return err
		}
		var in clientMsg
		if err := json.Unmarshal(data, &in); err != nil {
			log.Debug().Err(err).Str("player", p.ID).Msg("bad websocket frame")
			continue
		}
		s.dispatch(p, in)
	}
}

// dispatch applies one inbound frame. Results reach the socket through
// the player's subscription, so nothing is written here.
func (s *Server) dispatch(p *session.Player, in clientMsg) {
	switch in.Type {
	case "new":
		max := 0
		if in.Max != nil {
			max = *in.Max
		}
		p.NewGame(max)
	case "guess":
		p.Guess(in.Number)
	case "size":
		p.Resize(sizeOrDefault(in.Max))
	default:
		log.Debug().Str("player", p.ID).Str("type", in.Type).Msg("unknown websocket message")
	}
}

func writeTimeout(ctx context.Context, timeout time.Duration, c *websocket.Conn, msg session.Message) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return wsjson.Write(ctx, c, msg)
}
