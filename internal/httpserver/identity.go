// internal/httpserver/identity.go
//
// Anonymous player identity.
// Responsibilities:
//   - Sign and verify the player cookie (HS256 JWT carrying a uuid "pid").
//   - Resolve the request's *session.Player from the store, minting a new
//     player and cookie when the cookie is missing or invalid.
//   - Expose the player to handlers through the request context.

package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pokeguess/internal/session"
)

// ctxPlayerKey is the context key type for storing the request's player.
type ctxPlayerKey struct{}

// playerFrom returns the player installed by withPlayer.
func playerFrom(r *http.Request) *session.Player {
	p, _ := r.Context().Value(ctxPlayerKey{}).(*session.Player)
	return p
}

// withPlayer resolves (or mints) the request's player and puts it into
// the request context.
func (s *Server) withPlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := s.resolvePlayer(w, r)
		if err != nil {
			log.Error().Err(err).Msg("resolve player")
			writeError(w, http.StatusInternalServerError, "internal")
			return
		}
		ctx := context.WithValue(r.Context(), ctxPlayerKey{}, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolvePlayer looks up the player named by a valid cookie. A valid
// cookie whose player was evicted gets a fresh game under the same ID;
// anything else gets a new ID and cookie.
func (s *Server) resolvePlayer(w http.ResponseWriter, r *http.Request) (*session.Player, error) {
	ctx := r.Context()
	if id := s.playerIDFromCookie(r); id != "" {
		p, created, err := s.store.GetOrCreate(ctx, id, func() *session.Player {
			return session.New(id, s.cfg.DefaultMax, s.cfg.Picker)
		})
		if err != nil {
			return nil, err
		}
		if created {
			log.Info().Str("player", id).Msg("player restored after eviction")
		}
		return p, nil
	}

	id := uuid.NewString()
	p := session.New(id, s.cfg.DefaultMax, s.cfg.Picker)
	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}
	tok, exp, err := s.signPlayer(id)
	if err != nil {
		return nil, err
	}
	s.setPlayerCookie(w, tok, exp)
	log.Info().Str("player", id).Msg("new player")
	return p, nil
}

// signPlayer creates an HS256 JWT carrying the player ID.
func (s *Server) signPlayer(id string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.cfg.CookieTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"pid": id,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.cfg.PlayerSecret))
	return ss, exp, err
}

// playerIDFromCookie validates the player cookie and returns its ID, or
// "" when the cookie is missing, forged, expired or malformed.
func (s *Server) playerIDFromCookie(r *http.Request) string {
	c, err := r.Cookie(s.cfg.CookieName)
	if err != nil || c.Value == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.PlayerSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return ""
	}
	id, _ := claims["pid"].(string)
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return id
}

// setPlayerCookie writes the player cookie with appropriate security attributes.
func (s *Server) setPlayerCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.cfg.SecureCookies {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: sameSite,
		Expires:  exp,
	})
}
