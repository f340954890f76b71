// internal/httpserver/share.go
//
// GET /share/qr.png: a PNG QR code of the game URL so a second device can
// open the page. PUBLIC_URL wins; otherwise the request host is used.

package httpserver

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// shareURL is the address encoded in the share QR code.
func (s *Server) shareURL(r *http.Request) string {
	if s.cfg.PublicURL != "" {
		return s.cfg.PublicURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/"
}

// handleShareQR serves a PNG QR code pointing at the game, so a second
// device can join quickly.
func (s *Server) handleShareQR(w http.ResponseWriter, r *http.Request) {
	png, err := qrcode.Encode(s.shareURL(r), qrcode.Medium, qrSize)
	if err != nil {
		log.Error().Err(err).Msg("encode share qr")
		writeError(w, http.StatusInternalServerError, "qr_failed")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(png)
}
