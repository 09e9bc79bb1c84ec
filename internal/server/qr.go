package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 320

// handleGameQR renders a PNG QR code pointing at the game's join page, so the
// second player can scan in from a phone.
func (s *Server) handleGameQR(c *gin.Context) {
	code, err := validateCode(c.Param("code"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid game code")
		return
	}
	if _, ok := s.store.GetGame(code); !ok {
		c.String(http.StatusNotFound, "game not found")
		return
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.Request.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	url := fmt.Sprintf("%s://%s/?join=%s", scheme, c.Request.Host, code)

	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		c.String(http.StatusInternalServerError, "qr generation failed")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
