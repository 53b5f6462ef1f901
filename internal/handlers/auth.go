package handlers

import (
	"errors"
	"net/http"
	"strings"

	"fineboard/internal/service"

	"github.com/gin-gonic/gin"
)

// invalidCredentialsNotice is the single message shown for every login
// failure so the response never reveals whether the username exists.
const invalidCredentialsNotice = "Invalid credentials, try again."

func (h *Handler) loginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", loginData{
		User:  currentUser(c),
		Flash: takeFlash(c),
	})
}

func (h *Handler) login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	token, err := h.services.Login(username, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) && h.log != nil {
			h.log.Errorw("login_failed", "err", err)
		}
		c.HTML(http.StatusUnauthorized, "login.html", loginData{
			Error: invalidCredentialsNotice,
		})
		return
	}

	// A fresh token replaces whatever session cookie was there before.
	h.setSessionCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/")
}

// logout clears the session cookie unconditionally; calling it while already
// logged out is a no-op.
func (h *Handler) logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, loginPath)
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(service.SessionTTL.Seconds()), "/", "", false, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}
