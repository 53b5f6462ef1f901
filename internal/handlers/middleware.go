package handlers

import (
	"net/http"

	"fineboard/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	currentUserKey  = "currentUser"
	requestIDKey    = "requestID"
	headerRequestID = "X-Request-ID"

	sessionCookie = "session"
	flashCookie   = "flash"

	loginPath = "/login"
)

// requestID tags every request with an id for log correlation, honoring one
// supplied by the client.
func (h *Handler) requestID(c *gin.Context) {
	id := c.GetHeader(headerRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDKey, id)
	c.Writer.Header().Set(headerRequestID, id)
	c.Next()
}

// loadCurrentUser resolves the caller's identity from the session cookie and
// stores the user record in the request context. It never short-circuits: a
// missing, invalid or stale token just leaves the request anonymous, and the
// route gates decide what anonymous callers may reach.
func (h *Handler) loadCurrentUser(c *gin.Context) {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		c.Next()
		return
	}

	userID, err := h.services.ParseToken(token)
	if err != nil {
		if h.log != nil {
			h.log.Debugw("session_token_rejected", "request_id", c.GetString(requestIDKey), "err", err)
		}
		c.Next()
		return
	}

	user, err := h.services.UserByID(userID)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("session_user_lookup_failed", "user_id", userID, "err", err)
		}
		c.Next()
		return
	}
	if user == nil {
		// Token outlived the account; treat as anonymous.
		c.Next()
		return
	}

	c.Set(currentUserKey, user)
	c.Next()
}

// currentUser returns the authenticated user for this request, or nil.
func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(currentUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

// requireUser redirects anonymous callers to the login page before any route
// logic runs.
func (h *Handler) requireUser(c *gin.Context) {
	if currentUser(c) == nil {
		c.Redirect(http.StatusSeeOther, loginPath)
		c.Abort()
		return
	}
	c.Next()
}

// requireRole gates a route to one exact role. No hierarchy: an upper gate
// admits upper and nothing else.
func (h *Handler) requireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		if user.Role != role {
			c.HTML(http.StatusForbidden, "forbidden.html", forbiddenData{User: user})
			c.Abort()
			return
		}
		c.Next()
	}
}

// setFlash stores a one-shot notice for the next rendered page.
func setFlash(c *gin.Context, msg string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, msg, 60, "/", "", false, true)
}

// takeFlash reads and clears the pending notice, if any.
func takeFlash(c *gin.Context) string {
	msg, err := c.Cookie(flashCookie)
	if err != nil || msg == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return msg
}
