package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PierrickDossin/AymanProject/internal/auth"
	"github.com/PierrickDossin/AymanProject/pkg/utils"
)

// GoogleLogin redirects to the Google consent page.
func (h *Handlers) GoogleLogin(c *gin.Context) {
	if h.google == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth is not configured"})
		return
	}
	state, err := auth.NewState()
	if err != nil {
		respondError(c, err)
		return
	}
	h.states.Put(state)
	c.Redirect(http.StatusFound, h.google.AuthCodeURL(state))
}

// GoogleCallback finishes the OAuth flow and hands the session to the frontend.
func (h *Handlers) GoogleCallback(c *gin.Context) {
	if h.google == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth is not configured"})
		return
	}
	failed := h.frontendURL + "/login?error=auth_failed"

	if !h.states.Take(c.Query("state")) || c.Query("code") == "" {
		utils.Log.Warn("OAuth callback rejected", "reason", "state or code")
		c.Redirect(http.StatusFound, failed)
		return
	}

	ctx := c.Request.Context()
	profile, err := h.google.Exchange(ctx, c.Query("code"))
	if err != nil {
		utils.Log.Warn("OAuth exchange failed", "error", err)
		c.Redirect(http.StatusFound, failed)
		return
	}

	first, last := profile.GivenName, profile.FamilyName
	if first == "" && last == "" {
		first, last, _ = strings.Cut(profile.Name, " ")
	}
	user, err := h.users.FindOrCreateExternal(ctx, profile.Email, first, last)
	if err != nil {
		utils.Log.Error("OAuth user provisioning failed", "error", err)
		c.Redirect(http.StatusFound, failed)
		return
	}
	session, err := h.users.IssueSession(ctx, user)
	if err != nil {
		utils.Log.Error("OAuth session failed", "error", err)
		c.Redirect(http.StatusFound, failed)
		return
	}

	payload, err := json.Marshal(gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"username":  user.Username,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	q := url.Values{}
	q.Set("user", string(payload))
	q.Set("token", session.Token)
	c.Redirect(http.StatusFound, h.frontendURL+"/auth/callback?"+q.Encode())
}

// Events streams the authenticated user's domain events over a websocket.
func (h *Handlers) Events(c *gin.Context) {
	if h.hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Event stream is disabled"})
		return
	}
	userID := c.GetString(ctxUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err := h.hub.Serve(c.Writer, c.Request, userID); err != nil {
		utils.Log.Debug("Websocket upgrade failed", "userId", userID, "error", err)
	}
}
