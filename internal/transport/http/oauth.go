package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dropfour/backend/internal/config"
	"github.com/dropfour/backend/internal/repository/postgres"
	"github.com/dropfour/backend/pkg/auth"
)

// OAuthHandler implements Google sign-in: redirect out, then exchange
// the callback code and create or look up the player.
type OAuthHandler struct {
	users  *postgres.UserRepo
	tokens *auth.TokenManager
	oauth  config.OAuthConfig
}

func NewOAuthHandler(users *postgres.UserRepo, tokens *auth.TokenManager, oauth config.OAuthConfig) *OAuthHandler {
	return &OAuthHandler{users: users, tokens: tokens, oauth: oauth}
}

func (h *OAuthHandler) GoogleLogin(c *gin.Context) {
	if !h.oauth.Enabled() {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "google sign-in is not configured"})
		return
	}
	state := uuid.NewString()
	c.SetCookie("oauth_state", state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauth.Google.AuthCodeURL(state))
}

func (h *OAuthHandler) GoogleCallback(c *gin.Context) {
	if !h.oauth.Enabled() {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "google sign-in is not configured"})
		return
	}

	state, err := c.Cookie("oauth_state")
	if err != nil || state == "" || state != c.Query("state") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}

	token, err := h.oauth.Google.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "code exchange failed"})
		return
	}

	googleUser, err := config.GetGoogleUserInfo(token.AccessToken)
	if err != nil || googleUser.ID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to fetch google profile"})
		return
	}

	user, err := h.users.GetUserByGoogleID(googleUser.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if user == nil {
		username := uniqueUsername(h.users, googleUser)
		userID, err := h.users.CreateUser(username, "", googleUser.Email, googleUser.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}
		h.issueOAuthToken(c, userID, username)
		return
	}
	h.issueOAuthToken(c, user.ID, user.Username)
}

func (h *OAuthHandler) issueOAuthToken(c *gin.Context, userID int64, username string) {
	token, err := h.tokens.Generate(userID, username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.SetCookie("auth_token", token, cookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": userID, "username": username})
}

// uniqueUsername derives a username from the Google profile, adding a
// random suffix on collision.
func uniqueUsername(users *postgres.UserRepo, gu *config.GoogleUser) string {
	base := gu.Name
	if base == "" {
		base = "player"
	}
	if len(base) > 40 {
		base = base[:40]
	}
	if existing, err := users.GetUserByUsername(base); err == nil && existing == nil {
		return base
	}
	return base + "-" + uuid.NewString()[:8]
}
