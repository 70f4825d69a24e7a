package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dropfour/backend/internal/repository/postgres"
	"github.com/dropfour/backend/internal/service/bot"
	"github.com/dropfour/backend/internal/transport/http/middleware"
	"github.com/dropfour/backend/pkg/auth"
)

const cookieMaxAge = 24 * 60 * 60

// AuthHandler serves signup, login, logout and the current-user
// endpoint.
type AuthHandler struct {
	users  *postgres.UserRepo
	tokens *auth.TokenManager
}

func NewAuthHandler(users *postgres.UserRepo, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if len(req.Username) < 3 || len(req.Username) > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username must be between 3 and 50 characters"})
		return
	}
	if bot.IsBotName(req.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "that username is reserved"})
		return
	}
	if len(req.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters"})
		return
	}

	if existing, err := h.users.GetUserByUsername(req.Username); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	} else if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	userID, err := h.users.CreateUser(req.Username, hash, strings.TrimSpace(req.Email), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	h.issueToken(c, userID, req.Username)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	user, err := h.users.GetUserByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	h.issueToken(c, user.ID, user.Username)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)
	user, err := h.users.GetUserByID(userID)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"games_played": user.GamesPlayed,
		"games_won":    user.GamesWon,
		"games_drawn":  user.GamesDrawn,
	})
}

func (h *AuthHandler) issueToken(c *gin.Context, userID int64, username string) {
	token, err := h.tokens.Generate(userID, username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.SetCookie("auth_token", token, cookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"user_id":  userID,
		"username": username,
	})
}
