package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dropfour/backend/internal/repository/postgres"
	"github.com/dropfour/backend/internal/repository/redis"
)

const (
	leaderboardKey   = "leaderboard:top"
	leaderboardTTL   = 30 * time.Second
	leaderboardLimit = 25
)

// LeaderboardHandler serves the top players, with a short-lived Redis
// cache in front of Postgres.
type LeaderboardHandler struct {
	users *postgres.UserRepo
	cache *redis.Cache
}

func NewLeaderboardHandler(users *postgres.UserRepo, cache *redis.Cache) *LeaderboardHandler {
	return &LeaderboardHandler{users: users, cache: cache}
}

func (h *LeaderboardHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if cached, ok := h.cache.Get(ctx, leaderboardKey); ok {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	stats, err := h.users.Leaderboard(leaderboardLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch leaderboard"})
		return
	}
	if stats == nil {
		stats = []postgres.PlayerStats{}
	}

	if data, err := json.Marshal(stats); err == nil {
		h.cache.Set(ctx, leaderboardKey, data, leaderboardTTL)
	}
	c.JSON(http.StatusOK, stats)
}
