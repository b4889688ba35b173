package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/gsarma/algodojo/internal/leaderboard"
	"github.com/gsarma/algodojo/internal/store"
)

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 500
)

// ListSubmissions returns the caller's history, newest first. Filters:
// ?q= (problem title substring), ?language= (exact or "all"),
// ?verdict= (substring or "all"), ?limit=.
func (h *Handler) ListSubmissions(c *gin.Context) {
	limit, err := queryLimit(c, defaultHistoryLimit, maxHistoryLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rows, err := h.submissions.ListSubmissions(c.Request.Context(), store.ListSubmissionsParams{
		UserID:   principal(c).UserID,
		Query:    c.Query("q"),
		Language: c.Query("language"),
		Verdict:  c.Query("verdict"),
		Limit:    int32(limit),
	})
	if err != nil {
		h.log(c).Error("list submissions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list submissions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": rows})
}

// Me returns the caller's profile.
func (h *Handler) Me(c *gin.Context) {
	profile, ok := h.loadProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetProfile returns the caller's counters and the problems they solved.
func (h *Handler) GetProfile(c *gin.Context) {
	profile, ok := h.loadProfile(c)
	if !ok {
		return
	}
	solved, err := h.profiles.ListSolvedProblems(c.Request.Context(), profile.ID)
	if err != nil {
		h.log(c).Error("list solved problems", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	out := make([]problemSummary, 0, len(solved))
	for _, p := range solved {
		out = append(out, problemSummary{
			ID:         p.ID,
			Title:      p.Title,
			Slug:       p.Slug,
			Difficulty: p.Difficulty,
			Tags:       p.Tags,
			Solved:     true,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":         profile,
		"solved_problems": out,
	})
}

func (h *Handler) loadProfile(c *gin.Context) (store.Profile, bool) {
	profile, err := h.profiles.GetProfile(c.Request.Context(), principal(c).UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return store.Profile{}, false
		}
		h.log(c).Error("get profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return store.Profile{}, false
	}
	return profile, true
}

// Leaderboard returns profiles ranked by ?sort= (solved_count by default).
func (h *Handler) Leaderboard(c *gin.Context) {
	sort, err := leaderboard.ParseSort(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, err := queryLimit(c, leaderboard.DefaultSize, leaderboard.DefaultSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rows, err := h.board.Top(c.Request.Context(), sort, limit)
	if err != nil {
		h.log(c).Error("leaderboard", zap.String("sort", string(sort)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sort": sort, "entries": rows})
}

func queryLimit(c *gin.Context, def, max int) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	if n > max {
		n = max
	}
	return n, nil
}
