package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/gsarma/algodojo/internal/judge"
	"github.com/gsarma/algodojo/internal/store"
)

type problemSummary struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags"`
	Solved     bool     `json:"solved"`
}

// ListProblems returns the catalogue filtered by ?q= (title or tag,
// case-insensitive) and any number of ?difficulty= values.
func (h *Handler) ListProblems(c *gin.Context) {
	difficulties, err := parseDifficulties(c.QueryArray("difficulty"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	problems, err := h.problems.ListProblems(ctx, store.ListProblemsParams{
		Query:        strings.TrimSpace(c.Query("q")),
		Difficulties: difficulties,
	})
	if err != nil {
		h.log(c).Error("list problems", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list problems"})
		return
	}

	solved := map[int64]bool{}
	if p := principal(c); p != nil {
		ids, err := h.problems.ListSolvedProblemIDs(ctx, p.UserID)
		if err != nil {
			h.log(c).Warn("list solved problems", zap.Error(err))
		}
		for _, id := range ids {
			solved[id] = true
		}
	}

	out := make([]problemSummary, 0, len(problems))
	for _, p := range problems {
		out = append(out, problemSummary{
			ID:         p.ID,
			Title:      p.Title,
			Slug:       p.Slug,
			Difficulty: p.Difficulty,
			Tags:       p.Tags,
			Solved:     solved[p.ID],
		})
	}
	c.JSON(http.StatusOK, gin.H{"problems": out})
}

// GetProblem returns one problem with its example test cases.
func (h *Handler) GetProblem(c *gin.Context) {
	p, err := h.problems.GetProblemBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "problem not found"})
			return
		}
		h.log(c).Error("get problem", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load problem"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// SubmitSolution judges code against the problem's first example case and
// records the outcome for the signed-in user.
//
// Request body: {"language": "python", "code": "print(1)"}
func (h *Handler) SubmitSolution(c *gin.Context) {
	p := principal(c)

	var body struct {
		Language string `json:"language" binding:"required"`
		Code     string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lang, err := judge.ParseLanguage(body.Language)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	languageID, _ := lang.ID()

	ctx := c.Request.Context()
	problem, err := h.problems.GetProblemBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "problem not found"})
			return
		}
		h.log(c).Error("get problem", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load problem"})
		return
	}

	raw, err := h.judge.Submit(ctx, judge.NewRequest(judge.Payload{
		LanguageID: languageID,
		SourceCode: body.Code,
		TestCases:  problem.TestCases,
	}))
	if err != nil {
		h.log(c).Warn("judge submission failed", zap.String("slug", problem.Slug), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	result, err := judge.Decode(raw)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	verdict := result.Verdict()
	if verdict == "" {
		verdict = "Unknown"
	}
	sub, err := h.submissions.RecordSubmission(ctx, store.RecordSubmissionParams{
		UserID:     p.UserID,
		ProblemID:  problem.ID,
		Difficulty: problem.Difficulty,
		Language:   string(lang),
		Code:       body.Code,
		Verdict:    verdict,
		Runtime:    runtimeMillis(result.Time),
		Memory:     memoryKB(result.Memory),
	})
	if err != nil {
		h.log(c).Error("record submission", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record submission"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"submission": sub,
		"result":     json.RawMessage(raw),
	})
}

func parseDifficulties(values []string) ([]string, error) {
	var out []string
	for _, v := range values {
		for _, d := range strings.Split(v, ",") {
			d = strings.TrimSpace(d)
			if d == "" {
				continue
			}
			if !validDifficulty(d) {
				return nil, fmt.Errorf("unknown difficulty %q", d)
			}
			out = append(out, d)
		}
	}
	return out, nil
}

func validDifficulty(d string) bool {
	for _, v := range store.Difficulties {
		if v == d {
			return true
		}
	}
	return false
}

// runtimeMillis converts the judge's seconds string ("0.012") to whole
// milliseconds. Values that do not fit a non-negative int32 are dropped.
func runtimeMillis(t *string) *int32 {
	if t == nil {
		return nil
	}
	secs, err := strconv.ParseFloat(*t, 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return nil
	}
	rounded := math.Round(secs * 1000)
	if rounded < 0 || rounded > math.MaxInt32 {
		return nil
	}
	ms := int32(rounded)
	return &ms
}

func memoryKB(m *int) *int32 {
	if m == nil || *m < 0 || *m > math.MaxInt32 {
		return nil
	}
	kb := int32(*m)
	return &kb
}
