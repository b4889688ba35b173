package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gsarma/algodojo/internal/auth"
	"github.com/gsarma/algodojo/internal/editor"
	"github.com/gsarma/algodojo/internal/judge"
	"github.com/gsarma/algodojo/internal/leaderboard"
	"github.com/gsarma/algodojo/internal/logging"
	"github.com/gsarma/algodojo/internal/metrics"
	"github.com/gsarma/algodojo/internal/store"
)

// ProblemStore reads the problem catalogue.
type ProblemStore interface {
	ListProblems(ctx context.Context, arg store.ListProblemsParams) ([]store.Problem, error)
	GetProblemBySlug(ctx context.Context, slug string) (store.Problem, error)
	ListSolvedProblemIDs(ctx context.Context, userID uuid.UUID) ([]int64, error)
}

// SubmissionStore records and lists graded submissions.
type SubmissionStore interface {
	RecordSubmission(ctx context.Context, arg store.RecordSubmissionParams) (store.Submission, error)
	ListSubmissions(ctx context.Context, arg store.ListSubmissionsParams) ([]store.SubmissionRow, error)
}

// ProfileStore reads user profiles.
type ProfileStore interface {
	GetProfile(ctx context.Context, id uuid.UUID) (store.Profile, error)
	ListSolvedProblems(ctx context.Context, userID uuid.UUID) ([]store.Problem, error)
}

// Leaderboard serves ranked profiles.
type Leaderboard interface {
	Top(ctx context.Context, sort leaderboard.Sort, limit int) ([]store.LeaderboardRow, error)
}

// AuthProvider covers sign-in, sign-out and request authentication.
type AuthProvider interface {
	LoginURL(provider, redirectURI string) (string, error)
	Complete(ctx context.Context, provider, code, state string) (string, error)
	Logout(ctx context.Context, p *auth.Principal) error
	RequireUser() gin.HandlerFunc
	OptionalUser() gin.HandlerFunc
}

// DraftStores hands out per-user draft stores.
type DraftStores interface {
	ForUser(userID string) editor.DraftStore
}

// Deps are the collaborators of a Handler. Judge is required; the rest may
// be nil when the routes using them are not registered.
type Deps struct {
	Judge       judge.CodeJudge
	Problems    ProblemStore
	Submissions SubmissionStore
	Profiles    ProfileStore
	Leaderboard Leaderboard
	Auth        AuthProvider
	Drafts      DraftStores
	Metrics     *metrics.Submissions
	Logger      *zap.Logger
}

type Handler struct {
	judge       judge.CodeJudge
	problems    ProblemStore
	submissions SubmissionStore
	profiles    ProfileStore
	board       Leaderboard
	auth        AuthProvider
	drafts      DraftStores
	metrics     *metrics.Submissions
	logger      *zap.Logger
}

func NewHandler(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		judge:       d.Judge,
		problems:    d.Problems,
		submissions: d.Submissions,
		profiles:    d.Profiles,
		board:       d.Leaderboard,
		auth:        d.Auth,
		drafts:      d.Drafts,
		metrics:     d.Metrics,
		logger:      logger,
	}
}

func (h *Handler) log(c *gin.Context) *zap.Logger {
	return logging.FromContext(c.Request.Context(), h.logger)
}

// principal returns the signed-in user. Routes behind RequireUser always
// have one.
func principal(c *gin.Context) *auth.Principal {
	return auth.FromContext(c)
}

// Health reports that the server is up.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
