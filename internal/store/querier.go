package store

import (
	"context"

	"github.com/google/uuid"
)

type Querier interface {
	CreateSubmission(ctx context.Context, arg CreateSubmissionParams) (Submission, error)
	GetProblemBySlug(ctx context.Context, slug string) (Problem, error)
	GetProfile(ctx context.Context, id uuid.UUID) (Profile, error)
	HasAcceptedSubmission(ctx context.Context, arg HasAcceptedSubmissionParams) (bool, error)
	IncrementSolved(ctx context.Context, arg IncrementSolvedParams) error
	Leaderboard(ctx context.Context, arg LeaderboardParams) ([]LeaderboardRow, error)
	ListProblems(ctx context.Context, arg ListProblemsParams) ([]Problem, error)
	ListSolvedProblemIDs(ctx context.Context, userID uuid.UUID) ([]int64, error)
	ListSolvedProblems(ctx context.Context, userID uuid.UUID) ([]Problem, error)
	ListSubmissions(ctx context.Context, arg ListSubmissionsParams) ([]SubmissionRow, error)
	LockProfile(ctx context.Context, id uuid.UUID) error
	UpsertProblem(ctx context.Context, arg UpsertProblemParams) (Problem, error)
	UpsertProfile(ctx context.Context, arg UpsertProfileParams) (Profile, error)
}

var _ Querier = (*Queries)(nil)
