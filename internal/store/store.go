package store

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// IsAccepted reports whether a verdict counts as solving the problem.
func IsAccepted(verdict string) bool {
	return strings.Contains(strings.ToLower(verdict), "accepted")
}

// Store wraps Queries with operations that span several statements.
type Store struct {
	*Queries
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Queries: New(pool), pool: pool}
}

// RecordSubmissionParams describes a graded submission.
type RecordSubmissionParams struct {
	UserID     uuid.UUID
	ProblemID  int64
	Difficulty string
	Language   string
	Code       string
	Verdict    string
	Runtime    *int32
	Memory     *int32
}

// RecordSubmission stores a submission and, on the user's first accepted
// verdict for the problem, bumps their profile counters. Both happen in one
// transaction.
func (s *Store) RecordSubmission(ctx context.Context, arg RecordSubmissionParams) (Submission, error) {
	var out Submission
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		out, err = recordSubmission(ctx, s.WithTx(tx), arg)
		return err
	})
	if err != nil {
		return Submission{}, fmt.Errorf("record submission: %w", err)
	}
	return out, nil
}

func recordSubmission(ctx context.Context, q Querier, arg RecordSubmissionParams) (Submission, error) {
	accepted := IsAccepted(arg.Verdict)
	var solvedBefore bool
	if accepted {
		// Concurrent accepts for the same user serialise here, so only one
		// of them sees no earlier accepted submission.
		if err := q.LockProfile(ctx, arg.UserID); err != nil {
			return Submission{}, fmt.Errorf("lock profile: %w", err)
		}
		var err error
		solvedBefore, err = q.HasAcceptedSubmission(ctx, HasAcceptedSubmissionParams{
			UserID:    arg.UserID,
			ProblemID: arg.ProblemID,
		})
		if err != nil {
			return Submission{}, err
		}
	}

	sub, err := q.CreateSubmission(ctx, CreateSubmissionParams{
		UserID:    arg.UserID,
		ProblemID: arg.ProblemID,
		Language:  arg.Language,
		Code:      arg.Code,
		Verdict:   arg.Verdict,
		Runtime:   arg.Runtime,
		Memory:    arg.Memory,
	})
	if err != nil {
		return Submission{}, err
	}

	if accepted && !solvedBefore {
		if err := q.IncrementSolved(ctx, IncrementSolvedParams{
			UserID:     arg.UserID,
			Difficulty: arg.Difficulty,
		}); err != nil {
			return Submission{}, err
		}
	}
	return sub, nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
