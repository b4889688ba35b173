package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/gsarma/algodojo/internal/judge"
)

const profileColumns = `id, username, email, auth_provider, auth_subject, solved_count, easy_solved, medium_solved, hard_solved, created_at`

func scanProfile(row interface{ Scan(...any) error }) (Profile, error) {
	var i Profile
	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.Email,
		&i.AuthProvider,
		&i.AuthSubject,
		&i.SolvedCount,
		&i.EasySolved,
		&i.MediumSolved,
		&i.HardSolved,
		&i.CreatedAt,
	)
	return i, err
}

const problemColumns = `id, title, slug, description, difficulty, tags, test_cases, created_at`

func scanProblem(row interface{ Scan(...any) error }) (Problem, error) {
	var i Problem
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Slug,
		&i.Description,
		&i.Difficulty,
		&i.Tags,
		&i.TestCases,
		&i.CreatedAt,
	)
	return i, err
}

const getProfile = `-- name: GetProfile :one
SELECT ` + profileColumns + ` FROM profiles WHERE id = $1
`

func (q *Queries) GetProfile(ctx context.Context, id uuid.UUID) (Profile, error) {
	return scanProfile(q.db.QueryRow(ctx, getProfile, id))
}

const lockProfile = `-- name: LockProfile :one
SELECT id FROM profiles WHERE id = $1 FOR UPDATE
`

// LockProfile row-locks a profile until the surrounding transaction ends.
func (q *Queries) LockProfile(ctx context.Context, id uuid.UUID) error {
	var locked uuid.UUID
	return q.db.QueryRow(ctx, lockProfile, id).Scan(&locked)
}

const upsertProfile = `-- name: UpsertProfile :one
INSERT INTO profiles (auth_provider, auth_subject, email, username)
VALUES ($1, $2, $3, $4)
ON CONFLICT (auth_provider, auth_subject)
DO UPDATE SET email = EXCLUDED.email,
              username = COALESCE(profiles.username, EXCLUDED.username)
RETURNING ` + profileColumns + `
`

type UpsertProfileParams struct {
	AuthProvider string
	AuthSubject  string
	Email        *string
	Username     *string
}

func (q *Queries) UpsertProfile(ctx context.Context, arg UpsertProfileParams) (Profile, error) {
	row := q.db.QueryRow(ctx, upsertProfile,
		arg.AuthProvider,
		arg.AuthSubject,
		arg.Email,
		arg.Username,
	)
	return scanProfile(row)
}

const listProblems = `-- name: ListProblems :many
SELECT ` + problemColumns + ` FROM problems
WHERE ($1::text = ''
       OR strpos(lower(title), lower($1)) > 0
       OR EXISTS (SELECT 1 FROM unnest(tags) AS t WHERE strpos(lower(t), lower($1)) > 0))
  AND (COALESCE(cardinality($2::text[]), 0) = 0 OR difficulty = ANY($2::text[]))
ORDER BY id
`

type ListProblemsParams struct {
	Query        string
	Difficulties []string
}

func (q *Queries) ListProblems(ctx context.Context, arg ListProblemsParams) ([]Problem, error) {
	rows, err := q.db.Query(ctx, listProblems, arg.Query, arg.Difficulties)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Problem{}
	for rows.Next() {
		i, err := scanProblem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getProblemBySlug = `-- name: GetProblemBySlug :one
SELECT ` + problemColumns + ` FROM problems WHERE slug = $1
`

func (q *Queries) GetProblemBySlug(ctx context.Context, slug string) (Problem, error) {
	return scanProblem(q.db.QueryRow(ctx, getProblemBySlug, slug))
}

const upsertProblem = `-- name: UpsertProblem :one
INSERT INTO problems (title, slug, description, difficulty, tags, test_cases)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (slug)
DO UPDATE SET title = EXCLUDED.title,
              description = EXCLUDED.description,
              difficulty = EXCLUDED.difficulty,
              tags = EXCLUDED.tags,
              test_cases = EXCLUDED.test_cases
RETURNING ` + problemColumns + `
`

type UpsertProblemParams struct {
	Title       string
	Slug        string
	Description string
	Difficulty  string
	Tags        []string
	TestCases   []judge.TestCase
}

func (q *Queries) UpsertProblem(ctx context.Context, arg UpsertProblemParams) (Problem, error) {
	tags := arg.Tags
	if tags == nil {
		tags = []string{}
	}
	cases := arg.TestCases
	if cases == nil {
		cases = []judge.TestCase{}
	}
	row := q.db.QueryRow(ctx, upsertProblem,
		arg.Title,
		arg.Slug,
		arg.Description,
		arg.Difficulty,
		tags,
		cases,
	)
	return scanProblem(row)
}

const createSubmission = `-- name: CreateSubmission :one
INSERT INTO submissions (user_id, problem_id, language, code, verdict, runtime, memory)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, user_id, problem_id, language, code, verdict, runtime, memory, created_at
`

type CreateSubmissionParams struct {
	UserID    uuid.UUID
	ProblemID int64
	Language  string
	Code      string
	Verdict   string
	Runtime   *int32
	Memory    *int32
}

func (q *Queries) CreateSubmission(ctx context.Context, arg CreateSubmissionParams) (Submission, error) {
	row := q.db.QueryRow(ctx, createSubmission,
		arg.UserID,
		arg.ProblemID,
		arg.Language,
		arg.Code,
		arg.Verdict,
		arg.Runtime,
		arg.Memory,
	)
	var i Submission
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.ProblemID,
		&i.Language,
		&i.Code,
		&i.Verdict,
		&i.Runtime,
		&i.Memory,
		&i.CreatedAt,
	)
	return i, err
}

const listSubmissions = `-- name: ListSubmissions :many
SELECT s.id, s.user_id, s.problem_id, s.language, s.code, s.verdict, s.runtime, s.memory, s.created_at,
       p.title, p.slug, p.difficulty
FROM submissions s
JOIN problems p ON p.id = s.problem_id
WHERE s.user_id = $1
  AND ($2::text = '' OR strpos(lower(p.title), lower($2)) > 0)
  AND ($3::text IN ('', 'all') OR s.language = $3)
  AND ($4::text IN ('', 'all') OR strpos(lower(s.verdict), lower($4)) > 0)
ORDER BY s.created_at DESC
LIMIT $5
`

type ListSubmissionsParams struct {
	UserID   uuid.UUID
	Query    string
	Language string
	Verdict  string
	Limit    int32
}

func (q *Queries) ListSubmissions(ctx context.Context, arg ListSubmissionsParams) ([]SubmissionRow, error) {
	rows, err := q.db.Query(ctx, listSubmissions,
		arg.UserID,
		arg.Query,
		arg.Language,
		arg.Verdict,
		arg.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []SubmissionRow{}
	for rows.Next() {
		var i SubmissionRow
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.ProblemID,
			&i.Language,
			&i.Code,
			&i.Verdict,
			&i.Runtime,
			&i.Memory,
			&i.CreatedAt,
			&i.ProblemTitle,
			&i.ProblemSlug,
			&i.ProblemDifficulty,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const hasAcceptedSubmission = `-- name: HasAcceptedSubmission :one
SELECT EXISTS (
    SELECT 1 FROM submissions
    WHERE user_id = $1 AND problem_id = $2 AND strpos(lower(verdict), 'accepted') > 0
)
`

type HasAcceptedSubmissionParams struct {
	UserID    uuid.UUID
	ProblemID int64
}

func (q *Queries) HasAcceptedSubmission(ctx context.Context, arg HasAcceptedSubmissionParams) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, hasAcceptedSubmission, arg.UserID, arg.ProblemID).Scan(&exists)
	return exists, err
}

const incrementSolved = `-- name: IncrementSolved :exec
UPDATE profiles
SET solved_count  = solved_count + 1,
    easy_solved   = easy_solved + CASE WHEN $2 = 'Easy' THEN 1 ELSE 0 END,
    medium_solved = medium_solved + CASE WHEN $2 = 'Medium' THEN 1 ELSE 0 END,
    hard_solved   = hard_solved + CASE WHEN $2 = 'Hard' THEN 1 ELSE 0 END
WHERE id = $1
`

type IncrementSolvedParams struct {
	UserID     uuid.UUID
	Difficulty string
}

func (q *Queries) IncrementSolved(ctx context.Context, arg IncrementSolvedParams) error {
	_, err := q.db.Exec(ctx, incrementSolved, arg.UserID, arg.Difficulty)
	return err
}

const listSolvedProblemIDs = `-- name: ListSolvedProblemIDs :many
SELECT DISTINCT problem_id FROM submissions
WHERE user_id = $1 AND strpos(lower(verdict), 'accepted') > 0
ORDER BY problem_id
`

func (q *Queries) ListSolvedProblemIDs(ctx context.Context, userID uuid.UUID) ([]int64, error) {
	rows, err := q.db.Query(ctx, listSolvedProblemIDs, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listSolvedProblems = `-- name: ListSolvedProblems :many
SELECT ` + problemColumns + ` FROM problems
WHERE id IN (
    SELECT problem_id FROM submissions
    WHERE user_id = $1 AND strpos(lower(verdict), 'accepted') > 0
)
ORDER BY id
`

func (q *Queries) ListSolvedProblems(ctx context.Context, userID uuid.UUID) ([]Problem, error) {
	rows, err := q.db.Query(ctx, listSolvedProblems, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Problem{}
	for rows.Next() {
		i, err := scanProblem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const leaderboard = `-- name: Leaderboard :many
SELECT id, username, solved_count, easy_solved, medium_solved, hard_solved
FROM profiles
ORDER BY CASE $1::text
             WHEN 'easy_solved' THEN easy_solved
             WHEN 'medium_solved' THEN medium_solved
             WHEN 'hard_solved' THEN hard_solved
             ELSE solved_count
         END DESC,
         created_at
LIMIT $2
`

type LeaderboardParams struct {
	SortBy string
	Limit  int32
}

func (q *Queries) Leaderboard(ctx context.Context, arg LeaderboardParams) ([]LeaderboardRow, error) {
	rows, err := q.db.Query(ctx, leaderboard, arg.SortBy, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []LeaderboardRow{}
	for rows.Next() {
		var i LeaderboardRow
		if err := rows.Scan(
			&i.ID,
			&i.Username,
			&i.SolvedCount,
			&i.EasySolved,
			&i.MediumSolved,
			&i.HardSolved,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
