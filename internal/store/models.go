package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/gsarma/algodojo/internal/judge"
)

type Profile struct {
	ID           uuid.UUID `json:"id"`
	Username     *string   `json:"username"`
	Email        *string   `json:"email"`
	AuthProvider string    `json:"auth_provider"`
	AuthSubject  string    `json:"-"`
	SolvedCount  int32     `json:"solved_count"`
	EasySolved   int32     `json:"easy_solved"`
	MediumSolved int32     `json:"medium_solved"`
	HardSolved   int32     `json:"hard_solved"`
	CreatedAt    time.Time `json:"created_at"`
}

type Problem struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Difficulty  string           `json:"difficulty"`
	Tags        []string         `json:"tags"`
	TestCases   []judge.TestCase `json:"test_cases"`
	CreatedAt   time.Time        `json:"created_at"`
}

type Submission struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProblemID int64     `json:"problem_id"`
	Language  string    `json:"language"`
	Code      string    `json:"code"`
	Verdict   string    `json:"verdict"`
	Runtime   *int32    `json:"runtime"`
	Memory    *int32    `json:"memory"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmissionRow is a submission joined with the problem it was made for.
type SubmissionRow struct {
	Submission
	ProblemTitle      string `json:"problem_title"`
	ProblemSlug       string `json:"problem_slug"`
	ProblemDifficulty string `json:"problem_difficulty"`
}

type LeaderboardRow struct {
	ID           uuid.UUID `json:"id"`
	Username     *string   `json:"username"`
	SolvedCount  int32     `json:"solved_count"`
	EasySolved   int32     `json:"easy_solved"`
	MediumSolved int32     `json:"medium_solved"`
	HardSolved   int32     `json:"hard_solved"`
}

// Difficulties are the allowed problem difficulties.
var Difficulties = []string{"Easy", "Medium", "Hard"}
