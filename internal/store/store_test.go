package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// stubQuerier records the calls recordSubmission makes.
type stubQuerier struct {
	Querier
	solvedBefore bool
	created      []CreateSubmissionParams
	incremented  []IncrementSolvedParams
	createErr    error
	lockErr      error
	calls        []string
}

func (s *stubQuerier) LockProfile(_ context.Context, id uuid.UUID) error {
	s.calls = append(s.calls, "lock")
	return s.lockErr
}

func (s *stubQuerier) HasAcceptedSubmission(context.Context, HasAcceptedSubmissionParams) (bool, error) {
	s.calls = append(s.calls, "has_accepted")
	return s.solvedBefore, nil
}

func (s *stubQuerier) CreateSubmission(_ context.Context, arg CreateSubmissionParams) (Submission, error) {
	if s.createErr != nil {
		return Submission{}, s.createErr
	}
	s.calls = append(s.calls, "create")
	s.created = append(s.created, arg)
	return Submission{ID: uuid.New(), Verdict: arg.Verdict}, nil
}

func (s *stubQuerier) IncrementSolved(_ context.Context, arg IncrementSolvedParams) error {
	s.calls = append(s.calls, "increment")
	s.incremented = append(s.incremented, arg)
	return nil
}

func TestIsAccepted(t *testing.T) {
	for verdict, want := range map[string]bool{
		"Accepted":     true,
		"accepted":     true,
		"Wrong Answer": false,
		"":             false,
	} {
		if got := IsAccepted(verdict); got != want {
			t.Errorf("IsAccepted(%q) = %v", verdict, got)
		}
	}
}

func TestRecordSubmission_FirstAcceptIncrements(t *testing.T) {
	q := &stubQuerier{}
	user := uuid.New()
	_, err := recordSubmission(context.Background(), q, RecordSubmissionParams{
		UserID: user, ProblemID: 7, Difficulty: "Medium", Language: "python", Verdict: "Accepted",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(q.created) != 1 {
		t.Fatalf("expected one insert, got %d", len(q.created))
	}
	if len(q.incremented) != 1 || q.incremented[0].Difficulty != "Medium" || q.incremented[0].UserID != user {
		t.Errorf("expected one Medium increment, got %+v", q.incremented)
	}
}

func TestRecordSubmission_RepeatAcceptDoesNotIncrement(t *testing.T) {
	q := &stubQuerier{solvedBefore: true}
	if _, err := recordSubmission(context.Background(), q, RecordSubmissionParams{Verdict: "Accepted", Difficulty: "Easy"}); err != nil {
		t.Fatal(err)
	}
	if len(q.incremented) != 0 {
		t.Errorf("expected no increment, got %+v", q.incremented)
	}
}

func TestRecordSubmission_RejectedVerdict(t *testing.T) {
	q := &stubQuerier{}
	if _, err := recordSubmission(context.Background(), q, RecordSubmissionParams{Verdict: "Wrong Answer"}); err != nil {
		t.Fatal(err)
	}
	if len(q.created) != 1 || len(q.incremented) != 0 {
		t.Errorf("expected insert only, got %d inserts %d increments", len(q.created), len(q.incremented))
	}
}

func TestRecordSubmission_InsertError(t *testing.T) {
	q := &stubQuerier{createErr: errors.New("db down")}
	if _, err := recordSubmission(context.Background(), q, RecordSubmissionParams{Verdict: "Accepted"}); err == nil {
		t.Fatal("expected error")
	}
	if len(q.incremented) != 0 {
		t.Error("counters must not change when the insert fails")
	}
}

func TestRecordSubmission_LocksProfileBeforeCheckingSolved(t *testing.T) {
	q := &stubQuerier{}
	if _, err := recordSubmission(context.Background(), q, RecordSubmissionParams{UserID: uuid.New(), Verdict: "Accepted", Difficulty: "Hard"}); err != nil {
		t.Fatal(err)
	}
	want := []string{"lock", "has_accepted", "create", "increment"}
	if strings.Join(q.calls, ",") != strings.Join(want, ",") {
		t.Errorf("expected calls %v, got %v", want, q.calls)
	}
}

func TestRecordSubmission_LockError(t *testing.T) {
	q := &stubQuerier{lockErr: errors.New("deadlock detected")}
	if _, err := recordSubmission(context.Background(), q, RecordSubmissionParams{Verdict: "Accepted"}); err == nil {
		t.Fatal("expected error")
	}
	if len(q.created) != 0 || len(q.incremented) != 0 {
		t.Error("nothing may be written when the profile cannot be locked")
	}
}

func TestRecordSubmission_RejectedVerdictSkipsLock(t *testing.T) {
	q := &stubQuerier{}
	if _, err := recordSubmission(context.Background(), q, RecordSubmissionParams{Verdict: "Time Limit Exceeded"}); err != nil {
		t.Fatal(err)
	}
	if len(q.calls) != 1 || q.calls[0] != "create" {
		t.Errorf("expected insert only, got %v", q.calls)
	}
}
