package judge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownLanguage is returned when a language has no Judge0 mapping.
var ErrUnknownLanguage = errors.New("unknown language")

// TestCase is one example input with its expected output.
type TestCase struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Payload is the body accepted by the submission proxy.
type Payload struct {
	LanguageID int        `json:"language_id"`
	SourceCode string     `json:"source_code"`
	TestCases  []TestCase `json:"test_cases,omitempty"`
}

// Request is the body forwarded to the judge's "create and wait" endpoint.
type Request struct {
	LanguageID     int    `json:"language_id"`
	SourceCode     string `json:"source_code"`
	Stdin          string `json:"stdin"`
	ExpectedOutput string `json:"expected_output"`
}

// Status is the judge's categorical verdict.
type Status struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Result is a judge response. Absent fields stay nil.
type Result struct {
	Status        *Status `json:"status,omitempty"`
	Time          *string `json:"time,omitempty"`
	Memory        *int    `json:"memory,omitempty"`
	Stdout        *string `json:"stdout,omitempty"`
	Stderr        *string `json:"stderr,omitempty"`
	CompileOutput *string `json:"compile_output,omitempty"`
}

// Verdict returns the status description, or "" when the judge sent none.
func (r *Result) Verdict() string {
	if r == nil || r.Status == nil {
		return ""
	}
	return r.Status.Description
}

// FailedResult is what callers show when a run could not reach the judge.
func FailedResult() *Result {
	return &Result{Status: &Status{ID: 0, Description: "Failed"}}
}

// CodeJudge executes one submission synchronously and returns the judge's
// raw JSON body.
type CodeJudge interface {
	Submit(ctx context.Context, req Request) (json.RawMessage, error)
}

// FirstCase picks the single case that is actually checked per run: the
// first one, or an empty pair when none are supplied.
func FirstCase(cases []TestCase) TestCase {
	if len(cases) == 0 {
		return TestCase{}
	}
	return cases[0]
}

// NewRequest builds the upstream request for a proxy payload.
func NewRequest(p Payload) Request {
	tc := FirstCase(p.TestCases)
	return Request{
		LanguageID:     p.LanguageID,
		SourceCode:     p.SourceCode,
		Stdin:          tc.Input,
		ExpectedOutput: tc.Output,
	}
}

// Decode parses a raw judge body without validating its shape.
func Decode(raw []byte) (*Result, error) {
	var r Result
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decode judge result: %w", err)
	}
	return &r, nil
}
