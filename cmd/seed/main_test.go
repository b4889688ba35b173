package main

import (
	"strings"
	"testing"
)

const catalogue = `
problems:
  - title: Two Sum
    slug: two-sum
    difficulty: Easy
    tags: [array, hash-table]
    description: Add two numbers.
    test_cases:
      - input: "1 2"
        output: "3"
      - input: "2 2"
        output: "4"
  - title: Print One
    slug: print-one
    difficulty: Medium
`

func TestParseProblems(t *testing.T) {
	got, err := parseProblems([]byte(catalogue))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 problems, got %d", len(got))
	}
	first := got[0]
	if first.Slug != "two-sum" || first.Difficulty != "Easy" || len(first.Tags) != 2 {
		t.Errorf("unexpected first problem: %+v", first)
	}
	if len(first.TestCases) != 2 || first.TestCases[0].Input != "1 2" || first.TestCases[0].Output != "3" {
		t.Errorf("unexpected test cases: %+v", first.TestCases)
	}
	if got[1].TestCases != nil {
		t.Errorf("expected no test cases for print-one, got %+v", got[1].TestCases)
	}
}

func TestParseProblems_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing slug":       "problems:\n  - title: A\n    difficulty: Easy\n",
		"unknown difficulty": "problems:\n  - title: A\n    slug: a\n    difficulty: Trivial\n",
		"duplicate slug":     "problems:\n  - title: A\n    slug: a\n    difficulty: Easy\n  - title: B\n    slug: a\n    difficulty: Hard\n",
		"not yaml":           "problems: [",
	}
	for name, doc := range cases {
		if _, err := parseProblems([]byte(doc)); err == nil {
			t.Errorf("%s: expected an error", name)
		} else if strings.TrimSpace(err.Error()) == "" {
			t.Errorf("%s: empty error message", name)
		}
	}
}
