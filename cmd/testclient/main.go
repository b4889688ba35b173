// testclient runs a local source file through a running server's submission
// proxy and prints the result panel the editor would show.
//
// Usage:
//
//	go run ./cmd/testclient -lang python -input "" -output 1 solution.py
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gsarma/algodojo/internal/editor"
	"github.com/gsarma/algodojo/internal/judge"
	"github.com/gsarma/algodojo/internal/submit"
)

var (
	server  = flag.String("server", "http://localhost:8080", "origin serving /api/submit")
	lang    = flag.String("lang", "python", "javascript, python, java or cpp")
	input   = flag.String("input", "", "stdin for the run")
	output  = flag.String("output", "", "expected output")
	timeout = flag.Duration("timeout", 60*time.Second, "overall timeout")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: testclient [flags] <source file>")
	}
	l, err := judge.ParseLanguage(*lang)
	if err != nil {
		log.Fatal(err)
	}
	src, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cases := []judge.TestCase{{Input: *input, Output: *output}}
	ctrl, err := editor.NewController(ctx, "local", l, cases, editor.NewMemoryDrafts(1), submit.New(*server))
	if err != nil {
		log.Fatal(err)
	}
	if err := ctrl.Edit(ctx, string(src)); err != nil {
		log.Fatal(err)
	}
	ctrl.Run(ctx)

	fmt.Println(ctrl.View())
}
