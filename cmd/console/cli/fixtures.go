package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/odyssey-erp/odyssey-console/internal/fixtures"
)

// Exit codes of the fixtures check command.
const (
	ExitClean    = 0
	ExitUsage    = 1
	ExitProblems = 10
)

// FixturesCheckOptions defines available flags for the fixtures check command.
type FixturesCheckOptions struct {
	Dir        string
	JSONOutput bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// FixturesCheckSummary describes the JSON response for fixtures check.
type FixturesCheckSummary struct {
	OK       bool               `json:"ok"`
	Source   string             `json:"source"`
	Counts   map[string]int     `json:"counts"`
	Problems []fixtures.Problem `json:"problems"`
}

// FixturesCheck loads the fixture set and reports integrity problems.
func FixturesCheck(opts FixturesCheckOptions) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Dir != "" {
		info, err := os.Stat(opts.Dir)
		if err != nil || !info.IsDir() {
			_, _ = fmt.Fprintf(opts.Stderr, "fixtures check: %q is not a directory\n", opts.Dir)
			return ExitUsage
		}
	}
	ds, err := fixtures.Load(fixtures.Source(opts.Dir))
	if err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "fixtures check: %v\n", err)
		return ExitUsage
	}

	problems := fixtures.Check(ds)
	summary := FixturesCheckSummary{
		OK:       len(problems) == 0,
		Source:   sourceName(opts.Dir),
		Counts:   counts(ds),
		Problems: problems,
	}
	if summary.Problems == nil {
		summary.Problems = []fixtures.Problem{}
	}
	if opts.JSONOutput {
		if err := json.NewEncoder(opts.Stdout).Encode(summary); err != nil {
			_, _ = fmt.Fprintf(opts.Stderr, "fixtures check: encode json: %v\n", err)
			return ExitUsage
		}
	} else {
		renderCheckHuman(opts.Stdout, summary)
	}
	if !summary.OK {
		return ExitProblems
	}
	return ExitClean
}

func sourceName(dir string) string {
	if dir == "" {
		return "embedded"
	}
	return dir
}

func counts(ds fixtures.Dataset) map[string]int {
	return map[string]int{
		"customers": len(ds.Customers),
		"tenants":   len(ds.Tenants),
		"payments":  len(ds.Payments),
		"invoices":  len(ds.Invoices),
		"tickets":   len(ds.Tickets),
		"plans":     len(ds.Plans),
		"activity":  len(ds.Activity),
	}
}

func renderCheckHuman(w io.Writer, s FixturesCheckSummary) {
	_, _ = fmt.Fprintf(w, "Fixtures (%s): %d customers, %d tenants, %d payments, %d invoices, %d tickets, %d plans\n",
		s.Source, s.Counts["customers"], s.Counts["tenants"], s.Counts["payments"], s.Counts["invoices"], s.Counts["tickets"], s.Counts["plans"])
	if s.OK {
		_, _ = fmt.Fprintln(w, "No problems found.")
		return
	}
	_, _ = fmt.Fprintf(w, "%d problem(s):\n", len(s.Problems))
	for _, p := range s.Problems {
		_, _ = fmt.Fprintf(w, "  - %s\n", p)
	}
}
