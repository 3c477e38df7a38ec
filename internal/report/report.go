// Package report folds `go test -json` event streams into per-package
// grading results.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// TestEvent mirrors the JSON records emitted by `go test -json`.
type TestEvent struct {
	Action  string  `json:"Action"`
	Package string  `json:"Package"`
	Test    string  `json:"Test,omitempty"`
	Output  string  `json:"Output,omitempty"`
	Elapsed float64 `json:"Elapsed,omitempty"`
}

// PackageResult is the graded outcome of one package.
type PackageResult struct {
	Status      string   `json:"status"` // pass|fail|skip|unknown
	FailedTests []string `json:"failed_tests,omitempty"`
}

const (
	StatusPass    = "pass"
	StatusFail    = "fail"
	StatusSkip    = "skip"
	StatusUnknown = "unknown"
)

// Collect reads a `go test -json` stream and returns results keyed by
// package import path. expected pre-seeds packages so they appear even if no
// events were emitted for them; packages in ignored never appear.
func Collect(in io.Reader, expected []string, ignored map[string]struct{}) (map[string]*PackageResult, error) {
	results := map[string]*PackageResult{}
	ensure := func(pkg string) *PackageResult {
		if res, ok := results[pkg]; ok {
			return res
		}
		res := &PackageResult{Status: StatusUnknown}
		results[pkg] = res
		return res
	}

	for _, p := range expected {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, skip := ignored[p]; skip {
			continue
		}
		ensure(p)
	}

	sc := bufio.NewScanner(in)
	// go test output lines can be large (panic stacktrace, long logs)
	sc.Buffer(make([]byte, 1024), 10*1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || !strings.HasPrefix(line, "{") {
			continue
		}

		var ev TestEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			// ignore non-json garbage lines
			continue
		}
		if ev.Package == "" {
			continue
		}
		if _, skip := ignored[ev.Package]; skip {
			continue
		}
		res := ensure(ev.Package)

		// package-level result: Action pass/fail/skip and empty Test
		if ev.Test == "" {
			switch ev.Action {
			case "pass":
				res.Status = StatusPass
			case "fail":
				res.Status = StatusFail
			case "skip":
				if res.Status == StatusUnknown {
					res.Status = StatusSkip
				}
			}
			continue
		}

		if ev.Action == "fail" {
			res.FailedTests = append(res.FailedTests, ev.Test)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning test output: %w", err)
	}

	return results, nil
}

// ReadPackageList reads one package import path per line, e.g. the output of
// `go list ./...`.
func ReadPackageList(in io.Reader) ([]string, error) {
	var pkgs []string
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		l := strings.TrimSpace(sc.Text())
		if l != "" {
			pkgs = append(pkgs, l)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading package list: %w", err)
	}
	return pkgs, nil
}
