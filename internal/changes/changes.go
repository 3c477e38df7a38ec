// Package changes checks a student's changed files against the course
// allow-list.
package changes

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// Change is one parsed line of `git diff --name-status` output.
type Change struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Raw    string `json:"raw"`
}

// Policy matches changed paths against gitignore-style allow-list patterns.
type Policy struct {
	patterns []string
	matcher  *ignore.GitIgnore
}

// NewPolicy compiles the allow-list. Blank entries are dropped.
func NewPolicy(allowList []string) (*Policy, error) {
	var patterns []string
	for _, pat := range allowList {
		pat = strings.TrimSpace(pat)
		if pat != "" {
			patterns = append(patterns, pat)
		}
	}
	if len(patterns) == 0 {
		return nil, errors.New("allow-list is empty")
	}
	return &Policy{
		patterns: patterns,
		matcher:  ignore.CompileIgnoreLines(patterns...),
	}, nil
}

// Patterns returns the compiled allow-list entries.
func (p *Policy) Patterns() []string {
	return p.patterns
}

// Allowed reports whether a normalized path matches the allow-list.
// Empty paths are vacuously allowed.
func (p *Policy) Allowed(pth string) bool {
	if pth == "" {
		return true
	}
	return p.matcher.MatchesPath(pth)
}

// ParseDiff reads `git diff --name-status` style lines. Lines that do not
// parse are kept as a wholesale changed path, so an odd diff format can make
// the check stricter but never blind.
func ParseDiff(in io.Reader) ([]Change, error) {
	var out []Change
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		raw := sc.Text()
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		ch, ok := parseDiffLine(raw)
		if !ok {
			if p := NormalizePath(line); p != "" {
				out = append(out, Change{Status: "?", Path: p, Raw: raw})
			}
			continue
		}
		out = append(out, ch)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading diff: %w", err)
	}
	return out, nil
}

func parseDiffLine(raw string) (Change, bool) {
	line := strings.TrimRight(raw, "\r\n")

	// name-status output is tab-separated; fall back to fields for
	// hand-made lists
	var parts []string
	if strings.Contains(line, "\t") {
		parts = strings.Split(line, "\t")
	} else {
		parts = strings.Fields(line)
	}
	if len(parts) < 2 {
		return Change{}, false
	}

	st := parts[0]
	ch := Change{Status: st, Raw: raw}

	// renames and copies carry both sides
	lead := st
	if len(lead) > 0 {
		lead = lead[:1]
	}
	if lead == "R" || lead == "C" {
		if len(parts) < 3 {
			return Change{}, false
		}
		ch.From = parts[1]
		ch.To = parts[2]
		return ch, true
	}

	ch.Path = parts[1]
	return ch, true
}

// NormalizePath cleans a diff path: slashes, a/ b/ prefixes, leading ./.
func NormalizePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")

	for strings.HasPrefix(p, "a/") || strings.HasPrefix(p, "b/") {
		p = p[2:]
	}
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")

	p = path.Clean(p)
	if p == "." {
		return ""
	}
	return p
}

// Verdict classifies parsed changes: every touched path (including both
// sides of a rename), sorted, plus the ones the allow-list rejects.
func Verdict(changes []Change, pol *Policy) (changed, unexpected []string, offending []Change) {
	changedSet := map[string]struct{}{}
	unexpectedSet := map[string]struct{}{}

	add := func(p string) {
		p = NormalizePath(p)
		if p == "" {
			return
		}
		changedSet[p] = struct{}{}
		if !pol.Allowed(p) {
			if _, seen := unexpectedSet[p]; !seen {
				unexpectedSet[p] = struct{}{}
				unexpected = append(unexpected, p)
			}
		}
	}

	for _, ch := range changes {
		add(ch.Path)
		add(ch.From)
		add(ch.To)
	}

	for _, ch := range changes {
		bad := false
		for _, p := range []string{ch.Path, ch.From, ch.To} {
			p = NormalizePath(p)
			if p != "" && !pol.Allowed(p) {
				bad = true
				break
			}
		}
		if bad {
			offending = append(offending, ch)
		}
	}

	changed = make([]string, 0, len(changedSet))
	for p := range changedSet {
		changed = append(changed, p)
	}
	sort.Strings(changed)
	sort.Strings(unexpected)
	return changed, unexpected, offending
}
