package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go_fundamentals_lab/internal/changes"
	"go_fundamentals_lab/internal/config"
)

// Report is the change-policy verdict written for CI.
type Report struct {
	OK                bool             `json:"ok"`
	CheckedAt         string           `json:"checked_at"`
	DiffFile          string           `json:"diff_file"`
	ConfigFile        string           `json:"config_file"`
	AllowList         []string         `json:"allow_list"`
	ChangedPaths      []string         `json:"changed_paths"`
	Unexpected        []string         `json:"unexpected"`
	UnexpectedChanges []changes.Change `json:"unexpected_changes,omitempty"`
}

func main() {
	cfgPath := flag.String("config", "./.etc/config.yaml", "course config file")
	diffPath := flag.String("diff", "changed_files.raw", "path to diff file (git diff --name-status output)")
	outPath := flag.String("out", "change-policy-result.json", "output json file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(2)
	}

	pol, err := changes.NewPolicy(cfg.Diff.AllowList)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config read error:", err)
		os.Exit(2)
	}

	f, err := os.Open(*diffPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "diff read error:", err)
		os.Exit(2)
	}
	parsed, err := changes.ParseDiff(f)
	f.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "diff read error:", err)
		os.Exit(2)
	}

	changed, unexpected, offending := changes.Verdict(parsed, pol)
	ok := len(unexpected) == 0

	rep := Report{
		OK:                ok,
		CheckedAt:         time.Now().UTC().Format(time.RFC3339),
		DiffFile:          *diffPath,
		ConfigFile:        *cfgPath,
		AllowList:         pol.Patterns(),
		ChangedPaths:      changed,
		Unexpected:        unexpected,
		UnexpectedChanges: offending,
	}

	if *outPath != "" {
		if err := writeJSON(*outPath, rep); err != nil {
			fmt.Fprintln(os.Stderr, "report write error:", err)
			os.Exit(2)
		}
	}

	if ok {
		fmt.Printf("OK: all changes are allowed. Changed files: %d\n", len(changed))
		os.Exit(0)
	}

	fmt.Printf("FAIL: unexpected changes detected: %d\n", len(unexpected))
	for _, p := range unexpected {
		fmt.Println(p)
	}
	os.Exit(1)
}

func writeJSON(p string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(p); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(p, b, 0o644)
}
