package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go_fundamentals_lab/internal/config"
	"go_fundamentals_lab/internal/report"
)

func main() {
	inPath := flag.String("in", "", "input file (go test -json output). If empty: read stdin")
	outPath := flag.String("out", "package-results.json", "output json file")
	pkgsPath := flag.String("pkgs", "", "optional packages list file (one package per line), e.g. from `go list ./...`")
	configPath := flag.String("config", "./.etc/config.yaml", "course config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(2)
	}

	var expected []string
	if *pkgsPath != "" {
		f, err := os.Open(*pkgsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open pkgs: %v\n", err)
			os.Exit(2)
		}
		expected, err = report.ReadPackageList(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "load pkgs: %v\n", err)
			os.Exit(2)
		}
	}

	in := os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open input: %v\n", err)
			os.Exit(2)
		}
		defer f.Close()
		in = f
	}

	results, err := report.Collect(in, expected, cfg.IgnoredPackages())
	if err != nil {
		fmt.Fprintf(os.Stderr, "collect results: %v\n", err)
		os.Exit(2)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output: %v\n", err)
		os.Exit(2)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		os.Exit(2)
	}
}
