package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go_fundamentals_lab/internal/badge"
)

func main() {
	inPath := flag.String("in", "package-results.json", "input json path")
	outDir := flag.String("out", "badges/tasks", "output directory for .svg files")
	style := flag.String("style", "flat", "shields style (flat, flat-square, for-the-badge, etc.)")
	unknownMsg := flag.String("unknown", "unknown", "message for unknown status")
	timeout := flag.Duration("timeout", 20*time.Second, "http timeout")
	flag.Parse()

	b, err := os.ReadFile(*inPath)
	must(err)

	var m map[string]badge.Result
	must(json.Unmarshal(b, &m))

	tasks := badge.FromResults(m)

	must(os.MkdirAll(*outDir, 0o755))

	client := &http.Client{Timeout: *timeout}

	written := 0
	for _, t := range tasks {
		msg, color := badge.MapStatus(t.Status, *unknownMsg)
		label := "task " + t.ID

		u := badge.URL(label, msg, color, *style)

		outPath := filepath.Join(*outDir, fmt.Sprintf("task_%s.svg", t.ID))
		must(badge.Download(client, u, outPath))

		written++
	}

	fmt.Printf("generated %d svg badge files in %s\n", written, *outDir)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
