// Package badge renders per-task shields.io status badges from the grading
// results file.
package badge

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Result is the slice of a grading result the badge needs.
type Result struct {
	Status string `json:"status"`
}

// Task is one badge to render.
type Task struct {
	Key    string // package path the result came from
	Num    int    // numeric id for ordering
	ID     string // id as written, leading zeros kept, e.g. "00"
	Status string
}

var taskRe = regexp.MustCompile(`task_(\d+)`)

// FromResults picks task packages out of the results map and orders them by
// task number. Keys without a task_NN segment are skipped.
func FromResults(m map[string]Result) []Task {
	tasks := make([]Task, 0, len(m))
	for k, r := range m {
		id, num, ok := ExtractTaskID(k)
		if !ok {
			continue
		}
		tasks = append(tasks, Task{
			Key:    k,
			Num:    num,
			ID:     id,
			Status: r.Status,
		})
	}

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Num != tasks[j].Num {
			return tasks[i].Num < tasks[j].Num
		}
		return tasks[i].Key < tasks[j].Key
	})
	return tasks
}

// ExtractTaskID finds a task_NN segment in a package path.
func ExtractTaskID(key string) (id string, num int, ok bool) {
	m := taskRe.FindStringSubmatch(key)
	if len(m) != 2 {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return "", 0, false
	}
	return m[1], n, true
}

// MapStatus translates a grading status into badge message and color.
func MapStatus(status, unknownMsg string) (message, color string) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "pass":
		return "ok", "brightgreen"
	case "fail":
		return "fail", "red"
	default:
		return unknownMsg, "lightgrey"
	}
}

// URL builds a shields.io badge URL. The /badge/ path uses the
// LABEL-MESSAGE-COLOR format, so each segment is escaped on its own to turn
// spaces into %20.
func URL(label, message, color, style string) string {
	u := fmt.Sprintf("https://img.shields.io/badge/%s-%s-%s.svg",
		url.PathEscape(label), url.PathEscape(message), url.PathEscape(color))

	v := url.Values{}
	if style != "" {
		v.Set("style", style)
	}
	if qs := v.Encode(); qs != "" {
		u += "?" + qs
	}
	return u
}

// Download fetches u into outPath via a temp file, so a failed fetch never
// leaves a truncated SVG behind.
func Download(client *http.Client, u, outPath string) error {
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "badgesvg/1.0 (+github actions)")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("GET %s: status %d: %s", u, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	tmp := outPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	_, copyErr := io.Copy(f, resp.Body)
	closeErr := f.Close()
	if copyErr != nil {
		_ = os.Remove(tmp)
		return copyErr
	}
	if closeErr != nil {
		_ = os.Remove(tmp)
		return closeErr
	}

	return os.Rename(tmp, outPath)
}
