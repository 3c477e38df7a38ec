package badge

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractTaskID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		arg     string
		wantID  string
		wantNum int
		wantOK  bool
	}{
		{
			name:    "task package path",
			arg:     "go_fundamentals_lab/tasks/task_00",
			wantID:  "00",
			wantNum: 0,
			wantOK:  true,
		},
		{
			name:    "double digit",
			arg:     "go_fundamentals_lab/tasks/task_10",
			wantID:  "10",
			wantNum: 10,
			wantOK:  true,
		},
		{
			name:   "not a task",
			arg:    "go_fundamentals_lab/internal/config",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			id, num, ok := ExtractTaskID(tt.arg)
			if ok != tt.wantOK || id != tt.wantID || num != tt.wantNum {
				t.Fatalf("ExtractTaskID(%q) = %q, %d, %v; want %q, %d, %v",
					tt.arg, id, num, ok, tt.wantID, tt.wantNum, tt.wantOK)
			}
		})
	}
}

func TestFromResults(t *testing.T) {
	m := map[string]Result{
		"go_fundamentals_lab/tasks/task_01": {Status: "fail"},
		"go_fundamentals_lab/tasks/task_00": {Status: "pass"},
		"go_fundamentals_lab/internal/badge": {Status: "pass"}, // not a task
	}

	tasks := FromResults(m)
	require.Len(t, tasks, 2)
	require.Equal(t, "00", tasks[0].ID)
	require.Equal(t, "pass", tasks[0].Status)
	require.Equal(t, "01", tasks[1].ID)
	require.Equal(t, "fail", tasks[1].Status)
}

func TestMapStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    string
		wantMsg   string
		wantColor string
	}{
		{name: "pass", status: "pass", wantMsg: "ok", wantColor: "brightgreen"},
		{name: "pass with noise", status: "  PASS ", wantMsg: "ok", wantColor: "brightgreen"},
		{name: "fail", status: "fail", wantMsg: "fail", wantColor: "red"},
		{name: "unknown", status: "unknown", wantMsg: "unknown", wantColor: "lightgrey"},
		{name: "skip maps to unknown", status: "skip", wantMsg: "unknown", wantColor: "lightgrey"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			msg, color := MapStatus(tt.status, "unknown")
			if msg != tt.wantMsg || color != tt.wantColor {
				t.Fatalf("MapStatus(%q) = %q, %q; want %q, %q",
					tt.status, msg, color, tt.wantMsg, tt.wantColor)
			}
		})
	}
}

func TestURL(t *testing.T) {
	got := URL("task 00", "ok", "brightgreen", "flat")
	want := "https://img.shields.io/badge/task%2000-ok-brightgreen.svg?style=flat"
	require.Equal(t, want, got)

	got = URL("task 01", "fail", "red", "")
	want = "https://img.shields.io/badge/task%2001-fail-red.svg"
	require.Equal(t, want, got)
}

func TestDownload(t *testing.T) {
	const svg = `<svg>task 00: ok</svg>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(svg))
	}))
	defer srv.Close()

	outPath := filepath.Join(t.TempDir(), "task_00.svg")
	require.NoError(t, Download(srv.Client(), srv.URL, outPath))

	b, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, svg, string(b))

	// no .tmp leftovers
	_, err = os.Stat(outPath + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestDownload_non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such badge", http.StatusNotFound)
	}))
	defer srv.Close()

	outPath := filepath.Join(t.TempDir(), "task_00.svg")
	err := Download(srv.Client(), srv.URL, outPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 404")
	require.Contains(t, err.Error(), "no such badge")

	_, statErr := os.Stat(outPath)
	require.True(t, os.IsNotExist(statErr))
}
