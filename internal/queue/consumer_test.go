package queue

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func newTestConsumer(t *testing.T) *ViewConsumer {
	t.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &ViewConsumer{Queue: "movie.viewed", LogDir: filepath.Join(t.TempDir(), "logs"), Log: logrus.NewEntry(l)}
}

func TestHandleMessage_AppendsLines(t *testing.T) {
	vc := newTestConsumer(t)
	for _, id := range []string{"10", "11"} {
		body, _ := json.Marshal(MovieViewedEvent{MovieID: id, Title: "Heat", CastShown: 8, ViewedAt: "2024-05-01T12:00:00Z"})
		if err := vc.HandleMessage(body); err != nil {
			t.Fatalf("handle %s: %v", id, err)
		}
	}
	data, err := os.ReadFile(filepath.Join(vc.LogDir, ViewLogFile))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d: %q", len(lines), data)
	}
	if !strings.Contains(lines[0], "movie_id=10") || !strings.Contains(lines[1], "movie_id=11") {
		t.Fatalf("unexpected log: %q", data)
	}
	if !strings.HasPrefix(lines[0], "[2024-05-01T12:00:00Z] Movie viewed") || !strings.Contains(lines[0], `title="Heat"`) {
		t.Fatalf("line = %q", lines[0])
	}
}

func TestHandleMessage_RejectsBadBodies(t *testing.T) {
	vc := newTestConsumer(t)
	for _, body := range []string{"not json", `{"title":"no id"}`} {
		if err := vc.HandleMessage([]byte(body)); err == nil {
			t.Fatalf("%q: expected error", body)
		}
	}
	if _, err := os.Stat(filepath.Join(vc.LogDir, ViewLogFile)); !os.IsNotExist(err) {
		t.Fatalf("log file written for rejected messages")
	}
}
