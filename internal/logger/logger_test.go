package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewWithOutput_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("web", "debug", &buf)
	log.WithField("movie_id", "10").Debug("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if line["service"] != "web" || line["movie_id"] != "10" || line["msg"] != "hello" {
		t.Fatalf("unexpected line %v", line)
	}
}

func TestNewWithOutput_BadLevelFallsBackToInfo(t *testing.T) {
	log := NewWithOutput("web", "loud", &bytes.Buffer{})
	if log.Logger.GetLevel() != logrus.InfoLevel {
		t.Fatalf("level = %s", log.Logger.GetLevel())
	}
}
