package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/domain/route"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func writeDocument(t *testing.T, doc string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "services.json")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("failed to write document: %v", err)
	}

	return path
}

func TestRoutesCheckListsServices(t *testing.T) {
	path := writeDocument(t, `{
		"regresos": {"queue": "queue-regresos", "url": "https://regresos.example.com/run", "deadline_s": 1800},
		"brain": {"queue": "queue-brain", "url": "https://brain.example.com/process", "aud": "https://brain.example.com", "deadline_s": 700}
	}`)

	out, err := runRoot(t, "routes", "check", path)
	if err != nil {
		t.Fatalf("routes check unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got:\n%s", out)
	}

	if !strings.HasPrefix(lines[1], "brain") || !strings.HasPrefix(lines[2], "regresos") {
		t.Fatalf("rows are not sorted by service:\n%s", out)
	}

	if !strings.Contains(lines[2], "https://regresos.example.com ") {
		t.Fatalf("default audience missing:\n%s", out)
	}
}

func TestRoutesCheckJSON(t *testing.T) {
	path := writeDocument(t, `{"brain": {"queue": "queue-brain", "url": "https://brain.example.com/process", "deadline_s": 700}}`)

	out, err := runRoot(t, "routes", "check", "--json", path)
	if err != nil {
		t.Fatalf("routes check unexpected error: %v", err)
	}

	table, err := route.ParseDocument([]byte(out))
	if err != nil {
		t.Fatalf("normalized output does not parse: %v", err)
	}

	e, ok := table.Lookup("brain")
	if !ok || e.Audience() != "https://brain.example.com" {
		t.Fatalf("unexpected normalized entry: %+v", e)
	}
}

func TestRoutesCheckRejectsInvalidDocument(t *testing.T) {
	path := writeDocument(t, `{"brain": {"queue": "", "url": "https://brain.example.com/process", "deadline_s": 700}}`)

	if _, err := runRoot(t, "routes", "check", path); !errors.Is(err, route.ErrInvalidDocument) {
		t.Fatalf("routes check error = %v, want %v", err, route.ErrInvalidDocument)
	}
}

func TestRoutesCheckRequiresFile(t *testing.T) {
	if _, err := runRoot(t, "routes", "check"); err == nil {
		t.Fatalf("expected error without a file argument")
	}
}
