package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pilotbase-logbook/internal/domain/entity"
)

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := cmdRoot()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--backend", "file", "--data-dir", dir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func listFlights(t *testing.T, dir string, args ...string) []entity.FlightRecord {
	t.Helper()
	out, err := run(t, dir, append([]string{"list"}, args...)...)
	if err != nil {
		t.Fatalf("list: %v\n%s", err, out)
	}
	var records []entity.FlightRecord
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("decode list output: %v\n%s", err, out)
	}
	return records
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()

	if got := listFlights(t, dir); len(got) != 4 {
		t.Fatalf("fresh store: %d flights, want 4", len(got))
	}

	out, err := run(t, dir, "add", "--identifier", "N999XY", "--role", "student", "--status", "draft")
	if err != nil {
		t.Fatalf("add: %v\n%s", err, out)
	}
	var added entity.FlightRecord
	if err := json.Unmarshal([]byte(out), &added); err != nil {
		t.Fatal(err)
	}
	if added.ID == "" || added.AddedByRole != entity.RoleStudent {
		t.Fatalf("added = %+v", added)
	}

	if got := listFlights(t, dir, "--role", "student"); len(got) != 3 {
		t.Fatalf("student flights = %d, want 3", len(got))
	}
	if got := listFlights(t, dir, "--reservation", "res-1002"); len(got) != 1 {
		t.Fatalf("res-1002 flights = %d, want 1", len(got))
	}

	out, err = run(t, dir, "search", "n999xy")
	if err != nil || !strings.Contains(out, added.ID) {
		t.Fatalf("search: %v\n%s", err, out)
	}

	if out, err := run(t, dir, "remove", added.ID); err != nil {
		t.Fatalf("remove: %v\n%s", err, out)
	}
	if _, err := run(t, dir, "remove", added.ID); err == nil {
		t.Fatal("removing twice should fail")
	}

	if out, err := run(t, dir, "clear"); err != nil {
		t.Fatalf("clear: %v\n%s", err, out)
	}
	blob, err := os.ReadFile(filepath.Join(dir, "pilotbase", "savedFlights.blob"))
	if err != nil {
		t.Fatal(err)
	}
	if string(blob) != "[]" {
		t.Fatalf("after clear: persisted %s", blob)
	}
	// an empty collection is reseeded on the next start
	if got := listFlights(t, dir); len(got) != 4 {
		t.Fatalf("after clear and restart: %d flights, want 4", len(got))
	}

	if out, err := run(t, dir, "reset", "--all"); err != nil {
		t.Fatalf("reset: %v\n%s", err, out)
	}
	if got := listFlights(t, dir); len(got) != 4 {
		t.Fatalf("after reset: %d flights, want 4", len(got))
	}
}

func TestCommandsRejectBadInput(t *testing.T) {
	dir := t.TempDir()
	tests := [][]string{
		{"add"},
		{"add", "--identifier", "N1", "--role", "captain"},
		{"add", "--identifier", "N1", "--status", "landed"},
		{"list", "--role", "captain"},
		{"remove"},
		{"--backend", "redis", "list"},
		{"--codec", "yaml", "list"},
	}
	for _, args := range tests {
		if _, err := run(t, dir, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}
