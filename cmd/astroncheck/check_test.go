package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"astron-hq/astroncheck/pkg/cli"
)

func TestCheckValidFile(t *testing.T) {
	out, err := executeCommand(t, "check", "--file", "testdata/valid.yml")
	if err != nil {
		t.Fatalf("check with valid file returned error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "✓ testdata/valid.yml: Valid") {
		t.Errorf("output missing valid line:\n%s", out)
	}
	if !strings.Contains(out, "Summary: 1 file(s), 0 invalid, 0 finding(s)") {
		t.Errorf("output missing summary:\n%s", out)
	}
}

func TestCheckInvalidFile(t *testing.T) {
	out, err := executeCommand(t, "check", "--file", "testdata/invalid.yml")
	if err == nil {
		t.Fatal("check with invalid file should return error")
	}
	if code := cli.ExitCode(err); code != cli.ExitInvalid {
		t.Errorf("ExitCode() = %d, want %d", code, cli.ExitInvalid)
	}

	for _, want := range []string{
		"✗ testdata/invalid.yml: Invalid",
		"roles[0].control: value is in reserved range",
		`roles[1].type: unknown role type "stateservr"`,
		"suggestion: Did you mean 'stateserver'?",
		"roles[2].queque: unexpected attribute queque",
		"roles[2].channels.max",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no file or dir", args: []string{"check"}},
		{name: "nonexistent file", args: []string{"check", "--file", "testdata/nonexistent.yml"}},
		{name: "file and dir", args: []string{"check", "--file", "testdata/valid.yml", "--dir", "testdata"}},
		{name: "unsupported format", args: []string{"check", "--file", "testdata/valid.yml", "--format", "junit"}},
		{name: "positional argument", args: []string{"check", "testdata/valid.yml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if code := cli.ExitCode(err); code != cli.ExitError {
				t.Errorf("ExitCode() = %d, want %d (err %v)", code, cli.ExitError, err)
			}
		})
	}
}

func TestCheckUnreadableFileIsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	if err := os.WriteFile(path, []byte("roles:\n  - type: [stateserver\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(t, "check", "--file", path)
	if cli.ExitCode(err) != cli.ExitInvalid {
		t.Fatalf("ExitCode() = %d, want %d (err %v)", cli.ExitCode(err), cli.ExitInvalid, err)
	}
	if !strings.Contains(out, "✗ "+path+": Invalid") {
		t.Errorf("output missing invalid line:\n%s", out)
	}
}

func TestCheckDirectory(t *testing.T) {
	out, err := executeCommand(t, "check", "--dir", "testdata/cluster")
	if cli.ExitCode(err) != cli.ExitInvalid {
		t.Fatalf("ExitCode() = %d, want %d (err %v)", cli.ExitCode(err), cli.ExitInvalid, err)
	}

	for _, want := range []string{
		"✓ " + filepath.Join("testdata", "cluster", "a.yml") + ": Valid",
		"✗ " + filepath.Join("testdata", "cluster", "b.yaml") + ": Invalid",
		"Summary: 2 file(s), 1 invalid",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "README") {
		t.Errorf("non-YAML file should be skipped:\n%s", out)
	}
}

func TestCheckJSONFormat(t *testing.T) {
	out, err := executeCommand(t, "check", "--dir", "testdata/cluster", "--format", "json")
	if cli.ExitCode(err) != cli.ExitInvalid {
		t.Fatalf("ExitCode() = %d, want %d (err %v)", cli.ExitCode(err), cli.ExitInvalid, err)
	}

	var run struct {
		RunID   string `json:"run_id"`
		Trigger string `json:"trigger"`
		Results []struct {
			File     string `json:"file"`
			Verdict  string `json:"verdict"`
			Findings []struct {
				Path     string `json:"path"`
				Category string `json:"category"`
			} `json:"findings"`
		} `json:"results"`
	}
	if err := json.Unmarshal([]byte(out), &run); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if _, err := uuid.Parse(run.RunID); err != nil {
		t.Errorf("run_id %q is not a UUID", run.RunID)
	}
	if run.Trigger != "initial" {
		t.Errorf("trigger = %q, want initial", run.Trigger)
	}
	if len(run.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(run.Results))
	}
	if run.Results[0].Verdict != "Valid" || run.Results[1].Verdict != "Invalid" {
		t.Errorf("verdicts = %q, %q", run.Results[0].Verdict, run.Results[1].Verdict)
	}
	if f := run.Results[1].Findings; len(f) != 1 || f[0].Path != "roles[0].control" || f[0].Category != "field" {
		t.Errorf("findings = %+v", f)
	}
}

func TestCheckCSVFormat(t *testing.T) {
	out, err := executeCommand(t, "check", "--file", "testdata/invalid.yml", "--format", "csv")
	if cli.ExitCode(err) != cli.ExitInvalid {
		t.Fatalf("ExitCode() = %d, want %d (err %v)", cli.ExitCode(err), cli.ExitInvalid, err)
	}

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("output is not CSV: %v\n%s", err, out)
	}
	if len(rows) < 2 {
		t.Fatalf("rows = %v", rows)
	}
	if strings.Join(rows[0], ",") != "file,verdict,path,category,line,column,message,suggestion" {
		t.Errorf("header = %v", rows[0])
	}
	for _, row := range rows[1:] {
		if row[0] != "testdata/invalid.yml" || row[1] != "Invalid" {
			t.Errorf("row = %v", row)
		}
	}
}

func TestCheckSettingsDisableReservedBand(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "astroncheck.yaml")
	content := "validation:\n  reserved_channels:\n    min: 0\n    max: 0\n"
	if err := os.WriteFile(settings, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	doc := filepath.Join(t.TempDir(), "astrond.yml")
	if err := os.WriteFile(doc, []byte("messagedirector:\n  bind: 127.0.0.1:57123\nroles:\n  - type: stateserver\n    control: 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if out, err := executeCommand(t, "check", "--file", doc); err == nil {
		t.Fatalf("channel 100 should be reserved by default:\n%s", out)
	}
	if out, err := executeCommand(t, "--config", settings, "check", "--file", doc); err != nil {
		t.Fatalf("channel 100 should be accepted without a reserved band: %v\n%s", err, out)
	}
}

func TestCheckBadSettings(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "astroncheck.yaml")
	if err := os.WriteFile(settings, []byte("logging:\n  level: loud\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := executeCommand(t, "--config", settings, "check", "--file", "testdata/valid.yml")
	if cli.ExitCode(err) != cli.ExitError {
		t.Errorf("ExitCode() = %d, want %d (err %v)", cli.ExitCode(err), cli.ExitError, err)
	}
}

func TestCheckWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "astrond.yml")
	valid, err := os.ReadFile("testdata/valid.yml")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, valid, 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- executeContext(t, ctx, &out, "check", "--dir", dir, "--watch") }()

	waitFor := func(substr string) {
		t.Helper()
		deadline := time.Now().Add(5 * time.Second)
		for time.Now().Before(deadline) {
			if strings.Contains(out.String(), substr) {
				return
			}
			time.Sleep(20 * time.Millisecond)
		}
		t.Fatalf("timed out waiting for %q in:\n%s", substr, out.String())
	}

	waitFor("✓ " + path + ": Valid")
	// Give the watcher time to register the directory.
	time.Sleep(200 * time.Millisecond)

	invalid := strings.Replace(string(valid), "control: 100100", "control: 100", 1)
	if err := os.WriteFile(path, []byte(invalid), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor("✗ " + path + ": Invalid")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch mode returned error after cancel: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch mode did not stop after cancel")
	}
}

func TestCheckScheduleFromSettings(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "astroncheck.yaml")
	if err := os.WriteFile(settings, []byte("watch:\n  schedule: \"@hourly\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- executeContext(t, ctx, &out, "--config", settings, "check", "--file", "testdata/valid.yml")
	}()

	select {
	case err := <-done:
		t.Fatalf("check returned before cancel (err %v); watch.schedule should keep it running:\n%s", err, out.String())
	case <-time.After(500 * time.Millisecond):
	}
	if !strings.Contains(out.String(), "✓ testdata/valid.yml: Valid") {
		t.Errorf("initial run missing from output:\n%s", out.String())
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("scheduled mode returned error after cancel: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled mode did not stop after cancel")
	}
}

func TestExisting(t *testing.T) {
	dir := t.TempDir()
	kept := filepath.Join(dir, "a.yml")
	if err := os.WriteFile(kept, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	got := existing([]string{kept, filepath.Join(dir, "deleted.yml"), dir})
	if len(got) != 1 || got[0] != kept {
		t.Errorf("existing() = %v, want [%s]", got, kept)
	}
}
