package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap/zaptest"

	"mcat/config"
	"mcat/index"
	"mcat/state"
)

const sampleLibrary = "../testdata/library.xml"

func runApp(t *testing.T, strict bool, args ...string) error {
	t.Helper()

	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)

	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	env.Cfg, env.Log, env.Strict = cfg, zaptest.NewLogger(t), strict

	app := &cli.Command{
		Name: "mcat",
		Commands: []*cli.Command{
			{Name: "dump", Action: Dump},
			{Name: "list", Action: List},
			{Name: "index", Action: Index},
		},
	}
	return app.Run(ctx, append([]string{"mcat"}, args...))
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	return string(data)
}

func TestList(t *testing.T) {
	out := filepath.Join(t.TempDir(), "list.txt")
	if err := runApp(t, false, "list", sampleLibrary, out); err != nil {
		t.Fatalf("list error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(readOutput(t, out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("list output has %d lines, want 3:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if !strings.HasPrefix(lines[0], "KEY") {
		t.Errorf("header = %q", lines[0])
	}
	for i, want := range []string{"heartland-1999 ", "river_turns_inward_+a-0000 "} {
		if !strings.HasPrefix(lines[i+1], want) {
			t.Errorf("line %d = %q, want prefix %q", i+1, lines[i+1], want)
		}
	}
	if !strings.Contains(lines[2], "PT1H45M30S") || !strings.Contains(lines[2], "a_river_turns_inward-0") {
		t.Errorf("movie line = %q", lines[2])
	}
}

func TestDump(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dump.txt")
	if err := runApp(t, false, "dump", sampleLibrary, out); err != nil {
		t.Fatalf("dump error = %v", err)
	}
	text := readOutput(t, out)
	for _, want := range []string{`id="m-001"`, `id="m-002"`, "A River Turns Inward", "Francis Heart"} {
		if !strings.Contains(text, want) {
			t.Errorf("dump does not contain %q", want)
		}
	}
}

func TestIndex(t *testing.T) {
	db := filepath.Join(t.TempDir(), "index.db")
	if err := runApp(t, false, "index", sampleLibrary, db); err != nil {
		t.Fatalf("index error = %v", err)
	}

	s, err := index.Open(db)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()
	if _, err := s.Lookup("river_turns_inward_+a-0000-1"); err != nil {
		t.Errorf("Lookup() error = %v", err)
	}
}

func TestLoadFailures(t *testing.T) {
	dir := t.TempDir()
	bad := `<media xmlns="urn:mcat:media:1"><title>?</title><contents/></media>`
	if err := os.WriteFile(filepath.Join(dir, "bad.xml"), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(sampleLibrary)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "good.xml"), data, 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "list.txt")

	t.Run("lenient", func(t *testing.T) {
		if err := runApp(t, false, "list", dir, out); err != nil {
			t.Fatalf("list error = %v", err)
		}
		if !strings.Contains(readOutput(t, out), "heartland-1999") {
			t.Error("good document was not listed")
		}
	})

	t.Run("strict", func(t *testing.T) {
		if err := runApp(t, true, "list", dir, out); err == nil {
			t.Fatal("expected error in strict mode")
		}
	})

	t.Run("no source", func(t *testing.T) {
		if err := runApp(t, false, "list"); err == nil {
			t.Fatal("expected error without source")
		}
	})

	t.Run("nothing loaded", func(t *testing.T) {
		if err := runApp(t, false, "list", filepath.Join(dir, "bad.xml")); err == nil {
			t.Fatal("expected error when nothing was loaded")
		}
	})
}
