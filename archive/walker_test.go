package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

type zipEntry struct {
	name    string
	content string
}

func makeZip(t *testing.T, entries []zipEntry) string {
	t.Helper()

	zipPath := filepath.Join(t.TempDir(), "test.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	for _, e := range entries {
		fw, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", e.name, err)
		}
		if _, err := fw.Write([]byte(e.content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}
	return zipPath
}

func TestWalk(t *testing.T) {
	zipPath := makeZip(t, []zipEntry{
		{"movies/river.xml", "<media/>"},
		{"movies/bridge.xml", "<media/>"},
		{"movies/extras/", ""},
		{"albums/heart.xml", "<media/>"},
		{"readme.txt", "text"},
	})

	tests := []struct {
		prefix string
		want   []string
	}{
		{"movies/", []string{"movies/river.xml", "movies/bridge.xml"}},
		{"albums/", []string{"albums/heart.xml"}},
		{"Movies/", nil},
		{"nonexistent/", nil},
		{"", []string{"movies/river.xml", "movies/bridge.xml", "albums/heart.xml", "readme.txt"}},
	}
	for _, tt := range tests {
		t.Run("prefix "+tt.prefix, func(t *testing.T) {
			var visited []string
			err := Walk(zipPath, tt.prefix, func(archive string, file *zip.File) error {
				if archive != zipPath {
					t.Errorf("archive = %s, want %s", archive, zipPath)
				}
				visited = append(visited, file.Name)
				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if !slices.Equal(visited, tt.want) {
				t.Errorf("visited = %v, want %v", visited, tt.want)
			}
		})
	}
}

func TestWalk_EarlyTermination(t *testing.T) {
	zipPath := makeZip(t, []zipEntry{{"a.xml", "a"}, {"b.xml", "b"}, {"c.xml", "c"}})

	stopErr := errors.New("stop")
	count := 0
	err := Walk(zipPath, "", func(string, *zip.File) error {
		count++
		if count == 2 {
			return stopErr
		}
		return nil
	})
	if !errors.Is(err, stopErr) {
		t.Errorf("Walk() error = %v, want %v", err, stopErr)
	}
	if count != 2 {
		t.Errorf("visited %d files, want 2", count)
	}
}

func TestWalk_InvalidArchive(t *testing.T) {
	noop := func(string, *zip.File) error { return nil }

	if err := Walk("/nonexistent/file.zip", "", noop); err == nil {
		t.Error("expected error for missing archive")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.zip")
	if err := os.WriteFile(invalid, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Walk(invalid, "", noop); err == nil {
		t.Error("expected error for invalid archive")
	}
}

func TestReadEntry(t *testing.T) {
	zipPath := makeZip(t, []zipEntry{{"small.xml", "<media/>"}, {"big.xml", "0123456789abcdef"}})

	got := make(map[string]string)
	var tooLarge []string
	err := Walk(zipPath, "", func(_ string, f *zip.File) error {
		data, err := ReadEntry(f, 10)
		if errors.Is(err, ErrTooLarge) {
			tooLarge = append(tooLarge, f.Name)
			return nil
		}
		if err != nil {
			return err
		}
		got[f.Name] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if got["small.xml"] != "<media/>" {
		t.Errorf("small.xml = %q", got["small.xml"])
	}
	if !slices.Equal(tooLarge, []string{"big.xml"}) {
		t.Errorf("too large = %v, want [big.xml]", tooLarge)
	}

	// no limit
	err = Walk(zipPath, "big", func(_ string, f *zip.File) error {
		data, err := ReadEntry(f, 0)
		if err != nil {
			return err
		}
		if string(data) != "0123456789abcdef" {
			t.Errorf("big.xml = %q", data)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"movies/river.xml", true},
		{"river.xml", true},
		{"a..b/c.xml", true},
		{"../river.xml", false},
		{"movies/../../river.xml", false},
		{"/etc/passwd", false},
		{`\windows\file`, false},
	}
	for _, tt := range tests {
		if got := isSafePath(tt.name); got != tt.want {
			t.Errorf("isSafePath(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
