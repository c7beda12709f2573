package index

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"mcat/catalog"
	"mcat/config"
	"mcat/model"
)

func loadSample(t *testing.T) *catalog.Collection {
	t.Helper()

	cfg := &config.CatalogConfig{Extensions: []string{".xml"}}
	coll, err := catalog.Load(context.Background(), "../testdata/library.xml", cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return coll
}

func TestRecords(t *testing.T) {
	records := Records(loadSample(t))
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}

	album := records[0]
	if album.UniqueKey != "heartland-1999-1" || album.Kind != "album" {
		t.Errorf("album record = %+v", album)
	}
	if album.Year != 1999 || album.Index != 1 {
		t.Errorf("album year/index = %d/%d", album.Year, album.Index)
	}
	if want := 7*time.Minute + 45*time.Second + 500*time.Millisecond; album.Runtime != want {
		t.Errorf("album runtime = %v, want %v", album.Runtime, want)
	}
	if album.MediaTitle != "Heartland" {
		t.Errorf("album media title = %q", album.MediaTitle)
	}

	movie := records[1]
	if movie.UniqueKey != "river_turns_inward_+a-0000-1" || movie.FileTitle != "a_river_turns_inward" {
		t.Errorf("movie record = %+v", movie)
	}
	if movie.Runtime != time.Hour+45*time.Minute+30*time.Second {
		t.Errorf("movie runtime = %v", movie.Runtime)
	}
	if movie.ID == "" || movie.ID == album.ID {
		t.Errorf("bad ids: %q %q", movie.ID, album.ID)
	}
}

func TestStore(t *testing.T) {
	s, err := Open(Memory)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	records := Records(loadSample(t))
	if err := s.Replace(records); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	all, err := s.All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != len(records) {
		t.Fatalf("All() = %d records, want %d", len(all), len(records))
	}
	for i := range all {
		if all[i] != records[i] {
			t.Errorf("record %d = %+v, want %+v", i, all[i], records[i])
		}
	}

	rec, err := s.Lookup("heartland-1999-1")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if rec.Title != "Heartland" {
		t.Errorf("Lookup() = %+v", rec)
	}
	if _, err := s.Lookup("missing-0000-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup(missing) error = %v, want ErrNotFound", err)
	}

	counts, err := s.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if counts[model.KindMovie] != 1 || counts[model.KindAlbum] != 1 {
		t.Errorf("Count() = %v", counts)
	}

	// replace drops previous content
	if err := s.Replace(records[:1]); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if all, _ = s.All(); len(all) != 1 {
		t.Errorf("after Replace() %d records, want 1", len(all))
	}
}

func TestStore_ReplaceIsAtomic(t *testing.T) {
	s, err := Open(Memory)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	good := Record{ID: "1", UniqueKey: "a-0000-1", Kind: "movie", Title: "A", SortTitle: "a", FileTitle: "a", Index: 1}
	if err := s.Replace([]Record{good}); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	// duplicate primary key fails the whole batch
	other := good
	other.UniqueKey = "b-0000-1"
	if err := s.Replace([]Record{other, other}); err == nil {
		t.Fatal("expected error on duplicate key")
	}

	all, err := s.All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 1 || all[0].UniqueKey != good.UniqueKey {
		t.Errorf("index changed after failed Replace(): %+v", all)
	}
}

func TestStore_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Replace(Records(loadSample(t))); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()
	all, err := s.All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("reopened index has %d records, want 2", len(all))
	}
}
