package persistence

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/talgya/narcosim/internal/config"
	"github.com/talgya/narcosim/internal/engine"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "narcosim.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndLoadGame(t *testing.T) {
	db := openTestDB(t)
	g := engine.New(config.Default(), 11, discard)
	if _, err := g.AdvanceDay(); err != nil {
		t.Fatal(err)
	}

	id := NewGameID()
	if err := db.SaveGame(id, g); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	loaded, err := db.LoadGame(id, config.Default(), discard)
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	want, _ := g.MarshalState()
	got, _ := loaded.MarshalState()
	if !bytes.Equal(got, want) {
		t.Error("loaded state differs from saved state")
	}

	// Saving again updates the same slot.
	if _, err := g.AdvanceDay(); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveGame(id, g); err != nil {
		t.Fatal(err)
	}
	games, err := db.ListGames()
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 || games[0].Day != 3 || games[0].Seed != 11 {
		t.Errorf("games = %+v, want one slot on day 3", games)
	}
	s, err := db.GetGame(id)
	if err != nil || s.Region != config.DefaultStartRegion {
		t.Errorf("GetGame = %+v, %v", s, err)
	}
}

func TestLoadMissingGame(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.LoadGame("nope", config.Default(), discard); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("LoadGame: err = %v, want ErrGameNotFound", err)
	}
	if _, err := db.GetGame("nope"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("GetGame: err = %v, want ErrGameNotFound", err)
	}
	if err := db.DeleteGame("nope"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("DeleteGame: err = %v, want ErrGameNotFound", err)
	}
}

func TestJournal(t *testing.T) {
	db := openTestDB(t)
	if err := db.AppendJournal("a", 1, []string{"one", "two"}); err != nil {
		t.Fatal(err)
	}
	if err := db.AppendJournal("a", 2, []string{"three"}); err != nil {
		t.Fatal(err)
	}
	if err := db.AppendJournal("b", 1, []string{"other game"}); err != nil {
		t.Fatal(err)
	}
	if err := db.AppendJournal("a", 3, nil); err != nil {
		t.Fatal(err)
	}

	got, err := db.RecentJournal("a", 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []JournalEntry{{Day: 1, Message: "two"}, {Day: 2, Message: "three"}}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDeleteGame(t *testing.T) {
	db := openTestDB(t)
	g := engine.New(config.Default(), 1, discard)
	if err := db.SaveGame("x", g); err != nil {
		t.Fatal(err)
	}
	if err := db.AppendJournal("x", 1, []string{"hello"}); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteGame("x"); err != nil {
		t.Fatal(err)
	}
	if games, _ := db.ListGames(); len(games) != 0 {
		t.Errorf("games left: %+v", games)
	}
	if lines, _ := db.RecentJournal("x", 10); len(lines) != 0 {
		t.Errorf("journal left: %+v", lines)
	}
}

func TestMeta(t *testing.T) {
	db := openTestDB(t)
	if v, err := db.GetMeta(MetaActiveGame); err != nil || v != "" {
		t.Errorf("missing key = %q, %v", v, err)
	}
	if err := db.SaveMeta(MetaActiveGame, "abc"); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveMeta(MetaActiveGame, "def"); err != nil {
		t.Fatal(err)
	}
	if v, _ := db.GetMeta(MetaActiveGame); v != "def" {
		t.Errorf("meta = %q, want def", v)
	}
}
