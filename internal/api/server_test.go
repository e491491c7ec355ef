package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/talgya/narcosim/internal/config"
	"github.com/talgya/narcosim/internal/engine"
	"github.com/talgya/narcosim/internal/persistence"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestServer(t *testing.T, opts Options) (*httptest.Server, string) {
	t.Helper()
	db, err := persistence.Open(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	g := engine.New(config.Default(), 5, discard)
	if _, err := g.AdvanceDay(); err != nil {
		t.Fatal(err)
	}
	id := persistence.NewGameID()
	if err := db.SaveGame(id, g); err != nil {
		t.Fatal(err)
	}
	if err := db.AppendJournal(id, 2, []string{"first", "second"}); err != nil {
		t.Fatal(err)
	}

	ts := httptest.NewServer(New(db, config.Default(), discard, opts).Handler())
	t.Cleanup(ts.Close)
	return ts, id
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestEndpoints(t *testing.T) {
	ts, id := newTestServer(t, Options{})

	tests := []struct {
		path string
		want int
	}{
		{"/healthz", http.StatusOK},
		{"/v1/games", http.StatusOK},
		{"/v1/games/" + id, http.StatusOK},
		{"/v1/games/" + id + "/regions", http.StatusOK},
		{"/v1/games/" + id + "/regions/Docks", http.StatusOK},
		{"/v1/games/" + id + "/events", http.StatusOK},
		{"/v1/games/" + id + "/journal", http.StatusOK},
		{"/v1/games/" + id + "/regions/Atlantis", http.StatusNotFound},
		{"/v1/games/missing", http.StatusNotFound},
		{"/v1/games/missing/journal", http.StatusNotFound},
		{"/v1/games/" + id + "/journal?limit=abc", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
			if got := resp.Header.Get("Content-Type"); got != "application/json" {
				t.Errorf("content type = %q", got)
			}
		})
	}
}

func TestGameStatus(t *testing.T) {
	ts, id := newTestServer(t, Options{})

	var body struct {
		Game     persistence.GameSummary `json:"game"`
		Snapshot engine.Snapshot         `json:"snapshot"`
	}
	if code := getJSON(t, ts.URL+"/v1/games/"+id, &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body.Game.ID != id || body.Snapshot.Day != 2 || body.Snapshot.Region != config.DefaultStartRegion {
		t.Errorf("body = %+v", body)
	}
}

func TestRegionDetail(t *testing.T) {
	ts, id := newTestServer(t, Options{})

	var v engine.RegionView
	if code := getJSON(t, ts.URL+"/v1/games/"+id+"/regions/Docks", &v); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if v.Name != "Docks" || len(v.Quotes) == 0 {
		t.Errorf("region = %+v", v)
	}
}

func TestJournalLimit(t *testing.T) {
	ts, id := newTestServer(t, Options{})

	var body struct {
		Entries []persistence.JournalEntry `json:"entries"`
	}
	getJSON(t, ts.URL+"/v1/games/"+id+"/journal?limit=1", &body)
	if len(body.Entries) != 1 || body.Entries[0].Message != "second" {
		t.Errorf("entries = %+v, want only the last line", body.Entries)
	}
}

func TestRateLimit(t *testing.T) {
	ts, _ := newTestServer(t, Options{RateLimit: 2, RateWindow: time.Hour})

	for i, want := range []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests} {
		resp, err := http.Get(ts.URL + "/v1/games")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != want {
			t.Errorf("request %d: status = %d, want %d", i, resp.StatusCode, want)
		}
		if want == http.StatusTooManyRequests && resp.Header.Get("Retry-After") == "" {
			t.Error("missing Retry-After")
		}
	}
	// Health checks are not limited.
	if code := getJSON(t, ts.URL+"/healthz", nil); code != http.StatusOK {
		t.Errorf("healthz status = %d", code)
	}
}

func TestRateLimiterWindow(t *testing.T) {
	now := time.Unix(1000, 0)
	rl := NewRateLimiter(1, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") || rl.Allow("a") {
		t.Fatal("want exactly one request in the window")
	}
	if !rl.Allow("b") {
		t.Error("clients share a bucket")
	}
	if got := rl.RetryAfter("a"); got != 61 {
		t.Errorf("retry after = %d, want 61", got)
	}
	now = now.Add(time.Minute)
	if !rl.Allow("a") {
		t.Error("window did not reset")
	}
}
