package engine

import (
	"math"
	"testing"

	"github.com/talgya/narcosim/internal/config"
	"github.com/talgya/narcosim/internal/economy"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRivalTurn(t *testing.T) {
	tests := []struct {
		name       string
		aggression float64
		demand     float64 // starting modifiers
		supply     float64
		wantDemand float64
		wantSupply float64
	}{
		{"demand push", 1, 1, 1, 1.3, 1},
		{"demand capped", 1, 2.4, 1, 2.5, 1},
		{"supply push", 0, 1, 1, 1, 0.7},
		{"supply floored", 0, 1, 0.5, 1, 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, func(c *config.Config) {
				c.Rivals.ActivityFactor = 1
			})
			d, _ := g.CurrentRegion().Drug(config.DrugPills)
			d.RivalDemand, d.RivalSupply = tt.demand, tt.supply

			rv := &Rival{Name: "Test", Drug: config.DrugPills, Region: "Downtown", Aggression: tt.aggression, Activity: 1}
			res := newResult(4, 0)
			g.processRivalTurn(rv, res)

			if !almostEqual(d.RivalDemand, tt.wantDemand) {
				t.Errorf("rival demand = %v, want %v", d.RivalDemand, tt.wantDemand)
			}
			if !almostEqual(d.RivalSupply, tt.wantSupply) {
				t.Errorf("rival supply = %v, want %v", d.RivalSupply, tt.wantSupply)
			}
			if d.LastRivalActivity != 4 {
				t.Errorf("last activity = %d, want 4", d.LastRivalActivity)
			}
			if len(res.LogMessages) != 1 {
				t.Errorf("log messages = %v, want one", res.LogMessages)
			}
		})
	}
}

func TestIdleRivalLeavesMarket(t *testing.T) {
	g := newTestGame(t, nil)
	d, _ := g.CurrentRegion().Drug(config.DrugPills)

	for _, rv := range []*Rival{
		{Name: "Idle", Drug: config.DrugPills, Region: "Downtown", Aggression: 1, Activity: 0},
		{Name: "Lost", Drug: config.DrugPills, Region: "Atlantis", Aggression: 1, Activity: 1},
		{Name: "Unlisted", Drug: config.DrugHeroin, Region: "Downtown", Aggression: 1, Activity: 1},
		{Name: "Busted", Drug: config.DrugPills, Region: "Downtown", Aggression: 1, Activity: 1, Busted: true, BustedDaysRemaining: 3},
	} {
		g.processRivalTurn(rv, newResult(2, 0))
		if d.RivalDemand != 1 || d.RivalSupply != 1 || d.LastRivalActivity != 0 {
			t.Errorf("%s moved the market: demand %v supply %v", rv.Name, d.RivalDemand, d.RivalSupply)
		}
	}
}

func TestBustedRivalReleasedWithItsEvent(t *testing.T) {
	g := newTestGame(t, nil)
	rv := g.State.Rivals[0]
	home, _ := g.Region(rv.Region)

	const days = 3
	if !home.AddEvent(economy.NewRivalBusted(rv.Name, days, g.State.Day)) {
		t.Fatal("event not posted")
	}
	g.bustRival(rv, days)

	advance(t, g, days-1)
	if !rv.Busted {
		t.Fatalf("released on day %d with the event still running", g.State.Day)
	}
	if e := home.FindEvent(economy.EventRivalBusted); e == nil || rv.BustedDaysRemaining > e.DaysRemaining {
		t.Errorf("counter %d out of step with the event", rv.BustedDaysRemaining)
	}

	advance(t, g, 1)
	if rv.Busted {
		t.Fatal("still busted after the event expired")
	}
	if home.HasEvent(economy.EventKey{Type: economy.EventRivalBusted}) {
		t.Error("event still active")
	}
}

func TestBustedRivalCounterRunsDown(t *testing.T) {
	g := newTestGame(t, nil)
	rv := g.State.Rivals[0]
	g.bustRival(rv, 2)

	advance(t, g, 2)
	if !rv.Busted || rv.BustedDaysRemaining != 0 {
		t.Fatalf("busted = %v with %d days left, want busted with 0", rv.Busted, rv.BustedDaysRemaining)
	}
	res := advance(t, g, 1)
	if rv.Busted {
		t.Fatal("rival never released without an event")
	}
	found := false
	for _, msg := range res.LogMessages {
		if msg == rv.Name+" is back in business." {
			found = true
		}
	}
	if !found {
		t.Errorf("no release note in %v", res.LogMessages)
	}
}
