package engine

import (
	"errors"
	"testing"

	"github.com/talgya/narcosim/internal/config"
	"github.com/talgya/narcosim/internal/economy"
)

func TestPoliceStopChance(t *testing.T) {
	g := newTestGame(t, nil)
	tests := []struct {
		heat int
		want float64
	}{
		{0, 0},
		{49, 0},
		{50, 0.10},
		{60, 0.20},
		{200, 0.75},
	}
	for _, tt := range tests {
		got := g.policeStopChance(tt.heat)
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("policeStopChance(%d) = %v, want %v", tt.heat, got, tt.want)
		}
	}
}

func TestResolveWithoutStop(t *testing.T) {
	g := newTestGame(t, nil)
	if _, err := g.ResolvePoliceStop(false); !errors.Is(err, ErrNoPoliceStop) {
		t.Errorf("err = %v, want ErrNoPoliceStop", err)
	}
}

func TestComplyWithNothingToFind(t *testing.T) {
	g := newTestGame(t, nil)
	g.State.PendingStop = &PoliceStop{Region: "Downtown", Day: 1}

	res, err := g.ResolvePoliceStop(false)
	if err != nil {
		t.Fatalf("ResolvePoliceStop: %v", err)
	}
	if res.Outcome != StopNothingFound {
		t.Errorf("outcome = %s, want %s", res.Outcome, StopNothingFound)
	}
	if g.State.PendingStop != nil {
		t.Error("stop still pending")
	}
}

func TestBribeTooExpensiveFallsThrough(t *testing.T) {
	g := newTestGame(t, nil)
	_ = g.Player().Debit(g.Player().Cash())
	g.State.PendingStop = &PoliceStop{Region: "Downtown", Day: 1}

	res, err := g.ResolvePoliceStop(true)
	if err != nil {
		t.Fatal(err)
	}
	if !res.BribeAttempted || res.BribeCost != 0 {
		t.Errorf("bribe attempted = %v cost = %v, want attempted with no cost", res.BribeAttempted, res.BribeCost)
	}
	if res.Outcome != StopNothingFound {
		t.Errorf("outcome = %s, want %s", res.Outcome, StopNothingFound)
	}
}

func TestJailRunsExactDays(t *testing.T) {
	g := newTestGame(t, func(c *config.Config) {
		c.Police.SearchChance = 1
		c.Police.JailBaseChance = 1
		c.Police.JailMaxChance = 1
		c.Police.JailHeatThreshold = 70
		c.Police.JailBaseDays = 3
		c.Police.JailDaysPerHeat = 0.1
		c.Blocking.Mugging.Chance = 1
		c.Opportunities.Chance = 1
	})
	g.CurrentRegion().ModifyHeat(90)
	if err := g.Player().AddDrug(config.DrugWeed, economy.QualityStandard, 20); err != nil {
		t.Fatal(err)
	}
	g.State.PendingStop = &PoliceStop{Region: "Downtown", Day: 1}

	res, err := g.ResolvePoliceStop(false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != StopJailed {
		t.Fatalf("outcome = %s, want %s", res.Outcome, StopJailed)
	}
	// 3 base days plus 0.1 per heat point above 70.
	if res.JailDays != 5 {
		t.Errorf("jail days = %d, want 5", res.JailDays)
	}
	if len(res.JailedDays) != res.JailDays {
		t.Fatalf("ran %d jailed days, want %d", len(res.JailedDays), res.JailDays)
	}
	if g.State.Day != 1+res.JailDays {
		t.Errorf("day = %d, want %d", g.State.Day, 1+res.JailDays)
	}
	for _, d := range res.JailedDays {
		if !d.Jailed {
			t.Errorf("day %d not marked jailed", d.Day)
		}
		if d.Blocking != nil {
			t.Errorf("day %d raised a blocking event in jail", d.Day)
		}
	}
	if g.State.PendingStop != nil || g.State.PendingOpportunity != nil {
		t.Error("jail left a stop or opportunity pending")
	}
	if res.Confiscated == nil || res.Confiscated.Quantity < 1 {
		t.Error("nothing confiscated")
	}
}

func TestSetupDecline(t *testing.T) {
	g := newTestGame(t, nil)
	deal := economy.SetupDeal{Drug: config.DrugWeed, Quality: economy.QualityStandard, Quantity: 10, PricePerUnit: 20, IsBuy: true}
	g.CurrentRegion().AddEvent(economy.NewSetup(deal, 1, 1))

	res, err := g.RespondToSetup(false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Accepted || g.CurrentRegion().FindEvent(economy.EventTheSetup) != nil {
		t.Error("declined deal still on offer")
	}
	if g.Player().Cash() != config.DefaultStartingCash {
		t.Error("declining changed cash")
	}
	if _, err := g.RespondToSetup(true); !errors.Is(err, ErrNoSetup) {
		t.Errorf("second response: err = %v, want ErrNoSetup", err)
	}
}

func TestSetupAcceptTradesOrStings(t *testing.T) {
	deal := economy.SetupDeal{Drug: config.DrugWeed, Quality: economy.QualityStandard, Quantity: 10, PricePerUnit: 20, IsBuy: true}
	var trades, stings int

	for seed := int64(0); seed < 60; seed++ {
		g := New(quietConfig(), seed, discard)
		g.CurrentRegion().AddEvent(economy.NewSetup(deal, 1, 1))

		res, err := g.RespondToSetup(true)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		held := g.Player().Quantity(config.DrugWeed, economy.QualityStandard)
		if res.Sting {
			stings++
			if g.State.PendingStop == nil || !g.State.PendingStop.Sting {
				t.Errorf("seed %d: sting without a pending stop", seed)
			}
			if held != 0 || g.Player().Cash() != config.DefaultStartingCash {
				t.Errorf("seed %d: sting still traded", seed)
			}
		} else {
			trades++
			if g.State.PendingStop != nil {
				t.Errorf("seed %d: trade left a stop pending", seed)
			}
			if held != 10 || g.Player().Cash() != config.DefaultStartingCash-200 {
				t.Errorf("seed %d: held %d cash %v after trade", seed, held, g.Player().Cash())
			}
			if res.HeatAdded < 15 || res.HeatAdded > 40 {
				t.Errorf("seed %d: heat %d outside 15..40", seed, res.HeatAdded)
			}
		}
		if g.CurrentRegion().FindEvent(economy.EventTheSetup) != nil {
			t.Errorf("seed %d: accepted deal still on offer", seed)
		}
	}
	if trades == 0 || stings == 0 {
		t.Errorf("trades = %d stings = %d, want both outcomes across seeds", trades, stings)
	}
}

func TestSetupAcceptValidates(t *testing.T) {
	g := newTestGame(t, nil)
	deal := economy.SetupDeal{Drug: config.DrugCoke, Quality: economy.QualityPure, Quantity: 20, PricePerUnit: 3000}
	g.CurrentRegion().AddEvent(economy.NewSetup(deal, 1, 1))

	if _, err := g.RespondToSetup(true); err == nil {
		t.Fatal("accepted a sell deal with nothing to sell")
	}
	if g.CurrentRegion().FindEvent(economy.EventTheSetup) == nil {
		t.Error("failed acceptance removed the deal")
	}
}
