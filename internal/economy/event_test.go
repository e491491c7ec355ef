package economy

import "testing"

func TestAddEventRejectsDuplicateKey(t *testing.T) {
	r := testRegion(t, "Downtown")
	target := Target{Drug: "Pills", Quality: QualityPure}

	if !r.AddEvent(NewDemandSpike(target, 1.1, 1.5, 2, 1)) {
		t.Fatal("first demand spike rejected")
	}
	if r.AddEvent(NewDemandSpike(target, 1.2, 1.7, 3, 1)) {
		t.Error("duplicate demand spike accepted")
	}
	if !r.AddEvent(NewDemandSpike(Target{Drug: "Pills", Quality: QualityCut}, 1.1, 1.5, 2, 1)) {
		t.Error("spike on another quality rejected")
	}
	if !r.AddEvent(NewCheapStash(target, 0.7, 50, 2, 1)) {
		t.Error("different type on same target rejected")
	}

	if !r.AddEvent(NewCrackdown(10, 2, 1)) {
		t.Fatal("crackdown rejected")
	}
	if r.AddEvent(NewCrackdown(20, 3, 1)) {
		t.Error("second crackdown accepted")
	}
	if !r.AddEvent(NewRivalBusted("Silas", 5, 1)) {
		t.Fatal("rival busted rejected")
	}
	if r.AddEvent(NewRivalBusted("Sergei", 5, 1)) {
		t.Error("second rival busted accepted")
	}

	seen := map[EventKey]bool{}
	for _, e := range r.Events() {
		if seen[e.Key()] {
			t.Fatalf("duplicate key %+v in active events", e.Key())
		}
		seen[e.Key()] = true
	}
}

func TestCheapStashLifetime(t *testing.T) {
	r := testRegion(t, "Downtown")
	target := Target{Drug: "Pills", Quality: QualityStandard}
	base := r.AvailableStock("Pills", QualityStandard)

	// Created during day 5 with two days to run.
	r.AddEvent(NewCheapStash(target, 0.7, 100, 2, 5))
	if got := r.AvailableStock("Pills", QualityStandard); got != base+100 {
		t.Fatalf("day 5 stock = %d, want %d", got, base+100)
	}

	// Day 6.
	if expired := r.UpdateActiveEvents(); len(expired) != 0 {
		t.Fatalf("day 6 expired %d events", len(expired))
	}
	if got := r.AvailableStock("Pills", QualityStandard); got != base+100 {
		t.Errorf("day 6 stock = %d, want %d", got, base+100)
	}

	// Day 7.
	expired := r.UpdateActiveEvents()
	if len(expired) != 1 || expired[0].Type != EventCheapStash {
		t.Fatalf("day 7 expired = %v, want the cheap stash", expired)
	}
	if got := r.AvailableStock("Pills", QualityStandard); got != base {
		t.Errorf("day 7 stock = %d, want %d", got, base)
	}
}

func TestUpdateActiveEventsDropsEmptyBlackMarket(t *testing.T) {
	r := testRegion(t, "Downtown")
	target := Target{Drug: "Coke", Quality: QualityCut}
	r.AddEvent(NewBlackMarket(target, 5, 0.5, 3, 1))
	r.UpdateStockOnBuy("Coke", QualityCut, 5)

	expired := r.UpdateActiveEvents()
	if len(expired) != 1 {
		t.Fatalf("expired = %d events, want 1", len(expired))
	}
}

func TestRemoveEvent(t *testing.T) {
	r := testRegion(t, "Downtown")
	setup := NewSetup(SetupDeal{Drug: "Coke", Quality: QualityPure, Quantity: 20, PricePerUnit: 900, IsBuy: true}, 1, 1)
	r.AddEvent(setup)
	if r.FindEvent(EventTheSetup) != setup {
		t.Fatal("FindEvent did not return the setup")
	}
	if !r.RemoveEvent(setup) {
		t.Fatal("RemoveEvent returned false")
	}
	if r.RemoveEvent(setup) {
		t.Error("second RemoveEvent returned true")
	}
	if r.FindEvent(EventTheSetup) != nil {
		t.Error("setup still active")
	}
}

func TestEndMessage(t *testing.T) {
	spike := NewDemandSpike(Target{Drug: "Coke", Quality: QualityPure}, 1, 1.5, 2, 1)
	if got, want := spike.EndMessage("Downtown"), "Downtown: The demand spike for PURE Coke has cooled off."; got != want {
		t.Errorf("EndMessage = %q, want %q", got, want)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a blocking event type")
		}
	}()
	(&MarketEvent{Type: EventMugging}).EndMessage("Downtown")
}

func TestParseQuality(t *testing.T) {
	for in, want := range map[string]Quality{"pure": QualityPure, " Cut ": QualityCut, "STANDARD": QualityStandard} {
		got, err := ParseQuality(in)
		if err != nil || got != want {
			t.Errorf("ParseQuality(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseQuality("uncut"); err == nil {
		t.Error("ParseQuality(uncut) succeeded")
	}
}
