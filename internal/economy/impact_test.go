package economy

import "testing"

func TestPlayerImpactBounds(t *testing.T) {
	r := testRegion(t, "Downtown")
	d, _ := r.Drug("Coke")

	for i := 0; i < 50; i++ {
		r.ApplyPlayerBuyImpact("Coke", 40)
		r.ApplyPlayerSellImpact("Coke", 40, 0)
		if d.PlayerBuyImpact < 1 || d.PlayerBuyImpact > 1.25 {
			t.Fatalf("buy impact %v out of [1, 1.25]", d.PlayerBuyImpact)
		}
		if d.PlayerSellImpact < 0.75 || d.PlayerSellImpact > 1 {
			t.Fatalf("sell impact %v out of [0.75, 1]", d.PlayerSellImpact)
		}
		if i%3 == 0 {
			r.DecayPlayerImpact()
		}
	}
	if d.PlayerBuyImpact != 1.25 {
		t.Errorf("buy impact = %v, want cap 1.25", d.PlayerBuyImpact)
	}
	if d.PlayerSellImpact != 0.75 {
		t.Errorf("sell impact = %v, want floor 0.75", d.PlayerSellImpact)
	}
}

func TestPlayerImpactStep(t *testing.T) {
	r := testRegion(t, "Downtown")
	d, _ := r.Drug("Pills")

	r.ApplyPlayerBuyImpact("Pills", 10)
	if got := d.PlayerBuyImpact; got < 1.0199 || got > 1.0201 {
		t.Errorf("buy impact after 10 units = %v, want 1.02", got)
	}
	r.ApplyPlayerSellImpact("Pills", 10, 0.5)
	if got := d.PlayerSellImpact; got < 0.9899 || got > 0.9901 {
		t.Errorf("sell impact after 10 units at half strength = %v, want 0.99", got)
	}
}

func TestDecayPlayerImpactConverges(t *testing.T) {
	r := testRegion(t, "Downtown")
	d, _ := r.Drug("Weed")
	d.PlayerBuyImpact = 1.25
	d.PlayerSellImpact = 0.75

	for i := 0; i < 100; i++ {
		r.DecayPlayerImpact()
	}
	if d.PlayerBuyImpact != 1 || d.PlayerSellImpact != 1 {
		t.Fatalf("after decay: buy %v sell %v, want 1 and 1", d.PlayerBuyImpact, d.PlayerSellImpact)
	}
	r.DecayPlayerImpact()
	if d.PlayerBuyImpact != 1 || d.PlayerSellImpact != 1 {
		t.Error("decay moved a modifier off its fixed point")
	}
}

func TestRivalImpact(t *testing.T) {
	r := testRegion(t, "Downtown")
	d, _ := r.Drug("Pills")

	for i := 0; i < 30; i++ {
		r.ApplyRivalDemand("Pills", 1.3, 2.5, 1)
		r.ApplyRivalSupply("Pills", 0.7, 0.4, 1)
	}
	if d.RivalDemand != 2.5 || d.RivalSupply != 0.4 {
		t.Fatalf("rival modifiers = %v/%v, want 2.5/0.4", d.RivalDemand, d.RivalSupply)
	}

	// Within the idle window nothing decays.
	r.DecayRivalImpact(4, 3, 0.05)
	if d.RivalDemand != 2.5 {
		t.Errorf("demand decayed inside idle window: %v", d.RivalDemand)
	}

	for day := 5; day < 100; day++ {
		r.DecayRivalImpact(day, 3, 0.05)
	}
	if d.RivalDemand != 1 || d.RivalSupply != 1 {
		t.Errorf("rival modifiers after decay = %v/%v, want 1/1", d.RivalDemand, d.RivalSupply)
	}
}
