package engine

import (
	"errors"
	"testing"

	"github.com/talgya/narcosim/internal/config"
	"github.com/talgya/narcosim/internal/player"
)

func TestTradeCrypto(t *testing.T) {
	g := newTestGame(t, nil)
	inv := g.Player()

	if _, err := g.TradeCrypto("DOGE", 1, true); !errors.Is(err, ErrUnknownCoin) {
		t.Errorf("unknown coin: err = %v", err)
	}
	if _, err := g.TradeCrypto("BTC", 0, true); !errors.Is(err, player.ErrInvalidQuantity) {
		t.Errorf("zero amount: err = %v", err)
	}
	if _, err := g.TradeCrypto("BTC", 1000, true); !errors.Is(err, player.ErrInsufficientCash) {
		t.Errorf("too expensive: err = %v", err)
	}

	r, err := g.TradeCrypto("BTC", 10, true)
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if r.Total != 1000 || inv.Cash() != 4000 || inv.Crypto("BTC") != 10 {
		t.Errorf("after buy: total %v cash %v btc %v", r.Total, inv.Cash(), inv.Crypto("BTC"))
	}
	if got := g.CurrentRegion().Heat(); got != 1 {
		t.Errorf("heat = %d, want 1", got)
	}

	if _, err := g.TradeCrypto("BTC", 11, false); !errors.Is(err, player.ErrInsufficientCrypto) {
		t.Errorf("oversell: err = %v", err)
	}
	if _, err := g.TradeCrypto("BTC", 5, false); err != nil {
		t.Fatalf("sell: %v", err)
	}
	if inv.Cash() != 4500 || inv.Crypto("BTC") != 5 {
		t.Errorf("after sell: cash %v btc %v", inv.Cash(), inv.Crypto("BTC"))
	}
}

func TestCryptoHeatReductions(t *testing.T) {
	g := newTestGame(t, func(c *config.Config) { c.Crypto.TradeHeat = 8 })
	inv := g.Player()
	inv.Skills[config.SkillDigitalFootprint] = true
	inv.SecurePhone = true

	r, err := g.TradeCrypto("ETH", 1, true)
	if err != nil {
		t.Fatal(err)
	}
	// 8 * 0.75 * 0.75 = 4.5, rounded half away from zero.
	if r.HeatAdded != 5 {
		t.Errorf("heat = %d, want 5", r.HeatAdded)
	}
}

func TestCryptoWalkStaysAboveMinimum(t *testing.T) {
	g := newTestGame(t, nil)
	for day := 1; day <= 500; day++ {
		g.walkCryptoPrices(day)
		for _, coin := range g.cfg.Crypto.Coins {
			if p := g.State.CryptoPrices[coin.Symbol]; p < coin.Minimum {
				t.Fatalf("day %d: %s = %v below minimum %v", day, coin.Symbol, p, coin.Minimum)
			}
		}
	}
	if got := g.State.CryptoPrices["SC"]; got != 1 {
		t.Errorf("stablecoin moved to %v", got)
	}
}

func TestLaunder(t *testing.T) {
	g := newTestGame(t, nil)
	inv := g.Player()

	r, err := g.Launder(1000)
	if err != nil {
		t.Fatalf("Launder: %v", err)
	}
	if r.Arriving != 900 || r.ArrivalDay != 4 || r.HeatAdded != 1 {
		t.Errorf("receipt = %+v", r)
	}
	if inv.Cash() != 4000 {
		t.Errorf("cash = %v, want 4000", inv.Cash())
	}
	if _, err := g.Launder(100); !errors.Is(err, ErrLaunderingPending) {
		t.Errorf("second transfer: err = %v", err)
	}

	advance(t, g, 2)
	if inv.Laundering == nil {
		t.Fatal("funds arrived early")
	}
	res := advance(t, g, 1)
	if res.Laundering == nil || res.Laundering.Amount != 900 {
		t.Fatalf("arrival = %+v, want 900", res.Laundering)
	}
	if inv.Laundering != nil {
		t.Error("pending transfer not cleared")
	}
	if got := inv.Crypto("SC"); got != 900 {
		t.Errorf("SC = %v, want 900", got)
	}
}

func TestStaking(t *testing.T) {
	g := newTestGame(t, nil)
	inv := g.Player()
	if err := g.Stake(10); !errors.Is(err, player.ErrInsufficientCrypto) {
		t.Errorf("stake with empty wallet: err = %v", err)
	}
	if err := inv.AddCrypto("DC", 1000); err != nil {
		t.Fatal(err)
	}
	if err := g.Stake(1000); err != nil {
		t.Fatalf("Stake: %v", err)
	}
	advance(t, g, 2)
	if got := inv.StakingRewards; got != 2 {
		t.Errorf("rewards = %v, want 2", got)
	}
	got, err := g.CollectStakingRewards()
	if err != nil || got != 2 {
		t.Fatalf("collect = %v, %v", got, err)
	}
	if err := g.Unstake(2000); !errors.Is(err, player.ErrInsufficientCrypto) {
		t.Errorf("over-unstake: err = %v", err)
	}
	if err := g.Unstake(1000); err != nil {
		t.Fatal(err)
	}
	if inv.Staked != 0 || inv.Crypto("DC") != 1002 {
		t.Errorf("staked %v wallet %v", inv.Staked, inv.Crypto("DC"))
	}
}

func TestUnlockSkill(t *testing.T) {
	g := newTestGame(t, nil)
	inv := g.Player()

	if err := g.UnlockSkill("FLIGHT"); !errors.Is(err, ErrUnknownSkill) {
		t.Errorf("unknown: err = %v", err)
	}
	if err := g.UnlockSkill(config.SkillCompartmentalization); !errors.Is(err, ErrNoSkillPoints) {
		t.Errorf("no points: err = %v", err)
	}
	inv.SkillPoints = 3
	if err := g.UnlockSkill(config.SkillCompartmentalization); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if inv.SkillPoints != 0 || !inv.HasSkill(config.SkillCompartmentalization) {
		t.Errorf("points %d, unlocked %v", inv.SkillPoints, inv.HasSkill(config.SkillCompartmentalization))
	}
	inv.SkillPoints = 3
	if err := g.UnlockSkill(config.SkillCompartmentalization); !errors.Is(err, ErrSkillUnlocked) {
		t.Errorf("repeat: err = %v", err)
	}
}

func TestPurchaseUpgrade(t *testing.T) {
	g := newTestGame(t, nil)
	inv := g.Player()

	r, err := g.PurchaseUpgrade(UpgradeCapacity)
	if err != nil {
		t.Fatal(err)
	}
	if r.Capacity != 200 || inv.Capacity() != 200 || inv.Cash() != 4000 {
		t.Errorf("after first level: %+v cash %v", r, inv.Cash())
	}
	if _, err := g.PurchaseUpgrade(UpgradeSecurePhone); !errors.Is(err, player.ErrInsufficientCash) {
		t.Errorf("phone without cash: err = %v", err)
	}
	if _, err := g.PurchaseUpgrade("JETPACK"); !errors.Is(err, ErrUnknownUpgrade) {
		t.Errorf("unknown: err = %v", err)
	}

	inv.Credit(100000)
	for i := 0; i < 3; i++ {
		if _, err := g.PurchaseUpgrade(UpgradeCapacity); err != nil {
			t.Fatal(err)
		}
	}
	if inv.Capacity() != 350 {
		t.Errorf("capacity = %d, want 350", inv.Capacity())
	}
	if _, err := g.PurchaseUpgrade(UpgradeCapacity); !errors.Is(err, ErrUpgradeOwned) {
		t.Errorf("past max: err = %v", err)
	}
	if _, err := g.PurchaseUpgrade(UpgradeSecurePhone); err != nil {
		t.Fatal(err)
	}
	if _, err := g.PurchaseUpgrade(UpgradeSecurePhone); !errors.Is(err, ErrUpgradeOwned) {
		t.Errorf("second phone: err = %v", err)
	}
}

func TestBuyTip(t *testing.T) {
	g := newTestGame(t, nil)
	inv := g.Player()

	if _, err := g.BuyTip("GOSSIP"); !errors.Is(err, ErrUnknownTip) {
		t.Errorf("unknown kind: err = %v", err)
	}
	tip, err := g.BuyTip(TipRumor)
	if err != nil {
		t.Fatal(err)
	}
	if tip.Text == "" || inv.Cash() != 4950 || inv.InformantTrust != 55 {
		t.Errorf("tip %+v cash %v trust %d", tip, inv.Cash(), inv.InformantTrust)
	}
	for _, kind := range []string{TipDrugInfo, TipRivalInfo} {
		if tip, err := g.BuyTip(kind); err != nil || tip.Text == "" {
			t.Errorf("%s: tip %+v err %v", kind, tip, err)
		}
	}

	inv.InformantTrust = 99
	if _, err := g.BuyTip(TipRumor); err != nil {
		t.Fatal(err)
	}
	if inv.InformantTrust != 100 {
		t.Errorf("trust = %d, want capped at 100", inv.InformantTrust)
	}

	g.State.InformantUnavailableUntil = 5
	if _, err := g.BuyTip(TipRumor); !errors.Is(err, ErrInformantUnavailable) {
		t.Errorf("unavailable: err = %v", err)
	}
}

func TestBribeOfficial(t *testing.T) {
	g := newTestGame(t, nil)
	g.CurrentRegion().ModifyHeat(30)

	r, err := g.BribeOfficial()
	if err != nil {
		t.Fatal(err)
	}
	if r.Cost != 2500 || r.HeatRemoved != 20 {
		t.Errorf("bribe = %+v, want cost 2500 removing 20", r)
	}
	if got := g.CurrentRegion().Heat(); got != 10 {
		t.Errorf("heat = %d, want 10", got)
	}
	if got := g.Player().Cash(); got != 2500 {
		t.Errorf("cash = %v, want 2500", got)
	}
}
