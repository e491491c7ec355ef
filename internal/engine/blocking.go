// Blocking events: things that happen to the player and must be
// acknowledged before the day continues. At most one fires per day.
package engine

import (
	"math"
	"strconv"

	"github.com/talgya/narcosim/internal/economy"
)

// tryMugging robs the player of part of their cash.
func (g *Game) tryMugging(res *DailyUpdateResult) bool {
	mc := g.cfg.Blocking.Mugging
	inv := g.State.Player
	if inv.Cash() <= 0 || !g.rng.Chance(mc.Chance) {
		return false
	}
	loss := math.Floor(inv.Cash() * g.uniform(mc.Loss))
	if loss <= 0 {
		return false
	}
	_ = inv.Debit(loss)

	msg := "You got jumped in " + g.State.CurrentRegion + ". They took " + economy.Money(loss) + "."
	res.Blocking = &BlockingEvent{Type: economy.EventMugging, Title: "Mugged!", Messages: []string{msg}}
	res.note("%s", msg)
	g.log.Info("mugging", "day", res.Day, "loss", loss)
	return true
}

// tryBetrayal has a distrustful informant sell the player out.
func (g *Game) tryBetrayal(res *DailyUpdateResult) bool {
	bc := g.cfg.Blocking.Betrayal
	inv := g.State.Player
	if inv.InformantTrust >= bc.TrustThreshold || res.Day < g.State.InformantUnavailableUntil {
		return false
	}
	if !g.rng.Chance(bc.Chance) {
		return false
	}
	res.InformantUnavailableUntil = res.Day + bc.UnavailableDays
	inv.InformantTrust = max(0, inv.InformantTrust-bc.TrustLoss)
	g.CurrentRegion().ModifyHeat(bc.Heat)

	res.Blocking = &BlockingEvent{
		Type:  economy.EventInformantBetrayal,
		Title: "Betrayed",
		Messages: []string{
			"Your informant sold you out to the cops.",
			"They are lying low until day " + strconv.Itoa(res.InformantUnavailableUntil) + ".",
		},
	}
	for _, m := range res.Blocking.Messages {
		res.note("%s", m)
	}
	g.log.Info("informant betrayal", "day", res.Day, "until", res.InformantUnavailableUntil)
	return true
}

// tryFireSale forces the player to dump part of every lot cheaply.
func (g *Game) tryFireSale(res *DailyUpdateResult) bool {
	fc := g.cfg.Blocking.FireSale
	inv := g.State.Player
	if !inv.HasDrugs() || !g.rng.Chance(fc.Chance) {
		return false
	}
	region := g.CurrentRegion()

	total := 0.0
	sold := 0
	for _, lot := range inv.Lots() {
		n := int(math.Ceil(float64(lot.Quantity) * fc.QuantityFraction))
		n = min(max(n, 1), lot.Quantity)
		unit := math.Max(fc.MinUnitPrice, region.SellPrice(lot.Drug, lot.Quality)*(1-fc.Penalty))
		_ = inv.RemoveDrug(lot.Drug, lot.Quality, n)
		total += unit * float64(n)
		sold += n
	}
	total = math.Max(fc.MinCashGain, math.Round(total*100)/100)
	inv.Credit(total)
	region.ModifyHeat(fc.Heat)

	msg := "A tip-off forced you to dump " + strconv.Itoa(sold) + " units fast for " + economy.Money(total) + "."
	res.Blocking = &BlockingEvent{Type: economy.EventForcedFireSale, Title: "Fire sale", Messages: []string{msg}}
	res.note("%s", msg)
	g.log.Info("fire sale", "day", res.Day, "units", sold, "gain", total)
	return true
}
