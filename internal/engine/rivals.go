// AI rivals: scripted dealers that push on their home market each day.
package engine

import "github.com/talgya/narcosim/internal/economy"

// Rival is a scripted competitor working one drug in one region.
type Rival struct {
	Name                string  `json:"name"`
	Drug                string  `json:"drug"`
	Region              string  `json:"region"`
	Aggression          float64 `json:"aggression"` // chance an action drives demand rather than supply
	Activity            float64 `json:"activity"`
	Busted              bool    `json:"busted"`
	BustedDaysRemaining int     `json:"busted_days_remaining"`
}

// processRivalTurn lets one rival act on its home market.
func (g *Game) processRivalTurn(rv *Rival, res *DailyUpdateResult) {
	if rv.Busted {
		// The RIVAL_BUSTED event normally releases the rival and resyncs the
		// counter each day. Without one the counter runs down here.
		if rv.BustedDaysRemaining <= 0 {
			rv.Busted = false
			rv.BustedDaysRemaining = 0
			res.note("%s is back in business.", rv.Name)
		} else {
			rv.BustedDaysRemaining--
		}
		return
	}
	region, ok := g.Region(rv.Region)
	if !ok {
		return
	}
	if _, ok := region.Drug(rv.Drug); !ok {
		return
	}

	rc := g.cfg.Rivals
	if !g.rng.Chance(rv.Activity * rc.ActivityFactor) {
		return
	}
	if g.rng.Chance(rv.Aggression) {
		factor := 1 + rc.BaseMagnitude + rv.Aggression*rc.AggressionMagnitude
		region.ApplyRivalDemand(rv.Drug, factor, rc.DemandCap, res.Day)
		res.note("%s is buying up %s in %s.", rv.Name, rv.Drug, rv.Region)
	} else {
		factor := 1 - (rc.BaseMagnitude + (1-rv.Aggression)*rc.AggressionMagnitude)
		region.ApplyRivalSupply(rv.Drug, factor, rc.SupplyFloor, res.Day)
		res.note("%s is flooding %s with cheap %s.", rv.Name, rv.Region, rv.Drug)
	}
	g.log.Debug("rival acted", "rival", rv.Name, "region", rv.Region, "drug", rv.Drug, "day", res.Day)
}

// bustRival marks a rival as busted for days.
func (g *Game) bustRival(rv *Rival, days int) {
	rv.Busted = true
	rv.BustedDaysRemaining = days
}

// releaseRival clears the busted flag when its RIVAL_BUSTED event expires.
func (g *Game) releaseRival(name string, res *DailyUpdateResult) {
	rv, ok := g.rivalIndex[name]
	if !ok || !rv.Busted {
		return
	}
	rv.Busted = false
	rv.BustedDaysRemaining = 0
	g.log.Debug("rival released", "rival", name, "day", res.Day)
}

// syncBustedRivals copies each live RIVAL_BUSTED countdown onto its rival.
// The event's day count is authoritative.
func (g *Game) syncBustedRivals(r *economy.Region) {
	e := r.FindEvent(economy.EventRivalBusted)
	if e == nil {
		return
	}
	if rv, ok := g.rivalIndex[e.Rival]; ok && rv.Busted {
		rv.BustedDaysRemaining = e.DaysRemaining
	}
}
