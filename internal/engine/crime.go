// Heat and the police: stop chance, bribes, searches and jail.
package engine

import (
	"fmt"
	"math"

	"github.com/talgya/narcosim/internal/economy"
	"github.com/talgya/narcosim/internal/player"
)

// PoliceStop is a stop waiting for the player to bribe or comply.
type PoliceStop struct {
	Region string `json:"region"`
	Day    int    `json:"day"`
	Sting  bool   `json:"sting,omitempty"` // the stop came from a setup deal
}

// StopOutcome is how a police stop ended.
type StopOutcome string

const (
	StopReleased     StopOutcome = "RELEASED" // bribe taken
	StopNothingFound StopOutcome = "NOTHING_FOUND"
	StopWarned       StopOutcome = "WARNED" // drugs confiscated, let go
	StopJailed       StopOutcome = "JAILED"
)

// StopResult reports the resolution of a police stop.
type StopResult struct {
	Outcome        StopOutcome          `json:"outcome"`
	BribeAttempted bool                 `json:"bribe_attempted"`
	BribeCost      float64              `json:"bribe_cost,omitempty"`
	Confiscated    *player.Lot          `json:"confiscated,omitempty"`
	HeatAdded      int                  `json:"heat_added,omitempty"`
	JailDays       int                  `json:"jail_days,omitempty"`
	Messages       []string             `json:"messages"`
	JailedDays     []*DailyUpdateResult `json:"jailed_days,omitempty"`
}

func (r *StopResult) say(format string, args ...any) {
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// policeStopChance is the chance of being stopped in a region with heat.
// Below the threshold there is no chance at all.
func (g *Game) policeStopChance(heat int) float64 {
	pc := g.cfg.Police
	if heat < pc.StopThreshold {
		return 0
	}
	chance := pc.BaseChance + pc.ChancePerPoint*float64(heat-pc.StopThreshold)
	return clamp(chance, pc.MinChance, pc.MaxChance)
}

// rollPoliceStop checks for a stop in region and leaves it pending.
func (g *Game) rollPoliceStop(region *economy.Region) bool {
	chance := g.policeStopChance(region.Heat())
	if chance <= 0 || !g.rng.Chance(chance) {
		return false
	}
	g.State.PendingStop = &PoliceStop{Region: region.Name, Day: g.State.Day}
	g.log.Info("police stop", "region", region.Name, "heat", region.Heat(), "chance", chance)
	return true
}

// ResolvePoliceStop answers the pending stop with a bribe attempt or by
// complying. A failed or unaffordable bribe falls through to complying.
func (g *Game) ResolvePoliceStop(bribe bool) (*StopResult, error) {
	stop := g.State.PendingStop
	if stop == nil {
		return nil, ErrNoPoliceStop
	}
	region, ok := g.Region(stop.Region)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, stop.Region)
	}
	g.State.PendingStop = nil

	pc := g.cfg.Police
	inv := g.State.Player
	res := &StopResult{}
	if stop.Sting {
		res.say("The deal was a sting. Officers close in.")
	}

	if bribe {
		res.BribeAttempted = true
		cost := math.Round(math.Max(pc.BribeMinCost, inv.Cash()*pc.BribeCashFraction)*100) / 100
		if err := inv.Debit(cost); err != nil {
			res.say("You can't scrape together %s for a bribe.", economy.Money(cost))
		} else {
			res.BribeCost = cost
			above := max(0, region.Heat()-pc.StopThreshold)
			success := clamp(pc.BribeBaseSuccess-float64(above)*pc.BribePenaltyPerPoint, pc.BribeMinSuccess, pc.BribeMaxSuccess)
			if g.rng.Chance(success) {
				res.Outcome = StopReleased
				res.say("The officer pockets %s and waves you on.", economy.Money(cost))
				g.log.Info("bribe accepted", "region", region.Name, "cost", cost)
				return res, nil
			}
			res.say("The officer takes your %s and searches you anyway.", economy.Money(cost))
		}
	}

	g.comply(region, res)
	g.log.Info("police stop resolved", "region", region.Name, "outcome", res.Outcome, "jail_days", res.JailDays)
	return res, nil
}

// comply runs the search and, if drugs are found, the jail roll.
func (g *Game) comply(region *economy.Region, res *StopResult) {
	pc := g.cfg.Police
	inv := g.State.Player

	if !inv.HasDrugs() || !g.rng.Chance(pc.SearchChance) {
		res.Outcome = StopNothingFound
		res.say("They search you and find nothing.")
		return
	}

	heatBefore := region.Heat()
	highTier := false
	for _, lot := range inv.Lots() {
		if g.cfg.DrugTier(lot.Drug) >= pc.HighTierMin {
			highTier = true
			break
		}
	}

	lots := inv.Lots()
	lot := lots[g.rng.Pick(len(lots))]
	n := int(math.Ceil(float64(lot.Quantity) * g.uniform(pc.Confiscation)))
	n = min(max(n, 1), lot.Quantity)
	_ = inv.RemoveDrug(lot.Drug, lot.Quality, n)
	res.Confiscated = &player.Lot{Drug: lot.Drug, Quality: lot.Quality, Quantity: n}
	res.HeatAdded = g.between(pc.ConfiscationHeat)
	region.ModifyHeat(res.HeatAdded)
	res.say("They confiscate %d %s %s.", n, lot.Quality, lot.Drug)

	jailChance := 0.0
	if heatBefore >= pc.JailHeatThreshold {
		jailChance += pc.JailBaseChance
	}
	if highTier {
		jailChance += pc.JailHighTierBonus
	}
	jailChance = math.Min(jailChance, pc.JailMaxChance)

	if jailChance <= 0 || !g.rng.Chance(jailChance) {
		res.Outcome = StopWarned
		res.say("You get off with a warning.")
		return
	}

	res.Outcome = StopJailed
	res.JailDays = g.jailDays(heatBefore)
	region.ModifyHeat(pc.JailHeat)
	res.HeatAdded += pc.JailHeat
	res.say("You are thrown in a cell for %d days.", res.JailDays)
	res.JailedDays = g.serveJailTime(res.JailDays)
}

// jailDays is the sentence for a stop at heat.
func (g *Game) jailDays(heat int) int {
	pc := g.cfg.Police
	days := pc.JailBaseDays + int(float64(heat-pc.JailHeatThreshold)*pc.JailDaysPerHeat)
	return max(pc.JailBaseDays, days)
}

// serveJailTime runs exactly days jailed days. A jailed day only moves the
// markets and never rolls another police stop.
func (g *Game) serveJailTime(days int) []*DailyUpdateResult {
	out := make([]*DailyUpdateResult, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, g.runDay(g.jailStages(), true))
	}
	return out
}
