// Market event manager: picks, builds and posts time-boxed events.
package engine

import (
	"math"
	"slices"

	"github.com/talgya/narcosim/internal/config"
	"github.com/talgya/narcosim/internal/economy"
)

// eventBuilder tries to post one event type to region. It reports whether
// an event was created; infeasible events are skipped silently.
type eventBuilder func(region *economy.Region, res *DailyUpdateResult) bool

type weightedBuilder struct {
	weight int
	build  eventBuilder
}

// weightedBuilders returns the builders in draw order with their weights.
func (g *Game) weightedBuilders() []weightedBuilder {
	w := g.cfg.Events.Weights
	return []weightedBuilder{
		{w.DemandSpike, g.buildDemandSpike},
		{w.SupplyDisruption, g.buildSupplyDisruption},
		{w.PoliceCrackdown, g.buildCrackdown},
		{w.CheapStash, g.buildCheapStash},
		{w.TheSetup, g.buildSetup},
		{w.RivalBusted, g.buildRivalBusted},
		{w.MarketCrash, g.buildMarketCrash},
	}
}

// triggerMarketEvent may post one event to region. A black market lot is
// rolled first and, when it fires, takes the day's slot.
func (g *Game) triggerMarketEvent(region *economy.Region, res *DailyUpdateResult) {
	ec := g.cfg.Events
	if g.rng.Chance(ec.BlackMarket.Chance) {
		g.buildBlackMarket(region, res)
		return
	}
	if !g.rng.Chance(ec.TriggerChance) {
		return
	}

	total := ec.Weights.Total()
	if total <= 0 {
		return
	}
	n := g.rng.IntN(total)
	for _, b := range g.weightedBuilders() {
		if n < b.weight {
			b.build(region, res)
			return
		}
		n -= b.weight
	}
}

// pickTarget draws one target, or reports false when there is none.
func (g *Game) pickTarget(targets []economy.Target) (economy.Target, bool) {
	i := g.rng.Pick(len(targets))
	if i < 0 {
		return economy.Target{}, false
	}
	return targets[i], true
}

func (g *Game) uniform(r config.Range) float64 {
	return g.rng.Uniform(r.Min, r.Max)
}

func (g *Game) between(r config.IntRange) int {
	return g.rng.IntBetween(r.Min, r.Max)
}

func (g *Game) post(region *economy.Region, e *economy.MarketEvent, res *DailyUpdateResult, format string, args ...any) bool {
	if !region.AddEvent(e) {
		return false
	}
	res.say(format, args...)
	g.log.Debug("market event", "type", e.Type, "region", region.Name, "subject", e.Subject(), "days", e.DaysRemaining)
	return true
}

func (g *Game) buildDemandSpike(region *economy.Region, res *DailyUpdateResult) bool {
	c := g.cfg.Events.DemandSpike
	target, ok := g.pickTarget(region.Targets(c.Tiers, false))
	if !ok {
		return false
	}
	e := economy.NewDemandSpike(target, g.uniform(c.BuyMult), g.uniform(c.SellMult), g.between(c.Days), res.Day)
	return g.post(region, e, res, "Demand for %s is spiking in %s. Buyers are paying up to %d%% more.",
		target, region.Name, percent(e.SellMultiplier-1))
}

func (g *Game) buildSupplyDisruption(region *economy.Region, res *DailyUpdateResult) bool {
	c := g.cfg.Events.SupplyDisruption
	target, ok := g.pickTarget(region.Targets(nil, true))
	if !ok {
		return false
	}
	e := economy.NewSupplyDisruption(target, g.between(c.Days), res.Day)
	return g.post(region, e, res, "A shipment got seized. No %s in %s for %d days.",
		target, region.Name, e.DaysRemaining)
}

func (g *Game) buildCrackdown(region *economy.Region, res *DailyUpdateResult) bool {
	c := g.cfg.Events.PoliceCrackdown
	if region.HasEvent(economy.EventKey{Type: economy.EventPoliceCrackdown}) {
		return false
	}
	e := economy.NewCrackdown(g.between(c.Heat), g.between(c.Days), res.Day)
	if !g.post(region, e, res, "Police crackdown in %s. Heat is rising fast.", region.Name) {
		return false
	}
	region.ModifyHeat(e.HeatIncrease)
	return true
}

func (g *Game) buildCheapStash(region *economy.Region, res *DailyUpdateResult) bool {
	c := g.cfg.Events.CheapStash
	target, ok := g.pickTarget(region.Targets(c.Tiers, false))
	if !ok {
		return false
	}
	e := economy.NewCheapStash(target, g.uniform(c.BuyMult), g.between(c.StockBonus), g.between(c.Days), res.Day)
	return g.post(region, e, res, "Someone is dumping a cheap stash of %s in %s. %d%% off while it lasts.",
		target, region.Name, percent(1-e.BuyMultiplier))
}

// buildSetup offers THE_SETUP when the player could plausibly take it.
func (g *Game) buildSetup(region *economy.Region, res *DailyUpdateResult) bool {
	c := g.cfg.Events.TheSetup
	if region.HasEvent(economy.EventKey{Type: economy.EventTheSetup}) {
		return false
	}
	var drugs []string
	for _, name := range region.DrugNames() {
		d, _ := region.Drug(name)
		if slices.Contains(c.Tiers, d.Tier) {
			drugs = append(drugs, name)
		}
	}
	i := g.rng.Pick(len(drugs))
	if i < 0 {
		return false
	}
	d, _ := region.Drug(drugs[i])
	qualities := d.ListedQualities()
	q := qualities[g.rng.Pick(len(qualities))]
	isBuy := g.rng.Chance(c.BuyDealChance)
	qty := g.between(c.Quantity)

	var price float64
	if isBuy {
		market := region.BuyPrice(d.Name, q)
		if market == 0 {
			market = d.BaseBuy
		}
		price = market * (1 - g.uniform(c.BuyDiscount))
	} else {
		market := region.SellPrice(d.Name, q)
		if market == 0 {
			market = d.BaseSell
		}
		price = market * g.uniform(c.SellPremium)
	}
	price = math.Max(c.MinUnitPrice, math.Round(price*100)/100)
	deal := economy.SetupDeal{Drug: d.Name, Quality: q, Quantity: qty, PricePerUnit: price, IsBuy: isBuy}

	if !g.setupFeasible(deal) {
		g.log.Debug("setup skipped", "drug", deal.Drug, "buy", deal.IsBuy, "quantity", deal.Quantity)
		return false
	}
	e := economy.NewSetup(deal, c.Days, res.Day)
	if isBuy {
		return g.post(region, e, res, "A contact in %s offers %d %s %s at %s each. Sounds too good to be true?",
			region.Name, qty, q, deal.Drug, economy.Money(price))
	}
	return g.post(region, e, res, "A buyer in %s wants %d %s %s at %s each. Sounds too good to be true?",
		region.Name, qty, q, deal.Drug, economy.Money(price))
}

// setupFeasible checks whether the player could take part in a deal. A sell
// deal needs only some of the drug on hand unless StrictSellCheck is set.
func (g *Game) setupFeasible(deal economy.SetupDeal) bool {
	c := g.cfg.Events.TheSetup
	inv := g.State.Player
	if deal.IsBuy {
		return inv.Cash() >= deal.Total()*c.MinCashFactor
	}
	if c.StrictSellCheck {
		need := int(math.Ceil(float64(deal.Quantity) * c.MinQuantityFactor))
		return inv.Quantity(deal.Drug, deal.Quality) >= need
	}
	return inv.DrugTotal(deal.Drug) > 0
}

func (g *Game) buildRivalBusted(region *economy.Region, res *DailyUpdateResult) bool {
	c := g.cfg.Events.RivalBusted
	if region.HasEvent(economy.EventKey{Type: economy.EventRivalBusted}) {
		return false
	}
	var free []*Rival
	for _, rv := range g.State.Rivals {
		if !rv.Busted {
			free = append(free, rv)
		}
	}
	i := g.rng.Pick(len(free))
	if i < 0 {
		return false
	}
	rv := free[i]
	days := g.between(c.Days)
	if !g.post(region, economy.NewRivalBusted(rv.Name, days, res.Day), res,
		"Word on the street: %s got busted and is out of action for %d days.", rv.Name, days) {
		return false
	}
	g.bustRival(rv, days)
	return true
}

func (g *Game) buildMarketCrash(region *economy.Region, res *DailyUpdateResult) bool {
	c := g.cfg.Events.MarketCrash
	target, ok := g.pickTarget(region.Targets(nil, true))
	if !ok {
		return false
	}
	e := economy.NewMarketCrash(target, c.Reduction, c.MinPrice, c.Days, res.Day)
	return g.post(region, e, res, "The market for %s in %s has crashed. Prices are down %d%%.",
		target, region.Name, percent(c.Reduction))
}

func (g *Game) buildBlackMarket(region *economy.Region, res *DailyUpdateResult) bool {
	c := g.cfg.Events.BlackMarket
	target, ok := g.pickTarget(region.Targets(nil, false))
	if !ok {
		return false
	}
	e := economy.NewBlackMarket(target, g.between(c.Quantity), c.Discount, c.Days, res.Day)
	return g.post(region, e, res, "Black market lot in %s: %d %s at %d%% off, today only.",
		region.Name, e.BlackMarketLot, target, percent(c.Discount))
}

func percent(f float64) int {
	return int(math.Round(f * 100))
}
