// Opportunity events: optional offers that wait for an answer until the
// next day starts.
package engine

import (
	"fmt"
	"math"

	"github.com/talgya/narcosim/internal/economy"
	"github.com/talgya/narcosim/internal/player"
)

// Opportunity is an offer waiting for RespondToOpportunity.
type Opportunity struct {
	Type        economy.EventType `json:"type"`
	Drug        string            `json:"drug"`
	Quality     economy.Quality   `json:"quality"`
	Quantity    int               `json:"quantity"`
	Region      string            `json:"region"`
	UnitPrice   float64           `json:"unit_price,omitempty"`
	Description string            `json:"description"`
	Choices     []string          `json:"choices"`
}

// OpportunityResult reports how an answered opportunity played out.
type OpportunityResult struct {
	Type      economy.EventType `json:"type"`
	Accepted  bool              `json:"accepted"`
	Success   bool              `json:"success"`
	CashDelta float64           `json:"cash_delta,omitempty"`
	Gained    *player.Lot       `json:"gained,omitempty"`
	HeatAdded int               `json:"heat_added,omitempty"`
	Message   string            `json:"message"`
}

// offerOpportunity builds one opportunity drawn by weight. Infeasible offers are
// dropped without a replacement.
func (g *Game) offerOpportunity(res *DailyUpdateResult) {
	w := g.cfg.Opportunities.Weights
	total := w.Total()
	if total <= 0 {
		return
	}
	var o *Opportunity
	switch n := g.rng.IntN(total); {
	case n < w.StashLeak:
		o = g.buildStashLeak()
	case n < w.StashLeak+w.UrgentDelivery:
		o = g.buildUrgentDelivery()
	default:
		o = g.buildExperimentalBatch()
	}
	if o == nil {
		return
	}
	g.State.PendingOpportunity = o
	res.Blocking = &BlockingEvent{
		Type:     o.Type,
		Title:    opportunityTitle(o.Type),
		Messages: []string{o.Description},
		Choices:  o.Choices,
	}
	res.note("%s", o.Description)
	g.log.Debug("opportunity", "type", o.Type, "drug", o.Drug, "qty", o.Quantity, "region", o.Region)
}

func opportunityTitle(t economy.EventType) string {
	switch t {
	case economy.EventRivalStashLeaked:
		return "Stash location leaked"
	case economy.EventUrgentDelivery:
		return "Urgent delivery"
	case economy.EventExperimentalBatch:
		return "Experimental batch"
	}
	return string(t)
}

func (g *Game) buildStashLeak() *Opportunity {
	region := g.CurrentRegion()
	drugs := region.DrugNames()
	i := g.rng.Pick(len(drugs))
	if i < 0 {
		return nil
	}
	qty := g.between(g.cfg.Opportunities.StashQuantity)
	return &Opportunity{
		Type:        economy.EventRivalStashLeaked,
		Drug:        drugs[i],
		Quality:     economy.QualityStandard,
		Quantity:    qty,
		Region:      region.Name,
		Description: fmt.Sprintf("A rival's stash of %d %s in %s is unguarded tonight.", qty, drugs[i], region.Name),
		Choices:     []string{"Steal", "Ignore"},
	}
}

func (g *Game) buildUrgentDelivery() *Opportunity {
	oc := g.cfg.Opportunities
	var lots []player.Lot
	for _, lot := range g.State.Player.Lots() {
		if lot.Quantity >= oc.DeliveryMinHeld {
			lots = append(lots, lot)
		}
	}
	i := g.rng.Pick(len(lots))
	if i < 0 {
		return nil
	}
	lot := lots[i]

	var dests []*economy.Region
	for _, r := range g.State.Regions {
		if r.Name != g.State.CurrentRegion && r.SellPrice(lot.Drug, lot.Quality) > 0 {
			dests = append(dests, r)
		}
	}
	j := g.rng.Pick(len(dests))
	if j < 0 {
		return nil
	}
	dest := dests[j]

	qty := g.rng.IntBetween(oc.DeliveryMinHeld, min(lot.Quantity, oc.DeliveryMax))
	unit := math.Round(dest.SellPrice(lot.Drug, lot.Quality)*(1+g.uniform(oc.DeliveryPremium))*100) / 100
	return &Opportunity{
		Type:      economy.EventUrgentDelivery,
		Drug:      lot.Drug,
		Quality:   lot.Quality,
		Quantity:  qty,
		Region:    dest.Name,
		UnitPrice: unit,
		Description: fmt.Sprintf("A buyer in %s needs %d %s %s right now and pays %s each.",
			dest.Name, qty, lot.Quality, lot.Drug, economy.Money(unit)),
		Choices: []string{"Accept", "Decline"},
	}
}

func (g *Game) buildExperimentalBatch() *Opportunity {
	region := g.CurrentRegion()
	var drugs []*economy.DrugMarket
	for _, name := range region.DrugNames() {
		if d, _ := region.Drug(name); d.Tier >= 2 {
			drugs = append(drugs, d)
		}
	}
	i := g.rng.Pick(len(drugs))
	if i < 0 {
		return nil
	}
	d := drugs[i]
	oc := g.cfg.Opportunities
	qty := g.between(oc.BatchQuantity)
	unit := math.Round(d.BaseBuy*oc.BatchPriceFactor*100) / 100
	return &Opportunity{
		Type:      economy.EventExperimentalBatch,
		Drug:      d.Name,
		Quality:   economy.QualityPure,
		Quantity:  qty,
		Region:    region.Name,
		UnitPrice: unit,
		Description: fmt.Sprintf("A cook in %s offers %d units of an experimental %s batch at %s each.",
			region.Name, qty, d.Name, economy.Money(unit)),
		Choices: []string{"Buy", "Pass"},
	}
}

// RespondToOpportunity answers the pending opportunity. Choice 0 accepts,
// 1 declines. A failed validation keeps the offer pending.
func (g *Game) RespondToOpportunity(choice int) (*OpportunityResult, error) {
	if err := g.checkActive(); err != nil {
		return nil, err
	}
	o := g.State.PendingOpportunity
	if o == nil {
		return nil, ErrNoOpportunity
	}
	if choice < 0 || choice >= len(o.Choices) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChoice, choice)
	}
	if choice == 1 {
		g.State.PendingOpportunity = nil
		return &OpportunityResult{Type: o.Type, Message: "You let it go."}, nil
	}

	var (
		out *OpportunityResult
		err error
	)
	switch o.Type {
	case economy.EventRivalStashLeaked:
		out = g.stealStash(o)
	case economy.EventUrgentDelivery:
		out, err = g.deliver(o)
	case economy.EventExperimentalBatch:
		out, err = g.buyBatch(o)
	default:
		panic(fmt.Sprintf("engine: unknown opportunity type %q", o.Type))
	}
	if err != nil {
		return nil, err
	}
	g.State.PendingOpportunity = nil
	out.Type, out.Accepted = o.Type, true
	g.log.Info("opportunity taken", "type", o.Type, "success", out.Success, "cash", out.CashDelta, "heat", out.HeatAdded)
	return out, nil
}

func (g *Game) stealStash(o *Opportunity) *OpportunityResult {
	oc := g.cfg.Opportunities
	inv := g.State.Player
	if !g.rng.Chance(oc.StashSuccess) {
		heat := g.between(oc.StashHeat)
		g.CurrentRegion().ModifyHeat(heat)
		return &OpportunityResult{HeatAdded: heat, Message: "The stash was watched. You got away, barely."}
	}
	n := min(o.Quantity, inv.FreeSpace())
	if n <= 0 {
		return &OpportunityResult{Success: true, Message: "You found the stash but had no room to carry any of it."}
	}
	_ = inv.AddDrug(o.Drug, o.Quality, n)
	return &OpportunityResult{
		Success: true,
		Gained:  &player.Lot{Drug: o.Drug, Quality: o.Quality, Quantity: n},
		Message: fmt.Sprintf("You walked off with %d %s %s.", n, o.Quality, o.Drug),
	}
}

func (g *Game) deliver(o *Opportunity) (*OpportunityResult, error) {
	inv := g.State.Player
	if err := inv.RemoveDrug(o.Drug, o.Quality, o.Quantity); err != nil {
		return nil, err
	}
	total := math.Round(o.UnitPrice*float64(o.Quantity)*100) / 100
	inv.Credit(total)
	return &OpportunityResult{
		Success:   true,
		CashDelta: total,
		Message:   fmt.Sprintf("Delivered %d %s %s to %s for %s.", o.Quantity, o.Quality, o.Drug, o.Region, economy.Money(total)),
	}, nil
}

func (g *Game) buyBatch(o *Opportunity) (*OpportunityResult, error) {
	oc := g.cfg.Opportunities
	inv := g.State.Player
	total := math.Round(o.UnitPrice*float64(o.Quantity)*100) / 100
	if free := inv.FreeSpace(); free < o.Quantity {
		return nil, fmt.Errorf("%w: need %d slots, have %d", player.ErrInsufficientSpace, o.Quantity, free)
	}
	if err := inv.Debit(total); err != nil {
		return nil, err
	}

	if g.rng.Chance(oc.BatchSuccess) {
		_ = inv.AddDrug(o.Drug, economy.QualityPure, o.Quantity)
		return &OpportunityResult{
			Success:   true,
			CashDelta: -total,
			Gained:    &player.Lot{Drug: o.Drug, Quality: economy.QualityPure, Quantity: o.Quantity},
			Message:   fmt.Sprintf("The batch is the real thing: %d PURE %s.", o.Quantity, o.Drug),
		}, nil
	}

	out := &OpportunityResult{CashDelta: -total, HeatAdded: g.between(oc.BatchHeat)}
	if half := o.Quantity / 2; half > 0 {
		_ = inv.AddDrug(o.Drug, economy.QualityCut, half)
		out.Gained = &player.Lot{Drug: o.Drug, Quality: economy.QualityCut, Quantity: half}
	}
	g.CurrentRegion().ModifyHeat(out.HeatAdded)
	out.Message = fmt.Sprintf("The batch was garbage. Half of it is barely sellable CUT %s and people noticed.", o.Drug)
	return out, nil
}
