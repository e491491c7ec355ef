// Informant tips and the corrupt official.
package engine

import (
	"fmt"
	"math"
	"slices"

	"github.com/talgya/narcosim/internal/economy"
)

// Tip kinds sold by the informant.
const (
	TipRumor     = "RUMOR"
	TipDrugInfo  = "DRUG_INFO"
	TipRivalInfo = "RIVAL_INFO"
)

// Tip is what the informant tells the player.
type Tip struct {
	Kind  string  `json:"kind"`
	Cost  float64 `json:"cost"`
	Text  string  `json:"text"`
	Trust int     `json:"trust"`
}

func (g *Game) tipCost(kind string) (float64, bool) {
	ic := g.cfg.Informant
	switch kind {
	case TipRumor:
		return ic.RumorCost, true
	case TipDrugInfo:
		return ic.DrugInfoCost, true
	case TipRivalInfo:
		return ic.RivalInfoCost, true
	}
	return 0, false
}

// BuyTip pays the informant for a tip read from the current state.
func (g *Game) BuyTip(kind string) (*Tip, error) {
	if err := g.checkActive(); err != nil {
		return nil, err
	}
	cost, ok := g.tipCost(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTip, kind)
	}
	if until := g.State.InformantUnavailableUntil; g.State.Day < until {
		return nil, fmt.Errorf("%w: until day %d", ErrInformantUnavailable, until)
	}
	inv := g.State.Player
	if err := inv.Debit(cost); err != nil {
		return nil, err
	}

	var text string
	switch kind {
	case TipRumor:
		text = g.rumor()
	case TipDrugInfo:
		text = g.drugInfo()
	case TipRivalInfo:
		text = g.rivalInfo()
	}
	inv.InformantTrust = min(g.cfg.Informant.MaxTrust, inv.InformantTrust+g.cfg.Informant.TrustPerTip)
	g.log.Debug("tip bought", "kind", kind, "cost", cost, "trust", inv.InformantTrust)
	return &Tip{Kind: kind, Cost: cost, Text: text, Trust: inv.InformantTrust}, nil
}

// rumor names the hottest region in the city.
func (g *Game) rumor() string {
	var hot *economy.Region
	for _, r := range g.State.Regions {
		if hot == nil || r.Heat() > hot.Heat() {
			hot = r
		}
	}
	if hot == nil || hot.Heat() == 0 {
		return "Word is the cops are quiet everywhere right now."
	}
	return fmt.Sprintf("Word is the cops are all over %s (heat %d).", hot.Name, hot.Heat())
}

// drugInfo names the cheapest place to buy and the best place to sell one
// randomly chosen drug.
func (g *Game) drugInfo() string {
	var drugs []string
	for _, r := range g.State.Regions {
		for _, d := range r.DrugNames() {
			if !slices.Contains(drugs, d) {
				drugs = append(drugs, d)
			}
		}
	}
	slices.Sort(drugs)
	i := g.rng.Pick(len(drugs))
	if i < 0 {
		return "Nobody is moving anything."
	}
	drug := drugs[i]
	q := economy.QualityStandard

	buyAt, sellAt := "", ""
	lowBuy, highSell := math.Inf(1), 0.0
	for _, r := range g.State.Regions {
		if p := r.BuyPrice(drug, q); p > 0 && p < lowBuy {
			lowBuy, buyAt = p, r.Name
		}
		if p := r.SellPrice(drug, q); p > highSell {
			highSell, sellAt = p, r.Name
		}
	}
	if buyAt == "" || sellAt == "" {
		return fmt.Sprintf("%s is hard to find anywhere right now.", drug)
	}
	return fmt.Sprintf("%s: buy in %s at %s, sell in %s at %s.",
		drug, buyAt, economy.Money(lowBuy), sellAt, economy.Money(highSell))
}

// rivalInfo reports on one randomly chosen rival.
func (g *Game) rivalInfo() string {
	i := g.rng.Pick(len(g.State.Rivals))
	if i < 0 {
		return "There's no competition worth mentioning."
	}
	rv := g.State.Rivals[i]
	if rv.Busted {
		return fmt.Sprintf("%s is locked up for another %d days. %s in %s is wide open.",
			rv.Name, rv.BustedDaysRemaining, rv.Drug, rv.Region)
	}
	return fmt.Sprintf("%s is working %s in %s and pushing hard (aggression %d%%).",
		rv.Name, rv.Drug, rv.Region, percent(rv.Aggression))
}

// OfficialBribe reports a payment to the corrupt official.
type OfficialBribe struct {
	Region      string  `json:"region"`
	Cost        float64 `json:"cost"`
	HeatRemoved int     `json:"heat_removed"`
}

// OfficialCost is what the official charges in the current region.
func (g *Game) OfficialCost() float64 {
	ic := g.cfg.Informant
	return ic.OfficialBaseCost + ic.OfficialCostPerHeat*float64(g.CurrentRegion().Heat())
}

// BribeOfficial pays to cool the current region.
func (g *Game) BribeOfficial() (*OfficialBribe, error) {
	if err := g.checkActive(); err != nil {
		return nil, err
	}
	region := g.CurrentRegion()
	cost := g.OfficialCost()
	if err := g.State.Player.Debit(cost); err != nil {
		return nil, err
	}
	before := region.Heat()
	after := region.ModifyHeat(-g.cfg.Informant.OfficialHeatReduction)
	g.log.Info("official bribed", "region", region.Name, "cost", cost, "heat", after)
	return &OfficialBribe{Region: region.Name, Cost: cost, HeatRemoved: before - after}, nil
}
