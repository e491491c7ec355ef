package economy

import "math"

func (r *Region) impactStep(qty int) float64 {
	return float64(qty) / 10 * r.cfg.ImpactPerTenUnits
}

// ApplyPlayerBuyImpact pushes the buy modifier up for a purchase of qty units.
func (r *Region) ApplyPlayerBuyImpact(drug string, qty int) {
	d, ok := r.Drugs[drug]
	if !ok {
		return
	}
	d.PlayerBuyImpact = math.Min(r.cfg.MaxBuyImpact, d.PlayerBuyImpact+r.impactStep(qty))
}

// ApplyPlayerSellImpact pushes the sell modifier down for a sale of qty
// units. reduction scales the push, so 0.1 softens it by ten percent.
func (r *Region) ApplyPlayerSellImpact(drug string, qty int, reduction float64) {
	d, ok := r.Drugs[drug]
	if !ok {
		return
	}
	step := r.impactStep(qty) * (1 - reduction)
	d.PlayerSellImpact = math.Max(r.cfg.MinSellImpact, d.PlayerSellImpact-step)
}

// DecayPlayerImpact relaxes both player modifiers one step toward 1.
func (r *Region) DecayPlayerImpact() {
	for _, d := range r.Drugs {
		if d.PlayerBuyImpact > 1 {
			d.PlayerBuyImpact = math.Max(1, d.PlayerBuyImpact-r.cfg.ImpactDecay)
		}
		if d.PlayerSellImpact < 1 {
			d.PlayerSellImpact = math.Min(1, d.PlayerSellImpact+r.cfg.ImpactDecay)
		}
	}
}

// ApplyRivalDemand scales the rival demand modifier up by factor, capped.
func (r *Region) ApplyRivalDemand(drug string, factor, limit float64, day int) {
	d, ok := r.Drugs[drug]
	if !ok {
		return
	}
	d.RivalDemand = math.Min(limit, d.RivalDemand*factor)
	d.LastRivalActivity = day
}

// ApplyRivalSupply scales the rival supply modifier down by factor, floored.
func (r *Region) ApplyRivalSupply(drug string, factor, floor float64, day int) {
	d, ok := r.Drugs[drug]
	if !ok {
		return
	}
	d.RivalSupply = math.Max(floor, d.RivalSupply*factor)
	d.LastRivalActivity = day
}

// DecayRivalImpact relaxes rival modifiers toward 1 by rate on drugs no
// rival has touched for more than idleDays.
func (r *Region) DecayRivalImpact(day, idleDays int, rate float64) {
	for _, d := range r.Drugs {
		if day-d.LastRivalActivity <= idleDays {
			continue
		}
		d.RivalDemand = towardOne(d.RivalDemand, rate)
		d.RivalSupply = towardOne(d.RivalSupply, rate)
	}
}

func towardOne(v, rate float64) float64 {
	switch {
	case v > 1:
		return math.Max(1, v-rate)
	case v < 1:
		return math.Min(1, v+rate)
	}
	return v
}

// DecayHeat cools the region by amount, floored at zero.
func (r *Region) DecayHeat(amount int) {
	r.ModifyHeat(-amount)
}
