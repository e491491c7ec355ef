package config

import (
	"errors"
	"fmt"
)

// Validate checks that the balance table is internally consistent.
func (c *Config) Validate() error {
	if c.Player.StartingCash < 0 {
		return errors.New("player.starting_cash must be >= 0")
	}
	if c.Player.Capacity < 1 {
		return errors.New("player.capacity must be >= 1")
	}
	if c.Player.TravelCost < 0 {
		return errors.New("player.travel_cost must be >= 0")
	}
	if _, ok := c.Region(c.Player.StartRegion); !ok {
		return fmt.Errorf("player.start_region %q is not a configured region", c.Player.StartRegion)
	}

	if len(c.Regions) < 2 {
		return errors.New("regions must list at least two regions")
	}
	seen := make(map[string]bool, len(c.Regions))
	for i, r := range c.Regions {
		if r.Name == "" {
			return fmt.Errorf("regions[%d].name is required", i)
		}
		if seen[r.Name] {
			return fmt.Errorf("regions[%d]: duplicate region %q", i, r.Name)
		}
		seen[r.Name] = true
		drugs := make(map[string]bool, len(r.Drugs))
		for j, d := range r.Drugs {
			prefix := fmt.Sprintf("regions[%d].drugs[%d]", i, j)
			if d.Name == "" {
				return fmt.Errorf("%s.name is required", prefix)
			}
			if drugs[d.Name] {
				return fmt.Errorf("%s: duplicate drug %q in %s", prefix, d.Name, r.Name)
			}
			drugs[d.Name] = true
			if d.Tier < 1 || d.Tier > 4 {
				return fmt.Errorf("%s.tier must be between 1 and 4, got %d", prefix, d.Tier)
			}
			if d.BaseBuy <= 0 || d.BaseSell <= 0 {
				return fmt.Errorf("%s: base prices must be > 0", prefix)
			}
		}
	}

	for i, d := range c.Debts {
		if d.Day < 1 || d.Amount <= 0 {
			return fmt.Errorf("debts[%d]: day must be >= 1 and amount > 0", i)
		}
		if i > 0 && d.Day <= c.Debts[i-1].Day {
			return fmt.Errorf("debts[%d]: days must be strictly increasing", i)
		}
	}

	if err := validateSteps("market.heat_price_steps", c.Market.HeatPriceSteps); err != nil {
		return err
	}
	if err := validateSteps("market.heat_stock_steps", c.Market.HeatStockSteps); err != nil {
		return err
	}
	if c.Market.MaxBuyImpact < 1 {
		return errors.New("market.max_buy_impact must be >= 1")
	}
	if c.Market.MinSellImpact <= 0 || c.Market.MinSellImpact > 1 {
		return errors.New("market.min_sell_impact must be in (0, 1]")
	}
	for name, r := range map[string]IntRange{
		"market.stock_pure":     c.Market.StockPure,
		"market.stock_standard": c.Market.StockStandard,
		"market.stock_cut":      c.Market.StockCut,
	} {
		if err := r.validate(name); err != nil {
			return err
		}
	}

	for i, rv := range c.Rivals.Definitions {
		region, ok := c.Region(rv.Region)
		if !ok {
			return fmt.Errorf("rivals.definitions[%d]: unknown region %q", i, rv.Region)
		}
		if !region.Lists(rv.Drug) {
			return fmt.Errorf("rivals.definitions[%d]: %s does not trade %s", i, rv.Region, rv.Drug)
		}
		if !unit(rv.Aggression) || !unit(rv.Activity) {
			return fmt.Errorf("rivals.definitions[%d]: aggression and activity must be in [0, 1]", i)
		}
	}

	if !unit(c.Events.TriggerChance) || !unit(c.Events.BlackMarket.Chance) {
		return errors.New("events: chances must be in [0, 1]")
	}
	if c.Events.Weights.Total() <= 0 {
		return errors.New("events.weights must sum to > 0")
	}
	if c.Events.TheSetup.StingMin > c.Events.TheSetup.StingMax {
		return errors.New("events.the_setup.sting_min cannot exceed sting_max")
	}
	if !unit(c.Events.TheSetup.BuyDealChance) {
		return errors.New("events.the_setup.buy_deal_chance must be in [0, 1]")
	}
	if c.Opportunities.Weights.Total() <= 0 {
		return errors.New("opportunities.weights must sum to > 0")
	}

	if c.Police.MinChance > c.Police.MaxChance {
		return errors.New("police.min_chance cannot exceed max_chance")
	}
	if c.Police.BribeMinSuccess > c.Police.BribeMaxSuccess {
		return errors.New("police.bribe_min_success cannot exceed bribe_max_success")
	}

	coins := make(map[string]bool, len(c.Crypto.Coins))
	for i, coin := range c.Crypto.Coins {
		if coin.Symbol == "" {
			return fmt.Errorf("crypto.coins[%d].symbol is required", i)
		}
		if coin.Minimum <= 0 || coin.Initial < coin.Minimum {
			return fmt.Errorf("crypto.coins[%d]: need 0 < minimum <= initial", i)
		}
		coins[coin.Symbol] = true
	}
	if !coins[c.Crypto.StakingCoin] {
		return fmt.Errorf("crypto.staking_coin %q is not a configured coin", c.Crypto.StakingCoin)
	}
	if !coins[c.Crypto.StableCoin] {
		return fmt.Errorf("crypto.stable_coin %q is not a configured coin", c.Crypto.StableCoin)
	}
	if c.Crypto.LaunderFee < 0 || c.Crypto.LaunderFee >= 1 {
		return errors.New("crypto.launder_fee must be in [0, 1)")
	}

	if c.Skills.PointInterval < 1 {
		return errors.New("skills.point_interval must be >= 1")
	}
	for i := 1; i < len(c.Upgrades.CapacityLevels); i++ {
		if c.Upgrades.CapacityLevels[i].Capacity <= c.Upgrades.CapacityLevels[i-1].Capacity {
			return fmt.Errorf("upgrades.capacity_levels[%d]: capacity must increase", i)
		}
	}

	for i, s := range c.Seasons {
		if s.StartDay < 1 || s.EndDay < s.StartDay {
			return fmt.Errorf("seasons[%d]: need 1 <= start_day <= end_day", i)
		}
	}

	return nil
}

// Lists reports whether the region trades the drug.
func (r RegionDef) Lists(drug string) bool {
	for _, d := range r.Drugs {
		if d.Name == drug {
			return true
		}
	}
	return false
}

func (r IntRange) validate(name string) error {
	if r.Min < 0 || r.Max < r.Min {
		return fmt.Errorf("%s: need 0 <= min <= max, got [%d, %d]", name, r.Min, r.Max)
	}
	return nil
}

func validateSteps(name string, steps []HeatStep) error {
	if len(steps) == 0 || steps[0].Threshold != 0 {
		return fmt.Errorf("%s must start at threshold 0", name)
	}
	for i := 1; i < len(steps); i++ {
		if steps[i].Threshold <= steps[i-1].Threshold {
			return fmt.Errorf("%s[%d]: thresholds must increase", name, i)
		}
	}
	return nil
}

func unit(v float64) bool { return v >= 0 && v <= 1 }
