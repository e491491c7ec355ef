// Player trading: buying, selling, travel and the setup deal.
package engine

import (
	"fmt"
	"math"

	"github.com/talgya/narcosim/internal/config"
	"github.com/talgya/narcosim/internal/economy"
	"github.com/talgya/narcosim/internal/player"
)

// TradeReceipt describes a completed buy or sell.
type TradeReceipt struct {
	Drug      string          `json:"drug"`
	Quality   economy.Quality `json:"quality"`
	Quantity  int             `json:"quantity"`
	UnitPrice float64         `json:"unit_price"`
	Total     float64         `json:"total"`
	HeatAdded int             `json:"heat_added,omitempty"`
}

// Buy purchases qty units in the current region.
func (g *Game) Buy(drug string, q economy.Quality, qty int) (*TradeReceipt, error) {
	if err := g.checkActive(); err != nil {
		return nil, err
	}
	if qty <= 0 {
		return nil, fmt.Errorf("%w: %d", player.ErrInvalidQuantity, qty)
	}
	region := g.CurrentRegion()
	inv := g.State.Player

	cost, err := region.CheckBuy(drug, q, qty)
	if err != nil {
		return nil, err
	}
	if free := inv.FreeSpace(); free < qty {
		return nil, fmt.Errorf("%w: need %d slots, have %d", player.ErrInsufficientSpace, qty, free)
	}
	if err := inv.Debit(cost); err != nil {
		return nil, err
	}

	region.UpdateStockOnBuy(drug, q, qty)
	_ = inv.AddDrug(drug, q, qty)
	region.ApplyPlayerBuyImpact(drug, qty)

	g.log.Debug("buy", "region", region.Name, "drug", drug, "quality", q, "qty", qty, "cost", cost)
	return &TradeReceipt{
		Drug:      drug,
		Quality:   q,
		Quantity:  qty,
		UnitPrice: math.Round(cost/float64(qty)*100) / 100,
		Total:     cost,
	}, nil
}

// Sell sells qty held units in the current region.
func (g *Game) Sell(drug string, q economy.Quality, qty int) (*TradeReceipt, error) {
	if err := g.checkActive(); err != nil {
		return nil, err
	}
	if qty <= 0 {
		return nil, fmt.Errorf("%w: %d", player.ErrInvalidQuantity, qty)
	}
	region := g.CurrentRegion()
	inv := g.State.Player

	price, err := region.CheckSell(drug, q)
	if err != nil {
		return nil, err
	}
	if err := inv.RemoveDrug(drug, q, qty); err != nil {
		return nil, err
	}

	total := math.Round(price*float64(qty)*100) / 100
	inv.Credit(total)
	region.ApplyPlayerSellImpact(drug, qty, g.sellReduction())
	d, _ := region.Drug(drug)
	heat := g.saleHeat(d.Tier, qty)
	region.ModifyHeat(heat)

	g.log.Debug("sell", "region", region.Name, "drug", drug, "quality", q, "qty", qty, "total", total, "heat", heat)
	return &TradeReceipt{
		Drug:      drug,
		Quality:   q,
		Quantity:  qty,
		UnitPrice: price,
		Total:     total,
		HeatAdded: heat,
	}, nil
}

// sellReduction is how much COMPARTMENTALIZATION softens sale heat and impact.
func (g *Game) sellReduction() float64 {
	if g.State.Player.HasSkill(config.SkillCompartmentalization) {
		return g.cfg.Skills.CompartmentalizationReduction
	}
	return 0
}

// saleHeat is the heat raised by selling qty units of a tier.
func (g *Game) saleHeat(tier, qty int) int {
	per := g.cfg.Market.HeatPerUnitSold[tier]
	return int(math.Round(float64(qty*per) * (1 - g.sellReduction())))
}

// TravelResult is the day spent travelling and whether the police stopped
// the player on arrival.
type TravelResult struct {
	Day     *DailyUpdateResult `json:"day"`
	Stopped bool               `json:"stopped"`
}

// Travel moves to dest. The player must be able to pay the fare; one day
// passes and the police may stop the player on arrival.
func (g *Game) Travel(dest string) (*TravelResult, error) {
	if err := g.checkActive(); err != nil {
		return nil, err
	}
	region, ok := g.Region(dest)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, dest)
	}
	if dest == g.State.CurrentRegion {
		return nil, fmt.Errorf("%w: %s", ErrSameRegion, dest)
	}

	inv := g.State.Player
	fare := g.cfg.Player.TravelCost
	if !inv.CanAfford(fare) {
		return nil, fmt.Errorf("%w: need %s, have %s", player.ErrInsufficientCash,
			economy.Money(fare), economy.Money(inv.Cash()))
	}
	_ = inv.Debit(fare)
	from := g.State.CurrentRegion
	g.State.CurrentRegion = dest
	g.log.Info("travel", "from", from, "to", dest, "day", g.State.Day)

	out := &TravelResult{Day: g.advanceDay()}
	if out.Day.GameOver == "" && g.rollPoliceStop(region) {
		out.Stopped = true
		out.Day.say("Flashing lights behind you. The police pull you over in %s.", dest)
	}
	return out, nil
}

// SetupResult reports how a THE_SETUP response played out.
type SetupResult struct {
	Accepted  bool              `json:"accepted"`
	Sting     bool              `json:"sting,omitempty"`
	Deal      economy.SetupDeal `json:"deal"`
	HeatAdded int               `json:"heat_added,omitempty"`
	Message   string            `json:"message"`
}

// RespondToSetup accepts or declines the setup deal in the current region.
// An accepted deal either trades at the deal price or turns out to be a
// sting that leaves a police stop pending, never both.
func (g *Game) RespondToSetup(accept bool) (*SetupResult, error) {
	if err := g.checkActive(); err != nil {
		return nil, err
	}
	region := g.CurrentRegion()
	e := region.FindEvent(economy.EventTheSetup)
	if e == nil || e.Deal == nil {
		return nil, ErrNoSetup
	}
	deal := *e.Deal
	out := &SetupResult{Accepted: accept, Deal: deal}

	if !accept {
		region.RemoveEvent(e)
		out.Message = "You walk away from the deal."
		return out, nil
	}

	inv := g.State.Player
	if deal.IsBuy {
		if free := inv.FreeSpace(); free < deal.Quantity {
			return nil, fmt.Errorf("%w: need %d slots, have %d", player.ErrInsufficientSpace, deal.Quantity, free)
		}
		if !inv.CanAfford(deal.Total()) {
			return nil, fmt.Errorf("%w: need %s, have %s", player.ErrInsufficientCash,
				economy.Money(deal.Total()), economy.Money(inv.Cash()))
		}
	} else if held := inv.Quantity(deal.Drug, deal.Quality); held < deal.Quantity {
		return nil, fmt.Errorf("%w: need %d %s %s, have %d", player.ErrInsufficientDrugs,
			deal.Quantity, deal.Quality, deal.Drug, held)
	}
	region.RemoveEvent(e)

	c := g.cfg.Events.TheSetup
	sting := clamp(c.StingBase+c.StingPerHeat*float64(region.Heat()), c.StingMin, c.StingMax)
	if g.rng.Chance(sting) {
		g.State.PendingStop = &PoliceStop{Region: region.Name, Day: g.State.Day, Sting: true}
		out.Sting = true
		out.Message = "It's a setup! Cops everywhere."
		g.log.Info("setup sting", "region", region.Name, "chance", sting)
		return out, nil
	}

	if deal.IsBuy {
		_ = inv.Debit(deal.Total())
		_ = inv.AddDrug(deal.Drug, deal.Quality, deal.Quantity)
		region.ApplyPlayerBuyImpact(deal.Drug, deal.Quantity)
		out.Message = fmt.Sprintf("You bought %d %s %s for %s.", deal.Quantity, deal.Quality, deal.Drug, economy.Money(deal.Total()))
	} else {
		_ = inv.RemoveDrug(deal.Drug, deal.Quality, deal.Quantity)
		inv.Credit(deal.Total())
		region.ApplyPlayerSellImpact(deal.Drug, deal.Quantity, g.sellReduction())
		out.Message = fmt.Sprintf("You sold %d %s %s for %s.", deal.Quantity, deal.Quality, deal.Drug, economy.Money(deal.Total()))
	}
	out.HeatAdded = g.between(c.Heat)
	region.ModifyHeat(out.HeatAdded)
	g.log.Info("setup deal", "region", region.Name, "buy", deal.IsBuy, "total", deal.Total())
	return out, nil
}
