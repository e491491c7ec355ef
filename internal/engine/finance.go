// Laundering and staking.
package engine

import (
	"fmt"
	"math"

	"github.com/talgya/narcosim/internal/economy"
	"github.com/talgya/narcosim/internal/player"
)

// LaunderReceipt describes a laundering transfer that has been started.
type LaunderReceipt struct {
	Amount     float64 `json:"amount"`
	Arriving   float64 `json:"arriving"`
	ArrivalDay int     `json:"arrival_day"`
	HeatAdded  int     `json:"heat_added,omitempty"`
}

// Launder sends amount of cash through the wash. The net amount arrives in
// the stablecoin wallet after the configured delay. Only one transfer may
// be in flight.
func (g *Game) Launder(amount float64) (*LaunderReceipt, error) {
	if err := g.checkActive(); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: %v", player.ErrInvalidQuantity, amount)
	}
	inv := g.State.Player
	if inv.Laundering != nil {
		return nil, fmt.Errorf("%w: %s arriving on day %d", ErrLaunderingPending,
			economy.Money(inv.Laundering.Amount), inv.Laundering.ArrivalDay)
	}
	if err := inv.Debit(amount); err != nil {
		return nil, err
	}

	c := g.cfg.Crypto
	out := &LaunderReceipt{
		Amount:     amount,
		Arriving:   math.Round(amount*(1-c.LaunderFee)*100) / 100,
		ArrivalDay: g.State.Day + c.LaunderDelayDays,
		HeatAdded:  int(math.Round(amount * c.LaunderHeatPerDollar * g.heatReduction())),
	}
	inv.Laundering = &player.Laundering{Amount: out.Arriving, ArrivalDay: out.ArrivalDay}
	g.CurrentRegion().ModifyHeat(out.HeatAdded)
	g.log.Info("laundering started", "amount", amount, "arriving", out.Arriving, "day", out.ArrivalDay)
	return out, nil
}

// Stake moves amount of the staking coin from the wallet into the stake.
func (g *Game) Stake(amount float64) error {
	if err := g.checkActive(); err != nil {
		return err
	}
	inv := g.State.Player
	if err := inv.RemoveCrypto(g.cfg.Crypto.StakingCoin, amount); err != nil {
		return err
	}
	inv.Staked = roundCoin(inv.Staked + amount)
	g.log.Debug("staked", "amount", amount, "total", inv.Staked)
	return nil
}

// Unstake moves amount back from the stake into the wallet.
func (g *Game) Unstake(amount float64) error {
	if err := g.checkActive(); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("%w: %v", player.ErrInvalidQuantity, amount)
	}
	inv := g.State.Player
	if inv.Staked < amount {
		return fmt.Errorf("%w: need %.4f staked, have %.4f", player.ErrInsufficientCrypto, amount, inv.Staked)
	}
	inv.Staked = roundCoin(inv.Staked - amount)
	_ = inv.AddCrypto(g.cfg.Crypto.StakingCoin, amount)
	g.log.Debug("unstaked", "amount", amount, "total", inv.Staked)
	return nil
}

// CollectStakingRewards moves accrued rewards into the wallet and returns
// the amount collected.
func (g *Game) CollectStakingRewards() (float64, error) {
	if err := g.checkActive(); err != nil {
		return 0, err
	}
	inv := g.State.Player
	reward := inv.StakingRewards
	if reward <= 0 {
		return 0, nil
	}
	_ = inv.AddCrypto(g.cfg.Crypto.StakingCoin, reward)
	inv.StakingRewards = 0
	return reward, nil
}

func roundCoin(v float64) float64 {
	return math.Round(v*1e8) / 1e8
}
