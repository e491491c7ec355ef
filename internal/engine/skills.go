// Skills and equipment upgrades.
package engine

import (
	"fmt"

	"github.com/talgya/narcosim/internal/economy"
	"github.com/talgya/narcosim/internal/player"
)

// Upgrade identifiers accepted by PurchaseUpgrade.
const (
	UpgradeCapacity    = "CAPACITY"
	UpgradeSecurePhone = "SECURE_PHONE"
)

// UnlockSkill spends skill points on a skill.
func (g *Game) UnlockSkill(id string) error {
	if err := g.checkActive(); err != nil {
		return err
	}
	def, ok := g.cfg.Skill(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSkill, id)
	}
	inv := g.State.Player
	if inv.HasSkill(id) {
		return fmt.Errorf("%w: %s", ErrSkillUnlocked, id)
	}
	if inv.SkillPoints < def.Cost {
		return fmt.Errorf("%w: need %d, have %d", ErrNoSkillPoints, def.Cost, inv.SkillPoints)
	}
	inv.SkillPoints -= def.Cost
	inv.Skills[id] = true
	g.log.Info("skill unlocked", "skill", id, "points_left", inv.SkillPoints)
	return nil
}

// UpgradeReceipt describes a purchased upgrade.
type UpgradeReceipt struct {
	Upgrade  string  `json:"upgrade"`
	Cost     float64 `json:"cost"`
	Capacity int     `json:"capacity,omitempty"`
}

// NextCapacityLevel returns the next capacity upgrade, if any remain.
func (g *Game) NextCapacityLevel() (capacity int, cost float64, ok bool) {
	levels := g.cfg.Upgrades.CapacityLevels
	lvl := g.State.Player.CapacityLevel
	if lvl >= len(levels) {
		return 0, 0, false
	}
	return levels[lvl].Capacity, levels[lvl].Cost, true
}

// PurchaseUpgrade buys one capacity level or the secure phone.
func (g *Game) PurchaseUpgrade(id string) (*UpgradeReceipt, error) {
	if err := g.checkActive(); err != nil {
		return nil, err
	}
	inv := g.State.Player

	switch id {
	case UpgradeCapacity:
		capacity, cost, ok := g.NextCapacityLevel()
		if !ok {
			return nil, fmt.Errorf("%w: capacity is maxed at %d", ErrUpgradeOwned, inv.Capacity())
		}
		if err := inv.Debit(cost); err != nil {
			return nil, err
		}
		inv.CapacityLevel++
		inv.SetCapacity(capacity)
		g.log.Info("upgrade bought", "upgrade", id, "capacity", capacity, "cost", cost)
		return &UpgradeReceipt{Upgrade: id, Cost: cost, Capacity: capacity}, nil

	case UpgradeSecurePhone:
		if inv.SecurePhone {
			return nil, fmt.Errorf("%w: %s", ErrUpgradeOwned, id)
		}
		cost := g.cfg.Upgrades.SecurePhoneCost
		if !inv.CanAfford(cost) {
			return nil, fmt.Errorf("%w: need %s, have %s", player.ErrInsufficientCash,
				economy.Money(cost), economy.Money(inv.Cash()))
		}
		_ = inv.Debit(cost)
		inv.SecurePhone = true
		g.log.Info("upgrade bought", "upgrade", id, "cost", cost)
		return &UpgradeReceipt{Upgrade: id, Cost: cost}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownUpgrade, id)
}
