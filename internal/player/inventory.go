// Package player holds the player's inventory: cash, drug holdings, crypto
// wallets, skills and the flags that soften heat.
package player

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/talgya/narcosim/internal/config"
	"github.com/talgya/narcosim/internal/economy"
)

// Lot is one (drug, quality) holding.
type Lot struct {
	Drug     string          `json:"drug"`
	Quality  economy.Quality `json:"quality"`
	Quantity int             `json:"quantity"`
}

// Laundering is cash in transit to the stablecoin wallet.
type Laundering struct {
	Amount     float64 `json:"amount"` // after fee
	ArrivalDay int     `json:"arrival_day"`
}

// Inventory is everything the player owns. Cash, holdings and wallets are
// only reachable through methods that validate before they mutate.
type Inventory struct {
	cash     float64
	holdings map[string]map[economy.Quality]int
	wallets  map[string]float64
	capacity int

	CapacityLevel  int // capacity upgrades bought
	SecurePhone    bool
	SkillPoints    int
	Skills         map[string]bool
	DebtPaid       []bool
	InformantTrust int

	Staked         float64
	StakingRewards float64
	Laundering     *Laundering
}

// New creates the starting inventory.
func New(cfg config.PlayerConfig, debts int) *Inventory {
	return &Inventory{
		cash:           cfg.StartingCash,
		holdings:       make(map[string]map[economy.Quality]int),
		wallets:        make(map[string]float64),
		capacity:       cfg.Capacity,
		Skills:         make(map[string]bool),
		DebtPaid:       make([]bool, debts),
		InformantTrust: cfg.StartingTrust,
	}
}

// MatchDebts resizes DebtPaid to a schedule of n payments. New installments
// start unpaid and those past n are dropped.
func (inv *Inventory) MatchDebts(n int) {
	switch {
	case len(inv.DebtPaid) > n:
		inv.DebtPaid = inv.DebtPaid[:n]
	case len(inv.DebtPaid) < n:
		inv.DebtPaid = append(inv.DebtPaid, make([]bool, n-len(inv.DebtPaid))...)
	}
}

// Cash returns the cash on hand.
func (inv *Inventory) Cash() float64 { return inv.cash }

// CanAfford reports whether cash covers amount.
func (inv *Inventory) CanAfford(amount float64) bool {
	return inv.cash >= amount
}

// Credit adds amount to cash.
func (inv *Inventory) Credit(amount float64) {
	if amount < 0 {
		panic(fmt.Sprintf("player: negative credit %v", amount))
	}
	inv.cash = round2(inv.cash + amount)
}

// Debit removes amount from cash, refusing to overdraw.
func (inv *Inventory) Debit(amount float64) error {
	if amount < 0 {
		panic(fmt.Sprintf("player: negative debit %v", amount))
	}
	if inv.cash < amount {
		return fmt.Errorf("%w: need %s, have %s", ErrInsufficientCash, economy.Money(amount), economy.Money(inv.cash))
	}
	inv.cash = round2(inv.cash - amount)
	return nil
}

// Capacity is the maximum number of units carried.
func (inv *Inventory) Capacity() int { return inv.capacity }

// SetCapacity changes the carry limit.
func (inv *Inventory) SetCapacity(n int) { inv.capacity = n }

// Load is the number of units carried.
func (inv *Inventory) Load() int {
	total := 0
	for _, byQuality := range inv.holdings {
		for _, n := range byQuality {
			total += n
		}
	}
	return total
}

// FreeSpace is Capacity minus Load, never below zero.
func (inv *Inventory) FreeSpace() int {
	return max(0, inv.capacity-inv.Load())
}

// Quantity returns the held units of drug at quality q.
func (inv *Inventory) Quantity(drug string, q economy.Quality) int {
	return inv.holdings[drug][q]
}

// DrugTotal returns the held units of drug across all qualities.
func (inv *Inventory) DrugTotal(drug string) int {
	total := 0
	for _, n := range inv.holdings[drug] {
		total += n
	}
	return total
}

// HasDrugs reports whether anything is carried.
func (inv *Inventory) HasDrugs() bool {
	return inv.Load() > 0
}

// AddDrug stores qty units if they fit.
func (inv *Inventory) AddDrug(drug string, q economy.Quality, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}
	if free := inv.FreeSpace(); qty > free {
		return fmt.Errorf("%w: need %d slots, have %d", ErrInsufficientSpace, qty, free)
	}
	if inv.holdings[drug] == nil {
		inv.holdings[drug] = make(map[economy.Quality]int)
	}
	inv.holdings[drug][q] += qty
	return nil
}

// RemoveDrug takes qty units out if they are held.
func (inv *Inventory) RemoveDrug(drug string, q economy.Quality, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}
	held := inv.Quantity(drug, q)
	if held < qty {
		return fmt.Errorf("%w: need %d %s %s, have %d", ErrInsufficientDrugs, qty, q, drug, held)
	}
	if held == qty {
		delete(inv.holdings[drug], q)
		if len(inv.holdings[drug]) == 0 {
			delete(inv.holdings, drug)
		}
		return nil
	}
	inv.holdings[drug][q] = held - qty
	return nil
}

// Lots returns every holding sorted by drug then quality.
func (inv *Inventory) Lots() []Lot {
	var lots []Lot
	drugs := make([]string, 0, len(inv.holdings))
	for d := range inv.holdings {
		drugs = append(drugs, d)
	}
	sort.Strings(drugs)
	for _, d := range drugs {
		for _, q := range economy.Qualities {
			if n := inv.holdings[d][q]; n > 0 {
				lots = append(lots, Lot{Drug: d, Quality: q, Quantity: n})
			}
		}
	}
	return lots
}

// Crypto returns the wallet balance of coin.
func (inv *Inventory) Crypto(coin string) float64 {
	return inv.wallets[coin]
}

// AddCrypto credits amount of coin.
func (inv *Inventory) AddCrypto(coin string, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidQuantity, amount)
	}
	inv.wallets[coin] = roundCoin(inv.wallets[coin] + amount)
	return nil
}

// RemoveCrypto debits amount of coin.
func (inv *Inventory) RemoveCrypto(coin string, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidQuantity, amount)
	}
	if have := inv.wallets[coin]; have < amount {
		return fmt.Errorf("%w: need %.4f %s, have %.4f", ErrInsufficientCrypto, amount, coin, have)
	}
	inv.wallets[coin] = roundCoin(inv.wallets[coin] - amount)
	if inv.wallets[coin] == 0 {
		delete(inv.wallets, coin)
	}
	return nil
}

// Wallets returns a copy of all non-zero coin balances.
func (inv *Inventory) Wallets() map[string]float64 {
	out := make(map[string]float64, len(inv.wallets))
	for k, v := range inv.wallets {
		out[k] = v
	}
	return out
}

// HasSkill reports whether the skill is unlocked.
func (inv *Inventory) HasSkill(id string) bool {
	return inv.Skills[id]
}

// SkillList returns the unlocked skills in sorted order.
func (inv *Inventory) SkillList() []string {
	out := make([]string, 0, len(inv.Skills))
	for id, ok := range inv.Skills {
		if ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundCoin(v float64) float64 {
	return math.Round(v*1e8) / 1e8
}

type inventoryJSON struct {
	Cash           float64                            `json:"cash"`
	Holdings       map[string]map[economy.Quality]int `json:"holdings"`
	Wallets        map[string]float64                 `json:"wallets"`
	Capacity       int                                `json:"capacity"`
	CapacityLevel  int                                `json:"capacity_level"`
	SecurePhone    bool                               `json:"secure_phone"`
	SkillPoints    int                                `json:"skill_points"`
	Skills         map[string]bool                    `json:"skills"`
	DebtPaid       []bool                             `json:"debt_paid"`
	InformantTrust int                                `json:"informant_trust"`
	Staked         float64                            `json:"staked"`
	StakingRewards float64                            `json:"staking_rewards"`
	Laundering     *Laundering                        `json:"laundering,omitempty"`
}

func (inv *Inventory) MarshalJSON() ([]byte, error) {
	return json.Marshal(inventoryJSON{
		Cash:           inv.cash,
		Holdings:       inv.holdings,
		Wallets:        inv.wallets,
		Capacity:       inv.capacity,
		CapacityLevel:  inv.CapacityLevel,
		SecurePhone:    inv.SecurePhone,
		SkillPoints:    inv.SkillPoints,
		Skills:         inv.Skills,
		DebtPaid:       inv.DebtPaid,
		InformantTrust: inv.InformantTrust,
		Staked:         inv.Staked,
		StakingRewards: inv.StakingRewards,
		Laundering:     inv.Laundering,
	})
}

func (inv *Inventory) UnmarshalJSON(b []byte) error {
	var v inventoryJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*inv = Inventory{
		cash:           v.Cash,
		holdings:       v.Holdings,
		wallets:        v.Wallets,
		capacity:       v.Capacity,
		CapacityLevel:  v.CapacityLevel,
		SecurePhone:    v.SecurePhone,
		SkillPoints:    v.SkillPoints,
		Skills:         v.Skills,
		DebtPaid:       v.DebtPaid,
		InformantTrust: v.InformantTrust,
		Staked:         v.Staked,
		StakingRewards: v.StakingRewards,
		Laundering:     v.Laundering,
	}
	if inv.holdings == nil {
		inv.holdings = make(map[string]map[economy.Quality]int)
	}
	if inv.wallets == nil {
		inv.wallets = make(map[string]float64)
	}
	if inv.Skills == nil {
		inv.Skills = make(map[string]bool)
	}
	return nil
}
