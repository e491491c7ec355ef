// Read-only views of the game for the CLI and the HTTP API.
package engine

import (
	"fmt"
	"math"

	"github.com/talgya/narcosim/internal/config"
	"github.com/talgya/narcosim/internal/economy"
	"github.com/talgya/narcosim/internal/player"
)

// Snapshot is the player's dashboard.
type Snapshot struct {
	Day           int     `json:"day"`
	Region        string  `json:"region"`
	Heat          int     `json:"heat"`
	Season        string  `json:"season,omitempty"`
	Cash          float64 `json:"cash"`
	Capacity      int     `json:"capacity"`
	Load          int     `json:"load"`
	NetWorth      float64 `json:"net_worth"`
	SkillPoints   int     `json:"skill_points"`
	SecurePhone   bool    `json:"secure_phone"`
	Trust         int     `json:"informant_trust"`
	InformantIdle int     `json:"informant_unavailable_until,omitempty"`

	Lots           []player.Lot       `json:"lots"`
	Skills         []string           `json:"skills"`
	Wallets        map[string]float64 `json:"wallets"`
	CryptoPrices   map[string]float64 `json:"crypto_prices"`
	Staked         float64            `json:"staked"`
	StakingRewards float64            `json:"staking_rewards"`
	Laundering     *player.Laundering `json:"laundering,omitempty"`

	NextDebt *DebtView `json:"next_debt,omitempty"`

	PendingStop        *PoliceStop  `json:"pending_stop,omitempty"`
	PendingOpportunity *Opportunity `json:"pending_opportunity,omitempty"`
	GameOver           string       `json:"game_over,omitempty"`
	Won                bool         `json:"won"`
}

// Snapshot returns the current dashboard.
func (g *Game) Snapshot() Snapshot {
	st := g.State
	inv := st.Player
	prices := make(map[string]float64, len(st.CryptoPrices))
	for k, v := range st.CryptoPrices {
		prices[k] = v
	}
	s := Snapshot{
		Day:                st.Day,
		Region:             st.CurrentRegion,
		Heat:               g.CurrentRegion().Heat(),
		Season:             g.SeasonName(),
		Cash:               inv.Cash(),
		Capacity:           inv.Capacity(),
		Load:               inv.Load(),
		NetWorth:           math.Round((inv.Cash()+g.cryptoValue())*100) / 100,
		SkillPoints:        inv.SkillPoints,
		SecurePhone:        inv.SecurePhone,
		Trust:              inv.InformantTrust,
		Lots:               inv.Lots(),
		Skills:             inv.SkillList(),
		Wallets:            inv.Wallets(),
		CryptoPrices:       prices,
		Staked:             inv.Staked,
		StakingRewards:     inv.StakingRewards,
		Laundering:         inv.Laundering,
		PendingStop:        st.PendingStop,
		PendingOpportunity: st.PendingOpportunity,
		GameOver:           st.GameOver,
		Won:                st.Won,
	}
	if st.Day < st.InformantUnavailableUntil {
		s.InformantIdle = st.InformantUnavailableUntil
	}
	if d, ok := g.NextDebt(); ok {
		s.NextDebt = &d
	}
	return s
}

// EventView is an active market event as the player sees it.
type EventView struct {
	Region        string             `json:"region"`
	Type          economy.EventType  `json:"type"`
	Subject       string             `json:"subject"`
	DaysRemaining int                `json:"days_remaining"`
	Deal          *economy.SetupDeal `json:"deal,omitempty"`
}

// RegionView is one region's market board.
type RegionView struct {
	Name    string          `json:"name"`
	Heat    int             `json:"heat"`
	Current bool            `json:"current"`
	Quotes  []economy.Quote `json:"quotes"`
	Events  []EventView     `json:"events"`
	Rivals  []string        `json:"rivals,omitempty"`
}

// RegionView returns the market board for name. Yesterday's prices are
// only shown with MARKET_INTUITION.
func (g *Game) RegionView(name string) (*RegionView, error) {
	r, ok := g.Region(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, name)
	}
	quotes := r.Quotes()
	if !g.State.Player.HasSkill(config.SkillMarketIntuition) {
		for i := range quotes {
			quotes[i].PrevBuy, quotes[i].PrevSell = 0, 0
		}
	}
	v := &RegionView{
		Name:    r.Name,
		Heat:    r.Heat(),
		Current: r.Name == g.State.CurrentRegion,
		Quotes:  quotes,
		Events:  eventViews(r),
	}
	for _, rv := range g.State.Rivals {
		if rv.Region == r.Name {
			v.Rivals = append(v.Rivals, rv.Name)
		}
	}
	return v, nil
}

// Regions returns every region's board in configured order.
func (g *Game) Regions() []*RegionView {
	out := make([]*RegionView, 0, len(g.State.Regions))
	for _, r := range g.State.Regions {
		v, _ := g.RegionView(r.Name)
		out = append(out, v)
	}
	return out
}

func eventViews(r *economy.Region) []EventView {
	events := r.Events()
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		out = append(out, EventView{
			Region:        r.Name,
			Type:          e.Type,
			Subject:       e.Subject(),
			DaysRemaining: e.DaysRemaining,
			Deal:          e.Deal,
		})
	}
	return out
}

// ActiveEvents lists the events running in every region.
func (g *Game) ActiveEvents() []EventView {
	var out []EventView
	for _, r := range g.State.Regions {
		out = append(out, eventViews(r)...)
	}
	return out
}

// Spread is the best buy and sell of one drug quality across the city.
type Spread struct {
	Drug     string          `json:"drug"`
	Quality  economy.Quality `json:"quality"`
	BuyAt    string          `json:"buy_at"`
	BuyPrice float64         `json:"buy_price"`
	SellAt   string          `json:"sell_at"`
	Sell     float64         `json:"sell_price"`
	Margin   float64         `json:"margin"`
}

// CitySpreads compares every drug quality across all regions. It needs
// MARKET_ANALYST.
func (g *Game) CitySpreads() ([]Spread, error) {
	if !g.State.Player.HasSkill(config.SkillMarketAnalyst) {
		return nil, fmt.Errorf("%w: %s", ErrSkillRequired, config.SkillMarketAnalyst)
	}
	index := map[economy.Target]int{}
	var out []Spread
	for _, r := range g.State.Regions {
		for _, t := range r.Targets(nil, false) {
			i, ok := index[t]
			if !ok {
				i = len(out)
				index[t] = i
				out = append(out, Spread{Drug: t.Drug, Quality: t.Quality})
			}
			s := &out[i]
			if p := r.BuyPrice(t.Drug, t.Quality); p > 0 && (s.BuyAt == "" || p < s.BuyPrice) {
				s.BuyAt, s.BuyPrice = r.Name, p
			}
			if p := r.SellPrice(t.Drug, t.Quality); p > s.Sell {
				s.SellAt, s.Sell = r.Name, p
			}
		}
	}
	for i := range out {
		out[i].Margin = math.Round((out[i].Sell-out[i].BuyPrice)*100) / 100
	}
	return out, nil
}
