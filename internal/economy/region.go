// Package economy provides the regional drug markets: per-quality price and
// stock ledgers, time-boxed market events and the trading impact model.
package economy

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/talgya/narcosim/internal/config"
)

// Rand is the randomness a Region needs to restock.
type Rand interface {
	IntBetween(lo, hi int) int
}

// Region is one city district's market. Heat and the active event list are
// only reachable through methods so every change goes through the rules here.
type Region struct {
	Name       string
	Drugs      map[string]*DrugMarket
	SeasonBuy  float64 // seasonal buy multiplier, 1 outside a season
	SeasonSell float64

	heat   int
	events []*MarketEvent
	cfg    *config.MarketConfig
}

// NewRegion creates a region from its static definition. Stock is empty
// until the first Restock.
func NewRegion(def config.RegionDef, cfg *config.MarketConfig) *Region {
	r := &Region{
		Name:       def.Name,
		Drugs:      make(map[string]*DrugMarket, len(def.Drugs)),
		SeasonBuy:  1,
		SeasonSell: 1,
		cfg:        cfg,
	}
	for _, d := range def.Drugs {
		qualities := []Quality{QualityStandard}
		if d.Tier > 1 {
			qualities = Qualities
		}
		dm := &DrugMarket{
			Name:             d.Name,
			Tier:             d.Tier,
			BaseBuy:          d.BaseBuy,
			BaseSell:         d.BaseSell,
			Qualities:        make(map[Quality]*QualityMarket, len(qualities)),
			PlayerBuyImpact:  1,
			PlayerSellImpact: 1,
			RivalDemand:      1,
			RivalSupply:      1,
		}
		for _, q := range qualities {
			dm.Qualities[q] = &QualityMarket{}
		}
		r.Drugs[d.Name] = dm
	}
	return r
}

// Attach binds the market rules after the region was decoded from JSON.
func (r *Region) Attach(cfg *config.MarketConfig) {
	r.cfg = cfg
}

// Heat returns the region's current heat.
func (r *Region) Heat() int { return r.heat }

// ModifyHeat adds delta and clamps the result at zero. It returns the new heat.
func (r *Region) ModifyHeat(delta int) int {
	r.heat += delta
	if r.heat < 0 {
		r.heat = 0
	}
	return r.heat
}

// DrugNames returns the traded drugs in sorted order.
func (r *Region) DrugNames() []string {
	names := make([]string, 0, len(r.Drugs))
	for name := range r.Drugs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Drug returns the ledger for a drug.
func (r *Region) Drug(name string) (*DrugMarket, bool) {
	d, ok := r.Drugs[name]
	return d, ok
}

// HeatPriceMultiplier is the buy-price step for the current heat.
func (r *Region) HeatPriceMultiplier() float64 {
	return stepMultiplier(r.cfg.HeatPriceSteps, r.heat)
}

// HeatStockMultiplier is the stock step for a drug tier at the current heat.
func (r *Region) HeatStockMultiplier(tier int) float64 {
	if tier < r.cfg.HeatStockTiers.Min || tier > r.cfg.HeatStockTiers.Max {
		return 1
	}
	return stepMultiplier(r.cfg.HeatStockSteps, r.heat)
}

func stepMultiplier(steps []config.HeatStep, heat int) float64 {
	mult := 1.0
	for _, s := range steps {
		if heat < s.Threshold {
			break
		}
		mult = s.Multiplier
	}
	return mult
}

func qualityMult(t config.QualityTable, q Quality) float64 {
	switch q {
	case QualityCut:
		return t.Cut
	case QualityPure:
		return t.Pure
	}
	return t.Standard
}

// Disrupted reports whether a supply disruption covers drug at quality q.
func (r *Region) Disrupted(drug string, q Quality) bool {
	for _, e := range r.events {
		if e.Type == EventSupplyDisruption && e.Targets(drug, q) {
			return true
		}
	}
	return false
}

func (r *Region) listed(drug string, q Quality) (*DrugMarket, *QualityMarket, bool) {
	d, ok := r.Drugs[drug]
	if !ok {
		return nil, nil, false
	}
	qm, ok := d.Qualities[q]
	if !ok {
		return nil, nil, false
	}
	return d, qm, true
}

// BuyPrice is the unit price the player pays. It is 0 when the quality is
// not listed or its supply is disrupted.
func (r *Region) BuyPrice(drug string, q Quality) float64 {
	return r.buyPrice(drug, q, true)
}

func (r *Region) buyPrice(drug string, q Quality, withBlackMarket bool) float64 {
	d, _, ok := r.listed(drug, q)
	if !ok || r.Disrupted(drug, q) {
		return 0
	}
	price := d.BaseBuy * qualityMult(r.cfg.BuyQuality, q) * r.HeatPriceMultiplier() *
		d.PlayerBuyImpact * d.RivalDemand * r.SeasonBuy
	return round2(r.applyEvents(price, drug, q, withBlackMarket, true))
}

// SellPrice is the unit price the player receives. It is 0 when the quality
// is not listed or its supply is disrupted.
func (r *Region) SellPrice(drug string, q Quality) float64 {
	d, _, ok := r.listed(drug, q)
	if !ok || r.Disrupted(drug, q) {
		return 0
	}
	price := d.BaseSell * qualityMult(r.cfg.SellQuality, q) *
		d.PlayerSellImpact * d.RivalSupply * r.SeasonSell
	return round2(r.applyEvents(price, drug, q, false, false))
}

func (r *Region) applyEvents(price float64, drug string, q Quality, withBlackMarket, buy bool) float64 {
	floor := 0.0
	for _, e := range r.events {
		if !e.Targets(drug, q) {
			continue
		}
		if e.Type == EventBlackMarket && (!withBlackMarket || e.BlackMarketLot <= 0) {
			continue
		}
		if buy {
			price *= e.BuyMultiplier
		} else {
			price *= e.SellMultiplier
		}
		if e.Crash != nil && e.Crash.MinPrice > floor {
			floor = e.Crash.MinPrice
		}
	}
	return math.Max(price, floor)
}

// BuyCost prices qty units. Units covered by a black market lot are charged
// the discounted price and the rest the regular price.
func (r *Region) BuyCost(drug string, q Quality, qty int) float64 {
	lot := 0
	if bm := r.blackMarket(drug, q); bm != nil {
		lot = min(bm.BlackMarketLot, qty)
	}
	return round2(float64(lot)*r.buyPrice(drug, q, true) + float64(qty-lot)*r.buyPrice(drug, q, false))
}

func (r *Region) blackMarket(drug string, q Quality) *MarketEvent {
	for _, e := range r.events {
		if e.Type == EventBlackMarket && e.Targets(drug, q) && e.BlackMarketLot > 0 {
			return e
		}
	}
	return nil
}

// AvailableStock is what the player can buy right now.
func (r *Region) AvailableStock(drug string, q Quality) int {
	d, qm, ok := r.listed(drug, q)
	if !ok || r.Disrupted(drug, q) {
		return 0
	}
	stock := int(float64(qm.Stock) * r.HeatStockMultiplier(d.Tier))
	for _, e := range r.events {
		if !e.Targets(drug, q) {
			continue
		}
		switch e.Type {
		case EventCheapStash:
			stock += e.StockBonus
		case EventBlackMarket:
			stock += e.BlackMarketLot
		}
	}
	return max(0, stock-qm.Purchased)
}

// UpdateStockOnBuy records a purchase of qty units. The caller must have
// checked AvailableStock; overselling is a bug and panics.
func (r *Region) UpdateStockOnBuy(drug string, q Quality, qty int) {
	if qty < 0 {
		panic(fmt.Sprintf("economy: negative purchase %d of %s %s", qty, q, drug))
	}
	if avail := r.AvailableStock(drug, q); qty > avail {
		panic(fmt.Sprintf("economy: purchase of %d %s %s exceeds available %d", qty, q, drug, avail))
	}
	_, qm, _ := r.listed(drug, q)
	if bm := r.blackMarket(drug, q); bm != nil {
		take := min(bm.BlackMarketLot, qty)
		bm.BlackMarketLot -= take
		qty -= take
	}
	qm.Purchased += qty
}

// CheckBuy validates a purchase and returns its total cost.
func (r *Region) CheckBuy(drug string, q Quality, qty int) (float64, error) {
	if err := r.checkListed(drug, q); err != nil {
		return 0, err
	}
	if r.BuyPrice(drug, q) == 0 {
		return 0, fmt.Errorf("%w: %s %s in %s", ErrNotTradeable, q, drug, r.Name)
	}
	if avail := r.AvailableStock(drug, q); avail < qty {
		return 0, fmt.Errorf("%w: need %d, have %d", ErrInsufficientStock, qty, avail)
	}
	return r.BuyCost(drug, q, qty), nil
}

// CheckSell validates that drug at quality q can be sold here and returns
// the unit price.
func (r *Region) CheckSell(drug string, q Quality) (float64, error) {
	if err := r.checkListed(drug, q); err != nil {
		return 0, err
	}
	price := r.SellPrice(drug, q)
	if price == 0 {
		return 0, fmt.Errorf("%w: %s %s in %s", ErrNotTradeable, q, drug, r.Name)
	}
	return price, nil
}

func (r *Region) checkListed(drug string, q Quality) error {
	d, ok := r.Drugs[drug]
	if !ok {
		return fmt.Errorf("%w: %s in %s", ErrUnknownDrug, drug, r.Name)
	}
	if !d.HasQuality(q) {
		return fmt.Errorf("%w: %s %s in %s", ErrUnknownQuality, q, drug, r.Name)
	}
	return nil
}

// Restock snapshots the day's prices as previous prices, clears the
// purchase counters and draws new stock levels.
func (r *Region) Restock(rng Rand) {
	for _, name := range r.DrugNames() {
		d := r.Drugs[name]
		for _, q := range d.ListedQualities() {
			qm := d.Qualities[q]
			qm.PreviousBuyPrice = r.BuyPrice(name, q)
			qm.PreviousSellPrice = r.SellPrice(name, q)
			qm.Purchased = 0
			qm.Stock = r.stockTarget(rng, d.Tier, q)
		}
	}
}

func (r *Region) stockTarget(rng Rand, tier int, q Quality) int {
	if tier <= 1 {
		return r.cfg.Tier1Stock
	}
	var span config.IntRange
	switch q {
	case QualityPure:
		span = r.cfg.StockPure
	case QualityCut:
		span = r.cfg.StockCut
	default:
		span = r.cfg.StockStandard
	}
	return rng.IntBetween(span.Min, span.Max)
}

// Targets lists tradeable (drug, quality) pairs, optionally limited to tiers
// and to pairs with stock on hand. The order is stable.
func (r *Region) Targets(tiers []int, withStock bool) []Target {
	var out []Target
	for _, name := range r.DrugNames() {
		d := r.Drugs[name]
		if len(tiers) > 0 && !slices.Contains(tiers, d.Tier) {
			continue
		}
		for _, q := range d.ListedQualities() {
			if r.Disrupted(name, q) {
				continue
			}
			if withStock && r.AvailableStock(name, q) <= 0 {
				continue
			}
			out = append(out, Target{Drug: name, Quality: q})
		}
	}
	return out
}

// Quote is a read-only price line for display.
type Quote struct {
	Drug      string  `json:"drug"`
	Tier      int     `json:"tier"`
	Quality   Quality `json:"quality"`
	Buy       float64 `json:"buy"`
	Sell      float64 `json:"sell"`
	Stock     int     `json:"stock"`
	PrevBuy   float64 `json:"previous_buy"`
	PrevSell  float64 `json:"previous_sell"`
	Disrupted bool    `json:"disrupted,omitempty"`
}

// Quotes returns every listed line, sorted by drug then quality.
func (r *Region) Quotes() []Quote {
	var out []Quote
	for _, name := range r.DrugNames() {
		d := r.Drugs[name]
		for _, q := range d.ListedQualities() {
			qm := d.Qualities[q]
			out = append(out, Quote{
				Drug:      name,
				Tier:      d.Tier,
				Quality:   q,
				Buy:       r.BuyPrice(name, q),
				Sell:      r.SellPrice(name, q),
				Stock:     r.AvailableStock(name, q),
				PrevBuy:   qm.PreviousBuyPrice,
				PrevSell:  qm.PreviousSellPrice,
				Disrupted: r.Disrupted(name, q),
			})
		}
	}
	return out
}

// SetSeason sets the seasonal price multipliers.
func (r *Region) SetSeason(buy, sell float64) {
	r.SeasonBuy = buy
	r.SeasonSell = sell
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type regionJSON struct {
	Name       string                 `json:"name"`
	Heat       int                    `json:"heat"`
	Drugs      map[string]*DrugMarket `json:"drugs"`
	Events     []*MarketEvent         `json:"events"`
	SeasonBuy  float64                `json:"season_buy"`
	SeasonSell float64                `json:"season_sell"`
}

func (r *Region) MarshalJSON() ([]byte, error) {
	return json.Marshal(regionJSON{
		Name:       r.Name,
		Heat:       r.heat,
		Drugs:      r.Drugs,
		Events:     r.events,
		SeasonBuy:  r.SeasonBuy,
		SeasonSell: r.SeasonSell,
	})
}

// UnmarshalJSON restores a region. Call Attach before using it.
func (r *Region) UnmarshalJSON(b []byte) error {
	var v regionJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	r.Name = v.Name
	r.heat = v.Heat
	r.Drugs = v.Drugs
	r.events = v.Events
	r.SeasonBuy = v.SeasonBuy
	r.SeasonSell = v.SeasonSell
	if r.SeasonBuy == 0 {
		r.SeasonBuy = 1
	}
	if r.SeasonSell == 0 {
		r.SeasonSell = 1
	}
	return nil
}
