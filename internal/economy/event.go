package economy

import "fmt"

// EventType discriminates market events and the day's blocking events.
type EventType string

const (
	EventDemandSpike      EventType = "DEMAND_SPIKE"
	EventSupplyDisruption EventType = "SUPPLY_CHAIN_DISRUPTION"
	EventPoliceCrackdown  EventType = "POLICE_CRACKDOWN"
	EventCheapStash       EventType = "CHEAP_STASH"
	EventTheSetup         EventType = "THE_SETUP"
	EventRivalBusted      EventType = "RIVAL_BUSTED"
	EventMarketCrash      EventType = "DRUG_MARKET_CRASH"
	EventBlackMarket      EventType = "BLACK_MARKET_OPPORTUNITY"

	// Blocking events surface to the player but never sit on a region.
	EventMugging           EventType = "MUGGING"
	EventInformantBetrayal EventType = "INFORMANT_BETRAYAL"
	EventForcedFireSale    EventType = "FORCED_FIRE_SALE"
	EventRivalStashLeaked  EventType = "RIVAL_STASH_LEAKED"
	EventUrgentDelivery    EventType = "URGENT_DELIVERY"
	EventExperimentalBatch EventType = "EXPERIMENTAL_DRUG_BATCH"
)

// Global event types are unique per region regardless of target.
func (t EventType) Global() bool {
	switch t {
	case EventPoliceCrackdown, EventTheSetup, EventRivalBusted:
		return true
	}
	return false
}

// Target is the (drug, quality) pair an event applies to.
type Target struct {
	Drug    string  `json:"drug"`
	Quality Quality `json:"quality"`
}

func (t Target) String() string {
	return t.Quality.String() + " " + t.Drug
}

// SetupDeal holds the terms of THE_SETUP.
type SetupDeal struct {
	Drug         string  `json:"drug"`
	Quality      Quality `json:"quality"`
	Quantity     int     `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
	IsBuy        bool    `json:"is_buy"` // player buys from the contact
}

// Total is the full cash value of the deal.
func (d SetupDeal) Total() float64 {
	return float64(d.Quantity) * d.PricePerUnit
}

// CrashTerms scale both prices of the target down by Reduction.
type CrashTerms struct {
	Reduction float64 `json:"reduction"`
	MinPrice  float64 `json:"min_price"`
}

// MarketEvent is one active, time-boxed perturbation owned by a Region.
// Exactly one of the variant pointers is set for the types that need one.
type MarketEvent struct {
	Type           EventType `json:"type"`
	Target         *Target   `json:"target,omitempty"` // nil for regional events
	BuyMultiplier  float64   `json:"buy_multiplier"`
	SellMultiplier float64   `json:"sell_multiplier"`
	DaysRemaining  int       `json:"days_remaining"`
	StartDay       int       `json:"start_day"`
	HeatIncrease   int       `json:"heat_increase,omitempty"`
	StockBonus     int       `json:"stock_bonus,omitempty"`

	Deal           *SetupDeal  `json:"deal,omitempty"`
	Rival          string      `json:"rival,omitempty"`
	Crash          *CrashTerms `json:"crash,omitempty"`
	BlackMarketLot int         `json:"black_market_lot,omitempty"`
}

// EventKey identifies an event slot. A region holds at most one event per key.
type EventKey struct {
	Type    EventType
	Drug    string
	Quality Quality
}

// Key returns the uniqueness key. Global types key on type alone.
func (e *MarketEvent) Key() EventKey {
	if e.Type.Global() || e.Target == nil {
		return EventKey{Type: e.Type}
	}
	return EventKey{Type: e.Type, Drug: e.Target.Drug, Quality: e.Target.Quality}
}

// Targets reports whether the event applies to drug at quality q.
func (e *MarketEvent) Targets(drug string, q Quality) bool {
	return e.Target != nil && e.Target.Drug == drug && e.Target.Quality == q
}

func newEvent(t EventType, target *Target, days, day int) *MarketEvent {
	if days < 1 {
		panic(fmt.Sprintf("economy: %s created with %d days", t, days))
	}
	return &MarketEvent{
		Type:           t,
		Target:         target,
		BuyMultiplier:  1,
		SellMultiplier: 1,
		DaysRemaining:  days,
		StartDay:       day,
	}
}

// NewDemandSpike raises prices for the target.
func NewDemandSpike(target Target, buyMult, sellMult float64, days, day int) *MarketEvent {
	e := newEvent(EventDemandSpike, &target, days, day)
	e.BuyMultiplier = buyMult
	e.SellMultiplier = sellMult
	return e
}

// NewSupplyDisruption makes the target untradeable.
func NewSupplyDisruption(target Target, days, day int) *MarketEvent {
	return newEvent(EventSupplyDisruption, &target, days, day)
}

// NewCrackdown is a regional event. Its heat is applied when it is created.
func NewCrackdown(heat, days, day int) *MarketEvent {
	e := newEvent(EventPoliceCrackdown, nil, days, day)
	e.HeatIncrease = heat
	return e
}

// NewCheapStash discounts the target and adds temporary stock.
func NewCheapStash(target Target, buyMult float64, stockBonus, days, day int) *MarketEvent {
	e := newEvent(EventCheapStash, &target, days, day)
	e.BuyMultiplier = buyMult
	e.StockBonus = stockBonus
	return e
}

// NewSetup offers a one-shot deal that may be a sting.
func NewSetup(deal SetupDeal, days, day int) *MarketEvent {
	e := newEvent(EventTheSetup, nil, days, day)
	e.Deal = &deal
	return e
}

// NewRivalBusted posts the regional notice for a busted rival.
func NewRivalBusted(rival string, days, day int) *MarketEvent {
	e := newEvent(EventRivalBusted, nil, days, day)
	e.Rival = rival
	return e
}

// NewMarketCrash cuts both prices of the target.
func NewMarketCrash(target Target, reduction, minPrice float64, days, day int) *MarketEvent {
	e := newEvent(EventMarketCrash, &target, days, day)
	e.BuyMultiplier = 1 - reduction
	e.SellMultiplier = 1 - reduction
	e.Crash = &CrashTerms{Reduction: reduction, MinPrice: minPrice}
	return e
}

// NewBlackMarket offers a discounted lot that bypasses regular stock.
func NewBlackMarket(target Target, quantity int, discount float64, days, day int) *MarketEvent {
	e := newEvent(EventBlackMarket, &target, days, day)
	e.BuyMultiplier = 1 - discount
	e.BlackMarketLot = quantity
	return e
}

// Subject names what the event is about, for messages.
func (e *MarketEvent) Subject() string {
	switch {
	case e.Deal != nil:
		return fmt.Sprintf("%s %s deal", e.Deal.Quality, e.Deal.Drug)
	case e.Target != nil:
		return e.Target.String()
	case e.Rival != "":
		return e.Rival
	}
	return string(e.Type)
}

// EndMessage describes the event ending. It panics on a type that never
// sits on a region.
func (e *MarketEvent) EndMessage(region string) string {
	var msg string
	switch e.Type {
	case EventDemandSpike:
		msg = fmt.Sprintf("The demand spike for %s has cooled off.", e.Subject())
	case EventSupplyDisruption:
		msg = fmt.Sprintf("Supply of %s is flowing again.", e.Subject())
	case EventPoliceCrackdown:
		msg = "The police crackdown has eased."
	case EventCheapStash:
		msg = fmt.Sprintf("The cheap stash of %s is gone.", e.Subject())
	case EventTheSetup:
		msg = fmt.Sprintf("The offer on the %s has vanished.", e.Subject())
	case EventRivalBusted:
		msg = fmt.Sprintf("%s is back on the streets.", e.Subject())
	case EventMarketCrash:
		msg = fmt.Sprintf("The market for %s has recovered from the crash.", e.Subject())
	case EventBlackMarket:
		msg = fmt.Sprintf("The black market lot of %s is gone.", e.Subject())
	default:
		panic(fmt.Sprintf("economy: expiry of unknown event type %q", e.Type))
	}
	return region + ": " + msg
}
