// Package config holds the balance table for the simulation.
// Every threshold, chance and cost the engine uses is a named field here.
package config

// Range is an inclusive float interval sampled uniformly.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// IntRange is an inclusive integer interval sampled uniformly.
type IntRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// HeatStep maps a heat threshold to a multiplier. Tables are sorted by threshold.
type HeatStep struct {
	Threshold  int     `yaml:"threshold"`
	Multiplier float64 `yaml:"multiplier"`
}

// QualityTable holds one scalar per drug quality.
type QualityTable struct {
	Cut      float64 `yaml:"cut"`
	Standard float64 `yaml:"standard"`
	Pure     float64 `yaml:"pure"`
}

// Config is the full game configuration. The engine copies it at
// construction and never writes to it.
type Config struct {
	Player        PlayerConfig       `yaml:"player"`
	Debts         []DebtPayment      `yaml:"debts"`
	Market        MarketConfig       `yaml:"market"`
	Rivals        RivalConfig        `yaml:"rivals"`
	Events        EventConfig        `yaml:"events"`
	Blocking      BlockingConfig     `yaml:"blocking"`
	Police        PoliceConfig       `yaml:"police"`
	Crypto        CryptoConfig       `yaml:"crypto"`
	Skills        SkillConfig        `yaml:"skills"`
	Upgrades      UpgradeConfig      `yaml:"upgrades"`
	Informant     InformantConfig    `yaml:"informant"`
	Seasons       []SeasonalEventDef `yaml:"seasons"`
	Opportunities OpportunityConfig  `yaml:"opportunities"`
	Regions       []RegionDef        `yaml:"regions"`
}

// PlayerConfig describes the starting position.
type PlayerConfig struct {
	StartingCash        float64 `yaml:"starting_cash"`
	Capacity            int     `yaml:"capacity"`
	StartRegion         string  `yaml:"start_region"`
	TravelCost          float64 `yaml:"travel_cost"`
	BankruptcyThreshold float64 `yaml:"bankruptcy_threshold"`
	StartingTrust       int     `yaml:"starting_trust"`
}

// DebtPayment is a fixed installment due on a calendar day.
type DebtPayment struct {
	Day    int     `yaml:"day"`
	Amount float64 `yaml:"amount"`
}

// MarketConfig covers pricing, stock and player impact.
type MarketConfig struct {
	BuyQuality  QualityTable `yaml:"buy_quality"`
	SellQuality QualityTable `yaml:"sell_quality"`

	HeatPriceSteps []HeatStep `yaml:"heat_price_steps"`
	HeatStockSteps []HeatStep `yaml:"heat_stock_steps"`
	HeatStockTiers IntRange   `yaml:"heat_stock_tiers"` // tiers whose stock shrinks with heat

	Tier1Stock    int      `yaml:"tier1_stock"`
	StockPure     IntRange `yaml:"stock_pure"`
	StockStandard IntRange `yaml:"stock_standard"`
	StockCut      IntRange `yaml:"stock_cut"`

	ImpactPerTenUnits float64 `yaml:"impact_per_ten_units"`
	MaxBuyImpact      float64 `yaml:"max_buy_impact"`
	MinSellImpact     float64 `yaml:"min_sell_impact"`
	ImpactDecay       float64 `yaml:"impact_decay"`

	HeatDecayPerDay int         `yaml:"heat_decay_per_day"`
	HeatPerUnitSold map[int]int `yaml:"heat_per_unit_sold"` // by tier
}

// RivalDef is the static definition of an AI rival.
type RivalDef struct {
	Name       string  `yaml:"name"`
	Drug       string  `yaml:"drug"`
	Region     string  `yaml:"region"`
	Aggression float64 `yaml:"aggression"`
	Activity   float64 `yaml:"activity"`
}

// RivalConfig holds rival definitions and their market pressure rules.
type RivalConfig struct {
	Definitions         []RivalDef `yaml:"definitions"`
	ActivityFactor      float64    `yaml:"activity_factor"`
	BaseMagnitude       float64    `yaml:"base_magnitude"`
	AggressionMagnitude float64    `yaml:"aggression_magnitude"`
	DemandCap           float64    `yaml:"demand_cap"`
	SupplyFloor         float64    `yaml:"supply_floor"`
	IdleDays            int        `yaml:"idle_days"`
	DecayPerDay         float64    `yaml:"decay_per_day"`
}

// EventWeights are the relative weights of the daily market event draw.
type EventWeights struct {
	DemandSpike      int `yaml:"demand_spike"`
	SupplyDisruption int `yaml:"supply_disruption"`
	PoliceCrackdown  int `yaml:"police_crackdown"`
	CheapStash       int `yaml:"cheap_stash"`
	TheSetup         int `yaml:"the_setup"`
	RivalBusted      int `yaml:"rival_busted"`
	MarketCrash      int `yaml:"market_crash"`
}

// Total returns the sum of all weights.
func (w EventWeights) Total() int {
	return w.DemandSpike + w.SupplyDisruption + w.PoliceCrackdown +
		w.CheapStash + w.TheSetup + w.RivalBusted + w.MarketCrash
}

type DemandSpikeConfig struct {
	Tiers    []int    `yaml:"tiers"`
	SellMult Range    `yaml:"sell_mult"`
	BuyMult  Range    `yaml:"buy_mult"`
	Days     IntRange `yaml:"days"`
}

type SupplyDisruptionConfig struct {
	Days IntRange `yaml:"days"`
}

type CrackdownConfig struct {
	Days IntRange `yaml:"days"`
	Heat IntRange `yaml:"heat"`
}

type CheapStashConfig struct {
	Tiers      []int    `yaml:"tiers"`
	BuyMult    Range    `yaml:"buy_mult"`
	Days       IntRange `yaml:"days"`
	StockBonus IntRange `yaml:"stock_bonus"`
}

// SetupConfig drives THE_SETUP deals and their sting resolution.
type SetupConfig struct {
	Tiers             []int    `yaml:"tiers"`
	Quantity          IntRange `yaml:"quantity"`
	BuyDiscount       Range    `yaml:"buy_discount"`
	SellPremium       Range    `yaml:"sell_premium"`
	Days              int      `yaml:"days"`
	MinCashFactor     float64  `yaml:"min_cash_factor"`
	MinQuantityFactor float64  `yaml:"min_quantity_factor"`
	// StrictSellCheck applies MinQuantityFactor to the deal quality. When
	// false a sell deal is offered to anyone holding the drug in any quality.
	StrictSellCheck bool     `yaml:"strict_sell_check"`
	MinUnitPrice    float64  `yaml:"min_unit_price"`
	BuyDealChance   float64  `yaml:"buy_deal_chance"` // the contact sells rather than buys
	StingBase       float64  `yaml:"sting_base"`
	StingPerHeat    float64  `yaml:"sting_per_heat"`
	StingMin        float64  `yaml:"sting_min"`
	StingMax        float64  `yaml:"sting_max"`
	Heat            IntRange `yaml:"heat"`
}

type RivalBustedConfig struct {
	Days IntRange `yaml:"days"`
}

type CrashConfig struct {
	Days      int     `yaml:"days"`
	Reduction float64 `yaml:"reduction"`
	MinPrice  float64 `yaml:"min_price"`
}

type BlackMarketConfig struct {
	Chance   float64  `yaml:"chance"`
	Quantity IntRange `yaml:"quantity"`
	Discount float64  `yaml:"discount"`
	Days     int      `yaml:"days"`
}

// EventConfig covers the market event manager.
type EventConfig struct {
	TriggerChance    float64                `yaml:"trigger_chance"`
	Weights          EventWeights           `yaml:"weights"`
	DemandSpike      DemandSpikeConfig      `yaml:"demand_spike"`
	SupplyDisruption SupplyDisruptionConfig `yaml:"supply_disruption"`
	PoliceCrackdown  CrackdownConfig        `yaml:"police_crackdown"`
	CheapStash       CheapStashConfig       `yaml:"cheap_stash"`
	TheSetup         SetupConfig            `yaml:"the_setup"`
	RivalBusted      RivalBustedConfig      `yaml:"rival_busted"`
	MarketCrash      CrashConfig            `yaml:"market_crash"`
	BlackMarket      BlackMarketConfig      `yaml:"black_market"`
}

type MuggingConfig struct {
	Chance float64 `yaml:"chance"`
	Loss   Range   `yaml:"loss"`
}

type BetrayalConfig struct {
	Chance          float64 `yaml:"chance"`
	TrustThreshold  int     `yaml:"trust_threshold"`
	UnavailableDays int     `yaml:"unavailable_days"`
	TrustLoss       int     `yaml:"trust_loss"`
	Heat            int     `yaml:"heat"`
}

type FireSaleConfig struct {
	Chance           float64 `yaml:"chance"`
	QuantityFraction float64 `yaml:"quantity_fraction"`
	Penalty          float64 `yaml:"penalty"`
	MinCashGain      float64 `yaml:"min_cash_gain"`
	MinUnitPrice     float64 `yaml:"min_unit_price"`
	Heat             int     `yaml:"heat"`
}

// BlockingConfig covers the once-per-day player-blocking events.
type BlockingConfig struct {
	Mugging  MuggingConfig  `yaml:"mugging"`
	Betrayal BetrayalConfig `yaml:"betrayal"`
	FireSale FireSaleConfig `yaml:"fire_sale"`
}

// PoliceConfig drives the police-stop flow.
type PoliceConfig struct {
	StopThreshold  int     `yaml:"stop_threshold"`
	BaseChance     float64 `yaml:"base_chance"`
	ChancePerPoint float64 `yaml:"chance_per_point"`
	MinChance      float64 `yaml:"min_chance"`
	MaxChance      float64 `yaml:"max_chance"`

	BribeMinCost         float64 `yaml:"bribe_min_cost"`
	BribeCashFraction    float64 `yaml:"bribe_cash_fraction"`
	BribeBaseSuccess     float64 `yaml:"bribe_base_success"`
	BribePenaltyPerPoint float64 `yaml:"bribe_penalty_per_point"`
	BribeMinSuccess      float64 `yaml:"bribe_min_success"`
	BribeMaxSuccess      float64 `yaml:"bribe_max_success"`

	SearchChance     float64  `yaml:"search_chance"`
	Confiscation     Range    `yaml:"confiscation"`
	ConfiscationHeat IntRange `yaml:"confiscation_heat"`

	JailHeatThreshold int     `yaml:"jail_heat_threshold"`
	JailBaseChance    float64 `yaml:"jail_base_chance"`
	JailHighTierBonus float64 `yaml:"jail_high_tier_bonus"`
	JailMaxChance     float64 `yaml:"jail_max_chance"`
	HighTierMin       int     `yaml:"high_tier_min"`
	JailBaseDays      int     `yaml:"jail_base_days"`
	JailDaysPerHeat   float64 `yaml:"jail_days_per_heat"`
	JailHeat          int     `yaml:"jail_heat"`
}

// CoinDef describes one tradeable coin.
type CoinDef struct {
	Symbol     string  `yaml:"symbol"`
	Initial    float64 `yaml:"initial"`
	Volatility float64 `yaml:"volatility"`
	Minimum    float64 `yaml:"minimum"`
}

// CryptoConfig covers coins, staking and laundering.
type CryptoConfig struct {
	Coins             []CoinDef `yaml:"coins"`
	TrendWeight       float64   `yaml:"trend_weight"`
	TradeHeat         int       `yaml:"trade_heat"`
	StakingCoin       string    `yaml:"staking_coin"`
	StakingDailyYield float64   `yaml:"staking_daily_yield"`
	StableCoin        string    `yaml:"stable_coin"`

	LaunderFee           float64 `yaml:"launder_fee"`
	LaunderDelayDays     int     `yaml:"launder_delay_days"`
	LaunderHeatPerDollar float64 `yaml:"launder_heat_per_dollar"`
}

// SkillDef is one unlockable skill.
type SkillDef struct {
	ID          string `yaml:"id"`
	Cost        int    `yaml:"cost"`
	Description string `yaml:"description"`
}

type SkillConfig struct {
	PointInterval                 int        `yaml:"point_interval"`
	Definitions                   []SkillDef `yaml:"definitions"`
	DigitalFootprintReduction     float64    `yaml:"digital_footprint_reduction"`
	CompartmentalizationReduction float64    `yaml:"compartmentalization_reduction"`
	GhostProtocolDecayBonus       int        `yaml:"ghost_protocol_decay_bonus"`
}

type CapacityLevel struct {
	Capacity int     `yaml:"capacity"`
	Cost     float64 `yaml:"cost"`
}

type UpgradeConfig struct {
	CapacityLevels       []CapacityLevel `yaml:"capacity_levels"`
	SecurePhoneCost      float64         `yaml:"secure_phone_cost"`
	SecurePhoneReduction float64         `yaml:"secure_phone_reduction"`
}

// InformantConfig covers tips and the corrupt official.
type InformantConfig struct {
	RumorCost     float64 `yaml:"rumor_cost"`
	DrugInfoCost  float64 `yaml:"drug_info_cost"`
	RivalInfoCost float64 `yaml:"rival_info_cost"`
	TrustPerTip   int     `yaml:"trust_per_tip"`
	MaxTrust      int     `yaml:"max_trust"`

	OfficialBaseCost      float64 `yaml:"official_base_cost"`
	OfficialCostPerHeat   float64 `yaml:"official_cost_per_heat"`
	OfficialHeatReduction int     `yaml:"official_heat_reduction"`
}

// SeasonalEventDef is a calendar-bound event applied to every region.
type SeasonalEventDef struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	StartDay     int     `yaml:"start_day"`
	EndDay       int     `yaml:"end_day"`
	BuyMult      float64 `yaml:"buy_mult"`
	SellMult     float64 `yaml:"sell_mult"`
	DailyHeat    int     `yaml:"daily_heat"`
	StartMessage string  `yaml:"start_message"`
	EndMessage   string  `yaml:"end_message"`
}

// OpportunityWeights are the relative weights of the opportunity draw.
type OpportunityWeights struct {
	StashLeak         int `yaml:"stash_leak"`
	UrgentDelivery    int `yaml:"urgent_delivery"`
	ExperimentalBatch int `yaml:"experimental_batch"`
}

// Total returns the sum of all weights.
func (w OpportunityWeights) Total() int {
	return w.StashLeak + w.UrgentDelivery + w.ExperimentalBatch
}

// OpportunityConfig covers the optional daily opportunity offers.
type OpportunityConfig struct {
	Chance  float64            `yaml:"chance"`
	Weights OpportunityWeights `yaml:"weights"`

	StashQuantity IntRange `yaml:"stash_quantity"`
	StashSuccess  float64  `yaml:"stash_success"`
	StashHeat     IntRange `yaml:"stash_heat"`

	DeliveryMinHeld int   `yaml:"delivery_min_held"`
	DeliveryMax     int   `yaml:"delivery_max"`
	DeliveryPremium Range `yaml:"delivery_premium"`

	BatchQuantity    IntRange `yaml:"batch_quantity"`
	BatchPriceFactor float64  `yaml:"batch_price_factor"`
	BatchSuccess     float64  `yaml:"batch_success"`
	BatchHeat        IntRange `yaml:"batch_heat"`
}

// DrugDef is one drug listing in a region.
type DrugDef struct {
	Name     string  `yaml:"name"`
	Tier     int     `yaml:"tier"`
	BaseBuy  float64 `yaml:"base_buy"`
	BaseSell float64 `yaml:"base_sell"`
}

// RegionDef is the static definition of a region market.
type RegionDef struct {
	Name  string    `yaml:"name"`
	Drugs []DrugDef `yaml:"drugs"`
}

// Region returns the definition with the given name.
func (c *Config) Region(name string) (RegionDef, bool) {
	for _, r := range c.Regions {
		if r.Name == name {
			return r, true
		}
	}
	return RegionDef{}, false
}

// Coin returns the coin definition with the given symbol.
func (c *Config) Coin(symbol string) (CoinDef, bool) {
	for _, coin := range c.Crypto.Coins {
		if coin.Symbol == symbol {
			return coin, true
		}
	}
	return CoinDef{}, false
}

// Skill returns the skill definition with the given ID.
func (c *Config) Skill(id string) (SkillDef, bool) {
	for _, s := range c.Skills.Definitions {
		if s.ID == id {
			return s, true
		}
	}
	return SkillDef{}, false
}

// DrugTier returns the highest tier any region lists the drug at, or 0.
func (c *Config) DrugTier(drug string) int {
	tier := 0
	for _, r := range c.Regions {
		for _, d := range r.Drugs {
			if d.Name == drug && d.Tier > tier {
				tier = d.Tier
			}
		}
	}
	return tier
}
