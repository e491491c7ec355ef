package config

// Default values for the player and calendar.
const (
	DefaultStartingCash        = 5000.0
	DefaultCapacity            = 150
	DefaultStartRegion         = "Downtown"
	DefaultTravelCost          = 50.0
	DefaultBankruptcyThreshold = -1000.0
	DefaultStartingTrust       = 50
	DefaultSkillPointInterval  = 7
	DefaultEventTriggerChance  = 0.20
)

// Drug names used by the default region table.
const (
	DrugWeed   = "Weed"
	DrugPills  = "Pills"
	DrugCoke   = "Coke"
	DrugSpeed  = "Speed"
	DrugHeroin = "Heroin"
)

// Skill identifiers.
const (
	SkillMarketIntuition      = "MARKET_INTUITION"
	SkillDigitalFootprint     = "DIGITAL_FOOTPRINT"
	SkillCompartmentalization = "COMPARTMENTALIZATION"
	SkillGhostProtocol        = "GHOST_PROTOCOL"
	SkillMarketAnalyst        = "MARKET_ANALYST"
)

// Default returns the stock balance table.
func Default() Config {
	return Config{
		Player: PlayerConfig{
			StartingCash:        DefaultStartingCash,
			Capacity:            DefaultCapacity,
			StartRegion:         DefaultStartRegion,
			TravelCost:          DefaultTravelCost,
			BankruptcyThreshold: DefaultBankruptcyThreshold,
			StartingTrust:       DefaultStartingTrust,
		},
		Debts: []DebtPayment{
			{Day: 15, Amount: 25000},
			{Day: 30, Amount: 30000},
			{Day: 45, Amount: 20000},
		},
		Market: MarketConfig{
			BuyQuality:  QualityTable{Cut: 0.7, Standard: 1.0, Pure: 1.5},
			SellQuality: QualityTable{Cut: 0.75, Standard: 1.0, Pure: 1.6},
			HeatPriceSteps: []HeatStep{
				{Threshold: 0, Multiplier: 1.0},
				{Threshold: 21, Multiplier: 1.05},
				{Threshold: 51, Multiplier: 1.10},
				{Threshold: 81, Multiplier: 1.15},
			},
			HeatStockSteps: []HeatStep{
				{Threshold: 0, Multiplier: 1.0},
				{Threshold: 31, Multiplier: 0.75},
				{Threshold: 61, Multiplier: 0.50},
				{Threshold: 91, Multiplier: 0.25},
			},
			HeatStockTiers:    IntRange{Min: 2, Max: 3},
			Tier1Stock:        10000,
			StockPure:         IntRange{Min: 10, Max: 50},
			StockStandard:     IntRange{Min: 20, Max: 100},
			StockCut:          IntRange{Min: 30, Max: 150},
			ImpactPerTenUnits: 0.02,
			MaxBuyImpact:      1.25,
			MinSellImpact:     0.75,
			ImpactDecay:       0.01,
			HeatDecayPerDay:   1,
			HeatPerUnitSold:   map[int]int{1: 1, 2: 2, 3: 4, 4: 8},
		},
		Rivals: RivalConfig{
			Definitions: []RivalDef{
				{Name: "The Chemist", Drug: DrugPills, Region: "Downtown", Aggression: 0.6, Activity: 0.7},
				{Name: "Silas", Drug: DrugCoke, Region: "Downtown", Aggression: 0.8, Activity: 0.5},
				{Name: "Dockmaster Jones", Drug: DrugSpeed, Region: "Docks", Aggression: 0.5, Activity: 0.6},
				{Name: "Mama Rosa", Drug: DrugWeed, Region: "Suburbs", Aggression: 0.4, Activity: 0.8},
				{Name: "Sergei", Drug: DrugHeroin, Region: "Docks", Aggression: 0.7, Activity: 0.6},
			},
			ActivityFactor:      0.7,
			BaseMagnitude:       0.1,
			AggressionMagnitude: 0.2,
			DemandCap:           2.5,
			SupplyFloor:         0.4,
			IdleDays:            3,
			DecayPerDay:         0.05,
		},
		Events: EventConfig{
			TriggerChance: DefaultEventTriggerChance,
			Weights: EventWeights{
				DemandSpike:      3,
				SupplyDisruption: 2,
				PoliceCrackdown:  1,
				CheapStash:       2,
				TheSetup:         1,
				RivalBusted:      1,
				MarketCrash:      0,
			},
			DemandSpike: DemandSpikeConfig{
				Tiers:    []int{2, 3},
				SellMult: Range{Min: 1.2, Max: 1.8},
				BuyMult:  Range{Min: 1.0, Max: 1.3},
				Days:     IntRange{Min: 2, Max: 4},
			},
			SupplyDisruption: SupplyDisruptionConfig{Days: IntRange{Min: 3, Max: 6}},
			PoliceCrackdown: CrackdownConfig{
				Days: IntRange{Min: 2, Max: 4},
				Heat: IntRange{Min: 10, Max: 30},
			},
			CheapStash: CheapStashConfig{
				Tiers:      []int{1, 2},
				BuyMult:    Range{Min: 0.6, Max: 0.8},
				Days:       IntRange{Min: 1, Max: 2},
				StockBonus: IntRange{Min: 50, Max: 150},
			},
			TheSetup: SetupConfig{
				Tiers:             []int{2, 3},
				Quantity:          IntRange{Min: 20, Max: 100},
				BuyDiscount:       Range{Min: 0.2, Max: 0.4},
				SellPremium:       Range{Min: 2.0, Max: 3.5},
				Days:              1,
				MinCashFactor:     0.5,
				MinQuantityFactor: 0.25,
				StrictSellCheck:   false,
				MinUnitPrice:      1.0,
				BuyDealChance:     0.5,
				StingBase:         0.25,
				StingPerHeat:      0.005,
				StingMin:          0.1,
				StingMax:          0.9,
				Heat:              IntRange{Min: 15, Max: 40},
			},
			RivalBusted: RivalBustedConfig{Days: IntRange{Min: 5, Max: 10}},
			MarketCrash: CrashConfig{Days: 2, Reduction: 0.6, MinPrice: 1.0},
			BlackMarket: BlackMarketConfig{
				Chance:   0.04,
				Quantity: IntRange{Min: 20, Max: 50},
				Discount: 0.5,
				Days:     1,
			},
		},
		Blocking: BlockingConfig{
			Mugging: MuggingConfig{Chance: 0.10, Loss: Range{Min: 0.05, Max: 0.15}},
			Betrayal: BetrayalConfig{
				Chance:          0.03,
				TrustThreshold:  20,
				UnavailableDays: 7,
				TrustLoss:       10,
				Heat:            5,
			},
			FireSale: FireSaleConfig{
				Chance:           0.02,
				QuantityFraction: 0.15,
				Penalty:          0.30,
				MinCashGain:      50,
				MinUnitPrice:     0.01,
				Heat:             10,
			},
		},
		Police: PoliceConfig{
			StopThreshold:        50,
			BaseChance:           0.10,
			ChancePerPoint:       0.01,
			MinChance:            0.05,
			MaxChance:            0.75,
			BribeMinCost:         50,
			BribeCashFraction:    0.10,
			BribeBaseSuccess:     0.60,
			BribePenaltyPerPoint: 0.01,
			BribeMinSuccess:      0.1,
			BribeMaxSuccess:      0.9,
			SearchChance:         0.6,
			Confiscation:         Range{Min: 0.10, Max: 0.50},
			ConfiscationHeat:     IntRange{Min: 5, Max: 15},
			JailHeatThreshold:    70,
			JailBaseChance:       0.2,
			JailHighTierBonus:    0.25,
			JailMaxChance:        0.75,
			HighTierMin:          3,
			JailBaseDays:         3,
			JailDaysPerHeat:      0.1,
			JailHeat:             10,
		},
		Crypto: CryptoConfig{
			Coins: []CoinDef{
				{Symbol: "BTC", Initial: 100, Volatility: 0.05, Minimum: 20},
				{Symbol: "ETH", Initial: 50, Volatility: 0.08, Minimum: 10},
				{Symbol: "XMR", Initial: 75, Volatility: 0.10, Minimum: 15},
				{Symbol: "ZEC", Initial: 25, Volatility: 0.15, Minimum: 5},
				{Symbol: "DC", Initial: 10, Volatility: 0.20, Minimum: 1},
				{Symbol: "SC", Initial: 1, Volatility: 0, Minimum: 1},
			},
			TrendWeight:          0.3,
			TradeHeat:            1,
			StakingCoin:          "DC",
			StakingDailyYield:    0.001,
			StableCoin:           "SC",
			LaunderFee:           0.10,
			LaunderDelayDays:     3,
			LaunderHeatPerDollar: 0.0005,
		},
		Skills: SkillConfig{
			PointInterval: DefaultSkillPointInterval,
			Definitions: []SkillDef{
				{ID: SkillMarketIntuition, Cost: 1, Description: "See price trends against the previous day."},
				{ID: SkillDigitalFootprint, Cost: 2, Description: "Less heat from crypto trades and laundering."},
				{ID: SkillCompartmentalization, Cost: 3, Description: "Less heat and market impact when selling."},
				{ID: SkillGhostProtocol, Cost: 5, Description: "Regional heat cools faster."},
				{ID: SkillMarketAnalyst, Cost: 2, Description: "See buy/sell spreads across the city."},
			},
			DigitalFootprintReduction:     0.25,
			CompartmentalizationReduction: 0.10,
			GhostProtocolDecayBonus:       1,
		},
		Upgrades: UpgradeConfig{
			CapacityLevels: []CapacityLevel{
				{Capacity: 200, Cost: 1000},
				{Capacity: 250, Cost: 2500},
				{Capacity: 300, Cost: 5000},
				{Capacity: 350, Cost: 8000},
			},
			SecurePhoneCost:      5000,
			SecurePhoneReduction: 0.25,
		},
		Informant: InformantConfig{
			RumorCost:             50,
			DrugInfoCost:          75,
			RivalInfoCost:         100,
			TrustPerTip:           5,
			MaxTrust:              100,
			OfficialBaseCost:      1000,
			OfficialCostPerHeat:   50,
			OfficialHeatReduction: 20,
		},
		Seasons: []SeasonalEventDef{
			{
				ID: "FESTIVAL_SEASON", Name: "Festival Season", StartDay: 20, EndDay: 24,
				BuyMult: 1.0, SellMult: 1.15,
				StartMessage: "Festival season is here. Buyers are paying top dollar.",
				EndMessage:   "The festivals wind down and prices settle.",
			},
			{
				ID: "WINTER_SWEEP", Name: "Winter Sweep", StartDay: 40, EndDay: 44,
				BuyMult: 1.10, SellMult: 1.0, DailyHeat: 2,
				StartMessage: "The city launches a winter sweep. Suppliers are nervous.",
				EndMessage:   "The winter sweep is over.",
			},
		},
		Opportunities: OpportunityConfig{
			Chance:           0.05,
			Weights:          OpportunityWeights{StashLeak: 1, UrgentDelivery: 1, ExperimentalBatch: 1},
			StashQuantity:    IntRange{Min: 10, Max: 30},
			StashSuccess:     0.6,
			StashHeat:        IntRange{Min: 10, Max: 20},
			DeliveryMinHeld:  5,
			DeliveryMax:      30,
			DeliveryPremium:  Range{Min: 0.2, Max: 0.5},
			BatchQuantity:    IntRange{Min: 10, Max: 30},
			BatchPriceFactor: 0.5,
			BatchSuccess:     0.7,
			BatchHeat:        IntRange{Min: 5, Max: 15},
		},
		Regions: defaultRegions(),
	}
}

func defaultRegions() []RegionDef {
	weed := func(buy, sell float64) DrugDef { return DrugDef{Name: DrugWeed, Tier: 1, BaseBuy: buy, BaseSell: sell} }
	pills := func(buy, sell float64) DrugDef { return DrugDef{Name: DrugPills, Tier: 2, BaseBuy: buy, BaseSell: sell} }
	speed := func(buy, sell float64) DrugDef { return DrugDef{Name: DrugSpeed, Tier: 2, BaseBuy: buy, BaseSell: sell} }
	coke := func(buy, sell float64) DrugDef { return DrugDef{Name: DrugCoke, Tier: 3, BaseBuy: buy, BaseSell: sell} }
	heroin := func(buy, sell float64) DrugDef { return DrugDef{Name: DrugHeroin, Tier: 3, BaseBuy: buy, BaseSell: sell} }

	return []RegionDef{
		{Name: "Downtown", Drugs: []DrugDef{weed(50, 80), pills(100, 150), coke(1000, 1500)}},
		{Name: "Docks", Drugs: []DrugDef{weed(40, 70), speed(120, 180), heroin(600, 900)}},
		{Name: "Suburbs", Drugs: []DrugDef{weed(60, 100), pills(110, 170)}},
		{Name: "Industrial", Drugs: []DrugDef{weed(45, 75), speed(110, 170), coke(950, 1400)}},
		{Name: "Commercial", Drugs: []DrugDef{weed(55, 90), pills(105, 160), heroin(580, 850)}},
		{Name: "University Hills", Drugs: []DrugDef{weed(70, 110), pills(120, 180), speed(130, 190)}},
		{Name: "Riverside", Drugs: []DrugDef{weed(40, 65), heroin(550, 800)}},
		{Name: "Airport District", Drugs: []DrugDef{coke(1100, 1600), speed(150, 220)}},
		{Name: "Old Town", Drugs: []DrugDef{pills(90, 140), heroin(620, 920)}},
	}
}
