package economy

import (
	"fmt"
	"strings"
)

// Quality is the grade of a drug. Each quality has its own price and stock track.
type Quality int

const (
	QualityCut Quality = iota
	QualityStandard
	QualityPure
)

// Qualities lists every quality in ascending order.
var Qualities = []Quality{QualityCut, QualityStandard, QualityPure}

func (q Quality) String() string {
	switch q {
	case QualityCut:
		return "CUT"
	case QualityStandard:
		return "STANDARD"
	case QualityPure:
		return "PURE"
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// ParseQuality accepts the quality name in any case.
func ParseQuality(s string) (Quality, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CUT":
		return QualityCut, nil
	case "STANDARD", "STD":
		return QualityStandard, nil
	case "PURE":
		return QualityPure, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownQuality, s)
}

func (q Quality) MarshalText() ([]byte, error) {
	if q < QualityCut || q > QualityPure {
		return nil, fmt.Errorf("invalid quality %d", int(q))
	}
	return []byte(q.String()), nil
}

func (q *Quality) UnmarshalText(b []byte) error {
	parsed, err := ParseQuality(string(b))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// QualityMarket is the price and stock track of one quality.
type QualityMarket struct {
	Stock             int     `json:"stock"`     // Restocked daily
	Purchased         int     `json:"purchased"` // Bought by the player since the last restock
	PreviousBuyPrice  float64 `json:"previous_buy_price"`
	PreviousSellPrice float64 `json:"previous_sell_price"`
}

// DrugMarket is the per-region ledger for one drug.
type DrugMarket struct {
	Name      string                     `json:"name"`
	Tier      int                        `json:"tier"`
	BaseBuy   float64                    `json:"base_buy"`
	BaseSell  float64                    `json:"base_sell"`
	Qualities map[Quality]*QualityMarket `json:"qualities"`

	PlayerBuyImpact   float64 `json:"player_buy_impact"`  // [1.0, MaxBuyImpact]
	PlayerSellImpact  float64 `json:"player_sell_impact"` // [MinSellImpact, 1.0]
	RivalDemand       float64 `json:"rival_demand"`
	RivalSupply       float64 `json:"rival_supply"`
	LastRivalActivity int     `json:"last_rival_activity"`
}

// HasQuality reports whether the quality is listed.
func (d *DrugMarket) HasQuality(q Quality) bool {
	_, ok := d.Qualities[q]
	return ok
}

// ListedQualities returns the listed qualities in ascending order.
func (d *DrugMarket) ListedQualities() []Quality {
	out := make([]Quality, 0, len(d.Qualities))
	for _, q := range Qualities {
		if d.HasQuality(q) {
			out = append(out, q)
		}
	}
	return out
}
