// Crypto market: the daily price walk and cash/coin trades.
package engine

import (
	"fmt"
	"math"

	"github.com/talgya/narcosim/internal/config"
	"github.com/talgya/narcosim/internal/player"
)

// walkCryptoPrices moves every volatile coin one step. The shock mixes a
// uniform draw with the slow noise trend, so |shock| never exceeds the
// coin's volatility.
func (g *Game) walkCryptoPrices(day int) {
	w := g.cfg.Crypto.TrendWeight
	for i, coin := range g.cfg.Crypto.Coins {
		v := coin.Volatility
		if v <= 0 {
			continue
		}
		shock := (1-w)*g.rng.Uniform(-v, v) + w*v*g.trend.At(i, day)
		price := math.Round(g.State.CryptoPrices[coin.Symbol]*(1+shock)*100) / 100
		g.State.CryptoPrices[coin.Symbol] = math.Max(coin.Minimum, price)
	}
}

// CryptoPrice returns the current price of coin.
func (g *Game) CryptoPrice(coin string) (float64, bool) {
	p, ok := g.State.CryptoPrices[coin]
	return p, ok
}

// heatReduction is the multiplier applied to crypto and laundering heat.
func (g *Game) heatReduction() float64 {
	f := 1.0
	inv := g.State.Player
	if inv.HasSkill(config.SkillDigitalFootprint) {
		f *= 1 - g.cfg.Skills.DigitalFootprintReduction
	}
	if inv.SecurePhone {
		f *= 1 - g.cfg.Upgrades.SecurePhoneReduction
	}
	return f
}

// CryptoReceipt describes a completed coin trade.
type CryptoReceipt struct {
	Coin      string  `json:"coin"`
	Amount    float64 `json:"amount"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
	Buy       bool    `json:"buy"`
	HeatAdded int     `json:"heat_added,omitempty"`
}

// TradeCrypto buys or sells amount of coin for cash at today's price.
func (g *Game) TradeCrypto(coin string, amount float64, buy bool) (*CryptoReceipt, error) {
	if err := g.checkActive(); err != nil {
		return nil, err
	}
	price, ok := g.CryptoPrice(coin)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCoin, coin)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: %v", player.ErrInvalidQuantity, amount)
	}
	inv := g.State.Player
	total := math.Round(amount*price*100) / 100

	if buy {
		if err := inv.Debit(total); err != nil {
			return nil, err
		}
		_ = inv.AddCrypto(coin, amount)
	} else {
		if err := inv.RemoveCrypto(coin, amount); err != nil {
			return nil, err
		}
		inv.Credit(total)
	}

	heat := int(math.Round(float64(g.cfg.Crypto.TradeHeat) * g.heatReduction()))
	g.CurrentRegion().ModifyHeat(heat)
	g.log.Debug("crypto trade", "coin", coin, "amount", amount, "price", price, "buy", buy, "heat", heat)
	return &CryptoReceipt{Coin: coin, Amount: amount, Price: price, Total: total, Buy: buy, HeatAdded: heat}, nil
}

// cryptoValue is the cash value of all wallets at today's prices.
func (g *Game) cryptoValue() float64 {
	wallets := g.State.Player.Wallets()
	total := 0.0
	for _, coin := range g.cfg.Crypto.Coins {
		total += wallets[coin.Symbol] * g.State.CryptoPrices[coin.Symbol]
	}
	return math.Round(total*100) / 100
}
