// Daily update pipeline. One day advance runs an ordered list of stages;
// a stage returns false to end the day early.
package engine

import (
	"fmt"

	"github.com/talgya/narcosim/internal/config"
	"github.com/talgya/narcosim/internal/economy"
)

// stage is one step of the daily pipeline.
type stage struct {
	name string
	run  func(res *DailyUpdateResult) bool
}

// stages returns the full pipeline in execution order.
func (g *Game) stages() []stage {
	return []stage{
		{"debts", g.stageDebts},
		{"regions", g.stageRegions},
		{"crypto", g.stageCrypto},
		{"staking", g.stageStaking},
		{"laundering", g.stageLaundering},
		{"market_event", g.stageMarketEvent},
		{"rivals", g.stageRivals},
		{"blocking", g.stageBlocking},
		{"skill_points", g.stageSkillPoints},
		{"bankruptcy", g.stageBankruptcy},
		{"seasons", g.stageSeasons},
		{"opportunity", g.stageOpportunity},
	}
}

// jailStages is the pipeline for a day spent in a cell: the city moves on
// but the player can do nothing.
func (g *Game) jailStages() []stage {
	return []stage{
		{"regions", g.stageRegions},
		{"crypto", g.stageCrypto},
	}
}

// AdvanceDay runs one full day and applies its result.
func (g *Game) AdvanceDay() (*DailyUpdateResult, error) {
	if err := g.checkActive(); err != nil {
		return nil, err
	}
	return g.advanceDay(), nil
}

func (g *Game) advanceDay() *DailyUpdateResult {
	return g.runDay(g.stages(), false)
}

// runDay advances the calendar and runs stages. An unanswered opportunity
// lapses at the start of the next day.
func (g *Game) runDay(stages []stage, jailed bool) *DailyUpdateResult {
	st := g.State
	st.PendingOpportunity = nil
	st.Day++
	res := newResult(st.Day, st.Player.SkillPoints)
	res.Jailed = jailed

	for _, s := range stages {
		if !s.run(res) {
			g.log.Debug("daily update stopped", "day", st.Day, "stage", s.name)
			break
		}
	}
	g.applyResult(res)

	g.log.Info("daily update",
		"day", st.Day,
		"region", st.CurrentRegion,
		"cash", st.Player.Cash(),
		"heat", g.CurrentRegion().Heat(),
		"jailed", jailed,
		"messages", len(res.LogMessages),
		"game_over", res.GameOver != "",
	)
	return res
}

// applyResult copies the result's state changes onto the game.
func (g *Game) applyResult(res *DailyUpdateResult) {
	st := g.State
	if res.GameOver != "" {
		st.GameOver = res.GameOver
	}
	if res.Won {
		st.Won = true
	}
	st.Player.SkillPoints = res.SkillPoints
	if res.Laundering != nil {
		st.Player.Laundering = nil
	}
	if res.InformantUnavailableUntil > st.InformantUnavailableUntil {
		st.InformantUnavailableUntil = res.InformantUnavailableUntil
	}
}

// ── Stage 1: debts ───────────────────────────────────────────────────

func (g *Game) stageDebts(res *DailyUpdateResult) bool {
	inv := g.State.Player
	for i, debt := range g.cfg.Debts {
		if inv.DebtPaid[i] {
			continue
		}
		if res.Day < debt.Day {
			break
		}
		if !inv.CanAfford(debt.Amount) {
			res.GameOver = fmt.Sprintf("Day %d: the %s payment came due and you only had %s. The cartel collected in other ways.",
				res.Day, economy.Money(debt.Amount), economy.Money(inv.Cash()))
			return false
		}
		_ = inv.Debit(debt.Amount)
		inv.DebtPaid[i] = true
		res.say("Paid the %s installment due on day %d.", economy.Money(debt.Amount), debt.Day)
		g.log.Info("debt paid", "day", res.Day, "amount", debt.Amount, "installment", i+1)
		if i == len(g.cfg.Debts)-1 {
			res.Won = true
			res.say("The debt is cleared. You are your own boss now.")
		}
	}
	return true
}

// ── Stage 2: regions ─────────────────────────────────────────────────

func (g *Game) stageRegions(res *DailyUpdateResult) bool {
	decay := g.cfg.Market.HeatDecayPerDay
	if g.State.Player.HasSkill(config.SkillGhostProtocol) {
		decay += g.cfg.Skills.GhostProtocolDecayBonus
	}
	seasonHeat := 0
	if def, ok := g.activeSeason(); ok {
		seasonHeat = def.DailyHeat
	}

	for _, r := range g.State.Regions {
		r.Restock(g.rng)
		r.DecayHeat(decay)
		r.DecayPlayerImpact()
		r.DecayRivalImpact(res.Day, g.cfg.Rivals.IdleDays, g.cfg.Rivals.DecayPerDay)
		for _, e := range r.UpdateActiveEvents() {
			res.note("%s", e.EndMessage(r.Name))
			if e.Type == economy.EventRivalBusted {
				g.releaseRival(e.Rival, res)
			}
		}
		g.syncBustedRivals(r)
		if seasonHeat > 0 {
			r.ModifyHeat(seasonHeat)
		}
	}
	return true
}

// ── Stages 3 to 5: crypto, staking, laundering ───────────────────────

func (g *Game) stageCrypto(res *DailyUpdateResult) bool {
	g.walkCryptoPrices(res.Day)
	return true
}

func (g *Game) stageStaking(res *DailyUpdateResult) bool {
	inv := g.State.Player
	if inv.Staked <= 0 {
		return true
	}
	reward := roundCoin(inv.Staked * g.cfg.Crypto.StakingDailyYield)
	inv.StakingRewards = roundCoin(inv.StakingRewards + reward)
	res.note("Staking paid %.4f %s.", reward, g.cfg.Crypto.StakingCoin)
	return true
}

func (g *Game) stageLaundering(res *DailyUpdateResult) bool {
	p := g.State.Player.Laundering
	if p == nil || res.Day < p.ArrivalDay {
		return true
	}
	coin := g.cfg.Crypto.StableCoin
	if p.Amount > 0 {
		_ = g.State.Player.AddCrypto(coin, p.Amount)
	}
	res.Laundering = &LaunderingArrival{Amount: p.Amount, Coin: coin}
	res.say("Laundered funds arrived: %s in %s.", economy.Money(p.Amount), coin)
	return true
}

// ── Stages 6 and 7: market events and rivals ─────────────────────────

func (g *Game) stageMarketEvent(res *DailyUpdateResult) bool {
	g.triggerMarketEvent(g.CurrentRegion(), res)
	return true
}

func (g *Game) stageRivals(res *DailyUpdateResult) bool {
	for _, rv := range g.State.Rivals {
		g.processRivalTurn(rv, res)
	}
	return true
}

// ── Stage 8: blocking events ─────────────────────────────────────────

// stageBlocking surfaces at most one blocking event: mugging, then informant
// betrayal, then a forced fire sale.
func (g *Game) stageBlocking(res *DailyUpdateResult) bool {
	switch {
	case g.tryMugging(res):
	case g.tryBetrayal(res):
	case g.tryFireSale(res):
	}
	return true
}

// ── Stages 9 and 10: skill points and bankruptcy ─────────────────────

func (g *Game) stageSkillPoints(res *DailyUpdateResult) bool {
	interval := g.cfg.Skills.PointInterval
	if res.Day > 0 && interval > 0 && res.Day%interval == 0 {
		res.SkillPointAwarded = true
		res.SkillPoints++
		res.say("You earned a skill point (%d available).", res.SkillPoints)
	}
	return true
}

func (g *Game) stageBankruptcy(res *DailyUpdateResult) bool {
	cash := g.State.Player.Cash()
	if cash >= g.cfg.Player.BankruptcyThreshold {
		return true
	}
	res.GameOver = "Bankrupt: you are " + economy.Money(-cash) + " in the hole and nobody will front you anymore."
	g.log.Info("bankrupt", "day", res.Day, "cash", cash)
	return false
}

// ── Stages 11 and 12: seasons and opportunities ──────────────────────

func (g *Game) stageSeasons(res *DailyUpdateResult) bool {
	g.processSeason(res)
	return true
}

func (g *Game) stageOpportunity(res *DailyUpdateResult) bool {
	if res.GameOver != "" || res.Blocking != nil {
		return true
	}
	if !g.rng.Chance(g.cfg.Opportunities.Chance) {
		return true
	}
	g.offerOpportunity(res)
	return true
}
