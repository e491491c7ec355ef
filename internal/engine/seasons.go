// Seasonal calendar events. A season scales prices in every region for a
// fixed window of days and may add daily heat.
package engine

import "github.com/talgya/narcosim/internal/config"

// activeSeason returns the definition of the running season.
func (g *Game) activeSeason() (config.SeasonalEventDef, bool) {
	if g.State.ActiveSeason == "" {
		return config.SeasonalEventDef{}, false
	}
	for _, def := range g.cfg.Seasons {
		if def.ID == g.State.ActiveSeason {
			return def, true
		}
	}
	return config.SeasonalEventDef{}, false
}

// SeasonName returns the display name of the running season, or "".
func (g *Game) SeasonName() string {
	def, ok := g.activeSeason()
	if !ok {
		return ""
	}
	return def.Name
}

// processSeason ends a season whose window has passed and starts at most
// one new season whose window contains today.
func (g *Game) processSeason(res *DailyUpdateResult) {
	if def, ok := g.activeSeason(); ok {
		if res.Day <= def.EndDay {
			return
		}
		g.setSeason("", 1, 1)
		if def.EndMessage != "" {
			res.say("%s", def.EndMessage)
		}
		g.log.Info("season ended", "season", def.ID, "day", res.Day)
	}

	for _, def := range g.cfg.Seasons {
		if res.Day < def.StartDay || res.Day > def.EndDay {
			continue
		}
		g.setSeason(def.ID, def.BuyMult, def.SellMult)
		if def.StartMessage != "" {
			res.say("%s", def.StartMessage)
		}
		g.log.Info("season started", "season", def.ID, "day", res.Day)
		return
	}
}

func (g *Game) setSeason(id string, buy, sell float64) {
	g.State.ActiveSeason = id
	for _, r := range g.State.Regions {
		r.SetSeason(buy, sell)
	}
}
