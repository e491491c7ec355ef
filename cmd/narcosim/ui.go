package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/talgya/narcosim/internal/economy"
	"github.com/talgya/narcosim/internal/engine"
	"github.com/talgya/narcosim/internal/persistence"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printError(msg string) {
	danger.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func money(v float64) string { return economy.Money(v) }

func colorizeHeat(heat int) string {
	s := fmt.Sprintf("%d", heat)
	switch {
	case heat >= 70:
		return danger.Sprint(s)
	case heat >= 40:
		return warn.Sprint(s)
	default:
		return success.Sprint(s)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

// levenshteinLimit is how many edits a name may be off by and still match.
func levenshteinLimit(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

// resolveName matches input against candidates: exact match first, then a
// unique prefix, then the single closest name within the edit limit.
func resolveName(kind, input string, candidates []string) (string, error) {
	in := normalizeName(input)
	if in == "" {
		return "", fmt.Errorf("%s is required", kind)
	}

	var prefixed []string
	for _, c := range candidates {
		nc := normalizeName(c)
		if nc == in {
			return c, nil
		}
		if strings.HasPrefix(nc, in) {
			prefixed = append(prefixed, c)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], nil
	}

	best, bestDist, tie := "", -1, false
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(in, normalizeName(c))
		switch {
		case bestDist < 0 || d < bestDist:
			best, bestDist, tie = c, d, false
		case d == bestDist:
			tie = true
		}
	}
	if best != "" && !tie && bestDist <= levenshteinLimit(len(in)) {
		return best, nil
	}
	if len(prefixed) > 1 {
		return "", fmt.Errorf("ambiguous %s %q: %s", kind, input, strings.Join(prefixed, ", "))
	}
	if best != "" {
		return "", fmt.Errorf("unknown %s %q (did you mean %q?)", kind, input, best)
	}
	return "", fmt.Errorf("unknown %s %q", kind, input)
}

func renderDayResult(res *engine.DailyUpdateResult) {
	if res == nil {
		return
	}
	if res.Jailed {
		danger.Printf("-- Day %d (in jail) --\n", res.Day)
	} else {
		accent.Printf("-- Day %d --\n", res.Day)
	}
	for _, msg := range res.UIMessages {
		printInfo("  " + msg)
	}
	if b := res.Blocking; b != nil {
		warn.Printf("  ! %s\n", b.Title)
		for _, msg := range b.Messages {
			printWarn("    " + msg)
		}
		for i, c := range b.Choices {
			printInfo(fmt.Sprintf("    [%d] %s", i, c))
		}
		if len(b.Choices) > 0 {
			printInfo("    Answer today with `narcosim opportunity <choice>`.")
		}
	}
	if res.GameOver != "" {
		printError("GAME OVER: " + res.GameOver)
	} else if res.Won {
		printSuccess("The last debt is paid. The city is yours.")
	}
}

func renderSnapshot(s engine.Snapshot) {
	accent.Printf("\n== DAY %d / %s ==\n", s.Day, strings.ToUpper(s.Region))
	fmt.Printf("Cash:          %s\n", money(s.Cash))
	fmt.Printf("Net worth:     %s\n", money(s.NetWorth))
	fmt.Printf("Heat:          %s\n", colorizeHeat(s.Heat))
	fmt.Printf("Stash:         %d / %d\n", s.Load, s.Capacity)
	fmt.Printf("Skill points:  %d\n", s.SkillPoints)
	fmt.Printf("Informant:     trust %d", s.Trust)
	if s.InformantIdle > 0 {
		fmt.Printf(" (lying low until day %d)", s.InformantIdle)
	}
	fmt.Println()
	if s.Season != "" {
		fmt.Printf("Season:        %s\n", s.Season)
	}
	if s.SecurePhone {
		fmt.Println("Secure phone:  yes")
	}
	if len(s.Skills) > 0 {
		fmt.Printf("Skills:        %s\n", strings.Join(s.Skills, ", "))
	}
	if s.NextDebt != nil {
		d := s.NextDebt
		line := fmt.Sprintf("Next payment:  %s on day %d (%d days)", money(d.Amount), d.Day, d.DaysLeft)
		if d.DaysLeft <= 3 {
			printWarn(line)
		} else {
			fmt.Println(line)
		}
	}

	fmt.Println()
	accent.Println("Stash")
	if len(s.Lots) == 0 {
		printInfo("Nothing on you.")
	} else {
		fmt.Printf("%-10s %-10s %8s\n", "DRUG", "QUALITY", "QTY")
		for _, l := range s.Lots {
			fmt.Printf("%-10s %-10s %8s\n", l.Drug, l.Quality, humanize.Comma(int64(l.Quantity)))
		}
	}

	fmt.Println()
	accent.Println("Wallets")
	fmt.Printf("%-6s %14s %12s\n", "COIN", "HOLDING", "PRICE")
	for _, coin := range sortedKeys(s.CryptoPrices) {
		fmt.Printf("%-6s %14.4f %12s\n", coin, s.Wallets[coin], money(s.CryptoPrices[coin]))
	}
	if s.Staked > 0 || s.StakingRewards > 0 {
		fmt.Printf("Staked %.4f, rewards %.4f\n", s.Staked, s.StakingRewards)
	}
	if s.Laundering != nil {
		fmt.Printf("Laundering %s arriving day %d\n", money(s.Laundering.Amount), s.Laundering.ArrivalDay)
	}

	if s.PendingStop != nil {
		fmt.Println()
		printError("Police stop! Answer with `narcosim stop bribe` or `narcosim stop comply`.")
	}
	if o := s.PendingOpportunity; o != nil {
		fmt.Println()
		warn.Println("Opportunity: " + o.Description)
		for i, c := range o.Choices {
			printInfo(fmt.Sprintf("  [%d] %s", i, c))
		}
	}
	if s.GameOver != "" {
		fmt.Println()
		printError("GAME OVER: " + s.GameOver)
	} else if s.Won {
		printSuccess("Debts cleared. Free play.")
	}
	fmt.Println()
}

func renderRegion(v *engine.RegionView) {
	title := strings.ToUpper(v.Name)
	if v.Current {
		title += " (you are here)"
	}
	accent.Printf("\n== %s ==\n", title)
	fmt.Printf("Heat: %s\n", colorizeHeat(v.Heat))
	if len(v.Rivals) > 0 {
		fmt.Printf("Rivals: %s\n", strings.Join(v.Rivals, ", "))
	}
	fmt.Println()
	fmt.Printf("%-8s %-9s %10s %10s %8s %10s %10s\n", "DRUG", "QUALITY", "BUY", "SELL", "STOCK", "PREV BUY", "PREV SELL")
	for _, q := range v.Quotes {
		prevBuy, prevSell := "-", "-"
		if q.PrevBuy > 0 {
			prevBuy = money(q.PrevBuy)
		}
		if q.PrevSell > 0 {
			prevSell = money(q.PrevSell)
		}
		buy := money(q.Buy)
		if q.Disrupted {
			buy = "n/a"
		}
		fmt.Printf("%-8s %-9s %10s %10s %8s %10s %10s\n",
			q.Drug, q.Quality, buy, money(q.Sell), humanize.Comma(int64(q.Stock)), prevBuy, prevSell)
	}
	if len(v.Events) > 0 {
		fmt.Println()
		accent.Println("Events")
		renderEvents(v.Events)
	}
	fmt.Println()
}

func renderEvents(events []engine.EventView) {
	for _, e := range events {
		line := fmt.Sprintf("%-18s %-22s %d days left", e.Type, truncate(e.Subject, 22), e.DaysRemaining)
		if d := e.Deal; d != nil {
			side := "sell"
			if d.IsBuy {
				side = "buy"
			}
			line += fmt.Sprintf(" (%s %d %s %s for %s)", side, d.Quantity, d.Quality, d.Drug, money(d.Total()))
		}
		printInfo(line)
	}
}

func renderSpreads(spreads []engine.Spread) {
	accent.Println("\n== CITY SPREADS ==")
	fmt.Printf("%-8s %-9s %-18s %10s %-18s %10s %10s\n", "DRUG", "QUALITY", "BUY AT", "PRICE", "SELL AT", "PRICE", "MARGIN")
	for _, s := range spreads {
		margin := money(s.Margin)
		if s.Margin > 0 {
			margin = success.Sprint(margin)
		}
		fmt.Printf("%-8s %-9s %-18s %10s %-18s %10s %10s\n",
			s.Drug, s.Quality, truncate(s.BuyAt, 18), money(s.BuyPrice), truncate(s.SellAt, 18), money(s.Sell), margin)
	}
	fmt.Println()
}

func renderGames(games []persistence.GameSummary, active string) {
	if len(games) == 0 {
		printInfo("No saved games. Start one with `narcosim new`.")
		return
	}
	fmt.Printf("  %-36s %5s %-18s %12s %-10s %s\n", "ID", "DAY", "REGION", "CASH", "STATUS", "SAVED")
	for _, g := range games {
		status := "playing"
		switch {
		case g.GameOver != "":
			status = "over"
		case g.Won:
			status = "won"
		}
		marker := " "
		if g.ID == active {
			marker = "*"
		}
		fmt.Printf("%s %-36s %5d %-18s %12s %-10s %s\n",
			marker, g.ID, g.Day, truncate(g.Region, 18), money(g.Cash), status, humanize.Time(g.Updated()))
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
