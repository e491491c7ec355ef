package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/talgya/narcosim/internal/api"
	"github.com/talgya/narcosim/internal/config"
	"github.com/talgya/narcosim/internal/economy"
	"github.com/talgya/narcosim/internal/engine"
	"github.com/talgya/narcosim/internal/entropy"
	"github.com/talgya/narcosim/internal/persistence"
)

// ── Save slots ──

func newNewCmd(opts *options) *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game and make it active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			if seed == 0 {
				seed = entropy.NewSeed()
			}
			g := engine.New(s.cfg, seed, s.log)
			id := persistence.NewGameID()
			if err := s.db.SaveGame(id, g); err != nil {
				return err
			}
			if err := s.db.SaveMeta(persistence.MetaActiveGame, id); err != nil {
				return err
			}
			j := &journal{}
			j.add(g.State.Day, "Arrived in %s with %s and a debt to the cartel.", g.State.CurrentRegion, money(g.Player().Cash()))
			if err := j.flush(s.db, id); err != nil {
				return err
			}

			printSuccess(fmt.Sprintf("New game %s (seed %d).", id, seed))
			renderSnapshot(g.Snapshot())
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "world seed (random when 0)")
	return cmd
}

func newGamesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List saved games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			games, err := s.db.ListGames()
			if err != nil {
				return err
			}
			active, err := s.db.GetMeta(persistence.MetaActiveGame)
			if err != nil {
				return err
			}
			renderGames(games, active)
			return nil
		},
	}
}

func newUseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Make a saved game active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := resolveGameID(s.db, args[0])
			if err != nil {
				return err
			}
			if err := s.db.SaveMeta(persistence.MetaActiveGame, id); err != nil {
				return err
			}
			printSuccess("Active game: " + id)
			return nil
		},
	}
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved game and its journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := resolveGameID(s.db, args[0])
			if err != nil {
				return err
			}
			if err := s.db.DeleteGame(id); err != nil {
				return err
			}
			active, err := s.db.GetMeta(persistence.MetaActiveGame)
			if err != nil {
				return err
			}
			if active == id {
				if err := s.db.SaveMeta(persistence.MetaActiveGame, ""); err != nil {
					return err
				}
			}
			printWarn("Deleted " + id)
			return nil
		},
	}
}

// resolveGameID accepts a full id or a unique prefix of one.
func resolveGameID(db *persistence.DB, prefix string) (string, error) {
	games, err := db.ListGames()
	if err != nil {
		return "", err
	}
	var matches []string
	for _, g := range games {
		if g.ID == prefix {
			return g.ID, nil
		}
		if strings.HasPrefix(g.ID, prefix) {
			matches = append(matches, g.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", persistence.ErrGameNotFound, prefix)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("ambiguous game id %q matches %d games", prefix, len(matches))
}

// ── Views ──

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(opts, func(g *engine.Game) error {
				renderSnapshot(g.Snapshot())
				return nil
			})
		},
	}
}

func newMarketCmd(opts *options) *cobra.Command {
	var spreads bool
	cmd := &cobra.Command{
		Use:   "market [region]",
		Short: "Show a region's prices and stock",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(opts, func(g *engine.Game) error {
				if spreads {
					out, err := g.CitySpreads()
					if err != nil {
						return err
					}
					renderSpreads(out)
					return nil
				}
				name := g.State.CurrentRegion
				if len(args) == 1 {
					var err error
					if name, err = resolveName("region", args[0], regionNames(g.Config())); err != nil {
						return err
					}
				}
				v, err := g.RegionView(name)
				if err != nil {
					return err
				}
				renderRegion(v)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&spreads, "spreads", false, "compare every region (needs MARKET_ANALYST)")
	return cmd
}

func newEventsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List market events running across the city",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(opts, func(g *engine.Game) error {
				events := g.ActiveEvents()
				if len(events) == 0 {
					printInfo("The streets are quiet.")
					return nil
				}
				accent.Println("\n== ACTIVE EVENTS ==")
				for _, e := range events {
					neutral.Printf("%-18s ", e.Region)
					renderEvents([]engine.EventView{e})
				}
				fmt.Println()
				return nil
			})
		},
	}
}

func newDebtsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "debts",
		Short: "Show the cartel payment calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(opts, func(g *engine.Game) error {
				accent.Println("\n== PAYMENTS ==")
				fmt.Printf("%-4s %5s %12s %10s\n", "#", "DAY", "AMOUNT", "STATUS")
				for _, d := range g.Debts() {
					status := fmt.Sprintf("%d days", d.DaysLeft)
					line := fmt.Sprintf("%-4d %5d %12s %10s", d.Installment, d.Day, money(d.Amount), status)
					switch {
					case d.Paid:
						success.Printf("%-4d %5d %12s %10s\n", d.Installment, d.Day, money(d.Amount), "paid")
					case d.DaysLeft <= 3:
						printWarn(line)
					default:
						fmt.Println(line)
					}
				}
				fmt.Println()
				return nil
			})
		},
	}
}

func newJournalCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show the most recent journal entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := s.activeID()
			if err != nil {
				return err
			}
			entries, err := s.db.RecentJournal(id, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("Nothing written yet.")
				return nil
			}
			day := -1
			for _, e := range entries {
				if e.Day != day {
					day = e.Day
					accent.Printf("Day %d\n", day)
				}
				printInfo("  " + e.Message)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "lines", "n", 20, "number of entries")
	return cmd
}

// ── Trading and travel ──

func newBuyCmd(opts *options) *cobra.Command {
	return newTradeCmd(opts, "buy", "Buy drugs in the current region")
}

func newSellCmd(opts *options) *cobra.Command {
	return newTradeCmd(opts, "sell", "Sell drugs in the current region")
}

func newTradeCmd(opts *options, side, short string) *cobra.Command {
	var quality string
	cmd := &cobra.Command{
		Use:   side + " <drug> <quantity>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := economy.ParseQuality(quality)
			if err != nil {
				return err
			}
			qty, err := parseQuantity(args[1])
			if err != nil {
				return err
			}
			return mutate(opts, func(g *engine.Game, j *journal) error {
				drug, err := resolveName("drug", args[0], drugNames(g.Config()))
				if err != nil {
					return err
				}
				var r *engine.TradeReceipt
				verb := "Bought"
				if side == "buy" {
					r, err = g.Buy(drug, q, qty)
				} else {
					verb = "Sold"
					r, err = g.Sell(drug, q, qty)
				}
				if err != nil {
					return err
				}
				msg := fmt.Sprintf("%s %d %s %s for %s (%s each) in %s.",
					verb, r.Quantity, r.Quality, r.Drug, money(r.Total), money(r.UnitPrice), g.State.CurrentRegion)
				printSuccess(msg)
				if r.HeatAdded > 0 {
					printWarn(fmt.Sprintf("Heat +%d.", r.HeatAdded))
				}
				j.add(g.State.Day, "%s", msg)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&quality, "quality", "q", "STANDARD", "CUT, STANDARD or PURE")
	return cmd
}

func newTravelCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "travel <region>",
		Short: "Move to another region (takes a day)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(opts, func(g *engine.Game, j *journal) error {
				dest, err := resolveName("region", strings.Join(args, " "), regionNames(g.Config()))
				if err != nil {
					return err
				}
				from := g.State.CurrentRegion
				res, err := g.Travel(dest)
				if err != nil {
					return err
				}
				j.add(res.Day.Day, "Travelled from %s to %s.", from, dest)
				j.addDay(res.Day)
				renderDayResult(res.Day)
				if res.Stopped {
					printError("Police stop! Answer with `narcosim stop bribe` or `narcosim stop comply`.")
				}
				return nil
			})
		},
	}
}

func newAdvanceCmd(opts *options) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "advance",
		Short: "Lie low and let days pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("days must be at least 1, got %d", days)
			}
			return mutate(opts, func(g *engine.Game, j *journal) error {
				for i := 0; i < days; i++ {
					res, err := g.AdvanceDay()
					if err != nil {
						if i > 0 {
							break
						}
						return err
					}
					j.addDay(res)
					renderDayResult(res)
					// Stop early on anything that needs an answer.
					if res.GameOver != "" || res.Blocking != nil || g.State.PendingOpportunity != nil {
						break
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&days, "days", "d", 1, "number of days")
	return cmd
}

// ── Answers to pending events ──

func newStopCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "stop <bribe|comply>",
		Short:     "Answer a police stop",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bribe", "comply"},
		RunE: func(cmd *cobra.Command, args []string) error {
			choice, err := resolveName("answer", args[0], []string{"bribe", "comply"})
			if err != nil {
				return err
			}
			return mutate(opts, func(g *engine.Game, j *journal) error {
				day := g.State.Day
				res, err := g.ResolvePoliceStop(choice == "bribe")
				if err != nil {
					return err
				}
				for _, msg := range res.Messages {
					printInfo(msg)
					j.add(day, "%s", msg)
				}
				switch res.Outcome {
				case engine.StopReleased, engine.StopNothingFound:
					printSuccess("You walk away.")
				case engine.StopWarned:
					printWarn("Let go with a warning.")
				case engine.StopJailed:
					printError(fmt.Sprintf("Jailed for %d days.", res.JailDays))
				}
				for _, d := range res.JailedDays {
					j.addDay(d)
					renderDayResult(d)
				}
				return nil
			})
		},
	}
}

func newSetupCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "setup <accept|decline>",
		Short:     "Answer the deal a contact is offering",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"accept", "decline"},
		RunE: func(cmd *cobra.Command, args []string) error {
			choice, err := resolveName("answer", args[0], []string{"accept", "decline"})
			if err != nil {
				return err
			}
			return mutate(opts, func(g *engine.Game, j *journal) error {
				res, err := g.RespondToSetup(choice == "accept")
				if err != nil {
					return err
				}
				switch {
				case res.Sting:
					printError(res.Message)
					printError("Police stop! Answer with `narcosim stop bribe` or `narcosim stop comply`.")
				case res.Accepted:
					printSuccess(res.Message)
				default:
					printInfo(res.Message)
				}
				j.add(g.State.Day, "%s", res.Message)
				return nil
			})
		},
	}
}

func newOpportunityCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "opportunity <accept|decline|0|1>",
		Short: "Answer today's opportunity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			choice, err := strconv.Atoi(args[0])
			if err != nil {
				answer, rerr := resolveName("answer", args[0], []string{"accept", "decline"})
				if rerr != nil {
					return rerr
				}
				choice = 0
				if answer == "decline" {
					choice = 1
				}
			}
			return mutate(opts, func(g *engine.Game, j *journal) error {
				res, err := g.RespondToOpportunity(choice)
				if err != nil {
					return err
				}
				switch {
				case !res.Accepted:
					printInfo(res.Message)
				case res.Success:
					printSuccess(res.Message)
				default:
					printError(res.Message)
				}
				if res.HeatAdded > 0 {
					printWarn(fmt.Sprintf("Heat +%d.", res.HeatAdded))
				}
				j.add(g.State.Day, "%s", res.Message)
				return nil
			})
		},
	}
}

// ── Progression ──

func newSkillCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "skill [id]",
		Short: "List skills or unlock one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return view(opts, func(g *engine.Game) error {
					inv := g.Player()
					accent.Printf("\n== SKILLS (%d points) ==\n", inv.SkillPoints)
					for _, def := range g.Config().Skills.Definitions {
						mark := " "
						if inv.HasSkill(def.ID) {
							mark = success.Sprint("*")
						}
						fmt.Printf("%s %-22s %2d  %s\n", mark, def.ID, def.Cost, def.Description)
					}
					fmt.Println()
					return nil
				})
			}
			return mutate(opts, func(g *engine.Game, j *journal) error {
				id, err := resolveName("skill", args[0], skillIDs(g.Config()))
				if err != nil {
					return err
				}
				if err := g.UnlockSkill(id); err != nil {
					return err
				}
				printSuccess("Unlocked " + id + ".")
				j.add(g.State.Day, "Learned %s.", id)
				return nil
			})
		},
	}
}

func newUpgradeCmd(opts *options) *cobra.Command {
	upgrades := []string{engine.UpgradeCapacity, engine.UpgradeSecurePhone}
	return &cobra.Command{
		Use:   "upgrade [capacity|secure_phone]",
		Short: "List upgrades or buy one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return view(opts, func(g *engine.Game) error {
					accent.Println("\n== UPGRADES ==")
					if capacity, cost, ok := g.NextCapacityLevel(); ok {
						fmt.Printf("%-14s %s to carry %d\n", engine.UpgradeCapacity, money(cost), capacity)
					} else {
						fmt.Printf("%-14s maxed at %d\n", engine.UpgradeCapacity, g.Player().Capacity())
					}
					if g.Player().SecurePhone {
						fmt.Printf("%-14s owned\n", engine.UpgradeSecurePhone)
					} else {
						fmt.Printf("%-14s %s\n", engine.UpgradeSecurePhone, money(g.Config().Upgrades.SecurePhoneCost))
					}
					fmt.Println()
					return nil
				})
			}
			id, err := resolveName("upgrade", args[0], upgrades)
			if err != nil {
				return err
			}
			return mutate(opts, func(g *engine.Game, j *journal) error {
				r, err := g.PurchaseUpgrade(id)
				if err != nil {
					return err
				}
				msg := fmt.Sprintf("Bought %s for %s.", r.Upgrade, money(r.Cost))
				if r.Capacity > 0 {
					msg = fmt.Sprintf("Stash now holds %d units (%s).", r.Capacity, money(r.Cost))
				}
				printSuccess(msg)
				j.add(g.State.Day, "%s", msg)
				return nil
			})
		},
	}
}

// ── Money ──

func newCryptoCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crypto",
		Short: "Show coin prices, or buy and sell coins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(opts, func(g *engine.Game) error {
				accent.Println("\n== CRYPTO ==")
				fmt.Printf("%-6s %12s %14s\n", "COIN", "PRICE", "HOLDING")
				for _, coin := range g.Config().Crypto.Coins {
					price, _ := g.CryptoPrice(coin.Symbol)
					fmt.Printf("%-6s %12s %14.4f\n", coin.Symbol, money(price), g.Player().Crypto(coin.Symbol))
				}
				fmt.Println()
				return nil
			})
		},
	}
	cmd.AddCommand(newCryptoTradeCmd(opts, true), newCryptoTradeCmd(opts, false))
	return cmd
}

func newCryptoTradeCmd(opts *options, buy bool) *cobra.Command {
	side := "sell"
	if buy {
		side = "buy"
	}
	return &cobra.Command{
		Use:   side + " <coin> <amount>",
		Short: strings.ToUpper(side[:1]) + side[1:] + " coins with cash",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return mutate(opts, func(g *engine.Game, j *journal) error {
				coin, err := resolveName("coin", args[0], coinSymbols(g.Config()))
				if err != nil {
					return err
				}
				r, err := g.TradeCrypto(coin, amount, buy)
				if err != nil {
					return err
				}
				verb := "Sold"
				if r.Buy {
					verb = "Bought"
				}
				msg := fmt.Sprintf("%s %.4f %s at %s for %s.", verb, r.Amount, r.Coin, money(r.Price), money(r.Total))
				printSuccess(msg)
				if r.HeatAdded > 0 {
					printWarn(fmt.Sprintf("Heat +%d.", r.HeatAdded))
				}
				j.add(g.State.Day, "%s", msg)
				return nil
			})
		},
	}
}

func newLaunderCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "launder <amount>",
		Short: "Wash cash into stablecoin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			return mutate(opts, func(g *engine.Game, j *journal) error {
				r, err := g.Launder(amount)
				if err != nil {
					return err
				}
				msg := fmt.Sprintf("Laundering %s; %.2f %s arrives on day %d.",
					money(r.Amount), r.Arriving, g.Config().Crypto.StableCoin, r.ArrivalDay)
				printSuccess(msg)
				if r.HeatAdded > 0 {
					printWarn(fmt.Sprintf("Heat +%d.", r.HeatAdded))
				}
				j.add(g.State.Day, "%s", msg)
				return nil
			})
		},
	}
}

func newStakeCmd(opts *options) *cobra.Command {
	return newStakingCmd(opts, "stake", "Stake coins for a daily yield", func(g *engine.Game, amount float64) error {
		return g.Stake(amount)
	})
}

func newUnstakeCmd(opts *options) *cobra.Command {
	return newStakingCmd(opts, "unstake", "Return staked coins to the wallet", func(g *engine.Game, amount float64) error {
		return g.Unstake(amount)
	})
}

func newStakingCmd(opts *options, use, short string, act func(*engine.Game, float64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <amount>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			return mutate(opts, func(g *engine.Game, j *journal) error {
				if err := act(g, amount); err != nil {
					return err
				}
				coin := g.Config().Crypto.StakingCoin
				msg := fmt.Sprintf("%s %.4f %s; %.4f staked.", strings.ToUpper(use[:1])+use[1:]+"d", amount, coin, g.Player().Staked)
				printSuccess(msg)
				j.add(g.State.Day, "%s", msg)
				return nil
			})
		},
	}
}

func newCollectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "collect",
		Short: "Move staking rewards into the wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(opts, func(g *engine.Game, j *journal) error {
				amount, err := g.CollectStakingRewards()
				if err != nil {
					return err
				}
				msg := fmt.Sprintf("Collected %.4f %s in rewards.", amount, g.Config().Crypto.StakingCoin)
				printSuccess(msg)
				j.add(g.State.Day, "%s", msg)
				return nil
			})
		},
	}
}

// ── Contacts ──

func newTipCmd(opts *options) *cobra.Command {
	kinds := []string{engine.TipRumor, engine.TipDrugInfo, engine.TipRivalInfo}
	return &cobra.Command{
		Use:   "tip <rumor|drug_info|rival_info>",
		Short: "Pay the informant for a tip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := resolveName("tip", args[0], kinds)
			if err != nil {
				return err
			}
			return mutate(opts, func(g *engine.Game, j *journal) error {
				tip, err := g.BuyTip(kind)
				if err != nil {
					return err
				}
				neutral.Printf("(%s, trust %d) ", money(tip.Cost), tip.Trust)
				accent.Println(tip.Text)
				j.add(g.State.Day, "Informant: %s", tip.Text)
				return nil
			})
		},
	}
}

func newOfficialCmd(opts *options) *cobra.Command {
	var quote bool
	cmd := &cobra.Command{
		Use:   "official",
		Short: "Pay a corrupt official to cool the current region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if quote {
				return view(opts, func(g *engine.Game) error {
					printInfo(fmt.Sprintf("The official in %s wants %s.", g.State.CurrentRegion, money(g.OfficialCost())))
					return nil
				})
			}
			return mutate(opts, func(g *engine.Game, j *journal) error {
				r, err := g.BribeOfficial()
				if err != nil {
					return err
				}
				msg := fmt.Sprintf("Paid an official %s; heat in %s down %d.", money(r.Cost), r.Region, r.HeatRemoved)
				printSuccess(msg)
				j.add(g.State.Day, "%s", msg)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&quote, "quote", false, "only show the price")
	return cmd
}

// ── HTTP API ──

func newServeCmd(opts *options) *cobra.Command {
	var (
		addr string
		rate int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve saved games over a read-only HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.verbose {
				opts.level.Set(slog.LevelInfo)
			}
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := api.New(s.db, s.cfg, s.log, api.Options{RateLimit: rate})
			printInfo("Serving on " + addr)
			if err := srv.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&rate, "rate", 120, "requests per minute per client (0 disables)")
	return cmd
}

// ── Argument helpers ──

func parseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("quantity must be a positive whole number, got %q", s)
	}
	return n, nil
}

func parseAmount(s string) (float64, error) {
	s = strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), "$")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("amount must be a positive number, got %q", s)
	}
	return v, nil
}

func regionNames(cfg *config.Config) []string {
	out := make([]string, 0, len(cfg.Regions))
	for _, r := range cfg.Regions {
		out = append(out, r.Name)
	}
	return out
}

func drugNames(cfg *config.Config) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range cfg.Regions {
		for _, d := range r.Drugs {
			if !seen[d.Name] {
				seen[d.Name] = true
				out = append(out, d.Name)
			}
		}
	}
	return out
}

func coinSymbols(cfg *config.Config) []string {
	out := make([]string, 0, len(cfg.Crypto.Coins))
	for _, c := range cfg.Crypto.Coins {
		out = append(out, c.Symbol)
	}
	return out
}

func skillIDs(cfg *config.Config) []string {
	out := make([]string, 0, len(cfg.Skills.Definitions))
	for _, s := range cfg.Skills.Definitions {
		out = append(out, s.ID)
	}
	return out
}
