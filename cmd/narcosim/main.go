// Command narcosim is the terminal client: it keeps save slots in SQLite,
// runs player actions against the engine and serves the read-only API.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/talgya/narcosim/internal/config"
	"github.com/talgya/narcosim/internal/engine"
	"github.com/talgya/narcosim/internal/persistence"
)

// options are the persistent flags shared by every command.
type options struct {
	dbPath     string
	configPath string
	gameID     string
	verbose    bool
	noColor    bool

	level *slog.LevelVar
}

func main() {
	opts := &options{level: new(slog.LevelVar)}

	root := &cobra.Command{
		Use:          "narcosim",
		Short:        "Street-level drug market trading game",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(opts)
			if opts.noColor {
				color.NoColor = true
			}
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.dbPath, "db", filepath.Join("data", "narcosim.db"), "SQLite save file")
	flags.StringVar(&opts.configPath, "config", "", "YAML balance overrides")
	flags.StringVar(&opts.gameID, "game", "", "save slot id (defaults to the active game)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")

	root.AddCommand(
		newNewCmd(opts),
		newGamesCmd(opts),
		newUseCmd(opts),
		newDeleteCmd(opts),
		newStatusCmd(opts),
		newMarketCmd(opts),
		newEventsCmd(opts),
		newDebtsCmd(opts),
		newBuyCmd(opts),
		newSellCmd(opts),
		newTravelCmd(opts),
		newAdvanceCmd(opts),
		newStopCmd(opts),
		newSetupCmd(opts),
		newOpportunityCmd(opts),
		newSkillCmd(opts),
		newUpgradeCmd(opts),
		newCryptoCmd(opts),
		newLaunderCmd(opts),
		newStakeCmd(opts),
		newUnstakeCmd(opts),
		newCollectCmd(opts),
		newTipCmd(opts),
		newOfficialCmd(opts),
		newJournalCmd(opts),
		newServeCmd(opts),
	)

	if err := root.Execute(); err != nil {
		printError(fmt.Sprintf("error: %v", err))
		os.Exit(1)
	}
}

// setupLogging installs the default logger. Human-readable text goes to a
// terminal, JSON lines anywhere else. Game commands stay quiet below Warn
// unless --verbose is given.
func setupLogging(opts *options) {
	opts.level.Set(slog.LevelWarn)
	if opts.verbose {
		opts.level.Set(slog.LevelDebug)
	}
	handlerOpts := &slog.HandlerOptions{Level: opts.level}
	var handler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(handler))
}

// session is one open save file and the rules games run under.
type session struct {
	opts *options
	cfg  config.Config
	db   *persistence.DB
	log  *slog.Logger
}

func openSession(opts *options) (*session, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath == "" {
		d := config.Default()
		cfg = &d
	} else if cfg, err = config.LoadAndValidate(opts.configPath); err != nil {
		return nil, err
	}

	if dir := filepath.Dir(opts.dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := persistence.Open(opts.dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &session{opts: opts, cfg: *cfg, db: db, log: slog.Default()}, nil
}

func (s *session) Close() {
	if err := s.db.Close(); err != nil {
		s.log.Warn("close database", "error", err)
	}
}

// activeID returns the slot named by --game or the remembered active game.
func (s *session) activeID() (string, error) {
	if s.opts.gameID != "" {
		return s.opts.gameID, nil
	}
	id, err := s.db.GetMeta(persistence.MetaActiveGame)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", errors.New("no active game: run `narcosim new` or pass --game")
	}
	return id, nil
}

func (s *session) load() (string, *engine.Game, error) {
	id, err := s.activeID()
	if err != nil {
		return "", nil, err
	}
	g, err := s.db.LoadGame(id, s.cfg, s.log)
	if err != nil {
		return "", nil, err
	}
	return id, g, nil
}

// journal collects log lines produced by one command.
type journal struct {
	entries []persistence.JournalEntry
}

func (j *journal) add(day int, format string, args ...any) {
	j.entries = append(j.entries, persistence.JournalEntry{Day: day, Message: fmt.Sprintf(format, args...)})
}

func (j *journal) addDay(res *engine.DailyUpdateResult) {
	if res == nil {
		return
	}
	for _, msg := range res.LogMessages {
		j.entries = append(j.entries, persistence.JournalEntry{Day: res.Day, Message: msg})
	}
}

// flush writes entries in order, one batch per consecutive day.
func (j *journal) flush(db *persistence.DB, id string) error {
	for start := 0; start < len(j.entries); {
		day := j.entries[start].Day
		end := start
		var lines []string
		for end < len(j.entries) && j.entries[end].Day == day {
			lines = append(lines, j.entries[end].Message)
			end++
		}
		if err := db.AppendJournal(id, day, lines); err != nil {
			return err
		}
		start = end
	}
	return nil
}

// mutate loads the active game, runs fn and saves the result. Nothing is
// written when fn fails.
func mutate(opts *options, fn func(g *engine.Game, j *journal) error) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	id, g, err := s.load()
	if err != nil {
		return err
	}
	j := &journal{}
	if err := fn(g, j); err != nil {
		return err
	}
	if err := s.db.SaveGame(id, g); err != nil {
		return err
	}
	return j.flush(s.db, id)
}

// view loads the active game read-only.
func view(opts *options, fn func(g *engine.Game) error) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	_, g, err := s.load()
	if err != nil {
		return err
	}
	return fn(g)
}
