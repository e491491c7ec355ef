// Game state aggregate and the Game handle that owns it.
package engine

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/talgya/narcosim/internal/config"
	"github.com/talgya/narcosim/internal/economy"
	"github.com/talgya/narcosim/internal/entropy"
	"github.com/talgya/narcosim/internal/player"
)

// GameState is everything that changes during a session. It is plain data
// so it can be saved as JSON; Game carries the rules that act on it.
type GameState struct {
	Seed          int64              `json:"seed"`
	Day           int                `json:"day"`
	CurrentRegion string             `json:"current_region"`
	Regions       []*economy.Region  `json:"regions"`
	Rivals        []*Rival           `json:"rivals"`
	Player        *player.Inventory  `json:"player"`
	CryptoPrices  map[string]float64 `json:"crypto_prices"`

	InformantUnavailableUntil int    `json:"informant_unavailable_until"`
	ActiveSeason              string `json:"active_season,omitempty"`

	PendingStop        *PoliceStop  `json:"pending_stop,omitempty"`
	PendingOpportunity *Opportunity `json:"pending_opportunity,omitempty"`

	GameOver string `json:"game_over,omitempty"` // terminal message
	Won      bool   `json:"won"`
}

// Game runs one session. It is not safe for concurrent use; callers
// serialise access the way the CLI and API do.
type Game struct {
	State *GameState

	cfg         config.Config
	rng         *entropy.Source
	trend       *entropy.Trend
	log         *slog.Logger
	regionIndex map[string]*economy.Region
	rivalIndex  map[string]*Rival
}

// New starts a fresh game from cfg with the given seed.
func New(cfg config.Config, seed int64, logger *slog.Logger) *Game {
	g := &Game{
		cfg:   cfg,
		rng:   entropy.New(seed),
		trend: entropy.NewTrend(seed),
		log:   loggerOrDefault(logger),
	}

	st := &GameState{
		Seed:          seed,
		Day:           1,
		CurrentRegion: cfg.Player.StartRegion,
		Player:        player.New(cfg.Player, len(cfg.Debts)),
		CryptoPrices:  make(map[string]float64, len(cfg.Crypto.Coins)),
	}
	for _, def := range cfg.Regions {
		st.Regions = append(st.Regions, economy.NewRegion(def, &g.cfg.Market))
	}
	for _, def := range cfg.Rivals.Definitions {
		st.Rivals = append(st.Rivals, &Rival{
			Name:       def.Name,
			Drug:       def.Drug,
			Region:     def.Region,
			Aggression: def.Aggression,
			Activity:   def.Activity,
		})
	}
	for _, coin := range cfg.Crypto.Coins {
		st.CryptoPrices[coin.Symbol] = coin.Initial
	}
	g.State = st
	g.index()

	for _, r := range st.Regions {
		r.Restock(g.rng)
	}

	g.log.Info("new game",
		"seed", seed,
		"regions", len(st.Regions),
		"rivals", len(st.Rivals),
		"start", st.CurrentRegion,
	)
	return g
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

func (g *Game) index() {
	g.regionIndex = make(map[string]*economy.Region, len(g.State.Regions))
	for _, r := range g.State.Regions {
		g.regionIndex[r.Name] = r
	}
	g.rivalIndex = make(map[string]*Rival, len(g.State.Rivals))
	for _, rv := range g.State.Rivals {
		g.rivalIndex[rv.Name] = rv
	}
}

// Config returns the rules the game runs with.
func (g *Game) Config() *config.Config { return &g.cfg }

// Region returns the named region.
func (g *Game) Region(name string) (*economy.Region, bool) {
	r, ok := g.regionIndex[name]
	return r, ok
}

// CurrentRegion returns the region the player is in.
func (g *Game) CurrentRegion() *economy.Region {
	return g.regionIndex[g.State.CurrentRegion]
}

// Player returns the player's inventory.
func (g *Game) Player() *player.Inventory { return g.State.Player }

// checkActive rejects actions once the game is over or while a police stop
// waits for an answer.
func (g *Game) checkActive() error {
	if g.State.GameOver != "" {
		return fmt.Errorf("%w: %s", ErrGameOver, g.State.GameOver)
	}
	if g.State.PendingStop != nil {
		return ErrPoliceStopPending
	}
	return nil
}

type saveFile struct {
	Version int        `json:"version"`
	State   *GameState `json:"state"`
	RNG     []byte     `json:"rng"`
}

const saveVersion = 1

// MarshalState encodes the state together with the generator position, so
// a restored game continues the same random stream.
func (g *Game) MarshalState() ([]byte, error) {
	rng, err := g.rng.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encode rng: %w", err)
	}
	b, err := json.Marshal(saveFile{Version: saveVersion, State: g.State, RNG: rng})
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return b, nil
}

// Restore rebuilds a game saved with MarshalState.
func Restore(cfg config.Config, data []byte, logger *slog.Logger) (*Game, error) {
	var sf saveFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	if sf.Version != saveVersion {
		return nil, fmt.Errorf("unsupported save version %d", sf.Version)
	}
	if sf.State == nil || sf.State.Player == nil {
		return nil, fmt.Errorf("decode state: missing state")
	}
	rng, err := entropy.Restore(sf.RNG)
	if err != nil {
		return nil, err
	}
	// The save may predate a change to the debt schedule.
	sf.State.Player.MatchDebts(len(cfg.Debts))

	g := &Game{
		State: sf.State,
		cfg:   cfg,
		rng:   rng,
		trend: entropy.NewTrend(sf.State.Seed),
		log:   loggerOrDefault(logger),
	}
	for _, r := range g.State.Regions {
		r.Attach(&g.cfg.Market)
	}
	g.index()
	if _, ok := g.regionIndex[g.State.CurrentRegion]; !ok {
		return nil, fmt.Errorf("decode state: %w: %q", ErrUnknownRegion, g.State.CurrentRegion)
	}
	return g, nil
}
