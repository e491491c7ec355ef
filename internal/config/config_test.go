package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestDefaultTables(t *testing.T) {
	cfg := Default()

	if len(cfg.Regions) != 9 {
		t.Errorf("len(Regions) = %d, want 9", len(cfg.Regions))
	}
	if got := cfg.DrugTier(DrugCoke); got != 3 {
		t.Errorf("DrugTier(Coke) = %d, want 3", got)
	}
	if got := cfg.DrugTier("Mescaline"); got != 0 {
		t.Errorf("DrugTier(unknown) = %d, want 0", got)
	}
	r, ok := cfg.Region("Airport District")
	if !ok {
		t.Fatal("Region(Airport District) not found")
	}
	if r.Lists(DrugWeed) {
		t.Error("Airport District should not list Weed")
	}
	if _, ok := cfg.Coin("XMR"); !ok {
		t.Error("Coin(XMR) not found")
	}
	if s, ok := cfg.Skill(SkillGhostProtocol); !ok || s.Cost != 5 {
		t.Errorf("Skill(GHOST_PROTOCOL) = %+v, %v", s, ok)
	}
	if got := cfg.Events.Weights.Total(); got != 10 {
		t.Errorf("Weights.Total() = %d, want 10", got)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	yaml := `
player:
  starting_cash: 12000
  capacity: 80
debts:
  - day: 10
    amount: 5000
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Player.StartingCash != 12000 {
		t.Errorf("StartingCash = %v, want 12000", cfg.Player.StartingCash)
	}
	if cfg.Player.Capacity != 80 {
		t.Errorf("Capacity = %d, want 80", cfg.Player.Capacity)
	}
	if cfg.Player.StartRegion != DefaultStartRegion {
		t.Errorf("StartRegion = %q, want default %q", cfg.Player.StartRegion, DefaultStartRegion)
	}
	if len(cfg.Debts) != 1 || cfg.Debts[0].Day != 10 {
		t.Errorf("Debts = %+v, want single payment on day 10", cfg.Debts)
	}
	if len(cfg.Regions) != 9 {
		t.Errorf("Regions should keep defaults, got %d", len(cfg.Regions))
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("NARCOSIM_START", "Docks")

	path := writeTempFile(t, "player:\n  start_region: ${NARCOSIM_START}\n")

	cfg, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}
	if cfg.Player.StartRegion != "Docks" {
		t.Errorf("StartRegion = %q, want Docks", cfg.Player.StartRegion)
	}
}

func TestLoadOrDefaultEmptyPath(t *testing.T) {
	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault(\"\") = %v", err)
	}
	if cfg.Player.StartingCash != DefaultStartingCash {
		t.Errorf("StartingCash = %v, want %v", cfg.Player.StartingCash, DefaultStartingCash)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := writeTempFile(t, "player: [unclosed\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero capacity", func(c *Config) { c.Player.Capacity = 0 }, "player.capacity"},
		{"unknown start region", func(c *Config) { c.Player.StartRegion = "Atlantis" }, "start_region"},
		{"debts out of order", func(c *Config) {
			c.Debts = []DebtPayment{{Day: 30, Amount: 1}, {Day: 15, Amount: 1}}
		}, "strictly increasing"},
		{"bad tier", func(c *Config) { c.Regions[0].Drugs[0].Tier = 9 }, "tier"},
		{"duplicate region", func(c *Config) { c.Regions[1].Name = c.Regions[0].Name }, "duplicate region"},
		{"rival drug not listed", func(c *Config) { c.Rivals.Definitions[0].Region = "Riverside" }, "does not trade"},
		{"zero weights", func(c *Config) { c.Events.Weights = EventWeights{} }, "weights"},
		{"setup direction chance", func(c *Config) { c.Events.TheSetup.BuyDealChance = 1.5 }, "buy_deal_chance"},
		{"zero opportunity weights", func(c *Config) { c.Opportunities.Weights = OpportunityWeights{} }, "opportunities.weights"},
		{"price steps not at zero", func(c *Config) { c.Market.HeatPriceSteps[0].Threshold = 5 }, "threshold 0"},
		{"stable coin missing", func(c *Config) { c.Crypto.StableCoin = "USDT" }, "stable_coin"},
		{"police clamp inverted", func(c *Config) { c.Police.MinChance = 0.9 }, "min_chance"},
		{"stock range inverted", func(c *Config) { c.Market.StockCut = IntRange{Min: 10, Max: 5} }, "stock_cut"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
