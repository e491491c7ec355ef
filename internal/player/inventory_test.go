package player

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/talgya/narcosim/internal/config"
	"github.com/talgya/narcosim/internal/economy"
)

func newInventory() *Inventory {
	return New(config.Default().Player, 3)
}

func TestNewInventory(t *testing.T) {
	inv := newInventory()
	if inv.Cash() != 5000 {
		t.Errorf("Cash = %v, want 5000", inv.Cash())
	}
	if inv.Capacity() != 150 || inv.FreeSpace() != 150 {
		t.Errorf("Capacity/FreeSpace = %d/%d, want 150/150", inv.Capacity(), inv.FreeSpace())
	}
	if len(inv.DebtPaid) != 3 {
		t.Errorf("len(DebtPaid) = %d, want 3", len(inv.DebtPaid))
	}
	if inv.InformantTrust != 50 {
		t.Errorf("InformantTrust = %d, want 50", inv.InformantTrust)
	}
}

func TestDebit(t *testing.T) {
	inv := newInventory()
	err := inv.Debit(6000)
	if !errors.Is(err, ErrInsufficientCash) {
		t.Fatalf("Debit(6000) = %v, want ErrInsufficientCash", err)
	}
	if got, want := err.Error(), "not enough cash: need $6,000, have $5,000"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
	if inv.Cash() != 5000 {
		t.Errorf("failed debit changed cash to %v", inv.Cash())
	}
	if err := inv.Debit(1999.5); err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if inv.Cash() != 3000.5 {
		t.Errorf("Cash = %v, want 3000.5", inv.Cash())
	}
}

func TestMatchDebts(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []bool
	}{
		{"same", 3, []bool{true, false, false}},
		{"longer", 5, []bool{true, false, false, false, false}},
		{"shorter", 1, []bool{true}},
		{"none", 0, []bool{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newInventory()
			inv.DebtPaid[0] = true
			inv.MatchDebts(tt.n)
			if len(inv.DebtPaid) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(inv.DebtPaid), len(tt.want))
			}
			for i, w := range tt.want {
				if inv.DebtPaid[i] != w {
					t.Errorf("DebtPaid[%d] = %v, want %v", i, inv.DebtPaid[i], w)
				}
			}
		})
	}
}

func TestAddRemoveDrug(t *testing.T) {
	inv := newInventory()

	if err := inv.AddDrug("Coke", economy.QualityPure, 100); err != nil {
		t.Fatalf("AddDrug: %v", err)
	}
	if err := inv.AddDrug("Weed", economy.QualityStandard, 51); !errors.Is(err, ErrInsufficientSpace) {
		t.Errorf("AddDrug over capacity = %v, want ErrInsufficientSpace", err)
	}
	if err := inv.AddDrug("Weed", economy.QualityStandard, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("AddDrug(0) = %v, want ErrInvalidQuantity", err)
	}
	if inv.Load() != 100 {
		t.Errorf("Load = %d, want 100", inv.Load())
	}

	if err := inv.RemoveDrug("Coke", economy.QualityPure, 101); !errors.Is(err, ErrInsufficientDrugs) {
		t.Errorf("RemoveDrug(101) = %v, want ErrInsufficientDrugs", err)
	}
	if err := inv.RemoveDrug("Coke", economy.QualityPure, 100); err != nil {
		t.Fatalf("RemoveDrug: %v", err)
	}
	if inv.HasDrugs() || len(inv.Lots()) != 0 {
		t.Errorf("inventory not empty: %v", inv.Lots())
	}
}

func TestLotsSorted(t *testing.T) {
	inv := newInventory()
	_ = inv.AddDrug("Weed", economy.QualityStandard, 5)
	_ = inv.AddDrug("Coke", economy.QualityPure, 2)
	_ = inv.AddDrug("Coke", economy.QualityCut, 3)

	want := []Lot{
		{Drug: "Coke", Quality: economy.QualityCut, Quantity: 3},
		{Drug: "Coke", Quality: economy.QualityPure, Quantity: 2},
		{Drug: "Weed", Quality: economy.QualityStandard, Quantity: 5},
	}
	got := inv.Lots()
	if len(got) != len(want) {
		t.Fatalf("Lots = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Lots[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if inv.DrugTotal("Coke") != 5 {
		t.Errorf("DrugTotal(Coke) = %d, want 5", inv.DrugTotal("Coke"))
	}
}

func TestCrypto(t *testing.T) {
	inv := newInventory()
	if err := inv.AddCrypto("BTC", 1.5); err != nil {
		t.Fatalf("AddCrypto: %v", err)
	}
	if err := inv.RemoveCrypto("BTC", 2); !errors.Is(err, ErrInsufficientCrypto) {
		t.Errorf("RemoveCrypto(2) = %v, want ErrInsufficientCrypto", err)
	}
	if err := inv.RemoveCrypto("BTC", 1.5); err != nil {
		t.Fatalf("RemoveCrypto: %v", err)
	}
	if len(inv.Wallets()) != 0 {
		t.Errorf("Wallets = %v, want empty", inv.Wallets())
	}
}

func TestInventoryJSONRoundTrip(t *testing.T) {
	inv := newInventory()
	_ = inv.AddDrug("Pills", economy.QualityCut, 12)
	_ = inv.AddCrypto("DC", 3)
	inv.Skills["GHOST_PROTOCOL"] = true
	inv.Laundering = &Laundering{Amount: 900, ArrivalDay: 9}

	b, err := json.Marshal(inv)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got := &Inventory{}
	if err := json.Unmarshal(b, got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Cash() != 5000 || got.Quantity("Pills", economy.QualityCut) != 12 || got.Crypto("DC") != 3 {
		t.Errorf("restored inventory = cash %v pills %d dc %v", got.Cash(), got.Quantity("Pills", economy.QualityCut), got.Crypto("DC"))
	}
	if !got.HasSkill("GHOST_PROTOCOL") || got.Laundering == nil || got.Laundering.ArrivalDay != 9 {
		t.Error("restored inventory lost skills or laundering")
	}
	if got.Capacity() != 150 {
		t.Errorf("Capacity = %d, want 150", got.Capacity())
	}
}
