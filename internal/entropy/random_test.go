package entropy

import "testing"

func TestSourceDeterministic(t *testing.T) {
	a := New(12345)
	b := New(12345)

	for i := 0; i < 50; i++ {
		if gotA, gotB := a.IntN(100000), b.IntN(100000); gotA != gotB {
			t.Fatalf("mismatch at %d: %d != %d", i, gotA, gotB)
		}
	}
}

func TestSeedWordChangesWithSalt(t *testing.T) {
	if seedWord(99, "a") == seedWord(99, "b") {
		t.Fatal("expected different seed words for different salts")
	}
}

func TestRestoreReplaysSequence(t *testing.T) {
	src := New(7)
	for i := 0; i < 10; i++ {
		src.Float()
	}
	state, err := src.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	restored, err := Restore(state)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	for i := 0; i < 20; i++ {
		if want, got := src.Float(), restored.Float(); want != got {
			t.Fatalf("draw %d: restored %v, want %v", i, got, want)
		}
	}
}

func TestRestoreRejectsGarbage(t *testing.T) {
	if _, err := Restore([]byte("nope")); err == nil {
		t.Fatal("expected error for garbage state")
	}
}

func TestRanges(t *testing.T) {
	src := New(1)
	for i := 0; i < 1000; i++ {
		if v := src.IntBetween(3, 6); v < 3 || v > 6 {
			t.Fatalf("IntBetween(3, 6) = %d", v)
		}
		if v := src.Uniform(0.2, 0.4); v < 0.2 || v >= 0.4 {
			t.Fatalf("Uniform(0.2, 0.4) = %v", v)
		}
	}
	if v := src.IntBetween(5, 5); v != 5 {
		t.Errorf("IntBetween(5, 5) = %d", v)
	}
	if src.Chance(0) {
		t.Error("Chance(0) returned true")
	}
	if !src.Chance(1) {
		t.Error("Chance(1) returned false")
	}
	if got := src.Pick(0); got != -1 {
		t.Errorf("Pick(0) = %d, want -1", got)
	}
}

func TestNewSeedPositive(t *testing.T) {
	for i := 0; i < 10; i++ {
		if s := NewSeed(); s < 0 {
			t.Fatalf("NewSeed() = %d", s)
		}
	}
}

func TestTrendBoundedAndStable(t *testing.T) {
	a := NewTrend(42)
	b := NewTrend(42)
	for ch := 0; ch < 6; ch++ {
		for day := 0; day < 60; day++ {
			v := a.At(ch, day)
			if v < -1 || v > 1 {
				t.Fatalf("At(%d, %d) = %v out of range", ch, day, v)
			}
			if v != b.At(ch, day) {
				t.Fatalf("At(%d, %d) not deterministic", ch, day)
			}
		}
	}
}
