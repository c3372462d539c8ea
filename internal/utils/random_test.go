package utils

import (
	"bytes"
	"strings"
	"testing"
)

// draw consumes one value from every Source method the generators call
func draw(s Source) []any {
	buf := make([]byte, 13)
	s.Read(buf)
	return []any{
		s.IntN(1000),
		s.IntRange(-5, 5),
		s.Int64Range(100, 1_000_000),
		s.Float64(),
		s.Float64Range(0.8, 1.2),
		s.NormalFloat64(),
		s.Probability(0.3),
		s.PickString([]string{"Chase", "Wells Fargo", "Citi"}),
		s.WeightedPick([]int{1, 1, 2, 0, 1}),
		s.String(12),
		s.NumericString(10),
		string(buf),
	}
}

func sameDraws(t *testing.T, a, b Source, rounds int) bool {
	t.Helper()
	for i := 0; i < rounds; i++ {
		da, db := draw(a), draw(b)
		for j := range da {
			if da[j] != db[j] {
				t.Logf("round %d value %d: %v != %v", i, j, da[j], db[j])
				return false
			}
		}
	}
	return true
}

func TestRandomSeeded(t *testing.T) {
	if !sameDraws(t, NewRandom(20250615), NewRandom(20250615), 200) {
		t.Error("Equal seeds should produce equal streams")
	}
	if sameDraws(t, NewRandom(1), NewRandom(2), 5) {
		t.Error("Different seeds should produce different streams")
	}

	if got := NewRandom(12345).Seed(); got != 12345 {
		t.Errorf("Seed() = %d, want 12345", got)
	}
	if NewRandom(0).Seed() == 0 {
		t.Error("Seed 0 should be replaced by a random non-zero seed")
	}
}

func TestRandomForkN(t *testing.T) {
	a := NewRandom(99).ForkN(4)
	b := NewRandom(99).ForkN(4)
	if len(a) != 4 {
		t.Fatalf("ForkN(4) returned %d streams", len(a))
	}

	seeds := map[uint64]bool{}
	for i := range a {
		if !sameDraws(t, a[i], b[i], 50) {
			t.Errorf("Fork %d differs between parents with the same seed", i)
		}
		seeds[a[i].Seed()] = true
	}
	if len(seeds) != len(a) {
		t.Errorf("Forks share seeds: %d distinct of %d", len(seeds), len(a))
	}

	if got := NewRandom(99).ForkN(0); len(got) != 0 {
		t.Errorf("ForkN(0) returned %d streams", len(got))
	}
}

func TestRandomBounds(t *testing.T) {
	rng := NewRandom(7)

	tests := []struct {
		name string
		ok   func() bool
	}{
		{"IntN", func() bool { v := rng.IntN(10); return v >= 0 && v < 10 }},
		{"IntN non-positive", func() bool { return rng.IntN(0) == 0 && rng.IntN(-3) == 0 }},
		{"IntRange", func() bool { v := rng.IntRange(10, 20); return v >= 10 && v <= 20 }},
		{"IntRange collapsed", func() bool { return rng.IntRange(5, 5) == 5 && rng.IntRange(9, 3) == 9 }},
		{"Int64Range", func() bool { v := rng.Int64Range(-100, 100); return v >= -100 && v <= 100 }},
		{"Float64", func() bool { v := rng.Float64(); return v >= 0 && v < 1 }},
		{"Float64Range", func() bool { v := rng.Float64Range(1.5, 2.5); return v >= 1.5 && v < 2.5 }},
		{"Float64Range collapsed", func() bool { return rng.Float64Range(3, 1) == 3 }},
		{"Probability 0", func() bool { return !rng.Probability(0) && !rng.Probability(-1) }},
		{"Probability 1", func() bool { return rng.Probability(1) && rng.Probability(2) }},
		{"PickString empty", func() bool { return rng.PickString(nil) == "" }},
		{"WeightedPick empty", func() bool { return rng.WeightedPick(nil) == -1 }},
		{"WeightedPick zero weights", func() bool { v := rng.WeightedPick([]int{0, 0, 0}); return v >= 0 && v < 3 }},
		{"WeightedPick skips zero weight", func() bool { return rng.WeightedPick([]int{0, 4, 0}) == 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 500; i++ {
				if !tt.ok() {
					t.Fatalf("Out of range on draw %d", i)
				}
			}
		})
	}
}

func TestRandomStrings(t *testing.T) {
	rng := NewRandom(3)

	tests := []struct {
		name    string
		gen     func(int) string
		charset string
	}{
		{"String", rng.String, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"},
		{"NumericString", rng.NumericString, "0123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, n := range []int{0, 1, 10, 37} {
				s := tt.gen(n)
				if len(s) != n {
					t.Errorf("Length %d, want %d", len(s), n)
				}
				if i := strings.IndexFunc(s, func(r rune) bool { return !strings.ContainsRune(tt.charset, r) }); i >= 0 {
					t.Errorf("Unexpected character %q in %q", s[i], s)
				}
			}
		})
	}
}

func TestRandomDistributions(t *testing.T) {
	rng := NewRandom(42)
	const n = 20000

	hits := 0
	for i := 0; i < n; i++ {
		if rng.Probability(0.25) {
			hits++
		}
	}
	if ratio := float64(hits) / n; ratio < 0.22 || ratio > 0.28 {
		t.Errorf("Probability(0.25) hit %.3f", ratio)
	}

	counts := make([]int, 3)
	for i := 0; i < n; i++ {
		counts[rng.WeightedPick([]int{1, 2, 7})]++
	}
	if share := float64(counts[2]) / n; share < 0.66 || share > 0.74 {
		t.Errorf("Weight 7 of 10 drew %.3f", share)
	}

	seen := map[string]bool{}
	pool := []string{"ACH", "Wire", "Check", "Card"}
	for i := 0; i < 400; i++ {
		seen[rng.PickString(pool)] = true
	}
	if len(seen) != len(pool) {
		t.Errorf("PickString reached %d of %d values", len(seen), len(pool))
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += rng.NormalFloat64()
	}
	if mean := sum / n; mean < -0.05 || mean > 0.05 {
		t.Errorf("NormalFloat64 mean %.3f", mean)
	}
}

func TestRandomRead(t *testing.T) {
	a, b := make([]byte, 21), make([]byte, 21)
	n, err := NewRandom(42).Read(a)
	if err != nil || n != len(a) {
		t.Fatalf("Read returned n=%d err=%v", n, err)
	}
	if _, err := NewRandom(42).Read(b); err != nil {
		t.Fatalf("Read returned err=%v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("Read differs for equal seeds")
	}
	if bytes.Equal(a, make([]byte, len(a))) {
		t.Error("Read produced only zero bytes")
	}
}
