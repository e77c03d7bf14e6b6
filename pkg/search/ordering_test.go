package search

import (
	"slices"
	"testing"
)

func TestIdentity(t *testing.T) {
	if got := Identity(4); !slices.Equal(got, []int{0, 1, 2, 3}) {
		t.Errorf("Identity(4) = %v, want [0 1 2 3]", got)
	}
	if got := Identity(0); len(got) != 0 {
		t.Errorf("Identity(0) = %v, want empty", got)
	}
}

func TestRandom_IsPermutation(t *testing.T) {
	for _, n := range []int{1, 5, 20} {
		ord := Random(n, 42)
		if err := ValidateOrdering(ord, n); err != nil {
			t.Errorf("Random(%d, 42) = %v: %v", n, ord, err)
		}
	}
}

func TestRandom_Deterministic(t *testing.T) {
	a := Random(10, 7)
	b := Random(10, 7)
	if !slices.Equal(a, b) {
		t.Errorf("Random(10, 7) = %v then %v, want identical", a, b)
	}

	c := Random(10, 8)
	if slices.Equal(a, c) {
		t.Errorf("Random with seeds 7 and 8 both = %v, want different permutations", a)
	}
}

func TestValidateOrdering(t *testing.T) {
	tests := []struct {
		name     string
		ordering []int
		n        int
		wantErr  bool
	}{
		{"valid", []int{2, 0, 1}, 3, false},
		{"empty for n=0", nil, 0, false},
		{"wrong length", []int{0, 1}, 3, true},
		{"duplicate", []int{0, 1, 1}, 3, true},
		{"negative", []int{0, -1, 2}, 3, true},
		{"out of range", []int{0, 1, 3}, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOrdering(tt.ordering, tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOrdering(%v, %d) = %v, wantErr %v", tt.ordering, tt.n, err, tt.wantErr)
			}
		})
	}
}
