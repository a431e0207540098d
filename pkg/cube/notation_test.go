package cube

import (
	"errors"
	"testing"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		in      string
		want    Move
		wantErr bool
	}{
		{"U", U, false},
		{"D'", DPrime, false},
		{"F2", F2, false},
		{"B", B, false},
		{"L'", LPrime, false},
		{"R2", R2, false},
		{"", Move{}, true},
		{"X", Move{}, true},
		{"u", Move{}, true},
		{"U3", Move{}, true},
		{"U'2", Move{}, true},
		{"R''", Move{}, true},
		{"2", Move{}, true},
		{" R", Move{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMove(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidMove) {
					t.Errorf("ParseMove(%q) error = %v, want ErrInvalidMove", tc.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMove(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseMove(%q) = %v, want %v", tc.in, got, tc.want)
			}
			if got.String() != tc.in {
				t.Errorf("String() = %q, want %q", got.String(), tc.in)
			}
		})
	}
}

func TestParseAlgorithm(t *testing.T) {
	moves, err := ParseAlgorithm("  R U R'\tU'  F2 ")
	if err != nil {
		t.Fatalf("ParseAlgorithm: %v", err)
	}
	want := []Move{R, U, RPrime, UPrime, F2}
	if len(moves) != len(want) {
		t.Fatalf("got %d moves, want %d", len(moves), len(want))
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("move %d = %v, want %v", i, moves[i], want[i])
		}
	}
	if got := FormatAlgorithm(moves); got != "R U R' U' F2" {
		t.Errorf("FormatAlgorithm = %q", got)
	}

	if _, err := ParseAlgorithm("R U Q"); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("bad algorithm error = %v, want ErrInvalidMove", err)
	}
	if moves, err := ParseAlgorithm(""); err != nil || len(moves) != 0 {
		t.Errorf("empty algorithm = %v, %v", moves, err)
	}
}

func TestQuarterTurnsAndInverse(t *testing.T) {
	tests := []struct {
		m        Move
		quarters int
		inverse  Move
	}{
		{U, 1, UPrime},
		{UPrime, 3, U},
		{U2, 2, U2},
	}
	for _, tc := range tests {
		if got := tc.m.QuarterTurns(); got != tc.quarters {
			t.Errorf("%v.QuarterTurns() = %d, want %d", tc.m, got, tc.quarters)
		}
		if got := tc.m.Inverse(); got != tc.inverse {
			t.Errorf("%v.Inverse() = %v, want %v", tc.m, got, tc.inverse)
		}
	}
	if len(AllMoves) != 18 {
		t.Errorf("len(AllMoves) = %d, want 18", len(AllMoves))
	}
}
