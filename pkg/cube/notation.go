package cube

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMove is returned for notation outside the {face}{'|2}? grammar.
var ErrInvalidMove = errors.New("invalid move")

// Turn is the amount a move rotates its face.
type Turn int

const (
	CW     Turn = iota // clockwise quarter turn
	CCW                // counter-clockwise quarter turn (prime)
	Double             // half turn
)

// Move is one face turn in standard notation.
type Move struct {
	Face Face
	Turn Turn
}

// Predefined moves.
var (
	U      = Move{Face: FaceU, Turn: CW}
	UPrime = Move{Face: FaceU, Turn: CCW}
	U2     = Move{Face: FaceU, Turn: Double}

	D      = Move{Face: FaceD, Turn: CW}
	DPrime = Move{Face: FaceD, Turn: CCW}
	D2     = Move{Face: FaceD, Turn: Double}

	F      = Move{Face: FaceF, Turn: CW}
	FPrime = Move{Face: FaceF, Turn: CCW}
	F2     = Move{Face: FaceF, Turn: Double}

	B      = Move{Face: FaceB, Turn: CW}
	BPrime = Move{Face: FaceB, Turn: CCW}
	B2     = Move{Face: FaceB, Turn: Double}

	L      = Move{Face: FaceL, Turn: CW}
	LPrime = Move{Face: FaceL, Turn: CCW}
	L2     = Move{Face: FaceL, Turn: Double}

	R      = Move{Face: FaceR, Turn: CW}
	RPrime = Move{Face: FaceR, Turn: CCW}
	R2     = Move{Face: FaceR, Turn: Double}
)

// AllMoves is the 18-move set scrambles draw from.
var AllMoves = []Move{
	U, UPrime, U2, D, DPrime, D2,
	F, FPrime, F2, B, BPrime, B2,
	L, LPrime, L2, R, RPrime, R2,
}

// QuarterTurns returns how many clockwise quarter turns the move expands to. A prime
// is three clockwise turns, so every move animates as one to three quarter turns.
func (m Move) QuarterTurns() int {
	switch m.Turn {
	case Double:
		return 2
	case CCW:
		return 3
	default:
		return 1
	}
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	switch m.Turn {
	case CW:
		m.Turn = CCW
	case CCW:
		m.Turn = CW
	}
	return m
}

func (m Move) String() string {
	switch m.Turn {
	case CCW:
		return m.Face.String() + "'"
	case Double:
		return m.Face.String() + "2"
	default:
		return m.Face.String()
	}
}

// ParseMove parses a single move: a face letter from UDFBLR, optionally followed by
// ' (prime) or 2 (double). Nothing else is accepted.
func ParseMove(s string) (Move, error) {
	if len(s) == 0 || len(s) > 2 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	i := strings.IndexByte("UDFBLR", s[0])
	if i < 0 {
		return Move{}, fmt.Errorf("%w: %q: unknown face", ErrInvalidMove, s)
	}
	m := Move{Face: Face(i), Turn: CW}
	if len(s) == 2 {
		switch s[1] {
		case '\'':
			m.Turn = CCW
		case '2':
			m.Turn = Double
		default:
			return Move{}, fmt.Errorf("%w: %q: bad suffix", ErrInvalidMove, s)
		}
	}
	return m, nil
}

// ParseAlgorithm parses whitespace separated moves, e.g. "R U R' U'".
func ParseAlgorithm(s string) ([]Move, error) {
	fields := strings.Fields(s)
	moves := make([]Move, 0, len(fields))
	for i, f := range fields {
		m, err := ParseMove(f)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// FormatAlgorithm joins moves with single spaces.
func FormatAlgorithm(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
