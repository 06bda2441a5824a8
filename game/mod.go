package game

import (
	"fmt"
	"strings"
)

// Side identifies one of the two players.
type Side int

const (
	White Side = iota
	Black
)

func (s Side) Other() Side {
	if s == White {
		return Black
	}
	return White
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

// ParseSide accepts "white"/"w" and "black"/"b" in any case.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return White, fmt.Errorf("unknown side %q", s)
}

// Kind is the type of a piece, independent of its side.
type Kind int

const (
	Pawn Kind = iota + 1
	Knight
	Bishop
	Rook
	Queen
	King
)

type Square int

type Piece struct {
	Side Side
	Kind Kind
}

// Move identifies a legal transition between two states. Implementations must
// be comparable since moves key the search tree's children.
type Move interface {
	String() string
}

// State should be immutable - operations on State always return a new copy
type State interface {
	Turn() Side
	LegalMoves() []Move
	Play(Move) State
	InCheck() bool
	IsCheckmate() bool
	Pieces() map[Square]Piece
}

// Evaluate scores a state from side's perspective: positive is good for side.
type Evaluate func(state State, side Side) float64
