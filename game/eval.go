package game

const (
	CheckmateScore = 3.0
	CheckScore     = 2.0
	// SaturatedScore stands in for an infinite material ratio when the
	// opponent has nothing left on the board.
	SaturatedScore = 1e6
)

var weights = [...]float64{
	Pawn:   1,
	Knight: 2,
	Bishop: 3,
	Rook:   4,
	Queen:  5,
	King:   6,
}

// EvaluateMaterial scores a state from side's perspective. The score is first
// computed for the side to move (mated -3, in check -2, otherwise the ratio of
// its material to the opponent's) and then negated if side is not to move, so
// EvaluateMaterial(s, side) == -EvaluateMaterial(s, side.Other()).
func EvaluateMaterial(state State, side Side) float64 {
	score := evaluateMover(state)
	if side != state.Turn() {
		return -score
	}
	return score
}

func evaluateMover(state State) float64 {
	if state.IsCheckmate() {
		return -CheckmateScore
	}
	if state.InCheck() {
		return -CheckScore
	}

	own, other := Material(state, state.Turn())
	if other == 0 {
		return SaturatedScore
	}
	return own / other
}

// MaterialCounter is implemented by states that can sum material faster than
// walking Pieces.
type MaterialCounter interface {
	Material(side Side) (own, other float64)
}

// Material sums the weighted pieces of side and of its opponent.
func Material(state State, side Side) (own, other float64) {
	if mc, ok := state.(MaterialCounter); ok {
		return mc.Material(side)
	}
	for _, piece := range state.Pieces() {
		if piece.Side == side {
			own += weights[piece.Kind]
		} else {
			other += weights[piece.Kind]
		}
	}
	return own, other
}
