package game

import (
	"fmt"
	"strings"
	"sync"

	"github.com/notnil/chess"
)

// ChessMove is a comparable chess move, printed in UCI notation.
type ChessMove struct {
	From  chess.Square
	To    chess.Square
	Promo chess.PieceType
}

var promoLetters = map[chess.PieceType]string{
	chess.Queen:  "q",
	chess.Rook:   "r",
	chess.Bishop: "b",
	chess.Knight: "n",
}

func (m ChessMove) String() string {
	return m.From.String() + m.To.String() + promoLetters[m.Promo]
}

// PromoteToQueen turns any promotion into a queen promotion and leaves other
// moves untouched.
func PromoteToQueen(m Move) Move {
	cm, ok := m.(ChessMove)
	if !ok || cm.Promo == chess.NoPieceType {
		return m
	}
	cm.Promo = chess.Queen
	return cm
}

// ChessState adapts a notnil/chess position to State.
type ChessState struct {
	pos   *chess.Position
	check bool

	once  sync.Once
	moves map[ChessMove]*chess.Move
	order []Move
}

func StartingState() *ChessState {
	return &ChessState{pos: chess.StartingPosition()}
}

// ParseFEN decodes a position.
func ParseFEN(fen string) (*ChessState, error) {
	opt, err := chess.FEN(strings.TrimSpace(fen))
	if err != nil {
		return nil, fmt.Errorf("failed to parse fen: %w", err)
	}
	pos := chess.NewGame(opt).Position()
	return &ChessState{
		pos:   pos,
		check: attacked(pos),
	}, nil
}

// attacked reports whether the king of the side to move is attacked. The
// library keeps this to itself, so the position is decoded again with the
// opponent to move and searched for a move landing on the king.
func attacked(pos *chess.Position) bool {
	if pos.Status() == chess.Checkmate {
		return true
	}

	king := chess.NoSquare
	board := pos.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		if p := board.Piece(sq); p.Type() == chess.King && p.Color() == pos.Turn() {
			king = sq
			break
		}
	}
	if king == chess.NoSquare {
		return false
	}

	fields := strings.Fields(pos.String())
	if len(fields) < 4 {
		return false
	}
	fields[1] = pos.Turn().Other().String()
	fields[3] = "-" // En passant belongs to the real side to move
	opt, err := chess.FEN(strings.Join(fields, " "))
	if err != nil {
		return false
	}
	for _, m := range chess.NewGame(opt).Position().ValidMoves() {
		if m.S2() == king {
			return true
		}
	}
	return false
}

func (s *ChessState) load() {
	s.once.Do(func() {
		valid := s.pos.ValidMoves()
		s.moves = make(map[ChessMove]*chess.Move, len(valid))
		s.order = make([]Move, 0, len(valid))
		for _, m := range valid {
			cm := ChessMove{From: m.S1(), To: m.S2(), Promo: m.Promo()}
			s.moves[cm] = m
			s.order = append(s.order, cm)
		}
	})
}

func (s *ChessState) Turn() Side {
	if s.pos.Turn() == chess.Black {
		return Black
	}
	return White
}

func (s *ChessState) LegalMoves() []Move {
	s.load()
	return append([]Move(nil), s.order...)
}

func (s *ChessState) Play(move Move) State {
	cm, ok := move.(ChessMove)
	if !ok {
		panic("unexpected move type")
	}
	s.load()
	m, ok := s.moves[cm]
	if !ok {
		panic(fmt.Sprintf("illegal move %s", cm))
	}
	return &ChessState{
		pos:   s.pos.Update(m),
		check: m.HasTag(chess.Check),
	}
}

func (s *ChessState) InCheck() bool {
	return s.check
}

func (s *ChessState) IsCheckmate() bool {
	s.load()
	return len(s.order) == 0 && s.check
}

func (s *ChessState) Pieces() map[Square]Piece {
	squares := s.pos.Board().SquareMap()
	pieces := make(map[Square]Piece, len(squares))
	for sq, p := range squares {
		if p == chess.NoPiece {
			continue
		}
		side := White
		if p.Color() == chess.Black {
			side = Black
		}
		pieces[Square(sq)] = Piece{Side: side, Kind: kindOf(p.Type())}
	}
	return pieces
}

// Material sums the weighted pieces of side and of its opponent without
// building the Pieces map.
func (s *ChessState) Material(side Side) (own, other float64) {
	board := s.pos.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		p := board.Piece(sq)
		if p == chess.NoPiece {
			continue
		}
		if (p.Color() == chess.Black) == (side == Black) {
			own += weights[kindOf(p.Type())]
		} else {
			other += weights[kindOf(p.Type())]
		}
	}
	return own, other
}

func kindOf(t chess.PieceType) Kind {
	switch t {
	case chess.Pawn:
		return Pawn
	case chess.Knight:
		return Knight
	case chess.Bishop:
		return Bishop
	case chess.Rook:
		return Rook
	case chess.Queen:
		return Queen
	case chess.King:
		return King
	}
	panic(fmt.Sprintf("unexpected piece type %v", t))
}

// FEN encodes the position in Forsyth-Edwards notation.
func (s *ChessState) FEN() string {
	return s.pos.String()
}

func (s *ChessState) Draw() string {
	return s.pos.Board().Draw()
}

// ParseMove finds the legal move written in UCI notation. A promotion without a
// piece letter promotes to a queen.
func ParseMove(s *ChessState, uci string) (ChessMove, error) {
	uci = strings.ToLower(strings.TrimSpace(uci))
	for _, m := range s.LegalMoves() {
		if m.String() == uci {
			return m.(ChessMove), nil
		}
	}
	if len(uci) == 4 {
		for _, m := range s.LegalMoves() {
			if m.String() == uci+"q" {
				return m.(ChessMove), nil
			}
		}
	}
	return ChessMove{}, fmt.Errorf("illegal move %q", uci)
}
