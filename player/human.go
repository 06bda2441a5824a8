package player

import (
	"bufio"
	"checkmate/experiments/metrics"
	"checkmate/game"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrQuit = errors.New("player quit")

// Human reads moves in UCI notation (e2e4, e7e8q) from a terminal.
type Human struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewHuman(in io.Reader, out io.Writer) *Human {
	return &Human{in: bufio.NewScanner(in), out: out}
}

// FindMove draws the board and prompts until a legal move is entered. A bare
// promotion is promoted to a queen.
func (h *Human) FindMove(state game.State) (game.Move, metrics.SearchMetric, error) {
	collector := metrics.NewDummyCollector()
	collector.Start(0, 0)

	cs, ok := state.(*game.ChessState)
	if !ok {
		return nil, collector.Complete(), fmt.Errorf("human player needs a chess state, got %T", state)
	}
	if len(cs.LegalMoves()) == 0 {
		return nil, collector.Complete(), nil
	}

	fmt.Fprint(h.out, cs.Draw())
	for {
		fmt.Fprintf(h.out, "%s to move: ", cs.Turn())
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return nil, collector.Complete(), fmt.Errorf("failed to read move: %w", err)
			}
			return nil, collector.Complete(), ErrQuit
		}

		input := strings.TrimSpace(h.in.Text())
		switch input {
		case "":
			continue
		case "quit", "resign":
			return nil, collector.Complete(), ErrQuit
		}

		move, err := game.ParseMove(cs, input)
		if err != nil {
			fmt.Fprintf(h.out, "%v, try again\n", err)
			continue
		}
		return move, collector.Complete(), nil
	}
}
