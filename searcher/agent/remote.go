package agent

import (
	"bytes"
	"checkmate/experiments/metrics"
	"checkmate/game"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type remoteAgent struct {
	url    string
	depth  *int
	client *http.Client
}

// NewRemoteAgent returns an agent that asks the server at url for moves. A
// depth of zero or less leaves the depth to the server.
func NewRemoteAgent(url string, depth int, client *http.Client) Agent {
	if client == nil {
		client = http.DefaultClient
	}
	a := remoteAgent{url: url, client: client}
	if depth > 0 {
		a.depth = &depth
	}
	return a
}

// FindMove posts the position to /findmove and matches the answer against the
// legal moves of state.
func (a remoteAgent) FindMove(state game.State) (game.Move, metrics.SearchMetric, error) {
	start := time.Now()
	cs, ok := state.(*game.ChessState)
	if !ok {
		return nil, metrics.SearchMetric{}, fmt.Errorf("remote agent needs a chess state, got %T", state)
	}

	body, err := json.Marshal(FindMoveRequest{
		FEN:   cs.FEN(),
		Side:  cs.Turn().String(),
		Depth: a.depth,
	})
	if err != nil {
		return nil, metrics.SearchMetric{}, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := a.client.Post(a.url+"/findmove", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, metrics.SearchMetric{}, fmt.Errorf("failed to request move: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return nil, metrics.SearchMetric{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, out)
	}

	var found FindMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&found); err != nil {
		return nil, metrics.SearchMetric{}, fmt.Errorf("failed to decode move: %w", err)
	}

	metric := metrics.SearchMetric{
		Duration:   time.Since(start),
		Nodes:      found.Nodes,
		Candidates: found.Candidates,
		Value:      found.Value,
	}
	if a.depth != nil {
		metric.Depth = *a.depth
	}
	if found.Move == nil {
		return nil, metric, nil
	}

	move, err := game.ParseMove(cs, *found.Move)
	if err != nil {
		return nil, metric, fmt.Errorf("agent returned an illegal move: %w", err)
	}
	return move, metric, nil
}
