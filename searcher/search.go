package searcher

import (
	"checkmate/experiments/metrics"
	"checkmate/game"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type Option func(s *Searcher)

// Searcher picks moves with a fixed depth search. It builds a fresh tree on
// every call and is safe for concurrent use.
type Searcher struct {
	goroutines int
	evaluate   game.Evaluate
	normalize  func(game.Move) game.Move

	mu  sync.Mutex // Guards rng
	rng *rand.Rand
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(s *Searcher) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(s *Searcher) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithGoroutines expands the subtrees of the root's children on up to n
// goroutines.
func WithGoroutines(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.goroutines = n
		}
	}
}

// WithMoveNormalizer rewrites every generated move before it enters the tree,
// e.g. game.PromoteToQueen.
func WithMoveNormalizer(normalize func(game.Move) game.Move) Option {
	return func(s *Searcher) {
		if normalize != nil {
			s.normalize = normalize
		}
	}
}

func NewSearcher(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		goroutines: 1,
		evaluate:   game.EvaluateMaterial,
		normalize:  func(m game.Move) game.Move { return m },
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Search returns the best move for side found within maxDepth plies, or nil if
// maxDepth is not positive or there is no legal move.
func (s *Searcher) Search(state game.State, side game.Side, maxDepth int) (game.Move, metrics.SearchMetric) {
	collector := metrics.NewCollector()
	collector.Start(s.goroutines, maxDepth)

	var move game.Move
	if maxDepth > 0 {
		tree := newTree(side)
		if s.goroutines > 1 {
			collector.AddNodes(s.expandParallel(tree, state, maxDepth))
		} else {
			s.expand(tree, state, maxDepth, 0, rootHandle)
			collector.AddNodes(tree.Size())
		}

		candidates, value := tree.candidates()
		collector.SetCandidates(len(candidates), value)

		s.mu.Lock()
		if selected, ok := Select(tree, s.rng); ok {
			move = selected
		}
		s.mu.Unlock()
	}

	metric := collector.Complete()
	log.Info().
		Int("nodes", metric.Nodes).
		Int("depth", maxDepth).
		Msgf("evaluated %d nodes in %.3f seconds", metric.Nodes, metric.Duration.Seconds())
	return move, metric
}

// expand adds a child to parent for every legal move of state and recurses
// until maxDepth. A non-root node takes the value of its best child once all
// its moves are explored.
func (s *Searcher) expand(tree *Tree, state game.State, maxDepth, depth int, parent handle) {
	if depth == maxDepth {
		return
	}

	for _, move := range state.LegalMoves() {
		move = s.normalize(move)
		child, exists := tree.child(parent, move)
		if exists {
			p, c := &tree.nodes[parent], &tree.nodes[child]
			if p.valued && c.value < p.value {
				continue
			}
		}

		next := state.Play(move)
		if !exists {
			child = tree.addChild(parent, move, next.Turn(), s.evaluate(next, tree.side))
		}
		s.expand(tree, next, maxDepth, depth+1, child)
	}

	if depth != 0 {
		if best, ok := tree.best(parent); ok {
			tree.setValue(parent, tree.nodes[best].value)
		}
	}
}

type subtree struct {
	child  handle
	state  game.State
	visits int // Times the sequential search would enter this child
	tree   *Tree
}

// expandParallel creates the root's children on the calling goroutine, then
// expands each child's subtree in a tree of its own. Values are merged back
// into the root's children once every subtree is complete. It returns the
// number of nodes below the root.
func (s *Searcher) expandParallel(tree *Tree, state game.State, maxDepth int) int {
	var jobs []*subtree
	byChild := make(map[handle]*subtree)
	for _, move := range state.LegalMoves() {
		move = s.normalize(move)
		if child, exists := tree.child(rootHandle, move); exists {
			byChild[child].visits++
			continue
		}
		next := state.Play(move)
		child := tree.addChild(rootHandle, move, next.Turn(), s.evaluate(next, tree.side))
		job := &subtree{child: child, state: next, visits: 1}
		byChild[child] = job
		jobs = append(jobs, job)
	}

	var g errgroup.Group
	g.SetLimit(s.goroutines)
	for _, job := range jobs {
		job.tree = newSubtree(tree.side, tree.nodes[job.child])
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					move := tree.nodes[job.child].move
					err = fmt.Errorf("failed to expand subtree of %v: %v", move, r)
				}
			}()
			for i := 0; i < job.visits; i++ {
				s.expand(job.tree, job.state, maxDepth, 1, rootHandle)
			}
			return nil
		})
	}
	// Worker panics resurface here, on the caller's goroutine.
	if err := g.Wait(); err != nil {
		panic(err)
	}

	nodes := tree.Size()
	for _, job := range jobs {
		tree.setValue(job.child, job.tree.nodes[rootHandle].value)
		nodes += job.tree.Size()
	}
	return nodes
}
