package agent

import (
	"checkmate/game"
	"checkmate/meta"
	"checkmate/searcher"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// MaxDepth is the default bound on the depth a client may request.
const MaxDepth = meta.DEPTH

type FindMoveRequest struct {
	FEN   string `json:"fen" binding:"required"`
	Side  string `json:"side"`            // Defaults to the side to move
	Depth *int   `json:"depth,omitempty"` // Defaults to the server's depth
}

type FindMoveResponse struct {
	Move       *string `json:"move"` // null if there is no move
	Value      float64 `json:"value"`
	Nodes      int     `json:"nodes"`
	Candidates int     `json:"candidates"`
	DurationMS int64   `json:"duration_ms"`
}

type handler struct {
	searcher *searcher.Searcher
	depth    int
	maxDepth int
}

// NewRouter serves move searches over HTTP for host processes that hold the
// board themselves. Requests deeper than maxDepth are rejected; a maxDepth of
// zero or less means MaxDepth. The default depth is capped at maxDepth.
func NewRouter(s *searcher.Searcher, depth, maxDepth int, allowOrigins []string) *gin.Engine {
	if maxDepth <= 0 {
		maxDepth = MaxDepth
	}
	if depth > maxDepth {
		log.Warn().Msgf("default depth %d exceeds max depth %d, using %d", depth, maxDepth, maxDepth)
		depth = maxDepth
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	h := handler{searcher: s, depth: depth, maxDepth: maxDepth}
	router.GET("/health", Health)
	router.POST("/findmove", h.FindMove)
	return router
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func (h handler) FindMove(c *gin.Context) {
	var req FindMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request: " + err.Error()})
		return
	}

	state, err := game.ParseFEN(req.FEN)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	side := state.Turn()
	if req.Side != "" {
		side, err = game.ParseSide(req.Side)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	depth := h.depth
	if req.Depth != nil {
		depth = *req.Depth
	}
	if depth < 0 || depth > h.maxDepth {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("depth must be between 0 and %d", h.maxDepth)})
		return
	}

	move, metric := h.searcher.Search(state, side, depth)
	resp := FindMoveResponse{
		Value:      metric.Value,
		Nodes:      metric.Nodes,
		Candidates: metric.Candidates,
		DurationMS: metric.Duration.Milliseconds(),
	}
	uci := "none"
	if move != nil {
		uci = move.String()
		resp.Move = &uci
	}

	log.Debug().Str("fen", req.FEN).Str("side", side.String()).Int("depth", depth).Msgf("found move %s", uci)
	c.JSON(http.StatusOK, resp)
}
