// meta/meta.go
package meta

// DEPTH defines the default number of plies to search.
const DEPTH = 4

// GO_ROUTINES defines the number of goroutines expanding root subtrees.
const GO_ROUTINES = 1

// MAX_TURNS defines the number of moves after which a game is a draw.
const MAX_TURNS = 300

// NUM_GAMES defines the number of games per experiment matchup.
const NUM_GAMES = 10

const HTTP_ADDR = ":8080"

const LOG_STYLE = "console"

const LOG_LEVEL = "info"

const EXPERIMENTS_DIR = "experiments"
