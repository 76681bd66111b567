// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines to use.
const GO_ROUTINES = 8

// EPISODES defines the number of episodes for MCTS.
const EPISODES = 150

// WITH_CUTOFF defines the cutoff value for MCTS.
const WITH_CUTOFF = 100

// MAX_TURNS ends a game that nobody won before it.
const MAX_TURNS = 400

// MIN_PLAYERS and MAX_PLAYERS bound a table.
const (
	MIN_PLAYERS = 2
	MAX_PLAYERS = 6
)

// ADDR is where the websocket server listens by default.
const ADDR = ":8080"
