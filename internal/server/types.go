package server

const (
	stateWaiting  = "waiting"
	statePlaying  = "playing"
	stateFinished = "finished"
)

// Literal reported in round_over for a player who never submitted a word.
const noResponseWord = "No response"

type GameSummary struct {
	Code    string
	State   string
	Round   int
	Rounds  int
	Players int
}

type Game struct {
	Code          string
	State         string
	Players       []Player
	CurrentRound  int
	TotalRounds   int
	Prompt        string
	Responses     map[string]string
	Scores        map[string]int
	RoundResolved bool
}

// Player order is join order: Players[0] is player1, Players[1] is player2.
type Player struct {
	ID   string
	Name string
}

func (g *Game) hasPlayer(id string) bool {
	for _, p := range g.Players {
		if p.ID == id {
			return true
		}
	}
	return false
}
