package server

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrGameExists       = errors.New("game code already exists")
	ErrGameNotFound     = errors.New("game not found")
	ErrGameFull         = errors.New("game is full")
	ErrNotPlaying       = errors.New("game is not in progress")
	ErrAlreadySubmitted = errors.New("word already submitted this round")
)

// maxCodeAttempts bounds regeneration when a fresh code collides with an
// active game. With 26^4 codes a second draw is near-certain to be free.
const maxCodeAttempts = 10

type Store struct {
	mu    sync.Mutex
	games map[string]*Game
}

func NewStore() *Store {
	return &Store{
		games: make(map[string]*Game),
	}
}

// CreateGame inserts a new waiting game under a freshly generated code,
// retrying generation on collision.
func (s *Store) CreateGame(creatorID, creatorName string, totalRounds int) (*Game, error) {
	for range maxCodeAttempts {
		game, err := s.InsertGame(newGameCode(), creatorID, creatorName, totalRounds)
		if errors.Is(err, ErrGameExists) {
			continue
		}
		return game, err
	}
	return nil, ErrGameExists
}

// InsertGame inserts a new waiting game under an explicit code. Fails with
// ErrGameExists when the code is already active.
func (s *Store) InsertGame(code, creatorID, creatorName string, totalRounds int) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[code]; ok {
		return nil, ErrGameExists
	}
	game := &Game{
		Code:         code,
		State:        stateWaiting,
		Players:      []Player{{ID: creatorID, Name: creatorName}},
		CurrentRound: 1,
		TotalRounds:  totalRounds,
		Responses:    make(map[string]string),
		Scores:       map[string]int{creatorID: 0},
		// Resolved until startRound opens round 1, so words submitted
		// before the round is broadcast are dropped.
		RoundResolved: true,
	}
	s.games[code] = game
	return game, nil
}

// JoinGame appends the second player and moves the game to playing,
// returning both display names in join order. Names are captured under the
// lock because RemovePlayer rewrites the player slice in place. The caller
// is responsible for starting round 1 afterwards.
func (s *Store) JoinGame(code, joinerID, joinerName string) (player1, player2 string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[code]
	if !ok {
		return "", "", ErrGameNotFound
	}
	if len(game.Players) >= 2 {
		return "", "", ErrGameFull
	}
	game.Players = append(game.Players, Player{ID: joinerID, Name: joinerName})
	game.Scores[joinerID] = 0
	game.State = statePlaying
	return game.Players[0].Name, game.Players[1].Name, nil
}

// SubmitWord records a player's word for the current round, first submission
// wins. The returned round number stamps the round the word landed in, and
// complete reports whether both players have now responded. Duplicate and
// late submissions (round already resolved) return ErrAlreadySubmitted and
// leave state untouched.
func (s *Store) SubmitWord(code, playerID, word string) (round int, complete bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[code]
	if !ok {
		return 0, false, ErrGameNotFound
	}
	if game.State != statePlaying {
		return 0, false, ErrNotPlaying
	}
	if !game.hasPlayer(playerID) {
		return 0, false, ErrGameNotFound
	}
	if game.RoundResolved {
		return 0, false, ErrAlreadySubmitted
	}
	if _, dup := game.Responses[playerID]; dup {
		return 0, false, ErrAlreadySubmitted
	}
	game.Responses[playerID] = word
	return game.CurrentRound, len(game.Responses) == 2, nil
}

// PlayerRemoval describes one game affected by a disconnect.
type PlayerRemoval struct {
	Code    string
	Emptied bool
}

// RemovePlayer drops the player from every game holding it. Games left with
// no players are deleted outright; games left with one player keep their
// current state and keep waiting on round timers.
func (s *Store) RemovePlayer(playerID string) []PlayerRemoval {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removals []PlayerRemoval
	for code, game := range s.games {
		if !game.hasPlayer(playerID) {
			continue
		}
		players := game.Players[:0]
		for _, p := range game.Players {
			if p.ID != playerID {
				players = append(players, p)
			}
		}
		game.Players = players
		delete(game.Scores, playerID)
		delete(game.Responses, playerID)

		emptied := len(game.Players) == 0
		if emptied {
			delete(s.games, code)
		}
		removals = append(removals, PlayerRemoval{Code: code, Emptied: emptied})
	}
	return removals
}

func (s *Store) GetGame(code string) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[code]
	return game, ok
}

// UpdateGame mutates a game under the store lock. The update func returning
// an error leaves the error with the caller; the game itself is returned for
// reads after the lock is released.
func (s *Store) UpdateGame(code string, update func(game *Game) error) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[code]
	if !ok {
		return nil, ErrGameNotFound
	}
	if err := update(game); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *Store) RemoveGame(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, code)
}

func (s *Store) ListGameSummaries() []GameSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]GameSummary, 0, len(s.games))
	for _, game := range s.games {
		list = append(list, GameSummary{
			Code:    game.Code,
			State:   game.State,
			Round:   game.CurrentRound,
			Rounds:  game.TotalRounds,
			Players: len(game.Players),
		})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Code < list[j].Code
	})
	return list
}
