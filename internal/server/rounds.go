package server

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"
)

// startRound opens the given round: responses cleared, a new prompt
// fetched and stored, new_round broadcast, and the round timeout scheduled.
// The prompt fetch happens before the store lock is taken so a slow image
// source never blocks submissions or disconnects; the stamp plus the
// resolved flag make a lingering start for an already-open or already-passed
// round a no-op.
func (s *Server) startRound(code string, round int) {
	if _, ok := s.store.GetGame(code); !ok {
		return
	}

	prompt, err := s.prompts.Fetch(context.Background())
	if err != nil {
		log.Printf("prompt fetch failed game_code=%s error=%v", code, err)
		prompt = ""
	}

	_, err = s.store.UpdateGame(code, func(game *Game) error {
		if game.State != statePlaying || game.CurrentRound != round || !game.RoundResolved {
			return errors.New("round already started")
		}
		game.Prompt = prompt
		game.Responses = make(map[string]string)
		game.RoundResolved = false
		return nil
	})
	if err != nil {
		return
	}

	log.Printf("round started game_code=%s round=%d", code, round)
	s.hub.Broadcast(code, newRoundEvent{
		Type:         eventNewRound,
		Prompt:       prompt,
		CurrentRound: round,
	})
	s.scheduleRoundTimeout(code, round)
}

// resolveRound settles the round stamped expectedRound. Both triggers (second
// submission, round timeout) funnel here; the stamp plus the resolved flag
// make whichever fires second a no-op.
func (s *Server) resolveRound(code string, expectedRound int) {
	var result roundOverEvent
	var finished bool
	var next int
	_, err := s.store.UpdateGame(code, func(game *Game) error {
		if game.State != statePlaying || game.CurrentRound != expectedRound || game.RoundResolved {
			return errors.New("round already resolved")
		}

		words := make([]string, 2)
		present := make([]bool, 2)
		for i := range words {
			if i < len(game.Players) {
				words[i], present[i] = game.Responses[game.Players[i].ID]
			}
		}

		match := present[0] && present[1] && strings.EqualFold(words[0], words[1])
		if match {
			for _, p := range game.Players {
				game.Scores[p.ID]++
			}
		}

		for i := range words {
			if !present[i] {
				words[i] = noResponseWord
			}
		}
		result = roundOverEvent{
			Type:        eventRoundOver,
			Match:       match,
			Player1Word: words[0],
			Player2Word: words[1],
		}

		game.RoundResolved = true
		game.CurrentRound++
		next = game.CurrentRound
		if game.CurrentRound > game.TotalRounds {
			game.State = stateFinished
			finished = true
		}
		return nil
	})
	if err != nil {
		return
	}

	log.Printf("round resolved game_code=%s round=%d match=%t", code, expectedRound, result.Match)
	s.hub.Broadcast(code, result)

	if finished {
		s.scheduleGameOver(code)
	} else {
		s.scheduleNextRound(code, next)
	}
}

// finishGame emits the final similarity score and tears the room down.
func (s *Server) finishGame(code string) {
	var score int
	_, err := s.store.UpdateGame(code, func(game *Game) error {
		if game.State != stateFinished {
			return errors.New("game not finished")
		}
		score = similarity(game)
		return nil
	})
	if err != nil {
		return
	}

	log.Printf("game over game_code=%s similarity=%d", code, score)
	s.hub.Broadcast(code, gameOverEvent{Type: eventGameOver, Similarity: score})

	s.cancelTimer(code)
	s.store.RemoveGame(code)
	s.hub.DropRoom(code)
}

// similarity is the share of achievable points the pair collected, as a
// rounded percentage. Each matched round is worth one point per player.
func similarity(game *Game) int {
	total := 0
	for _, points := range game.Scores {
		total += points
	}
	max := game.TotalRounds * 2
	if max == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(max) * 100))
}
