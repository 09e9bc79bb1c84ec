package server

import (
	"errors"
	"testing"
	"time"
)

func playingGame(t *testing.T, s *Server, code string, rounds int) {
	t.Helper()
	if _, err := s.store.InsertGame(code, "p1", "Ada", rounds); err != nil {
		t.Fatalf("insert game: %v", err)
	}
	if _, _, err := s.store.JoinGame(code, "p2", "Ben"); err != nil {
		t.Fatalf("join game: %v", err)
	}
}

func submit(t *testing.T, s *Server, code, playerID, word string) {
	t.Helper()
	if _, _, err := s.store.SubmitWord(code, playerID, word); err != nil {
		t.Fatalf("submit word %s=%q: %v", playerID, word, err)
	}
}

func TestResolveRoundCaseInsensitiveMatch(t *testing.T) {
	s := New(testConfig())
	playingGame(t, s, "ABCD", 3)
	events := addObserver(s, "ABCD", "obs")

	s.startRound("ABCD", 1)
	if _, ok := nextBroadcast(t, events).(newRoundEvent); !ok {
		t.Fatalf("expected new_round broadcast")
	}

	submit(t, s, "ABCD", "p1", "Cat")
	submit(t, s, "ABCD", "p2", "cat")
	s.resolveRound("ABCD", 1)

	result, ok := nextBroadcast(t, events).(roundOverEvent)
	if !ok {
		t.Fatalf("expected round_over broadcast")
	}
	if !result.Match || result.Player1Word != "Cat" || result.Player2Word != "cat" {
		t.Fatalf("unexpected result: %+v", result)
	}

	game, _ := s.store.GetGame("ABCD")
	if game.Scores["p1"] != 1 || game.Scores["p2"] != 1 {
		t.Fatalf("scores not incremented: %+v", game.Scores)
	}
	if game.CurrentRound != 2 {
		t.Fatalf("round not advanced: %d", game.CurrentRound)
	}
}

func TestResolveRoundNoMatch(t *testing.T) {
	s := New(testConfig())
	playingGame(t, s, "ABCD", 3)
	events := addObserver(s, "ABCD", "obs")

	s.startRound("ABCD", 1)
	nextBroadcast(t, events) // new_round

	submit(t, s, "ABCD", "p1", "cat")
	submit(t, s, "ABCD", "p2", "dog")
	s.resolveRound("ABCD", 1)

	result := nextBroadcast(t, events).(roundOverEvent)
	if result.Match {
		t.Fatalf("cat/dog reported as match")
	}
	game, _ := s.store.GetGame("ABCD")
	if game.Scores["p1"] != 0 || game.Scores["p2"] != 0 {
		t.Fatalf("scores incremented on mismatch: %+v", game.Scores)
	}
}

func TestRoundTimeoutReportsNoResponse(t *testing.T) {
	cfg := testConfig()
	cfg.RoundDuration = 100 * time.Millisecond
	s := New(cfg)
	playingGame(t, s, "ABCD", 3)
	events := addObserver(s, "ABCD", "obs")

	s.startRound("ABCD", 1)
	nextBroadcast(t, events) // new_round

	submit(t, s, "ABCD", "p1", "cat")

	// The round timer fires resolution without a second submission.
	result, ok := nextBroadcast(t, events).(roundOverEvent)
	if !ok {
		t.Fatalf("expected round_over broadcast after timeout")
	}
	if result.Match {
		t.Fatalf("single response reported as match")
	}
	if result.Player1Word != "cat" || result.Player2Word != noResponseWord {
		t.Fatalf("unexpected words: %+v", result)
	}
}

func TestResolveRoundExactlyOnce(t *testing.T) {
	s := New(testConfig())
	playingGame(t, s, "ABCD", 3)

	s.startRound("ABCD", 1)
	submit(t, s, "ABCD", "p1", "cat")
	submit(t, s, "ABCD", "p2", "cat")

	s.resolveRound("ABCD", 1)
	s.resolveRound("ABCD", 1) // stale trigger, must no-op

	game, _ := s.store.GetGame("ABCD")
	if game.Scores["p1"] != 1 || game.Scores["p2"] != 1 {
		t.Fatalf("double resolution mutated scores: %+v", game.Scores)
	}
	if game.CurrentRound != 2 {
		t.Fatalf("double resolution advanced rounds: %d", game.CurrentRound)
	}
}

func TestLateSubmissionDoesNotLeak(t *testing.T) {
	cfg := testConfig()
	cfg.Intermission = time.Second // keep the scheduled next round out of the way
	s := New(cfg)
	playingGame(t, s, "ABCD", 3)

	s.startRound("ABCD", 1)
	submit(t, s, "ABCD", "p1", "cat")
	s.resolveRound("ABCD", 1)

	// Racing the intermission: the word must be dropped, not carried over.
	if _, _, err := s.store.SubmitWord("ABCD", "p2", "late"); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("expected late submission ignored, got %v", err)
	}

	s.startRound("ABCD", 2)
	game, _ := s.store.GetGame("ABCD")
	if len(game.Responses) != 0 {
		t.Fatalf("responses leaked into new round: %+v", game.Responses)
	}
}

func TestStaleRoundStartIgnored(t *testing.T) {
	cfg := testConfig()
	cfg.Intermission = time.Second
	s := New(cfg)
	playingGame(t, s, "ABCD", 3)

	s.startRound("ABCD", 1)
	submit(t, s, "ABCD", "p1", "cat")
	submit(t, s, "ABCD", "p2", "cat")
	s.resolveRound("ABCD", 1)

	s.startRound("ABCD", 2)
	submit(t, s, "ABCD", "p1", "dog")

	// A lingering start for round 1 or a duplicate start for round 2 must
	// not reset the round in progress.
	s.startRound("ABCD", 1)
	s.startRound("ABCD", 2)

	game, _ := s.store.GetGame("ABCD")
	if game.CurrentRound != 2 {
		t.Fatalf("stale start changed current round: %d", game.CurrentRound)
	}
	if game.Responses["p1"] != "dog" {
		t.Fatalf("stale start wiped responses: %+v", game.Responses)
	}
}

func TestFinalRoundEmitsGameOver(t *testing.T) {
	s := New(testConfig())
	playingGame(t, s, "ABCD", 1)
	events := addObserver(s, "ABCD", "obs")

	s.startRound("ABCD", 1)
	nextBroadcast(t, events) // new_round

	submit(t, s, "ABCD", "p1", "cat")
	submit(t, s, "ABCD", "p2", "CAT")
	s.resolveRound("ABCD", 1)
	nextBroadcast(t, events) // round_over

	over, ok := nextBroadcast(t, events).(gameOverEvent)
	if !ok {
		t.Fatalf("expected game_over broadcast")
	}
	if over.Similarity != 100 {
		t.Fatalf("expected similarity 100, got %d", over.Similarity)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := s.store.GetGame("ABCD"); !ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("finished game not removed from registry")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSimilarity(t *testing.T) {
	cases := []struct {
		name   string
		rounds int
		scores map[string]int
		want   int
	}{
		{"all matched", 5, map[string]int{"p1": 5, "p2": 5}, 100},
		{"none matched", 5, map[string]int{"p1": 0, "p2": 0}, 0},
		{"one of two", 2, map[string]int{"p1": 1, "p2": 1}, 50},
		{"one of three rounds up", 3, map[string]int{"p1": 1, "p2": 1}, 33},
		{"two of three", 3, map[string]int{"p1": 2, "p2": 2}, 67},
		{"zero rounds", 0, map[string]int{}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			game := &Game{TotalRounds: tc.rounds, Scores: tc.scores}
			if got := similarity(game); got != tc.want {
				t.Fatalf("similarity = %d, want %d", got, tc.want)
			}
		})
	}
}
