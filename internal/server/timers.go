package server

import "time"

// A game has at most one pending timer: either the current round's timeout
// or the short delay between rounds. Scheduling replaces any existing timer.

func (s *Server) scheduleRoundTimeout(code string, round int) {
	s.setTimer(code, s.cfg.RoundDuration, func() {
		s.resolveRound(code, round)
	})
}

func (s *Server) scheduleNextRound(code string, round int) {
	s.setTimer(code, s.cfg.Intermission, func() {
		s.startRound(code, round)
	})
}

func (s *Server) scheduleGameOver(code string) {
	s.setTimer(code, s.cfg.Intermission, func() {
		s.finishGame(code)
	})
}

func (s *Server) setTimer(code string, duration time.Duration, fn func()) {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	if existing, ok := s.timers[code]; ok {
		existing.Stop()
	}
	s.timers[code] = time.AfterFunc(duration, fn)
}

func (s *Server) cancelTimer(code string) {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	if timer, ok := s.timers[code]; ok {
		timer.Stop()
		delete(s.timers, code)
	}
}
