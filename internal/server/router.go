package server

import (
	"errors"
	"log"
)

// readLoop pulls events off one connection until it drops, then runs the
// disconnect lifecycle. No game logic lives here; every event maps onto a
// store operation plus outbound events.
func (s *Server) readLoop(c *client) {
	defer func() {
		s.handleDisconnect(c)
		c.conn.Close()
	}()

	for {
		var event clientEvent
		if err := c.conn.ReadJSON(&event); err != nil {
			return
		}
		s.dispatch(c, event)
	}
}

func (s *Server) dispatch(c *client, event clientEvent) {
	switch event.Type {
	case eventCreateGame:
		s.handleCreateGame(c, event)
	case eventJoinGame:
		s.handleJoinGame(c, event)
	case eventSubmitWord:
		s.handleSubmitWord(c, event)
	default:
		log.Printf("ws unknown event conn_id=%s type=%q", c.id, event.Type)
	}
}

func (s *Server) handleCreateGame(c *client, event clientEvent) {
	name, err := validateName(event.PlayerName)
	if err != nil {
		s.hub.SendTo(c.id, errorEvent{Type: eventCreateGameError, Message: err.Error()})
		return
	}
	rounds := event.TotalRounds
	if rounds == 0 {
		rounds = s.cfg.DefaultRounds
	}
	if err := validateRounds(rounds, s.cfg.MaxRounds); err != nil {
		s.hub.SendTo(c.id, errorEvent{Type: eventCreateGameError, Message: err.Error()})
		return
	}

	game, err := s.store.CreateGame(c.id, name, rounds)
	if err != nil {
		s.hub.SendTo(c.id, errorEvent{Type: eventCreateGameError, Message: "Game code already exists"})
		return
	}

	s.hub.JoinRoom(game.Code, c.id)
	s.hub.SendTo(c.id, gameCreatedEvent{Type: eventGameCreated, GameCode: game.Code})
	log.Printf("game created game_code=%s player=%s rounds=%d", game.Code, name, rounds)
}

func (s *Server) handleJoinGame(c *client, event clientEvent) {
	name, err := validateName(event.PlayerName)
	if err != nil {
		s.hub.SendTo(c.id, errorEvent{Type: eventJoinGameError, Message: err.Error()})
		return
	}
	code, err := validateCode(event.GameCode)
	if err != nil {
		s.hub.SendTo(c.id, errorEvent{Type: eventJoinGameError, Message: err.Error()})
		return
	}

	player1, player2, err := s.store.JoinGame(code, c.id, name)
	if err != nil {
		message := "Unable to join game"
		switch {
		case errors.Is(err, ErrGameNotFound):
			message = "Game not found"
		case errors.Is(err, ErrGameFull):
			message = "Game is full"
		}
		s.hub.SendTo(c.id, errorEvent{Type: eventJoinGameError, Message: message})
		return
	}

	s.hub.JoinRoom(code, c.id)
	s.hub.Broadcast(code, gameStartedEvent{
		Type:    eventGameStarted,
		Player1: player1,
		Player2: player2,
	})
	log.Printf("player joined game_code=%s player=%s", code, name)

	// Round 1 starts off the read loop; the prompt fetch may block.
	go s.startRound(code, 1)
}

func (s *Server) handleSubmitWord(c *client, event clientEvent) {
	word, err := validateWord(event.Word)
	if err != nil {
		return
	}
	code, err := validateCode(event.GameCode)
	if err != nil {
		return
	}

	round, complete, err := s.store.SubmitWord(code, c.id, word)
	if err != nil {
		// Duplicate, late, or misaddressed submissions are dropped without
		// an error event; there is nothing actionable for the client.
		log.Printf("word ignored game_code=%s conn_id=%s reason=%v", code, c.id, err)
		return
	}

	log.Printf("word submitted game_code=%s round=%d conn_id=%s", code, round, c.id)
	if complete {
		s.resolveRound(code, round)
	}
}

func (s *Server) handleDisconnect(c *client) {
	for _, removal := range s.store.RemovePlayer(c.id) {
		if removal.Emptied {
			s.cancelTimer(removal.Code)
			s.hub.DropRoom(removal.Code)
			log.Printf("game deleted game_code=%s reason=empty", removal.Code)
			continue
		}
		s.hub.LeaveRoom(removal.Code, c.id)
		s.hub.Broadcast(removal.Code, playerDisconnectedEvent{Type: eventPlayerDisconnected})
		log.Printf("player disconnected game_code=%s conn_id=%s", removal.Code, c.id)
	}
	s.hub.Remove(c.id)
	log.Printf("ws disconnected conn_id=%s", c.id)
}
