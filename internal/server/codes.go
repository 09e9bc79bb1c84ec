package server

import "crypto/rand"

const gameCodeLength = 4

// newGameCode returns a 4-letter room code drawn from A-Z. Uniqueness among
// active games is the store's job; see Store.CreateGame.
func newGameCode() string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	buf := make([]byte, gameCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "AAAA"
	}
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf)
}
