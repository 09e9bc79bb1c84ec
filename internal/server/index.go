package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}

// Minimal test client; the production client is served as a separate static
// bundle and only needs the event contract below.
const indexHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>MindLink</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 2rem; max-width: 40rem; }
  #status { margin-bottom: 1rem; font-size: 0.9rem; }
  #prompt img { max-width: 100%; }
  #log { white-space: pre-line; font-size: 0.85rem; color: #444; }
  input, button { font-size: 1rem; padding: 0.25rem; }
</style>
</head>
<body>
<h1>MindLink</h1>
<div id="status">Connecting…</div>
<div>
  <input id="name" placeholder="Your name">
  <input id="rounds" type="number" value="5" min="1" style="width:4rem">
  <button id="create">Create game</button>
</div>
<div>
  <input id="code" placeholder="Game code" maxlength="4">
  <button id="join">Join game</button>
</div>
<div id="prompt"></div>
<div>
  <input id="word" placeholder="One word">
  <button id="submit">Submit</button>
</div>
<div id="log"></div>

<script>
(function() {
  const statusEl = document.getElementById('status');
  const logEl = document.getElementById('log');
  const promptEl = document.getElementById('prompt');
  let gameCode = '';

  const proto = (location.protocol === 'https:') ? 'wss://' : 'ws://';
  const ws = new WebSocket(proto + location.host + '/ws');

  function log(line) {
    logEl.textContent = line + '\n' + logEl.textContent;
  }

  ws.onopen = function() {
    statusEl.textContent = 'Connected.';
    const joined = new URLSearchParams(location.search).get('join');
    if (joined) {
      document.getElementById('code').value = joined;
    }
  };

  ws.onmessage = function(event) {
    const msg = JSON.parse(event.data);
    switch (msg.type) {
      case 'game_created':
        gameCode = msg.gameCode;
        log('Game created: ' + gameCode);
        break;
      case 'game_started':
        log('Game started: ' + msg.player1 + ' vs ' + msg.player2);
        break;
      case 'new_round':
        log('Round ' + msg.currentRound);
        promptEl.innerHTML = msg.prompt ? '<img src="' + msg.prompt + '">' : '(no image)';
        break;
      case 'round_over':
        log((msg.match ? 'Match! ' : 'No match. ') + msg.player1Word + ' / ' + msg.player2Word);
        break;
      case 'game_over':
        log('Game over. Similarity: ' + msg.similarity + '%');
        break;
      case 'player_disconnected':
        log('The other player disconnected.');
        break;
      case 'create_game_error':
      case 'join_game_error':
        log('Error: ' + msg.message);
        break;
    }
  };

  ws.onclose = function() {
    statusEl.textContent = 'Disconnected.';
  };

  document.getElementById('create').onclick = function() {
    ws.send(JSON.stringify({
      type: 'create_game',
      playerName: document.getElementById('name').value,
      totalRounds: parseInt(document.getElementById('rounds').value, 10) || 0
    }));
  };

  document.getElementById('join').onclick = function() {
    gameCode = document.getElementById('code').value.toUpperCase();
    ws.send(JSON.stringify({
      type: 'join_game',
      gameCode: gameCode,
      playerName: document.getElementById('name').value
    }));
  };

  document.getElementById('submit').onclick = function() {
    ws.send(JSON.stringify({
      type: 'submit_word',
      gameCode: gameCode,
      word: document.getElementById('word').value
    }));
    document.getElementById('word').value = '';
  };
})();
</script>
</body>
</html>
`
