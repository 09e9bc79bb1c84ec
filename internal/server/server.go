package server

import (
	"net/http"
	"sync"
	"time"

	"mindlink/internal/config"

	"github.com/gin-gonic/gin"
)

const releaseVersion = "0.1.0"

type Server struct {
	store   *Store
	hub     *wsHub
	cfg     config.Config
	prompts *promptClient

	timersMu sync.Mutex
	timers   map[string]*time.Timer
}

func New(cfg config.Config) *Server {
	return &Server{
		store:   NewStore(),
		hub:     newWSHub(),
		cfg:     cfg,
		prompts: newPromptClient(cfg.PromptURL, cfg.PromptTimeout),
		timers:  make(map[string]*time.Timer),
	}
}

func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", s.handleIndex)
	router.GET("/healthz", s.handleHealth)
	router.GET("/version", s.handleVersion)
	router.GET("/games", s.handleGameList)
	router.GET("/games/:code/qr", s.handleGameQR)
	router.GET("/ws", s.handleWebsocket)

	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (s *Server) handleVersion(c *gin.Context) {
	c.String(http.StatusOK, "mindlink v%s", releaseVersion)
}

func (s *Server) handleGameList(c *gin.Context) {
	summaries := s.store.ListGameSummaries()
	games := make([]gin.H, 0, len(summaries))
	for _, summary := range summaries {
		games = append(games, gin.H{
			"game_code":     summary.Code,
			"state":         summary.State,
			"current_round": summary.Round,
			"total_rounds":  summary.Rounds,
			"players":       summary.Players,
		})
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}
