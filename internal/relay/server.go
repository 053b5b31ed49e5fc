// Package relay serves race matchmaking over websockets plus a small JSON
// API for scores, so that players outside the SSH server can race each
// other.
package relay

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/wordris/internal/multiplayer"
	"github.com/vovakirdan/wordris/internal/storage"
)

// ScoreSource is the read side of the score store.
type ScoreSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	TopWords(gameID string, limit int) ([]storage.WordCount, error)
	RecentRaces(limit int) ([]storage.RaceResult, error)
	PlayerRaces(sessionID string, limit int) ([]storage.RaceResult, error)
}

// Server bundles the router, the matchmaker and the score store.
type Server struct {
	r          *chi.Mux
	matchmaker *multiplayer.Matchmaker
	sessions   *multiplayer.SessionRegistry
	scores     ScoreSource
	logger     *log.Logger
	upgrader   websocket.Upgrader
}

// New constructs a Server and registers its routes. scores may be nil, in
// which case the score endpoints report 503.
func New(mm *multiplayer.Matchmaker, sessions *multiplayer.SessionRegistry, scores ScoreSource, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		r:          chi.NewRouter(),
		matchmaker: mm,
		sessions:   sessions,
		scores:     scores,
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)

	// Websocket connections outlive any request timeout.
	s.r.Get("/ws", s.handleWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/scores/{game}", s.handleScores)
		r.Get("/races", s.handleRaces)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

type scoreJSON struct {
	Score int       `json:"score"`
	Words int       `json:"words"`
	Pack  string    `json:"pack"`
	At    time.Time `json:"at"`
}

type wordJSON struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type raceJSON struct {
	Race     string `json:"race"`
	Pack     string `json:"pack"`
	Score1   int    `json:"score1"`
	Score2   int    `json:"score2"`
	Winner   string `json:"winner,omitempty"`
	Reason   string `json:"reason"`
	Duration int64  `json:"durationMs"`
}

// handleScores returns the top scores and most matched words for a game.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.scores == nil {
		writeError(w, http.StatusServiceUnavailable, "no_store")
		return
	}
	game := chi.URLParam(r, "game")
	limit := queryLimit(r, 10)

	entries, err := s.scores.TopScores(game, limit)
	if err != nil {
		s.logger.Error("top scores", "game", game, "err", err)
		writeError(w, http.StatusInternalServerError, "store_error")
		return
	}
	words, err := s.scores.TopWords(game, limit)
	if err != nil {
		s.logger.Error("top words", "game", game, "err", err)
		writeError(w, http.StatusInternalServerError, "store_error")
		return
	}

	resp := struct {
		Game   string      `json:"game"`
		Scores []scoreJSON `json:"scores"`
		Words  []wordJSON  `json:"words"`
	}{Game: game, Scores: []scoreJSON{}, Words: []wordJSON{}}
	for _, e := range entries {
		resp.Scores = append(resp.Scores, scoreJSON{Score: e.Score, Words: e.Words, Pack: e.PackID, At: e.CreatedAt})
	}
	for _, wc := range words {
		resp.Words = append(resp.Words, wordJSON{Word: wc.Word, Count: wc.Count})
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// handleRaces returns the most recent race results, optionally only those
// of one session (?session=, the "you" field of user:matched).
func (s *Server) handleRaces(w http.ResponseWriter, r *http.Request) {
	if s.scores == nil {
		writeError(w, http.StatusServiceUnavailable, "no_store")
		return
	}

	var (
		races []storage.RaceResult
		err   error
	)
	limit := queryLimit(r, 20)
	if session := r.URL.Query().Get("session"); session != "" {
		races, err = s.scores.PlayerRaces(session, limit)
	} else {
		races, err = s.scores.RecentRaces(limit)
	}
	if err != nil {
		s.logger.Error("recent races", "err", err)
		writeError(w, http.StatusInternalServerError, "store_error")
		return
	}

	out := make([]raceJSON, 0, len(races))
	for _, rr := range races {
		out = append(out, raceJSON{
			Race:     rr.RaceID,
			Pack:     rr.PackID,
			Score1:   rr.Score1,
			Score2:   rr.Score2,
			Winner:   rr.WinnerSession,
			Reason:   rr.EndReason,
			Duration: rr.Duration.Milliseconds(),
		})
	}
	_ = json.NewEncoder(w).Encode(out)
}

func queryLimit(r *http.Request, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 || n > 100 {
		return def
	}
	return n
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
