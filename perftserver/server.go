// Package perftserver exposes perft counts over HTTP and a websocket stream.
package perftserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chess-core/coremg"
	"chess-core/fen"
)

// DefaultMaxDepth caps the requested depth when Config.MaxDepth is zero.
const DefaultMaxDepth = 5

var errBadDepth = errors.New("bad depth")

// Config controls request validation and logging.
type Config struct {
	// MaxDepth is the deepest perft a request may ask for.
	MaxDepth int
	// AccessLog receives one line per request. Nil means stdout.
	AccessLog io.Writer
}

// Server routes perft requests to a shared, read-only generator. Every
// request decodes its own board.
type Server struct {
	router   *mux.Router
	gen      *coremg.Generator
	maxDepth int
	upgrader websocket.Upgrader
}

// PerftResult is the body of a /perft reply.
type PerftResult struct {
	FEN       string `json:"fen"`
	Depth     int    `json:"depth"`
	Nodes     uint64 `json:"nodes"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

// DivideEntry is the leaf count below one root move.
type DivideEntry struct {
	Move  string `json:"move"`
	Nodes uint64 `json:"nodes"`
}

// DivideResult is the body of a /divide reply. Moves are sorted by text.
type DivideResult struct {
	FEN   string        `json:"fen"`
	Depth int           `json:"depth"`
	Moves []DivideEntry `json:"moves"`
	Total uint64        `json:"total"`
}

// MovesResult lists the legal moves of a position in coordinate form.
type MovesResult struct {
	FEN   string   `json:"fen"`
	Moves []string `json:"moves"`
}

// MoveFrame is sent on /ws/divide once per legal root move. Nodes is always
// present, zero included.
type MoveFrame struct {
	Move  string `json:"move"`
	Nodes uint64 `json:"nodes"`
}

// DoneFrame ends a /ws/divide stream.
type DoneFrame struct {
	Done  bool   `json:"done"`
	Total uint64 `json:"total"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New builds a server around gen.
func New(gen *coremg.Generator, cfg Config) *Server {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	accessLog := cfg.AccessLog
	if accessLog == nil {
		accessLog = os.Stdout
	}
	s := &Server{
		router:   mux.NewRouter(),
		gen:      gen,
		maxDepth: cfg.MaxDepth,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.router.Use(func(next http.Handler) http.Handler {
		return handlers.LoggingHandler(accessLog, next)
	})
	s.router.Use(handlers.RecoveryHandler(handlers.PrintRecoveryStack(true)))
	s.router.NotFoundHandler = handlers.LoggingHandler(accessLog, http.HandlerFunc(notFoundHandler))

	s.router.HandleFunc("/perft", s.perftHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/divide", s.divideHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/moves", s.movesHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/ws/divide", s.wsDivideHandler).Methods(http.MethodGet)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("perftserver: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// position decodes the fen query parameter, defaulting to the start position.
func position(r *http.Request) (string, *coremg.Board, error) {
	text := r.URL.Query().Get("fen")
	if text == "" {
		text = fen.StartPos
	}
	b, err := fen.Parse(text)
	if err != nil {
		return "", nil, err
	}
	return text, b, nil
}

func (s *Server) depth(r *http.Request, lo int) (int, error) {
	raw := r.URL.Query().Get("depth")
	if raw == "" {
		return 0, fmt.Errorf("%w: missing depth parameter", errBadDepth)
	}
	d, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errBadDepth, raw)
	}
	if d < lo || d > s.maxDepth {
		return 0, fmt.Errorf("%w: %d outside [%d, %d]", errBadDepth, d, lo, s.maxDepth)
	}
	return d, nil
}

func (s *Server) request(r *http.Request, minDepth int) (string, *coremg.Board, int, error) {
	text, b, err := position(r)
	if err != nil {
		return "", nil, 0, err
	}
	d, err := s.depth(r, minDepth)
	if err != nil {
		return "", nil, 0, err
	}
	return text, b, d, nil
}

func (s *Server) perftHandler(w http.ResponseWriter, r *http.Request) {
	text, b, depth, err := s.request(r, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	start := time.Now()
	nodes := s.gen.Perft(b, depth)
	writeJSON(w, http.StatusOK, PerftResult{
		FEN:       text,
		Depth:     depth,
		Nodes:     nodes,
		ElapsedMS: time.Since(start).Milliseconds(),
	})
}

// sortedDivide returns the divide entries ordered by move text.
func (s *Server) sortedDivide(b *coremg.Board, depth int) ([]DivideEntry, uint64) {
	counts := make(map[string]uint64)
	for m, n := range s.gen.PerftDivide(b, depth) {
		counts[m.String()] = n
	}
	keys := maps.Keys(counts)
	slices.Sort(keys)
	entries := make([]DivideEntry, 0, len(keys))
	var total uint64
	for _, k := range keys {
		entries = append(entries, DivideEntry{Move: k, Nodes: counts[k]})
		total += counts[k]
	}
	return entries, total
}

func (s *Server) divideHandler(w http.ResponseWriter, r *http.Request) {
	text, b, depth, err := s.request(r, 1)
	if err != nil {
		writeError(w, err)
		return
	}
	entries, total := s.sortedDivide(b, depth)
	writeJSON(w, http.StatusOK, DivideResult{FEN: text, Depth: depth, Moves: entries, Total: total})
}

func (s *Server) movesHandler(w http.ResponseWriter, r *http.Request) {
	text, b, err := position(r)
	if err != nil {
		writeError(w, err)
		return
	}
	legal := s.gen.LegalMoves(b)
	moves := make([]string, 0, len(legal))
	for _, m := range legal {
		moves = append(moves, m.String())
	}
	slices.Sort(moves)
	writeJSON(w, http.StatusOK, MovesResult{FEN: text, Moves: moves})
}

// wsDivideHandler streams one frame per legal root move as soon as its
// subtree is counted, then a final frame with the total.
func (s *Server) wsDivideHandler(w http.ResponseWriter, r *http.Request) {
	_, b, depth, err := s.request(r, 1)
	if err != nil {
		writeError(w, err)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		log.Printf("perftserver: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	byText := make(map[string]coremg.Move)
	for _, m := range s.gen.LegalMoves(b) {
		byText[m.String()] = m
	}
	keys := maps.Keys(byText)
	slices.Sort(keys)
	var total uint64
	for _, k := range keys {
		m := byText[k]
		saved := *b
		if !s.gen.MakeMove(b, m, coremg.AllMoves) {
			log.Printf("perftserver: legal move %s rejected, skipping", k)
			continue
		}
		n := s.gen.Perft(b, depth-1)
		*b = saved
		total += n
		if !s.send(conn, MoveFrame{Move: k, Nodes: n}) {
			return
		}
	}
	s.send(conn, DoneFrame{Done: true, Total: total})
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (s *Server) send(conn *websocket.Conn, msg any) bool {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("perftserver: websocket write to %s: %v", conn.RemoteAddr(), err)
		return false
	}
	return true
}
