// Package api exposes a quantum chess engine over HTTP and WebSocket, per
// spec.md §6.4: a JSON board view plus a ping endpoint, enriched here with a
// move-submission endpoint and a live board stream for spectators.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/herohde/quantumchess/pkg/quantum/board"
	"github.com/herohde/quantumchess/pkg/quantum/engine"
	"github.com/herohde/quantumchess/pkg/quantum/harmonic"
	"github.com/herohde/quantumchess/pkg/quantum/notation"
	"github.com/seekerror/logw"
)

// squareView is a single entry of the JSON board view.
type squareView struct {
	Piece  string  `json:"piece"`
	Player string  `json:"player,omitempty"`
	Prob   float64 `json:"prob"`
}

// boardView is the JSON shape of GET /api/starting_chessboard and
// GET /api/board: 64 entries ordered by y*8+x.
type boardView struct {
	Squares [64]squareView `json:"squares"`
}

func newBoardView(state harmonic.Superposition) boardView {
	var view boardView
	for i := 0; i < 64; i++ {
		p := board.Unindex(i)
		inf := state.QuantumSquareInfo(p)

		sv := squareView{Piece: inf.Square.Piece.String(), Prob: inf.Probability}
		if inf.Square.IsOccupied() {
			sv.Player = inf.Square.Player.String()
		}
		view.Squares[i] = sv
	}
	return view
}

// moveRequest is the JSON body of POST /api/moves: a plain-text command in
// either grammar from spec.md §6.3.
type moveRequest struct {
	Command string `json:"command"`
}

// moveResponse carries the MoveResult plus the engine's new snapshot, so a
// caller never has to issue a second request just to see what changed.
type moveResponse struct {
	Success bool      `json:"success"`
	Reason  string    `json:"reason,omitempty"`
	Board   boardView `json:"board"`
}

// Server wires an *engine.Engine to an HTTP mux and a set of connected
// board-stream subscribers.
type Server struct {
	e *engine.Engine

	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[*websocket.Conn]chan boardView
}

// NewServer returns a Server wrapping e. Call Handler to obtain the router.
func NewServer(e *engine.Engine) *Server {
	return &Server{
		e:        e,
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		subs:     make(map[*websocket.Conn]chan boardView),
	}
}

// Handler returns the HTTP router exposing the API's endpoints.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/ping", s.handlePing).Methods(http.MethodGet)
	r.HandleFunc("/api/starting_chessboard", s.handleStartingChessboard).Methods(http.MethodGet)
	r.HandleFunc("/api/board", s.handleBoard).Methods(http.MethodGet)
	r.HandleFunc("/api/moves", s.handleMoves).Methods(http.MethodPost)
	r.HandleFunc("/api/stream", s.handleStream)
	return r
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("pong\r\n"))
}

// handleStartingChessboard keeps its distilled-spec name but, like the
// teacher's Position() convenience method, now reports the engine's current
// state rather than only the position it started at.
func (s *Server) handleStartingChessboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, newBoardView(s.e.Snapshot()))
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, newBoardView(s.e.Snapshot()))
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	mv, err := notation.Parse(req.Command)
	if err != nil {
		writeJSON(w, moveResponse{Success: false, Reason: err.Error(), Board: newBoardView(s.e.Snapshot())})
		return
	}

	result := s.e.Submit(ctx, mv)
	if result.Success() {
		s.e.SwitchTurn()
		s.broadcast(ctx)
	}
	writeJSON(w, moveResponse{Success: result.Success(), Reason: result.Reason(), Board: newBoardView(s.e.Snapshot())})
}

// handleStream upgrades to a WebSocket connection that receives the board
// view as JSON on connect and after every move that succeeds through
// POST /api/moves. Moves submitted to the engine by other callers, such as
// the console driver, are not pushed, and an update is dropped for a
// subscriber whose buffer is full.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logw.Errorf(ctx, "Stream upgrade failed: %v", err)
		return
	}

	out := s.subscribe(conn)
	defer s.unsubscribe(conn)

	out <- newBoardView(s.e.Snapshot())
	for view := range out {
		if err := conn.WriteJSON(view); err != nil {
			return
		}
	}
}

func (s *Server) subscribe(conn *websocket.Conn) chan boardView {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(chan boardView, 4)
	s.subs[conn] = out
	return out
}

func (s *Server) unsubscribe(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if out, ok := s.subs[conn]; ok {
		close(out)
		delete(s.subs, conn)
	}
	_ = conn.Close()
}

func (s *Server) broadcast(ctx context.Context) {
	view := newBoardView(s.e.Snapshot())

	s.mu.Lock()
	outs := make([]chan boardView, 0, len(s.subs))
	for _, out := range s.subs {
		outs = append(outs, out)
	}
	s.mu.Unlock()

	for _, out := range outs {
		select {
		case out <- view:
		default:
			logw.Errorf(ctx, "Dropping board-stream update for a slow subscriber")
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
