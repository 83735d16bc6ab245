// Package server exposes the analysis engine over HTTP: a JSON analyze
// endpoint for one-shot requests and a WebSocket tail endpoint that pushes
// pipeline results to connected clients.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/silvermoss/loupe/internal/connector"
	"github.com/silvermoss/loupe/internal/engine"
	"github.com/silvermoss/loupe/internal/model"
)

const (
	defaultMaxClients   = 100
	writeTimeout        = 10 * time.Second
	readDeadline        = 60 * time.Second
	shutdownGracePeriod = 5 * time.Second
)

// Server serves the analyze API and fans pipeline results out to WebSocket
// subscribers. It implements output.Output so it can sit at the end of a
// pipeline and push everything the pipeline produces to /ws/tail clients.
type Server struct {
	addr     string
	engine   *engine.Engine
	log      zerolog.Logger
	httpSrv  *http.Server
	upgrader websocket.Upgrader

	clientsMu  sync.RWMutex
	clients    map[*websocket.Conn]*sync.Mutex
	maxClients int

	results  chan model.Result
	stop     chan struct{}
	stopOnce sync.Once
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger. Default: no-op.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithMaxClients caps concurrent WebSocket connections. Default: 100.
func WithMaxClients(n int) Option {
	return func(s *Server) { s.maxClients = n }
}

// New creates a Server bound to addr, serving analyses from eng.
func New(addr string, eng *engine.Engine, opts ...Option) *Server {
	s := &Server{
		addr:   addr,
		engine: eng,
		log:    zerolog.Nop(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients:    make(map[*websocket.Conn]*sync.Mutex),
		maxClients: defaultMaxClients,
		results:    make(chan model.Result, 100),
		stop:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the server's routes. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/providers", s.handleProviders)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/ws/tail", s.handleTail)
	return mux
}

// Start begins serving. Blocks until Stop is called or the listener fails.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}
	go s.broadcast()
	s.log.Info().Str("addr", s.addr).Msg("server listening")
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.stop)
		if s.httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
			defer cancel()
			err = s.httpSrv.Shutdown(ctx)
		}
	})
	return err
}

// Write queues a result for broadcast to WebSocket clients. Results are
// dropped when the queue is full; a slow dashboard must not stall the
// pipeline. Implements output.Output.
func (s *Server) Write(_ context.Context, res model.Result) error {
	select {
	case s.results <- res:
	default:
		s.log.Warn().Msg("result queue full, dropping broadcast")
	}
	return nil
}

// Close implements output.Output.
func (s *Server) Close() error {
	return s.Stop()
}

// analyzeRequest is the POST /api/analyze body. When options is omitted the
// server produces a summary and tags, which is what interactive callers want.
type analyzeRequest struct {
	Log     string          `json:"log"`
	Options *analyzeOptions `json:"options,omitempty"`
}

type analyzeOptions struct {
	Language  string `json:"language,omitempty"`
	MaxLines  int    `json:"max_lines,omitempty"`
	Highlight bool   `json:"highlight,omitempty"`
	Summary   bool   `json:"summary,omitempty"`
	Tags      bool   `json:"tags,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reqID := uuid.NewString()
	log := s.log.With().Str("request_id", reqID).Logger()

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug().Err(err).Msg("bad analyze request")
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Log == "" {
		writeError(w, http.StatusBadRequest, "missing log field")
		return
	}

	opts := model.Options{Summary: true, Tags: true}
	if req.Options != nil {
		opts = model.Options{
			LanguageHint: model.ParseLanguage(req.Options.Language),
			MaxLines:     req.Options.MaxLines,
			Highlight:    req.Options.Highlight,
			Summary:      req.Options.Summary,
			Tags:         req.Options.Tags,
		}
	}

	start := time.Now()
	res := s.engine.Process(model.RawLog{
		Timestamp: time.Now(),
		Source:    "api",
		Raw:       req.Log,
		Options:   opts,
	})
	log.Info().
		Str("language", string(res.Metadata.LanguageDetected)).
		Int("lines", res.Metadata.Lines).
		Dur("elapsed", time.Since(start)).
		Msg("analyze request served")

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-Id", reqID)
	json.NewEncoder(w).Encode(res)
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{
		"connectors": connector.Providers(),
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleTail(w http.ResponseWriter, r *http.Request) {
	s.clientsMu.RLock()
	count := len(s.clients)
	s.clientsMu.RUnlock()
	if count >= s.maxClients {
		http.Error(w, "maximum clients reached", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	writeMu := &sync.Mutex{}
	s.clientsMu.Lock()
	s.clients[conn] = writeMu
	s.clientsMu.Unlock()
	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
	}()

	conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	// Read loop doubles as the interactive path: raw lines sent by the
	// client come back analyzed on the same connection.
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		if msgType != websocket.TextMessage || len(data) == 0 {
			continue
		}
		res := s.engine.Process(model.RawLog{
			Timestamp: time.Now(),
			Source:    "ws",
			Raw:       string(data),
			Options:   model.Options{Summary: true, Tags: true},
		})
		payload, err := json.Marshal(res)
		if err != nil {
			s.log.Warn().Err(err).Msg("marshal tail result")
			continue
		}
		writeMu.Lock()
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		err = conn.WriteMessage(websocket.TextMessage, payload)
		writeMu.Unlock()
		if err != nil {
			return
		}
	}
}

// broadcast fans queued results out to every connected WebSocket client.
func (s *Server) broadcast() {
	for {
		select {
		case <-s.stop:
			return
		case res := <-s.results:
			payload, err := json.Marshal(res)
			if err != nil {
				s.log.Warn().Err(err).Msg("marshal broadcast result")
				continue
			}
			s.clientsMu.RLock()
			conns := make(map[*websocket.Conn]*sync.Mutex, len(s.clients))
			for conn, mu := range s.clients {
				conns[conn] = mu
			}
			s.clientsMu.RUnlock()

			for conn, mu := range conns {
				mu.Lock()
				conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				err := conn.WriteMessage(websocket.TextMessage, payload)
				mu.Unlock()
				if err != nil {
					conn.Close()
					s.clientsMu.Lock()
					delete(s.clients, conn)
					s.clientsMu.Unlock()
				}
			}
		}
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
