// Package viewer shows the sample figure interactively. It serves a
// go-echarts page and the static gonum/plot figure from a loopback HTTP
// server and blocks until the page is closed or the process is told to stop.
package viewer

import (
	"bytes"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/imuplot/internal/figure"
	"github.com/banshee-data/imuplot/internal/httputil"
	"github.com/banshee-data/imuplot/internal/monitoring"
	"github.com/banshee-data/imuplot/internal/samples"
)

const (
	figurePath = "/figure.png"
	closePath  = "/api/close"

	shutdownTimeout = 2 * time.Second
)

// Options configures the viewer server.
type Options struct {
	Listen        string
	CloseOnUnload bool
	Figure        figure.Options
	Page          PageOptions
}

// Server holds the rendered page and figure for one loaded file.
type Server struct {
	listen  string
	session string

	pageHTML  []byte
	figurePNG []byte
	summary   summaryResponse

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
	serveErr chan error

	closeOnce sync.Once
	closed    chan struct{}
}

type summaryResponse struct {
	Samples int               `json:"samples"`
	First   string            `json:"first"`
	Last    string            `json:"last"`
	Series  []samples.Summary `json:"series"`
}

// NewServer renders the interactive page and the static figure for cols.
// Rendering happens here, once, so any error is reported before the viewer
// starts listening.
func NewServer(cols *samples.Columns, o Options) (*Server, error) {
	fig, err := figure.New(cols, o.Figure)
	if err != nil {
		return nil, fmt.Errorf("build figure: %w", err)
	}
	var png bytes.Buffer
	if _, err := fig.WriteTo(&png); err != nil {
		return nil, fmt.Errorf("render figure: %w", err)
	}

	s := &Server{
		listen:    o.Listen,
		session:   uuid.NewString(),
		figurePNG: png.Bytes(),
		summary: summaryResponse{
			Samples: cols.Len(),
			First:   cols.Index[0],
			Last:    cols.Index[cols.Len()-1],
			Series:  cols.Summaries(),
		},
		closed: make(chan struct{}),
	}

	po := o.Page
	po.FigureURL = figurePath
	if o.CloseOnUnload {
		po.CloseURL = closePath + "?session=" + url.QueryEscape(s.session)
	}
	page, err := NewPage(cols, po)
	if err != nil {
		return nil, fmt.Errorf("build page: %w", err)
	}
	var html bytes.Buffer
	if err := page.Render(&html); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	s.pageHTML = html.Bytes()

	return s, nil
}

// Session returns the token that must accompany a close request.
func (s *Server) Session() string { return s.session }

// Done is closed once the viewer has been dismissed.
func (s *Server) Done() <-chan struct{} { return s.closed }

// Handler returns the viewer routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc(figurePath, s.handleFigure)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc(closePath, s.handleClose)
	return mux
}

// Start begins listening. It returns once the listener is bound.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		return errors.New("viewer already started")
	}

	ln, err := net.Listen("tcp", s.listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listen, err)
	}
	s.listener = ln
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.serveErr = make(chan error, 1)

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.serveErr <- err
		}
		close(s.serveErr)
	}()
	monitoring.Logf("viewer listening on %s", s.URL())
	return nil
}

// URL returns the viewer address, or "" before Start.
func (s *Server) URL() string {
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String() + "/"
}

// Serve starts the server if needed and blocks until the viewer is
// dismissed or ctx is done, then shuts the server down. It returns nil when
// the viewer was dismissed and ctx.Err() when ctx ended first.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	started := s.server != nil
	s.mu.Unlock()
	if !started {
		if err := s.Start(); err != nil {
			return err
		}
	}

	var result error
	select {
	case <-s.closed:
		monitoring.Logf("viewer closed")
	case <-ctx.Done():
		result = ctx.Err()
	case err, ok := <-s.serveErr:
		if ok && err != nil {
			result = fmt.Errorf("viewer server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		monitoring.Logf("viewer shutdown error: %v", err)
		if err := s.server.Close(); err != nil {
			monitoring.Logf("viewer force close error: %v", err)
		}
	}
	return result
}

// Dismiss closes the viewer as if the page had been closed.
func (s *Server) Dismiss() {
	s.closeOnce.Do(func() { close(s.closed) })
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		httputil.MethodNotAllowed(w, http.MethodGet)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(s.pageHTML)
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		httputil.MethodNotAllowed(w, http.MethodGet)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(s.figurePNG)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w, http.MethodGet)
		return
	}
	httputil.WriteJSONOK(w, s.summary)
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w, http.MethodPost)
		return
	}
	token := r.URL.Query().Get("session")
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.session)) != 1 {
		httputil.Forbidden(w, "invalid session")
		return
	}
	httputil.WriteJSONOK(w, map[string]string{"status": "closing"})
	s.Dismiss()
}
