package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/clic-epfl/newsmaker"
)

var previewAddr string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Serve the composed document with live reload",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreview(newLogger())
	},
}

func init() {
	previewCmd.Flags().StringVarP(&snapshotPath, "snapshot", "s", "", "working-document snapshot to load")
	previewCmd.Flags().StringVar(&previewAddr, "addr", "localhost:7365", "address to serve the preview on")
}

const reloadScript = `<script>
(function () {
	var proto = location.protocol === "https:" ? "wss://" : "ws://";
	var ws = new WebSocket(proto + location.host + "/ws");
	ws.onmessage = function () { location.reload(); };
})();
</script>`

// previewServer serves the composed document and pushes a reload message
// to connected browsers whenever the configuration or snapshot changes on
// disk. The engine itself stays single-threaded: every recompose runs
// under the mutex against a freshly loaded document.
type previewServer struct {
	logger       *slog.Logger
	configPath   string
	snapshotPath string

	mu   sync.RWMutex
	html string

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]struct{}
}

func runPreview(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &previewServer{
		logger:       logger,
		configPath:   configPath,
		snapshotPath: snapshotPath,
		clients:      map[*websocket.Conn]struct{}{},
	}
	if err := srv.recompose(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(configPath), err)
	}
	if snapshotPath != "" {
		if err := watcher.Add(filepath.Dir(snapshotPath)); err != nil {
			return fmt.Errorf("watch %s: %w", filepath.Dir(snapshotPath), err)
		}
	}
	go srv.watch(ctx, watcher)

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleIndex)
	mux.HandleFunc("/ws", srv.handleWS)

	httpSrv := &http.Server{Addr: previewAddr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	logger.Info("preview running", "addr", "http://"+previewAddr)
	if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *previewServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.mu.RLock()
	html := s.html
	s.mu.RUnlock()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store, no-cache")
	_, _ = fmt.Fprint(w, html, reloadScript)
}

func (s *previewServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket accept failed", "error", err)
		return
	}
	s.clientsMu.Lock()
	s.clients[conn] = struct{}{}
	s.clientsMu.Unlock()
	s.logger.Debug("preview client connected")

	// Block until the client goes away; we never expect inbound messages.
	_, _, _ = conn.Read(r.Context())

	s.clientsMu.Lock()
	delete(s.clients, conn)
	s.clientsMu.Unlock()
	_ = conn.CloseNow()
}

func (s *previewServer) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	// Editors fire bursts of writes for a single save; debounce them.
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			s.logger.Debug("change detected", "file", event.Name, "op", event.Op.String())
			pending = time.After(150 * time.Millisecond)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watcher error", "error", err)
		case <-pending:
			pending = nil
			if err := s.recompose(); err != nil {
				// Keep serving the last good document.
				s.logger.Error("recompose failed", "error", err)
				continue
			}
			s.broadcast(ctx)
		}
	}
}

func (s *previewServer) recompose() error {
	doc, err := loadDocument(s.configPath, s.snapshotPath, s.logger)
	if err != nil {
		return err
	}
	html := newsmaker.NewComposer(doc.format, doc.reg).Compose()
	s.mu.Lock()
	s.html = html
	s.mu.Unlock()
	s.logger.Info("document composed", "bytes", len(html), "fields", doc.reg.Len())
	return nil
}

func (s *previewServer) broadcast(ctx context.Context) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for conn := range s.clients {
		writeCtx, cancel := context.WithTimeout(ctx, time.Second)
		err := conn.Write(writeCtx, websocket.MessageText, []byte("reload"))
		cancel()
		if err != nil {
			delete(s.clients, conn)
			_ = conn.CloseNow()
		}
	}
}
