package server

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/wozhendeai/generative-town/internal/store"
	"github.com/wozhendeai/generative-town/internal/telemetry"
	"github.com/wozhendeai/generative-town/pkg/catalog"
	"github.com/wozhendeai/generative-town/pkg/grid"
	"github.com/wozhendeai/generative-town/pkg/render"
	"github.com/wozhendeai/generative-town/pkg/roads"
	"github.com/wozhendeai/generative-town/pkg/validation"
)

// Server exposes one working map as a local HTTP API, so a generation
// agent can assemble a town action by action: set tiles, place paths,
// validate, repair and render.
type Server struct {
	port      int
	cat       *catalog.Catalog
	catReport *validation.Report
	atlas     *render.Atlas
	storage   store.Storage
	tracer    trace.Tracer

	// mu serializes all grid and session mutations; agents may fire
	// actions concurrently.
	mu      sync.Mutex
	grid    *grid.Grid
	session *roads.Session
}

// Config assembles a Server. Catalog and Grid are required; the rest
// defaults to sensible noops.
type Config struct {
	Port          int
	Catalog       *catalog.Catalog
	CatalogReport *validation.Report
	Grid          *grid.Grid
	Session       *roads.Session
	Atlas         *render.Atlas
	Storage       store.Storage
	Tracer        trace.Tracer
}

// New creates a server around an existing grid.
func New(cfg Config) *Server {
	s := &Server{
		port:      cfg.Port,
		cat:       cfg.Catalog,
		catReport: cfg.CatalogReport,
		atlas:     cfg.Atlas,
		storage:   cfg.Storage,
		tracer:    cfg.Tracer,
		grid:      cfg.Grid,
		session:   cfg.Session,
	}
	if s.catReport == nil {
		s.catReport = validation.NewReport()
	}
	if s.session == nil {
		s.session = roads.NewSession()
	}
	if s.tracer == nil {
		s.tracer = telemetry.NoopTracer()
	}
	return s
}

// Handler builds the route table. Split from Start so tests can drive
// the mux directly.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("GET /api/session", s.handleSession)
	mux.HandleFunc("GET /api/grid", s.handleGrid)
	mux.HandleFunc("GET /api/grid/ascii", s.handleGridASCII)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/network", s.handleNetwork)
	mux.HandleFunc("POST /api/network/repair", s.handleRepair)
	mux.HandleFunc("POST /api/tiles", s.handleSetTile)
	mux.HandleFunc("DELETE /api/tiles", s.handleClearTile)
	mux.HandleFunc("POST /api/paths", s.handlePlacePath)
	mux.HandleFunc("POST /api/render", s.handleRender)
	mux.HandleFunc("GET /api/maps", s.handleListMaps)
	mux.HandleFunc("POST /api/maps/{name}/save", s.handleSaveMap)
	mux.HandleFunc("POST /api/maps/{name}/load", s.handleLoadMap)
	mux.HandleFunc("DELETE /api/maps/{name}", s.handleDeleteMap)
	mux.HandleFunc("GET /", s.handleIndex)

	return mux
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("towngen server starting on http://localhost%s", addr)
	log.Printf("Map: %dx%d, theme %q", s.grid.Width(), s.grid.Height(), s.cat.Theme())

	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>towngen</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>towngen</h1>
<p>Agent action API. Try <code>GET /api/grid</code> or <code>GET /api/stats</code>.</p>
</div>
</body></html>`)
}
