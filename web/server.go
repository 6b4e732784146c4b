// Package web serves the browser form for meeting preparation and the
// briefing download endpoint.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/nexxia-ai/meetingprep"
	"github.com/nexxia-ai/meetingprep/config"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server is the meeting preparation web server.
type Server struct {
	preparer *meetingprep.Preparer
	cfg      *config.Config
	router   *gin.Engine
	logger   *slog.Logger

	// briefings holds generated briefs for the lifetime of the process so the
	// download link can serve them. This is per-process only, not persistence.
	mu        sync.RWMutex
	briefings map[string]storedBriefing
}

type storedBriefing struct {
	Content  string
	Filename string
}

// NewServer creates a new web server. preparer may be nil when the required
// API keys are missing; the server then shows a blocking configuration error
// instead of the form actions.
func NewServer(preparer *meetingprep.Preparer, cfg *config.Config) *Server {
	router := gin.Default()

	s := &Server{
		preparer:  preparer,
		cfg:       cfg,
		router:    router,
		logger:    slog.Default(),
		briefings: make(map[string]storedBriefing),
	}

	tmpl := template.Must(template.ParseFS(templatesFS, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.GET("/", s.handleIndex)
	router.POST("/prepare", s.handlePrepare)
	router.GET("/download/:id", s.handleDownload)

	return s
}

// Run starts the web server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) storeBriefing(id string, b *meetingprep.Briefing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.briefings[id] = storedBriefing{Content: b.ExecutiveBrief, Filename: b.Filename}
}

func (s *Server) lookupBriefing(id string) (storedBriefing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.briefings[id]
	return b, ok
}
