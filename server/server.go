package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"seo_article_generator/generator"
)

const (
	defaultSessionTTL      = 2 * time.Hour
	defaultGenerateTimeout = 3 * time.Minute
)

// Options configures a Server.
type Options struct {
	Generator generator.ArticleGenerator
	Logger    *logrus.Logger

	SessionTTL time.Duration
	// GenerateTimeout bounds one outbound generation call.
	GenerateTimeout time.Duration
	// GenerateRate limits generation calls across all sessions; zero disables it.
	GenerateRate  rate.Limit
	GenerateBurst int

	AllowedOrigins []string
}

type Server struct {
	gen             generator.ArticleGenerator
	logger          *logrus.Logger
	store           *sessionStore
	limiter         *rate.Limiter
	generateTimeout time.Duration
	allowedOrigins  []string
}

func New(opts Options) (*Server, error) {
	if opts.Generator == nil {
		return nil, errors.New("article generator required")
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}
	if opts.GenerateTimeout <= 0 {
		opts.GenerateTimeout = defaultGenerateTimeout
	}
	var limiter *rate.Limiter
	if opts.GenerateRate > 0 {
		burst := opts.GenerateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(opts.GenerateRate, burst)
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &Server{
		gen:             opts.Generator,
		logger:          opts.Logger,
		store:           newStore(opts.SessionTTL),
		limiter:         limiter,
		generateTimeout: opts.GenerateTimeout,
		allowedOrigins:  origins,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/options", s.handleOptions)
	mux.HandleFunc("POST /api/sessions", s.handleSessionCreate)
	mux.HandleFunc("GET /api/sessions/{id}", s.withSession(s.handleSessionGet))
	mux.HandleFunc("PUT /api/sessions/{id}/credential", s.withSession(s.handleCredential))

	mux.HandleFunc("POST /api/sessions/{id}/basic-info", s.withSession(s.handleBasicInfo))
	mux.HandleFunc("POST /api/sessions/{id}/content-details", s.withSession(s.handleContentDetails))
	mux.Handle("POST /api/sessions/{id}/style", rateLimit(s.limiter, s.withSession(s.handleStyle)))
	mux.HandleFunc("POST /api/sessions/{id}/back", s.withSession(s.handleBack))
	mux.HandleFunc("POST /api/sessions/{id}/new", s.withSession(s.handleStartNew))

	mux.HandleFunc("PUT /api/sessions/{id}/article", s.withSession(s.handleArticleEdit))
	mux.HandleFunc("GET /api/sessions/{id}/article/preview", s.withSession(s.handleArticlePreview))
	mux.HandleFunc("GET /api/sessions/{id}/article/export", s.withSession(s.handleArticleExport))

	mux.HandleFunc("GET /api/sessions/{id}/history", s.withSession(s.handleHistoryList))
	mux.HandleFunc("POST /api/sessions/{id}/history/{articleID}/open", s.withSession(s.handleHistoryOpen))
	mux.HandleFunc("DELETE /api/sessions/{id}/history/{articleID}", s.withSession(s.handleHistoryDelete))
	mux.HandleFunc("GET /api/sessions/{id}/history/{articleID}/export", s.withSession(s.handleHistoryExport))

	c := cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-ID"},
	})
	return logMiddleware(s.logger, c.Handler(mux))
}
