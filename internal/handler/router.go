package handler

import (
	"net/http"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// RouterOptions はルーターの設定です
type RouterOptions struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
	// EnableTracing がtrueの場合、リクエストごとにX-Rayのセグメントを開始します
	EnableTracing bool
	TracingName   string
}

// NewRouter はAPIのルーティングとミドルウェアを組み立てます
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(opts.Logger))
	r.Use(requestIDLogger)
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("")
	}))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/teachers", h.ListTeachers)
		r.Post("/chat", h.Chat)
		r.Post("/requests", h.CreateRequest)
		r.Post("/register-teacher", h.RegisterTeacher)
		r.Post("/contact", h.Contact)
		r.Get("/health", h.Health)
	})

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	var handler http.Handler = c.Handler(r)
	if opts.EnableTracing {
		name := opts.TracingName
		if name == "" {
			name = "bilimhub-api"
		}
		handler = xray.Handler(xray.NewFixedSegmentNamer(name), handler)
	}
	return handler
}

// requestIDLogger はchiのリクエストIDをロガーのフィールドに追加します
func requestIDLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			logger := zerolog.Ctx(r.Context())
			logger.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("req_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}
