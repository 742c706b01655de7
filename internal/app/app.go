package app

import (
	"eventual/internal/app/deps"
	"eventual/internal/app/services"
	"eventual/internal/http/handlers/expressions/contains"
	createstream "eventual/internal/http/handlers/expressions/create_stream"
	"eventual/internal/http/handlers/expressions/events"
	"eventual/internal/http/handlers/expressions/resolve"
	"eventual/internal/http/handlers/expressions/schedule"
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	lang := deps.DefaultLanguage

	expressionsRouter := chi.NewRouter()
	expressionsRouter.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(deps.Config.HTTPRequestTimeout))
		r.Method(http.MethodPost, "/resolve", resolve.New(s.ResolveExpression, lang))
		r.Method(http.MethodPost, "/contains", contains.New(s.CheckMembership, lang, deps.Config.DefaultEventSpan))
		r.Method(http.MethodPost, "/schedule", schedule.New(s.ScheduleOccurrences, lang))
		r.Method(http.MethodPost, "/streams", createstream.New(s.StreamExpression, lang))
	})
	expressionsRouter.Method(http.MethodGet, "/events", events.New(deps.Logger, deps.SseServer))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	if deps.Config.SentryDsn != "" {
		router.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/expressions", expressionsRouter)

	return &http.Server{
		Handler: router,
		Addr:    deps.Config.HTTPAddr,
	}
}
