package http

import (
	"net/http"

	"github.com/mauv0809/hoopsheet/internal/auth"
	"github.com/mauv0809/hoopsheet/internal/config"
	"github.com/mauv0809/hoopsheet/internal/metrics"
	"github.com/mauv0809/hoopsheet/internal/processor"
	"github.com/mauv0809/hoopsheet/internal/pubsub"
	"github.com/mauv0809/hoopsheet/internal/stats"
	"github.com/mauv0809/hoopsheet/internal/team"
)

func NewServer(store team.TeamStore, authenticator auth.Authenticator, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, processor *processor.Processor, pubsubClient pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Stats:          stats.NewService(store, metricsSvc),
		Auth:           authenticator,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsubClient,
		pushVerifier:   pubsub.NewPushVerifier(cfg.Push.Audience, cfg.Push.ServiceAccount, cfg.Push.Token),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// public routes get paramsMiddleware and metrics, owner routes also requireAuth,
	// and the Pub/Sub push route requirePushAuth.
	public := func(pattern string, h http.Handler) {
		s.Router.Handle(pattern, Chain(h, paramsMiddleware, s.metricsMiddleware(pattern)))
	}
	owner := func(pattern string, h http.Handler) {
		s.Router.Handle(pattern, Chain(h, paramsMiddleware, s.metricsMiddleware(pattern), s.requireAuth))
	}

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	public("GET /health", s.HealthCheckHandler())
	public("POST /auth/signup", s.SignUpHandler())
	public("POST /auth/signin", s.SignInHandler())
	s.Router.Handle("POST /pubsub/stats-recorded", Chain(s.StatsRecordedPushHandler(),
		paramsMiddleware, s.metricsMiddleware("POST /pubsub/stats-recorded"), s.requirePushAuth))

	owner("POST /auth/signout", s.SignOutHandler())
	owner("GET /auth/user", s.CurrentUserHandler())

	owner("GET /players", s.ListPlayersHandler())
	owner("POST /players", s.CreatePlayerHandler())
	owner("GET /players/{id}", s.GetPlayerHandler())
	owner("PUT /players/{id}", s.UpdatePlayerHandler())
	owner("DELETE /players/{id}", s.DeletePlayerHandler())
	owner("GET /players/{id}/series", s.PlayerSeriesHandler())

	owner("GET /events", s.ListEventsHandler())
	owner("POST /events", s.CreateEventHandler())
	owner("GET /events/{id}", s.GetEventHandler())
	owner("PUT /events/{id}", s.UpdateEventHandler())
	owner("DELETE /events/{id}", s.DeleteEventHandler())
	owner("GET /events/{id}/boxscore", s.BoxScoreHandler())
	owner("GET /events/{id}/statistics.csv", s.BoxScoreCSVHandler())

	owner("GET /attendance", s.ListAttendanceHandler())
	owner("PUT /attendance", s.SaveAttendanceHandler())
	owner("GET /statistics", s.ListStatisticsHandler())
	owner("PUT /statistics", s.SaveStatisticsHandler())

	owner("GET /averages/team", s.TeamAveragesHandler())
	owner("GET /averages/players", s.PlayerAveragesHandler())

	owner("GET /profile", s.GetProfileHandler())
	owner("PUT /profile", s.UpdateProfileHandler())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
