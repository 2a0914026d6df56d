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

type Server struct {
	Store          team.TeamStore
	Stats          *stats.Service
	Auth           auth.Authenticator
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
	pushVerifier   pubsub.PushVerifier
}

// attendanceRequest is the body of PUT /attendance: either one record or a
// batch for one event.
type attendanceRequest struct {
	team.AttendanceInput
	Records []team.AttendanceInput `json:"records,omitempty"`
}

// statisticsRequest is the body of PUT /statistics: the box score of one event.
type statisticsRequest struct {
	EventID    string                `json:"event_id"`
	Statistics []team.StatisticInput `json:"statistics"`
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
