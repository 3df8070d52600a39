// Package telemetry holds the Prometheus metrics of the bot.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wasit"

type Metrics struct {
	registerer prometheus.Registerer

	commands             *prometheus.CounterVec
	sessionsCreated      prometheus.Counter
	sessionsEnded        *prometheus.CounterVec
	roundsAdvanced       prometheus.Counter
	pointsRecorded       *prometheus.CounterVec
	notificationsDropped prometheus.Counter
	voiceRoomsCreated    prometheus.Counter
	voiceRoomsDeleted    prometheus.Counter
	moodMessages         *prometheus.CounterVec
}

// New registers every metric on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		registerer: reg,
		commands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Slash commands handled, by command and outcome",
		}, []string{"command", "outcome"}),
		sessionsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "debate_sessions_created_total",
			Help:      "Debate sessions created",
		}),
		sessionsEnded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "debate_sessions_ended_total",
			Help:      "Debate sessions ended, by reason",
		}, []string{"reason"}),
		roundsAdvanced: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "debate_rounds_advanced_total",
			Help:      "Round transitions caused by timer expiry",
		}),
		pointsRecorded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "debate_points_recorded_total",
			Help:      "Debate points recorded, by side",
		}, []string{"side"}),
		notificationsDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_dropped_total",
			Help:      "Notifications dropped because the announcer queue was full",
		}),
		voiceRoomsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "voice_rooms_created_total",
			Help:      "Temporary voice rooms created",
		}),
		voiceRoomsDeleted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "voice_rooms_deleted_total",
			Help:      "Temporary voice rooms deleted",
		}),
		moodMessages: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mood_messages_total",
			Help:      "Guild messages classified by mood",
		}, []string{"mood"}),
	}
}

// TrackActiveSessions exposes count as the live session gauge.
func (m *Metrics) TrackActiveSessions(count func() int) {
	if m == nil {
		return
	}
	promauto.With(m.registerer).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "debate_sessions_active",
		Help:      "Debate sessions currently held by the directory",
	}, func() float64 {
		return float64(count())
	})
}

func (m *Metrics) CommandHandled(command, outcome string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(command, outcome).Inc()
}

func (m *Metrics) SessionCreated() {
	if m == nil {
		return
	}
	m.sessionsCreated.Inc()
}

func (m *Metrics) SessionEnded(reason string) {
	if m == nil {
		return
	}
	m.sessionsEnded.WithLabelValues(reason).Inc()
}

func (m *Metrics) RoundAdvanced() {
	if m == nil {
		return
	}
	m.roundsAdvanced.Inc()
}

func (m *Metrics) PointRecorded(side string) {
	if m == nil {
		return
	}
	m.pointsRecorded.WithLabelValues(side).Inc()
}

func (m *Metrics) NotificationDropped() {
	if m == nil {
		return
	}
	m.notificationsDropped.Inc()
}

func (m *Metrics) VoiceRoomCreated() {
	if m == nil {
		return
	}
	m.voiceRoomsCreated.Inc()
}

func (m *Metrics) VoiceRoomDeleted() {
	if m == nil {
		return
	}
	m.voiceRoomsDeleted.Inc()
}

func (m *Metrics) MoodRecorded(mood string) {
	if m == nil {
		return
	}
	m.moodMessages.WithLabelValues(mood).Inc()
}
