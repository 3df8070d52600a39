package debate

type NotificationKind string

const (
	NotificationRoundStarted    NotificationKind = "round_started"
	NotificationRoundAdvanced   NotificationKind = "round_advanced"
	NotificationDebateEnded     NotificationKind = "debate_ended"
	NotificationDebateStopped   NotificationKind = "debate_stopped"
	NotificationDebateAbandoned NotificationKind = "debate_abandoned"
)

type Notification struct {
	Kind    NotificationKind
	Summary Summary
}

// Terminal reports whether the notification closes a session.
func (n Notification) Terminal() bool {
	switch n.Kind {
	case NotificationDebateEnded, NotificationDebateStopped, NotificationDebateAbandoned:
		return true
	default:
		return false
	}
}

type Notifier interface {
	Notify(n Notification)
}

type noopNotifier struct{}

func (noopNotifier) Notify(Notification) {}
