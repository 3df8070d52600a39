package debate

import "errors"

var (
	ErrAlreadyExists            = errors.New("debate: session already exists for channel")
	ErrNotFound                 = errors.New("debate: no active session for channel")
	ErrInvalidPhase             = errors.New("debate: operation not allowed in current phase")
	ErrInvalidSide              = errors.New("debate: side must be pro or kontra")
	ErrNotAParticipant          = errors.New("debate: caller has not joined a side")
	ErrInsufficientParticipants = errors.New("debate: both sides need at least one participant")
	ErrInvalidSettings          = errors.New("debate: invalid session settings")
	ErrEmptyPoint               = errors.New("debate: point text is empty")
	ErrClosed                   = errors.New("debate: directory is shutting down")
)
