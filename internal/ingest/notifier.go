package ingest

import "github.com/rs/zerolog"

// Listener is an attached progress consumer. Send fails once the listener is gone.
type Listener interface {
	Send(text string) error
}

type Notifier interface {
	Notify(text string)
}

type progressNotifier struct {
	listener Listener
	logger   zerolog.Logger
}

// NewNotifier sends progress to listener and falls back to logger when the
// listener is nil or a send fails. It never blocks on or reports errors.
func NewNotifier(listener Listener, logger zerolog.Logger) Notifier {
	return &progressNotifier{listener: listener, logger: logger}
}

func (n *progressNotifier) Notify(text string) {
	if n.listener != nil {
		err := n.listener.Send(text)
		if err == nil {
			return
		}
		n.logger.Debug().Err(err).Msg("listener send failed, logging progress instead")
	}
	n.logger.Info().Str("progress", text).Msg("progress")
}
