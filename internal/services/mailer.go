package services

import (
	"os"

	"github.com/rs/zerolog"
)

// Mailer is the boundary to the outgoing-mail collaborator. Delivery
// mechanics live outside this service; the default implementation just
// records the send.
type Mailer interface {
	SendWelcome(email, username string) error
}

// LogMailer logs welcome mails instead of delivering them.
type LogMailer struct {
	log zerolog.Logger
}

// NewLogMailer creates a LogMailer
func NewLogMailer() *LogMailer {
	return &LogMailer{
		log: zerolog.New(os.Stderr).With().Timestamp().Str("component", "mailer").Logger(),
	}
}

func (m *LogMailer) SendWelcome(email, username string) error {
	m.log.Info().Str("to", email).Str("username", username).Msg("welcome mail queued")
	return nil
}
