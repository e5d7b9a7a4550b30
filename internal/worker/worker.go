package worker

import (
	"context"

	"github.com/crime-alert/backend/internal/config"
	emailProvider "github.com/crime-alert/backend/pkg/email"
)

type Workers struct {
	EmailSender EmailSender
}

type Deps struct {
	EmailProvider emailProvider.Sender
	Config        *config.Config
}

// EmailSender delivers one-time codes. The queue processor drives it
// for registration emails; the lifecycle service calls it directly for
// resend and forgot-password.
type EmailSender interface {
	SendOtpEmail(ctx context.Context, email string, code string) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		EmailSender: newEmailSender(deps.EmailProvider, deps.Config.Email),
	}
}
