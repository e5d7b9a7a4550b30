package worker

import (
	"context"
	"fmt"

	"github.com/crime-alert/backend/internal/config"
	emailProvider "github.com/crime-alert/backend/pkg/email"
	"github.com/crime-alert/backend/pkg/logger"
)

type emailSender struct {
	sender emailProvider.Sender
	config config.EmailConfig
}

func newEmailSender(
	sender emailProvider.Sender,
	config config.EmailConfig,
) *emailSender {
	return &emailSender{
		sender: sender,
		config: config,
	}
}

type otpEmailInput struct {
	Code string
}

func (s *emailSender) SendOtpEmail(ctx context.Context, email string, code string) error {
	if !s.config.Enabled {
		logger.Debug("email sending disabled, otp email skipped")
		return nil
	}

	subject := "Your OTP for Email Verification"

	templateInput := otpEmailInput{code}
	sendInput := emailProvider.SendEmailInput{Subject: subject, To: email}

	if err := sendInput.GenerateBodyFromHTML(s.config.Templates.OtpEmail, templateInput); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	if err := s.sender.Send(sendInput); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	return nil
}
