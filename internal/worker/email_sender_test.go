package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/crime-alert/backend/internal/config"
	emailProvider "github.com/crime-alert/backend/pkg/email"
	mockEmail "github.com/crime-alert/backend/pkg/email/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func writeOtpTemplate(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "templates"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "templates", "otp_email.html"),
		[]byte("<p>Your code is {{.Code}}</p>"),
		0o644,
	))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(wd))
	})
}

func TestSendOtpEmail_Disabled(t *testing.T) {
	provider := &mockEmail.EmailSender{}

	sender := newEmailSender(provider, config.EmailConfig{Enabled: false})

	err := sender.SendOtpEmail(context.Background(), "john@example.com", "123456")
	require.NoError(t, err)
	provider.AssertNotCalled(t, "Send", mock.Anything)
}

func TestSendOtpEmail_RendersTemplate(t *testing.T) {
	writeOtpTemplate(t)

	provider := &mockEmail.EmailSender{}

	var sent emailProvider.SendEmailInput
	provider.On("Send", mock.MatchedBy(func(input emailProvider.SendEmailInput) bool {
		sent = input
		return true
	})).Return(nil)

	sender := newEmailSender(provider, config.EmailConfig{
		Enabled:   true,
		Templates: config.EmailTemplates{OtpEmail: "otp_email.html"},
	})

	err := sender.SendOtpEmail(context.Background(), "john@example.com", "123456")
	require.NoError(t, err)

	assert.Equal(t, "john@example.com", sent.To)
	assert.Equal(t, "Your OTP for Email Verification", sent.Subject)
	assert.Contains(t, sent.Body, "123456")
}

func TestSendOtpEmail_ProviderErrorSurfaced(t *testing.T) {
	writeOtpTemplate(t)

	provider := &mockEmail.EmailSender{}
	provider.On("Send", mock.Anything).Return(assert.AnError)

	sender := newEmailSender(provider, config.EmailConfig{
		Enabled:   true,
		Templates: config.EmailTemplates{OtpEmail: "otp_email.html"},
	})

	err := sender.SendOtpEmail(context.Background(), "john@example.com", "123456")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send email failed")
}
