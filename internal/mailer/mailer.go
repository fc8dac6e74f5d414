package mailer

import (
	"context"
	"fmt"
)

// Sender delivers transactional email. Implementations must be safe for
// concurrent use by request handlers.
type Sender interface {
	SendEmail(ctx context.Context, toEmail, subject, html string) error
}

// VerificationEmail renders the email-verification message for a token.
func VerificationEmail(frontendURL, token string) (subject, html string) {
	verificationURL := fmt.Sprintf("%s/verify-email?token=%s", frontendURL, token)

	subject = "Verify your email address"
	html = fmt.Sprintf(`
      <h1>Email Verification</h1>
      <p>Please click the link below to verify your email address:</p>
      <a href="%s">%s</a>
      <p>This link will expire in 24 hours.</p>
    `, verificationURL, verificationURL)
	return subject, html
}
