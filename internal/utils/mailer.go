package utils

import (
	"context" // Cancellation for SMTP dial
	"fmt"     // Message body

	"github.com/wneessen/go-mail" // SMTP client
)

// Mailer delivers verification codes over SMTP
type Mailer struct {
	Host     string // SMTP host
	Port     int    // SMTP port
	Username string // SMTP auth user
	Password string // SMTP auth password
	From     string // Envelope sender
}

// SendCode mails a verification code to the given address
func (m *Mailer) SendCode(ctx context.Context, to, code string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("[Mileage Mall] Email verification code")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf("Your verification code is %s.\nIt expires in a few minutes.", code))

	client, err := mail.NewClient(m.Host,
		mail.WithPort(m.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.Username),
		mail.WithPassword(m.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}
