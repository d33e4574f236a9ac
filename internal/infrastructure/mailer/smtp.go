package mailer

import (
	"context"
	"fmt"

	"jayam-backend/config"
	"jayam-backend/internal/domain"

	gopkgmail "gopkg.in/gomail.v2"
)

const otpBodyTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>OTP Verification</h2>
  <p>Your OTP for Jayam Machinery account verification is:</p>
  <h1 style="font-size: 32px; letter-spacing: 5px; text-align: center; padding: 20px; background-color: #f5f5f5; border-radius: 5px;">%s</h1>
  <p>This OTP will expire in 10 minutes.</p>
  <p>If you didn't request this OTP, please ignore this email.</p>
</div>`

type EmailSender struct {
	cfg *config.Config
}

func NewEmailSender(cfg *config.Config) domain.Mailer {
	return &EmailSender{cfg: cfg}
}

func (s *EmailSender) SendOTP(ctx context.Context, email, code string) error {
	m := gopkgmail.NewMessage()
	m.SetHeader("From", s.cfg.SMTPFrom)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "OTP Verification - Jayam Machinery")
	m.SetBody("text/plain", fmt.Sprintf("Your OTP for Jayam Machinery account verification is: %s\nThis OTP will expire in 10 minutes.", code))
	m.AddAlternative("text/html", fmt.Sprintf(otpBodyTemplate, code))

	d := gopkgmail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPassword)
	d.SSL = s.cfg.SMTPPort == 465

	// gomail has no context support; honor cancellation before dialing.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send otp mail: %w", err)
	}
	return nil
}
