package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendMemoAccepted(toEmail, memoTitle string, iteration int) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendMemoAccepted(toEmail, memoTitle string, iteration int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your memo has been accepted")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Memo accepted</h2>
			<p>The memo <strong>%s</strong> (iteration %d) has been marked as accepted.</p>
			<p>You can keep refining it; accepting again will record the newest iteration.</p>
		</div>
	`, memoTitle, iteration)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send acceptance notice to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Acceptance notice sent to %s\n", toEmail)
	return nil
}
