package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendCriticalAlert(toEmail, patientName, title, description string) error
	SendDailyReport(toEmail, patientName, reportHTML string) error
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

// SendCriticalAlert is the secondary escalation channel for CRITICAL
// alerts. Websocket delivery stays primary; email covers caregivers who
// are not connected.
func (s *emailService) SendCriticalAlert(toEmail, patientName, title, description string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("URGENT: %s", title))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2 style="color: #D32F2F;">Critical alert for %s</h2>
			<p><strong>%s</strong></p>
			<p>%s</p>
			<p>Please check on them as soon as possible, or open the dashboard for details.</p>
		</div>
	`, patientName, title, description)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send critical alert to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Critical alert sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendDailyReport(toEmail, patientName, reportHTML string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Daily summary for %s", patientName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Daily summary for %s</h2>
			%s
			<p>You receive this because you are listed as a caregiver.</p>
		</div>
	`, patientName, reportHTML)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send daily report to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Daily report sent to %s\n", toEmail)
	return nil
}
