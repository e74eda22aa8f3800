package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendBookingConfirmation(toEmail, guestName, accommodationName, stayDate string, amount float64) error
	SendBookingCancellation(toEmail, guestName, accommodationName string, refundAmount, fee float64) error
	SendRefundUpdate(toEmail, guestName, status string, amount float64) error
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

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send %q to %s: %v\n", subject, toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] %q sent to %s\n", subject, toEmail)
	return nil
}

func (s *emailService) SendBookingConfirmation(toEmail, guestName, accommodationName, stayDate string, amount float64) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Booking Confirmed!</h2>
			<p>Hi %s,</p>
			<p>Your stay at <strong>%s</strong> on <strong>%s</strong> is confirmed.</p>
			<p>Amount paid: <strong>INR %.2f</strong></p>
			<p>We look forward to hosting you.</p>
		</div>
	`, guestName, accommodationName, stayDate, amount)

	return s.send(toEmail, "Your Booking is Confirmed", body)
}

func (s *emailService) SendBookingCancellation(toEmail, guestName, accommodationName string, refundAmount, fee float64) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Booking Cancelled</h2>
			<p>Hi %s,</p>
			<p>Your booking at <strong>%s</strong> has been cancelled.</p>
			<p>Refund amount: <strong>INR %.2f</strong> (cancellation fee INR %.2f)</p>
			<p>If a refund is due, you can track its progress from your bookings page.</p>
		</div>
	`, guestName, accommodationName, refundAmount, fee)

	return s.send(toEmail, "Your Booking Has Been Cancelled", body)
}

func (s *emailService) SendRefundUpdate(toEmail, guestName, status string, amount float64) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Refund Update</h2>
			<p>Hi %s,</p>
			<p>Your refund of <strong>INR %.2f</strong> is now <strong>%s</strong>.</p>
			<p>If you have questions, just reply to this email.</p>
		</div>
	`, guestName, amount, status)

	return s.send(toEmail, "Update on Your Refund", body)
}
