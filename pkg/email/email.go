// Package email sends transactional mail over plain SMTP: password resets
// and the new-sale alerts the notification center fans out to the owner.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
)

// Config holds SMTP configuration
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
}

// Service handles email sending
type Service struct {
	config Config
}

// NewService creates a new email service
func NewService(config Config) *Service {
	return &Service{config: config}
}

// SendPasswordResetEmail sends a password reset email
func (s *Service) SendPasswordResetEmail(toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/restablecer-contrasena?token=%s&email=%s",
		s.config.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	htmlContent, err := renderTemplate("password_reset", passwordResetTemplate, map[string]string{
		"Email":    toEmail,
		"ResetURL": resetURL,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	message := s.buildHTMLEmail(toEmail, "Restablecer contraseña - Comercio", htmlContent)
	return s.send(toEmail, message)
}

// SendSaleAlert mails the owner a summary of a freshly committed sale. The
// notification center calls this as one of its sinks; a failure here is
// logged by the caller and never aborts the order pipeline.
func (s *Service) SendSaleAlert(toEmail, clientName, clientPhone, total, receiptNo string) error {
	htmlContent, err := renderTemplate("sale_alert", saleAlertTemplate, map[string]string{
		"ClientName":  clientName,
		"ClientPhone": clientPhone,
		"Total":       total,
		"ReceiptNo":   receiptNo,
		"PortalURL":   s.config.FrontendURL,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Nueva venta %s - Comercio", receiptNo)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)
	return s.send(toEmail, message)
}

// send delivers an email using SMTP
func (s *Service) send(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *Service) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

func renderTemplate(name, body string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(body)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const passwordResetTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Restablecer contraseña</h2>
  <p>Recibimos una solicitud para restablecer la contraseña de <strong>{{.Email}}</strong>.</p>
  <p><a href="{{.ResetURL}}" style="background:#2563eb;color:#fff;padding:10px 20px;border-radius:6px;text-decoration:none;">Restablecer contraseña</a></p>
  <p>Si no solicitaste este cambio, puedes ignorar este correo. El enlace vence en 1 hora.</p>
</body>
</html>`

const saleAlertTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>🛒 Nueva venta {{.ReceiptNo}}</h2>
  <p><strong>Cliente:</strong> {{.ClientName}} ({{.ClientPhone}})</p>
  <p><strong>Total:</strong> ₡{{.Total}}</p>
  <p><a href="{{.PortalURL}}/ventas">Ver en el portal</a></p>
</body>
</html>`
