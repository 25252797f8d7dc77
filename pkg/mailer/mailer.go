package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
)

// Config holds SMTP configuration
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

// Mailer handles sending emails. Every caller treats delivery as
// best-effort: errors are logged here and swallowed at call sites.
type Mailer struct {
	config Config
}

// New creates a new Mailer instance
func New(cfg Config) *Mailer {
	return &Mailer{config: cfg}
}

// SendWelcome sends the registration welcome email
func (m *Mailer) SendWelcome(toEmail string) error {
	subject := "Bienvenue sur Miguafi"

	body, err := m.renderWelcomeTemplate(toEmail)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return m.send(toEmail, subject, body)
}

// SendMatchAlert notifies a user that a counterpart window matches theirs
func (m *Mailer) SendMatchAlert(toEmail, message string) error {
	subject := "Miguafi - Nouvelle correspondance"

	body, err := m.renderMatchTemplate(message)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return m.send(toEmail, subject, body)
}

// send delivers an email via SMTP
func (m *Mailer) send(to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	headers := map[string]string{
		"From":         fmt.Sprintf("%s <%s>", m.config.FromName, m.config.From),
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=\"utf-8\"",
	}

	var msg bytes.Buffer
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	var auth smtp.Auth
	if m.config.Username != "" && m.config.Password != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	err := smtp.SendMail(addr, auth, m.config.From, []string{to}, msg.Bytes())
	if err != nil {
		log.Printf("❌ Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("📧 Email sent to %s: %s", to, subject)
	return nil
}

// renderWelcomeTemplate returns the HTML body for the welcome email
func (m *Mailer) renderWelcomeTemplate(email string) (string, error) {
	tmpl := `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f6f7f9;font-family:'Segoe UI',Tahoma,Geneva,Verdana,sans-serif;">
    <div style="max-width:500px;margin:40px auto;background:#ffffff;border-radius:16px;overflow:hidden;border:1px solid #e2e8f0;">
        <div style="background:linear-gradient(135deg,#f59e0b 0%,#d97706 100%);padding:32px;text-align:center;">
            <h1 style="color:#fff;margin:0;font-size:28px;font-weight:700;">🐶 Miguafi</h1>
            <p style="color:rgba(255,255,255,0.9);margin:8px 0 0;font-size:14px;">Garde de chien entre particuliers</p>
        </div>
        <div style="padding:32px;">
            <p style="color:#1e293b;font-size:16px;line-height:1.6;margin:0 0 24px;">
                Bonjour <strong>{{.Email}}</strong>,
            </p>
            <p style="color:#475569;font-size:14px;line-height:1.6;margin:0 0 24px;">
                Votre compte Miguafi est prêt. Publiez une offre ou une demande de garde,
                et nous vous préviendrons dès qu'une correspondance est trouvée.
            </p>
        </div>
        <div style="padding:16px 32px;border-top:1px solid #e2e8f0;text-align:center;">
            <p style="color:#94a3b8;font-size:12px;margin:0;">© 2026 Miguafi. Tous droits réservés.</p>
        </div>
    </div>
</body>
</html>`

	t, err := template.New("welcome").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = t.Execute(&buf, map[string]interface{}{
		"Email": email,
	})
	return buf.String(), err
}

// renderMatchTemplate returns the HTML body for a match notification email
func (m *Mailer) renderMatchTemplate(message string) (string, error) {
	tmpl := `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f6f7f9;font-family:'Segoe UI',Tahoma,Geneva,Verdana,sans-serif;">
    <div style="max-width:500px;margin:40px auto;background:#ffffff;border-radius:16px;overflow:hidden;border:1px solid #e2e8f0;">
        <div style="background:linear-gradient(135deg,#10b981 0%,#059669 100%);padding:32px;text-align:center;">
            <h1 style="color:#fff;margin:0;font-size:28px;font-weight:700;">🐶 Miguafi</h1>
            <p style="color:rgba(255,255,255,0.9);margin:8px 0 0;font-size:14px;">Nouvelle correspondance</p>
        </div>
        <div style="padding:32px;">
            <div style="background:#ecfdf5;border:2px dashed #6ee7b7;border-radius:12px;padding:24px;text-align:center;margin:0 0 24px;">
                <span style="font-size:15px;color:#065f46;">{{.Message}}</span>
            </div>
            <p style="color:#64748b;font-size:13px;line-height:1.5;margin:0;">
                Retrouvez le détail dans vos notifications Miguafi.
            </p>
        </div>
        <div style="padding:16px 32px;border-top:1px solid #e2e8f0;text-align:center;">
            <p style="color:#94a3b8;font-size:12px;margin:0;">© 2026 Miguafi. Tous droits réservés.</p>
        </div>
    </div>
</body>
</html>`

	t, err := template.New("match").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = t.Execute(&buf, map[string]interface{}{
		"Message": message,
	})
	return buf.String(), err
}
