package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"mime"
	"net/smtp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tadreeb/academy/internal/app/models"
)

// Notifier sends staff notifications about new form submissions
type Notifier interface {
	NotifyContact(ctx context.Context, msg *models.ContactMessage) error
	NotifyRegistration(ctx context.Context, reg *models.ProgramRegistration, program *models.Program) error
	NotifyConsulting(ctx context.Context, req *models.ConsultingRequest) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	// NotifyTo receives staff notifications
	NotifyTo []string
	// AdminURL links notifications to the back-office
	AdminURL string
}

// sendFunc delivers a fully formed message
type sendFunc func(to []string, message []byte) error

// SMTPNotifier implements Notifier over SMTP
type SMTPNotifier struct {
	config SMTPConfig
	logger zerolog.Logger
	send   sendFunc
	now    func() time.Time
}

// NewSMTPNotifier creates a new notifier
func NewSMTPNotifier(config SMTPConfig, logger zerolog.Logger) *SMTPNotifier {
	n := &SMTPNotifier{
		config: config,
		logger: logger,
		now:    time.Now,
	}
	n.send = n.sendSMTP
	return n
}

// Enabled reports whether SMTP credentials and recipients are configured
func (s *SMTPNotifier) Enabled() bool {
	return s.config.Username != "" && s.config.Password != "" && s.config.Host != "" && len(s.config.NotifyTo) > 0
}

// NotifyContact announces a new contact message
func (s *SMTPNotifier) NotifyContact(ctx context.Context, msg *models.ContactMessage) error {
	rows := map[string]string{
		"Name":    msg.FullName,
		"Email":   msg.Email,
		"Subject": msg.Subject,
		"Message": msg.Message,
		"Lang":    msg.Lang,
	}
	if msg.Phone != nil {
		rows["Phone"] = *msg.Phone
	}
	return s.deliver(ctx, "New contact message: "+msg.Subject, "contact-messages", rows)
}

// NotifyRegistration announces a new program registration
func (s *SMTPNotifier) NotifyRegistration(ctx context.Context, reg *models.ProgramRegistration, program *models.Program) error {
	title := fmt.Sprintf("#%d", reg.ProgramID)
	if program != nil {
		title = program.Title.In(reg.Lang)
	}
	rows := map[string]string{
		"Program": title,
		"Name":    reg.FullName,
		"Email":   reg.Email,
		"Phone":   reg.Phone,
		"Lang":    reg.Lang,
	}
	if reg.Organization != nil {
		rows["Organization"] = *reg.Organization
	}
	if reg.JobTitle != nil {
		rows["Job title"] = *reg.JobTitle
	}
	if reg.Notes != nil {
		rows["Notes"] = *reg.Notes
	}
	return s.deliver(ctx, "New registration: "+title, "registrations", rows)
}

// NotifyConsulting announces a new consulting request
func (s *SMTPNotifier) NotifyConsulting(ctx context.Context, req *models.ConsultingRequest) error {
	rows := map[string]string{
		"Name":    req.FullName,
		"Email":   req.Email,
		"Phone":   req.Phone,
		"Service": string(req.ServiceType),
		"Message": req.Message,
		"Status":  string(req.ForwardStatus),
		"Lang":    req.Lang,
	}
	if req.Organization != nil {
		rows["Organization"] = *req.Organization
	}
	return s.deliver(ctx, "New consulting request: "+string(req.ServiceType), "consulting-requests", rows)
}

func (s *SMTPNotifier) deliver(ctx context.Context, subject, section string, rows map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Without credentials the notification is only logged (development)
	if !s.Enabled() {
		s.logger.Warn().
			Str("subject", subject).
			Interface("fields", rows).
			Msg("SMTP not configured - staff notification not sent")
		return nil
	}

	message := s.buildMessage(subject, s.renderBody(subject, section, rows))
	if err := s.send(s.config.NotifyTo, message); err != nil {
		s.logger.Error().Err(err).Str("subject", subject).Msg("Failed to send staff notification")
		return fmt.Errorf("failed to send notification: %w", err)
	}

	s.logger.Info().Str("subject", subject).Strs("to", s.config.NotifyTo).Msg("Staff notification sent")
	return nil
}

func (s *SMTPNotifier) renderBody(subject, section string, rows map[string]string) string {
	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(`<html><body><div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	fmt.Fprintf(&b, `<h2 style="color: #333;">%s</h2><table cellpadding="6">`, html.EscapeString(subject))
	for _, k := range keys {
		fmt.Fprintf(&b, `<tr><td><strong>%s</strong></td><td dir="auto">%s</td></tr>`,
			html.EscapeString(k), strings.ReplaceAll(html.EscapeString(rows[k]), "\n", "<br>"))
	}
	b.WriteString(`</table>`)
	if s.config.AdminURL != "" {
		link := strings.TrimRight(s.config.AdminURL, "/") + "/" + section
		fmt.Fprintf(&b, `<p><a href="%s">Open in back-office</a></p>`, html.EscapeString(link))
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}

// buildMessage writes the headers in a fixed order; header values are
// stripped of line breaks and Q-encoded so Arabic subjects survive.
func (s *SMTPNotifier) buildMessage(subject, htmlBody string) []byte {
	from := fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", headerSafe(s.config.FromName)), s.config.FromEmail)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(s.config.NotifyTo, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", headerSafe(subject)))
	fmt.Fprintf(&b, "Date: %s\r\n", s.now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

func headerSafe(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}

// sendSMTP delivers message through the configured server
func (s *SMTPNotifier) sendSMTP(to []string, message []byte) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if !s.config.UseTLS {
		return smtp.SendMail(serverAddress, auth, s.config.FromEmail, to, message)
	}

	conn, err := tls.Dial("tcp", serverAddress, &tls.Config{ServerName: s.config.Host, MinVersion: tls.VersionTLS12})
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range to {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return nil
}
