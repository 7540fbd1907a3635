package services

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/placementcell/placement_service/internal/logger"
	"github.com/rs/zerolog"
)

// MailService sends best-effort notification emails. It is only ever
// invoked from the mail worker, never from a request path.
type MailService struct {
	host     string
	port     string
	user     string
	password string
	from     string
	fromName string
	log      zerolog.Logger
}

func NewMailService(host, port, user, password, from, fromName string) *MailService {
	if port == "" {
		port = "587"
	}
	return &MailService{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		from:     from,
		fromName: fromName,
		log:      logger.Get(),
	}
}

func (s *MailService) SendNotification(to, title, message string) error {
	if strings.TrimSpace(to) == "" {
		return errors.New("missing recipient address")
	}
	if s.host == "" {
		return errors.New("smtp host not configured")
	}

	htmlBody, err := s.renderTemplate(title, message)
	if err != nil {
		return err
	}

	fromHeader := fmt.Sprintf("%s <%s>", s.fromName, s.from)

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", title),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n")

	if err := s.sendSMTPWithTimeout(to, []byte(msg)); err != nil {
		return err
	}

	s.log.Info().Str("to", to).Str("title", title).Msg("notification mail sent")
	return nil
}

func (s *MailService) renderTemplate(title, message string) (string, error) {
	tmpl, err := template.ParseFiles("internal/templates/notification-email.html")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]string{
		"Title":   title,
		"Message": message,
	})
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *MailService) sendSMTPWithTimeout(to string, msg []byte) error {
	addr := net.JoinHostPort(s.host, s.port)

	conn, err := net.DialTimeout("tcp", addr, 8*time.Second)
	if err != nil {
		return err
	}
	// bound the whole exchange, not just the dial
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return err
		}
	}

	if s.user != "" {
		auth := smtp.PlainAuth("", s.user, s.password, s.host)
		if err := c.Auth(auth); err != nil {
			return err
		}
	}

	if err := c.Mail(s.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
