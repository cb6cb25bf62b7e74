package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
	"os"
	"strconv"
)

type IMailService interface {
	SendMailToNotifyUser(to, subject, body, ctaText, ctaURL string) error
	SendMailToResetPassword(email, token string) error
}

// SMTPConfig holds SMTP + branding config, filled from environment.
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	FromName   string
	UseSSL     bool
	AppName    string
	AppBaseURL string
}

func SMTPConfigFromEnv() SMTPConfig {
	port := 587
	if v, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && v > 0 {
		port = v
	}
	return SMTPConfig{
		Host:       os.Getenv("SMTP_HOST"),
		Port:       port,
		Username:   os.Getenv("SMTP_USERNAME"),
		Password:   os.Getenv("SMTP_PASSWORD"),
		From:       os.Getenv("SMTP_FROM"),
		FromName:   os.Getenv("SMTP_FROM_NAME"),
		UseSSL:     port == 465,
		AppName:    "FitPlan",
		AppBaseURL: os.Getenv("APP_BASE_URL"),
	}
}

const mailHTMLTemplate = `<html>
<body style="font-family:sans-serif">
  <h2>{{.AppName}}</h2>
  <p>{{.Body}}</p>
  {{if .CTAURL}}<p><a href="{{.CTAURL}}">{{.CTAText}}</a></p>{{end}}
</body>
</html>`

type smtpMailService struct {
	cfg SMTPConfig
	tpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	tpl, err := template.New("mail").Parse(mailHTMLTemplate)
	if err != nil {
		return nil, err
	}
	return &smtpMailService{cfg: cfg, tpl: tpl}, nil
}

func (s *smtpMailService) SendMailToNotifyUser(to, subject, body, ctaText, ctaURL string) error {
	var html bytes.Buffer
	err := s.tpl.Execute(&html, map[string]string{
		"AppName": s.cfg.AppName,
		"Body":    body,
		"CTAText": ctaText,
		"CTAURL":  ctaURL,
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html.String())
}

func (s *smtpMailService) SendMailToResetPassword(email, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.AppBaseURL, url.QueryEscape(token))
	return s.SendMailToNotifyUser(
		email,
		"Reset your password",
		"We received a request to reset your password. The link below expires in 30 minutes.",
		"Reset password",
		resetURL,
	)
}

func (s *smtpMailService) send(to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	from := s.cfg.From

	msg := bytes.Buffer{}
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.cfg.FromName, from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	msg.WriteString(htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if s.cfg.UseSSL {
		conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.cfg.Host})
		if err != nil {
			return err
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.Auth(auth); err != nil {
			return err
		}
		if err := client.Mail(from); err != nil {
			return err
		}
		if err := client.Rcpt(to); err != nil {
			return err
		}
		w, err := client.Data()
		if err != nil {
			return err
		}
		if _, err := w.Write(msg.Bytes()); err != nil {
			return err
		}
		return w.Close()
	}

	return smtp.SendMail(addr, auth, from, []string{to}, msg.Bytes())
}
