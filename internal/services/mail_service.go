package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"
	texttemplate "text/template"
	"time"

	"yatra/pkg/config"
	"yatra/pkg/logger"
)

type IMailService interface {
	SendAgentNotification(ctx context.Context, alert AgentAlert) error
}

// AgentAlert describes a chat session waiting for a human agent.
type AgentAlert struct {
	SessionID   string
	Priority    string
	Reason      string
	UserName    string
	UserEmail   string
	LastMessage string
	Language    string
}

type smtpMailService struct {
	cfg      config.SMTPConfig
	appURL   string
	htmlTpl  *template.Template
	textTpl  *texttemplate.Template
	log      *logger.Logger
	disabled bool
}

// NewMailService logs alerts instead of sending them when SMTP is not configured.
func NewMailService(cfg config.Config, log *logger.Logger) IMailService {
	return &smtpMailService{
		cfg:      cfg.SMTP,
		appURL:   strings.TrimRight(cfg.FrontendURL, "/"),
		htmlTpl:  template.Must(template.New("agentHTML").Parse(agentHTMLTemplate)),
		textTpl:  texttemplate.Must(texttemplate.New("agentText").Parse(agentTextTemplate)),
		log:      log,
		disabled: cfg.SMTP.Host == "" || cfg.SMTP.AgentNotifyEmail == "",
	}
}

func (s *smtpMailService) SendAgentNotification(ctx context.Context, alert AgentAlert) error {
	subject := fmt.Sprintf("[%s] Chat %s needs an agent", strings.ToUpper(alert.Priority), shortID(alert.SessionID))
	if s.disabled {
		s.log.Info("agent notification (smtp disabled)",
			"session_id", alert.SessionID,
			"priority", alert.Priority,
			"reason", alert.Reason,
		)
		return nil
	}

	html, text, err := s.renderEmail(emailData{
		Title:     subject,
		Alert:     alert,
		ButtonURL: fmt.Sprintf("%s/agent/chats/%s", s.appURL, alert.SessionID),
		AppName:   s.cfg.FromName,
		Year:      time.Now().Year(),
	})
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.send(s.cfg.AgentNotifyEmail, subject, html, text)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

type emailData struct {
	Title     string
	Alert     AgentAlert
	ButtonURL string
	AppName   string
	Year      int
}

const agentHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
</head>
<body style="margin:0;padding:24px;background:#f4f6f4;font-family:Helvetica,Arial,sans-serif;color:#1f2a1f;">
  <div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:8px;padding:24px;">
    <h2 style="margin-top:0;">{{.Title}}</h2>
    <table style="width:100%;border-collapse:collapse;font-size:14px;">
      <tr><td style="padding:4px 0;color:#667066;">Priority</td><td>{{.Alert.Priority}}</td></tr>
      <tr><td style="padding:4px 0;color:#667066;">Reason</td><td>{{.Alert.Reason}}</td></tr>
      <tr><td style="padding:4px 0;color:#667066;">Language</td><td>{{.Alert.Language}}</td></tr>
      {{if .Alert.UserName}}<tr><td style="padding:4px 0;color:#667066;">Visitor</td><td>{{.Alert.UserName}}{{if .Alert.UserEmail}} &lt;{{.Alert.UserEmail}}&gt;{{end}}</td></tr>{{end}}
    </table>
    {{if .Alert.LastMessage}}
    <blockquote style="margin:16px 0;padding:12px;border-left:4px solid #2f7d32;background:#f4f6f4;">{{.Alert.LastMessage}}</blockquote>
    {{end}}
    <a href="{{.ButtonURL}}" style="display:inline-block;padding:10px 18px;background:#2f7d32;color:#ffffff;text-decoration:none;border-radius:6px;">Open conversation</a>
    <p style="font-size:12px;color:#667066;margin-top:24px;">&copy; {{.Year}} {{.AppName}}</p>
  </div>
</body>
</html>`

const agentTextTemplate = `{{.Title}}

Priority: {{.Alert.Priority}}
Reason:   {{.Alert.Reason}}
Language: {{.Alert.Language}}
{{if .Alert.UserName}}Visitor:  {{.Alert.UserName}} {{.Alert.UserEmail}}
{{end}}
{{if .Alert.LastMessage}}Last message:
{{.Alert.LastMessage}}
{{end}}
Open the conversation: {{.ButtonURL}}

{{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) renderEmail(data emailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer
	if err = s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

func (s *smtpMailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s\r\n", s.formatFromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)
	return msg.Bytes()
}

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	msg := s.buildMessage(to, subject, htmlBody, textBody)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	var (
		conn net.Conn
		err  error
	)
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	if s.cfg.UseSSL() {
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, tlsCfg)
	} else {
		conn, err = dialer.Dial("tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !s.cfg.UseSSL() {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		}
	}
	if s.cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	for _, rcpt := range strings.Split(to, ",") {
		if err = c.Rcpt(strings.TrimSpace(rcpt)); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", name), s.cfg.From)
}
