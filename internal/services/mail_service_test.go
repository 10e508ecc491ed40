package services

import (
	"context"
	"strings"
	"testing"

	"yatra/pkg/config"
	"yatra/pkg/logger"
)

func TestAgentNotificationSkippedWithoutSMTP(t *testing.T) {
	svc := NewMailService(config.Config{}, logger.NewNop())
	if err := svc.SendAgentNotification(context.Background(), AgentAlert{SessionID: "abc", Priority: "high"}); err != nil {
		t.Fatalf("expected a silent skip, got %v", err)
	}
}

func TestAgentEmailRendering(t *testing.T) {
	cfg := config.Config{
		FrontendURL: "https://yatra.example/",
		SMTP:        config.SMTPConfig{Host: "smtp.example", Port: 587, From: "noreply@yatra.example", FromName: "Yatra", AgentNotifyEmail: "agents@yatra.example"},
	}
	svc := NewMailService(cfg, logger.NewNop()).(*smtpMailService)

	html, text, err := svc.renderEmail(emailData{
		Title:     "Chat needs an agent",
		Alert:     AgentAlert{SessionID: "s-1", Priority: "urgent", Reason: "urgent", UserName: "Ravi", LastMessage: "<b>help</b> asap"},
		ButtonURL: svc.appURL + "/agent/chats/s-1",
		AppName:   "Yatra",
		Year:      2025,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "&lt;b&gt;help&lt;/b&gt; asap") {
		t.Fatalf("expected the message to be escaped in html")
	}
	if !strings.Contains(text, "https://yatra.example/agent/chats/s-1") || !strings.Contains(text, "<b>help</b> asap") {
		t.Fatalf("unexpected text body:\n%s", text)
	}

	msg := string(svc.buildMessage("agents@yatra.example", "Chat needs an agent", html, text))
	if !strings.Contains(msg, "From: Yatra <noreply@yatra.example>\r\n") {
		t.Fatalf("unexpected from header in:\n%s", msg)
	}
	if !strings.Contains(msg, "multipart/alternative") {
		t.Fatalf("expected a multipart message")
	}
}
