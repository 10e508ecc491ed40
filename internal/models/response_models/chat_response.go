package response_models

import "yatra/internal/models/db_models"

var SupportedLanguages = []Language{
	{Code: "en", Name: "English", Native: "English"},
	{Code: "hi", Name: "Hindi", Native: "हिन्दी"},
	{Code: "bn", Name: "Bengali", Native: "বাংলা"},
	{Code: "or", Name: "Odia", Native: "ଓଡ଼ିଆ"},
	{Code: "sat", Name: "Santali", Native: "ᱥᱟᱱᱛᱟᱲᱤ"},
	{Code: "ho", Name: "Ho", Native: "Ho"},
	{Code: "kha", Name: "Kharia", Native: "Kharia"},
	{Code: "kur", Name: "Kurukh", Native: "Kurukh"},
}

type Language struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Native string `json:"native"`
}

type InitializeChatResponse struct {
	SessionID          string     `json:"sessionId"`
	Status             string     `json:"status"`
	Language           string     `json:"language"`
	Greeting           string     `json:"greeting"`
	SupportedLanguages []Language `json:"supportedLanguages"`
}

type ChatMessageResponse struct {
	MessageID         string `json:"messageId"`
	SessionID         string `json:"sessionId"`
	Sender            string `json:"sender"`
	Message           string `json:"message"`
	OriginalLanguage  string `json:"originalLanguage"`
	TranslatedMessage string `json:"translatedMessage,omitempty"`
	Timestamp         int64  `json:"timestamp"`
}

func NewChatMessageResponse(m *db_models.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		MessageID:         m.MessageID,
		SessionID:         m.SessionID,
		Sender:            m.Sender,
		Message:           m.Message,
		OriginalLanguage:  m.OriginalLanguage,
		TranslatedMessage: m.TranslatedMessage,
		Timestamp:         m.SentAt,
	}
}

// SendMessageResponse has no Reply while an agent owns the session.
type SendMessageResponse struct {
	UserMessage      ChatMessageResponse  `json:"userMessage"`
	Reply            *ChatMessageResponse `json:"reply,omitempty"`
	Source           string               `json:"source,omitempty"`
	Escalated        bool                 `json:"escalated"`
	EscalationReason string               `json:"escalationReason,omitempty"`
	Status           string               `json:"status"`
}

type ChatHistoryResponse struct {
	SessionID  string                `json:"sessionId"`
	Status     string                `json:"status"`
	Messages   []ChatMessageResponse `json:"messages"`
	Pagination Pagination            `json:"pagination"`
}

type FAQSuggestion struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

type ChatSessionResponse struct {
	SessionID        string                    `json:"sessionId"`
	UserID           string                    `json:"userId,omitempty"`
	Status           string                    `json:"status"`
	Priority         string                    `json:"priority"`
	Category         string                    `json:"category"`
	Language         string                    `json:"language"`
	UserName         string                    `json:"userName,omitempty"`
	UserEmail        string                    `json:"userEmail,omitempty"`
	AssignedAgentID  string                    `json:"assignedAgentId,omitempty"`
	EscalationReason string                    `json:"escalationReason,omitempty"`
	Metadata         db_models.SessionMetadata `json:"metadata"`
	RatingScore      int                       `json:"ratingScore,omitempty"`
	CreatedAt        int64                     `json:"createdAt"`
	UpdatedAt        int64                     `json:"updatedAt"`
}

func NewChatSessionResponse(s *db_models.ChatSession) ChatSessionResponse {
	out := ChatSessionResponse{
		SessionID:        s.SessionID,
		Status:           s.Status,
		Priority:         s.Priority,
		Category:         s.Category,
		Language:         s.Language,
		UserName:         s.UserName,
		UserEmail:        s.UserEmail,
		EscalationReason: s.EscalationReason,
		Metadata:         s.Metadata.Data(),
		RatingScore:      s.RatingScore,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
	if s.UserID != nil {
		out.UserID = s.UserID.String()
	}
	if s.AssignedAgentID != nil {
		out.AssignedAgentID = s.AssignedAgentID.String()
	}
	return out
}

type ChatSessionListResponse struct {
	Sessions   []ChatSessionResponse `json:"sessions"`
	Pagination Pagination            `json:"pagination"`
}
