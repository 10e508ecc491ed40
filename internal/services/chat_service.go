package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"yatra/internal/models/db_models"
	"yatra/internal/models/request_models"
	resp "yatra/internal/models/response_models"
	"yatra/internal/realtime"
	"yatra/internal/repositories"
	"yatra/internal/support"
	"yatra/pkg/logger"
	"yatra/pkg/utils"
)

const (
	chatContextMessages = 10
	defaultHistoryLimit = 50
	defaultSessionLimit = 20
	maxChatPageSize     = 100
	faqSuggestionLimit  = 10
	notifyTimeout       = 30 * time.Second
)

const (
	SourceFAQ        = "faq"
	SourceAI         = "ai"
	SourceEscalation = "escalation"
)

// ChatBroadcaster pushes events to websocket clients.
type ChatBroadcaster interface {
	BroadcastToRoom(sessionID, event string, payload interface{})
	BroadcastToAgents(event string, payload interface{})
}

// ClientInfo is what the HTTP layer knows about the visitor's browser.
type ClientInfo struct {
	UserAgent string
	IP        string
	Referrer  string
}

type ChatServiceInterface interface {
	Initialize(ctx context.Context, userID string, request request_models.InitializeChatRequest, client ClientInfo) (*resp.InitializeChatResponse, error)
	SendMessage(ctx context.Context, request request_models.SendMessageRequest) (*resp.SendMessageResponse, error)
	History(ctx context.Context, sessionID string, page, limit int) (*resp.ChatHistoryResponse, error)
	FAQSuggestions(ctx context.Context, query, language, category string) ([]resp.FAQSuggestion, error)
	End(ctx context.Context, userID, role, sessionID string, request request_models.EndChatRequest) (*resp.ChatSessionResponse, error)
	AssignAgent(ctx context.Context, agentID, sessionID string) (*resp.ChatSessionResponse, error)
	ListSessions(ctx context.Context, query request_models.ChatSessionListQuery) (*resp.ChatSessionListResponse, error)
	HandleIncoming(ctx context.Context, msg realtime.IncomingMessage, agentPresent bool) error
}

type ChatService struct {
	chats       repositories.ChatRepository
	faqs        repositories.FAQRepository
	accounts    repositories.AccountRepository
	ai          utils.AIClientInterface
	store       support.ConversationStore
	mail        IMailService
	broadcaster ChatBroadcaster
	log         *logger.Logger
	now         func() time.Time
	async       func(func())
}

// NewChatService accepts a nil ai client; every unanswered message then
// escalates to a human agent.
func NewChatService(
	chats repositories.ChatRepository,
	faqs repositories.FAQRepository,
	accounts repositories.AccountRepository,
	ai utils.AIClientInterface,
	store support.ConversationStore,
	mail IMailService,
	broadcaster ChatBroadcaster,
	log *logger.Logger,
) ChatServiceInterface {
	return &ChatService{
		chats:       chats,
		faqs:        faqs,
		accounts:    accounts,
		ai:          ai,
		store:       store,
		mail:        mail,
		broadcaster: broadcaster,
		log:         log.With("service", "ChatService"),
		now:         time.Now,
		async:       func(f func()) { go f() },
	}
}

func isSupportedLanguage(code string) bool {
	for _, l := range resp.SupportedLanguages {
		if l.Code == code {
			return true
		}
	}
	return false
}

func (s *ChatService) Initialize(ctx context.Context, userID string, request request_models.InitializeChatRequest, client ClientInfo) (*resp.InitializeChatResponse, error) {
	language := strings.ToLower(strings.TrimSpace(request.Language))
	if language == "" {
		language = "en"
	}
	if !isSupportedLanguage(language) {
		return nil, utils.NewFieldError("language", "unsupported language %q", language)
	}

	session := &db_models.ChatSession{
		SessionID: uuid.NewString(),
		Status:    db_models.ChatActive,
		Priority:  support.PriorityMedium,
		Category:  "general",
		Language:  language,
		UserName:  strings.TrimSpace(request.UserInfo.Name),
		UserEmail: strings.TrimSpace(request.UserInfo.Email),
		UserPhone: strings.TrimSpace(request.UserInfo.Phone),
		Metadata: datatypes.NewJSONType(db_models.SessionMetadata{
			UserAgent:  client.UserAgent,
			IPAddress:  client.IP,
			Referrer:   client.Referrer,
			DeviceType: support.DeviceType(client.UserAgent),
		}),
	}
	cc := utils.ChatContext{Language: language}

	if userID != "" {
		user, err := s.accounts.FindById(ctx, userID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if user != nil {
			session.UserID = &user.ID
			if session.UserName == "" {
				session.UserName = user.Name
			}
			if session.UserEmail == "" {
				session.UserEmail = user.Email
			}
			if session.UserPhone == "" {
				session.UserPhone = user.Phone
			}
			cc.UserID = user.ID.String()
			cc.Preferences = chatPreferences(user.TourismPreferences.Data())
		}
	}

	if err := s.chats.CreateSession(ctx, session); err != nil {
		s.log.Error("create chat session failed", "error", err)
		return nil, utils.ErrDatabaseError
	}
	if err := s.store.Set(ctx, session.SessionID, cc); err != nil {
		s.log.Warn("store conversation context failed", "session_id", session.SessionID, "error", err)
	}

	return &resp.InitializeChatResponse{
		SessionID:          session.SessionID,
		Status:             session.Status,
		Language:           language,
		Greeting:           s.translate(ctx, utils.ChatGreeting, language),
		SupportedLanguages: resp.SupportedLanguages,
	}, nil
}

func chatPreferences(p db_models.TourismPreferences) map[string]interface{} {
	out := map[string]interface{}{}
	if len(p.Interests.Primary) > 0 {
		out["interests"] = p.Interests.Primary
	}
	if p.BudgetPreferences.DailyBudget.Max > 0 {
		out["dailyBudget"] = p.BudgetPreferences.DailyBudget
	}
	if p.TravelStyle.GroupSize != "" {
		out["groupSize"] = p.TravelStyle.GroupSize
	}
	if len(p.Accessibility.DietaryRestrictions) > 0 {
		out["dietaryRestrictions"] = p.Accessibility.DietaryRestrictions
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// openSession loads a session that can still take messages.
func (s *ChatService) openSession(ctx context.Context, sessionID string) (*db_models.ChatSession, error) {
	session, err := s.chats.FindSession(ctx, sessionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if session == nil {
		return nil, utils.ErrChatSessionNotFound
	}
	if session.Status == db_models.ChatResolved || session.Status == db_models.ChatClosed {
		return nil, utils.NewFieldError("sessionId", "chat session has ended")
	}
	return session, nil
}

func (s *ChatService) messageLanguage(ctx context.Context, requested string, session *db_models.ChatSession, text string) string {
	if lang := strings.ToLower(strings.TrimSpace(requested)); lang != "" && isSupportedLanguage(lang) {
		return lang
	}
	if session.Language != "" {
		return session.Language
	}
	if s.ai != nil {
		if lang, err := s.ai.DetectLanguage(ctx, text); err == nil && isSupportedLanguage(lang) {
			return lang
		}
	}
	return "en"
}

func (s *ChatService) storeMessage(ctx context.Context, sessionID, sender, text, language string) (*db_models.ChatMessage, error) {
	m := &db_models.ChatMessage{
		SessionID:        sessionID,
		MessageID:        uuid.NewString(),
		Sender:           sender,
		Message:          text,
		OriginalLanguage: language,
		SentAt:           s.now().UnixMilli(),
	}
	if err := s.chats.CreateMessage(ctx, m); err != nil {
		s.log.Error("store chat message failed", "session_id", sessionID, "sender", sender, "error", err)
		return nil, utils.ErrDatabaseError
	}
	s.broadcaster.BroadcastToRoom(sessionID, realtime.EventNewMessage, resp.NewChatMessageResponse(m))
	return m, nil
}

func (s *ChatService) SendMessage(ctx context.Context, request request_models.SendMessageRequest) (*resp.SendMessageResponse, error) {
	text := strings.TrimSpace(request.Message)
	if text == "" {
		return nil, utils.NewFieldError("message", "is required")
	}
	session, err := s.openSession(ctx, request.SessionID)
	if err != nil {
		return nil, err
	}
	language := s.messageLanguage(ctx, request.Language, session, text)

	userMsg, err := s.storeMessage(ctx, session.SessionID, db_models.SenderUser, text, language)
	if err != nil {
		return nil, err
	}
	out := &resp.SendMessageResponse{
		UserMessage: resp.NewChatMessageResponse(userMsg),
		Status:      session.Status,
	}
	if session.Status == db_models.ChatWithAgent {
		return out, nil
	}

	result, err := s.respond(ctx, session, text, language, userMsg.MessageID)
	if err != nil {
		return nil, err
	}
	reply := resp.NewChatMessageResponse(result.message)
	out.Reply = &reply
	out.Source = result.source
	out.Escalated = result.escalated
	out.EscalationReason = result.reason
	out.Status = session.Status
	return out, nil
}

// HandleIncoming runs socket messages through the same path as SendMessage.
// Agent messages and user messages with an agent in the room are stored and
// relayed without an automated reply.
func (s *ChatService) HandleIncoming(ctx context.Context, msg realtime.IncomingMessage, agentPresent bool) error {
	text := strings.TrimSpace(msg.Message)
	if text == "" {
		return utils.NewFieldError("message", "is required")
	}
	session, err := s.openSession(ctx, msg.SessionID)
	if err != nil {
		return err
	}
	language := s.messageLanguage(ctx, msg.Language, session, text)

	sender := db_models.SenderUser
	if msg.Sender == db_models.SenderAgent {
		sender = db_models.SenderAgent
	}
	userMsg, err := s.storeMessage(ctx, session.SessionID, sender, text, language)
	if err != nil {
		return err
	}
	if sender == db_models.SenderAgent || agentPresent || session.Status == db_models.ChatWithAgent {
		return nil
	}
	_, err = s.respond(ctx, session, text, language, userMsg.MessageID)
	return err
}

type chatAnswer struct {
	text      string
	source    string
	reason    string
	escalated bool
}

type chatResult struct {
	message   *db_models.ChatMessage
	source    string
	reason    string
	escalated bool
}

// respond produces, stores and broadcasts the automated reply and applies
// any escalation to the session.
func (s *ChatService) respond(ctx context.Context, session *db_models.ChatSession, text, language, currentID string) (*chatResult, error) {
	answer := s.answer(ctx, session, text, language, currentID)

	reply := answer.text
	if answer.source != SourceFAQ {
		reply = s.translate(ctx, reply, language)
	}

	if answer.escalated && session.Status == db_models.ChatActive {
		session.Status = db_models.ChatWaitingForAgent
		session.Priority = support.PriorityFor(answer.reason)
		session.EscalationReason = answer.reason
		session.EscalatedAt = s.now().Unix()
		s.notifyAgents(session, text)
	}

	sender := db_models.SenderBot
	if answer.escalated {
		sender = db_models.SenderAgent
	}
	m, err := s.storeMessage(ctx, session.SessionID, sender, reply, language)
	if err != nil {
		return nil, err
	}
	if err := s.chats.SaveSession(ctx, session); err != nil {
		s.log.Error("save chat session failed", "session_id", session.SessionID, "error", err)
		return nil, utils.ErrDatabaseError
	}
	return &chatResult{message: m, source: answer.source, reason: answer.reason, escalated: answer.escalated}, nil
}

func (s *ChatService) answer(ctx context.Context, session *db_models.ChatSession, text, language, currentID string) chatAnswer {
	if faq := s.matchFAQ(ctx, text, language); faq != nil {
		return chatAnswer{text: faq.Answer, source: SourceFAQ}
	}
	if reason, ok := support.DetectEscalation(text); ok {
		return chatAnswer{text: support.EscalationReply, source: SourceEscalation, reason: reason, escalated: true}
	}
	failure := chatAnswer{text: support.FailureReply, source: SourceEscalation, reason: support.ReasonTechnicalError, escalated: true}
	if s.ai == nil {
		return failure
	}

	cc, ok, err := s.store.Get(ctx, session.SessionID)
	if err != nil {
		s.log.Warn("load conversation context failed", "session_id", session.SessionID, "error", err)
	}
	if !ok {
		cc = utils.ChatContext{Language: language}
		if session.UserID != nil {
			cc.UserID = session.UserID.String()
		}
	}

	recent, err := s.chats.RecentMessages(ctx, session.SessionID, chatContextMessages+1)
	if err != nil {
		s.log.Warn("load recent messages failed", "session_id", session.SessionID, "error", err)
	}
	history := chatHistory(recent, currentID)

	reply, err := s.ai.ChatReply(ctx, cc, history, text)
	if err != nil || strings.TrimSpace(reply) == "" {
		s.log.Error("ai chat reply failed", "session_id", session.SessionID, "error", err)
		return failure
	}
	return chatAnswer{text: strings.TrimSpace(reply), source: SourceAI}
}

// chatHistory drops the message being answered and keeps the last ten turns.
func chatHistory(recent []db_models.ChatMessage, currentID string) []utils.ChatTurn {
	turns := make([]utils.ChatTurn, 0, len(recent))
	for _, m := range recent {
		if m.MessageID == currentID {
			continue
		}
		role := "model"
		if m.Sender == db_models.SenderUser {
			role = "user"
		}
		turns = append(turns, utils.ChatTurn{Role: role, Text: m.Message})
	}
	if len(turns) > chatContextMessages {
		turns = turns[len(turns)-chatContextMessages:]
	}
	return turns
}

func (s *ChatService) matchFAQ(ctx context.Context, text, language string) *db_models.FAQ {
	keywords := support.Keywords(text)
	if len(keywords) == 0 {
		return nil
	}
	faqs, err := s.faqs.Search(ctx, repositories.FAQSearch{Keywords: keywords, Language: language, Limit: 1})
	if err != nil {
		s.log.Warn("faq search failed", "error", err)
		return nil
	}
	if len(faqs) == 0 {
		return nil
	}
	faq := &faqs[0]
	if err := s.faqs.IncrementViews(ctx, faq); err != nil {
		s.log.Warn("faq view count failed", "faq_id", faq.ID, "error", err)
	}
	return faq
}

// translate returns text unchanged for English, without a model, or when
// translation fails.
func (s *ChatService) translate(ctx context.Context, text, language string) string {
	if language == "" || language == "en" || s.ai == nil {
		return text
	}
	out, err := s.ai.Translate(ctx, text, language)
	if err != nil || strings.TrimSpace(out) == "" {
		s.log.Warn("translation failed", "language", language, "error", err)
		return text
	}
	return out
}

func (s *ChatService) notifyAgents(session *db_models.ChatSession, lastMessage string) {
	alert := AgentAlert{
		SessionID:   session.SessionID,
		Priority:    session.Priority,
		Reason:      session.EscalationReason,
		UserName:    session.UserName,
		UserEmail:   session.UserEmail,
		LastMessage: lastMessage,
		Language:    session.Language,
	}
	s.broadcaster.BroadcastToAgents(realtime.EventAgentNeeded, map[string]interface{}{
		"sessionId":   session.SessionID,
		"priority":    session.Priority,
		"reason":      session.EscalationReason,
		"userName":    session.UserName,
		"lastMessage": lastMessage,
		"escalatedAt": session.EscalatedAt,
	})
	s.async(func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.mail.SendAgentNotification(ctx, alert); err != nil {
			s.log.Error("agent notification failed", "session_id", alert.SessionID, "error", err)
		}
	})
}

func (s *ChatService) History(ctx context.Context, sessionID string, page, limit int) (*resp.ChatHistoryResponse, error) {
	page, limit = chatPage(page, limit, defaultHistoryLimit)
	session, err := s.chats.FindSession(ctx, sessionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if session == nil {
		return nil, utils.ErrChatSessionNotFound
	}
	rows, total, err := s.chats.ListMessages(ctx, sessionID, page, limit)
	if err != nil {
		s.log.Error("list chat messages failed", "session_id", sessionID, "error", err)
		return nil, utils.ErrDatabaseError
	}
	messages := make([]resp.ChatMessageResponse, 0, len(rows))
	for i := range rows {
		messages = append(messages, resp.NewChatMessageResponse(&rows[i]))
	}
	return &resp.ChatHistoryResponse{
		SessionID:  sessionID,
		Status:     session.Status,
		Messages:   messages,
		Pagination: resp.NewPagination(page, limit, total),
	}, nil
}

func chatPage(page, limit, fallback int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = fallback
	}
	if limit > maxChatPageSize {
		limit = maxChatPageSize
	}
	return page, limit
}

// FAQSuggestions lists the top FAQs; an empty query lists them all.
func (s *ChatService) FAQSuggestions(ctx context.Context, query, language, category string) ([]resp.FAQSuggestion, error) {
	if language == "" {
		language = "en"
	}
	rows, err := s.faqs.Search(ctx, repositories.FAQSearch{
		Keywords: support.Keywords(query),
		Language: language,
		Category: category,
		Limit:    faqSuggestionLimit,
	})
	if err != nil {
		s.log.Error("faq suggestions failed", "error", err)
		return nil, utils.ErrDatabaseError
	}
	out := make([]resp.FAQSuggestion, 0, len(rows))
	for _, f := range rows {
		out = append(out, resp.FAQSuggestion{
			ID:       f.ID.String(),
			Question: f.Question,
			Answer:   f.Answer,
			Category: f.Category,
		})
	}
	return out, nil
}

func (s *ChatService) End(ctx context.Context, userID, role, sessionID string, request request_models.EndChatRequest) (*resp.ChatSessionResponse, error) {
	if request.Rating != 0 && (request.Rating < 1 || request.Rating > 5) {
		return nil, utils.NewFieldError("rating", "must be between 1 and 5")
	}
	session, err := s.chats.FindSession(ctx, sessionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if session == nil {
		return nil, utils.ErrChatSessionNotFound
	}
	staff := role == db_models.RoleAgent || role == db_models.RoleAdmin
	if !staff && session.UserID != nil && session.UserID.String() != userID {
		return nil, utils.ErrForbidden
	}

	session.Status = db_models.ChatResolved
	session.ResolvedAt = s.now().Unix()
	if request.Rating != 0 {
		session.RatingScore = request.Rating
	}
	if fb := strings.TrimSpace(request.Feedback); fb != "" {
		session.RatingFeedback = fb
	}
	if err := s.chats.SaveSession(ctx, session); err != nil {
		s.log.Error("end chat session failed", "session_id", sessionID, "error", err)
		return nil, utils.ErrDatabaseError
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.log.Warn("clear conversation context failed", "session_id", sessionID, "error", err)
	}

	out := resp.NewChatSessionResponse(session)
	return &out, nil
}

func (s *ChatService) AssignAgent(ctx context.Context, agentID, sessionID string) (*resp.ChatSessionResponse, error) {
	aid, err := uuid.Parse(agentID)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}
	session, err := s.openSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Status = db_models.ChatWithAgent
	session.AssignedAgentID = &aid
	if _, err := s.storeMessage(ctx, session.SessionID, db_models.SenderAgent, s.translate(ctx, support.AgentJoinReply, session.Language), session.Language); err != nil {
		return nil, err
	}
	if err := s.chats.SaveSession(ctx, session); err != nil {
		s.log.Error("assign agent failed", "session_id", sessionID, "error", err)
		return nil, utils.ErrDatabaseError
	}

	out := resp.NewChatSessionResponse(session)
	return &out, nil
}

func (s *ChatService) ListSessions(ctx context.Context, query request_models.ChatSessionListQuery) (*resp.ChatSessionListResponse, error) {
	page, limit := chatPage(query.Page, query.Limit, defaultSessionLimit)
	rows, total, err := s.chats.ListSessions(ctx, repositories.ChatSessionFilter{
		Status:   query.Status,
		Priority: query.Priority,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		s.log.Error("list chat sessions failed", "error", err)
		return nil, utils.ErrDatabaseError
	}
	sessions := make([]resp.ChatSessionResponse, 0, len(rows))
	for i := range rows {
		sessions = append(sessions, resp.NewChatSessionResponse(&rows[i]))
	}
	return &resp.ChatSessionListResponse{
		Sessions:   sessions,
		Pagination: resp.NewPagination(page, limit, total),
	}, nil
}
