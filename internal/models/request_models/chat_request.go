package request_models

type ChatUserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type InitializeChatRequest struct {
	UserInfo ChatUserInfo `json:"userInfo"`
	Language string       `json:"language"`
}

type SendMessageRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Message   string `json:"message" binding:"required,max=2000"`
	Language  string `json:"language"`
}

type EndChatRequest struct {
	Rating   int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Feedback string `json:"feedback" binding:"max=1000"`
}

type ChatSessionListQuery struct {
	Status   string `form:"status"`
	Priority string `form:"priority"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

type AnalyticsQuery struct {
	From     string `form:"from"`
	To       string `form:"to"`
	Interval string `form:"interval"`
}
