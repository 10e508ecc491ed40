package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yatra/internal/models/request_models"
	"yatra/internal/services"
	"yatra/pkg/utils"
)

type ChatController struct {
	chatService services.ChatServiceInterface
}

func NewChatController(chatService services.ChatServiceInterface) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

// Initialize godoc
// @Summary Start a support chat
// @Description Works anonymously; a bearer token links the session to the user
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body request_models.InitializeChatRequest true "Visitor info"
// @Success 201 {object} utils.APIResponse
// @Router /chat/initialize [post]
func (h *ChatController) Initialize(c *gin.Context) {
	var req request_models.InitializeChatRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
			return
		}
	}

	out, err := h.chatService.Initialize(c.Request.Context(), c.GetString("user_id"), req, services.ClientInfo{
		UserAgent: c.GetHeader("User-Agent"),
		IP:        c.ClientIP(),
		Referrer:  c.GetHeader("Referer"),
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, out, "Chat session initialized")
}

// SendMessage godoc
// @Summary Send a chat message
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body request_models.SendMessageRequest true "Message"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /chat/message [post]
func (h *ChatController) SendMessage(c *gin.Context) {
	var req request_models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "sessionId and message are required")
		return
	}

	out, err := h.chatService.SendMessage(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Message sent")
}

// History godoc
// @Summary Messages in a session
// @Tags Chat
// @Produce json
// @Param sessionId path string true "Session id"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(50)
// @Success 200 {object} utils.APIResponse
// @Router /chat/session/{sessionId}/history [get]
func (h *ChatController) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	out, err := h.chatService.History(c.Request.Context(), c.Param("sessionId"), page, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Chat history fetched successfully")
}

// FAQSuggestions godoc
// @Summary Matching FAQs
// @Tags Chat
// @Produce json
// @Param query query string false "Free text"
// @Param language query string false "Language code" default(en)
// @Param category query string false "Category"
// @Success 200 {object} utils.APIResponse
// @Router /chat/faq/suggestions [get]
func (h *ChatController) FAQSuggestions(c *gin.Context) {
	out, err := h.chatService.FAQSuggestions(c.Request.Context(), c.Query("query"), c.DefaultQuery("language", "en"), c.Query("category"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"suggestions": out}, "FAQ suggestions fetched successfully")
}

// End godoc
// @Summary End a chat session
// @Tags Chat
// @Accept json
// @Produce json
// @Param sessionId path string true "Session id"
// @Param request body request_models.EndChatRequest false "Rating"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /chat/session/{sessionId}/end [post]
func (h *ChatController) End(c *gin.Context) {
	var req request_models.EndChatRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
			return
		}
	}

	out, err := h.chatService.End(c.Request.Context(), c.GetString("user_id"), c.GetString("Role"), c.Param("sessionId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Chat session ended")
}

// AssignAgent godoc
// @Summary Take over a session
// @Tags Chat
// @Produce json
// @Param sessionId path string true "Session id"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /chat/session/{sessionId}/assign [post]
func (h *ChatController) AssignAgent(c *gin.Context) {
	out, err := h.chatService.AssignAgent(c.Request.Context(), c.GetString("user_id"), c.Param("sessionId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Agent assigned")
}
