package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatra/internal/models/request_models"
	"yatra/internal/services"
	"yatra/pkg/utils"
)

type AdminController struct {
	chatService      services.ChatServiceInterface
	analyticsService services.AnalyticsServiceInterface
}

func NewAdminController(chatService services.ChatServiceInterface, analyticsService services.AnalyticsServiceInterface) *AdminController {
	return &AdminController{
		chatService:      chatService,
		analyticsService: analyticsService,
	}
}

// ListSessions godoc
// @Summary Support sessions
// @Tags Admin
// @Produce json
// @Param status query string false "Status"
// @Param priority query string false "Priority"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /chat/admin/sessions [get]
func (a *AdminController) ListSessions(c *gin.Context) {
	var query request_models.ChatSessionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	out, err := a.chatService.ListSessions(c.Request.Context(), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Chat sessions fetched successfully")
}

// Analytics godoc
// @Summary Support and platform analytics
// @Description Session counts by status and priority, escalations, ratings, message mix, series and platform KPIs
// @Tags Admin
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date, inclusive (YYYY-MM-DD)"
// @Param interval query string false "day | week | month" default(day)
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /chat/admin/analytics [get]
func (a *AdminController) Analytics(c *gin.Context) {
	var query request_models.AnalyticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	out, err := a.analyticsService.BuildReport(c.Request.Context(), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Analytics fetched successfully")
}
