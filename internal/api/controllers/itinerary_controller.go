package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"yatra/internal/models/request_models"
	"yatra/internal/services"
	"yatra/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
	}
}

// Generate godoc
// @Summary Generate an itinerary
// @Description Tries the AI planner once and falls back to the rule-based planner
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.GenerateItineraryRequest true "Trip request"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itinerary/generate [post]
func (i *ItineraryController) Generate(c *gin.Context) {
	var req request_models.GenerateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	out, err := i.itineraryService.Generate(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, out, "Itinerary generated successfully")
}

// ListMine godoc
// @Summary The caller's itineraries
// @Tags Itinerary
// @Produce json
// @Param status query string false "Status filter"
// @Param sortBy query string false "createdAt | startDate | budget | views"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itinerary/my-itineraries [get]
func (i *ItineraryController) ListMine(c *gin.Context) {
	var query request_models.ItineraryListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	out, err := i.itineraryService.ListMine(c.Request.Context(), c.GetString("user_id"), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Itineraries fetched successfully")
}

// Popular godoc
// @Summary Most viewed itineraries
// @Tags Itinerary
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /itinerary/popular [get]
func (i *ItineraryController) Popular(c *gin.Context) {
	out, err := i.itineraryService.Popular(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"itineraries": out}, "Popular itineraries fetched successfully")
}

// Get godoc
// @Summary Itinerary detail
// @Tags Itinerary
// @Produce json
// @Param id path string true "Itinerary id"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itinerary/{id} [get]
func (i *ItineraryController) Get(c *gin.Context) {
	out, err := i.itineraryService.Get(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Itinerary fetched successfully")
}

// Update godoc
// @Summary Edit an itinerary
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param id path string true "Itinerary id"
// @Param request body request_models.UpdateItineraryRequest true "Changes"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itinerary/{id} [put]
func (i *ItineraryController) Update(c *gin.Context) {
	var req request_models.UpdateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	out, err := i.itineraryService.Update(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Itinerary updated successfully")
}

// Delete godoc
// @Summary Delete an itinerary
// @Tags Itinerary
// @Produce json
// @Param id path string true "Itinerary id"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itinerary/{id} [delete]
func (i *ItineraryController) Delete(c *gin.Context) {
	out, err := i.itineraryService.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"deletedItinerary": out}, "Itinerary deleted successfully")
}

// SubmitFeedback godoc
// @Summary Rate an itinerary
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param id path string true "Itinerary id"
// @Param request body request_models.ItineraryFeedbackRequest true "Feedback"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itinerary/{id}/feedback [post]
func (i *ItineraryController) SubmitFeedback(c *gin.Context) {
	var req request_models.ItineraryFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	out, err := i.itineraryService.SubmitFeedback(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"feedback": out}, "Feedback submitted successfully")
}

// Export godoc
// @Summary Download an itinerary as PDF
// @Tags Itinerary
// @Produce application/pdf
// @Param id path string true "Itinerary id"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /itinerary/{id}/export [get]
func (i *ItineraryController) Export(c *gin.Context) {
	pdf, filename, err := i.itineraryService.Export(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
