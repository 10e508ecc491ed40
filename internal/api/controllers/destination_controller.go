package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatra/internal/models/request_models"
	"yatra/internal/services"
	"yatra/pkg/utils"
)

type DestinationController struct {
	destinationService services.DestinationServiceInterface
}

func NewDestinationController(destinationService services.DestinationServiceInterface) *DestinationController {
	return &DestinationController{
		destinationService: destinationService,
	}
}

// List godoc
// @Summary List published destinations
// @Tags Destinations
// @Produce json
// @Param category query string false "Category"
// @Param district query string false "District"
// @Param tags query string false "Comma separated tags, any match"
// @Param featured query bool false "Featured only"
// @Param sortBy query string false "name | rating | newest"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} utils.APIResponse
// @Router /destinations [get]
func (d *DestinationController) List(c *gin.Context) {
	var query request_models.DestinationListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	out, err := d.destinationService.List(c.Request.Context(), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Destinations fetched successfully")
}

// Nearby godoc
// @Summary Destinations within a radius
// @Tags Destinations
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Param radius query number false "Radius in km" default(50)
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /destinations/nearby [get]
func (d *DestinationController) Nearby(c *gin.Context) {
	var query request_models.NearbyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "lat and lng are required")
		return
	}

	out, err := d.destinationService.Nearby(c.Request.Context(), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Nearby destinations fetched successfully")
}

// Get godoc
// @Summary Destination by id or slug
// @Tags Destinations
// @Produce json
// @Param id path string true "Destination id or slug"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /destinations/{id} [get]
func (d *DestinationController) Get(c *gin.Context) {
	out, err := d.destinationService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Destination fetched successfully")
}

// Create godoc
// @Summary Create a destination
// @Tags Destinations
// @Accept json
// @Produce json
// @Param request body request_models.CreateDestinationRequest true "Destination"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /destinations [post]
func (d *DestinationController) Create(c *gin.Context) {
	var req request_models.CreateDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	out, err := d.destinationService.Create(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, out, "Destination created successfully")
}
