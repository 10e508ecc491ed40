package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatra/internal/models/request_models"
	"yatra/internal/services"
	"yatra/pkg/utils"
)

// ProfileController serves /profile. Plain profile reads and writes share
// the account service with /auth/profile.
type ProfileController struct {
	accountService services.AccountServiceInterface
	profileService services.ProfileServiceInterface
}

func NewProfileController(accountService services.AccountServiceInterface, profileService services.ProfileServiceInterface) *ProfileController {
	return &ProfileController{
		accountService: accountService,
		profileService: profileService,
	}
}

// Get godoc
// @Summary Current profile
// @Tags Profile
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /profile [get]
func (p *ProfileController) Get(c *gin.Context) {
	out, err := p.accountService.GetProfile(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Profile fetched successfully")
}

// Update godoc
// @Summary Update profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body request_models.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /profile [put]
func (p *ProfileController) Update(c *gin.Context) {
	var req request_models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	out, err := p.accountService.UpdateProfile(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Profile updated successfully")
}

// UpdatePreferences godoc
// @Summary Update tourism preferences
// @Description Sections present in the body replace the stored ones
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body request_models.UpdatePreferencesRequest true "Preferences"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /profile/preferences [put]
func (p *ProfileController) UpdatePreferences(c *gin.Context) {
	var req request_models.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	out, err := p.profileService.UpdatePreferences(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Preferences updated successfully")
}

// AddVisited godoc
// @Summary Mark a destination as visited
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body request_models.AddVisitedDestinationRequest true "Visit"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /profile/visited-destinations [post]
func (p *ProfileController) AddVisited(c *gin.Context) {
	var req request_models.AddVisitedDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	out, err := p.profileService.AddVisited(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"visitedDestinations": out}, "Destination added to visited list")
}

// ListVisited godoc
// @Summary Visited destinations
// @Tags Profile
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /profile/visited-destinations [get]
func (p *ProfileController) ListVisited(c *gin.Context) {
	out, err := p.profileService.ListVisited(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"visitedDestinations": out}, "Visited destinations fetched successfully")
}

// Recommendations godoc
// @Summary Personalised destination recommendations
// @Tags Profile
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /profile/recommendations [get]
func (p *ProfileController) Recommendations(c *gin.Context) {
	out, err := p.profileService.Recommendations(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Recommendations fetched successfully")
}

// TrackSearch godoc
// @Summary Record a search
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body request_models.TrackSearchRequest true "Search"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /profile/track-search [post]
func (p *ProfileController) TrackSearch(c *gin.Context) {
	var req request_models.TrackSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := p.profileService.TrackSearch(c.Request.Context(), c.GetString("user_id"), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Search tracked")
}
