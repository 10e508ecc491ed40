package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"yatra/pkg/utils"
)

type HealthController struct {
	environment string
}

func NewHealthController(environment string) *HealthController {
	return &HealthController{environment: environment}
}

// Health godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /health [get]
func (h *HealthController) Health(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{
		"status":      "OK",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.environment,
	}, "Jharkhand Tourism API is running")
}
