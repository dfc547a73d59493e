package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
	"github.com/yungbote/flowfactory-backend/internal/services"
)

type AnalysisHandler struct {
	analysisService services.AnalysisService
}

func NewAnalysisHandler(analysisService services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

func (ah *AnalysisHandler) Run(c *gin.Context) {
	var req services.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.InvalidInput(errors.New("invalid request body")))
		return
	}
	analysis, err := ah.analysisService.Run(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"analysis": analysis})
}
