package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
	"github.com/yungbote/flowfactory-backend/internal/services"
)

type PlanningHandler struct {
	planningService services.PlanningService
}

func NewPlanningHandler(planningService services.PlanningService) *PlanningHandler {
	return &PlanningHandler{planningService: planningService}
}

func (ph *PlanningHandler) Run(c *gin.Context) {
	var req services.PlanningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.InvalidInput(errors.New("invalid request body")))
		return
	}
	newTopics, err := ph.planningService.Run(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"new_topics": newTopics})
}

func (ph *PlanningHandler) List(c *gin.Context) {
	outputID, err := uuid.Parse(c.Query("outputId"))
	if err != nil {
		respondError(c, apierr.InvalidInput(errors.New("invalid outputId")))
		return
	}
	newTopics, err := ph.planningService.List(c.Request.Context(), outputID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"new_topics": newTopics})
}

func (ph *PlanningHandler) MarkUsed(c *gin.Context) {
	var req services.UseNewTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.InvalidInput(errors.New("invalid request body")))
		return
	}
	newTopic, err := ph.planningService.MarkUsed(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"new_topic": newTopic})
}
