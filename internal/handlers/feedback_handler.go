// ./mentora-backend/internal/handlers/feedback_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mentora/backend/internal/middleware"
	"mentora/backend/internal/models"
	"mentora/backend/internal/store"
)

type AddFeedbackPayload struct {
	CourseID string  `json:"courseId" binding:"required"`
	Rating   float64 `json:"rating" binding:"required,min=1,max=5"`
	Comment  string  `json:"comment"`
}

func (h *Handler) AddFeedback(c *gin.Context) {
	var payload AddFeedbackPayload
	if !bind(c, successEnvelope, &payload) {
		return
	}
	courseID, ok := parseID(c, successEnvelope, payload.CourseID)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	feedback := models.Feedback{
		CourseID:     courseID,
		StudentEmail: middleware.EmailForContext(c.Request.Context()),
		Rating:       payload.Rating,
		Comment:      payload.Comment,
		CreatedAt:    time.Now(),
	}
	result, err := h.store.Feedbacks.Insert(ctx, &feedback)
	if err != nil {
		h.serverError(c, successEnvelope, "Internal server error", err)
		return
	}
	if !result.Acknowledged {
		c.JSON(http.StatusBadRequest, with(successEnvelope.fail("Failed to add feedback"), gin.H{"data": result}))
		return
	}
	c.JSON(http.StatusOK, with(successEnvelope.ok("Feedback added successfully"), gin.H{"data": result}))
}

// GetFeedbacks returns the best rated feedback, optionally for one course
// (?courseId) or one student (?studentEmail).
func (h *Handler) GetFeedbacks(c *gin.Context) {
	var filter store.FeedbackFilter
	if raw := c.Query("courseId"); raw != "" {
		courseID, ok := parseID(c, successEnvelope, raw)
		if !ok {
			return
		}
		filter.CourseID = &courseID
	}
	filter.StudentEmail = c.Query("studentEmail")
	ctx, cancel := h.requestContext(c)
	defer cancel()

	feedbacks, err := h.store.Feedbacks.List(ctx, filter, store.FeedbackLimit)
	if err != nil {
		h.serverError(c, successEnvelope, "Internal server error", err)
		return
	}
	if len(feedbacks) == 0 {
		// an empty list still counts as success here
		c.JSON(http.StatusAccepted, with(successEnvelope.ok("No feedbacks found"), gin.H{"feedbacks": feedbacks}))
		return
	}
	c.JSON(http.StatusOK, with(successEnvelope.ok("Feedbacks fetched successfully"), gin.H{"feedbacks": feedbacks}))
}

type UpdateFeedbackPayload struct {
	Rating  *float64 `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string  `json:"comment"`
}

// UpdateFeedback lets a student revise their own feedback.
func (h *Handler) UpdateFeedback(c *gin.Context) {
	id, ok := parseID(c, successEnvelope, c.Param("id"))
	if !ok {
		return
	}
	var payload UpdateFeedbackPayload
	if !bind(c, successEnvelope, &payload) {
		return
	}
	patch := models.FeedbackPatch{Rating: payload.Rating, Comment: payload.Comment}
	if patch.Empty() {
		c.JSON(http.StatusBadRequest, successEnvelope.fail("Nothing to update"))
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.store.Feedbacks.Update(ctx, id, middleware.EmailForContext(c.Request.Context()), patch)
	if err != nil {
		h.serverError(c, successEnvelope, "Internal server error", err)
		return
	}
	if !result.Acknowledged {
		c.JSON(http.StatusBadRequest, with(successEnvelope.fail("Failed to update feedback"), gin.H{"data": result}))
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, successEnvelope.fail("Feedback not found"))
		return
	}
	c.JSON(http.StatusOK, with(successEnvelope.ok("Feedback updated successfully"), gin.H{"data": result}))
}
