// ./mentora-backend/internal/handlers/enrollment_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mentora/backend/internal/models"
)

func (h *Handler) GetEnrollmentsByCourse(c *gin.Context) {
	courseID, ok := parseID(c, successEnvelope, c.Param("courseId"))
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	enrollments, err := h.store.Enrollments.ByCourse(ctx, courseID)
	if err != nil {
		h.serverError(c, successEnvelope, "Internal server error", err)
		return
	}
	if len(enrollments) == 0 {
		c.JSON(http.StatusAccepted, with(successEnvelope.fail("No enrollments found"), gin.H{"enrollments": enrollments}))
		return
	}
	c.JSON(http.StatusOK, with(successEnvelope.ok("Enrollments fetched successfully"), gin.H{"enrollments": enrollments}))
}

type AddEnrollmentPayload struct {
	Email         string  `json:"email" binding:"required,email"`
	StudentName   string  `json:"studentName"`
	CourseID      string  `json:"courseId" binding:"required"`
	TransactionID string  `json:"transactionId"`
	Price         float64 `json:"price" binding:"gte=0"`
}

// AddEnrollment records a purchase. Enrollments are not deduplicated.
func (h *Handler) AddEnrollment(c *gin.Context) {
	var payload AddEnrollmentPayload
	if !bind(c, successEnvelope, &payload) {
		return
	}
	courseID, ok := parseID(c, successEnvelope, payload.CourseID)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	enrollment := models.Enrollment{
		Email:         payload.Email,
		StudentName:   payload.StudentName,
		CourseID:      courseID,
		TransactionID: payload.TransactionID,
		Price:         payload.Price,
		CreatedAt:     time.Now(),
	}
	result, err := h.store.Enrollments.Insert(ctx, &enrollment)
	if err != nil {
		h.serverError(c, successEnvelope, "Internal server error", err)
		return
	}
	if !result.Acknowledged {
		c.JSON(http.StatusBadRequest, with(successEnvelope.fail("Failed to add enrollment"), gin.H{"data": result}))
		return
	}
	c.JSON(http.StatusOK, with(successEnvelope.ok("Enrollment added successfully"), gin.H{"data": result}))
}
