// ./mentora-backend/internal/handlers/assignment_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mentora/backend/internal/middleware"
	"mentora/backend/internal/models"
)

type AddAssignmentPayload struct {
	CourseID    string `json:"courseId" binding:"required"`
	Title       string `json:"title" binding:"required,notblank"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	Marks       int    `json:"marks" binding:"gte=0"`
}

func (h *Handler) AddAssignment(c *gin.Context) {
	var payload AddAssignmentPayload
	if !bind(c, successEnvelope, &payload) {
		return
	}
	courseID, ok := parseID(c, successEnvelope, payload.CourseID)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	assignment := models.Assignment{
		CourseID:    courseID,
		Title:       payload.Title,
		Description: payload.Description,
		Deadline:    payload.Deadline,
		Marks:       payload.Marks,
		CreatedAt:   time.Now(),
	}
	result, err := h.store.Assignments.Insert(ctx, &assignment)
	if err != nil {
		h.serverError(c, successEnvelope, "Internal server error", err)
		return
	}
	if !result.Acknowledged {
		c.JSON(http.StatusBadRequest, with(successEnvelope.fail("Failed to add assignment"), gin.H{"data": result}))
		return
	}
	c.JSON(http.StatusOK, with(successEnvelope.ok("Assignment added successfully"), gin.H{"data": result}))
}

func (h *Handler) GetAssignmentsByCourse(c *gin.Context) {
	courseID, ok := parseID(c, successEnvelope, c.Param("courseId"))
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	assignments, err := h.store.Assignments.ByCourse(ctx, courseID)
	if err != nil {
		h.serverError(c, successEnvelope, "Internal server error", err)
		return
	}
	if len(assignments) == 0 {
		c.JSON(http.StatusAccepted, with(successEnvelope.fail("No assignments found"), gin.H{"assignments": assignments}))
		return
	}
	c.JSON(http.StatusOK, with(successEnvelope.ok("Assignments fetched successfully"), gin.H{"assignments": assignments}))
}

// GetAssignmentsForStudent attaches the course and the student's own
// submissions to each assignment of the course.
func (h *Handler) GetAssignmentsForStudent(c *gin.Context) {
	courseID, ok := parseID(c, successEnvelope, c.Param("courseId"))
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	assignments, err := h.store.Assignments.ForStudent(ctx, courseID, c.Param("studentEmail"))
	if err != nil {
		h.serverError(c, successEnvelope, "Internal server error", err)
		return
	}
	if len(assignments) == 0 {
		c.JSON(http.StatusAccepted, with(successEnvelope.fail("No assignments found"), gin.H{"assignments": assignments}))
		return
	}
	c.JSON(http.StatusOK, with(successEnvelope.ok("Assignments with student submissions fetched successfully"), gin.H{"assignments": assignments}))
}

// GetSubmissionsByCourse optionally narrows to ?studentEmail.
func (h *Handler) GetSubmissionsByCourse(c *gin.Context) {
	courseID, ok := parseID(c, successEnvelope, c.Param("courseId"))
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	submissions, err := h.store.Assignments.Submissions(ctx, courseID, c.Query("studentEmail"))
	if err != nil {
		h.serverError(c, successEnvelope, "Internal server error", err)
		return
	}
	if len(submissions) == 0 {
		c.JSON(http.StatusAccepted, with(successEnvelope.fail("No submissions found"), gin.H{"submissions": submissions}))
		return
	}
	c.JSON(http.StatusOK, with(successEnvelope.ok("Submissions fetched successfully"), gin.H{"submissions": submissions}))
}

// AddSubmissionPayload is a student's answer. The author is the token holder.
type AddSubmissionPayload struct {
	AssignmentID string `json:"assignmentId" binding:"required"`
	CourseID     string `json:"courseId" binding:"required"`
	StudentName  string `json:"studentName"`
	Submission   string `json:"submission" binding:"required,notblank"`
}

func (h *Handler) AddSubmission(c *gin.Context) {
	var payload AddSubmissionPayload
	if !bind(c, successEnvelope, &payload) {
		return
	}
	assignmentID, ok := parseID(c, successEnvelope, payload.AssignmentID)
	if !ok {
		return
	}
	courseID, ok := parseID(c, successEnvelope, payload.CourseID)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	submission := models.Submission{
		AssignmentID: assignmentID,
		CourseID:     courseID,
		StudentEmail: middleware.EmailForContext(c.Request.Context()),
		StudentName:  payload.StudentName,
		Submission:   payload.Submission,
		CreatedAt:    time.Now(),
	}
	result, err := h.store.Assignments.InsertSubmission(ctx, &submission)
	if err != nil {
		h.serverError(c, successEnvelope, "Internal server error", err)
		return
	}
	if !result.Acknowledged {
		c.JSON(http.StatusBadRequest, with(successEnvelope.fail("Failed to add submission"), gin.H{"data": result}))
		return
	}
	c.JSON(http.StatusOK, with(successEnvelope.ok("Submission added successfully"), gin.H{"data": result}))
}
