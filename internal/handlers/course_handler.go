// ./mentora-backend/internal/handlers/course_handler.go
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"mentora/backend/internal/middleware"
	"mentora/backend/internal/models"
	"mentora/backend/internal/pagination"
	"mentora/backend/internal/store"
)

func coursePage(message string, courses interface{}, total int64, meta pagination.Meta) gin.H {
	body := with(successEnvelope.ok(message), pageFields(meta))
	return with(body, gin.H{"courses": courses, "totalCourses": total})
}

// GetApprovedCourses is the public catalogue. ?searchTerm (or ?search)
// filters on title.
func (h *Handler) GetApprovedCourses(c *gin.Context) {
	params := pagination.Parse(c.Query("page"), c.Query("limit"), pagination.CatalogueLimit)
	term := c.Query("searchTerm")
	if term == "" {
		term = c.Query("search")
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	courses, total, err := h.store.Courses.Approved(ctx, term, params.Window())
	if err != nil {
		h.serverError(c, successEnvelope, "Failed to load approved courses", err)
		return
	}
	c.JSON(http.StatusOK, coursePage("Courses fetched successfully", courses, total, params.Meta(total)))
}

// GetAllCourses lists every course regardless of status, for admins.
func (h *Handler) GetAllCourses(c *gin.Context) {
	params := pagination.Parse(c.Query("page"), c.Query("limit"), pagination.DefaultLimit)
	ctx, cancel := h.requestContext(c)
	defer cancel()

	courses, total, err := h.store.Courses.All(ctx, params.Window())
	if err != nil {
		h.serverError(c, successEnvelope, "Failed to load courses", err)
		return
	}
	c.JSON(http.StatusOK, coursePage("Courses fetched successfully", courses, total, params.Meta(total)))
}

func (h *Handler) GetCoursesByTeacher(c *gin.Context) {
	params := pagination.Parse(c.Query("page"), c.Query("limit"), pagination.CatalogueLimit)
	ctx, cancel := h.requestContext(c)
	defer cancel()

	courses, total, err := h.store.Courses.ByInstructor(ctx, c.Param("email"), params.Window())
	if err != nil {
		h.serverError(c, successEnvelope, "Failed to load courses", err)
		return
	}
	c.JSON(http.StatusOK, coursePage("Courses fetched successfully", courses, total, params.Meta(total)))
}

func (h *Handler) GetPopularCourses(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	courses, err := h.store.Courses.Popular(ctx, store.HighlightLimit)
	if err != nil {
		h.serverError(c, successEnvelope, "Failed to load popular courses", err)
		return
	}
	c.JSON(http.StatusOK, with(successEnvelope.ok("Popular courses fetched successfully"), gin.H{"courses": courses}))
}

func (h *Handler) GetNewCourses(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	courses, err := h.store.Courses.Newest(ctx, store.HighlightLimit)
	if err != nil {
		h.serverError(c, successEnvelope, "Failed to load new courses", err)
		return
	}
	c.JSON(http.StatusOK, with(successEnvelope.ok("New courses fetched successfully"), gin.H{"courses": courses}))
}

func (h *Handler) GetCourseByID(c *gin.Context) {
	id, ok := parseID(c, successEnvelope, c.Param("id"))
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	course, err := h.store.Courses.Detail(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, successEnvelope.fail("Course not found"))
		return
	}
	if err != nil {
		h.serverError(c, successEnvelope, "Failed to load course", err)
		return
	}
	c.JSON(http.StatusOK, with(successEnvelope.ok("Course fetched successfully"), gin.H{"course": course}))
}

// AddCoursePayload is a new course. InstructorEmail defaults to the verified
// token's email and may not name anyone else.
type AddCoursePayload struct {
	Title           string  `json:"title" binding:"required,notblank"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	Price           float64 `json:"price" binding:"gte=0"`
	Image           string  `json:"image"`
	InstructorName  string  `json:"instructorName"`
	InstructorEmail string  `json:"instructorEmail" binding:"omitempty,email"`
}

// AddCourse stores a course awaiting admin review.
func (h *Handler) AddCourse(c *gin.Context) {
	var payload AddCoursePayload
	if !bind(c, successEnvelope, &payload) {
		return
	}
	email := middleware.EmailForContext(c.Request.Context())
	if payload.InstructorEmail != "" && !strings.EqualFold(payload.InstructorEmail, email) {
		c.JSON(http.StatusForbidden, successEnvelope.fail("Courses can only be added for yourself"))
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	course := models.Course{
		Title:           payload.Title,
		Description:     payload.Description,
		Category:        payload.Category,
		Price:           payload.Price,
		Image:           payload.Image,
		InstructorName:  payload.InstructorName,
		InstructorEmail: email,
		Status:          models.StatusPending,
		CreatedAt:       time.Now(),
	}
	result, err := h.store.Courses.Insert(ctx, &course)
	if err != nil {
		h.serverError(c, successEnvelope, "Internal server error", err)
		return
	}
	if !result.Acknowledged {
		c.JSON(http.StatusBadRequest, successEnvelope.fail("Failed to add course"))
		return
	}
	c.JSON(http.StatusOK, with(successEnvelope.ok("Course added successfully"), gin.H{"data": result}))
}

// UpdateCoursePayload is a merge patch over the editable course fields.
type UpdateCoursePayload struct {
	Title       *string  `json:"title" binding:"omitempty,notblank"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Image       *string  `json:"image"`
}

// UpdateCourse applies a patch to a course owned by the caller.
func (h *Handler) UpdateCourse(c *gin.Context) {
	id, ok := parseID(c, successEnvelope, c.Param("id"))
	if !ok {
		return
	}
	var payload UpdateCoursePayload
	if !bind(c, successEnvelope, &payload) {
		return
	}
	patch := models.CoursePatch{
		Title:       payload.Title,
		Description: payload.Description,
		Category:    payload.Category,
		Price:       payload.Price,
		Image:       payload.Image,
	}
	if patch.Empty() {
		c.JSON(http.StatusBadRequest, successEnvelope.fail("Nothing to update"))
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.store.Courses.Update(ctx, id, middleware.EmailForContext(c.Request.Context()), patch)
	if err != nil {
		h.serverError(c, successEnvelope, "Failed to update course", err)
		return
	}
	if !result.Acknowledged {
		c.JSON(http.StatusBadRequest, successEnvelope.fail("Failed to update course"))
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, successEnvelope.fail("Course not found"))
		return
	}
	c.JSON(http.StatusOK, with(successEnvelope.ok("Course updated successfully"), gin.H{"data": result}))
}

func (h *Handler) ChangeCourseStatus(c *gin.Context) {
	id, ok := parseID(c, successEnvelope, c.Param("id"))
	if !ok {
		return
	}
	var payload StatusPayload
	if !bind(c, successEnvelope, &payload) {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.store.Courses.SetStatus(ctx, id, payload.Status)
	if err != nil {
		h.serverError(c, successEnvelope, "Failed to update course status", err)
		return
	}
	if !result.Acknowledged {
		c.JSON(http.StatusBadRequest, successEnvelope.fail("Failed to update course status"))
		return
	}
	c.JSON(http.StatusOK, with(successEnvelope.ok("Course status updated"), gin.H{"data": result}))
}

// DeleteCourse removes a course owned by the caller.
func (h *Handler) DeleteCourse(c *gin.Context) {
	id, ok := parseID(c, successEnvelope, c.Param("id"))
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.store.Courses.Delete(ctx, id, middleware.EmailForContext(c.Request.Context()))
	if err != nil {
		h.serverError(c, successEnvelope, "Failed to delete course", err)
		return
	}
	if !result.Acknowledged {
		c.JSON(http.StatusBadRequest, successEnvelope.fail("Failed to delete course"))
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, successEnvelope.fail("Course not found"))
		return
	}
	c.JSON(http.StatusOK, with(successEnvelope.ok("Course deleted successfully"), gin.H{"data": result}))
}

// GetEnrolledCourses lists the courses a student enrolled in, newest first.
func (h *Handler) GetEnrolledCourses(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	enrolled, err := h.store.Enrollments.ByStudent(ctx, c.Param("email"))
	if err != nil {
		h.serverError(c, successEnvelope, "Failed to fetch enrolled courses", err)
		return
	}
	c.JSON(http.StatusOK, with(successEnvelope.ok("Enrolled courses fetched successfully"), gin.H{"enrolledCourses": enrolled}))
}
