// ./mentora-backend/internal/handlers/user_handler.go
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

// CreateUserPayload is sent by the client after its first sign-in.
type CreateUserPayload struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"required,email"`
	Image string `json:"image"`
}

// CreateUser registers a student. Repeating the call for a known email is a no-op.
func (h *Handler) CreateUser(c *gin.Context) {
	var payload CreateUserPayload
	if !bind(c, statusEnvelope, &payload) {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	_, err := h.store.Users.FindByEmail(ctx, payload.Email)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"message": "User already exists"})
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		h.serverError(c, statusEnvelope, "Internal server error", err)
		return
	}

	user := models.User{
		Name:      payload.Name,
		Email:     payload.Email,
		Image:     payload.Image,
		Role:      models.RoleStudent,
		CreatedAt: time.Now(),
	}
	result, err := h.store.Users.Insert(ctx, &user)
	if errors.Is(err, store.ErrDuplicate) {
		c.JSON(http.StatusOK, gin.H{"message": "User already exists"})
		return
	}
	if err != nil {
		h.serverError(c, statusEnvelope, "Internal server error", err)
		return
	}
	if !result.Acknowledged {
		c.JSON(http.StatusBadRequest, statusEnvelope.fail("User creation failed"))
		return
	}
	c.JSON(http.StatusCreated, with(statusEnvelope.ok("User created successfully"), gin.H{"data": result}))
}

func (h *Handler) GetUserByEmail(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	user, err := h.store.Users.FindByEmail(ctx, c.Param("email"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, statusEnvelope.fail("User not found"))
		return
	}
	if err != nil {
		h.serverError(c, statusEnvelope, "Internal server error", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// SearchUsers lists users whose name or email contains ?search.
func (h *Handler) SearchUsers(c *gin.Context) {
	params := pagination.Parse(c.Query("page"), c.Query("limit"), pagination.DefaultLimit)
	ctx, cancel := h.requestContext(c)
	defer cancel()

	users, total, err := h.store.Users.Search(ctx, c.Query("search"), params.Window())
	if err != nil {
		h.log.Error("searching users", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users", "success": false})
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusOK, with(statusEnvelope.fail("No users found"), gin.H{"users": users}))
		return
	}
	body := with(statusEnvelope.ok("Users fetched successfully"), pageFields(params.Meta(total)))
	c.JSON(http.StatusOK, with(body, gin.H{"users": users, "totalUsers": total}))
}

// TeacherApplicationPayload is the allow-list of profile fields a user may
// submit with a teaching application. Role and status are set server-side.
type TeacherApplicationPayload struct {
	Name       string `json:"name"`
	Image      string `json:"image"`
	Experience string `json:"experience"`
	Title      string `json:"title"`
	Category   string `json:"category"`
}

// ApplyForTeacher files a teaching application for the signed-in user only.
func (h *Handler) ApplyForTeacher(c *gin.Context) {
	email := middleware.EmailForContext(c.Request.Context())
	if !strings.EqualFold(c.Param("userEmail"), email) {
		c.JSON(http.StatusForbidden, statusEnvelope.fail("You can only apply for yourself"))
		return
	}
	var payload TeacherApplicationPayload
	if !bind(c, statusEnvelope, &payload) {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.store.Users.ApplyForTeacher(ctx, email, models.TeacherApplication{
		Name:       payload.Name,
		Image:      payload.Image,
		Experience: payload.Experience,
		Title:      payload.Title,
		Category:   payload.Category,
	})
	if err != nil {
		h.serverError(c, statusEnvelope, "Internal server error", err)
		return
	}
	if !result.Acknowledged {
		c.JSON(http.StatusBadRequest, statusEnvelope.fail("Teacher creation failed"))
		return
	}
	c.JSON(http.StatusCreated, with(statusEnvelope.ok("Teacher created successfully"), gin.H{"data": result}))
}

// GetTeachers lists teachers with pending applications first.
func (h *Handler) GetTeachers(c *gin.Context) {
	params := pagination.Parse(c.Query("page"), c.Query("limit"), pagination.DefaultLimit)
	ctx, cancel := h.requestContext(c)
	defer cancel()

	teachers, total, err := h.store.Users.Teachers(ctx, params.Window())
	if err != nil {
		h.serverError(c, statusEnvelope, "Internal server error", err)
		return
	}
	body := with(statusEnvelope.ok("Teachers fetched successfully"), pageFields(params.Meta(total)))
	c.JSON(http.StatusOK, with(body, gin.H{"teachers": teachers, "totalTeachers": total}))
}

// StatusPayload carries an admin's review decision.
type StatusPayload struct {
	Status models.Status `json:"status" binding:"required,oneof=pending approved rejected"`
}

func (h *Handler) ChangeTeacherStatus(c *gin.Context) {
	id, ok := parseID(c, statusEnvelope, c.Param("id"))
	if !ok {
		return
	}
	var payload StatusPayload
	if !bind(c, statusEnvelope, &payload) {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.store.Users.SetTeacherStatus(ctx, id, payload.Status)
	if err != nil {
		h.serverError(c, statusEnvelope, "Internal server error", err)
		return
	}
	if !result.Acknowledged {
		c.JSON(http.StatusBadRequest, statusEnvelope.fail("Teacher status update failed"))
		return
	}
	c.JSON(http.StatusCreated, with(statusEnvelope.ok("Teacher status updated successfully"), gin.H{"data": result}))
}

func (h *Handler) MakeAdmin(c *gin.Context) {
	id, ok := parseID(c, statusEnvelope, c.Param("id"))
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	if _, err := h.store.Users.MakeAdmin(ctx, id); err != nil {
		h.log.Error("making admin", err, map[string]interface{}{"id": id.Hex()})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}
