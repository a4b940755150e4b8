package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mentora/backend/internal/pagination"
)

// envelope selects the response shape of an endpoint family. User and teacher
// endpoints report {"status": ...}; everything else reports {"success": ...}.
type envelope int

const (
	statusEnvelope envelope = iota
	successEnvelope
)

func (e envelope) ok(message string) gin.H {
	if e == statusEnvelope {
		return gin.H{"status": "success", "message": message}
	}
	return gin.H{"success": true, "message": message}
}

func (e envelope) fail(message string) gin.H {
	if e == statusEnvelope {
		return gin.H{"status": "error", "message": message}
	}
	return gin.H{"success": false, "message": message}
}

// with adds extra to body and returns it.
func with(body gin.H, extra gin.H) gin.H {
	for k, v := range extra {
		body[k] = v
	}
	return body
}

// bind decodes and validates the JSON body, answering 400 itself on failure.
func bind(c *gin.Context, e envelope, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		body := e.fail("Invalid request payload")
		if fields := fieldErrors(err); fields != nil {
			body["fields"] = fields
		}
		c.JSON(http.StatusBadRequest, body)
		return false
	}
	return true
}

// parseID converts a hex identifier, answering 400 itself on failure.
func parseID(c *gin.Context, e envelope, hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		c.JSON(http.StatusBadRequest, e.fail("Invalid id"))
		return primitive.NilObjectID, false
	}
	return id, true
}

// serverError logs err and answers 500 with message.
func (h *Handler) serverError(c *gin.Context, e envelope, message string, err error) {
	h.log.Error(c.Request.Method+" "+c.FullPath(), err, map[string]interface{}{"message": message})
	c.JSON(http.StatusInternalServerError, e.fail(message))
}

func pageFields(meta pagination.Meta) gin.H {
	return gin.H{
		"currentPage": meta.CurrentPage,
		"totalPages":  meta.TotalPages,
		"hasNextPage": meta.HasNextPage,
	}
}
