// Package router maps every endpoint to its authentication, role gate and
// handler.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mentora/backend/internal/handlers"
	"mentora/backend/internal/middleware"
	"mentora/backend/internal/models"
	"mentora/backend/internal/store"
)

type Options struct {
	Handler     *handlers.Handler
	Verifier    middleware.TokenVerifier
	Users       store.UserStore
	CORSOrigins []string
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

// New builds the Gin engine with logging, recovery and CORS.
func New(opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), cors.New(corsConfig(opts.CORSOrigins)))
	Register(router, opts)
	return router
}

// Register attaches the API routes to r.
func Register(r gin.IRouter, opts Options) {
	h := opts.Handler
	auth := middleware.AuthMiddleware(opts.Verifier)
	admin := middleware.RequireRole(opts.Users, models.RoleAdmin)
	teacher := middleware.RequireRole(opts.Users, models.RoleTeacher)
	student := middleware.RequireRole(opts.Users, models.RoleStudent)

	r.GET("/", handlers.Root)
	r.GET("/health", handlers.HealthCheck)

	// USER ROUTES
	r.POST("/users", h.CreateUser)
	r.GET("/users/:email", h.GetUserByEmail)
	r.GET("/users", auth, admin, h.SearchUsers)
	r.PATCH("/users/admin/:id", auth, admin, h.MakeAdmin)

	// TEACHER ROUTES
	r.POST("/be-teacher/:userEmail", auth, h.ApplyForTeacher)
	r.GET("/teachers", auth, admin, h.GetTeachers)
	r.PATCH("/change-teacher-status/:id", auth, admin, h.ChangeTeacherStatus)

	// COURSE ROUTES
	r.GET("/courses", h.GetApprovedCourses)
	r.GET("/courses/all", auth, admin, h.GetAllCourses)
	r.GET("/courses/popular", h.GetPopularCourses)
	r.GET("/courses/new", h.GetNewCourses)
	r.GET("/courses/teacher/:email", auth, teacher, h.GetCoursesByTeacher)
	r.GET("/courses/enrolled/:email", auth, h.GetEnrolledCourses)
	r.GET("/courses/:id", h.GetCourseByID)
	r.POST("/courses/add", auth, teacher, h.AddCourse)
	r.PATCH("/courses/change-status/:id", auth, admin, h.ChangeCourseStatus)
	r.PATCH("/courses/:id", auth, teacher, h.UpdateCourse)
	r.DELETE("/courses/:id", auth, teacher, h.DeleteCourse)

	// ENROLLMENT ROUTES
	r.GET("/enrollments/:courseId", h.GetEnrollmentsByCourse)
	r.POST("/enrollments", h.AddEnrollment)

	// ASSIGNMENT ROUTES
	r.POST("/assignments", auth, teacher, h.AddAssignment)
	r.GET("/assignments/:courseId", h.GetAssignmentsByCourse)
	r.GET("/assignments/:courseId/:studentEmail", auth, h.GetAssignmentsForStudent)
	r.GET("/submissions/:courseId", auth, h.GetSubmissionsByCourse)
	r.POST("/submissions", auth, h.AddSubmission)

	// FEEDBACK ROUTES
	r.POST("/feedbacks", auth, student, h.AddFeedback)
	r.GET("/feedbacks", h.GetFeedbacks)
	r.PATCH("/feedbacks/:id", auth, student, h.UpdateFeedback)

	// UTILITY ROUTES
	r.GET("/get-ik-signature", h.GetImageKitSignature)
	r.POST("/create-payment-intent", h.CreatePaymentIntent)
	r.GET("/statistics", h.GetStatistics)
}
