// Package inmem keeps every collection in process memory. It backs the handler
// tests and the STORE=memory development mode; joins and orderings follow the
// MongoDB pipelines in package mongodb.
package inmem

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mentora/backend/internal/models"
	"mentora/backend/internal/store"
)

type collections struct {
	mu          sync.RWMutex
	users       []models.User
	courses     []models.Course
	enrollments []models.Enrollment
	assignments []models.Assignment
	submissions []models.Submission
	feedbacks   []models.Feedback
}

// New returns an empty store.
func New() *store.Store {
	db := &collections{}
	return &store.Store{
		Users:       &userRepo{db: db},
		Courses:     &courseRepo{db: db},
		Enrollments: &enrollmentRepo{db: db},
		Assignments: &assignmentRepo{db: db},
		Feedbacks:   &feedbackRepo{db: db},
		Stats:       &statsRepo{db: db},
	}
}

func inserted(id primitive.ObjectID) store.InsertResult {
	return store.InsertResult{Acknowledged: true, InsertedID: id}
}

func ensureID(id *primitive.ObjectID) {
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
}

func page[T any](items []T, p store.Page) []T {
	out := make([]T, 0)
	if p.Skip < 0 || p.Skip >= int64(len(items)) {
		return out
	}
	end := int64(len(items))
	if p.Limit > 0 && p.Limit < end-p.Skip {
		end = p.Skip + p.Limit
	}
	return append(out, items[p.Skip:end]...)
}

func capAt[T any](items []T, n int64) []T {
	if n >= 0 && int64(len(items)) > n {
		return items[:n]
	}
	return items
}

// usersByEmail returns the users whose email is email (the left-outer join
// used for course listings).
func (db *collections) usersByEmail(email string) []models.User {
	out := make([]models.User, 0)
	for _, u := range db.users {
		if u.Email == email {
			out = append(out, u)
		}
	}
	return out
}

func (db *collections) enrollmentsFor(courseID primitive.ObjectID) []models.Enrollment {
	out := make([]models.Enrollment, 0)
	for _, e := range db.enrollments {
		if e.CourseID == courseID {
			out = append(out, e)
		}
	}
	return out
}

func (db *collections) summarize(c models.Course) models.CourseSummary {
	enrollments := db.enrollmentsFor(c.ID)
	return models.CourseSummary{
		Course:           c,
		Instructor:       db.usersByEmail(c.InstructorEmail),
		Enrollments:      enrollments,
		TotalEnrollments: int64(len(enrollments)),
	}
}

func (db *collections) course(id primitive.ObjectID) (models.Course, bool) {
	for _, c := range db.courses {
		if c.ID == id {
			return c, true
		}
	}
	return models.Course{}, false
}
