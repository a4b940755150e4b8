package inmem

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mentora/backend/internal/models"
	"mentora/backend/internal/store"
)

type enrollmentRepo struct {
	db *collections
}

func (r *enrollmentRepo) Insert(_ context.Context, e *models.Enrollment) (store.InsertResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	ensureID(&e.ID)
	r.db.enrollments = append(r.db.enrollments, *e)
	return inserted(e.ID), nil
}

func (r *enrollmentRepo) ByCourse(_ context.Context, courseID primitive.ObjectID) ([]models.Enrollment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.enrollmentsFor(courseID), nil
}

func (r *enrollmentRepo) ByStudent(_ context.Context, email string) ([]models.EnrolledCourse, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	enrolled := make([]models.EnrolledCourse, 0)
	for _, e := range r.db.enrollments {
		if e.Email != email {
			continue
		}
		c, ok := r.db.course(e.CourseID)
		if !ok {
			continue
		}
		enrolled = append(enrolled, models.EnrolledCourse{
			Enrollment: e,
			CourseInfo: c,
			Instructor: r.db.usersByEmail(c.InstructorEmail),
		})
	}
	sort.SliceStable(enrolled, func(i, j int) bool {
		return enrolled[i].CreatedAt.After(enrolled[j].CreatedAt)
	})
	return enrolled, nil
}
