package inmem

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mentora/backend/internal/models"
	"mentora/backend/internal/store"
)

type assignmentRepo struct {
	db *collections
}

func (r *assignmentRepo) Insert(_ context.Context, a *models.Assignment) (store.InsertResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	ensureID(&a.ID)
	r.db.assignments = append(r.db.assignments, *a)
	return inserted(a.ID), nil
}

func (r *assignmentRepo) byCourse(courseID primitive.ObjectID) []models.Assignment {
	out := make([]models.Assignment, 0)
	for _, a := range r.db.assignments {
		if a.CourseID == courseID {
			out = append(out, a)
		}
	}
	return out
}

func (r *assignmentRepo) ByCourse(_ context.Context, courseID primitive.ObjectID) ([]models.Assignment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.byCourse(courseID), nil
}

func (r *assignmentRepo) ForStudent(_ context.Context, courseID primitive.ObjectID, studentEmail string) ([]models.AssignmentWithSubmissions, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]models.AssignmentWithSubmissions, 0)
	for _, a := range r.byCourse(courseID) {
		courses := make([]models.Course, 0, 1)
		if c, ok := r.db.course(a.CourseID); ok {
			courses = append(courses, c)
		}
		submissions := make([]models.Submission, 0)
		for _, s := range r.db.submissions {
			if s.AssignmentID == a.ID && s.StudentEmail == studentEmail {
				submissions = append(submissions, s)
			}
		}
		out = append(out, models.AssignmentWithSubmissions{
			Assignment:        a,
			CourseInfo:        courses,
			StudentSubmission: submissions,
		})
	}
	return out, nil
}

func (r *assignmentRepo) InsertSubmission(_ context.Context, s *models.Submission) (store.InsertResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	ensureID(&s.ID)
	r.db.submissions = append(r.db.submissions, *s)
	return inserted(s.ID), nil
}

func (r *assignmentRepo) Submissions(_ context.Context, courseID primitive.ObjectID, studentEmail string) ([]models.Submission, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]models.Submission, 0)
	for _, s := range r.db.submissions {
		if s.CourseID != courseID {
			continue
		}
		if studentEmail != "" && s.StudentEmail != studentEmail {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
