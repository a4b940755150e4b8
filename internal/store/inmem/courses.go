package inmem

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mentora/backend/internal/models"
	"mentora/backend/internal/store"
)

type courseRepo struct {
	db *collections
}

func (r *courseRepo) Insert(_ context.Context, c *models.Course) (store.InsertResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	ensureID(&c.ID)
	r.db.courses = append(r.db.courses, *c)
	return inserted(c.ID), nil
}

func newestFirst(courses []models.Course) {
	sort.SliceStable(courses, func(i, j int) bool {
		if !courses[i].CreatedAt.Equal(courses[j].CreatedAt) {
			return courses[i].CreatedAt.After(courses[j].CreatedAt)
		}
		return courses[i].ID.Hex() > courses[j].ID.Hex()
	})
}

func (r *courseRepo) filter(keep func(models.Course) bool) []models.Course {
	out := make([]models.Course, 0)
	for _, c := range r.db.courses {
		if keep(c) {
			out = append(out, c)
		}
	}
	newestFirst(out)
	return out
}

func (r *courseRepo) All(_ context.Context, p store.Page) ([]models.Course, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	all := r.filter(func(models.Course) bool { return true })
	return page(all, p), int64(len(all)), nil
}

func (r *courseRepo) ByInstructor(_ context.Context, email string, p store.Page) ([]models.Course, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	owned := r.filter(func(c models.Course) bool { return c.InstructorEmail == email })
	return page(owned, p), int64(len(owned)), nil
}

func (r *courseRepo) approved(term string) []models.CourseSummary {
	courses := r.filter(func(c models.Course) bool {
		return c.Status == models.StatusApproved && (term == "" || store.MatchesTerm(c.Title, term))
	})
	out := make([]models.CourseSummary, 0, len(courses))
	for _, c := range courses {
		out = append(out, r.db.summarize(c))
	}
	return out
}

func (r *courseRepo) Approved(_ context.Context, term string, p store.Page) ([]models.CourseSummary, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	courses := r.approved(term)
	return page(courses, p), int64(len(courses)), nil
}

func (r *courseRepo) Popular(_ context.Context, n int64) ([]models.CourseSummary, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	courses := r.approved("")
	sort.SliceStable(courses, func(i, j int) bool {
		return courses[i].TotalEnrollments > courses[j].TotalEnrollments
	})
	return capAt(courses, n), nil
}

func (r *courseRepo) Newest(_ context.Context, n int64) ([]models.CourseSummary, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return capAt(r.approved(""), n), nil
}

func (r *courseRepo) Detail(_ context.Context, id primitive.ObjectID) (*models.CourseDetail, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	c, ok := r.db.course(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	summary := r.db.summarize(c)
	if len(summary.Instructor) == 0 {
		return nil, store.ErrNotFound
	}
	return &models.CourseDetail{
		Course:           c,
		Instructor:       summary.Instructor[0],
		Enrollments:      summary.Enrollments,
		TotalEnrollments: summary.TotalEnrollments,
	}, nil
}

func (r *courseRepo) update(id primitive.ObjectID, owner string, fn func(*models.Course)) store.UpdateResult {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	res := store.UpdateResult{Acknowledged: true}
	for i := range r.db.courses {
		c := &r.db.courses[i]
		if c.ID != id || (owner != "" && c.InstructorEmail != owner) {
			continue
		}
		before := *c
		fn(c)
		res.MatchedCount = 1
		if before != *c {
			res.ModifiedCount = 1
		}
		break
	}
	return res
}

func (r *courseRepo) Update(_ context.Context, id primitive.ObjectID, instructorEmail string, patch models.CoursePatch) (store.UpdateResult, error) {
	return r.update(id, instructorEmail, func(c *models.Course) {
		if patch.Title != nil {
			c.Title = *patch.Title
		}
		if patch.Description != nil {
			c.Description = *patch.Description
		}
		if patch.Category != nil {
			c.Category = *patch.Category
		}
		if patch.Price != nil {
			c.Price = *patch.Price
		}
		if patch.Image != nil {
			c.Image = *patch.Image
		}
	}), nil
}

func (r *courseRepo) SetStatus(_ context.Context, id primitive.ObjectID, status models.Status) (store.UpdateResult, error) {
	return r.update(id, "", func(c *models.Course) { c.Status = status }), nil
}

func (r *courseRepo) Delete(_ context.Context, id primitive.ObjectID, instructorEmail string) (store.DeleteResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, c := range r.db.courses {
		if c.ID == id && c.InstructorEmail == instructorEmail {
			r.db.courses = append(r.db.courses[:i], r.db.courses[i+1:]...)
			return store.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return store.DeleteResult{Acknowledged: true}, nil
}
