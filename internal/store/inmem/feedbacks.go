package inmem

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mentora/backend/internal/models"
	"mentora/backend/internal/store"
)

type feedbackRepo struct {
	db *collections
}

func (r *feedbackRepo) Insert(_ context.Context, f *models.Feedback) (store.InsertResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	ensureID(&f.ID)
	r.db.feedbacks = append(r.db.feedbacks, *f)
	return inserted(f.ID), nil
}

func (r *feedbackRepo) List(_ context.Context, filter store.FeedbackFilter, n int64) ([]models.FeedbackView, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	views := make([]models.FeedbackView, 0)
	for _, f := range r.db.feedbacks {
		if filter.CourseID != nil && f.CourseID != *filter.CourseID {
			continue
		}
		if filter.StudentEmail != "" && f.StudentEmail != filter.StudentEmail {
			continue
		}
		view := models.FeedbackView{Feedback: f}
		if users := r.db.usersByEmail(f.StudentEmail); len(users) > 0 {
			view.UserInfo = &users[0]
		}
		if c, ok := r.db.course(f.CourseID); ok {
			view.CourseInfo = &c
		}
		views = append(views, view)
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Rating > views[j].Rating
	})
	return capAt(views, n), nil
}

func (r *feedbackRepo) Update(_ context.Context, id primitive.ObjectID, studentEmail string, patch models.FeedbackPatch) (store.UpdateResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	res := store.UpdateResult{Acknowledged: true}
	for i := range r.db.feedbacks {
		f := &r.db.feedbacks[i]
		if f.ID != id || f.StudentEmail != studentEmail {
			continue
		}
		before := *f
		if patch.Rating != nil {
			f.Rating = *patch.Rating
		}
		if patch.Comment != nil {
			f.Comment = *patch.Comment
		}
		res.MatchedCount = 1
		if before != *f {
			res.ModifiedCount = 1
		}
		break
	}
	return res, nil
}
