package inmem

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mentora/backend/internal/models"
	"mentora/backend/internal/store"
)

type userRepo struct {
	db *collections
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.db.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *userRepo) Insert(_ context.Context, u *models.User) (store.InsertResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.users {
		if existing.Email == u.Email {
			return store.InsertResult{}, store.ErrDuplicate
		}
	}
	ensureID(&u.ID)
	r.db.users = append(r.db.users, *u)
	return inserted(u.ID), nil
}

// update applies fn to every user matching pred, like a single-document
// UpdateOne it stops after the first match.
func (r *userRepo) update(pred func(models.User) bool, fn func(*models.User)) store.UpdateResult {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	res := store.UpdateResult{Acknowledged: true}
	for i := range r.db.users {
		if !pred(r.db.users[i]) {
			continue
		}
		before := r.db.users[i]
		fn(&r.db.users[i])
		res.MatchedCount = 1
		if before != r.db.users[i] {
			res.ModifiedCount = 1
		}
		break
	}
	return res
}

func (r *userRepo) ApplyForTeacher(_ context.Context, email string, app models.TeacherApplication) (store.UpdateResult, error) {
	return r.update(
		func(u models.User) bool { return u.Email == email },
		func(u *models.User) {
			u.Role = models.RoleTeacher
			u.Status = models.StatusPending
			if app.Name != "" {
				u.Name = app.Name
			}
			if app.Image != "" {
				u.Image = app.Image
			}
			if app.Experience != "" {
				u.Experience = app.Experience
			}
			if app.Title != "" {
				u.Title = app.Title
			}
			if app.Category != "" {
				u.Category = app.Category
			}
		},
	), nil
}

func (r *userRepo) SetTeacherStatus(_ context.Context, id primitive.ObjectID, status models.Status) (store.UpdateResult, error) {
	return r.update(
		func(u models.User) bool { return u.ID == id },
		func(u *models.User) {
			u.Status = status
			u.Role = models.RoleTeacher
		},
	), nil
}

func (r *userRepo) MakeAdmin(_ context.Context, id primitive.ObjectID) (store.UpdateResult, error) {
	return r.update(
		func(u models.User) bool { return u.ID == id },
		func(u *models.User) { u.Role = models.RoleAdmin },
	), nil
}

func (r *userRepo) Search(_ context.Context, term string, p store.Page) ([]models.User, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	matched := make([]models.User, 0)
	for _, u := range r.db.users {
		if term == "" || store.MatchesTerm(u.Name, term) || store.MatchesTerm(u.Email, term) {
			matched = append(matched, u)
		}
	}
	return page(matched, p), int64(len(matched)), nil
}

func (r *userRepo) Teachers(_ context.Context, p store.Page) ([]models.User, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	teachers := make([]models.User, 0)
	for _, u := range r.db.users {
		if u.Role == models.RoleTeacher {
			teachers = append(teachers, u)
		}
	}
	sort.SliceStable(teachers, func(i, j int) bool {
		oi, oj := store.TeacherOrder(teachers[i].Status), store.TeacherOrder(teachers[j].Status)
		if oi != oj {
			return oi < oj
		}
		return teachers[i].Status < teachers[j].Status
	})
	return page(teachers, p), int64(len(teachers)), nil
}
