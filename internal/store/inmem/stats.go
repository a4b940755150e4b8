package inmem

import (
	"context"

	"mentora/backend/internal/models"
)

type statsRepo struct {
	db *collections
}

func (r *statsRepo) Estimate(context.Context) (models.Statistics, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return models.Statistics{
		TotalUsers:       int64(len(r.db.users)),
		TotalCourses:     int64(len(r.db.courses)),
		TotalEnrollments: int64(len(r.db.enrollments)),
	}, nil
}
