package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"

	"mentora/backend/internal/models"
)

type statsRepo struct {
	users       *mongo.Collection
	courses     *mongo.Collection
	enrollments *mongo.Collection
}

// Estimate reads collection metadata counts. The three numbers are not a
// consistent snapshot.
func (r *statsRepo) Estimate(ctx context.Context) (models.Statistics, error) {
	var stats models.Statistics
	var err error
	if stats.TotalUsers, err = r.users.EstimatedDocumentCount(ctx); err != nil {
		return stats, errors.Wrap(err, "counting users")
	}
	if stats.TotalCourses, err = r.courses.EstimatedDocumentCount(ctx); err != nil {
		return stats, errors.Wrap(err, "counting courses")
	}
	if stats.TotalEnrollments, err = r.enrollments.EstimatedDocumentCount(ctx); err != nil {
		return stats, errors.Wrap(err, "counting enrollments")
	}
	return stats, nil
}
