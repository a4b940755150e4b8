package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mentora/backend/internal/models"
	"mentora/backend/internal/store"
)

type enrollmentRepo struct {
	enrollments *mongo.Collection
}

func (r *enrollmentRepo) Insert(ctx context.Context, e *models.Enrollment) (store.InsertResult, error) {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	res, err := insertResult(r.enrollments.InsertOne(ctx, e))
	return res, errors.Wrap(err, "inserting enrollment")
}

func (r *enrollmentRepo) ByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.Enrollment, error) {
	cursor, err := r.enrollments.Find(ctx, bson.M{"courseId": courseID})
	if err != nil {
		return nil, errors.Wrap(err, "finding enrollments")
	}
	defer cursor.Close(ctx)

	enrollments := make([]models.Enrollment, 0)
	if err := cursor.All(ctx, &enrollments); err != nil {
		return nil, errors.Wrap(err, "decoding enrollments")
	}
	return enrollments, nil
}

func (r *enrollmentRepo) ByStudent(ctx context.Context, email string) ([]models.EnrolledCourse, error) {
	enrolled := make([]models.EnrolledCourse, 0)
	err := aggregate(ctx, r.enrollments, enrolledCoursesPipeline(email), &enrolled)
	return enrolled, errors.Wrap(err, "listing enrolled courses")
}
