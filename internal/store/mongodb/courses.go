package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentora/backend/internal/models"
	"mentora/backend/internal/store"
)

type courseRepo struct {
	courses *mongo.Collection
}

func (r *courseRepo) Insert(ctx context.Context, c *models.Course) (store.InsertResult, error) {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	res, err := insertResult(r.courses.InsertOne(ctx, c))
	return res, errors.Wrap(err, "inserting course")
}

func (r *courseRepo) find(ctx context.Context, filter bson.M, page store.Page) ([]models.Course, int64, error) {
	total, err := r.courses.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "counting courses")
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(page.Skip).
		SetLimit(page.Limit)
	cursor, err := r.courses.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "finding courses")
	}
	defer cursor.Close(ctx)

	courses := make([]models.Course, 0)
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, 0, errors.Wrap(err, "decoding courses")
	}
	return courses, total, nil
}

func (r *courseRepo) All(ctx context.Context, page store.Page) ([]models.Course, int64, error) {
	return r.find(ctx, bson.M{}, page)
}

func (r *courseRepo) ByInstructor(ctx context.Context, email string, page store.Page) ([]models.Course, int64, error) {
	return r.find(ctx, bson.M{"instructorEmail": email}, page)
}

func (r *courseRepo) Approved(ctx context.Context, term string, page store.Page) ([]models.CourseSummary, int64, error) {
	total, err := r.courses.CountDocuments(ctx, approvedFilter(term))
	if err != nil {
		return nil, 0, errors.Wrap(err, "counting approved courses")
	}
	courses := make([]models.CourseSummary, 0)
	if err := aggregate(ctx, r.courses, approvedCoursesPipeline(term, page), &courses); err != nil {
		return nil, 0, errors.Wrap(err, "listing approved courses")
	}
	return courses, total, nil
}

func (r *courseRepo) Popular(ctx context.Context, n int64) ([]models.CourseSummary, error) {
	courses := make([]models.CourseSummary, 0)
	err := aggregate(ctx, r.courses, popularCoursesPipeline(n), &courses)
	return courses, errors.Wrap(err, "listing popular courses")
}

func (r *courseRepo) Newest(ctx context.Context, n int64) ([]models.CourseSummary, error) {
	courses := make([]models.CourseSummary, 0)
	err := aggregate(ctx, r.courses, newCoursesPipeline(n), &courses)
	return courses, errors.Wrap(err, "listing new courses")
}

func (r *courseRepo) Detail(ctx context.Context, id primitive.ObjectID) (*models.CourseDetail, error) {
	var result []models.CourseDetail
	if err := aggregate(ctx, r.courses, courseDetailPipeline(id), &result); err != nil {
		return nil, errors.Wrapf(err, "loading course %s", id.Hex())
	}
	if len(result) == 0 {
		return nil, store.ErrNotFound
	}
	return &result[0], nil
}

func (r *courseRepo) Update(ctx context.Context, id primitive.ObjectID, instructorEmail string, patch models.CoursePatch) (store.UpdateResult, error) {
	set, err := setDocument(patch)
	if err != nil {
		return store.UpdateResult{}, err
	}
	filter := bson.M{"_id": id, "instructorEmail": instructorEmail}
	res, err := updateResult(r.courses.UpdateOne(ctx, filter, bson.M{"$set": set}))
	return res, errors.Wrap(err, "updating course")
}

func (r *courseRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status models.Status) (store.UpdateResult, error) {
	update := bson.M{"$set": bson.M{"status": status}}
	res, err := updateResult(r.courses.UpdateOne(ctx, bson.M{"_id": id}, update))
	return res, errors.Wrap(err, "setting course status")
}

func (r *courseRepo) Delete(ctx context.Context, id primitive.ObjectID, instructorEmail string) (store.DeleteResult, error) {
	filter := bson.M{"_id": id, "instructorEmail": instructorEmail}
	res, err := deleteResult(r.courses.DeleteOne(ctx, filter))
	return res, errors.Wrap(err, "deleting course")
}
