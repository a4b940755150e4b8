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

type assignmentRepo struct {
	assignments *mongo.Collection
	submissions *mongo.Collection
}

func (r *assignmentRepo) Insert(ctx context.Context, a *models.Assignment) (store.InsertResult, error) {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	res, err := insertResult(r.assignments.InsertOne(ctx, a))
	return res, errors.Wrap(err, "inserting assignment")
}

func (r *assignmentRepo) ByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.Assignment, error) {
	cursor, err := r.assignments.Find(ctx, bson.M{"courseId": courseID})
	if err != nil {
		return nil, errors.Wrap(err, "finding assignments")
	}
	defer cursor.Close(ctx)

	assignments := make([]models.Assignment, 0)
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, errors.Wrap(err, "decoding assignments")
	}
	return assignments, nil
}

func (r *assignmentRepo) ForStudent(ctx context.Context, courseID primitive.ObjectID, studentEmail string) ([]models.AssignmentWithSubmissions, error) {
	assignments := make([]models.AssignmentWithSubmissions, 0)
	err := aggregate(ctx, r.assignments, assignmentsForStudentPipeline(courseID, studentEmail), &assignments)
	return assignments, errors.Wrap(err, "listing assignments with submissions")
}

func (r *assignmentRepo) InsertSubmission(ctx context.Context, s *models.Submission) (store.InsertResult, error) {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	res, err := insertResult(r.submissions.InsertOne(ctx, s))
	return res, errors.Wrap(err, "inserting submission")
}

func (r *assignmentRepo) Submissions(ctx context.Context, courseID primitive.ObjectID, studentEmail string) ([]models.Submission, error) {
	filter := bson.M{"courseId": courseID}
	if studentEmail != "" {
		filter["studentEmail"] = studentEmail
	}
	cursor, err := r.submissions.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "finding submissions")
	}
	defer cursor.Close(ctx)

	submissions := make([]models.Submission, 0)
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, errors.Wrap(err, "decoding submissions")
	}
	return submissions, nil
}
