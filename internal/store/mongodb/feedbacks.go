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

type feedbackRepo struct {
	feedbacks *mongo.Collection
}

func (r *feedbackRepo) Insert(ctx context.Context, f *models.Feedback) (store.InsertResult, error) {
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	res, err := insertResult(r.feedbacks.InsertOne(ctx, f))
	return res, errors.Wrap(err, "inserting feedback")
}

func (r *feedbackRepo) List(ctx context.Context, filter store.FeedbackFilter, n int64) ([]models.FeedbackView, error) {
	feedbacks := make([]models.FeedbackView, 0)
	err := aggregate(ctx, r.feedbacks, feedbacksPipeline(filter, n), &feedbacks)
	return feedbacks, errors.Wrap(err, "listing feedbacks")
}

func (r *feedbackRepo) Update(ctx context.Context, id primitive.ObjectID, studentEmail string, patch models.FeedbackPatch) (store.UpdateResult, error) {
	set, err := setDocument(patch)
	if err != nil {
		return store.UpdateResult{}, err
	}
	filter := bson.M{"_id": id, "studentEmail": studentEmail}
	res, err := updateResult(r.feedbacks.UpdateOne(ctx, filter, bson.M{"$set": set}))
	return res, errors.Wrap(err, "updating feedback")
}
