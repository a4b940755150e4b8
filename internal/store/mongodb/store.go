// Package mongodb implements the store contracts on top of the MongoDB Go driver.
package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentora/backend/internal/models"
	"mentora/backend/internal/store"
)

// New returns a Store whose repositories share db.
func New(db *mongo.Database) *store.Store {
	users := db.Collection(models.UsersCollection)
	courses := db.Collection(models.CoursesCollection)
	enrollments := db.Collection(models.EnrollmentsCollection)
	return &store.Store{
		Users:       &userRepo{users: users},
		Courses:     &courseRepo{courses: courses},
		Enrollments: &enrollmentRepo{enrollments: enrollments},
		Assignments: &assignmentRepo{
			assignments: db.Collection(models.AssignmentsCollection),
			submissions: db.Collection(models.SubmissionsCollection),
		},
		Feedbacks: &feedbackRepo{feedbacks: db.Collection(models.FeedbacksCollection)},
		Stats:     &statsRepo{users: users, courses: courses, enrollments: enrollments},
	}
}

// userIndexes keeps one account per email.
func userIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	}}
}

// EnsureIndexes creates the indexes the repositories rely on. It is safe to
// call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(models.UsersCollection).Indexes().CreateMany(ctx, userIndexes())
	return errors.Wrap(err, "creating user indexes")
}

func insertResult(res *mongo.InsertOneResult, err error) (store.InsertResult, error) {
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return store.InsertResult{}, nil
	}
	if err != nil {
		return store.InsertResult{}, err
	}
	return store.InsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

func updateResult(res *mongo.UpdateResult, err error) (store.UpdateResult, error) {
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return store.UpdateResult{}, nil
	}
	if err != nil {
		return store.UpdateResult{}, err
	}
	return store.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

func deleteResult(res *mongo.DeleteResult, err error) (store.DeleteResult, error) {
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return store.DeleteResult{}, nil
	}
	if err != nil {
		return store.DeleteResult{}, err
	}
	return store.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// setDocument encodes a patch struct (pointer fields tagged omitempty) into
// the body of a $set.
func setDocument(patch interface{}) (bson.M, error) {
	raw, err := bson.Marshal(patch)
	if err != nil {
		return nil, errors.Wrap(err, "encoding patch")
	}
	var set bson.M
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, errors.Wrap(err, "decoding patch")
	}
	return set, nil
}

// aggregate runs pipeline against coll and decodes every result into out.
func aggregate(ctx context.Context, coll *mongo.Collection, pipeline bson.A, out interface{}) error {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}
