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

type userRepo struct {
	users *mongo.Collection
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "finding user %s", email)
	}
	return &user, nil
}

func (r *userRepo) Insert(ctx context.Context, u *models.User) (store.InsertResult, error) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	res, err := insertResult(r.users.InsertOne(ctx, u))
	if mongo.IsDuplicateKeyError(err) {
		return res, errors.Wrapf(store.ErrDuplicate, "inserting user %s", u.Email)
	}
	return res, errors.Wrap(err, "inserting user")
}

func (r *userRepo) ApplyForTeacher(ctx context.Context, email string, app models.TeacherApplication) (store.UpdateResult, error) {
	set, err := setDocument(app)
	if err != nil {
		return store.UpdateResult{}, err
	}
	set["role"] = models.RoleTeacher
	set["status"] = models.StatusPending

	res, err := updateResult(r.users.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": set}))
	return res, errors.Wrap(err, "applying for teacher")
}

func (r *userRepo) SetTeacherStatus(ctx context.Context, id primitive.ObjectID, status models.Status) (store.UpdateResult, error) {
	update := bson.M{"$set": bson.M{"status": status, "role": models.RoleTeacher}}
	res, err := updateResult(r.users.UpdateOne(ctx, bson.M{"_id": id}, update))
	return res, errors.Wrap(err, "setting teacher status")
}

func (r *userRepo) MakeAdmin(ctx context.Context, id primitive.ObjectID) (store.UpdateResult, error) {
	update := bson.M{"$set": bson.M{"role": models.RoleAdmin}}
	res, err := updateResult(r.users.UpdateOne(ctx, bson.M{"_id": id}, update))
	return res, errors.Wrap(err, "making admin")
}

func (r *userRepo) Search(ctx context.Context, term string, page store.Page) ([]models.User, int64, error) {
	filter := userSearchFilter(term)
	total, err := r.users.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "counting users")
	}

	opts := options.Find().SetSkip(page.Skip).SetLimit(page.Limit)
	cursor, err := r.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "searching users")
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, errors.Wrap(err, "decoding users")
	}
	return users, total, nil
}

func (r *userRepo) Teachers(ctx context.Context, page store.Page) ([]models.User, int64, error) {
	total, err := r.users.CountDocuments(ctx, bson.M{"role": models.RoleTeacher})
	if err != nil {
		return nil, 0, errors.Wrap(err, "counting teachers")
	}
	teachers := make([]models.User, 0)
	if err := aggregate(ctx, r.users, teachersPipeline(page), &teachers); err != nil {
		return nil, 0, errors.Wrap(err, "listing teachers")
	}
	return teachers, total, nil
}
