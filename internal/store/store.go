// Package store defines the persistence contracts the HTTP handlers depend on.
// The mongodb package implements them with aggregation pipelines; inmem keeps
// everything in process memory.
package store

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mentora/backend/internal/models"
)

var (
	ErrNotFound = errors.New("store: document not found")
	// ErrDuplicate is returned when an insert collides with a unique key.
	ErrDuplicate = errors.New("store: duplicate key")
)

// Fixed caps for the unpaginated listings.
const (
	HighlightLimit = 6
	FeedbackLimit  = 6
)

// Page is a window over a sorted result set.
type Page struct {
	Skip  int64
	Limit int64
}

// InsertResult mirrors the store's insert acknowledgment.
type InsertResult struct {
	Acknowledged bool        `json:"acknowledged"`
	InsertedID   interface{} `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

type UserStore interface {
	// FindByEmail returns ErrNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Insert returns ErrDuplicate when the email is already registered.
	Insert(ctx context.Context, u *models.User) (InsertResult, error)
	// ApplyForTeacher sets role=teacher, status=pending and the application fields.
	ApplyForTeacher(ctx context.Context, email string, app models.TeacherApplication) (UpdateResult, error)
	SetTeacherStatus(ctx context.Context, id primitive.ObjectID, status models.Status) (UpdateResult, error)
	MakeAdmin(ctx context.Context, id primitive.ObjectID) (UpdateResult, error)
	// Search matches name or email case-insensitively; an empty term matches everyone.
	Search(ctx context.Context, term string, page Page) ([]models.User, int64, error)
	// Teachers lists role=teacher users, pending applications first.
	Teachers(ctx context.Context, page Page) ([]models.User, int64, error)
}

type CourseStore interface {
	Insert(ctx context.Context, c *models.Course) (InsertResult, error)
	// All lists every course, newest first.
	All(ctx context.Context, page Page) ([]models.Course, int64, error)
	// Approved lists approved courses with instructor and enrollment joins,
	// optionally restricted to titles containing term.
	Approved(ctx context.Context, term string, page Page) ([]models.CourseSummary, int64, error)
	ByInstructor(ctx context.Context, email string, page Page) ([]models.Course, int64, error)
	Popular(ctx context.Context, limit int64) ([]models.CourseSummary, error)
	Newest(ctx context.Context, limit int64) ([]models.CourseSummary, error)
	// Detail returns ErrNotFound when the course or its instructor is missing.
	Detail(ctx context.Context, id primitive.ObjectID) (*models.CourseDetail, error)
	// Update and Delete only touch courses owned by instructorEmail.
	Update(ctx context.Context, id primitive.ObjectID, instructorEmail string, patch models.CoursePatch) (UpdateResult, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.Status) (UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID, instructorEmail string) (DeleteResult, error)
}

type EnrollmentStore interface {
	Insert(ctx context.Context, e *models.Enrollment) (InsertResult, error)
	ByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.Enrollment, error)
	// ByStudent joins each enrollment with its course (required) and instructor, newest first.
	ByStudent(ctx context.Context, email string) ([]models.EnrolledCourse, error)
}

type AssignmentStore interface {
	Insert(ctx context.Context, a *models.Assignment) (InsertResult, error)
	ByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.Assignment, error)
	ForStudent(ctx context.Context, courseID primitive.ObjectID, studentEmail string) ([]models.AssignmentWithSubmissions, error)
	InsertSubmission(ctx context.Context, s *models.Submission) (InsertResult, error)
	// Submissions filters by studentEmail when it is not empty.
	Submissions(ctx context.Context, courseID primitive.ObjectID, studentEmail string) ([]models.Submission, error)
}

type FeedbackFilter struct {
	CourseID     *primitive.ObjectID
	StudentEmail string
}

type FeedbackStore interface {
	Insert(ctx context.Context, f *models.Feedback) (InsertResult, error)
	// List returns at most limit entries, highest rating first.
	List(ctx context.Context, filter FeedbackFilter, limit int64) ([]models.FeedbackView, error)
	// Update only touches feedback written by studentEmail.
	Update(ctx context.Context, id primitive.ObjectID, studentEmail string, patch models.FeedbackPatch) (UpdateResult, error)
}

type StatsStore interface {
	// Estimate uses approximate collection counts.
	Estimate(ctx context.Context) (models.Statistics, error)
}

// Store bundles every repository used by the API.
type Store struct {
	Users       UserStore
	Courses     CourseStore
	Enrollments EnrollmentStore
	Assignments AssignmentStore
	Feedbacks   FeedbackStore
	Stats       StatsStore
}
