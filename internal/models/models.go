// ./mentora-backend/internal/models/models.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names
const (
	UsersCollection       = "users"
	CoursesCollection     = "courses"
	EnrollmentsCollection = "enrollments"
	AssignmentsCollection = "assignments"
	SubmissionsCollection = "submissions"
	FeedbacksCollection   = "feedbacks"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Status is shared by teacher applications and courses.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	Email      string             `bson:"email" json:"email"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	Role       Role               `bson:"role" json:"role"`
	Status     Status             `bson:"status,omitempty" json:"status,omitempty"`
	Experience string             `bson:"experience,omitempty" json:"experience,omitempty"`
	Title      string             `bson:"title,omitempty" json:"title,omitempty"`
	Category   string             `bson:"category,omitempty" json:"category,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// TeacherApplication holds the fields a user submits when asking to teach.
type TeacherApplication struct {
	Name       string `bson:"name,omitempty"`
	Image      string `bson:"image,omitempty"`
	Experience string `bson:"experience,omitempty"`
	Title      string `bson:"title,omitempty"`
	Category   string `bson:"category,omitempty"`
}

type Course struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Category        string             `bson:"category,omitempty" json:"category,omitempty"`
	Price           float64            `bson:"price" json:"price"`
	Image           string             `bson:"image,omitempty" json:"image,omitempty"`
	InstructorName  string             `bson:"instructorName,omitempty" json:"instructorName,omitempty"`
	InstructorEmail string             `bson:"instructorEmail" json:"instructorEmail"`
	Status          Status             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// CoursePatch lists the fields a teacher may change on an existing course.
// Nil fields are left untouched.
type CoursePatch struct {
	Title       *string  `bson:"title,omitempty"`
	Description *string  `bson:"description,omitempty"`
	Category    *string  `bson:"category,omitempty"`
	Price       *float64 `bson:"price,omitempty"`
	Image       *string  `bson:"image,omitempty"`
}

func (p CoursePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil && p.Price == nil && p.Image == nil
}

// CourseSummary is a course joined with its instructor list and enrollments.
type CourseSummary struct {
	Course           `bson:",inline"`
	Instructor       []User       `bson:"instructor" json:"instructor"`
	Enrollments      []Enrollment `bson:"enrollments" json:"enrollments"`
	TotalEnrollments int64        `bson:"totalEnrollments" json:"totalEnrollments"`
}

// CourseDetail is a single course with a required instructor.
type CourseDetail struct {
	Course           `bson:",inline"`
	Instructor       User         `bson:"instructor" json:"instructor"`
	Enrollments      []Enrollment `bson:"enrollments" json:"enrollments"`
	TotalEnrollments int64        `bson:"totalEnrollments" json:"totalEnrollments"`
}

type Enrollment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email         string             `bson:"email" json:"email"`
	StudentName   string             `bson:"studentName,omitempty" json:"studentName,omitempty"`
	CourseID      primitive.ObjectID `bson:"courseId" json:"courseId"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Price         float64            `bson:"price,omitempty" json:"price,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// EnrolledCourse is an enrollment joined with its course and the course's instructor.
type EnrolledCourse struct {
	Enrollment `bson:",inline"`
	CourseInfo Course `bson:"courseInfo" json:"courseInfo"`
	Instructor []User `bson:"instructor" json:"instructor"`
}

type Assignment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CourseID    primitive.ObjectID `bson:"courseId" json:"courseId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Deadline    string             `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Marks       int                `bson:"marks,omitempty" json:"marks,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// AssignmentWithSubmissions carries the course and one student's submissions.
type AssignmentWithSubmissions struct {
	Assignment        `bson:",inline"`
	CourseInfo        []Course     `bson:"courseInfo" json:"courseInfo"`
	StudentSubmission []Submission `bson:"studentSubmission" json:"studentSubmission"`
}

type Submission struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	AssignmentID primitive.ObjectID `bson:"assignmentId" json:"assignmentId"`
	CourseID     primitive.ObjectID `bson:"courseId" json:"courseId"`
	StudentEmail string             `bson:"studentEmail" json:"studentEmail"`
	StudentName  string             `bson:"studentName,omitempty" json:"studentName,omitempty"`
	Submission   string             `bson:"submission" json:"submission"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

type Feedback struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CourseID     primitive.ObjectID `bson:"courseId" json:"courseId"`
	StudentEmail string             `bson:"studentEmail" json:"studentEmail"`
	Rating       float64            `bson:"rating" json:"rating"`
	Comment      string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// FeedbackPatch lists the fields a student may change on their feedback.
type FeedbackPatch struct {
	Rating  *float64 `bson:"rating,omitempty"`
	Comment *string  `bson:"comment,omitempty"`
}

func (p FeedbackPatch) Empty() bool {
	return p.Rating == nil && p.Comment == nil
}

// FeedbackView is feedback joined with the author's profile and the course,
// either of which may be missing.
type FeedbackView struct {
	Feedback   `bson:",inline"`
	UserInfo   *User   `bson:"userInfo,omitempty" json:"userInfo,omitempty"`
	CourseInfo *Course `bson:"courseInfo,omitempty" json:"courseInfo,omitempty"`
}

type Statistics struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalCourses     int64 `json:"totalCourses"`
	TotalEnrollments int64 `json:"totalEnrollments"`
}
