package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mentora/backend/internal/models"
	"mentora/backend/internal/store"
)

func lookup(from, localField, foreignField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: foreignField},
		{Key: "as", Value: as},
	}}}
}

func match(filter interface{}) bson.D {
	return bson.D{{Key: "$match", Value: filter}}
}

func sortBy(keys bson.D) bson.D {
	return bson.D{{Key: "$sort", Value: keys}}
}

func skip(n int64) bson.D  { return bson.D{{Key: "$skip", Value: n}} }
func limit(n int64) bson.D { return bson.D{{Key: "$limit", Value: n}} }

func unwindOptional(path string) bson.D {
	return bson.D{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: path},
		{Key: "preserveNullAndEmptyArrays", Value: true},
	}}}
}

var (
	lookupInstructor  = lookup(models.UsersCollection, "instructorEmail", "email", "instructor")
	lookupEnrollments = lookup(models.EnrollmentsCollection, "_id", "courseId", "enrollments")
)

var addTotalEnrollments = bson.D{{Key: "$addFields", Value: bson.D{
	{Key: "totalEnrollments", Value: bson.D{{Key: "$size", Value: "$enrollments"}}},
}}}

func regex(term string) bson.M {
	return bson.M{"$regex": store.SearchPattern(term), "$options": "i"}
}

// approvedFilter selects approved courses, AND-ed with a title search when term is set.
func approvedFilter(term string) bson.M {
	base := bson.M{"status": models.StatusApproved}
	if term == "" {
		return base
	}
	return bson.M{"$and": bson.A{base, bson.M{"title": regex(term)}}}
}

func userSearchFilter(term string) bson.M {
	if term == "" {
		return bson.M{}
	}
	return bson.M{"$or": bson.A{
		bson.M{"name": regex(term)},
		bson.M{"email": regex(term)},
	}}
}

func approvedCoursesPipeline(term string, page store.Page) bson.A {
	return bson.A{
		match(approvedFilter(term)),
		lookupInstructor,
		lookupEnrollments,
		addTotalEnrollments,
		sortBy(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}),
		skip(page.Skip),
		limit(page.Limit),
	}
}

func popularCoursesPipeline(n int64) bson.A {
	return bson.A{
		match(bson.M{"status": models.StatusApproved}),
		lookupInstructor,
		lookupEnrollments,
		addTotalEnrollments,
		sortBy(bson.D{{Key: "totalEnrollments", Value: -1}}),
		limit(n),
	}
}

func newCoursesPipeline(n int64) bson.A {
	return bson.A{
		match(bson.M{"status": models.StatusApproved}),
		lookupInstructor,
		lookupEnrollments,
		addTotalEnrollments,
		sortBy(bson.D{{Key: "createdAt", Value: -1}}),
		limit(n),
	}
}

// courseDetailPipeline unwinds the instructor without preserving empty
// arrays, so a course whose instructor is missing yields no document.
func courseDetailPipeline(id primitive.ObjectID) bson.A {
	return bson.A{
		match(bson.M{"_id": id}),
		lookupInstructor,
		lookupEnrollments,
		bson.D{{Key: "$unwind", Value: "$instructor"}},
		addTotalEnrollments,
		limit(1),
	}
}

func enrolledCoursesPipeline(email string) bson.A {
	return bson.A{
		match(bson.M{"email": email}),
		lookup(models.CoursesCollection, "courseId", "_id", "courseInfo"),
		lookup(models.UsersCollection, "courseInfo.instructorEmail", "email", "instructor"),
		bson.D{{Key: "$unwind", Value: "$courseInfo"}},
		sortBy(bson.D{{Key: "createdAt", Value: -1}}),
	}
}

func teachersPipeline(page store.Page) bson.A {
	return bson.A{
		match(bson.M{"role": models.RoleTeacher}),
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "statusOrder", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$eq", Value: bson.A{"$status", models.StatusPending}}}, 0, 1,
			}}}},
		}}},
		sortBy(bson.D{{Key: "statusOrder", Value: 1}, {Key: "status", Value: 1}}),
		skip(page.Skip),
		limit(page.Limit),
	}
}

func assignmentsForStudentPipeline(courseID primitive.ObjectID, studentEmail string) bson.A {
	return bson.A{
		match(bson.M{"courseId": courseID}),
		lookup(models.CoursesCollection, "courseId", "_id", "courseInfo"),
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: models.SubmissionsCollection},
			{Key: "let", Value: bson.D{{Key: "assignmentId", Value: "$_id"}}},
			{Key: "pipeline", Value: bson.A{
				match(bson.M{"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$assignmentId", "$$assignmentId"}},
					bson.M{"$eq": bson.A{"$studentEmail", studentEmail}},
				}}}),
			}},
			{Key: "as", Value: "studentSubmission"},
		}}},
	}
}

func feedbackFilter(f store.FeedbackFilter) bson.M {
	q := bson.M{}
	if f.CourseID != nil {
		q["courseId"] = *f.CourseID
	}
	if f.StudentEmail != "" {
		q["studentEmail"] = f.StudentEmail
	}
	return q
}

func feedbacksPipeline(f store.FeedbackFilter, n int64) bson.A {
	return bson.A{
		match(feedbackFilter(f)),
		lookup(models.UsersCollection, "studentEmail", "email", "userInfo"),
		lookup(models.CoursesCollection, "courseId", "_id", "courseInfo"),
		unwindOptional("$userInfo"),
		unwindOptional("$courseInfo"),
		sortBy(bson.D{{Key: "rating", Value: -1}}),
		limit(n),
	}
}
