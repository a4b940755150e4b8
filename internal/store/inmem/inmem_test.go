package inmem

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mentora/backend/internal/models"
	"mentora/backend/internal/store"
)

func seedCourse(t *testing.T, s *store.Store, title, instructor string, status models.Status, created time.Time) primitive.ObjectID {
	t.Helper()
	c := &models.Course{Title: title, InstructorEmail: instructor, Status: status, CreatedAt: created}
	res, err := s.Courses.Insert(context.Background(), c)
	require.NoError(t, err)
	require.True(t, res.Acknowledged)
	return c.ID
}

func TestApprovedCoursesSearchAndOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.Users.Insert(ctx, &models.User{Email: "t@x.com", Role: models.RoleTeacher})
	require.NoError(t, err)
	seedCourse(t, s, "Go Basics", "t@x.com", models.StatusApproved, base)
	seedCourse(t, s, "Advanced Go", "t@x.com", models.StatusApproved, base.Add(time.Hour))
	seedCourse(t, s, "Go Drafts", "t@x.com", models.StatusPending, base.Add(2*time.Hour))
	seedCourse(t, s, "Rust", "t@x.com", models.StatusApproved, base.Add(3*time.Hour))

	courses, total, err := s.Courses.Approved(ctx, "GO", store.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, courses, 2)
	assert.Equal(t, "Advanced Go", courses[0].Title)
	assert.Equal(t, "Go Basics", courses[1].Title)
	assert.Len(t, courses[0].Instructor, 1)
	assert.NotNil(t, courses[0].Enrollments)

	courses, total, err = s.Courses.Approved(ctx, "", store.Page{Skip: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, courses, 1)
	assert.Equal(t, "Go Basics", courses[0].Title)
}

func TestPopularCoursesCountEnrollments(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now()

	quiet := seedCourse(t, s, "Quiet", "t@x.com", models.StatusApproved, now)
	busy := seedCourse(t, s, "Busy", "t@x.com", models.StatusApproved, now.Add(-time.Hour))
	for i := 0; i < 3; i++ {
		_, err := s.Enrollments.Insert(ctx, &models.Enrollment{Email: "s@x.com", CourseID: busy})
		require.NoError(t, err)
	}

	popular, err := s.Courses.Popular(ctx, store.HighlightLimit)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, busy, popular[0].ID)
	assert.Equal(t, int64(3), popular[0].TotalEnrollments)
	assert.Equal(t, quiet, popular[1].ID)

	newest, err := s.Courses.Newest(ctx, 1)
	require.NoError(t, err)
	require.Len(t, newest, 1)
	assert.Equal(t, quiet, newest[0].ID)
}

func TestCourseDetailNeedsInstructor(t *testing.T) {
	s := New()
	ctx := context.Background()

	orphan := seedCourse(t, s, "Orphan", "gone@x.com", models.StatusApproved, time.Now())
	_, err := s.Courses.Detail(ctx, orphan)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Users.Insert(ctx, &models.User{Email: "gone@x.com", Name: "Back"})
	require.NoError(t, err)
	detail, err := s.Courses.Detail(ctx, orphan)
	require.NoError(t, err)
	assert.Equal(t, "Back", detail.Instructor.Name)

	_, err = s.Courses.Detail(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCourseOwnership(t *testing.T) {
	s := New()
	ctx := context.Background()
	id := seedCourse(t, s, "Mine", "owner@x.com", models.StatusPending, time.Now())
	title := "Renamed"

	res, err := s.Courses.Update(ctx, id, "other@x.com", models.CoursePatch{Title: &title})
	require.NoError(t, err)
	assert.Zero(t, res.MatchedCount)

	res, err = s.Courses.Update(ctx, id, "owner@x.com", models.CoursePatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.Equal(t, int64(1), res.ModifiedCount)

	del, err := s.Courses.Delete(ctx, id, "other@x.com")
	require.NoError(t, err)
	assert.Zero(t, del.DeletedCount)

	del, err = s.Courses.Delete(ctx, id, "owner@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)
}

func TestTeachersPendingFirst(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, u := range []models.User{
		{Email: "a@x.com", Role: models.RoleTeacher, Status: models.StatusApproved},
		{Email: "r@x.com", Role: models.RoleTeacher, Status: models.StatusRejected},
		{Email: "p@x.com", Role: models.RoleTeacher, Status: models.StatusPending},
		{Email: "s@x.com", Role: models.RoleStudent},
	} {
		u := u
		_, err := s.Users.Insert(ctx, &u)
		require.NoError(t, err)
	}

	teachers, total, err := s.Users.Teachers(ctx, store.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, teachers, 3)
	assert.Equal(t, "p@x.com", teachers[0].Email)
	assert.Equal(t, "a@x.com", teachers[1].Email)
	assert.Equal(t, "r@x.com", teachers[2].Email)
}

func TestApplyForTeacherKeepsRoleAndStatusFixed(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, err := s.Users.Insert(ctx, &models.User{Email: "u@x.com", Role: models.RoleStudent, Name: "Old"})
	require.NoError(t, err)

	res, err := s.Users.ApplyForTeacher(ctx, "u@x.com", models.TeacherApplication{Title: "Go mentor"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)

	u, err := s.Users.FindByEmail(ctx, "u@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, u.Role)
	assert.Equal(t, models.StatusPending, u.Status)
	assert.Equal(t, "Old", u.Name)
	assert.Equal(t, "Go mentor", u.Title)
}

func TestUserSearchCountsMatches(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, email := range []string{"ann@x.com", "bob@x.com", "joanne@x.com"} {
		_, err := s.Users.Insert(ctx, &models.User{Email: email})
		require.NoError(t, err)
	}

	users, total, err := s.Users.Search(ctx, "ANN", store.Page{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 1)

	_, total, err = s.Users.Search(ctx, "", store.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestForStudentOnlyReturnsOwnSubmissions(t *testing.T) {
	s := New()
	ctx := context.Background()
	courseID := seedCourse(t, s, "Go", "t@x.com", models.StatusApproved, time.Now())
	a := &models.Assignment{CourseID: courseID, Title: "Week 1"}
	_, err := s.Assignments.Insert(ctx, a)
	require.NoError(t, err)

	for _, email := range []string{"me@x.com", "you@x.com"} {
		_, err := s.Assignments.InsertSubmission(ctx, &models.Submission{
			AssignmentID: a.ID, CourseID: courseID, StudentEmail: email, Submission: "link",
		})
		require.NoError(t, err)
	}

	got, err := s.Assignments.ForStudent(ctx, courseID, "me@x.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].StudentSubmission, 1)
	assert.Equal(t, "me@x.com", got[0].StudentSubmission[0].StudentEmail)
	assert.Len(t, got[0].CourseInfo, 1)

	all, err := s.Assignments.Submissions(ctx, courseID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	mine, err := s.Assignments.Submissions(ctx, courseID, "you@x.com")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestFeedbackListCapsAndSorts(t *testing.T) {
	s := New()
	ctx := context.Background()
	courseID := seedCourse(t, s, "Go", "t@x.com", models.StatusApproved, time.Now())
	for i := 1; i <= 8; i++ {
		_, err := s.Feedbacks.Insert(ctx, &models.Feedback{
			CourseID: courseID, StudentEmail: "s@x.com", Rating: float64(i%5 + 1),
		})
		require.NoError(t, err)
	}

	views, err := s.Feedbacks.List(ctx, store.FeedbackFilter{CourseID: &courseID}, store.FeedbackLimit)
	require.NoError(t, err)
	require.Len(t, views, store.FeedbackLimit)
	for i := 1; i < len(views); i++ {
		assert.GreaterOrEqual(t, views[i-1].Rating, views[i].Rating)
	}
	assert.Nil(t, views[0].UserInfo)
	assert.NotNil(t, views[0].CourseInfo)
}

func TestFeedbackUpdateOnlyByAuthor(t *testing.T) {
	s := New()
	ctx := context.Background()
	f := &models.Feedback{CourseID: primitive.NewObjectID(), StudentEmail: "me@x.com", Rating: 2}
	_, err := s.Feedbacks.Insert(ctx, f)
	require.NoError(t, err)
	rating := 5.0

	res, err := s.Feedbacks.Update(ctx, f.ID, "you@x.com", models.FeedbackPatch{Rating: &rating})
	require.NoError(t, err)
	assert.Zero(t, res.MatchedCount)

	res, err = s.Feedbacks.Update(ctx, f.ID, "me@x.com", models.FeedbackPatch{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ModifiedCount)
}

func TestStatisticsCounts(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, err := s.Users.Insert(ctx, &models.User{Email: "a@x.com"})
	require.NoError(t, err)
	seedCourse(t, s, "Go", "a@x.com", models.StatusPending, time.Now())

	stats, err := s.Stats.Estimate(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Statistics{TotalUsers: 1, TotalCourses: 1}, stats)
}

func TestUserInsertRejectsDuplicateEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Users.Insert(ctx, &models.User{Email: "race@x.com"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
				return
			}
			assert.ErrorIs(t, err, store.ErrDuplicate)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	_, total, err := s.Users.Search(ctx, "race@x.com", store.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
