package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mentora/backend/internal/models"
	"mentora/backend/internal/store"
)

// stageNames returns the operator of each pipeline stage.
func stageNames(t *testing.T, pipeline bson.A) []string {
	t.Helper()
	names := make([]string, 0, len(pipeline))
	for _, stage := range pipeline {
		d, ok := stage.(bson.D)
		require.True(t, ok, "stage %v is not a bson.D", stage)
		require.Len(t, d, 1)
		names = append(names, d[0].Key)
	}
	return names
}

func stageValue(pipeline bson.A, i int) interface{} {
	return pipeline[i].(bson.D)[0].Value
}

func TestApprovedFilter(t *testing.T) {
	assert.Equal(t, bson.M{"status": models.StatusApproved}, approvedFilter(""))

	got := approvedFilter("c++")
	and, ok := got["$and"].(bson.A)
	require.True(t, ok)
	require.Len(t, and, 2)
	assert.Equal(t, bson.M{"status": models.StatusApproved}, and[0])
	assert.Equal(t, bson.M{"title": bson.M{"$regex": `c\+\+`, "$options": "i"}}, and[1])
}

func TestUserSearchFilter(t *testing.T) {
	assert.Empty(t, userSearchFilter(""))

	or, ok := userSearchFilter("ann")["$or"].(bson.A)
	require.True(t, ok)
	assert.Equal(t, bson.A{
		bson.M{"name": bson.M{"$regex": "ann", "$options": "i"}},
		bson.M{"email": bson.M{"$regex": "ann", "$options": "i"}},
	}, or)
}

func TestApprovedCoursesPipeline(t *testing.T) {
	p := approvedCoursesPipeline("go", store.Page{Skip: 9, Limit: 9})

	assert.Equal(t, []string{"$match", "$lookup", "$lookup", "$addFields", "$sort", "$skip", "$limit"}, stageNames(t, p))
	assert.Equal(t, int64(9), stageValue(p, 5))
	assert.Equal(t, int64(9), stageValue(p, 6))
}

func TestHighlightPipelines(t *testing.T) {
	popular := popularCoursesPipeline(store.HighlightLimit)
	assert.Equal(t, []string{"$match", "$lookup", "$lookup", "$addFields", "$sort", "$limit"}, stageNames(t, popular))
	assert.Equal(t, bson.D{{Key: "totalEnrollments", Value: -1}}, stageValue(popular, 4))
	assert.Equal(t, int64(6), stageValue(popular, 5))

	newest := newCoursesPipeline(store.HighlightLimit)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, stageValue(newest, 4))
	assert.Equal(t, int64(6), stageValue(newest, 5))
}

func TestCourseDetailPipelineRequiresInstructor(t *testing.T) {
	id := primitive.NewObjectID()
	p := courseDetailPipeline(id)

	assert.Equal(t, []string{"$match", "$lookup", "$lookup", "$unwind", "$addFields", "$limit"}, stageNames(t, p))
	assert.Equal(t, bson.M{"_id": id}, stageValue(p, 0))
	// a plain path unwind drops documents with an empty instructor list
	assert.Equal(t, "$instructor", stageValue(p, 3))
}

func TestTeachersPipelineSortsPendingFirst(t *testing.T) {
	p := teachersPipeline(store.Page{Skip: 0, Limit: 10})

	assert.Equal(t, []string{"$match", "$addFields", "$sort", "$skip", "$limit"}, stageNames(t, p))
	assert.Equal(t, bson.M{"role": models.RoleTeacher}, stageValue(p, 0))
	assert.Equal(t, bson.D{{Key: "statusOrder", Value: 1}, {Key: "status", Value: 1}}, stageValue(p, 2))
}

func TestFeedbacksPipeline(t *testing.T) {
	courseID := primitive.NewObjectID()
	p := feedbacksPipeline(store.FeedbackFilter{CourseID: &courseID, StudentEmail: "s@x.com"}, store.FeedbackLimit)

	assert.Equal(t, []string{"$match", "$lookup", "$lookup", "$unwind", "$unwind", "$sort", "$limit"}, stageNames(t, p))
	assert.Equal(t, bson.M{"courseId": courseID, "studentEmail": "s@x.com"}, stageValue(p, 0))
	assert.Equal(t, bson.D{{Key: "rating", Value: -1}}, stageValue(p, 5))

	assert.Equal(t, bson.M{}, feedbackFilter(store.FeedbackFilter{}))
}

func TestSetDocumentSkipsNilFields(t *testing.T) {
	title := "Go in Practice"
	price := 49.5
	set, err := setDocument(models.CoursePatch{Title: &title, Price: &price})
	require.NoError(t, err)

	assert.Equal(t, bson.M{"title": "Go in Practice", "price": 49.5}, set)
}

func TestUserIndexesAreUniqueOnEmail(t *testing.T) {
	indexes := userIndexes()
	require.Len(t, indexes, 1)
	assert.Equal(t, bson.D{{Key: "email", Value: 1}}, indexes[0].Keys)
	require.NotNil(t, indexes[0].Options.Unique)
	assert.True(t, *indexes[0].Options.Unique)
}
