package service

import (
	"testing"

	"medblog/database"
	"medblog/database/model"

	"github.com/stretchr/testify/assert"
)

func TestFeedbackCreate(t *testing.T) {
	setup()
	defer teardown()

	service := FeedbackService{}

	// Missing email falls back to the anonymous sender
	feedback, err := service.Create("", "great article", nil)
	assert.NoError(t, err)
	assert.Equal(t, "Anonymous", feedback.Email)
	assert.Nil(t, feedback.PostId)

	_, err = service.Create("reader@example.com", "", nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestFeedbackPostLink(t *testing.T) {
	setup()
	defer teardown()

	postService := PostService{}
	post := &model.Post{Title: "Linked", Slug: "linked", Published: true}
	assert.NoError(t, postService.Create(post, 1))

	service := FeedbackService{}
	_, err := service.Create("reader@example.com", "about this one", &post.Id)
	assert.NoError(t, err)
	_, err = service.Create("", "site wide note", nil)
	assert.NoError(t, err)

	list, err := service.List()
	assert.NoError(t, err)
	assert.Len(t, list, 2)

	var linked *model.Feedback
	for i := range list {
		if list[i].PostId != nil {
			linked = &list[i]
		}
	}
	assert.NotNil(t, linked)
	assert.NotNil(t, linked.Post)
	assert.Equal(t, "linked", linked.Post.Slug)
	assert.Equal(t, "Linked", linked.Post.Title)
}

func TestFeedbackDelete(t *testing.T) {
	setup()
	defer teardown()

	service := FeedbackService{}
	feedback, err := service.Create("reader@example.com", "delete me", nil)
	assert.NoError(t, err)

	assert.NoError(t, service.Delete(feedback.Id))

	count, err := service.Count()
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	err = service.Delete(feedback.Id)
	assert.True(t, database.IsNotFound(err))
}
