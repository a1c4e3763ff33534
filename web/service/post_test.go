package service

import (
	"os"
	"sync"
	"testing"

	"medblog/database"
	"medblog/database/model"

	"github.com/stretchr/testify/assert"
)

func setup() {
	dbPath := "test.db"
	os.Remove(dbPath)
	database.InitDB(dbPath)
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
}

func TestPostSlugUniqueness(t *testing.T) {
	setup()
	defer teardown()

	service := PostService{}

	first := &model.Post{Title: "First", Slug: "shared-slug", Published: true}
	err := service.Create(first, 1)
	assert.NoError(t, err)

	second := &model.Post{Title: "Second", Slug: "shared-slug"}
	err = service.Create(second, 1)
	assert.ErrorIs(t, err, ErrDuplicateSlug)

	// Updating into an occupied slug collides the same way
	third := &model.Post{Title: "Third", Slug: "other-slug"}
	err = service.Create(third, 1)
	assert.NoError(t, err)

	third.Slug = "shared-slug"
	_, err = service.Update(third.Id, third)
	assert.ErrorIs(t, err, ErrDuplicateSlug)

	// Saving a post under its own slug is not a collision
	first.Title = "First, revised"
	updated, err := service.Update(first.Id, first)
	assert.NoError(t, err)
	assert.Equal(t, "First, revised", updated.Title)
}

func TestDraftVisibility(t *testing.T) {
	setup()
	defer teardown()

	service := PostService{}

	published := &model.Post{Title: "Public", Slug: "public", Published: true}
	assert.NoError(t, service.Create(published, 1))
	draft := &model.Post{Title: "Draft", Slug: "draft", Published: false}
	assert.NoError(t, service.Create(draft, 1))

	// Public listing hides the draft, totals included
	posts, total, err := service.ListPublic(1, 10, "")
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "public", posts[0].Slug)

	// Admin listing sees both
	all, err := service.ListAll()
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	// A draft slug resolves like a missing post
	_, err = service.GetBySlug("draft")
	assert.True(t, database.IsNotFound(err))

	got, err := service.GetBySlug("public")
	assert.NoError(t, err)
	assert.Equal(t, published.Id, got.Id)
}

func TestPostSearch(t *testing.T) {
	setup()
	defer teardown()

	service := PostService{}

	assert.NoError(t, service.Create(&model.Post{
		Title:     "Understanding the Heart",
		Slug:      "heart",
		Content:   "cardiology basics",
		Category:  "medicine",
		Tags:      model.Tags{"anatomy", "cardio"},
		Published: true,
	}, 1))
	assert.NoError(t, service.Create(&model.Post{
		Title:     "Cooking at Home",
		Slug:      "cooking",
		Content:   "pasta recipes",
		Category:  "lifestyle",
		Published: true,
	}, 1))

	posts, total, err := service.ListPublic(1, 10, "Heart")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, posts, 1)

	posts, _, err = service.ListPublic(1, 10, "lifestyle")
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, "cooking", posts[0].Slug)

	// Tag search matches exact membership, not substrings
	posts, _, err = service.ListPublic(1, 10, "cardio")
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, "heart", posts[0].Slug)

	posts, total, err = service.ListPublic(1, 10, "no-such-term")
	assert.NoError(t, err)
	assert.Len(t, posts, 0)
	assert.Equal(t, int64(0), total)
}

func TestIncrementViewsConcurrent(t *testing.T) {
	setup()
	defer teardown()

	service := PostService{}

	post := &model.Post{Title: "Counter", Slug: "counter", Published: true}
	assert.NoError(t, service.Create(post, 1))

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			service.IncrementViews("counter")
		}()
	}
	wg.Wait()

	got, err := service.GetById(post.Id)
	assert.NoError(t, err)
	assert.Equal(t, int64(workers), got.Views)

	err = service.IncrementViews("missing")
	assert.True(t, database.IsNotFound(err))
}

func TestPostDelete(t *testing.T) {
	setup()
	defer teardown()

	service := PostService{}

	post := &model.Post{Title: "Gone", Slug: "gone", Published: true}
	assert.NoError(t, service.Create(post, 1))

	assert.NoError(t, service.Delete(post.Id))
	_, err := service.GetById(post.Id)
	assert.True(t, database.IsNotFound(err))

	err = service.Delete(post.Id)
	assert.True(t, database.IsNotFound(err))
}
