package service

import (
	"errors"

	"medblog/database"
	"medblog/database/model"

	"gorm.io/gorm"
)

// ErrDuplicateSlug marks a unique-slug collision on post create/update,
// so the boundary can answer with an actionable message instead of a
// generic failure.
var ErrDuplicateSlug = errors.New("duplicate slug")

// PostService owns the post CRUD and query surface.
type PostService struct{}

// publicQuery returns a fresh query over published posts matching the
// search term. The term matches title, content and category
// case-insensitively, and tags by exact membership.
func (s *PostService) publicQuery(search string) *gorm.DB {
	db := database.GetDB().Model(&model.Post{}).Where("published = ?", true)
	if search != "" {
		pattern := "%" + search + "%"
		// tags are stored JSON-encoded, membership is a quoted match
		tagPattern := `%"` + search + `"%`
		db = db.Where(
			"title LIKE ? OR content LIKE ? OR category LIKE ? OR tags LIKE ?",
			pattern, pattern, pattern, tagPattern,
		)
	}
	return db
}

// ListPublic returns one page of published posts, newest first, plus the
// total count of the filtered set.
func (s *PostService) ListPublic(page int, perPage int, search string) ([]model.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}

	var total int64
	if err := s.publicQuery(search).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]model.Post, 0)
	err := s.publicQuery(search).
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&posts).
		Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListAll returns every post, drafts included, newest first.
func (s *PostService) ListAll() ([]model.Post, error) {
	posts := make([]model.Post, 0)
	err := database.GetDB().Model(&model.Post{}).
		Order("created_at DESC").
		Find(&posts).
		Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostService) GetById(id int) (*model.Post, error) {
	post := &model.Post{}
	err := database.GetDB().Model(&model.Post{}).
		Where("id = ?", id).
		First(post).
		Error
	if err != nil {
		return nil, err
	}
	return post, nil
}

// GetBySlug resolves a published post. Drafts are indistinguishable from
// missing posts for anonymous callers.
func (s *PostService) GetBySlug(slug string) (*model.Post, error) {
	post := &model.Post{}
	err := database.GetDB().Model(&model.Post{}).
		Where("slug = ? AND published = ?", slug, true).
		First(post).
		Error
	if err != nil {
		return nil, err
	}
	return post, nil
}

// IncrementViews bumps the view counter by exactly one with a store-side
// expression, so concurrent readers never lose an increment.
func (s *PostService) IncrementViews(slug string) error {
	result := database.GetDB().Model(&model.Post{}).
		Where("slug = ?", slug).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Create persists a new post owned by the given author.
func (s *PostService) Create(post *model.Post, authorId int) error {
	post.Id = 0
	post.Views = 0
	post.AuthorId = authorId
	if post.Tags == nil {
		post.Tags = model.Tags{}
	}

	err := database.GetDB().Create(post).Error
	if database.IsDuplicate(err) {
		return ErrDuplicateSlug
	}
	return err
}

// Update rewrites every admin-editable field of the post. Id and author
// stay fixed.
func (s *PostService) Update(id int, fields *model.Post) (*model.Post, error) {
	post, err := s.GetById(id)
	if err != nil {
		return nil, err
	}

	post.Title = fields.Title
	post.Slug = fields.Slug
	post.Content = fields.Content
	post.CoverImage = fields.CoverImage
	post.Published = fields.Published
	post.Category = fields.Category
	post.Tags = fields.Tags
	if post.Tags == nil {
		post.Tags = model.Tags{}
	}

	err = database.GetDB().Save(post).Error
	if database.IsDuplicate(err) {
		return nil, ErrDuplicateSlug
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Delete(id int) error {
	result := database.GetDB().Delete(&model.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
