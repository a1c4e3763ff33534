// Package model defines the gorm models persisted by the medblog server.
package model

import (
	"database/sql/driver"
	"time"

	"medblog/util/common"

	"github.com/goccy/go-json"
)

// Tags stores an ordered set of tag strings as a JSON-encoded text column.
type Tags []string

// Value implements driver.Valuer.
func (t Tags) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (t *Tags) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(t))
	case []byte:
		return json.Unmarshal(v, (*[]string)(t))
	default:
		return common.NewErrorf("unsupported tags column type %T", src)
	}
}

// User is an administrator identity. Passwords are only ever stored as
// bcrypt hashes and never serialized.
type User struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name"`
	Password  string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post is a blog entry. Views only ever grow, by a store-side increment.
type Post struct {
	Id         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title      string    `json:"title" form:"title"`
	Slug       string    `json:"slug" form:"slug" gorm:"uniqueIndex;not null"`
	Content    string    `json:"content" form:"content"`
	CoverImage string    `json:"coverImage" form:"coverImage"`
	Published  bool      `json:"published" form:"published"`
	Views      int64     `json:"views" gorm:"not null;default:0"`
	Tags       Tags      `json:"tags" form:"tags" gorm:"type:text"`
	Category   string    `json:"category" form:"category"`
	AuthorId   int       `json:"authorId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PostRef is the slice of a Post exposed alongside linked feedback.
type PostRef struct {
	Id    int    `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

func (PostRef) TableName() string {
	return "posts"
}

// Feedback is a reader message, optionally linked to a post. The link is
// severed, not cascaded, when the post goes away.
type Feedback struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Email     string    `json:"email"`
	Message   string    `json:"message" gorm:"not null"`
	PostId    *int      `json:"postId"`
	Post      *PostRef  `json:"post,omitempty" gorm:"foreignKey:PostId;references:Id;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time `json:"createdAt"`
}

// Subscriber is a newsletter recipient.
type Subscriber struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// Setting is a key/value row of the panel settings store.
type Setting struct {
	Id    int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" form:"key" gorm:"uniqueIndex;not null"`
	Value string `json:"value" form:"value"`
}
