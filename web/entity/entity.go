// Package entity defines request and response structures used by the web
// layer of the medblog server.
package entity

import (
	"time"

	"medblog/database/model"
)

// ErrorResponse is the uniform error body: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TokenResponse carries a freshly issued session token.
type TokenResponse struct {
	Token string `json:"token"`
}

// PostPage is one page of public posts plus the filtered total count.
type PostPage struct {
	Posts []model.Post `json:"posts"`
	Total int64        `json:"total"`
}

// SiteSettings is the public singleton site configuration.
type SiteSettings struct {
	Id    int    `json:"id"`
	Theme string `json:"theme"`
}

// MediaImage is one entry of a media folder listing.
type MediaImage struct {
	PublicId  string `json:"public_id"`
	Format    string `json:"format"`
	SecureUrl string `json:"secure_url"`
}

// MediaList is the response of the media folder listing endpoint.
type MediaList struct {
	Images []MediaImage `json:"images"`
}

// ContentStats summarizes the stored content for the admin dashboard and
// the daily digest.
type ContentStats struct {
	Posts       int64 `json:"posts"`
	Published   int64 `json:"published"`
	Views       int64 `json:"views"`
	Subscribers int64 `json:"subscribers"`
	Feedback    int64 `json:"feedback"`
}

// Status is the admin dashboard server status snapshot.
type Status struct {
	T        time.Time `json:"-"`
	Cpu      float64   `json:"cpu"`
	CpuCores int       `json:"cpuCores"`
	Mem      struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	Disk struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"disk"`
	Uptime  uint64       `json:"uptime"`
	Loads   []float64    `json:"loads"`
	Content ContentStats `json:"content"`
}
