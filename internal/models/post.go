// Package models holds the wire/domain types exchanged with the LesVieux API.
package models

import "time"

// PostStatus is the lifecycle state of a post as stored by the server.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

// Post is a job/blog post. The server assigns ID at creation time; Title and
// Content may be empty only while Status is StatusDraft. Author, AccountID and
// CreatedAt are set at creation and never change.
type Post struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Status    PostStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	AccountID int64      `json:"account_id"`
	Author    string     `json:"author"`
}
