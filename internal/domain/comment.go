package domain

import "time"

// Comment is an immutable remark on a shoutout. Its lifetime is bound to the
// parent shoutout; comments are never edited or independently deleted.
type Comment struct {
	ID         string
	ShoutoutID string
	AuthorID   string
	Text       string
	CreatedAt  time.Time
}
