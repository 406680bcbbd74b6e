// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pixivapi

import "time"

// Comment is one comment on a work. Replies reference their parent
// recursively.
type Comment struct {
	ID      int       `json:"id"`
	Comment string    `json:"comment"`
	Date    time.Time `json:"date"`
	User    User      `json:"user"`

	// The API sends an empty object instead of null for top-level
	// comments, which decodes to a zero-valued parent. Use HasParent.
	ParentComment *Comment `json:"parent_comment"`
}

// HasParent reports whether this comment is a reply.
func (c Comment) HasParent() bool {
	return c.ParentComment != nil && c.ParentComment.ID != 0
}

// Comments is a paginated comment listing.
type Comments struct {
	Page

	TotalComments        int       `json:"total_comments"`
	Comments             []Comment `json:"comments"`
	CommentAccessControl int       `json:"comment_access_control"`
}
