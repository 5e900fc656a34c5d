package dto

import "time"

// CommentRequest carries a new comment body.
type CommentRequest struct {
	Text string `json:"text"`
}

// CommentResponse is one stored comment.
type CommentResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentsResponse wraps the comment feed.
type CommentsResponse struct {
	Comments []CommentResponse `json:"comments"`
}

// PostCommentResponse acknowledges a stored comment.
type PostCommentResponse struct {
	Message string          `json:"message"`
	Comment CommentResponse `json:"comment"`
}
