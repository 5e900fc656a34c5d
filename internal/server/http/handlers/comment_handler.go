package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/streakmart/internal/domain/errors"
	"github.com/polkiloo/streakmart/internal/domain/model"
	"github.com/polkiloo/streakmart/internal/server/http/dto"
)

// CommentHandler serves the public comment feed.
type CommentHandler struct {
	facade CommentFacade
}

// NewCommentHandler creates CommentHandler instance.
func NewCommentHandler(facade CommentFacade) *CommentHandler {
	return &CommentHandler{facade: facade}
}

// Post handles POST /api/comments.
func (h *CommentHandler) Post(c *gin.Context) {
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "invalid request body"})
		return
	}

	comment, err := h.facade.PostComment(c.Request.Context(), CurrentUserID(c), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyComment):
			c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "comment text is required"})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.MessageResponse{Message: "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "internal error"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.PostCommentResponse{
		Message: "comment posted",
		Comment: toCommentResponse(comment),
	})
}

// List handles GET /api/comments.
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.facade.Comments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "internal error"})
		return
	}

	resp := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, toCommentResponse(&comments[i]))
	}

	c.JSON(http.StatusOK, dto.CommentsResponse{Comments: resp})
}

func toCommentResponse(cm *model.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        cm.ID,
		UserID:    cm.UserID,
		Username:  cm.Username,
		Text:      cm.Text,
		CreatedAt: cm.CreatedAt,
	}
}
