package service

import (
	"context"

	"github.com/wb-go/wbf/ginext"

	"csaweb/internal/dto"
	"csaweb/internal/model"
)

// partitionComments splits one fetched list into the pending and approved
// tabs with their counts. Deleted user/post references get fallback labels.
func partitionComments(comments []model.Comment) dto.CommentBoardResponse {
	board := dto.CommentBoardResponse{
		Pending:  []dto.CommentView{},
		Approved: []dto.CommentView{},
	}
	for i := range comments {
		c := &comments[i]
		view := dto.CommentView{
			ID:                c.ID,
			Content:           c.Content,
			IsApproved:        c.IsApproved,
			AdminReplyContent: c.AdminReplyContent,
			AuthorName:        c.AuthorName(),
			PostTitle:         c.PostTitle(),
			CreatedAt:         c.CreatedAt,
		}
		if c.IsApproved {
			board.Approved = append(board.Approved, view)
		} else {
			board.Pending = append(board.Pending, view)
		}
	}
	board.PendingCount = len(board.Pending)
	board.ApprovedCount = len(board.Approved)
	return board
}

func (s *service) AdminComments(ctx *ginext.Context) {
	caller, ok := s.requireAdmin(ctx)
	if !ok {
		return
	}

	comments, err := s.api.Comments(ctx.Request.Context(), caller.token)
	if err != nil {
		s.backendFail(ctx, err, "list comments")
		return
	}
	dto.SuccessResponse(ctx, partitionComments(comments))
}

// ApproveComment sets isApproved and persists the admin reply in one call.
// The backend treats it idempotently: approving an already-approved comment
// just edits the reply. The refreshed board is returned so the caller never
// has to patch state locally.
func (s *service) ApproveComment(ctx *ginext.Context) {
	caller, ok := s.requireAdmin(ctx)
	if !ok {
		return
	}
	commentID := ctx.Param("id")

	var req dto.ApproveCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if err := s.api.ApproveComment(ctx.Request.Context(), caller.token, commentID, req.Reply); err != nil {
		s.backendFail(ctx, err, "approve comment")
		return
	}

	s.log.Info().Str("comment_id", commentID).Msg("comment approved")
	s.respondWithBoard(ctx, caller)
}

func (s *service) DeleteComment(ctx *ginext.Context) {
	caller, ok := s.requireAdmin(ctx)
	if !ok {
		return
	}
	commentID := ctx.Param("id")

	if err := s.api.DeleteComment(ctx.Request.Context(), caller.token, commentID); err != nil {
		s.backendFail(ctx, err, "delete comment")
		return
	}

	s.log.Info().Str("comment_id", commentID).Msg("comment deleted")
	s.respondWithBoard(ctx, caller)
}

func (s *service) respondWithBoard(ctx *ginext.Context, caller authInfo) {
	comments, err := s.fetchComments(ctx.Request.Context(), caller)
	if err != nil {
		s.backendFail(ctx, err, "refresh comments")
		return
	}
	dto.SuccessResponse(ctx, partitionComments(comments))
}

func (s *service) fetchComments(ctx context.Context, caller authInfo) ([]model.Comment, error) {
	return s.api.Comments(ctx, caller.token)
}
