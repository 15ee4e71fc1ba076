package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"safety_reports/internal/metrics"
	"safety_reports/internal/models"
)

const contentRequired = "This field is required."

// CommentService manages the discussion thread of a report. Edits and
// deletes look comments up by (id, author) so another user's comment is
// indistinguishable from a missing one.
type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// Add appends a comment by actor to the report's thread.
func (s *CommentService) Add(ctx context.Context, actor *models.User, reportID uint, content string) (*models.Comment, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}

	var report models.SafetyReport
	if err := s.db.WithContext(ctx).Select("id", "place").First(&report, reportID).Error; err != nil {
		return nil, notFoundOr(err)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fieldError("content", contentRequired)
	}

	comment := models.Comment{
		ReportID: report.ID,
		AuthorID: actor.ID,
		Content:  content,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	comment.Author = actor
	metrics.CommentActions.WithLabelValues("add").Inc()
	return &comment, nil
}

// ListForReport returns the thread oldest first.
func (s *CommentService) ListForReport(ctx context.Context, reportID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("report_id = ?", reportID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	return comments, err
}

// Get returns the comment only if actor wrote it.
func (s *CommentService) Get(ctx context.Context, actor *models.User, commentID uint) (*models.Comment, error) {
	comment, err := s.findOwned(ctx, actor, commentID)
	if err != nil {
		return nil, err
	}
	comment.Author = actor
	return comment, nil
}

func (s *CommentService) findOwned(ctx context.Context, actor *models.User, commentID uint) (*models.Comment, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	var comment models.Comment
	err := s.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", commentID, actor.ID).
		First(&comment).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &comment, nil
}

// Edit replaces the content of actor's own comment.
func (s *CommentService) Edit(ctx context.Context, actor *models.User, commentID uint, content string) (*models.Comment, error) {
	comment, err := s.findOwned(ctx, actor, commentID)
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fieldError("content", contentRequired)
	}

	err = s.db.WithContext(ctx).Model(comment).Update("content", content).Error
	if err != nil {
		return nil, err
	}
	comment.Author = actor
	metrics.CommentActions.WithLabelValues("edit").Inc()
	return comment, nil
}

// Delete removes actor's own comment and nothing else.
func (s *CommentService) Delete(ctx context.Context, actor *models.User, commentID uint) error {
	if actor == nil {
		return ErrNotAuthenticated
	}
	res := s.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", commentID, actor.ID).
		Delete(&models.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	metrics.CommentActions.WithLabelValues("delete").Inc()
	return nil
}
