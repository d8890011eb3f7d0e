package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/microcosm-cc/bluemonday"

	"github.com/murshadpk/storefront/internal/db"
	"github.com/murshadpk/storefront/internal/logging"
	"github.com/murshadpk/storefront/internal/observability"
)

const maxReviewCommentLength = 2000

type reviewStore interface {
	ListByProduct(ctx context.Context, productID int64) ([]*db.Review, error)
	Create(ctx context.Context, review *db.Review) error
}

type ReviewService struct {
	reviews  reviewStore
	products productNamer
	policy   *bluemonday.Policy
	logger   *slog.Logger
}

func NewReviewService(reviews reviewStore, products productNamer, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		products: products,
		policy:   bluemonday.StrictPolicy(),
		logger:   logger,
	}
}

func (s *ReviewService) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}

func (s *ReviewService) ListReviews(ctx context.Context, productID int64) ([]*db.Review, error) {
	if productID <= 0 {
		return nil, userError(ErrInvalidReview, "productId is required")
	}
	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

type SubmitReviewInput struct {
	ProductID int64
	UserID    int64
	Username  string
	Rating    int
	Comment   string
}

func (s *ReviewService) SubmitReview(ctx context.Context, input SubmitReviewInput) (*db.Review, error) {
	span := sentry.StartSpan(
		ctx,
		"service.review.submit",
		sentry.WithOpName("service.review"),
		sentry.WithDescription("SubmitReview"),
		sentry.WithSpanOrigin(sentry.SpanOriginManual),
	)
	defer span.Finish()
	ctx = span.Context()

	username := strings.TrimSpace(input.Username)
	if input.UserID <= 0 || username == "" {
		return nil, userError(ErrUnauthorized, "Please log in to submit a review")
	}
	if input.ProductID <= 0 {
		return nil, userError(ErrInvalidReview, "productId is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		observability.CountOutcome(ctx, "review.submit", "invalid_rating")
		return nil, userError(ErrInvalidReview, "Rating must be between 1 and 5")
	}

	comment := strings.TrimSpace(s.policy.Sanitize(input.Comment))
	if len(comment) > maxReviewCommentLength {
		return nil, userError(ErrInvalidReview, fmt.Sprintf("Comment must be at most %d characters", maxReviewCommentLength))
	}

	if _, err := s.products.GetName(ctx, input.ProductID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	review := &db.Review{
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Username:  username,
		Rating:    input.Rating,
		Comment:   comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	observability.CountOutcome(ctx, "review.submit", "success")
	s.loggerFromContext(ctx).Info("review submitted", "product_id", review.ProductID, "user_id", review.UserID, "rating", review.Rating)
	return review, nil
}
