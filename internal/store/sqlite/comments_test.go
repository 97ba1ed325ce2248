package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// seedReview creates a user, book and review for comment tests.
func seedReview(t *testing.T, s *Store) (*domain.User, *domain.Review) {
	t.Helper()
	ctx := context.Background()

	user, book := seedUserAndBook(t, s)
	review := makeTestReview(user, book)
	if err := s.CreateReview(ctx, review); err != nil {
		t.Fatalf("create review: %v", err)
	}
	return user, review
}

func makeTestComment(user *domain.User, review *domain.Review) *domain.Comment {
	return &domain.Comment{
		Content:     "Couldn't agree more.",
		DateCreated: time.Now(),
		Username:    user.Username,
		UserID:      user.ID,
		ReviewID:    review.ID,
	}
}

func TestCreateAndGetComment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user, review := seedReview(t, s)

	comment := makeTestComment(user, review)
	if err := s.CreateComment(ctx, comment); err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if comment.ID == 0 {
		t.Fatal("expected generated id")
	}

	got, err := s.GetComment(ctx, comment.ID)
	if err != nil {
		t.Fatalf("get comment: %v", err)
	}
	if got.Content != comment.Content || got.Username != "frodo" {
		t.Errorf("unexpected comment: %+v", got)
	}
	if got.OwnerEmail != "frodo@shire.me" {
		t.Errorf("owner email not joined: %q", got.OwnerEmail)
	}
}

func TestCreateComment_MissingReview(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user, review := seedReview(t, s)

	comment := makeTestComment(user, review)
	comment.ReviewID = 999
	err := s.CreateComment(ctx, comment)
	if !errors.Is(err, store.ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}
}

func TestListReviewComments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user, review := seedReview(t, s)

	for i := 0; i < 2; i++ {
		if err := s.CreateComment(ctx, makeTestComment(user, review)); err != nil {
			t.Fatalf("create comment: %v", err)
		}
	}

	comments, err := s.ListReviewComments(ctx, review.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
}

func TestUpdateComment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user, review := seedReview(t, s)

	comment := makeTestComment(user, review)
	if err := s.CreateComment(ctx, comment); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	comment.Content = "Edited: actually, I disagree."
	if err := s.UpdateComment(ctx, comment); err != nil {
		t.Fatalf("update comment: %v", err)
	}

	got, err := s.GetComment(ctx, comment.ID)
	if err != nil {
		t.Fatalf("get comment: %v", err)
	}
	if got.Content != "Edited: actually, I disagree." {
		t.Errorf("update not applied: %q", got.Content)
	}
}

func TestUpdateComment_NotFound(t *testing.T) {
	s := newTestStore(t)
	user, review := seedReview(t, s)

	comment := makeTestComment(user, review)
	comment.ID = 999
	err := s.UpdateComment(context.Background(), comment)
	if !errors.Is(err, store.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestDeleteComment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user, review := seedReview(t, s)

	comment := makeTestComment(user, review)
	if err := s.CreateComment(ctx, comment); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if err := s.DeleteComment(ctx, comment.ID); err != nil {
		t.Fatalf("delete comment: %v", err)
	}

	_, err := s.GetComment(ctx, comment.ID)
	if !errors.Is(err, store.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound after delete, got %v", err)
	}
}

func TestDeleteComment_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.DeleteComment(context.Background(), 999)
	if !errors.Is(err, store.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}
