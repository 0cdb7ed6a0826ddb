package store

import (
	"testing"

	"github.com/avlok/vidfeed_server/internal/models"
	"github.com/google/uuid"
)

func makeComment(id uuid.UUID, parentID *uuid.UUID, content string) CommentWithAuthor {
	return CommentWithAuthor{
		Comment: models.Comment{
			Id:        id,
			Parent_ID: parentID,
			Content:   content,
		},
		Author_Name: "tester",
	}
}

func TestAssembleCommentTree(t *testing.T) {
	topA := uuid.New()
	topB := uuid.New()
	replyA1 := uuid.New()
	replyA2 := uuid.New()

	// Newest first, the way the query returns them.
	flat := []CommentWithAuthor{
		makeComment(replyA2, &topA, "second reply"),
		makeComment(topB, nil, "top b"),
		makeComment(replyA1, &topA, "first reply"),
		makeComment(topA, nil, "top a"),
	}

	threads := assembleCommentTree(flat)

	if len(threads) != 2 {
		t.Fatalf("expected 2 threads, got %d", len(threads))
	}

	if threads[0].Id != topB || threads[1].Id != topA {
		t.Errorf("top-level order not preserved")
	}

	if len(threads[0].Replies) != 0 {
		t.Errorf("expected no replies on top b, got %d", len(threads[0].Replies))
	}

	replies := threads[1].Replies
	if len(replies) != 2 {
		t.Fatalf("expected 2 replies on top a, got %d", len(replies))
	}
	if replies[0].Id != replyA2 || replies[1].Id != replyA1 {
		t.Errorf("reply order not preserved")
	}
}

func TestAssembleCommentTreeEmpty(t *testing.T) {
	threads := assembleCommentTree(nil)

	if threads == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(threads) != 0 {
		t.Errorf("expected no threads, got %d", len(threads))
	}
}

func TestAssembleCommentTreeSkipsOrphans(t *testing.T) {
	missingParent := uuid.New()
	top := uuid.New()

	flat := []CommentWithAuthor{
		makeComment(uuid.New(), &missingParent, "orphan"),
		makeComment(top, nil, "top"),
	}

	threads := assembleCommentTree(flat)

	if len(threads) != 1 {
		t.Fatalf("expected 1 thread, got %d", len(threads))
	}
	if len(threads[0].Replies) != 0 {
		t.Errorf("orphan reply must not attach anywhere")
	}
}
