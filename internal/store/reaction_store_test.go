package store

import (
	"testing"

	"github.com/avlok/vidfeed_server/internal/models"
)

func TestResolveReaction(t *testing.T) {
	like := models.ReactionLike
	dislike := models.ReactionDislike

	tests := []struct {
		name         string
		existing     *models.ReactionType
		requested    models.ReactionType
		action       reactionAction
		likeDelta    int
		dislikeDelta int
	}{
		{"new like", nil, like, reactionCreate, 1, 0},
		{"new dislike", nil, dislike, reactionCreate, 0, 1},
		{"like again removes it", &like, like, reactionDelete, -1, 0},
		{"dislike again removes it", &dislike, dislike, reactionDelete, 0, -1},
		{"like over dislike switches", &dislike, like, reactionSwitch, 1, -1},
		{"dislike over like switches", &like, dislike, reactionSwitch, -1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, likeDelta, dislikeDelta := resolveReaction(tc.existing, tc.requested)

			if action != tc.action {
				t.Errorf("expected action %v, got %v", tc.action, action)
			}
			if likeDelta != tc.likeDelta {
				t.Errorf("expected like delta %d, got %d", tc.likeDelta, likeDelta)
			}
			if dislikeDelta != tc.dislikeDelta {
				t.Errorf("expected dislike delta %d, got %d", tc.dislikeDelta, dislikeDelta)
			}
		})
	}
}

func TestResolveReactionZeroSumOnSwitch(t *testing.T) {
	like := models.ReactionLike
	dislike := models.ReactionDislike

	for _, existing := range []*models.ReactionType{&like, &dislike} {
		for _, requested := range []models.ReactionType{like, dislike} {
			if *existing == requested {
				continue
			}
			_, likeDelta, dislikeDelta := resolveReaction(existing, requested)
			if likeDelta+dislikeDelta != 0 {
				t.Errorf("switch from %s to %s must move one vote, got deltas %d/%d",
					*existing, requested, likeDelta, dislikeDelta)
			}
		}
	}
}

func TestReactionTables(t *testing.T) {
	table, column, target, err := reactionTables(models.TargetVideo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table != "video_likes" || column != "video_id" || target != "videos" {
		t.Errorf("unexpected video mapping: %s %s %s", table, column, target)
	}

	table, column, target, err = reactionTables(models.TargetComment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table != "comment_likes" || column != "comment_id" || target != "comments" {
		t.Errorf("unexpected comment mapping: %s %s %s", table, column, target)
	}

	if _, _, _, err := reactionTables(models.TargetKind("playlist")); err == nil {
		t.Error("expected error for unknown target kind")
	}
}
