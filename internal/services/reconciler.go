package services

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// CounterReconciler recomputes the denormalized counters from their base
// tables on a schedule. The request path keeps counters correct on its own;
// this job exists to catch and repair drift from crashes or manual edits.
type CounterReconciler struct {
	db     *sql.DB
	logger *log.Logger
	cron   *cron.Cron
}

func NewCounterReconciler(db *sql.DB, logger *log.Logger) *CounterReconciler {
	return &CounterReconciler{
		db:     db,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start schedules the nightly reconciliation run. Call Stop on shutdown.
func (cr *CounterReconciler) Start() error {
	_, err := cr.cron.AddFunc("0 4 * * *", func() {
		if err := cr.ReconcileAll(); err != nil {
			cr.logger.Printf("Counter reconciliation failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule counter reconciliation: %w", err)
	}

	cr.cron.Start()
	cr.logger.Println("Counter reconciler scheduled")
	return nil
}

func (cr *CounterReconciler) Stop() {
	cr.cron.Stop()
}

// ReconcileAll runs every counter repair statement and reports how many rows
// had drifted.
func (cr *CounterReconciler) ReconcileAll() error {
	statements := []struct {
		name  string
		query string
	}{
		{
			name: "video like counters",
			query: `
				UPDATE videos v SET
					likes_count = counted.likes,
					dislikes_count = counted.dislikes
				FROM (
					SELECT v.id,
						COUNT(*) FILTER (WHERE vl.type = 'like') AS likes,
						COUNT(*) FILTER (WHERE vl.type = 'dislike') AS dislikes
					FROM videos v
					LEFT JOIN video_likes vl ON vl.video_id = v.id
					GROUP BY v.id
				) counted
				WHERE v.id = counted.id
				AND (v.likes_count != counted.likes OR v.dislikes_count != counted.dislikes)
			`,
		},
		{
			name: "video comment counters",
			query: `
				UPDATE videos v SET comments_count = counted.comments
				FROM (
					SELECT v.id, COUNT(c.id) AS comments
					FROM videos v
					LEFT JOIN comments c ON c.video_id = v.id
					GROUP BY v.id
				) counted
				WHERE v.id = counted.id AND v.comments_count != counted.comments
			`,
		},
		{
			name: "comment like counters",
			query: `
				UPDATE comments c SET
					likes_count = counted.likes,
					dislikes_count = counted.dislikes
				FROM (
					SELECT c.id,
						COUNT(*) FILTER (WHERE cl.type = 'like') AS likes,
						COUNT(*) FILTER (WHERE cl.type = 'dislike') AS dislikes
					FROM comments c
					LEFT JOIN comment_likes cl ON cl.comment_id = c.id
					GROUP BY c.id
				) counted
				WHERE c.id = counted.id
				AND (c.likes_count != counted.likes OR c.dislikes_count != counted.dislikes)
			`,
		},
		{
			name: "channel subscriber counters",
			query: `
				UPDATE channels ch SET subscribers_count = counted.subscribers
				FROM (
					SELECT ch.id, COUNT(s.id) AS subscribers
					FROM channels ch
					LEFT JOIN subscriptions s ON s.channel_id = ch.id
					GROUP BY ch.id
				) counted
				WHERE ch.id = counted.id AND ch.subscribers_count != counted.subscribers
			`,
		},
		{
			name: "channel video counters",
			query: `
				UPDATE channels ch SET videos_count = counted.videos
				FROM (
					SELECT ch.id, COUNT(v.id) AS videos
					FROM channels ch
					LEFT JOIN videos v ON v.channel_id = ch.id
					GROUP BY ch.id
				) counted
				WHERE ch.id = counted.id AND ch.videos_count != counted.videos
			`,
		},
	}

	for _, stmt := range statements {
		result, err := cr.db.Exec(stmt.query)
		if err != nil {
			return fmt.Errorf("failed to reconcile %s: %w", stmt.name, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows for %s: %w", stmt.name, err)
		}

		if affected > 0 {
			cr.logger.Printf("Reconciled %s: %d rows had drifted", stmt.name, affected)
		}
	}

	return nil
}
