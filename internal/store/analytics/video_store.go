package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/google/uuid"
)

type ClickhouseViewStore struct {
	conn driver.Conn
}

func NewClickhouseViewStore(conn driver.Conn) *ClickhouseViewStore {
	return &ClickhouseViewStore{conn: conn}
}

type DailyViews struct {
	Day   time.Time `json:"day"`
	Views uint64    `json:"views"`
}

type ViewStore interface {
	RecordView(ctx context.Context, videoID uuid.UUID, viewerID *uuid.UUID) error
	GetDailyViewsByVideoID(videoID uuid.UUID) ([]DailyViews, error)
}

// RecordView appends one view event. The Postgres counter stays the source of
// truth for totals; these events only feed the per-day analytics endpoint.
func (c *ClickhouseViewStore) RecordView(ctx context.Context, videoID uuid.UUID, viewerID *uuid.UUID) error {
	viewer := ""
	if viewerID != nil {
		viewer = viewerID.String()
	}

	query := `
		INSERT INTO default.video_views (video_id, viewer_id, viewed_at)
		VALUES (?, ?, ?)
	`

	if err := c.conn.Exec(ctx, query, videoID.String(), viewer, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record view event: %w", err)
	}

	return nil
}

func (c *ClickhouseViewStore) GetDailyViewsByVideoID(videoID uuid.UUID) ([]DailyViews, error) {

	query := `
		SELECT toStartOfDay(viewed_at) AS day, count() AS views
		FROM default.video_views
		WHERE video_id = ?
		GROUP BY day
		ORDER BY day DESC
	`

	rows, err := c.conn.Query(context.Background(), query, videoID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get video view analytics: %w", err)
	}
	defer rows.Close()

	var daily []DailyViews

	for rows.Next() {
		var d DailyViews

		err := rows.Scan(
			&d.Day,
			&d.Views,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan view analytics row: %w", err)
		}
		daily = append(daily, d)
	}

	return daily, nil

}
