// Package sequencerepo keeps one counter row per calendar day for order
// identifiers.
package sequencerepo

import (
	"context"
	"time"

	"bidding/internal/adapters/out/postgres/pgerr"
	"bidding/internal/core/ports"
	"bidding/internal/pkg/errs"

	"gorm.io/gorm"
)

type DailySequenceDTO struct {
	Day       string    `gorm:"type:varchar(8);primaryKey"`
	LastValue int       `gorm:"type:int;not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (DailySequenceDTO) TableName() string {
	return "daily_sequence_counters"
}

// The upsert either creates the day's row at 1 or increments it while it is
// below the limit. When the limit is reached the WHERE clause suppresses the
// update and RETURNING yields no row.
const nextSQL = `
	INSERT INTO daily_sequence_counters (day, last_value, updated_at)
	VALUES (?, 1, ?)
	ON CONFLICT (day) DO UPDATE
		SET last_value = daily_sequence_counters.last_value + 1,
			updated_at = excluded.updated_at
		WHERE daily_sequence_counters.last_value < ?
	RETURNING last_value`

// GormSequenceRepository implements ports.SequenceRepository. Each call is a
// single auto-committed statement, independent of any business transaction.
type GormSequenceRepository struct {
	db    *gorm.DB
	clock ports.Clock
}

func NewGormSequenceRepository(db *gorm.DB, clock ports.Clock) *GormSequenceRepository {
	return &GormSequenceRepository{db: db, clock: clock}
}

func (r *GormSequenceRepository) Next(ctx context.Context, dayKey string, limit int) (int, error) {
	if dayKey == "" {
		return 0, errs.NewValueIsRequiredError("day")
	}
	if limit < 1 {
		return 0, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	rows, err := r.db.WithContext(ctx).Raw(nextSQL, dayKey, r.clock.Now(), limit).Rows()
	if err != nil {
		return 0, pgerr.Classify("next order sequence", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return 0, pgerr.Classify("next order sequence", err)
		}
		return 0, errs.NewCapacityExceededError("order identifiers for "+dayKey, limit)
	}

	var value int
	if err = rows.Scan(&value); err != nil {
		return 0, pgerr.Classify("next order sequence", err)
	}
	return value, nil
}
