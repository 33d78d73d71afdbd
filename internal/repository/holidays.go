package repository

import (
	"context"
	"time"

	"github.com/liuxh-dev/carpool-scheduler/backend/internal/domain"
)

func (r *Repository) ListHolidays() ([]*domain.HolidayMark, error) {
	query := `
		SELECT id, day, created_at
		FROM school_holidays
		ORDER BY day
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := []*domain.HolidayMark{}
	for rows.Next() {
		var holiday domain.HolidayMark
		if err := rows.Scan(&holiday.ID, &holiday.Day, &holiday.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, &holiday)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return holidays, nil
}
