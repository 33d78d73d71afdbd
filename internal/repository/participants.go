package repository

import (
	"context"
	"time"

	"github.com/liuxh-dev/carpool-scheduler/backend/internal/domain"
)

func (r *Repository) GetAllParticipants() ([]*domain.Participant, error) {
	query := `
		SELECT id, name, tag, color, email, created_at, version
		FROM participants
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []*domain.Participant{}
	for rows.Next() {
		var p domain.Participant
		dst := []any{
			&p.ID,
			&p.Name,
			&p.Tag,
			&p.Color,
			&p.Email,
			&p.CreatedAt,
			&p.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		participants = append(participants, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return participants, nil
}

func (r *Repository) GetParticipantByName(name string) (*domain.Participant, error) {
	query := `
		SELECT id, tag, color, email, created_at, version
		FROM participants
		WHERE name = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	p := &domain.Participant{
		Name: name,
	}

	dst := []any{
		&p.ID,
		&p.Tag,
		&p.Color,
		&p.Email,
		&p.CreatedAt,
		&p.Version,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, name).Scan(dst...); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *Repository) CreateParticipant(p *domain.Participant) error {
	query := `
		INSERT INTO participants (name, tag, color, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{p.Name, p.Tag, p.Color, p.Email}
	dst := []any{&p.ID, &p.CreatedAt, &p.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateParticipant(p *domain.Participant) error {
	query := `
		UPDATE participants
		SET
			color = $1,
			email = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{p.Color, p.Email, p.ID, p.Version}

	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&p.Version); err != nil {
		return err
	}

	return nil
}
