package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrEventNotFound = errors.New("event not found")
var ErrUnknownField = errors.New("unknown event field")

type Repository interface {
	Create(ctx context.Context, event Event) (Event, error)
	FindById(ctx context.Context, id string) (Event, error)
	// FindByField returns events whose field (public JSON name) equals value.
	FindByField(ctx context.Context, field string, value string) ([]Event, error)
	FindAll(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, event Event) (Event, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// searchableFields maps the public field names accepted by FindByField to their columns.
var searchableFields = map[string]string{
	"eventName":    "event_name",
	"organizer":    "organizer",
	"organization": "organization",
	"status":       "status",
}

const selectColumns = `SELECT id::text, event_name, description, detail, organizer, organization, status,
       start_date, end_date, version, created_at, updated_at
  FROM events`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, event Event) (Event, error) {
	query := `INSERT INTO events (
                    id,
                    event_name,
                    description,
                    detail,
                    organizer,
                    organization,
                    status,
                    start_date,
                    end_date,
                    version,
                    created_at,
                    updated_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	event.ID = uuid.NewString()
	event.Version = 0
	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.EventName,
		event.Description,
		event.Detail,
		event.Organizer,
		event.Organization,
		string(event.Status),
		event.StartDate,
		event.EndDate,
		event.Version,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		err := fmt.Errorf("could not insert event: %w", err)
		log.Error(err)
		return Event{}, err
	}
	return event, nil
}

func (r *PostgresRepository) FindById(ctx context.Context, id string) (Event, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Event{}, ErrEventNotFound
	}

	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Event{}, ErrEventNotFound
		}
		err := fmt.Errorf("could not query event %s: %w", id, err)
		log.Error(err)
		return Event{}, err
	}
	return event, nil
}

func (r *PostgresRepository) FindByField(ctx context.Context, field string, value string) ([]Event, error) {
	column, ok := searchableFields[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	query := selectColumns + ` WHERE ` + column + ` = $1 ORDER BY start_date, created_at`
	return r.queryEvents(ctx, query, value)
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]Event, error) {
	return r.queryEvents(ctx, selectColumns+` ORDER BY start_date, created_at`)
}

func (r *PostgresRepository) Update(ctx context.Context, event Event) (Event, error) {
	if _, err := uuid.Parse(event.ID); err != nil {
		return Event{}, ErrEventNotFound
	}

	query := `UPDATE events SET
                  event_name = $1,
                  description = $2,
                  detail = $3,
                  organizer = $4,
                  organization = $5,
                  status = $6,
                  start_date = $7,
                  end_date = $8,
                  updated_at = $9,
                  version = version + 1
              WHERE id = $10
              RETURNING version, created_at`

	err := r.db.QueryRowContext(ctx, query,
		event.EventName,
		event.Description,
		event.Detail,
		event.Organizer,
		event.Organization,
		string(event.Status),
		event.StartDate,
		event.EndDate,
		event.UpdatedAt,
		event.ID,
	).Scan(&event.Version, &event.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Event{}, ErrEventNotFound
		}
		err := fmt.Errorf("could not update event %s: %w", event.ID, err)
		log.Error(err)
		return Event{}, err
	}
	event.CreatedAt = event.CreatedAt.UTC()
	return event, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not delete event %s: %w", id, err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *PostgresRepository) queryEvents(ctx context.Context, query string, args ...any) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0, 10)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return events, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (Event, error) {
	var (
		event  Event
		status string
	)
	err := s.Scan(
		&event.ID,
		&event.EventName,
		&event.Description,
		&event.Detail,
		&event.Organizer,
		&event.Organization,
		&status,
		&event.StartDate,
		&event.EndDate,
		&event.Version,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return Event{}, err
	}
	event.Status = Status(status)
	event.StartDate = event.StartDate.UTC()
	event.EndDate = event.EndDate.UTC()
	event.CreatedAt = event.CreatedAt.UTC()
	event.UpdatedAt = event.UpdatedAt.UTC()
	return event, nil
}
