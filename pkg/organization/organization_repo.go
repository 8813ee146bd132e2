package organization

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

var ErrOrganizationNotFound = errors.New("organization not found")
var ErrOrgNameTaken = errors.New("organization name is already taken")
var ErrUnknownField = errors.New("unknown organization field")

type Repository interface {
	Create(ctx context.Context, org Organization) (Organization, error)
	FindById(ctx context.Context, id string) (Organization, error)
	FindByField(ctx context.Context, field string, value string) ([]Organization, error)
	FindAll(ctx context.Context) ([]Organization, error)
	Update(ctx context.Context, org Organization) (Organization, error)
	Delete(ctx context.Context, id string) (bool, error)
}

var searchableFields = map[string]string{
	"orgName": "org_name",
	"owner":   "owner",
	"address": "address",
}

const selectColumns = `SELECT id::text, org_name, address, owner, is_active, version, created_at, updated_at
  FROM organizations`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, org Organization) (Organization, error) {
	query := `INSERT INTO organizations (id, org_name, address, owner, is_active, version, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	org.ID = uuid.NewString()
	org.Version = 0
	_, err := r.db.ExecContext(ctx, query,
		org.ID,
		org.OrgName,
		org.Address,
		org.Owner,
		org.Active(),
		org.Version,
		org.CreatedAt,
		org.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Organization{}, ErrOrgNameTaken
		}
		err := fmt.Errorf("could not insert organization: %w", err)
		log.Error(err)
		return Organization{}, err
	}
	return org, nil
}

func (r *PostgresRepository) FindById(ctx context.Context, id string) (Organization, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Organization{}, ErrOrganizationNotFound
	}

	org, err := scanOrganization(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Organization{}, ErrOrganizationNotFound
		}
		err := fmt.Errorf("could not query organization %s: %w", id, err)
		log.Error(err)
		return Organization{}, err
	}
	return org, nil
}

func (r *PostgresRepository) FindByField(ctx context.Context, field string, value string) ([]Organization, error) {
	column, ok := searchableFields[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return r.queryOrganizations(ctx, selectColumns+` WHERE `+column+` = $1 ORDER BY org_name`, value)
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]Organization, error) {
	return r.queryOrganizations(ctx, selectColumns+` ORDER BY org_name`)
}

func (r *PostgresRepository) Update(ctx context.Context, org Organization) (Organization, error) {
	if _, err := uuid.Parse(org.ID); err != nil {
		return Organization{}, ErrOrganizationNotFound
	}

	query := `UPDATE organizations SET
                  org_name = $1,
                  address = $2,
                  owner = $3,
                  is_active = $4,
                  updated_at = $5,
                  version = version + 1
              WHERE id = $6
              RETURNING version, created_at`

	err := r.db.QueryRowContext(ctx, query,
		org.OrgName,
		org.Address,
		org.Owner,
		org.Active(),
		org.UpdatedAt,
		org.ID,
	).Scan(&org.Version, &org.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Organization{}, ErrOrganizationNotFound
		}
		if isUniqueViolation(err) {
			return Organization{}, ErrOrgNameTaken
		}
		err := fmt.Errorf("could not update organization %s: %w", org.ID, err)
		log.Error(err)
		return Organization{}, err
	}
	org.CreatedAt = org.CreatedAt.UTC()
	return org, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not delete organization %s: %w", id, err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *PostgresRepository) queryOrganizations(ctx context.Context, query string, args ...any) ([]Organization, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query organizations: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	orgs := make([]Organization, 0, 10)
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return orgs, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrganization(s scanner) (Organization, error) {
	var (
		org      Organization
		isActive bool
	)
	err := s.Scan(
		&org.ID,
		&org.OrgName,
		&org.Address,
		&org.Owner,
		&isActive,
		&org.Version,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if err != nil {
		return Organization{}, err
	}
	org.IsActive = boolPtr(isActive)
	org.CreatedAt = org.CreatedAt.UTC()
	org.UpdatedAt = org.UpdatedAt.UTC()
	return org, nil
}
