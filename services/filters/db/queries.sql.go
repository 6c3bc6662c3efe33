package db

import (
	"context"
)

type FilterSetting struct {
	ID          int64
	TargetMiles int64
	Active      int64
	Description string
	CreatedAt   int64
	UpdatedAt   int64
}

const createFilterSetting = `-- name: CreateFilterSetting :one
INSERT INTO filter_settings (target_miles, active, description, created_at, updated_at)
VALUES (?, 1, ?, ?, ?)
RETURNING id
`

type CreateFilterSettingParams struct {
	TargetMiles int64
	Description string
	CreatedAt   int64
	UpdatedAt   int64
}

func (q *Queries) CreateFilterSetting(ctx context.Context, arg CreateFilterSettingParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createFilterSetting,
		arg.TargetMiles,
		arg.Description,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const getFilterSetting = `-- name: GetFilterSetting :one
SELECT id, target_miles, active, description, created_at, updated_at
FROM filter_settings
WHERE id = ?
`

func (q *Queries) GetFilterSetting(ctx context.Context, id int64) (FilterSetting, error) {
	row := q.db.QueryRowContext(ctx, getFilterSetting, id)
	var i FilterSetting
	err := row.Scan(
		&i.ID,
		&i.TargetMiles,
		&i.Active,
		&i.Description,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const countFilterSettingsByTargetMiles = `-- name: CountFilterSettingsByTargetMiles :one
SELECT COUNT(*) FROM filter_settings WHERE target_miles = ?
`

func (q *Queries) CountFilterSettingsByTargetMiles(ctx context.Context, targetMiles int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countFilterSettingsByTargetMiles, targetMiles)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getAllFilterSettings = `-- name: GetAllFilterSettings :many
SELECT id, target_miles, active, description, created_at, updated_at
FROM filter_settings
ORDER BY target_miles ASC
`

func (q *Queries) GetAllFilterSettings(ctx context.Context) ([]FilterSetting, error) {
	rows, err := q.db.QueryContext(ctx, getAllFilterSettings)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []FilterSetting
	for rows.Next() {
		var i FilterSetting
		if err := rows.Scan(
			&i.ID,
			&i.TargetMiles,
			&i.Active,
			&i.Description,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getActiveFilterSettings = `-- name: GetActiveFilterSettings :many
SELECT id, target_miles, active, description, created_at, updated_at
FROM filter_settings
WHERE active = 1
ORDER BY target_miles ASC
`

func (q *Queries) GetActiveFilterSettings(ctx context.Context) ([]FilterSetting, error) {
	rows, err := q.db.QueryContext(ctx, getActiveFilterSettings)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []FilterSetting
	for rows.Next() {
		var i FilterSetting
		if err := rows.Scan(
			&i.ID,
			&i.TargetMiles,
			&i.Active,
			&i.Description,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateFilterSetting = `-- name: UpdateFilterSetting :exec
UPDATE filter_settings
SET target_miles = ?, description = ?, updated_at = ?
WHERE id = ?
`

type UpdateFilterSettingParams struct {
	TargetMiles int64
	Description string
	UpdatedAt   int64
	ID          int64
}

func (q *Queries) UpdateFilterSetting(ctx context.Context, arg UpdateFilterSettingParams) error {
	_, err := q.db.ExecContext(ctx, updateFilterSetting,
		arg.TargetMiles,
		arg.Description,
		arg.UpdatedAt,
		arg.ID,
	)
	return err
}

const setFilterSettingActive = `-- name: SetFilterSettingActive :exec
UPDATE filter_settings
SET active = ?, updated_at = ?
WHERE id = ?
`

type SetFilterSettingActiveParams struct {
	Active    int64
	UpdatedAt int64
	ID        int64
}

func (q *Queries) SetFilterSettingActive(ctx context.Context, arg SetFilterSettingActiveParams) error {
	_, err := q.db.ExecContext(ctx, setFilterSettingActive,
		arg.Active,
		arg.UpdatedAt,
		arg.ID,
	)
	return err
}

const deleteFilterSetting = `-- name: DeleteFilterSetting :exec
DELETE FROM filter_settings WHERE id = ?
`

func (q *Queries) DeleteFilterSetting(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteFilterSetting, id)
	return err
}
