package db

import (
	"context"
)

type EmailRecipient struct {
	ID        int64
	Email     string
	Name      string
	Active    int64
	CreatedAt int64
}

const createEmailRecipient = `-- name: CreateEmailRecipient :one
INSERT INTO email_recipients (email, name, active, created_at)
VALUES (?, ?, 1, ?)
RETURNING id
`

type CreateEmailRecipientParams struct {
	Email     string
	Name      string
	CreatedAt int64
}

func (q *Queries) CreateEmailRecipient(ctx context.Context, arg CreateEmailRecipientParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createEmailRecipient,
		arg.Email,
		arg.Name,
		arg.CreatedAt,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const getEmailRecipient = `-- name: GetEmailRecipient :one
SELECT id, email, name, active, created_at
FROM email_recipients
WHERE id = ?
`

func (q *Queries) GetEmailRecipient(ctx context.Context, id int64) (EmailRecipient, error) {
	row := q.db.QueryRowContext(ctx, getEmailRecipient, id)
	var i EmailRecipient
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.Name,
		&i.Active,
		&i.CreatedAt,
	)
	return i, err
}

const countEmailRecipientsByEmail = `-- name: CountEmailRecipientsByEmail :one
SELECT COUNT(*) FROM email_recipients WHERE email = ?
`

func (q *Queries) CountEmailRecipientsByEmail(ctx context.Context, email string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countEmailRecipientsByEmail, email)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getAllEmailRecipients = `-- name: GetAllEmailRecipients :many
SELECT id, email, name, active, created_at
FROM email_recipients
ORDER BY id ASC
`

func (q *Queries) GetAllEmailRecipients(ctx context.Context) ([]EmailRecipient, error) {
	rows, err := q.db.QueryContext(ctx, getAllEmailRecipients)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []EmailRecipient
	for rows.Next() {
		var i EmailRecipient
		if err := rows.Scan(
			&i.ID,
			&i.Email,
			&i.Name,
			&i.Active,
			&i.CreatedAt,
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

const getActiveEmailRecipients = `-- name: GetActiveEmailRecipients :many
SELECT email
FROM email_recipients
WHERE active = 1
ORDER BY id ASC
`

func (q *Queries) GetActiveEmailRecipients(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, getActiveEmailRecipients)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		items = append(items, email)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const setEmailRecipientActive = `-- name: SetEmailRecipientActive :exec
UPDATE email_recipients SET active = ? WHERE id = ?
`

type SetEmailRecipientActiveParams struct {
	Active int64
	ID     int64
}

func (q *Queries) SetEmailRecipientActive(ctx context.Context, arg SetEmailRecipientActiveParams) error {
	_, err := q.db.ExecContext(ctx, setEmailRecipientActive, arg.Active, arg.ID)
	return err
}

const updateEmailRecipientName = `-- name: UpdateEmailRecipientName :exec
UPDATE email_recipients SET name = ? WHERE id = ?
`

type UpdateEmailRecipientNameParams struct {
	Name string
	ID   int64
}

func (q *Queries) UpdateEmailRecipientName(ctx context.Context, arg UpdateEmailRecipientNameParams) error {
	_, err := q.db.ExecContext(ctx, updateEmailRecipientName, arg.Name, arg.ID)
	return err
}

const deleteEmailRecipient = `-- name: DeleteEmailRecipient :exec
DELETE FROM email_recipients WHERE id = ?
`

func (q *Queries) DeleteEmailRecipient(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteEmailRecipient, id)
	return err
}
