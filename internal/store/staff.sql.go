package store

import "context"

const staffColumns = `id, full_name, position, party_date, email, avatar_url, order_index`

func scanStaffMember(row interface{ Scan(...any) error }) (StaffMember, error) {
	var i StaffMember
	err := row.Scan(&i.ID, &i.FullName, &i.Position, &i.PartyDate, &i.Email, &i.AvatarUrl, &i.OrderIndex)
	return i, err
}

const listStaffMembers = `-- name: ListStaffMembers :many
SELECT ` + staffColumns + ` FROM staff_members ORDER BY order_index, id`

func (q *Queries) ListStaffMembers(ctx context.Context) ([]StaffMember, error) {
	rows, err := q.db.QueryContext(ctx, listStaffMembers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []StaffMember{}
	for rows.Next() {
		i, err := scanStaffMember(rows)
		if err != nil {
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

const getStaffMember = `-- name: GetStaffMember :one
SELECT ` + staffColumns + ` FROM staff_members WHERE id = ?`

func (q *Queries) GetStaffMember(ctx context.Context, id int64) (StaffMember, error) {
	return scanStaffMember(q.db.QueryRowContext(ctx, getStaffMember, id))
}

const maxStaffOrder = `-- name: MaxStaffOrder :one
SELECT COALESCE(MAX(order_index), 0) FROM staff_members`

func (q *Queries) MaxStaffOrder(ctx context.Context) (int64, error) {
	var max int64
	err := q.db.QueryRowContext(ctx, maxStaffOrder).Scan(&max)
	return max, err
}

const createStaffMember = `-- name: CreateStaffMember :one
INSERT INTO staff_members (full_name, position, party_date, email, avatar_url, order_index)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + staffColumns

type CreateStaffMemberParams struct {
	FullName   string `json:"full_name"`
	Position   string `json:"position"`
	PartyDate  string `json:"party_date"`
	Email      string `json:"email"`
	AvatarUrl  string `json:"avatar_url"`
	OrderIndex int64  `json:"order_index"`
}

func (q *Queries) CreateStaffMember(ctx context.Context, arg CreateStaffMemberParams) (StaffMember, error) {
	row := q.db.QueryRowContext(ctx, createStaffMember,
		arg.FullName,
		arg.Position,
		arg.PartyDate,
		arg.Email,
		arg.AvatarUrl,
		arg.OrderIndex,
	)
	return scanStaffMember(row)
}

const updateStaffMember = `-- name: UpdateStaffMember :one
UPDATE staff_members SET full_name = ?, position = ?, party_date = ?, email = ?, avatar_url = ?, order_index = ?
WHERE id = ?
RETURNING ` + staffColumns

type UpdateStaffMemberParams struct {
	FullName   string `json:"full_name"`
	Position   string `json:"position"`
	PartyDate  string `json:"party_date"`
	Email      string `json:"email"`
	AvatarUrl  string `json:"avatar_url"`
	OrderIndex int64  `json:"order_index"`
	ID         int64  `json:"id"`
}

func (q *Queries) UpdateStaffMember(ctx context.Context, arg UpdateStaffMemberParams) (StaffMember, error) {
	row := q.db.QueryRowContext(ctx, updateStaffMember,
		arg.FullName,
		arg.Position,
		arg.PartyDate,
		arg.Email,
		arg.AvatarUrl,
		arg.OrderIndex,
		arg.ID,
	)
	return scanStaffMember(row)
}

const updateStaffOrder = `-- name: UpdateStaffOrder :execrows
UPDATE staff_members SET order_index = ? WHERE id = ?`

func (q *Queries) UpdateStaffOrder(ctx context.Context, orderIndex, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateStaffOrder, orderIndex, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteStaffMember = `-- name: DeleteStaffMember :execrows
DELETE FROM staff_members WHERE id = ?`

func (q *Queries) DeleteStaffMember(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteStaffMember, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
