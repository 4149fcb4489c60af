package store

import "context"

// VisitTimeLayout is the layout of visits.created_at. Values are UTC.
const VisitTimeLayout = "2006-01-02 15:04:05"

// VisitDayLayout is the layout of visit_daily.day.
const VisitDayLayout = "2006-01-02"

const createVisit = `-- name: CreateVisit :exec
INSERT INTO visits (visitor_id, session_hash, path, browser, os, device_type, country_code, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

type CreateVisitParams struct {
	VisitorID   string `json:"visitor_id"`
	SessionHash string `json:"session_hash"`
	Path        string `json:"path"`
	Browser     string `json:"browser"`
	Os          string `json:"os"`
	DeviceType  string `json:"device_type"`
	CountryCode string `json:"country_code"`
	CreatedAt   string `json:"created_at"`
}

func (q *Queries) CreateVisit(ctx context.Context, arg CreateVisitParams) error {
	_, err := q.db.ExecContext(ctx, createVisit,
		arg.VisitorID,
		arg.SessionHash,
		arg.Path,
		arg.Browser,
		arg.Os,
		arg.DeviceType,
		arg.CountryCode,
		arg.CreatedAt,
	)
	return err
}

const countActiveSessions = `-- name: CountActiveSessions :one
SELECT COUNT(DISTINCT session_hash) FROM visits WHERE created_at >= ?`

func (q *Queries) CountActiveSessions(ctx context.Context, since string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countActiveSessions, since).Scan(&count)
	return count, err
}

const countRawVisitsSince = `-- name: CountRawVisitsSince :one
SELECT COUNT(*) FROM visits WHERE created_at >= ?`

func (q *Queries) CountRawVisitsSince(ctx context.Context, since string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countRawVisitsSince, since).Scan(&count)
	return count, err
}

// Days that still have raw rows are counted from the raw table so a missed
// rollup never drops or double counts visits.
const countVisitsFromDay = `-- name: CountVisitsFromDay :one
SELECT
    (SELECT COALESCE(SUM(visits), 0) FROM visit_daily
        WHERE day >= ?1
          AND day NOT IN (SELECT DISTINCT substr(created_at, 1, 10) FROM visits))
  + (SELECT COUNT(*) FROM visits WHERE created_at >= ?1)`

// CountVisitsFromDay returns every visit on or after day. An empty day
// counts all visits.
func (q *Queries) CountVisitsFromDay(ctx context.Context, day string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countVisitsFromDay, day).Scan(&count)
	return count, err
}

const rollupVisits = `-- name: RollupVisits :execrows
INSERT INTO visit_daily (day, visits, visitors)
SELECT substr(created_at, 1, 10) AS day, COUNT(*), COUNT(DISTINCT visitor_id)
FROM visits
WHERE created_at < ?
GROUP BY day
ON CONFLICT (day) DO UPDATE SET
    visits = excluded.visits,
    visitors = excluded.visitors`

// RollupVisits writes per-day totals for every raw visit before the given
// day start into visit_daily.
func (q *Queries) RollupVisits(ctx context.Context, before string) (int64, error) {
	result, err := q.db.ExecContext(ctx, rollupVisits, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteVisitsBefore = `-- name: DeleteVisitsBefore :execrows
DELETE FROM visits WHERE created_at < ?`

func (q *Queries) DeleteVisitsBefore(ctx context.Context, before string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteVisitsBefore, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listVisitDaily = `-- name: ListVisitDaily :many
SELECT day, visits, visitors FROM visit_daily WHERE day >= ? ORDER BY day`

func (q *Queries) ListVisitDaily(ctx context.Context, from string) ([]VisitDaily, error) {
	rows, err := q.db.QueryContext(ctx, listVisitDaily, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []VisitDaily{}
	for rows.Next() {
		var i VisitDaily
		if err := rows.Scan(&i.Day, &i.Visits, &i.Visitors); err != nil {
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
