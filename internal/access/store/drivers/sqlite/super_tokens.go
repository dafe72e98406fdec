package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/counterline/posgate/internal/access/domain"
	"github.com/counterline/posgate/internal/access/store"
)

type superTokensRepo struct {
	db dbtx
}

const superTokenColumns = `id, code, status, created_by_id, created_by_name, created_at, expires_at, used_by_id, used_at`

func (r *superTokensRepo) CreateSuperToken(ctx context.Context, t domain.SuperToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO super_tokens
		 (id, code, status, created_by_id, created_by_name, created_at, expires_at, used_by_id, used_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Code, string(t.Status), t.CreatedByID, t.CreatedByName,
		t.CreatedAt.UTC(), t.ExpiresAt.UTC(),
		mapStringNull(t.UsedByID), mapOptionalTime(t.UsedAt),
	)
	return mapConstraint(err)
}

func (r *superTokensRepo) GetLatestSuperTokenByCode(ctx context.Context, code string) (domain.SuperToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+superTokenColumns+`
		 FROM super_tokens
		 WHERE code = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`, code)
	return scanSuperToken(row)
}

func (r *superTokensRepo) GetSuperTokenByID(ctx context.Context, id string) (domain.SuperToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+superTokenColumns+` FROM super_tokens WHERE id = ?`, id)
	return scanSuperToken(row)
}

// MarkSuperTokenUsed is the compare-and-swap on a token's status. The
// WHERE clause is the guard: a concurrent redeemer that lost the race
// finds zero rows affected and gets ErrConflict.
func (r *superTokensRepo) MarkSuperTokenUsed(ctx context.Context, id string, usedBy string, usedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE super_tokens
		 SET status = ?, used_by_id = ?, used_at = ?
		 WHERE id = ? AND status = ?`,
		string(domain.TokenUsed), usedBy, usedAt.UTC(), id, string(domain.TokenActive))
	if err != nil {
		return err
	}
	return requireConditionalUpdate(res)
}

func (r *superTokensRepo) MarkSuperTokenExpired(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE super_tokens SET status = ? WHERE id = ? AND status = ?`,
		string(domain.TokenExpired), id, string(domain.TokenActive))
	if err != nil {
		return err
	}
	return requireConditionalUpdate(res)
}

func (r *superTokensRepo) ListSuperTokens(ctx context.Context, limit int) ([]domain.SuperToken, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+superTokenColumns+`
		 FROM super_tokens
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SuperToken
	for rows.Next() {
		t, err := scanSuperToken(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *superTokensRepo) PurgeTerminalSuperTokensBefore(ctx context.Context, cutoff time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM super_tokens
		 WHERE status IN (?, ?) AND created_at < ?`,
		string(domain.TokenUsed), string(domain.TokenExpired), cutoff.UTC())
	return err
}

func requireConditionalUpdate(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrConflict
	}
	return nil
}

func scanSuperToken(row rowScanner) (domain.SuperToken, error) {
	var (
		t      domain.SuperToken
		status string
		usedBy sql.NullString
		usedAt sql.NullTime
	)
	err := row.Scan(
		&t.ID, &t.Code, &status, &t.CreatedByID, &t.CreatedByName,
		&t.CreatedAt, &t.ExpiresAt, &usedBy, &usedAt,
	)
	if err != nil {
		return domain.SuperToken{}, mapNotFound(err)
	}
	t.Status = domain.TokenStatus(status)
	t.UsedByID = mapNullString(usedBy)
	t.UsedAt = mapNullTimePtr(usedAt)
	return t, nil
}
