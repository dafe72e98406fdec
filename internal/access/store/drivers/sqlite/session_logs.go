package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/counterline/posgate/internal/access/domain"
)

type sessionLogsRepo struct {
	db dbtx
}

func (r *sessionLogsRepo) CreateSessionLog(ctx context.Context, l domain.SessionLog) error {
	var lat, lon, acc sql.NullFloat64
	if l.Geolocation != nil {
		lat = sql.NullFloat64{Float64: l.Geolocation.Latitude, Valid: true}
		lon = sql.NullFloat64{Float64: l.Geolocation.Longitude, Valid: true}
		acc = sql.NullFloat64{Float64: l.Geolocation.AccuracyMeters, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_logs
		 (id, user_id, outcome, failure_reason, role, access_type, at,
		  platform, user_agent, geo_latitude, geo_longitude, geo_accuracy_m,
		  ip, ip_location, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.UserID, string(l.Outcome), l.FailureReason,
		string(l.Role), string(l.AccessType), l.At.UTC(),
		l.Platform, l.UserAgent, lat, lon, acc,
		l.IP, l.IPLocation, l.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *sessionLogsRepo) ListSessionLogs(ctx context.Context, limit int) ([]domain.SessionLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, outcome, failure_reason, role, access_type, at,
		        platform, user_agent, geo_latitude, geo_longitude, geo_accuracy_m,
		        ip, ip_location, created_at
		 FROM session_logs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SessionLog
	for rows.Next() {
		var (
			l             domain.SessionLog
			outcome       string
			role          string
			accessType    string
			lat, lon, acc sql.NullFloat64
		)
		if err := rows.Scan(
			&l.ID, &l.UserID, &outcome, &l.FailureReason, &role, &accessType, &l.At,
			&l.Platform, &l.UserAgent, &lat, &lon, &acc,
			&l.IP, &l.IPLocation, &l.CreatedAt,
		); err != nil {
			return nil, err
		}
		l.Outcome = domain.LoginOutcome(outcome)
		l.Role = domain.Role(role)
		l.AccessType = domain.AccessType(accessType)
		if lat.Valid && lon.Valid {
			l.Geolocation = &domain.Geolocation{
				Latitude:       lat.Float64,
				Longitude:      lon.Float64,
				AccuracyMeters: acc.Float64,
			}
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *sessionLogsRepo) PurgeSessionLogsBefore(ctx context.Context, cutoff time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM session_logs WHERE created_at < ?`, cutoff.UTC())
	return err
}
