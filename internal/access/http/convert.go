package http

import (
	"net/http"

	"github.com/counterline/posgate/internal/access/domain"
	"github.com/counterline/posgate/pkg/httpx"
	"github.com/counterline/posgate/pkg/posapi"
)

func writeError(w http.ResponseWriter, status int, code, description string) {
	httpx.WriteJSON(w, status, posapi.ErrorResponse{
		Error:            code,
		ErrorDescription: description,
	})
}

func toAPIUser(u domain.User) posapi.User {
	return posapi.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		AccessType:  string(u.AccessType),
		Disabled:    u.Disabled,
	}
}

func toAPIToken(t domain.SuperToken) posapi.SuperToken {
	return posapi.SuperToken{
		ID:            t.ID,
		Code:          t.Code,
		Status:        string(t.Status),
		CreatedByID:   t.CreatedByID,
		CreatedByName: t.CreatedByName,
		CreatedAt:     t.CreatedAt,
		ExpiresAt:     t.ExpiresAt,
		UsedByID:      t.UsedByID,
		UsedAt:        t.UsedAt,
	}
}

func toAPIGeolocation(g *domain.Geolocation) *posapi.Geolocation {
	if g == nil {
		return nil
	}
	return &posapi.Geolocation{
		Latitude:       g.Latitude,
		Longitude:      g.Longitude,
		AccuracyMeters: g.AccuracyMeters,
	}
}

func toAPISessionLog(l domain.SessionLog) posapi.SessionLog {
	return posapi.SessionLog{
		ID:            l.ID,
		UserID:        l.UserID,
		Outcome:       string(l.Outcome),
		FailureReason: l.FailureReason,
		Role:          string(l.Role),
		AccessType:    string(l.AccessType),
		At:            l.At,
		Platform:      l.Platform,
		UserAgent:     l.UserAgent,
		Geolocation:   toAPIGeolocation(l.Geolocation),
		IP:            l.IP,
		IPLocation:    l.IPLocation,
	}
}
