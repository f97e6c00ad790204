// Package session décrit une session serveur liée au cookie du client.
package session

import (
	"errors"
	"time"
)

// ErrNotFound session absente ou expirée
var ErrNotFound = errors.New("session introuvable")

type Session struct {
	ID           string    `json:"session_id"`
	UserID       int64     `json:"user_id"`
	IPAddress    string    `json:"ip_address"`
	UserAgent    string    `json:"user_agent"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
