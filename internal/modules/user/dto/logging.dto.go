package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Logging ligne de connexion avec l'identité de l'utilisateur
type Logging struct {
	LoggingID     int64     `json:"logging_id"`
	UserID        int64     `json:"user_id"`
	DebutLogging  time.Time `json:"debut_logging"`
	LastActivTime time.Time `json:"last_activ_time"`
	IsCurr        bool      `json:"is_curr"`
	Login         string    `json:"login"`
	Nom           string    `json:"nom"`
	Prenom        *string   `json:"prenom"`
}

// POST /user/userLoggings
type LoggingSearchRequest struct {
	DateDebut   *Date   `json:"dateDebut"`
	DateFin     *Date   `json:"dateFin"`
	SearchValue *string `json:"searchValue" validate:"omitempty,max=200"`
}

// Empty aucun critère : aucune recherche n'est effectuée
func (r LoggingSearchRequest) Empty() bool {
	return r.DateDebut == nil && r.DateFin == nil && (r.SearchValue == nil || strings.TrimSpace(*r.SearchValue) == "")
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date accepte une date ISO complète ou une date seule
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date invalide: %w", err)
	}
	raw = strings.TrimSpace(raw)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("format de date non reconnu: %q", raw)
}
