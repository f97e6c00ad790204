// Package audit décrit le journal des mutations validées (insert/update) et
// son implémentation inerte utilisée quand aucun stockage n'est configuré.
package audit

import (
	"context"
	"time"
)

// OperationType type de mutation journalisée
type OperationType string

const (
	OperationInsert OperationType = "insert"
	OperationUpdate OperationType = "update"
	OperationDelete OperationType = "delete"
)

// Entry une mutation validée
type Entry struct {
	OperationID string         `bson:"operation_id" json:"operation_id"`
	Type        OperationType  `bson:"type" json:"type"`
	Table       string         `bson:"table" json:"table"`
	RecorderID  int64          `bson:"recorder_id" json:"recorder_id"`
	AffectedIDs []int64        `bson:"affected_ids" json:"affected_ids"`
	Details     map[string]any `bson:"details,omitempty" json:"details,omitempty"`
	RecordedAt  time.Time      `bson:"recorded_at" json:"recorded_at"`
}

// Journal reçoit les mutations après commit. Les échecs sont journalisés par
// l'implémentation et ne remontent jamais à l'appelant.
type Journal interface {
	Record(ctx context.Context, entry Entry)
}

// NopJournal ignore toutes les entrées
type NopJournal struct{}

func (NopJournal) Record(context.Context, Entry) {}
