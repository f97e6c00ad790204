package mongodb

import (
	"context"
	"time"

	"habilitations-core/internal/shared/audit"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const JournalCollection = "journal_transactions"

// InsertOner est la partie de *mongo.Collection utilisée par le journal
type InsertOner interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// TransactionJournal écrit les mutations validées dans MongoDB
type TransactionJournal struct {
	collection   InsertOner
	writeTimeout time.Duration
	logger       *zap.Logger
}

func NewTransactionJournal(collection InsertOner, logger *zap.Logger) *TransactionJournal {
	return &TransactionJournal{
		collection:   collection,
		writeTimeout: 3 * time.Second,
		logger:       logger,
	}
}

// Record insère l'entrée ; un échec est journalisé sans interrompre la requête
func (j *TransactionJournal) Record(ctx context.Context, entry audit.Entry) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), j.writeTimeout)
	defer cancel()

	if _, err := j.collection.InsertOne(writeCtx, entry); err != nil {
		j.logger.Warn("[JOURNAL] écriture MongoDB échouée",
			zap.String("operation_id", entry.OperationID),
			zap.String("table", entry.Table),
			zap.Error(err),
		)
	}
}

// EnsureJournalIndexes crée les index du journal
func EnsureJournalIndexes(ctx context.Context, client *Client) error {
	return client.CreateIndexes(ctx, JournalCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "operation_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "recorded_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "table", Value: 1}, {Key: "recorder_id", Value: 1}},
		},
	})
}
