package mongodb

import (
	"context"
	"time"

	"habilitations-core/internal/shared/audit"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewMongoClient retourne nil quand MongoDB n'est pas configuré ou injoignable :
// le journal devient alors inerte et l'application démarre quand même.
func NewMongoClient(config *MongoConfig, logger *zap.Logger) *Client {
	if !config.Enabled() {
		logger.Info("[MONGODB] MONGODB_URI vide - journal des transactions désactivé")
		return nil
	}

	client, err := NewClient(config)
	if err != nil {
		logger.Warn("[MONGODB] MongoDB non disponible - continuera sans journal", zap.Error(err))
		return nil
	}

	logger.Info("[MONGODB] MongoDB connecté", zap.String("database", config.Database))
	return client
}

// NewJournal fournit le journal des transactions
func NewJournal(client *Client, logger *zap.Logger) audit.Journal {
	if client == nil {
		return audit.NopJournal{}
	}
	return NewTransactionJournal(client.Collection(JournalCollection), logger)
}

var Module = fx.Options(
	fx.Provide(NewMongoClient),
	fx.Provide(NewJournal),
	fx.Invoke(RegisterLifecycle),
)

func RegisterLifecycle(lc fx.Lifecycle, client *Client, logger *zap.Logger) {
	if client == nil {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := EnsureJournalIndexes(timeoutCtx, client); err != nil {
				logger.Warn("[MONGODB] création des index du journal échouée", zap.Error(err))
			}
			return nil // Ne bloque pas le démarrage
		},
		OnStop: func(ctx context.Context) error {
			return client.Close(ctx)
		},
	})
}
