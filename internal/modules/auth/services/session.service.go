package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"habilitations-core/internal/app/config"
	"habilitations-core/internal/infrastructure/database/postgres"
	redisInfra "habilitations-core/internal/infrastructure/database/redis"
	"habilitations-core/internal/modules/auth/queries"
	"habilitations-core/internal/shared/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionKeyPattern = "auth_session"

// SessionService stockage des sessions : PostgreSQL fait foi, Redis sert de cache.
// Une panne Redis dégrade les performances sans invalider les sessions.
type SessionService struct {
	db          postgres.DB
	redisClient *redisInfra.Client
	maxAge      time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

func NewSessionService(
	db postgres.DB,
	redisClient *redisInfra.Client,
	sessionConfig *config.SessionConfig,
	logger *zap.Logger,
) *SessionService {
	maxAge := sessionConfig.MaxAge
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &SessionService{
		db:          db,
		redisClient: redisClient,
		maxAge:      maxAge,
		logger:      logger,
		now:         time.Now,
	}
}

// Create ouvre une session avec un identifiant neuf
func (s *SessionService) Create(ctx context.Context, userID int64, ipAddress, userAgent string) (*session.Session, error) {
	now := s.now().UTC()
	sess := &session.Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
		CreatedAt:    now,
		LastActivity: now,
		ExpiresAt:    now.Add(s.maxAge),
	}

	if _, err := s.db.Exec(ctx, queries.SessionQueries.CreateSession,
		sess.ID, sess.UserID, sess.IPAddress, sess.UserAgent, sess.CreatedAt, sess.LastActivity, sess.ExpiresAt,
	); err != nil {
		return nil, fmt.Errorf("création de session: %w", err)
	}

	s.cache(ctx, sess)
	return sess, nil
}

// Get lit Redis puis PostgreSQL ; session.ErrNotFound si absente ou expirée
func (s *SessionService) Get(ctx context.Context, sessionID string) (*session.Session, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, session.ErrNotFound
	}

	if sess, ok := s.fromCache(ctx, sessionID); ok {
		return sess, nil
	}

	sess := &session.Session{ID: sessionID}
	err := s.db.QueryRow(ctx, queries.SessionQueries.GetSession, sessionID).Scan(
		&sess.UserID, &sess.IPAddress, &sess.UserAgent, &sess.CreatedAt, &sess.LastActivity, &sess.ExpiresAt,
	)
	if postgres.IsNoRows(err) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture de session: %w", err)
	}

	// Resynchronisation du cache
	s.cache(ctx, sess)
	return sess, nil
}

// Refresh prolonge une session encore valide (expiration glissante)
func (s *SessionService) Refresh(ctx context.Context, sessionID string) error {
	now := s.now().UTC()
	sess := &session.Session{ID: sessionID, LastActivity: now, ExpiresAt: now.Add(s.maxAge)}

	err := s.db.QueryRow(ctx, queries.SessionQueries.RefreshSession, sessionID, sess.LastActivity, sess.ExpiresAt).Scan(
		&sess.UserID, &sess.IPAddress, &sess.UserAgent, &sess.CreatedAt,
	)
	if postgres.IsNoRows(err) {
		return session.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("prolongation de session: %w", err)
	}

	s.cache(ctx, sess)
	return nil
}

// Delete idempotent
func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	if key, err := s.redisClient.Key(sessionKeyPattern, sessionID); err == nil {
		if err := s.redisClient.Del(ctx, key); err != nil {
			s.logger.Warn("[SESSION] suppression Redis échouée", zap.String("session_id", sessionID), zap.Error(err))
		}
	}

	if _, err := uuid.Parse(sessionID); err != nil {
		return nil
	}
	if _, err := s.db.Exec(ctx, queries.SessionQueries.DeleteSession, sessionID); err != nil {
		return fmt.Errorf("suppression de session: %w", err)
	}
	return nil
}

// CleanExpired purge les sessions expirées de PostgreSQL ; Redis expire seul
func (s *SessionService) CleanExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, queries.SessionQueries.CleanExpiredSessions)
	if err != nil {
		return 0, fmt.Errorf("purge des sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *SessionService) cache(ctx context.Context, sess *session.Session) {
	key, err := s.redisClient.Key(sessionKeyPattern, sess.ID)
	if err != nil {
		s.logger.Warn("[SESSION] clé Redis invalide", zap.String("session_id", sess.ID), zap.Error(err))
		return
	}

	pipe := s.redisClient.Client().TxPipeline()
	pipe.HSet(ctx, key, toHash(sess))
	pipe.ExpireAt(ctx, key, sess.ExpiresAt)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warn("[SESSION] écriture Redis échouée", zap.String("session_id", sess.ID), zap.Error(err))
	}
}

func (s *SessionService) fromCache(ctx context.Context, sessionID string) (*session.Session, bool) {
	key, err := s.redisClient.Key(sessionKeyPattern, sessionID)
	if err != nil {
		return nil, false
	}

	data, err := s.redisClient.Client().HGetAll(ctx, key).Result()
	if err != nil {
		s.logger.Warn("[SESSION] lecture Redis échouée, repli PostgreSQL", zap.Error(err))
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	sess, err := fromHash(sessionID, data)
	if err != nil {
		s.logger.Warn("[SESSION] session Redis illisible", zap.String("session_id", sessionID), zap.Error(err))
		return nil, false
	}
	if sess.Expired(s.now()) {
		return nil, false
	}
	return sess, true
}

func toHash(sess *session.Session) map[string]any {
	return map[string]any{
		"user_id":       strconv.FormatInt(sess.UserID, 10),
		"ip_address":    sess.IPAddress,
		"user_agent":    sess.UserAgent,
		"created_at":    sess.CreatedAt.Format(time.RFC3339Nano),
		"last_activity": sess.LastActivity.Format(time.RFC3339Nano),
		"expires_at":    sess.ExpiresAt.Format(time.RFC3339Nano),
	}
}

func fromHash(sessionID string, data map[string]string) (*session.Session, error) {
	userID, err := strconv.ParseInt(data["user_id"], 10, 64)
	if err != nil || userID <= 0 {
		return nil, errors.New("user_id invalide")
	}

	sess := &session.Session{
		ID:        sessionID,
		UserID:    userID,
		IPAddress: data["ip_address"],
		UserAgent: data["user_agent"],
	}
	for field, dest := range map[string]*time.Time{
		"created_at":    &sess.CreatedAt,
		"last_activity": &sess.LastActivity,
		"expires_at":    &sess.ExpiresAt,
	} {
		t, err := time.Parse(time.RFC3339Nano, data[field])
		if err != nil {
			return nil, fmt.Errorf("%s invalide: %w", field, err)
		}
		*dest = t
	}
	return sess, nil
}
