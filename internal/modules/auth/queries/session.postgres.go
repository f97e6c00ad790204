package queries

// SessionQueries sessions serveur (table user_sessions), source de vérité du cache Redis
var SessionQueries = struct {
	CreateSession        string
	GetSession           string
	RefreshSession       string
	DeleteSession        string
	CleanExpiredSessions string
}{
	/**
	 * Paramètres: $1 = session_id, $2 = user_id, $3 = ip, $4 = user agent,
	 * $5 = created_at, $6 = last_activity, $7 = expires_at
	 */
	CreateSession: `
		INSERT INTO user_sessions (session_id, user_id, ip_address, user_agent, created_at, last_activity, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,

	/**
	 * Session non expirée
	 * Paramètres: $1 = session_id
	 */
	GetSession: `
		SELECT user_id, COALESCE(ip_address, ''), COALESCE(user_agent, ''), created_at, last_activity, expires_at
		FROM user_sessions
		WHERE session_id = $1 AND expires_at > NOW()
	`,

	/**
	 * Prolonge une session encore valide ; aucune ligne si elle a expiré ou été détruite
	 * Paramètres: $1 = session_id, $2 = last_activity, $3 = expires_at
	 */
	RefreshSession: `
		UPDATE user_sessions
		SET last_activity = $2, expires_at = $3
		WHERE session_id = $1 AND expires_at > NOW()
		RETURNING user_id, COALESCE(ip_address, ''), COALESCE(user_agent, ''), created_at
	`,

	/**
	 * Paramètres: $1 = session_id
	 */
	DeleteSession: `
		DELETE FROM user_sessions WHERE session_id = $1
	`,

	CleanExpiredSessions: `
		DELETE FROM user_sessions WHERE expires_at <= NOW()
	`,
}
