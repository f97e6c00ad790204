package queries

var PasswordQueries = struct {
	GetCurrent        string
	GetIsInit         string
	GetExpiryInfo     string
	LockUser          string
	FlipCurrent       string
	InsertCredential  string
	UpdateCurrent     string
	GetHistory        string
	ManagedUserExists string
	GetPassParam      string
	GetAllowPastPass  string
	UpdatePassParam   string
	InsertPassParam   string
}{
	/**
	 * Mot de passe courant
	 * Paramètres: $1 = user_id
	 */
	GetCurrent: `
		SELECT user_pass_id, user_id, pass, is_curr, is_init, create_date
		FROM user_pass
		WHERE user_id = $1 AND is_curr = TRUE
		ORDER BY create_date DESC
		LIMIT 1
	`,

	/**
	 * Paramètres: $1 = user_id
	 */
	GetIsInit: `
		SELECT is_init
		FROM user_pass
		WHERE user_id = $1 AND is_curr = TRUE
		LIMIT 1
	`,

	/**
	 * Date de création du mot de passe courant et durée de validité
	 * Paramètres: $1 = user_id, $2 = durée par défaut (jours)
	 */
	GetExpiryInfo: `
		SELECT up.create_date,
			COALESCE((SELECT pp.pass_expir_day FROM pass_params pp LIMIT 1), $2::int)::int AS pass_expir_day
		FROM user_pass up
		WHERE up.user_id = $1 AND up.is_curr = TRUE
		ORDER BY up.create_date DESC
		LIMIT 1
	`,

	/**
	 * Verrou de l'utilisateur pour sérialiser les bascules de mot de passe
	 * Paramètres: $1 = user_id
	 */
	LockUser: `
		SELECT user_id FROM users WHERE user_id = $1 FOR UPDATE
	`,

	/**
	 * Paramètres: $1 = user_id, $2 = modifieur_id
	 */
	FlipCurrent: `
		UPDATE user_pass
		SET is_curr = FALSE, mod_date = NOW(), modifieur_id = $2
		WHERE user_id = $1 AND is_curr = TRUE
	`,

	/**
	 * Paramètres: $1 = user_id, $2 = pass (hash), $3 = is_init, $4 = createur_id
	 */
	InsertCredential: `
		INSERT INTO user_pass (user_id, pass, is_curr, is_init, createur_id)
		VALUES ($1, $2, TRUE, $3, $4)
		RETURNING user_pass_id
	`,

	/**
	 * Remplace le mot de passe courant sans créer d'historique
	 * Paramètres: $1 = user_id, $2 = pass (hash)
	 */
	UpdateCurrent: `
		UPDATE user_pass
		SET pass = $2, is_init = FALSE, mod_date = NOW(), modifieur_id = $1
		WHERE user_id = $1 AND is_curr = TRUE
	`,

	/**
	 * Paramètres: $1 = user_id
	 */
	GetHistory: `
		SELECT pass FROM user_pass WHERE user_id = $1 ORDER BY create_date DESC
	`,

	/**
	 * Utilisateur gérable (non supprimé, hors super administrateur)
	 * Paramètres: $1 = user_id, $2 = login super administrateur
	 */
	ManagedUserExists: `
		SELECT EXISTS(
			SELECT 1 FROM users
			WHERE user_id = $1 AND is_delete = FALSE AND UPPER(login) <> $2
		)
	`,

	GetPassParam: `
		SELECT pass_param_id, pass_expir_day, allow_past_pass, create_date,
			createur_id, mod_date, modifieur_id
		FROM pass_params
		LIMIT 1
	`,

	GetAllowPastPass: `
		SELECT COALESCE((SELECT allow_past_pass FROM pass_params LIMIT 1), FALSE)
	`,

	/**
	 * Paramètres: $1 = pass_expir_day, $2 = allow_past_pass, $3 = modifieur_id
	 */
	UpdatePassParam: `
		UPDATE pass_params
		SET pass_expir_day = $1, allow_past_pass = $2, mod_date = NOW(), modifieur_id = $3
	`,

	/**
	 * Paramètres: $1 = pass_expir_day, $2 = allow_past_pass, $3 = createur_id
	 */
	InsertPassParam: `
		INSERT INTO pass_params (pass_expir_day, allow_past_pass, createur_id)
		VALUES ($1, $2, $3)
	`,
}
