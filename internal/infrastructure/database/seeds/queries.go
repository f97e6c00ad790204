package seeds

var seedQueries = struct {
	Status            string
	LockSuperAdmin    string
	InsertSuperAdmin  string
	ReviveSuperAdmin  string
	InsertPolicy      string
	HasCurrentPass    string
	InsertInitPass    string
	LockProfile       string
	InsertProfile     string
	ReviveProfile     string
	InsertPermissions string
	AssignProfile     string
}{
	/**
	 * État des données initiales
	 * Paramètres: $1 = login super administrateur, $2 = libellé du profil réservé
	 */
	Status: `
		WITH sa AS (
			SELECT user_id FROM users WHERE UPPER(login) = $1 AND is_delete = FALSE AND is_active = TRUE
		), sp AS (
			SELECT profil_id FROM profils WHERE UPPER(profil_lib) = $2 AND is_delete = FALSE
		)
		SELECT
			EXISTS (SELECT 1 FROM sa),
			EXISTS (SELECT 1 FROM pass_params),
			EXISTS (SELECT 1 FROM user_pass up JOIN sa ON sa.user_id = up.user_id WHERE up.is_curr),
			EXISTS (SELECT 1 FROM sp),
			EXISTS (SELECT 1 FROM user_profils upr JOIN sa ON sa.user_id = upr.user_id JOIN sp ON sp.profil_id = upr.profil_id)
	`,

	/**
	 * Paramètres: $1 = login
	 */
	LockSuperAdmin: `
		SELECT user_id, is_active, is_delete FROM users WHERE UPPER(login) = $1 FOR UPDATE
	`,

	/**
	 * Paramètres: $1 = login, $2 = nom, $3 = prénom, $4 = genre, $5 = email, $6 = tel
	 */
	InsertSuperAdmin: `
		INSERT INTO users (login, nom, prenom, genre, email, tel)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING user_id
	`,

	/**
	 * Paramètres: $1 = user_id
	 */
	ReviveSuperAdmin: `
		UPDATE users SET is_active = TRUE, is_delete = FALSE, mod_date = NOW() WHERE user_id = $1
	`,

	/**
	 * Paramétrage par défaut, seulement s'il n'existe pas
	 * Paramètres: $1 = durée de validité (jours)
	 */
	InsertPolicy: `
		INSERT INTO pass_params (pass_expir_day, allow_past_pass)
		SELECT $1, FALSE
		WHERE NOT EXISTS (SELECT 1 FROM pass_params)
	`,

	/**
	 * Paramètres: $1 = user_id
	 */
	HasCurrentPass: `
		SELECT EXISTS (SELECT 1 FROM user_pass WHERE user_id = $1 AND is_curr = TRUE)
	`,

	/**
	 * Paramètres: $1 = user_id, $2 = mot de passe haché
	 */
	InsertInitPass: `
		INSERT INTO user_pass (user_id, pass, is_curr, is_init, createur_id)
		VALUES ($1, $2, TRUE, TRUE, $1)
	`,

	/**
	 * Paramètres: $1 = libellé
	 */
	LockProfile: `
		SELECT profil_id, is_delete FROM profils WHERE UPPER(profil_lib) = $1 FOR UPDATE
	`,

	/**
	 * Paramètres: $1 = libellé, $2 = createur_id
	 */
	InsertProfile: `
		INSERT INTO profils (profil_lib, createur_id) VALUES ($1, $2) RETURNING profil_id
	`,

	/**
	 * Paramètres: $1 = profil_id
	 */
	ReviveProfile: `
		UPDATE profils SET is_delete = FALSE, mod_date = NOW() WHERE profil_id = $1
	`,

	/**
	 * Complète les permissions sans retirer celles ajoutées depuis
	 * Paramètres: $1 = profil_id, $2 = permissions (text[])
	 */
	InsertPermissions: `
		INSERT INTO profil_permissions (profil_id, permission)
		SELECT $1, perm FROM UNNEST($2::text[]) AS perm
		ON CONFLICT (profil_id, permission) DO NOTHING
	`,

	/**
	 * Paramètres: $1 = user_id, $2 = profil_id
	 */
	AssignProfile: `
		INSERT INTO user_profils (user_id, profil_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, profil_id) DO NOTHING
	`,
}
