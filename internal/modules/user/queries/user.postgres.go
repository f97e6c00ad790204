package queries

const userColumns = `user_id, login, nom, prenom, genre, email, tel, is_active, is_delete,
	create_date, createur_id, mod_date, modifieur_id`

var UserQueries = struct {
	ListManaged        string
	GetManagedByID     string
	LockByLogin        string
	LockManaged        string
	LoginTaken         string
	Insert             string
	Reactivate         string
	Update             string
	ChangeStatus       string
	SoftDelete         string
	GetStatus          string
	GetIdentity        string
	FindByLogin        string
	LockUser           string
	CloseCurrentLogins string
	InsertLogging      string
	StampActivity      string
	StampAndClose      string
}{
	/**
	 * Utilisateurs non supprimés, hors super administrateur
	 * Paramètres: $1 = login super administrateur
	 */
	ListManaged: `
		SELECT ` + userColumns + `
		FROM users
		WHERE is_delete = FALSE AND UPPER(login) <> $1
		ORDER BY login
	`,

	/**
	 * Paramètres: $1 = user_id, $2 = login super administrateur
	 */
	GetManagedByID: `
		SELECT ` + userColumns + `
		FROM users
		WHERE user_id = $1 AND is_delete = FALSE AND UPPER(login) <> $2
	`,

	/**
	 * Recherche par login (insensible à la casse) avec verrou
	 * Paramètres: $1 = login normalisé
	 */
	LockByLogin: `
		SELECT user_id, is_delete
		FROM users
		WHERE UPPER(login) = $1
		FOR UPDATE
	`,

	/**
	 * Paramètres: $1 = user_id, $2 = login super administrateur
	 */
	LockManaged: `
		SELECT user_id
		FROM users
		WHERE user_id = $1 AND is_delete = FALSE AND UPPER(login) <> $2
		FOR UPDATE
	`,

	/**
	 * Login déjà porté par un autre utilisateur (supprimé ou non)
	 * Paramètres: $1 = login normalisé, $2 = user_id exclu
	 */
	LoginTaken: `
		SELECT EXISTS(
			SELECT 1 FROM users WHERE UPPER(login) = $1 AND user_id <> $2
		)
	`,

	/**
	 * Paramètres: $1 = login, $2 = nom, $3 = prenom, $4 = genre, $5 = email, $6 = tel,
	 *            $7 = createur_id
	 */
	Insert: `
		INSERT INTO users (login, nom, prenom, genre, email, tel, createur_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING user_id
	`,

	/**
	 * Réactive un utilisateur supprimé avec l'identité saisie
	 * Paramètres: $1 = user_id, $2 = login, $3 = nom, $4 = prenom, $5 = genre,
	 *            $6 = email, $7 = tel, $8 = modifieur_id
	 */
	Reactivate: `
		UPDATE users
		SET is_delete = FALSE, is_active = TRUE,
			login = $2, nom = $3, prenom = $4, genre = $5, email = $6, tel = $7,
			mod_date = NOW(), modifieur_id = $8
		WHERE user_id = $1
	`,

	/**
	 * Paramètres: $1 = user_id, $2 = login, $3 = nom, $4 = prenom, $5 = genre,
	 *            $6 = email, $7 = tel, $8 = modifieur_id
	 */
	Update: `
		UPDATE users
		SET login = $2, nom = $3, prenom = $4, genre = $5, email = $6, tel = $7,
			mod_date = NOW(), modifieur_id = $8
		WHERE user_id = $1
	`,

	/**
	 * Paramètres: $1 = user_id, $2 = is_active, $3 = modifieur_id, $4 = login super administrateur
	 */
	ChangeStatus: `
		UPDATE users
		SET is_active = $2, mod_date = NOW(), modifieur_id = $3
		WHERE user_id = $1 AND is_delete = FALSE AND UPPER(login) <> $4
	`,

	/**
	 * Paramètres: $1 = user_id, $2 = modifieur_id, $3 = login super administrateur
	 */
	SoftDelete: `
		UPDATE users
		SET is_delete = TRUE, mod_date = NOW(), modifieur_id = $2
		WHERE user_id = $1 AND is_delete = FALSE AND UPPER(login) <> $3
	`,

	/**
	 * Paramètres: $1 = user_id
	 */
	GetStatus: `
		SELECT is_active, is_delete FROM users WHERE user_id = $1
	`,

	/**
	 * Paramètres: $1 = user_id
	 */
	GetIdentity: `
		SELECT nom, prenom, genre FROM users WHERE user_id = $1
	`,

	/**
	 * Paramètres: $1 = login normalisé
	 */
	FindByLogin: `
		SELECT user_id, is_active, is_delete FROM users WHERE UPPER(login) = $1
	`,

	/**
	 * Paramètres: $1 = user_id
	 */
	LockUser: `
		SELECT user_id FROM users WHERE user_id = $1 FOR UPDATE
	`,

	/**
	 * Paramètres: $1 = user_id
	 */
	CloseCurrentLogins: `
		UPDATE loggings SET is_curr = FALSE WHERE user_id = $1 AND is_curr = TRUE
	`,

	/**
	 * Paramètres: $1 = user_id
	 */
	InsertLogging: `
		INSERT INTO loggings (user_id, debut_logging, last_activ_time, is_curr)
		VALUES ($1, NOW(), NOW(), TRUE)
		RETURNING logging_id
	`,

	/**
	 * Paramètres: $1 = user_id
	 */
	StampActivity: `
		UPDATE loggings SET last_activ_time = NOW() WHERE user_id = $1 AND is_curr = TRUE
	`,

	/**
	 * Paramètres: $1 = user_id
	 */
	StampAndClose: `
		UPDATE loggings SET last_activ_time = NOW(), is_curr = FALSE WHERE user_id = $1 AND is_curr = TRUE
	`,
}
