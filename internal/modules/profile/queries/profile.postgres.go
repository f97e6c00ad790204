package queries

const profilColumns = `p.profil_id, p.profil_lib, p.is_delete, p.create_date, p.createur_id, p.mod_date, p.modifieur_id`

var ProfileQueries = struct {
	ListManaged          string
	GetManagedByID       string
	LockByLib            string
	LockManaged          string
	LibTaken             string
	Insert               string
	Reactivate           string
	Update               string
	SoftDelete           string
	PermissionsOfProfil  string
	PermissionsByProfil  string
	DeletePermissions    string
	InsertPermissions    string
	LockUser             string
	ProfilsOfUser        string
	ProfilsByUser        string
	CountManagedProfils  string
	DeleteUserProfils    string
	InsertUserProfils    string
	EffectivePermissions string
}{
	/**
	 * Profils non supprimés, hors profil super administrateur
	 * Paramètres: $1 = libellé super administrateur
	 */
	ListManaged: `
		SELECT ` + profilColumns + `
		FROM profils p
		WHERE p.is_delete = FALSE AND UPPER(p.profil_lib) <> $1
		ORDER BY p.profil_lib
	`,

	/**
	 * Paramètres: $1 = profil_id, $2 = libellé super administrateur
	 */
	GetManagedByID: `
		SELECT ` + profilColumns + `
		FROM profils p
		WHERE p.profil_id = $1 AND p.is_delete = FALSE AND UPPER(p.profil_lib) <> $2
	`,

	/**
	 * Profil portant ce libellé, supprimé ou non
	 * Paramètres: $1 = libellé normalisé
	 */
	LockByLib: `
		SELECT profil_id, is_delete FROM profils WHERE UPPER(profil_lib) = $1 FOR UPDATE
	`,

	/**
	 * Paramètres: $1 = profil_id, $2 = libellé super administrateur
	 */
	LockManaged: `
		SELECT profil_id FROM profils
		WHERE profil_id = $1 AND is_delete = FALSE AND UPPER(profil_lib) <> $2
		FOR UPDATE
	`,

	/**
	 * Libellé déjà porté par un autre profil
	 * Paramètres: $1 = libellé normalisé, $2 = profil_id exclu
	 */
	LibTaken: `
		SELECT EXISTS (SELECT 1 FROM profils WHERE UPPER(profil_lib) = $1 AND profil_id <> $2)
	`,

	/**
	 * Paramètres: $1 = libellé, $2 = createur_id
	 */
	Insert: `
		INSERT INTO profils (profil_lib, createur_id) VALUES ($1, $2) RETURNING profil_id
	`,

	/**
	 * Paramètres: $1 = profil_id, $2 = libellé, $3 = modifieur_id
	 */
	Reactivate: `
		UPDATE profils
		SET profil_lib = $2, is_delete = FALSE, mod_date = NOW(), modifieur_id = $3
		WHERE profil_id = $1
	`,

	/**
	 * Paramètres: $1 = profil_id, $2 = libellé, $3 = modifieur_id
	 */
	Update: `
		UPDATE profils
		SET profil_lib = $2, mod_date = NOW(), modifieur_id = $3
		WHERE profil_id = $1
	`,

	/**
	 * Les permissions et affectations restent en place
	 * Paramètres: $1 = profil_id, $2 = modifieur_id, $3 = libellé super administrateur
	 */
	SoftDelete: `
		UPDATE profils
		SET is_delete = TRUE, mod_date = NOW(), modifieur_id = $2
		WHERE profil_id = $1 AND is_delete = FALSE AND UPPER(profil_lib) <> $3
	`,

	/**
	 * Paramètres: $1 = profil_id
	 */
	PermissionsOfProfil: `
		SELECT permission FROM profil_permissions WHERE profil_id = $1 ORDER BY permission
	`,

	/**
	 * Permissions de tous les profils gérés
	 * Paramètres: $1 = libellé super administrateur
	 */
	PermissionsByProfil: `
		SELECT pp.profil_id, pp.permission
		FROM profil_permissions pp
		JOIN profils p ON p.profil_id = pp.profil_id
		WHERE p.is_delete = FALSE AND UPPER(p.profil_lib) <> $1
		ORDER BY pp.profil_id, pp.permission
	`,

	/**
	 * Paramètres: $1 = profil_id
	 */
	DeletePermissions: `
		DELETE FROM profil_permissions WHERE profil_id = $1
	`,

	/**
	 * Insertion groupée
	 * Paramètres: $1 = profil_id, $2 = permissions (text[])
	 */
	InsertPermissions: `
		INSERT INTO profil_permissions (profil_id, permission)
		SELECT $1, perm FROM UNNEST($2::text[]) AS perm
	`,

	/**
	 * Paramètres: $1 = user_id, $2 = login super administrateur
	 */
	LockUser: `
		SELECT user_id FROM users
		WHERE user_id = $1 AND is_delete = FALSE AND UPPER(login) <> $2
		FOR UPDATE
	`,

	/**
	 * Profils actifs d'un utilisateur
	 * Paramètres: $1 = user_id, $2 = libellé super administrateur
	 */
	ProfilsOfUser: `
		SELECT ` + profilColumns + `
		FROM user_profils up
		JOIN profils p ON p.profil_id = up.profil_id
		WHERE up.user_id = $1 AND p.is_delete = FALSE AND UPPER(p.profil_lib) <> $2
		ORDER BY p.profil_lib
	`,

	/**
	 * Profils actifs de tous les utilisateurs
	 * Paramètres: $1 = libellé super administrateur
	 */
	ProfilsByUser: `
		SELECT up.user_id, ` + profilColumns + `
		FROM user_profils up
		JOIN profils p ON p.profil_id = up.profil_id
		WHERE p.is_delete = FALSE AND UPPER(p.profil_lib) <> $1
		ORDER BY up.user_id, p.profil_lib
	`,

	/**
	 * Nombre de profils gérés parmi les identifiants fournis
	 * Paramètres: $1 = profil_ids (bigint[]), $2 = libellé super administrateur
	 */
	CountManagedProfils: `
		SELECT COUNT(*) FROM profils
		WHERE profil_id = ANY($1::bigint[]) AND is_delete = FALSE AND UPPER(profil_lib) <> $2
	`,

	/**
	 * Les affectations au profil super administrateur ne sont pas gérées ici
	 * Paramètres: $1 = user_id, $2 = libellé super administrateur
	 */
	DeleteUserProfils: `
		DELETE FROM user_profils up
		USING profils p
		WHERE up.profil_id = p.profil_id AND up.user_id = $1 AND UPPER(p.profil_lib) <> $2
	`,

	/**
	 * Paramètres: $1 = user_id, $2 = profil_ids (bigint[])
	 */
	InsertUserProfils: `
		INSERT INTO user_profils (user_id, profil_id)
		SELECT $1, pid FROM UNNEST($2::bigint[]) AS pid
	`,

	/**
	 * Permissions effectives : union dédoublonnée sur les profils non supprimés.
	 * Le profil super administrateur y participe.
	 * Paramètres: $1 = user_id
	 */
	EffectivePermissions: `
		SELECT DISTINCT pp.permission
		FROM user_profils up
		JOIN profils p ON p.profil_id = up.profil_id AND p.is_delete = FALSE
		JOIN profil_permissions pp ON pp.profil_id = p.profil_id
		WHERE up.user_id = $1
		ORDER BY pp.permission
	`,
}
