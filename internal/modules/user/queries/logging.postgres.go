package queries

// Requête de base de la recherche des connexions ; les filtres sont ajoutés par le service
// Paramètres: $1 = login super administrateur
const LoggingSearchBase = `
	SELECT l.logging_id, l.user_id, l.debut_logging, l.last_activ_time, l.is_curr,
		u.login, u.nom, u.prenom
	FROM loggings l
	JOIN users u ON u.user_id = l.user_id
	WHERE u.is_delete = FALSE
		AND UPPER(u.login) <> $1`

const LoggingSearchOrder = `
	ORDER BY l.debut_logging DESC`
