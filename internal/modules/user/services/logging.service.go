package services

import (
	"context"
	"fmt"
	"strings"

	"habilitations-core/internal/app/config"
	"habilitations-core/internal/infrastructure/database/postgres"
	"habilitations-core/internal/modules/user/dto"
	"habilitations-core/internal/modules/user/queries"

	"github.com/jackc/pgx/v5"
)

// LoggingService recherche dans l'historique des connexions
type LoggingService struct {
	db              postgres.DB
	superAdminLogin string
}

func NewLoggingService(db postgres.DB, superAdmin *config.SuperAdminConfig) *LoggingService {
	return &LoggingService{db: db, superAdminLogin: superAdmin.Login}
}

// Search sans aucun critère retourne une liste vide sans interroger la base
func (s *LoggingService) Search(ctx context.Context, req dto.LoggingSearchRequest) ([]dto.Logging, error) {
	if req.Empty() {
		return []dto.Logging{}, nil
	}

	query, args := buildLoggingSearch(req, s.superAdminLogin)
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("recherche des connexions: %w", err)
	}

	loggings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (dto.Logging, error) {
		var l dto.Logging
		err := row.Scan(&l.LoggingID, &l.UserID, &l.DebutLogging, &l.LastActivTime, &l.IsCurr,
			&l.Login, &l.Nom, &l.Prenom)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("lecture des connexions: %w", err)
	}
	if loggings == nil {
		loggings = []dto.Logging{}
	}
	return loggings, nil
}

// buildLoggingSearch une connexion est retenue si sa période recoupe l'intervalle demandé
func buildLoggingSearch(req dto.LoggingSearchRequest, superAdminLogin string) (string, []any) {
	var sb strings.Builder
	sb.WriteString(queries.LoggingSearchBase)

	args := []any{superAdminLogin}
	param := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	switch {
	case req.DateDebut != nil && req.DateFin != nil:
		from, to := param(req.DateDebut.Time), param(req.DateFin.Time)
		fmt.Fprintf(&sb, `
		AND ((l.debut_logging BETWEEN %[1]s AND %[2]s)
			OR (l.last_activ_time BETWEEN %[1]s AND %[2]s)
			OR (l.debut_logging <= %[1]s AND l.last_activ_time >= %[2]s))`, from, to)
	case req.DateDebut != nil:
		from := param(req.DateDebut.Time)
		fmt.Fprintf(&sb, `
		AND (l.last_activ_time >= %[1]s OR l.debut_logging >= %[1]s)`, from)
	case req.DateFin != nil:
		to := param(req.DateFin.Time)
		fmt.Fprintf(&sb, `
		AND (l.debut_logging <= %[1]s OR l.last_activ_time <= %[1]s)`, to)
	}

	if req.SearchValue != nil {
		if search := strings.TrimSpace(*req.SearchValue); search != "" {
			p := param("%" + escapeLike(strings.ToUpper(search)) + "%")
			fmt.Fprintf(&sb, `
		AND (UPPER(u.login) LIKE %[1]s
			OR UPPER(CONCAT_WS(' ', u.nom, u.prenom)) LIKE %[1]s
			OR UPPER(u.nom) LIKE %[1]s
			OR UPPER(COALESCE(u.prenom, '')) LIKE %[1]s)`, p)
		}
	}

	sb.WriteString(queries.LoggingSearchOrder)
	return sb.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
