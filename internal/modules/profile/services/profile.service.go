package services

import (
	"context"
	"fmt"
	"slices"

	"habilitations-core/internal/app/config"
	"habilitations-core/internal/infrastructure/database/postgres"
	"habilitations-core/internal/modules/profile/dto"
	"habilitations-core/internal/modules/profile/queries"
	"habilitations-core/internal/shared/apperrors"
	"habilitations-core/internal/shared/audit"
	"habilitations-core/internal/shared/permissions"
	"habilitations-core/internal/shared/utils"

	"github.com/jackc/pgx/v5"
)

const (
	MsgProfilExists   = "Ce profil existe déjà"
	MsgProfilNotFound = "Profil introuvable"
	MsgUserNotFound   = "Utilisateur introuvable"
)

// ProfileService profils, permissions des profils et affectations aux utilisateurs.
// Le profil super administrateur est invisible pour la gestion mais compte
// dans le calcul des permissions effectives.
type ProfileService struct {
	db              postgres.DB
	txManager       *postgres.TransactionManager
	superAdminLib   string
	superAdminLogin string
}

func NewProfileService(db postgres.DB, txManager *postgres.TransactionManager, superAdmin *config.SuperAdminConfig) *ProfileService {
	return &ProfileService{
		db:              db,
		txManager:       txManager,
		superAdminLib:   superAdmin.ProfileLib,
		superAdminLogin: superAdmin.Login,
	}
}

// Create réactive un profil supprimé de même libellé plutôt que d'en insérer un second
func (s *ProfileService) Create(ctx context.Context, label string, actorID int64) (*dto.CreateResult, error) {
	lib := utils.NormalizeKey(label)
	if lib == "" {
		return nil, apperrors.Required("profil_lib")
	}
	if lib == s.superAdminLib {
		return nil, apperrors.Conflict(MsgProfilExists)
	}

	result := &dto.CreateResult{}
	entry := &audit.Entry{Type: audit.OperationInsert, Table: "profils", RecorderID: actorID}

	err := s.txManager.WithJournaledTransaction(ctx, entry, func(tx pgx.Tx) error {
		var existingID int64
		var isDelete bool
		err := tx.QueryRow(ctx, queries.ProfileQueries.LockByLib, lib).Scan(&existingID, &isDelete)

		switch {
		case postgres.IsNoRows(err):
			err = tx.QueryRow(ctx, queries.ProfileQueries.Insert, lib, actorID).Scan(&result.ProfilID)
			if postgres.IsUniqueViolation(err) {
				return apperrors.Conflict(MsgProfilExists)
			}
			if err != nil {
				return fmt.Errorf("insertion profil: %w", err)
			}
		case err != nil:
			return fmt.Errorf("recherche du libellé: %w", err)
		case !isDelete:
			return apperrors.Conflict(MsgProfilExists)
		default:
			if _, err := tx.Exec(ctx, queries.ProfileQueries.Reactivate, existingID, lib, actorID); err != nil {
				return fmt.Errorf("réactivation profil %d: %w", existingID, err)
			}
			result.ProfilID = existingID
			result.Reactivated = true
			entry.Type = audit.OperationUpdate
		}

		entry.AffectedIDs = []int64{result.ProfilID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ProfileService) Update(ctx context.Context, profilID int64, label string, actorID int64) error {
	lib := utils.NormalizeKey(label)
	if lib == "" {
		return apperrors.Required("profil_lib")
	}
	if lib == s.superAdminLib {
		return apperrors.Conflict(MsgProfilExists)
	}

	entry := &audit.Entry{
		Type:        audit.OperationUpdate,
		Table:       "profils",
		RecorderID:  actorID,
		AffectedIDs: []int64{profilID},
	}

	return s.txManager.WithJournaledTransaction(ctx, entry, func(tx pgx.Tx) error {
		if err := s.lockManaged(ctx, tx, profilID); err != nil {
			return err
		}

		var taken bool
		if err := tx.QueryRow(ctx, queries.ProfileQueries.LibTaken, lib, profilID).Scan(&taken); err != nil {
			return fmt.Errorf("vérification du libellé: %w", err)
		}
		if taken {
			return apperrors.Conflict(MsgProfilExists)
		}

		_, err := tx.Exec(ctx, queries.ProfileQueries.Update, profilID, lib, actorID)
		if postgres.IsUniqueViolation(err) {
			return apperrors.Conflict(MsgProfilExists)
		}
		if err != nil {
			return fmt.Errorf("mise à jour profil %d: %w", profilID, err)
		}
		return nil
	})
}

// SoftDelete laisse permissions et affectations en place ; elles redeviennent actives à la réactivation
func (s *ProfileService) SoftDelete(ctx context.Context, profilID int64, actorID int64) error {
	entry := &audit.Entry{
		Type:        audit.OperationUpdate,
		Table:       "profils",
		RecorderID:  actorID,
		AffectedIDs: []int64{profilID},
		Details:     map[string]any{"action": "suppression"},
	}

	return s.txManager.WithJournaledTransaction(ctx, entry, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, queries.ProfileQueries.SoftDelete, profilID, actorID, s.superAdminLib)
		if err != nil {
			return fmt.Errorf("suppression profil %d: %w", profilID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NotFound(MsgProfilNotFound)
		}
		return nil
	})
}

// ReplacePermissions remplace l'ensemble des permissions du profil ; une liste vide les retire toutes
func (s *ProfileService) ReplacePermissions(ctx context.Context, profilID int64, perms []string, actorID int64) error {
	if err := permissions.Validate(perms); err != nil {
		return apperrors.Validation("Données invalides", map[string]string{"permissions": err.Error()})
	}
	perms = dedupe(perms)

	entry := &audit.Entry{
		Type:        audit.OperationUpdate,
		Table:       "profil_permissions",
		RecorderID:  actorID,
		AffectedIDs: []int64{profilID},
		Details:     map[string]any{"permissions": perms},
	}

	return s.txManager.WithJournaledTransaction(ctx, entry, func(tx pgx.Tx) error {
		if err := s.lockManaged(ctx, tx, profilID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, queries.ProfileQueries.DeletePermissions, profilID); err != nil {
			return fmt.Errorf("suppression des permissions du profil %d: %w", profilID, err)
		}
		if len(perms) == 0 {
			return nil
		}
		if _, err := tx.Exec(ctx, queries.ProfileQueries.InsertPermissions, profilID, perms); err != nil {
			return fmt.Errorf("insertion des permissions du profil %d: %w", profilID, err)
		}
		return nil
	})
}

// ReplaceUserProfiles remplace les profils affectés à l'utilisateur
func (s *ProfileService) ReplaceUserProfiles(ctx context.Context, userID int64, profilIDs []int64, actorID int64) error {
	profilIDs = dedupe(profilIDs)

	entry := &audit.Entry{
		Type:        audit.OperationUpdate,
		Table:       "user_profils",
		RecorderID:  actorID,
		AffectedIDs: []int64{userID},
		Details:     map[string]any{"profil_ids": profilIDs},
	}

	return s.txManager.WithJournaledTransaction(ctx, entry, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx, queries.ProfileQueries.LockUser, userID, s.superAdminLogin).Scan(&id)
		if postgres.IsNoRows(err) {
			return apperrors.NotFound(MsgUserNotFound)
		}
		if err != nil {
			return fmt.Errorf("verrouillage utilisateur %d: %w", userID, err)
		}

		if len(profilIDs) > 0 {
			var count int64
			if err := tx.QueryRow(ctx, queries.ProfileQueries.CountManagedProfils, profilIDs, s.superAdminLib).Scan(&count); err != nil {
				return fmt.Errorf("vérification des profils: %w", err)
			}
			if count != int64(len(profilIDs)) {
				return apperrors.NotFound(MsgProfilNotFound)
			}
		}

		if _, err := tx.Exec(ctx, queries.ProfileQueries.DeleteUserProfils, userID, s.superAdminLib); err != nil {
			return fmt.Errorf("suppression des profils de l'utilisateur %d: %w", userID, err)
		}
		if len(profilIDs) == 0 {
			return nil
		}
		if _, err := tx.Exec(ctx, queries.ProfileQueries.InsertUserProfils, userID, profilIDs); err != nil {
			return fmt.Errorf("insertion des profils de l'utilisateur %d: %w", userID, err)
		}
		return nil
	})
}

// EffectivePermissionsForUser source de vérité des autorisations, relue à chaque requête
func (s *ProfileService) EffectivePermissionsForUser(ctx context.Context, userID int64) ([]string, error) {
	perms, err := s.collectStrings(ctx, queries.ProfileQueries.EffectivePermissions, userID)
	if err != nil {
		return nil, fmt.Errorf("permissions effectives de l'utilisateur %d: %w", userID, err)
	}
	return perms, nil
}

func (s *ProfileService) List(ctx context.Context) ([]dto.Profil, error) {
	profils, err := s.collectProfils(ctx, queries.ProfileQueries.ListManaged, s.superAdminLib)
	if err != nil {
		return nil, fmt.Errorf("liste des profils: %w", err)
	}
	return profils, nil
}

func (s *ProfileService) GetByID(ctx context.Context, profilID int64) (*dto.Profil, error) {
	p, err := scanProfil(s.db.QueryRow(ctx, queries.ProfileQueries.GetManagedByID, profilID, s.superAdminLib))
	if postgres.IsNoRows(err) {
		return nil, apperrors.NotFound(MsgProfilNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lecture profil %d: %w", profilID, err)
	}
	return &p, nil
}

func (s *ProfileService) PermissionsOfProfile(ctx context.Context, profilID int64) ([]string, error) {
	if _, err := s.GetByID(ctx, profilID); err != nil {
		return nil, err
	}
	perms, err := s.collectStrings(ctx, queries.ProfileQueries.PermissionsOfProfil, profilID)
	if err != nil {
		return nil, fmt.Errorf("permissions du profil %d: %w", profilID, err)
	}
	return perms, nil
}

func (s *ProfileService) ProfilesOfUser(ctx context.Context, userID int64) ([]dto.Profil, error) {
	profils, err := s.collectProfils(ctx, queries.ProfileQueries.ProfilsOfUser, userID, s.superAdminLib)
	if err != nil {
		return nil, fmt.Errorf("profils de l'utilisateur %d: %w", userID, err)
	}
	return profils, nil
}

// ProfilesByUser profils actifs indexés par utilisateur
func (s *ProfileService) ProfilesByUser(ctx context.Context) (map[int64][]dto.Profil, error) {
	rows, err := s.db.Query(ctx, queries.ProfileQueries.ProfilsByUser, s.superAdminLib)
	if err != nil {
		return nil, fmt.Errorf("profils des utilisateurs: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]dto.Profil)
	for rows.Next() {
		var userID int64
		var p dto.Profil
		if err := rows.Scan(&userID, &p.ProfilID, &p.ProfilLib, &p.IsDelete, &p.CreateDate,
			&p.CreateurID, &p.ModDate, &p.ModifieurID); err != nil {
			return nil, fmt.Errorf("lecture profil utilisateur: %w", err)
		}
		out[userID] = append(out[userID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("profils des utilisateurs: %w", err)
	}
	return out, nil
}

func (s *ProfileService) ListWithPermissions(ctx context.Context) ([]dto.ProfilWithPermissions, error) {
	profils, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, queries.ProfileQueries.PermissionsByProfil, s.superAdminLib)
	if err != nil {
		return nil, fmt.Errorf("permissions des profils: %w", err)
	}
	defer rows.Close()

	byProfil := make(map[int64][]string)
	for rows.Next() {
		var profilID int64
		var perm string
		if err := rows.Scan(&profilID, &perm); err != nil {
			return nil, fmt.Errorf("lecture permission: %w", err)
		}
		byProfil[profilID] = append(byProfil[profilID], perm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("permissions des profils: %w", err)
	}

	out := make([]dto.ProfilWithPermissions, 0, len(profils))
	for _, p := range profils {
		perms := byProfil[p.ProfilID]
		if perms == nil {
			perms = []string{}
		}
		out = append(out, dto.ProfilWithPermissions{Profil: p, Permissions: perms})
	}
	return out, nil
}

func (s *ProfileService) lockManaged(ctx context.Context, q postgres.Querier, profilID int64) error {
	var id int64
	err := q.QueryRow(ctx, queries.ProfileQueries.LockManaged, profilID, s.superAdminLib).Scan(&id)
	if postgres.IsNoRows(err) {
		return apperrors.NotFound(MsgProfilNotFound)
	}
	if err != nil {
		return fmt.Errorf("verrouillage profil %d: %w", profilID, err)
	}
	return nil
}

func (s *ProfileService) collectProfils(ctx context.Context, query string, args ...any) ([]dto.Profil, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	profils, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (dto.Profil, error) {
		return scanProfil(row)
	})
	if err != nil {
		return nil, err
	}
	if profils == nil {
		profils = []dto.Profil{}
	}
	return profils, nil
}

func (s *ProfileService) collectStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

func scanProfil(row pgx.Row) (dto.Profil, error) {
	var p dto.Profil
	err := row.Scan(&p.ProfilID, &p.ProfilLib, &p.IsDelete, &p.CreateDate, &p.CreateurID, &p.ModDate, &p.ModifieurID)
	return p, err
}

// dedupe conserve l'ordre de première apparition
func dedupe[T comparable](values []T) []T {
	out := make([]T, 0, len(values))
	for _, v := range values {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
