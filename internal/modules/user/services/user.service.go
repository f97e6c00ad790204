package services

import (
	"context"
	"fmt"
	"strings"

	"habilitations-core/internal/app/config"
	"habilitations-core/internal/infrastructure/database/postgres"
	pwdServices "habilitations-core/internal/modules/password/services"
	profileDto "habilitations-core/internal/modules/profile/dto"
	profileServices "habilitations-core/internal/modules/profile/services"
	"habilitations-core/internal/modules/user/dto"
	"habilitations-core/internal/modules/user/queries"
	"habilitations-core/internal/shared/apperrors"
	"habilitations-core/internal/shared/audit"
	"habilitations-core/internal/shared/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	MsgUserExists   = "Cet utilisateur existe déjà"
	MsgUserNotFound = "Utilisateur introuvable"
)

// UserService annuaire des utilisateurs.
// Le super administrateur n'existe pas pour les opérations de gestion.
type UserService struct {
	db              postgres.DB
	txManager       *postgres.TransactionManager
	credentials     *pwdServices.CredentialService
	profiles        *profileServices.ProfileService
	hasher          *utils.Hasher
	superAdminLogin string
	logger          *zap.Logger
}

func NewUserService(
	db postgres.DB,
	txManager *postgres.TransactionManager,
	credentials *pwdServices.CredentialService,
	profiles *profileServices.ProfileService,
	hasher *utils.Hasher,
	superAdmin *config.SuperAdminConfig,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		db:              db,
		txManager:       txManager,
		credentials:     credentials,
		profiles:        profiles,
		hasher:          hasher,
		superAdminLogin: superAdmin.Login,
		logger:          logger,
	}
}

// Create insère l'utilisateur et son mot de passe initial dans une même transaction.
// Un utilisateur supprimé portant le même login est réactivé.
func (s *UserService) Create(ctx context.Context, req dto.CreateUserRequest, actorID int64) (*dto.CreateResult, error) {
	data := normalizeUserData(req.UserData)
	if err := requireIdentity(data, "userData."); err != nil {
		return nil, err
	}
	pass := strings.TrimSpace(req.Pass)
	if pass == "" {
		return nil, apperrors.Required("pass")
	}
	if data.Login == s.superAdminLogin {
		return nil, apperrors.Conflict(MsgUserExists)
	}

	hashed, err := s.hasher.Hash(ctx, pass)
	if err != nil {
		return nil, err
	}

	result := &dto.CreateResult{}
	entry := &audit.Entry{Type: audit.OperationInsert, Table: "users", RecorderID: actorID}

	err = s.txManager.WithJournaledTransaction(ctx, entry, func(tx pgx.Tx) error {
		var existingID int64
		var isDelete bool
		err := tx.QueryRow(ctx, queries.UserQueries.LockByLogin, data.Login).Scan(&existingID, &isDelete)

		switch {
		case postgres.IsNoRows(err):
			err = tx.QueryRow(ctx, queries.UserQueries.Insert,
				data.Login, data.Nom, data.Prenom, data.Genre, data.Email, data.Tel, actorID,
			).Scan(&result.UserID)
			if postgres.IsUniqueViolation(err) {
				return apperrors.Conflict(MsgUserExists)
			}
			if err != nil {
				return fmt.Errorf("insertion utilisateur: %w", err)
			}
		case err != nil:
			return fmt.Errorf("recherche du login: %w", err)
		case !isDelete:
			return apperrors.Conflict(MsgUserExists)
		default:
			if _, err := tx.Exec(ctx, queries.UserQueries.Reactivate,
				existingID, data.Login, data.Nom, data.Prenom, data.Genre, data.Email, data.Tel, actorID,
			); err != nil {
				return fmt.Errorf("réactivation utilisateur %d: %w", existingID, err)
			}
			result.UserID = existingID
			result.Reactivated = true
			entry.Type = audit.OperationUpdate
		}

		entry.AffectedIDs = []int64{result.UserID}
		_, err = s.credentials.CreateTx(ctx, tx, result.UserID, hashed, true, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Update modifie l'identité ; le login reste unique (hors utilisateur lui-même)
func (s *UserService) Update(ctx context.Context, req dto.UpdateUserRequest, actorID int64) error {
	data := normalizeUserData(dto.UserData{
		Login: req.Login, Nom: req.Nom, Prenom: req.Prenom, Genre: req.Genre, Email: req.Email, Tel: req.Tel,
	})
	if err := requireIdentity(data, ""); err != nil {
		return err
	}
	if data.Login == s.superAdminLogin {
		return apperrors.Conflict(MsgUserExists)
	}

	entry := &audit.Entry{
		Type:        audit.OperationUpdate,
		Table:       "users",
		RecorderID:  actorID,
		AffectedIDs: []int64{req.UserID},
	}

	return s.txManager.WithJournaledTransaction(ctx, entry, func(tx pgx.Tx) error {
		if err := s.lockManaged(ctx, tx, req.UserID); err != nil {
			return err
		}

		var taken bool
		if err := tx.QueryRow(ctx, queries.UserQueries.LoginTaken, data.Login, req.UserID).Scan(&taken); err != nil {
			return fmt.Errorf("vérification du login: %w", err)
		}
		if taken {
			return apperrors.Conflict(MsgUserExists)
		}

		_, err := tx.Exec(ctx, queries.UserQueries.Update,
			req.UserID, data.Login, data.Nom, data.Prenom, data.Genre, data.Email, data.Tel, actorID,
		)
		if postgres.IsUniqueViolation(err) {
			return apperrors.Conflict(MsgUserExists)
		}
		if err != nil {
			return fmt.Errorf("mise à jour utilisateur %d: %w", req.UserID, err)
		}
		return nil
	})
}

// ChangeStatus active ou désactive un compte, indépendamment de is_delete
func (s *UserService) ChangeStatus(ctx context.Context, userID int64, isActive bool, actorID int64) error {
	return s.execManaged(ctx, "changement de statut", queries.UserQueries.ChangeStatus,
		actorID, userID, userID, isActive, actorID, s.superAdminLogin)
}

// SoftDelete marque l'utilisateur supprimé ; mots de passe, connexions et profils restent en place
func (s *UserService) SoftDelete(ctx context.Context, userID int64, actorID int64) error {
	return s.execManaged(ctx, "suppression", queries.UserQueries.SoftDelete,
		actorID, userID, userID, actorID, s.superAdminLogin)
}

func (s *UserService) execManaged(ctx context.Context, action, query string, actorID, userID int64, args ...any) error {
	entry := &audit.Entry{
		Type:        audit.OperationUpdate,
		Table:       "users",
		RecorderID:  actorID,
		AffectedIDs: []int64{userID},
		Details:     map[string]any{"action": action},
	}

	return s.txManager.WithJournaledTransaction(ctx, entry, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%s utilisateur %d: %w", action, userID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NotFound(MsgUserNotFound)
		}
		return nil
	})
}

func (s *UserService) lockManaged(ctx context.Context, q postgres.Querier, userID int64) error {
	var id int64
	err := q.QueryRow(ctx, queries.UserQueries.LockManaged, userID, s.superAdminLogin).Scan(&id)
	if postgres.IsNoRows(err) {
		return apperrors.NotFound(MsgUserNotFound)
	}
	if err != nil {
		return fmt.Errorf("verrouillage utilisateur %d: %w", userID, err)
	}
	return nil
}

func (s *UserService) List(ctx context.Context) ([]dto.User, error) {
	rows, err := s.db.Query(ctx, queries.UserQueries.ListManaged, s.superAdminLogin)
	if err != nil {
		return nil, fmt.Errorf("liste des utilisateurs: %w", err)
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (dto.User, error) {
		return scanUser(row)
	})
	if err != nil {
		return nil, fmt.Errorf("liste des utilisateurs: %w", err)
	}
	return users, nil
}

// ListWithProfiles associe à chaque utilisateur ses profils actifs
func (s *UserService) ListWithProfiles(ctx context.Context) ([]dto.UserWithProfiles, error) {
	users, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	byUser, err := s.profiles.ProfilesByUser(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserWithProfiles, 0, len(users))
	for _, u := range users {
		profiles := byUser[u.UserID]
		if profiles == nil {
			profiles = []profileDto.Profil{}
		}
		out = append(out, dto.UserWithProfiles{User: u, Profiles: profiles})
	}
	return out, nil
}

func (s *UserService) GetByID(ctx context.Context, userID int64) (*dto.User, error) {
	user, err := scanUser(s.db.QueryRow(ctx, queries.UserQueries.GetManagedByID, userID, s.superAdminLogin))
	if postgres.IsNoRows(err) {
		return nil, apperrors.NotFound(MsgUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lecture utilisateur %d: %w", userID, err)
	}
	return &user, nil
}

// GetStatus retourne nil si l'utilisateur n'existe pas
func (s *UserService) GetStatus(ctx context.Context, userID int64) (*dto.UserStatus, error) {
	var st dto.UserStatus
	err := s.db.QueryRow(ctx, queries.UserQueries.GetStatus, userID).Scan(&st.IsActive, &st.IsDelete)
	if postgres.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("statut utilisateur %d: %w", userID, err)
	}
	return &st, nil
}

// GetIdentity retourne nil si l'utilisateur n'existe pas
func (s *UserService) GetIdentity(ctx context.Context, userID int64) (*dto.Identity, error) {
	var id dto.Identity
	err := s.db.QueryRow(ctx, queries.UserQueries.GetIdentity, userID).Scan(&id.Nom, &id.Prenom, &id.Genre)
	if postgres.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("identité utilisateur %d: %w", userID, err)
	}
	return &id, nil
}

// FindByLogin retourne nil si aucun utilisateur ne porte ce login
func (s *UserService) FindByLogin(ctx context.Context, login string) (*dto.LoginCandidate, error) {
	var c dto.LoginCandidate
	err := s.db.QueryRow(ctx, queries.UserQueries.FindByLogin, utils.NormalizeKey(login)).Scan(&c.UserID, &c.IsActive, &c.IsDelete)
	if postgres.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("recherche du login: %w", err)
	}
	return &c, nil
}

// RecordLogin clôt les connexions courantes puis ouvre la nouvelle, sous verrou utilisateur
func (s *UserService) RecordLogin(ctx context.Context, userID int64) (int64, error) {
	var loggingID int64
	err := s.txManager.WithTransaction(ctx, func(tx pgx.Tx) error {
		var id int64
		if err := tx.QueryRow(ctx, queries.UserQueries.LockUser, userID).Scan(&id); err != nil {
			return fmt.Errorf("verrouillage utilisateur %d: %w", userID, err)
		}
		if _, err := tx.Exec(ctx, queries.UserQueries.CloseCurrentLogins, userID); err != nil {
			return fmt.Errorf("clôture des connexions: %w", err)
		}
		if err := tx.QueryRow(ctx, queries.UserQueries.InsertLogging, userID).Scan(&loggingID); err != nil {
			return fmt.Errorf("insertion de la connexion: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("[AUTH] connexion enregistrée", zap.Int64("user_id", userID), zap.Int64("logging_id", loggingID))
	return loggingID, nil
}

// RecordLatestActivity horodate la connexion courante ; isCurrent=false la clôt (déconnexion)
func (s *UserService) RecordLatestActivity(ctx context.Context, userID int64, isCurrent bool) error {
	query := queries.UserQueries.StampActivity
	if !isCurrent {
		query = queries.UserQueries.StampAndClose
	}
	if _, err := s.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("horodatage de l'activité: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (dto.User, error) {
	var u dto.User
	err := row.Scan(
		&u.UserID, &u.Login, &u.Nom, &u.Prenom, &u.Genre, &u.Email, &u.Tel,
		&u.IsActive, &u.IsDelete, &u.CreateDate, &u.CreateurID, &u.ModDate, &u.ModifieurID,
	)
	return u, err
}

// requireIdentity login et nom ne peuvent être vides une fois normalisés
func requireIdentity(data dto.UserData, prefix string) error {
	if data.Login == "" {
		return apperrors.Required(prefix + "login")
	}
	if data.Nom == "" {
		return apperrors.Required(prefix + "nom")
	}
	return nil
}

func normalizeUserData(data dto.UserData) dto.UserData {
	return dto.UserData{
		Login:  utils.NormalizeKey(data.Login),
		Nom:    strings.TrimSpace(data.Nom),
		Prenom: utils.TrimOptional(data.Prenom),
		Genre:  data.Genre,
		Email:  utils.TrimOptional(data.Email),
		Tel:    utils.TrimOptional(data.Tel),
	}
}
