package dto

import (
	"time"

	profileDto "habilitations-core/internal/modules/profile/dto"
)

type User struct {
	UserID      int64      `json:"user_id"`
	Login       string     `json:"login"`
	Nom         string     `json:"nom"`
	Prenom      *string    `json:"prenom"`
	Genre       string     `json:"genre"`
	Email       *string    `json:"email"`
	Tel         *string    `json:"tel"`
	IsActive    bool       `json:"is_active"`
	IsDelete    bool       `json:"is_delete"`
	CreateDate  time.Time  `json:"create_date"`
	CreateurID  *int64     `json:"createur_id"`
	ModDate     *time.Time `json:"mod_date"`
	ModifieurID *int64     `json:"modifieur_id"`
}

type UserWithProfiles struct {
	User
	Profiles []profileDto.Profil `json:"profiles"`
}

// UserStatus drapeaux lus à chaque requête authentifiée
type UserStatus struct {
	IsActive bool
	IsDelete bool
}

// Identity données renvoyées dans currentUser
type Identity struct {
	Nom    string
	Prenom *string
	Genre  string
}

// LoginCandidate utilisateur trouvé par son login (y compris supprimé)
type LoginCandidate struct {
	UserID   int64
	IsActive bool
	IsDelete bool
}

// UserData identité saisie à la création
type UserData struct {
	Login  string  `json:"login" validate:"required,notblank,max=50"`
	Nom    string  `json:"nom" validate:"required,notblank,max=100"`
	Prenom *string `json:"prenom" validate:"omitempty,max=150"`
	Genre  string  `json:"genre" validate:"required,oneof=Masculin Féminin"`
	Email  *string `json:"email" validate:"omitempty,max=150"`
	Tel    *string `json:"tel" validate:"omitempty,max=30"`
}

// POST /user/user
type CreateUserRequest struct {
	UserData UserData `json:"userData" validate:"required"`
	Pass     string   `json:"pass" validate:"required,notblank,max=100"`
}

// PUT /user/user
type UpdateUserRequest struct {
	UserID int64   `json:"user_id" validate:"required,gt=0"`
	Login  string  `json:"login" validate:"required,notblank,max=50"`
	Nom    string  `json:"nom" validate:"required,notblank,max=100"`
	Prenom *string `json:"prenom" validate:"omitempty,max=150"`
	Genre  string  `json:"genre" validate:"required,oneof=Masculin Féminin"`
	Email  *string `json:"email" validate:"omitempty,max=150"`
	Tel    *string `json:"tel" validate:"omitempty,max=30"`
}

// PUT /user/changeUserStatus
type ChangeStatusRequest struct {
	UserID   int64 `json:"user_id" validate:"required,gt=0"`
	IsActive *bool `json:"is_active" validate:"required"`
}

// CreateResult distingue une création d'une réactivation
type CreateResult struct {
	UserID      int64 `json:"user_id"`
	Reactivated bool  `json:"reactivated"`
}
