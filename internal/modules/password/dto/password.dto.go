package dto

import "time"

// DefaultPassExpirDays durée de validité appliquée quand aucun paramétrage n'existe
const DefaultPassExpirDays = 90

// Credential mot de passe courant d'un utilisateur
type Credential struct {
	UserPassID int64     `json:"user_pass_id"`
	UserID     int64     `json:"user_id"`
	Pass       string    `json:"-"`
	IsCurr     bool      `json:"is_curr"`
	IsInit     bool      `json:"is_init"`
	CreateDate time.Time `json:"create_date"`
}

// PassParam paramétrage unique des mots de passe
type PassParam struct {
	PassParamID   int64      `json:"pass_param_id"`
	PassExpirDay  int        `json:"pass_expir_day"`
	AllowPastPass bool       `json:"allow_past_pass"`
	CreateDate    time.Time  `json:"create_date"`
	CreateurID    *int64     `json:"createur_id"`
	ModDate       *time.Time `json:"mod_date"`
	ModifieurID   *int64     `json:"modifieur_id"`
}

// PUT /password/passParam
type UpdatePassParamRequest struct {
	PassExpirDay  int   `json:"pass_expir_day" validate:"required,min=1,max=3650"`
	AllowPastPass *bool `json:"allow_past_pass" validate:"required"`
}

// POST /password/userPass
type ResetUserPassRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Pass   string `json:"pass" validate:"required,notblank,max=100"`
}

// PUT /password/userPass
type ChangeOwnPassRequest struct {
	OldPass  string `json:"oldPass" validate:"required,notblank,max=100"`
	Pass     string `json:"pass" validate:"required,notblank,max=100"`
	IsUpdate bool   `json:"isUpdate"`
}
