package dto

// POST /user/auth
type LoginRequest struct {
	Login string `json:"login" validate:"required,notblank,max=50"`
	Pass  string `json:"pass" validate:"required,notblank,max=100"`
}
