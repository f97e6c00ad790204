package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"habilitations-core/internal/shared/permissions"
)

type Profil struct {
	ProfilID    int64      `json:"profil_id"`
	ProfilLib   string     `json:"profil_lib"`
	IsDelete    bool       `json:"is_delete"`
	CreateDate  time.Time  `json:"create_date"`
	CreateurID  *int64     `json:"createur_id"`
	ModDate     *time.Time `json:"mod_date"`
	ModifieurID *int64     `json:"modifieur_id"`
}

type ProfilWithPermissions struct {
	Profil
	Permissions []string `json:"permissions"`
}

// POST /profile/profile : {"profil_lib": "..."} ou directement "..."
type CreateProfilRequest struct {
	ProfilLib string `json:"profil_lib" validate:"required,notblank,max=100"`
}

func (r *CreateProfilRequest) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		return json.Unmarshal(trimmed, &r.ProfilLib)
	}

	type plain CreateProfilRequest
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*r = CreateProfilRequest(p)
	return nil
}

// PUT /profile/profile
type UpdateProfilRequest struct {
	ProfilID  int64  `json:"profil_id" validate:"required,min=1"`
	ProfilLib string `json:"profil_lib" validate:"required,notblank,max=100"`
}

// PUT /profile/profilePermissions ; un tableau vide retire toutes les permissions
type ReplacePermissionsRequest struct {
	ProfilID    int64    `json:"profil_id" validate:"required,min=1"`
	Permissions []string `json:"permissions" validate:"required,dive,permission"`
}

// PUT /profile/userProfiles
type ReplaceUserProfilesRequest struct {
	UserID    int64   `json:"user_id" validate:"required,min=1"`
	ProfilIDs []int64 `json:"profil_ids" validate:"required,dive,min=1"`
}

// PermissionGroup groupe du catalogue tel qu'exposé au front
type PermissionGroup struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

func CatalogGroups() []PermissionGroup {
	groups := permissions.Groups()
	out := make([]PermissionGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, PermissionGroup{Name: g.Name, Permissions: permissions.Strings(g.Permissions)})
	}
	return out
}

type CreateResult struct {
	ProfilID    int64 `json:"profil_id"`
	Reactivated bool  `json:"reactivated"`
}
