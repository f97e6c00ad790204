package seeds

import (
	"context"
)

// SeedDataStatus état des données initiales
type SeedDataStatus struct {
	SuperAdminExists bool `json:"super_admin_exists"`
	PolicyExists     bool `json:"policy_exists"`
	PasswordExists   bool `json:"password_exists"`
	ProfileExists    bool `json:"profile_exists"`
	AssignmentExists bool `json:"assignment_exists"`
	AllDataExists    bool `json:"all_data_exists"`
}

// SeedingService données initiales : super administrateur, paramétrage et profil réservé
type SeedingService interface {
	CheckSeedDataExists(ctx context.Context) (*SeedDataStatus, error)
	SeedSuperAdmin(ctx context.Context) error
}

// IsComplete vérifie si le seeding est complet
func (s *SeedDataStatus) IsComplete() bool {
	return s.SuperAdminExists && s.PolicyExists && s.PasswordExists && s.ProfileExists && s.AssignmentExists
}

// GetMissingSeeds retourne la liste des seeds manquants
func (s *SeedDataStatus) GetMissingSeeds() []string {
	var missing []string

	if !s.SuperAdminExists {
		missing = append(missing, "super_admin")
	}
	if !s.PolicyExists {
		missing = append(missing, "pass_params")
	}
	if !s.PasswordExists {
		missing = append(missing, "user_pass")
	}
	if !s.ProfileExists {
		missing = append(missing, "profil")
	}
	if !s.AssignmentExists {
		missing = append(missing, "user_profil")
	}

	return missing
}
