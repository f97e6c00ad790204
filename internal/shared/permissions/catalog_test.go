package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_NoDuplicates(t *testing.T) {
	seen := map[Permission]bool{}
	for _, p := range All() {
		require.False(t, seen[p], "doublon %q", p)
		seen[p] = true
	}
	assert.Len(t, seen, len(index))
}

func TestSuperAdmin_AdministrationGroupsOnly(t *testing.T) {
	perms := SuperAdmin()

	assert.Len(t, perms, 13)
	assert.Contains(t, perms, ViewUsers)
	assert.Contains(t, perms, UpdateProfilPermissions)
	assert.Contains(t, perms, ViewLoggings)
	assert.NotContains(t, perms, ViewMissions)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(nil))
	assert.NoError(t, Validate([]string{"Consulter les profils", "Approuver les missions"}))
	assert.Error(t, Validate([]string{"Consulter les profils", "consulter les profils"}))
	assert.False(t, IsValid(""))
}

func TestGroups_ReturnsCopy(t *testing.T) {
	g := Groups()
	g[0].Permissions[0] = "modifié"

	assert.Equal(t, ViewUsers, Groups()[0].Permissions[0])
}
