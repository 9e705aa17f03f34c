package permissions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"servicesales-pro/internal/models"
)

func TestForResolvesRoleDefinition(t *testing.T) {
	defs := Defaults()

	set := For(models.RoleTechnician, defs)
	require.True(t, set.Has(models.PermViewRepairs))
	require.True(t, set.Has(models.PermViewInventory))
	require.False(t, set.Has(models.PermViewSettings))
	require.Len(t, set, 2)
}

func TestForUnknownRoleIsEmpty(t *testing.T) {
	defs := Defaults()

	// A role with no definition degrades to no visible pages.
	set := For(models.Role("INTERN"), defs)
	require.Empty(t, set)
	require.False(t, set.Has(models.PermViewDashboard))
}

func TestForEmptyDefinitions(t *testing.T) {
	set := For(models.RoleAdmin, nil)
	require.Empty(t, set)
}

func TestToggleAddsAndRemoves(t *testing.T) {
	defs := Defaults()

	// Technician does not have VIEW_DEBT: toggling grants it.
	changed := Toggle(defs, models.RoleTechnician, models.PermViewDebt)
	require.NotNil(t, changed)
	require.True(t, For(models.RoleTechnician, defs).Has(models.PermViewDebt))

	// Toggling again revokes it.
	changed = Toggle(defs, models.RoleTechnician, models.PermViewDebt)
	require.NotNil(t, changed)
	require.False(t, For(models.RoleTechnician, defs).Has(models.PermViewDebt))
}

func TestToggleAdminSettingsIsPinned(t *testing.T) {
	defs := Defaults()

	changed := Toggle(defs, models.RoleAdmin, models.PermViewSettings)
	require.Nil(t, changed)
	require.True(t, For(models.RoleAdmin, defs).Has(models.PermViewSettings))

	// Other admin permissions are still togglable.
	changed = Toggle(defs, models.RoleAdmin, models.PermEditPrice)
	require.NotNil(t, changed)
	require.False(t, For(models.RoleAdmin, defs).Has(models.PermEditPrice))
}

func TestToggleUnknownRoleIsNoop(t *testing.T) {
	defs := Defaults()
	require.Nil(t, Toggle(defs, models.Role("GHOST"), models.PermViewPOS))
}

func TestListIsStable(t *testing.T) {
	defs := Defaults()
	set := For(models.RoleAdmin, defs)
	require.Equal(t, All, set.List())
}
