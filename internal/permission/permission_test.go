package permission

import (
	"testing"

	"sorty/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestAllowed_AdminCanDoEverything(t *testing.T) {
	for _, r := range allResources {
		for _, a := range allActions {
			assert.True(t, Allowed(model.RoleAdmin, r, a), "%s %s", r, a)
		}
	}
}

func TestAllowed_InventoryManager(t *testing.T) {
	assert.True(t, Allowed(model.RoleInventoryManager, Assets, Create))
	assert.True(t, Allowed(model.RoleInventoryManager, Assignments, Update))
	assert.True(t, Allowed(model.RoleInventoryManager, Categories, Delete))
	assert.True(t, Allowed(model.RoleInventoryManager, Reports, Read))
	assert.True(t, Allowed(model.RoleInventoryManager, Users, Read))

	assert.False(t, Allowed(model.RoleInventoryManager, Users, Create))
	assert.False(t, Allowed(model.RoleInventoryManager, Users, Update))
	assert.False(t, Allowed(model.RoleInventoryManager, Users, Delete))
}

func TestAllowed_AssetResponsibleIsReadOnly(t *testing.T) {
	readable := []Resource{Assets, Assignments, Movements, Maintenance, Incidents, Categories}
	for _, r := range readable {
		assert.True(t, Allowed(model.RoleAssetResponsible, r, Read), r)
		assert.False(t, Allowed(model.RoleAssetResponsible, r, Create), r)
		assert.False(t, Allowed(model.RoleAssetResponsible, r, Update), r)
		assert.False(t, Allowed(model.RoleAssetResponsible, r, Delete), r)
	}
	assert.False(t, Allowed(model.RoleAssetResponsible, Reports, Read))
	assert.False(t, Allowed(model.RoleAssetResponsible, Users, Read))
}

func TestAllowed_UnknownRoleDenied(t *testing.T) {
	assert.False(t, Allowed(model.Role("GUEST"), Assets, Read))
	assert.False(t, Allowed(model.Role(""), Assets, Read))
}
