// Package permission holds the static role → (resource, action) table used by
// the HTTP layer to authorize requests.
package permission

import "sorty/internal/model"

type Resource string

const (
	Assets      Resource = "assets"
	Assignments Resource = "assignments"
	Movements   Resource = "movements"
	Maintenance Resource = "maintenance"
	Incidents   Resource = "incidents"
	Categories  Resource = "categories"
	Reports     Resource = "reports"
	Users       Resource = "users"
)

type Action string

const (
	Read   Action = "read"
	Create Action = "create"
	Update Action = "update"
	Delete Action = "delete"
)

var (
	allResources = []Resource{Assets, Assignments, Movements, Maintenance, Incidents, Categories, Reports, Users}
	allActions   = []Action{Read, Create, Update, Delete}
)

type key struct {
	role     model.Role
	resource Resource
	action   Action
}

var table = build()

func build() map[key]bool {
	t := make(map[key]bool)
	grant := func(role model.Role, resources []Resource, actions ...Action) {
		for _, r := range resources {
			for _, a := range actions {
				t[key{role, r, a}] = true
			}
		}
	}

	grant(model.RoleAdmin, allResources, allActions...)

	managed := []Resource{Assets, Assignments, Movements, Maintenance, Incidents, Categories, Reports}
	grant(model.RoleInventoryManager, managed, allActions...)
	grant(model.RoleInventoryManager, []Resource{Users}, Read)

	grant(model.RoleAssetResponsible,
		[]Resource{Assets, Assignments, Movements, Maintenance, Incidents, Categories}, Read)
	return t
}

// Allowed reports whether role may perform action on resource. Unknown roles
// are denied everything.
func Allowed(role model.Role, resource Resource, action Action) bool {
	return table[key{role, resource, action}]
}
