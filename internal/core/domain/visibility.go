package domain

import (
	"slices"

	"github.com/samber/lo"
)

// stateVisibility is the fixed role to selectable-states policy.
var stateVisibility = map[Role][]DocumentState{
	RoleFrontDesk:     {StateReceived, StateArchived, StateSent},
	RoleAssistant:     {StatePending, StateProcessed},
	RoleAdministrator: {StateReceived, StatePending},
}

// VisibleStates returns the states a role may see or filter by, in
// ascending order. Unknown roles see nothing.
func VisibleStates(role Role) []DocumentState {
	states := slices.Clone(stateVisibility[role])
	slices.Sort(states)
	return states
}

// CanSeeState reports whether role may select state.
func CanSeeState(role Role, state DocumentState) bool {
	return lo.Contains(stateVisibility[role], state)
}

// FilterVisible keeps only the catalog rows whose ID is visible to role.
func FilterVisible(role Role, states []CatalogItem) []CatalogItem {
	return lo.Filter(states, func(item CatalogItem, _ int) bool {
		return CanSeeState(role, DocumentState(item.ID))
	})
}
