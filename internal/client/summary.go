package client

import "github.com/whoismarios/sa-gateway-demo/internal/models"

// OrderGroup is one user's orders for the grouped display.
type OrderGroup struct {
	UserName string
	Orders   []models.OrderWithUser
}

// GroupOrders groups a flat order list by owning user name, preserving the
// order in which users first appear. Orders without a user name fall into an
// "Unbekannt" group, like the original display did.
func GroupOrders(orders []models.OrderWithUser) []OrderGroup {
	index := make(map[string]int)
	var groups []OrderGroup
	for _, order := range orders {
		name := order.UserName
		if name == "" {
			name = "Unbekannt"
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, OrderGroup{UserName: name})
		}
		groups[i].Orders = append(groups[i].Orders, order)
	}
	return groups
}
