package client

import "fmt"

// Input names a workbench field a query variant binds as a variable.
type Input string

// The three bindable inputs; each has its own controlled field.
const (
	InputID     Input = "id"
	InputTerm   Input = "term"
	InputUserID Input = "userId"
)

// QueryVariant is one selectable GraphQL query with its variable bindings.
type QueryVariant struct {
	ID     string
	Name   string
	Query  string
	Inputs []Input
}

// variants is the static catalog; selecting a variant swaps which fixed query
// string and variable set is sent.
var variants = []QueryVariant{
	{
		ID:   "users",
		Name: "Alle Benutzer",
		Query: `{
  users {
    id
    name
    email
    createdAt
    orders {
      id
      product
      quantity
      createdAt
    }
  }
}`,
	},
	{
		ID:   "userById",
		Name: "Benutzer nach ID",
		Query: `query GetUser($id: ID!) {
  user(id: $id) {
    id
    name
    email
    profile {
      avatar
      bio
    }
    orders {
      id
      product
      quantity
      createdAt
    }
  }
}`,
		Inputs: []Input{InputID},
	},
	{
		ID:   "searchUsers",
		Name: "Benutzer suchen",
		Query: `query SearchUsers($term: String!) {
  searchUsers(term: $term) {
    id
    name
    email
    matchScore
    orders {
      id
      product
      quantity
      createdAt
    }
  }
}`,
		Inputs: []Input{InputTerm},
	},
	{
		ID:   "orders",
		Name: "Alle Bestellungen",
		Query: `{
  orders {
    id
    product
    quantity
    createdAt
    user {
      id
      name
      email
    }
  }
}`,
	},
	{
		ID:   "ordersByUser",
		Name: "Bestellungen nach User",
		Query: `query GetOrdersByUser($userId: ID!) {
  ordersByUser(userId: $userId) {
    id
    product
    quantity
    createdAt
  }
}`,
		Inputs: []Input{InputUserID},
	},
}

// Variants returns the selectable GraphQL query catalog.
func Variants() []QueryVariant {
	out := make([]QueryVariant, len(variants))
	copy(out, variants)
	return out
}

// VariantByID looks up a query variant by its id.
func VariantByID(id string) (QueryVariant, bool) {
	for _, v := range variants {
		if v.ID == id {
			return v, true
		}
	}
	return QueryVariant{}, false
}

func errUnknownVariant(id string) error {
	return fmt.Errorf("unknown query variant %q", id)
}
