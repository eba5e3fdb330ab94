// Package graphql implements the GraphQL query layer: a typed schema whose
// resolvers mirror the REST queries but allow nested field selection.
package graphql

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/whoismarios/sa-gateway-demo/internal/middleware"
	"github.com/whoismarios/sa-gateway-demo/internal/models"
	"github.com/whoismarios/sa-gateway-demo/internal/repository"
	"github.com/whoismarios/sa-gateway-demo/internal/seed"

	"github.com/graphql-go/graphql"
	"gorm.io/gorm"
)

// userView is the resolver source for User fields. MatchScore is only set by
// searchUsers; everywhere else it resolves to null.
type userView struct {
	models.User
	MatchScore *int
}

// orderView is the resolver source for Order fields. Owner is inline for the
// root orders query and absent for nested User.orders, matching the original
// resolver output.
type orderView struct {
	models.Order
	Owner *models.User
}

// Schema bundles the executable schema with its data dependencies.
type Schema struct {
	schema graphql.Schema
	init   *seed.Initializer
	users  repository.UserRepository
	orders repository.OrderRepository
}

// NewSchema builds the demo schema against the given database handle.
func NewSchema(db *gorm.DB) (*Schema, error) {
	s := &Schema{
		init:   seed.NewInitializer(db),
		users:  repository.NewUserRepository(db),
		orders: repository.NewOrderRepository(db),
	}

	profileType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Profile",
		Fields: graphql.Fields{
			"avatar": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(models.Profile).Avatar, nil
				},
			},
			"bio": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(models.Profile).Bio, nil
				},
			},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(orderView).ID, nil
				},
			},
			"product": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(orderView).Product, nil
				},
			},
			"quantity": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(orderView).Quantity, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return formatTime(p.Source.(orderView).CreatedAt), nil
				},
			},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(userView).ID, nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(userView).Name, nil
				},
			},
			"email": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(userView).Email, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return formatTime(p.Source.(userView).CreatedAt), nil
				},
			},
			"profile": &graphql.Field{
				Type: profileType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return models.ProfileFor(p.Source.(userView).Name), nil
				},
			},
			"matchScore": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					score := p.Source.(userView).MatchScore
					if score == nil {
						return nil, nil
					}
					return *score, nil
				},
			},
		},
	})

	// User.orders and Order.user reference each other; add them after both
	// objects exist.
	userType.AddFieldConfig("orders", &graphql.Field{
		Type: graphql.NewList(orderType),
		// One query per user when selected as a nested field. The N+1 shape is
		// the point of the demo: it shows per-field resolution against REST's
		// single flat join.
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			owner := p.Source.(userView)
			orders, err := s.orders.ByUser(p.Context, strconv.FormatUint(uint64(owner.ID), 10))
			if err != nil {
				return nil, err
			}
			views := make([]orderView, 0, len(orders))
			for _, o := range orders {
				views = append(views, orderView{Order: o})
			}
			return views, nil
		},
	})
	orderType.AddFieldConfig("user", &graphql.Field{
		Type: userType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			owner := p.Source.(orderView).Owner
			if owner == nil {
				return nil, nil
			}
			return userView{User: *owner}, nil
		},
	})

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users":        s.usersField(userType),
			"user":         s.userField(userType),
			"searchUsers":  s.searchUsersField(userType),
			"orders":       s.ordersField(orderType),
			"ordersByUser": s.ordersByUserField(orderType),
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}
	s.schema = schema
	return s, nil
}

func (s *Schema) usersField(userType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(userType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			middleware.GraphQLQueries.WithLabelValues("users").Inc()
			if err := s.init.Ensure(p.Context); err != nil {
				return nil, err
			}
			users, err := s.users.All(p.Context)
			if err != nil {
				return nil, err
			}
			views := make([]userView, 0, len(users))
			for _, u := range users {
				views = append(views, userView{User: u})
			}
			return views, nil
		},
	}
}

func (s *Schema) userField(userType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: userType,
		Args: graphql.FieldConfigArgument{
			"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			middleware.GraphQLQueries.WithLabelValues("user").Inc()
			if err := s.init.Ensure(p.Context); err != nil {
				return nil, err
			}
			user, err := s.users.GetByID(p.Context, idArg(p.Args["id"]))
			if err != nil {
				return nil, err
			}
			if user == nil {
				// Absence is a null result, not an error.
				return nil, nil
			}
			return userView{User: *user}, nil
		},
	}
}

func (s *Schema) searchUsersField(userType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(userType),
		Args: graphql.FieldConfigArgument{
			"term": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			middleware.GraphQLQueries.WithLabelValues("searchUsers").Inc()
			if err := s.init.Ensure(p.Context); err != nil {
				return nil, err
			}
			term, _ := p.Args["term"].(string)
			users, err := s.users.Search(p.Context, term)
			if err != nil {
				return nil, err
			}
			views := make([]userView, 0, len(users))
			for _, u := range users {
				score := matchScore(u, term)
				views = append(views, userView{User: u, MatchScore: &score})
			}
			return views, nil
		},
	}
}

func (s *Schema) ordersField(orderType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(orderType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			middleware.GraphQLQueries.WithLabelValues("orders").Inc()
			if err := s.init.Ensure(p.Context); err != nil {
				return nil, err
			}
			rows, err := s.orders.AllWithUsers(p.Context)
			if err != nil {
				return nil, err
			}
			views := make([]orderView, 0, len(rows))
			for _, row := range rows {
				views = append(views, orderView{
					Order: models.Order{
						ID:        row.ID,
						UserID:    row.UserID,
						Product:   row.Product,
						Quantity:  row.Quantity,
						CreatedAt: row.CreatedAt,
					},
					Owner: &models.User{
						ID:    row.UserID,
						Name:  row.UserName,
						Email: row.UserEmail,
					},
				})
			}
			return views, nil
		},
	}
}

func (s *Schema) ordersByUserField(orderType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(orderType),
		Args: graphql.FieldConfigArgument{
			"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			middleware.GraphQLQueries.WithLabelValues("ordersByUser").Inc()
			if err := s.init.Ensure(p.Context); err != nil {
				return nil, err
			}
			// No existence check on the user; unknown ids yield an empty list.
			orders, err := s.orders.ByUser(p.Context, idArg(p.Args["userId"]))
			if err != nil {
				return nil, err
			}
			views := make([]orderView, 0, len(orders))
			for _, o := range orders {
				views = append(views, orderView{Order: o})
			}
			return views, nil
		},
	}
}

// matchScore ranks how well term matches the user's name or email: earlier
// and larger substring matches score higher. The result is deterministic and
// clamped to 1..100, replacing the original's random relevance score.
func matchScore(u models.User, term string) int {
	t := strings.ToLower(term)
	if t == "" {
		return 1
	}

	best := 0
	for _, field := range []string{strings.ToLower(u.Name), strings.ToLower(u.Email)} {
		idx := strings.Index(field, t)
		if idx < 0 || len(field) == 0 {
			continue
		}
		coverage := len(t) * 100 / len(field)
		if score := coverage - idx; score > best {
			best = score
		}
	}

	if best < 1 {
		best = 1
	}
	if best > 100 {
		best = 100
	}
	return best
}

// idArg flattens a coerced GraphQL ID argument to its string form. IDs arrive
// as strings from documents and as numbers from variables; either way they are
// handed to the store unparsed.
func idArg(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case int:
		return strconv.Itoa(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", id)
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
