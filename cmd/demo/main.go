// Command demo fires the same data request at both services and prints the
// raw responses plus a grouped order summary, side by side in the terminal.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/whoismarios/sa-gateway-demo/internal/client"
	"github.com/whoismarios/sa-gateway-demo/internal/models"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	restURL := flag.String("rest", "http://localhost:3000", "base URL of the REST service")
	graphqlURL := flag.String("graphql", "http://localhost:4000", "base URL of the GraphQL service")
	variant := flag.String("query", "users", "GraphQL query variant (users, userById, searchUsers, orders, ordersByUser)")
	userID := flag.Int("id", 1, "user id bound to userById/ordersByUser")
	term := flag.String("term", "", "search term bound to searchUsers")
	flag.Parse()

	w := client.NewWorkbench(*restURL, *graphqlURL)
	w.UserID = *userID
	w.SearchTerm = *term

	ctx := context.Background()

	restResult := w.ExecuteREST(ctx)
	printResult("REST GET /api/hello", restResult)
	printRESTOrders(restResult)

	gqlResult := w.ExecuteGraphQL(ctx, *variant)
	printResult(fmt.Sprintf("GraphQL POST /graphql (%s)", *variant), gqlResult)

	if restResult.Error != "" || gqlResult.Error != "" {
		os.Exit(1)
	}
}

func printResult(title string, r client.Response) {
	fmt.Printf("=== %s ===\n", title)
	if r.Error != "" {
		fmt.Printf("error: %s\n\n", r.Error)
		return
	}

	var pretty json.RawMessage = r.Data
	out, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		out = r.Data
	}
	fmt.Printf("status: %d\n%s\n\n", r.Status, out)
}

func printRESTOrders(r client.Response) {
	if r.Error != "" {
		return
	}

	var hello struct {
		Orders []models.OrderWithUser `json:"orders"`
	}
	if err := json.Unmarshal(r.Data, &hello); err != nil {
		log.Printf("could not parse REST response for summary: %v", err)
		return
	}

	for _, group := range client.GroupOrders(hello.Orders) {
		fmt.Printf("%s:\n", group.UserName)
		for _, order := range group.Orders {
			fmt.Printf("  #%d %s x%d\n", order.ID, order.Product, order.Quantity)
		}
	}
	fmt.Println()
}
