package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/whoismarios/sa-gateway-demo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteREST(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/hello", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"msg":"Hello from REST","totalUsers":5}`))
	}))
	defer srv.Close()

	w := NewWorkbench(srv.URL, "")
	result := w.ExecuteREST(context.Background())

	assert.Empty(t, result.Error)
	assert.Equal(t, http.StatusOK, result.Status)
	assert.Contains(t, string(result.Data), "Hello from REST")
	assert.False(t, result.Timestamp.IsZero())

	stored, ok := w.Result(KindREST)
	require.True(t, ok)
	assert.Equal(t, result.Data, stored.Data)
	assert.False(t, w.Loading(KindREST))
}

func TestExecuteGraphQL_BindsVariables(t *testing.T) {
	var captured struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graphql", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		_, _ = w.Write([]byte(`{"data":{"searchUsers":[]}}`))
	}))
	defer srv.Close()

	w := NewWorkbench("", srv.URL)
	w.SearchTerm = "anna"
	result := w.ExecuteGraphQL(context.Background(), "searchUsers")

	assert.Empty(t, result.Error)
	assert.Contains(t, captured.Query, "searchUsers")
	assert.Equal(t, map[string]interface{}{"term": "anna"}, captured.Variables)
}

func TestExecuteGraphQL_UnknownVariant(t *testing.T) {
	w := NewWorkbench("", "http://localhost:0")
	result := w.ExecuteGraphQL(context.Background(), "nope")
	assert.Contains(t, result.Error, "unknown query variant")

	stored, ok := w.Result(KindGraphQL)
	require.True(t, ok)
	assert.Equal(t, result.Error, stored.Error)
}

// Two rapid executes on the same kind race freely: both complete and the
// displayed result is whichever response resolved last.
func TestDoubleExecute_LastResolvedWins(t *testing.T) {
	firstArrived := make(chan struct{})
	releaseFirst := make(chan struct{})

	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 1 {
			close(firstArrived)
			<-releaseFirst
			_, _ = w.Write([]byte(`{"call":"slow"}`))
			return
		}
		_, _ = w.Write([]byte(`{"call":"fast"}`))
	}))
	defer srv.Close()

	w := NewWorkbench(srv.URL, "")

	var wg sync.WaitGroup
	results := make([]Response, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = w.ExecuteREST(context.Background())
	}()

	<-firstArrived

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1] = w.ExecuteREST(context.Background())
	}()

	// Let the second request finish before releasing the first.
	assert.Eventually(t, func() bool {
		stored, ok := w.Result(KindREST)
		return ok && string(stored.Data) == `{"call":"fast"}`
	}, time.Second, 5*time.Millisecond)

	close(releaseFirst)
	wg.Wait()

	assert.Contains(t, string(results[0].Data), "slow")
	assert.Contains(t, string(results[1].Data), "fast")

	stored, ok := w.Result(KindREST)
	require.True(t, ok)
	assert.Equal(t, `{"call":"slow"}`, string(stored.Data), "last resolved response replaces the earlier one")
}

func TestCopy_FlagSelfClears(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"msg":"hi"}`))
	}))
	defer srv.Close()

	w := NewWorkbench(srv.URL, "")
	w.copyDelay = 30 * time.Millisecond
	w.ExecuteREST(context.Background())

	text, ok := w.Copy(KindREST)
	require.True(t, ok)
	assert.Contains(t, text, "hi")
	assert.True(t, w.Copied(KindREST))

	assert.Eventually(t, func() bool {
		return !w.Copied(KindREST)
	}, time.Second, 5*time.Millisecond)
}

func TestCopy_NothingToCopy(t *testing.T) {
	w := NewWorkbench("", "")
	_, ok := w.Copy(KindREST)
	assert.False(t, ok)
	assert.False(t, w.Copied(KindREST))
}

func TestVariants(t *testing.T) {
	ids := make(map[string][]Input)
	for _, v := range Variants() {
		ids[v.ID] = v.Inputs
	}

	assert.Len(t, ids, 5)
	assert.Empty(t, ids["users"])
	assert.Equal(t, []Input{InputID}, ids["userById"])
	assert.Equal(t, []Input{InputTerm}, ids["searchUsers"])
	assert.Empty(t, ids["orders"])
	assert.Equal(t, []Input{InputUserID}, ids["ordersByUser"])

	_, ok := VariantByID("users")
	assert.True(t, ok)
	_, ok = VariantByID("missing")
	assert.False(t, ok)
}

func TestGroupOrders(t *testing.T) {
	orders := []models.OrderWithUser{
		{ID: 1, Product: "Laptop", UserName: "Max Mustermann"},
		{ID: 2, Product: "Keyboard", UserName: "Anna Schmidt"},
		{ID: 3, Product: "Mouse", UserName: "Max Mustermann"},
		{ID: 4, Product: "Webcam"},
	}

	groups := GroupOrders(orders)
	require.Len(t, groups, 3)

	assert.Equal(t, "Max Mustermann", groups[0].UserName)
	assert.Len(t, groups[0].Orders, 2)
	assert.Equal(t, "Anna Schmidt", groups[1].UserName)
	assert.Equal(t, "Unbekannt", groups[2].UserName)
}
