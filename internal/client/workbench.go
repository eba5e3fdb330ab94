// Package client drives the side-by-side comparison: it fires requests at the
// REST and GraphQL services and keeps the last completed response per request
// kind, the way the browser UI held its card state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"
)

// Request kinds; one comparison card each.
const (
	KindREST    = "rest"
	KindGraphQL = "graphql"
)

// copyFlagDelay is how long a transient "copied to clipboard" flag stays set.
const copyFlagDelay = 2 * time.Second

// Response is the last completed result for one request kind.
type Response struct {
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
	Status    int             `json:"status,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Workbench issues requests against both services and holds per-kind view
// state. Each execute issues exactly one request and fully replaces the prior
// result for its kind; there is no caching, retry, cancellation, or
// de-duplication. A second execute while one is in flight simply races it:
// whichever response resolves last is the one displayed.
type Workbench struct {
	restURL    string
	graphqlURL string
	httpClient *http.Client
	copyDelay  time.Duration

	// Inputs bound to the GraphQL query variants.
	UserID     int
	SearchTerm string

	mu      sync.Mutex
	results map[string]Response
	loading map[string]bool
	copied  map[string]bool
}

// NewWorkbench creates a Workbench against the two service base URLs.
func NewWorkbench(restURL, graphqlURL string) *Workbench {
	return &Workbench{
		restURL:    restURL,
		graphqlURL: graphqlURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		copyDelay:  copyFlagDelay,
		results:    make(map[string]Response),
		loading:    make(map[string]bool),
		copied:     make(map[string]bool),
	}
}

// ExecuteREST fires GET /api/hello and stores the outcome under the rest kind.
func (w *Workbench) ExecuteREST(ctx context.Context) Response {
	w.setLoading(KindREST, true)
	defer w.setLoading(KindREST, false)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.restURL+"/api/hello", nil)
	if err != nil {
		return w.storeError(KindREST, err)
	}
	return w.roundTrip(KindREST, req)
}

// ExecuteGraphQL fires the selected query variant at POST /graphql. Variables
// come from the static variant-to-input lookup bound to the workbench fields.
func (w *Workbench) ExecuteGraphQL(ctx context.Context, variantID string) Response {
	w.setLoading(KindGraphQL, true)
	defer w.setLoading(KindGraphQL, false)

	variant, ok := VariantByID(variantID)
	if !ok {
		return w.storeError(KindGraphQL, errUnknownVariant(variantID))
	}

	body := map[string]interface{}{"query": variant.Query}
	if vars := w.bindVariables(variant); len(vars) > 0 {
		body["variables"] = vars
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return w.storeError(KindGraphQL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.graphqlURL+"/graphql", bytes.NewReader(payload))
	if err != nil {
		return w.storeError(KindGraphQL, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return w.roundTrip(KindGraphQL, req)
}

// bindVariables maps the variant's declared inputs onto the workbench fields.
func (w *Workbench) bindVariables(variant QueryVariant) map[string]interface{} {
	vars := make(map[string]interface{})
	for _, input := range variant.Inputs {
		switch input {
		case InputID:
			vars["id"] = w.UserID
		case InputTerm:
			vars["term"] = w.SearchTerm
		case InputUserID:
			vars["userId"] = w.UserID
		}
	}
	return vars
}

func (w *Workbench) roundTrip(kind string, req *http.Request) Response {
	resp, err := w.httpClient.Do(req)
	if err != nil {
		return w.storeError(kind, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return w.storeError(kind, err)
	}

	result := Response{
		Data:      body,
		Status:    resp.StatusCode,
		Timestamp: time.Now(),
	}
	w.store(kind, result)
	return result
}

func (w *Workbench) store(kind string, result Response) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.results[kind] = result
}

func (w *Workbench) storeError(kind string, err error) Response {
	result := Response{Error: err.Error(), Timestamp: time.Now()}
	w.store(kind, result)
	return result
}

func (w *Workbench) setLoading(kind string, v bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.loading[kind] = v
}

// Result returns the last completed response for a kind.
func (w *Workbench) Result(kind string) (Response, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	r, ok := w.results[kind]
	return r, ok
}

// Loading reports whether a request for the kind is in flight.
func (w *Workbench) Loading(kind string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loading[kind]
}

// Copy returns the last result for a kind serialized for the clipboard and
// sets the transient copied flag, which self-clears after the copy delay.
func (w *Workbench) Copy(kind string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	result, ok := w.results[kind]
	if !ok {
		return "", false
	}

	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", false
	}

	w.copied[kind] = true
	time.AfterFunc(w.copyDelay, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.copied[kind] = false
	})
	return string(text), true
}

// Copied reports whether the transient copied flag is set for a kind.
func (w *Workbench) Copied(kind string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.copied[kind]
}
