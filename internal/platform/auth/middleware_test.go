package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
)

type pingOutput struct {
	Body struct {
		UID string `json:"uid"`
	}
}

// newAPI registers a secured /secure and an open /open operation, both
// echoing whatever identity the middleware put in context.
func newAPI(verifier Verifier) chi.Router {
	router := chi.NewRouter()
	api := humachi.New(router, huma.DefaultConfig("AuthTest", "test"))
	api.UseMiddleware(NewMiddleware(api, verifier))

	handler := func(ctx context.Context, _ *struct{}) (*pingOutput, error) {
		out := &pingOutput{}
		if user := UserFromContext(ctx); user != nil {
			out.Body.UID = user.UID
		}
		return out, nil
	}
	huma.Register(api, huma.Operation{
		OperationID: "secure-ping",
		Method:      http.MethodGet,
		Path:        "/secure",
		Security:    []map[string][]string{{"bearerAuth": {}}},
	}, handler)
	huma.Register(api, huma.Operation{
		OperationID: "open-ping",
		Method:      http.MethodGet,
		Path:        "/open",
	}, handler)
	return router
}

func get(router chi.Router, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestMiddlewareAllowsValidToken(t *testing.T) {
	router := newAPI(&MockVerifier{User: TestUser()})

	resp := get(router, "/secure", "Bearer good")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if body := resp.Body.String(); !strings.Contains(body, TestUser().UID) {
		t.Errorf("expected uid in response, got %s", body)
	}
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	router := newAPI(&MockVerifier{User: TestUser()})

	resp := get(router, "/secure", "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	if resp.Header().Get("WWW-Authenticate") != "Bearer" {
		t.Errorf("expected WWW-Authenticate header")
	}
}

func TestMiddlewareRejectsBadToken(t *testing.T) {
	router := newAPI(&MockVerifier{Error: ErrTokenExpired})

	resp := get(router, "/secure", "Bearer stale")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestMiddlewareKeyFetchFailure(t *testing.T) {
	router := newAPI(&MockVerifier{Error: ErrKeyFetch})

	resp := get(router, "/secure", "Bearer good")
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") != "30" {
		t.Errorf("expected Retry-After: 30 header")
	}
}

func TestMiddlewareSkipsOpenOperations(t *testing.T) {
	router := newAPI(&MockVerifier{Error: ErrInvalidToken})

	resp := get(router, "/open", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 without auth, got %d", resp.Code)
	}
}
