package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/oauth2"

	"github.com/dropDatabas3/gardenauth/internal/oauth"
)

func newServer(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New(&oauth2.Config{}, ts.URL)
}

func TestUserInfo_StringifiesNumericID(t *testing.T) {
	p := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != userAgent {
			t.Errorf("User-Agent: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":4815162342,"login":"alice"}`)
	})

	info, err := p.UserInfo(context.Background(), "tok")
	if err != nil {
		t.Fatalf("UserInfo err: %v", err)
	}
	if info.ID != "4815162342" {
		t.Fatalf("id: got %q", info.ID)
	}
	if info.Provider != Name {
		t.Fatalf("provider: got %q", info.Provider)
	}
}

func TestUserInfo_StringIDRejected(t *testing.T) {
	p := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"not-a-number"}`)
	})

	_, err := p.UserInfo(context.Background(), "tok")
	var schemaErr *oauth.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError for string id, got %v", err)
	}
}

func TestUserInfo_MissingID(t *testing.T) {
	p := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"login":"alice"}`)
	})

	_, err := p.UserInfo(context.Background(), "tok")
	var schemaErr *oauth.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Field != "id" {
		t.Fatalf("field: got %q", schemaErr.Field)
	}
}

func TestUserInfo_Non2xx(t *testing.T) {
	p := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := p.UserInfo(context.Background(), "tok")
	var statusErr *oauth.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Status != http.StatusForbidden {
		t.Fatalf("status: got %d", statusErr.Status)
	}
}
