package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/quickmsg/messaging-system/internal/core/domain"
)

type stubAuthService struct {
	resolveClientFn func(ctx context.Context, key string) (*domain.Client, error)
}

func (s *stubAuthService) ResolveClient(ctx context.Context, key string) (*domain.Client, error) {
	return s.resolveClientFn(ctx, key)
}

func (s *stubAuthService) VerifyUser(context.Context, string, string) (*domain.User, error) {
	return nil, nil
}

func (s *stubAuthService) CreateClient(context.Context, string, string, string) (*domain.Client, error) {
	return nil, nil
}

func (s *stubAuthService) DeleteClient(context.Context, string, string, string) error { return nil }

func (s *stubAuthService) NeedsBootstrap(context.Context) (bool, error) { return false, nil }

func (s *stubAuthService) EnsureAdmin(context.Context, string, string) (bool, error) {
	return false, nil
}

func TestClientAuth_InjectsResolvedClient(t *testing.T) {
	want := &domain.Client{ID: "c1", Key: "key-1", Name: "laptop", UserID: "u1"}
	auth := &stubAuthService{
		resolveClientFn: func(_ context.Context, key string) (*domain.Client, error) {
			if key != "key-1" {
				t.Fatalf("expected key-1, got %q", key)
			}
			return want, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	req.Header.Set(HeaderClientToken, "key-1")
	c := e.NewContext(req, httptest.NewRecorder())

	var handlerRan bool
	next := func(c echo.Context) error {
		handlerRan = true
		got, _ := c.Get(ContextKeyClient).(*domain.Client)
		if got != want {
			t.Fatalf("expected client injected into context, got %+v", got)
		}
		return nil
	}

	if err := ClientAuth(auth)(next)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if !handlerRan {
		t.Fatal("next handler must run on successful auth")
	}
}

func TestClientAuth_RejectsUnresolvableToken(t *testing.T) {
	auth := &stubAuthService{
		resolveClientFn: func(context.Context, string) (*domain.Client, error) {
			return nil, domain.ErrBadAuthentication
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	req.Header.Set(HeaderClientToken, "bogus")
	c := e.NewContext(req, httptest.NewRecorder())

	next := func(echo.Context) error {
		t.Fatal("handler must not run without authentication")
		return nil
	}

	err := ClientAuth(auth)(next)(c)
	if !errors.Is(err, domain.ErrBadAuthentication) {
		t.Fatalf("expected ErrBadAuthentication, got %v", err)
	}
}

func TestClientAuth_MissingHeaderPassedToResolver(t *testing.T) {
	var gotKey string
	auth := &stubAuthService{
		resolveClientFn: func(_ context.Context, key string) (*domain.Client, error) {
			gotKey = key
			return nil, domain.ErrBadAuthentication
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	_ = ClientAuth(auth)(func(echo.Context) error { return nil })(c)
	if gotKey != "" {
		t.Fatalf("expected empty key for missing header, got %q", gotKey)
	}
}
