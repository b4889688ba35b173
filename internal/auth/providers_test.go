package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestGitHubProvider_UserInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		w.Write([]byte(`{"id": 1234567, "login": "octocat", "email": null}`))
	}))
	defer srv.Close()

	p := NewGitHubProvider("id", "secret", "https://api.example/auth/github/callback")
	p.userURL = srv.URL

	info, err := p.UserInfo(context.Background(), "at")
	if err != nil {
		t.Fatal(err)
	}
	if info.ID != "1234567" || info.Username != "octocat" || info.Email != "" {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestGoogleProvider_UserInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sub": "g-1", "email": "a@example.com", "name": "Ada"}`))
	}))
	defer srv.Close()

	p := NewGoogleProvider("id", "secret", "https://api.example/auth/google/callback")
	p.userInfoURL = srv.URL

	info, err := p.UserInfo(context.Background(), "at")
	if err != nil {
		t.Fatal(err)
	}
	if info.ID != "g-1" || info.Email != "a@example.com" || info.Username != "Ada" {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestProvider_UserInfoErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := NewGitHubProvider("id", "secret", "")
	g.userURL = srv.URL
	if _, err := g.UserInfo(context.Background(), "at"); err == nil {
		t.Error("expected error on 401")
	}
}

func TestProvider_AuthURL(t *testing.T) {
	p := NewGoogleProvider("client-1", "secret", "https://api.example/auth/google/callback")
	u, err := url.Parse(p.AuthURL("st"))
	if err != nil {
		t.Fatal(err)
	}
	q := u.Query()
	if q.Get("state") != "st" || q.Get("client_id") != "client-1" {
		t.Errorf("unexpected auth url %s", u)
	}
}
