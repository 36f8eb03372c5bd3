package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/moodmix/internal/shared"
	tu "github.com/desertthunder/moodmix/internal/testing"
	"golang.org/x/oauth2"
)

func testCreds() shared.SpotifyConfig {
	return shared.SpotifyConfig{
		ClientID:     "test_client_id",
		ClientSecret: "test_client_secret",
		RedirectURI:  "http://127.0.0.1:3000/callback",
	}
}

func TestTokenExchanger(t *testing.T) {
	t.Run("AuthCodeURL", func(t *testing.T) {
		ex := NewTokenExchanger(testCreds(), "", "", nil)
		authURL := ex.AuthCodeURL("test_state")

		if !strings.HasPrefix(authURL, spotifyAuthURL) {
			t.Errorf("auth URL should point at spotify, got %s", authURL)
		}

		u, err := url.Parse(authURL)
		if err != nil {
			t.Fatalf("bad url: %v", err)
		}
		q := u.Query()
		if q.Get("client_id") != "test_client_id" || q.Get("state") != "test_state" {
			t.Errorf("unexpected query %v", q)
		}
		if !strings.Contains(q.Get("scope"), "user-top-read") || !strings.Contains(q.Get("scope"), "user-modify-playback-state") {
			t.Errorf("expected playback and top-read scopes, got %q", q.Get("scope"))
		}
		if q.Get("redirect_uri") != "http://127.0.0.1:3000/callback" {
			t.Errorf("unexpected redirect_uri %q", q.Get("redirect_uri"))
		}
	})

	t.Run("Exchange", func(t *testing.T) {
		t.Run("posts credentials in body", func(t *testing.T) {
			fake := tu.NewFakeSpotify(t).On(http.MethodPost, "/api/token", http.StatusOK,
				`{"access_token":"access","token_type":"Bearer","expires_in":3600,"refresh_token":"refresh","scope":"user-top-read"}`)
			ex := NewTokenExchanger(testCreds(), "", fake.URL+"/api/token", nil)

			payload, err := ex.Exchange(context.Background(), "the_code")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if payload["access_token"] != "access" || payload["refresh_token"] != "refresh" {
				t.Errorf("unexpected payload %v", payload)
			}
			if payload["scope"] != "user-top-read" {
				t.Errorf("expected scope to be relayed, got %v", payload["scope"])
			}
			if _, ok := payload["expires_in"]; !ok {
				t.Error("expected expires_in to be relayed")
			}

			form, err := url.ParseQuery(string(fake.Calls(http.MethodPost, "/api/token")[0].Body))
			if err != nil {
				t.Fatalf("bad form body: %v", err)
			}
			want := map[string]string{
				"grant_type":    "authorization_code",
				"code":          "the_code",
				"redirect_uri":  "http://127.0.0.1:3000/callback",
				"client_id":     "test_client_id",
				"client_secret": "test_client_secret",
			}
			for k, v := range want {
				if form.Get(k) != v {
					t.Errorf("%s = %q, want %q", k, form.Get(k), v)
				}
			}
		})

		t.Run("rejected code", func(t *testing.T) {
			fake := tu.NewFakeSpotify(t).On(http.MethodPost, "/api/token", http.StatusBadRequest,
				`{"error":"invalid_grant","error_description":"Invalid authorization code"}`)
			ex := NewTokenExchanger(testCreds(), "", fake.URL+"/api/token", nil)

			if _, err := ex.Exchange(context.Background(), "bad"); !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
		})

		t.Run("unreachable token endpoint", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}
			ex := NewTokenExchanger(testCreds(), "", "http://accounts.invalid/api/token", client)

			_, err := ex.Exchange(context.Background(), "the_code")
			if !errors.Is(err, shared.ErrUpstream) {
				t.Errorf("expected ErrUpstream, got %v", err)
			}
			if errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("transport failure reported as auth failure: %v", err)
			}
		})

		t.Run("token endpoint server error", func(t *testing.T) {
			fake := tu.NewFakeSpotify(t).On(http.MethodPost, "/api/token", http.StatusBadGateway, `{"error":"server_error"}`)
			ex := NewTokenExchanger(testCreds(), "", fake.URL+"/api/token", nil)

			if _, err := ex.Exchange(context.Background(), "the_code"); !errors.Is(err, shared.ErrUpstream) {
				t.Errorf("expected ErrUpstream, got %v", err)
			}
		})

		t.Run("missing code", func(t *testing.T) {
			ex := NewTokenExchanger(testCreds(), "", "", nil)
			if _, err := ex.Exchange(context.Background(), ""); !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})
	})

	t.Run("TokenPayload without raw fields", func(t *testing.T) {
		payload := TokenPayload(&oauth2.Token{
			AccessToken: "a",
			Expiry:      time.Now().Add(time.Hour),
		})
		if payload["token_type"] != "Bearer" {
			t.Errorf("expected default Bearer type, got %v", payload["token_type"])
		}
		if secs, ok := payload["expires_in"].(int); !ok || secs <= 0 || secs > 3600 {
			t.Errorf("expected computed expires_in, got %v", payload["expires_in"])
		}
		if _, ok := payload["refresh_token"]; ok {
			t.Error("empty refresh token should be omitted")
		}
	})
}
