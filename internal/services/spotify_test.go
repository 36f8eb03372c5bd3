package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/moodmix/internal/shared"
	tu "github.com/desertthunder/moodmix/internal/testing"
)

const trackJSON = `{
	"id": "t1", "name": "Walking on Sunshine", "uri": "spotify:track:t1",
	"preview_url": "https://p.scdn.co/mp3-preview/t1",
	"artists": [{"id": "a1", "name": "Katrina and the Waves"}],
	"album": {"id": "al1", "name": "Walking on Sunshine", "images": [{"url": "https://i.scdn.co/image/al1", "height": 640, "width": 640}]}
}`

func TestSpotifyClient(t *testing.T) {
	ctx := context.Background()

	t.Run("NewSpotifyClient", func(t *testing.T) {
		t.Run("defaults", func(t *testing.T) {
			c := NewSpotifyClient("", nil)
			if c.baseURL != spotifyBaseURL {
				t.Errorf("expected base URL %s, got %s", spotifyBaseURL, c.baseURL)
			}
			if c.httpClient.Timeout != DefaultTimeout {
				t.Errorf("expected timeout %v, got %v", DefaultTimeout, c.httpClient.Timeout)
			}
		})

		t.Run("custom", func(t *testing.T) {
			client := &http.Client{Timeout: time.Second}
			c := NewSpotifyClient("http://localhost:9999/v1/", client)
			if c.baseURL != "http://localhost:9999/v1" {
				t.Errorf("expected trailing slash trimmed, got %s", c.baseURL)
			}
			if c.httpClient != client {
				t.Error("expected custom client")
			}
		})
	})

	t.Run("CurrentUser", func(t *testing.T) {
		t.Run("sends bearer token", func(t *testing.T) {
			fake := tu.NewFakeSpotify(t).On(http.MethodGet, "/me", http.StatusOK, `{"id":"u1","display_name":"Test User","product":"premium"}`)
			c := NewSpotifyClient(fake.URL, nil)

			user, err := c.CurrentUser(ctx, "tok")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.ID != "u1" || user.Product != "premium" {
				t.Errorf("unexpected user %+v", user)
			}

			calls := fake.Calls(http.MethodGet, "/me")
			if got := calls[0].Header.Get("Authorization"); got != "Bearer tok" {
				t.Errorf("expected bearer header, got %q", got)
			}
		})

		t.Run("401 is distinguishable", func(t *testing.T) {
			fake := tu.NewFakeSpotify(t).On(http.MethodGet, "/me", http.StatusUnauthorized, `{"error":{"status":401,"message":"Invalid access token"}}`)
			c := NewSpotifyClient(fake.URL, nil)

			_, err := c.CurrentUser(ctx, "bad")
			if !errors.Is(err, shared.ErrProviderUnauthorized) {
				t.Errorf("expected ErrProviderUnauthorized, got %v", err)
			}
			if errors.Is(err, shared.ErrProviderForbidden) {
				t.Error("401 must not match ErrProviderForbidden")
			}

			var se *StatusError
			if !errors.As(err, &se) || se.StatusCode != 401 || !strings.Contains(string(se.Body), "Invalid access token") {
				t.Errorf("expected StatusError carrying status and body, got %#v", err)
			}
		})

		t.Run("transport failure", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("dial tcp: refused"))}
			c := NewSpotifyClient("http://spotify.invalid", client)

			_, err := c.CurrentUser(ctx, "tok")
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
			var se *StatusError
			if errors.As(err, &se) {
				t.Error("transport failures should not be StatusErrors")
			}
		})

		t.Run("malformed payload", func(t *testing.T) {
			fake := tu.NewFakeSpotify(t).On(http.MethodGet, "/me", http.StatusOK, `{"id": [}`)
			c := NewSpotifyClient(fake.URL, nil)

			if _, err := c.CurrentUser(ctx, "tok"); !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})

	t.Run("TopTracks", func(t *testing.T) {
		fake := tu.NewFakeSpotify(t).On(http.MethodGet, "/me/top/tracks", http.StatusOK,
			`{"items": [`+trackJSON+`, null, "garbage", {"id": "t2", "name": "Two", "uri": "spotify:track:t2", "artists": []}]}`)
		c := NewSpotifyClient(fake.URL, nil)

		items, err := c.TopTracks(ctx, "tok", 5, "short_term")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 4 {
			t.Fatalf("expected 4 raw items, got %d", len(items))
		}
		if got := Values(items); len(got) != 2 {
			t.Errorf("expected 2 usable items, got %d", len(got))
		}

		q := fake.Calls(http.MethodGet, "/me/top/tracks")[0].Query
		if q.Get("limit") != "5" || q.Get("time_range") != "short_term" {
			t.Errorf("unexpected query %v", q)
		}
	})

	t.Run("TopArtists", func(t *testing.T) {
		fake := tu.NewFakeSpotify(t).On(http.MethodGet, "/me/top/artists", http.StatusOK,
			`{"items": [{"id": "a1", "name": "One"}, {"id": "a2", "name": "Two"}]}`)
		c := NewSpotifyClient(fake.URL, nil)

		items, err := c.TopArtists(ctx, "tok", 3, "short_term")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(Values(items)) != 2 {
			t.Errorf("expected 2 artists, got %d", len(items))
		}
	})

	t.Run("Recommendations", func(t *testing.T) {
		fake := tu.NewFakeSpotify(t).On(http.MethodGet, "/recommendations", http.StatusOK, `{"tracks": [`+trackJSON+`]}`)
		c := NewSpotifyClient(fake.URL, nil)

		params := RecommendationParams{
			Limit:       20,
			Market:      "US",
			SeedTracks:  []string{"t1", "t2"},
			SeedArtists: []string{"a1"},
			Tunables:    map[string]float64{"min_valence": 0.6, "target_loudness": -5},
		}
		tracks, err := c.Recommendations(ctx, "tok", params)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tracks) != 1 {
			t.Errorf("expected 1 track, got %d", len(tracks))
		}

		q := fake.Calls(http.MethodGet, "/recommendations")[0].Query
		want := map[string]string{
			"limit":           "20",
			"market":          "US",
			"seed_tracks":     "t1,t2",
			"seed_artists":    "a1",
			"min_valence":     "0.6",
			"target_loudness": "-5",
		}
		for k, v := range want {
			if q.Get(k) != v {
				t.Errorf("%s = %q, want %q", k, q.Get(k), v)
			}
		}
		if q.Has("seed_genres") {
			t.Error("empty seed_genres should be omitted")
		}
	})

	t.Run("SearchPlaylists", func(t *testing.T) {
		t.Run("query", func(t *testing.T) {
			fake := tu.NewFakeSpotify(t).On(http.MethodGet, "/search", http.StatusOK,
				`{"playlists": {"items": [null, {"id": "p1", "name": "Happy Hits"}], "total": 2}}`)
			c := NewSpotifyClient(fake.URL, nil)

			result, err := c.SearchPlaylists(ctx, "tok", "happy mood", 10)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Playlists == nil || len(result.Playlists.Items) != 2 {
				t.Fatalf("unexpected result %+v", result)
			}
			if _, ok := result.Playlists.Items[0].Get(); ok {
				t.Error("expected null entry to be empty")
			}

			q := fake.Calls(http.MethodGet, "/search")[0].Query
			if q.Get("q") != "happy mood" || q.Get("type") != "playlist" || q.Get("limit") != "10" {
				t.Errorf("unexpected query %v", q)
			}
		})

		t.Run("missing playlists object", func(t *testing.T) {
			fake := tu.NewFakeSpotify(t).On(http.MethodGet, "/search", http.StatusOK, `{}`)
			c := NewSpotifyClient(fake.URL, nil)

			result, err := c.SearchPlaylists(ctx, "tok", "sad mood", 10)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Playlists != nil {
				t.Error("expected nil playlists page")
			}
		})
	})

	t.Run("PlaylistTracks", func(t *testing.T) {
		fake := tu.NewFakeSpotify(t).On(http.MethodGet, "/playlists/p1/tracks", http.StatusOK,
			`{"items": [{"track": `+trackJSON+`}, {"track": null}, null]}`)
		c := NewSpotifyClient(fake.URL, nil)

		page, err := c.PlaylistTracks(ctx, "tok", "p1", 20)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(page.Items))
		}
		item, ok := page.Items[0].Get()
		if !ok {
			t.Fatal("expected first item")
		}
		if track, ok := item.Track.Get(); !ok || track.ID != "t1" {
			t.Errorf("unexpected track %+v", track)
		}
		if fake.Calls(http.MethodGet, "/playlists/p1/tracks")[0].Query.Get("limit") != "20" {
			t.Error("expected limit=20")
		}
	})

	t.Run("Devices", func(t *testing.T) {
		fake := tu.NewFakeSpotify(t).On(http.MethodGet, "/me/player/devices", http.StatusOK,
			`{"devices": [{"id": "d1", "name": "Laptop", "type": "Computer", "is_active": true, "volume_percent": 50}, null]}`)
		c := NewSpotifyClient(fake.URL, nil)

		devices, err := c.Devices(ctx, "tok")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(devices) != 1 || devices[0].ID != "d1" || *devices[0].VolumePercent != 50 {
			t.Errorf("unexpected devices %+v", devices)
		}
	})

	t.Run("Play", func(t *testing.T) {
		tc := []struct {
			name      string
			status    int
			wantErr   bool
			forbidden bool
		}{
			{name: "204", status: http.StatusNoContent},
			{name: "202", status: http.StatusAccepted},
			{name: "200 is not a play success", status: http.StatusOK, wantErr: true},
			{name: "403", status: http.StatusForbidden, wantErr: true, forbidden: true},
			{name: "404", status: http.StatusNotFound, wantErr: true},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				fake := tu.NewFakeSpotify(t).On(http.MethodPut, "/me/player/play", tt.status, "")
				c := NewSpotifyClient(fake.URL, nil)

				err := c.Play(ctx, "tok", "d1", []string{"spotify:track:t1"}, 0)
				if (err != nil) != tt.wantErr {
					t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
				}
				if errors.Is(err, shared.ErrProviderForbidden) != tt.forbidden {
					t.Errorf("forbidden=%v, got %v", tt.forbidden, err)
				}

				var se *StatusError
				if tt.wantErr && (!errors.As(err, &se) || se.StatusCode != tt.status) {
					t.Errorf("expected StatusError with %d, got %v", tt.status, err)
				}

				call := fake.Calls(http.MethodPut, "/me/player/play")[0]
				if call.Query.Get("device_id") != "d1" {
					t.Errorf("expected device_id=d1, got %v", call.Query)
				}
				var body map[string]any
				if err := json.Unmarshal(call.Body, &body); err != nil {
					t.Fatalf("bad body: %v", err)
				}
				if body["position_ms"] != float64(0) {
					t.Errorf("expected position_ms 0, got %v", body["position_ms"])
				}
				if uris, _ := body["uris"].([]any); len(uris) != 1 {
					t.Errorf("expected 1 uri, got %v", body["uris"])
				}
			})
		}
	})

	t.Run("Pause", func(t *testing.T) {
		fake := tu.NewFakeSpotify(t).On(http.MethodPut, "/me/player/pause", http.StatusNoContent, "")
		c := NewSpotifyClient(fake.URL, nil)

		if err := c.Pause(ctx, "tok", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fake.Calls(http.MethodPut, "/me/player/pause")[0].Query.Has("device_id") {
			t.Error("device_id should be omitted when empty")
		}
	})
}

func TestMaybe(t *testing.T) {
	var items []Maybe[SpotifyArtist]
	if err := json.Unmarshal([]byte(`[{"id":"a1"}, null, 42, {"id": 7}]`), &items); err != nil {
		t.Fatalf("lenient decode failed: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(items))
	}
	if got := Values(items); len(got) != 1 || got[0].ID != "a1" {
		t.Errorf("expected only a1 to survive, got %+v", got)
	}

	data, err := json.Marshal([]Maybe[SpotifyImage]{Some(SpotifyImage{URL: "u"}), {}})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.HasSuffix(string(data), ",null]") {
		t.Errorf("expected empty entry as null, got %s", data)
	}
}
