package formatter

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/moodmix/internal/models"
	"github.com/desertthunder/moodmix/internal/mood"
	"github.com/desertthunder/moodmix/internal/shared"
)

func sampleResult() *models.RecommendationResult {
	preview := "https://p.scdn.co/mp3-preview/1"
	tracks := []models.Track{
		{ID: "track1", Name: "Song One", Artist: "Artist One", URI: "spotify:track:track1", PreviewURL: &preview},
		{ID: "track2", Name: "Song, Two", Artist: "Unknown", URI: "spotify:track:track2"},
	}
	return models.NewRecommendationResult("happy", tracks, mood.Lookup("happy"), "Happy Mood - Personalized", models.SourceRecommendations)
}

func TestParseFormat(t *testing.T) {
	tc := []struct {
		input string
		want  Format
	}{
		{"text", Text},
		{"", Text},
		{"MD", Markdown},
		{"markdown", Markdown},
		{" csv ", CSV},
		{"JSON", JSON},
	}

	for _, tt := range tc {
		got, err := ParseFormat(tt.input)
		if err != nil {
			t.Fatalf("ParseFormat(%q) failed: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if _, err := ParseFormat("yaml"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestExporters(t *testing.T) {
	result := sampleResult()

	t.Run("ResultToCSV", func(t *testing.T) {
		data, err := ResultToCSV(result)
		if err != nil {
			t.Fatalf("ResultToCSV failed: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header + 2 rows, got %d", len(records))
		}
		if strings.Join(records[0], ",") != "ID,Name,Artist,URI,Preview URL,Image" {
			t.Errorf("unexpected headers %v", records[0])
		}
		if records[1][4] != "https://p.scdn.co/mp3-preview/1" || records[1][5] != "" {
			t.Errorf("unexpected optional fields %v", records[1])
		}
		if records[2][1] != "Song, Two" {
			t.Errorf("expected quoted name to survive, got %q", records[2][1])
		}
	})

	t.Run("ResultToMarkdown", func(t *testing.T) {
		data, err := ResultToMarkdown(result)
		if err != nil {
			t.Fatalf("ResultToMarkdown failed: %v", err)
		}
		output := string(data)

		for _, want := range []string{
			"# Happy Mood - Personalized",
			"**Source**: personalized recommendations",
			"**Tracks**: 2",
			"- `min_valence`: 0.6",
			"- `target_danceability`: 0.7",
			"1. Artist One - Song One (`spotify:track:track1`)",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("markdown missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("ResultToText", func(t *testing.T) {
		data, err := ResultToText(result)
		if err != nil {
			t.Fatalf("ResultToText failed: %v", err)
		}
		output := string(data)

		if !strings.HasPrefix(output, "Playlist: Happy Mood - Personalized\n") {
			t.Errorf("unexpected header: %s", output)
		}
		if !strings.Contains(output, "2. Unknown - Song, Two") {
			t.Errorf("missing second track: %s", output)
		}
	})

	t.Run("Render JSON", func(t *testing.T) {
		data, err := Render(result, JSON)
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded["source"] != "recommendations" || decoded["playlist_name"] != "Happy Mood - Personalized" {
			t.Errorf("unexpected JSON: %s", data)
		}
	})

	t.Run("Render unknown", func(t *testing.T) {
		if _, err := Render(result, Format("xml")); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestDevicesToText(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := string(DevicesToText(nil)); !strings.HasPrefix(got, "No devices found") {
			t.Errorf("unexpected output %q", got)
		}
	})

	t.Run("marks active device", func(t *testing.T) {
		vol := 55
		output := string(DevicesToText([]models.Device{
			{ID: "d1", Name: "Phone", Type: "Smartphone", IsActive: true, VolumePercent: &vol},
			{ID: "d2", Name: "Laptop", Type: "Computer"},
		}))

		lines := strings.Split(strings.TrimSpace(output), "\n")
		if len(lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(lines))
		}
		if lines[0] != "* d1  Phone (Smartphone)  volume 55%" {
			t.Errorf("unexpected active line %q", lines[0])
		}
		if lines[1] != "  d2  Laptop (Computer)  volume -" {
			t.Errorf("unexpected inactive line %q", lines[1])
		}
	})
}

func TestSourceLabel(t *testing.T) {
	if SourceLabel(models.SourcePlaylistSearch) != "playlist search" {
		t.Error("unexpected label for playlist search")
	}
	if SourceLabel(models.Source("other")) != "other" {
		t.Error("unknown sources should pass through")
	}
}
