// package formatter renders recommendation results and device lists for the terminal (text, Markdown, CSV, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/desertthunder/moodmix/internal/models"
	"github.com/desertthunder/moodmix/internal/mood"
	"github.com/desertthunder/moodmix/internal/shared"
)

// Format names an output encoding.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
	CSV      Format = "csv"
	JSON     Format = "json"
)

// Formats lists the supported formats in display order.
var Formats = []Format{Text, Markdown, CSV, JSON}

// ParseFormat accepts a format name (case-insensitive); "md" is an alias for markdown.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "md" {
		f = Markdown
	}
	if f == "" {
		f = Text
	}
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
	}
	return f, nil
}

// Render encodes result in format f.
func Render(result *models.RecommendationResult, f Format) ([]byte, error) {
	switch f {
	case Text:
		return ResultToText(result)
	case Markdown:
		return ResultToMarkdown(result)
	case CSV:
		return ResultToCSV(result)
	case JSON:
		return json.MarshalIndent(result, "", "  ")
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, f)
	}
}

// ResultToCSV writes one row per track with columns: ID, Name, Artist, URI, Preview URL, Image
func ResultToCSV(result *models.RecommendationResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"ID", "Name", "Artist", "URI", "Preview URL", "Image"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range result.Tracks {
		record := []string{track.ID, track.Name, track.Artist, track.URI, deref(track.PreviewURL), deref(track.Image)}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ResultToMarkdown renders the playlist name as a heading, the audio features used, then a numbered track list.
func ResultToMarkdown(result *models.RecommendationResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", result.PlaylistName)
	fmt.Fprintf(&buf, "**Emotion**: %s\n", result.Emotion)
	fmt.Fprintf(&buf, "**Source**: %s\n", SourceLabel(result.Source))
	fmt.Fprintf(&buf, "**Tracks**: %d\n\n", len(result.Tracks))

	if features := Features(result.FeaturesUsed); len(features) > 0 {
		buf.WriteString("## Audio features\n\n")
		for _, f := range features {
			fmt.Fprintf(&buf, "- `%s`: %s\n", f[0], f[1])
		}
		buf.WriteString("\n")
	}

	buf.WriteString("## Tracks\n\n")
	for i, track := range result.Tracks {
		fmt.Fprintf(&buf, "%d. %s - %s (`%s`)\n", i+1, track.Artist, track.Name, track.URI)
	}

	return buf.Bytes(), nil
}

// ResultToText renders a plain numbered track list.
func ResultToText(result *models.RecommendationResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Playlist: %s\n", result.PlaylistName)
	fmt.Fprintf(&buf, "Source: %s\n", SourceLabel(result.Source))
	fmt.Fprintf(&buf, "Tracks: %d\n\n", len(result.Tracks))

	for i, track := range result.Tracks {
		fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, track.Artist, track.Name)
	}

	return buf.Bytes(), nil
}

// DevicesToText renders one line per device, marking the active one.
func DevicesToText(devices []models.Device) []byte {
	if len(devices) == 0 {
		return []byte("No devices found. Open Spotify on your phone, computer, or web player.\n")
	}

	var buf bytes.Buffer
	for _, d := range devices {
		marker := " "
		if d.IsActive {
			marker = "*"
		}
		volume := "-"
		if d.VolumePercent != nil {
			volume = strconv.Itoa(*d.VolumePercent) + "%"
		}
		fmt.Fprintf(&buf, "%s %s  %s (%s)  volume %s\n", marker, d.ID, d.Name, d.Type, volume)
	}
	return buf.Bytes()
}

// SourceLabel describes where a result came from.
func SourceLabel(s models.Source) string {
	switch s {
	case models.SourceRecommendations:
		return "personalized recommendations"
	case models.SourcePlaylistSearch:
		return "playlist search"
	default:
		return string(s)
	}
}

// Features lists a profile's constraints as key/value pairs in profile order.
func Features(p mood.Profile) [][2]string {
	out := make([][2]string, 0, len(p.Constraints))
	for _, c := range p.Constraints {
		out = append(out, [2]string{c.Key(), strconv.FormatFloat(c.Value, 'f', -1, 64)})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
