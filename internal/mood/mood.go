// Package mood holds the fixed emotion table: for each of the eight supported emotions, the audio feature
// bounds, genre tags and mood keywords used to steer Spotify recommendations and playlist search.
//
// The table is built once at package init and never mutated; [Lookup] hands out copies.
package mood

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
)

// Emotion is one of the closed set of supported emotion labels.
type Emotion string

const (
	Happy     Emotion = "happy"
	Sad       Emotion = "sad"
	Angry     Emotion = "angry"
	Relaxed   Emotion = "relaxed"
	Surprised Emotion = "surprised"
	Fearful   Emotion = "fearful"
	Disgusted Emotion = "disgusted"
	Neutral   Emotion = "neutral"
)

// Bound is the kind of limit a [Constraint] places on a feature.
type Bound string

const (
	Min    Bound = "min"
	Max    Bound = "max"
	Target Bound = "target"
)

// Feature is a Spotify audio feature dimension.
type Feature string

const (
	Valence          Feature = "valence"
	Energy           Feature = "energy"
	Danceability     Feature = "danceability"
	Acousticness     Feature = "acousticness"
	Instrumentalness Feature = "instrumentalness"
	Loudness         Feature = "loudness"
)

// Constraint is a single tunable attribute, e.g. min_valence=0.6.
type Constraint struct {
	Bound   Bound
	Feature Feature
	Value   float64
}

// Key is the recommendation query parameter name for the constraint.
func (c Constraint) Key() string {
	return string(c.Bound) + "_" + string(c.Feature)
}

// Profile describes how an emotion maps onto music.
type Profile struct {
	Emotion     Emotion
	Constraints []Constraint
	Genres      []string
	Moods       []string
}

func minOf(f Feature, v float64) Constraint    { return Constraint{Min, f, v} }
func maxOf(f Feature, v float64) Constraint    { return Constraint{Max, f, v} }
func targetOf(f Feature, v float64) Constraint { return Constraint{Target, f, v} }

var order = []Emotion{Happy, Sad, Angry, Relaxed, Surprised, Fearful, Disgusted, Neutral}

var profiles = map[Emotion]Profile{
	Happy: {
		Constraints: []Constraint{minOf(Valence, 0.6), minOf(Energy, 0.6), targetOf(Danceability, 0.7)},
		Genres:      []string{"happy", "pop", "dance", "summer"},
		Moods:       []string{"happy", "cheerful", "upbeat", "positive"},
	},
	Sad: {
		Constraints: []Constraint{maxOf(Valence, 0.4), maxOf(Energy, 0.5), targetOf(Acousticness, 0.7)},
		Genres:      []string{"sad", "acoustic", "piano", "rain"},
		Moods:       []string{"sad", "melancholy", "lonely", "heartbreak"},
	},
	Angry: {
		Constraints: []Constraint{maxOf(Valence, 0.4), minOf(Energy, 0.7), targetOf(Loudness, -5)},
		Genres:      []string{"metal", "rock", "punk", "aggressive"},
		Moods:       []string{"angry", "aggressive", "intense", "rage"},
	},
	Relaxed: {
		Constraints: []Constraint{minOf(Valence, 0.4), maxOf(Energy, 0.4), targetOf(Acousticness, 0.6)},
		Genres:      []string{"chill", "ambient", "lofi", "meditation"},
		Moods:       []string{"calm", "peaceful", "relaxing", "serene"},
	},
	Surprised: {
		Constraints: []Constraint{minOf(Energy, 0.6), targetOf(Danceability, 0.6)},
		Genres:      []string{"edm", "electronic", "party", "festival"},
		Moods:       []string{"energetic", "exciting", "uplifting", "party"},
	},
	Fearful: {
		Constraints: []Constraint{maxOf(Valence, 0.3), targetOf(Instrumentalness, 0.5)},
		Genres:      []string{"dark ambient", "atmospheric", "cinematic"},
		Moods:       []string{"dark", "tense", "mysterious", "suspense"},
	},
	Disgusted: {
		Constraints: []Constraint{maxOf(Valence, 0.3), minOf(Energy, 0.5)},
		Genres:      []string{"alternative", "grunge", "industrial"},
		Moods:       []string{"dark", "gritty", "raw", "underground"},
	},
	Neutral: {
		Constraints: []Constraint{minOf(Valence, 0.4), maxOf(Valence, 0.6), minOf(Energy, 0.4), maxOf(Energy, 0.6)},
		Genres:      []string{"focus", "study", "work", "background"},
		Moods:       []string{"focus", "neutral", "balanced", "concentration"},
	},
}

func init() {
	for e, p := range profiles {
		p.Emotion = e
		profiles[e] = p
	}
}

// All returns every supported emotion in table order.
func All() []Emotion {
	return slices.Clone(order)
}

// Parse matches label case-insensitively against the supported emotions.
func Parse(label string) (Emotion, bool) {
	e := Emotion(strings.ToLower(strings.TrimSpace(label)))
	_, ok := profiles[e]
	return e, ok
}

// Lookup returns the profile for label, or the neutral profile when the label is not recognized.
func Lookup(label string) Profile {
	e, ok := Parse(label)
	if !ok {
		e = Neutral
	}
	return e.Profile()
}

// Profile returns a copy of the emotion's profile.
func (e Emotion) Profile() Profile {
	p, ok := profiles[e]
	if !ok {
		p = profiles[Neutral]
	}
	return Profile{
		Emotion:     p.Emotion,
		Constraints: slices.Clone(p.Constraints),
		Genres:      slices.Clone(p.Genres),
		Moods:       slices.Clone(p.Moods),
	}
}

// Tunables maps each constraint's query parameter name to its value.
func (p Profile) Tunables() map[string]float64 {
	out := make(map[string]float64, len(p.Constraints))
	for _, c := range p.Constraints {
		out[c.Key()] = c.Value
	}
	return out
}

// SeedGenres returns up to n genre tags in table order.
func (p Profile) SeedGenres(n int) []string {
	if n > len(p.Genres) {
		n = len(p.Genres)
	}
	return slices.Clone(p.Genres[:n])
}

// MarshalJSON writes the profile as a flat object: every constraint keyed by [Constraint.Key] in table
// order, then "genres" and "moods".
func (p Profile) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, c := range p.Constraints {
		if err := writeField(&buf, c.Key(), c.Value); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
	}
	if err := writeField(&buf, "genres", nonNil(p.Genres)); err != nil {
		return nil, err
	}
	buf.WriteByte(',')
	if err := writeField(&buf, "moods", nonNil(p.Moods)); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, key string, v any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	val, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(val)
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
