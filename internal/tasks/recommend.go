package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/moodmix/internal/models"
	"github.com/desertthunder/moodmix/internal/mood"
	"github.com/desertthunder/moodmix/internal/services"
	"github.com/desertthunder/moodmix/internal/shared"
)

type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeEmpty
	outcomeFailed
)

func (k outcomeKind) String() string {
	switch k {
	case outcomeSuccess:
		return "success"
	case outcomeEmpty:
		return "empty"
	default:
		return "failed"
	}
}

// directOutcome is the result of the personalized recommendation attempt.
// Anything but outcomeSuccess sends the request to [MoodEngine.Fallback].
type directOutcome struct {
	kind   outcomeKind
	result *models.RecommendationResult
	err    error
}

// Recommend validates token against Spotify, then tries personalized recommendations seeded from the
// user's history. An empty or failed attempt is replaced wholesale by [MoodEngine.Fallback].
func (e *MoodEngine) Recommend(ctx context.Context, emotion, token string) (*models.RecommendationResult, error) {
	label := normalizeLabel(emotion)
	if token == "" {
		return nil, fmt.Errorf("%w: no access token provided", shared.ErrUnauthorized)
	}

	if _, err := e.spotify.CurrentUser(ctx, token); err != nil {
		var se *services.StatusError
		if errors.As(err, &se) {
			return nil, fmt.Errorf("%w: invalid access token", shared.ErrUnauthorized)
		}
		e.logger.Warn("could not validate token, using playlist search", "emotion", label, "error", err)
		return e.Fallback(ctx, label, token)
	}

	out := e.direct(ctx, label, token)
	if out.kind == outcomeSuccess {
		e.logger.Info("personalized recommendations", "emotion", label, "tracks", len(out.result.Tracks))
		return out.result, nil
	}

	e.logger.Warn("recommendations unavailable, using playlist search", "emotion", label, "outcome", out.kind, "error", out.err)
	return e.Fallback(ctx, label, token)
}

// direct runs seed collection and the recommendations call. Panics are reported as outcomeFailed.
func (e *MoodEngine) direct(ctx context.Context, label, token string) (out directOutcome) {
	defer func() {
		if r := recover(); r != nil {
			out = directOutcome{kind: outcomeFailed, err: fmt.Errorf("%w: recovered: %v", shared.ErrUpstream, r)}
		}
	}()

	seeds := e.collectSeeds(ctx, token)
	profile := mood.Lookup(label)

	params := services.RecommendationParams{
		Limit:       recommendLimit,
		Market:      e.market,
		SeedTracks:  seeds.Tracks,
		SeedArtists: seeds.Artists,
		Tunables:    profile.Tunables(),
	}
	if seeds.Empty() {
		params.SeedGenres = profile.SeedGenres(maxSeeds)
	}

	items, err := e.spotify.Recommendations(ctx, token, params)
	if err != nil {
		return directOutcome{kind: outcomeFailed, err: err}
	}

	tracks := services.NormalizeTracks(services.Values(items), maxTracks)
	if len(tracks) == 0 {
		return directOutcome{kind: outcomeEmpty}
	}

	result := models.NewRecommendationResult(label, tracks, profile, personalizedName(label), models.SourceRecommendations)
	return directOutcome{kind: outcomeSuccess, result: result}
}
