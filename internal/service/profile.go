package service

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"conversation-service/internal/models"
	"conversation-service/internal/repositories"
)

const opGetProfile = "get_profile"

// ProfileManager aggregates a user row with their posts and counters.
type ProfileManager struct {
	repo repositories.ProfileRepository
}

func NewProfileManager(repo repositories.ProfileRepository) *ProfileManager {
	return &ProfileManager{repo: repo}
}

var _ ProfileService = (*ProfileManager)(nil)

func (m *ProfileManager) GetProfile(ctx context.Context, userID string) (profile models.Profile, err error) {
	ctx, span := tracer.Start(ctx, "profile.get", trace.WithAttributes(attribute.String("user.id", userID)))
	defer func() { finish(ctx, span, opGetProfile, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return models.Profile{}, invalidArgument("userId is required")
	}

	user, err := m.repo.GetUser(ctx, userID)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return models.Profile{}, notFound("user not found")
	}
	if err != nil {
		return models.Profile{}, dependencyFailure("failed to load user", err)
	}

	posts, err := m.repo.ListPostsByUser(ctx, userID)
	if err != nil {
		return models.Profile{}, dependencyFailure("failed to load posts", err)
	}
	saved, err := m.repo.CountSavedPosts(ctx, userID)
	if err != nil {
		return models.Profile{}, dependencyFailure("failed to count saved posts", err)
	}
	groups, err := m.repo.CountGroups(ctx, userID)
	if err != nil {
		return models.Profile{}, dependencyFailure("failed to count groups", err)
	}

	return models.Profile{
		User:           user,
		Posts:          posts,
		PostCount:      len(posts),
		SavedPostCount: saved,
		GroupCount:     groups,
	}, nil
}
