package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"conversation-service/internal/mocks"
	"conversation-service/internal/models"
	"conversation-service/internal/repositories"
	"conversation-service/internal/service"
)

func TestGetProfile(t *testing.T) {
	repo := new(mocks.ProfileRepositoryMock)
	mgr := service.NewProfileManager(repo)
	repo.On("GetUser", mock.Anything, "u1").Return(models.User{ID: "u1", Username: "alice"}, nil).Once()
	repo.On("ListPostsByUser", mock.Anything, "u1").Return([]models.Post{{ID: 2}, {ID: 1}}, nil).Once()
	repo.On("CountSavedPosts", mock.Anything, "u1").Return(3, nil).Once()
	repo.On("CountGroups", mock.Anything, "u1").Return(1, nil).Once()

	profile, err := mgr.GetProfile(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "alice", profile.User.Username)
	assert.Equal(t, 2, profile.PostCount)
	assert.Equal(t, 3, profile.SavedPostCount)
	assert.Equal(t, 1, profile.GroupCount)
	repo.AssertExpectations(t)
}

func TestGetProfileErrors(t *testing.T) {
	repo := new(mocks.ProfileRepositoryMock)
	mgr := service.NewProfileManager(repo)

	_, err := mgr.GetProfile(context.Background(), "")
	assert.Equal(t, service.KindInvalidArgument, service.KindOf(err))

	repo.On("GetUser", mock.Anything, "ghost").Return(nil, repositories.ErrUserNotFound).Once()
	_, err = mgr.GetProfile(context.Background(), "ghost")
	assert.Equal(t, service.KindNotFound, service.KindOf(err))

	repo.On("GetUser", mock.Anything, "u1").Return(models.User{ID: "u1"}, nil).Once()
	repo.On("ListPostsByUser", mock.Anything, "u1").Return(nil, assert.AnError).Once()
	_, err = mgr.GetProfile(context.Background(), "u1")
	assert.Equal(t, service.KindDependencyFailure, service.KindOf(err))
	repo.AssertExpectations(t)
}
