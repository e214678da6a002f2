package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"conversation-service/internal/telemetry"
)

// PublisherMock records audit envelopes handed to the broker.
type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, event any) error {
	return m.Called(ctx, routingKey, event).Error(0)
}

func (m *PublisherMock) Close() error {
	return m.Called().Error(0)
}

var _ telemetry.Publisher = (*PublisherMock)(nil)
