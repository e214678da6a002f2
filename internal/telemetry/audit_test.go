package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"conversation-service/internal/mocks"
	"conversation-service/internal/telemetry"
)

func TestEmitPublishesEnvelope(t *testing.T) {
	pub := new(mocks.PublisherMock)
	emitter := telemetry.NewAuditEmitter(pub, "audit.test", "conversation-service", "test")

	var captured telemetry.AuditEnvelope
	pub.On("Publish", mock.Anything, "audit.test", mock.AnythingOfType("telemetry.AuditEnvelope")).
		Run(func(args mock.Arguments) { captured = args.Get(2).(telemetry.AuditEnvelope) }).
		Return(nil).Once()

	user := "u1"
	room := 42
	emitter.Emit(context.Background(), telemetry.AuditEvent{
		Level:     "INFO",
		Action:    "conversation.deleted",
		Text:      "conversation deleted",
		RequestID: "req-9",
		UserID:    &user,
		RoomID:    &room,
	})

	pub.AssertExpectations(t)
	assert.Equal(t, "audit_log", captured.EventType)
	assert.Equal(t, "req-9", captured.RequestID)
	assert.Equal(t, "conversation.deleted", captured.Payload.Action)
	require.NotNil(t, captured.Payload.RoomID)
	assert.Equal(t, 42, *captured.Payload.RoomID)
	assert.Empty(t, captured.TraceID)
}

func TestEmitSwallowsPublishError(t *testing.T) {
	pub := new(mocks.PublisherMock)
	emitter := telemetry.NewAuditEmitter(pub, "audit.test", "svc", "test")
	pub.On("Publish", mock.Anything, "audit.test", mock.Anything).Return(assert.AnError).Once()

	assert.NotPanics(t, func() {
		emitter.Emit(context.Background(), telemetry.AuditEvent{Level: "INFO", Action: "message.sent"})
	})
	pub.AssertExpectations(t)
}

func TestNilEmitterIsNoop(t *testing.T) {
	var emitter *telemetry.AuditEmitter
	assert.NotPanics(t, func() {
		emitter.Emit(context.Background(), telemetry.AuditEvent{Action: "noop"})
	})
}
