package worker

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/service"
)

func TestStartNotificationWorker(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	dispatcher := events.NewInMemoryDispatcher()

	var forwarded []events.EventType
	publisher := func(_ context.Context, e events.Event) error {
		forwarded = append(forwarded, e.Type)
		return nil
	}

	StartNotificationWorker(dispatcher, service.NewNotificationService(dispatcher, logger), publisher, logger)

	for _, et := range events.AllTicketEvents {
		require.NoError(t, dispatcher.Publish(context.Background(), events.NewTicketEvent(et, uuid.New(), events.Actor{Username: "root"}, nil)))
	}

	assert.Equal(t, events.AllTicketEvents, forwarded)
	assert.Equal(t, len(events.AllTicketEvents), logs.FilterField(zap.String("actor", "root")).Len())
}

func TestStartNotificationWorkerWithoutPublisher(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	StartNotificationWorker(dispatcher, nil, nil, zap.NewNop())
	assert.NoError(t, dispatcher.Publish(context.Background(), events.NewTicketEvent(events.EventTicketDeleted, uuid.New(), events.Actor{}, nil)))
}
