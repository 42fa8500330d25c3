package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"netviz/core/graph"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) Submit(snap graph.Snapshot) (bool, error) {
	args := m.Called(snap.Nodes.IDs())
	return args.Bool(0), args.Error(1)
}

func TestConsume_SubmitsSnapshots(t *testing.T) {
	ch := make(chan *goredis.Message, 3)
	ch <- &goredis.Message{Channel: "c", Payload: `{"nodes":[{"id":"x"}],"edges":[]}`}
	ch <- &goredis.Message{Channel: "c", Payload: `not json`}
	ch <- &goredis.Message{Channel: "c", Payload: `{"nodes":[{"id":"y"}],"edges":[]}`}
	close(ch)

	sink := new(mockSubmitter)
	sink.On("Submit", []string{"x"}).Return(false, nil).Once()
	sink.On("Submit", []string{"y"}).Return(true, nil).Once()

	require.NoError(t, Consume(context.Background(), ch, sink, zap.NewNop()))
	sink.AssertExpectations(t)
}

func TestConsume_StopsOnSubmitError(t *testing.T) {
	ch := make(chan *goredis.Message, 2)
	ch <- &goredis.Message{Payload: `{"nodes":[],"edges":[]}`}
	ch <- &goredis.Message{Payload: `{"nodes":[],"edges":[]}`}

	sink := new(mockSubmitter)
	sink.On("Submit", mock.Anything).Return(false, errors.New("pump closed")).Once()

	err := Consume(context.Background(), ch, sink, zap.NewNop())
	assert.ErrorContains(t, err, "pump closed")
	sink.AssertNumberOfCalls(t, "Submit", 1)
}

func TestConsume_StopsOnContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := Consume(ctx, make(chan *goredis.Message), new(mockSubmitter), zap.NewNop())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
