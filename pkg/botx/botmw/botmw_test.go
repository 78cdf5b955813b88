package botmw

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Semior001/newsview/pkg/botx"
	"github.com/Semior001/newsview/pkg/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

var req = botx.Request{Chat: botx.Chat{ID: "1"}, Text: "/news"}

func TestRecover(t *testing.T) {
	h := Recover(slog.New(logx.NoOp()))(func(context.Context, botx.Request) ([]botx.Response, error) {
		panic("oops")
	})

	resps, err := h(context.Background(), req)
	assert.Nil(t, resps)
	assert.EqualError(t, err, "panic: oops")
}

func TestErrorReply(t *testing.T) {
	failing := func(context.Context, botx.Request) ([]botx.Response, error) {
		return nil, errors.New("boom")
	}

	h := RequestID()(ErrorReply("try later")(failing))
	resps, err := h(context.Background(), req)
	require.EqualError(t, err, "boom")
	require.Len(t, resps, 1)
	assert.Equal(t, "1", resps[0].ChatID)
	assert.Contains(t, resps[0].Text, "try later\n\nRequest ID: `")

	ok := ErrorReply("try later")(func(context.Context, botx.Request) ([]botx.Response, error) {
		return []botx.Response{{ChatID: "1", Text: "fine"}}, nil
	})
	resps, err = ok(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []botx.Response{{ChatID: "1", Text: "fine"}}, resps)
}

func TestTimeout(t *testing.T) {
	slow := Timeout(10 * time.Millisecond)(func(ctx context.Context, _ botx.Request) ([]botx.Response, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	_, err := slow(context.Background(), req)
	assert.ErrorIs(t, err, ErrTimeout)

	fast := Timeout(time.Second)(func(context.Context, botx.Request) ([]botx.Response, error) {
		return []botx.Response{{ChatID: "1"}}, nil
	})
	resps, err := fast(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resps, 1)
}

func TestAllowChats(t *testing.T) {
	h := AllowChats([]string{"2"})(func(context.Context, botx.Request) ([]botx.Response, error) {
		return []botx.Response{{ChatID: "1"}}, nil
	})
	resps, err := h(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resps)

	h = AllowChats(nil)(func(context.Context, botx.Request) ([]botx.Response, error) {
		return []botx.Response{{ChatID: "1"}}, nil
	})
	resps, err = h(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resps, 1)
}

func TestRequestID(t *testing.T) {
	h := RequestID()(func(ctx context.Context, _ botx.Request) ([]botx.Response, error) {
		id, ok := logx.RequestIDFromContext(ctx)
		assert.True(t, ok)
		assert.NotEmpty(t, id)
		return nil, nil
	})
	_, err := h(context.Background(), req)
	require.NoError(t, err)
}
