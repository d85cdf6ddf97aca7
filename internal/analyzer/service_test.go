package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClient struct {
	raw   map[string]any
	err   error
	delay time.Duration
	calls int
	last  string
}

func (f *fakeClient) Complete(ctx context.Context, system, user string) (map[string]any, error) {
	f.calls++
	f.last = user
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.raw, f.err
}

func TestQuick(t *testing.T) {
	t.Run("result is held back until the floor elapses", func(t *testing.T) {
		fake := &fakeClient{raw: map[string]any{"aiComment": "わかるよ"}}
		svc := NewService(fake, 120*time.Millisecond, time.Second, zap.NewNop())

		start := time.Now()
		res, err := svc.Quick(context.Background(), "テキスト")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 120*time.Millisecond)
		assert.Equal(t, "わかるよ", res.AIComment)
	})

	t.Run("a slow model is not additionally delayed", func(t *testing.T) {
		fake := &fakeClient{raw: map[string]any{}, delay: 150 * time.Millisecond}
		svc := NewService(fake, 100*time.Millisecond, time.Second, zap.NewNop())

		start := time.Now()
		_, err := svc.Quick(context.Background(), "テキスト")
		require.NoError(t, err)
		// Floor ran concurrently with the call, so the total stays near the
		// slower of the two rather than their sum.
		assert.Less(t, time.Since(start), 230*time.Millisecond)
	})

	t.Run("call failure surfaces as ErrModelUnavailable", func(t *testing.T) {
		fake := &fakeClient{err: errors.New("boom")}
		svc := NewService(fake, time.Millisecond, time.Second, zap.NewNop())

		_, err := svc.Quick(context.Background(), "テキスト")
		assert.ErrorIs(t, err, ErrModelUnavailable)
	})
}

func TestFull(t *testing.T) {
	t.Run("merges the full shape", func(t *testing.T) {
		fake := &fakeClient{raw: map[string]any{
			"highLevelCategories": []any{map[string]any{"name": "人間関係"}},
			"summary":             "短い要約",
			"thoughts":            []any{"考えすぎる傾向"},
		}}
		svc := NewService(fake, 0, time.Second, zap.NewNop())

		res, err := svc.Full(context.Background(), "友達と話した")
		require.NoError(t, err)
		assert.Equal(t, "🤝人間関係", res.HighLevelCategories[0].Name)
		assert.Equal(t, "短い要約", res.Summary)
		assert.Equal(t, []string{"考えすぎる傾向"}, res.Thoughts)
		assert.NotNil(t, res.Emotions)
		assert.Equal(t, 1, res.Posts)
	})

	t.Run("single attempt, no retry", func(t *testing.T) {
		fake := &fakeClient{err: errors.New("down")}
		svc := NewService(fake, 0, time.Second, zap.NewNop())

		_, err := svc.Full(context.Background(), "x")
		assert.ErrorIs(t, err, ErrModelUnavailable)
		assert.Equal(t, 1, fake.calls)
	})

	t.Run("oversized input is clipped before prompting", func(t *testing.T) {
		fake := &fakeClient{raw: map[string]any{}}
		svc := NewService(fake, 0, time.Second, zap.NewNop())

		_, err := svc.Full(context.Background(), strings.Repeat("あ", maxInputRunes+500))
		require.NoError(t, err)
		assert.LessOrEqual(t, len([]rune(fake.last)), maxInputRunes+len([]rune("テキスト:\n")))
	})
}
