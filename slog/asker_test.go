package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mkrawiec/scrapbook/mock"
	scrapslog "github.com/mkrawiec/scrapbook/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingAsker_Ask(t *testing.T) {
	t.Parallel()

	t.Run("logs sizes and duration but not content", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Asker{
			AskFn: func(ctx context.Context, prompt string) (string, error) {
				return "Q1: What does O(n) mean?", nil
			},
		}

		asker := scrapslog.NewLoggingAsker(inner, logger)
		answer, err := asker.Ask(context.Background(), "Write a quiz.")

		require.NoError(t, err)
		assert.Equal(t, "Q1: What does O(n) mean?", answer)
		output := buf.String()
		assert.Contains(t, output, "ask")
		assert.Contains(t, output, "prompt_bytes=13")
		assert.Contains(t, output, "answer_bytes=24")
		assert.Contains(t, output, "duration=")
		assert.NotContains(t, output, "Write a quiz.")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Asker{
			AskFn: func(ctx context.Context, prompt string) (string, error) {
				return "", errors.New("quota exceeded")
			},
		}

		asker := scrapslog.NewLoggingAsker(inner, logger)
		_, err := asker.Ask(context.Background(), "prompt")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "err=\"quota exceeded\"")
	})
}
