package cmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llamashift/llamashift/history"
)

func TestHistoryRender(t *testing.T) {
	runs := []history.Run{
		{
			Model:      "Llama-3.1-8B",
			Status:     history.StatusConverted,
			TotalBytes: 16_060_522_496,
			Duration:   90 * time.Second,
			StartedAt:  time.Now().Add(-72 * time.Hour),
		},
		{
			Model:     "Llama-2-13B",
			Status:    history.StatusFailed,
			StartedAt: time.Now().Add(-time.Hour),
		},
	}

	var out bytes.Buffer
	historyRender(&out, runs)

	got := out.String()
	assert.Contains(t, got, "MODEL")
	assert.Contains(t, got, "STATUS")
	assert.Contains(t, got, "Llama-3.1-8B")
	assert.Contains(t, got, "converted")
	assert.Contains(t, got, "16.1 GB")
	assert.Contains(t, got, "1 minute 30 seconds")
	assert.Contains(t, got, "3 days ago")
	assert.Contains(t, got, "Llama-2-13B")
	assert.Contains(t, got, "failed")
}

func TestHistoryRenderEmpty(t *testing.T) {
	var out bytes.Buffer
	historyRender(&out, nil)
	assert.Contains(t, out.String(), "MODEL")
}

func TestHistoryCommand(t *testing.T) {
	home := t.TempDir()
	loadTestConfig(t, "python3", home)

	store, err := history.Open(home)
	require.NoError(t, err)

	run := history.Run{
		ID:        uuid.New().String(),
		Model:     "Llama-3.2-1B",
		Status:    history.StatusConverted,
		StartedAt: time.Now(),
	}
	require.NoError(t, store.Add(run, nil))
	require.NoError(t, store.Close())

	cli := NewCLI()
	cli.SetArgs([]string{"history", "--limit", "5"})
	require.NoError(t, cli.ExecuteContext(context.Background()))
}
