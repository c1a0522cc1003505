package progress

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pageforge/pkg/pipeline"
)

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)
	d.Header("20260830-120000-abcd1234", "Acme Plumbing")

	out := buf.String()
	assert.Contains(t, out, "pageforge")
	assert.Contains(t, out, "Acme Plumbing")
	assert.Contains(t, out, "20260830-120000-abcd1234")
	assert.Contains(t, out, pipeline.Label(pipeline.StageDeploying))
}

func TestNotify_StageProgression(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)
	ctx := context.Background()

	require.NoError(t, d.Notify(ctx, "u", pipeline.Label(pipeline.StageExtracting)))
	require.NoError(t, d.Notify(ctx, "u", pipeline.Label(pipeline.StageResearching)))
	require.NoError(t, d.Notify(ctx, "u", pipeline.Label(pipeline.StageComplete)+"\nhttps://acme.pages.dev"))

	out := buf.String()
	assert.Contains(t, out, iconRunning+" "+pipeline.Label(pipeline.StageExtracting))
	assert.Contains(t, out, iconDone+" "+pipeline.Label(pipeline.StageExtracting),
		"first stage should be marked done when the second starts")
	assert.Contains(t, out, "https://acme.pages.dev")
}

func TestNotify_FailureAndPlainText(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)
	ctx := context.Background()

	require.NoError(t, d.Notify(ctx, "u", pipeline.Label(pipeline.StageFailed)+": wrangler exited with status 1"))
	require.NoError(t, d.Notify(ctx, "u", "Part 1/2\nsome plan text"))

	out := buf.String()
	assert.Contains(t, out, iconFailed)
	assert.Contains(t, out, "wrangler exited with status 1")
	assert.Contains(t, out, "Part 1/2")
}

func TestSendDocument(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)
	require.NoError(t, d.SendDocument(context.Background(), "u", "PLAN.md", []byte("plan")))
	assert.Contains(t, buf.String(), "PLAN.md")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "1m30s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d))
	}
}
