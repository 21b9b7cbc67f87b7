package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestInit(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "spans.txt")
	require.NoError(t, Init("bpmflow", "0.0.1", fname))

	ctx, span := Start(context.Background(), "kernel.apply", Event("1.0.0", 1000, 10)...)
	childCtx, child := Start(ctx, "plugin.rule", PluginKey.String("rule"))
	assert.Equal(t,
		trace.SpanFromContext(ctx).SpanContext().TraceID(),
		trace.SpanFromContext(childCtx).SpanContext().TraceID())
	child.End(errors.New("validation failed"))
	span.End(nil)

	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Contains(t, string(data), "plugin.rule")
	assert.Contains(t, string(data), "bpmflow.task_id")
	assert.Contains(t, string(data), "validation failed")
}

func TestSpan_Nil(t *testing.T) {
	var span *Span
	span.End(errors.New("ignored"))
	assert.NoError(t, InitWithExporter("bpmflow", "0.0.1", nil))
}
