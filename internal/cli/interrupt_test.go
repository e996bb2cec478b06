package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterruptHandler_ContextCancellation(t *testing.T) {
	var buf bytes.Buffer
	handler := NewInterruptHandler(&buf)

	ctx := handler.HandleInterrupts(context.Background(), false)
	assert.NoError(t, ctx.Err())
	assert.False(t, handler.WasInterrupted())

	// Simulate the signal path directly.
	handler.mu.Lock()
	handler.interrupted = true
	handler.showInterruptMessage()
	handler.mu.Unlock()
	handler.cancelFunc()

	<-ctx.Done()
	assert.True(t, handler.WasInterrupted())
	assert.True(t, strings.Contains(buf.String(), "Interrupted"))
}

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatSuccess("saved"), "saved")
	assert.Contains(t, FormatError("boom"), "boom")
	assert.Contains(t, FormatWarning("careful"), "careful")
	assert.Contains(t, FormatInfo("fyi"), "fyi")
	assert.Contains(t, FormatTitle("Tax Package"), "Tax Package")
	assert.Contains(t, RenderBox("Totals", "net: 100"), "net: 100")
}
