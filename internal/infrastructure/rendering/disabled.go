package rendering

import (
	"context"
)

// DisabledRenderer is used when headless Chrome is turned off. Render calls
// fail with a RENDER_FAILED error; HTML previews are unaffected.
type DisabledRenderer struct{}

// NewDisabledRenderer creates a renderer that rejects all render requests
func NewDisabledRenderer() *DisabledRenderer {
	return &DisabledRenderer{}
}

// Render always fails because no rendering backend is configured
func (r *DisabledRenderer) Render(_ context.Context, _ *RenderRequest) (*RenderResult, error) {
	return nil, NewRenderError(ErrCodeRenderFailed, "PDF rendering is not enabled on this server", nil)
}

// Close is a no-op
func (r *DisabledRenderer) Close() error {
	return nil
}

var _ PDFRenderer = (*DisabledRenderer)(nil)
