package provider

import (
	"context"
	"errors"

	"github.com/pulsepixeltech/chatcore/core"
)

// CallError classifies a failed provider call into a ProviderError. Vendor
// adapters pass the HTTP status extracted from their SDK error (0 when
// unavailable). Deadline expiry and cancellation both map to the timeout
// kind: either way the call was aborted and the chain moves on.
func CallError(providerName string, ctx context.Context, err error, status int) *core.ProviderError {
	kind := core.ErrKindTransport
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		ctx.Err() != nil:
		kind = core.ErrKindTimeout
	case status == 401 || status == 403:
		kind = core.ErrKindAuthFailure
	}
	return core.NewProviderError(providerName, kind, err)
}
