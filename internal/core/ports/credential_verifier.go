package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
)

// CredentialVerifier checks a caller's credential and resolves the acting
// identity. Both the HTTP API and the live notification gateway authenticate
// through this port, so swapping the token scheme never touches handlers.
type CredentialVerifier interface {
	// Verify validates the raw credential and returns the actor it encodes.
	// Returns errs.UnauthenticatedError when the credential is missing,
	// malformed, expired or otherwise unverifiable.
	Verify(ctx context.Context, credential string) (kernel.Actor, error)
}
