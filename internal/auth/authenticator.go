// Package auth provides credential verification and session token handling.
package auth

import (
	"context"

	"github.com/shariqwaseem/sw-clone/internal/models"
)

// Authenticator verifies user identity. The service layer depends on this
// interface so the credential scheme (password today, OAuth or passkeys
// later) can change without touching it.
type Authenticator interface {
	// Register creates a new account. The credential format depends on the
	// implementation; for password auth it is the plaintext password.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies credentials and returns the matching user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks whether the credential meets the
	// implementation's requirements before any storage is touched.
	ValidateCredential(credential string) error
}
