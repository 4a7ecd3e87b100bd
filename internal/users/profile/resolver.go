// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

package profile

import (
	"context"
	"log/slog"
)

// Resolver maps an authenticated identity to its domain profile.
//
// # Failure Policy
//
// "Could not resolve" is always reported as absent, never as an error.
// Lookup failures (missing row, transport error, cancelled context) are
// logged and swallowed so a flaky profile store can degrade the caller to
// "not authenticated" instead of crashing it.
type Resolver struct {
	repository Repository
	logger     *slog.Logger
}

// NewResolver constructs a [Resolver].
func NewResolver(repository Repository, logger *slog.Logger) *Resolver {
	return &Resolver{repository: repository, logger: logger}
}

/*
Resolve performs the single-row lookup joining an identity ID to a Profile.

Parameters:
  - context: context.Context
  - identityID: string

Returns:
  - *Profile: The resolved profile, or nil
  - bool: false when no profile could be resolved for the identity
*/
func (resolver *Resolver) Resolve(context context.Context, identityID string) (*Profile, bool) {
	found, err := resolver.repository.FindByID(context, identityID)
	if err != nil {
		resolver.logger.Warn("profile_resolution_failed",
			slog.String("identity_id", identityID),
			slog.Any("error", err),
		)
		return nil, false
	}
	return found, true
}
