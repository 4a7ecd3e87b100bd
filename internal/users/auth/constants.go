// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// We keep it short (15m) to minimize the impact of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// SessionTokenTTL is the duration a persisted session remains valid.
	// Long-lived (30 days) so students and teachers are not forced to
	// re-enter credentials on every visit.
	SessionTokenTTL = 30 * 24 * time.Hour

	// SessionTokenLength is the byte length of the random secure token.
	SessionTokenLength = 32
)
