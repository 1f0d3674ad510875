// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import "errors"

// ErrMalformedMarkup identifies field content the pipeline cannot make sense
// of. The stages currently degrade gracefully instead of returning it.
var ErrMalformedMarkup = errors.New("malformed markup")
