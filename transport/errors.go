// SPDX-License-Identifier: EPL-2.0

package transport

import "errors"

var (
	ErrRequestFailed = errors.New("request failed")
	ErrBodyTooLarge  = errors.New("response body exceeds limit")
)
