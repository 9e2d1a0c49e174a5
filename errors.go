// SPDX-License-Identifier: EPL-2.0

package audwave

import "errors"

var ErrMediaUnavailable = errors.New("media element has no source")
