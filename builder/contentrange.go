// SPDX-License-Identifier: EPL-2.0

package builder

import (
	"net/http"
	"regexp"
	"strconv"
)

var contentRangeRe = regexp.MustCompile(`^bytes (\d+)-(\d+)/(\d+)$`)

// CoversWholeResource reports whether the Content-Range header of a 206
// response spans the complete resource. A missing or malformed header
// never does.
func CoversWholeResource(h http.Header) bool {
	m := contentRangeRe.FindStringSubmatch(h.Get("Content-Range"))
	if m == nil {
		return false
	}

	first, err := strconv.ParseUint(m[1], 10, 63)
	if err != nil {
		return false
	}
	last, err := strconv.ParseUint(m[2], 10, 63)
	if err != nil {
		return false
	}
	total, err := strconv.ParseUint(m[3], 10, 63)
	if err != nil {
		return false
	}

	return first == 0 && last+1 == total
}

func acceptedStatus(status int, h http.Header) bool {
	return status == http.StatusOK ||
		(status == http.StatusPartialContent && CoversWholeResource(h))
}
