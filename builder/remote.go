// SPDX-License-Identifier: EPL-2.0

package builder

import (
	"github.com/ik5/audwave/transport"
	"github.com/ik5/audwave/waveform"
)

// pick returns the first supported format, binary before JSON, for which
// src has a URL.
func (c Capabilities) pick(src *RemoteSource) (string, transport.Format) {
	if c.Binary && src.BinaryURL != "" {
		return src.BinaryURL, transport.FormatBinary
	}
	if c.JSON && src.JSONURL != "" {
		return src.JSONURL, transport.FormatJSON
	}

	return "", ""
}

func (c *Call) fetchRemote(src *RemoteSource, withCredentials bool) {
	url, format := c.b.caps.pick(src)
	if url == "" {
		c.finish(nil, ErrEnvironmentIncompatible)
		return
	}

	decode := c.b.codec.DecodeBinary
	if format == transport.FormatJSON {
		decode = c.b.codec.DecodeJSON
	}

	c.fetch(url, format, withCredentials, func(body []byte) {
		d, err := safely(func() (*waveform.Data, error) { return decode(body) })
		if err == nil {
			err = checkWaveform(d)
		}
		if err != nil {
			c.finish(nil, err)
			return
		}

		c.finish(d, nil)
	})
}
