// SPDX-License-Identifier: EPL-2.0

package builder

import (
	"bytes"

	"github.com/bytedance/sonic"

	"github.com/ik5/audwave/waveform"
)

func isJSONObject(b []byte) bool {
	trimmed := bytes.TrimSpace(b)

	return len(trimmed) > 0 && trimmed[0] == '{' && sonic.Valid(trimmed)
}

func (c *Call) buildLocal(src *LocalSource) {
	var (
		payload []byte
		decode  func([]byte) (*waveform.Data, error)
	)

	switch {
	case isJSONObject(src.JSON):
		payload, decode = src.JSON, c.b.codec.DecodeJSON
	case len(src.Binary) > 0:
		payload, decode = src.Binary, c.b.codec.DecodeBinary
	default:
		c.finish(nil, ErrFormatIncompatible)
		return
	}

	d, err := safely(func() (*waveform.Data, error) { return decode(payload) })
	if err == nil {
		err = checkWaveform(d)
	}
	if err != nil {
		c.finish(nil, err)
		return
	}

	c.finish(d, nil)
}
