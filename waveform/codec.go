// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
)

const (
	headerSizeV1 = 20
	headerSizeV2 = 24

	flag8Bit = 0x1
)

// Codec decodes audiowaveform binary and JSON payloads.
// The zero value is ready to use.
type Codec struct{}

func (Codec) DecodeBinary(payload []byte) (*Data, error) { return DecodeBinary(payload) }
func (Codec) DecodeJSON(payload []byte) (*Data, error)   { return DecodeJSON(payload) }

// DecodeBinary parses a version 1 or 2 binary waveform.
func DecodeBinary(b []byte) (*Data, error) {
	if len(b) < headerSizeV1 {
		return nil, fmt.Errorf("%w: %d byte header", ErrInvalidHeader, len(b))
	}

	d := &Data{
		Version:  int(int32(binary.LittleEndian.Uint32(b[0:4]))),
		Channels: 1,
	}

	header := headerSizeV1
	switch d.Version {
	case 1:
	case 2:
		if len(b) < headerSizeV2 {
			return nil, fmt.Errorf("%w: %d byte header", ErrInvalidHeader, len(b))
		}
		d.Channels = int(int32(binary.LittleEndian.Uint32(b[20:24])))
		header = headerSizeV2
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, d.Version)
	}

	flags := binary.LittleEndian.Uint32(b[4:8])
	d.Bits = 16
	if flags&flag8Bit != 0 {
		d.Bits = 8
	}
	d.SampleRate = int(int32(binary.LittleEndian.Uint32(b[8:12])))
	d.SamplesPerPixel = int(int32(binary.LittleEndian.Uint32(b[12:16])))
	length := uint64(binary.LittleEndian.Uint32(b[16:20]))

	if d.Channels < 1 {
		return nil, fmt.Errorf("%w: channels=%d", ErrInvalidHeader, d.Channels)
	}

	body := b[header:]
	count := length * uint64(d.Channels) * 2
	width := uint64(d.Bits / 8)
	if uint64(len(body)) < count*width {
		return nil, fmt.Errorf("%w: have %d bytes, want %d", ErrTruncated, len(body), count*width)
	}

	d.Length = int(length)
	d.Samples = make([]int16, count)
	for i := range d.Samples {
		if d.Bits == 8 {
			d.Samples[i] = int16(int8(body[i]))
		} else {
			d.Samples[i] = int16(binary.LittleEndian.Uint16(body[i*2:]))
		}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// EncodeBinary writes d in the binary format matching d.Version.
func EncodeBinary(w io.Writer, d *Data) error {
	if err := d.Validate(); err != nil {
		return err
	}

	header := headerSizeV1
	if d.Version == 2 {
		header = headerSizeV2
	}
	width := d.Bits / 8

	out := make([]byte, header+len(d.Samples)*width)

	var flags uint32
	if d.Bits == 8 {
		flags = flag8Bit
	}

	binary.LittleEndian.PutUint32(out[0:4], uint32(d.Version))
	binary.LittleEndian.PutUint32(out[4:8], flags)
	binary.LittleEndian.PutUint32(out[8:12], uint32(d.SampleRate))
	binary.LittleEndian.PutUint32(out[12:16], uint32(d.SamplesPerPixel))
	binary.LittleEndian.PutUint32(out[16:20], uint32(d.Length))
	if d.Version == 2 {
		binary.LittleEndian.PutUint32(out[20:24], uint32(d.Channels))
	}

	body := out[header:]
	for i, s := range d.Samples {
		if width == 1 {
			body[i] = byte(int8(s))
		} else {
			binary.LittleEndian.PutUint16(body[i*2:], uint16(s))
		}
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

type jsonData struct {
	Version         int     `json:"version"`
	Channels        int     `json:"channels,omitempty"`
	SampleRate      int     `json:"sample_rate"`
	SamplesPerPixel int     `json:"samples_per_pixel"`
	Bits            int     `json:"bits"`
	Length          int     `json:"length"`
	Data            []int16 `json:"data"`
}

// DecodeJSON parses the JSON waveform format. Version 1 documents have no
// channels field and are treated as mono.
func DecodeJSON(b []byte) (*Data, error) {
	var j jsonData
	if err := sonic.Unmarshal(b, &j); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}

	if j.Channels == 0 {
		j.Channels = 1
	}

	d := &Data{
		Version:         j.Version,
		Channels:        j.Channels,
		SampleRate:      j.SampleRate,
		SamplesPerPixel: j.SamplesPerPixel,
		Bits:            j.Bits,
		Length:          j.Length,
		Samples:         j.Data,
	}
	if d.Samples == nil {
		d.Samples = []int16{}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// EncodeJSON writes d in the JSON format.
func EncodeJSON(w io.Writer, d *Data) error {
	if err := d.Validate(); err != nil {
		return err
	}

	j := jsonData{
		Version:         d.Version,
		SampleRate:      d.SampleRate,
		SamplesPerPixel: d.SamplesPerPixel,
		Bits:            d.Bits,
		Length:          d.Length,
		Data:            d.Samples,
	}
	if d.Version == 2 {
		j.Channels = d.Channels
	}

	out, err := sonic.Marshal(&j)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
