// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"bytes"
	"encoding/binary"
	"errors"
	"slices"
	"testing"
)

func binaryPayload(version int, flags uint32, channels, sampleRate, scale, length int, body []byte) []byte {
	var buf bytes.Buffer

	_ = binary.Write(&buf, binary.LittleEndian, int32(version))
	_ = binary.Write(&buf, binary.LittleEndian, flags)
	_ = binary.Write(&buf, binary.LittleEndian, int32(sampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, int32(scale))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(length))
	if version == 2 {
		_ = binary.Write(&buf, binary.LittleEndian, int32(channels))
	}
	buf.Write(body)

	return buf.Bytes()
}

func TestDecodeBinary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		payload  []byte
		channels int
		bits     int
		samples  []int16
	}{
		{
			name:     "v1 8-bit",
			payload:  binaryPayload(1, flag8Bit, 1, 44100, 512, 2, []byte{0xF6, 0x0A, 0x80, 0x7F}),
			channels: 1,
			bits:     8,
			samples:  []int16{-10, 10, -128, 127},
		},
		{
			name:     "v1 16-bit",
			payload:  binaryPayload(1, 0, 1, 44100, 512, 1, []byte{0x00, 0x80, 0xFF, 0x7F}),
			channels: 1,
			bits:     16,
			samples:  []int16{-32768, 32767},
		},
		{
			name:     "v2 stereo 8-bit",
			payload:  binaryPayload(2, flag8Bit, 2, 8000, 256, 1, []byte{0xFF, 0x01, 0xFE, 0x02}),
			channels: 2,
			bits:     8,
			samples:  []int16{-1, 1, -2, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := Codec{}.DecodeBinary(tt.payload)
			if err != nil {
				t.Fatalf("DecodeBinary() error = %v", err)
			}

			if d.Channels != tt.channels {
				t.Errorf("Channels = %d, want %d", d.Channels, tt.channels)
			}
			if d.Bits != tt.bits {
				t.Errorf("Bits = %d, want %d", d.Bits, tt.bits)
			}
			if !slices.Equal(d.Samples, tt.samples) {
				t.Errorf("Samples = %v, want %v", d.Samples, tt.samples)
			}
		})
	}
}

func TestDecodeBinary_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload []byte
		want    error
	}{
		{name: "empty", payload: nil, want: ErrInvalidHeader},
		{name: "v1 header only", payload: binaryPayload(1, flag8Bit, 1, 8000, 256, 0, nil), want: nil},
		{name: "version 3", payload: binaryPayload(3, flag8Bit, 1, 8000, 256, 0, nil), want: ErrUnsupportedVersion},
		{name: "truncated body", payload: binaryPayload(1, flag8Bit, 1, 8000, 256, 4, []byte{1, 2}), want: ErrTruncated},
		{name: "zero channels", payload: binaryPayload(2, flag8Bit, 0, 8000, 256, 0, nil), want: ErrInvalidHeader},
		{name: "zero scale", payload: binaryPayload(1, flag8Bit, 1, 8000, 0, 0, nil), want: ErrInvalidHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeBinary(tt.payload)
			if tt.want == nil {
				if err != nil {
					t.Errorf("DecodeBinary() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("DecodeBinary() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeBinary_V2HeaderTooShort(t *testing.T) {
	t.Parallel()

	payload := binaryPayload(2, flag8Bit, 1, 8000, 256, 0, nil)[:22]
	if _, err := DecodeBinary(payload); !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("DecodeBinary() error = %v, want ErrInvalidHeader", err)
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	t.Run("v1 without channels", func(t *testing.T) {
		t.Parallel()

		d, err := Codec{}.DecodeJSON([]byte(`{"version":1,"sample_rate":44100,"samples_per_pixel":512,"bits":8,"length":2,"data":[-1,1,-2,2]}`))
		if err != nil {
			t.Fatalf("DecodeJSON() error = %v", err)
		}
		if d.Channels != 1 {
			t.Errorf("Channels = %d, want 1", d.Channels)
		}
		if d.Min(0, 1) != -2 || d.Max(0, 1) != 2 {
			t.Errorf("index 1 = (%d, %d), want (-2, 2)", d.Min(0, 1), d.Max(0, 1))
		}
	})

	t.Run("v2 stereo", func(t *testing.T) {
		t.Parallel()

		d, err := DecodeJSON([]byte(`{"version":2,"channels":2,"sample_rate":8000,"samples_per_pixel":80,"bits":8,"length":1,"data":[-5,5,-7,7]}`))
		if err != nil {
			t.Fatalf("DecodeJSON() error = %v", err)
		}
		if d.Max(1, 0) != 7 {
			t.Errorf("Max(1, 0) = %d, want 7", d.Max(1, 0))
		}
		if d.PixelsPerSecond() != 100 {
			t.Errorf("PixelsPerSecond() = %v, want 100", d.PixelsPerSecond())
		}
	})

	t.Run("length mismatch", func(t *testing.T) {
		t.Parallel()

		_, err := DecodeJSON([]byte(`{"version":2,"channels":1,"sample_rate":8000,"samples_per_pixel":80,"bits":8,"length":3,"data":[0,0]}`))
		if !errors.Is(err, ErrTruncated) {
			t.Errorf("DecodeJSON() error = %v, want ErrTruncated", err)
		}
	})

	t.Run("not json", func(t *testing.T) {
		t.Parallel()

		if _, err := DecodeJSON([]byte("not json")); !errors.Is(err, ErrInvalidHeader) {
			t.Errorf("DecodeJSON() error = %v, want ErrInvalidHeader", err)
		}
	})
}

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	in := &Data{
		Version:         2,
		Channels:        2,
		SampleRate:      44100,
		SamplesPerPixel: 512,
		Bits:            8,
		Length:          2,
		Samples:         []int16{-10, 10, -20, 20, -30, 30, -128, 127},
	}

	var bin bytes.Buffer
	if err := EncodeBinary(&bin, in); err != nil {
		t.Fatalf("EncodeBinary() error = %v", err)
	}
	if bin.Len() != headerSizeV2+len(in.Samples) {
		t.Errorf("EncodeBinary() wrote %d bytes, want %d", bin.Len(), headerSizeV2+len(in.Samples))
	}

	fromBin, err := DecodeBinary(bin.Bytes())
	if err != nil {
		t.Fatalf("DecodeBinary() error = %v", err)
	}
	if !slices.Equal(fromBin.Samples, in.Samples) {
		t.Errorf("binary samples = %v, want %v", fromBin.Samples, in.Samples)
	}

	var js bytes.Buffer
	if err := EncodeJSON(&js, in); err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}

	fromJSON, err := DecodeJSON(js.Bytes())
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	if !slices.Equal(fromJSON.Samples, fromBin.Samples) {
		t.Errorf("json samples = %v, binary samples = %v", fromJSON.Samples, fromBin.Samples)
	}
	if fromJSON.Channels != 2 || fromJSON.Length != 2 {
		t.Errorf("json header = %+v", fromJSON)
	}
}

func TestEncodeBinary_Invalid(t *testing.T) {
	t.Parallel()

	err := EncodeBinary(&bytes.Buffer{}, &Data{Version: 1, Channels: 2, SampleRate: 1, SamplesPerPixel: 1, Bits: 8})
	if !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("EncodeBinary() error = %v, want ErrInvalidHeader", err)
	}
}
