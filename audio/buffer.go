// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// Buffer is fully decoded, interleaved PCM held in memory.
// It implements Source so an already-decoded asset can be handed to the
// waveform generator without going through a Decoder.
type Buffer struct {
	sampleRate int
	channels   int
	data       []float32
	pos        int
}

// NewBuffer wraps interleaved samples. len(data) must be a multiple of
// channels.
func NewBuffer(sampleRate, channels int, data []float32) (*Buffer, error) {
	if channels <= 0 || len(data)%channels != 0 {
		return nil, ErrInvalidBuffer
	}

	return &Buffer{
		sampleRate: sampleRate,
		channels:   channels,
		data:       data,
	}, nil
}

// ReadAll drains src into a Buffer and closes src.
func ReadAll(src Source) (*Buffer, error) {
	defer src.Close()

	size := src.BufSize()
	if size <= 0 {
		size = 4096
	}
	size -= size % src.Channels()
	if size == 0 {
		size = src.Channels()
	}

	var data []float32
	chunk := make([]float32, size)

	for {
		n, err := src.ReadSamples(chunk)
		data = append(data, chunk[:n]...)

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return NewBuffer(src.SampleRate(), src.Channels(), data)
}

func (b *Buffer) SampleRate() int { return b.sampleRate }
func (b *Buffer) Channels() int   { return b.channels }
func (b *Buffer) BufSize() int    { return 4096 }
func (b *Buffer) Close() error    { return nil }

// Frames is the number of sample frames held by the buffer.
func (b *Buffer) Frames() int { return len(b.data) / b.channels }

// Rewind moves the read position back to the first frame.
func (b *Buffer) Rewind() { b.pos = 0 }

func (b *Buffer) ReadSamples(dst []float32) (int, error) {
	if b.pos >= len(b.data) {
		return 0, io.EOF
	}

	n := copy(dst[:len(dst)-len(dst)%b.channels], b.data[b.pos:])
	b.pos += n

	if b.pos >= len(b.data) {
		return n, io.EOF
	}

	return n, nil
}
