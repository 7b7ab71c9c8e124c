package audio

import (
	"encoding/binary"
	"io"
	"sync/atomic"
)

const (
	// SampleRate is the output sample rate in Hz.
	SampleRate = 44100
	// ToneFrequency is the frequency of the beep tone in Hz.
	ToneFrequency = 440

	amplitude      = 0x1800
	bytesPerSample = 2
)

// squareWave is a reader producing signed 16 bit little endian mono samples
// of a square wave while the tone is on, and silence otherwise.
type squareWave struct {
	on     atomic.Bool
	phase  int // sample position within the current period
	period int // samples per period
}

func newSquareWave(sampleRate, frequency int) *squareWave {
	return &squareWave{
		period: sampleRate / frequency,
	}
}

// Read implements io.Reader, it is called from the audio output goroutine.
// Only whole samples are written, a buffer too small for a single sample
// returns io.ErrShortBuffer.
func (s *squareWave) Read(p []byte) (int, error) {
	if len(p) < bytesPerSample {
		return 0, io.ErrShortBuffer
	}

	on := s.on.Load()
	n := len(p) / bytesPerSample * bytesPerSample

	for i := 0; i < n; i += bytesPerSample {
		var sample int16
		if on {
			sample = amplitude
			if s.phase >= s.period/2 {
				sample = -amplitude
			}
		}
		binary.LittleEndian.PutUint16(p[i:], uint16(sample))

		s.phase++
		if s.phase >= s.period {
			s.phase = 0
		}
	}
	return n, nil
}
