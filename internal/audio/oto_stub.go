//go:build headless

package audio

import "errors"

// ErrNoAudioSupport is returned by NewOto in headless builds.
var ErrNoAudioSupport = errors.New("audio output is not supported in headless builds")

// Oto stub for headless builds
type Oto struct{}

// NewOto returns an error as headless builds have no audio support.
func NewOto() (*Oto, error) {
	return nil, ErrNoAudioSupport
}

func (o *Oto) SetTone(_ bool) {}
func (o *Oto) Close() error   { return nil }
