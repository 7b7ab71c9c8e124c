//go:build !headless

package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Oto outputs the tone using the oto audio library.
type Oto struct {
	ctx    *oto.Context
	player *oto.Player
	wave   *squareWave
	mutex  sync.Mutex
}

// NewOto initializes the audio device and starts the output of the silent tone.
func NewOto() (*Oto, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	o := &Oto{
		ctx:  ctx,
		wave: newSquareWave(SampleRate, ToneFrequency),
	}
	o.player = ctx.NewPlayer(o.wave)
	o.player.Play()
	return o, nil
}

// SetTone switches the tone on or off.
func (o *Oto) SetTone(on bool) {
	o.wave.on.Store(on)
}

// Close stops the audio output.
func (o *Oto) Close() error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.player == nil {
		return nil
	}
	err := o.player.Close()
	o.player = nil
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
