package notify

import (
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/generators"
	"github.com/faiface/beep/speaker"
)

const (
	chimeSampleRate = beep.SampleRate(44100)
	chimeFreq       = 880
	chimeDuration   = 150 * time.Millisecond
)

// Chime plays a short generated tone so the user knows the assistant is
// listening.
type Chime struct {
	once    sync.Once
	initErr error
}

func NewChime() *Chime {
	return &Chime{}
}

func (c *Chime) Play() {
	c.once.Do(func() {
		c.initErr = speaker.Init(chimeSampleRate, chimeSampleRate.N(time.Second/10))
	})
	if c.initErr != nil {
		return
	}

	tone, err := generators.SinTone(chimeSampleRate, chimeFreq)
	if err != nil {
		return
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(
		beep.Take(chimeSampleRate.N(chimeDuration), tone),
		beep.Callback(func() { close(done) }),
	))
	<-done
}
