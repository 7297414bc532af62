package player

import (
	"fmt"
	"time"

	beep "github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// SpeakerSink plays through the system audio device at a fixed output
// rate, resampling streams that don't match.
type SpeakerSink struct {
	rate beep.SampleRate
}

// NewSpeakerSink opens the audio device. There can only be one per
// process.
func NewSpeakerSink(rate beep.SampleRate) (*SpeakerSink, error) {
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &SpeakerSink{rate: rate}, nil
}

// Play cuts off the current stream and starts the new one.
func (s *SpeakerSink) Play(stream beep.StreamSeekCloser, format beep.Format) {
	speaker.Clear()
	out := beep.Streamer(stream)
	if format.SampleRate != s.rate {
		out = beep.Resample(4, format.SampleRate, s.rate, stream)
	}
	speaker.Play(beep.Seq(out, beep.Callback(func() {
		_ = stream.Close()
	})))
}

// Close shuts down the audio device.
func (s *SpeakerSink) Close() {
	speaker.Close()
}
