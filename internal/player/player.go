package player

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	beep "github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// queueSize bounds pending playback requests. A full queue applies
// backpressure to the sender.
const queueSize = 10

// Sink is the audio output. Play replaces whatever is currently playing
// and takes ownership of the stream.
type Sink interface {
	Play(stream beep.StreamSeekCloser, format beep.Format)
	Close()
}

// DecodeFunc opens an audio file and returns its stream.
type DecodeFunc func(path string) (beep.StreamSeekCloser, beep.Format, error)

// Player feeds decoded preview files to a sink from a single worker
// goroutine.
type Player struct {
	sink      Sink
	decode    DecodeFunc
	requests  chan string
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New starts a player on sink. decode may be nil, in which case files are
// decoded by extension.
func New(sink Sink, decode DecodeFunc) *Player {
	if decode == nil {
		decode = DecodeFile
	}
	p := &Player{
		sink:     sink,
		decode:   decode,
		requests: make(chan string, queueSize),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go p.run()
	return p
}

// Play enqueues path for playback, blocking while the queue is full.
// After Close it returns without enqueuing.
func (p *Player) Play(path string) {
	select {
	case p.requests <- path:
	case <-p.stop:
	}
}

// Close stops the worker and releases the sink. Requests already enqueued
// are still played before the worker exits; Close is idempotent.
func (p *Player) Close() {
	p.closeOnce.Do(func() {
		close(p.stop)
		<-p.done
		p.sink.Close()
	})
}

func (p *Player) run() {
	defer close(p.done)
	for {
		select {
		case path := <-p.requests:
			p.play(path)
		case <-p.stop:
			for {
				select {
				case path := <-p.requests:
					p.play(path)
				default:
					return
				}
			}
		}
	}
}

func (p *Player) play(path string) {
	stream, format, err := p.decode(path)
	if err != nil {
		log.Printf("decode %s: %v", path, err)
		return
	}
	p.sink.Play(stream, format)
}

// DecodeFile decodes an audio file by extension. The returned stream owns
// the open file handle.
func DecodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("open %s: %w", path, err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		stream, format, err = wav.Decode(f)
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	default:
		err = fmt.Errorf("unsupported audio format %q", ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return stream, format, nil
}
