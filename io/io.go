// package io plays a Source through an audio device and records it to wav
// files.
package io

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pfcm/groove/internal/buffer"
)

// Backends.
const (
	Malgo = "malgo"
	Oto   = "oto"
)

// ErrUnknownBackend is returned by Play for a backend it does not know.
var ErrUnknownBackend = errors.New("unknown audio backend")

// Source is anything that renders interleaved float32 audio one block at a
// time, such as a *groove.Renderer.
type Source interface {
	Channels() int
	SampleRate() int
	// Render fills out with n interleaved samples and returns how many it
	// wrote.
	Render(out []float32, n int) int
	fmt.Stringer
}

// Options controls playback.
type Options struct {
	// Backend is Malgo or Oto. Empty means Malgo.
	Backend string
	// Buffer is the device buffer length. Zero leaves it to the backend.
	Buffer time.Duration
	// Tap, if set, receives a copy of everything played.
	Tap *Tap
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Play runs src on the chosen backend until ctx is cancelled.
func Play(ctx context.Context, src Source, opts Options) error {
	switch opts.Backend {
	case "", Malgo:
		return PlayMalgo(ctx, src, opts)
	case Oto:
		return PlayOto(ctx, src, opts)
	}
	return fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
}

// pump moves audio from a Source into the byte buffers the devices hand us.
// It is used from a single device callback.
type pump struct {
	src   Source
	block *buffer.Block
	tap   *Tap
}

func newPump(src Source, tap *Tap) *pump {
	return &pump{
		src:   src,
		block: buffer.NewBlock(4096),
		tap:   tap,
	}
}

// fill renders as many whole frames as fit in out, encodes them as little
// endian float32 and returns the number of bytes written.
func (p *pump) fill(out []byte) int {
	frameSize := 4 * p.src.Channels()
	n := (len(out) / frameSize) * p.src.Channels()
	if n == 0 {
		return 0
	}
	samples := p.block.Samples(n)
	p.src.Render(samples, n)
	if p.tap != nil {
		p.tap.Write(samples)
	}
	return 4 * buffer.PutFloat32LE(out, samples)
}

// Read implements io.Reader for backends that pull audio.
func (p *pump) Read(b []byte) (int, error) {
	return p.fill(b), nil
}

func (p *pump) String() string { return fmt.Sprintf("pump(%v)", p.src) }
