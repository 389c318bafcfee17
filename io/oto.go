package io

import (
	"context"
	"fmt"

	"github.com/ebitengine/oto/v3"
)

// PlayOto plays src through oto, which pulls audio through an io.Reader
// rather than pushing it to a callback. It blocks until ctx is cancelled.
func PlayOto(ctx context.Context, src Source, opts Options) error {
	log := opts.logger().With("backend", Oto)
	octx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   src.SampleRate(),
		ChannelCount: src.Channels(),
		Format:       oto.FormatFloat32LE,
		BufferSize:   opts.Buffer,
	})
	if err != nil {
		return fmt.Errorf("initialising oto: %w", err)
	}
	select {
	case <-ready:
	case <-ctx.Done():
		return nil
	}

	player := octx.NewPlayer(newPump(src, opts.Tap))
	defer player.Close()
	player.Play()
	log.Info("playing", "source", src, "rate", src.SampleRate(), "channels", src.Channels())

	<-ctx.Done()
	player.Pause()
	return nil
}
