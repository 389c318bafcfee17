package io

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/malgo"
)

// PlayMalgo plays src on the default output device through miniaudio. It
// blocks until ctx is cancelled.
func PlayMalgo(ctx context.Context, src Source, opts Options) error {
	log := opts.logger().With("backend", Malgo)
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		log.Debug("miniaudio", "msg", strings.TrimSpace(msg))
	})
	if err != nil {
		return fmt.Errorf("initialising malgo: %w", err)
	}
	defer func() {
		mctx.Uninit()
		mctx.Free()
	}()

	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatF32
	cfg.Playback.Channels = uint32(src.Channels())
	cfg.SampleRate = uint32(src.SampleRate())
	if opts.Buffer > 0 {
		cfg.PeriodSizeInMilliseconds = uint32(opts.Buffer.Milliseconds())
	}

	p := newPump(src, opts.Tap)
	recv := func(out, _ []byte, framecount uint32) {
		if framecount == 0 {
			return
		}
		n := p.fill(out)
		clear(out[n:])
	}

	device, err := malgo.InitDevice(mctx.Context, cfg, malgo.DeviceCallbacks{
		Data: recv,
	})
	if err != nil {
		return fmt.Errorf("opening playback device: %w", err)
	}
	defer device.Uninit()
	if err := device.Start(); err != nil {
		return fmt.Errorf("starting playback device: %w", err)
	}
	log.Info("playing", "source", src, "rate", src.SampleRate(), "channels", src.Channels())

	<-ctx.Done()
	return nil
}
