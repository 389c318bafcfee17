// command groove plays procedural music until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/pfcm/groove"
	"github.com/pfcm/groove/config"
	"github.com/pfcm/groove/hid"
	"github.com/pfcm/groove/io"
	"github.com/pfcm/groove/midi"
	"github.com/pfcm/groove/tui"
)

var (
	profileFlag = flag.Bool("profile", false, "whether to write pprof profiles to the current working directory")
	writeFlag   = flag.Bool("write", false, "if true, writes the output to a wav file in the current directory")
	noTUIFlag   = flag.Bool("notui", false, "print a meter line instead of running the terminal UI")
	verboseFlag = flag.Bool("v", false, "log at debug level")
	configFlag  = flag.String("config", "", "config file (default ~/.config/groove/config.json)")
	presetFlag  = flag.String("preset", "", "YAML preset to start from")
	backendFlag = flag.String("backend", "", "audio backend, malgo or oto (overrides config)")
	midiFlag    = flag.String("midi", "", "MIDI input port to listen to, by substring (overrides config)")
	seedFlag    = flag.Int("seed", 0, "seed; 0 means use the last seed, or the preset's")
	bpmFlag     = flag.Float64("bpm", 0, "tempo; 0 means use the preset's")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verboseFlag {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *profileFlag {
		finish, err := startProfiles()
		if err != nil {
			log.Fatalf("Starting profiling: %v", err)
		}
		defer func() {
			if err := finish(); err != nil {
				log.Fatalf("Finishing profiles: %v", err)
			}
		}()
	}

	cfgPath := *configFlag
	if cfgPath == "" {
		p, err := config.Path()
		if err != nil {
			log.Fatalf("Finding config: %v", err)
		}
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Loading config: %v", err)
	}
	if *backendFlag != "" {
		cfg.Audio.Backend = *backendFlag
	}
	if *midiFlag != "" {
		cfg.MIDI.Port = *midiFlag
	}

	params, err := startParams(cfg)
	if err != nil {
		log.Fatal(err)
	}
	host := groove.NewHost(params)
	r := groove.New(groove.Config{
		SampleRate: cfg.Audio.SampleRate,
		Channels:   cfg.Audio.Channels,
	}, host, host.Meters())
	slog.Info("starting", "renderer", r, "bpm", params.BPM, "scale", params.Scale, "seed", params.Seed)

	opts := io.Options{
		Backend: cfg.Audio.Backend,
		Buffer:  time.Duration(cfg.Audio.BufferMs) * time.Millisecond,
	}
	if *writeFlag {
		filename := fmt.Sprintf("out-%d.wav", time.Now().Unix())
		slog.Info("recording", "file", filename)
		f, err := os.Create(filename)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		opts.Tap = io.NewTap(f, r.Channels(), r.SampleRate())
	}

	g, ctx := errgroup.WithContext(interruptContext())
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	controls := hid.New(host, hid.CCMap{
		Motion:     cfg.MIDI.CCMotion,
		Brightness: cfg.MIDI.CCBrightness,
		Density:    cfg.MIDI.CCDensity,
		Tempo:      cfg.MIDI.CCTempo,
	})

	g.Go(func() error {
		return io.Play(ctx, r, opts)
	})
	g.Go(func() error {
		d := midi.Listen(ctx, midi.Port(cfg.MIDI.Port))
		msgs := d.Subscribe(midi.OnlyKinds(midi.ControlChange, midi.NoteOn))
		if err := controls.Run(ctx, msgs); err != nil {
			return err
		}
		// No MIDI is not fatal.
		if err := d.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			slog.Warn("midi input stopped", "err", err)
		}
		return nil
	})
	g.Go(func() error {
		defer cancel()
		if *noTUIFlag {
			return meterLine(ctx, host, cfg.UI.MeterFPS)
		}
		_, err := tea.NewProgram(tui.NewModel(host, controls, cfg.UI.MeterFPS), tea.WithContext(ctx)).Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	err = g.Wait()
	last, _ := host.Params()
	host.Close()
	midi.CloseDriver()
	if opts.Tap != nil {
		if err := opts.Tap.Close(); err != nil {
			slog.Error("finishing recording", "err", err)
		}
	}
	cfg.LastSeed = &last.Seed
	if err := cfg.Save(cfgPath); err != nil {
		slog.Warn("saving config", "err", err)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// startParams picks the initial parameters: the preset if there is one, then
// the remembered seed, then the flags.
func startParams(cfg *config.Config) (groove.Params, error) {
	p := groove.DefaultParams()
	if *presetFlag != "" {
		pre, err := config.LoadPreset(*presetFlag)
		if err != nil {
			return p, err
		}
		if p, err = pre.Params(); err != nil {
			return p, err
		}
	} else if cfg.LastSeed != nil {
		p.Seed = *cfg.LastSeed
	}
	if *seedFlag != 0 {
		p.Seed = int32(*seedFlag)
	}
	if *bpmFlag != 0 {
		p.BPM = *bpmFlag
	}
	return p, nil
}

func meterLine(ctx context.Context, h *groove.Host, fps int) error {
	if fps <= 0 {
		fps = 10
	}
	t0 := time.Now()
	t := time.NewTicker(time.Second / time.Duration(fps))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case <-t.C:
			v := h.Meters().Load()
			fmt.Printf("\r%.4f: rms %.2f  arp %.2f  pad %.2f  perc %.2f  bass %.2f  mid %.2f  treble %.2f",
				time.Since(t0).Seconds(), v.RMS, v.Arp, v.Pad, v.Perc, v.Bass, v.Mid, v.Treble)
		}
	}
}

func interruptContext() context.Context {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ctx
}

func startProfiles() (func() error, error) {
	cpu, err := os.Create("cpu.pprof")
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(cpu); err != nil {
		return nil, fmt.Errorf("starting cpu profile: %w", err)
	}

	mem, err := os.Create("mem.pprof")
	if err != nil {
		return nil, err
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := cpu.Close(); err != nil {
			return err
		}
		runtime.GC()
		if err := pprof.WriteHeapProfile(mem); err != nil {
			return err
		}
		return mem.Close()
	}, nil
}
