// command groove-render renders a fixed length of music to a wav file. The
// same flags always give the same file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pfcm/groove"
	"github.com/pfcm/groove/config"
	"github.com/pfcm/groove/io"
	"github.com/pfcm/groove/scale"
)

var (
	outFlag      = flag.String("o", "groove.wav", "output `file`")
	durationFlag = flag.Duration("d", 30*time.Second, "how much to render")
	presetFlag   = flag.String("preset", "", "YAML preset to render")
	seedFlag     = flag.Int("seed", 0, "seed, overriding the preset's when non-zero")
	bpmFlag      = flag.Float64("bpm", 0, "tempo, overriding the preset's when non-zero")
	scaleFlag    = flag.String("scale", "", "scale name, overriding the preset's")
	motionFlag   = flag.Float64("motion", -1, "motion in [0, 1], overriding the preset's when set")
	rateFlag     = flag.Int("rate", groove.DefaultSampleRate, "sample rate")
	channelsFlag = flag.Int("channels", groove.DefaultChannels, "1 or 2 channels")
	savePresetFlag = flag.String("save-preset", "", "also write the parameters used as a YAML preset to this `file`")
)

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("groove-render: ")
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	p, err := params()
	if err != nil {
		log.Fatal(err)
	}
	r := groove.New(groove.Config{SampleRate: *rateFlag, Channels: *channelsFlag}, fixed(p), nil)
	frames := int(durationFlag.Seconds() * float64(r.SampleRate()))

	t0 := time.Now()
	if err := render(*outFlag, r, frames); err != nil {
		log.Fatal(err)
	}
	if *savePresetFlag != "" {
		if err := writePreset(*savePresetFlag, r.Params()); err != nil {
			log.Fatal(err)
		}
	}
	summarise(r, time.Since(t0))
}

// fixed is a ParamSource that never changes.
type fixed groove.Params

func (f fixed) Params() (groove.Params, bool) { return groove.Params(f), true }

func params() (groove.Params, error) {
	pre := config.PresetFrom(groove.DefaultParams())
	if *presetFlag != "" {
		var err error
		if pre, err = config.LoadPreset(*presetFlag); err != nil {
			return groove.Params{}, err
		}
	}
	p, err := pre.Params()
	if err != nil {
		return p, err
	}
	if *seedFlag != 0 {
		p.Seed = int32(*seedFlag)
	}
	if *bpmFlag != 0 {
		p.BPM = *bpmFlag
	}
	if *scaleFlag != "" {
		s, ok := scale.Parse(*scaleFlag)
		if !ok {
			return p, fmt.Errorf("%w: %q", config.ErrUnknownScale, *scaleFlag)
		}
		p.Scale = s
	}
	if *motionFlag >= 0 {
		p.Motion = *motionFlag
	}
	return p, nil
}

func render(path string, r *groove.Renderer, frames int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := io.WriteWAV(w, r, frames); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writePreset(path string, p groove.Params) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := config.PresetFrom(p).Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func summarise(r *groove.Renderer, took time.Duration) {
	var (
		pr = message.NewPrinter(language.English)
		st = r.Stats()
		p  = r.Params()
		m  = r.Meters().Load()
		tw = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	)
	secs := float64(st.Frames) / float64(r.SampleRate())
	pr.Fprintf(tw, "file\t%s\n", *outFlag)
	pr.Fprintf(tw, "frames\t%d (%.1fs at %dHz, %.0fx realtime)\n", st.Frames, secs, r.SampleRate(), secs/took.Seconds())
	pr.Fprintf(tw, "params\t%.1fbpm root %d %v seed %d\n", p.BPM, p.Root, p.Scale, p.Seed)
	pr.Fprintf(tw, "triggers\tarp %d\tpad %d\tperc %d\n", st.Arp, st.Pad, st.Perc)
	pr.Fprintf(tw, "final rms\t%.3f\n", m.RMS)
	tw.Flush()
}
