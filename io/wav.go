package io

import (
	"fmt"
	goio "io"
	"math"

	"github.com/youpy/go-wav"

	"github.com/pfcm/groove/internal/num"
)

const bitDepth = 16

// wavChannels is how many channels of a source end up in a wav file. The
// sample type holds at most two.
func wavChannels(channels int) int { return num.Clamp(channels, 1, 2) }

func pcm16(f float32) int {
	return int(math.Round(float64(num.Clamp(f, -1, 1)) * math.MaxInt16))
}

// toSamples converts whole interleaved frames to wav samples, appending to
// dst.
func toSamples(dst []wav.Sample, in []float32, channels int) []wav.Sample {
	for i := 0; i+channels <= len(in); i += channels {
		var s wav.Sample
		s.Values[0] = pcm16(in[i])
		if channels > 1 {
			s.Values[1] = pcm16(in[i+1])
		}
		dst = append(dst, s)
	}
	return dst
}

// WriteWAV renders frames frames of src as 16 bit PCM wav to w.
func WriteWAV(w goio.Writer, src Source, frames int) error {
	const blockFrames = 4096
	var (
		ch      = src.Channels()
		ww      = wav.NewWriter(w, uint32(frames), uint16(wavChannels(ch)), uint32(src.SampleRate()), bitDepth)
		buf     = make([]float32, blockFrames*ch)
		samples = make([]wav.Sample, 0, blockFrames)
	)
	for done := 0; done < frames; {
		n := min(blockFrames, frames-done) * ch
		src.Render(buf[:n], n)
		samples = toSamples(samples[:0], buf[:n], ch)
		if err := ww.WriteSamples(samples); err != nil {
			return fmt.Errorf("writing wav after %d frames: %w", done, err)
		}
		done += n / ch
	}
	return nil
}

// Tap records live audio to a wav file. The length is unknown until the tap
// is closed, so the header is written twice: once up front and again, with
// the final length, by Close.
type Tap struct {
	w          goio.WriteSeeker
	ww         *wav.Writer
	channels   int
	sampleRate int
	frames     uint32
	samples    []wav.Sample
	err        error
}

// NewTap starts a wav file on w for audio with the given layout.
func NewTap(w goio.WriteSeeker, channels, sampleRate int) *Tap {
	return &Tap{
		w:          w,
		ww:         wav.NewWriter(w, 0, uint16(wavChannels(channels)), uint32(sampleRate), bitDepth),
		channels:   channels,
		sampleRate: sampleRate,
	}
}

// Write appends interleaved samples. After the first error it does nothing;
// the error is reported by Close.
func (t *Tap) Write(interleaved []float32) {
	if t.err != nil {
		return
	}
	t.samples = toSamples(t.samples[:0], interleaved, t.channels)
	if err := t.ww.WriteSamples(t.samples); err != nil {
		t.err = err
		return
	}
	t.frames += uint32(len(t.samples))
}

// Frames is the number of frames recorded so far.
func (t *Tap) Frames() int { return int(t.frames) }

// Close rewrites the header with the recorded length. It does not close the
// underlying writer.
func (t *Tap) Close() error {
	if t.err != nil {
		return fmt.Errorf("recording: %w", t.err)
	}
	end, err := t.w.Seek(0, goio.SeekCurrent)
	if err != nil {
		return err
	}
	if _, err := t.w.Seek(0, goio.SeekStart); err != nil {
		return err
	}
	wav.NewWriter(t.w, t.frames, uint16(wavChannels(t.channels)), uint32(t.sampleRate), bitDepth)
	_, err = t.w.Seek(end, goio.SeekStart)
	return err
}

func (t *Tap) String() string {
	return fmt.Sprintf("Tap(%dch, %dHz, %d frames)", t.channels, t.sampleRate, t.frames)
}
