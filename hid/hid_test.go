package hid

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/pfcm/groove"
	"github.com/pfcm/groove/midi"
	"github.com/pfcm/groove/scale"
)

var testCCs = CCMap{Motion: 1, Brightness: 74, Density: 71, Tempo: 3}

func cc(n, v byte) midi.Message {
	return midi.Message{Kind: midi.ControlChange, Key: n, Value: v}
}

func TestHandleMessage(t *testing.T) {
	for _, c := range []struct {
		name    string
		msg     midi.Message
		handled bool
		want    func(*groove.Params)
	}{
		{"motion full", cc(1, 127), true, func(p *groove.Params) { p.Motion = 1 }},
		{"brightness off", cc(74, 0), true, func(p *groove.Params) { p.Brightness = 0 }},
		{"density full", cc(71, 127), true, func(p *groove.Params) { p.Density = 1 }},
		{"tempo bottom", cc(3, 0), true, func(p *groove.Params) { p.BPM = 60 }},
		{"tempo top", cc(3, 127), true, func(p *groove.Params) { p.BPM = 160 }},
		{"unassigned cc", cc(20, 90), false, func(*groove.Params) {}},
		{"cc zero", cc(0, 90), false, func(*groove.Params) {}},
		{"note on", midi.Message{Kind: midi.NoteOn, Key: 48, Value: 90}, true, func(p *groove.Params) { p.Root = 48 }},
		{"note off", midi.Message{Kind: midi.NoteOff, Key: 48}, false, func(*groove.Params) {}},
	} {
		h := groove.NewHost(groove.DefaultParams())
		handled := New(h, testCCs).HandleMessage(c.msg)
		if handled != c.handled {
			t.Errorf("%s: handled = %v, want: %v", c.name, handled, c.handled)
		}
		want := groove.DefaultParams()
		c.want(&want)
		got, _ := h.Params()
		if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("%s (-want +got):\n%s", c.name, diff)
		}
	}
}

func TestHandleKey(t *testing.T) {
	for _, c := range []struct {
		keys []string
		want func(*groove.Params)
	}{
		{[]string{"w", "w"}, func(p *groove.Params) { p.BPM = 104 }},
		{[]string{"s"}, func(p *groove.Params) { p.BPM = 98 }},
		{[]string{"a"}, func(p *groove.Params) { p.Scale = scale.Dorian }},
		{[]string{"up"}, func(p *groove.Params) { p.Motion = 0.1 }},
		{[]string{"down"}, func(p *groove.Params) { p.Motion = 0 }},
		{[]string{"right", "right"}, func(p *groove.Params) { p.Brightness = 0.6 }},
		{[]string{"left"}, func(p *groove.Params) { p.Brightness = 0.45 }},
		{[]string{"+"}, func(p *groove.Params) { p.Density = 0.4 }},
		{[]string{"-"}, func(p *groove.Params) { p.Density = 0.3 }},
		{[]string{"]", "]", "["}, func(p *groove.Params) { p.Root = 61 }},
		{[]string{"1", "3"}, func(p *groove.Params) { p.Arp, p.Perc = false, false }},
		{[]string{"2", "2"}, func(*groove.Params) {}},
	} {
		h := groove.NewHost(groove.DefaultParams())
		ctl := New(h, testCCs)
		for _, k := range c.keys {
			if !ctl.HandleKey(k) {
				t.Errorf("%v: key %q not handled", c.keys, k)
			}
		}
		want := groove.DefaultParams()
		c.want(&want)
		got, _ := h.Params()
		if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("%v (-want +got):\n%s", c.keys, diff)
		}
	}
}

func TestHandleKeyReseed(t *testing.T) {
	h := groove.NewHost(groove.DefaultParams())
	ctl := New(h, testCCs)
	if !ctl.HandleKey("d") {
		t.Fatalf("d not handled")
	}
	if ctl.HandleKey("z") {
		t.Errorf("z handled")
	}
}

func TestHandleKeyClosedHost(t *testing.T) {
	h := groove.NewHost(groove.DefaultParams())
	h.Close()
	if New(h, testCCs).HandleKey("w") {
		t.Errorf("key handled after host closed")
	}
}

func TestRun(t *testing.T) {
	h := groove.NewHost(groove.DefaultParams())
	msgs := make(chan midi.Message, 2)
	msgs <- cc(1, 127)
	msgs <- midi.Message{Kind: midi.NoteOn, Key: 40, Value: 1}
	close(msgs)
	if err := New(h, testCCs).Run(context.Background(), msgs); err != nil {
		t.Fatal(err)
	}
	got, _ := h.Params()
	if got.Motion != 1 || got.Root != 40 {
		t.Errorf("motion %v root %d, want 1 40", got.Motion, got.Root)
	}
}
