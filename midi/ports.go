package midi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// ErrNoPort is returned when no input port matches.
var ErrNoPort = errors.New("no matching MIDI input port")

// Ports lists the names of the MIDI input ports.
func Ports() []string {
	var names []string
	for _, p := range gomidi.GetInPorts() {
		names = append(names, p.String())
	}
	return names
}

// findPort returns the first input whose name contains name, ignoring case.
// An empty name matches the first port.
func findPort(ins []drivers.In, name string) (drivers.In, error) {
	name = strings.ToLower(name)
	for _, in := range ins {
		if strings.Contains(strings.ToLower(in.String()), name) {
			return in, nil
		}
	}
	if name == "" {
		return nil, ErrNoPort
	}
	return nil, fmt.Errorf("%w: %q", ErrNoPort, name)
}

// Port returns a Listener for the first input port whose name contains name.
func Port(name string) Listener {
	return func(ctx context.Context, f func([]byte)) error {
		in, err := findPort(gomidi.GetInPorts(), name)
		if err != nil {
			return err
		}
		stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, _ int32) {
			f(msg.Bytes())
		})
		if err != nil {
			return fmt.Errorf("listening to %q: %w", in, err)
		}
		defer stop()
		<-ctx.Done()
		return nil
	}
}

// CloseDriver releases the MIDI driver. Call it once on exit.
func CloseDriver() { gomidi.CloseDriver() }
