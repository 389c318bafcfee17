package midi

import (
	"errors"
	"fmt"
)

// Kind is the type of a channel voice message. It is also the high four bits
// of the status byte.
type Kind byte

const (
	NoteOff = Kind(0x8 | byte(iota))
	NoteOn
	PolyPressure
	ControlChange
	ProgramChange
	ChannelPressure
	PitchBend
)

var kindNames = [...]string{
	NoteOff:         "note-off",
	NoteOn:          "note-on",
	PolyPressure:    "poly-pressure",
	ControlChange:   "cc",
	ProgramChange:   "program",
	ChannelPressure: "pressure",
	PitchBend:       "bend",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%#x)", byte(k))
}

// Message is a MIDI 1.0 channel voice message.
type Message struct {
	Kind    Kind
	Channel byte
	// Key is the note for note on/off and poly pressure, the controller for
	// control change and the program for program change.
	Key byte
	// Value is the velocity, pressure or controller value.
	Value byte
	// Bend is the 14 bit pitch bend, centred on 0x2000.
	Bend uint16
}

func (m Message) String() string {
	switch m.Kind {
	case PitchBend:
		return fmt.Sprintf("ch%d %v %d", m.Channel, m.Kind, m.Bend)
	case ProgramChange:
		return fmt.Sprintf("ch%d %v %d", m.Channel, m.Kind, m.Key)
	case ChannelPressure:
		return fmt.Sprintf("ch%d %v %d", m.Channel, m.Kind, m.Value)
	}
	return fmt.Sprintf("ch%d %v %d=%d", m.Channel, m.Kind, m.Key, m.Value)
}

var errNotChannelVoice = errors.New("not a channel voice message")

// dataBytes is the number of data bytes following each status.
func dataBytes(k Kind) int {
	switch k {
	case ProgramChange, ChannelPressure:
		return 1
	}
	return 2
}

// ParseMessage parses one channel voice message from raw and returns the
// rest of raw. A note on with zero velocity is reported as a note off.
func ParseMessage(raw []byte) (Message, []byte, error) {
	if len(raw) == 0 {
		return Message{}, nil, errors.New("no input")
	}
	status := raw[0]
	if status < 0x80 || status >= 0xF0 {
		return Message{}, raw[1:], fmt.Errorf("%w: status %#x", errNotChannelVoice, status)
	}
	msg := Message{
		Kind:    Kind(status >> 4),
		Channel: status & 0xF,
	}
	n := dataBytes(msg.Kind)
	if len(raw) < 1+n {
		return Message{}, nil, fmt.Errorf("%v: want %d data bytes, have %d", msg.Kind, n, len(raw)-1)
	}
	d := raw[1 : 1+n]
	switch msg.Kind {
	case NoteOff, NoteOn, PolyPressure, ControlChange:
		msg.Key = d[0] & 0x7F
		msg.Value = d[1] & 0x7F
		if msg.Kind == NoteOn && msg.Value == 0 {
			msg.Kind = NoteOff
		}
	case ProgramChange:
		msg.Key = d[0] & 0x7F
	case ChannelPressure:
		msg.Value = d[0] & 0x7F
	case PitchBend:
		msg.Bend = uint16(d[1]&0x7F)<<7 | uint16(d[0]&0x7F)
	}
	return msg, raw[1+n:], nil
}

// ParseMessages calls ParseMessage until the input is exhausted, skipping
// anything that is not a channel voice message.
func ParseMessages(raw []byte) ([]Message, error) {
	var messages []Message
	for len(raw) > 0 {
		msg, next, err := ParseMessage(raw)
		if errors.Is(err, errNotChannelVoice) {
			raw = next
			continue
		}
		if err != nil {
			return messages, err
		}
		messages = append(messages, msg)
		raw = next
	}
	return messages, nil
}
