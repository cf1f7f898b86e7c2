package playback

import (
	"context"
	"fmt"
	"time"

	"github.com/jsphweid/melodygen/midi"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

type PlayStatus int

const (
	Played PlayStatus = iota
	// no driver registered or no output port to send to
	PlayUnsupported
	PlayFailed
)

func (s PlayStatus) String() string {
	switch s {
	case Played:
		return "played"
	case PlayUnsupported:
		return "unsupported"
	case PlayFailed:
		return "failed"
	}
	return fmt.Sprintf("PlayStatus(%d)", int(s))
}

type PlayResult struct {
	Status PlayStatus
	Port   string
	Err    error
}

// OutPortFinder resolves the port notes are sent to.
type OutPortFinder func(name string) (drivers.Out, error)

func DefaultOutPort(name string) (drivers.Out, error) {
	if name != "" {
		return gomidi.FindOutPort(name)
	}
	return gomidi.OutPort(0)
}

type PortPlayer struct {
	PortName string
	Find     OutPortFinder
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewPortPlayer(portName string) *PortPlayer {
	return &PortPlayer{PortName: portName, Find: DefaultOutPort}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Play sends the file at path to the output port in real time. It returns
// once the last event was sent or ctx is done.
func (p *PortPlayer) Play(ctx context.Context, path string) PlayResult {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return PlayResult{Status: PlayFailed, Err: err}
	}

	find := p.Find
	if find == nil {
		find = DefaultOutPort
	}
	out, err := find(p.PortName)
	if err != nil {
		return PlayResult{Status: PlayUnsupported, Err: fmt.Errorf("no midi output port: %w", err)}
	}
	result := PlayResult{Port: out.String()}

	send, err := gomidi.SendTo(out)
	if err != nil {
		result.Status = PlayUnsupported
		result.Err = err
		return result
	}

	sleep := p.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	started := time.Now()
	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			if !event.Message.IsPlayable() {
				continue
			}
			msg := gomidi.Message(event.Message)
			due := time.Duration(s.TimeAt(absTicks)) * time.Microsecond
			if err = sleep(ctx, due-time.Since(started)); err != nil {
				silence(send)
				result.Status = PlayFailed
				result.Err = err
				return result
			}
			if err = send(msg); err != nil {
				result.Status = PlayFailed
				result.Err = err
				return result
			}
		}
	}
	result.Status = Played
	return result
}

const allNotesOff = 123

// silence releases anything still sounding after an interrupted playback.
func silence(send func(gomidi.Message) error) {
	var ch uint8
	for ch = 0; ch < 16; ch++ {
		if err := send(gomidi.ControlChange(ch, allNotesOff, 0)); err != nil {
			return
		}
	}
}

func CloseDriver() {
	gomidi.CloseDriver()
}
