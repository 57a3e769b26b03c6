// Package media owns the playback and image resources that renderers drive:
// a command-driven Player for looping card videos and the ImageCache the
// gallery carousel prefetches into.
package media

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Op is a playback command.
type Op int

const (
	Play Op = iota
	Pause
	Seek
)

func (o Op) String() string {
	switch o {
	case Play:
		return "play"
	case Pause:
		return "pause"
	case Seek:
		return "seek"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Command is one instruction sent to a Player. To is only meaningful for
// Seek.
type Command struct {
	Op Op
	To time.Duration
}

func (c Command) String() string {
	if c.Op == Seek {
		return "seek:" + strconv.FormatFloat(c.To.Seconds(), 'f', -1, 64)
	}
	return c.Op.String()
}

// Restart rewinds to the beginning and starts playback.
var Restart = []Command{{Op: Seek}, {Op: Play}}

// Rewind pauses and returns to the beginning.
var Rewind = []Command{{Op: Pause}, {Op: Seek}}

// State is the observable state of a Player.
type State struct {
	Playing  bool
	Position time.Duration
}

// Player models a single media element. Commands update its state
// immediately and are journaled so they can be replayed against the real
// element on the client.
type Player struct {
	mu      sync.Mutex
	state   State
	journal []Command
	subs    map[int]func(State)
	nextSub int
}

// NewPlayer returns a paused player at position zero.
func NewPlayer() *Player {
	return &Player{subs: make(map[int]func(State))}
}

// Do applies cmds in order. Subscribers see the state after each command
// that changes it.
func (p *Player) Do(cmds ...Command) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, cmd := range cmds {
		next := p.state
		switch cmd.Op {
		case Play:
			next.Playing = true
		case Pause:
			next.Playing = false
		case Seek:
			if cmd.To < 0 {
				cmd.To = 0
			}
			next.Position = cmd.To
		default:
			continue
		}
		p.journal = append(p.journal, cmd)
		if next != p.state {
			p.state = next
			p.publish()
		}
	}
}

// Advance moves the position forward by d while playing.
func (p *Player) Advance(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.state.Playing || d <= 0 {
		return
	}
	p.state.Position += d
	p.publish()
}

// State returns the current state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Take returns the commands applied since the last call and clears the
// journal.
func (p *Player) Take() []Command {
	p.mu.Lock()
	defer p.mu.Unlock()
	cmds := p.journal
	p.journal = nil
	return cmds
}

// Subscribe registers fn for state changes and returns a func that removes
// it. fn runs with the player locked.
func (p *Player) Subscribe(fn func(State)) (unsubscribe func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

func (p *Player) publish() {
	for _, fn := range p.subs {
		fn(p.state)
	}
}

// Encode renders cmds as the space-separated script the client replays,
// e.g. "seek:0 play".
func Encode(cmds []Command) string {
	parts := make([]string, len(cmds))
	for i, c := range cmds {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Decode parses a script produced by Encode.
func Decode(script string) ([]Command, error) {
	var cmds []Command
	for _, f := range strings.Fields(script) {
		name, arg, hasArg := strings.Cut(f, ":")
		switch name {
		case "play":
			cmds = append(cmds, Command{Op: Play})
		case "pause":
			cmds = append(cmds, Command{Op: Pause})
		case "seek":
			if !hasArg {
				return nil, fmt.Errorf("media: seek without position in %q", f)
			}
			secs, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return nil, fmt.Errorf("media: bad seek position %q: %w", arg, err)
			}
			cmds = append(cmds, Command{Op: Seek, To: time.Duration(secs * float64(time.Second))})
		default:
			return nil, fmt.Errorf("media: unknown command %q", f)
		}
	}
	return cmds, nil
}
