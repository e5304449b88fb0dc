package colouring

import (
	"sync"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Palette is the per-trial colour state: the used colours (append-only, in introduction order)
// and the reserve pool of colours not yet introduced (a stack; the last listed reserve colour comes out first).
// Colours are identified by their index into names.
type Palette struct {
	mu        sync.Mutex
	names     []string
	used      []uint32
	initial   int
	reserve   *arraystack.Stack
	exhausted int
}

// NewPalette seeds used with the initial colours and the reserve stack with the reserve colours.
// Reserve entries that repeat an initial colour or an earlier reserve entry are dropped, keeping used and reserve disjoint.
func NewPalette(initial, reserve []string) (*Palette, error) {
	if len(initial) == 0 {
		return nil, errors.Wrap(ErrInvalidPalette, "no initial colours")
	}
	p := &Palette{reserve: arraystack.New(), initial: len(initial)}
	seen := make(map[string]bool, len(initial)+len(reserve))
	for _, name := range initial {
		if seen[name] {
			return nil, errors.Wrapf(ErrInvalidPalette, "initial colour %q repeated", name)
		}
		seen[name] = true
		p.used = append(p.used, uint32(len(p.names)))
		p.names = append(p.names, name)
	}
	for _, name := range reserve {
		if seen[name] {
			log.Warn().Msg("Dropping duplicate reserve colour " + name)
			continue
		}
		seen[name] = true
		p.reserve.Push(uint32(len(p.names)))
		p.names = append(p.names, name)
	}
	return p, nil
}

// Introduce moves the top reserve colour into the used palette and returns it.
// The single mutation point of the palette: each reserve colour is introduced at most once.
func (p *Palette) Introduce() (uint32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	top, ok := p.reserve.Pop()
	if !ok {
		p.exhausted++
		return 0, ErrReserveExhausted
	}
	c := top.(uint32)
	p.used = append(p.used, c)
	return c, nil
}

// Copy of the used colours, in introduction order.
func (p *Palette) Used() []uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]uint32(nil), p.used...)
}

// Appends the used colours to dst (reusing its storage).
func (p *Palette) UsedInto(dst []uint32) []uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append(dst[:0], p.used...)
}

func (p *Palette) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.used)
}

func (p *Palette) ReserveLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reserve.Size()
}

// Constant over the palette's lifetime.
func (p *Palette) Total() int {
	return len(p.names)
}

// The starting colours, which a generated graph draws from.
func (p *Palette) Initial() []uint32 {
	out := make([]uint32, p.initial)
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}

// Number of introductions attempted on an empty reserve.
func (p *Palette) Exhausted() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exhausted
}

func (p *Palette) Name(c uint32) string {
	if int(c) >= len(p.names) {
		return "?"
	}
	return p.names[c]
}

// Names of the used colours, in introduction order.
func (p *Palette) Names() []string {
	used := p.Used()
	out := make([]string, len(used))
	for i, c := range used {
		out[i] = p.names[c]
	}
	return out
}
