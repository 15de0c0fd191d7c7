package tui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Action is what a key press means in the current screen.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionSubmit
	ActionBackspace
	ActionRune
	ActionRandom
)

// key is the part of a tcell key event the client looks at.
type key struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

func fromEvent(ev *tcell.EventKey) key {
	return key{Key: ev.Key(), Rune: ev.Rune(), Mod: ev.Modifiers()}
}

// mapKey classifies a key press. Ctrl-C and Esc always quit.
func mapKey(k key) Action {
	switch k.Key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyEnter:
		return ActionSubmit
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ActionBackspace
	case tcell.KeyTab:
		return ActionRandom
	case tcell.KeyRune:
		if k.Mod&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return ActionNone
		}
		return ActionRune
	}
	return ActionNone
}

// keyRouter fans letter keys out to subscribers. A round subscribes when it
// starts and cancels when it ends, so keys pressed on the entry or result
// screens never reach a controller.
type keyRouter struct {
	mu   sync.Mutex
	next uint64
	subs map[uint64]func(rune)
}

func newKeyRouter() *keyRouter {
	return &keyRouter{subs: make(map[uint64]func(rune))}
}

// Subscribe registers fn and returns its cancel func. Cancel is idempotent.
func (kr *keyRouter) Subscribe(fn func(rune)) func() {
	kr.mu.Lock()
	id := kr.next
	kr.next++
	kr.subs[id] = fn
	kr.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			kr.mu.Lock()
			delete(kr.subs, id)
			kr.mu.Unlock()
		})
	}
}

// Dispatch delivers r to every subscriber and reports whether anyone
// was listening.
func (kr *keyRouter) Dispatch(r rune) bool {
	kr.mu.Lock()
	fns := make([]func(rune), 0, len(kr.subs))
	for _, fn := range kr.subs {
		fns = append(fns, fn)
	}
	kr.mu.Unlock()

	for _, fn := range fns {
		fn(r)
	}
	return len(fns) > 0
}

// Len returns the number of live subscriptions.
func (kr *keyRouter) Len() int {
	kr.mu.Lock()
	defer kr.mu.Unlock()
	return len(kr.subs)
}
