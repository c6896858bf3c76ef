package doodle

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyCode is a virtual key code using browser keyCode numbering, so letters
// are their upper-case ASCII value and Space is 32. Any value may be
// registered; codes with no physical key simply never fire from a keyboard.
type KeyCode int

// Default movement bindings.
const (
	KeySpacebar KeyCode = 32
	KeyLeft     KeyCode = 65 // A
	KeyRight    KeyCode = 68 // D
	KeyDown     KeyCode = 83 // S
	KeyUp       KeyCode = 87 // W
)

// KeyAction is the edge a key handler reacts to.
type KeyAction uint8

const (
	KeyPressed  KeyAction = iota // the key went down this frame, or repeated
	KeyReleased                  // the key went up this frame
)

// A held key repeats KeyPressed after keyRepeatDelay ticks, then every
// keyRepeatInterval ticks, like a browser's keydown auto-repeat.
const (
	keyRepeatDelay    = 30
	keyRepeatInterval = 3
)

// keyRepeats reports whether a key held for d ticks fires this tick.
func keyRepeats(d int) bool {
	return d == 1 || (d >= keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0)
}

// KeyEvent describes a key press or release.
type KeyEvent struct {
	Code KeyCode
	// Key is the Ebitengine key, or -1 for injected codes with no mapping.
	Key       ebiten.Key
	Modifiers KeyModifiers
	// Repeat is set on KeyPressed events fired while the key stays held.
	Repeat bool
}

// keyHandler is a wrapper that filters on a single code.
type keyHandler func(KeyEvent)

// KeyDispatcher holds key handlers per action. Handlers are append-only and
// fire in registration order. Registering a second handler for a code never
// replaces the first.
type KeyDispatcher struct {
	down []keyHandler
	up   []keyHandler
}

// NewKeyDispatcher returns an empty dispatcher.
func NewKeyDispatcher() *KeyDispatcher {
	return &KeyDispatcher{}
}

// OnKeyDown registers fn to run when code is pressed.
func (d *KeyDispatcher) OnKeyDown(code KeyCode, fn func(KeyEvent)) {
	d.down = append(d.down, matchCode(code, fn))
}

// OnKeyUp registers fn to run when code is released.
func (d *KeyDispatcher) OnKeyUp(code KeyCode, fn func(KeyEvent)) {
	d.up = append(d.up, matchCode(code, fn))
}

func matchCode(code KeyCode, fn func(KeyEvent)) keyHandler {
	return func(ev KeyEvent) {
		if ev.Code == code {
			fn(ev)
		}
	}
}

// Dispatch runs every handler registered for action, in registration order.
// Handlers whose code differs from ev.Code do nothing.
func (d *KeyDispatcher) Dispatch(action KeyAction, ev KeyEvent) {
	var list []keyHandler
	switch action {
	case KeyPressed:
		list = d.down
	case KeyReleased:
		list = d.up
	}
	for _, h := range list {
		h(ev)
	}
}

// Len returns the number of handlers registered for action.
func (d *KeyDispatcher) Len(action KeyAction) int {
	switch action {
	case KeyPressed:
		return len(d.down)
	case KeyReleased:
		return len(d.up)
	}
	return 0
}

// --- Scene integration ---

// Keys returns the scene's key dispatcher.
func (s *Scene) Keys() *KeyDispatcher { return s.keys }

// OnKeyDown registers fn on the scene's dispatcher.
func (s *Scene) OnKeyDown(code KeyCode, fn func(KeyEvent)) { s.keys.OnKeyDown(code, fn) }

// OnKeyUp registers fn on the scene's dispatcher.
func (s *Scene) OnKeyUp(code KeyCode, fn func(KeyEvent)) { s.keys.OnKeyUp(code, fn) }

// processKeys dispatches queued injected key events, then this frame's
// physical presses (including auto-repeats) and releases.
func (s *Scene) processKeys(mods KeyModifiers) {
	if len(s.keyQueue) > 0 {
		pending := s.keyQueue
		s.keyQueue = nil
		for _, k := range pending {
			ev := k.event
			ev.Modifiers |= mods
			s.keys.Dispatch(k.action, ev)
		}
	}

	s.keyBuf = s.input.pressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		d := s.input.keyPressDuration(k)
		if !keyRepeats(d) {
			continue
		}
		if code, ok := KeyCodeOf(k); ok {
			s.keys.Dispatch(KeyPressed, KeyEvent{Code: code, Key: k, Modifiers: mods, Repeat: d > 1})
		}
	}
	s.keyBuf = s.input.justReleasedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		if code, ok := KeyCodeOf(k); ok {
			s.keys.Dispatch(KeyReleased, KeyEvent{Code: code, Key: k, Modifiers: mods})
		}
	}
}

// --- Ebitengine key mapping ---

var keyCodes = map[ebiten.Key]KeyCode{
	ebiten.KeyBackspace:      8,
	ebiten.KeyTab:            9,
	ebiten.KeyEnter:          13,
	ebiten.KeyShiftLeft:      16,
	ebiten.KeyShiftRight:     16,
	ebiten.KeyControlLeft:    17,
	ebiten.KeyControlRight:   17,
	ebiten.KeyAltLeft:        18,
	ebiten.KeyAltRight:       18,
	ebiten.KeyPause:          19,
	ebiten.KeyCapsLock:       20,
	ebiten.KeyEscape:         27,
	ebiten.KeySpace:          32,
	ebiten.KeyPageUp:         33,
	ebiten.KeyPageDown:       34,
	ebiten.KeyEnd:            35,
	ebiten.KeyHome:           36,
	ebiten.KeyArrowLeft:      37,
	ebiten.KeyArrowUp:        38,
	ebiten.KeyArrowRight:     39,
	ebiten.KeyArrowDown:      40,
	ebiten.KeyInsert:         45,
	ebiten.KeyDelete:         46,
	ebiten.KeyMetaLeft:       91,
	ebiten.KeyMetaRight:      92,
	ebiten.KeyNumpadMultiply: 106,
	ebiten.KeyNumpadAdd:      107,
	ebiten.KeyNumpadSubtract: 109,
	ebiten.KeyNumpadDecimal:  110,
	ebiten.KeyNumpadDivide:   111,
	ebiten.KeyNumLock:        144,
	ebiten.KeyScrollLock:     145,
	ebiten.KeySemicolon:      186,
	ebiten.KeyEqual:          187,
	ebiten.KeyComma:          188,
	ebiten.KeyMinus:          189,
	ebiten.KeyPeriod:         190,
	ebiten.KeySlash:          191,
	ebiten.KeyBackquote:      192,
	ebiten.KeyBracketLeft:    219,
	ebiten.KeyBackslash:      220,
	ebiten.KeyBracketRight:   221,
	ebiten.KeyQuote:          222,
}

func init() {
	for k := ebiten.KeyA; k <= ebiten.KeyZ; k++ {
		keyCodes[k] = KeyCode('A' + (k - ebiten.KeyA))
	}
	for k := ebiten.KeyDigit0; k <= ebiten.KeyDigit9; k++ {
		keyCodes[k] = KeyCode('0' + (k - ebiten.KeyDigit0))
	}
	for k := ebiten.KeyNumpad0; k <= ebiten.KeyNumpad9; k++ {
		keyCodes[k] = 96 + KeyCode(k-ebiten.KeyNumpad0)
	}
	fkeys := [...]ebiten.Key{
		ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4,
		ebiten.KeyF5, ebiten.KeyF6, ebiten.KeyF7, ebiten.KeyF8,
		ebiten.KeyF9, ebiten.KeyF10, ebiten.KeyF11, ebiten.KeyF12,
	}
	for i, k := range fkeys {
		keyCodes[k] = 112 + KeyCode(i)
	}
}

// KeyCodeOf translates an Ebitengine key to its browser keyCode.
func KeyCodeOf(k ebiten.Key) (KeyCode, bool) {
	code, ok := keyCodes[k]
	return code, ok
}
