package nav

import "sync"

// Overlay identifies which navigation surface is showing. Exactly one can
// be active, so "menu and dropdown both open" cannot be represented.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayMenu
	OverlayDropdown
)

func (o Overlay) String() string {
	switch o {
	case OverlayMenu:
		return "menu"
	case OverlayDropdown:
		return "dropdown"
	default:
		return "none"
	}
}

// Watcher is the outside-click listener hook. Attach registers the callback
// and Detach removes it; the menu attaches only while an overlay is open so
// listeners do not leak.
type Watcher interface {
	Attach(onOutsideClick func())
	Detach()
}

// NopWatcher satisfies Watcher for surfaces with no outside-click source.
type NopWatcher struct{}

func (NopWatcher) Attach(func()) {}
func (NopWatcher) Detach()       {}

// Menu drives the mobile full-screen menu and the profile dropdown. The
// page scroll lock tracks the mobile menu: both flip inside the same
// transition, so the lock can never be left on after the menu closes.
type Menu struct {
	mu           sync.Mutex
	overlay      Overlay
	scrollLocked bool
	watcher      Watcher
	onNavigate   func(route string)
}

func NewMenu(watcher Watcher, onNavigate func(route string)) *Menu {
	if watcher == nil {
		watcher = NopWatcher{}
	}
	if onNavigate == nil {
		onNavigate = func(string) {}
	}
	return &Menu{watcher: watcher, onNavigate: onNavigate}
}

// ToggleMenu opens the mobile menu, or closes it when it is already open.
// Opening it dismisses the dropdown.
func (m *Menu) ToggleMenu() {
	m.mu.Lock()
	target := OverlayMenu
	if m.overlay == OverlayMenu {
		target = OverlayNone
	}
	attach, detach := m.transition(target)
	m.mu.Unlock()
	m.applyWatcher(attach, detach)
}

// ToggleDropdown opens the profile dropdown, or closes it when open.
// Opening it dismisses the mobile menu and its scroll lock.
func (m *Menu) ToggleDropdown() {
	m.mu.Lock()
	target := OverlayDropdown
	if m.overlay == OverlayDropdown {
		target = OverlayNone
	}
	attach, detach := m.transition(target)
	m.mu.Unlock()
	m.applyWatcher(attach, detach)
}

// OutsideClick dismisses whichever overlay is open.
func (m *Menu) OutsideClick() {
	m.mu.Lock()
	attach, detach := m.transition(OverlayNone)
	m.mu.Unlock()
	m.applyWatcher(attach, detach)
}

// Navigate closes every overlay and releases the scroll lock before the
// route change is reported, regardless of which overlay initiated it.
func (m *Menu) Navigate(route string) {
	m.mu.Lock()
	attach, detach := m.transition(OverlayNone)
	m.mu.Unlock()
	m.applyWatcher(attach, detach)
	m.onNavigate(route)
}

// RouteChanged handles navigation that happened outside the menu (browser
// back, deep link): overlays close, nothing is re-reported.
func (m *Menu) RouteChanged() {
	m.mu.Lock()
	attach, detach := m.transition(OverlayNone)
	m.mu.Unlock()
	m.applyWatcher(attach, detach)
}

func (m *Menu) Overlay() Overlay {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.overlay
}

func (m *Menu) ScrollLocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scrollLocked
}

// transition moves to the target overlay with the lock held and reports
// whether the outside-click watcher must be attached or detached. The
// watcher calls happen outside the lock; the callback is delivered on
// later events, never during Attach.
func (m *Menu) transition(target Overlay) (attach, detach bool) {
	wasOpen := m.overlay != OverlayNone
	m.overlay = target
	m.scrollLocked = target == OverlayMenu

	isOpen := target != OverlayNone
	return isOpen && !wasOpen, wasOpen && !isOpen
}

func (m *Menu) applyWatcher(attach, detach bool) {
	if attach {
		m.watcher.Attach(m.OutsideClick)
	}
	if detach {
		m.watcher.Detach()
	}
}
