package chat

import "sync"

// The controller lets unrelated parts of the hosting application summon the
// widget without holding a reference to the Session. It is registered when
// the widget mounts and torn down when it unmounts, so nothing dangles
// after the session goes away.

var (
	controllerMu sync.RWMutex
	active       *Session
)

// Register installs s as the controller target
func Register(s *Session) {
	controllerMu.Lock()
	defer controllerMu.Unlock()
	active = s
}

// Unregister clears the controller target, but only if it still points at s
func Unregister(s *Session) {
	controllerMu.Lock()
	defer controllerMu.Unlock()
	if active == s {
		active = nil
	}
}

// OpenChatbot opens the registered widget with an optional seed message and
// product. A no-op when no session is registered.
func OpenChatbot(message, productName string) {
	controllerMu.RLock()
	s := active
	controllerMu.RUnlock()
	if s != nil {
		s.Open(message, productName)
	}
}

// CloseChatbot closes the registered widget, if any
func CloseChatbot() {
	controllerMu.RLock()
	s := active
	controllerMu.RUnlock()
	if s != nil {
		s.Close()
	}
}
