package notify

import (
	"sync"

	"go.uber.org/zap"
)

type Kind int

const (
	Success Kind = iota
	Failure
)

func (k Kind) String() string {
	if k == Failure {
		return "failure"
	}
	return "success"
}

// Toast is a short transient message for the user.
type Toast struct {
	Kind        Kind
	Title       string
	Description string
}

type Notifier interface {
	Notify(Toast)
}

// LogNotifier writes toasts to a zap logger, for headless clients.
type LogNotifier struct {
	log *zap.SugaredLogger
}

func NewLogNotifier(l *zap.SugaredLogger) *LogNotifier {
	return &LogNotifier{log: l}
}

func (n *LogNotifier) Notify(t Toast) {
	if t.Kind == Failure {
		n.log.Warnw(t.Title, "description", t.Description)
		return
	}
	n.log.Infow(t.Title, "description", t.Description)
}

// Recorder keeps every toast in memory.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Notify(t Toast) {
	r.mu.Lock()
	r.toasts = append(r.toasts, t)
	r.mu.Unlock()
}

func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

func (r *Recorder) Last() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}, false
	}
	return r.toasts[len(r.toasts)-1], true
}
