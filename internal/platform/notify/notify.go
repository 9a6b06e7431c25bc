// Package notify carries user-visible notifications from controllers to whatever front-end
// is rendering them.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/ridloal/hidayah-backoffice/internal/platform/logger"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notification struct {
	Level   Level
	Title   string
	Message string
}

type Notifier interface {
	Notify(n Notification)
}

func Success(n Notifier, msg string) {
	n.Notify(Notification{Level: LevelSuccess, Title: "Sukses", Message: msg})
}

func Failure(n Notifier, msg string) {
	n.Notify(Notification{Level: LevelError, Title: "Error", Message: msg})
}

func Info(n Notifier, msg string) {
	n.Notify(Notification{Level: LevelInfo, Title: "Info", Message: msg})
}

// WriterNotifier menulis notifikasi satu baris per pesan, dipakai oleh CLI.
type WriterNotifier struct {
	mu sync.Mutex
	W  io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{W: w}
}

func (n *WriterNotifier) Notify(msg Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.W, "[%s] %s\n", msg.Title, msg.Message)
}

type LogNotifier struct{}

func (LogNotifier) Notify(n Notification) {
	if n.Level == LevelError {
		logger.Error("notify: "+n.Message, nil)
		return
	}
	logger.Info("notify: " + n.Message)
}

// Recorder menyimpan semua notifikasi; berguna untuk test.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.sent))
	copy(out, r.sent)
	return out
}

func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return Notification{}, false
	}
	return r.sent[len(r.sent)-1], true
}

func (r *Recorder) Count(level Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := 0
	for _, n := range r.sent {
		if n.Level == level {
			c++
		}
	}
	return c
}
