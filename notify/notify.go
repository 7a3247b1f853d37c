// Package notify carries user-visible notices (success, error, info) from the
// session and booking layers to whatever surface displays them.
package notify

import (
	"context"

	"go.uber.org/zap"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notice struct {
	Level   Level
	Title   string
	Message string
}

type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}

// LogNotifier writes notices to the application log.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, notice Notice) {
	fields := []zap.Field{
		zap.String("level", string(notice.Level)),
		zap.String("title", notice.Title),
	}

	if notice.Level == LevelError {
		n.log.Warn(notice.Message, fields...)
		return
	}

	n.log.Info(notice.Message, fields...)
}

// Multi fans a notice out to every notifier.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, notice Notice) {
	for _, n := range m {
		n.Notify(ctx, notice)
	}
}

// Discard drops every notice.
type Discard struct{}

func (Discard) Notify(context.Context, Notice) {}
