// Package audit provides a best-effort, append-only record of
// security-relevant actions. Recording never blocks a request and a
// write failure never propagates to the caller.
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"payment_portal/internal/model"
	"payment_portal/internal/repository"

	"payment_portal/internal/requestid"

	"github.com/gin-gonic/gin"
)

// Recorder is the write-side interface handed to middleware and handlers
type Recorder interface {
	Record(actorID *int64, action string, meta RequestMeta)
}

// RequestMeta carries the client attribution captured per request
type RequestMeta struct {
	IP        string
	UserAgent string
	RequestID string
}

// Meta extracts audit metadata from a gin request context
func Meta(c *gin.Context) RequestMeta {
	return RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: requestid.Get(c.Request.Context()),
	}
}

// Logger buffers entries on a channel and persists them from background
// workers, decoupled from the request's own error channel.
type Logger struct {
	entries chan model.AuditEntry
	repo    repository.AuditRepository
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// NewLogger creates a Logger with the given buffer size
func NewLogger(repo repository.AuditRepository, bufferSize int, logger *slog.Logger) *Logger {
	return &Logger{
		entries: make(chan model.AuditEntry, bufferSize),
		repo:    repo,
		logger:  logger,
	}
}

// Start launches the background workers
func (l *Logger) Start(workerCount int) {
	for i := 0; i < workerCount; i++ {
		l.wg.Add(1)
		go l.worker()
	}
}

func (l *Logger) worker() {
	defer l.wg.Done()

	for entry := range l.entries {
		if err := l.repo.Insert(context.Background(), &entry); err != nil {
			l.logger.Error("failed to write audit log",
				"action", entry.Action,
				"request_id", entry.RequestID,
				"error", err,
			)
		}
	}
}

// Record enqueues an audit entry. If the buffer is full the entry is
// dropped rather than stalling the request.
func (l *Logger) Record(actorID *int64, action string, meta RequestMeta) {
	entry := model.AuditEntry{
		ActorID:   actorID,
		Action:    action,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		RequestID: meta.RequestID,
		CreatedAt: time.Now(),
	}

	select {
	case l.entries <- entry:
	default:
		l.logger.Warn("audit buffer full, entry dropped", "action", action)
	}
}

// Shutdown stops accepting entries and waits for the workers to drain
func (l *Logger) Shutdown() {
	close(l.entries)
	l.wg.Wait()
}
