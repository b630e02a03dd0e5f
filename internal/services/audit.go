package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/madfam-org/tezca-gateway/internal/models"
	"github.com/madfam-org/tezca-gateway/internal/store"
	"github.com/madfam-org/tezca-gateway/internal/util"
)

const (
	batchSize     = 100
	flushInterval = 1 * time.Second
)

// AuditLogEntry represents the data needed to create an audit log entry
type AuditLogEntry struct {
	EventType    models.EventType
	Severity     models.EventSeverity
	ActorUserID  string
	ActorIP      string
	SessionID    string
	TokenRef     string
	Action       string
	Details      models.AuditDetails
	Success      bool
	ErrorMessage string
}

// AuditService records audit events asynchronously. Events are buffered on a
// channel, batched, and flushed to the store on a timer or when the batch
// fills. A full buffer drops events rather than blocking the request path.
type AuditService struct {
	store   *store.Store
	enabled bool

	logChan chan *models.AuditLog

	batchBuffer []*models.AuditLog
	batchMutex  sync.Mutex
	batchTicker *time.Ticker

	wg         sync.WaitGroup
	shutdownCh chan struct{}
}

// NewAuditService creates the audit service. With enabled=false or a nil
// store every Log call is a no-op.
func NewAuditService(s *store.Store, enabled bool, bufferSize int) *AuditService {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	if s == nil {
		enabled = false
	}

	service := &AuditService{
		store:       s,
		enabled:     enabled,
		logChan:     make(chan *models.AuditLog, bufferSize),
		batchBuffer: make([]*models.AuditLog, 0, batchSize),
		batchTicker: time.NewTicker(flushInterval),
		shutdownCh:  make(chan struct{}),
	}

	if enabled {
		service.wg.Add(1)
		go service.worker()
		log.Printf("Audit service started with buffer size %d", bufferSize)
	} else {
		log.Println("Audit service is disabled")
	}

	return service
}

func (s *AuditService) worker() {
	defer s.wg.Done()

	for {
		select {
		case entry := <-s.logChan:
			s.addToBatch(entry)

		case <-s.batchTicker.C:
			s.flushBatch()

		case <-s.shutdownCh:
			// Drain anything still queued, then flush.
			for {
				select {
				case entry := <-s.logChan:
					s.addToBatch(entry)
				default:
					s.flushBatch()
					return
				}
			}
		}
	}
}

func (s *AuditService) addToBatch(entry *models.AuditLog) {
	s.batchMutex.Lock()
	defer s.batchMutex.Unlock()

	s.batchBuffer = append(s.batchBuffer, entry)

	if len(s.batchBuffer) >= batchSize {
		s.flushBatchUnsafe()
	}
}

func (s *AuditService) flushBatch() {
	s.batchMutex.Lock()
	defer s.batchMutex.Unlock()
	s.flushBatchUnsafe()
}

// flushBatchUnsafe writes the buffer to the store. Caller must hold the lock.
func (s *AuditService) flushBatchUnsafe() {
	if len(s.batchBuffer) == 0 {
		return
	}

	toWrite := make([]*models.AuditLog, len(s.batchBuffer))
	copy(toWrite, s.batchBuffer)
	s.batchBuffer = s.batchBuffer[:0]

	if err := s.store.CreateAuditLogBatch(toWrite); err != nil {
		log.Printf("Failed to write audit log batch: %v", err)
	}
}

// Log records an audit log entry asynchronously
func (s *AuditService) Log(ctx context.Context, entry AuditLogEntry) {
	if !s.enabled {
		return
	}

	if entry.ActorIP == "" {
		entry.ActorIP = util.GetIPFromContext(ctx)
	}

	record := &models.AuditLog{
		ID:           uuid.New().String(),
		EventType:    entry.EventType,
		EventTime:    time.Now(),
		Severity:     entry.Severity,
		ActorUserID:  entry.ActorUserID,
		ActorIP:      entry.ActorIP,
		SessionID:    entry.SessionID,
		TokenRef:     entry.TokenRef,
		Action:       entry.Action,
		Details:      entry.Details,
		Success:      entry.Success,
		ErrorMessage: entry.ErrorMessage,
		CreatedAt:    time.Now(),
	}

	if c, ok := ctx.(*gin.Context); ok {
		record.UserAgent = c.Request.UserAgent()
		record.RequestPath = c.Request.URL.Path
		record.RequestMethod = c.Request.Method
	}

	select {
	case s.logChan <- record:
	default:
		log.Printf("WARNING: Audit log buffer full, dropping event: %s", entry.Action)
	}
}

// LogSSOInitiated records the start of a login attempt.
func (s *AuditService) LogSSOInitiated(c *gin.Context, variant string) {
	s.Log(c, AuditLogEntry{
		EventType: models.EventSSOInitiated,
		Severity:  models.SeverityInfo,
		Action:    "sso_initiated",
		Details:   models.AuditDetails{"variant": variant},
		Success:   true,
	})
}

// LogSSOSuccess records a completed login. The access token is stored as a
// one-way hash reference only.
func (s *AuditService) LogSSOSuccess(c *gin.Context, userID, sessionID, accessToken string) {
	s.Log(c, AuditLogEntry{
		EventType:   models.EventSSOCallbackSuccess,
		Severity:    models.SeverityInfo,
		ActorUserID: userID,
		SessionID:   sessionID,
		TokenRef:    tokenRef(accessToken),
		Action:      "sso_callback_success",
		Success:     true,
	})
}

// LogSSOFailure records a failed callback with its classified reason.
func (s *AuditService) LogSSOFailure(c *gin.Context, reason, userID string) {
	s.Log(c, AuditLogEntry{
		EventType:    models.EventSSOCallbackFailure,
		Severity:     models.SeverityWarning,
		ActorUserID:  userID,
		Action:       "sso_callback_failure",
		ErrorMessage: reason,
		Success:      false,
	})
}

// LogSignOut records a sign-out.
func (s *AuditService) LogSignOut(c *gin.Context, userID, sessionID, accessToken string) {
	s.Log(c, AuditLogEntry{
		EventType:   models.EventSignOut,
		Severity:    models.SeverityInfo,
		ActorUserID: userID,
		SessionID:   sessionID,
		TokenRef:    tokenRef(accessToken),
		Action:      "sign_out",
		Success:     true,
	})
}

// LogRateLimitExceeded records a throttled request.
func (s *AuditService) LogRateLimitExceeded(c *gin.Context) {
	s.Log(c, AuditLogEntry{
		EventType: models.EventRateLimitExceeded,
		Severity:  models.SeverityWarning,
		Action:    "rate_limit_exceeded",
		Success:   false,
	})
}

// CleanupOldLogs deletes audit logs older than the retention period
func (s *AuditService) CleanupOldLogs(retention time.Duration) (int64, error) {
	if !s.enabled {
		return 0, nil
	}
	cutoff := time.Now().Add(-retention)
	return s.store.DeleteAuditLogsBefore(cutoff)
}

// Shutdown gracefully shuts down the audit service
func (s *AuditService) Shutdown(ctx context.Context) error {
	if !s.enabled {
		return nil
	}

	s.batchTicker.Stop()
	close(s.shutdownCh)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("Audit service shut down gracefully")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("audit service shutdown timeout: %w", ctx.Err())
	}
}

// tokenRef derives the audit reference for a token. Raw token values never
// reach the audit table.
func tokenRef(token string) string {
	if token == "" {
		return ""
	}
	return util.HashToken(token, "audit")
}
