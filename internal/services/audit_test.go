package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madfam-org/tezca-gateway/internal/models"
	"github.com/madfam-org/tezca-gateway/internal/store"
	"github.com/madfam-org/tezca-gateway/internal/util"
)

func newAuditTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New("sqlite", ":memory:")
	require.NoError(t, err)
	return s
}

func testGinContext(path string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	c.Request.Header.Set("User-Agent", "test-agent/1.0")
	return c
}

func shutdownAudit(t *testing.T, svc *AuditService) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, svc.Shutdown(ctx))
}

func auditRows(t *testing.T, s *store.Store) []models.AuditLog {
	t.Helper()
	var rows []models.AuditLog
	require.NoError(t, s.DB().Find(&rows).Error)
	return rows
}

func TestAuditServiceDisabled(t *testing.T) {
	s := newAuditTestStore(t)
	svc := NewAuditService(s, false, 10)

	svc.LogSSOInitiated(testGinContext("/sso"), "pkce")

	deleted, err := svc.CleanupOldLogs(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	shutdownAudit(t, svc)
	assert.Empty(t, auditRows(t, s))
}

func TestAuditServiceNilStoreForcesDisabled(t *testing.T) {
	svc := NewAuditService(nil, true, 10)

	// Must not panic despite enabled=true with no store.
	svc.LogSSOInitiated(testGinContext("/sso"), "pkce")
	shutdownAudit(t, svc)
}

func TestAuditServiceFlushesOnShutdown(t *testing.T) {
	s := newAuditTestStore(t)
	svc := NewAuditService(s, true, 10)

	svc.LogSSOInitiated(testGinContext("/sso"), "pkce")
	svc.LogSSOSuccess(testGinContext("/api/auth/callback"), "user-1", "sess-1", "access-123")
	svc.LogSSOFailure(testGinContext("/api/auth/callback"), "state_mismatch", "")
	shutdownAudit(t, svc)

	rows := auditRows(t, s)
	require.Len(t, rows, 3)

	byType := make(map[models.EventType]models.AuditLog, len(rows))
	for _, row := range rows {
		byType[row.EventType] = row
	}

	initiated := byType[models.EventSSOInitiated]
	assert.Equal(t, "sso_initiated", initiated.Action)
	assert.Equal(t, "pkce", initiated.Details["variant"])
	assert.Equal(t, "/sso", initiated.RequestPath)
	assert.Equal(t, "test-agent/1.0", initiated.UserAgent)
	assert.True(t, initiated.Success)

	success := byType[models.EventSSOCallbackSuccess]
	assert.Equal(t, "user-1", success.ActorUserID)
	assert.Equal(t, "sess-1", success.SessionID)

	failure := byType[models.EventSSOCallbackFailure]
	assert.Equal(t, models.SeverityWarning, failure.Severity)
	assert.Equal(t, "state_mismatch", failure.ErrorMessage)
	assert.False(t, failure.Success)
}

func TestAuditServiceStoresTokenRefNotToken(t *testing.T) {
	s := newAuditTestStore(t)
	svc := NewAuditService(s, true, 10)

	svc.LogSignOut(testGinContext("/api/auth/signout"), "user-1", "sess-1", "access-123")
	shutdownAudit(t, svc)

	rows := auditRows(t, s)
	require.Len(t, rows, 1)
	assert.NotEqual(t, "access-123", rows[0].TokenRef)
	assert.Equal(t, util.HashToken("access-123", "audit"), rows[0].TokenRef)
}

func TestAuditServiceCleanupOldLogs(t *testing.T) {
	s := newAuditTestStore(t)
	svc := NewAuditService(s, true, 10)
	defer shutdownAudit(t, svc)

	old := &models.AuditLog{
		ID:        "old-entry",
		EventType: models.EventSSOInitiated,
		EventTime: time.Now().Add(-100 * 24 * time.Hour),
		Severity:  models.SeverityInfo,
		Action:    "sso_initiated",
		Success:   true,
	}
	require.NoError(t, s.CreateAuditLogBatch([]*models.AuditLog{old}))

	deleted, err := svc.CleanupOldLogs(90 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestAuditServiceDropsWhenBufferFull(t *testing.T) {
	s := newAuditTestStore(t)
	// Buffer of one and no worker consuming fast enough is hard to force
	// deterministically, so exercise the non-blocking path directly on a
	// disabled-worker service: fill the channel, then log once more.
	svc := &AuditService{
		store:   s,
		enabled: true,
		logChan: make(chan *models.AuditLog, 1),
	}
	svc.Log(context.Background(), AuditLogEntry{Action: "first"})
	svc.Log(context.Background(), AuditLogEntry{Action: "second"})

	assert.Len(t, svc.logChan, 1)
	entry := <-svc.logChan
	assert.Equal(t, "first", entry.Action)
}
