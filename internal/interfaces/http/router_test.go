package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/campus"
	"campusvoice/internal/domain/shared/events"
	"campusvoice/internal/infrastructure/config"
	"campusvoice/internal/infrastructure/migration"
	"campusvoice/internal/infrastructure/repository"
	"campusvoice/internal/shared/constants"
	"campusvoice/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (p *recordingPublisher) Publish(e events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) PublishAll(es []events.DomainEvent) error {
	for _, e := range es {
		_ = p.Publish(e)
	}
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

type testServer struct {
	engine    *gin.Engine
	db        *gorm.DB
	publisher *recordingPublisher
	officer   *authority.Authority
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  gormlogger.Discard,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.NewMigrator(db, "sqlite", logger.NewDiscard())
	require.NoError(t, err)
	require.NoError(t, m.Up(context.Background()))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	t.Chdir(t.TempDir())
	cfg, err := config.Load("test")
	require.NoError(t, err)

	pub := &recordingPublisher{}
	c, err := NewContainer(db, client, pub, cfg, logger.NewDiscard())
	require.NoError(t, err)
	c.SetupRoutes()

	ctx := context.Background()
	require.NoError(t, repository.NewDepartmentRepository(db).Create(ctx, &campus.Department{Code: "CSE", Name: "Computer Science"}))

	student, err := campus.ReconstructStudent("S1", "Asha", "asha@example.edu", campus.Profile{
		Gender:       campus.GenderMale,
		StayType:     campus.StayHostel,
		DepartmentID: 1,
	}, true)
	require.NoError(t, err)
	require.NoError(t, repository.NewStudentRepository(db).Upsert(ctx, student))

	officer, err := authority.NewAuthority("Office", "office@example.edu", authority.TypeAdminOfficer, nil)
	require.NoError(t, err)
	require.NoError(t, repository.NewAuthorityRepository(db).Create(ctx, officer))

	return &testServer{engine: c.Engine(), db: db, publisher: pub, officer: officer}
}

func (s *testServer) do(t *testing.T, method, path string, headers map[string]string, body any) (int, apiEnvelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env apiEnvelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func asStudent(rollNo string) map[string]string {
	return map[string]string{constants.HeaderXStudentID: rollNo}
}

func asAuthority(id uint) map[string]string {
	return map[string]string{constants.HeaderXAuthorityID: strconv.FormatUint(uint64(id), 10)}
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestRouter_RejectsAnonymousAndUnknownCallers(t *testing.T) {
	s := newTestServer(t)
	body := map[string]any{"text": "Wi-Fi down", "category": "General"}

	code, env := s.do(t, http.MethodPost, "/api/v1/complaints", nil, body)
	assert.Equal(t, http.StatusUnauthorized, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "missing_identity", env.Error.Reason)

	code, env = s.do(t, http.MethodPost, "/api/v1/complaints", asStudent("NOPE"), body)
	assert.Equal(t, http.StatusUnauthorized, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "unknown_caller", env.Error.Reason)

	// Authorities cannot submit.
	code, _ = s.do(t, http.MethodPost, "/api/v1/complaints", asAuthority(s.officer.ID()), body)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_ComplaintLifecycle(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/api/v1/complaints", asStudent("S1"), map[string]any{
		"text":     "Projector in room 204 does not turn on",
		"category": "General",
	})
	require.Equal(t, http.StatusCreated, code)
	require.True(t, env.Success)

	var submitted struct {
		ID                  string `json:"id"`
		Status              string `json:"status"`
		AssignedAuthorityID uint   `json:"assigned_authority_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &submitted))
	assert.Equal(t, "Raised", submitted.Status)
	assert.Equal(t, s.officer.ID(), submitted.AssignedAuthorityID)
	assert.Positive(t, s.publisher.count())

	statusPath := fmt.Sprintf("/api/v1/complaints/%s/status", submitted.ID)
	code, _ = s.do(t, http.MethodPatch, statusPath, asAuthority(s.officer.ID()), map[string]any{"status": "In Progress"})
	require.Equal(t, http.StatusOK, code)

	// Spam can only be entered from Raised.
	code, env = s.do(t, http.MethodPatch, statusPath, asAuthority(s.officer.ID()), map[string]any{"status": "Spam", "reason": "duplicate"})
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid_transition", env.Error.Reason)

	code, env = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/complaints/%s/history", submitted.ID), asStudent("S1"), nil)
	require.Equal(t, http.StatusOK, code)
	var history []struct {
		OldStatus string `json:"old_status"`
		NewStatus string `json:"new_status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.Len(t, history, 1)
	assert.Equal(t, "Raised", history[0].OldStatus)
	assert.Equal(t, "In Progress", history[0].NewStatus)

	code, env = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/complaints/%s", submitted.ID), asAuthority(s.officer.ID()), nil)
	require.Equal(t, http.StatusOK, code)
	var fetched struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, "In Progress", fetched.Status)
}
