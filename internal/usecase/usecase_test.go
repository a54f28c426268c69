package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"hotel-booking/internal/apperror"
	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/database"
	"hotel-booking/pkg/remote"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordedCall struct {
	Path string
	Body []byte
}

// stubCaller answers every call with the same outcome and records what was sent.
type stubCaller struct {
	mu      sync.Mutex
	outcome remote.Outcome
	calls   []recordedCall
}

func succeeding() *stubCaller {
	return &stubCaller{outcome: remote.Outcome{Kind: remote.Success, StatusCode: 201, Body: []byte(`{}`)}}
}

func (s *stubCaller) PostJSON(_ context.Context, path string, body any) remote.Outcome {
	var raw []byte
	if body != nil {
		raw, _ = json.Marshal(body)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, recordedCall{Path: path, Body: raw})
	return s.outcome
}

func (s *stubCaller) recorded() []recordedCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedCall(nil), s.calls...)
}

func assertCode(t *testing.T, err error, code string, status int) {
	t.Helper()
	appErr, ok := apperror.As(err)
	if !ok {
		t.Fatalf("expected *apperror.Error with code %s, got %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
	if appErr.Status != status {
		t.Fatalf("expected status %d for %s, got %d", status, code, appErr.Status)
	}
}

func openSQLite(t *testing.T, service string) *gorm.DB {
	t.Helper()
	db, err := database.InitGorm(utils.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", MaxConns: 1}, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db, service); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func repositoryForNotifications(t *testing.T) repository.NotificationRepository {
	t.Helper()
	return repository.NewNotificationRepository(openSQLite(t, "notification"), zap.NewNop())
}
