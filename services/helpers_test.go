package services

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"unicode"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/andrewpaige1/quizset-api/config"
)

// newTestDB opens a private in-memory SQLite database with the schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, t.Name())
	db, err := config.Connect(&config.Config{
		DBDriver: config.DriverSQLite,
		DBURL:    "file:" + name + "?mode=memory&cache=shared",
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newServices(t *testing.T) (*SetService, *QuestionService, *UserService) {
	t.Helper()
	db := newTestDB(t)
	sets := NewSetService(db)
	return sets, NewQuestionService(db, sets), NewUserService(db)
}

func mustCreateSets(t *testing.T, sets *SetService, names ...string) []string {
	t.Helper()
	created, err := sets.Create(context.Background(), names)
	if err != nil {
		t.Fatalf("create sets %v: %v", names, err)
	}
	ids := make([]string, len(created))
	for i, s := range created {
		ids[i] = s.ID
	}
	return ids
}

func assertKind(t *testing.T, err, kind error, message string) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("error = %v, want kind %v", err, kind)
	}
	if message != "" && err.Error() != message {
		t.Errorf("message = %q, want %q", err.Error(), message)
	}
}

// newLoggedSetService returns a set service whose SQL log goes to the returned buffer.
func newLoggedSetService(t *testing.T, level logger.LogLevel) (*SetService, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	db := newTestDB(t).Session(&gorm.Session{
		Logger: logger.New(log.New(&buf, "", 0), logger.Config{LogLevel: level, Colorful: false}),
	})
	return NewSetService(db), &buf
}
