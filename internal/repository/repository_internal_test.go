package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateWriteError(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}
	other := &pgconn.PgError{Code: "23505"}
	plain := errors.New("boom")

	assert.ErrorIs(t, translateWriteError(fk), ErrInvalidListReference)
	assert.ErrorIs(t, translateWriteError(fmt.Errorf("insert: %w", fk)), ErrInvalidListReference)
	assert.Same(t, error(other), translateWriteError(other))
	assert.Same(t, plain, translateWriteError(plain))
}

func TestTodoItemChanges_Columns(t *testing.T) {
	title := "t"
	done := false
	priority := 0
	listID := int64(4)
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, TodoItemChanges{}.columns())

	cols := TodoItemChanges{
		Title:       &title,
		Priority:    &priority,
		DueDate:     &due,
		IsCompleted: &done,
		ListID:      &listID,
	}.columns()

	assert.Equal(t, map[string]any{
		"Title":       "t",
		"Priority":    0,
		"DueDate":     due,
		"IsCompleted": false,
		"ListId":      int64(4),
	}, cols)
}

func TestNullable(t *testing.T) {
	s := "x"
	assert.Nil(t, nullable[string](nil))
	assert.Equal(t, "x", nullable(&s))
}
