package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindOfUnwrapsChain(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("flush: %w", DatabaseError(cause, "commit %d records", 3))

	assert.Equal(t, KindDatabase, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, &Error{Kind: KindDatabase})
	assert.NotErrorIs(t, err, &Error{Kind: KindPermission})
	assert.Contains(t, err.Error(), "database error: commit 3 records: disk full")
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, ErrorKind(0), KindOf(errors.New("plain")))
	assert.Equal(t, "unknown", ErrorKind(0).String())
}

func TestErrorWithoutCause(t *testing.T) {
	err := PermissionError(nil, "user not in %q group", "input")
	assert.Equal(t, `permission error: user not in "input" group`, err.Error())
	assert.Equal(t, KindPermission, KindOf(err))
}

func TestNewKeystrokeRecordDefaultsName(t *testing.T) {
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.Local)

	rec := NewKeystrokeRecord(30, "A", at)
	assert.Equal(t, KeystrokeRecord{KeyCode: 30, KeyName: "A", Date: "2025-01-01"}, rec)

	rec = NewKeystrokeRecord(999, "", at)
	assert.Equal(t, UnknownKeyName, rec.KeyName)
}
