package errors

import (
	stderrors "errors"
	"testing"
)

func TestNewFormatsMessage(t *testing.T) {
	err := New(ErrCodeInvalidDocument, "record %d is not an object", 3)
	if err.Code != ErrCodeInvalidDocument {
		t.Errorf("Code = %s", err.Code)
	}
	if err.Message != "record 3 is not an object" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Error() != "INVALID_DOCUMENT: record 3 is not an object" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeStorage, cause, "store graph %s", "abc")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause with errors.Is")
	}
	if err.Error() != "STORAGE_ERROR: store graph abc: disk full" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrCodeNotFound, "graph missing")
	if !Is(err, ErrCodeNotFound) {
		t.Error("Is should match the error's code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeNotFound) {
		t.Error("Is should not match plain errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeStorage, "x")); got != ErrCodeStorage {
		t.Errorf("GetCode = %s", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %s, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "bad name")); got != "bad name" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
