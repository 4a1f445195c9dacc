package domain

import (
	"errors"
	"testing"
)

func TestNewPageCursor(t *testing.T) {
	c := NewPageCursor(1, true, true)
	if c.HasPrevious {
		t.Error("page 1 must never report a previous page")
	}
	if !c.HasNext {
		t.Error("next signal should pass through")
	}

	c = NewPageCursor(0, false, false)
	if c.Page != 1 {
		t.Errorf("page clamped to %d, want 1", c.Page)
	}

	c = NewPageCursor(3, true, false)
	if !c.HasPrevious || c.HasNext {
		t.Error("signals should pass through above page 1")
	}
}

func TestNetworkErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &NetworkError{URL: "http://api/v4/articles/", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("NetworkError should unwrap to its cause")
	}
	if err.Error() == "" {
		t.Error("message should not be empty")
	}
}
