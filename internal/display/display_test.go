package display

import (
	"errors"
	"testing"

	"github.com/halvex/xmouse/internal/pointer"
)

// TestOpen_MalformedNameFails verifies a display string the binding cannot
// parse comes back as a connection error with no live handle.
func TestOpen_MalformedNameFails(t *testing.T) {
	conn, err := Open("not-a-display")
	if conn != nil {
		t.Fatalf("expected no connection, got %+v", conn)
	}
	var ce *pointer.ConnectionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConnectionError, got %v", err)
	}
	if ce.Display != "not-a-display" {
		t.Fatalf("expected the display name recorded, got %q", ce.Display)
	}
}
