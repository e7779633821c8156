package migrate

import (
	"strings"
	"testing"
)

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("up"); err != nil || d != Up {
		t.Errorf("ParseDirection(up) = %v, %v", d, err)
	}
	if d, err := ParseDirection("down"); err != nil || d != Down {
		t.Errorf("ParseDirection(down) = %v, %v", d, err)
	}
	for _, s := range []string{"", "sideways", "UP", "Down"} {
		if _, err := ParseDirection(s); err == nil {
			t.Errorf("ParseDirection(%q) should return error", s)
		}
	}
}

func TestRunEmptyDSN(t *testing.T) {
	err := Run("", Up)
	if err == nil {
		t.Fatal("Run with empty DSN should return error")
	}
	if !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Errorf("error %q should mention DATABASE_URL", err)
	}
}

func TestRunInvalidDirection(t *testing.T) {
	if err := Run("postgres://localhost/test", Direction("sideways")); err == nil {
		t.Error("Run with invalid direction should return error")
	}
}
