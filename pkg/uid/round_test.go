package uid

import (
	"testing"

	"github.com/google/uuid"
)

func TestGenerateRoundIDIsUnique(t *testing.T) {
	a, b := GenerateRoundID(), GenerateRoundID()
	if a == b {
		t.Fatalf("two calls returned the same id %q", a)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("%q is not a uuid: %v", a, err)
	}
}
