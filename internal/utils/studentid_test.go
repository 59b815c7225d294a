package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateStudentID(t *testing.T) {
	id := GenerateStudentID("arjun")

	assert.True(t, strings.HasPrefix(id, "ARJUN"))
	// 5 timestamp chars plus 6 random chars follow the name.
	assert.Len(t, id, len("ARJUN")+11)

	for _, c := range id[len("ARJUN"):] {
		assert.Contains(t, base36Chars, string(c))
	}
}

func TestGenerateStudentIDTrimsName(t *testing.T) {
	id := GenerateStudentID("  meera ")
	assert.True(t, strings.HasPrefix(id, "MEERA"))
}

func TestGenerateStudentIDVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := GenerateStudentID("dev")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
