package utils

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateStudentID builds a human-readable student id from the student's
// first name, a base-36 timestamp fragment and a random suffix. Callers must
// still probe storage for a collision before persisting it.
func GenerateStudentID(firstName string) string {
	prefix := strings.ToUpper(strings.TrimSpace(firstName))

	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	if len(ts) > 5 {
		ts = ts[len(ts)-5:]
	}

	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = base36Chars[rand.Intn(len(base36Chars))]
	}

	return prefix + ts + string(suffix)
}
