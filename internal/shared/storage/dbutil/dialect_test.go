package dbutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebindToQuestion(t *testing.T) {
	assert.Equal(t, "SELECT * FROM t WHERE id = ? AND name = ?",
		RebindToQuestion("SELECT * FROM t WHERE id = $1 AND name = $2"))
	assert.Equal(t, "SELECT 1", RebindToQuestion("SELECT 1"))
}

func TestStripPgCasts(t *testing.T) {
	assert.Equal(t, "UPDATE t SET status = $1 WHERE id = $2",
		StripPgCasts("UPDATE t SET status = $1::varchar WHERE id = $2"))
}

func TestRebindToPositional(t *testing.T) {
	q := "SELECT * FROM users WHERE email = $1"
	assert.Equal(t, q, RebindToPositional(q))
}
