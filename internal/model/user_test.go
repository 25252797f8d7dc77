package model

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUserIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9]{8}$`)
	for i := 0; i < 100; i++ {
		id := NewUserID()
		assert.True(t, pattern.MatchString(id), "got %q", id)
	}
}
