package service

import (
	"testing"
	"time"

	"github.com/benj-n/miguafi/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestValidateSlot(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		err   error
	}{
		{"future window", now.Add(time.Hour), now.Add(2 * time.Hour), nil},
		{"end before start", now.Add(2 * time.Hour), now.Add(time.Hour), ErrInvalidRange},
		{"zero length", now.Add(time.Hour), now.Add(time.Hour), ErrInvalidRange},
		{"start in past", now.Add(-time.Hour), now.Add(time.Hour), ErrNotInFuture},
		{"fully in past", now.Add(-2 * time.Hour), now.Add(-time.Hour), ErrNotInFuture},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateSlot(tc.start, tc.end)
			if tc.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func TestNormalizeListQuery(t *testing.T) {
	page, pageSize, desc := normalizeListQuery(model.SlotListRequest{})
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, pageSize)
	assert.True(t, desc)

	page, pageSize, desc = normalizeListQuery(model.SlotListRequest{Page: 3, PageSize: 50, Sort: "start_at"})
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, pageSize)
	assert.False(t, desc)

	page, pageSize, desc = normalizeListQuery(model.SlotListRequest{Page: -1, PageSize: 0, Sort: "-start_at"})
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, pageSize)
	assert.True(t, desc)
}
