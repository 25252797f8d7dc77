package server

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/benj-n/miguafi/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSlotRejectsInvertedRange(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerAndLogin(t, router, "inv@example.com")

	for _, path := range []string{"/availability/offers", "/availability/requests"} {
		w := doJSON(t, router, http.MethodPost, path, slot(4*time.Hour, 2*time.Hour), token)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)

		// Zero-length windows fail the same way
		w = doJSON(t, router, http.MethodPost, path, slot(2*time.Hour, 2*time.Hour), token)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestCreateSlotRejectsPastWindows(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerAndLogin(t, router, "past@example.com")

	// Entirely in the past
	w := doJSON(t, router, http.MethodPost, "/availability/offers", slot(-4*time.Hour, -2*time.Hour), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Start in the past, end in the future
	w = doJSON(t, router, http.MethodPost, "/availability/offers", slot(-time.Hour, time.Hour), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSlotRejectsOverlapSameKindSameUser(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerAndLogin(t, router, "ovl@example.com")

	w := doJSON(t, router, http.MethodPost, "/availability/offers", slot(time.Hour, 3*time.Hour), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Overlapping offer of the same user
	w = doJSON(t, router, http.MethodPost, "/availability/offers", slot(2*time.Hour, 4*time.Hour), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Same window as a request is fine: kinds are independent ledgers
	w = doJSON(t, router, http.MethodPost, "/availability/requests", slot(2*time.Hour, 4*time.Hour), token)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestTouchingWindowsDoNotOverlap(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerAndLogin(t, router, "touch@example.com")

	base := time.Now().UTC()
	w := doJSON(t, router, http.MethodPost, "/availability/offers", slotAt(base, time.Hour, 2*time.Hour), token)
	require.Equal(t, http.StatusCreated, w.Code)

	// existing.end == new.start is not an overlap
	w = doJSON(t, router, http.MethodPost, "/availability/offers", slotAt(base, 2*time.Hour, 3*time.Hour), token)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestOtherUsersWindowsDoNotBlock(t *testing.T) {
	router, _ := newTestServer(t)
	tokenA := registerAndLogin(t, router, "blk-a@example.com")
	tokenB := registerAndLogin(t, router, "blk-b@example.com")

	w := doJSON(t, router, http.MethodPost, "/availability/offers", slot(time.Hour, 3*time.Hour), tokenA)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/availability/offers", slot(time.Hour, 3*time.Hour), tokenB)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestDeleteForeignSlotReportsNotFound(t *testing.T) {
	router, _ := newTestServer(t)
	tokenA := registerAndLogin(t, router, "del-a@example.com")
	tokenB := registerAndLogin(t, router, "del-b@example.com")

	w := doJSON(t, router, http.MethodPost, "/availability/offers", slot(time.Hour, 2*time.Hour), tokenA)
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.CreatedResponse
	decode(t, w, &created)

	// B cannot delete A's offer; ownership reads as non-existence
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/availability/offers/%d", created.ID), nil, tokenB)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The record is intact for its owner
	w = doJSON(t, router, http.MethodGet, "/availability/offers/mine", nil, tokenA)
	require.Equal(t, http.StatusOK, w.Code)
	var list model.SlotListResponse
	decode(t, w, &list)
	assert.Equal(t, int64(1), list.Total)

	// The owner can delete it
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/availability/offers/%d", created.ID), nil, tokenA)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Deleting again reports not found
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/availability/offers/%d", created.ID), nil, tokenA)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRequestOwnedOnly(t *testing.T) {
	router, _ := newTestServer(t)
	tokenA := registerAndLogin(t, router, "delr-a@example.com")
	tokenB := registerAndLogin(t, router, "delr-b@example.com")

	w := doJSON(t, router, http.MethodPost, "/availability/requests", slot(time.Hour, 2*time.Hour), tokenA)
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.CreatedResponse
	decode(t, w, &created)

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/availability/requests/%d", created.ID), nil, tokenB)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/availability/requests/%d", created.ID), nil, tokenA)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestPaginationAndSort(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerAndLogin(t, router, "page@example.com")

	// Five non-overlapping one-hour offers
	for i := 1; i <= 5; i++ {
		w := doJSON(t, router, http.MethodPost, "/availability/offers",
			slot(time.Duration(2*i)*time.Hour, time.Duration(2*i+1)*time.Hour), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	// Default sort is -start_at; total is independent of page size
	w := doJSON(t, router, http.MethodGet, "/availability/offers/mine?page=1&page_size=2", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var page1 model.SlotListResponse
	decode(t, w, &page1)
	assert.Equal(t, int64(5), page1.Total)
	require.Len(t, page1.Items, 2)
	assert.True(t, page1.Items[0].StartAt.After(page1.Items[1].StartAt))

	w = doJSON(t, router, http.MethodGet, "/availability/offers/mine?page=2&page_size=2", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var page2 model.SlotListResponse
	decode(t, w, &page2)
	assert.Equal(t, int64(5), page2.Total)
	require.Len(t, page2.Items, 2)
	// Strictly decreasing across the page boundary
	assert.True(t, page1.Items[1].StartAt.After(page2.Items[0].StartAt))

	w = doJSON(t, router, http.MethodGet, "/availability/offers/mine?page=3&page_size=2", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var page3 model.SlotListResponse
	decode(t, w, &page3)
	require.Len(t, page3.Items, 1)

	// Ascending sort orders strictly increasing
	w = doJSON(t, router, http.MethodGet, "/availability/offers/mine?page=1&page_size=5&sort=start_at", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var asc model.SlotListResponse
	decode(t, w, &asc)
	require.Len(t, asc.Items, 5)
	for i := 1; i < len(asc.Items); i++ {
		assert.True(t, asc.Items[i].StartAt.After(asc.Items[i-1].StartAt))
	}
}
