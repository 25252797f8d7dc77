package server

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/benj-n/miguafi/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func myNotifications(t *testing.T, router *gin.Engine, token string) []model.Notification {
	t.Helper()
	w := doJSON(t, router, http.MethodGet, "/notifications/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var notifs []model.Notification
	decode(t, w, &notifs)
	return notifs
}

func TestRequestInsertionNotifiesOfferOwner(t *testing.T) {
	router, _ := newTestServer(t)
	offerer := registerAndLogin(t, router, "offerer@example.com")
	requester := registerAndLogin(t, router, "requester@example.com")

	w := doJSON(t, router, http.MethodPost, "/availability/offers", slot(time.Hour, 6*time.Hour), offerer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Request fully inside the offer window
	w = doJSON(t, router, http.MethodPost, "/availability/requests", slot(2*time.Hour, 4*time.Hour), requester)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The offer owner hears about the incoming request; the inserter hears nothing
	offNotifs := myNotifications(t, router, offerer)
	require.Len(t, offNotifs, 1)
	assert.True(t, strings.HasPrefix(offNotifs[0].Message, "Une demande correspond"), offNotifs[0].Message)
	assert.False(t, offNotifs[0].IsRead)

	assert.Empty(t, myNotifications(t, router, requester))
}

func TestOfferInsertionNotifiesContainedRequesters(t *testing.T) {
	router, _ := newTestServer(t)
	offerer := registerAndLogin(t, router, "offerer2@example.com")
	reqA := registerAndLogin(t, router, "requester2a@example.com")
	reqB := registerAndLogin(t, router, "requester2b@example.com")

	w := doJSON(t, router, http.MethodPost, "/availability/requests", slot(2*time.Hour, 3*time.Hour), reqA)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, http.MethodPost, "/availability/requests", slot(4*time.Hour, 5*time.Hour), reqB)
	require.Equal(t, http.StatusCreated, w.Code)

	// This offer contains both pending requests
	w = doJSON(t, router, http.MethodPost, "/availability/offers", slot(time.Hour, 6*time.Hour), offerer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	notifsA := myNotifications(t, router, reqA)
	require.Len(t, notifsA, 1)
	assert.True(t, strings.HasPrefix(notifsA[0].Message, "Une offre correspond"), notifsA[0].Message)
	assert.Len(t, myNotifications(t, router, reqB), 1)

	// The inserting side is never notified
	assert.Empty(t, myNotifications(t, router, offerer))
}

func TestPartialContainmentDoesNotMatch(t *testing.T) {
	router, _ := newTestServer(t)
	offerer := registerAndLogin(t, router, "part-offerer@example.com")
	requester := registerAndLogin(t, router, "part-requester@example.com")

	w := doJSON(t, router, http.MethodPost, "/availability/offers", slot(time.Hour, 3*time.Hour), offerer)
	require.Equal(t, http.StatusCreated, w.Code)

	// Overlaps the offer but extends past its end: not contained
	w = doJSON(t, router, http.MethodPost, "/availability/requests", slot(2*time.Hour, 5*time.Hour), requester)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Empty(t, myNotifications(t, router, requester))
	assert.Empty(t, myNotifications(t, router, offerer))
}

func TestExactWindowMatches(t *testing.T) {
	router, _ := newTestServer(t)
	offerer := registerAndLogin(t, router, "exact-offerer@example.com")
	requester := registerAndLogin(t, router, "exact-requester@example.com")

	base := time.Now().UTC()
	w := doJSON(t, router, http.MethodPost, "/availability/offers", slotAt(base, time.Hour, 3*time.Hour), offerer)
	require.Equal(t, http.StatusCreated, w.Code)

	// Containment is inclusive on both endpoints
	w = doJSON(t, router, http.MethodPost, "/availability/requests", slotAt(base, time.Hour, 3*time.Hour), requester)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Len(t, myNotifications(t, router, offerer), 1)
}

func TestOwnSlotsNeverMatchEachOther(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerAndLogin(t, router, "selfmatch@example.com")

	w := doJSON(t, router, http.MethodPost, "/availability/offers", slot(time.Hour, 6*time.Hour), token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/availability/requests", slot(2*time.Hour, 4*time.Hour), token)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Empty(t, myNotifications(t, router, token))
}

func TestDeletionDoesNotNotify(t *testing.T) {
	router, _ := newTestServer(t)
	offerer := registerAndLogin(t, router, "del-offerer@example.com")
	requester := registerAndLogin(t, router, "del-requester@example.com")

	w := doJSON(t, router, http.MethodPost, "/availability/offers", slot(time.Hour, 6*time.Hour), offerer)
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.CreatedResponse
	decode(t, w, &created)

	w = doJSON(t, router, http.MethodPost, "/availability/requests", slot(2*time.Hour, 4*time.Hour), requester)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, myNotifications(t, router, offerer), 1)

	// Removing a matched slot leaves past notifications untouched and adds none
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/availability/offers/%d", created.ID), nil, offerer)
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Len(t, myNotifications(t, router, offerer), 1)
	assert.Empty(t, myNotifications(t, router, requester))
}
