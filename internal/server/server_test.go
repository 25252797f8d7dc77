package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benj-n/miguafi/internal/config"
	"github.com/benj-n/miguafi/internal/model"
	"github.com/benj-n/miguafi/pkg/auth"
	"github.com/benj-n/miguafi/pkg/storage"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newTestServer builds the full router over an isolated SQLite database,
// local storage in a temp dir and no mailer.
func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	return newTestServerUploads(t, t.TempDir())
}

// newTestServerUploads is newTestServer with a caller-chosen upload dir, for
// tests that inspect what the storage backend wrote.
func newTestServerUploads(t *testing.T, uploadDir string) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "miguafi-test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Dog{},
		&model.UserDog{},
		&model.AvailabilityOffer{},
		&model.AvailabilityRequest{},
		&model.Notification{},
	))

	store, err := storage.NewLocal(uploadDir)
	require.NoError(t, err)

	router := New(Deps{
		DB:         db,
		JWTManager: auth.NewJWTManager("test-secret", time.Hour),
		Storage:    store,
		Mailer:     nil,
		CORS:       config.CORSConfig{Origins: []string{"http://localhost:5173"}},
	})
	return router, db
}

// doJSON performs a request with an optional JSON body and bearer token
func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// registerAndLogin creates a user and returns a bearer token for it
func registerAndLogin(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/auth/register", gin.H{
		"email":    email,
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email":    email,
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tok model.TokenResponse
	decode(t, w, &tok)
	require.NotEmpty(t, tok.AccessToken)
	return tok.AccessToken
}

// filePart is one file in a multipart request
type filePart struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

// doMultipart performs a multipart/form-data request
func doMultipart(t *testing.T, router *gin.Engine, path string, fields map[string]string, files []filePart, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.filename))
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// slot builds a window offset from now
func slot(startIn, endIn time.Duration) gin.H {
	return slotAt(time.Now().UTC(), startIn, endIn)
}

// slotAt builds a window offset from a fixed base, so two windows can share
// exact endpoints regardless of when the calls run.
func slotAt(base time.Time, startIn, endIn time.Duration) gin.H {
	return gin.H{
		"start_at": base.Add(startIn).Format(time.RFC3339),
		"end_at":   base.Add(endIn).Format(time.RFC3339),
	}
}
