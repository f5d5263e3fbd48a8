package handlers_test

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/justicedesk/court-prison-api/api/handlers"
)

func TestUploadHandler_GenerateSignature(t *testing.T) {
	t.Setenv("CLOUDINARY_UPLOAD_PRESET", "evidence-uploads")
	t.Setenv("CLOUDINARY_API_SECRET", "test-secret")

	handler := handlers.UploadHandler{}

	req, err := http.NewRequest("POST", "/api/v1/generate-signature", nil)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	handler.GenerateSignature(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	err = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.NotEmpty(t, resp["timestamp"])

	// recompute the signature from the returned timestamp
	mac := hmac.New(sha1.New, []byte("test-secret"))
	mac.Write([]byte("timestamp=" + resp["timestamp"] + "&upload_preset=evidence-uploads"))
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), resp["signature"])
}
