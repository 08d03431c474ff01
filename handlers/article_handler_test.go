package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadContext(method, contentType string, body io.Reader) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(method, "/api/v1/articles", body)
	if contentType != "" {
		c.Request.Header.Set("Content-Type", contentType)
	}
	return c
}

func TestFormUploadReturnsFilePart(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("img-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	c := uploadContext("POST", writer.FormDataContentType(), body)

	upload, closeFn, err := formUpload(c, "image")
	defer closeFn()
	require.NoError(t, err)
	require.NotNil(t, upload)
	assert.Equal(t, "photo.png", upload.Filename)

	data, err := io.ReadAll(upload.Data)
	require.NoError(t, err)
	assert.Equal(t, "img-bytes", string(data))
}

func TestFormUploadMissingFieldIsNotAnError(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("title", "Hello"))
	require.NoError(t, writer.Close())

	c := uploadContext("POST", writer.FormDataContentType(), body)

	upload, closeFn, err := formUpload(c, "image")
	defer closeFn()
	require.NoError(t, err)
	assert.Nil(t, upload)
}

func TestFormUploadNonMultipartIsNotAnError(t *testing.T) {
	c := uploadContext("POST", "application/json", bytes.NewBufferString(`{"title":"Hello"}`))

	upload, closeFn, err := formUpload(c, "image")
	defer closeFn()
	require.NoError(t, err)
	assert.Nil(t, upload)
}

func TestFormUploadSurfacesParseFailures(t *testing.T) {
	// Multipart content type without a boundary cannot be parsed; that must
	// not be mistaken for "no file provided".
	c := uploadContext("POST", "multipart/form-data", bytes.NewBufferString("garbage"))

	upload, closeFn, err := formUpload(c, "image")
	defer closeFn()
	assert.Error(t, err)
	assert.Nil(t, upload)
}
