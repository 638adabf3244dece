package image

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("picture", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["picture"][0]
}

func TestFileName(t *testing.T) {
	testCases := []struct {
		original string
		suffix   string
	}{
		{original: "loft.jpg", suffix: "_loft.jpg"},
		{original: "../../etc/passwd", suffix: "_passwd"},
		{original: `C:\pics\house.png`, suffix: "_house.png"},
		{original: "", suffix: "_upload"},
	}

	for _, tc := range testCases {
		t.Run(tc.original, func(t *testing.T) {
			name := FileName(tc.original)
			require.True(t, strings.HasSuffix(name, tc.suffix), name)

			_, err := uuid.Parse(strings.TrimSuffix(name, tc.suffix))
			assert.NoError(t, err)
		})
	}

	assert.NotEqual(t, FileName("a.jpg"), FileName("a.jpg"))
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := New(dir, "images/")
	require.NoError(t, err)
	assert.Equal(t, "/images", store.PublicPath)

	url, err := store.Save(fileHeader(t, "loft.jpg", []byte("jpeg bytes")))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/images/"), url)
	assert.True(t, strings.HasSuffix(url, "_loft.jpg"), url)

	content, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/images/")))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(content))
}

func TestSaveRejectsEmptyUploads(t *testing.T) {
	store, err := New(t.TempDir(), "/images")
	require.NoError(t, err)

	_, err = store.Save(nil)
	assert.ErrorIs(t, err, ErrNoFile)

	_, err = store.Save(fileHeader(t, "empty.jpg", nil))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir, "/images")
	require.NoError(t, err)

	url, err := store.Save(fileHeader(t, "loft.jpg", []byte("jpeg bytes")))
	require.NoError(t, err)

	require.NoError(t, store.Remove(url))
	assert.NoFileExists(t, filepath.Join(dir, strings.TrimPrefix(url, "/images/")))

	assert.Error(t, store.Remove(url), "already removed")

	for _, foreign := range []string{"", "/images/", "/other/x.jpg", "/images/../main.toml", "/images/a/b.jpg", "/images/.."} {
		assert.ErrorIs(t, store.Remove(foreign), ErrNotStored, foreign)
	}
}
