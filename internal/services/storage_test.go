package services

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("resume", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["resume"][0]
}

func TestStorageSaveAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s := NewStorageService(dir)
	require.NoError(t, s.EnsureUploadDir())

	name, path, err := s.SaveFile(fileHeader(t, "My CV.PDF", "%PDF-1.4"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "resume_"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.Equal(t, filepath.Join(dir, name), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	require.NoError(t, s.DeleteFile(name))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, s.DeleteFile(name))
}

func TestStorageRejectsExtension(t *testing.T) {
	s := NewStorageService(t.TempDir())

	_, _, err := s.SaveFile(fileHeader(t, "cv.exe", "MZ"))
	require.Error(t, err)
	assert.True(t, IsInputError(err))
}

func TestStorageGetFilePathStaysInUploadDir(t *testing.T) {
	s := NewStorageService("/srv/uploads")
	assert.Equal(t, "/srv/uploads/cv.pdf", s.GetFilePath("../../etc/cv.pdf"))
}

func TestWriteFileRemovesPartialUpload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume_partial.pdf")
	src := io.MultiReader(strings.NewReader("%PDF-1.4"), iotest.ErrReader(errors.New("connection reset")))

	err := writeFile(path, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "partial file left behind")
}
