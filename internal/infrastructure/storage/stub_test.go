package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage_GenerateUploadURL(t *testing.T) {
	stub := NewStubObjectStorage()

	url, expiresAt, err := stub.GenerateUploadURL(context.Background(), "cases/FC-2026-00001/1.pdf", "application/pdf", 15*time.Minute)

	require.NoError(t, err)
	assert.Contains(t, url, "https://storage.example.com/upload/cases/FC-2026-00001/1.pdf")
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, time.Minute)
}

func TestStubObjectStorage_GenerateUploadURL_EmptyKey(t *testing.T) {
	stub := NewStubObjectStorage()

	_, _, err := stub.GenerateUploadURL(context.Background(), "", "application/pdf", 15*time.Minute)
	assert.Error(t, err)
}

func TestStubObjectStorage_GenerateDownloadURL(t *testing.T) {
	stub := NewStubObjectStorage()

	url, _, err := stub.GenerateDownloadURL(context.Background(), "cases/FC-2026-00001/1.pdf", time.Hour)

	require.NoError(t, err)
	assert.Contains(t, url, "/download/cases/FC-2026-00001/1.pdf")
}

func TestStubObjectStorage_DeleteObject(t *testing.T) {
	stub := NewStubObjectStorage()

	assert.NoError(t, stub.DeleteObject(context.Background(), "cases/FC-2026-00001/1.pdf"))
	assert.Error(t, stub.DeleteObject(context.Background(), ""))
}

func TestStubObjectStorage_ObjectExists(t *testing.T) {
	stub := NewStubObjectStorage()

	exists, err := stub.ObjectExists(context.Background(), "cases/FC-2026-00001/1.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = stub.ObjectExists(context.Background(), "")
	assert.Error(t, err)
}
