package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskhive/internal/storage"
)

func TestMemoryStore_PutGetDelete(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	err := store.Put(ctx, "attachments/1/report.pdf", strings.NewReader("content"), 7, "application/pdf")
	assert.NoError(t, err)
	assert.True(t, store.Has("attachments/1/report.pdf"))

	r, err := store.Get(ctx, "attachments/1/report.pdf")
	assert.NoError(t, err)
	data, _ := io.ReadAll(r)
	r.Close()
	assert.Equal(t, "content", string(data))

	err = store.Delete(ctx, "attachments/1/report.pdf")
	assert.NoError(t, err)
	assert.False(t, store.Has("attachments/1/report.pdf"))
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := storage.NewMemoryStore()

	_, err := store.Get(context.Background(), "nope")
	assert.Error(t, err)
}

func TestMemoryStore_FailDelete(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	_ = store.Put(ctx, "p", strings.NewReader("x"), 1, "text/plain")
	store.FailDelete = true

	err := store.Delete(ctx, "p")
	assert.Error(t, err)
	assert.True(t, store.Has("p"))
}
