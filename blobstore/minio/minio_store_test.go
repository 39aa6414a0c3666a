package minio

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/hupe1980/kddgo/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	mock.Mock
}

var _ Client = (*mockClient)(nil)

func (m *mockClient) StatObject(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	args := m.Called(ctx, bucket, key)
	return args.Get(0).(minio.ObjectInfo), args.Error(1)
}

func (m *mockClient) GetObject(ctx context.Context, bucket, key string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, bucket, key, opts.Header().Get("Range"))
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *mockClient) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	data, _ := io.ReadAll(r)
	args := m.Called(ctx, bucket, key, string(data), size, opts.ContentType)
	return minio.UploadInfo{}, args.Error(0)
}

func (m *mockClient) RemoveObject(ctx context.Context, bucket, key string, _ minio.RemoveObjectOptions) error {
	return m.Called(ctx, bucket, key).Error(0)
}

func (m *mockClient) ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	return m.Called(ctx, bucket, opts.Prefix).Get(0).(<-chan minio.ObjectInfo)
}

func objects(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, o := range infos {
		ch <- o
	}
	close(ch)
	return ch
}

var notFound = minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}

func TestStore_Put(t *testing.T) {
	ctx := context.Background()
	client := new(mockClient)
	client.On("PutObject", ctx, "analysis", "kdd/difference/run-1", "report", int64(6), ContentType).Return(nil)

	store := NewStoreWithClient(client, "analysis", WithPrefix("kdd/"))
	require.NoError(t, store.Put(ctx, "difference/run-1", []byte("report")))
	client.AssertExpectations(t)
}

func TestStore_OpenReadAt(t *testing.T) {
	ctx := context.Background()
	client := new(mockClient)
	client.On("StatObject", ctx, "analysis", "cluster/run-1").Return(minio.ObjectInfo{Size: 23}, nil)
	client.On("GetObject", ctx, "analysis", "cluster/run-1", "bytes=10-19").
		Return(io.NopCloser(strings.NewReader("Assemblies")), nil)
	client.On("GetObject", ctx, "analysis", "cluster/run-1", "bytes=20-22").
		Return(io.NopCloser(strings.NewReader(": 1")), nil)

	store := NewStoreWithClient(client, "analysis")
	blob, err := store.Open(ctx, "cluster/run-1")
	require.NoError(t, err)
	assert.Equal(t, int64(23), blob.Size())

	buf := make([]byte, 10)
	n, err := blob.ReadAt(ctx, buf, 10)
	require.NoError(t, err)
	assert.Equal(t, "Assemblies", string(buf[:n]))

	n, err = blob.ReadAt(ctx, buf, 20)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, ": 1", string(buf[:n]))

	_, err = blob.ReadAt(ctx, buf, 23)
	assert.ErrorIs(t, err, io.EOF)
	require.NoError(t, blob.Close())
	client.AssertExpectations(t)
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	client := new(mockClient)
	client.On("StatObject", ctx, "analysis", "cluster/missing").Return(minio.ObjectInfo{}, notFound)
	client.On("RemoveObject", ctx, "analysis", "cluster/missing").Return(notFound)

	store := NewStoreWithClient(client, "analysis")
	_, err := store.Open(ctx, "cluster/missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
	assert.NoError(t, store.Delete(ctx, "cluster/missing"))
}

func TestStore_DeleteError(t *testing.T) {
	ctx := context.Background()
	client := new(mockClient)
	denied := minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403}
	client.On("RemoveObject", ctx, "analysis", "cluster/run-1").Return(denied)

	store := NewStoreWithClient(client, "analysis")
	assert.Error(t, store.Delete(ctx, "cluster/run-1"))
}

func TestStore_List(t *testing.T) {
	ctx := context.Background()
	client := new(mockClient)
	client.On("ListObjects", ctx, "analysis", "kdd/difference/").Return(objects(
		minio.ObjectInfo{Key: "kdd/difference/run-2"},
		minio.ObjectInfo{Key: "kdd/difference/run-1"},
	))
	client.On("ListObjects", ctx, "analysis", "kdd/cluster/").Return(objects(
		minio.ObjectInfo{Err: errors.New("listing failed")},
	))

	store := NewStoreWithClient(client, "analysis", WithPrefix("kdd/"))
	names, err := store.List(ctx, "difference/")
	require.NoError(t, err)
	assert.Equal(t, []string{"difference/run-1", "difference/run-2"}, names)

	_, err = store.List(ctx, "cluster/")
	assert.Error(t, err)
}

// TestStore_Integration requires a MinIO server on localhost:9000.
func TestStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	client, err := minio.New("localhost:9000", &minio.Options{
		Creds: credentials.NewStaticV4("minioadmin", "minioadmin", ""),
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()
	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	const bucket = "test-kddgo"
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, WithPrefix("test-prefix/"))
	data := []byte("Number of Assemblies: 1")
	require.NoError(t, store.Put(ctx, "difference/a", data))

	got, err := blobstore.Get(ctx, store, "difference/a")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, store.Delete(ctx, "difference/a"))
	_, err = store.Open(ctx, "difference/a")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
