package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/simmat/blobstore"
)

// fakeClient is an in-memory stand-in for *s3.Client.
type fakeClient struct {
	mu      sync.Mutex
	objects map[string][]byte
	parts   map[string][][]byte
}

var _ Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{
		objects: make(map[string][]byte),
		parts:   make(map[string][][]byte),
	}
}

func (f *fakeClient) HeadObject(_ context.Context, params *awss3.HeadObjectInput, _ ...func(*awss3.Options)) (*awss3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &awss3.HeadObjectOutput{ContentLength: aws.Int64(int64(len(data)))}, nil
}

func (f *fakeClient) GetObject(_ context.Context, params *awss3.GetObjectInput, _ ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}

	lo, hi := int64(0), int64(len(data)-1)
	if params.Range != nil {
		if _, err := fmt.Sscanf(aws.ToString(params.Range), "bytes=%d-%d", &lo, &hi); err != nil {
			return nil, err
		}
		if hi >= int64(len(data)) {
			hi = int64(len(data) - 1)
		}
	}

	body := data[lo : hi+1]
	return &awss3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: aws.Int64(int64(len(body))),
	}, nil
}

func (f *fakeClient) PutObject(_ context.Context, params *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(params.Key)] = data
	return &awss3.PutObjectOutput{}, nil
}

func (f *fakeClient) DeleteObject(_ context.Context, params *awss3.DeleteObjectInput, _ ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(params.Key))
	return &awss3.DeleteObjectOutput{}, nil
}

func (f *fakeClient) ListObjectsV2(_ context.Context, params *awss3.ListObjectsV2Input, _ ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(params.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	contents := make([]types.Object, 0, len(keys))
	for _, k := range keys {
		contents = append(contents, types.Object{Key: aws.String(k)})
	}
	return &awss3.ListObjectsV2Output{
		Contents:    contents,
		IsTruncated: aws.Bool(false),
	}, nil
}

func (f *fakeClient) CreateMultipartUpload(_ context.Context, params *awss3.CreateMultipartUploadInput, _ ...func(*awss3.Options)) (*awss3.CreateMultipartUploadOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := aws.ToString(params.Key)
	f.parts[key] = nil
	return &awss3.CreateMultipartUploadOutput{UploadId: aws.String(key)}, nil
}

func (f *fakeClient) UploadPart(_ context.Context, params *awss3.UploadPartInput, _ ...func(*awss3.Options)) (*awss3.UploadPartOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	id := aws.ToString(params.UploadId)
	f.parts[id] = append(f.parts[id], data)
	return &awss3.UploadPartOutput{ETag: aws.String(fmt.Sprintf("part-%d", len(f.parts[id])))}, nil
}

func (f *fakeClient) CompleteMultipartUpload(_ context.Context, params *awss3.CompleteMultipartUploadInput, _ ...func(*awss3.Options)) (*awss3.CompleteMultipartUploadOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := aws.ToString(params.UploadId)
	var buf bytes.Buffer
	for _, p := range f.parts[id] {
		buf.Write(p)
	}
	f.objects[aws.ToString(params.Key)] = buf.Bytes()
	delete(f.parts, id)
	return &awss3.CompleteMultipartUploadOutput{}, nil
}

func (f *fakeClient) AbortMultipartUpload(_ context.Context, params *awss3.AbortMultipartUploadInput, _ ...func(*awss3.Options)) (*awss3.AbortMultipartUploadOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.parts, aws.ToString(params.UploadId))
	return &awss3.AbortMultipartUploadOutput{}, nil
}

func TestS3Store(t *testing.T) {
	ctx := context.Background()

	t.Run("put and open with prefix", func(t *testing.T) {
		fake := newFakeClient()
		store := NewWithClient(fake, "bucket", "snaps")

		require.NoError(t, store.Put(ctx, "corr.bin", []byte("hello")))

		// The key carries the configured prefix.
		fake.mu.Lock()
		_, ok := fake.objects["snaps/corr.bin"]
		fake.mu.Unlock()
		assert.True(t, ok)

		blob, err := store.Open(ctx, "corr.bin")
		require.NoError(t, err)
		defer blob.Close()

		assert.Equal(t, int64(5), blob.Size())

		data, err := blobstore.ReadAll(ctx, blob)
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("open missing", func(t *testing.T) {
		store := NewWithClient(newFakeClient(), "bucket", "")
		_, err := store.Open(ctx, "nope")
		require.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("ranged reads", func(t *testing.T) {
		store := NewWithClient(newFakeClient(), "bucket", "")
		require.NoError(t, store.Put(ctx, "a", []byte("0123456789")))

		blob, err := store.Open(ctx, "a")
		require.NoError(t, err)
		defer blob.Close()

		p := make([]byte, 4)
		n, err := blob.ReadAt(ctx, p, 3)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, []byte("3456"), p)

		rc, err := blob.ReadRange(ctx, 6, 100)
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, []byte("6789"), data)
	})

	t.Run("create streams via uploader", func(t *testing.T) {
		store := NewWithClient(newFakeClient(), "bucket", "")

		w, err := store.Create(ctx, "b")
		require.NoError(t, err)
		_, err = w.Write([]byte("streamed "))
		require.NoError(t, err)
		_, err = w.Write([]byte("payload"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		blob, err := store.Open(ctx, "b")
		require.NoError(t, err)
		defer blob.Close()

		data, err := blobstore.ReadAll(ctx, blob)
		require.NoError(t, err)
		assert.Equal(t, []byte("streamed payload"), data)
	})

	t.Run("double close", func(t *testing.T) {
		store := NewWithClient(newFakeClient(), "bucket", "")
		w, err := store.Create(ctx, "c")
		require.NoError(t, err)
		require.NoError(t, w.Close())
		require.Error(t, w.Close())
	})

	t.Run("list and delete", func(t *testing.T) {
		store := NewWithClient(newFakeClient(), "bucket", "root")
		require.NoError(t, store.Put(ctx, "x/1", []byte("a")))
		require.NoError(t, store.Put(ctx, "x/2", []byte("b")))
		require.NoError(t, store.Put(ctx, "y/1", []byte("c")))

		names, err := store.List(ctx, "x/")
		require.NoError(t, err)
		assert.Equal(t, []string{"x/1", "x/2"}, names)

		require.NoError(t, store.Delete(ctx, "x/1"))

		names, err = store.List(ctx, "x/")
		require.NoError(t, err)
		assert.Equal(t, []string{"x/2"}, names)
	})
}
