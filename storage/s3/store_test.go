package s3

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/poiesic/sift/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient is an in-memory bucket that pages listings pageSize keys at a time.
type fakeClient struct {
	mu        sync.Mutex
	objects   map[string][]byte
	pageSize  int
	listCalls int
	listErr   error
}

func newFakeClient(pageSize int) *fakeClient {
	return &fakeClient{objects: map[string][]byte{}, pageSize: pageSize}
}

func (f *fakeClient) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}

	keys := make([]string, 0, len(f.objects))
	for key := range f.objects {
		if strings.HasPrefix(key, aws.ToString(params.Prefix)) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	start := 0
	if params.ContinuationToken != nil {
		start, _ = strconv.Atoi(*params.ContinuationToken)
	}
	end := min(start+f.pageSize, len(keys))

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	for _, key := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{
			Key:          aws.String(key),
			Size:         aws.Int64(int64(len(f.objects[key]))),
			ETag:         aws.String(`"etag-` + key + `"`),
			LastModified: aws.Time(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)),
		})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(strconv.Itoa(end))
	}
	return out, nil
}

func (f *fakeClient) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeClient) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(params.Key)] = data
	return &s3.PutObjectOutput{ETag: aws.String(`"abc"`)}, nil
}

func (f *fakeClient) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestNewStore(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		store, err := NewStore(newFakeClient(10), "bucket")
		require.NoError(t, err)
		assert.NotNil(t, store)
	})

	t.Run("nil client", func(t *testing.T) {
		_, err := NewStore(nil, "bucket")
		assert.Equal(t, ErrClientRequired, err)
	})

	t.Run("blank bucket", func(t *testing.T) {
		_, err := NewStore(newFakeClient(10), " ")
		assert.Equal(t, ErrBucketRequired, err)
	})

	t.Run("negative page size", func(t *testing.T) {
		_, err := NewStore(newFakeClient(10), "bucket", WithPageSize(-1))
		assert.Error(t, err)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		store, err := NewStore(newFakeClient(10), "bucket", WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, store.logger)
	})
}

func TestStore_ListFlattensPages(t *testing.T) {
	client := newFakeClient(2)
	for i := 0; i < 5; i++ {
		client.objects["chatbot/doc"+strconv.Itoa(i)+".pdf"] = []byte("x")
	}
	client.objects["elsewhere/skip.pdf"] = []byte("x")

	store, err := NewStore(client, "bucket")
	require.NoError(t, err)

	infos, err := store.List(context.Background(), "chatbot/")
	require.NoError(t, err)
	require.Len(t, infos, 5)
	assert.Equal(t, 3, client.listCalls, "five keys at two per page need three pages")

	assert.Equal(t, "chatbot/doc0.pdf", infos[0].Key)
	assert.Equal(t, "chatbot/doc4.pdf", infos[4].Key)
	assert.Equal(t, int64(1), infos[0].Size)
	assert.Equal(t, "etag-chatbot/doc0.pdf", infos[0].ETag, "quotes are stripped")
	assert.False(t, infos[0].ModifiedAt.IsZero())
}

func TestStore_ListEmpty(t *testing.T) {
	store, err := NewStore(newFakeClient(2), "bucket")
	require.NoError(t, err)

	infos, err := store.List(context.Background(), "chatbot/")
	require.NoError(t, err)
	assert.NotNil(t, infos)
	assert.Empty(t, infos)
}

func TestStore_ListError(t *testing.T) {
	client := newFakeClient(2)
	client.listErr = assert.AnError

	store, err := NewStore(client, "bucket")
	require.NoError(t, err)

	_, err = store.List(context.Background(), "chatbot/")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestStore_PutGetDelete(t *testing.T) {
	client := newFakeClient(10)
	store, err := NewStore(client, "bucket")
	require.NoError(t, err)
	ctx := context.Background()

	info, err := store.Put(ctx, "chatbot/a.xlsx", []byte("sheet"))
	require.NoError(t, err)
	assert.Equal(t, "abc", info.ETag)
	assert.Equal(t, int64(5), info.Size)

	data, err := store.Get(ctx, "chatbot/a.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []byte("sheet"), data)

	require.NoError(t, store.Delete(ctx, "chatbot/a.xlsx"))

	_, err = store.Get(ctx, "chatbot/a.xlsx")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
