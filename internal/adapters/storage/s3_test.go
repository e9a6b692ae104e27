package storage_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/dashboard-be/internal/adapters/storage"
	"github.com/ammerola/dashboard-be/test/helpers"
)

// fakeS3 answers the handful of S3 calls the storage adapter makes
type fakeS3 struct {
	mu       sync.Mutex
	objects  map[string]string
	types    map[string]string
	deletes  []string
	created  bool
	noBucket bool
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// path style: /{bucket}/{key}
	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	switch {
	case r.Method == http.MethodHead && key == "":
		if f.noBucket && !f.created {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)

	case r.Method == http.MethodPut && key == "":
		f.created = true
		w.WriteHeader(http.StatusOK)

	case r.Method == http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[key] = string(body)
		f.types[key] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)

	case r.Method == http.MethodGet && r.URL.Query().Get("list-type") == "2":
		prefix := r.URL.Query().Get("prefix")
		var b strings.Builder
		b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><ListBucketResult><Name>snapshots</Name><IsTruncated>false</IsTruncated>`)
		for k, v := range f.objects {
			if strings.HasPrefix(k, prefix) {
				b.WriteString("<Contents><Key>" + k + "</Key><LastModified>2025-01-02T03:04:05.000Z</LastModified>")
				b.WriteString("<Size>" + strconv.Itoa(len(v)) + "</Size></Contents>")
			}
		}
		b.WriteString(`</ListBucketResult>`)
		w.Header().Set("Content-Type", "application/xml")
		_, _ = io.WriteString(w, b.String())

	case r.Method == http.MethodPost && r.URL.Query().Has("delete"):
		body, _ := io.ReadAll(r.Body)
		for _, chunk := range strings.Split(string(body), "<Key>")[1:] {
			k := chunk[:strings.Index(chunk, "</Key>")]
			f.deletes = append(f.deletes, k)
			delete(f.objects, k)
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><DeleteResult></DeleteResult>`)

	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func newStorage(t *testing.T, fake *fakeS3) *storage.S3Storage {
	t.Helper()
	fake.objects = map[string]string{}
	fake.types = map[string]string{}

	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	s, err := storage.NewS3Storage(context.Background(), &storage.S3Config{
		Region:          "us-east-1",
		Bucket:          "snapshots",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		Endpoint:        server.URL,
		UsePathStyle:    true,
	}, helpers.TestLogger())
	require.NoError(t, err)
	return s
}

func TestNewS3Storage_CreatesMissingBucket(t *testing.T) {
	fake := &fakeS3{noBucket: true}

	newStorage(t, fake)

	assert.True(t, fake.created)
}

func TestNewS3Storage_RequiresBucket(t *testing.T) {
	_, err := storage.NewS3Storage(context.Background(), &storage.S3Config{Region: "us-east-1"}, helpers.TestLogger())

	assert.Error(t, err)
}

func TestS3Storage_UploadListDelete(t *testing.T) {
	ctx := context.Background()
	fake := &fakeS3{}
	s := newStorage(t, fake)

	location, err := s.Upload(ctx, "snapshots/sales/20250102T030405Z.json", strings.NewReader(`[{"id":"a"}]`), "")
	require.NoError(t, err)
	assert.Contains(t, location, "snapshots/sales/20250102T030405Z.json")
	assert.Equal(t, `[{"id":"a"}]`, fake.objects["snapshots/sales/20250102T030405Z.json"])
	assert.Equal(t, "application/json", fake.types["snapshots/sales/20250102T030405Z.json"])

	_, err = s.Upload(ctx, "snapshots/inventories/1.json", strings.NewReader(`[]`), "application/json")
	require.NoError(t, err)

	objects, err := s.List(ctx, "snapshots/sales/")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "snapshots/sales/20250102T030405Z.json", objects[0].Key)
	assert.Equal(t, int64(len(`[{"id":"a"}]`)), objects[0].Size)
	assert.Equal(t, 2025, objects[0].LastModified.Year())

	require.NoError(t, s.Delete(ctx, "snapshots/sales/20250102T030405Z.json"))
	assert.Equal(t, []string{"snapshots/sales/20250102T030405Z.json"}, fake.deletes)

	require.NoError(t, s.Delete(ctx))
	assert.Len(t, fake.deletes, 1)
}
