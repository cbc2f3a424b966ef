// Package testutils provides shared test infrastructure: an in-process fake
// of the remote storage API.
package testutils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// FakeAPI is an in-process stand-in for the storage-API server. It stores
// uploaded shards in memory keyed by the SHA256 hex of their content and
// serves them back by URI, mirroring the real API's routes.
type FakeAPI struct {
	Server *httptest.Server

	mu            sync.Mutex
	objects       map[string][]byte
	uploadCalls   int
	downloadCalls int

	uploadStatus int
	uploadBody   string
}

// StartFakeAPI starts a fake storage-API server. It is shut down
// automatically when the test ends.
func StartFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{objects: make(map[string][]byte)}

	r := mux.NewRouter()
	r.HandleFunc("/", f.handleRoot).Methods(http.MethodGet)
	r.HandleFunc("/api/upload", f.handleUpload).Methods(http.MethodPost)
	r.HandleFunc("/api/download/{uri}", f.handleDownload).Methods(http.MethodGet)

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the fake server's base URL.
func (f *FakeAPI) URL() string { return f.Server.URL }

// FailUploadsWith makes every subsequent upload respond with the given
// status and body instead of storing the shard.
func (f *FakeAPI) FailUploadsWith(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadStatus = status
	f.uploadBody = body
}

// UploadCalls reports how many upload requests the server has received.
func (f *FakeAPI) UploadCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploadCalls
}

// DownloadCalls reports how many download requests the server has received.
func (f *FakeAPI) DownloadCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.downloadCalls
}

// Object returns the stored bytes for a hash.
func (f *FakeAPI) Object(hash string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[hash]
	return data, ok
}

// Put stores bytes directly, bypassing upload. Returns the content hash.
func (f *FakeAPI) Put(data []byte) string {
	hash := hashBytes(data)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[hash] = data
	return hash
}

func (f *FakeAPI) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (f *FakeAPI) handleUpload(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.uploadCalls++
	status, body := f.uploadStatus, f.uploadBody
	f.mu.Unlock()

	if status != 0 {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(status)
		fmt.Fprint(w, body)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "bad multipart body: %v", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, "read upload: %v", err)
		return
	}
	hash := hashBytes(data)

	f.mu.Lock()
	f.objects[hash] = data
	f.mu.Unlock()

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"filehash": hash,
		"filename": header.Filename,
	})
}

func (f *FakeAPI) handleDownload(w http.ResponseWriter, r *http.Request) {
	uri := mux.Vars(r)["uri"]

	f.mu.Lock()
	f.downloadCalls++
	data, ok := f.objects[uri]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, "no shard stored under %s", uri)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// GenerateTestData generates size bytes of test data. Small sizes use a
// deterministic pattern so mismatches are easy to locate.
func GenerateTestData(t *testing.T, size int64) []byte {
	t.Helper()
	data := make([]byte, size)
	if size <= 10*1024*1024 {
		for i := range data {
			data[i] = byte(i % 256)
		}
	} else {
		if _, err := rand.Read(data); err != nil {
			t.Fatalf("generate random data: %v", err)
		}
	}
	return data
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
