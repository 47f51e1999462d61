package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/nexara/nexara/internal/errors"
	"github.com/nexara/nexara/internal/mockserver"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newMockClient(t *testing.T) (*Client, *mockserver.Server) {
	t.Helper()
	mock := mockserver.New()
	srv := httptest.NewServer(mock.Handler())
	t.Cleanup(srv.Close)
	return New(srv.URL, WithTimeout(5*time.Second)), mock
}

func staticServer(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestUpload_Success(t *testing.T) {
	client, mock := newMockClient(t)
	path := writeFile(t, "report.pdf", "%PDF-1.4 hello")

	res, err := client.Upload(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", res.FileName)
	assert.Contains(t, res.Message, "report.pdf")
	assert.Equal(t, []string{"report.pdf"}, mock.Documents())
}

func TestUpload_SendsFileField(t *testing.T) {
	var gotName, gotContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		f, h, err := r.FormFile(FieldFile)
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		gotName, gotContent = h.Filename, string(data)
		io.WriteString(w, `{"message":"ok"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Upload(context.Background(), writeFile(t, "notes.txt", "abc"))
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", gotName)
	assert.Equal(t, "abc", gotContent)
}

func TestUpload_BackendErrorMessageIsVerbatim(t *testing.T) {
	client := staticServer(t, http.StatusInternalServerError, `{"error":"bad format"}`)

	_, err := client.Upload(context.Background(), writeFile(t, "x.bin", "data"))
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.KindBackend))
	assert.Equal(t, "bad format", perrors.UserMessage(err, "generic"))
}

func TestUpload_UnparseableErrorFallsBack(t *testing.T) {
	for _, body := range []string{"<html>oops</html>", "", `{"error":""}`, `{"detail":"x"}`} {
		client := staticServer(t, http.StatusBadGateway, body)
		_, err := client.Upload(context.Background(), writeFile(t, "x.txt", "data"))
		require.Error(t, err, "body %q", body)
		assert.Equal(t, UploadFailedMessage, perrors.UserMessage(err, "generic"), "body %q", body)
	}
}

func TestUpload_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Upload(context.Background(), writeFile(t, "x.txt", "data"))
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.KindNetwork))
	assert.Contains(t, perrors.UserMessage(err, ""), UploadFailedMessage)
}

func TestUpload_MissingFile(t *testing.T) {
	client, _ := newMockClient(t)
	_, err := client.Upload(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.KindNotFound))
}

func TestUpload_Directory(t *testing.T) {
	client, _ := newMockClient(t)
	_, err := client.Upload(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.KindInvalid))
}

func TestChat_Reply(t *testing.T) {
	client := staticServer(t, http.StatusOK, `{"response":"Hi there"}`)
	res, err := client.Chat(context.Background(), "Hello", "")
	require.NoError(t, err)
	assert.Equal(t, "Hi there", res.Response)
	assert.Equal(t, "Hi there", res.Text())
}

func TestChat_ErrorOnlyReply(t *testing.T) {
	client := staticServer(t, http.StatusOK, `{"error":"no documents indexed"}`)
	res, err := client.Chat(context.Background(), "Hello", "")
	require.NoError(t, err)
	assert.Equal(t, "no documents indexed", res.Text())
}

func TestChat_SendsMessageAndImageField(t *testing.T) {
	var message, attachment string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		message = r.FormValue(FieldMessage)
		if _, h, err := r.FormFile(FieldAttachment); err == nil {
			attachment = h.Filename
		}
		io.WriteString(w, `{"response":"ok"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Chat(context.Background(), "summarize", writeFile(t, "sheet.xlsx", "PK"))
	require.NoError(t, err)
	assert.Equal(t, "summarize", message)
	assert.Equal(t, "sheet.xlsx", attachment, "non-image attachments still go under the image field")
}

func TestChat_AgainstMockServer(t *testing.T) {
	client, _ := newMockClient(t)
	_, err := client.Upload(context.Background(), writeFile(t, "guide.md", "# Guide"))
	require.NoError(t, err)

	res, err := client.Chat(context.Background(), "what is this?", "")
	require.NoError(t, err)
	assert.Contains(t, res.Response, "guide.md")
	assert.Contains(t, res.Response, "what is this?")
}

func TestChat_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    perrors.Kind
		message string
	}{
		{"backend error with message", http.StatusInternalServerError, `{"error":"model overloaded"}`, perrors.KindBackend, "model overloaded"},
		{"backend error without message", http.StatusInternalServerError, `nope`, perrors.KindBackend, ChatFailedMessage},
		{"ok with garbage body", http.StatusOK, `not json`, perrors.KindBackend, ChatFailedMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := staticServer(t, tt.status, tt.body)
			_, err := client.Chat(context.Background(), "hi", "")
			require.Error(t, err)
			assert.Equal(t, tt.kind, perrors.GetKind(err))
			assert.Equal(t, tt.message, perrors.UserMessage(err, ""))
		})
	}
}

func TestChat_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Chat(context.Background(), "hi", "")
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.KindNetwork))
	assert.Equal(t, ChatFailedMessage, perrors.UserMessage(err, ""))
}

func TestClear(t *testing.T) {
	client, mock := newMockClient(t)
	_, err := client.Upload(context.Background(), writeFile(t, "a.txt", "a"))
	require.NoError(t, err)
	require.NotEmpty(t, mock.Documents())

	require.NoError(t, client.Clear(context.Background()))
	assert.Empty(t, mock.Documents())
}

func TestClear_Failure(t *testing.T) {
	client := staticServer(t, http.StatusInternalServerError, `{"error":"disk full"}`)
	err := client.Clear(context.Background())
	require.Error(t, err)
	assert.Equal(t, "disk full", perrors.UserMessage(err, ""))
}

func TestHealth(t *testing.T) {
	client, _ := newMockClient(t)
	assert.NoError(t, client.Health(context.Background()))

	unhealthy := staticServer(t, http.StatusOK, `{"status":"starting"}`)
	assert.Error(t, unhealthy.Health(context.Background()))
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	assert.Equal(t, "http://localhost:8000", New("http://localhost:8000/").BaseURL())
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "bad format", errorMessage([]byte(`{"error":"bad format"}`), "fb"))
	assert.Equal(t, "fb", errorMessage([]byte(`{"error":"  "}`), "fb"))
	assert.Equal(t, "fb", errorMessage(nil, "fb"))
}
