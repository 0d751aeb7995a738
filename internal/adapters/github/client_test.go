package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"scrivo/internal/application"
	"scrivo/internal/ports"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	rec := ports.SessionRecord{Account: "ada", Repository: "blog", Token: "secret"}
	return NewClient(rec, "content/posts", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

func TestClientList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/repos/ada/blog/contents/content/posts" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "token secret" {
			t.Errorf("authorization = %q", got)
		}
		fmt.Fprint(w, `[
			{"name":"a.md","path":"content/posts/a.md","sha":"s1","type":"file"},
			{"name":"img","path":"content/posts/img","sha":"s2","type":"dir"},
			{"name":"b.md","path":"content/posts/b.md","sha":"s3","type":"file"}
		]`)
	})

	refs, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("got %d refs, want 2 (directories excluded)", len(refs))
	}
	if refs[0].Path != "content/posts/a.md" || refs[0].SHA != "s1" {
		t.Errorf("refs[0] = %+v", refs[0])
	}
}

func TestClientRead_DecodesFullUnicode(t *testing.T) {
	text := "---\ntitle: héllo\n---\n\nBody with 🎉 emoji\n"
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	// GitHub wraps encoded content in newlines.
	wrapped := encoded[:10] + "\n" + encoded[10:] + "\n"

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"content":  wrapped,
			"sha":      "abc123",
			"encoding": "base64",
		})
	})

	file, err := client.Read(context.Background(), "content/posts/a.md")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if file.Content != text {
		t.Errorf("content = %q, want %q", file.Content, text)
	}
	if file.SHA != "abc123" {
		t.Errorf("sha = %q", file.SHA)
	}
}

func TestClientCreate_OmitsSHA(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if _, hasSHA := req["sha"]; hasSHA {
			t.Error("create must not send a sha")
		}
		if req["message"] == "" {
			t.Error("create must send a commit message")
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"content":{"sha":"new-sha"}}`)
	})

	sha, err := client.Create(context.Background(), "content/posts/new.md", "hello")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sha != "new-sha" {
		t.Errorf("sha = %q, want new-sha", sha)
	}
}

func TestClientUpdate_SendsHeldSHA(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		if req["sha"] != "old-sha" {
			t.Errorf("sha = %v, want old-sha", req["sha"])
		}
		content, _ := req["content"].(string)
		decoded, err := base64.StdEncoding.DecodeString(content)
		if err != nil || string(decoded) != "updated text" {
			t.Errorf("content = %q (%v)", decoded, err)
		}
		fmt.Fprint(w, `{"content":{"sha":"next-sha"}}`)
	})

	sha, err := client.Update(context.Background(), "content/posts/a.md", "updated text", "old-sha")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if sha != "next-sha" {
		t.Errorf("sha = %q, want next-sha", sha)
	}
}

func TestClientDelete(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		if req["sha"] != "s1" {
			t.Errorf("sha = %v, want s1", req["sha"])
		}
		fmt.Fprint(w, `{"content":null}`)
	})

	if err := client.Delete(context.Background(), "content/posts/a.md", "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestClientErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErrIs  error
		wantInMsg  string
		wantStatus int
	}{
		{
			name:      "404 maps to not found",
			status:    http.StatusNotFound,
			body:      `{"message":"Not Found"}`,
			wantErrIs: application.ErrNotFound,
		},
		{
			name:      "409 maps to conflict",
			status:    http.StatusConflict,
			body:      `{"message":"is at X but expected Y"}`,
			wantErrIs: application.ErrConflict,
		},
		{
			name:      "422 maps to conflict",
			status:    http.StatusUnprocessableEntity,
			body:      `{"message":"sha wasn't supplied"}`,
			wantErrIs: application.ErrConflict,
		},
		{
			name:       "500 carries body message",
			status:     http.StatusInternalServerError,
			body:       `{"message":"upstream exploded"}`,
			wantInMsg:  "upstream exploded",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "503 without body falls back to status text",
			status:     http.StatusServiceUnavailable,
			body:       ``,
			wantInMsg:  http.StatusText(http.StatusServiceUnavailable),
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			_, err := client.Read(context.Background(), "content/posts/a.md")
			if err == nil {
				t.Fatal("expected an error")
			}

			if tt.wantErrIs != nil {
				if !errors.Is(err, tt.wantErrIs) {
					t.Errorf("err = %v, want errors.Is %v", err, tt.wantErrIs)
				}
				return
			}

			var terr *application.TransportError
			if !errors.As(err, &terr) {
				t.Fatalf("err = %T, want TransportError", err)
			}
			if terr.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", terr.Status, tt.wantStatus)
			}
			if terr.Message != tt.wantInMsg {
				t.Errorf("message = %q, want %q", terr.Message, tt.wantInMsg)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	inputs := []string{
		"plain ascii",
		"multi\nline\ntext\n",
		"unicode: 日本語 — ünïcödé 🎉",
		"",
	}
	for _, in := range inputs {
		out, err := decodeContent(encodeContent(in))
		if err != nil {
			t.Fatalf("decode(encode(%q)): %v", in, err)
		}
		if out != in {
			t.Errorf("round trip = %q, want %q", out, in)
		}
	}
}
