package gen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	p := Params{Language: "İngilizce", Difficulty: "Orta", Extra: "Kırmızı"}

	for _, kind := range []Kind{KindTask, KindPenalty, KindColorTask, KindWrongWord, KindInterview, KindRiddle, KindSpy} {
		prompt, err := buildPrompt(kind, p)
		if err != nil {
			t.Fatalf("buildPrompt(%s): %v", kind, err)
		}
		if strings.TrimSpace(prompt) == "" {
			t.Fatalf("buildPrompt(%s) is empty", kind)
		}
	}

	prompt, _ := buildPrompt(KindTask, p)
	if !strings.Contains(prompt, "İngilizce") || !strings.Contains(prompt, "Orta") {
		t.Errorf("task prompt misses language or level:\n%s", prompt)
	}
	prompt, _ = buildPrompt(KindColorTask, p)
	if !strings.Contains(prompt, "Kırmızı") {
		t.Errorf("color prompt misses the color:\n%s", prompt)
	}
	// A color task without a color still builds.
	prompt, err := buildPrompt(KindColorTask, Params{Language: "İngilizce"})
	if err != nil || prompt == "" {
		t.Errorf("colorless color task: %q, %v", prompt, err)
	}

	if _, err := buildPrompt(Kind("NOPE"), p); err == nil {
		t.Error("unknown kind must error")
	}
}

func TestGeminiGenerate(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 {
			t.Errorf("unexpected request shape: %+v", req)
		}
		json.NewEncoder(w).Encode(geminiResponse{
			Candidates: []struct {
				Content geminiContent `json:"content"`
			}{
				{Content: geminiContent{Parts: []geminiPart{{Text: "  Bir şarkı söyle  "}}}},
			},
		})
	}))
	defer srv.Close()

	g := NewGemini("test-key", "")
	g.baseURL = srv.URL

	text, err := g.Generate(context.Background(), KindTask, Params{Language: "İngilizce", Difficulty: "Orta"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "Bir şarkı söyle" {
		t.Errorf("text = %q, want trimmed task text", text)
	}
	if gotPath != "/models/"+defaultModel+":generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("key = %q", gotKey)
	}
}

func TestGeminiGenerateErrors(t *testing.T) {
	t.Run("non-200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota", http.StatusTooManyRequests)
		}))
		defer srv.Close()
		g := NewGemini("k", "")
		g.baseURL = srv.URL
		if _, err := g.Generate(context.Background(), KindTask, Params{}); err == nil {
			t.Error("expected error on 429")
		}
	})

	t.Run("empty candidates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(geminiResponse{})
		}))
		defer srv.Close()
		g := NewGemini("k", "")
		g.baseURL = srv.URL
		if _, err := g.Generate(context.Background(), KindTask, Params{}); err == nil {
			t.Error("expected error on empty content")
		}
	})

	t.Run("unknown kind skips the network", func(t *testing.T) {
		g := NewGemini("k", "")
		g.baseURL = "http://127.0.0.1:0"
		if _, err := g.Generate(context.Background(), Kind("NOPE"), Params{}); err == nil {
			t.Error("expected prompt error")
		}
	})
}

func TestFuncAdapter(t *testing.T) {
	var gotKind Kind
	g := Func(func(ctx context.Context, kind Kind, p Params) (string, error) {
		gotKind = kind
		return "ok", nil
	})
	text, err := g.Generate(context.Background(), KindRiddle, Params{})
	if err != nil || text != "ok" {
		t.Fatalf("Generate = %q, %v", text, err)
	}
	if gotKind != KindRiddle {
		t.Errorf("kind = %s", gotKind)
	}
}
