// openai-stub is a tiny OpenAI-compatible chat completion server used for
// local development and smoke tests. It dispatches on the system prompt and
// returns deterministic canned output, so the pipeline can run end to end
// without a real completion provider.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func main() {
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "test-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		sys := ""
		if len(req.Messages) > 0 {
			sys = strings.TrimSpace(req.Messages[0].Content)
		}
		var content string
		switch {
		case strings.Contains(sys, "analyst and journalist"):
			content = "The article describes a stubbed summary.\n\nIt has two short paragraphs covering the key ideas."
		case strings.Contains(sys, "expert in text analysis"):
			content = "1. First stub thesis.\n2. Second stub thesis.\n3. Third stub thesis."
		case strings.Contains(sys, "copywriter"):
			content = "🚀 Stub headline\n\nCondensed stub body.\n\n#stub #test\n\n📎 Source: https://example.com/article"
		case strings.Contains(sys, "professional translator"):
			content = "This is the stub English translation of the provided text."
		case strings.Contains(sys, "prompts for image generation"):
			content = "A minimalist flat illustration of a newspaper article, soft colors, clean composition"
		default:
			http.Error(w, "unexpected system", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	})

	log.Printf("openai-stub listening on %s (model=%s)", addr, model)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}
