// Command mock-snapi serves a small Spaceflight-News-shaped articles API for
// local development, honoring limit/offset and the previous/next envelope.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
)

type article struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	ImageURL string `json:"image_url"`
	URL      string `json:"url"`
}

func main() {
	articles := make([]article, 0, 35)
	for i := 1; i <= 35; i++ {
		articles = append(articles, article{
			Title:    fmt.Sprintf("Mock launch update #%d", i),
			Summary:  fmt.Sprintf("Summary for mock space-news article %d.", i),
			ImageURL: fmt.Sprintf("http://localhost:8081/images/%d.png", i),
			URL:      fmt.Sprintf("http://localhost:8081/articles/%d", i),
		})
	}

	http.HandleFunc("/v4/articles/", func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit < 1 {
			limit = 10
		}
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		if offset < 0 {
			offset = 0
		}

		end := offset + limit
		if offset > len(articles) {
			offset = len(articles)
		}
		if end > len(articles) {
			end = len(articles)
		}

		response := map[string]interface{}{
			"count":    len(articles),
			"previous": nil,
			"next":     nil,
			"results":  articles[offset:end],
		}
		if offset > 0 {
			prev := offset - limit
			if prev < 0 {
				prev = 0
			}
			response["previous"] = fmt.Sprintf("http://localhost:8081/v4/articles/?limit=%d&offset=%d", limit, prev)
		}
		if end < len(articles) {
			response["next"] = fmt.Sprintf("http://localhost:8081/v4/articles/?limit=%d&offset=%d", limit, end)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	})

	slog.Info("Mock articles API running on :8081")
	if err := http.ListenAndServe(":8081", nil); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
