package serpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchOutfitsRequiresAPIKey(t *testing.T) {
	client := NewClient(Options{})
	if _, err := client.SearchOutfits(context.Background(), Query{Text: "casual outfit"}); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestSearchOutfitsBuildsGoogleImagesQuery(t *testing.T) {
	var captured map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = map[string]string{}
		for key := range r.URL.Query() {
			captured[key] = r.URL.Query().Get(key)
		}
		_ = json.NewEncoder(w).Encode(searchResponse{})
	}))
	defer srv.Close()

	client := NewClient(Options{APIKey: "sk", BaseURL: srv.URL})
	if _, err := client.SearchOutfits(context.Background(), Query{
		Text:    "streetwear bomber jacket full body front view",
		Country: "ID",
		Locale:  "en",
	}); err != nil {
		t.Fatalf("search: %v", err)
	}

	want := map[string]string{
		"engine":  "google_images",
		"q":       "streetwear bomber jacket full body front view",
		"api_key": "sk",
		"num":     "12",
		"tbm":     "isch",
		"ijn":     "0",
		"tbs":     "isz:l",
		"gl":      "id",
		"hl":      "en",
	}
	for key, value := range want {
		if captured[key] != value {
			t.Fatalf("param %s = %q, want %q", key, captured[key], value)
		}
	}
}

func TestSearchOutfitsFiltersAndCaps(t *testing.T) {
	results := []imageResult{
		{Position: 1, Original: "", Thumbnail: "https://t.test/1.jpg", OriginalWidth: 900},
		{Position: 2, Original: "https://o.test/2.jpg", Thumbnail: "", OriginalWidth: 900},
		{Position: 3, Original: "https://o.test/3.jpg", Thumbnail: "https://t.test/3.jpg", OriginalWidth: 200},
	}
	for i := 4; i < 20; i++ {
		results = append(results, imageResult{
			Position:       i,
			Original:       fmt.Sprintf("https://o.test/%d.jpg", i),
			Thumbnail:      fmt.Sprintf("https://t.test/%d.jpg", i),
			Title:          "Summer look",
			Source:         "example.com",
			OriginalWidth:  1200,
			OriginalHeight: 1600,
		})
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(searchResponse{ImagesResults: results})
	}))
	defer srv.Close()

	client := NewClient(Options{APIKey: "sk", BaseURL: srv.URL})
	outfits, err := client.SearchOutfits(context.Background(), Query{Text: "summer dress"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(outfits) != 12 {
		t.Fatalf("len(outfits) = %d, want 12", len(outfits))
	}
	for _, o := range outfits {
		if o.URL == "" || o.Thumbnail == "" || o.Width <= 400 {
			t.Fatalf("filtered entry leaked through: %+v", o)
		}
	}
	if outfits[0].ID != "4" {
		t.Fatalf("first outfit id = %q, want position-derived %q", outfits[0].ID, "4")
	}
}

func TestSearchOutfitsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(searchResponse{Error: "Invalid API key"})
	}))
	defer srv.Close()

	client := NewClient(Options{APIKey: "sk", BaseURL: srv.URL})
	if _, err := client.SearchOutfits(context.Background(), Query{Text: "summer dress"}); err == nil {
		t.Fatalf("expected upstream error")
	}
}
