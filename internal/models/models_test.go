package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBestImage(t *testing.T) {
	tc := []struct {
		name   string
		images []Image
		want   string
	}{
		{name: "none", images: nil, want: ""},
		{name: "first wins", images: []Image{{URL: "a"}, {URL: "b"}}, want: "a"},
		{name: "skips empty", images: []Image{{URL: ""}, {URL: "b"}}, want: "b"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := BestImage(tt.images); got != tt.want {
				t.Errorf("BestImage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArtistNames(t *testing.T) {
	artists := []SimpleArtist{{Name: "Daft Punk"}, {Name: "Pharrell Williams"}}
	if got := ArtistNames(artists); got != "Daft Punk, Pharrell Williams" {
		t.Errorf("ArtistNames() = %q", got)
	}
	if got := ArtistNames(nil); got != "" {
		t.Errorf("ArtistNames(nil) = %q, want empty", got)
	}
}

func TestDecoding(t *testing.T) {
	t.Run("album with track page", func(t *testing.T) {
		body := `{
			"id": "alb1",
			"name": "Discovery",
			"album_type": "album",
			"release_date": "2001-03-12",
			"artists": [{"id": "ar1", "name": "Daft Punk"}],
			"images": [{"url": "https://i.scdn.co/image/1", "height": 640, "width": 640}],
			"tracks": {
				"items": [{"id": "t1", "name": "One More Time", "duration_ms": 320357, "preview_url": null}],
				"total": 14, "limit": 50, "offset": 0, "next": null, "previous": null
			}
		}`

		var album Album
		if err := json.Unmarshal([]byte(body), &album); err != nil {
			t.Fatalf("failed to decode album: %v", err)
		}
		if album.Tracks == nil || album.Tracks.Total != 14 {
			t.Fatalf("expected embedded track page with total 14, got %+v", album.Tracks)
		}
		track := album.Tracks.Items[0]
		if track.HasPreview() {
			t.Error("null preview_url should decode as no preview")
		}
		if track.Duration() != 320357*time.Millisecond {
			t.Errorf("unexpected duration %v", track.Duration())
		}
	})

	t.Run("category with null icon dimensions", func(t *testing.T) {
		body := `{"id": "toplists", "name": "Top Lists", "icons": [{"url": "https://t.scdn.co/x.jpg", "height": null, "width": null}]}`

		var category Category
		if err := json.Unmarshal([]byte(body), &category); err != nil {
			t.Fatalf("failed to decode category: %v", err)
		}
		if BestImage(category.Icons) != "https://t.scdn.co/x.jpg" {
			t.Errorf("unexpected icon %+v", category.Icons)
		}
	})

	t.Run("playlist item without track", func(t *testing.T) {
		var page Paging[PlaylistItem]
		body := `{"items": [{"added_at": "2024-01-01T00:00:00Z", "track": null}], "total": 1}`
		if err := json.Unmarshal([]byte(body), &page); err != nil {
			t.Fatalf("failed to decode page: %v", err)
		}
		if page.Items[0].Track != nil {
			t.Error("expected nil track for removed item")
		}
	})

	t.Run("track flattens simple fields", func(t *testing.T) {
		body := `{"id": "t1", "name": "Aerodynamic", "preview_url": "https://p.scdn.co/mp3-preview/1", "album": {"id": "alb1", "name": "Discovery"}}`

		var track Track
		if err := json.Unmarshal([]byte(body), &track); err != nil {
			t.Fatalf("failed to decode track: %v", err)
		}
		if track.Name != "Aerodynamic" || track.Album.Name != "Discovery" {
			t.Errorf("unexpected track %+v", track)
		}
		if !track.HasPreview() {
			t.Error("expected preview")
		}
	})
}
