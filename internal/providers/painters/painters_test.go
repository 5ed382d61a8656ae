package painters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPainters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api.php", r.URL.Path)
		var job map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&job))
		require.Equal(t, "get_painter_list", job["job"])
		require.Equal(t, "Istanbul", job["city"])

		w.Write([]byte(`[
			{"Name": "Ayse", "SurName": "Demir", "ProfilePhotoLink": "uploads/ayse.jpg", "ExperienceYear": 12},
			{"Name": "Mehmet", "SurName": "Kaya", "ProfilePhotoLink": "https://cdn.example.com/mehmet.jpg", "ExperienceYear": 7}
		]`))
	}))
	defer srv.Close()

	painters, err := NewClient(srv.URL).ListPainters(context.Background(), "Istanbul")
	require.NoError(t, err)
	require.Len(t, painters, 2)

	assert.Equal(t, srv.URL+"/uploads/ayse.jpg", painters[0].ProfilePhotoLink)
	assert.Equal(t, "https://cdn.example.com/mehmet.jpg", painters[1].ProfilePhotoLink,
		"absolute links must pass through untouched")
}

func TestListPainters_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ListPainters(context.Background(), "Ankara")
	assert.Error(t, err)
}

func TestAbsolutePhotoLink(t *testing.T) {
	c := NewClient("https://painters.example.com")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"uploads/p.jpg", "https://painters.example.com/uploads/p.jpg"},
		{"/uploads/p.jpg", "https://painters.example.com/uploads/p.jpg"},
		{"http://other.example.com/p.jpg", "http://other.example.com/p.jpg"},
		{"https://other.example.com/p.jpg", "https://other.example.com/p.jpg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.absolutePhotoLink(tt.in))
	}
}
