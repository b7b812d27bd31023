package exporter

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hellenic-development/figma-assets/pkg/figma"
)

func TestAssetBaseName(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		want      string
	}{
		{"icon/scissor", "icon/", "scissor"},
		{"icon/Some Name", "icon/", "some_name"},
		{"icon/24/back arrow", "icon/", "24_back_arrow"},
		{"img/grids", "img/", "grids"},
		{"img/Hero  Banner", "img/", "hero_banner"},
	}

	for _, tt := range tests {
		if got := assetBaseName(tt.name, tt.namespace); got != tt.want {
			t.Errorf("assetBaseName(%q, %q) = %q, want %q", tt.name, tt.namespace, got, tt.want)
		}
	}
}

func TestAndroidVariants(t *testing.T) {
	all := androidVariants(nil)
	if len(all) != 6 {
		t.Fatalf("androidVariants(nil) returned %d variants, want 6", len(all))
	}
	if all[0].dir != "drawable-ldpi" || all[0].factor != 0.75 {
		t.Errorf("first variant = %+v, want drawable-ldpi at 0.75", all[0])
	}
	if all[5].dir != "drawable-xxxhdpi" || all[5].factor != 4 {
		t.Errorf("last variant = %+v, want drawable-xxxhdpi at 4", all[5])
	}

	skipped := androidVariants([]string{"ldpi", "mdpi"})
	if len(skipped) != 4 {
		t.Fatalf("androidVariants(skip ldpi,mdpi) returned %d variants, want 4", len(skipped))
	}
	if skipped[0].dir != "drawable-hdpi" {
		t.Errorf("first remaining variant = %q, want drawable-hdpi", skipped[0].dir)
	}
}

func TestIOSVariants(t *testing.T) {
	variants := iosVariants()
	if len(variants) != 5 {
		t.Fatalf("iosVariants() returned %d variants, want 5", len(variants))
	}

	wantSuffixes := []string{"", "@2x", "@3x", "~ipad", "@2x~ipad"}
	wantFactors := []float64{1, 2, 3, 2, 3}
	for i, v := range variants {
		if v.suffix != wantSuffixes[i] {
			t.Errorf("variant %d suffix = %q, want %q", i, v.suffix, wantSuffixes[i])
		}
		if v.factor != wantFactors[i] {
			t.Errorf("variant %d factor = %v, want %v", i, v.factor, wantFactors[i])
		}
	}
}

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24"><path d="M4 4h16v16H4z" fill="#FF0000"/></svg>`

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

// fakeFigma describes the behavior of the test render server.
type fakeFigma struct {
	// noURL lists component IDs the images endpoint answers with an empty URL.
	noURL map[string]bool
	// fail, when non-nil, turns matching render requests into a 400 response.
	// 400 is deliberate: the client does not retry it, unlike 429/5xx.
	fail func(ids, scale string) bool
}

// newTestClient spins up a fake Figma API plus render CDN on one server and
// returns a client pointed at it.
func newTestClient(t *testing.T, fake fakeFigma) *figma.Client {
	t.Helper()

	pngData := testPNG(t)

	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/images/", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		ids := q.Get("ids")
		if fake.fail != nil && fake.fail(ids, q.Get("scale")) {
			http.Error(w, `{"err":"render failed"}`, http.StatusBadRequest)
			return
		}

		images := make(map[string]string)
		for _, id := range strings.Split(ids, ",") {
			if fake.noURL[id] {
				images[id] = ""
				continue
			}
			images[id] = srv.URL + "/render/" + q.Get("format")
		}
		json.NewEncoder(w).Encode(figma.ImagesResponse{Images: images})
	})
	mux.HandleFunc("/render/svg", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testSVG))
	})
	mux.HandleFunc("/render/png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngData)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := figma.NewClient("test-token")
	client.BaseURL = srv.URL
	return client
}
