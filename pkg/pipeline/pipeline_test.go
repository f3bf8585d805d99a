package pipeline

import (
	"context"
	"image"
	"image/color"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/ellipsegen/pkg/cache"
	"github.com/matzehuels/ellipsegen/pkg/errors"
	"github.com/matzehuels/ellipsegen/pkg/observability"
	"github.com/matzehuels/ellipsegen/pkg/render/sink"
)

// countingRasterizer returns a flat image and counts calls.
type countingRasterizer struct {
	mu    sync.Mutex
	calls int
}

func (c *countingRasterizer) Rasterize(_ context.Context, _ []byte, w, h int) (image.Image, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	img.Set(0, 0, color.Black)
	return img, nil
}

func (c *countingRasterizer) String() string { return "counting" }

func newTestRunner(t *testing.T, c cache.Cache) (*Runner, *countingRasterizer) {
	t.Helper()
	rz := &countingRasterizer{}
	return NewRunner(nil, c, nil, rz, nil), rz
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"jpeg", false},
		{"pdf", false},
		{"json", false},
		{"jpg", true},
		{"SVG", true},
		{"gif", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Count == nil || *opts.Count != DefaultCount {
		t.Errorf("Count = %v, want %d", opts.Count, DefaultCount)
	}
	if opts.JPEGQuality != sink.DefaultJPEGQuality {
		t.Errorf("JPEGQuality = %d, want %d", opts.JPEGQuality, sink.DefaultJPEGQuality)
	}
	if !reflect.DeepEqual(opts.Formats, []string{FormatSVG}) {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Width != 6000 || opts.Height != 4000 {
		t.Errorf("size = %dx%d, want 6000x4000", opts.Width, opts.Height)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsNormalizesFormats(t *testing.T) {
	formats := []string{"PNG", "jpg", "png", " svg "}
	opts := Options{Formats: formats}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if want := []string{"png", "jpeg", "svg"}; !reflect.DeepEqual(opts.Formats, want) {
		t.Errorf("Formats = %v, want %v", opts.Formats, want)
	}
	if formats[0] != "PNG" {
		t.Error("caller's slice was modified")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative count", Options{Count: Count(-1)}, errors.ErrCodeInvalidInput},
		{"jpeg quality too high", Options{JPEGQuality: 101}, errors.ErrCodeInvalidInput},
		{"negative jpeg quality", Options{JPEGQuality: -1}, errors.ErrCodeInvalidInput},
		{"bad background", Options{Background: "purple"}, errors.ErrCodeInvalidColor},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad size", Options{Width: -5}, errors.ErrCodeInvalidSize},
		{"huge size", Options{Width: errors.MaxRasterSide + 1, Height: 10}, errors.ErrCodeInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Formats: []string{"jpg"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	first := opts.Formats
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, opts.Formats) {
		t.Errorf("second call changed formats: %v -> %v", first, opts.Formats)
	}
}

func TestGenerateSeeded(t *testing.T) {
	r, _ := newTestRunner(t, nil)
	ctx := context.Background()

	a, err := r.Generate(ctx, Options{Palette: "ocean", Seed: 99})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := r.Generate(ctx, Options{Palette: "ocean", Seed: 99})

	if a.SVG != b.SVG {
		t.Error("same seed should compose the same document")
	}
	if a.ID == b.ID {
		t.Error("every generation gets a fresh ID")
	}
	if a.Palette != "ocean" || len(a.Ellipses) != DefaultCount {
		t.Errorf("palette=%s ellipses=%d", a.Palette, len(a.Ellipses))
	}
	if a.Seed != 99 {
		t.Errorf("Seed = %d, want 99", a.Seed)
	}
}

func TestGenerateRecordsRandomSeed(t *testing.T) {
	r, _ := newTestRunner(t, nil)
	ctx := context.Background()

	a, err := r.Generate(ctx, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if a.Seed == 0 {
		t.Fatal("random generation should record its seed")
	}
	again, _ := r.Generate(ctx, Options{Seed: a.Seed})
	if again.SVG != a.SVG {
		t.Error("recorded seed should reproduce the artwork")
	}
}

func TestGenerateOptions(t *testing.T) {
	r, _ := newTestRunner(t, nil)
	ctx := context.Background()

	a, err := r.Generate(ctx, Options{Count: Count(3), Background: "#000000"})
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Ellipses) != 3 {
		t.Errorf("ellipses = %d, want 3", len(a.Ellipses))
	}
	if !strings.Contains(a.SVG, `fill="#000000"`) {
		t.Error("background override not applied")
	}

	_, err = r.Generate(ctx, Options{Palette: "nope"})
	if !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Errorf("unknown palette error = %v", err)
	}
}

func TestGenerateExplicitZeroCount(t *testing.T) {
	r, _ := newTestRunner(t, nil)
	a, err := r.Generate(context.Background(), Options{Count: Count(0), Seed: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Ellipses) != 0 {
		t.Errorf("ellipses = %d, want 0", len(a.Ellipses))
	}
	if strings.Contains(a.SVG, "radialGradient") || strings.Count(a.SVG, "<rect ") != 1 {
		t.Errorf("want the background rect alone:\n%s", a.SVG)
	}
}

func TestExecuteDocumentFormats(t *testing.T) {
	r, rz := newTestRunner(t, nil)
	res, err := r.Execute(context.Background(), Options{Seed: 1, Formats: []string{"svg", "json"}})
	if err != nil {
		t.Fatal(err)
	}
	if string(res.Artifacts["svg"]) != res.Artwork.SVG {
		t.Error("svg artifact differs from composed document")
	}
	back, err := sink.ReadJSON(strings.NewReader(string(res.Artifacts["json"])))
	if err != nil {
		t.Fatal(err)
	}
	if back.SVG() != res.Artwork.SVG {
		t.Error("json artifact does not recompose")
	}
	if rz.calls != 0 {
		t.Errorf("document formats should not rasterize, got %d calls", rz.calls)
	}
	if res.Stats.Ellipses != DefaultCount {
		t.Errorf("Stats.Ellipses = %d", res.Stats.Ellipses)
	}
}

func TestRenderRasterizesOnce(t *testing.T) {
	r, rz := newTestRunner(t, nil)
	ctx := context.Background()
	art, _ := r.Generate(ctx, Options{Seed: 3})

	out, info, err := r.RenderWithCacheInfo(ctx, art, Options{Formats: []string{"png", "jpeg", "pdf"}, Width: 30, Height: 20})
	if err != nil {
		t.Fatal(err)
	}
	if rz.calls != 1 {
		t.Errorf("rasterized %d times, want 1", rz.calls)
	}
	for _, f := range []string{"png", "jpeg", "pdf"} {
		if len(out[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if info.RenderHit || len(info.Hits) != 0 {
		t.Errorf("NullCache should never hit: %+v", info)
	}
}

func TestRenderUsesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r, rz := newTestRunner(t, c)
	ctx := context.Background()
	art, _ := r.Generate(ctx, Options{Seed: 4})
	opts := Options{Formats: []string{"png", "svg"}, Width: 30, Height: 20}

	first, info, err := r.RenderWithCacheInfo(ctx, art, opts)
	if err != nil {
		t.Fatal(err)
	}
	if info.RenderHit {
		t.Error("first render should miss")
	}

	second, info, err := r.RenderWithCacheInfo(ctx, art, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !info.RenderHit || !reflect.DeepEqual(info.Hits, []string{"png"}) {
		t.Errorf("second render cache info = %+v", info)
	}
	if rz.calls != 1 {
		t.Errorf("rasterized %d times, want 1", rz.calls)
	}
	if string(first["png"]) != string(second["png"]) {
		t.Error("cached png differs")
	}

	// A different size is a different artifact.
	if _, info, _ = r.RenderWithCacheInfo(ctx, art, Options{Formats: []string{"png"}, Width: 60, Height: 40}); info.RenderHit {
		t.Error("different size should miss")
	}

	opts.Refresh = true
	if _, info, _ = r.RenderWithCacheInfo(ctx, art, opts); info.RenderHit {
		t.Error("Refresh should bypass cache reads")
	}
	if rz.calls != 3 {
		t.Errorf("rasterized %d times, want 3", rz.calls)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	mu        sync.Mutex
	generated []string
	rendered  []string
	hits      int
	misses    int
}

func (h *recordingHooks) OnGenerate(_ context.Context, palette string, _ int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.generated = append(h.generated, palette)
}

func (h *recordingHooks) OnRender(_ context.Context, format string, cached bool, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cached {
		format += "(cached)"
	}
	h.rendered = append(h.rendered, format)
}

func (h *recordingHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *recordingHooks) OnCacheMiss(context.Context, string) { h.misses++ }

func TestRenderJPEGQualityIsPartOfCacheKey(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r, rz := newTestRunner(t, c)
	ctx := context.Background()
	art, _ := r.Generate(ctx, Options{Seed: 6})

	low := Options{Formats: []string{"jpeg"}, Width: 30, Height: 20, JPEGQuality: 10}
	if _, _, err := r.RenderWithCacheInfo(ctx, art, low); err != nil {
		t.Fatal(err)
	}
	high := low
	high.JPEGQuality = 95
	_, info, err := r.RenderWithCacheInfo(ctx, art, high)
	if err != nil {
		t.Fatal(err)
	}
	if info.RenderHit {
		t.Error("a different quality must not be served from the cache")
	}
	if rz.calls != 2 {
		t.Errorf("rasterized %d times, want 2", rz.calls)
	}

	if _, info, _ = r.RenderWithCacheInfo(ctx, art, low); !info.RenderHit {
		t.Error("same quality should hit the cache")
	}
}

func TestRunnerFiresHooks(t *testing.T) {
	observability.Reset()
	t.Cleanup(observability.Reset)
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)

	c, _ := cache.NewFileCache(t.TempDir())
	r, _ := newTestRunner(t, c)
	ctx := context.Background()
	opts := Options{Palette: "mono", Seed: 5, Formats: []string{"svg", "png"}, Width: 10, Height: 10}

	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}
	art, _ := r.Generate(ctx, Options{Palette: "mono", Seed: 5})
	if _, err := r.Render(ctx, art, opts); err != nil {
		t.Fatal(err)
	}
	_, _ = r.Generate(ctx, Options{Palette: "missing"})

	if want := []string{"mono", "mono", "missing"}; !reflect.DeepEqual(hooks.generated, want) {
		t.Errorf("generated = %v, want %v", hooks.generated, want)
	}
	if want := []string{"svg", "png", "svg", "png(cached)"}; !reflect.DeepEqual(hooks.rendered, want) {
		t.Errorf("rendered = %v, want %v", hooks.rendered, want)
	}
	if hooks.hits != 1 || hooks.misses != 1 {
		t.Errorf("hits=%d misses=%d, want 1 and 1", hooks.hits, hooks.misses)
	}
}

func TestCacheInfoString(t *testing.T) {
	if got := (CacheInfo{}).String(); got != "miss" {
		t.Errorf("String() = %q", got)
	}
	if got := (CacheInfo{Hits: []string{"png", "pdf"}}).String(); got != "hit(png,pdf)" {
		t.Errorf("String() = %q", got)
	}
}
