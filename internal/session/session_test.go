package session

import (
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/ironsheep/skintone-mcp/internal/imaging"
	"github.com/ironsheep/skintone-mcp/internal/skintone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// skinColor is L* 67.9, a* 14.9, b* 20.2: inside the strict band and well
// within the Medium range.
var skinColor = color.NRGBA{R: 204, G: 155, B: 130, A: 255}

func solid(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestStore(limit int, ttl time.Duration) (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	st := NewStore(limit, ttl)
	st.now = clock.now
	return st, clock
}

func TestStore_AnalyzeCreatesSession(t *testing.T) {
	st, _ := newTestStore(0, 0)
	img := solid(20, 20, skinColor)

	s := st.Analyze("", "upload.png", img, imaging.ImageInfo{Width: 20, Height: 20})
	require.NotEmpty(t, s.ID)
	assert.Equal(t, "upload.png", s.Source)
	assert.Equal(t, skintone.Medium, s.Detect.Category)
	assert.Equal(t, "Medium", s.Selected)
	assert.Equal(t, skintone.ColorRecommendations("Medium"), s.Palette)
	assert.Same(t, img, s.Original)
	assert.Nil(t, s.Adjusted)
	assert.Equal(t, 1, st.Len())
}

func TestStore_AnalyzeUnknownIDStartsNewSession(t *testing.T) {
	st, _ := newTestStore(0, 0)
	s := st.Analyze("no-such-session", "a.png", solid(10, 10, skinColor), imaging.ImageInfo{})
	assert.NotEqual(t, "no-such-session", s.ID)
}

func TestStore_AnalyzeExistingReplacesImage(t *testing.T) {
	st, _ := newTestStore(0, 0)
	first := st.Analyze("", "a.png", solid(20, 20, skinColor), imaging.ImageInfo{})
	_, _, err := st.Adjust(first.ID, "Dark")
	require.NoError(t, err)

	blue := solid(20, 20, color.NRGBA{B: 255, A: 255})
	second := st.Analyze(first.ID, "b.png", blue, imaging.ImageInfo{})
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "b.png", second.Source)
	assert.Nil(t, second.Adjusted)
	assert.Equal(t, skintone.PassNone, second.Detect.Pass)
	assert.Equal(t, 1, st.Len())
}

func TestStore_Adjust(t *testing.T) {
	st, _ := newTestStore(0, 0)
	s := st.Analyze("", "a.png", solid(20, 20, skinColor), imaging.ImageInfo{})

	got, adj, err := st.Adjust(s.ID, "Tan")
	require.NoError(t, err)
	assert.Equal(t, "Tan", got.Selected)
	assert.Equal(t, skintone.ColorRecommendations("Tan"), got.Palette)
	require.NotNil(t, got.Adjusted)
	assert.Equal(t, got.Adjusted, got.Current())
	assert.Equal(t, 58.0, adj.TargetL)
	assert.Equal(t, skintone.Medium, got.Detect.Category, "detection is kept")
}

func TestStore_AdjustUnknownCategory(t *testing.T) {
	st, _ := newTestStore(0, 0)
	s := st.Analyze("", "a.png", solid(20, 20, skinColor), imaging.ImageInfo{})

	got, adj, err := st.Adjust(s.ID, "Not-A-Category")
	require.NoError(t, err)
	assert.ErrorIs(t, adj.Err, skintone.ErrUnrecognizedCategory)
	assert.Equal(t, "Not-A-Category", got.Selected)
	assert.Equal(t, skintone.ColorRecommendations("Medium"), got.Palette)
}

func TestStore_AdjustNotFound(t *testing.T) {
	st, _ := newTestStore(0, 0)
	_, _, err := st.Adjust("missing", "Fair")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Reset(t *testing.T) {
	st, _ := newTestStore(0, 0)
	s := st.Analyze("", "a.png", solid(20, 20, skinColor), imaging.ImageInfo{})
	_, _, err := st.Adjust(s.ID, "Fair")
	require.NoError(t, err)

	got, err := st.Reset(s.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Adjusted)
	assert.Equal(t, "Medium", got.Selected)
	assert.Same(t, got.Original, got.Current())

	_, err = st.Reset("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	st, _ := newTestStore(0, 0)
	s := st.Analyze("", "a.png", solid(20, 20, skinColor), imaging.ImageInfo{})

	got, err := st.Get(s.ID)
	require.NoError(t, err)
	got.Palette[0] = "#000000"
	got.Selected = "Dark"

	again, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "#FF6347", again.Palette[0])
	assert.Equal(t, "Medium", again.Selected)
}

func TestStore_Delete(t *testing.T) {
	st, _ := newTestStore(0, 0)
	s := st.Analyze("", "a.png", solid(10, 10, skinColor), imaging.ImageInfo{})

	assert.True(t, st.Delete(s.ID))
	assert.False(t, st.Delete(s.ID))
	_, err := st.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_TTL(t *testing.T) {
	st, clock := newTestStore(0, time.Hour)
	s := st.Analyze("", "a.png", solid(10, 10, skinColor), imaging.ImageInfo{})

	clock.t = clock.t.Add(59 * time.Minute)
	_, err := st.Get(s.ID)
	require.NoError(t, err)

	clock.t = clock.t.Add(2 * time.Minute)
	_, err = st.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	st.Analyze("", "b.png", solid(10, 10, skinColor), imaging.ImageInfo{})
	assert.Equal(t, 1, st.Len(), "expired sessions are pruned on analyze")
}

func TestStore_LimitEvictsOldest(t *testing.T) {
	st, clock := newTestStore(2, 0)
	img := solid(10, 10, skinColor)

	a := st.Analyze("", "a.png", img, imaging.ImageInfo{})
	clock.t = clock.t.Add(time.Second)
	b := st.Analyze("", "b.png", img, imaging.ImageInfo{})
	clock.t = clock.t.Add(time.Second)
	c := st.Analyze("", "c.png", img, imaging.ImageInfo{})

	assert.Equal(t, 2, st.Len())
	_, err := st.Get(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get(b.ID)
	assert.NoError(t, err)
	_, err = st.Get(c.ID)
	assert.NoError(t, err)
}

func TestStore_ConcurrentSessionsDoNotInterfere(t *testing.T) {
	st := NewStore(0, 0)
	targets := skintone.Categories()

	var wg sync.WaitGroup
	ids := make([]string, len(targets))
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target string) {
			defer wg.Done()
			s := st.Analyze("", target+".png", solid(12, 12, skinColor), imaging.ImageInfo{})
			ids[i] = s.ID
			if _, _, err := st.Adjust(s.ID, target); err != nil {
				t.Errorf("Adjust(%s): %v", target, err)
			}
		}(i, string(target))
	}
	wg.Wait()

	for i, target := range targets {
		s, err := st.Get(ids[i])
		require.NoError(t, err)
		assert.Equal(t, string(target), s.Selected)
		assert.Equal(t, string(target)+".png", s.Source)
	}
}
