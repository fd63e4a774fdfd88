package signature

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func canvasPNG(t *testing.T, w, h int, bg color.Color, stroke *image.Rectangle) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, bg)
		}
	}
	if stroke != nil {
		for y := stroke.Min.Y; y < stroke.Max.Y; y++ {
			for x := stroke.Min.X; x < stroke.Max.X; x++ {
				img.Set(x, y, color.Black)
			}
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecode_DataURLAndRaw(t *testing.T) {
	raw := canvasPNG(t, 40, 20, color.White, &image.Rectangle{Min: image.Pt(5, 5), Max: image.Pt(10, 10)})

	img, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())

	img, err = Decode("data:image/png;base64," + raw)
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dy())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    error
	}{
		{"empty", "   ", ErrEmpty},
		{"not base64", "%%%%", ErrInvalid},
		{"not an image", base64.StdEncoding.EncodeToString([]byte("hello world")), ErrInvalid},
		{"unsupported mime", "data:text/plain;base64,aGVsbG8=", ErrInvalid},
		{"data url without base64", "data:image/png,abc", ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.payload)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestInkBounds(t *testing.T) {
	stroke := image.Rect(10, 4, 30, 9)
	img, err := Decode(canvasPNG(t, 50, 20, color.White, &stroke))
	require.NoError(t, err)
	assert.Equal(t, stroke, InkBounds(img))

	blank, err := Decode(canvasPNG(t, 50, 20, color.Transparent, nil))
	require.NoError(t, err)
	assert.True(t, InkBounds(blank).Empty())
}

func TestNormalize(t *testing.T) {
	stroke := image.Rect(100, 50, 140, 60)
	out, err := Normalize("data:image/png;base64," + canvasPNG(t, 400, 150, color.Transparent, &stroke))
	require.NoError(t, err)

	img, err := Decode(out)
	require.NoError(t, err)
	// crop = goresan + padding di setiap sisi
	assert.Equal(t, 40+2*padding, img.Bounds().Dx())
	assert.Equal(t, 10+2*padding, img.Bounds().Dy())

	r, g, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff, 0xffff}, []uint32{r, g, b, a})
}

func TestNormalize_BlankCanvasRejected(t *testing.T) {
	_, err := Normalize(canvasPNG(t, 300, 100, color.White, nil))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestNormalize_LargeSignatureIsShrunk(t *testing.T) {
	stroke := image.Rect(0, 0, 1200, 300)
	out, err := Normalize(canvasPNG(t, 1200, 300, color.White, &stroke))
	require.NoError(t, err)

	img, err := Decode(out)
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), maxStoredW)
	assert.LessOrEqual(t, img.Bounds().Dy(), maxStoredH)
}

func TestResizeForCell(t *testing.T) {
	stroke := image.Rect(0, 0, 300, 50)
	b, err := ResizeForCell(canvasPNG(t, 600, 200, color.White, &stroke), 150, 50)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 150, 50), img.Bounds())
}

func TestPNG_PassThrough(t *testing.T) {
	raw := canvasPNG(t, 10, 10, color.White, nil)
	b, err := PNG(raw)
	require.NoError(t, err)

	orig, _ := base64.StdEncoding.DecodeString(raw)
	assert.Equal(t, orig, b)
}

func TestRenderable(t *testing.T) {
	assert.False(t, Renderable(""))
	assert.False(t, Renderable(string(make([]byte, 200))))
	assert.True(t, Renderable(strings.Repeat("A", 201)))
}
