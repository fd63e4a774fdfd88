// file: internals/helpers/signature/signature.go
package signature

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"strings"

	chaiwebp "github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	xwebp "golang.org/x/image/webp"
)

var (
	ErrEmpty   = errors.New("tanda tangan belum dibuat")
	ErrInvalid = errors.New("format tanda tangan tidak valid")
)

const (
	// payload lebih pendek dari ini dianggap bukan gambar (kanvas kosong / placeholder)
	MinRenderableLength = 200

	// batas ukuran gambar yang disimpan (1 sel sheet max 50.000 karakter)
	maxStoredW = 600
	maxStoredH = 200
	padding    = 8
)

var allowedMimes = []string{"image/png", "image/jpeg", "image/webp"}

// Decode menerima data URL ("data:image/png;base64,...") atau base64 mentah.
func Decode(payload string) (image.Image, error) {
	raw, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err == nil {
		return img, nil
	}
	if decoded, webpErr := xwebp.Decode(bytes.NewReader(raw)); webpErr == nil {
		return decoded, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
}

func decodePayload(payload string) ([]byte, error) {
	s := strings.TrimSpace(payload)
	if s == "" {
		return nil, ErrEmpty
	}
	if strings.HasPrefix(s, "data:") {
		comma := strings.Index(s, ",")
		if comma <= 5 {
			return nil, fmt.Errorf("%w: data url rusak", ErrInvalid)
		}
		meta := s[5:comma]
		if !strings.HasSuffix(strings.ToLower(meta), ";base64") {
			return nil, fmt.Errorf("%w: data url harus base64", ErrInvalid)
		}
		mime := strings.TrimSpace(meta[:len(meta)-len(";base64")])
		if !mimeAllowed(mime) {
			return nil, fmt.Errorf("%w: tipe %s tidak didukung", ErrInvalid, mime)
		}
		s = s[comma+1:]
	}

	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		// canvas kadang kirim tanpa padding
		if b, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); err != nil {
			return nil, fmt.Errorf("%w: base64 tidak valid", ErrInvalid)
		}
	}
	if len(b) == 0 {
		return nil, ErrEmpty
	}
	return b, nil
}

func mimeAllowed(m string) bool {
	for _, a := range allowedMimes {
		if strings.EqualFold(a, m) {
			return true
		}
	}
	return false
}

// InkBounds = kotak yang berisi goresan. Piksel transparan & hampir putih diabaikan.
// Hasil kosong berarti kanvas belum ditandatangani.
func InkBounds(img image.Image) image.Rectangle {
	bounds := img.Bounds()
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X, bounds.Min.Y
	found := false
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			if r > 0xf000 && g > 0xf000 && b > 0xf000 {
				continue
			}
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}
			found = true
		}
	}
	if !found {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// Normalize: decode → tolak kanvas kosong → crop ke goresan (+padding) di atas
// latar putih → perkecil bila perlu → base64 PNG (tanpa prefix data URL).
func Normalize(payload string) (string, error) {
	img, err := Decode(payload)
	if err != nil {
		return "", err
	}
	ink := InkBounds(img)
	if ink.Empty() {
		return "", ErrEmpty
	}
	crop := ink.Inset(-padding).Intersect(img.Bounds())

	dst := image.NewRGBA(image.Rect(0, 0, crop.Dx(), crop.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, crop.Min, draw.Over)

	var out image.Image = dst
	if dst.Bounds().Dx() > maxStoredW || dst.Bounds().Dy() > maxStoredH {
		out = imaging.Fit(dst, maxStoredW, maxStoredH, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, out); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Renderable: aturan lama dokumen, TTD hanya digambar kalau payload > 200 karakter.
func Renderable(payload string) bool {
	return len(strings.TrimSpace(payload)) > MinRenderableLength
}

// PNG mengembalikan bytes PNG (untuk disematkan di PDF/Excel).
// Kalau payload sudah PNG, bytes asli dipakai apa adanya.
func PNG(payload string) ([]byte, error) {
	raw, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(raw, []byte("\x89PNG")) {
		return raw, nil
	}
	img, err := Decode(payload)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ResizeForCell: skala (keep aspect) agar muat di w x h, lalu PNG.
func ResizeForCell(payload string, w, h int) ([]byte, error) {
	img, err := Decode(payload)
	if err != nil {
		return nil, err
	}
	fitted := imaging.Fit(img, w, h, imaging.Lanczos)
	canvas := imaging.New(w, h, color.White)
	canvas = imaging.PasteCenter(canvas, fitted)

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, canvas); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PreviewWebP: thumbnail ringan untuk panel admin.
func PreviewWebP(payload string, maxW int, quality float32) ([]byte, error) {
	img, err := Decode(payload)
	if err != nil {
		return nil, err
	}
	if maxW > 0 && img.Bounds().Dx() > maxW {
		img = imaging.Resize(img, maxW, 0, imaging.Lanczos)
	}
	if quality <= 0 {
		quality = 80
	}
	buf := new(bytes.Buffer)
	if err := chaiwebp.Encode(buf, img, &chaiwebp.Options{Lossless: false, Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
