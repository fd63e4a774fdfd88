package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

const (
	qrBoxSize = 10 // px per modul; quiet zone bawaan library = 4 modul
)

// AttendanceLink = {base}?page=attendance&meeting_id={id}
func AttendanceLink(baseURL, meetingID string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	// url.Values.Encode mengurutkan key, jadi disusun manual
	return base + "?page=attendance&meeting_id=" + url.QueryEscape(strings.TrimSpace(meetingID))
}

// QRCodePNG meng-encode link absensi jadi PNG.
func QRCodePNG(link string) ([]byte, error) {
	if strings.TrimSpace(link) == "" {
		return nil, fmt.Errorf("link kosong")
	}
	q, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr: %w", err)
	}
	png, err := q.PNG(-qrBoxSize)
	if err != nil {
		return nil, fmt.Errorf("qr png: %w", err)
	}
	return png, nil
}
