// internals/helpers/oss/oss_client.go
package osshelper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

// ErrNotConfigured: env ALI_OSS_* belum lengkap; arsip dimatikan.
var ErrNotConfigured = errors.New("arsip OSS belum dikonfigurasi")

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

/* =======================================================================
   OSS Service
======================================================================= */

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // mis. "notulensi"
	PublicBase string // ALI_OSS_PUBLIC_BASE (opsional, CDN)
}

// NewOSSServiceFromEnv membaca ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET
// (+ SECURITY_TOKEN, PUBLIC_BASE opsional).
func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	sts := getEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, ErrNotConfigured
	}

	var (
		client *oss.Client
		err    error
	)
	if sts != "" {
		client, err = oss.New(endpoint, ak, sk, oss.SecurityToken(sts))
	} else {
		client, err = oss.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	// Verifikasi ringan lokasi bucket
	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		var se oss.ServiceError
		if errors.As(err, &se) && se.StatusCode == 403 && se.Code == "AccessDenied" {
			log.Printf("[OSS] warn: skip location check due to AccessDenied (bucket=%s). Continuing.", bucketName)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", bucketName, loc)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
		PublicBase: getEnv("ALI_OSS_PUBLIC_BASE"),
	}, nil
}

/* =======================================================================
   Upload
======================================================================= */

// ArchivePDF mengunggah PDF notulensi lalu mengembalikan URL publiknya.
// Key: {prefix}/{meetingID}/{yyyymm}/{uuid}_{filename}
func (s *OSSService) ArchivePDF(ctx context.Context, meetingID, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("file kosong")
	}
	key := s.BuildObjectKey(meetingID, filename, time.Now())
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType("application/pdf"),
		oss.ContentDisposition(fmt.Sprintf("inline; filename=%q", filepath.Base(filename))),
	}
	if err := s.Bucket.PutObject(key, bytes.NewReader(data), opts...); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	log.Printf("[OSS] arsip %s (%d bytes)", key, len(data))
	return s.PublicURL(key), nil
}

// BuildObjectKey menyusun key objek; nama file di-slug, uuid mencegah tabrakan.
func (s *OSSService) BuildObjectKey(meetingID, filename string, at time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := slugify(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	parts := []string{}
	if s.Prefix != "" {
		parts = append(parts, s.Prefix)
	}
	parts = append(parts, slugify(meetingID), at.Format("200601"), uuid.NewString()+"_"+base+ext)
	return strings.Join(parts, "/")
}

/* =======================================================================
   Public URL
======================================================================= */

func (s *OSSService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if s.PublicBase != "" {
		return strings.TrimRight(s.PublicBase, "/") + "/" + key
	}
	if s.Endpoint == "" || s.BucketName == "" {
		return ""
	}
	end := s.Endpoint
	end = strings.TrimPrefix(end, "https://")
	end = strings.TrimPrefix(end, "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, key)
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	r := strings.NewReplacer(" ", "-", "_", "-", "—", "-", "–", "-")
	s = r.Replace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return "file"
	}
	return s
}
