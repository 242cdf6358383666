package cloudinary

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// ErrNotConfigured is returned when the Cloudinary credentials are missing.
var ErrNotConfigured = errors.New("cloudinary credentials not configured")

// destroyEndpoint is swapped out in tests.
var destroyEndpoint = "https://api.cloudinary.com/v1_1/%s/image/destroy"

var client = &http.Client{Timeout: 15 * time.Second}

// PublicID derives the Cloudinary public id from a delivery URL: the last
// path segment with its file extension stripped.
func PublicID(rawURL string) string {
	parts := strings.Split(rawURL, "/")
	last := parts[len(parts)-1]
	if idx := strings.Index(last, "."); idx >= 0 {
		last = last[:idx]
	}
	return last
}

// Destroy issues a signed deletion call for a stored image.
func Destroy(publicID string) error {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return ErrNotConfigured
	}

	timestamp := time.Now().Unix()
	form := url.Values{
		"public_id": {publicID},
		"api_key":   {apiKey},
		"timestamp": {fmt.Sprintf("%d", timestamp)},
		"signature": {signature(publicID, timestamp, apiSecret)},
	}

	resp, err := client.Post(
		fmt.Sprintf(destroyEndpoint, cloudName),
		"application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("cloudinary destroy failed: %s", string(body))
	}
	return nil
}

// DestroyURLs deletes every image behind the given delivery URLs. Failures
// are logged and swallowed: remote cleanup never fails the calling operation.
func DestroyURLs(urls []string) {
	for _, u := range urls {
		pid := PublicID(u)
		if pid == "" {
			continue
		}
		if err := Destroy(pid); err != nil && !errors.Is(err, ErrNotConfigured) {
			log.Printf("cloudinary cleanup failed for %s: %v", pid, err)
		}
	}
}

func signature(publicID string, timestamp int64, apiSecret string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("public_id=%s&timestamp=%d%s", publicID, timestamp, apiSecret)))
	return hex.EncodeToString(sum[:])
}
