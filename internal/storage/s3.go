package storage

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// S3Store uploads package images to an S3 bucket using AWS Signature V4
// directly over HTTP.
type S3Store struct {
	bucket          string
	region          string
	accessKeyID     string
	secretAccessKey string

	client *http.Client
}

// NewS3Store creates an S3Store.
func NewS3Store(region, bucket, accessKeyID, secretAccessKey string) (*S3Store, error) {
	if region == "" || bucket == "" || accessKeyID == "" || secretAccessKey == "" {
		return nil, fmt.Errorf("incomplete S3 configuration")
	}
	return &S3Store{
		bucket:          bucket,
		region:          region,
		accessKeyID:     accessKeyID,
		secretAccessKey: secretAccessKey,
		client:          &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Save implements ImageStore.
func (s *S3Store) Save(ctx context.Context, origName string, data []byte, contentType string) (string, error) {
	ref := objectName(origName)
	if err := s.do(ctx, http.MethodPut, ref, data, contentType); err != nil {
		return "", err
	}
	log.Info().Str("key", ref).Msg("Uploaded image to S3")
	return ref, nil
}

// Remove implements ImageStore.
func (s *S3Store) Remove(ctx context.Context, ref string) error {
	if !IsUploaded(ref) {
		return nil
	}
	return s.do(ctx, http.MethodDelete, ref, nil, "")
}

// ObjectURL returns the public URL for a stored reference.
func (s *S3Store) ObjectURL(ref string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, ref)
}

func (s *S3Store) do(ctx context.Context, method, key string, data []byte, contentType string) error {
	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	now := time.Now().UTC()
	amzDate := now.Format("20060102T150405Z")
	dateStamp := now.Format("20060102")
	payloadHash := sha256Hex(data)

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Host", fmt.Sprintf("%s.s3.%s.amazonaws.com", s.bucket, s.region))
	req.Header.Set("X-Amz-Date", amzDate)
	req.Header.Set("X-Amz-Content-Sha256", payloadHash)

	req.Header.Set("Authorization", s.signRequest(req, payloadHash, amzDate, dateStamp))

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("S3 request failed")
		return fmt.Errorf("s3 request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		log.Error().Str("key", key).Int("status", resp.StatusCode).Str("response", string(body)).
			Msg("S3 request rejected")
		return fmt.Errorf("s3 %s %s: status %d", method, key, resp.StatusCode)
	}
	return nil
}

// signRequest creates the AWS Signature V4 authorization header.
func (s *S3Store) signRequest(req *http.Request, payloadHash, amzDate, dateStamp string) string {
	const service = "s3"

	canonicalURI := req.URL.Path
	if canonicalURI == "" {
		canonicalURI = "/"
	}

	signedHeaders := []string{"host", "x-amz-content-sha256", "x-amz-date"}
	if req.Header.Get("Content-Type") != "" {
		signedHeaders = append(signedHeaders, "content-type")
	}
	sort.Strings(signedHeaders)

	var canonicalHeaders strings.Builder
	for _, h := range signedHeaders {
		canonicalHeaders.WriteString(h)
		canonicalHeaders.WriteString(":")
		canonicalHeaders.WriteString(strings.TrimSpace(req.Header.Get(h)))
		canonicalHeaders.WriteString("\n")
	}
	signedHeadersStr := strings.Join(signedHeaders, ";")

	canonicalRequest := fmt.Sprintf("%s\n%s\n%s\n%s\n%s\n%s",
		req.Method, canonicalURI, "", canonicalHeaders.String(), signedHeadersStr, payloadHash)

	const algorithm = "AWS4-HMAC-SHA256"
	credentialScope := fmt.Sprintf("%s/%s/%s/aws4_request", dateStamp, s.region, service)
	stringToSign := fmt.Sprintf("%s\n%s\n%s\n%s",
		algorithm, amzDate, credentialScope, sha256Hex([]byte(canonicalRequest)))

	kDate := hmacSHA256([]byte("AWS4"+s.secretAccessKey), []byte(dateStamp))
	kRegion := hmacSHA256(kDate, []byte(s.region))
	kService := hmacSHA256(kRegion, []byte(service))
	kSigning := hmacSHA256(kService, []byte("aws4_request"))

	signature := hex.EncodeToString(hmacSHA256(kSigning, []byte(stringToSign)))

	return fmt.Sprintf("%s Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		algorithm, s.accessKeyID, credentialScope, signedHeadersStr, signature)
}

func sha256Hex(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func hmacSHA256(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}
