// Package storage adaptadores de almacenamiento de objetos para imágenes de productos.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/pos-api/internal/application/ports"
)

var _ ports.ImageStorage = (*SupabaseStorage)(nil)

// SupabaseStorage implementa ImageStorage sobre la API REST de Supabase Storage.
// Usa net/http de la librería estándar; no hay SDK Go oficial.
type SupabaseStorage struct {
	baseURL    string // https://<project>.supabase.co
	key        string
	bucket     string
	httpClient *http.Client
}

// NewSupabaseStorage construye el adaptador. baseURL es la URL del proyecto, sin /storage/v1.
func NewSupabaseStorage(baseURL, key, bucket string) *SupabaseStorage {
	return &SupabaseStorage{
		baseURL:    strings.TrimRight(baseURL, "/"),
		key:        key,
		bucket:     bucket,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload sube el objeto (upsert) y devuelve su URL pública.
func (s *SupabaseStorage) Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	if s.baseURL == "" || s.key == "" {
		return "", fmt.Errorf("storage: STORAGE_URL/STORAGE_KEY no configurados")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, escapePath(objectName))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("storage: crear request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("apikey", s.key)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "3600")
	req.Header.Set("x-upsert", "true")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage: request: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode >= 400 {
		return "", parseError(body, resp.StatusCode)
	}
	return s.PublicURL(objectName), nil
}

// PublicURL URL pública de un objeto del bucket (el bucket debe ser público).
func (s *SupabaseStorage) PublicURL(objectName string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, escapePath(objectName))
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

func parseError(body []byte, status int) error {
	var e struct {
		StatusCode string `json:"statusCode"`
		Error      string `json:"error"`
		Message    string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err != nil || (e.Message == "" && e.Error == "") {
		return fmt.Errorf("storage: HTTP %d: %s", status, strings.TrimSpace(string(body)))
	}
	msg := e.Message
	if msg == "" {
		msg = e.Error
	}
	return fmt.Errorf("storage: HTTP %d: %s", status, msg)
}
