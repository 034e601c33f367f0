package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"garment-studio/internal/studio/models"
	"garment-studio/internal/studio/studioerr"
)

// ============================================================
// HTTP Uploader
// ============================================================

// HTTPUploader грузит файлы в сервис хранения multipart-запросом.
type HTTPUploader struct {
	baseURL string
	http    *http.Client
}

func NewHTTPUploader(baseURL string) *HTTPUploader {
	return &HTTPUploader{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

func (u *HTTPUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("%w: %v", studioerr.ErrUploadFailed, err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("%w: %v", studioerr.ErrUploadFailed, err)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"/uploads", bytes.NewReader(body.Bytes()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", studioerr.ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", studioerr.ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("%w: status %d", studioerr.ErrUploadFailed, resp.StatusCode)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", studioerr.ErrUploadFailed, err)
	}
	if parsed.URL == "" {
		return "", fmt.Errorf("%w: empty url", studioerr.ErrUploadFailed)
	}
	return parsed.URL, nil
}

// ============================================================
// HTTP Intake
// ============================================================

// HTTPIntake постит заявку в сервис приёма.
type HTTPIntake struct {
	baseURL string
	http    *http.Client
}

func NewHTTPIntake(baseURL string) *HTTPIntake {
	return &HTTPIntake{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type intakeResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

func (i *HTTPIntake) Create(ctx context.Context, payload models.EnquiryPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.baseURL+"/enquiries", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := i.http.Do(req)
	if err != nil {
		return &studioerr.IntakeError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	var parsed intakeResponse
	_ = json.Unmarshal(raw, &parsed)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && parsed.Error == "" {
		return nil
	}

	// отдаём пользователю детали по полям, если сервер их прислал
	return &studioerr.IntakeError{
		Message: parsed.Error,
		Fields:  parsed.Errors,
	}
}
