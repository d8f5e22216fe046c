// Package patientapi talks to the patientor backend that owns patients,
// diagnoses and entries.
package patientapi

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

	"patientor/internal/delivery/dto"

	"github.com/sirupsen/logrus"
)

const (
	patientsPath  = "/api/patients"
	diagnosesPath = "/api/diagnoses"
	maxErrorBody  = 4 << 10
)

// APIError is a non-2xx answer from the backend
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("patientapi: [%d] %s", e.StatusCode, e.Message)
}

// UserMessage is the text shown to the user in the error notification
func (e *APIError) UserMessage() string {
	if e.Message == "" {
		return http.StatusText(e.StatusCode)
	}
	return e.Message
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (c *Client) GetPatient(ctx context.Context, id string) (*dto.PatientDTO, error) {
	var patient dto.PatientDTO
	if err := c.do(ctx, http.MethodGet, patientsPath+"/"+url.PathEscape(id), nil, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (c *Client) GetDiagnoses(ctx context.Context) ([]dto.DiagnosisDTO, error) {
	var diagnoses []dto.DiagnosisDTO
	if err := c.do(ctx, http.MethodGet, diagnosesPath, nil, &diagnoses); err != nil {
		return nil, err
	}
	return diagnoses, nil
}

// CreateEntry posts a new entry and returns the stored entry as sent back by the backend
func (c *Client) CreateEntry(ctx context.Context, patientID string, entry dto.EntryDTO) (json.RawMessage, error) {
	var created json.RawMessage
	path := patientsPath + "/" + url.PathEscape(patientID) + "/entries"
	if err := c.do(ctx, http.MethodPost, path, entry, &created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := readError(resp)
		c.log.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Warnf("Backend rejected request: %s", apiErr.Message)
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// readError turns the response body into an APIError. The backend answers
// either with plain text or with a JSON object carrying an error field.
func readError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(raw))

	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		msg = body.Error
	} else if len(msg) >= 2 && msg[0] == '"' {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			msg = s
		}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
