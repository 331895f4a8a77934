package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iudanet/extstorage/pkg/api"
)

var (
	// ErrUnauthorized is returned when the server rejects the bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrCollectionModified is returned when the collection changed on the
	// server after the timestamp the upload was based on.
	ErrCollectionModified = errors.New("collection modified on server")
)

const recordsPath = "/api/v1/storage/records"

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient создает новый API клиент. Пустой token означает запросы без авторизации.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// GetRecords получает записи, изменённые на сервере после since
func (c *Client) GetRecords(ctx context.Context, since api.ServerTimestamp) (*api.GetRecordsResponse, error) {
	query := url.Values{}
	query.Set("newer", since.String())

	var resp api.GetRecordsResponse
	err := c.doRequest(ctx, http.MethodGet, recordsPath+"?"+query.Encode(), nil, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("get records request failed: %w", err)
	}
	return &resp, nil
}

// PostRecords загружает пакет записей на сервер.
// Сервер отклоняет пакет, если коллекция изменилась после unmodifiedSince.
func (c *Client) PostRecords(ctx context.Context, records []api.ServerPayload, unmodifiedSince api.ServerTimestamp) (*api.PostRecordsResponse, error) {
	req := api.PostRecordsRequest{Records: records}

	header := http.Header{}
	header.Set(api.HeaderIfUnmodifiedSince, unmodifiedSince.String())

	var resp api.PostRecordsResponse
	err := c.doRequest(ctx, http.MethodPost, recordsPath, header, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("post records request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, header http.Header, body, result interface{}) error {
	fullURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusPreconditionFailed:
		return ErrCollectionModified
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			msg := errResp.Message
			if msg == "" {
				msg = errResp.Error
			}
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, msg)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
