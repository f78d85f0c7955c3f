package businessservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с BusinessService
// BusinessService владеет профилями бизнесов: рабочими часами, списком мастеров
// и каталогом услуг. Scheduling-сервис только читает эти данные.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента BusinessService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetBusiness получает профиль бизнеса (рабочие часы, мастера, менеджеры)
func (c *Client) GetBusiness(ctx context.Context, businessID int64) (*Business, error) {
	url := fmt.Sprintf("%s/internal/businesses/%d", c.baseURL, businessID)

	var business Business
	if err := c.getJSON(ctx, url, &business); err != nil {
		return nil, err
	}

	return &business, nil
}

// GetService получает услугу из каталога бизнеса
func (c *Client) GetService(ctx context.Context, businessID, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/businesses/%d/services/%d", c.baseURL, businessID, serviceID)

	var service Service
	if err := c.getJSON(ctx, url, &service); err != nil {
		return nil, err
	}

	return &service, nil
}

func (c *Client) getJSON(ctx context.Context, url string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return c.notFoundError(url)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// notFoundError выбирает sentinel-ошибку по виду запрошенного ресурса
func (c *Client) notFoundError(url string) error {
	if strings.Contains(url, "/services/") {
		return ErrServiceNotFound
	}
	return ErrBusinessNotFound
}
