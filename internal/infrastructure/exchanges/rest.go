package exchanges

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// RESTClient - общая обертка над http.Client для публичных эндпоинтов бирж.
// Сам http.Client создается один раз в main и шарится между всеми адаптерами,
// чтобы пул соединений был общим на процесс.
type RESTClient struct {
	httpClient *http.Client
}

func NewRESTClient(httpClient *http.Client) *RESTClient {
	return &RESTClient{httpClient: httpClient}
}

// GetJSON выполняет GET и декодирует тело в result.
func (c *RESTClient) GetJSON(ctx context.Context, url string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	return c.do(req, result)
}

// PostJSON выполняет POST с JSON-телом и декодирует ответ в result.
func (c *RESTClient) PostJSON(ctx context.Context, url string, body interface{}, result interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

func (c *RESTClient) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Тело не нужно, но статус в ошибке обязателен для логов
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Host)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", req.URL.Host, err)
	}

	return nil
}
