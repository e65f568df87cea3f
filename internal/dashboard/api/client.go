package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client는 노드 API 클라이언트
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(host string, port int) *Client {
	return NewClientURL(fmt.Sprintf("http://%s:%d", host, port))
}

// NewClientURL은 base URL로 직접 생성 (테스트용)
func NewClientURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// RestResp는 API 응답 래퍼
type RestResp struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// NodeStatus는 /api/v1/status 응답
type NodeStatus struct {
	Network     string `json:"network"`
	Denom       string `json:"denom"`
	Hasher      string `json:"hasher"`
	MempoolSize int    `json:"mempoolSize"`
	WSClients   int    `json:"wsClients"`
}

type Token struct {
	Amount uint64 `json:"amount"`
	Denom  string `json:"denom"`
}

// PendingTx는 멤풀 항목 (필요한 필드만)
type PendingTx struct {
	Transaction struct {
		Hash   string `json:"hash"`
		Sender string `json:"sender"`
		Data   struct {
			App       string `json:"app"`
			Operation string `json:"operation"`
		} `json:"data"`
		Amount    Token  `json:"amount"`
		Gas       uint64 `json:"gas"`
		Nonce     uint64 `json:"nonce"`
		Timestamp int64  `json:"timestamp"`
	} `json:"transaction"`
	State string `json:"state"`
}

// MempoolResp는 /api/v1/mempool 응답
type MempoolResp struct {
	Count        int         `json:"count"`
	Transactions []PendingTx `json:"transactions"`
}

func (c *Client) GetStatus() (*NodeStatus, error) {
	resp, err := c.get("/api/v1/status")
	if err != nil {
		return nil, err
	}

	var status NodeStatus
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("parse status: %w", err)
	}
	return &status, nil
}

func (c *Client) GetMempool() (*MempoolResp, error) {
	resp, err := c.get("/api/v1/mempool")
	if err != nil {
		return nil, err
	}

	var pool MempoolResp
	if err := json.Unmarshal(resp.Data, &pool); err != nil {
		return nil, fmt.Errorf("parse mempool: %w", err)
	}
	return &pool, nil
}

func (c *Client) IsAlive() bool {
	_, err := c.GetStatus()
	return err == nil
}

func (c *Client) get(path string) (*RestResp, error) {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var result RestResp
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if !result.Success {
		return nil, fmt.Errorf("api error: %s", result.Error)
	}

	return &result, nil
}
