package cashfree

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/tiffinbox/tiffinbox/internal/domain/model"
	"github.com/tiffinbox/tiffinbox/internal/usecase"
)

// APIError carries the gateway's rejection verbatim so callers can surface
// the actual reason.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("cashfree api error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("cashfree api error (%d)", e.StatusCode)
}

// Client exposes the Cashfree payment gateway operations used by this
// service.
type Client interface {
	usecase.PaymentGateway
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*model.GatewayOrder, error)
	GetRefund(ctx context.Context, orderID, refundID string) (*model.GatewayRefund, error)
}

// CustomerDetails identifies the paying customer on order creation.
type CustomerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerPhone string `json:"customer_phone"`
}

// CreateOrderRequest registers a payment order with the gateway.
type CreateOrderRequest struct {
	OrderID   string
	Amount    float64
	Currency  string
	Customer  CustomerDetails
	ReturnURL string
	NotifyURL string
}

// HTTPClient implements Client against the Cashfree PG REST API.
type HTTPClient struct {
	baseURL      *url.URL
	clientID     string
	clientSecret string
	apiVersion   string
	httpClient   *http.Client
	logger       *slog.Logger
}

// NewHTTPClient creates a gateway client with a bounded request timeout.
func NewHTTPClient(baseURL, clientID, clientSecret, apiVersion string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("gateway api keys are not configured")
	}
	if apiVersion == "" {
		apiVersion = "2025-01-01"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:      parsed,
		clientID:     clientID,
		clientSecret: clientSecret,
		apiVersion:   apiVersion,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logger,
	}, nil
}

type orderEntity struct {
	OrderID       string  `json:"order_id"`
	OrderStatus   string  `json:"order_status"`
	OrderAmount   float64 `json:"order_amount"`
	OrderCurrency string  `json:"order_currency"`
}

type refundEntity struct {
	CFRefundID     model.GatewayID `json:"cf_refund_id"`
	RefundID       string          `json:"refund_id"`
	OrderID        string          `json:"order_id"`
	RefundAmount   float64         `json:"refund_amount"`
	RefundCurrency string          `json:"refund_currency"`
	RefundStatus   string          `json:"refund_status"`
	RefundNote     string          `json:"refund_note"`
}

func (e refundEntity) toModel() model.GatewayRefund {
	return model.GatewayRefund{
		CFRefundID: e.CFRefundID.String(),
		RefundID:   e.RefundID,
		OrderID:    e.OrderID,
		Amount:     e.RefundAmount,
		Currency:   e.RefundCurrency,
		Status:     model.RefundStatus(e.RefundStatus),
		Note:       e.RefundNote,
	}
}

// CreateOrder registers a payment order with the gateway.
func (c *HTTPClient) CreateOrder(ctx context.Context, req CreateOrderRequest) (*model.GatewayOrder, error) {
	payload := map[string]any{
		"order_id":         req.OrderID,
		"order_amount":     req.Amount,
		"order_currency":   req.Currency,
		"customer_details": req.Customer,
		"order_meta": map[string]string{
			"return_url": req.ReturnURL,
			"notify_url": req.NotifyURL,
		},
	}
	var out orderEntity
	if err := c.do(ctx, http.MethodPost, "/pg/orders", payload, &out); err != nil {
		return nil, err
	}
	return &model.GatewayOrder{OrderID: out.OrderID, Status: out.OrderStatus, Amount: out.OrderAmount, Currency: out.OrderCurrency}, nil
}

// GetOrder fetches the gateway's payment state, including the captured
// amount.
func (c *HTTPClient) GetOrder(ctx context.Context, orderID string) (*model.GatewayOrder, error) {
	var out orderEntity
	if err := c.do(ctx, http.MethodGet, "/pg/orders/"+orderID, nil, &out); err != nil {
		return nil, err
	}
	return &model.GatewayOrder{OrderID: out.OrderID, Status: out.OrderStatus, Amount: out.OrderAmount, Currency: out.OrderCurrency}, nil
}

// CreateRefund initiates a refund. The refund id in req doubles as the
// idempotency key.
func (c *HTTPClient) CreateRefund(ctx context.Context, orderID string, req usecase.CreateRefundRequest) (*model.GatewayRefund, error) {
	speed := req.Speed
	if speed == "" {
		speed = "STANDARD"
	}
	payload := map[string]any{
		"refund_amount": req.Amount,
		"refund_id":     req.RefundID,
		"refund_note":   req.Note,
		"refund_speed":  speed,
	}
	var out refundEntity
	if err := c.do(ctx, http.MethodPost, "/pg/orders/"+orderID+"/refunds", payload, &out); err != nil {
		return nil, err
	}
	refund := out.toModel()
	return &refund, nil
}

// GetRefund fetches a single refund.
func (c *HTTPClient) GetRefund(ctx context.Context, orderID, refundID string) (*model.GatewayRefund, error) {
	var out refundEntity
	if err := c.do(ctx, http.MethodGet, "/pg/orders/"+orderID+"/refunds/"+refundID, nil, &out); err != nil {
		return nil, err
	}
	refund := out.toModel()
	return &refund, nil
}

// ListRefunds fetches every refund the gateway has recorded for the order.
func (c *HTTPClient) ListRefunds(ctx context.Context, orderID string) ([]model.GatewayRefund, error) {
	var out []refundEntity
	if err := c.do(ctx, http.MethodGet, "/pg/orders/"+orderID+"/refunds", nil, &out); err != nil {
		return nil, err
	}
	refunds := make([]model.GatewayRefund, 0, len(out))
	for _, e := range out {
		refunds = append(refunds, e.toModel())
	}
	return refunds, nil
}

// UpdateRefund asks the gateway to move a refund to a new status.
func (c *HTTPClient) UpdateRefund(ctx context.Context, orderID, refundID, status, remarks string) (*model.GatewayRefund, error) {
	payload := map[string]any{
		"refund_status": status,
		"remarks":       remarks,
	}
	var out refundEntity
	if err := c.do(ctx, http.MethodPut, "/pg/orders/"+orderID+"/refunds/"+refundID, payload, &out); err != nil {
		return nil, err
	}
	refund := out.toModel()
	return &refund, nil
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, payload, out any) error {
	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint)

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("x-api-version", c.apiVersion)
	req.Header.Set("x-client-id", c.clientID)
	req.Header.Set("x-client-secret", c.clientSecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var failure struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		}
		if err := json.Unmarshal(raw, &failure); err == nil {
			apiErr.Message = failure.Message
			apiErr.Code = failure.Code
		}
		c.logger.Error("cashfree request failed",
			slog.String("method", method),
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
