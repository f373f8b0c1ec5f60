package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-form-keeper/internal/config"
	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/utils"
	"github.com/MKhiriev/go-form-keeper/models"
)

type httpFormsClient struct {
	client *utils.HTTPClient
	token  string

	logger *logger.Logger
}

// NewHTTPFormsClient builds a [FormsClient] for cfg.ServerAddress. An
// address without a scheme is treated as http.
func NewHTTPFormsClient(cfg config.ClientConfig, logger *logger.Logger) (FormsClient, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	c := &httpFormsClient{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}
	c.client.OnAfterResponse(c.logResponse)
	c.SetToken(cfg.Token)
	return c, nil
}

func (h *httpFormsClient) logResponse(_ *resty.Client, resp *resty.Response) error {
	if h.logger == nil || !resp.IsError() {
		return nil
	}

	h.logger.Debug().
		Str("method", resp.Request.Method).
		Str("url", resp.Request.URL).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time()).
		Msg("request failed")
	return nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpFormsClient) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

func (h *httpFormsClient) Token() string {
	return h.token
}

func (h *httpFormsClient) CreateForm(ctx context.Context, req models.CreateFormRequest) (models.CreateFormResponse, error) {
	var created models.CreateFormResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&created).
		Post("/forms/create")
	if err != nil {
		return created, fmt.Errorf("create form request: %w", err)
	}

	return created, mapHTTPError(resp)
}

func (h *httpFormsClient) ListForms(ctx context.Context) ([]models.FormSummary, error) {
	var forms []models.FormSummary

	resp, err := h.authedRequest(ctx).SetResult(&forms).Get("/forms/list")
	if err != nil {
		return nil, fmt.Errorf("list forms request: %w", err)
	}

	return forms, mapHTTPError(resp)
}

func (h *httpFormsClient) GetForm(ctx context.Context, formID string) (models.PublicForm, error) {
	var form models.PublicForm

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("formId", formID).
		SetResult(&form).
		Get("/forms/{formId}")
	if err != nil {
		return form, fmt.Errorf("get form request: %w", err)
	}

	return form, mapHTTPError(resp)
}

func (h *httpFormsClient) Submit(ctx context.Context, req models.SubmitRequest) (models.SubmissionReceipt, error) {
	var receipt models.SubmissionReceipt

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&receipt).
		Post("/forms/submit")
	if err != nil {
		return receipt, fmt.Errorf("submit request: %w", err)
	}

	return receipt, mapHTTPError(resp)
}

func (h *httpFormsClient) GetResponses(ctx context.Context, formID string) ([]models.FormResponse, error) {
	var responses []models.FormResponse

	resp, err := h.authedRequest(ctx).
		SetPathParam("formId", formID).
		SetResult(&responses).
		Get("/forms/responses/{formId}")
	if err != nil {
		return nil, fmt.Errorf("get responses request: %w", err)
	}

	return responses, mapHTTPError(resp)
}

func (h *httpFormsClient) DeleteForm(ctx context.Context, formID string) (models.MessageResponse, error) {
	var msg models.MessageResponse

	resp, err := h.authedRequest(ctx).
		SetPathParam("formId", formID).
		SetResult(&msg).
		Delete("/forms/delete/{formId}")
	if err != nil {
		return msg, fmt.Errorf("delete form request: %w", err)
	}

	return msg, mapHTTPError(resp)
}

func (h *httpFormsClient) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpFormsClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
