package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// SenadoClient handles communication with the Senado Federal open data API.
type SenadoClient struct {
	baseURL string
	client  *http.Client
	limiter *RateLimiter
}

// NewSenadoClient creates a new Senado API client.
func NewSenadoClient(baseURL string, ratePerSecond float64, timeout time.Duration) *SenadoClient {
	return &SenadoClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: NewRateLimiter(ratePerSecond),
	}
}

// SenadoProcesso is one process record from /processo. The identificacao
// field is free text; matching against it is the normalizer's problem.
type SenadoProcesso struct {
	ID               int64  `json:"id"`
	Identificacao    string `json:"identificacao"`
	Ementa           string `json:"ementa"`
	DataApresentacao string `json:"dataApresentacao"`
	Objetivo         string `json:"objetivo"`
	Autoria          string `json:"autoria"`
}

// SenadoInforme is one legislative event inside a process detail response.
type SenadoInforme struct {
	ID        int64  `json:"id"`
	Data      string `json:"data"`
	Descricao string `json:"descricao"`

	Colegiado *struct {
		Codigo int64  `json:"codigo"`
		Casa   string `json:"casa"`
		Sigla  string `json:"sigla"`
		Nome   string `json:"nome"`
	} `json:"colegiado"`

	EnteAdministrativo *struct {
		ID    int64  `json:"id"`
		Casa  string `json:"casa"`
		Sigla string `json:"sigla"`
		Nome  string `json:"nome"`
	} `json:"enteAdministrativo"`

	IDSituacaoIniciada    int64  `json:"idSituacaoIniciada"`
	SiglaSituacaoIniciada string `json:"siglaSituacaoIniciada"`

	// Informes carrying associated documents are sub-documents of another
	// event, not independent activities.
	DocumentosAssociados json.RawMessage `json:"documentosAssociados"`
}

// SenadoProcessoDetail is the /processo/{id} response, the Senado activity
// feed nested under autuações.
type SenadoProcessoDetail struct {
	Autuacoes []struct {
		InformesLegislativos []SenadoInforme `json:"informesLegislativos"`
	} `json:"autuacoes"`
}

// SearchProcesso retrieves the process records matching a proposition's
// identifier triple.
func (c *SenadoClient) SearchProcesso(ctx context.Context, tipo string, numero, ano int) ([]SenadoProcesso, error) {
	params := url.Values{}
	params.Set("sigla", tipo)
	params.Set("numero", strconv.Itoa(numero))
	params.Set("ano", strconv.Itoa(ano))

	reqURL := fmt.Sprintf("%s/processo?%s", c.baseURL, params.Encode())

	body, err := c.fetch(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch senado processo %s %d/%d: %w", tipo, numero, ano, err)
	}

	var processos []SenadoProcesso
	if err := json.Unmarshal(body, &processos); err != nil {
		return nil, fmt.Errorf("failed to parse senado processo response: %w", err)
	}

	return processos, nil
}

// FetchProcesso retrieves the full process detail, including the activity
// feed, for a Senado process id.
func (c *SenadoClient) FetchProcesso(ctx context.Context, sfID int64) (*SenadoProcessoDetail, error) {
	reqURL := fmt.Sprintf("%s/processo/%d", c.baseURL, sfID)

	body, err := c.fetch(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch senado processo %d: %w", sfID, err)
	}

	var detail SenadoProcessoDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("failed to parse senado processo detail: %w", err)
	}

	return &detail, nil
}

// fetch performs a rate-limited GET and returns the response body.
func (c *SenadoClient) fetch(ctx context.Context, reqURL string) ([]byte, error) {
	c.limiter.Wait()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}
