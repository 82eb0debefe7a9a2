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

// CamaraClient handles communication with the Câmara dos Deputados API.
type CamaraClient struct {
	baseURL string
	client  *http.Client
	limiter *RateLimiter
}

// NewCamaraClient creates a new Câmara API client.
func NewCamaraClient(baseURL string, ratePerSecond float64, timeout time.Duration) *CamaraClient {
	return &CamaraClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: NewRateLimiter(ratePerSecond),
	}
}

// CamaraSearchResult is the /proposicoes search response.
type CamaraSearchResult struct {
	Dados []struct {
		ID int64 `json:"id"`
	} `json:"dados"`
}

// CamaraDetails is the /proposicoes/{id} response.
type CamaraDetails struct {
	Dados struct {
		ID               int64  `json:"id"`
		Ementa           string `json:"ementa"`
		DataApresentacao string `json:"dataApresentacao"`
	} `json:"dados"`
}

// CamaraAuthors is the /proposicoes/{id}/autores response.
type CamaraAuthors struct {
	Dados []struct {
		Nome string `json:"nome"`
	} `json:"dados"`
}

// CamaraTramitacao is one activity event from the tramitações feed.
type CamaraTramitacao struct {
	Sequencia           int    `json:"sequencia"`
	DataHora            string `json:"dataHora"`
	SiglaOrgao          string `json:"siglaOrgao"`
	URIOrgao            string `json:"uriOrgao"`
	URIUltimoRelator    string `json:"uriUltimoRelator"`
	Regime              string `json:"regime"`
	DescricaoTramitacao string `json:"descricaoTramitacao"`
	CodTipoTramitacao   string `json:"codTipoTramitacao"`
	DescricaoSituacao   string `json:"descricaoSituacao"`
	CodSituacao         int64  `json:"codSituacao"`
	Despacho            string `json:"despacho"`
	URL                 string `json:"url"`
	Ambito              string `json:"ambito"`
	Apreciacao          string `json:"apreciacao"`
}

// CamaraTramitacoes is the /proposicoes/{id}/tramitacoes response.
type CamaraTramitacoes struct {
	Dados []CamaraTramitacao `json:"dados"`
}

// Search looks a proposition up by its identifier triple.
func (c *CamaraClient) Search(ctx context.Context, tipo string, numero, ano int) (*CamaraSearchResult, error) {
	params := url.Values{}
	params.Set("siglaTipo", tipo)
	params.Set("numero", strconv.Itoa(numero))
	params.Set("ano", strconv.Itoa(ano))

	reqURL := fmt.Sprintf("%s/proposicoes?%s", c.baseURL, params.Encode())

	body, err := c.fetch(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to search camara proposicao %s %d/%d: %w", tipo, numero, ano, err)
	}

	var result CamaraSearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse camara search response: %w", err)
	}

	return &result, nil
}

// Details retrieves the detailed record for a Câmara proposition id.
func (c *CamaraClient) Details(ctx context.Context, cdID int64) (*CamaraDetails, error) {
	reqURL := fmt.Sprintf("%s/proposicoes/%d", c.baseURL, cdID)

	body, err := c.fetch(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch camara details for %d: %w", cdID, err)
	}

	var details CamaraDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("failed to parse camara details response: %w", err)
	}

	return &details, nil
}

// Authors retrieves the declared authorship for a Câmara proposition id.
func (c *CamaraClient) Authors(ctx context.Context, cdID int64) (*CamaraAuthors, error) {
	reqURL := fmt.Sprintf("%s/proposicoes/%d/autores", c.baseURL, cdID)

	body, err := c.fetch(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch camara authors for %d: %w", cdID, err)
	}

	var authors CamaraAuthors
	if err := json.Unmarshal(body, &authors); err != nil {
		return nil, fmt.Errorf("failed to parse camara authors response: %w", err)
	}

	return &authors, nil
}

// Tramitacoes retrieves the full activity feed for a Câmara proposition id.
func (c *CamaraClient) Tramitacoes(ctx context.Context, cdID int64) (*CamaraTramitacoes, error) {
	reqURL := fmt.Sprintf("%s/proposicoes/%d/tramitacoes", c.baseURL, cdID)

	body, err := c.fetch(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch camara tramitacoes for %d: %w", cdID, err)
	}

	var tramitacoes CamaraTramitacoes
	if err := json.Unmarshal(body, &tramitacoes); err != nil {
		return nil, fmt.Errorf("failed to parse camara tramitacoes response: %w", err)
	}

	return &tramitacoes, nil
}

func (c *CamaraClient) fetch(ctx context.Context, reqURL string) ([]byte, error) {
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
