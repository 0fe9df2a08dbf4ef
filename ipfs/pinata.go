package ipfs

import (
	"achievo/config"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Pinner uploads a JSON document to content-addressed storage and returns
// its CID. Content is immutable once pinned; there is no delete.
type Pinner interface {
	PinJSON(doc interface{}) (string, error)
}

// Store is the global content store client, built once in main.
var Store Pinner

// Connect builds the global Pinata client from configuration.
func Connect() {
	Store = NewPinata(config.AppConfig.PinataBaseURL, config.AppConfig.PinataAPIKey, config.AppConfig.PinataSecretKey)
}

// GatewayURL returns the public gateway URL for a pinned CID.
func GatewayURL(cid string) string {
	return strings.TrimRight(config.AppConfig.PinataGateway, "/") + "/" + cid
}

// Pinata is the Pinata pinning API implementation of Pinner.
type Pinata struct {
	http      *resty.Client
	baseURL   string
	apiKey    string
	secretKey string
}

// NewPinata creates a Pinata client.
func NewPinata(baseURL, apiKey, secretKey string) *Pinata {
	return &Pinata{
		http:      resty.New(),
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		secretKey: secretKey,
	}
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
	Error    string `json:"error"`
}

// PinJSON pins a JSON document and returns its CID.
func (p *Pinata) PinJSON(doc interface{}) (string, error) {
	resp, err := p.http.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("pinata_api_key", p.apiKey).
		SetHeader("pinata_secret_api_key", p.secretKey).
		SetBody(doc).
		Post(p.baseURL + "/pinning/pinJSONToIPFS")
	if err != nil {
		return "", fmt.Errorf("pin failed: %v", err)
	}

	var pinResp pinResponse
	if err := json.Unmarshal(resp.Body(), &pinResp); err != nil {
		return "", fmt.Errorf("pin failed: invalid response: %v", err)
	}
	if resp.StatusCode() != 200 {
		if pinResp.Error != "" {
			return "", fmt.Errorf("pin failed: %s", pinResp.Error)
		}
		return "", fmt.Errorf("pin failed: pinata returned %d", resp.StatusCode())
	}
	if pinResp.IpfsHash == "" {
		return "", fmt.Errorf("pin failed: no CID in response")
	}

	return pinResp.IpfsHash, nil
}
