package models

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// OSDUConnection carries the connection settings for the external ingestion
// API. Credentials and URLs arrive embedded in the destination descriptor
// payload rather than via environment variables.
type OSDUConnection struct {
	// BaseURL is the root of the OSDU API (file and workflow services).
	BaseURL string `json:"base_url"`
	// TokenURL issues OAuth client-credential tokens.
	TokenURL string `json:"token_url"`
	// ClientID and ClientSecret authenticate the pipeline.
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	// Scope is the OAuth scope requested with the token.
	Scope string `json:"scope"`
	// WorkflowName is the parser workflow triggered per CSV.
	WorkflowName string `json:"workflow_name"`
	// DataPartition is sent on every API call.
	DataPartition string `json:"data_partition"`
}

// Location describes one side of the transfer: an object storage endpoint
// plus the pipeline parameters carried in the descriptor payload.
type Location struct {
	// Endpoint is the S3-compatible storage endpoint URL or host.
	Endpoint string `json:"endpoint"`
	// AccessKeyID and SecretAccessKey authenticate against the endpoint.
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	// UseSSL enables TLS when the endpoint scheme does not decide it.
	UseSSL bool `json:"use_ssl"`
	// Bucket is the container holding the objects.
	Bucket string `json:"bucket"`
	// Root is the key prefix under which objects live.
	Root string `json:"root"`
	// Country is the ISO country code used as a destination path segment
	// and as the legal-metadata lookup key.
	Country string `json:"country"`
	// OSDU is set on destination descriptors that feed the ingestion API.
	OSDU *OSDUConnection `json:"osdu,omitempty"`
}

// Validate checks the fields every location needs.
func (l Location) Validate() error {
	if strings.TrimSpace(l.Bucket) == "" {
		return fmt.Errorf("location: bucket is required")
	}
	return nil
}

// LoadLocation reads a location descriptor from a JSON file.
func LoadLocation(path string) (Location, error) {
	var loc Location
	data, err := os.ReadFile(path)
	if err != nil {
		return loc, fmt.Errorf("read descriptor %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &loc); err != nil {
		return loc, fmt.Errorf("parse descriptor %s: %w", path, err)
	}
	return loc, nil
}
