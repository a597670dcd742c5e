package osdu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/osdupipe/prodingest/pkg/prodingest/models"
)

// newIngestionServer fakes the full ingestion API surface on one httptest
// server. failAt, when non-empty, makes that endpoint return 500.
func newIngestionServer(t *testing.T, failAt string) (*httptest.Server, *capturedCalls) {
	t.Helper()
	calls := &capturedCalls{}

	mux := http.NewServeMux()
	fail := func(path string) bool { return failAt == path }

	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		if fail("token") {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST on token endpoint, got %s", r.Method)
		}
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-1"})
	})
	mux.HandleFunc("/api/token/v1/validate", func(w http.ResponseWriter, r *http.Request) {
		if fail("validate") {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"expires_at": 1893456000})
	})
	mux.HandleFunc("/api/file/v2/files/uploadURL", func(w http.ResponseWriter, r *http.Request) {
		if fail("uploadURL") {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		calls.correlation = r.Header.Get("correlation-id")
		calls.partition = r.Header.Get("data-partition-id")
		json.NewEncoder(w).Encode(map[string]any{
			"Location": map[string]any{
				"SignedURL":  calls.baseURL + "/signed/abc",
				"FileSource": "/staging/abc",
			},
		})
	})
	mux.HandleFunc("/signed/abc", func(w http.ResponseWriter, r *http.Request) {
		if fail("upload") {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		if r.Method != http.MethodPut {
			t.Errorf("Expected PUT to signed URL, got %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		calls.uploaded = body
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/file/v2/files/metadata", func(w http.ResponseWriter, r *http.Request) {
		if fail("metadata") {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		var payload map[string]any
		json.NewDecoder(r.Body).Decode(&payload)
		calls.metadata = payload
		json.NewEncoder(w).Encode(map[string]any{"id": "file-123"})
	})
	mux.HandleFunc("/api/workflow/v1/workflow/csv-parser/workflowRun", func(w http.ResponseWriter, r *http.Request) {
		if fail("trigger") {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"runId": "run-77"})
	})
	mux.HandleFunc("/api/workflow/v1/workflow/csv-parser/workflowRun/run-77", func(w http.ResponseWriter, r *http.Request) {
		if fail("status") {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		calls.statusChecks++
		json.NewEncoder(w).Encode(map[string]any{"status": "running"})
	})

	server := httptest.NewServer(mux)
	calls.baseURL = server.URL
	t.Cleanup(server.Close)
	return server, calls
}

type capturedCalls struct {
	baseURL      string
	correlation  string
	partition    string
	uploaded     []byte
	metadata     map[string]any
	statusChecks int
}

func testClient(server *httptest.Server) *Client {
	return NewClient(models.OSDUConnection{
		BaseURL:       server.URL,
		TokenURL:      server.URL + "/oauth/token",
		ClientID:      "client-1",
		ClientSecret:  "secret",
		Scope:         "ingest",
		WorkflowName:  "csv-parser",
		DataPartition: "opendes",
	}, nil)
}

func TestSubmitFullChain(t *testing.T) {
	server, calls := newIngestionServer(t, "")
	client := testClient(server)
	legal, err := LegalForCountry("PE")
	if err != nil {
		t.Fatalf("LegalForCountry failed: %v", err)
	}

	csvData := []byte("Date,WellName\n2024-03-01,W-101\n")
	result, err := client.Submit(context.Background(), "ingest/pe/202403/DailyProduction.csv", csvData, legal)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if result.FileID != "file-123" {
		t.Errorf("Expected file-123, got %q", result.FileID)
	}
	if result.RunID != "run-77" {
		t.Errorf("Expected run-77, got %q", result.RunID)
	}
	if result.Status != "running" {
		t.Errorf("Expected running, got %q", result.Status)
	}
	if result.CorrelationID == "" || result.CorrelationID != calls.correlation {
		t.Errorf("Expected correlation id %q on API calls, got %q", result.CorrelationID, calls.correlation)
	}
	if calls.partition != "opendes" {
		t.Errorf("Expected data-partition-id opendes, got %q", calls.partition)
	}
	if string(calls.uploaded) != string(csvData) {
		t.Errorf("Expected uploaded bytes to match CSV, got %q", string(calls.uploaded))
	}
	if calls.statusChecks != 1 {
		t.Errorf("Expected exactly one status check, got %d", calls.statusChecks)
	}
}

func TestSubmitCarriesLegalMetadata(t *testing.T) {
	server, calls := newIngestionServer(t, "")
	client := testClient(server)
	legal, _ := LegalForCountry("PE")

	if _, err := client.Submit(context.Background(), "x.csv", []byte("a\n1\n"), legal); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	legalBlock, ok := calls.metadata["legal"].(map[string]any)
	if !ok {
		t.Fatalf("Expected legal block in metadata payload, got %v", calls.metadata)
	}
	tags, _ := legalBlock["legaltags"].([]any)
	if len(tags) != 1 || tags[0] != "pe-public-usa-dataset-1" {
		t.Errorf("Expected legal tags from the PE entry, got %v", tags)
	}
}

func TestSubmitFailsAtStage(t *testing.T) {
	cases := []struct {
		failAt string
		stage  Stage
	}{
		{"token", StageTokenAcquired},
		{"validate", StageTokenValidated},
		{"uploadURL", StageSignedURLObtained},
		{"upload", StageUploaded},
		{"metadata", StageMetadataCreated},
		{"trigger", StageParseTriggered},
		{"status", StageStatusChecked},
	}
	for _, c := range cases {
		t.Run(c.failAt, func(t *testing.T) {
			server, _ := newIngestionServer(t, c.failAt)
			client := testClient(server)
			legal, _ := LegalForCountry("PE")

			_, err := client.Submit(context.Background(), "x.csv", []byte("a\n1\n"), legal)
			if err == nil {
				t.Fatalf("Expected failure at %s, got nil", c.failAt)
			}
			var subErr *SubmissionError
			if !errors.As(err, &subErr) {
				t.Fatalf("Expected SubmissionError, got %T", err)
			}
			if subErr.Stage != c.stage {
				t.Errorf("Expected stage %s, got %s", c.stage, subErr.Stage)
			}
		})
	}
}

func TestLegalForCountryUnknown(t *testing.T) {
	if _, err := LegalForCountry("ZZ"); err == nil {
		t.Error("Expected error for unconfigured country, got nil")
	}
}

func TestStageString(t *testing.T) {
	if fmt.Sprint(StageSignedURLObtained) != "SignedUrlObtained" {
		t.Errorf("Unexpected stage name %q", fmt.Sprint(StageSignedURLObtained))
	}
	if fmt.Sprint(Stage(99)) != "Stage(99)" {
		t.Errorf("Unexpected fallback stage name %q", fmt.Sprint(Stage(99)))
	}
}
