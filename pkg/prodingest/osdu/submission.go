package osdu

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
)

// Stage identifies one step of the per-file submission state machine.
// Transitions are strictly one-way; a fault at any stage aborts the file.
type Stage int

const (
	StageTokenAcquired Stage = iota + 1
	StageTokenValidated
	StageSignedURLObtained
	StageUploaded
	StageMetadataCreated
	StageParseTriggered
	StageStatusChecked
)

// String returns the stage name used in logs and errors.
func (s Stage) String() string {
	switch s {
	case StageTokenAcquired:
		return "TokenAcquired"
	case StageTokenValidated:
		return "TokenValidated"
	case StageSignedURLObtained:
		return "SignedUrlObtained"
	case StageUploaded:
		return "Uploaded"
	case StageMetadataCreated:
		return "MetadataCreated"
	case StageParseTriggered:
		return "ParseTriggered"
	case StageStatusChecked:
		return "StatusChecked"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// SubmissionError reports which stage of a file's submission failed.
type SubmissionError struct {
	Key   string
	Stage Stage
	Err   error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission of %s failed at stage %s: %v", e.Key, e.Stage, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Result is the terminal snapshot of one successful submission.
type Result struct {
	// CorrelationID ties together every API call made for the file.
	CorrelationID string
	// FileID is the metadata record id assigned by the file service.
	FileID string
	// RunID identifies the triggered workflow run.
	RunID string
	// Status is the point-in-time workflow status observed at the single
	// status check.
	Status string
	// TokenExpiry is the validated token's expiry.
	TokenExpiry time.Time
}

// Submit drives one CSV object through the full ingestion workflow:
// token -> validation -> signed URL -> upload -> metadata -> parse trigger
// -> one status check. No retries; the caller decides what to do with a
// failed file.
func (c *Client) Submit(ctx context.Context, key string, data []byte, legal LegalInfo) (*Result, error) {
	correlationID := uuid.NewString()
	result := &Result{CorrelationID: correlationID}

	token, err := c.AcquireToken(ctx)
	if err != nil {
		return nil, &SubmissionError{Key: key, Stage: StageTokenAcquired, Err: err}
	}

	expiry, err := c.ValidateToken(ctx, token)
	if err != nil {
		return nil, &SubmissionError{Key: key, Stage: StageTokenValidated, Err: err}
	}
	result.TokenExpiry = expiry

	signed, err := c.SignedUploadURL(ctx, token, correlationID)
	if err != nil {
		return nil, &SubmissionError{Key: key, Stage: StageSignedURLObtained, Err: err}
	}

	if err := c.UploadContent(ctx, signed.URL, data); err != nil {
		return nil, &SubmissionError{Key: key, Stage: StageUploaded, Err: err}
	}

	fileID, err := c.CreateMetadata(ctx, token, correlationID, FileMetadata{
		Name:       path.Base(key),
		FileSource: signed.FileSource,
		Legal:      legal,
	})
	if err != nil {
		return nil, &SubmissionError{Key: key, Stage: StageMetadataCreated, Err: err}
	}
	result.FileID = fileID

	run, err := c.TriggerParse(ctx, token, correlationID, fileID)
	if err != nil {
		return nil, &SubmissionError{Key: key, Stage: StageParseTriggered, Err: err}
	}
	result.RunID = run.RunID

	status, err := c.RunStatus(ctx, token, correlationID, run.RunID)
	if err != nil {
		return nil, &SubmissionError{Key: key, Stage: StageStatusChecked, Err: err}
	}
	result.Status = status

	if c.logger != nil {
		c.logger.Info("Submission complete",
			"key", key, "correlationId", correlationID, "runId", run.RunID, "status", status)
	}
	return result, nil
}
