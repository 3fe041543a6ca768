package batch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sort"

	"github.com/sashabaranov/go-openai"
)

// Submitter uploads generated chunk files and creates one batch job per
// chunk against an OpenAI-compatible batch API.
type Submitter struct {
	client           *openai.Client
	completionWindow string
}

// NewSubmitter builds a Submitter. baseURL may point at any
// OpenAI-compatible provider; empty keeps the client default.
func NewSubmitter(apiKey, baseURL, completionWindow string) *Submitter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if completionWindow == "" {
		completionWindow = "24h"
	}
	return &Submitter{
		client:           openai.NewClientWithConfig(cfg),
		completionWindow: completionWindow,
	}
}

// SubmittedBatch records one created batch job.
type SubmittedBatch struct {
	File    string
	FileID  string
	BatchID string
}

// SubmitAll uploads every "{prefix}_part_N.jsonl" file and creates a
// batch for each. It stops on the first failure so a partial run can be
// resumed by prefix.
func (s *Submitter) SubmitAll(ctx context.Context, prefix string) ([]SubmittedBatch, error) {
	parts, err := filepath.Glob(prefix + "_part_*.jsonl")
	if err != nil {
		return nil, fmt.Errorf("globbing chunk files: %w", err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("no chunk files found for prefix %q", prefix)
	}
	sort.Strings(parts)

	var submitted []SubmittedBatch
	for i, part := range parts {
		log.Printf("(%d/%d) uploading %s", i+1, len(parts), part)
		file, err := s.client.CreateFile(ctx, openai.FileRequest{
			FileName: filepath.Base(part),
			FilePath: part,
			Purpose:  "batch",
		})
		if err != nil {
			return submitted, fmt.Errorf("uploading %s: %w", part, err)
		}
		log.Printf("(%d/%d) uploaded %s as file %s", i+1, len(parts), part, file.ID)

		batch, err := s.client.CreateBatch(ctx, openai.CreateBatchRequest{
			InputFileID:      file.ID,
			Endpoint:         openai.BatchEndpoint(Endpoint),
			CompletionWindow: s.completionWindow,
			Metadata: map[string]any{
				"description": fmt.Sprintf("Paper metadata extraction part %d/%d", i+1, len(parts)),
			},
		})
		if err != nil {
			return submitted, fmt.Errorf("creating batch for %s: %w", part, err)
		}
		log.Printf("(%d/%d) created batch %s", i+1, len(parts), batch.ID)

		submitted = append(submitted, SubmittedBatch{
			File:    part,
			FileID:  file.ID,
			BatchID: batch.ID,
		})
	}
	return submitted, nil
}
