package batch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/alcademic/web/internal/model"
)

// ExtractedRecord is the parsed outcome for one paper: the ExtractedInfo
// the detail view renders plus the keywords that enrich its list entry.
type ExtractedRecord struct {
	ExtractedInfo model.ExtractedInfo `json:"extractedInfo"`
	Keywords      []string            `json:"keywords,omitempty"`
}

// extractionPayload mirrors the JSON object the model is instructed to
// emit. Pointers distinguish null from empty.
type extractionPayload struct {
	ProblemStatement *string  `json:"problemStatement"`
	Methodology      *string  `json:"methodology"`
	CodeLink         *string  `json:"codeLink"`
	Benchmark        *string  `json:"benchmark"`
	Dataset          *string  `json:"dataset"`
	Results          *string  `json:"results"`
	Keywords         []string `json:"keywords"`
}

type resultLine struct {
	CustomID string `json:"custom_id"`
	Response struct {
		StatusCode int `json:"status_code"`
		Body       struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		} `json:"body"`
	} `json:"response"`
	Error json.RawMessage `json:"error"`
}

// ParseResults reads a batch output JSONL stream and returns the
// extraction results keyed by paper id. Lines that failed upstream or
// whose content is not parseable JSON are logged and skipped; these
// batches run over abstracts only, so every result is tagged SourceMeta.
func ParseResults(r io.Reader) (map[string]ExtractedRecord, error) {
	results := make(map[string]ExtractedRecord)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var line resultLine
		if err := json.Unmarshal([]byte(raw), &line); err != nil {
			log.Printf("line %d: skipping undecodable result line: %v", lineNo, err)
			continue
		}

		id, ok := strings.CutPrefix(line.CustomID, "extract-")
		if !ok || id == "" {
			log.Printf("line %d: skipping result with unexpected custom_id %q", lineNo, line.CustomID)
			continue
		}
		if len(line.Error) > 0 && string(line.Error) != "null" {
			log.Printf("line %d: upstream error for %s: %s", lineNo, id, line.Error)
			continue
		}
		if len(line.Response.Body.Choices) == 0 {
			log.Printf("line %d: no completion choices for %s", lineNo, id)
			continue
		}

		payload, err := ParseJSON[extractionPayload](line.Response.Body.Choices[0].Message.Content)
		if err != nil {
			log.Printf("line %d: unparseable extraction for %s: %v", lineNo, id, err)
			continue
		}

		results[id] = ExtractedRecord{
			ExtractedInfo: model.ExtractedInfo{
				ProblemStatement: deref(payload.ProblemStatement),
				Methodology:      deref(payload.Methodology),
				CodeLink:         deref(payload.CodeLink),
				Benchmark:        deref(payload.Benchmark),
				Dataset:          deref(payload.Dataset),
				Results:          deref(payload.Results),
				Source:           model.SourceMeta,
			},
			Keywords: payload.Keywords,
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	return results, nil
}

// ParseResultsFile is ParseResults over a file path.
func ParseResultsFile(path string) (map[string]ExtractedRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening results file: %w", err)
	}
	defer f.Close()
	return ParseResults(f)
}

// ParseJSON cleans and unmarshals a JSON object embedded in an LLM
// response, tolerating surrounding markdown fences or prose.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')
	if start == -1 || end == -1 || start > end {
		return zero, fmt.Errorf("no JSON object found in response")
	}

	var result T
	if err := json.Unmarshal([]byte(response[start:end+1]), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return result, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
