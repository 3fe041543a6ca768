package batch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Endpoint is the chat-completions path recorded in each batch request
// line. The provider routes the request by this value.
const Endpoint = "/v4/chat/completions"

// Record is one entry of the raw paper metadata dump.
type Record struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Abstract string `json:"abstract"`
}

// GenerateOptions configures batch file generation.
type GenerateOptions struct {
	// InputPath is the metadata JSON file (an array of Record objects).
	InputPath string
	// OutputPrefix names the chunk files "{prefix}_part_N.jsonl".
	OutputPrefix string
	// ChunkSize is the maximum requests per chunk file.
	ChunkSize int
	// Model is the chat model named in each request body.
	Model string
	// SystemPrompt overrides DefaultSystemPrompt when non-empty.
	SystemPrompt string
}

// GenerateStats reports what a Generate run produced.
type GenerateStats struct {
	Processed int
	Skipped   int
	Files     []string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type requestBody struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}

type requestLine struct {
	CustomID string      `json:"custom_id"`
	Method   string      `json:"method"`
	URL      string      `json:"url"`
	Body     requestBody `json:"body"`
}

// Generate converts a metadata dump into chunked JSONL batch request
// files. Records missing an id, title or usable abstract are skipped.
func Generate(opts GenerateOptions) (GenerateStats, error) {
	var stats GenerateStats

	if opts.ChunkSize <= 0 {
		return stats, fmt.Errorf("chunk size must be positive, got %d", opts.ChunkSize)
	}
	systemPrompt := opts.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}

	data, err := os.ReadFile(opts.InputPath)
	if err != nil {
		return stats, fmt.Errorf("reading metadata file: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(SanitizeJSON(data), &records); err != nil {
		return stats, fmt.Errorf("parsing metadata file %s: %w", opts.InputPath, err)
	}

	if dir := filepath.Dir(opts.OutputPrefix); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return stats, fmt.Errorf("creating output directory: %w", err)
		}
	}

	var (
		out       *os.File
		writer    *bufio.Writer
		fileIndex int
		inFile    int
	)
	closeCurrent := func() error {
		if out == nil {
			return nil
		}
		if err := writer.Flush(); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	}

	for _, rec := range records {
		if rec.ID == "" || rec.Title == "" {
			stats.Skipped++
			continue
		}
		prompt, ok := UserPrompt(rec.Title, rec.Author, rec.Abstract)
		if !ok {
			stats.Skipped++
			continue
		}

		if out == nil || inFile >= opts.ChunkSize {
			if err := closeCurrent(); err != nil {
				return stats, fmt.Errorf("closing chunk file: %w", err)
			}
			fileIndex++
			name := fmt.Sprintf("%s_part_%d.jsonl", opts.OutputPrefix, fileIndex)
			out, err = os.Create(name)
			if err != nil {
				return stats, fmt.Errorf("creating chunk file %s: %w", name, err)
			}
			writer = bufio.NewWriter(out)
			stats.Files = append(stats.Files, name)
			inFile = 0
		}

		line := requestLine{
			CustomID: "extract-" + rec.ID,
			Method:   "POST",
			URL:      Endpoint,
			Body: requestBody{
				Model: opts.Model,
				Messages: []chatMessage{
					{Role: "system", Content: systemPrompt},
					{Role: "user", Content: prompt},
				},
				Temperature: 0.1,
			},
		}
		encoded, err := json.Marshal(line)
		if err != nil {
			closeCurrent()
			return stats, fmt.Errorf("encoding request for %s: %w", rec.ID, err)
		}
		if _, err := writer.Write(append(encoded, '\n')); err != nil {
			closeCurrent()
			return stats, fmt.Errorf("writing chunk file: %w", err)
		}

		inFile++
		stats.Processed++
	}

	if err := closeCurrent(); err != nil {
		return stats, fmt.Errorf("closing chunk file: %w", err)
	}
	return stats, nil
}

var trailingComma = regexp.MustCompile(`,\s*\]`)

// SanitizeJSON repairs the known defects of exported metadata dumps:
// backslashes that were never escaped, raw control characters inside
// strings, and trailing commas before a closing bracket.
func SanitizeJSON(data []byte) []byte {
	// Double every backslash not followed by a quote. A backslash byte
	// never occurs inside a UTF-8 multi-byte sequence, so a byte scan
	// is safe.
	fixed := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		b := data[i]
		if b == '\\' && (i+1 >= len(data) || data[i+1] != '"') {
			fixed = append(fixed, '\\', '\\')
			continue
		}
		fixed = append(fixed, b)
	}

	// Strip control characters (including C1) the dump tool leaks into
	// abstracts. Structural whitespace is not needed by the parser.
	cleaned := make([]byte, 0, len(fixed))
	for _, r := range string(fixed) {
		if r <= 0x1F || (r >= 0x7F && r <= 0x9F) {
			continue
		}
		cleaned = append(cleaned, []byte(string(r))...)
	}

	return trailingComma.ReplaceAll(cleaned, []byte("]"))
}
