// Package batch produces, submits and parses the chat-completion batch
// jobs that extract structured metadata from paper abstracts.
package batch

import (
	"fmt"
	"strings"
)

// DefaultSystemPrompt is the system message for every extraction request.
const DefaultSystemPrompt = "You are an expert assistant specialized in analyzing academic paper abstracts and extracting key information accurately and concisely."

// outputFormatInstructions pins the JSON shape the model must emit. The
// field set matches model.ExtractedInfo plus keywords.
const outputFormatInstructions = `Output the result as a single JSON object in this exact format:
{
    "problemStatement": "(string | null) Concise description of the core research problem addressed (1-2 sentences).",
    "methodology": "(string | null) Brief summary of the key method, technique, or approach proposed/used (1-2 short phrases or sentences).",
    "codeLink": "(string | null) URL to the source code repository (e.g., GitHub), if mentioned explicitly in the abstract. Otherwise, null.",
    "benchmark": "(string | null) Name of the specific benchmark dataset or evaluation task used, if mentioned (e.g., "C-MAPSS dataset", "ImageNet"). Otherwise, null.",
    "dataset": "(string | null) Name of the primary dataset(s) used, if mentioned and different from the benchmark (e.g., "NASA turbofan engine degradation simulation data"). Otherwise, null.",
    "results": "(string | null) Key quantitative results or main findings reported (e.g., "cost rate lower than preventive maintenance", "computationally efficient framework using Gaussian processes"). Otherwise, null.",
    "keywords": ["Keyword 1", "Keyword 2", ...] // List of keywords extracted from the abstract, if available, e.g. ["Image Generation", "Depth Estimation", "Text to Speech", "3D Face Animation"]. Otherwise, an empty list.
}

Use null if information for a key cannot be clearly determined from the provided text. Do not add any explanations before or after the JSON object.`

// UserPrompt formats the extraction request for one paper. It returns
// false when the abstract is empty after trimming, in which case the
// record cannot be processed.
func UserPrompt(title, authors, abstract string) (string, bool) {
	cleanAbstract := strings.TrimSpace(abstract)
	if cleanAbstract == "" {
		return "", false
	}

	authorStr := strings.TrimSpace(authors)
	if authorStr == "" {
		authorStr = "N/A"
	}

	prompt := fmt.Sprintf(`## Task: Analyze the following academic paper metadata and extract the specified information based SOLELY on the provided Title and Abstract.

## Input Metadata:
Title: %s
Authors: %s
Abstract: %s

## Extraction Fields and Output Format:
%s

## Extracted JSON:`, title, authorStr, cleanAbstract, outputFormatInstructions)

	return prompt, true
}
