package pdf

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Tool is one document operation exposed to a language model. Call
// takes the model-produced JSON arguments and returns a plain-text
// observation; argument decode failures and operation failures both
// come back as "Error: ..." text rather than a Go error, so the model
// can read and recover from them.
type Tool struct {
	Name        string
	Description string
	Call        func(ctx context.Context, args json.RawMessage) string
}

// Tools returns the full registry backed by the given agent.
func Tools(agent *Agent) []Tool {
	return []Tool{
		{
			Name: "merge_pdfs",
			Description: "Merge multiple PDF files into a single PDF. " +
				"Input is a list of PDF file paths. " +
				"Returns the path to the merged PDF file.",
			Call: func(_ context.Context, args json.RawMessage) string {
				var in struct {
					InputFiles []string `json:"input_files"`
					OutputFile string   `json:"output_file"`
				}
				if err := json.Unmarshal(args, &in); err != nil {
					return badArgs(err)
				}
				return renderSingleOutput(agent.Merge(in.InputFiles, in.OutputFile))
			},
		},
		{
			Name: "split_pdf",
			Description: "Split a PDF into multiple files of a given number of pages each " +
				"(default one page per file). " +
				"Returns the paths to the split PDF files.",
			Call: func(_ context.Context, args json.RawMessage) string {
				var in struct {
					InputFile    string `json:"input_file"`
					PagesPerFile int    `json:"pages_per_file"`
				}
				if err := json.Unmarshal(args, &in); err != nil {
					return badArgs(err)
				}
				res := agent.Split(in.InputFile, in.PagesPerFile)
				if !res.OK {
					return "Error: " + res.Message
				}
				var b strings.Builder
				b.WriteString(res.Message)
				b.WriteString("\nOutput files:")
				for _, f := range res.OutputFiles {
					b.WriteString("\n  - ")
					b.WriteString(f)
				}
				return b.String()
			},
		},
		{
			Name: "extract_text_from_pdf",
			Description: "Extract text content from a PDF file. " +
				"Can extract from all pages or specific pages (1-indexed). " +
				"Returns the extracted text and saves it to a text file.",
			Call: func(_ context.Context, args json.RawMessage) string {
				var in struct {
					InputFile   string `json:"input_file"`
					PageNumbers []int  `json:"page_numbers"`
				}
				if err := json.Unmarshal(args, &in); err != nil {
					return badArgs(err)
				}
				res := agent.ExtractText(in.InputFile, in.PageNumbers)
				if !res.OK {
					return "Error: " + res.Message
				}
				preview := ""
				if texts, ok := res.Meta["extracted_text"].(map[string]string); ok && len(texts) > 0 {
					for _, text := range texts {
						preview = fmt.Sprintf("\n\nPreview (first 200 chars):\n%s...", truncate(text, 200))
						break
					}
				}
				return fmt.Sprintf("%s\nTotal characters: %v\nSaved to: %s%s",
					res.Message, res.Meta["total_characters"], res.OutputFiles[0], preview)
			},
		},
		{
			Name: "extract_pages_from_pdf",
			Description: "Extract specific pages from a PDF into a new PDF file. " +
				"Input is the file path and a list of page numbers (1-indexed). " +
				"Returns the path to the new PDF containing only the specified pages.",
			Call: func(_ context.Context, args json.RawMessage) string {
				var in struct {
					InputFile   string `json:"input_file"`
					PageNumbers []int  `json:"page_numbers"`
					OutputFile  string `json:"output_file"`
				}
				if err := json.Unmarshal(args, &in); err != nil {
					return badArgs(err)
				}
				res := agent.ExtractPages(in.InputFile, in.PageNumbers, in.OutputFile)
				if !res.OK {
					return "Error: " + res.Message
				}
				return fmt.Sprintf("%s\nExtracted pages: %v\nOutput: %s",
					res.Message, res.Meta["extracted_pages"], res.OutputFiles[0])
			},
		},
		{
			Name: "get_pdf_metadata",
			Description: "Get metadata and information about a PDF file, including " +
				"title, author, page count, and creation date. " +
				"Input is the PDF file path.",
			Call: func(_ context.Context, args json.RawMessage) string {
				var in struct {
					InputFile string `json:"input_file"`
				}
				if err := json.Unmarshal(args, &in); err != nil {
					return badArgs(err)
				}
				res := agent.Metadata(in.InputFile)
				if !res.OK {
					return "Error: " + res.Message
				}
				var b strings.Builder
				b.WriteString(res.Message)
				b.WriteString("\n\nMetadata:")
				for _, key := range metadataKeys {
					fmt.Fprintf(&b, "\n  %s: %v", key, res.Meta[key])
				}
				return b.String()
			},
		},
		{
			Name: "rotate_pdf_pages",
			Description: "Rotate pages in a PDF file. " +
				"Can rotate all pages or specific pages by 90, 180, or 270 degrees. " +
				"Returns the path to the rotated PDF.",
			Call: func(_ context.Context, args json.RawMessage) string {
				var in struct {
					InputFile   string `json:"input_file"`
					Rotation    int    `json:"rotation"`
					PageNumbers []int  `json:"page_numbers"`
					OutputFile  string `json:"output_file"`
				}
				if err := json.Unmarshal(args, &in); err != nil {
					return badArgs(err)
				}
				return renderSingleOutput(agent.Rotate(in.InputFile, in.Rotation, in.PageNumbers, in.OutputFile))
			},
		},
	}
}

// metadataKeys fixes the rendering order of the metadata report.
var metadataKeys = []string{
	"title", "author", "subject", "creator", "producer",
	"creation_date", "modification_date", "page_count", "file_size_bytes",
}

func renderSingleOutput(res Result) string {
	if !res.OK {
		return "Error: " + res.Message
	}
	return fmt.Sprintf("%s\nOutput: %s", res.Message, res.OutputFiles[0])
}

func badArgs(err error) string {
	return fmt.Sprintf("Error: invalid tool arguments: %v", err)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
