// Package pdf implements document operations over a workspace
// directory: merge, split, page extraction, text extraction, rotation,
// and metadata. Operations report failures through the Result value
// rather than an error return so they can be handed to a language
// model as tools without a separate error channel.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	ledong "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/aide-sh/aide/internal/logger"
)

// Result is the outcome of one operation. OK false means the operation
// failed and Message holds the reason.
type Result struct {
	OK          bool           `json:"ok"`
	Message     string         `json:"message"`
	OutputFiles []string       `json:"output_files,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
}

func failure(format string, args ...any) Result {
	msg := fmt.Sprintf(format, args...)
	logger.Error("PDF operation failed", "reason", msg)
	return Result{OK: false, Message: msg}
}

// Agent runs document operations, writing outputs into its workspace
// directory.
type Agent struct {
	workspace string
}

// NewAgent returns an agent writing into workspace, creating the
// directory if needed. An empty workspace defaults to ./pdf_workspace.
func NewAgent(workspace string) (*Agent, error) {
	if workspace == "" {
		workspace = "pdf_workspace"
	}
	if err := os.MkdirAll(workspace, 0o755); err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}
	logger.Debug("PDF agent initialized", "workspace", workspace)
	return &Agent{workspace: workspace}, nil
}

// Workspace returns the output directory.
func (a *Agent) Workspace() string {
	return a.workspace
}

// outPath places name (basename only) in the workspace; when name is
// empty, fallback is used instead.
func (a *Agent) outPath(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	return filepath.Join(a.workspace, filepath.Base(name))
}

func checkInputs(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return fmt.Errorf("input file not found: %s", f)
		}
	}
	return nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Merge concatenates the input files into one document. output is a
// basename inside the workspace; empty means merged_output.pdf.
func (a *Agent) Merge(inputs []string, output string) Result {
	if len(inputs) == 0 {
		return failure("no input files to merge")
	}
	if err := checkInputs(inputs...); err != nil {
		return failure("%v", err)
	}

	dest := a.outPath(output, "merged_output.pdf")
	if err := api.MergeCreateFile(inputs, dest, false, nil); err != nil {
		return failure("error merging PDFs: %v", err)
	}

	logger.Info("Merged PDFs", "count", len(inputs), "output", dest)
	return Result{
		OK:          true,
		Message:     fmt.Sprintf("Successfully merged %d PDFs", len(inputs)),
		OutputFiles: []string{dest},
		Meta:        map[string]any{"input_count": len(inputs)},
	}
}

// Split cuts the input into chunks of pagesPerFile pages each, written
// into a per-document subdirectory of the workspace. pagesPerFile <= 0
// means one page per file.
func (a *Agent) Split(input string, pagesPerFile int) Result {
	if err := checkInputs(input); err != nil {
		return failure("%v", err)
	}
	if pagesPerFile <= 0 {
		pagesPerFile = 1
	}

	outDir := filepath.Join(a.workspace, stem(input)+"_split")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return failure("creating split directory: %v", err)
	}

	if err := api.SplitFile(input, outDir, pagesPerFile, nil); err != nil {
		return failure("error splitting PDF: %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return failure("reading split directory: %v", err)
	}
	var outputs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".pdf") {
			outputs = append(outputs, filepath.Join(outDir, e.Name()))
		}
	}
	sort.Strings(outputs)

	logger.Info("Split PDF", "input", input, "parts", len(outputs))
	return Result{
		OK:          true,
		Message:     fmt.Sprintf("Successfully split PDF into %d files", len(outputs)),
		OutputFiles: outputs,
		Meta:        map[string]any{"output_count": len(outputs)},
	}
}

// ExtractText pulls plain text from the given 1-indexed pages (all
// pages when empty) and writes it to a .txt file in the workspace. The
// per-page text is also returned in Meta under "extracted_text".
func (a *Agent) ExtractText(input string, pages []int) Result {
	if err := checkInputs(input); err != nil {
		return failure("%v", err)
	}

	f, r, err := ledong.Open(input)
	if err != nil {
		return failure("error opening PDF: %v", err)
	}
	defer f.Close()

	total := r.NumPage()
	if len(pages) == 0 {
		for n := 1; n <= total; n++ {
			pages = append(pages, n)
		}
	}

	extracted := make(map[string]string)
	var order []int
	totalChars := 0
	for _, n := range pages {
		if n < 1 || n > total {
			continue
		}
		page := r.Page(n)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return failure("error extracting text from page %d: %v", n, err)
		}
		extracted[fmt.Sprintf("page_%d", n)] = text
		order = append(order, n)
		totalChars += len(text)
	}

	dest := filepath.Join(a.workspace, stem(input)+"_extracted.txt")
	var b strings.Builder
	for _, n := range order {
		fmt.Fprintf(&b, "\n=== PAGE_%d ===\n", n)
		b.WriteString(extracted[fmt.Sprintf("page_%d", n)])
		b.WriteString("\n")
	}
	if err := os.WriteFile(dest, []byte(b.String()), 0o644); err != nil {
		return failure("error writing text file: %v", err)
	}

	logger.Info("Extracted text", "input", input, "pages", len(order))
	return Result{
		OK:          true,
		Message:     fmt.Sprintf("Successfully extracted text from %d pages", len(order)),
		OutputFiles: []string{dest},
		Meta: map[string]any{
			"extracted_text":   extracted,
			"total_characters": totalChars,
			"page_count":       len(order),
		},
	}
}

// ExtractPages copies the given 1-indexed pages into a new document.
// Out-of-range pages are dropped; extracting nothing is a failure.
func (a *Agent) ExtractPages(input string, pages []int, output string) Result {
	if err := checkInputs(input); err != nil {
		return failure("%v", err)
	}
	if len(pages) == 0 {
		return failure("no pages requested")
	}

	total, err := api.PageCountFile(input)
	if err != nil {
		return failure("error reading PDF: %v", err)
	}

	var kept []int
	for _, n := range pages {
		if n >= 1 && n <= total {
			kept = append(kept, n)
		} else {
			logger.Warn("Page out of range", "page", n, "total", total)
		}
	}
	if len(kept) == 0 {
		return failure("no valid pages to extract")
	}

	fallback := fmt.Sprintf("%s_pages_%s.pdf", stem(input), joinInts(kept, "_"))
	dest := a.outPath(output, fallback)
	if err := api.TrimFile(input, dest, pageSelection(kept), nil); err != nil {
		return failure("error extracting pages: %v", err)
	}

	logger.Info("Extracted pages", "input", input, "pages", kept, "output", dest)
	return Result{
		OK:          true,
		Message:     fmt.Sprintf("Successfully extracted %d pages", len(kept)),
		OutputFiles: []string{dest},
		Meta:        map[string]any{"extracted_pages": kept},
	}
}

// Rotate turns the given 1-indexed pages (all pages when empty) by
// degrees, which must be ±90, ±180 or ±270.
func (a *Agent) Rotate(input string, degrees int, pages []int, output string) Result {
	if err := checkInputs(input); err != nil {
		return failure("%v", err)
	}
	switch degrees {
	case 90, 180, 270, -90, -180, -270:
	default:
		return failure("invalid rotation angle: %d. Use 90, 180, or 270", degrees)
	}

	total, err := api.PageCountFile(input)
	if err != nil {
		return failure("error reading PDF: %v", err)
	}
	rotated := len(pages)
	if rotated == 0 {
		rotated = total
	}

	dest := a.outPath(output, stem(input)+"_rotated.pdf")
	if err := api.RotateFile(input, dest, degrees, pageSelection(pages), nil); err != nil {
		return failure("error rotating pages: %v", err)
	}

	logger.Info("Rotated pages", "input", input, "degrees", degrees, "pages", rotated)
	return Result{
		OK:          true,
		Message:     fmt.Sprintf("Successfully rotated %d pages", rotated),
		OutputFiles: []string{dest},
		Meta:        map[string]any{"rotation": degrees, "pages_rotated": rotated},
	}
}

// Metadata reports document properties: title, author, page count,
// dates, and file size.
func (a *Agent) Metadata(input string) Result {
	if err := checkInputs(input); err != nil {
		return failure("%v", err)
	}

	f, err := os.Open(input)
	if err != nil {
		return failure("error opening PDF: %v", err)
	}
	defer f.Close()

	info, err := api.PDFInfo(f, input, nil, false, nil)
	if err != nil {
		return failure("error reading PDF metadata: %v", err)
	}
	stat, err := f.Stat()
	if err != nil {
		return failure("error reading file size: %v", err)
	}

	meta := map[string]any{
		"title":             orNA(info.Title),
		"author":            orNA(info.Author),
		"subject":           orNA(info.Subject),
		"creator":           orNA(info.Creator),
		"producer":          orNA(info.Producer),
		"creation_date":     orNA(info.CreationDate),
		"modification_date": orNA(info.ModificationDate),
		"page_count":        info.PageCount,
		"file_size_bytes":   stat.Size(),
	}

	logger.Info("Read metadata", "input", input, "pages", info.PageCount)
	return Result{
		OK:      true,
		Message: "Successfully retrieved PDF metadata",
		Meta:    meta,
	}
}

// pageSelection converts 1-indexed page numbers to the selection
// syntax the underlying library expects. nil means all pages.
func pageSelection(pages []int) []string {
	if len(pages) == 0 {
		return nil
	}
	out := make([]string, len(pages))
	for i, n := range pages {
		out[i] = strconv.Itoa(n)
	}
	return out
}

func joinInts(nums []int, sep string) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, sep)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
