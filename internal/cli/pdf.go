package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/aide-sh/aide/internal/pdf"
)

func newAgent(ctx *Context) (*pdf.Agent, error) {
	return pdf.NewAgent(ctx.Workspace)
}

// report prints a Result and converts a failed one into a command
// error so the exit code reflects it.
func report(res pdf.Result) error {
	if !res.OK {
		return errors.New(res.Message)
	}
	fmt.Println(res.Message)
	for _, f := range res.OutputFiles {
		fmt.Printf("  %s\n", f)
	}
	return nil
}

type PdfMergeCmd struct {
	Inputs []string `arg:"" help:"PDF files to merge, in order."`
	Output string   `help:"Output file name inside the workspace."`
}

func (c *PdfMergeCmd) Run(ctx *Context) error {
	agent, err := newAgent(ctx)
	if err != nil {
		return err
	}
	return report(agent.Merge(c.Inputs, c.Output))
}

type PdfSplitCmd struct {
	Input        string `arg:"" help:"PDF file to split."`
	PagesPerFile int    `help:"Pages per output file (default: one per page)." default:"1"`
}

func (c *PdfSplitCmd) Run(ctx *Context) error {
	agent, err := newAgent(ctx)
	if err != nil {
		return err
	}
	return report(agent.Split(c.Input, c.PagesPerFile))
}

type PdfTextCmd struct {
	Input string `arg:"" help:"PDF file to extract text from."`
	Pages []int  `help:"Pages to extract, 1-indexed (default: all)."`
}

func (c *PdfTextCmd) Run(ctx *Context) error {
	agent, err := newAgent(ctx)
	if err != nil {
		return err
	}
	res := agent.ExtractText(c.Input, c.Pages)
	if err := report(res); err != nil {
		return err
	}
	fmt.Printf("  total characters: %v\n", res.Meta["total_characters"])
	return nil
}

type PdfPagesCmd struct {
	Input  string `arg:"" help:"Source PDF file."`
	Pages  []int  `arg:"" help:"Pages to extract, 1-indexed."`
	Output string `help:"Output file name inside the workspace."`
}

func (c *PdfPagesCmd) Run(ctx *Context) error {
	agent, err := newAgent(ctx)
	if err != nil {
		return err
	}
	return report(agent.ExtractPages(c.Input, c.Pages, c.Output))
}

type PdfRotateCmd struct {
	Input   string `arg:"" help:"PDF file to rotate."`
	Degrees int    `help:"Rotation angle: 90, 180, or 270." default:"90"`
	Pages   []int  `help:"Pages to rotate, 1-indexed (default: all)."`
	Output  string `help:"Output file name inside the workspace."`
}

func (c *PdfRotateCmd) Run(ctx *Context) error {
	agent, err := newAgent(ctx)
	if err != nil {
		return err
	}
	return report(agent.Rotate(c.Input, c.Degrees, c.Pages, c.Output))
}

type PdfInfoCmd struct {
	Input string `arg:"" help:"PDF file to inspect."`
}

func (c *PdfInfoCmd) Run(ctx *Context) error {
	agent, err := newAgent(ctx)
	if err != nil {
		return err
	}
	res := agent.Metadata(c.Input)
	if !res.OK {
		return errors.New(res.Message)
	}

	for _, key := range []string{
		"title", "author", "subject", "creator", "producer",
		"creation_date", "modification_date", "page_count", "file_size_bytes",
	} {
		fmt.Printf("%-18s %v\n", key+":", res.Meta[key])
	}
	return nil
}

type PdfTaskCmd struct {
	Task string `arg:"" help:"Natural-language description of the PDF task."`
}

func (c *PdfTaskCmd) Run(ctx *Context) error {
	agent, err := newAgent(ctx)
	if err != nil {
		return err
	}
	provider, err := ctx.Provider()
	if err != nil {
		return err
	}

	runner := pdf.NewRunner(provider, pdf.Tools(agent))
	answer, err := runner.Run(context.Background(), c.Task, nil)
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}
