// Package cli implements the non-interactive carcli commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/studiowebux/carcli/internal/datasource"
	"github.com/studiowebux/carcli/internal/filter"
	"github.com/studiowebux/carcli/internal/types"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputText  = "text"
)

// IsInteractive checks if stdin is a terminal (not piped)
func IsInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// ListOptions contains options for listing cars
type ListOptions struct {
	Page     int
	Search   string
	Output   string // table, json, yaml, text
	Query    string // JMESPath expression applied to the rows
	PageSize int    // Used for the approximate count when the server sends none
	Out      io.Writer
}

// listPage is the serialized shape of a listed page
type listPage struct {
	Cars       []types.CarRecord `json:"cars" yaml:"cars"`
	Page       int               `json:"page" yaml:"page"`
	TotalPages int               `json:"total_pages" yaml:"total_pages"`
	Count      int               `json:"count" yaml:"count"`
	Exact      bool              `json:"count_exact" yaml:"count_exact"`
	Search     string            `json:"search,omitempty" yaml:"search,omitempty"`
}

// List fetches one page of cars and writes it in the requested format
func List(ctx context.Context, lister datasource.Lister, opts ListOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	q := datasource.NewQuery()
	q.SetSearch(strings.TrimSpace(opts.Search))
	q.SetPage(opts.Page)

	ds := datasource.New(lister, nil)
	result, err := ds.Load(ctx, q)
	if err != nil {
		return err
	}

	if opts.Query != "" {
		queried, err := filter.ApplyValue(result.Rows, opts.Query)
		if err != nil {
			return fmt.Errorf("query error: %w", err)
		}
		fmt.Fprintln(out, queried)
		return nil
	}

	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = 5
	}
	count, exact := result.DisplayCount(pageSize)
	page := listPage{
		Cars:       result.Rows,
		Page:       result.Page,
		TotalPages: result.TotalPages,
		Count:      count,
		Exact:      exact,
		Search:     result.Search,
	}

	output, err := formatList(page, opts.Output)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Fprint(out, output)
	return nil
}

// formatList formats a page based on the output format
func formatList(page listPage, format string) (string, error) {
	switch format {
	case OutputJSON:
		data, err := json.MarshalIndent(page, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case OutputYAML:
		data, err := yaml.Marshal(page)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case OutputText:
		var sb strings.Builder
		for _, car := range page.Cars {
			sb.WriteString(fmt.Sprintf("%s\t%s\n", car.ID, car.Label()))
		}
		sb.WriteString(pageSummary(page))
		return sb.String(), nil

	case OutputTable, "":
		return renderTable(page), nil

	default:
		return "", fmt.Errorf("unknown output format %q (use table, json, yaml or text)", format)
	}
}

func renderTable(page listPage) string {
	var sb strings.Builder
	if len(page.Cars) == 0 {
		sb.WriteString("No cars found\n")
		sb.WriteString(pageSummary(page))
		return sb.String()
	}

	t := table.NewWriter()
	t.SetOutputMirror(&sb)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Size", "Style", "Transmission", "Price", "Released", "ID"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Price", Align: text.AlignRight},
		{Name: "Released", Align: text.AlignRight},
	})
	for _, car := range page.Cars {
		t.AppendRow(table.Row{
			car.Name(),
			car.Size,
			car.Style,
			car.TransmissionType,
			fmt.Sprintf("%.2f", car.Price),
			car.ReleaseDate,
			car.ID,
		})
	}
	t.Render()

	sb.WriteString(pageSummary(page))
	return sb.String()
}

func pageSummary(page listPage) string {
	count := fmt.Sprintf("%d cars", page.Count)
	if !page.Exact {
		count = "~" + count
	}
	summary := fmt.Sprintf("Page %d of %d (%s)", page.Page, page.TotalPages, count)
	if page.Search != "" {
		summary += fmt.Sprintf(" matching %q", page.Search)
	}
	return summary + "\n"
}

// ANSI color codes
const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
)
