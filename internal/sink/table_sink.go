package sink

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Belphemur/TVShows/internal/models"
	"github.com/Belphemur/TVShows/internal/parser"
)

// TableSink writes a terminal rendering of the page: header block with the
// show's fields followed by one table row per episode in server order.
type TableSink struct {
	out io.Writer
}

func NewTableSink(out io.Writer) *TableSink {
	return &TableSink{out: out}
}

func (s *TableSink) Render(_ context.Context, result models.FetchResult[*models.ShowPage]) error {
	page, err := result.Unwrap()
	if err != nil {
		_, werr := fmt.Fprintf(s.out, "Could not load show: %v\n", err)
		return werr
	}

	var b strings.Builder
	b.WriteString(page.Show.Title)
	b.WriteString("\n")
	if desc := parser.PlainText(page.Show.Description); desc != "" {
		b.WriteString(desc)
		b.WriteString("\n")
	}
	if page.Show.ImageURL != "" {
		fmt.Fprintf(&b, "Image: %s\n", page.Show.ImageURL)
	}
	fmt.Fprintf(&b, "Episodes: %d\n", page.EpisodeCount())

	if page.EpisodeCount() > 0 {
		b.WriteString(renderEpisodes(page.Episodes))
		b.WriteString("\n")
	}

	_, err = io.WriteString(s.out, b.String())
	return err
}

func renderEpisodes(episodes []models.Episode) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Season", "Episode", "Title", "Description"})

	for _, e := range episodes {
		tw.AppendRow(table.Row{e.Season, e.EpisodeNumber, e.Title, firstLine(parser.PlainText(e.Description))})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, WidthMax: 60},
	})
	return tw.Render()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
