// Package analysis derives the aggregate views plotted by jobreport:
// company-size counts, required-skill frequencies and the job-growth
// projection column.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/nao1215/jobreport/internal/dataset"
	"github.com/nao1215/jobreport/internal/model"
	"github.com/nao1215/jobreport/internal/stats"
)

// skillTokenSet is the JobDB token set holding split skills.
const skillTokenSet = "required_skills"

// ErrMissingColumn is returned when the table has no column of the given name.
var ErrMissingColumn = errors.New("column not found")

// Counter is the aggregation engine the views are computed with.
// *database.JobDB implements it.
type Counter interface {
	CountByColumn(ctx context.Context, column string) ([]model.CategoryCount, error)
	ImportTokens(ctx context.Context, set string, tokens []string) error
	CountTokens(ctx context.Context, set string) ([]model.CategoryCount, error)
}

// SkillOrder selects how skills are ranked before the top N are taken.
type SkillOrder string

const (
	// OrderDescending ranks the most frequent skills first.
	OrderDescending SkillOrder = "descending"

	// OrderAscending sorts by ascending frequency before slicing, which
	// yields the least frequent skills.
	OrderAscending SkillOrder = "ascending"
)

// Valid reports whether o is a known order.
func (o SkillOrder) Valid() bool {
	return o == OrderDescending || o == OrderAscending
}

// CompanySizes counts postings per non-null company-size category.
func CompanySizes(ctx context.Context, c Counter, column string) (*model.CategoryView, error) {
	return Categories(ctx, c, column)
}

// Categories counts rows per non-null value of column, most frequent first.
func Categories(ctx context.Context, c Counter, column string) (*model.CategoryView, error) {
	counts, err := c.CountByColumn(ctx, column)
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", column, err)
	}
	view := &model.CategoryView{Column: column, Counts: counts}
	view.Total = view.Sum()
	return view, nil
}

// SplitSkills splits a comma-joined skills cell into trimmed skill names.
// Empty tokens, e.g. from a trailing comma, are dropped.
func SplitSkills(field string) []string {
	parts := strings.Split(field, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// RequiredSkills counts every skill token across all non-null cells of the
// column and ranks them. A row listing several skills contributes one count
// per skill.
func RequiredSkills(
	ctx context.Context,
	c Counter,
	t *dataset.Table,
	column string,
	top int,
	order SkillOrder,
) (*model.CategoryView, error) {
	col, ok := t.Column(column)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, column)
	}

	tokens := make([]string, 0, col.Len())
	for _, cell := range col.Texts() {
		tokens = append(tokens, SplitSkills(cell)...)
	}

	if err := c.ImportTokens(ctx, skillTokenSet, tokens); err != nil {
		return nil, fmt.Errorf("import skills: %w", err)
	}
	counts, err := c.CountTokens(ctx, skillTokenSet)
	if err != nil {
		return nil, fmt.Errorf("count skills: %w", err)
	}

	return &model.CategoryView{
		Column: column,
		Counts: RankTop(counts, top, order),
		Total:  len(tokens),
	}, nil
}

// RankTop sorts counts by the given order and keeps the first n entries.
// Ties are broken by name so the ranking is stable across runs. The input
// slice is not modified.
func RankTop(counts []model.CategoryCount, n int, order SkillOrder) []model.CategoryCount {
	ranked := make([]model.CategoryCount, len(counts))
	copy(ranked, counts)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			if order == OrderAscending {
				return ranked[i].Count < ranked[j].Count
			}
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// JobGrowth prepares the job-growth projection column for plotting.
// A numeric column yields its non-null, non-NaN values and their summary;
// a text column yields counts per label.
func JobGrowth(ctx context.Context, c Counter, t *dataset.Table, column string) (*model.GrowthView, error) {
	col, ok := t.Column(column)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, column)
	}

	view := &model.GrowthView{
		Column:    column,
		NullCount: col.NullCount(),
	}

	if col.Kind() == dataset.KindFloat {
		view.Values = col.Floats()
		if s, err := stats.Summarize(view.Values); err == nil {
			view.Stats = &s
		}
		return view, nil
	}

	categories, err := Categories(ctx, c, column)
	if err != nil {
		return nil, err
	}
	view.Categories = categories
	return view, nil
}
