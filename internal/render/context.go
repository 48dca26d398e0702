package render

import "paperboy/internal/types"

// Context is the flat key-value structure a template executes against. It is
// built fresh for every render and never reused.
type Context map[string]any

// Counts are derived from the digest for observability. They are reported
// alongside a render, not bound into the template.
type Counts struct {
	Articles   int
	Highlights int
}

// BuildContext maps every DigestEmailData field to a context key of the same
// (snake_case) name. Only strings, numbers, booleans, slices and nested maps
// reach the template; sequence order is preserved.
func BuildContext(d *types.DigestEmailData) (Context, Counts) {
	ctx := Context{
		"date":              d.Date,
		"user_name":         d.UserName,
		"user_title":        d.UserTitle,
		"stats":             statsContext(d.Stats),
		"highlights":        highlightsContext(d.Highlights),
		"directly_relevant": articlesContext(d.DirectlyRelevant),
		"expand_knowledge":  articlesContext(d.ExpandKnowledge),
		"quick_scan":        articlesContext(d.QuickScan),
	}

	counts := Counts{
		Articles:   d.ArticleCount(),
		Highlights: len(d.Highlights),
	}
	return ctx, counts
}

func statsContext(s types.DigestStats) map[string]any {
	return map[string]any{
		"paper_count":          s.PaperCount,
		"news_count":           s.NewsCount,
		"reading_time_minutes": s.ReadingTimeMinutes,
		"papers_processed":     s.PapersProcessed,
		"articles_selected":    s.ArticlesSelected,
		"time_saved_minutes":   s.TimeSavedMinutes,
	}
}

func highlightsContext(items []types.HighlightItem) []map[string]any {
	out := make([]map[string]any, len(items))
	for i, h := range items {
		out[i] = map[string]any{
			"title":   h.Title,
			"insight": h.Insight,
			"type":    h.Type,
		}
	}
	return out
}

func articlesContext(items []types.DigestArticle) []map[string]any {
	out := make([]map[string]any, len(items))
	for i, a := range items {
		out[i] = articleContext(a)
	}
	return out
}

func articleContext(a types.DigestArticle) map[string]any {
	// An absent PDF stays an untyped nil so {{ if .pdf_url }} is false.
	var pdfURL any
	if a.PDFURL != nil {
		pdfURL = *a.PDFURL
	}
	return map[string]any{
		"title":            a.Title,
		"type":             a.Type,
		"relevance_score":  a.RelevanceScore,
		"importance_label": a.ImportanceLabel,
		"summary":          a.Summary,
		"why_relevant":     a.WhyRelevant,
		"key_takeaway":     a.KeyTakeaway,
		"article_url":      a.ArticleURL,
		"pdf_url":          pdfURL,
		"source":           a.Source,
	}
}
