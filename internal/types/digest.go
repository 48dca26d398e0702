package types

// DigestEmailData is the structured input for one user's digest email.
// It is validated upstream; the render layer treats it as read-only and never
// reorders or filters its sequences.
type DigestEmailData struct {
	Date      string      `json:"date" validate:"required"`
	UserName  string      `json:"user_name" validate:"required"`
	UserTitle string      `json:"user_title"`
	Stats     DigestStats `json:"stats"`

	Highlights       []HighlightItem `json:"highlights" validate:"dive"`
	DirectlyRelevant []DigestArticle `json:"directly_relevant" validate:"dive"`
	ExpandKnowledge  []DigestArticle `json:"expand_knowledge" validate:"dive"`
	QuickScan        []DigestArticle `json:"quick_scan" validate:"dive"`
}

// DigestStats summarizes the work behind a digest.
type DigestStats struct {
	PaperCount         int `json:"paper_count" validate:"gte=0"`
	NewsCount          int `json:"news_count" validate:"gte=0"`
	ReadingTimeMinutes int `json:"reading_time_minutes" validate:"gte=0"`
	PapersProcessed    int `json:"papers_processed" validate:"gte=0"`
	ArticlesSelected   int `json:"articles_selected" validate:"gte=0"`
	TimeSavedMinutes   int `json:"time_saved_minutes" validate:"gte=0"`
}

// HighlightItem is a short headline insight shown above the article lists.
type HighlightItem struct {
	Title   string `json:"title" validate:"required"`
	Insight string `json:"insight"`
	Type    string `json:"type"`
}

// DigestArticle is a single ranked paper or news item.
type DigestArticle struct {
	Title           string  `json:"title" validate:"required"`
	Type            string  `json:"type"`
	RelevanceScore  int     `json:"relevance_score" validate:"gte=0,lte=100"`
	ImportanceLabel string  `json:"importance_label"`
	Summary         string  `json:"summary"`
	WhyRelevant     string  `json:"why_relevant"`
	KeyTakeaway     string  `json:"key_takeaway"`
	ArticleURL      string  `json:"article_url" validate:"omitempty,url"`
	PDFURL          *string `json:"pdf_url,omitempty" validate:"omitempty,url"`
	Source          string  `json:"source"`
}

// ArticleCount returns the number of articles across all three sections.
func (d *DigestEmailData) ArticleCount() int {
	if d == nil {
		return 0
	}
	return len(d.DirectlyRelevant) + len(d.ExpandKnowledge) + len(d.QuickScan)
}

// DigestRenderRequest is the queue message asking for one digest to be rendered.
type DigestRenderRequest struct {
	DigestID     string          `json:"digest_id" validate:"required"`
	Recipient    string          `json:"recipient" validate:"omitempty,email"`
	Digest       DigestEmailData `json:"digest" validate:"required"`
	FallbackHTML string          `json:"fallback_html,omitempty"`
	TraceID      string          `json:"trace_id,omitempty"`
}

// RenderedDigest is published once a digest has been rendered. When Encoding
// is "zstd+base64" the HTML field holds the compressed body.
type RenderedDigest struct {
	RenderID     string `json:"render_id"`
	DigestID     string `json:"digest_id"`
	Recipient    string `json:"recipient,omitempty"`
	HTML         string `json:"html"`
	Text         string `json:"text,omitempty"`
	Encoding     string `json:"encoding,omitempty"`
	ContentHash  string `json:"content_hash"`
	HTMLLength   int    `json:"html_length"`
	UsedFallback bool   `json:"used_fallback"`
	TraceID      string `json:"trace_id,omitempty"`
}
