// Package digest holds helpers around the DigestEmailData model: the
// canonical sample used for previews and struct-tag validation of digests
// arriving over the wire.
package digest

import "paperboy/internal/types"

// Sample returns a fully populated digest exercising every section of the
// email. A fresh value is built on each call so callers may modify it.
func Sample() *types.DigestEmailData {
	pdf := "https://example.com/paper.pdf"

	return &types.DigestEmailData{
		Date:      "Sunday, Dec 14, 2025",
		UserName:  "Noah",
		UserTitle: "Builder",
		Stats: types.DigestStats{
			PaperCount:         5,
			NewsCount:          4,
			ReadingTimeMinutes: 12,
			PapersProcessed:    120,
			ArticlesSelected:   18,
			TimeSavedMinutes:   95,
		},
		Highlights: []types.HighlightItem{
			{Title: "Top theme", Insight: "A short, punchy highlight that reads well in email.", Type: "news"},
			{Title: "Actionable", Insight: "A second highlight with the brand look and spacing.", Type: "paper"},
		},
		DirectlyRelevant: []types.DigestArticle{
			{
				Title:           "Paper: Robust reasoning in LLM systems (2025)",
				Type:            "paper",
				RelevanceScore:  94,
				ImportanceLabel: "CRITICAL",
				Summary:         "This paper proposes a practical architecture for safer, more reliable reasoning pipelines.",
				WhyRelevant:     "This aligns with your focus on reliability and evaluation, and suggests concrete engineering patterns.",
				KeyTakeaway:     "Use deterministic structure + post-validation to reduce hallucinations.",
				ArticleURL:      "https://example.com/paper",
				PDFURL:          &pdf,
				Source:          "arXiv",
			},
		},
		ExpandKnowledge: []types.DigestArticle{
			{
				Title:           "News: Major model provider updates eval tooling",
				Type:            "news",
				RelevanceScore:  86,
				ImportanceLabel: "IMPORTANT",
				Summary:         "A new suite of eval tools aims to make regression testing for LLM apps easier.",
				WhyRelevant:     "These tools may reduce iteration time and tighten quality gates for your digest pipeline.",
				KeyTakeaway:     "Treat prompts like code: version, test, and monitor.",
				ArticleURL:      "https://example.com/news",
				Source:          "Industry",
			},
		},
		QuickScan: []types.DigestArticle{
			{
				Title:           "Quick: A small but useful library release",
				Type:            "news",
				RelevanceScore:  72,
				ImportanceLabel: "NOTEWORTHY",
				Summary:         "A new release improves performance and introduces nicer developer ergonomics.",
				WhyRelevant:     "Might simplify a couple of steps in your current workflow.",
				KeyTakeaway:     "Worth skimming the changelog.",
				ArticleURL:      "https://example.com/quick",
				Source:          "GitHub",
			},
		},
	}
}
