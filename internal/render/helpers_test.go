package render

import (
	"sync"

	"paperboy/internal/types"
)

type logEntry struct {
	level  string
	msg    string
	fields map[string]any
}

// recordingLogger keeps every record with its key/value pairs.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) Info(msg string, args ...any)  { l.add("info", msg, args) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.add("warn", msg, args) }
func (l *recordingLogger) Error(msg string, args ...any) { l.add("error", msg, args) }
func (l *recordingLogger) With(args ...any) types.Logger { return l }

func (l *recordingLogger) add(level, msg string, args []any) {
	fields := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		if k, ok := args[i].(string); ok {
			fields[k] = args[i+1]
		}
	}
	l.mu.Lock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: fields})
	l.mu.Unlock()
}

// byEvent returns the records whose "event" field equals event.
func (l *recordingLogger) byEvent(event string) []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logEntry
	for _, e := range l.entries {
		if e.fields["event"] == event {
			out = append(out, e)
		}
	}
	return out
}

func strPtr(s string) *string { return &s }

// scenarioDigest holds one highlight and one directly relevant article.
func scenarioDigest() *types.DigestEmailData {
	return &types.DigestEmailData{
		Date:      "Monday, March 3",
		UserName:  "Ada",
		UserTitle: "Research Lead",
		Stats: types.DigestStats{
			PaperCount:         1,
			NewsCount:          1,
			ReadingTimeMinutes: 7,
			PapersProcessed:    120,
			ArticlesSelected:   2,
			TimeSavedMinutes:   45,
		},
		Highlights: []types.HighlightItem{
			{Title: "Top theme", Insight: "Agents are getting cheaper.", Type: "news"},
		},
		DirectlyRelevant: []types.DigestArticle{
			{
				Title:           "Paper: X",
				Type:            "paper",
				RelevanceScore:  94,
				ImportanceLabel: "CRITICAL",
				Summary:         "A new retrieval method.",
				WhyRelevant:     "Matches your retrieval work.",
				KeyTakeaway:     "Rerank before you generate.",
				ArticleURL:      "https://example.org/x",
				Source:          "arXiv",
			},
		},
	}
}
