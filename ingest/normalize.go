package ingest

import (
	"strings"
	"time"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
	"github.com/Riya0071234/Cooking-Voice-Assistant/source"
)

// Normalize converts a raw record into the ContentItem shape the rest of the
// pipeline operates on. RawText is the concatenation the deduplication and
// tagging engines tokenize; its composition depends on the source type.
func Normalize(sourceType core.SourceType, record source.RawRecord, now time.Time) *core.ContentItem {
	item := &core.ContentItem{
		Id:         core.ItemID(sourceType, record.SourceID),
		Source:     sourceType,
		SourceID:   record.SourceID,
		Metadata:   record.Metadata,
		Status:     core.StatusIngested,
		IngestedAt: now.UTC(),
	}

	switch sourceType {
	case core.SourceSite:
		item.Recipe = &core.RecipeEntry{
			Title:        record.Title,
			Ingredients:  record.Ingredients,
			Instructions: record.Instructions,
		}
		// Ingredient and instruction lists carry most of a recipe's signal,
		// so they go into RawText alongside the title and body. Two scrapes
		// of the same dish share their ingredient text even when the prose
		// around it differs.
		parts := make([]string, 0, 2+len(record.Ingredients)+len(record.Instructions))
		parts = append(parts, record.Title, record.Body)
		parts = append(parts, record.Ingredients...)
		parts = append(parts, record.Instructions...)
		item.RawText = joinText(parts...)
	case core.SourceForum, core.SourceSocial:
		item.Contextual = &core.ContextualEntry{
			Question: record.Question,
			Answer:   record.Answer,
		}
		item.RawText = joinText(record.Question, record.Answer)
	case core.SourceVideo:
		item.Video = &core.VideoDetails{
			VideoID:         record.SourceID,
			Title:           record.Title,
			DurationSeconds: record.DurationSeconds,
			MediaRef:        record.MediaRef,
		}
		item.RawText = joinText(record.Title, record.Body)
	}

	item.Language = core.DetectLanguage(item.RawText)
	return item
}

func joinText(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}
