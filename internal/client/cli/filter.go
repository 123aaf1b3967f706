package cli

import (
	"slices"
	"strings"

	"gonotes/internal/gateway/app/dto"
)

// Filter - выборка заметок на стороне клиента.
type Filter struct {
	// Search - подстрока без учета регистра в заголовке, тексте или тегах.
	Search string
	// Archived выбирает архивные заметки вместо активных.
	Archived bool
	// Tag выбирает заметки с тегом независимо от архивации.
	Tag string
}

// Apply возвращает заметки, подходящие под фильтр, сохраняя порядок.
func (f Filter) Apply(notes []dto.NoteResponse) []dto.NoteResponse {
	query := strings.ToLower(f.Search)
	out := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		if f.matchesTab(n) && matchesSearch(n, query) {
			out = append(out, n)
		}
	}
	return out
}

func (f Filter) matchesTab(n dto.NoteResponse) bool {
	if f.Tag != "" {
		return slices.Contains(n.Tags, f.Tag)
	}
	return n.IsArchived == f.Archived
}

func matchesSearch(n dto.NoteResponse, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(n.Title), query) || strings.Contains(strings.ToLower(n.Content), query) {
		return true
	}
	return slices.ContainsFunc(n.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), query)
	})
}

// AllTags возвращает отсортированный список уникальных тегов.
func AllTags(notes []dto.NoteResponse) []string {
	var tags []string
	for _, n := range notes {
		tags = append(tags, n.Tags...)
	}
	slices.Sort(tags)
	return slices.Compact(tags)
}
