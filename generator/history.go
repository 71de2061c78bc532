package generator

import (
	"fmt"
)

// History 会话内生成过的记事，保持插入顺序，标题可重复。
type History struct {
	articles []GeneratedArticle
}

func NewHistory() *History {
	return &History{}
}

// Append adds a to the end of the history.
func (h *History) Append(a GeneratedArticle) {
	h.articles = append(h.articles, a)
}

func (h *History) Len() int { return len(h.articles) }

// List returns a copy of the articles in insertion order.
func (h *History) List() []GeneratedArticle {
	return append([]GeneratedArticle(nil), h.articles...)
}

func (h *History) Get(id string) (GeneratedArticle, bool) {
	if i := h.index(id); i >= 0 {
		return h.articles[i], true
	}
	return GeneratedArticle{}, false
}

// Update overwrites title and content of the article with the given id.
func (h *History) Update(id, title, content string) bool {
	i := h.index(id)
	if i < 0 {
		return false
	}
	h.articles[i].Title = title
	h.articles[i].Content = content
	return true
}

func (h *History) Remove(id string) bool {
	i := h.index(id)
	if i < 0 {
		return false
	}
	h.removeAt(i)
	return true
}

// RemoveAt deletes the article at position index (0-based).
func (h *History) RemoveAt(index int) error {
	if index < 0 || index >= len(h.articles) {
		return fmt.Errorf("history index %d out of range [0,%d)", index, len(h.articles))
	}
	h.removeAt(index)
	return nil
}

func (h *History) removeAt(i int) {
	h.articles = append(h.articles[:i], h.articles[i+1:]...)
}

func (h *History) index(id string) int {
	for i, a := range h.articles {
		if a.ID == id {
			return i
		}
	}
	return -1
}
