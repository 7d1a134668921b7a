package llm

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"platepal/internal/mealplan"
)

//go:embed suggest_prompt.md
var suggestPrompt string

var suggestTemplate = template.Must(template.New("suggest").Parse(suggestPrompt))

const maxSuggestions = 5

type suggestPromptData struct {
	Message string
	Limit   int
}

// Suggester produces quick suggestions with a language model instead of
// the nutrition server.
type Suggester struct {
	textGen TextGenerator
}

// NewSuggester creates a Suggester on top of textGen.
func NewSuggester(textGen TextGenerator) *Suggester {
	return &Suggester{textGen: textGen}
}

// QuickSuggest asks the model for tips about message.
func (s *Suggester) QuickSuggest(ctx context.Context, message string) (mealplan.SuggestionList, error) {
	var buf bytes.Buffer
	if err := suggestTemplate.Execute(&buf, suggestPromptData{Message: message, Limit: maxSuggestions}); err != nil {
		return nil, fmt.Errorf("failed to build suggestion prompt: %w", err)
	}

	resp, err := s.textGen.GenerateContent(ctx, buf.String())
	if err != nil {
		return nil, err
	}

	list, err := parseSuggestions(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse suggestions: %w. Response: %s", err, resp)
	}
	if len(list) > maxSuggestions {
		list = list[:maxSuggestions]
	}
	return list, nil
}

// parseSuggestions accepts {"suggestions": [...]} or a bare array, with or
// without a markdown code fence around it.
func parseSuggestions(raw string) (mealplan.SuggestionList, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var list mealplan.SuggestionList
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return nil, err
		}
	} else {
		var obj struct {
			Suggestions mealplan.SuggestionList `json:"suggestions"`
		}
		if err := json.Unmarshal([]byte(raw), &obj); err != nil {
			return nil, err
		}
		list = obj.Suggestions
	}

	out := list[:0]
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
