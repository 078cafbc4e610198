// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PromptPaperSearchAssistant is the name of the research assistant prompt.
const PromptPaperSearchAssistant = "paper_search_assistant"

// Search focus values accepted by the assistant prompt.
const (
	FocusRecent        = "recent"
	FocusHighlyCited   = "highly_cited"
	FocusComprehensive = "comprehensive"
)

type focusPlan struct {
	Strategy string
	Order    string
}

var focusPlans = map[string]focusPlan{
	FocusRecent: {
		Strategy: "Focus on recently published papers to understand the latest developments in the field",
		Order:    "year",
	},
	FocusHighlyCited: {
		Strategy: "Focus on highly cited papers to understand important contributions and classic works in the field",
		Order:    "n_citation",
	},
	FocusComprehensive: {
		Strategy: "Conduct comprehensive search, balancing novelty and impact of papers",
	},
}

var assistantPromptTmpl = template.Must(template.New("assistant").Parse(`You are a professional academic research assistant. The user wants to learn about the research topic "{{.Topic}}".

Please help the user:
1. {{.Strategy}}
2. Use AMiner search tools to find relevant papers
3. Analyze search results and provide valuable insights
4. Recommend important papers and authors
5. Summarize the current research status and development trends in this field

Search suggestions:
- Use keyword search: search_papers_by_keyword
- If you know important venues, use: search_papers_by_venue
- If you know important authors, use: search_papers_by_author
- Sorting parameter suggestion: {{if .Order}}order="{{.Order}}"{{else}}use default comprehensive sorting{{end}}

Please start searching and analyzing relevant papers.`))

func (h *handler) registerPrompts(s *mcp.Server) {
	s.AddPrompt(&mcp.Prompt{
		Name:        PromptPaperSearchAssistant,
		Title:       "Paper Search Assistant",
		Description: "Prompt that guides an assistant through searching and analyzing academic papers on a topic",
		Arguments: []*mcp.PromptArgument{
			{Name: "research_topic", Description: "Research topic or field", Required: true},
			{Name: "search_focus", Description: "Search focus: recent (latest papers), highly_cited (high citation papers) or comprehensive (balanced, default)"},
		},
	}, h.paperSearchAssistant)
}

func (h *handler) paperSearchAssistant(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := req.Params.Arguments
	text, err := RenderAssistantPrompt(args["research_topic"], args["search_focus"])
	if err != nil {
		return nil, err
	}
	return &mcp.GetPromptResult{
		Description: "Paper search assistant",
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: text}},
		},
	}, nil
}

// RenderAssistantPrompt builds the assistant instructions for topic. An
// empty focus means comprehensive.
func RenderAssistantPrompt(topic, focus string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", fmt.Errorf("research_topic is required")
	}
	if focus == "" {
		focus = FocusComprehensive
	}
	plan, ok := focusPlans[focus]
	if !ok {
		return "", fmt.Errorf("unknown search_focus %q: use %s, %s or %s", focus, FocusRecent, FocusHighlyCited, FocusComprehensive)
	}

	var buf bytes.Buffer
	data := map[string]string{
		"Topic":    topic,
		"Strategy": plan.Strategy,
		"Order":    plan.Order,
	}
	if err := assistantPromptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return buf.String(), nil
}
