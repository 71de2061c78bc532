package generator

import (
	"fmt"
	"strings"
)

// SystemPrompt 固定的系统指令。
const SystemPrompt = "You are a professional content writer who knows SEO inside out. " +
	"You write natural, engaging articles that are optimized for search engines."

// authoringRules 顺序即输出顺序，不要随意调整。
var authoringRules = []string{
	"Write the article in Markdown. Do not use HTML tags.",
	"Place the main keywords and sub keywords naturally in the text.",
	"Use H2 and H3 headings effectively to structure the article.",
	"Open with an introduction that hooks the reader and close with a clear conclusion.",
	"Keep the prose easy to read and explain technical terms where needed.",
	"Provide accurate information based on facts.",
}

// Prompt 表示发送给 LLM 的消息。
type Prompt struct {
	System string
	User   string
}

// BuildPrompt 根据参数生成记事提示词。
func BuildPrompt(params ArticleParameters) Prompt {
	var sb strings.Builder
	sb.WriteString("Write an SEO-optimized article that follows the conditions below.\n\n")
	section(&sb, "Article title", params.Title)
	section(&sb, "Main keywords", params.MainKeywords)
	section(&sb, "Sub keywords", params.SubKeywords)
	section(&sb, "Purpose of the article", params.Purpose)
	section(&sb, "Article length", params.Length.Description())
	section(&sb, "Target audience", params.Audience)
	section(&sb, "Tone of writing", params.Tone.Description())
	sb.WriteString("## Writing guidelines\n")
	for i, rule := range authoringRules {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, rule))
	}
	sb.WriteString("\nWrite the complete SEO-optimized article.\n")

	return Prompt{
		System: SystemPrompt,
		User:   sb.String(),
	}
}

func section(sb *strings.Builder, heading, body string) {
	sb.WriteString(fmt.Sprintf("## %s\n%s\n\n", heading, body))
}
