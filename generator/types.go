package generator

import (
	"fmt"
	"strings"
	"time"
)

// Length 记事长度选项。
type Length string

const (
	LengthShort    Length = "short"
	LengthStandard Length = "standard"
	LengthDetailed Length = "detailed"
)

// Tone 文体选项。
type Tone string

const (
	ToneCasual      Tone = "casual"
	ToneFormal      Tone = "formal"
	ToneExpert      Tone = "expert"
	ToneEducational Tone = "educational"
	TonePersuasive  Tone = "persuasive"
)

// Option 描述一个可选项，供前端渲染下拉框。
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var lengthOptions = []Option{
	{Value: string(LengthShort), Label: "Short (~800 words)", Description: "a concise article of about 800 words"},
	{Value: string(LengthStandard), Label: "Standard (~1500 words)", Description: "a standard-length article of about 1500 words"},
	{Value: string(LengthDetailed), Label: "Detailed (2500+ words)", Description: "a detailed article of 2500 words or more"},
}

var toneOptions = []Option{
	{Value: string(ToneCasual), Label: "Casual", Description: "a friendly, conversational style"},
	{Value: string(ToneFormal), Label: "Formal", Description: "a polite, formal style"},
	{Value: string(ToneExpert), Label: "Expert", Description: "a specialist style using industry terminology for expert readers"},
	{Value: string(ToneEducational), Label: "Educational", Description: "a clear, explanatory style that teaches the reader"},
	{Value: string(TonePersuasive), Label: "Persuasive", Description: "a style written to persuade the reader"},
}

// LengthOptions returns the selectable lengths in display order.
func LengthOptions() []Option { return append([]Option(nil), lengthOptions...) }

// ToneOptions returns the selectable tones in display order.
func ToneOptions() []Option { return append([]Option(nil), toneOptions...) }

func findOption(opts []Option, value string) (Option, bool) {
	for _, o := range opts {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// ParseLength 解析长度，空值回落到 standard。
func ParseLength(s string) (Length, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LengthStandard, nil
	}
	if _, ok := findOption(lengthOptions, s); !ok {
		return "", &ValidationError{Field: "length", Message: fmt.Sprintf("unknown length %q", s)}
	}
	return Length(s), nil
}

// ParseTone 解析文体，空值回落到 casual。
func ParseTone(s string) (Tone, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ToneCasual, nil
	}
	if _, ok := findOption(toneOptions, s); !ok {
		return "", &ValidationError{Field: "tone", Message: fmt.Sprintf("unknown tone %q", s)}
	}
	return Tone(s), nil
}

// Description returns the text the prompt uses for this length.
func (l Length) Description() string {
	o, _ := findOption(lengthOptions, string(l))
	return o.Description
}

// Description returns the text the prompt uses for this tone.
func (t Tone) Description() string {
	o, _ := findOption(toneOptions, string(t))
	return o.Description
}

// ArticleParameters 向导收集的全部记事参数。
type ArticleParameters struct {
	Title        string `json:"title"`
	MainKeywords string `json:"main_keywords"`
	SubKeywords  string `json:"sub_keywords"`
	Purpose      string `json:"purpose"`
	Length       Length `json:"length,omitempty"`
	Audience     string `json:"audience"`
	Tone         Tone   `json:"tone,omitempty"`
}

// GeneratedArticle is one successful generation kept in the session history.
type GeneratedArticle struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	CreatedAt time.Time         `json:"created_at"`
	Metadata  ArticleParameters `json:"metadata"`
}
