package generator

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Step 向导当前所处的步骤。
type Step int

const (
	StepBasicInfo Step = iota + 1
	StepContentDetails
	StepStylePreferences
	StepReviewExport
)

var stepNames = map[Step]string{
	StepBasicInfo:        "basic_info",
	StepContentDetails:   "content_details",
	StepStylePreferences: "style_preferences",
	StepReviewExport:     "review_export",
}

func (s Step) String() string { return stepNames[s] }

// WizardState is the data the wizard accumulates across steps.
type WizardState struct {
	Step   Step
	Params ArticleParameters
	Last   *GeneratedArticle
}

// Session 持有一个用户会话的向导状态、凭证和记事历史。
// 非并发安全，调用方需保证同一时刻只有一个操作。
type Session struct {
	ID      string
	History *History

	state      WizardState
	credential string
	generator  ArticleGenerator
	now        func() time.Time
	newID      func() string
}

// NewSession 创建 session，处于第一步。
func NewSession(id string, gen ArticleGenerator) *Session {
	return &Session{
		ID:        id,
		History:   NewHistory(),
		state:     WizardState{Step: StepBasicInfo},
		generator: gen,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// State returns a snapshot of the wizard state.
func (s *Session) State() WizardState {
	st := s.state
	if st.Last != nil {
		last := *st.Last
		st.Last = &last
	}
	return st
}

func (s *Session) Step() Step { return s.state.Step }

// SetCredential 随时可更新，下一次生成生效。
func (s *Session) SetCredential(credential string) {
	s.credential = strings.TrimSpace(credential)
}

func (s *Session) HasCredential() bool { return s.credential != "" }

// SubmitBasicInfo 1 -> 2。
func (s *Session) SubmitBasicInfo(title, mainKeywords, subKeywords string) error {
	if s.state.Step != StepBasicInfo {
		return ErrInvalidTransition
	}
	if err := required("title", title); err != nil {
		return err
	}
	if err := required("main_keywords", mainKeywords); err != nil {
		return err
	}
	s.state.Params.Title = strings.TrimSpace(title)
	s.state.Params.MainKeywords = strings.TrimSpace(mainKeywords)
	s.state.Params.SubKeywords = strings.TrimSpace(subKeywords)
	s.state.Step = StepContentDetails
	return nil
}

// SubmitContentDetails 2 -> 3。
func (s *Session) SubmitContentDetails(purpose, length, audience string) error {
	if s.state.Step != StepContentDetails {
		return ErrInvalidTransition
	}
	if err := required("purpose", purpose); err != nil {
		return err
	}
	if err := required("audience", audience); err != nil {
		return err
	}
	l, err := ParseLength(length)
	if err != nil {
		return err
	}
	s.state.Params.Purpose = strings.TrimSpace(purpose)
	s.state.Params.Length = l
	s.state.Params.Audience = strings.TrimSpace(audience)
	s.state.Step = StepStylePreferences
	return nil
}

// SubmitStylePreferences 3 -> 4，同步调用生成接口。失败时停留在第三步。
func (s *Session) SubmitStylePreferences(ctx context.Context, tone string) (GeneratedArticle, error) {
	if s.state.Step != StepStylePreferences {
		return GeneratedArticle{}, ErrInvalidTransition
	}
	t, err := ParseTone(tone)
	if err != nil {
		return GeneratedArticle{}, err
	}
	if !s.HasCredential() {
		return GeneratedArticle{}, ErrMissingCredential
	}

	params := s.state.Params
	params.Tone = t
	content, err := s.generator.Generate(ctx, params, s.credential)
	if err != nil {
		return GeneratedArticle{}, err
	}

	article := GeneratedArticle{
		ID:        s.newID(),
		Title:     params.Title,
		Content:   content,
		CreatedAt: s.now(),
		Metadata:  params,
	}
	s.state.Params = params
	s.state.Last = &article
	s.History.Append(article)
	s.state.Step = StepReviewExport
	return article, nil
}

// GoBack 2->1, 3->2, 4->3。4->3 保留已生成的稿件，用于改进。
func (s *Session) GoBack() error {
	switch s.state.Step {
	case StepContentDetails, StepStylePreferences, StepReviewExport:
		s.state.Step--
		return nil
	default:
		return ErrInvalidTransition
	}
}

// StartNew 4 -> 1，清空参数和当前稿件，历史保留。
func (s *Session) StartNew() error {
	if s.state.Step != StepReviewExport {
		return ErrInvalidTransition
	}
	s.state = WizardState{Step: StepBasicInfo}
	return nil
}

// EditCurrentArticle overwrites the current article and its history entry,
// matched by ID. An entry already deleted from history is not recreated.
func (s *Session) EditCurrentArticle(title, content string) error {
	if s.state.Last == nil {
		return ErrNoArticle
	}
	if err := required("title", title); err != nil {
		return err
	}
	s.state.Last.Title = strings.TrimSpace(title)
	s.state.Last.Content = content
	s.History.Update(s.state.Last.ID, s.state.Last.Title, content)
	return nil
}

// OpenArticle 从历史中载入一篇记事并跳到第四步。
func (s *Session) OpenArticle(id string) (GeneratedArticle, error) {
	a, ok := s.History.Get(id)
	if !ok {
		return GeneratedArticle{}, ErrArticleNotFound
	}
	s.state.Params = a.Metadata
	s.state.Last = &a
	s.state.Step = StepReviewExport
	return a, nil
}

// DeleteArticle 删除历史记录，当前稿件不受影响。
func (s *Session) DeleteArticle(id string) error {
	if !s.History.Remove(id) {
		return ErrArticleNotFound
	}
	return nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}
