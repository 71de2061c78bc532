package generator

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	text   string
	err    error
	params []ArticleParameters
	creds  []string
}

func (f *fakeGenerator) Generate(_ context.Context, params ArticleParameters, credential string) (string, error) {
	f.params = append(f.params, params)
	f.creds = append(f.creds, credential)
	return f.text, f.err
}

func newTestSession(gen ArticleGenerator) *Session {
	s := NewSession("s1", gen)
	var n int
	s.newID = func() string {
		n++
		return fmt.Sprintf("a%d", n)
	}
	s.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	return s
}

// toStyle drives a session to the style step with the coffee parameters.
func toStyle(t *testing.T, s *Session) {
	t.Helper()
	require.NoError(t, s.SubmitBasicInfo("Best Coffee", "coffee, brewing", ""))
	require.NoError(t, s.SubmitContentDetails("educate readers", "standard", "home baristas"))
	require.Equal(t, StepStylePreferences, s.Step())
}

func TestSession_EndToEnd(t *testing.T) {
	gen := &fakeGenerator{text: "## Intro\n..."}
	s := newTestSession(gen)
	s.SetCredential("valid-key")
	toStyle(t, s)

	article, err := s.SubmitStylePreferences(context.Background(), "casual")
	require.NoError(t, err)

	st := s.State()
	assert.Equal(t, StepReviewExport, st.Step)
	require.NotNil(t, st.Last)
	assert.Equal(t, "Best Coffee", st.Last.Title)
	assert.Equal(t, "## Intro\n...", st.Last.Content)
	assert.Equal(t, 1, s.History.Len())
	assert.Equal(t, article, s.History.List()[0])

	require.Len(t, gen.params, 1)
	assert.Equal(t, ArticleParameters{
		Title:        "Best Coffee",
		MainKeywords: "coffee, brewing",
		Purpose:      "educate readers",
		Length:       LengthStandard,
		Audience:     "home baristas",
		Tone:         ToneCasual,
	}, gen.params[0])
	assert.Equal(t, gen.params[0], article.Metadata)
	assert.Equal(t, []string{"valid-key"}, gen.creds)
}

func TestSession_BasicInfoValidation(t *testing.T) {
	s := newTestSession(&fakeGenerator{})

	err := s.SubmitBasicInfo("", "kw", "")
	assert.True(t, IsValidation(err))
	assert.Equal(t, StepBasicInfo, s.Step())

	err = s.SubmitBasicInfo("T", "  ", "")
	assert.True(t, IsValidation(err))
	assert.Equal(t, StepBasicInfo, s.Step())

	require.NoError(t, s.SubmitBasicInfo("T", "kw", ""))
	assert.Equal(t, StepContentDetails, s.Step())
}

func TestSession_ContentDetailsValidation(t *testing.T) {
	s := newTestSession(&fakeGenerator{})
	require.NoError(t, s.SubmitBasicInfo("T", "kw", ""))

	assert.True(t, IsValidation(s.SubmitContentDetails("", "short", "a")))
	assert.True(t, IsValidation(s.SubmitContentDetails("p", "short", "")))
	assert.True(t, IsValidation(s.SubmitContentDetails("p", "huge", "a")))
	assert.Equal(t, StepContentDetails, s.Step())
	assert.Empty(t, s.State().Params.Purpose)

	require.NoError(t, s.SubmitContentDetails("p", "detailed", "a"))
	assert.Equal(t, LengthDetailed, s.State().Params.Length)
}

func TestSession_MissingCredential(t *testing.T) {
	gen := &fakeGenerator{text: "x"}
	s := newTestSession(gen)
	toStyle(t, s)

	_, err := s.SubmitStylePreferences(context.Background(), "formal")
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, StepStylePreferences, s.Step())
	assert.Empty(t, gen.params)
}

func TestSession_GenerationFailureStaysOnStyle(t *testing.T) {
	gen := &fakeGenerator{err: &GenerationError{Kind: KindAuthentication, Message: "bad key"}}
	s := newTestSession(gen)
	s.SetCredential("bad")
	toStyle(t, s)

	_, err := s.SubmitStylePreferences(context.Background(), "casual")
	genErr, ok := AsGenerationError(err)
	require.True(t, ok)
	assert.Equal(t, KindAuthentication, genErr.Kind)
	assert.Equal(t, StepStylePreferences, s.Step())
	assert.Nil(t, s.State().Last)
	assert.Zero(t, s.History.Len())

	// 换凭证后重试，下一次调用生效。
	gen.err = nil
	gen.text = "ok"
	s.SetCredential("good")
	_, err = s.SubmitStylePreferences(context.Background(), "casual")
	require.NoError(t, err)
	assert.Equal(t, []string{"bad", "good"}, gen.creds)
}

func TestSession_GoBackAndStartNew(t *testing.T) {
	s := newTestSession(&fakeGenerator{text: "body"})
	s.SetCredential("k")

	assert.ErrorIs(t, s.GoBack(), ErrInvalidTransition)
	assert.ErrorIs(t, s.StartNew(), ErrInvalidTransition)

	toStyle(t, s)
	require.NoError(t, s.GoBack())
	assert.Equal(t, StepContentDetails, s.Step())
	require.NoError(t, s.GoBack())
	assert.Equal(t, StepBasicInfo, s.Step())

	require.NoError(t, s.SubmitBasicInfo("Best Coffee", "coffee", ""))
	require.NoError(t, s.SubmitContentDetails("p", "", "a"))
	_, err := s.SubmitStylePreferences(context.Background(), "")
	require.NoError(t, err)

	require.NoError(t, s.GoBack())
	assert.Equal(t, StepStylePreferences, s.Step())
	require.NotNil(t, s.State().Last, "going back to improve keeps the article")

	_, err = s.SubmitStylePreferences(context.Background(), "expert")
	require.NoError(t, err)
	assert.Equal(t, 2, s.History.Len())

	require.NoError(t, s.StartNew())
	st := s.State()
	assert.Equal(t, StepBasicInfo, st.Step)
	assert.Nil(t, st.Last)
	assert.Equal(t, ArticleParameters{}, st.Params)
	assert.Equal(t, 2, s.History.Len())
}

func TestSession_WrongStep(t *testing.T) {
	s := newTestSession(&fakeGenerator{})
	assert.ErrorIs(t, s.SubmitContentDetails("p", "", "a"), ErrInvalidTransition)
	_, err := s.SubmitStylePreferences(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSession_EditMatchesByID(t *testing.T) {
	s := newTestSession(&fakeGenerator{text: "body"})
	s.SetCredential("k")

	// two articles with the same title
	for i := 0; i < 2; i++ {
		toStyle(t, s)
		_, err := s.SubmitStylePreferences(context.Background(), "")
		require.NoError(t, err)
		if i == 0 {
			require.NoError(t, s.StartNew())
		}
	}

	assert.True(t, IsValidation(s.EditCurrentArticle(" ", "x")))

	require.NoError(t, s.EditCurrentArticle("Better Coffee", "new body"))
	assert.Equal(t, "Better Coffee", s.State().Last.Title)

	list := s.History.List()
	assert.Equal(t, "Best Coffee", list[0].Title)
	assert.Equal(t, "body", list[0].Content)
	assert.Equal(t, "Better Coffee", list[1].Title)
	assert.Equal(t, "new body", list[1].Content)

	// a second edit still finds the entry although the title changed
	require.NoError(t, s.EditCurrentArticle("Best Coffee Ever", "v3"))
	assert.Equal(t, "Best Coffee Ever", s.History.List()[1].Title)
}

func TestSession_EditWithoutArticle(t *testing.T) {
	s := newTestSession(&fakeGenerator{})
	assert.ErrorIs(t, s.EditCurrentArticle("t", "c"), ErrNoArticle)
}

func TestSession_OpenAndDeleteArticle(t *testing.T) {
	s := newTestSession(&fakeGenerator{text: "body"})
	s.SetCredential("k")
	toStyle(t, s)
	first, err := s.SubmitStylePreferences(context.Background(), "")
	require.NoError(t, err)
	require.NoError(t, s.StartNew())

	opened, err := s.OpenArticle(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, opened)
	assert.Equal(t, StepReviewExport, s.Step())
	assert.Equal(t, first.Metadata, s.State().Params)

	_, err = s.OpenArticle("missing")
	assert.True(t, errors.Is(err, ErrArticleNotFound))

	require.NoError(t, s.DeleteArticle(first.ID))
	assert.Zero(t, s.History.Len())
	assert.NotNil(t, s.State().Last)
	assert.ErrorIs(t, s.DeleteArticle(first.ID), ErrArticleNotFound)

	// editing an article whose history entry is gone only touches the current copy
	require.NoError(t, s.EditCurrentArticle("t", "c"))
	assert.Zero(t, s.History.Len())
}

func TestSession_StateIsSnapshot(t *testing.T) {
	s := newTestSession(&fakeGenerator{text: "body"})
	s.SetCredential("k")
	toStyle(t, s)
	_, err := s.SubmitStylePreferences(context.Background(), "")
	require.NoError(t, err)

	st := s.State()
	st.Last.Title = "changed"
	assert.Equal(t, "Best Coffee", s.State().Last.Title)
}
