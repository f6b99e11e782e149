package service

import (
	"testing"

	"github.com/lshigami/placement/internal/dto"
	"github.com/lshigami/placement/internal/model"
	"github.com/lshigami/placement/internal/repository"
	"github.com/lshigami/placement/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuestionServiceForTest(t *testing.T) (QuestionService, repository.QuestionRepository, *recordingCache) {
	t.Helper()
	repo := repository.NewQuestionRepository(testutil.NewSQLiteDB(t))
	cache := &recordingCache{}
	return NewQuestionService(repo, cache), repo, cache
}

func validRequest(text string) dto.CreateQuestionRequest {
	return dto.CreateQuestionRequest{
		Text:         text,
		Options:      []string{"am", "is", "are", "be"},
		CorrectIndex: 2,
	}
}

func TestCreateThenListReturnsFreshID(t *testing.T) {
	svc, _, _ := newQuestionServiceForTest(t)

	first, err := svc.CreateQuestion(validRequest("They ___ happy."))
	require.NoError(t, err)
	second, err := svc.CreateQuestion(validRequest("We ___ late."))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	list, err := svc.ListQuestions()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, dto.QuestionResponse{
		ID:           first.ID,
		Text:         "They ___ happy.",
		Options:      []string{"am", "is", "are", "be"},
		CorrectIndex: 2,
	}, list[0])
	assert.Equal(t, second.ID, list[1].ID)
}

func TestIDsAreNotReusedAfterDelete(t *testing.T) {
	svc, _, _ := newQuestionServiceForTest(t)

	a, err := svc.CreateQuestion(validRequest("a"))
	require.NoError(t, err)
	b, err := svc.CreateQuestion(validRequest("b"))
	require.NoError(t, err)
	require.NoError(t, svc.DeleteQuestion(b.ID))

	c, err := svc.CreateQuestion(validRequest("c"))
	require.NoError(t, err)
	assert.Greater(t, c.ID, b.ID)
	assert.Greater(t, b.ID, a.ID)
}

func TestCreateQuestionTrimsInput(t *testing.T) {
	svc, _, _ := newQuestionServiceForTest(t)

	_, err := svc.CreateQuestion(dto.CreateQuestionRequest{
		Text:         "  She ___ a doctor.  ",
		Options:      []string{" is ", "are", " am", "be "},
		CorrectIndex: 0,
	})
	require.NoError(t, err)

	list, err := svc.ListQuestions()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "She ___ a doctor.", list[0].Text)
	assert.Equal(t, []string{"is", "are", "am", "be"}, list[0].Options)
}

func TestCreateQuestionValidation(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateQuestionRequest
	}{
		{"three options", dto.CreateQuestionRequest{Text: "q", Options: []string{"a", "b", "c"}}},
		{"five options", dto.CreateQuestionRequest{Text: "q", Options: []string{"a", "b", "c", "d", "e"}}},
		{"negative index", dto.CreateQuestionRequest{Text: "q", Options: []string{"a", "b", "c", "d"}, CorrectIndex: -1}},
		{"index four", dto.CreateQuestionRequest{Text: "q", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 4}},
		{"blank text", dto.CreateQuestionRequest{Text: "   ", Options: []string{"a", "b", "c", "d"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newQuestionServiceForTest(t)

			_, err := svc.CreateQuestion(tt.req)
			assert.ErrorIs(t, err, ErrInvalidQuestion)

			n, err := repo.Count()
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestDeleteQuestion(t *testing.T) {
	svc, repo, _ := newQuestionServiceForTest(t)

	created, err := svc.CreateQuestion(validRequest("q"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteQuestion(created.ID))
	n, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteMissingQuestionIsNotFoundAndNoOp(t *testing.T) {
	svc, repo, _ := newQuestionServiceForTest(t)

	created, err := svc.CreateQuestion(validRequest("q"))
	require.NoError(t, err)

	err = svc.DeleteQuestion(created.ID + 100)
	assert.ErrorIs(t, err, ErrQuestionNotFound)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestListUsesAndRefreshesCache(t *testing.T) {
	svc, _, cache := newQuestionServiceForTest(t)

	_, err := svc.CreateQuestion(validRequest("q"))
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)

	_, err = svc.ListQuestions()
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// A hit is served without touching the store.
	cache.stored = []dto.QuestionResponse{{ID: 99, Text: "cached"}}
	list, err := svc.ListQuestions()
	require.NoError(t, err)
	assert.Equal(t, "cached", list[0].Text)
	assert.Equal(t, 1, cache.sets)
}

func TestWriteDuringListIsNotHiddenByCache(t *testing.T) {
	tests := []struct {
		name  string
		write func(t *testing.T, svc QuestionService, existing uint)
		want  int
	}{
		{"create", func(t *testing.T, svc QuestionService, _ uint) {
			_, err := svc.CreateQuestion(validRequest("added mid-list"))
			require.NoError(t, err)
		}, 2},
		{"delete", func(t *testing.T, svc QuestionService, existing uint) {
			require.NoError(t, svc.DeleteQuestion(existing))
		}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := repository.NewQuestionRepository(testutil.NewSQLiteDB(t))
			repo := &interleavingRepo{QuestionRepository: base}
			cache := &recordingCache{}
			svc := NewQuestionService(repo, cache)

			existing, err := svc.CreateQuestion(validRequest("existing"))
			require.NoError(t, err)

			repo.duringFindAll = func() { tt.write(t, svc, existing.ID) }
			stale, err := svc.ListQuestions()
			require.NoError(t, err)
			assert.Len(t, stale, 1)
			assert.Equal(t, 1, cache.staleSets)
			assert.False(t, cache.has)

			list, err := svc.ListQuestions()
			require.NoError(t, err)
			n, err := base.Count()
			require.NoError(t, err)
			assert.EqualValues(t, tt.want, n)
			assert.Len(t, list, tt.want)
		})
	}
}

func TestListEmptyStoreReturnsEmptySlice(t *testing.T) {
	svc, _, _ := newQuestionServiceForTest(t)

	list, err := svc.ListQuestions()
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestQuestionCheckConstraintRejectsOutOfRangeIndex(t *testing.T) {
	repo := repository.NewQuestionRepository(testutil.NewSQLiteDB(t))

	err := repo.Create(&model.Question{Text: "q", A: "a", B: "b", C: "c", D: "d", CorrectIndex: 7})
	assert.Error(t, err)
}
