package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lshigami/placement/internal/model"
	"github.com/lshigami/placement/internal/repository"
	"github.com/lshigami/placement/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSeed = `text,opt1,opt2,opt3,opt4,correctIndex
She ___ to school every day.,go,goes,going,gone,2

  I have lived here ___ 2010. , for , since , from , at , 2
Too few columns,a,b,c,1
Bad index,a,b,c,d,x
Index zero,a,b,c,d,0
Index five,a,b,c,d,5
Too,many,columns,a,b,c,1
 ,a,b,c,d,1
If I ___ you I would go.,am,was,were,be,3
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseSeed(t *testing.T) {
	questions, skipped, err := ParseSeed(strings.NewReader(sampleSeed))
	require.NoError(t, err)
	assert.Equal(t, 6, skipped)
	require.Len(t, questions, 3)

	assert.Equal(t, model.Question{
		Text: "She ___ to school every day.", A: "go", B: "goes", C: "going", D: "gone", CorrectIndex: 1,
	}, questions[0])
	assert.Equal(t, "I have lived here ___ 2010.", questions[1].Text)
	assert.Equal(t, []string{"for", "since", "from", "at"}, questions[1].Options())
	assert.Equal(t, 1, questions[1].CorrectIndex)
	assert.Equal(t, 2, questions[2].CorrectIndex)
}

func TestParseSeedHeaderOnly(t *testing.T) {
	questions, skipped, err := ParseSeed(strings.NewReader("text,opt1,opt2,opt3,opt4,correctIndex\n"))
	require.NoError(t, err)
	assert.Empty(t, questions)
	assert.Zero(t, skipped)
}

func TestParseSeedOverlongLineIsSkipped(t *testing.T) {
	long := strings.Repeat("x", 70*1024) + ",a,b,c,d,x"
	seed := "text,opt1,opt2,opt3,opt4,correctIndex\n" + long + "\nGood,a,b,c,d,1"

	questions, skipped, err := ParseSeed(strings.NewReader(seed))
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, questions, 1)
	assert.Equal(t, "Good", questions[0].Text)
	assert.Equal(t, 0, questions[0].CorrectIndex)
}

func TestParseSeedKeepsOverlongValidLine(t *testing.T) {
	prompt := strings.Repeat("y", 70*1024)
	seed := "text,opt1,opt2,opt3,opt4,correctIndex\r\n" + prompt + ",a,b,c,d,4\r\n"

	questions, skipped, err := ParseSeed(strings.NewReader(seed))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, questions, 1)
	assert.Equal(t, prompt, questions[0].Text)
	assert.Equal(t, 3, questions[0].CorrectIndex)
}

func TestSeedIfEmptyIsIdempotent(t *testing.T) {
	repo := repository.NewQuestionRepository(testutil.NewSQLiteDB(t))
	cache := &recordingCache{}
	seeder := NewSeedService(repo, cache)
	path := writeSeed(t, sampleSeed)

	report, err := seeder.SeedIfEmpty(path)
	require.NoError(t, err)
	assert.True(t, report.Ran)
	assert.Equal(t, 3, report.Inserted)
	assert.Equal(t, 6, report.Skipped)
	assert.Equal(t, 1, cache.invalidated)

	report, err = seeder.SeedIfEmpty(path)
	require.NoError(t, err)
	assert.False(t, report.Ran)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	questions, err := repo.FindAll()
	require.NoError(t, err)
	assert.Equal(t, "She ___ to school every day.", questions[0].Text)
}

func TestSeedSkipsNonEmptyStore(t *testing.T) {
	repo := repository.NewQuestionRepository(testutil.NewSQLiteDB(t))
	require.NoError(t, repo.Create(&model.Question{Text: "existing", A: "a", B: "b", C: "c", D: "d"}))

	report, err := NewSeedService(repo, &recordingCache{}).SeedIfEmpty(writeSeed(t, sampleSeed))
	require.NoError(t, err)
	assert.False(t, report.Ran)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestSeedMissingFileIsNoOp(t *testing.T) {
	repo := repository.NewQuestionRepository(testutil.NewSQLiteDB(t))

	report, err := NewSeedService(repo, &recordingCache{}).SeedIfEmpty(filepath.Join(t.TempDir(), "absent.csv"))
	require.NoError(t, err)
	assert.False(t, report.Ran)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}
