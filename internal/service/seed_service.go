package service

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/lshigami/placement/internal/model"
	"github.com/lshigami/placement/internal/repository"
	"github.com/rs/zerolog/log"
)

// Seed file columns: text,opt1,opt2,opt3,opt4,correctIndex (1-based).
const seedColumns = 2 + model.OptionCount

type SeedReport struct {
	Inserted int
	Skipped  int
	// Ran is false when the store already had questions or there was no file.
	Ran bool
}

type SeedService interface {
	SeedIfEmpty(path string) (*SeedReport, error)
}

type seedService struct {
	repo  repository.QuestionRepository
	cache QuestionCache
}

func NewSeedService(repo repository.QuestionRepository, cache QuestionCache) SeedService {
	return &seedService{repo: repo, cache: cache}
}

// SeedIfEmpty loads the seed file into an empty question store. It is gated
// on the store being empty, so a second run is a no-op.
func (s *seedService) SeedIfEmpty(path string) (*SeedReport, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info().Str("path", path).Msg("No seed file, skipping seeding")
			return &SeedReport{}, nil
		}
		return nil, fmt.Errorf("failed to open seed file %s: %w", path, err)
	}
	defer f.Close()

	count, err := s.repo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}
	if count > 0 {
		log.Info().Int64("questions", count).Msg("Question store not empty, skipping seeding")
		return &SeedReport{}, nil
	}

	questions, skipped, err := ParseSeed(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	if err := s.repo.CreateAll(questions); err != nil {
		log.Error().Err(err).Msg("Seed transaction failed")
		return nil, fmt.Errorf("failed to insert seed questions: %w", err)
	}
	s.cache.Invalidate()

	report := &SeedReport{Inserted: len(questions), Skipped: skipped, Ran: true}
	log.Info().Str("path", path).Int("inserted", report.Inserted).Int("skipped", report.Skipped).Msg("Seeded questions")
	return report, nil
}

// ParseSeed reads seed lines after the header. Fields are split on literal
// commas, so quoted commas are not supported. Lines have no length limit.
// Malformed lines are counted in skipped and otherwise ignored; only read
// errors are returned.
func ParseSeed(r io.Reader) (questions []model.Question, skipped int, err error) {
	reader := bufio.NewReader(r)
	lineNo := 0
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, skipped, readErr
		}
		if readErr != nil && line == "" {
			break
		}
		lineNo++

		line = strings.TrimRight(line, "\r\n")
		switch {
		case lineNo == 1:
			// header
		case strings.TrimSpace(line) == "":
		default:
			if q, err := parseSeedLine(line); err != nil {
				log.Debug().Err(err).Int("line", lineNo).Msg("Skipping malformed seed line")
				skipped++
			} else {
				questions = append(questions, *q)
			}
		}

		if readErr != nil {
			break
		}
	}
	return questions, skipped, nil
}

func parseSeedLine(line string) (*model.Question, error) {
	parts := strings.Split(line, ",")
	if len(parts) != seedColumns {
		return nil, fmt.Errorf("expected %d columns, got %d", seedColumns, len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	oneBased, err := strconv.Atoi(parts[seedColumns-1])
	if err != nil {
		return nil, fmt.Errorf("unparsable correct index %q: %w", parts[seedColumns-1], err)
	}
	return newQuestion(parts[0], parts[1:seedColumns-1], oneBased-1)
}
