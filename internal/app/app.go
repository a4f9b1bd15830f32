package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glabrego/stackq-cli/internal/stackexchange"
)

// ErrNoResults is returned by Search when the query matched nothing.
var ErrNoResults = errors.New("no results")

type QAClient interface {
	SearchQuestions(ctx context.Context, query string) ([]stackexchange.Question, error)
	ListAnswers(ctx context.Context, questionID int64) ([]stackexchange.Answer, error)
}

type Service struct {
	client QAClient
}

func NewService(client QAClient) *Service {
	return &Service{client: client}
}

// Search fetches the single page of questions for query. An empty result set
// is reported as ErrNoResults so callers can refuse to start a session.
func (s *Service) Search(ctx context.Context, query string) ([]stackexchange.Question, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("search query is required")
	}
	questions, err := s.client.SearchQuestions(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch questions from stack exchange: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("query %q: %w", query, ErrNoResults)
	}
	return questions, nil
}

func (s *Service) Answers(ctx context.Context, questionID int64) ([]stackexchange.Answer, error) {
	answers, err := s.client.ListAnswers(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("fetch answers for question %d: %w", questionID, err)
	}
	return answers, nil
}
