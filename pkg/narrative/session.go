package narrative

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	roleUser  = "user"
	roleModel = "model"
)

// Exchange is one question and its answer within a session.
type Exchange struct {
	Question string
	Answer   string
}

// Session is a multi-turn conversation grounded in one symbol's
// analysis context. The context is replayed as the opening turn of
// every request so follow-up questions stay anchored to the data.
type Session struct {
	id      uuid.UUID
	client  *Client
	context string
	history []Exchange
}

// NewSession opens a session over an analysis context built by
// BuildContext.
func (c *Client) NewSession(analysisContext string) *Session {
	return &Session{
		id:      uuid.New(),
		client:  c,
		context: analysisContext,
	}
}

// ID returns the session's identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// History returns the completed exchanges in order.
func (s *Session) History() []Exchange {
	return s.history
}

// Ask sends a question and records the exchange. A failed turn leaves
// the history untouched.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	contents := make([]content, 0, 2*len(s.history)+2)
	contents = append(contents, content{Role: roleUser, Parts: []part{{Text: s.context}}})

	for _, exchange := range s.history {
		contents = append(contents,
			content{Role: roleUser, Parts: []part{{Text: exchange.Question}}},
			content{Role: roleModel, Parts: []part{{Text: exchange.Answer}}},
		)
	}

	contents = append(contents, content{Role: roleUser, Parts: []part{{Text: question}}})

	answer, err := s.client.generate(ctx, contents)
	if err != nil {
		return "", err
	}

	s.history = append(s.history, Exchange{Question: question, Answer: answer})
	s.client.logger.Debug("session turn complete",
		zap.String("session_id", s.id.String()), zap.Int("turns", len(s.history)))

	return answer, nil
}
