package socratic

import (
	"context"
	"fmt"
	"time"
)

// ChatService runs the Socratic dialogue of one project.
type ChatService struct {
	user    string
	project string
	svc     chatUseCase
	obs     *observer
}

// Send appends a user message and returns the assistant's answer.
// Messages that refer to earlier conversations get related past hits as context.
func (s *ChatService) Send(ctx context.Context, message string) (_ Reply, err error) {
	start := time.Now()
	defer func() { s.obs.observe("chat_send", start, err) }()

	r, err := s.svc.Send(ctx, s.user, s.project, message)
	if err != nil {
		return Reply{}, fmt.Errorf("send: %w", err)
	}
	return fromInternalReply(r), nil
}

// NextStep moves the dialogue to step 2 or 3.
func (s *ChatService) NextStep(ctx context.Context, step int) (_ Reply, err error) {
	start := time.Now()
	defer func() { s.obs.observe("chat_next_step", start, err) }()

	r, err := s.svc.NextStep(ctx, s.user, s.project, step)
	if err != nil {
		return Reply{}, fmt.Errorf("next step: %w", err)
	}
	return fromInternalReply(r), nil
}

// Summarize asks for the final summary and stores it as a memory note.
func (s *ChatService) Summarize(ctx context.Context) (_ Reply, err error) {
	start := time.Now()
	defer func() { s.obs.observe("chat_summarize", start, err) }()

	r, err := s.svc.Summarize(ctx, s.user, s.project)
	if err != nil {
		return Reply{}, fmt.Errorf("summarize: %w", err)
	}
	return fromInternalReply(r), nil
}

// Report returns the project report, generating it when none is stored or force is set.
func (s *ChatService) Report(ctx context.Context, force bool) (_ Reply, err error) {
	start := time.Now()
	defer func() { s.obs.observe("chat_report", start, err) }()

	r, err := s.svc.Report(ctx, s.user, s.project, force)
	if err != nil {
		return Reply{}, fmt.Errorf("report: %w", err)
	}
	return fromInternalReply(r), nil
}

// Reset clears the conversation. Memory notes are kept.
func (s *ChatService) Reset(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("chat_reset", start, err) }()

	if err = s.svc.Reset(ctx, s.user, s.project); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}

// History returns the conversation in order.
func (s *ChatService) History(ctx context.Context) (_ []Turn, err error) {
	start := time.Now()
	defer func() { s.obs.observe("chat_history", start, err) }()

	turns, err := s.svc.History(ctx, s.user, s.project)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return fromInternalTurns(turns), nil
}
