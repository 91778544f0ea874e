package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/socratic/internal/domain"
	"github.com/kailas-cloud/socratic/internal/domain/conversation"
	"github.com/kailas-cloud/socratic/internal/domain/search/mode"
	"github.com/kailas-cloud/socratic/internal/domain/search/request"
)

// DefaultReferenceLimit is how many past hits are attached when a message refers back.
const DefaultReferenceLimit = 3

// ReportNote is the memory note holding the project report.
const ReportNote = "report.md"

const summaryTimeLayout = "20060102T150405Z"

// Reply is the assistant's answer to one exchange.
type Reply struct {
	Content    string
	Step       int    // set by NextStep
	Note       string // memory note file written by Summarize or Report
	References int    // past hits attached to the system prompt
	Cached     bool   // Report returned the stored note
}

// Service runs the Socratic planning dialogue of one project at a time.
type Service struct {
	ws             Workspace
	completer      Completer
	searcher       Searcher
	referenceLimit int
	logger         *zap.Logger
	now            func() time.Time
}

// New creates a chat service. searcher may be nil to disable previous-conversation lookups.
func New(ws Workspace, completer Completer, searcher Searcher, referenceLimit int, logger *zap.Logger) *Service {
	if referenceLimit <= 0 {
		referenceLimit = DefaultReferenceLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ws:             ws,
		completer:      completer,
		searcher:       searcher,
		referenceLimit: referenceLimit,
		logger:         logger,
		now:            time.Now,
	}
}

// Send forwards a user message and returns the assistant's answer.
func (s *Service) Send(ctx context.Context, user, project, message string) (Reply, error) {
	if strings.TrimSpace(message) == "" {
		return Reply{}, domain.ErrEmptyMessage
	}
	return s.exchange(ctx, user, project, message, true)
}

// NextStep asks the assistant to move the dialogue to step 2 or 3.
func (s *Service) NextStep(ctx context.Context, user, project string, step int) (Reply, error) {
	var command string
	switch step {
	case 2:
		command = CommandStep2
	case 3:
		command = CommandStep3
	default:
		return Reply{}, fmt.Errorf("step %d: %w", step, domain.ErrInvalidStep)
	}

	reply, err := s.exchange(ctx, user, project, command, false)
	if err != nil {
		return Reply{}, err
	}
	reply.Step = step
	return reply, nil
}

// Summarize asks for the final summary and stores it as a memory note.
func (s *Service) Summarize(ctx context.Context, user, project string) (Reply, error) {
	reply, err := s.exchange(ctx, user, project, CommandSummarize, false)
	if err != nil {
		return Reply{}, err
	}

	note := conversation.Note{
		File:    "summary-" + s.now().UTC().Format(summaryTimeLayout) + ".md",
		Content: reply.Content,
	}
	if err := s.ws.WriteNote(ctx, user, project, note); err != nil {
		return Reply{}, fmt.Errorf("write summary note: %w", err)
	}
	reply.Note = note.File
	return reply, nil
}

// Report returns the project's report note, writing it first when there is none or
// force is set. The report is derived from the conversation and is not logged as turns.
func (s *Service) Report(ctx context.Context, user, project string, force bool) (Reply, error) {
	if !force {
		notes, err := s.ws.ReadNotes(ctx, user, project)
		if err != nil {
			return Reply{}, fmt.Errorf("read notes: %w", err)
		}
		for _, n := range notes {
			if n.File == ReportNote {
				return Reply{Content: n.Content, Note: n.File, Cached: true}, nil
			}
		}
	}

	transcript, err := s.ws.ReadTurns(ctx, user, project)
	if err != nil {
		return Reply{}, fmt.Errorf("read turns: %w", err)
	}
	history := append(transcript.Turns, conversation.NewTurn(conversation.RoleUser, CommandReport))

	content, err := s.completer.Complete(ctx, ReportPrompt, history)
	if err != nil {
		return Reply{}, fmt.Errorf("complete: %w", err)
	}

	note := conversation.Note{File: ReportNote, Content: content}
	if err := s.ws.WriteNote(ctx, user, project, note); err != nil {
		return Reply{}, fmt.Errorf("write report note: %w", err)
	}
	return Reply{Content: content, Note: note.File}, nil
}

// Reset clears the project's conversation. Memory notes are kept.
func (s *Service) Reset(ctx context.Context, user, project string) error {
	if err := s.ws.ResetTurns(ctx, user, project); err != nil {
		return fmt.Errorf("reset turns: %w", err)
	}
	return nil
}

// History returns the project's conversation.
func (s *Service) History(ctx context.Context, user, project string) ([]conversation.Turn, error) {
	transcript, err := s.ws.ReadTurns(ctx, user, project)
	if err != nil {
		return nil, fmt.Errorf("read turns: %w", err)
	}
	return transcript.Turns, nil
}

// exchange logs the user turn, asks the model with the full history and logs the answer.
// A failed completion leaves the user turn in the log.
func (s *Service) exchange(
	ctx context.Context, user, project, message string, withReferences bool,
) (Reply, error) {
	system := SystemPrompt
	var refs int
	// Looked up before the message is logged, so it cannot come back as its own reference.
	if withReferences && DetectPreviousReference(message) {
		var appendix string
		appendix, refs = s.references(ctx, user, message)
		system += appendix
	}

	transcript, err := s.ws.AppendAndRead(ctx, user, project, conversation.NewTurn(conversation.RoleUser, message))
	if err != nil {
		return Reply{}, fmt.Errorf("append user turn: %w", err)
	}

	content, err := s.completer.Complete(ctx, system, transcript.Turns)
	if err != nil {
		return Reply{}, fmt.Errorf("complete: %w", err)
	}

	if err := s.ws.AppendTurns(ctx, user, project, conversation.NewTurn(conversation.RoleAssistant, content)); err != nil {
		return Reply{}, fmt.Errorf("append assistant turn: %w", err)
	}

	return Reply{Content: content, References: refs}, nil
}

// references searches the user's corpus for message. Failures only cost the context.
func (s *Service) references(ctx context.Context, user, message string) (string, int) {
	if s.searcher == nil {
		return "", 0
	}

	req, err := request.New(message, mode.Hybrid, s.referenceLimit)
	if err != nil {
		return "", 0
	}
	resp, err := s.searcher.Search(ctx, user, &req)
	if err != nil {
		s.logger.Warn("Previous conversation lookup failed", zap.String("user", user), zap.Error(err))
		return "", 0
	}
	return formatReferences(resp.Results), len(resp.Results)
}
