package socratic

import (
	"context"

	"github.com/kailas-cloud/socratic/internal/domain/conversation"
	"github.com/kailas-cloud/socratic/internal/domain/search/request"
	chatuc "github.com/kailas-cloud/socratic/internal/usecase/chat"
	healthuc "github.com/kailas-cloud/socratic/internal/usecase/health"
	searchuc "github.com/kailas-cloud/socratic/internal/usecase/search"
)

// --- projectUseCase mock ---

type mockProjectUC struct {
	createFn func(ctx context.Context, user, name string) (conversation.Project, error)
	getFn    func(ctx context.Context, user, name string) (conversation.Project, error)
	listFn   func(ctx context.Context, user string) ([]conversation.Project, error)
	deleteFn func(ctx context.Context, user, name string) error
	notesFn  func(ctx context.Context, user, name string) ([]conversation.Note, error)
}

func (m *mockProjectUC) Create(ctx context.Context, user, name string) (conversation.Project, error) {
	return m.createFn(ctx, user, name)
}

func (m *mockProjectUC) Get(ctx context.Context, user, name string) (conversation.Project, error) {
	return m.getFn(ctx, user, name)
}

func (m *mockProjectUC) List(ctx context.Context, user string) ([]conversation.Project, error) {
	return m.listFn(ctx, user)
}

func (m *mockProjectUC) Delete(ctx context.Context, user, name string) error {
	return m.deleteFn(ctx, user, name)
}

func (m *mockProjectUC) Notes(ctx context.Context, user, name string) ([]conversation.Note, error) {
	return m.notesFn(ctx, user, name)
}

// --- chatUseCase mock ---

type mockChatUC struct {
	sendFn      func(ctx context.Context, user, project, message string) (chatuc.Reply, error)
	nextStepFn  func(ctx context.Context, user, project string, step int) (chatuc.Reply, error)
	summarizeFn func(ctx context.Context, user, project string) (chatuc.Reply, error)
	reportFn    func(ctx context.Context, user, project string, force bool) (chatuc.Reply, error)
	resetFn     func(ctx context.Context, user, project string) error
	historyFn   func(ctx context.Context, user, project string) ([]conversation.Turn, error)
}

func (m *mockChatUC) Send(ctx context.Context, user, project, message string) (chatuc.Reply, error) {
	return m.sendFn(ctx, user, project, message)
}

func (m *mockChatUC) NextStep(ctx context.Context, user, project string, step int) (chatuc.Reply, error) {
	return m.nextStepFn(ctx, user, project, step)
}

func (m *mockChatUC) Summarize(ctx context.Context, user, project string) (chatuc.Reply, error) {
	return m.summarizeFn(ctx, user, project)
}

func (m *mockChatUC) Report(ctx context.Context, user, project string, force bool) (chatuc.Reply, error) {
	return m.reportFn(ctx, user, project, force)
}

func (m *mockChatUC) Reset(ctx context.Context, user, project string) error {
	return m.resetFn(ctx, user, project)
}

func (m *mockChatUC) History(ctx context.Context, user, project string) ([]conversation.Turn, error) {
	return m.historyFn(ctx, user, project)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, user string, req *request.Request) (searchuc.Response, error)
}

func (m *mockSearchUC) Search(ctx context.Context, user string, req *request.Request) (searchuc.Response, error) {
	return m.searchFn(ctx, user, req)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}

// --- public Embedder / Completer fakes ---

type mockEmbedder struct {
	fn func(ctx context.Context, text string) (EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	return m.fn(ctx, text)
}

type mockCompleter struct {
	fn func(ctx context.Context, system string, history []Turn) (string, error)
}

func (m *mockCompleter) Complete(ctx context.Context, system string, history []Turn) (string, error) {
	return m.fn(ctx, system, history)
}

func testClient(p projectUseCase, c chatUseCase, s searchUseCase) *Client {
	return &Client{
		projectSvc: p,
		chatSvc:    c,
		searchSvc:  s,
		healthSvc:  &mockHealthUC{},
	}
}
