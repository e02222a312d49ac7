package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitllm/git-llm-commit/internal/apperr"
	"github.com/gitllm/git-llm-commit/internal/config"
	llmpkg "github.com/gitllm/git-llm-commit/internal/llm"
)

// mockExecutor is a stub git.Executor
type mockExecutor struct {
	diff      string
	status    string
	committed []string
}

func (m *mockExecutor) DiffCached(ctx context.Context) (string, error)     { return m.diff, nil }
func (m *mockExecutor) StagedFiles(ctx context.Context) ([]string, error)  { return nil, nil }
func (m *mockExecutor) Status(ctx context.Context) (string, error)         { return m.status, nil }
func (m *mockExecutor) Editor(ctx context.Context) (string, error)         { return "true", nil }
func (m *mockExecutor) CurrentBranch(ctx context.Context) (string, error)  { return "main", nil }
func (m *mockExecutor) Commit(ctx context.Context, message string) error {
	m.committed = append(m.committed, message)
	return nil
}

// mockChatModel is a stubbed eino ChatModel recording what it was sent
type mockChatModel struct {
	response *schema.Message
	err      error

	calls       int
	gotMessages []*schema.Message
	gotOptions  *model.Options
}

func (m *mockChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.calls++
	m.gotMessages = input
	m.gotOptions = model.GetCommonOptions(&model.Options{}, opts...)
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func (m *mockChatModel) BindTools(tools []*schema.ToolInfo) error { return nil }

// mockProvider is a stub llm.Provider handing out a fixed chat model
type mockProvider struct {
	chatModel   *mockChatModel
	createCalls int
}

func (m *mockProvider) Name() string                   { return "mock" }
func (m *mockProvider) GetConfig() config.ModelConfig  { return config.ModelConfig{Model: "mock-model"} }
func (m *mockProvider) CreateChatModel(ctx context.Context) (model.ChatModel, error) {
	m.createCalls++
	return m.chatModel, nil
}

var _ llmpkg.Provider = (*mockProvider)(nil)

func textResponse(content string) *schema.Message {
	return &schema.Message{
		Role:    schema.Assistant,
		Content: content,
		ResponseMeta: &schema.ResponseMeta{
			Usage: &schema.TokenUsage{PromptTokens: 100, CompletionTokens: 20, TotalTokens: 120},
		},
	}
}

func newTestGenerator(t *testing.T, exec *mockExecutor, chat *mockChatModel, cfg *config.CommitConfig) (*Generator, *mockProvider) {
	t.Helper()

	provider := &mockProvider{chatModel: chat}
	gen, err := New(Options{
		GitExecutor: exec,
		LLMProvider: provider,
		Commit:      cfg,
	})
	require.NoError(t, err)
	return gen, provider
}

func TestGenerator_Generate(t *testing.T) {
	exec := &mockExecutor{diff: sampleDiff, status: "On branch main"}
	chat := &mockChatModel{response: textResponse("feat(auth): add token refresh")}
	gen, _ := newTestGenerator(t, exec, chat, nil)

	resp, err := gen.Generate(context.Background(), Request{Language: "en"})
	require.NoError(t, err)

	assert.Equal(t, "feat(auth): add token refresh", resp.Message)
	assert.Equal(t, "feat", resp.Commit.Type)
	assert.Equal(t, "auth", resp.Commit.Scope)
	assert.False(t, resp.Truncated)
	assert.Equal(t, 100, resp.PromptTokens)
	assert.Equal(t, 20, resp.CompletionTokens)
	assert.Equal(t, 120, resp.TotalTokens)
}

func TestGenerator_Generate_PromptContainsDiffVerbatim(t *testing.T) {
	exec := &mockExecutor{diff: sampleDiff, status: "On branch main"}
	chat := &mockChatModel{response: textResponse("fix: adjust test diff")}
	gen, _ := newTestGenerator(t, exec, chat, nil)

	_, err := gen.Generate(context.Background(), Request{})
	require.NoError(t, err)

	require.Len(t, chat.gotMessages, 2)
	assert.Equal(t, schema.System, chat.gotMessages[0].Role)
	assert.Equal(t, schema.User, chat.gotMessages[1].Role)
	assert.Contains(t, chat.gotMessages[1].Content, sampleDiff)
	assert.Contains(t, chat.gotMessages[1].Content, "On branch main")
	assert.Contains(t, chat.gotMessages[1].Content, "Current branch: main")
	assert.Contains(t, chat.gotMessages[0].Content, "English (en)")
}

func TestGenerator_Generate_MultiParagraphRoundTrip(t *testing.T) {
	raw := "feat(api): add pagination\n\n" +
		"First paragraph.\n\n" +
		"Second paragraph.\n\n" +
		"BREAKING CHANGE: page param renamed"

	exec := &mockExecutor{diff: sampleDiff}
	chat := &mockChatModel{response: textResponse(raw)}
	gen, _ := newTestGenerator(t, exec, chat, nil)

	resp, err := gen.Generate(context.Background(), Request{})
	require.NoError(t, err)

	assert.Equal(t, raw, resp.Message, "paragraph breaks and footer must reach git intact")
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", resp.Commit.Body)
	assert.Equal(t, "BREAKING CHANGE: page param renamed", resp.Commit.Footer)
}

func TestGenerator_Generate_ModelOptions(t *testing.T) {
	cfg := config.DefaultCommitConfig()
	cfg.Temperature = 0.3

	exec := &mockExecutor{diff: sampleDiff}
	chat := &mockChatModel{response: textResponse("fix: small change")}
	gen, _ := newTestGenerator(t, exec, chat, cfg)

	_, err := gen.Generate(context.Background(), Request{})
	require.NoError(t, err)

	require.NotNil(t, chat.gotOptions)
	require.NotNil(t, chat.gotOptions.Temperature)
	assert.InDelta(t, 0.3, float64(*chat.gotOptions.Temperature), 0.001)
	require.NotNil(t, chat.gotOptions.MaxTokens)
	// sampleDiff is a small change
	assert.Equal(t, cfg.SmallChangeTokens, *chat.gotOptions.MaxTokens)
}

func TestGenerator_Generate_NoStagedChanges(t *testing.T) {
	exec := &mockExecutor{diff: ""}
	chat := &mockChatModel{response: textResponse("feat: never used")}
	gen, provider := newTestGenerator(t, exec, chat, nil)

	_, err := gen.Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNoStagedChanges))

	// No model is even constructed, let alone called
	assert.Zero(t, provider.createCalls)
	assert.Zero(t, chat.calls)
}

func TestGenerator_Generate_FencedResponse(t *testing.T) {
	exec := &mockExecutor{diff: sampleDiff}
	chat := &mockChatModel{response: textResponse("```\nfix: correct off-by-one error\n```")}
	gen, _ := newTestGenerator(t, exec, chat, nil)

	resp, err := gen.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "fix: correct off-by-one error", resp.Message)
}

func TestGenerator_Generate_EmptyResponse(t *testing.T) {
	exec := &mockExecutor{diff: sampleDiff}
	chat := &mockChatModel{response: textResponse("   \n")}
	gen, _ := newTestGenerator(t, exec, chat, nil)

	_, err := gen.Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindEmptyResponse))
}

func TestGenerator_Generate_ServiceError(t *testing.T) {
	exec := &mockExecutor{diff: sampleDiff}
	chat := &mockChatModel{err: errors.New("model is overloaded")}
	gen, _ := newTestGenerator(t, exec, chat, nil)

	_, err := gen.Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindServiceError))
}

func TestGenerator_Generate_AuthErrorFromService(t *testing.T) {
	exec := &mockExecutor{diff: sampleDiff}
	chat := &mockChatModel{err: errors.New("status code: 401, message: Incorrect API key provided")}
	gen, _ := newTestGenerator(t, exec, chat, nil)

	_, err := gen.Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthenticationFailed))
}

func TestGenerator_Generate_DiffTooLarge(t *testing.T) {
	cfg := config.DefaultCommitConfig()
	cfg.MaxDiffBytes = 10
	cfg.FailOnLargeDiff = true

	exec := &mockExecutor{diff: sampleDiff}
	chat := &mockChatModel{response: textResponse("feat: never used")}
	gen, provider := newTestGenerator(t, exec, chat, cfg)

	_, err := gen.Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindDiffTooLarge))
	assert.Zero(t, provider.createCalls)
}

func TestGenerator_Generate_TruncatesLargeDiff(t *testing.T) {
	cfg := config.DefaultCommitConfig()
	cfg.MaxDiffBytes = 40

	exec := &mockExecutor{diff: "+line one\n+line two\n+line three\n+line four\n+line five"}
	chat := &mockChatModel{response: textResponse("feat: add lines")}
	gen, _ := newTestGenerator(t, exec, chat, cfg)

	resp, err := gen.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.True(t, resp.Truncated)
	assert.Contains(t, chat.gotMessages[1].Content, truncationMarker)
	assert.NotContains(t, chat.gotMessages[1].Content, "+line five")
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	_, err = New(Options{GitExecutor: &mockExecutor{}})
	assert.Error(t, err)
}
