package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tigerkid/repoinsight/internal/agent"
	"github.com/tigerkid/repoinsight/internal/config"
	"github.com/tigerkid/repoinsight/internal/docgen"
	"github.com/tigerkid/repoinsight/internal/git"
	"github.com/tigerkid/repoinsight/internal/index"
	"github.com/tigerkid/repoinsight/internal/models"
	"github.com/tigerkid/repoinsight/internal/router"
	"github.com/tigerkid/repoinsight/internal/session"
)

// ErrNotFound marks lookups of repositories or sessions that do not exist,
// distinguishing them from readiness conflicts.
var ErrNotFound = errors.New("not found")

// Completer is the LLM surface the service needs, satisfied by llm.Client.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
	CompleteJSON(ctx context.Context, system, user string, out any) error
}

type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// repoState is everything the service holds for one analyzed repository.
// Artifacts are session-lifetime: the next Analyze overwrites them.
type repoState struct {
	repo    models.Repository
	index   *index.Index
	router  *router.Router
	guide   models.Artifact
	apiDocs models.Artifact
}

type Service struct {
	cfg      *config.Config
	gitSvc   *git.Service
	builder  *index.Builder
	llm      Completer
	embedder Embedder
	chat     *agent.Service
	sessions *session.Store
	logger   *slog.Logger

	mu    sync.RWMutex
	repos map[string]*repoState
}

func NewService(cfg *config.Config, llmClient Completer, embedder Embedder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	store := index.NewStore(cfg.StorageDir)
	return &Service{
		cfg:      cfg,
		gitSvc:   git.NewService(cfg.ReposDir),
		builder:  index.NewBuilder(store, embedder, logger),
		llm:      llmClient,
		embedder: embedder,
		chat:     agent.NewService(llmClient),
		sessions: session.NewStore(),
		logger:   logger,
		repos:    make(map[string]*repoState),
	}
}

// Analyze registers the repository and kicks off materialization and
// indexing in the background. The returned record is polled for status.
func (s *Service) Analyze(url string) models.Repository {
	name := git.RepoName(url)

	s.mu.Lock()
	state := &repoState{
		repo: models.Repository{
			ID:     uuid.NewString(),
			URL:    url,
			Name:   name,
			Status: models.StatusPending,
		},
	}
	s.repos[name] = state
	repo := state.repo
	s.mu.Unlock()

	go s.analyze(url, name)

	return repo
}

func (s *Service) analyze(url, name string) {
	ctx := context.Background()

	s.setStatus(name, models.StatusIndexing, "")

	repoPath, err := s.gitSvc.Materialize(ctx, url)
	if err != nil {
		s.logger.Error("materialization failed", slog.String("repo", name), slog.String("error", err.Error()))
		s.setStatus(name, models.StatusError, err.Error())
		return
	}

	idx, err := s.builder.BuildOrLoad(ctx, repoPath)
	if err != nil {
		s.logger.Error("index build failed", slog.String("repo", name), slog.String("error", err.Error()))
		s.setStatus(name, models.StatusError, err.Error())
		return
	}

	commit, err := s.gitSvc.HeadCommit(ctx, repoPath)
	if err != nil {
		s.logger.Warn("failed to read head commit", slog.String("repo", name), slog.String("error", err.Error()))
	}

	s.mu.Lock()
	if state, ok := s.repos[name]; ok {
		state.repo.Status = models.StatusReady
		state.repo.Error = ""
		state.repo.LocalPath = repoPath
		state.repo.HeadCommit = commit
		state.repo.LastAnalyzed = time.Now().UTC()
		state.repo.ChunkCount = len(idx.Chunks)
		state.index = idx
		state.router = router.New(idx, s.llm, s.embedder)
	}
	s.mu.Unlock()

	s.logger.Info("repository ready", slog.String("repo", name), slog.Int("chunks", len(idx.Chunks)))
}

func (s *Service) setStatus(name, status, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.repos[name]; ok {
		state.repo.Status = status
		state.repo.Error = errMsg
	}
}

func (s *Service) ListRepositories() []models.Repository {
	s.mu.RLock()
	defer s.mu.RUnlock()

	repos := make([]models.Repository, 0, len(s.repos))
	for _, state := range s.repos {
		repos = append(repos, state.repo)
	}
	sort.Slice(repos, func(i, j int) bool { return repos[i].Name < repos[j].Name })
	return repos
}

func (s *Service) GetRepository(name string) (models.Repository, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.repos[name]
	if !ok {
		return models.Repository{}, false
	}
	return state.repo, true
}

// readyState returns the state for a ready repository.
func (s *Service) readyState(name string) (*repoState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.repos[name]
	if !ok {
		return nil, fmt.Errorf("repository %s: %w", name, ErrNotFound)
	}
	if state.repo.Status != models.StatusReady {
		return nil, fmt.Errorf("repository %s is not ready (status: %s)", name, state.repo.Status)
	}
	return state, nil
}

// GenerateGuide starts quick start guide generation in the background.
func (s *Service) GenerateGuide(name string) error {
	state, err := s.readyState(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	state.guide = models.Artifact{Status: models.ArtifactGenerating}
	s.mu.Unlock()

	go func() {
		guide, err := docgen.GenerateQuickStart(context.Background(), state.repo.LocalPath, state.router, s.llm)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.logger.Error("guide generation failed", slog.String("repo", name), slog.String("error", err.Error()))
			state.guide = models.Artifact{Status: models.ArtifactError, Error: err.Error()}
			return
		}
		state.guide = models.Artifact{Status: models.ArtifactReady, Content: guide, GeneratedAt: time.Now().UTC()}
	}()

	return nil
}

// GenerateAPIDocs starts API documentation generation in the background.
func (s *Service) GenerateAPIDocs(name string) error {
	state, err := s.readyState(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	state.apiDocs = models.Artifact{Status: models.ArtifactGenerating}
	s.mu.Unlock()

	go func() {
		docs, err := docgen.GenerateAPIDocs(context.Background(), state.repo.LocalPath, s.llm)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.logger.Error("api doc generation failed", slog.String("repo", name), slog.String("error", err.Error()))
			state.apiDocs = models.Artifact{Status: models.ArtifactError, Error: err.Error()}
			return
		}
		state.apiDocs = models.Artifact{Status: models.ArtifactReady, Content: docs, GeneratedAt: time.Now().UTC()}
	}()

	return nil
}

func (s *Service) Guide(name string) (models.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.repos[name]
	if !ok {
		return models.Artifact{}, fmt.Errorf("repository %s: %w", name, ErrNotFound)
	}
	return withPendingDefault(state.guide), nil
}

func (s *Service) APIDocs(name string) (models.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.repos[name]
	if !ok {
		return models.Artifact{}, fmt.Errorf("repository %s: %w", name, ErrNotFound)
	}
	return withPendingDefault(state.apiDocs), nil
}

// withPendingDefault maps the zero artifact to an explicit pending status so
// clients polling before the first generation request see a stable value.
func withPendingDefault(a models.Artifact) models.Artifact {
	if a.Status == "" {
		a.Status = models.ArtifactPending
	}
	return a
}

// FileTree renders the repository layout for the chat surface.
func (s *Service) FileTree(name string, maxDepth int) (string, error) {
	state, err := s.readyState(name)
	if err != nil {
		return "", err
	}
	return agent.FileTree(state.repo.LocalPath, maxDepth)
}

// Chat answers one conversational turn, creating a session when none is
// given, and records the exchange in session history.
func (s *Service) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	sessionID := req.SessionID
	repoName := req.RepoName

	if sessionID == "" {
		sess := s.sessions.Create(repoName)
		sessionID = sess.ID
	} else {
		sess := s.sessions.Get(sessionID)
		if sess == nil {
			return ChatResponse{}, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
		}
		repoName = sess.RepoName
	}

	state, err := s.readyState(repoName)
	if err != nil {
		return ChatResponse{}, err
	}

	history := s.sessions.Get(sessionID).Messages
	answer, err := s.chat.Chat(ctx, state.router, history, req.Message)
	if err != nil {
		return ChatResponse{}, err
	}

	s.sessions.Append(sessionID, req.Message, answer)

	return ChatResponse{SessionID: sessionID, Response: answer}, nil
}

// EndSession discards a chat session and its history.
func (s *Service) EndSession(id string) error {
	if s.sessions.Get(id) == nil {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	s.sessions.Delete(id)
	return nil
}
