package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"inventory/internal/domain"
	"inventory/internal/importer"
	"inventory/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Import Service — datasheet previews, commits, and triggers
// ─────────────────────────────────────────────────────────────

// previewTTL bounds how long an uncommitted preview is kept around.
const previewTTL = 30 * time.Minute

// ImportService drives the import pipeline: manual previews and
// commits from the frontend, plus watch-folder and scheduled imports.
// Previews never write; a commit is an explicit second step against a
// preview token.
type ImportService struct {
	pipeline *importer.Pipeline
	items    domain.ItemStore
	runs     *storage.ImportRunStore
	emitter  EventEmitter
	log      *zap.Logger
	running  runningImportsGuard

	mu      sync.Mutex
	pending map[string]*pendingPreview

	watchCancel context.CancelFunc
	watcher     *fsnotify.Watcher
	cronSched   *cron.Cron
}

type pendingPreview struct {
	sourceFile string
	reports    []*importer.Report
	startedAt  time.Time
}

// NewImportService creates an ImportService ready for use.
func NewImportService(
	pipeline *importer.Pipeline,
	items domain.ItemStore,
	runs *storage.ImportRunStore,
	emitter EventEmitter,
	log *zap.Logger,
) *ImportService {
	return &ImportService{
		pipeline: pipeline,
		items:    items,
		runs:     runs,
		emitter:  emitter,
		log:      log,
		pending:  make(map[string]*pendingPreview),
	}
}

// ── Preview / Commit / Reject ──────────────────────────────

// PreviewResult is what the frontend gets back from a preview: the
// per-table reports plus a token to commit or reject them with.
type PreviewResult struct {
	Token      string             `json:"token"`
	SourceFile string             `json:"sourceFile"`
	Reports    []*importer.Report `json:"reports"`
}

// PreviewFile parses and analyzes path without persisting anything.
// The returned token stays valid until committed, rejected, or expired.
func (s *ImportService) PreviewFile(ctx context.Context, path string) (*PreviewResult, error) {
	if !s.running.TryLock(path) {
		return nil, fmt.Errorf("import of %s is already running", path)
	}
	defer s.running.Unlock(path)

	start := time.Now()
	reports, err := s.pipeline.Preview(path)
	if err != nil {
		s.logRun(&importer.ImportRun{
			ID:         uuid.New().String(),
			SourceFile: path,
			Status:     "error",
			Error:      err.Error(),
			StartedAt:  start,
			FinishedAt: time.Now(),
		})
		return nil, err
	}

	for _, r := range reports {
		s.logRun(&importer.ImportRun{
			ID:           uuid.New().String(),
			SourceFile:   path,
			TableName:    r.TableName,
			Status:       "previewed",
			RowsParsed:   r.RowsParsed,
			RowsAccepted: len(r.Items),
			RowsRejected: len(r.Errors),
			StartedAt:    start,
			FinishedAt:   time.Now(),
		})
	}

	token := uuid.New().String()
	s.mu.Lock()
	s.expirePendingLocked()
	s.pending[token] = &pendingPreview{sourceFile: path, reports: reports, startedAt: start}
	s.mu.Unlock()

	return &PreviewResult{Token: token, SourceFile: path, Reports: reports}, nil
}

// CommitSummary aggregates the commit of every table in a preview.
type CommitSummary struct {
	RowsPersisted int                      `json:"rowsPersisted"`
	RowsRejected  int                      `json:"rowsRejected"`
	Failures      []importer.CommitFailure `json:"failures,omitempty"`
}

// CommitPreview persists the validated items of a previously previewed
// file. Rows that failed validation in the preview stay rejected; a
// per-row persistence failure never aborts the batch.
func (s *ImportService) CommitPreview(ctx context.Context, token string) (*CommitSummary, error) {
	pending, err := s.takePending(token)
	if err != nil {
		return nil, err
	}

	summary := &CommitSummary{}
	for _, r := range pending.reports {
		start := time.Now()
		result, err := s.pipeline.Commit(ctx, r, s.items)
		if err != nil {
			s.logRun(&importer.ImportRun{
				ID:         uuid.New().String(),
				SourceFile: pending.sourceFile,
				TableName:  r.TableName,
				Status:     "error",
				RowsParsed: r.RowsParsed,
				Error:      err.Error(),
				StartedAt:  start,
				FinishedAt: time.Now(),
			})
			return nil, err
		}
		summary.RowsPersisted += result.RowsPersisted
		summary.RowsRejected += len(r.Errors) + len(result.Failures)
		summary.Failures = append(summary.Failures, result.Failures...)

		s.logRun(&importer.ImportRun{
			ID:           uuid.New().String(),
			SourceFile:   pending.sourceFile,
			TableName:    r.TableName,
			Status:       "committed",
			RowsParsed:   r.RowsParsed,
			RowsAccepted: result.RowsPersisted,
			RowsRejected: len(r.Errors) + len(result.Failures),
			StartedAt:    start,
			FinishedAt:   time.Now(),
		})
	}

	s.log.Info("import committed",
		zap.String("file", pending.sourceFile),
		zap.Int("persisted", summary.RowsPersisted),
		zap.Int("rejected", summary.RowsRejected))
	s.emitter.Emit(ctx, "inventory:changed", pending.sourceFile)
	return summary, nil
}

// RejectPreview discards a pending preview without writing anything.
func (s *ImportService) RejectPreview(ctx context.Context, token string) error {
	pending, err := s.takePending(token)
	if err != nil {
		return err
	}
	for _, r := range pending.reports {
		s.logRun(&importer.ImportRun{
			ID:           uuid.New().String(),
			SourceFile:   pending.sourceFile,
			TableName:    r.TableName,
			Status:       "rejected",
			RowsParsed:   r.RowsParsed,
			RowsRejected: r.RowsParsed,
			StartedAt:    pending.startedAt,
			FinishedAt:   time.Now(),
		})
	}
	s.log.Info("import rejected", zap.String("file", pending.sourceFile))
	return nil
}

// ImportFile previews and immediately commits path. Used by the
// watch-folder and cron triggers, where nobody is around to confirm.
func (s *ImportService) ImportFile(ctx context.Context, path string) (*CommitSummary, error) {
	preview, err := s.PreviewFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.CommitPreview(ctx, preview.Token)
}

// ListRuns returns the most recent import run log entries.
func (s *ImportService) ListRuns(limit int) ([]importer.ImportRun, error) {
	return s.runs.ListRuns(limit)
}

// SupportedExtensions returns the file extensions the pipeline accepts.
func (s *ImportService) SupportedExtensions() []string {
	return importer.SupportedExtensions()
}

func (s *ImportService) takePending(token string) (*pendingPreview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expirePendingLocked()
	pending, ok := s.pending[token]
	if !ok {
		return nil, fmt.Errorf("no pending preview for token %s", token)
	}
	delete(s.pending, token)
	return pending, nil
}

func (s *ImportService) expirePendingLocked() {
	cutoff := time.Now().Add(-previewTTL)
	for token, p := range s.pending {
		if p.startedAt.Before(cutoff) {
			delete(s.pending, token)
		}
	}
}

func (s *ImportService) logRun(run *importer.ImportRun) {
	if err := s.runs.CreateRun(run); err != nil {
		s.log.Warn("failed to record import run",
			zap.String("file", run.SourceFile), zap.Error(err))
	}
}

// ── Triggers (watch folder + cron) ─────────────────────────

// RestartTriggers tears down any active watcher and scheduler and
// rebuilds them. A non-empty watchDir is watched for new or changed
// datasheet files; a non-empty cronExpr additionally sweeps watchDir
// on schedule, picking up files dropped while the app was closed.
func (s *ImportService) RestartTriggers(ctx context.Context, watchDir, cronExpr string) {
	s.stopTriggers()

	if watchDir == "" {
		return
	}

	if cronExpr != "" {
		c := cron.New()
		dir := watchDir
		_, err := c.AddFunc(cronExpr, func() {
			s.log.Info("scheduled sweep", zap.String("dir", dir))
			s.sweepDir(ctx, dir)
		})
		if err != nil {
			s.log.Warn("invalid cron expression, scheduled imports disabled",
				zap.String("expr", cronExpr), zap.Error(err))
		} else {
			c.Start()
			s.cronSched = c
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.log.Warn("failed to create file watcher", zap.Error(err))
		return
	}
	if err := watcher.Add(watchDir); err != nil {
		s.log.Warn("failed to watch folder",
			zap.String("dir", watchDir), zap.Error(err))
		watcher.Close()
		return
	}
	s.watcher = watcher

	watchCtx, cancel := context.WithCancel(context.Background())
	s.watchCancel = cancel

	go func() {
		// Debounce per path: editors and copies fire several writes.
		timers := make(map[string]*time.Timer)
		for {
			select {
			case <-watchCtx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if !s.isSupported(event.Name) {
					continue
				}
				path := event.Name
				if t, exists := timers[path]; exists {
					t.Stop()
				}
				timers[path] = time.AfterFunc(500*time.Millisecond, func() {
					s.log.Info("watch folder change, importing", zap.String("file", path))
					if _, err := s.ImportFile(ctx, path); err != nil {
						s.log.Warn("watch import failed",
							zap.String("file", path), zap.Error(err))
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn("file watcher error", zap.Error(err))
			}
		}
	}()

	s.log.Info("watching folder for datasheets", zap.String("dir", watchDir))
}

func (s *ImportService) sweepDir(ctx context.Context, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.log.Warn("sweep failed", zap.String("dir", dir), zap.Error(err))
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !s.isSupported(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := s.ImportFile(ctx, path); err != nil {
			s.log.Warn("sweep import failed",
				zap.String("file", path), zap.Error(err))
		}
	}
}

func (s *ImportService) isSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range importer.SupportedExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// WaitRunning blocks until all in-flight imports finish or ctx is
// cancelled. Used for graceful shutdown.
func (s *ImportService) WaitRunning(ctx context.Context) {
	s.running.WaitAll(ctx)
}

// Stop tears down the watcher and scheduler.
func (s *ImportService) Stop() {
	s.stopTriggers()
}

func (s *ImportService) stopTriggers() {
	if s.watchCancel != nil {
		s.watchCancel()
		s.watchCancel = nil
	}
	if s.watcher != nil {
		s.watcher.Close()
		s.watcher = nil
	}
	if s.cronSched != nil {
		s.cronSched.Stop()
		s.cronSched = nil
	}
}
