package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"

	"airnav/internal/domain"
	"airnav/internal/nasr"
	"airnav/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Sync Service — orchestrates one ingestion run per trigger
// ─────────────────────────────────────────────────────────────

// SyncService runs ingestion passes over a directory of subscriber
// files and manages the cron and file-watch triggers that start them.
type SyncService struct {
	dataDir string
	agg     domain.AggregateSink
	runs    *storage.RunStore
	query   *storage.QueryStore
	emitter EventEmitter
	inRun   inFlightGuard

	// watcher / cron lifecycle
	watchCancel context.CancelFunc
	watcher     *fsnotify.Watcher
	cronSched   *cron.Cron
}

// NewSyncService creates a SyncService reading subscriber files from
// dataDir.
func NewSyncService(
	dataDir string,
	agg domain.AggregateSink,
	runs *storage.RunStore,
	query *storage.QueryStore,
	emitter EventEmitter,
) *SyncService {
	return &SyncService{
		dataDir: dataDir,
		agg:     agg,
		runs:    runs,
		query:   query,
		emitter: emitter,
	}
}

// SyncResult summarizes one finished ingestion run.
type SyncResult struct {
	RunID    string `json:"runId"`
	Status   string `json:"status"`
	Airports int    `json:"airports"`
	Navaids  int    `json:"navaids"`
	Airways  int    `json:"airways"`
	ILS      int    `json:"ils"`
}

// RunSync executes a full ingestion pass synchronously. Only one sync
// may run at a time; a second trigger while one is in flight fails
// fast instead of queueing.
func (s *SyncService) RunSync(ctx context.Context, triggeredBy string) (*SyncResult, error) {
	if !s.inRun.TryAcquire("sync") {
		return nil, fmt.Errorf("a sync is already running")
	}
	defer s.inRun.Release("sync")

	runID, err := s.runs.StartRun(triggeredBy)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	runErr := s.ingest(runCtx)

	status := "success"
	errMsg := ""
	if runErr != nil {
		status = "error"
		errMsg = runErr.Error()
	}

	airports, navaids, airways, ils, cntErr := s.query.Counts()
	if cntErr != nil {
		log.Printf("sync: count snapshot: %v", cntErr)
	}
	if err := s.runs.FinishRun(runID, status, errMsg, airports, navaids, airways, ils); err != nil {
		log.Printf("sync: finish run log: %v", err)
	}

	result := &SyncResult{
		RunID:    runID,
		Status:   status,
		Airports: airports,
		Navaids:  navaids,
		Airways:  airways,
		ILS:      ils,
	}
	if runErr != nil {
		return result, runErr
	}
	s.emitter.Emit(ctx, "sync:completed", result)
	return result, nil
}

// ingest drives one pass: every record of every present subscriber
// file through its parser, then Finish per parser. The first bad
// record aborts the whole pass; authoritative data is not partially
// ingested.
func (s *SyncService) ingest(ctx context.Context) error {
	pass, err := nasr.NewPass(s.agg)
	if err != nil {
		return err
	}

	for _, name := range pass.Files() {
		parser, _ := pass.ParserFor(name)
		path := filepath.Join(s.dataDir, name)

		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			log.Printf("sync: %s not present, skipping", name)
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		if err := parser.Format().Run(nasr.RecordLines(data)); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := parser.Finish(ctx); err != nil {
			return fmt.Errorf("%s: finalize: %w", name, err)
		}
		log.Printf("sync: %s ingested", name)
	}
	return nil
}

// ── Triggers (cron + file watch) ───────────────────────────

// Schedule starts a cron trigger with the given expression. Replaces
// any previous schedule.
func (s *SyncService) Schedule(ctx context.Context, expr string) error {
	if s.cronSched != nil {
		s.cronSched.Stop()
		s.cronSched = nil
	}
	c := cron.New()
	_, err := c.AddFunc(expr, func() {
		log.Printf("sync cron: triggered")
		if _, err := s.RunSync(ctx, "cron"); err != nil {
			log.Printf("sync cron: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	c.Start()
	s.cronSched = c
	log.Printf("sync cron: scheduled %q", expr)
	return nil
}

// Watch starts a file watcher over the data directory. A change to any
// subscriber file triggers a sync after a short debounce, so an unzip
// dropping four files causes one run, not four.
func (s *SyncService) Watch(ctx context.Context) error {
	s.stopWatcher()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.dataDir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %q: %w", s.dataDir, err)
	}
	s.watcher = watcher

	pass, err := nasr.NewPass(s.agg)
	if err != nil {
		watcher.Close()
		return err
	}
	watched := make(map[string]bool)
	for _, name := range pass.Files() {
		watched[name] = true
	}

	watchCtx, cancel := context.WithCancel(context.Background())
	s.watchCancel = cancel

	go func() {
		var debounce *time.Timer
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
				if !watched[filepath.Base(event.Name)] {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(500*time.Millisecond, func() {
					log.Printf("sync watcher: %s changed", filepath.Base(event.Name))
					if _, err := s.RunSync(ctx, "watch"); err != nil {
						log.Printf("sync watcher: %v", err)
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("sync watcher: %v", err)
			}
		}
	}()

	log.Printf("sync watcher: watching %s", s.dataDir)
	return nil
}

// WaitRunning blocks until any in-flight sync finishes or ctx is
// cancelled. Used for graceful shutdown.
func (s *SyncService) WaitRunning(ctx context.Context) {
	s.inRun.WaitIdle(ctx)
}

// Stop tears down the watcher and scheduler.
func (s *SyncService) Stop() {
	s.stopWatcher()
	if s.cronSched != nil {
		s.cronSched.Stop()
		s.cronSched = nil
	}
}

func (s *SyncService) stopWatcher() {
	if s.watchCancel != nil {
		s.watchCancel()
		s.watchCancel = nil
	}
	if s.watcher != nil {
		s.watcher.Close()
		s.watcher = nil
	}
}
