package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"vidslim/internal/config"
	"vidslim/internal/encoder"
	"vidslim/internal/fileutil"
	"vidslim/internal/logging"
	"vidslim/internal/media/ffprobe"
	"vidslim/internal/naming"
	"vidslim/internal/queue"
	"vidslim/internal/staging"
)

// staleArtifactAge is how long a staging intermediate may sit before a new
// run treats it as debris from a crashed run.
const staleArtifactAge = 24 * time.Hour

// Encoder abstracts the ffmpeg client so tests can substitute a fake.
type Encoder interface {
	Encode(ctx context.Context, plan encoder.Plan, progress func(encoder.ProgressUpdate)) error
	FixRotation(ctx context.Context, input, output string, rotation int, progress func(encoder.ProgressUpdate)) error
}

// Prober abstracts ffprobe inspection so tests can substitute a fake.
type Prober func(ctx context.Context, binary, path string) (ffprobe.Result, error)

// Options tune a single batch run.
type Options struct {
	StripAudio   bool
	DeleteSource bool
}

// Summary aggregates the outcome of a batch run.
type Summary struct {
	RunID      string
	Processed  int
	Completed  int
	Failed     int
	SavedBytes int64
	Duration   time.Duration
}

// Runner drains pending queue items one at a time.
type Runner struct {
	cfg    *config.Config
	store  *queue.Store
	logger *slog.Logger
	client Encoder
	probe  Prober

	lockPath string
	lock     *flock.Flock
}

// New constructs a runner with default dependencies.
func New(cfg *config.Config, store *queue.Store, logger *slog.Logger) (*Runner, error) {
	client, err := encoder.New(cfg.Encoder.FFmpegBinary, cfg.Encoder.ProcessTimeout)
	if err != nil {
		return nil, fmt.Errorf("encoder client: %w", err)
	}
	return NewWithDependencies(cfg, store, logger, client, ffprobe.Inspect)
}

// NewWithDependencies allows injecting the encoder client and prober (used in tests).
func NewWithDependencies(cfg *config.Config, store *queue.Store, logger *slog.Logger, client Encoder, probe Prober) (*Runner, error) {
	if cfg == nil || store == nil || client == nil || probe == nil {
		return nil, errors.New("runner requires config, store, encoder client, and prober")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	lockPath := filepath.Join(cfg.Paths.LogDir, "vidslim.lock")
	return &Runner{
		cfg:      cfg,
		store:    store,
		logger:   logging.NewComponentLogger(logger, "batch"),
		client:   client,
		probe:    probe,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Run processes pending items until the queue drains or ctx is canceled.
// Only one run may execute at a time per log directory.
func (r *Runner) Run(ctx context.Context, opts Options) (Summary, error) {
	if err := r.cfg.EnsureDirectories(); err != nil {
		return Summary{}, fmt.Errorf("ensure directories: %w", err)
	}

	ok, err := r.lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return Summary{}, errors.New("another vidslim run is already in progress")
	}
	defer func() {
		_ = r.lock.Unlock()
	}()

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)

	staging.CleanStale(r.cfg.Paths.StagingDir, staleArtifactAge, logger)

	if reset, err := r.store.ResetStuckEncoding(ctx); err != nil {
		return Summary{}, fmt.Errorf("reset interrupted items: %w", err)
	} else if reset > 0 {
		logger.Info("reset items from interrupted run", logging.Int64("count", reset))
	}

	summary := Summary{RunID: runID}
	started := time.Now()
	logger.Info("starting batch run")

	for {
		if err := ctx.Err(); err != nil {
			summary.Duration = time.Since(started)
			return summary, err
		}

		item, err := r.store.NextPending(ctx)
		if err != nil {
			summary.Duration = time.Since(started)
			return summary, fmt.Errorf("next pending: %w", err)
		}
		if item == nil {
			break
		}

		summary.Processed++
		itemCtx := logging.WithItemID(ctx, item.ID)
		if err := r.processItem(itemCtx, item, opts); err != nil {
			summary.Failed++
			item.SetFailed(err.Error())
			if updateErr := r.store.Update(itemCtx, item); updateErr != nil {
				summary.Duration = time.Since(started)
				return summary, fmt.Errorf("record failure: %w", updateErr)
			}
			logging.WithContext(itemCtx, r.logger).Error(
				"item failed, continuing with next",
				logging.String("source", item.SourcePath),
				logging.Error(err),
			)
			continue
		}
		summary.Completed++
		summary.SavedBytes += item.SavedBytes()
	}

	summary.Duration = time.Since(started)
	logger.Info(
		"batch run finished",
		logging.Int("processed", summary.Processed),
		logging.Int("completed", summary.Completed),
		logging.Int("failed", summary.Failed),
		logging.Int64("saved_bytes", summary.SavedBytes),
		logging.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func (r *Runner) processItem(ctx context.Context, item *queue.Item, opts Options) error {
	logger := logging.WithContext(ctx, r.logger)

	info, err := os.Stat(item.SourcePath)
	if err != nil {
		return fmt.Errorf("source unavailable: %w", err)
	}
	item.SourceBytes = info.Size()

	profile, _, err := r.cfg.LookupProfile(item.Profile)
	if err != nil {
		return err
	}

	outputPath := naming.OutputPath(item.SourcePath, r.cfg.Output.Suffix, r.cfg.Output.Container)
	if !r.cfg.Output.Overwrite {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("output %s already exists", outputPath)
		}
	}

	item.Status = queue.StatusEncoding
	item.OutputPath = outputPath
	item.SetProgress("Probing", "Inspecting source streams", 0)
	if err := r.store.Update(ctx, item); err != nil {
		return fmt.Errorf("update item: %w", err)
	}

	probeResult, err := r.probe(ctx, r.cfg.Encoder.FFprobeBinary, item.SourcePath)
	if err != nil {
		return fmt.Errorf("probe source: %w", err)
	}
	if _, ok := probeResult.VideoStream(); !ok {
		return errors.New("no video stream found")
	}
	logger.Info(
		"source inspected",
		logging.Float64("duration_seconds", probeResult.DurationSeconds()),
		logging.Int64("container_bytes", probeResult.SizeBytes()),
		logging.Int64("bit_rate", probeResult.BitRate()),
		logging.Int("video_streams", probeResult.VideoStreamCount()),
		logging.Int("audio_streams", probeResult.AudioStreamCount()),
	)

	input := item.SourcePath
	var staged []string
	defer func() {
		for _, path := range staged {
			_ = os.Remove(path)
		}
	}()

	if rotation := probeResult.Rotation(); rotation != 0 {
		logger.Info("baking rotation into pixel data", logging.Int("rotation", rotation))
		fixed := r.stagingPath(item, "rotated")
		staged = append(staged, fixed)
		if err := r.client.FixRotation(ctx, input, fixed, rotation, r.progressFunc(ctx, item)); err != nil {
			return fmt.Errorf("rotation pre-pass: %w", err)
		}
		input = fixed
	}

	// A source without audio gets -an outright instead of an audio
	// encoder with nothing to feed it.
	plan := encoder.Plan{
		Input:        input,
		Output:       r.stagingPath(item, "encoded"),
		Profile:      profile,
		AudioBitrate: r.cfg.Encoder.AudioBitrate,
		StripAudio:   opts.StripAudio || probeResult.AudioStreamCount() == 0,
	}
	staged = append(staged, plan.Output)

	item.SetProgress("Encoding", "Compressing video", 0)
	if err := r.store.Update(ctx, item); err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	logger.Info(
		"starting compression",
		logging.String("source", item.SourcePath),
		logging.String("profile", item.Profile),
		logging.String("output", outputPath),
	)

	if err := r.client.Encode(ctx, plan, r.progressFunc(ctx, item)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	encodedInfo, err := os.Stat(plan.Output)
	if err != nil {
		return fmt.Errorf("verify encoded output: %w", err)
	}
	if encodedInfo.Size() == 0 {
		return errors.New("encoded output is empty")
	}

	if err := fileutil.MoveFile(plan.Output, outputPath); err != nil {
		return fmt.Errorf("finalize output: %w", err)
	}

	item.SetCompleted(outputPath, encodedInfo.Size())
	if err := r.store.Update(ctx, item); err != nil {
		return fmt.Errorf("update item: %w", err)
	}

	if opts.DeleteSource || r.cfg.Output.DeleteSource {
		if err := os.Remove(item.SourcePath); err != nil {
			logger.Warn("could not delete source", logging.Error(err))
		}
	}

	logger.Info(
		"compression finished",
		logging.String("output", outputPath),
		logging.Int64("source_bytes", item.SourceBytes),
		logging.Int64("output_bytes", item.OutputBytes),
		logging.Int64("saved_bytes", item.SavedBytes()),
	)
	return nil
}

// progressFunc persists throttled progress updates and logs coarse milestones.
func (r *Runner) progressFunc(ctx context.Context, item *queue.Item) func(encoder.ProgressUpdate) {
	logger := logging.WithContext(ctx, r.logger)
	sampler := logging.NewProgressSampler(10)
	var lastPersist time.Time
	return func(update encoder.ProgressUpdate) {
		item.SetProgress(update.Stage, update.Message, update.Percent)
		if time.Since(lastPersist) >= 2*time.Second {
			lastPersist = time.Now()
			if err := r.store.Update(ctx, item); err != nil {
				logger.Warn("could not persist progress", logging.Error(err))
			}
		}
		if sampler.ShouldLog(update.Percent, update.Stage) {
			logger.Info(
				"progress",
				logging.String("stage", update.Stage),
				logging.Float64("percent", update.Percent),
			)
		}
	}
}

func (r *Runner) stagingPath(item *queue.Item, kind string) string {
	name := fmt.Sprintf("%d-%s.%s", item.ID, kind, r.cfg.Output.Container)
	return filepath.Join(r.cfg.Paths.StagingDir, name)
}

// LockPath returns the lock file location guarding concurrent runs.
func (r *Runner) LockPath() string {
	return r.lockPath
}
