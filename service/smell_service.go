package service

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/detector"
	"github.com/ludo-technologies/pysmell/internal/logging"
	"github.com/ludo-technologies/pysmell/internal/smell"
	"github.com/ludo-technologies/pysmell/internal/syntax"
	"github.com/ludo-technologies/pysmell/internal/version"
)

var detectorDescriptions = map[string]string{
	detector.NameLongFunction:      "Functions with many lines of code (LOC) and a high cyclomatic complexity (CC)",
	detector.NameLongParameterList: "Functions declaring many parameters",
	detector.NameGodClass:          "Classes with a high weighted method count (WMC), low tight class cohesion (TCC) and many accesses to foreign data (ATFD)",
}

// SmellServiceImpl implements the SmellService interface
type SmellServiceImpl struct {
	fileReader domain.FileReader
	progress   domain.ProgressManager
	logger     *zap.Logger
}

// NewSmellService creates a new smell detection service
func NewSmellService(fileReader domain.FileReader, progress domain.ProgressManager, logger *zap.Logger) *SmellServiceImpl {
	if fileReader == nil {
		fileReader = NewFileReader()
	}
	if progress == nil {
		progress = NewNoOpProgressManager()
	}
	return &SmellServiceImpl{
		fileReader: fileReader,
		progress:   progress,
		logger:     logging.OrNop(logger),
	}
}

// fileOutcome is the result of detecting one file
type fileOutcome struct {
	run     *detector.Run
	skipped bool
	errors  []string
}

// Detect collects the files of the request, runs every selected detector on
// each file in parallel and filters the merged candidates once per detector.
// Files that cannot be read or parsed are skipped and reported in Errors.
func (s *SmellServiceImpl) Detect(ctx context.Context, req domain.SmellRequest) (*domain.SmellResponse, error) {
	files, err := s.fileReader.CollectPythonFiles(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no Python files found in the specified paths", nil)
	}

	thresholds, err := ThresholdsFromInfo(req.Thresholds)
	if err != nil {
		return nil, domain.NewConfigError("invalid thresholds", err)
	}
	registry, err := detector.NewRegistry(thresholds, s.logger, req.Detectors...)
	if err != nil {
		return nil, domain.NewConfigError("failed to set up detectors", err)
	}

	profile := syntax.NewPythonProfile()
	defer profile.Close()

	outcomes, err := s.detectFiles(ctx, registry, profile, files, req.Workers)
	if err != nil {
		return nil, err
	}

	response := &domain.SmellResponse{
		RunID:       uuid.NewString(),
		Warnings:    []string{},
		Errors:      []string{},
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
		Config:      s.buildConfigForResponse(registry, req),
		Summary: domain.SmellSummary{
			SmellsByDetector: make(map[string]int),
		},
	}

	// merging in file order keeps the filter input independent of scheduling
	run := registry.NewRun()
	for i, outcome := range outcomes {
		response.Errors = append(response.Errors, outcome.errors...)
		if outcome.skipped {
			response.Summary.FilesSkipped++
			continue
		}
		response.Summary.FilesAnalyzed++
		if err := run.Merge(outcome.run); err != nil {
			return nil, domain.NewDetectionError(fmt.Sprintf("failed to merge candidates of %s", files[i]), err)
		}
	}

	for _, err := range run.Filter() {
		s.logger.Warn("filter stopped early", zap.Error(err))
		response.Errors = append(response.Errors, err.Error())
	}

	for _, result := range run.Results() {
		dr := s.buildDetectorResult(result)
		response.Detectors = append(response.Detectors, dr)
		response.Summary.TotalCandidates += dr.Candidates
		response.Summary.TotalSmells += len(dr.Smells)
		response.Summary.SmellsByDetector[dr.Name] = len(dr.Smells)
	}

	response.Warnings = append(response.Warnings, profile.Warnings()...)
	if response.Summary.FilesAnalyzed == 0 {
		response.Warnings = append(response.Warnings, "No files could be analyzed")
	}

	s.logger.Info("detection finished",
		zap.String("run_id", response.RunID),
		zap.Int("files", response.Summary.FilesAnalyzed),
		zap.Int("skipped", response.Summary.FilesSkipped),
		zap.Int("smells", response.Summary.TotalSmells),
	)
	return response, nil
}

// detectFiles runs the registry over every file with at most workers files
// in flight. Each file gets its own parser and run.
func (s *SmellServiceImpl) detectFiles(ctx context.Context, registry *detector.Registry, profile *syntax.Profile, files []string, workers int) ([]fileOutcome, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	s.progress.Initialize(len(files))
	s.progress.Start()

	outcomes := make([]fileOutcome, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = s.detectFile(gctx, registry, profile, file)
			s.progress.Increment()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.progress.Complete(false)
		return nil, domain.NewDetectionError("detection cancelled", err)
	}
	s.progress.Complete(true)
	return outcomes, nil
}

func (s *SmellServiceImpl) detectFile(ctx context.Context, registry *detector.Registry, profile *syntax.Profile, file string) fileOutcome {
	content, err := s.fileReader.ReadFile(file)
	if err != nil {
		s.logger.Warn("skipping unreadable file", zap.String("file", file), zap.Error(err))
		return fileOutcome{skipped: true, errors: []string{fmt.Sprintf("[%s] Failed to read file: %v", file, err)}}
	}

	tree, err := syntax.NewParser(profile).Parse(ctx, syntax.Source{Identifier: file, Content: content})
	if err != nil {
		s.logger.Warn("skipping unparsable file", zap.String("file", file), zap.Error(err))
		return fileOutcome{skipped: true, errors: []string{fmt.Sprintf("[%s] Parse error: %v", file, err)}}
	}
	defer tree.Close()

	outcome := fileOutcome{run: registry.NewRun()}
	for _, err := range outcome.run.DetectFile(tree) {
		s.logger.Warn("detector failed", zap.String("file", file), zap.Error(err))
		outcome.errors = append(outcome.errors, fmt.Sprintf("[%s] %v", file, err))
	}
	return outcome
}

func (s *SmellServiceImpl) buildDetectorResult(result detector.Result) domain.DetectorResult {
	d := result.Detector
	dr := domain.DetectorResult{
		Name:        d.Name(),
		Metrics:     d.Metrics(),
		FilterOrder: d.FilterOrder(),
		Thresholds:  ThresholdInfos(d.Thresholds()),
		Candidates:  result.Total,
		Smells:      []domain.Smell{},
	}
	if result.Err != nil {
		dr.Error = result.Err.Error()
	}

	for _, c := range result.Set.Visible() {
		dr.Smells = append(dr.Smells, toSmell(d, c))
	}
	return dr
}

// toSmell reports each metric next to the absolute threshold it was cut by
func toSmell(d detector.Detector, c smell.Candidate) domain.Smell {
	out := domain.Smell{
		Type:    d.Name(),
		File:    c.Location.File,
		Line:    c.Location.Line,
		Subject: c.Subject,
		Metrics: make([]domain.MetricValue, 0, len(c.Metrics)),
	}
	for _, m := range c.Metrics {
		mv := domain.MetricValue{
			Name:  m.Name,
			Value: m.Value.FloatValue(),
			Float: m.Value.IsFloat(),
		}
		if t, ok := smell.Lookup(d.Thresholds(), m.Name); ok {
			mv.Threshold = t.Absolute.FloatValue()
		}
		out.Metrics = append(out.Metrics, mv)
	}
	return out
}

func (s *SmellServiceImpl) buildConfigForResponse(registry *detector.Registry, req domain.SmellRequest) map[string]interface{} {
	thresholds := make(map[string][]domain.ThresholdInfo)
	for _, d := range registry.Detectors() {
		thresholds[d.Name()] = ThresholdInfos(d.Thresholds())
	}
	return map[string]interface{}{
		"config_path": req.ConfigPath,
		"workers":     req.Workers,
		"recursive":   req.Recursive,
		"thresholds":  thresholds,
	}
}

// Detectors lists every registered detector with its default thresholds
func (s *SmellServiceImpl) Detectors() []domain.DetectorInfo {
	var infos []domain.DetectorInfo
	for _, name := range detector.Names() {
		thresholds := detector.DefaultThresholds(name)
		order := make([]string, len(thresholds))
		for i, t := range thresholds {
			order[i] = t.Metric
		}
		infos = append(infos, domain.DetectorInfo{
			Name:        name,
			Description: detectorDescriptions[name],
			Metrics:     metricsOf(name),
			FilterOrder: order,
			Thresholds:  ThresholdInfos(thresholds),
		})
	}
	return infos
}

// metricsOf returns the metrics a detector measures on every candidate
func metricsOf(name string) []string {
	registry, err := detector.NewRegistry(detector.AllDefaultThresholds(), nil, name)
	if err != nil {
		return nil
	}
	if d, ok := registry.Get(name); ok {
		return d.Metrics()
	}
	return nil
}
