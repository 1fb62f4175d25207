package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/detector"
)

func createSmellProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	createTestFile(t, dir, "a.py", `def short(a):
    pass


def long(a, b, c, d, e, f, g):
    pass
`)
	createTestFile(t, dir, "b.py", `def edge(a, b, c, d, e):
    pass
`)
	createTestFile(t, dir, "broken.py", "def broken(:\n")
	return dir
}

func smellRequest(dir string) domain.SmellRequest {
	req := *domain.DefaultSmellRequest()
	req.Paths = []string{dir}
	return req
}

func detectorResult(t *testing.T, resp *domain.SmellResponse, name string) domain.DetectorResult {
	t.Helper()
	for _, d := range resp.Detectors {
		if d.Name == name {
			return d
		}
	}
	require.Failf(t, "detector missing", "no result for %s", name)
	return domain.DetectorResult{}
}

func subjects(smells []domain.Smell) []string {
	out := make([]string, len(smells))
	for i, s := range smells {
		out[i] = s.Subject
	}
	return out
}

func TestSmellService_Detect(t *testing.T) {
	dir := createSmellProject(t)
	service := NewSmellService(nil, nil, zap.NewNop())

	resp, err := service.Detect(context.Background(), smellRequest(dir))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, 2, resp.Summary.FilesAnalyzed)
	assert.Equal(t, 1, resp.Summary.FilesSkipped)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "broken.py")

	require.Len(t, resp.Detectors, 3)
	assert.Equal(t, detector.Names(), []string{resp.Detectors[0].Name, resp.Detectors[1].Name, resp.Detectors[2].Name})

	lpl := detectorResult(t, resp, detector.NameLongParameterList)
	assert.Equal(t, 3, lpl.Candidates)
	assert.Equal(t, []string{"long", "edge"}, subjects(lpl.Smells))
	assert.Empty(t, lpl.Error)

	long := lpl.Smells[0]
	assert.Equal(t, detector.NameLongParameterList, long.Type)
	assert.Equal(t, filepath.Join(dir, "a.py"), long.File)
	assert.Equal(t, 5, long.Line)
	require.Len(t, long.Metrics, 1)
	assert.Equal(t, domain.MetricValue{Name: detector.MetricNumberParameter, Value: 7, Threshold: 5}, long.Metrics[0])

	lf := detectorResult(t, resp, detector.NameLongFunction)
	assert.Equal(t, 3, lf.Candidates)
	assert.Empty(t, lf.Smells)

	gc := detectorResult(t, resp, detector.NameGodClass)
	assert.Equal(t, 0, gc.Candidates)
	assert.Equal(t, []string{detector.MetricWMC, detector.MetricTCC, detector.MetricATFD}, gc.FilterOrder)

	assert.Equal(t, 6, resp.Summary.TotalCandidates)
	assert.Equal(t, 2, resp.Summary.TotalSmells)
	assert.Equal(t, 2, resp.Summary.SmellsByDetector[detector.NameLongParameterList])
}

func TestSmellService_Detect_IndependentOfWorkers(t *testing.T) {
	dir := t.TempDir()
	for i, name := range []string{"m1.py", "m2.py", "m3.py", "m4.py", "m5.py", "m6.py"} {
		params := "a, b, c, d, e"
		if i%2 == 0 {
			params += ", f"
		}
		createTestFile(t, dir, name, "def f("+params+"):\n    pass\n")
	}

	var results [][]domain.Smell
	for _, workers := range []int{1, 3, 8} {
		req := smellRequest(dir)
		req.Workers = workers
		req.Detectors = []string{detector.NameLongParameterList}

		resp, err := NewSmellService(nil, nil, nil).Detect(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, resp.Detectors, 1)
		results = append(results, resp.Detectors[0].Smells)
	}

	require.Len(t, results[0], 6)
	assert.Equal(t, results[0], results[1])
	assert.Equal(t, results[0], results[2])
	// six parameters first, ties keep file order
	assert.Equal(t, filepath.Join(dir, "m1.py"), results[0][0].File)
	assert.Equal(t, filepath.Join(dir, "m3.py"), results[0][1].File)
	assert.Equal(t, filepath.Join(dir, "m2.py"), results[0][3].File)
}

func TestSmellService_Detect_Thresholds(t *testing.T) {
	dir := createSmellProject(t)
	req := smellRequest(dir)
	req.Detectors = []string{detector.NameLongParameterList}
	req.Thresholds = map[string][]domain.ThresholdInfo{
		detector.NameLongParameterList: {{Metric: detector.MetricNumberParameter, Absolute: 6, Percentage: 0.1, Bound: "keep_high"}},
	}

	resp, err := NewSmellService(nil, nil, nil).Detect(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Detectors, 1)
	assert.Equal(t, []string{"long"}, subjects(resp.Detectors[0].Smells))
	assert.Equal(t, float64(6), resp.Detectors[0].Smells[0].Metrics[0].Threshold)
}

func TestSmellService_Detect_MissingThresholdIsReported(t *testing.T) {
	dir := createSmellProject(t)
	req := smellRequest(dir)
	req.Thresholds = map[string][]domain.ThresholdInfo{
		detector.NameLongFunction: {{Metric: detector.MetricLOC, Absolute: 1, Percentage: 0.1, Bound: "keep_high"}},
	}

	resp, err := NewSmellService(nil, nil, nil).Detect(context.Background(), req)
	require.NoError(t, err)

	lf := detectorResult(t, resp, detector.NameLongFunction)
	assert.NotEmpty(t, lf.Error)
	// the LOC cut ran before the missing CC threshold stopped the filter
	assert.Len(t, lf.Smells, 3)
	assert.Len(t, detectorResult(t, resp, detector.NameLongParameterList).Smells, 2)
}

func TestSmellService_Detect_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*domain.SmellRequest, string)
		code   string
	}{
		{
			name:   "unknown detector",
			modify: func(r *domain.SmellRequest, _ string) { r.Detectors = []string{"feature_envy"} },
			code:   domain.ErrCodeConfigError,
		},
		{
			name: "fractional integer threshold",
			modify: func(r *domain.SmellRequest, _ string) {
				r.Thresholds = map[string][]domain.ThresholdInfo{
					detector.NameGodClass: {{Metric: detector.MetricWMC, Absolute: 4.5, Bound: "keep_high"}},
				}
			},
			code: domain.ErrCodeConfigError,
		},
		{
			name:   "no python files",
			modify: func(r *domain.SmellRequest, dir string) { r.Paths = []string{filepath.Join(dir, "README.md")} },
			code:   domain.ErrCodeInvalidInput,
		},
		{
			name:   "missing path",
			modify: func(r *domain.SmellRequest, dir string) { r.Paths = []string{filepath.Join(dir, "absent")} },
			code:   domain.ErrCodeFileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := createSmellProject(t)
			createTestFile(t, dir, "README.md", "# readme")
			req := smellRequest(dir)
			tt.modify(&req, dir)

			_, err := NewSmellService(nil, nil, nil).Detect(context.Background(), req)
			require.Error(t, err)
			assert.True(t, domain.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestSmellService_Detect_Cancelled(t *testing.T) {
	dir := createSmellProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSmellService(nil, nil, nil).Detect(ctx, smellRequest(dir))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSmellService_Detectors(t *testing.T) {
	infos := NewSmellService(nil, nil, nil).Detectors()
	require.Len(t, infos, 3)

	gc := infos[2]
	assert.Equal(t, detector.NameGodClass, gc.Name)
	assert.NotEmpty(t, gc.Description)
	assert.Equal(t, []string{detector.MetricWMC, detector.MetricATFD, detector.MetricTCC}, gc.Metrics)
	assert.Equal(t, []string{detector.MetricWMC, detector.MetricTCC, detector.MetricATFD}, gc.FilterOrder)
	require.Len(t, gc.Thresholds, 3)
	assert.Equal(t, domain.ThresholdInfo{Metric: detector.MetricTCC, Absolute: 0.33, Percentage: 0.10, Bound: "keep_low", Float: true}, gc.Thresholds[1])

	assert.Equal(t, []string{detector.MetricNumberParameter}, infos[1].Metrics)
}
