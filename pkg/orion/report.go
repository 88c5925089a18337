package orion

import (
	"context"
	"math"
	"sort"
)

// PRReport is the decoded result of a pull-request impact analysis.
type PRReport struct {
	Summaries []PRSummary `json:"summaries"`
}

// PRSummary compares pull-request runs against the periodic baseline for
// one test configuration.
type PRSummary struct {
	// Config names the test configuration the summary covers.
	Config string `json:"config"`

	// PeriodicAvg holds the baseline values keyed by metric name. The
	// server shapes these per metric, so values stay untyped.
	PeriodicAvg map[string]any `json:"periodic_avg"`

	// Pull holds the per-run results for the pull-request build.
	Pull []PullRun `json:"pull"`
}

// PullRun holds the metric deltas of one pull-request run.
type PullRun struct {
	Metrics map[string]MetricDelta `json:"metrics"`
}

// MetricDelta compares one metric against the periodic baseline.
type MetricDelta struct {
	// PercentageChange is the relative change against the baseline, in
	// percent. Positive means the metric went up.
	PercentageChange float64 `json:"percentage_change"`
}

// DefaultRegressionThreshold is the percentage-change magnitude above
// which a metric counts as regressed.
const DefaultRegressionThreshold = 10.0

// Regression flags a metric whose change exceeded the threshold.
type Regression struct {
	Config           string
	Metric           string
	PercentageChange float64
}

// Increased reports whether the metric moved up.
func (r Regression) Increased() bool {
	return r.PercentageChange > 0
}

// RegressedMetrics returns every metric in the report whose absolute
// percentage change exceeds threshold, sorted by config then metric name.
// A threshold <= 0 uses DefaultRegressionThreshold.
func (r *PRReport) RegressedMetrics(threshold float64) []Regression {
	if threshold <= 0 {
		threshold = DefaultRegressionThreshold
	}

	var regressions []Regression
	for _, summary := range r.Summaries {
		for _, run := range summary.Pull {
			for name, delta := range run.Metrics {
				if math.Abs(delta.PercentageChange) > threshold {
					regressions = append(regressions, Regression{
						Config:           summary.Config,
						Metric:           name,
						PercentageChange: delta.PercentageChange,
					})
				}
			}
		}
	}

	sort.Slice(regressions, func(i, j int) bool {
		if regressions[i].Config != regressions[j].Config {
			return regressions[i].Config < regressions[j].Config
		}
		return regressions[i].Metric < regressions[j].Metric
	})
	return regressions
}

// PRAnalysis runs ReportOnPR and decodes the result into a PRReport.
func (c *Client) PRAnalysis(ctx context.Context, req PRReportRequest) (*PRReport, error) {
	res, err := c.ReportOnPR(ctx, req)
	if err != nil {
		return nil, err
	}
	var report PRReport
	if err := res.Decode(&report); err != nil {
		return nil, err
	}
	return &report, nil
}
