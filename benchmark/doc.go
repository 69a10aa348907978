/*
Package benchmark implements the metric adapter family of the platform.

A BenchmarkMetric converts the raw outcome data a runner recorded for a trial
into standardized observation records (core.Data). Every observed metric can
produce a ground-truth counterpart via MakeGroundTruthMetric: a noiseless
variant with a deterministically derived name, used to evaluate true
performance absent observation noise. The transform is idempotent; calling it
on a ground-truth metric returns the metric itself.

Raw data crosses the Fetch Bridge: the Fetcher interface. The default bridge
reads the run metadata written by a runner (Ys, Yvars, Ys_true per arm).
Expected failure modes, such as data not yet being available, travel as
FetchFailure values inside FetchResult; only programmer errors (unsupported
fetch options) are returned as errors.

The package also provides synthetic test problems (Branin, Hartmann6,
BraninCurrin) and a SyntheticRunner that evaluates them with optional
Gaussian observation noise.
*/
package benchmark
