// internal/analytics/benchmark.go
package analytics

import "swinglab/internal/model"

// BenchmarkAnchors は (計測種別, レベル) ごとのパーセンタイル基準値です。
// P20/P50/P80 がそれぞれグレード 20/50/80 に対応します。
// プロセス起動時に一度だけ参照される静的データで、実行時には変更しません。
type BenchmarkAnchors struct {
	P20 float64 // 20パーセンタイル相当の実測値 (mph)
	P50 float64 // 50パーセンタイル相当
	P80 float64 // 80パーセンタイル相当
}

// benchmarks はグレード算出の唯一の基準表です。
// UIや他の層にしきい値を複製しないこと。
var benchmarks = map[model.MetricType]map[model.PlayerLevel]BenchmarkAnchors{
	model.MetricBatSpeed: {
		model.LevelYouth:        {P20: 42.0, P50: 50.0, P80: 58.0},
		model.LevelHighSchool:   {P20: 55.0, P50: 62.0, P80: 70.0},
		model.LevelCollege:      {P20: 62.0, P50: 68.0, P80: 74.0},
		model.LevelProfessional: {P20: 66.0, P50: 71.0, P80: 76.0},
	},
	model.MetricExitVelocity: {
		model.LevelYouth:        {P20: 55.0, P50: 65.0, P80: 75.0},
		model.LevelHighSchool:   {P20: 70.0, P50: 80.0, P80: 88.0},
		model.LevelCollege:      {P20: 78.0, P50: 86.0, P80: 93.0},
		model.LevelProfessional: {P20: 83.0, P50: 90.0, P80: 96.0},
	},
}

// LookupBenchmark は基準値を返します。該当行が無い場合は ErrNoBenchmarkForLevel。
// 推測でのグレード付けは行わず、フォールバックは呼び出し側の判断に委ねます。
func LookupBenchmark(metricType model.MetricType, level model.PlayerLevel) (BenchmarkAnchors, error) {
	byLevel, ok := benchmarks[metricType]
	if !ok {
		return BenchmarkAnchors{}, model.ErrNoBenchmarkForLevel
	}
	anchors, ok := byLevel[level]
	if !ok {
		return BenchmarkAnchors{}, model.ErrNoBenchmarkForLevel
	}
	return anchors, nil
}
