// internal/analytics/grade.go
package analytics

import (
	"math"

	"swinglab/internal/model"
)

// スカウトグレードの範囲
const (
	GradeMin = 20
	GradeMax = 80
)

// GradeResult は20-80スケールのグレードと定性ラベルです。
type GradeResult struct {
	Grade int              `json:"grade"`
	Label model.GradeLabel `json:"label"`
}

// Grade は実測値を20-80のスカウトグレードに変換します。
// ベンチマークの P20/P50/P80 を基準点とした区分線形補間で、
// 基準点の外側は 20 / 80 で飽和します。補間後は最近接整数へ四捨五入します。
// (metricType, level) のベンチマーク行が無い場合は ErrNoBenchmarkForLevel を返します。
func Grade(value float64, metricType model.MetricType, level model.PlayerLevel) (GradeResult, error) {
	anchors, err := LookupBenchmark(metricType, level)
	if err != nil {
		return GradeResult{}, err
	}

	var g float64
	switch {
	case value <= anchors.P20:
		g = GradeMin
	case value >= anchors.P80:
		g = GradeMax
	case value <= anchors.P50:
		g = 20 + 30*(value-anchors.P20)/(anchors.P50-anchors.P20)
	default:
		g = 50 + 30*(value-anchors.P50)/(anchors.P80-anchors.P50)
	}

	grade := int(math.Round(g))
	return GradeResult{Grade: grade, Label: labelFor(grade)}, nil
}

// labelFor はグレードからラベルを導出します。ちょうど50は average です。
func labelFor(grade int) model.GradeLabel {
	switch {
	case grade < 50:
		return model.LabelBelowAverage
	case grade > 50:
		return model.LabelAboveAverage
	}
	return model.LabelAverage
}
