// internal/analytics/grade_test.go
package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swinglab/internal/model"
)

func TestGrade(t *testing.T) {
	// 高校レベルの打球速度ベンチマークは P20=70 / P50=80 / P80=88
	tests := []struct {
		name       string
		value      float64
		metricType model.MetricType
		level      model.PlayerLevel
		wantErr    error
		wantGrade  int
		wantLabel  model.GradeLabel
	}{
		{
			name:       "正常系: P50ちょうどはグレード50・ラベルは average",
			value:      80.0,
			metricType: model.MetricExitVelocity,
			level:      model.LevelHighSchool,
			wantGrade:  50,
			wantLabel:  model.LabelAverage,
		},
		{
			name:       "正常系: P20ちょうどはグレード20",
			value:      70.0,
			metricType: model.MetricExitVelocity,
			level:      model.LevelHighSchool,
			wantGrade:  20,
			wantLabel:  model.LabelBelowAverage,
		},
		{
			name:       "正常系: P80ちょうどはグレード80",
			value:      88.0,
			metricType: model.MetricExitVelocity,
			level:      model.LevelHighSchool,
			wantGrade:  80,
			wantLabel:  model.LabelAboveAverage,
		},
		{
			name:       "正常系: P50-P80間は線形補間 (84mph -> 65)",
			value:      84.0,
			metricType: model.MetricExitVelocity,
			level:      model.LevelHighSchool,
			wantGrade:  65,
			wantLabel:  model.LabelAboveAverage,
		},
		{
			name:       "正常系: P20-P50間は線形補間 (75mph -> 35)",
			value:      75.0,
			metricType: model.MetricExitVelocity,
			level:      model.LevelHighSchool,
			wantGrade:  35,
			wantLabel:  model.LabelBelowAverage,
		},
		{
			name:       "正常系: 上限を超えた値は80で飽和",
			value:      110.0,
			metricType: model.MetricExitVelocity,
			level:      model.LevelHighSchool,
			wantGrade:  80,
			wantLabel:  model.LabelAboveAverage,
		},
		{
			name:       "正常系: 下限を下回る値は20で飽和",
			value:      10.0,
			metricType: model.MetricExitVelocity,
			level:      model.LevelHighSchool,
			wantGrade:  20,
			wantLabel:  model.LabelBelowAverage,
		},
		{
			name:       "正常系: バットスピードはユースのベンチマークで算出",
			value:      50.0,
			metricType: model.MetricBatSpeed,
			level:      model.LevelYouth,
			wantGrade:  50,
			wantLabel:  model.LabelAverage,
		},
		{
			name:       "異常系: ベンチマーク未定義のレベルは ErrNoBenchmarkForLevel",
			value:      80.0,
			metricType: model.MetricExitVelocity,
			level:      model.PlayerLevel("semi_pro"),
			wantErr:    model.ErrNoBenchmarkForLevel,
		},
		{
			name:       "異常系: ベンチマーク未定義の計測種別は ErrNoBenchmarkForLevel",
			value:      80.0,
			metricType: model.MetricType("swing_weight"),
			level:      model.LevelHighSchool,
			wantErr:    model.ErrNoBenchmarkForLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Grade(tt.value, tt.metricType, tt.level)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantGrade, result.Grade)
			assert.Equal(t, tt.wantLabel, result.Label)
		})
	}
}

// グレードは入力値に対して単調非減少で、常に [20, 80] に収まること。
func TestGrade_Monotonic(t *testing.T) {
	previous := 0
	for v := 40.0; v <= 110.0; v += 0.5 {
		result, err := Grade(v, model.MetricExitVelocity, model.LevelCollege)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Grade, GradeMin)
		assert.LessOrEqual(t, result.Grade, GradeMax)
		assert.GreaterOrEqual(t, result.Grade, previous, "value=%v", v)
		previous = result.Grade
	}
}

// 同じ入力からは常に同じグレードが得られること。
func TestGrade_Deterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		result, err := Grade(86.7, model.MetricExitVelocity, model.LevelCollege)
		require.NoError(t, err)
		assert.Equal(t, 53, result.Grade) // 50 + 30*(86.7-86)/(93-86) = 53
	}
}
