// internal/analytics/aggregate_test.go
package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swinglab/internal/model"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func batSpeedSwings(values ...float64) []*model.SwingRecord {
	records := make([]*model.SwingRecord, 0, len(values))
	for i, v := range values {
		records = append(records, &model.SwingRecord{
			MetricType:  model.MetricBatSpeed,
			SwingNumber: i + 1,
			BatSpeed:    fptr(v),
		})
	}
	return records
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name       string
		metricType model.MetricType
		records    []*model.SwingRecord
		wantErr    error
		wantCount  int
		wantAvg    *float64
		wantMax    *float64
		wantMin    *float64
	}{
		{
			name:       "正常系: 平均は小数第1位へ四捨五入される",
			metricType: model.MetricBatSpeed,
			records:    batSpeedSwings(75.5, 78.3, 82.1, 76.8, 79.2),
			wantCount:  5,
			wantAvg:    fptr(78.4), // 78.38 -> 78.4
			wantMax:    fptr(82.1),
			wantMin:    fptr(75.5),
		},
		{
			name:       "正常系: 空入力は Count=0 で統計は nil（エラーにしない）",
			metricType: model.MetricExitVelocity,
			records:    nil,
			wantCount:  0,
		},
		{
			name:       "正常系: 計測値が nil のレコードは集計から除外される",
			metricType: model.MetricBatSpeed,
			records: []*model.SwingRecord{
				{MetricType: model.MetricBatSpeed, BatSpeed: fptr(60.0)},
				{MetricType: model.MetricBatSpeed, BatSpeed: nil}, // レガシー行
				{MetricType: model.MetricBatSpeed, BatSpeed: fptr(64.0)},
			},
			wantCount: 3,
			wantAvg:   fptr(62.0),
			wantMax:   fptr(64.0),
			wantMin:   fptr(60.0),
		},
		{
			name:       "正常系: 全件 nil なら統計も nil（0にしない）",
			metricType: model.MetricExitVelocity,
			records: []*model.SwingRecord{
				{MetricType: model.MetricExitVelocity},
				{MetricType: model.MetricExitVelocity},
			},
			wantCount: 2,
		},
		{
			name:       "異常系: 計測種別の混在は ErrInvalidMetricType",
			metricType: model.MetricBatSpeed,
			records: []*model.SwingRecord{
				{MetricType: model.MetricBatSpeed, BatSpeed: fptr(60.0)},
				{MetricType: model.MetricExitVelocity, ExitVelocity: fptr(90.0)},
			},
			wantErr: model.ErrInvalidMetricType,
		},
		{
			name:       "異常系: 未知の計測種別は ErrInvalidMetricType",
			metricType: model.MetricType("launch_monitor"),
			records:    nil,
			wantErr:    model.ErrInvalidMetricType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := Aggregate(tt.metricType, tt.records)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.metricType, summary.MetricType)
			assert.Equal(t, tt.wantCount, summary.Count)
			assert.Equal(t, tt.wantAvg, summary.Avg)
			assert.Equal(t, tt.wantMax, summary.Max)
			assert.Equal(t, tt.wantMin, summary.Min)
		})
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	records := batSpeedSwings(61.2, 58.9, 63.4, 60.0)

	first, err := Aggregate(model.MetricBatSpeed, records)
	require.NoError(t, err)
	second, err := Aggregate(model.MetricBatSpeed, records)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 78.4, Round1(78.38))
	assert.Equal(t, 1.3, Round1(1.25)) // half away from zero
	assert.Equal(t, -1.3, Round1(-1.25))
	assert.Equal(t, 80.0, Round1(80.0))
}
