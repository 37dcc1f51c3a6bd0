// internal/analytics/zone.go
package analytics

import "swinglab/internal/model"

// ストライクゾーンの13分割グリッド。
// 1-9 がゾーン内の3x3、10-13 がゾーン外の四隅です。
// レイアウトは固定のドメイン知識で、描画側ともこの定義を共有します。
const (
	ZoneCount     = 13
	ZoneInMin     = 1
	ZoneInMax     = 9
	ZoneCornerMin = 10
	ZoneCornerMax = 13
)

// AllZones は13セル全てのゾーン番号です。
var AllZones = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}

// AggregateByZone はゾーンごとの平均打球速度を計算します。
// 戻り値は必ず13キー全てを含み、該当スイングが無いゾーンは nil です（0ではない）。
// strike_zone が nil のレコードはどのゾーンにも入れません
// （全体平均には Aggregate 側で含まれます）。
func AggregateByZone(records []*model.SwingRecord) map[int]*float64 {
	sums := make(map[int]float64, ZoneCount)
	counts := make(map[int]int, ZoneCount)

	for _, r := range records {
		if r.ExitVelocity == nil || r.StrikeZone == nil {
			continue
		}
		zone := *r.StrikeZone
		if zone < ZoneInMin || zone > ZoneCornerMax {
			continue
		}
		sums[zone] += *r.ExitVelocity
		counts[zone]++
	}

	result := make(map[int]*float64, ZoneCount)
	for _, zone := range AllZones {
		if counts[zone] == 0 {
			result[zone] = nil
			continue
		}
		avg := Round1(sums[zone] / float64(counts[zone]))
		result[zone] = &avg
	}
	return result
}
