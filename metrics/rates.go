package metrics

import (
	"fmt"
	"math"
	"slices"

	"github.com/YuminosukeSato/nbmetrics/core/frame"
	"github.com/YuminosukeSato/nbmetrics/core/parallel"
	"github.com/YuminosukeSato/nbmetrics/pkg/errors"
	"github.com/YuminosukeSato/nbmetrics/pkg/log"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// NamedMatrix は任意のキー（閾値やラベル）に紐づいた混同行列
type NamedMatrix struct {
	Key    any
	Matrix *ConfusionMatrix
}

// NamedMatrices は挿入順を保持する混同行列の集合
type NamedMatrices []NamedMatrix

// Add は末尾に混同行列を追加する
func (n *NamedMatrices) Add(key any, m *ConfusionMatrix) {
	*n = append(*n, NamedMatrix{Key: key, Matrix: m})
}

// sweepParallelWork を超える計算量（閾値数 × サンプル数）の掃引は閾値ごとに並列化する
const sweepParallelWork = 1 << 16

// ThresholdSweep は各閾値で混同行列を計算し、閾値をキーとした集合を返す。
// 結果の順序は thresholds の順序と一致する。
func ThresholdSweep(yTrue, yProba *mat.VecDense, thresholds []float64) (NamedMatrices, error) {
	n := 0
	if yTrue != nil {
		n = yTrue.Len()
	}

	matrices := make([]*ConfusionMatrix, len(thresholds))
	errs := make([]error, len(thresholds))
	parallel.ParallelizeWithThreshold(len(thresholds), len(thresholds)*n, sweepParallelWork, func(start, end int) {
		for i := start; i < end; i++ {
			matrices[i], errs[i] = ComputeConfusionMatrix(yTrue, yProba, thresholds[i])
		}
	})

	out := make(NamedMatrices, 0, len(thresholds))
	for i, t := range thresholds {
		if errs[i] != nil {
			return nil, errors.Wrapf(errs[i], "threshold %v", t)
		}
		out.Add(t, matrices[i])
	}

	log.GetLoggerWithName("metrics").Debug("threshold sweep computed",
		log.OperationKey, log.OperationThresholdSweep,
		log.MatricesKey, len(out),
		log.SamplesKey, n,
	)
	return out, nil
}

// RateRow はRateTableの1行
type RateRow struct {
	Threshold any
	TPR       float64
	FPR       float64
}

// RateTable は Threshold, TPR, FPR の3列からなる表。行番号は0始まりの連番。
type RateTable struct {
	rows     []RateRow
	decimals int
}

// RateColumns はRateTableの列名
var RateColumns = []string{"Threshold", "TPR", "FPR"}

// Len は行数を返す
func (rt *RateTable) Len() int { return len(rt.rows) }

// Row は i 行目を返す
func (rt *RateTable) Row(i int) RateRow { return rt.rows[i] }

// Rows は全行のコピーを返す
func (rt *RateTable) Rows() []RateRow {
	return append([]RateRow(nil), rt.rows...)
}

// Dims implements frame.Table.
func (rt *RateTable) Dims() (r, c int) { return len(rt.rows), len(RateColumns) }

// Frame はRangeIndexを行ラベルに持つ表を返す
func (rt *RateTable) Frame() *frame.Frame {
	data := make([][]any, len(rt.rows))
	for i, row := range rt.rows {
		data[i] = []any{row.Threshold, row.TPR, row.FPR}
	}
	// キー（Threshold列）は丸めずにそのまま表示する
	f, _ := frame.New(data, frame.RangeIndex(len(rt.rows)), frame.NewIndex(RateColumns...),
		frame.WithPrecision(rt.decimals), frame.WithColumnPrecision(0, -1))
	return f
}

// ToHTML implements frame.Table.
func (rt *RateTable) ToHTML() (string, error) {
	return rt.Frame().ToHTML()
}

// AUC は (FPR, TPR) 点を FPR 順に並べ、台形則で面積を計算する。
// NaN を含む行は無視する。有効な点が2つ未満の場合はエラー。
func (rt *RateTable) AUC() (float64, error) {
	type point struct{ x, y float64 }
	pts := make([]point, 0, len(rt.rows))
	for _, row := range rt.rows {
		if math.IsNaN(row.TPR) || math.IsNaN(row.FPR) {
			continue
		}
		pts = append(pts, point{x: row.FPR, y: row.TPR})
	}
	if len(pts) < 2 {
		return 0, errors.NewValueError("RateTable.AUC", fmt.Sprintf("need at least 2 finite points, got %d", len(pts)))
	}

	slices.SortFunc(pts, func(a, b point) int {
		if a.x != b.x {
			if a.x < b.x {
				return -1
			}
			return 1
		}
		switch {
		case a.y < b.y:
			return -1
		case a.y > b.y:
			return 1
		}
		return 0
	})

	var area float64
	for i := 1; i < len(pts); i++ {
		area += (pts[i].x - pts[i-1].x) * (pts[i].y + pts[i-1].y) / 2
	}

	log.GetLoggerWithName("metrics").Debug("auc computed",
		log.OperationKey, log.OperationAUC,
		log.AUCKey, area,
	)
	return area, nil
}

type rateConfig struct {
	strict   bool
	decimals int
}

// RateOption は ComputeTPRFPR の設定
type RateOption func(*rateConfig)

// WithStrictRates は分母がゼロの行をNaNにせずエラーにする
func WithStrictRates() RateOption {
	return func(c *rateConfig) {
		c.strict = true
	}
}

// WithRateDecimals は丸める小数桁数を変更する（デフォルト: 3）
func WithRateDecimals(n int) RateOption {
	return func(c *rateConfig) {
		c.decimals = n
	}
}

// ComputeTPRFPR は各混同行列の TPR = TP/(TP+FN) と FPR = FP/(FP+TN) を計算し、
// 入力順の RateTable を返す。値は小数第3位に丸める（偶数丸め）。
//
// 分母がゼロの場合、デフォルトでは NaN を返し UndefinedMetricWarning を出す。
// WithStrictRates を指定するとエラー（ErrDivisionByZero）になる。
func ComputeTPRFPR(ms NamedMatrices, opts ...RateOption) (*RateTable, error) {
	const op = "ComputeTPRFPR"

	cfg := rateConfig{decimals: 3}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.decimals < 0 {
		return nil, errors.NewValidationError("decimals", "must be non-negative", cfg.decimals)
	}

	rows := make([]RateRow, 0, len(ms))
	for i, nm := range ms {
		if nm.Matrix == nil {
			return nil, errors.NewValueError(op, fmt.Sprintf("nil confusion matrix at position %d (key %v)", i, nm.Key))
		}
		cm := nm.Matrix

		tpr, err := rate(op, "TPR", cm.TP(), cm.TP()+cm.FN(), nm.Key, cfg.strict)
		if err != nil {
			return nil, err
		}
		fpr, err := rate(op, "FPR", cm.FP(), cm.FP()+cm.TN(), nm.Key, cfg.strict)
		if err != nil {
			return nil, err
		}

		rows = append(rows, RateRow{
			Threshold: nm.Key,
			TPR:       scalar.RoundEven(tpr, cfg.decimals),
			FPR:       scalar.RoundEven(fpr, cfg.decimals),
		})
	}

	log.GetLoggerWithName("metrics").Debug("rates computed",
		log.OperationKey, log.OperationTPRFPR,
		log.MatricesKey, len(rows),
	)
	return &RateTable{rows: rows, decimals: cfg.decimals}, nil
}

// rate は num/den を計算する。den == 0 のとき（num も必ず0）は NaN。
func rate(op, metric string, num, den int, key any, strict bool) (float64, error) {
	if den != 0 {
		return float64(num) / float64(den), nil
	}

	condition := "no positive labels (TP+FN is zero)"
	if metric == "FPR" {
		condition = "no negative labels (FP+TN is zero)"
	}
	if strict {
		return 0, errors.NewDivisionByZeroError(op, fmt.Sprintf("%s for key %v: %s", metric, key, condition))
	}
	errors.Warn(errors.NewUndefinedMetricWarning(metric, fmt.Sprintf("%s for key %v", condition, key), math.NaN()))
	return math.NaN(), nil
}
