// Package metrics は二値分類器の評価指標を提供する。
// 予測確率と閾値から混同行列を作り、複数の混同行列からTPR/FPRの表を作る。
package metrics

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/nbmetrics/core/frame"
	"github.com/YuminosukeSato/nbmetrics/pkg/errors"
	"github.com/YuminosukeSato/nbmetrics/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// 行・列ラベルの並びは [1, 0]（陽性クラスが先）
var classLabels = []string{"1", "0"}

const (
	rowLevel = "True"
	colLevel = "Prediction"
)

// ConfusionMatrix は二値分類の混同行列（不変）
//
//	                 Prediction=1  Prediction=0
//	True=1           TP            FN
//	True=0           FP            TN
//
// mat.Matrix と frame.Table を実装する。
type ConfusionMatrix struct {
	counts [2][2]int
}

// NewConfusionMatrix は各セルのカウントから混同行列を作成する
func NewConfusionMatrix(tp, fn, fp, tn int) (*ConfusionMatrix, error) {
	names := [4]string{"tp", "fn", "fp", "tn"}
	for i, v := range [4]int{tp, fn, fp, tn} {
		if v < 0 {
			return nil, errors.NewValidationError(names[i], "count must be non-negative", v)
		}
	}
	return &ConfusionMatrix{counts: [2][2]int{{tp, fn}, {fp, tn}}}, nil
}

// ConfusionMatrixFromDense は2×2行列（[1, 0]順）から混同行列を作成する。
// 各要素は非負の整数値でなければならない。
func ConfusionMatrixFromDense(m mat.Matrix) (*ConfusionMatrix, error) {
	if m == nil {
		return nil, errors.NewEmptyInputError("ConfusionMatrixFromDense")
	}
	r, c := m.Dims()
	if r != 2 {
		return nil, errors.NewDimensionError("ConfusionMatrixFromDense", 2, r, 0)
	}
	if c != 2 {
		return nil, errors.NewDimensionError("ConfusionMatrixFromDense", 2, c, 1)
	}

	var cm ConfusionMatrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			v := m.At(i, j)
			if v < 0 || v != math.Trunc(v) || math.IsInf(v, 0) {
				return nil, errors.NewValidationError(fmt.Sprintf("m[%d][%d]", i, j), "count must be a non-negative integer", v)
			}
			// float64(math.MaxInt) は 2^63 に丸められるので >= で比較する
			if v >= float64(math.MaxInt) {
				return nil, errors.NewValidationError(fmt.Sprintf("m[%d][%d]", i, j), "count overflows int", v)
			}
			cm.counts[i][j] = int(v)
		}
	}
	return &cm, nil
}

// ComputeConfusionMatrix は予測確率と閾値から混同行列を計算する。
// 予測は yProba[i] >= threshold のとき陽性（1）となる。
//
// yTrue の値は 0 または 1 でなければならない。それ以外の値（3クラス以上を含む）はエラー。
func ComputeConfusionMatrix(yTrue, yProba *mat.VecDense, threshold float64) (*ConfusionMatrix, error) {
	const op = "ComputeConfusionMatrix"

	// 入力検証
	if yTrue == nil || yProba == nil || yTrue.Len() == 0 || yProba.Len() == 0 {
		return nil, errors.NewEmptyInputError(op)
	}
	n := yTrue.Len()
	if yProba.Len() != n {
		return nil, errors.NewDimensionError(op, n, yProba.Len(), 0)
	}
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return nil, errors.NewValidationError("threshold", "must be a finite number", threshold)
	}

	var cm ConfusionMatrix
	for i := 0; i < n; i++ {
		row, err := classRow(yTrue.AtVec(i))
		if err != nil {
			return nil, errors.NewValueError(op, fmt.Sprintf("yTrue[%d]: %v", i, err))
		}
		p := yProba.AtVec(i)
		if math.IsNaN(p) {
			return nil, errors.NewValueError(op, fmt.Sprintf("yProba[%d] is NaN", i))
		}

		col := 1
		if p >= threshold {
			col = 0
		}
		cm.counts[row][col]++
	}

	log.GetLoggerWithName("metrics").Debug("confusion matrix computed",
		log.OperationKey, log.OperationConfusionMatrix,
		log.SamplesKey, n,
		log.ThresholdKey, threshold,
		log.PositivesKey, cm.PredictedPositives(),
	)
	return &cm, nil
}

// classRow はラベルを行番号に変換する（1 → 0行目, 0 → 1行目）
func classRow(label float64) (int, error) {
	switch label {
	case 1:
		return 0, nil
	case 0:
		return 1, nil
	default:
		return 0, errors.Newf("label %v is not binary (want 0 or 1)", label)
	}
}

// TP は真陽性（True=1, Prediction=1）の数
func (cm *ConfusionMatrix) TP() int { return cm.counts[0][0] }

// FN は偽陰性（True=1, Prediction=0）の数
func (cm *ConfusionMatrix) FN() int { return cm.counts[0][1] }

// FP は偽陽性（True=0, Prediction=1）の数
func (cm *ConfusionMatrix) FP() int { return cm.counts[1][0] }

// TN は真陰性（True=0, Prediction=0）の数
func (cm *ConfusionMatrix) TN() int { return cm.counts[1][1] }

// Total は全サンプル数
func (cm *ConfusionMatrix) Total() int {
	return cm.TP() + cm.FN() + cm.FP() + cm.TN()
}

// PredictedPositives は陽性と予測された数（TP + FP）
func (cm *ConfusionMatrix) PredictedPositives() int {
	return cm.TP() + cm.FP()
}

// Count は (i, j) セルの整数カウントを返す
func (cm *ConfusionMatrix) Count(i, j int) int {
	return cm.counts[i][j]
}

// Dims implements mat.Matrix.
func (cm *ConfusionMatrix) Dims() (r, c int) { return 2, 2 }

// At implements mat.Matrix.
func (cm *ConfusionMatrix) At(i, j int) float64 {
	return float64(cm.counts[i][j])
}

// T implements mat.Matrix.
func (cm *ConfusionMatrix) T() mat.Matrix {
	return mat.Transpose{Matrix: cm}
}

// Dense は混同行列のコピーを *mat.Dense として返す
func (cm *ConfusionMatrix) Dense() *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		cm.At(0, 0), cm.At(0, 1),
		cm.At(1, 0), cm.At(1, 1),
	})
}

// Frame は行ラベル ("True", {"1","0"})、列ラベル ("Prediction", {"1","0"}) 付きの表を返す
func (cm *ConfusionMatrix) Frame() *frame.Frame {
	f, _ := frame.New(
		[][]any{
			{cm.counts[0][0], cm.counts[0][1]},
			{cm.counts[1][0], cm.counts[1][1]},
		},
		frame.FromProduct([]string{rowLevel}, classLabels),
		frame.FromProduct([]string{colLevel}, classLabels),
	)
	return f
}

// ToHTML implements frame.Table.
func (cm *ConfusionMatrix) ToHTML() (string, error) {
	return cm.Frame().ToHTML()
}

// String は混同行列を簡易表示する
func (cm *ConfusionMatrix) String() string {
	return fmt.Sprintf("ConfusionMatrix{TP: %d, FN: %d, FP: %d, TN: %d}", cm.TP(), cm.FN(), cm.FP(), cm.TN())
}
