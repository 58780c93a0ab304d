package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("ConfusionMatrix", 4, 3, 0)

	// 基本的なエラーメッセージの確認
	want := "nbmetrics: ConfusionMatrix: dimension mismatch on axis 0 (rows). Expected 4, got 3"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// DimensionError型にキャスト可能か確認
	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Fatal("Error should be castable to *DimensionError")
	}
	if dimErr.Expected != 4 || dimErr.Got != 3 {
		t.Errorf("unexpected fields: %+v", dimErr)
	}

	// スタックトレースの存在確認
	if !strings.Contains(fmt.Sprintf("%+v", err), "errors_test.go") {
		t.Error("Expected stack trace to contain test file name")
	}
}

func TestNewValueError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
		target  error
	}{
		{
			name:    "plain",
			err:     NewValueError("TPRFPR", "nil matrix at position 2"),
			wantMsg: "nbmetrics: TPRFPR: nil matrix at position 2",
		},
		{
			name:    "empty input",
			err:     NewEmptyInputError("ConfusionMatrix"),
			wantMsg: "nbmetrics: ConfusionMatrix: empty input",
			target:  ErrEmptyData,
		},
		{
			name:    "division by zero",
			err:     NewDivisionByZeroError("TPRFPR", "TP+FN is zero"),
			wantMsg: "nbmetrics: TPRFPR: TP+FN is zero",
			target:  ErrDivisionByZero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", tt.err.Error(), tt.wantMsg)
			}

			// ValueError型にキャスト可能か確認
			var valErr *ValueError
			if !As(tt.err, &valErr) {
				t.Error("Error should be castable to *ValueError")
			}

			if tt.target != nil && !Is(tt.err, tt.target) {
				t.Errorf("Expected Is(err, %v) to be true", tt.target)
			}
		})
	}
}

func TestNewTypeError(t *testing.T) {
	err := NewTypeError("SideBySide", 1, "not a table", "frame.Table or mat.Matrix")

	want := "nbmetrics: SideBySide: unsupported type string at position 1, want frame.Table or mat.Matrix"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var typeErr *TypeError
	if !As(err, &typeErr) {
		t.Fatal("Error should be castable to *TypeError")
	}
	if typeErr.Index != 1 {
		t.Errorf("Index = %d, want 1", typeErr.Index)
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("threshold", "must be finite", math.Inf(1))

	want := "nbmetrics: validation failed for parameter 'threshold': must be finite (got: +Inf)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestUndefinedMetricWarning(t *testing.T) {
	w := NewUndefinedMetricWarning("TPR", "no positive labels", math.NaN())

	if !strings.Contains(w.Error(), "'TPR' is ill-defined") {
		t.Errorf("unexpected message: %s", w.Error())
	}
}

func TestWarnRouting(t *testing.T) {
	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(nil)

	Warn(NewUndefinedMetricWarning("FPR", "no negative labels", math.NaN()))
	if len(got) != 1 {
		t.Fatalf("handler called %d times, want 1", len(got))
	}

	// zerolog関数が設定されている場合はそちらが優先される
	var zl []error
	SetZerologWarnFunc(func(w error) { zl = append(zl, w) })
	defer SetZerologWarnFunc(nil)

	Warn(New("second"))
	if len(got) != 1 || len(zl) != 1 {
		t.Errorf("handler=%d zerolog=%d, want 1 and 1", len(got), len(zl))
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d, got %d", "ConfusionMatrix", 10, 0)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "in ConfusionMatrix: expected 10, got 0"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}
