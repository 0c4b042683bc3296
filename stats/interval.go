package stats

import (
	"fmt"

	"github.com/YuminosukeSato/regkit/pkg/errors"
)

// Interval は点推定とその区間
type Interval struct {
	Estimate float64
	Lower    float64
	Upper    float64
}

// Contains は other が i の内側（端点を含む）にあるかを返す
func (i Interval) Contains(other Interval) bool {
	return i.Lower <= other.Lower && other.Upper <= i.Upper
}

// Width は区間の幅を返す
func (i Interval) Width() float64 {
	return i.Upper - i.Lower
}

func (i Interval) String() string {
	return fmt.Sprintf("%.6g [%.6g, %.6g]", i.Estimate, i.Lower, i.Upper)
}

func checkAlpha(alpha float64) error {
	if !(alpha > 0 && alpha < 1) {
		return errors.NewValidationError("alpha", "significance level must be in (0, 1)", alpha)
	}
	return nil
}
