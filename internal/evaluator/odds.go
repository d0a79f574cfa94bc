package evaluator

import "fmt"

// Ratio is an odds ratio expressed against one, e.g. pot odds of 2:1.
type Ratio struct {
	Value float64
}

// String formats the ratio as X:1 with one decimal, dropping the decimal once
// the ratio reaches 10 (matching how the odds are taught).
func (r Ratio) String() string {
	if r.Value >= 10 {
		return fmt.Sprintf("%.0f:1", r.Value)
	}
	return fmt.Sprintf("%.1f:1", r.Value)
}

// PotOdds returns the pot odds ratio pot:call. A zero call amount means there
// is nothing to call and the ratio is 0:1.
func PotOdds(pot, call int) Ratio {
	if call == 0 {
		return Ratio{}
	}
	return Ratio{Value: float64(pot) / float64(call)}
}

// WinOdds returns the odds against improving: (unseen − outs) : outs.
// Zero outs yields 999:1, effectively impossible.
func WinOdds(outs, unseen int) Ratio {
	if outs == 0 {
		return Ratio{Value: 999}
	}
	return Ratio{Value: float64(unseen-outs) / float64(outs)}
}

// ShouldCall reports whether calling is profitable: pot odds better than the
// odds against improving.
func ShouldCall(potOdds, winOdds Ratio) bool {
	return potOdds.Value > winOdds.Value
}
