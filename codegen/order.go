package codegen

import "math"

// Order is the binding strength of an emitted expression. Lower binds tighter.
type Order float64

const (
	OrderAtomic         Order = 0
	OrderCollection     Order = 1
	OrderMember         Order = 2.1
	OrderFunctionCall   Order = 2.2
	OrderUnarySign      Order = 4
	OrderMultiplicative Order = 5
	OrderAdditive       Order = 6
	OrderRelational     Order = 11
	OrderLogicalNot     Order = 12
	OrderLogicalAnd     Order = 13
	OrderLogicalOr      Order = 14
	OrderConditional    Order = 15
	OrderLambda         Order = 16
	OrderNone           Order = 99
)

func needsParens(outer, inner Order) bool {
	outerClass := math.Floor(float64(outer))
	innerClass := math.Floor(float64(inner))
	if outerClass > innerClass {
		return false
	}
	if outerClass == innerClass && (outerClass == 0 || outerClass == 99) {
		return false
	}
	return true
}
