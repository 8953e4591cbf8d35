package codegen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/reusee/taiblock/blocks"
	"github.com/reusee/taiblock/sandbox"
)

type binaryOp struct {
	op    string
	order Order
}

var arithmeticOps = map[string]binaryOp{
	"ADD":      {" + ", OrderAdditive},
	"MINUS":    {" - ", OrderAdditive},
	"MULTIPLY": {" * ", OrderMultiplicative},
	"DIVIDE":   {" / ", OrderMultiplicative},
	"MODULO":   {" % ", OrderMultiplicative},
}

var compareOps = map[string]string{
	"EQ":  "==",
	"NEQ": "!=",
	"LT":  "<",
	"LTE": "<=",
	"GT":  ">",
	"GTE": ">=",
}

func registerStandard(g *Generator) {

	g.Register("variables_get", func(g *Generator, b *blocks.Block) (string, Order, error) {
		ident, err := g.VariableName(b.FieldValue("VAR"))
		if err != nil {
			return "", OrderNone, err
		}
		if g.Reactive(ident) {
			return fmt.Sprintf("%s.get(%s)", sandbox.GlobalStore, quote(ident)), OrderFunctionCall, nil
		}
		return ident, OrderAtomic, nil
	})

	g.Register("variables_set", func(g *Generator, b *blocks.Block) (string, Order, error) {
		ident, err := g.VariableName(b.FieldValue("VAR"))
		if err != nil {
			return "", OrderNone, err
		}
		value, err := g.ValueOr(b, "VALUE", OrderNone, "None")
		if err != nil {
			return "", OrderNone, err
		}
		if g.Reactive(ident) {
			return fmt.Sprintf("%s.set(%s, %s)\n", sandbox.GlobalStore, quote(ident), value), OrderNone, nil
		}
		return ident + " = " + value + "\n", OrderNone, nil
	})

	g.Register("math_number", func(g *Generator, b *blocks.Block) (string, Order, error) {
		text := strings.TrimSpace(b.FieldValue("NUM"))
		f, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return "", OrderNone, fmt.Errorf("bad number %q", text)
		}
		var code string
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			code = strconv.FormatInt(int64(f), 10)
		} else {
			code = strconv.FormatFloat(f, 'g', -1, 64)
		}
		if f < 0 {
			return code, OrderUnarySign, nil
		}
		return code, OrderAtomic, nil
	})

	g.Register("math_arithmetic", func(g *Generator, b *blocks.Block) (string, Order, error) {
		op, ok := arithmeticOps[b.FieldValue("OP")]
		if !ok {
			return "", OrderNone, fmt.Errorf("bad operator %q", b.FieldValue("OP"))
		}
		left, err := g.ValueOr(b, "A", op.order, "0")
		if err != nil {
			return "", OrderNone, err
		}
		right, err := g.ValueOr(b, "B", op.order, "0")
		if err != nil {
			return "", OrderNone, err
		}
		return left + op.op + right, op.order, nil
	})

	g.Register("text", func(g *Generator, b *blocks.Block) (string, Order, error) {
		return quote(b.FieldValue("TEXT")), OrderAtomic, nil
	})

	g.Register("text_print", func(g *Generator, b *blocks.Block) (string, Order, error) {
		text, err := g.ValueOr(b, "TEXT", OrderNone, `""`)
		if err != nil {
			return "", OrderNone, err
		}
		return "print(" + text + ")\n", OrderNone, nil
	})

	g.Register("logic_boolean", func(g *Generator, b *blocks.Block) (string, Order, error) {
		if b.FieldValue("BOOL") == "TRUE" {
			return "True", OrderAtomic, nil
		}
		return "False", OrderAtomic, nil
	})

	g.Register("logic_compare", func(g *Generator, b *blocks.Block) (string, Order, error) {
		op, ok := compareOps[b.FieldValue("OP")]
		if !ok {
			return "", OrderNone, fmt.Errorf("bad operator %q", b.FieldValue("OP"))
		}
		left, err := g.ValueOr(b, "A", OrderRelational, "None")
		if err != nil {
			return "", OrderNone, err
		}
		right, err := g.ValueOr(b, "B", OrderRelational, "None")
		if err != nil {
			return "", OrderNone, err
		}
		return left + " " + op + " " + right, OrderRelational, nil
	})

	g.Register("logic_operation", func(g *Generator, b *blocks.Block) (string, Order, error) {
		op, order := "and", OrderLogicalAnd
		if b.FieldValue("OP") == "OR" {
			op, order = "or", OrderLogicalOr
		}
		left, err := g.ValueOr(b, "A", order, "False")
		if err != nil {
			return "", OrderNone, err
		}
		right, err := g.ValueOr(b, "B", order, "False")
		if err != nil {
			return "", OrderNone, err
		}
		return left + " " + op + " " + right, order, nil
	})

	g.Register("logic_negate", func(g *Generator, b *blocks.Block) (string, Order, error) {
		arg, err := g.ValueOr(b, "BOOL", OrderLogicalNot, "True")
		if err != nil {
			return "", OrderNone, err
		}
		return "not " + arg, OrderLogicalNot, nil
	})

	g.Register("controls_if", func(g *Generator, b *blocks.Block) (string, Order, error) {
		cond, err := g.ValueOr(b, "IF0", OrderNone, "False")
		if err != nil {
			return "", OrderNone, err
		}
		then, err := g.Body(b, "DO0")
		if err != nil {
			return "", OrderNone, err
		}
		code := "if " + cond + ":\n" + then
		if b.Input("ELSE") != nil {
			els, err := g.Body(b, "ELSE")
			if err != nil {
				return "", OrderNone, err
			}
			code += "else:\n" + els
		}
		return code, OrderNone, nil
	})

	g.Register("controls_repeat_ext", func(g *Generator, b *blocks.Block) (string, Order, error) {
		times, err := g.ValueOr(b, "TIMES", OrderNone, "0")
		if err != nil {
			return "", OrderNone, err
		}
		body, err := g.Body(b, "DO")
		if err != nil {
			return "", OrderNone, err
		}
		counter := g.DistinctName("count")
		return fmt.Sprintf("for %s in range(int(%s)):\n%s", counter, times, body), OrderNone, nil
	})

	g.Register("controls_whileUntil", func(g *Generator, b *blocks.Block) (string, Order, error) {
		until := b.FieldValue("MODE") == "UNTIL"
		order := OrderNone
		if until {
			order = OrderLogicalNot
		}
		cond, err := g.ValueOr(b, "BOOL", order, "False")
		if err != nil {
			return "", OrderNone, err
		}
		if until {
			cond = "not " + cond
		}
		body, err := g.Body(b, "DO")
		if err != nil {
			return "", OrderNone, err
		}
		return "while " + cond + ":\n" + body, OrderNone, nil
	})

	g.Register("controls_for", func(g *Generator, b *blocks.Block) (string, Order, error) {
		ident, err := g.VariableName(b.FieldValue("VAR"))
		if err != nil {
			return "", OrderNone, err
		}
		from, err := g.ValueOr(b, "FROM", OrderNone, "0")
		if err != nil {
			return "", OrderNone, err
		}
		to, err := g.ValueOr(b, "TO", OrderNone, "0")
		if err != nil {
			return "", OrderNone, err
		}
		by, err := g.ValueOr(b, "BY", OrderNone, "1")
		if err != nil {
			return "", OrderNone, err
		}
		body, err := g.Body(b, "DO")
		if err != nil {
			return "", OrderNone, err
		}
		counter := ident
		if g.Reactive(ident) {
			// the counter is bound bare and mirrored into the store
			counter = g.DistinctName(ident + "_counter")
			body = fmt.Sprintf("%s%s.set(%s, %s)\n%s",
				g.Indent, sandbox.GlobalStore, quote(ident), counter, body)
		}
		// counts towards TO by the magnitude of BY, a zero step counts by one
		dir := fmt.Sprintf("(1 if int(%s) <= int(%s) else -1)", from, to)
		return fmt.Sprintf(
			"for %s in range(int(%s), int(%s) + %s, (abs(int(%s)) or 1) * %s):\n%s",
			counter, from, to, dir, by, dir, body,
		), OrderNone, nil
	})

}
