package codegen

import (
	"fmt"
	"strings"

	"github.com/reusee/taiblock/blocks"
	"github.com/reusee/taiblock/sandbox"
)

func registerBehaviors(g *Generator) {

	g.Register("component_on_event", func(g *Generator, b *blocks.Block) (string, Order, error) {
		event := b.FieldValue("EVENT")
		handler, def, err := g.handler(b, "DO", "on_"+event)
		if err != nil {
			return "", OrderNone, err
		}
		return def + fmt.Sprintf("%s.add_event_listener(%s, %s, %s, %s)\n",
			sandbox.GlobalComponents,
			quote(b.FieldValue("TYPE")),
			quote(b.FieldValue("ID")),
			quote(event),
			handler,
		), OrderNone, nil
	})

	g.Register("component_set_scenario", func(g *Generator, b *blocks.Block) (string, Order, error) {
		return fmt.Sprintf("%s.set_scenario(%s)\n",
			sandbox.GlobalComponents,
			quote(b.FieldValue("SCENARIO")),
		), OrderNone, nil
	})

	g.Register("component_get_property", func(g *Generator, b *blocks.Block) (string, Order, error) {
		return fmt.Sprintf("%s.get_property(%s, %s, %s)",
			sandbox.GlobalComponents,
			quote(b.FieldValue("TYPE")),
			quote(b.FieldValue("ID")),
			quote(b.FieldValue("NAME")),
		), OrderFunctionCall, nil
	})

	g.Register("component_set_property", func(g *Generator, b *blocks.Block) (string, Order, error) {
		value, err := g.ValueOr(b, "VALUE", OrderNone, "None")
		if err != nil {
			return "", OrderNone, err
		}
		return fmt.Sprintf("%s.set_property(%s, %s, %s, %s)\n",
			sandbox.GlobalComponents,
			quote(b.FieldValue("TYPE")),
			quote(b.FieldValue("ID")),
			quote(b.FieldValue("NAME")),
			value,
		), OrderNone, nil
	})

	g.Register("component_get_block_page", func(g *Generator, b *blocks.Block) (string, Order, error) {
		return fmt.Sprintf("%s.get_block_page(%s)",
			sandbox.GlobalComponents,
			quote(b.FieldValue("ID")),
		), OrderFunctionCall, nil
	})

	g.Register("component_set_block_page", func(g *Generator, b *blocks.Block) (string, Order, error) {
		index, err := g.ValueOr(b, "INDEX", OrderNone, "0")
		if err != nil {
			return "", OrderNone, err
		}
		return fmt.Sprintf("%s.set_block_page(%s, %s)\n",
			sandbox.GlobalComponents,
			quote(b.FieldValue("ID")),
			index,
		), OrderNone, nil
	})

	g.Register("keyboard_on_key", func(g *Generator, b *blocks.Block) (string, Order, error) {
		key := quote(b.FieldValue("KEY"))
		handler, def, err := g.handler(b, "DO", "on_key")
		if err != nil {
			return "", OrderNone, err
		}
		if lastKey := g.DeveloperVariableName("last_key"); g.Reactive(lastKey) {
			header := "def " + handler + "():\n"
			def = header + fmt.Sprintf("%s%s.set(%s, %s)\n",
				g.Indent, sandbox.GlobalStore, quote(lastKey), key) + def[len(header):]
		}
		code := def + fmt.Sprintf("%s.add_event_listener(%s, \"keydown\", %s)\n",
			sandbox.GlobalKeyboard, key, handler)
		if b.Input("RELEASE") != nil {
			handler, def, err := g.handler(b, "RELEASE", "on_key_release")
			if err != nil {
				return "", OrderNone, err
			}
			code += def + fmt.Sprintf("%s.add_event_listener(%s, \"keyup\", %s)\n",
				sandbox.GlobalKeyboard, key, handler)
		}
		return code, OrderNone, nil
	})

	g.Register("media_time_get", func(g *Generator, b *blocks.Block) (string, Order, error) {
		return sandbox.GlobalMediaTime + ".get()", OrderFunctionCall, nil
	})

	g.Register("media_time_set", func(g *Generator, b *blocks.Block) (string, Order, error) {
		t, err := g.ValueOr(b, "TIME", OrderNone, "0")
		if err != nil {
			return "", OrderNone, err
		}
		return sandbox.GlobalMediaTime + ".set(" + t + ")\n", OrderNone, nil
	})

	g.Register("reactive_when", func(g *Generator, b *blocks.Block) (string, Order, error) {
		cond, err := g.ValueOr(b, "CONDITION", OrderLambda, "False")
		if err != nil {
			return "", OrderNone, err
		}
		then, thenDef, err := g.handler(b, "DO", "when_then")
		if err != nil {
			return "", OrderNone, err
		}
		defs := thenDef
		args := []string{"lambda: " + cond, then}
		if b.Input("ELSE") != nil {
			els, elseDef, err := g.handler(b, "ELSE", "when_else")
			if err != nil {
				return "", OrderNone, err
			}
			defs += elseDef
			args = append(args, els)
		}
		return defs + sandbox.GlobalWatchWhen + "(" + strings.Join(args, ", ") + ")\n", OrderNone, nil
	})

}

// handler emits a function definition whose body is the named statement input.
func (g *Generator) handler(b *blocks.Block, input, base string) (name, def string, err error) {
	body, err := g.Body(b, input)
	if err != nil {
		return "", "", err
	}
	name = g.DistinctName(base)
	return name, "def " + name + "():\n" + body, nil
}
