package blocks

// Standard returns the general purpose block family.
func Standard() []*Definition {
	return []*Definition{

		{
			Type:   "variables_get",
			Output: true,
			Init: func(b *Block) {
				b.AppendDummyInput("", Var("VAR"))
			},
		},

		{
			Type: "variables_set",
			Init: func(b *Block) {
				b.AppendValueInput("VALUE", Label("set"), Var("VAR"), Label("to"))
			},
		},

		{
			Type:   "math_number",
			Output: true,
			Init: func(b *Block) {
				b.AppendDummyInput("", Number("NUM", "0"))
			},
		},

		{
			Type:   "math_arithmetic",
			Output: true,
			Init: func(b *Block) {
				b.AppendValueInput("A")
				b.AppendValueInput("B", Dropdown("OP", "ADD"))
			},
		},

		{
			Type:   "text",
			Output: true,
			Init: func(b *Block) {
				b.AppendDummyInput("", Text("TEXT", ""))
			},
		},

		{
			Type: "text_print",
			Init: func(b *Block) {
				b.AppendValueInput("TEXT", Label("print"))
			},
		},

		{
			Type:   "logic_boolean",
			Output: true,
			Init: func(b *Block) {
				b.AppendDummyInput("", Dropdown("BOOL", "TRUE"))
			},
		},

		{
			Type:   "logic_compare",
			Output: true,
			Init: func(b *Block) {
				b.AppendValueInput("A")
				b.AppendValueInput("B", Dropdown("OP", "EQ"))
			},
		},

		{
			Type:   "logic_operation",
			Output: true,
			Init: func(b *Block) {
				b.AppendValueInput("A")
				b.AppendValueInput("B", Dropdown("OP", "AND"))
			},
		},

		{
			Type:   "logic_negate",
			Output: true,
			Init: func(b *Block) {
				b.AppendValueInput("BOOL", Label("not"))
			},
		},

		{
			Type: "controls_if",
			Init: func(b *Block) {
				b.AppendValueInput("IF0", Label("if"))
				b.AppendStatementInput("DO0", Label("do"))
			},
			Mutators: []Mutator{
				NewOptionalBranch("ELSE", "else"),
			},
		},

		{
			Type: "controls_repeat_ext",
			Init: func(b *Block) {
				b.AppendValueInput("TIMES", Label("repeat"))
				b.AppendStatementInput("DO", Label("do"))
			},
		},

		{
			Type: "controls_whileUntil",
			Init: func(b *Block) {
				b.AppendValueInput("BOOL", Dropdown("MODE", "WHILE"))
				b.AppendStatementInput("DO", Label("do"))
			},
		},

		{
			Type: "controls_for",
			Init: func(b *Block) {
				b.AppendValueInput("FROM", Label("count with"), Var("VAR"), Label("from"))
				b.AppendValueInput("TO", Label("to"))
				b.AppendValueInput("BY", Label("by"))
				b.AppendStatementInput("DO", Label("do"))
			},
		},
	}
}
