package blocks

// Behaviors returns the blocks that drive components, keyboard, media time
// and reactive conditions.
func Behaviors() []*Definition {
	return []*Definition{

		{
			Type: "component_on_event",
			Init: func(b *Block) {
				b.AppendDummyInput("",
					Label("when"),
					Text("TYPE", ""),
					Text("ID", ""),
					Dropdown("EVENT", "click"),
				)
				b.AppendStatementInput("DO", Label("do"))
			},
		},

		{
			Type: "component_set_scenario",
			Init: func(b *Block) {
				b.AppendDummyInput("", Label("go to scenario"), Text("SCENARIO", ""))
			},
		},

		{
			Type:   "component_get_property",
			Output: true,
			Init: func(b *Block) {
				b.AppendDummyInput("",
					Text("NAME", ""),
					Label("of"),
					Text("TYPE", ""),
					Text("ID", ""),
				)
			},
		},

		{
			Type: "component_set_property",
			Init: func(b *Block) {
				b.AppendValueInput("VALUE",
					Label("set"),
					Text("NAME", ""),
					Label("of"),
					Text("TYPE", ""),
					Text("ID", ""),
					Label("to"),
				)
			},
		},

		{
			Type:   "component_get_block_page",
			Output: true,
			Init: func(b *Block) {
				b.AppendDummyInput("", Label("page of"), Text("ID", ""))
			},
		},

		{
			Type: "component_set_block_page",
			Init: func(b *Block) {
				b.AppendValueInput("INDEX", Label("set page of"), Text("ID", ""), Label("to"))
			},
		},

		{
			Type: "keyboard_on_key",
			// last_key holds the most recently pressed key
			DeveloperVariables: []string{"last_key"},
			Init: func(b *Block) {
				b.AppendDummyInput("", Label("when key"), Text("KEY", "any"))
				b.AppendStatementInput("DO", Label("pressed"))
			},
			Mutators: []Mutator{
				NewOptionalBranch("RELEASE", "released"),
			},
		},

		{
			Type:   "media_time_get",
			Output: true,
			Init: func(b *Block) {
				b.AppendDummyInput("", Label("media time"))
			},
		},

		{
			Type: "media_time_set",
			Init: func(b *Block) {
				b.AppendValueInput("TIME", Label("seek media to"))
			},
		},

		{
			Type: "reactive_when",
			Init: func(b *Block) {
				b.AppendValueInput("CONDITION", Label("when"))
				b.AppendStatementInput("DO", Label("do"))
			},
			Mutators: []Mutator{
				NewOptionalBranch("ELSE", "else"),
			},
		},
	}
}
