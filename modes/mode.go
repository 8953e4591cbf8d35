package modes

type Mode int

const (
	ModeDevelopment Mode = iota + 1
	ModeProduction
)

func (m Mode) String() string {
	switch m {
	case ModeDevelopment:
		return "development"
	case ModeProduction:
		return "production"
	}
	return "unknown"
}
