package modes

type Mode uint8

const (
	ModeProduction Mode = iota + 1
	// development mode verifies generated code before it runs
	ModeDevelopment
)

func (m Mode) String() string {
	switch m {
	case ModeProduction:
		return "production"
	case ModeDevelopment:
		return "development"
	}
	return "unknown"
}
