package thisvm

type Frame struct {
	Locals   map[string]int64
	ReturnIP int
}
