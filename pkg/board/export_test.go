package board

// Exported for white-box testing of the unexported neighborhood generators
// from the board_test package.
var (
	AdjacentForTest = adjacent
	JumpsForTest    = jumps
)
