package tt

// Exported for white-box testing: lets tests force a specific cluster count
// instead of the MB-rounded size NewSearchTable/NewPerftTable would pick.
func NewSearchTableForTest(clusters int) *SearchTable {
	return &SearchTable{clusters: make([]cluster, clusters)}
}

func NewPerftTableForTest(clusters int) *PerftTable {
	return &PerftTable{clusters: make([]cluster, clusters)}
}
