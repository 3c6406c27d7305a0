package prompt

// TopicsData feeds the topics template.
type TopicsData struct {
	Count          int
	ReferenceBlog  string
	Preferences    string
	ProductTarget  string
	Keywords       List
	ExistingTopics List
}

// ResearchAreaData feeds the research_area template.
type ResearchAreaData struct {
	Topic string
	Area  string
}

// ParseInputData feeds the parse_input template.
type ParseInputData struct {
	Text string
}
