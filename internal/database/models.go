package database

// Run is the stored record of one pipeline run.
type Run struct {
	ID             string
	CreatedAt      *string
	SurveyPath     string
	LayoutPath     string
	EventsPath     string
	PanelPath      string
	ReferenceYear  int
	SurveyRecords  int
	EventRecords   int
	PanelRows      int
	DroppedEvents  int
	RegionsMatched int
}

// Stats contains aggregate archive statistics.
type Stats struct {
	Runs               int
	PanelRows          int
	RegionProfiles     int
	TotalDroppedEvents int
	LastRunAt          string
}

// RegionCoverage summarizes one region's share of a run's panel.
type RegionCoverage struct {
	Region    string
	Events    int
	FirstYear int
	LastYear  int
}
