package cfg

type Cfg struct {
	// Content pipeline paths
	ContentDir string
	FeedsDir   string
	OutputDir  string
	CacheDir   string
	SiteFile   string
	DBPath     string

	// Server configuration
	Port         string
	BaseUrl      string
	APIAccessKey string

	// Scheduler configuration
	WorkerCount       int
	SchedulerInterval int

	// Application metadata
	Timezone string
	Serve    bool
	Debug    bool
	Version  string
}
