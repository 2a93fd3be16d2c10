package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Application configuration
	Port              string
	SourcesFile       string
	CronSecret        string
	SchedulerInterval int
	DedupFailClosed   bool
	ExtractContent    bool

	// LLM configuration
	OpenAIAPIKey     string
	OpenAIEndpoint   string
	OpenAIModel      string
	InputCostPer1K   float64
	OutputCostPer1K  float64
	SummaryMaxTokens int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
