package cfg

type Cfg struct {
	// External service credentials
	NotionToken  string
	NotionDB     string
	GeminiAPIKey string
	KakaoToken   string
	OrderFeedURL string

	// Application configuration
	Port              string
	DBPath            string
	PipelinesConfig   string
	WorkerCount       int
	SchedulerInterval int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
