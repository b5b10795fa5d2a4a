package report

// MetricLabel names a metric and explains it in a short hint.
type MetricLabel struct {
	Label string
	Hint  string
}

// Locale holds the fixed report text of one language. Format strings take
// the generation time or today's date.
type Locale struct {
	Language string

	Header    string
	Period    string
	Generated string
	Intro     string
	Footer    string
	Fallback  string

	BasicTitle    string
	TotalPosts    string
	TotalViews    string
	TotalForwards string

	AveragesTitle string
	AvgViews      MetricLabel
	AvgForwards   MetricLabel
	Engagement    MetricLabel

	AdvancedTitle   string
	ViewsPerForward MetricLabel
	Virality        MetricLabel
	UniqueChannels  MetricLabel

	DistributionTitle string
	PostsPerDay       MetricLabel
	PeakDailyPosts    MetricLabel
	ActivityRatio     MetricLabel

	NoContent         string
	NoContentFallback string
}

var English = Locale{
	Language: "en",

	Header:    "🇫🇮 Finland-Related Messages Summary",
	Period:    "Analysis Period",
	Generated: "Generated",
	Intro:     "🔍 Analysis of Messages about Finland and Generated Summary:",
	Footer:    "💡 _Message IDs are clickable links to original posts_",
	Fallback:  "Finland News Intelligence Report (%s)",

	BasicTitle:    "📊 Basic Metrics",
	TotalPosts:    "Total Messages Analyzed (related to Finland)",
	TotalViews:    "Total Views",
	TotalForwards: "Total Forwards",

	AveragesTitle: "📈 Average Metrics",
	AvgViews:      MetricLabel{"Avg Views/Post", "(how many views each post related to Finland gets on average)"},
	AvgForwards:   MetricLabel{"Avg Forwards/Post", "(how many times each post related to Finland is shared on average)"},
	Engagement:    MetricLabel{"Base Engagement", "(how many viewers share the content about Finland)"},

	AdvancedTitle:   "🔄 Advanced Engagement",
	ViewsPerForward: MetricLabel{"Views/Forwards Ratio", "(how many people view before someone shares)"},
	Virality:        MetricLabel{"Virality Score", "(how likely content is to spread: forwards/post ÷ views/forwards×100)"},
	UniqueChannels:  MetricLabel{"Unique Channels", "(number of different channels posting about Finland)"},

	DistributionTitle: "📊 Distribution Patterns",
	PostsPerDay:       MetricLabel{"Posts/Day", "(average number of posts each day)"},
	PeakDailyPosts:    MetricLabel{"Peak Daily Posts", "(highest number of posts in one day)"},
	ActivityRatio:     MetricLabel{"Channel Activity Ratio", "(average posts about Finland per channel)"},

	NoContent:         "Today (%s) no messages about Finland 🇫🇮 found in the selected channels!",
	NoContentFallback: "No messages about Finland found %s",
}

var Finnish = Locale{
	Language: "fi",

	Header:    "🇫🇮 Suomeen liittyvien viestien yhteenveto",
	Period:    "Analyysiajanjakso",
	Generated: "Luotu",
	Intro:     "🔍 Suomea koskevien viestien analyysi ja yhteenveto:",
	Footer:    "💡 _Viesti-ID:t ovat klikattavia linkkejä alkuperäisiin julkaisuihin_",
	Fallback:  "Suomeen Liittyvien Viestien Yhteenveto (sama kuin edellinen suomeksi) (%s)",

	BasicTitle:    "📊 Perustiedot",
	TotalPosts:    "Analysoituja viestejä (Suomeen liittyvät)",
	TotalViews:    "Näyttökerrat yhteensä",
	TotalForwards: "Edelleenlähetykset yhteensä",

	AveragesTitle: "📈 Keskiarvot",
	AvgViews:      MetricLabel{"Näyttöjä/viesti", "(kuinka monta näyttökertaa kukin Suomeen liittyvä viesti saa keskimäärin)"},
	AvgForwards:   MetricLabel{"Edelleenlähetyksiä/viesti", "(kuinka monta kertaa kutakin Suomeen liittyvää viestiä jaetaan keskimäärin)"},
	Engagement:    MetricLabel{"Perussitouttavuus", "(kuinka moni katsojista jakaa Suomeen liittyvää sisältöä)"},

	AdvancedTitle:   "🔄 Edistyneet sitoutumistiedot",
	ViewsPerForward: MetricLabel{"Näyttöjen/edelleenlähetysten suhde", "(kuinka moni katsoo ennen kuin joku jakaa)"},
	Virality:        MetricLabel{"Viraalisuuspisteet", "(sisällön leviämistodennäköisyys: edelleenlähetykset/viesti ÷ näytöt/edelleenlähetykset×100)"},
	UniqueChannels:  MetricLabel{"Eri kanavat", "(Suomesta julkaisevien kanavien määrä)"},

	DistributionTitle: "📊 Jakaumamallit",
	PostsPerDay:       MetricLabel{"Viestejä/päivä", "(viestien keskimäärä päivässä)"},
	PeakDailyPosts:    MetricLabel{"Päivän huippumäärä", "(suurin viestimäärä yhtenä päivänä)"},
	ActivityRatio:     MetricLabel{"Kanava-aktiivisuussuhde", "(Suomea koskevien viestien keskiarvo per kanava)"},

	NoContent:         "Tänään (%s) valituista kanavista ei löytynyt Suomeen 🇫🇮 liittyviä viestejä!",
	NoContentFallback: "Ei Suomeen liittyviä viestejä %s",
}
