package models

// Row is a single study unit. Scores are kept as strings so that an empty
// value stays distinguishable from a literal zero; non-numeric text is
// treated as unset by the status engine.
type Row struct {
	ID      string `json:"id"`
	Topic   string `json:"topic"`
	Note    bool   `json:"note"`
	Memo    string `json:"memo"`
	Link    string `json:"link"`
	DueDate string `json:"dueDate"`

	Practice1  bool   `json:"practice1"`
	Correct1   bool   `json:"correct1"`
	Score1     string `json:"score1"`
	Score1Date string `json:"score1Date"`

	Practice2  bool   `json:"practice2"`
	Correct2   bool   `json:"correct2"`
	Score2     string `json:"score2"`
	Score2Date string `json:"score2Date"`

	Practice3  bool   `json:"practice3"`
	Correct3   bool   `json:"correct3"`
	Score3     string `json:"score3"`
	Score3Date string `json:"score3Date"`

	// Follow-up review dates cached by the scheduler when a round is scored.
	SuggestedDate2 string `json:"suggestedDate2,omitempty"`
	SuggestedDate3 string `json:"suggestedDate3,omitempty"`
}

// Score returns the raw score string for round 1, 2 or 3.
func (r Row) Score(round int) string {
	switch round {
	case 1:
		return r.Score1
	case 2:
		return r.Score2
	case 3:
		return r.Score3
	}
	return ""
}

// Practice reports whether the practice flag for the given round is set.
func (r Row) Practice(round int) bool {
	switch round {
	case 1:
		return r.Practice1
	case 2:
		return r.Practice2
	case 3:
		return r.Practice3
	}
	return false
}

// Correct reports whether the correction flag for the given round is set.
func (r Row) Correct(round int) bool {
	switch round {
	case 1:
		return r.Correct1
	case 2:
		return r.Correct2
	case 3:
		return r.Correct3
	}
	return false
}

type Subject struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Rows  []Row  `json:"rows"`
}

type Grade struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Color    string    `json:"color,omitempty"`
	Subjects []Subject `json:"subjects"`
}

// Clone returns a deep copy. Merge operations work on copies so that the
// untouched parts of a hierarchy stay byte-identical to the input.
func (g Grade) Clone() Grade {
	out := g
	out.Subjects = make([]Subject, len(g.Subjects))
	for i, s := range g.Subjects {
		out.Subjects[i] = s.Clone()
	}
	return out
}

func (s Subject) Clone() Subject {
	out := s
	out.Rows = make([]Row, len(s.Rows))
	copy(out.Rows, s.Rows)
	return out
}

func CloneGrades(grades []Grade) []Grade {
	out := make([]Grade, len(grades))
	for i, g := range grades {
		out[i] = g.Clone()
	}
	return out
}

// IslandLevel is one entry of the level ladder: the title and icon a learner
// holds from MinExp until the next entry's threshold.
type IslandLevel struct {
	Level  int    `json:"level"`
	MinExp int    `json:"minExp"`
	Title  string `json:"title"`
	Icon   string `json:"icon"`
}

// Reward is a redeemable catalog entry priced in coins.
type Reward struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Cost int    `json:"cost"`
	Icon string `json:"icon"`
}

// UserData is the learner's wallet plus the per-day activity log used by
// the heatmap. Log keys are ISO dates (YYYY-MM-DD).
type UserData struct {
	Exp   int            `json:"exp"`
	Coins int            `json:"coins"`
	Logs  map[string]int `json:"logs"`
}

func (u UserData) Clone() UserData {
	out := u
	out.Logs = make(map[string]int, len(u.Logs))
	for k, v := range u.Logs {
		out.Logs[k] = v
	}
	return out
}

// Settings holds everything the learner can tune: the passing threshold,
// the reward table, the level ladder and the remote sync credentials.
type Settings struct {
	PassingScore int `json:"passingScore"`

	ExpMemo       int `json:"expMemo"`
	ExpPractice   int `json:"expPractice"`
	ExpCorrect    int `json:"expCorrect"`
	ExpScoreEntry int `json:"expScoreEntry"`
	ExpPass       int `json:"expPass"`
	ExpPomodoro   int `json:"expPomodoro"`

	CoinMemo       int `json:"coinMemo"`
	CoinPractice   int `json:"coinPractice"`
	CoinCorrect    int `json:"coinCorrect"`
	CoinScoreEntry int `json:"coinScoreEntry"`
	CoinPass       int `json:"coinPass"`
	CoinPomodoro   int `json:"coinPomodoro"`

	IslandLevels []IslandLevel `json:"islandLevels"`
	Rewards      []Reward      `json:"rewards"`

	AppTitle    string `json:"appTitle,omitempty"`
	AppSubtitle string `json:"appSubtitle,omitempty"`

	// Remote sync credentials. These resolve local-first during a cloud
	// load so a remote snapshot cannot lock the learner out.
	RemoteURL     string `json:"remoteUrl,omitempty"`
	APIKey        string `json:"apiKey,omitempty"`
	AutoCloudSave bool   `json:"autoCloudSave"`
}

// LibraryItem is a bookmarked study resource.
type LibraryItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// Snapshot is the full application state: the six independently persisted
// blobs gathered into one value for cloud sync and the state endpoint.
type Snapshot struct {
	Grades            []Grade       `json:"grades"`
	UserData          UserData      `json:"userData"`
	Library           []LibraryItem `json:"library"`
	LibraryCategories []string      `json:"libraryCategories"`
	Settings          Settings      `json:"settings"`
	TargetDate        string        `json:"targetDate"`
}
