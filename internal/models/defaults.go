package models

// DefaultSettings returns the factory settings. The reward amounts mirror
// the effort each action takes; the level ladder is open-ended and can be
// extended from the settings screen.
func DefaultSettings() Settings {
	return Settings{
		PassingScore: 80,

		ExpMemo:       5,
		ExpPractice:   10,
		ExpCorrect:    10,
		ExpScoreEntry: 15,
		ExpPass:       30,
		ExpPomodoro:   20,

		CoinMemo:       1,
		CoinPractice:   2,
		CoinCorrect:    2,
		CoinScoreEntry: 3,
		CoinPass:       10,
		CoinPomodoro:   5,

		IslandLevels: DefaultIslandLevels(),
		Rewards:      DefaultRewards(),

		AppTitle:    "Island Study Log",
		AppSubtitle: "grow your island, one review at a time",
	}
}

func DefaultIslandLevels() []IslandLevel {
	return []IslandLevel{
		{Level: 1, MinExp: 0, Title: "Driftwood Raft", Icon: "🪵"},
		{Level: 2, MinExp: 100, Title: "Sandy Shore", Icon: "🏖️"},
		{Level: 3, MinExp: 300, Title: "Palm Grove", Icon: "🌴"},
		{Level: 4, MinExp: 600, Title: "Hillside Camp", Icon: "⛺"},
		{Level: 5, MinExp: 1000, Title: "Harbor Town", Icon: "⚓"},
		{Level: 6, MinExp: 1500, Title: "Lighthouse Keep", Icon: "🗼"},
		{Level: 7, MinExp: 2200, Title: "Island Kingdom", Icon: "👑"},
	}
}

func DefaultRewards() []Reward {
	return []Reward{
		{ID: "r_break", Name: "15 minute break", Cost: 20, Icon: "☕"},
		{ID: "r_snack", Name: "Snack of choice", Cost: 40, Icon: "🍪"},
		{ID: "r_episode", Name: "One episode", Cost: 80, Icon: "📺"},
		{ID: "r_game", Name: "Game hour", Cost: 120, Icon: "🎮"},
	}
}

func DefaultUserData() UserData {
	return UserData{Exp: 0, Coins: 0, Logs: map[string]int{}}
}

// DefaultGrades is the bundled starter hierarchy used when no saved data
// exists or the saved blob is unreadable.
func DefaultGrades() []Grade {
	return []Grade{
		{
			ID:    "g_default",
			Name:  "My Island",
			Color: "#8CD19D",
			Subjects: []Subject{
				{
					ID:    "s_default",
					Name:  "General",
					Color: "#5E5244",
					Rows:  []Row{},
				},
			},
		},
	}
}

func DefaultLibrary() []LibraryItem {
	return []LibraryItem{}
}

func DefaultCategories() []string {
	return []string{"Reference", "Video", "Practice"}
}

// DefaultSnapshot assembles the factory state for all six persisted blobs.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Grades:            DefaultGrades(),
		UserData:          DefaultUserData(),
		Library:           DefaultLibrary(),
		LibraryCategories: DefaultCategories(),
		Settings:          DefaultSettings(),
		TargetDate:        "",
	}
}
