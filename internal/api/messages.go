package api

import "time"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair is returned by Login and RefreshToken.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type Empty struct{}

// Instruments

type Option struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

type Instrument struct {
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Preamble  string     `json:"preamble,omitempty"`
	MaxScore  int        `json:"max_score"`
	Questions []Question `json:"questions"`
}

type ListInstrumentsResponse struct {
	Instruments []Instrument `json:"instruments"`
}

// Check-ins

type LogMoodRequest struct {
	Mood string  `json:"mood"`
	Note *string `json:"note,omitempty"`
}

type MoodLog struct {
	ID        string    `json:"id"`
	Mood      string    `json:"mood"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SubmitQuestionnaireRequest struct {
	Type    string         `json:"type"`
	Answers map[string]int `json:"answers"`
}

type QuestionnaireResult struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Score     int       `json:"score"`
	MaxScore  int       `json:"max_score"`
	CreatedAt time.Time `json:"created_at"`
}

// Dashboard

type Snapshot struct {
	Mood       int `json:"mood"`
	Focus      int `json:"focus"`
	Anxiety    int `json:"anxiety"`
	Depression int `json:"depression"`
}

type MissingDimension struct {
	Dimension string `json:"dimension"`
	Label     string `json:"label"`
}

type PhoneDependence struct {
	Enabled bool   `json:"enabled"`
	Score   *int   `json:"score,omitempty"`
	Tier    string `json:"tier,omitempty"`
}

type Dashboard struct {
	Snapshot    Snapshot           `json:"snapshot"`
	Missing     []MissingDimension `json:"missing"`
	Phone       PhoneDependence    `json:"phone"`
	Preferences Preferences        `json:"preferences"`
	Degraded    bool               `json:"degraded"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// Preferences

type Trackers struct {
	Mood            bool `json:"mood"`
	Focus           bool `json:"focus"`
	Anxiety         bool `json:"anxiety"`
	Depression      bool `json:"depression"`
	PhoneDependence bool `json:"phone_dependence"`
}

type Preferences struct {
	Trackers  Trackers  `json:"trackers"`
	Language  string    `json:"language"`
	FontSize  string    `json:"font_size"`
	Contrast  string    `json:"contrast"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Journal

type AddJournalEntryRequest struct {
	Title *string `json:"title,omitempty"`
	Body  string  `json:"body"`
}

type JournalEntry struct {
	ID        string    `json:"id"`
	Title     *string   `json:"title,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type ListRequest struct {
	Limit int `json:"limit"`
}

type ListJournalEntriesResponse struct {
	Entries []JournalEntry `json:"entries"`
}

// Breathing

type BreathingPhase struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Seconds int    `json:"seconds"`
}

type BreathingPattern struct {
	Phases       []BreathingPhase `json:"phases"`
	CycleSeconds int              `json:"cycle_seconds"`
}

type RecordBreathingRequest struct {
	Cycles int `json:"cycles"`
}

type BreathingSession struct {
	ID              string    `json:"id"`
	Cycles          int       `json:"cycles"`
	DurationSeconds int       `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}

type ListBreathingSessionsResponse struct {
	Sessions []BreathingSession `json:"sessions"`
}

// Export

type ExportDataResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
