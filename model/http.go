package model

type SourceResult struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

type SourcesResponse struct {
	Files []SourceResult `json:"files"`
}

type GenerateRequestBody struct {
	Source string `json:"source"`
}

type NoteResult struct {
	Pitch    string  `json:"pitch"`
	Rank     uint8   `json:"rank"`
	Key      uint8   `json:"key"`
	Duration float64 `json:"duration"`
}

type PlaybackResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type GenerateResponse struct {
	RunID       string         `json:"run_id"`
	Source      string         `json:"source"`
	Notes       []NoteResult   `json:"notes"`
	DownloadURL string         `json:"download_url"`
	Playback    PlaybackResult `json:"playback"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
