package transport

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
}

// ToggleRequest carries one completion toggle. ProofImage is an opaque
// Base64 payload; sending it without flipping the flag attaches evidence
// only.
type ToggleRequest struct {
	IsCompleted bool   `json:"is_completed"`
	ProofImage  string `json:"proof_image,omitempty"`
}

type TaskCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Department  string `json:"department"`
	Deadline    string `json:"deadline,omitempty"`
}

type TaskImportRequest struct {
	Tasks []TaskCreateRequest `json:"tasks"`
}

type RuleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type VideoRequest struct {
	Title       string `json:"title"`
	YoutubeURL  string `json:"youtube_url"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}
