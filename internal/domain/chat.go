package domain

// ChatRole identifies the author of a chat message
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMode selects the assistant backend configuration
type ChatMode string

const (
	ModeLite     ChatMode = "lite"
	ModeThinking ChatMode = "thinking"
	ModeSearch   ChatMode = "search"
)

// Source is a web citation attached to a search-mode reply
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// ChatMessage is a single transcript entry. Immutable once appended.
type ChatMessage struct {
	Role    ChatRole
	Text    string
	Sources []Source
}

// AssistantReply is the result of a single assistant request
type AssistantReply struct {
	Text    string
	Sources []Source
}
