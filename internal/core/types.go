package core

const (
	AppName          = "FinAdvisor"
	AppUserAgent     = "FinAdvisor/0.1"
	AppRepositoryURL = "https://github.com/sandevgo/finadvisor"
	AppVersion       = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
