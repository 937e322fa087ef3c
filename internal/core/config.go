package core

type ProviderConfig interface {
	GetProvider() string
	GetModel() string
	GetAPIKey() string
	GetBaseURL() string
}

type PromptConfig interface {
	GetSystemPromptPath() string
}
