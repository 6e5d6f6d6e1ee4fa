package ai

// PromptSource is the collaborator that composes the system+user
// message pair for one cue plus its context. Adapters never inspect
// its output beyond passing it to the wire; a nil PromptSource falls
// back to a built-in default so the adapters are usable standalone.
type PromptSource interface {
	Build(source string, contextTexts []string, providerKind, modelID string) (systemPrompt, userPrompt string)
}

// defaultPromptSource renders contextTexts as a "- " bulleted
// block ahead of the translation instruction, and passes source
// through unchanged as the user turn.
type defaultPromptSource struct{}

func (defaultPromptSource) Build(source string, contextTexts []string, providerKind, modelID string) (string, string) {
	return buildSystemPrompt(contextTexts), source
}
