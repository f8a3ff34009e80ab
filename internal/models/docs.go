package models

// KeyFile is a file the LLM selected as important for onboarding, with the
// reason it gave for the selection.
type KeyFile struct {
	FilePath string `json:"file_path"`
	Reason   string `json:"reason"`
}

// KeyFileList is the structured response schema for the key-file selection call.
type KeyFileList struct {
	Files []KeyFile `json:"files"`
}

// FileSummary holds the router's summary for one key file, or the error text
// if summarization failed for that file.
type FileSummary struct {
	FilePath string `json:"filePath"`
	Reason   string `json:"reason"`
	Summary  string `json:"summary,omitempty"`
	Error    string `json:"error,omitempty"`
}

// APIParameter describes a single function or method parameter.
type APIParameter struct {
	Name        string `json:"name"`
	Type        string `json:"param_type"`
	Description string `json:"description"`
}

// APIMethod describes a function or method extracted from a source file.
type APIMethod struct {
	Name        string         `json:"name"`
	Parameters  []APIParameter `json:"parameters"`
	Returns     string         `json:"returns"`
	Description string         `json:"description"`
}

// APIClass describes a class and its public methods.
type APIClass struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Methods     []APIMethod `json:"methods"`
}

// APIFile is the structured extraction of one source file's public surface.
// Files are extracted independently; no cross-file linkage or dedup exists.
type APIFile struct {
	FilePath  string      `json:"file_path"`
	Classes   []APIClass  `json:"classes"`
	Functions []APIMethod `json:"functions"`
}

// Normalize applies schema defaults: parameter types fall back to "any" and
// return values to "None" when the model left them unspecified.
func (f *APIFile) Normalize() {
	for i := range f.Classes {
		for j := range f.Classes[i].Methods {
			f.Classes[i].Methods[j].normalize()
		}
	}
	for i := range f.Functions {
		f.Functions[i].normalize()
	}
}

func (m *APIMethod) normalize() {
	if m.Returns == "" {
		m.Returns = "None"
	}
	for i := range m.Parameters {
		if m.Parameters[i].Type == "" {
			m.Parameters[i].Type = "any"
		}
	}
}

// ChatMessage is one turn of a session conversation.
type ChatMessage struct {
	Role    string `json:"role"` // user or assistant
	Content string `json:"content"`
}
