package model

// Language identifies the programming language a log or trace came from.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangJava       Language = "java"
	LangCSharp     Language = "csharp"
	LangCPP        Language = "cpp"
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangUnknown    Language = "unknown"
)

// Languages lists every detectable language, in no particular order.
func Languages() []Language {
	return []Language{
		LangPython, LangJavaScript, LangJava, LangCSharp,
		LangCPP, LangGo, LangRust, LangUnknown,
	}
}

// ParseLanguage maps a user-supplied hint to a Language. Unrecognized or
// empty hints (including "auto") map to LangUnknown, which means
// "detect it for me".
func ParseLanguage(s string) Language {
	switch s {
	case "python", "py":
		return LangPython
	case "javascript", "js", "node":
		return LangJavaScript
	case "java":
		return LangJava
	case "csharp", "c#", "dotnet":
		return LangCSharp
	case "cpp", "c++":
		return LangCPP
	case "go", "golang":
		return LangGo
	case "rust":
		return LangRust
	default:
		return LangUnknown
	}
}

// Display returns a human-readable name suitable for use as a tag.
func (l Language) Display() string {
	switch l {
	case LangPython:
		return "Python"
	case LangJavaScript:
		return "JavaScript"
	case LangJava:
		return "Java"
	case LangCSharp:
		return "C#"
	case LangCPP:
		return "C++"
	case LangGo:
		return "Go"
	case LangRust:
		return "Rust"
	default:
		return "Unknown"
	}
}
