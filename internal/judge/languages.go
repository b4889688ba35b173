package judge

import "fmt"

// Language is a source language the editor supports.
type Language string

const (
	JavaScript Language = "javascript"
	Python     Language = "python"
	Java       Language = "java"
	Cpp        Language = "cpp"
)

// Languages lists the supported languages in display order.
var Languages = []Language{JavaScript, Python, Java, Cpp}

var languageIDs = map[Language]int{
	JavaScript: 63,
	Python:     71,
	Java:       62,
	Cpp:        54,
}

var labels = map[Language]string{
	JavaScript: "JavaScript",
	Python:     "Python",
	Java:       "Java",
	Cpp:        "C++",
}

// ID returns the Judge0 language id.
func (l Language) ID() (int, error) {
	id, ok := languageIDs[l]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLanguage, string(l))
	}
	return id, nil
}

// Label is the human readable name shown in the language picker.
func (l Language) Label() string {
	if s, ok := labels[l]; ok {
		return s
	}
	return string(l)
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	_, ok := languageIDs[l]
	return ok
}

// ParseLanguage converts a string into a supported Language.
func ParseLanguage(s string) (Language, error) {
	l := Language(s)
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
	}
	return l, nil
}
