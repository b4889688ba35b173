package editor

import "github.com/gsarma/algodojo/internal/judge"

var templates = map[judge.Language]string{
	judge.JavaScript: "// JavaScript template\nfunction solve() {\n  // TODO\n}\n",
	judge.Python:     "# Python template\ndef solve():\n    pass\n \n \nif __name__ == \"__main__\":\n    solve()",
	judge.Java:       "// Java template\npublic class Main {\n  public static void main(String[] args) {\n  }\n}\n",
	judge.Cpp:        "// C++ template\n#include <bits/stdc++.h>\nusing namespace std;\nint main(){\n  return 0;\n}\n",
}

// Template returns the starter source for lang, or "" for an unsupported one.
func Template(lang judge.Language) string {
	return templates[lang]
}
