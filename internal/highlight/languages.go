// internal/highlight/languages.go
package highlight

import (
	"sync"

	"github.com/bethropolis/quill/internal/highlight/lang"
	"github.com/bethropolis/quill/internal/logger"

	gosrc "github.com/smacker/go-tree-sitter/golang"
	jssrc "github.com/smacker/go-tree-sitter/javascript" // JS parser used for JS and JSON
	pythonsrc "github.com/smacker/go-tree-sitter/python"
	rustsrc "github.com/smacker/go-tree-sitter/rust"
)

const goQuery = `
(comment) @comment
(interpreted_string_literal) @string
(raw_string_literal) @string
(rune_literal) @string
(int_literal) @number
(float_literal) @number
(type_identifier) @type
(function_declaration name: (identifier) @function)
(method_declaration name: (field_identifier) @function)
(call_expression function: (identifier) @function)
["func" "package" "import" "return" "if" "else" "for" "range" "var" "const"
 "type" "struct" "interface" "go" "defer" "switch" "case" "default" "break"
 "continue" "map" "chan" "select"] @keyword
`

const pythonQuery = `
(comment) @comment
(string) @string
(integer) @number
(float) @number
(function_definition name: (identifier) @function)
(class_definition name: (identifier) @type)
["def" "class" "return" "if" "elif" "else" "for" "while" "import" "from" "as"
 "with" "try" "except" "finally" "raise" "in" "lambda" "yield"] @keyword
`

const javascriptQuery = `
(comment) @comment
(string) @string
(template_string) @string
(number) @number
(function_declaration name: (identifier) @function)
(method_definition name: (property_identifier) @function)
["function" "return" "if" "else" "for" "while" "const" "let" "var" "new"
 "class" "import" "export" "from" "async" "await"] @keyword
`

const jsonQuery = `
(string) @string
(number) @number
`

const rustQuery = `
(line_comment) @comment
(block_comment) @comment
(string_literal) @string
(char_literal) @string
(integer_literal) @number
(float_literal) @number
(type_identifier) @type
(function_item name: (identifier) @function)
["fn" "let" "pub" "use" "struct" "enum" "impl" "trait" "match" "if" "else"
 "for" "while" "loop" "return" "mod"] @keyword
`

var registerOnce sync.Once

// RegisterLanguages adds the built-in tree-sitter grammars to the registry.
// Safe to call more than once.
func RegisterLanguages() {
	registerOnce.Do(func() {
		lang.Register(&lang.Language{
			Name:           "Go",
			TreeSitterLang: gosrc.GetLanguage(),
			Extensions:     []string{"go"},
			Query:          goQuery,
		})
		lang.Register(&lang.Language{
			Name:           "Python",
			TreeSitterLang: pythonsrc.GetLanguage(),
			Extensions:     []string{"py", "pyw"},
			Query:          pythonQuery,
		})
		lang.Register(&lang.Language{
			Name:           "JavaScript",
			TreeSitterLang: jssrc.GetLanguage(),
			Extensions:     []string{"js", "mjs", "cjs"},
			Query:          javascriptQuery,
		})
		lang.Register(&lang.Language{
			Name:           "JSON",
			TreeSitterLang: jssrc.GetLanguage(),
			Extensions:     []string{"json"},
			Query:          jsonQuery,
		})
		lang.Register(&lang.Language{
			Name:           "Rust",
			TreeSitterLang: rustsrc.GetLanguage(),
			Extensions:     []string{"rs"},
			Query:          rustQuery,
		})
		logger.DebugTagf("highlight", "Registration complete. Registered %d languages.", len(lang.All()))
	})
}
