package validate

import (
	"github.com/VKCOM/php-parser/pkg/conf"
	phperrors "github.com/VKCOM/php-parser/pkg/errors"
	"github.com/VKCOM/php-parser/pkg/parser"
	"github.com/VKCOM/php-parser/pkg/version"
)

// NativeCheck parses source with a real PHP 8.1 grammar and reports the first
// syntax error encountered, if any.
func NativeCheck(source string) Result {
	var parseErrors []*phperrors.Error

	_, err := parser.Parse([]byte(source), conf.Config{
		Version: &version.Version{Major: 8, Minor: 1},
		ErrorHandlerFunc: func(e *phperrors.Error) {
			parseErrors = append(parseErrors, e)
		},
	})

	if err != nil {
		return Result{Success: false, Method: Native, Error: err.Error()}
	}
	if len(parseErrors) > 0 {
		return Result{Success: false, Method: Native, Error: parseErrors[0].Error()}
	}
	return Result{Success: true, Method: Native}
}
