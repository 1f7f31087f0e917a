package node

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// placeholderPattern matches {{path}} references inside prompt templates
var placeholderPattern = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)

// interpolate resolves {{path}} placeholders in a template against the
// run's document view. Unresolvable paths render empty
func interpolate(template string, run *RunContext) string {
	if !strings.Contains(template, "{{") {
		return template
	}

	encoded, err := json.Marshal(run.Doc())
	if err != nil {
		return template
	}

	return placeholderPattern.ReplaceAllStringFunc(template,
		func(match string) string {
			path := placeholderPattern.FindStringSubmatch(match)[1]
			res := gjson.GetBytes(encoded, path)
			if !res.Exists() {
				return ""
			}
			return res.String()
		},
	)
}

// inputText renders the run input as a string for text-oriented nodes
func inputText(input any) string {
	switch v := input.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		if encoded, err := json.Marshal(v); err == nil {
			return string(encoded)
		}
		return fmt.Sprintf("%v", v)
	}
}
