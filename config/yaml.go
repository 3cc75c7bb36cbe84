package config

import (
	"reflect"
	"strings"

	"github.com/traumschule/joyutils/log"
	"gopkg.in/yaml.v2"
)

// WriteYamlWithComments marshals config and writes it to filename, placing the `comment` tag of each
// top level field above it. Existing files are only replaced when overwrite is set.
func WriteYamlWithComments(config interface{}, header string, filename string, overwrite bool, logger *log.Logger) error {
	fileData, err := MarshalYamlWithComments(config, header)
	if err != nil {
		return err
	}

	if overwrite {
		return Overwrite(filename, fileData, logger)
	}
	return SafeWrite(filename, fileData, logger)
}

func MarshalYamlWithComments(config interface{}, header string) ([]byte, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, err
	}

	var result strings.Builder
	if header != "" {
		result.WriteString("# " + header + "\n")
	}

	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	yamlStr := string(data)
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)

		yamlTag := strings.Split(field.Tag.Get("yaml"), ",")[0]
		comment := field.Tag.Get("comment")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}

		// Only match keys at the start of a line, nested keys are indented.
		lineStart := -1
		if strings.HasPrefix(yamlStr, yamlTag+":") {
			lineStart = 0
		} else if idx := strings.Index(yamlStr, "\n"+yamlTag+":"); idx >= 0 {
			lineStart = idx + 1
		}
		if lineStart < 0 {
			continue
		}

		lineEnd := strings.Index(yamlStr[lineStart:], "\n")
		if lineEnd < 0 {
			lineEnd = len(yamlStr)
		} else {
			lineEnd += lineStart
		}

		result.WriteString(yamlStr[:lineStart])
		if comment != "" {
			result.WriteString("\n# " + comment + "\n")
		}
		result.WriteString(yamlStr[lineStart:lineEnd])
		yamlStr = yamlStr[lineEnd:]
	}

	result.WriteString(yamlStr)
	return []byte(result.String()), nil
}
