package utils

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/takoeight0821/lox/token"
	"gopkg.in/yaml.v3"
)

// PosError attaches the position of a token to an error.
type PosError struct {
	Where token.Token
	Err   error
}

func (e PosError) Error() string {
	if e.Where.Kind == token.EOF {
		return fmt.Sprintf("at end: %s", e.Err.Error())
	}

	return fmt.Sprintf("at %d:%d: `%s`, %s", e.Where.Line, e.Where.Column, e.Where.Lexeme, e.Err.Error())
}

func (e PosError) Unwrap() error {
	return e.Err
}

type TestData struct {
	Label    string
	Enable   bool
	Input    string
	Expected map[string]string
}

// ReadTestData decodes YAML test cases and drops the disabled ones.
func ReadTestData(s []byte) ([]TestData, error) {
	var data []TestData
	if err := yaml.Unmarshal(s, &data); err != nil {
		return nil, fmt.Errorf("test data: %w", err)
	}

	// Remove disabled test cases.
	i := 0
	for _, d := range data {
		if d.Enable {
			data[i] = d
			i++
		}
	}
	data = data[:i]

	return data, nil
}

const SourceExt = ".lox"

// FindSourceFiles returns all source files under root.
func FindSourceFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}
