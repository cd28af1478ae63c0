package extension

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/gaia/pkg/symbols"
)

// manifest is the structured form of a JSON or YAML extension.
type manifest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Symbols     []symbols.Entry `json:"symbols"`
}

func decodeMapFile(ext *Extension, content []byte, format Format) error {
	raw := map[string]any{}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(content, &raw); err != nil {
			return fmt.Errorf("invalid JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return fmt.Errorf("invalid YAML: %w", err)
		}
	}

	if _, ok := raw["symbols"].([]any); ok {
		return decodeManifest(ext, raw)
	}

	words := make(map[string]string, len(raw))
	for word, v := range raw {
		code, ok := v.(string)
		if !ok {
			return fmt.Errorf("code for %q must be a string, got %T", word, v)
		}
		words[word] = code
	}
	ext.Entries = entriesFromWords(words, ext.Name)
	return nil
}

func decodeManifest(ext *Extension, raw map[string]any) error {
	var m manifest
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		ErrorUnused: true,
		Result:      &m,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid manifest: %w", err)
	}

	if m.Name != "" {
		ext.Name = m.Name
	}
	ext.Description = m.Description
	for i, e := range m.Symbols {
		if e.Symbol == "" || e.Meaning == "" {
			return fmt.Errorf("symbols[%d]: symbol and meaning are required", i)
		}
		if e.Category == "" {
			e.Category = ext.Name
		}
		ext.Entries = append(ext.Entries, e)
	}
	return nil
}

// entriesFromWords turns a word → code map into entries sorted by word.
func entriesFromWords(words map[string]string, category string) []symbols.Entry {
	keys := make([]string, 0, len(words))
	for w := range words {
		keys = append(keys, w)
	}
	sort.Strings(keys)

	entries := make([]symbols.Entry, 0, len(keys))
	for _, w := range keys {
		entries = append(entries, symbols.Entry{Symbol: words[w], Meaning: w, Category: category})
	}
	return entries
}

var codeWordBlock = regexp.MustCompile("(?s)```.*?Code\\s+Word.*?```")

// parseMarkdown reads "Code Word" tables from fenced blocks:
//
//	```
//	Code  Word
//	----  ----
//	w₁    function
//	```
func parseMarkdown(content string) []symbols.Entry {
	var entries []symbols.Entry
	for _, block := range codeWordBlock.FindAllString(content, -1) {
		for _, line := range strings.Split(block, "\n") {
			if strings.TrimSpace(line) == "" ||
				strings.Contains(line, "```") ||
				strings.Contains(line, "Code") ||
				strings.Contains(line, "---") {
				continue
			}
			parts := strings.Fields(line)
			if len(parts) < 2 {
				continue
			}
			entries = append(entries, symbols.Entry{
				Symbol:  parts[0],
				Meaning: strings.Join(parts[1:], " "),
			})
		}
	}
	return entries
}
