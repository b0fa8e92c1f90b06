// Package docs embeds the graphz documentation topics.
package docs

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"
)

//go:embed *.md
var docs embed.FS

// index is the topic listing the others, it is not a topic itself.
const index = "readme"

// GetTopic returns the content of a documentation topic, or of all of them
// for "*".
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		topics, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		return GetTopics(topics...)
	}

	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found, see 'graphz topic' for the list: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the content of the topics, one after the other.
func GetTopics(topics ...string) (string, error) {
	var b strings.Builder
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		if topic != "*" {
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// GetAllTopics returns the sorted names of the documentation topics.
func GetAllTopics() ([]string, error) {
	files, err := fs.Glob(docs, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, file := range files {
		if topic := strings.TrimSuffix(path.Base(file), ".md"); topic != index {
			topics = append(topics, topic)
		}
	}
	sort.Strings(topics)
	return topics, nil
}

// Topic is an entry of the documentation index.
type Topic struct {
	Name    string
	Summary string
}

// indexEntry matches the "* topic: summary" lines of the index.
var indexEntry = regexp.MustCompile(`^\*\s+([^:]+):\s*(.*)$`)

// Index returns the topics listed in the index, in their order there.
func Index() ([]Topic, error) {
	content, err := docs.ReadFile(index + ".md")
	if err != nil {
		return nil, err
	}
	var topics []Topic
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		if m := indexEntry.FindStringSubmatch(scanner.Text()); m != nil {
			topics = append(topics, Topic{Name: strings.TrimSpace(m[1]), Summary: strings.TrimSpace(m[2])})
		}
	}
	return topics, scanner.Err()
}
