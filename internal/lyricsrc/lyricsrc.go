package lyricsrc

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/cognicore/lyrix/pkg/lyrix/ingest"
)

// Item is one lyric sample read from a corpus file
type Item struct {
	Key    string
	Title  string
	Artist string
	Lyrics string // newline-marker encoded
}

type rawItem struct {
	Key    string          `json:"key"`
	Title  string          `json:"title"`
	Artist string          `json:"artist"`
	Lyrics json.RawMessage `json:"lyrics"`
	HTML   string          `json:"html"`
}

// LoadFromJSONL loads lyric samples from a JSONL file. Line breaks in the
// lyrics, literal or HTML, are encoded with marker.
func LoadFromJSONL(path, marker string) ([]Item, error) {
	if marker == "" {
		marker = ingest.DefaultNewlineMarker
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var items []Item
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var raw rawItem
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", i+1, path, err)
			continue
		}
		if raw.Key == "" {
			log.Printf("Warning: skipping item without key at line %d in %s", i+1, path)
			continue
		}

		item := Item{Key: raw.Key, Title: raw.Title, Artist: raw.Artist}
		if raw.HTML != "" {
			text, err := HTMLToLyrics(raw.HTML, marker)
			if err != nil {
				log.Printf("Warning: skipping unparsable HTML at line %d in %s: %v", i+1, path, err)
				continue
			}
			item.Lyrics = text
		} else {
			text, err := decodeLyrics(raw.Lyrics)
			if err != nil {
				log.Printf("Warning: skipping bad lyrics at line %d in %s: %v", i+1, path, err)
				continue
			}
			item.Lyrics = encodeNewlines(text, marker)
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no valid items found in %s", path)
	}

	return items, nil
}

// decodeLyrics accepts any JSON value; non-strings are stringified.
func decodeLyrics(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}
	return ingest.Stringify(v), nil
}

func encodeNewlines(text, marker string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\n", marker)
}

// HTMLToLyrics extracts the text of an HTML lyrics fragment. <br> and the
// end of each <p> or <div> become marker; script and style are dropped.
// Blank lines are not kept.
func HTMLToLyrics(s, marker string) (string, error) {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style":
				return
			case "br":
				buf.WriteString(marker)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && (n.Data == "p" || n.Data == "div") {
			buf.WriteString(marker)
		}
	}
	walk(doc)

	var verses []string
	for _, v := range strings.Split(buf.String(), marker) {
		if v = strings.Join(strings.Fields(v), " "); v != "" {
			verses = append(verses, v)
		}
	}
	return strings.Join(verses, marker), nil
}
