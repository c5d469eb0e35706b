package solverpage

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrPuzzleNotFound reports the vendor's "not found" page, which is
	// served with a success status.
	ErrPuzzleNotFound = errors.New("puzzle not found")
	// ErrPayloadNotFound reports a page without a recognisable payload.
	ErrPayloadNotFound = errors.New("payload not found in page")
	// ErrScriptNotFound reports a page without a companion script reference.
	ErrScriptNotFound = errors.New("script reference not found in page")
)

const notFoundBanner = "The puzzle you are trying to access was not found"

var (
	assignmentMarkers = []string{"window.rawc", "window.puzzleEnv.rawc"}
	scriptPattern     = regexp.MustCompile(`"([^"]+c-min\.js[^"]+)"`)
)

// ExtractPayload returns the raw payload embedded in page. A global
// assignment line wins; otherwise the rawc member of the JSON parameters
// block is used.
func ExtractPayload(page string) (string, error) {
	if strings.Contains(page, notFoundBanner) {
		return "", ErrPuzzleNotFound
	}
	if raw, ok := assignedPayload(page); ok {
		return raw, nil
	}
	return paramsPayload(page)
}

func assignedPayload(page string) (string, bool) {
	for _, line := range strings.Split(page, "\n") {
		if !containsAny(line, assignmentMarkers) {
			continue
		}
		parts := strings.Split(strings.TrimSpace(line), "'")
		if len(parts) < 2 {
			continue
		}
		return parts[1], true
	}
	return "", false
}

func paramsPayload(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}
	script := doc.Find("script#params").First()
	if script.Length() == 0 {
		return "", fmt.Errorf("%w: no params script", ErrPayloadNotFound)
	}
	var params struct {
		Rawc string `json:"rawc"`
	}
	if err := json.Unmarshal([]byte(script.Text()), &params); err != nil {
		return "", fmt.Errorf("%w: params script: %w", ErrPayloadNotFound, err)
	}
	if params.Rawc == "" {
		return "", fmt.Errorf("%w: params script has no rawc", ErrPayloadNotFound)
	}
	return params.Rawc, nil
}

// ScriptURL finds the companion script reference in page and resolves it
// against pageURL. An empty pageURL leaves relative references unresolved.
func ScriptURL(page, pageURL string) (string, error) {
	m := scriptPattern.FindStringSubmatch(page)
	if m == nil {
		return "", ErrScriptNotFound
	}
	ref := m[1]
	if pageURL == "" {
		return ref, nil
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}
	target, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse script reference: %w", err)
	}
	return base.ResolveReference(target).String(), nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
