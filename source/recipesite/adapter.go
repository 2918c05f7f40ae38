// Copyright 2025 The Cooking Voice Assistant Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package recipesite implements the source.Adapter for recipe websites.
//
// A page is parsed in two passes: the adapter first looks for a JSON-LD
// script of @type Recipe (including inside @graph arrays), which is the most
// reliable structured form, and only falls back to scanning common HTML list
// markup when no JSON-LD recipe is present.
package recipesite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
	"github.com/Riya0071234/Cooking-Voice-Assistant/source"
)

const userAgent = "CookingAssistantScraper/1.0"

// Adapter fetches and parses recipe pages.
type Adapter struct {
	client *http.Client
}

// New wires an HTTP client; a nil client gets a 30 second timeout default.
func New(client *http.Client) *Adapter {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Adapter{client: client}
}

// Source reports that this adapter serves recipe sites.
func (a *Adapter) Source() core.SourceType {
	return core.SourceSite
}

// Fetch downloads the target page and extracts its recipe. HTTP 429 and 5xx
// responses and transport errors are transient; other non-200 responses and
// unparseable pages are permanent.
func (a *Adapter) Fetch(ctx context.Context, target source.Target) ([]source.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
	if err != nil {
		return nil, source.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, source.Transient(fmt.Errorf("request page: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, source.Transient(fmt.Errorf("%s returned %s", target.Domain(), resp.Status))
	default:
		return nil, source.Permanent(fmt.Errorf("%s returned %s", target.Domain(), resp.Status))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, source.Permanent(fmt.Errorf("parse page: %w", err))
	}

	recipe := parseJSONLD(doc)
	if recipe == nil {
		recipe = extractFromHTML(doc)
	}
	if recipe.Title == "" || len(recipe.Ingredients) == 0 {
		return nil, source.Permanent(fmt.Errorf("no recipe found at %s", target.URL))
	}

	record := source.RawRecord{
		SourceID:     target.URL,
		Title:        recipe.Title,
		Ingredients:  recipe.Ingredients,
		Instructions: recipe.Instructions,
		Metadata: map[string]string{
			"url": target.URL,
		},
	}
	if recipe.Cuisine != "" {
		record.Metadata["cuisine"] = recipe.Cuisine
	}
	return []source.RawRecord{record}, nil
}

type scrapedRecipe struct {
	Title        string
	Ingredients  []string
	Instructions []string
	Cuisine      string
}

// jsonLDRecipe mirrors the subset of the schema.org Recipe type the adapter
// consumes. recipeInstructions appears both as strings and as HowToStep
// objects in the wild, so it decodes through json.RawMessage.
type jsonLDRecipe struct {
	Type         any               `json:"@type"`
	Graph        []json.RawMessage `json:"@graph"`
	Name         string            `json:"name"`
	Ingredients  []string          `json:"recipeIngredient"`
	Instructions []json.RawMessage `json:"recipeInstructions"`
	Cuisine      any               `json:"recipeCuisine"`
}

func parseJSONLD(doc *goquery.Document) *scrapedRecipe {
	var found *scrapedRecipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var node jsonLDRecipe
		if err := json.Unmarshal([]byte(s.Text()), &node); err != nil {
			return true
		}
		if recipe := recipeFromNode(node); recipe != nil {
			found = recipe
			return false
		}
		for _, raw := range node.Graph {
			var nested jsonLDRecipe
			if err := json.Unmarshal(raw, &nested); err != nil {
				continue
			}
			if recipe := recipeFromNode(nested); recipe != nil {
				found = recipe
				return false
			}
		}
		return true
	})
	return found
}

func recipeFromNode(node jsonLDRecipe) *scrapedRecipe {
	if !isRecipeType(node.Type) {
		return nil
	}
	recipe := &scrapedRecipe{
		Title:       strings.TrimSpace(node.Name),
		Ingredients: node.Ingredients,
		Cuisine:     firstString(node.Cuisine),
	}
	for _, raw := range node.Instructions {
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			if text = strings.TrimSpace(text); text != "" {
				recipe.Instructions = append(recipe.Instructions, text)
			}
			continue
		}
		var step struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(raw, &step); err == nil {
			if text = strings.TrimSpace(step.Text); text != "" {
				recipe.Instructions = append(recipe.Instructions, text)
			}
		}
	}
	return recipe
}

// isRecipeType handles @type as both "Recipe" and ["Recipe", ...].
func isRecipeType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "Recipe"
	case []any:
		for _, entry := range v {
			if s, ok := entry.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

func firstString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []any:
		for _, entry := range s {
			if str, ok := entry.(string); ok {
				return str
			}
		}
	}
	return ""
}

// extractFromHTML is the fallback for pages without structured data. It
// looks for list elements whose class or id mentions ingredients or
// instructions.
func extractFromHTML(doc *goquery.Document) *scrapedRecipe {
	recipe := &scrapedRecipe{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	doc.Find("ul, ol").EachWithBreak(func(_ int, list *goquery.Selection) bool {
		if !attrMentions(list, "ingredient") {
			return true
		}
		list.Find("li").Each(func(_ int, li *goquery.Selection) {
			if text := strings.TrimSpace(li.Text()); text != "" {
				recipe.Ingredients = append(recipe.Ingredients, text)
			}
		})
		return false
	})

	doc.Find("ol").EachWithBreak(func(_ int, list *goquery.Selection) bool {
		if !attrMentions(list, "instruction") {
			return true
		}
		list.Find("li").Each(func(_ int, li *goquery.Selection) {
			if text := strings.TrimSpace(li.Text()); text != "" {
				recipe.Instructions = append(recipe.Instructions, text)
			}
		})
		return false
	})

	return recipe
}

func attrMentions(s *goquery.Selection, word string) bool {
	class, _ := s.Attr("class")
	id, _ := s.Attr("id")
	return strings.Contains(strings.ToLower(class), word) ||
		strings.Contains(strings.ToLower(id), word)
}
