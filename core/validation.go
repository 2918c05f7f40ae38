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


package core

import "fmt"

// LengthRule bounds the rune length of a text field. A zero Max means unbounded.
type LengthRule struct {
	Min int
	Max int
}

// CountRule bounds the element count of a list field. A zero Max means unbounded.
type CountRule struct {
	Min int
	Max int
}

// RecipeRules holds the structural constraints for recipe entries.
type RecipeRules struct {
	TitleMinLength int
	Ingredients    CountRule
	Instructions   CountRule
}

// ContextualRules holds the structural constraints for Q&A entries.
type ContextualRules struct {
	Question          LengthRule
	Answer            LengthRule
	MinTags           int // enforced only once an item carries tags
	AcceptedLanguages []string
}

// Rules is the full validation rule set applied by the gate.
type Rules struct {
	Recipe     RecipeRules
	Contextual ContextualRules
}

// DefaultRules returns the rule set the pipeline ships with.
func DefaultRules() Rules {
	return Rules{
		Recipe: RecipeRules{
			TitleMinLength: 5,
			Ingredients:    CountRule{Min: 3, Max: 50},
			Instructions:   CountRule{Min: 3, Max: 50},
		},
		Contextual: ContextualRules{
			Question:          LengthRule{Min: 15, Max: 500},
			Answer:            LengthRule{Min: 20, Max: 5000},
			MinTags:           1,
			AcceptedLanguages: []string{"en", "hi", "hi-en"},
		},
	}
}

// Rejection describes why the gate dropped an item.
type Rejection struct {
	Reason RejectReason
	Detail string
}

// Error implements error so rejections can be logged and wrapped uniformly.
func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Reason, r.Detail)
}

func reject(reason RejectReason, format string, args ...any) *Rejection {
	return &Rejection{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// Validate applies the structural constraints for the item's concrete type.
// It is pure and total: every item maps to exactly one outcome, independent
// of call order. A nil return means the item is accepted.
//
// Validated per variant:
//   - recipe: title length, ingredient count, instruction count
//   - contextual: question/answer length, accepted language, tag count once tagged
//   - video: non-empty raw text
//
// NOT validated (populated by later stages):
//   - Tags on untagged items
//   - DuplicateOf (owned by the deduplication engine)
func Validate(item *ContentItem, rules Rules) *Rejection {
	if item == nil {
		return reject(ReasonTooShort, "item is nil")
	}
	if item.RawText == "" {
		return reject(ReasonTooShort, "raw text is empty")
	}

	switch item.Source {
	case SourceSite:
		return validateRecipe(item.Recipe, rules.Recipe)
	case SourceForum, SourceSocial:
		return validateContextual(item, rules.Contextual)
	case SourceVideo:
		// Video structure is checked by the vision branch; the gate only
		// requires usable text for dedup and tagging.
		return nil
	default:
		return reject(ReasonCountOutOfRange, "unknown source type %d", int(item.Source))
	}
}

func validateRecipe(entry *RecipeEntry, rules RecipeRules) *Rejection {
	if entry == nil {
		return reject(ReasonCountOutOfRange, "recipe payload missing")
	}
	if len([]rune(entry.Title)) < rules.TitleMinLength {
		return reject(ReasonTooShort, "title shorter than %d", rules.TitleMinLength)
	}
	if r := checkCount("ingredients", len(entry.Ingredients), rules.Ingredients); r != nil {
		return r
	}
	return checkCount("instructions", len(entry.Instructions), rules.Instructions)
}

func validateContextual(item *ContentItem, rules ContextualRules) *Rejection {
	entry := item.Contextual
	if entry == nil {
		return reject(ReasonCountOutOfRange, "contextual payload missing")
	}
	if r := checkLength("question", entry.Question, rules.Question); r != nil {
		return r
	}
	if r := checkLength("answer", entry.Answer, rules.Answer); r != nil {
		return r
	}
	if !LanguageAccepted(item.Language, rules.AcceptedLanguages) {
		return reject(ReasonUnsupportedLanguage, "language %q not accepted", item.Language)
	}
	// Tag count applies only after the tagging engine has run.
	if len(item.Tags) > 0 && len(item.Tags) < rules.MinTags {
		return reject(ReasonCountOutOfRange, "tag count %d below %d", len(item.Tags), rules.MinTags)
	}
	return nil
}

func checkLength(field, value string, rule LengthRule) *Rejection {
	n := len([]rune(value))
	if n < rule.Min {
		return reject(ReasonTooShort, "%s length %d below %d", field, n, rule.Min)
	}
	if rule.Max > 0 && n > rule.Max {
		return reject(ReasonTooLong, "%s length %d above %d", field, n, rule.Max)
	}
	return nil
}

func checkCount(field string, n int, rule CountRule) *Rejection {
	if n < rule.Min || (rule.Max > 0 && n > rule.Max) {
		return reject(ReasonCountOutOfRange, "%s count %d outside [%d,%d]", field, n, rule.Min, rule.Max)
	}
	return nil
}
