package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
	"github.com/Riya0071234/Cooking-Voice-Assistant/dedup"
	"github.com/Riya0071234/Cooking-Voice-Assistant/source"
)

func TestNormalizeRecipeFoldsIngredientText(t *testing.T) {
	record := source.RawRecord{
		SourceID:     "https://a.example/margherita",
		Title:        "Classic Margherita Pizza",
		Body:         "A weeknight favourite from our Naples trip.",
		Ingredients:  []string{"pizza dough", "tomato passata", "fresh mozzarella", "basil leaves"},
		Instructions: []string{"Stretch the dough thin.", "Spread the passata.", "Bake until blistered."},
	}

	item := Normalize(core.SourceSite, record, time.Now())

	assert.Contains(t, item.RawText, "Classic Margherita Pizza")
	assert.Contains(t, item.RawText, "tomato passata")
	assert.Contains(t, item.RawText, "Bake until blistered.")
	require.NotNil(t, item.Recipe)
	assert.Equal(t, record.Ingredients, item.Recipe.Ingredients)
}

// Two scrapes of the same dish share their ingredient list nearly verbatim
// even when the titles and surrounding prose differ, and the index must treat
// the second as a repost of the first.
func TestNormalizedRecipesWithSharedIngredientsCollide(t *testing.T) {
	ingredients := []string{
		"aged basmati rice", "chicken thighs", "thick yogurt", "fried onions",
		"saffron strands", "warm milk", "ghee", "ginger garlic paste",
		"green chillies", "mint leaves", "coriander leaves", "garam masala",
		"turmeric powder", "salt",
	}
	first := source.RawRecord{
		SourceID:     "https://a.example/biryani",
		Title:        "Hyderabadi Chicken Biryani",
		Ingredients:  ingredients,
		Instructions: []string{"Marinate the chicken overnight.", "Parboil the rice.", "Layer and steam on low heat."},
	}
	second := source.RawRecord{
		SourceID:     "https://b.example/biryani",
		Title:        "Authentic Chicken Biryani",
		Ingredients:  ingredients,
		Instructions: []string{"Marinate the chicken overnight.", "Parboil the rice.", "Layer and steam on low heat."},
	}

	now := time.Now()
	original := Normalize(core.SourceSite, first, now)
	repost := Normalize(core.SourceSite, second, now)

	index := dedup.NewIndex()
	_, admitted := index.Admit(original)
	require.True(t, admitted)

	originalID, admitted := index.Admit(repost)
	assert.False(t, admitted, "a recipe reusing the ingredient list is a repost")
	assert.Equal(t, original.Id, originalID)
}
