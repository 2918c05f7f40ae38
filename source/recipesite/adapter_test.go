package recipesite

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
	"github.com/Riya0071234/Cooking-Voice-Assistant/source"
)

const jsonLDPage = `<html><head>
<script type="application/ld+json">
{"@type": "Recipe", "name": "Vegetable Biryani",
 "recipeCuisine": "Indian",
 "recipeIngredient": ["2 cups basmati rice", "1 cup mixed vegetables", "2 onions"],
 "recipeInstructions": [{"@type": "HowToStep", "text": "Soak the rice."},
                        {"@type": "HowToStep", "text": "Fry the onions."},
                        "Layer and steam."]}
</script>
</head><body></body></html>`

const graphPage = `<html><head>
<script type="application/ld+json">
{"@graph": [
  {"@type": "WebPage", "name": "Some page"},
  {"@type": ["Recipe", "CreativeWork"], "name": "Masoor Dal Tadka",
   "recipeIngredient": ["1 cup masoor dal", "2 tomatoes", "1 tsp cumin"],
   "recipeInstructions": ["Boil the dal.", "Prepare the tadka."]}
]}
</script>
</head><body></body></html>`

const htmlFallbackPage = `<html><head><title>Quick Lemon Rice</title></head><body>
<ul class="recipe-ingredients">
  <li>2 cups cooked rice</li>
  <li>1 lemon</li>
  <li>curry leaves</li>
</ul>
<ol id="instructions-list">
  <li>Temper the spices.</li>
  <li>Mix in the rice and lemon juice.</li>
</ol>
</body></html>`

func serve(t *testing.T, handler http.HandlerFunc) (*Adapter, source.Target) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.Client()), source.Target{
		Source: core.SourceSite,
		Name:   "test",
		URL:    srv.URL + "/recipe",
	}
}

func TestFetchJSONLD(t *testing.T) {
	adapter, target := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(jsonLDPage))
	})

	records, err := adapter.Fetch(context.Background(), target)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "Vegetable Biryani", r.Title)
	assert.Len(t, r.Ingredients, 3)
	assert.Equal(t, []string{"Soak the rice.", "Fry the onions.", "Layer and steam."}, r.Instructions)
	assert.Equal(t, "Indian", r.Metadata["cuisine"])
	assert.Equal(t, target.URL, r.SourceID)
}

func TestFetchJSONLDGraph(t *testing.T) {
	adapter, target := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(graphPage))
	})

	records, err := adapter.Fetch(context.Background(), target)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Masoor Dal Tadka", records[0].Title)
	assert.Len(t, records[0].Ingredients, 3)
}

func TestFetchHTMLFallback(t *testing.T) {
	adapter, target := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(htmlFallbackPage))
	})

	records, err := adapter.Fetch(context.Background(), target)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Quick Lemon Rice", records[0].Title)
	assert.Equal(t, []string{"2 cups cooked rice", "1 lemon", "curry leaves"}, records[0].Ingredients)
	assert.Len(t, records[0].Instructions, 2)
}

func TestFetchServerErrorIsTransient(t *testing.T) {
	adapter, target := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	})

	_, err := adapter.Fetch(context.Background(), target)
	require.Error(t, err)
	assert.True(t, source.IsTransient(err))
}

func TestFetchRateLimitIsTransient(t *testing.T) {
	adapter, target := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	})

	_, err := adapter.Fetch(context.Background(), target)
	require.Error(t, err)
	assert.True(t, source.IsTransient(err))
}

func TestFetchNotFoundIsPermanent(t *testing.T) {
	adapter, target := serve(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := adapter.Fetch(context.Background(), target)
	require.Error(t, err)
	assert.True(t, source.IsPermanent(err))
}

func TestFetchPageWithoutRecipeIsPermanent(t *testing.T) {
	adapter, target := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html><head><title>About us</title></head><body><p>hi</p></body></html>"))
	})

	_, err := adapter.Fetch(context.Background(), target)
	require.Error(t, err)
	assert.True(t, source.IsPermanent(err))
}
