package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlearnlab/practice-engine/internal/catalog"
	"github.com/openlearnlab/practice-engine/internal/model"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(catalog.SubjectPool{
		Version: 1,
		Subject: "math",
		Modules: []catalog.Module{{
			ID: "algebra",
			Topics: []catalog.Topic{
				{ID: "linear-sum", Section: "algebra-basics", Entries: []catalog.Entry{{
					Kind:        model.KindNumeric,
					Difficulty:  "easy",
					Title:       "Add the numbers",
					Prompt:      "What is {a} + {b}?",
					Params:      []catalog.Param{{Name: "a", Min: 1, Max: 9}, {Name: "b", Min: 1, Max: 9}},
					Answer:      "a + b",
					Explanation: "Add {a} and {b}.",
				}}},
				{ID: "half", Entries: []catalog.Entry{{
					Kind:       model.KindSingleChoice,
					Difficulty: "easy",
					Prompt:     "Which fraction equals one half?",
					Choices: []catalog.ChoiceTemplate{
						{ID: "a", Label: "2/4", Correct: true},
						{ID: "b", Label: "2/3"},
						{ID: "c", Label: "3/4"},
					},
				}}},
				{ID: "ordering", Entries: []catalog.Entry{{
					Kind:       model.KindDragReorder,
					Difficulty: "easy",
					Prompt:     "Order the numbers ascending",
					Choices: []catalog.ChoiceTemplate{
						{ID: "one", Label: "1"},
						{ID: "two", Label: "2"},
						{ID: "three", Label: "3"},
						{ID: "four", Label: "4"},
					},
				}}},
				{ID: "grid", Entries: []catalog.Entry{{
					Kind:       model.KindMatrixInput,
					Difficulty: "medium",
					Prompt:     "Fill in the grid derived from {a}",
					Params:     []catalog.Param{{Name: "a", Min: 2, Max: 5}},
					Matrix: &catalog.MatrixTemplate{Rows: 2, Cols: 2, Cells: [][]string{
						{"a", "a + 1"},
						{"a * 2", "a * a"},
					}},
				}}},
				{ID: "print-it", Entries: []catalog.Entry{{
					Kind:       model.KindCodeInput,
					Difficulty: "easy",
					Prompt:     "Write a program that prints {n}",
					Params:     []catalog.Param{{Name: "n", Min: 10, Max: 20}},
					Code:       &catalog.CodeTemplate{StarterCode: "print({n})", Stdout: "{n}", TrimWhitespace: true},
				}}},
				{ID: "greetings", Entries: []catalog.Entry{
					{Handler: "hello", Kind: model.KindTextInput, Difficulty: "easy", Prompt: "Say hello", Answers: []string{"bonjour"}},
					{Handler: "goodbye", Kind: model.KindTextInput, Difficulty: "easy", Prompt: "Say goodbye", Answers: []string{"au revoir"}, Match: model.MatchIncludes},
				}},
			},
		}},
	})
}

func req(topic string) Request {
	return Request{
		Subject:    "math",
		Module:     "algebra",
		Topic:      topic,
		Difficulty: "easy",
		SeedPolicy: model.SeedGlobal,
	}
}

func TestGenerateDeterministic(t *testing.T) {
	gen := New(testCatalog())

	for _, topic := range []string{"linear-sum", "half", "ordering", "print-it"} {
		t.Run(topic, func(t *testing.T) {
			first, err := gen.Generate(req(topic))
			require.NoError(t, err)
			second, err := gen.Generate(req(topic))
			require.NoError(t, err)

			assert.Equal(t, first.Seed, second.Seed)

			p1, err := model.EncodePublic(first.Public)
			require.NoError(t, err)
			p2, err := model.EncodePublic(second.Public)
			require.NoError(t, err)
			assert.Equal(t, p1, p2, "public payloads must be byte-identical")

			s1, err := model.EncodeSecret(first.Secret)
			require.NoError(t, err)
			s2, err := model.EncodeSecret(second.Secret)
			require.NoError(t, err)
			assert.Equal(t, s1, s2, "secret payloads must be byte-identical")
		})
	}
}

func TestGenerateSaltChangesStream(t *testing.T) {
	gen := New(testCatalog())

	seeds := map[string]bool{}
	for _, salt := range []string{"", "retry-1", "retry-2"} {
		r := req("linear-sum")
		r.Salt = salt
		res, err := gen.Generate(r)
		require.NoError(t, err)
		seeds[res.Seed] = true
	}
	assert.Len(t, seeds, 3, "each salt must derive a distinct seed")
}

func TestGenerateSeedPolicyScopes(t *testing.T) {
	gen := New(testCatalog())

	global := req("linear-sum")
	res1, err := gen.Generate(global)
	require.NoError(t, err)

	alice := req("linear-sum")
	alice.SeedPolicy = model.SeedActor
	alice.ActorKey = "user:alice"
	resAlice, err := gen.Generate(alice)
	require.NoError(t, err)

	bob := alice
	bob.ActorKey = "user:bob"
	resBob, err := gen.Generate(bob)
	require.NoError(t, err)

	assert.NotEqual(t, res1.Seed, resAlice.Seed)
	assert.NotEqual(t, resAlice.Seed, resBob.Seed)

	// Same actor, same exercise.
	again, err := gen.Generate(alice)
	require.NoError(t, err)
	assert.Equal(t, resAlice.Seed, again.Seed)
	assert.Equal(t, resAlice.Secret, again.Secret)
}

func TestGenerateErrors(t *testing.T) {
	gen := New(testCatalog())

	_, err := gen.Generate(req("no-such-topic"))
	assert.ErrorIs(t, err, model.ErrUnknownTopic)

	r := req("greetings")
	r.Handler = "no-such-handler"
	_, err = gen.Generate(r)
	assert.ErrorIs(t, err, model.ErrUnknownHandler)

	r = req("linear-sum")
	r.Kind = model.Kind("essay")
	_, err = gen.Generate(r)
	assert.ErrorIs(t, err, model.ErrUnknownKind)

	// Difficulty filter leaving no entries counts as an unknown topic.
	r = req("linear-sum")
	r.Difficulty = "extreme"
	_, err = gen.Generate(r)
	assert.ErrorIs(t, err, model.ErrUnknownTopic)
}

func TestGenerateHandlerSelectsEntry(t *testing.T) {
	gen := New(testCatalog())

	r := req("greetings")
	r.Handler = "goodbye"
	res, err := gen.Generate(r)
	require.NoError(t, err)

	assert.Equal(t, model.KindTextInput, res.Kind)
	assert.Equal(t, "Say goodbye", res.Public.Prompt)
	assert.Equal(t, []string{"au revoir"}, res.Secret.Expected)
	assert.Equal(t, model.MatchIncludes, res.Secret.Match)
}

func TestGenerateNumeric(t *testing.T) {
	gen := New(testCatalog())

	res, err := gen.Generate(req("linear-sum"))
	require.NoError(t, err)

	assert.Equal(t, model.KindNumeric, res.Kind)
	assert.NotContains(t, res.Public.Prompt, "{", "placeholders must be substituted")
	require.NotNil(t, res.Secret.Value)
	assert.GreaterOrEqual(t, *res.Secret.Value, 2.0)
	assert.LessOrEqual(t, *res.Secret.Value, 18.0)
	assert.Equal(t, model.DefaultTolerance, res.Secret.Tolerance)
	assert.NotContains(t, res.Secret.Explanation, "{")
}

func TestGenerateSingleChoice(t *testing.T) {
	gen := New(testCatalog())

	res, err := gen.Generate(req("half"))
	require.NoError(t, err)

	require.Len(t, res.Public.Choices, 3)
	ids := map[string]bool{}
	for _, c := range res.Public.Choices {
		ids[c.ID] = true
	}
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, ids)
	assert.Equal(t, []string{"a"}, res.Secret.Expected)
}

func TestGenerateDragReorder(t *testing.T) {
	gen := New(testCatalog())

	res, err := gen.Generate(req("ordering"))
	require.NoError(t, err)

	// Expected order is the pool order regardless of presentation.
	assert.Equal(t, []string{"one", "two", "three", "four"}, res.Secret.Expected)

	require.Len(t, res.Public.Choices, 4)
	seen := map[string]bool{}
	for _, c := range res.Public.Choices {
		seen[c.ID] = true
	}
	assert.Len(t, seen, 4, "presented items must be a permutation")
}

func TestGenerateMatrix(t *testing.T) {
	gen := New(testCatalog())

	r := req("grid")
	r.Difficulty = "medium"
	res, err := gen.Generate(r)
	require.NoError(t, err)

	require.NotNil(t, res.Public.Matrix)
	assert.Equal(t, 2, res.Public.Matrix.Rows)
	assert.Equal(t, 2, res.Public.Matrix.Cols)

	cells := res.Secret.Matrix
	require.Len(t, cells, 2)
	a := cells[0][0]
	assert.GreaterOrEqual(t, a, 2.0)
	assert.LessOrEqual(t, a, 5.0)
	assert.Equal(t, a+1, cells[0][1])
	assert.Equal(t, a*2, cells[1][0])
	assert.Equal(t, a*a, cells[1][1])
}

func TestGenerateCode(t *testing.T) {
	gen := New(testCatalog())

	res, err := gen.Generate(req("print-it"))
	require.NoError(t, err)

	require.NotNil(t, res.Secret.Code)
	assert.True(t, res.Secret.Code.TrimWhitespace)
	assert.Equal(t, "print("+res.Secret.Code.Stdout+")", res.Public.StarterCode)
	assert.NotContains(t, res.Secret.Code.Stdout, "{")
}
