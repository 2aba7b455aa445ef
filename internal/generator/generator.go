// Package generator turns a topic pool entry into a concrete exercise:
// deterministic entry selection, parameter drawing and the split into a
// client-safe public payload and a hidden secret payload.
package generator

import (
	"fmt"

	"github.com/openlearnlab/practice-engine/internal/catalog"
	"github.com/openlearnlab/practice-engine/internal/model"
	"github.com/openlearnlab/practice-engine/internal/seed"
)

// Request carries everything that determines which exercise is produced.
// Two requests with identical fields resolve to byte-identical payloads.
type Request struct {
	Subject    string
	Module     string
	Topic      string
	Difficulty string
	Kind       model.Kind // optional: restrict the pool to one kind
	Handler    string     // optional: force a specific generator
	Salt       string
	SeedPolicy model.SeedPolicy
	ActorKey   string // scope under SeedActor
}

// Result is a fully parameterized exercise, not yet persisted.
type Result struct {
	Kind   model.Kind
	Seed   string
	Public model.PublicPayload
	Secret model.SecretPayload
}

// Generator selects and parameterizes pool entries. It is pure apart from
// the injected catalog: no I/O, no wall-clock randomness.
type Generator struct {
	catalog *catalog.Catalog
}

func New(c *catalog.Catalog) *Generator {
	return &Generator{catalog: c}
}

// Generate resolves the topic pool, derives the deterministic stream from
// the request's seed material and produces the public/secret payload pair.
func (g *Generator) Generate(req Request) (Result, error) {
	if req.Kind != "" && !req.Kind.Valid() {
		return Result{}, fmt.Errorf("%w: %q", model.ErrUnknownKind, req.Kind)
	}

	pool, err := g.catalog.Pool(req.Subject, req.Module, req.Topic, req.Difficulty, req.Kind, req.Handler)
	if err != nil {
		return Result{}, err
	}

	scope := string(model.SeedGlobal)
	if req.SeedPolicy == model.SeedActor {
		scope = req.ActorKey
	}
	seedStr := seed.Build(req.Subject, req.Module, req.Topic, req.Difficulty, req.Salt, scope)
	rng := seed.New(seedStr)

	entry := pool[seed.IntN(rng, len(pool))]
	params, err := drawParams(rng, entry.Params)
	if err != nil {
		return Result{}, err
	}

	public, secret, err := materialize(rng, entry, params)
	if err != nil {
		return Result{}, fmt.Errorf("materializing entry (topic %s, handler %q): %w", req.Topic, entry.Handler, err)
	}

	return Result{Kind: entry.Kind, Seed: seedStr, Public: public, Secret: secret}, nil
}

// drawParams resolves each declared param in pool order so the stream is
// consumed identically on every run.
func drawParams(rng seed.RNG, specs []catalog.Param) (map[string]int, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	params := make(map[string]int, len(specs))
	for _, p := range specs {
		if p.Name == "" {
			return nil, fmt.Errorf("pool entry declares a nameless param")
		}
		if p.Max < p.Min {
			return nil, fmt.Errorf("param %q has max < min", p.Name)
		}
		params[p.Name] = seed.Between(rng, p.Min, p.Max)
	}
	return params, nil
}

func materialize(rng seed.RNG, entry catalog.Entry, params map[string]int) (model.PublicPayload, model.SecretPayload, error) {
	public := model.PublicPayload{
		Title:  substitute(entry.Title, params),
		Prompt: substitute(entry.Prompt, params),
		Kind:   entry.Kind,
	}
	secret := model.SecretPayload{
		Explanation: substitute(entry.Explanation, params),
	}

	switch entry.Kind {
	case model.KindSingleChoice, model.KindMultiChoice:
		if len(entry.Choices) == 0 {
			return public, secret, fmt.Errorf("choice entry has no choices")
		}
		choices, correct := renderChoices(rng, entry.Choices, params)
		public.Choices = choices
		secret.Expected = correct
		if entry.Kind == model.KindSingleChoice && len(correct) != 1 {
			return public, secret, fmt.Errorf("single_choice entry must mark exactly one correct choice, got %d", len(correct))
		}

	case model.KindNumeric:
		if entry.Answer == "" {
			return public, secret, fmt.Errorf("numeric entry has no answer expression")
		}
		v, err := evalExpr(entry.Answer, params)
		if err != nil {
			return public, secret, err
		}
		secret.Value = &v
		secret.Tolerance = tolerance(entry.Tolerance)

	case model.KindTextInput, model.KindVoiceInput:
		if len(entry.Answers) == 0 {
			return public, secret, fmt.Errorf("text entry has no accepted answers")
		}
		for _, a := range entry.Answers {
			secret.Expected = append(secret.Expected, substitute(a, params))
		}
		secret.Match = entry.Match
		if secret.Match == "" {
			secret.Match = model.MatchExact
		}

	case model.KindDragReorder:
		if len(entry.Choices) < 2 {
			return public, secret, fmt.Errorf("drag_reorder entry needs at least two items")
		}
		// Pool lists items in the correct order; present them shuffled.
		for _, c := range entry.Choices {
			secret.Expected = append(secret.Expected, c.ID)
		}
		perm := seed.Shuffle(rng, len(entry.Choices))
		public.Choices = make([]model.Choice, len(entry.Choices))
		for i, j := range perm {
			public.Choices[i] = model.Choice{ID: entry.Choices[j].ID, Label: substitute(entry.Choices[j].Label, params)}
		}

	case model.KindMatrixInput:
		if entry.Matrix == nil || len(entry.Matrix.Cells) == 0 {
			return public, secret, fmt.Errorf("matrix entry has no cell grid")
		}
		cells := make([][]float64, len(entry.Matrix.Cells))
		for r, row := range entry.Matrix.Cells {
			cells[r] = make([]float64, len(row))
			for c, cell := range row {
				v, err := evalExpr(cell, params)
				if err != nil {
					return public, secret, err
				}
				cells[r][c] = v
			}
		}
		secret.Matrix = cells
		secret.Tolerance = tolerance(entry.Tolerance)
		public.Matrix = &model.MatrixShape{Rows: len(cells), Cols: len(cells[0])}

	case model.KindCodeInput:
		if entry.Code == nil {
			return public, secret, fmt.Errorf("code entry has no comparison rules")
		}
		public.StarterCode = substitute(entry.Code.StarterCode, params)
		secret.Code = &model.CodeRules{
			Stdout:         substitute(entry.Code.Stdout, params),
			ExitCode:       entry.Code.ExitCode,
			TrimWhitespace: entry.Code.TrimWhitespace,
		}

	default:
		return public, secret, fmt.Errorf("%w: %q", model.ErrUnknownKind, entry.Kind)
	}

	return public, secret, nil
}

// renderChoices substitutes labels and shuffles the presented order while
// collecting the correct ids in pool order.
func renderChoices(rng seed.RNG, templates []catalog.ChoiceTemplate, params map[string]int) ([]model.Choice, []string) {
	var correct []string
	for _, c := range templates {
		if c.Correct {
			correct = append(correct, c.ID)
		}
	}
	perm := seed.Shuffle(rng, len(templates))
	choices := make([]model.Choice, len(templates))
	for i, j := range perm {
		choices[i] = model.Choice{ID: templates[j].ID, Label: substitute(templates[j].Label, params)}
	}
	return choices, correct
}

func tolerance(t float64) float64 {
	if t > 0 {
		return t
	}
	return model.DefaultTolerance
}
