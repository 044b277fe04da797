package caseform

import (
	"context"

	"github.com/nadiahindrianti/shesafe/internal/domain/cases"
)

type fakeEditor struct {
	html  string
	seeds int
}

func (e *fakeEditor) Seed(html string) {
	e.seeds++
	e.html = html
}

func (e *fakeEditor) Content() string { return e.html }

type fakeNotifier struct {
	warnings  []Notice
	successes []Notice
	failures  []Notice
}

func (n *fakeNotifier) Warn(_ context.Context, notice Notice)    { n.warnings = append(n.warnings, notice) }
func (n *fakeNotifier) Success(_ context.Context, notice Notice) { n.successes = append(n.successes, notice) }
func (n *fakeNotifier) Failure(_ context.Context, notice Notice) { n.failures = append(n.failures, notice) }

type fakeConfirmer struct {
	answer  bool
	err     error
	prompts []Prompt
}

func (c *fakeConfirmer) Confirm(_ context.Context, p Prompt) (bool, error) {
	c.prompts = append(c.prompts, p)
	return c.answer, c.err
}

type fakeNavigator struct {
	paths []string
}

func (n *fakeNavigator) Navigate(path string) { n.paths = append(n.paths, path) }

type update struct {
	id  string
	req cases.UpdateRequest
}

type fakeCases struct {
	stored   map[string]cases.Case
	fetchErr error
	writeErr error

	fetches int
	creates []cases.CasePayload
	drafts  []cases.CasePayload
	updates []update
}

func (f *fakeCases) FetchOne(_ context.Context, id string) (cases.Case, error) {
	f.fetches++
	if f.fetchErr != nil {
		return cases.Case{}, f.fetchErr
	}
	return f.stored[id], nil
}

func (f *fakeCases) Create(_ context.Context, p cases.CasePayload) (cases.Case, error) {
	f.creates = append(f.creates, p)
	return cases.FromPayload("new", p), f.writeErr
}

func (f *fakeCases) CreateDraft(_ context.Context, p cases.CasePayload) (cases.Case, error) {
	p.IsApproved = cases.StatusDraft
	f.drafts = append(f.drafts, p)
	return cases.FromPayload("new", p), f.writeErr
}

func (f *fakeCases) Update(_ context.Context, id string, req cases.UpdateRequest) (cases.Case, error) {
	f.updates = append(f.updates, update{id: id, req: req})
	return cases.FromPayload(id, req.Payload), f.writeErr
}

func (f *fakeCases) writes() int {
	return len(f.creates) + len(f.drafts) + len(f.updates)
}

type fakeCategories struct {
	list []cases.Category
	err  error
}

func (f *fakeCategories) Fetch(context.Context) (cases.CategoryIndex, error) {
	if f.err != nil {
		return cases.CategoryIndex{}, f.err
	}
	return cases.NewCategoryIndex(f.list), nil
}

type harness struct {
	cases     *fakeCases
	editor    *fakeEditor
	notifier  *fakeNotifier
	confirmer *fakeConfirmer
	navigator *fakeNavigator
}

func newHarness(stored ...cases.Case) *harness {
	h := &harness{
		cases:     &fakeCases{stored: map[string]cases.Case{}},
		editor:    &fakeEditor{},
		notifier:  &fakeNotifier{},
		confirmer: &fakeConfirmer{answer: true},
		navigator: &fakeNavigator{},
	}
	for _, c := range stored {
		h.cases.stored[c.ID] = c
	}
	return h
}

func (h *harness) deps() Deps {
	return Deps{
		Cases:      h.cases,
		Categories: &fakeCategories{list: []cases.Category{{ID: "c1", Name: "Verbal"}, {ID: "c2", Name: "Fisik"}}},
		Editor:     h.editor,
		Notifier:   h.notifier,
		Confirmer:  h.confirmer,
		Navigator:  h.navigator,
	}
}
