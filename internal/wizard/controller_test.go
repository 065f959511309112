package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type buildResult struct {
	Summary string
}

func fourSteps() []Step {
	return []Step{
		{ID: "personal", Title: "Personal Info", RequiredFields: []string{"name", "email"}},
		{ID: "summary", Title: "Summary"},
		{ID: "experience", Title: "Experience"},
		{ID: "skills", Title: "Skills", RequiredFields: []string{"technicalSkills"}},
	}
}

func newTestController(t *testing.T, submit SubmitFunc[buildResult]) *Controller[buildResult] {
	t.Helper()
	if submit == nil {
		submit = func(_ context.Context, _ map[string]any) (*buildResult, error) {
			return &buildResult{Summary: "ok"}, nil
		}
	}
	c, err := New(fourSteps(), submit)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestNavigationStaysInBounds(t *testing.T) {
	t.Parallel()

	c := newTestController(t, nil)

	moves := []struct {
		op   func() int
		want int
	}{
		{c.Previous, 1}, // clamped at lower bound
		{c.Next, 2},
		{c.Next, 3},
		{c.Next, 4},
		{c.Next, 4}, // clamped at upper bound
		{func() int { return c.GoToStep(99) }, 4},
		{func() int { return c.GoToStep(-3) }, 1},
		{func() int { return c.GoToStep(2) }, 2},
	}

	for i, mv := range moves {
		if got := mv.op(); got != mv.want {
			t.Fatalf("move %d: expected step %d, got %d", i, mv.want, got)
		}
		if cur := c.Current(); cur < 1 || cur > 4 {
			t.Fatalf("move %d: step %d out of bounds", i, cur)
		}
	}
}

func TestNavigationNeverClearsForm(t *testing.T) {
	t.Parallel()

	c := newTestController(t, nil)
	c.UpdateField("name", "Priya Sharma")
	c.Next()
	c.UpdateField("summary", "Backend engineer")
	c.GoToStep(1)
	c.Previous()
	c.GoToStep(4)

	form := c.Form()
	if form["name"] != "Priya Sharma" || form["summary"] != "Backend engineer" {
		t.Fatalf("navigation cleared form data: %+v", form)
	}
}

func TestUpdateFieldIsAdditive(t *testing.T) {
	t.Parallel()

	c := newTestController(t, nil)
	c.UpdateField("name", "Priya")
	c.UpdateFields(map[string]any{"email": "priya@example.com", "name": "Priya Sharma"})

	form := c.Form()
	if len(form) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(form))
	}
	if form["name"] != "Priya Sharma" {
		t.Fatalf("expected replacement, got %v", form["name"])
	}
}

func TestSubmitOnlyFromLastStep(t *testing.T) {
	t.Parallel()

	c := newTestController(t, nil)
	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrNotLastStep) {
		t.Fatalf("expected ErrNotLastStep, got %v", err)
	}

	c.GoToStep(4)
	result, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if result.Summary != "ok" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if c.Result() == nil {
		t.Fatal("expected terminal result state")
	}
}

func TestSubmitFailureStaysOnLastStep(t *testing.T) {
	t.Parallel()

	c := newTestController(t, func(_ context.Context, _ map[string]any) (*buildResult, error) {
		return nil, errors.New("Failed to build resume. Please try again.")
	})
	c.GoToStep(4)

	if _, err := c.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if c.Current() != 4 {
		t.Fatalf("expected to remain on step 4, got %d", c.Current())
	}
	if c.Result() != nil {
		t.Fatal("no result should be set on failure")
	}
	if c.LastError() == "" {
		t.Fatal("expected last error to be recorded")
	}
}

func TestSubmitSingleFlight(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	started := make(chan struct{})
	c := newTestController(t, func(_ context.Context, _ map[string]any) (*buildResult, error) {
		close(started)
		<-release
		return &buildResult{}, nil
	})
	c.GoToStep(4)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := c.Submit(context.Background()); err != nil {
			t.Errorf("first Submit failed: %v", err)
		}
	}()

	<-started
	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}
	close(release)
	wg.Wait()
}

func TestResetKeepsFormClearsResult(t *testing.T) {
	t.Parallel()

	c := newTestController(t, nil)
	c.UpdateField("name", "Priya Sharma")
	c.GoToStep(4)
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	c.Reset()
	if c.Result() != nil {
		t.Fatal("Reset should clear the result")
	}
	if c.Form()["name"] != "Priya Sharma" {
		t.Fatal("Reset must keep the form for edit-and-resubmit")
	}
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("resubmit after Reset failed: %v", err)
	}
}

func TestMissingFields(t *testing.T) {
	t.Parallel()

	c := newTestController(t, nil)
	missing := c.MissingFields(1)
	if len(missing) != 2 {
		t.Fatalf("expected 2 missing fields, got %v", missing)
	}

	c.UpdateField("name", "Priya Sharma")
	c.UpdateField("email", "priya@example.com")
	if missing := c.MissingFields(1); len(missing) != 0 {
		t.Fatalf("expected no missing fields, got %v", missing)
	}
}

func TestNewRequiresSteps(t *testing.T) {
	t.Parallel()

	if _, err := New[buildResult](nil, func(_ context.Context, _ map[string]any) (*buildResult, error) {
		return nil, nil
	}); err == nil {
		t.Fatal("expected error for empty step list")
	}
}
