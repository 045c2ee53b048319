package loader_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/jspgantt/pkg/loader"
	"github.com/vanderheijden86/jspgantt/pkg/model"
	"github.com/vanderheijden86/jspgantt/pkg/testutil"
)

const roundTripDoc = `{"packages":[
	{"start":0,"end":3,"machine":1,"job":1},
	{"start":3,"end":5,"machine":1,"job":1},
	{"start":0,"end":4,"machine":2,"job":2}
], "machines":2, "jobs":2}`

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadSchedule_RoundTrip(t *testing.T) {
	s, err := loader.LoadSchedule(writeDoc(t, roundTripDoc))
	if err != nil {
		t.Fatalf("LoadSchedule: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 operations, got %d", s.Len())
	}

	wantIdx := []int{0, 1, 0}
	wantJob := []int{1, 1, 2}
	for i, op := range s.Operations {
		if op.Index != wantIdx[i] {
			t.Errorf("op %d: index = %d, want %d", i, op.Index, wantIdx[i])
		}
		if op.Job != wantJob[i] {
			t.Errorf("op %d: job = %d, want %d", i, op.Job, wantJob[i])
		}
	}
	if s.Metadata.Machines != 2 || s.Metadata.Jobs != 2 {
		t.Errorf("metadata = %+v, want machines=2 jobs=2", s.Metadata)
	}
}

func TestParseSchedule_Defaults(t *testing.T) {
	s, err := loader.ParseSchedule(strings.NewReader(`{"packages":[]}`))
	if err != nil {
		t.Fatalf("ParseSchedule: %v", err)
	}
	if s.Metadata.Title != model.DefaultTitle {
		t.Errorf("title = %q, want %q", s.Metadata.Title, model.DefaultTitle)
	}
	if s.Metadata.Machines != 100 || s.Metadata.Jobs != 100 {
		t.Errorf("machines/jobs = %d/%d, want 100/100", s.Metadata.Machines, s.Metadata.Jobs)
	}
	if len(s.Metadata.XTicks) != 0 {
		t.Errorf("xticks = %v, want empty", s.Metadata.XTicks)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty schedule, got %d operations", s.Len())
	}
}

func TestParseSchedule_OptionalKeys(t *testing.T) {
	doc := `{"title":"Shop A","xticks":[0,5,10],"machines":3,"jobs":4,
		"packages":[{"start":1,"end":2,"machine":3,"job":4}]}`
	s, err := loader.ParseSchedule(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseSchedule: %v", err)
	}
	if s.Metadata.Title != "Shop A" {
		t.Errorf("title = %q", s.Metadata.Title)
	}
	if len(s.Metadata.XTicks) != 3 || s.Metadata.XTicks[2] != 10 {
		t.Errorf("xticks = %v", s.Metadata.XTicks)
	}
	labels := s.Metadata.Labels()
	if len(labels) != 3 || labels[0] != "machine-1" || labels[2] != "machine-3" {
		t.Errorf("labels = %v", labels)
	}
}

func TestParseSchedule_StripsBOM(t *testing.T) {
	doc := "\xEF\xBB\xBF" + `{"packages":[{"start":0,"end":1,"machine":1,"job":1}]}`
	s, err := loader.ParseSchedule(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseSchedule with BOM: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 operation, got %d", s.Len())
	}
}

func TestParseSchedule_MissingPackages(t *testing.T) {
	for _, doc := range []string{`{}`, `{"packages":null}`, `{"title":"x"}`} {
		_, err := loader.ParseSchedule(strings.NewReader(doc))
		if err == nil {
			t.Fatalf("%s: expected error", doc)
		}
		if !errors.Is(err, loader.ErrInputShape) {
			t.Errorf("%s: expected ErrInputShape, got %v", doc, err)
		}
		if !errors.Is(err, loader.ErrData) {
			t.Errorf("%s: ErrInputShape should wrap ErrData", doc)
		}
	}
}

func TestParseSchedule_MissingPackageField(t *testing.T) {
	tests := []struct {
		name  string
		pkg   string
		field string
	}{
		{"start", `{"end":1,"machine":1,"job":1}`, "start"},
		{"end", `{"start":0,"machine":1,"job":1}`, "end"},
		{"machine", `{"start":0,"end":1,"job":1}`, "machine"},
		{"job", `{"start":0,"end":1,"machine":1}`, "job"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"packages":[{"start":0,"end":1,"machine":1,"job":1},` + tt.pkg + `]}`
			_, err := loader.ParseSchedule(strings.NewReader(doc))
			if !errors.Is(err, loader.ErrInputShape) {
				t.Fatalf("expected ErrInputShape, got %v", err)
			}
			if !strings.Contains(err.Error(), "packages[1]."+tt.field) {
				t.Errorf("error should name packages[1].%s, got %v", tt.field, err)
			}
		})
	}
}

func TestParseSchedule_InvariantViolation(t *testing.T) {
	doc := `{"packages":[{"start":-1,"end":5,"machine":1,"job":1}]}`
	_, err := loader.ParseSchedule(strings.NewReader(doc))
	if !errors.Is(err, model.ErrInvariant) {
		t.Fatalf("expected ErrInvariant, got %v", err)
	}
	var inv *model.InvariantError
	if !errors.As(err, &inv) {
		t.Fatalf("expected *model.InvariantError in chain, got %T", err)
	}
	if inv.Start != -1 {
		t.Errorf("InvariantError.Start = %g, want -1", inv.Start)
	}
}

func TestParseSchedule_InvalidJSON(t *testing.T) {
	_, err := loader.ParseSchedule(strings.NewReader(`{"packages":[`))
	if !errors.Is(err, loader.ErrData) {
		t.Fatalf("expected ErrData, got %v", err)
	}
	if errors.Is(err, loader.ErrInputShape) {
		t.Errorf("malformed JSON is not a shape error: %v", err)
	}
}

func TestParseSchedule_NonPositiveCounts(t *testing.T) {
	for _, doc := range []string{
		`{"packages":[],"machines":0}`,
		`{"packages":[],"jobs":-3}`,
	} {
		if _, err := loader.ParseSchedule(strings.NewReader(doc)); !errors.Is(err, loader.ErrData) {
			t.Errorf("%s: expected ErrData, got %v", doc, err)
		}
	}
}

func TestParseSchedule_CountsAboveLimit(t *testing.T) {
	for _, doc := range []string{
		`{"packages":[],"jobs":2000000000}`,
		`{"packages":[],"machines":2000000000}`,
	} {
		_, err := loader.ParseSchedule(strings.NewReader(doc))
		if !errors.Is(err, loader.ErrData) {
			t.Fatalf("%s: expected ErrData, got %v", doc, err)
		}
		if !strings.Contains(err.Error(), "must be at most") {
			t.Errorf("%s: unexpected message %q", doc, err)
		}
	}
}

func TestParseSchedule_WrongFieldType(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"fractional machine", `{"packages":[{"start":0,"end":1,"machine":1.5,"job":1}]}`,
			"packages[0].machine: expected an integer, got 1.5"},
		{"fractional job", `{"packages":[{"start":0,"end":1,"machine":1,"job":1},{"start":1,"end":2,"machine":1,"job":2.5}]}`,
			"packages[1].job: expected an integer, got 2.5"},
		{"string start", `{"packages":[{"start":"0","end":1,"machine":1,"job":1}]}`,
			`packages[0].start: expected a number, got "0"`},
		{"fractional machines", `{"packages":[],"machines":2.5}`,
			"machines: expected an integer, got 2.5"},
		{"packages not an array", `{"packages":{}}`,
			"packages: expected an array of packages, got {}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.ParseSchedule(strings.NewReader(tt.doc))
			if !errors.Is(err, loader.ErrData) {
				t.Fatalf("expected ErrData, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadSchedule_MissingFile(t *testing.T) {
	_, err := loader.LoadSchedule(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, loader.ErrData) {
		t.Fatalf("expected ErrData, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(loader.ScheduleFileEnvVar, "")
	if got := loader.ResolvePath(""); got != loader.DefaultFileName {
		t.Errorf("ResolvePath(\"\") = %q, want %q", got, loader.DefaultFileName)
	}
	t.Setenv(loader.ScheduleFileEnvVar, "/tmp/env.json")
	if got := loader.ResolvePath(""); got != "/tmp/env.json" {
		t.Errorf("env override ignored: %q", got)
	}
	if got := loader.ResolvePath("arg.json"); got != "arg.json" {
		t.Errorf("argument should win: %q", got)
	}
}

func TestParseSchedule_DocumentRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		want := testutil.ScheduleGen().Draw(t, "schedule")

		got, err := loader.ParseSchedule(bytes.NewReader(testutil.Document(want)))
		if err != nil {
			t.Fatalf("ParseSchedule: %v", err)
		}
		if !reflect.DeepEqual(got.Operations, want.Operations) {
			t.Fatalf("operations differ:\n got %+v\nwant %+v", got.Operations, want.Operations)
		}
		if got.Metadata.Title != want.Metadata.Title ||
			got.Metadata.Machines != want.Metadata.Machines ||
			got.Metadata.Jobs != want.Metadata.Jobs {
			t.Fatalf("metadata = %+v, want %+v", got.Metadata, want.Metadata)
		}
	})
}
