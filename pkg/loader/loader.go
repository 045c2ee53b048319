package loader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/jspgantt/pkg/debug"
	"github.com/vanderheijden86/jspgantt/pkg/model"
)

// ScheduleFileEnvVar names the environment variable that overrides the
// default input file.
const ScheduleFileEnvVar = "JSPGANTT_FILE"

// DefaultFileName is read when neither an argument nor the env var is given.
const DefaultFileName = "sample.json"

// Loader errors. ErrInputShape wraps ErrData, so errors.Is(err, ErrData)
// holds for every failure this package returns.
var (
	ErrData       = errors.New("schedule data error")
	ErrInputShape = fmt.Errorf("%w: missing required field", ErrData)
)

// utf8BOM is stripped from the start of the document if present.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ResolvePath picks the input file: explicit argument first, then
// JSPGANTT_FILE, then sample.json in the working directory.
func ResolvePath(arg string) string {
	if arg != "" {
		return arg
	}
	if env := os.Getenv(ScheduleFileEnvVar); env != "" {
		return env
	}
	return DefaultFileName
}

type rawPackage struct {
	Start   *float64 `json:"start"`
	End     *float64 `json:"end"`
	Machine *int     `json:"machine"`
	Job     *int     `json:"job"`
}

type rawDocument struct {
	Packages *[]json.RawMessage `json:"packages"`
	Title    *string       `json:"title"`
	XTicks   []float64     `json:"xticks"`
	Machines *int          `json:"machines"`
	Jobs     *int          `json:"jobs"`
}

// LoadSchedule reads a schedule document from path.
func LoadSchedule(path string) (*model.Schedule, error) {
	defer debug.LogEnterExit("loader.LoadSchedule")()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no schedule found at %s: %w", ErrData, path, err)
		}
		return nil, fmt.Errorf("%w: stat %s: %w", ErrData, path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open schedule file: %w", ErrData, err)
	}
	defer file.Close()

	s, err := ParseSchedule(file)
	if err != nil {
		return nil, err
	}
	debug.Log("loaded %d operations from %s", s.Len(), path)
	return s, nil
}

// ParseSchedule decodes a schedule document. Optional keys receive their
// documented defaults; operation indices are numbered per job in document
// order.
func ParseSchedule(r io.Reader) (*model.Schedule, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("%w: reading schedule: %w", ErrData, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		if field := badField(data, documentFields); field != "" {
			return nil, fmt.Errorf("%w: %s", ErrData, field)
		}
		return nil, fmt.Errorf("%w: decoding schedule: %w", ErrData, err)
	}
	if doc.Packages == nil {
		return nil, fmt.Errorf("%w: packages", ErrInputShape)
	}

	meta, err := metadataFrom(doc)
	if err != nil {
		return nil, err
	}

	pkgs := *doc.Packages
	ops := make([]model.Operation, 0, len(pkgs))
	nextIndex := make(map[int]int)
	for i, rawPkg := range pkgs {
		var p rawPackage
		if err := json.Unmarshal(rawPkg, &p); err != nil {
			if field := badField(rawPkg, packageFields); field != "" {
				return nil, fmt.Errorf("%w: packages[%d].%s", ErrData, i, field)
			}
			return nil, fmt.Errorf("%w: packages[%d]: %w", ErrData, i, err)
		}
		if field := missingField(p); field != "" {
			return nil, fmt.Errorf("%w: packages[%d].%s", ErrInputShape, i, field)
		}
		job := *p.Job
		op, err := model.NewOperation(*p.Start, *p.End, *p.Machine, job, nextIndex[job])
		if err != nil {
			return nil, fmt.Errorf("%w: packages[%d]: %w", ErrData, i, err)
		}
		nextIndex[job]++
		ops = append(ops, op)
	}

	return &model.Schedule{Operations: ops, Metadata: meta}, nil
}

// fieldSpec pairs a document key with a value of the type it must decode to.
type fieldSpec struct {
	name string
	want string
	dst  func() any
}

var documentFields = []fieldSpec{
	{"packages", "an array of packages", func() any { return new([]json.RawMessage) }},
	{"title", "a string", func() any { return new(string) }},
	{"xticks", "an array of numbers", func() any { return new([]float64) }},
	{"machines", "an integer", func() any { return new(int) }},
	{"jobs", "an integer", func() any { return new(int) }},
}

var packageFields = []fieldSpec{
	{"start", "a number", func() any { return new(float64) }},
	{"end", "a number", func() any { return new(float64) }},
	{"machine", "an integer", func() any { return new(int) }},
	{"job", "an integer", func() any { return new(int) }},
}

// badField names the first key of the JSON object in data whose value does
// not decode to its expected type, formatted as "key: expected X, got V".
// It returns "" when data is not an object or every key decodes.
func badField(data []byte, fields []fieldSpec) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return ""
	}
	for _, f := range fields {
		raw, ok := obj[f.name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, f.dst()); err != nil {
			return fmt.Sprintf("%s: expected %s, got %s", f.name, f.want, bytes.TrimSpace(raw))
		}
	}
	return ""
}

func missingField(p rawPackage) string {
	switch {
	case p.Start == nil:
		return "start"
	case p.End == nil:
		return "end"
	case p.Machine == nil:
		return "machine"
	case p.Job == nil:
		return "job"
	}
	return ""
}

func metadataFrom(doc rawDocument) (model.Metadata, error) {
	meta := model.DefaultMetadata()
	if doc.Title != nil {
		meta.Title = *doc.Title
	}
	if len(doc.XTicks) > 0 {
		meta.XTicks = doc.XTicks
	}
	if doc.Machines != nil {
		meta.Machines = *doc.Machines
	}
	if doc.Jobs != nil {
		meta.Jobs = *doc.Jobs
	}
	if err := meta.Validate(); err != nil {
		return meta, fmt.Errorf("%w: %w", ErrData, err)
	}
	return meta, nil
}
