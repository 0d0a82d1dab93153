package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/machlink-protocol/machlink-go/pkg/model"
	"github.com/machlink-protocol/machlink-go/pkg/taxonomy"
)

// Loader errors.
var (
	ErrNoDevice       = errors.New("definition document declares no device")
	ErrMissingID      = errors.New("component definition missing id")
	ErrMissingClass   = errors.New("component definition missing class")
	ErrInvalidRefKind = errors.New("invalid reference kind")
)

// Options configures a Loader.
type Options struct {
	// AssignUUIDs generates a UUID for every component declared without
	// one.
	AssignUUIDs bool

	// Vocabulary is the vocabulary version used for advisory validation.
	// Empty means taxonomy.Current.
	Vocabulary string

	// Logger receives structured load events. Nil disables logging.
	Logger *zap.Logger
}

// Loader builds device models from definition documents.
type Loader struct {
	opts  Options
	log   *zap.Logger
	vocab *taxonomy.Vocabulary
}

// Result is the outcome of one load cycle: the built tree, its identity
// index, the per-reference resolution issues, and advisory vocabulary
// warnings. Callers should publish Device and Graph together.
type Result struct {
	Device   *model.Device
	Graph    *model.ComponentGraph
	Issues   []model.ResolutionIssue
	Warnings []string
}

// New creates a Loader.
func New(opts Options) (*Loader, error) {
	ver := opts.Vocabulary
	if ver == "" {
		ver = taxonomy.Current
	}
	vocab, err := taxonomy.Load(ver)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Loader{opts: opts, log: log, vocab: vocab}, nil
}

// LoadFile loads a device definition from a file.
func (l *Loader) LoadFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening definition %s: %w", path, err)
	}
	defer f.Close()
	return l.Load(f)
}

// Load reads a definition document and runs the full build+resolve cycle.
// Structural errors (no device, missing ids, duplicate ids) abort the
// load with a nil Result; resolution issues do not.
func (l *Loader) Load(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading definition: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing definition: %w", err)
	}
	if doc.Device == nil {
		return nil, ErrNoDevice
	}
	if doc.Device.ID == "" {
		return nil, fmt.Errorf("device: %w", ErrMissingID)
	}

	// A document may pin the vocabulary version it was written against;
	// an unknown version aborts the load.
	vocab := l.vocab
	if doc.Vocabulary != "" {
		vocab, err = taxonomy.Load(doc.Vocabulary)
		if err != nil {
			return nil, fmt.Errorf("pinned vocabulary: %w", err)
		}
	}

	// Phase 1: build the whole tree in declaration order.
	device := model.NewDevice(doc.Device.attributeMap())
	if err := l.populate(device.Root(), doc.Device); err != nil {
		return nil, err
	}

	// Phase 2: index the finished tree, then resolve references.
	graph, err := model.BuildGraph(device)
	if err != nil {
		return nil, err
	}
	issues := graph.Resolve()

	for _, issue := range issues {
		l.log.Warn("reference left unbound",
			zap.String("component", issue.ComponentID),
			zap.String("reference", issue.ReferenceID),
			zap.String("kind", issue.Kind.String()),
			zap.Error(issue.Err))
	}

	validation := vocab.ValidateDevice(device)
	for _, w := range validation.Warnings {
		l.log.Warn("vocabulary warning", zap.String("detail", w))
	}

	l.log.Info("device definition loaded",
		zap.String("device", device.ID()),
		zap.Int("entities", graph.Len()),
		zap.Int("issues", len(issues)),
		zap.Int("warnings", len(validation.Warnings)))

	return &Result{
		Device:   device,
		Graph:    graph,
		Issues:   issues,
		Warnings: validation.Warnings,
	}, nil
}

// populate fills a constructed component from its definition and recurses
// into child definitions, preserving declaration order throughout.
func (l *Loader) populate(c *model.Component, def *ComponentDef) error {
	if l.opts.AssignUUIDs && c.UUID() == "" {
		c.SetUUID(uuid.NewString())
	}

	if def.Description != nil {
		c.AddDescription(def.Description.Body, def.Description.Attributes)
	}
	if def.Configuration != "" {
		c.SetConfiguration(def.Configuration)
	}

	for _, itemDef := range def.DataItems {
		if itemDef.ID == "" {
			return fmt.Errorf("component %q data item: %w", c.ID(), ErrMissingID)
		}
		c.AddDataItem(model.NewDataItem(itemDef.attributeMap()))
	}

	for _, compDef := range def.Compositions {
		if compDef.ID == "" {
			return fmt.Errorf("component %q composition: %w", c.ID(), ErrMissingID)
		}
		composition := model.NewComposition(map[string]string{
			"id":   compDef.ID,
			"uuid": compDef.UUID,
			"type": compDef.Type,
			"name": compDef.Name,
		})
		if compDef.Description != "" {
			composition.SetDescription(compDef.Description)
		}
		c.AddComposition(composition)
	}

	for _, refDef := range def.References {
		kind, err := parseRefKind(refDef.Kind)
		if err != nil {
			return fmt.Errorf("component %q reference %q: %w", c.ID(), refDef.ID, err)
		}
		c.AddReference(model.NewReference(refDef.ID, refDef.Name, kind))
	}

	for i := range def.Components {
		childDef := &def.Components[i]
		if childDef.ID == "" {
			return fmt.Errorf("component %q child: %w", c.ID(), ErrMissingID)
		}
		if childDef.Class == "" {
			return fmt.Errorf("component %q: %w", childDef.ID, ErrMissingClass)
		}
		child := model.NewComponent(childDef.Class, childDef.attributeMap(), childDef.Prefix)
		c.AddChild(child)
		if err := l.populate(child, childDef); err != nil {
			return err
		}
	}

	return nil
}

// parseRefKind maps the document kind tag to the model kind.
func parseRefKind(kind string) (model.ReferenceKind, error) {
	switch kind {
	case "dataItem", "DATA_ITEM":
		return model.ReferenceDataItem, nil
	case "component", "COMPONENT":
		return model.ReferenceComponent, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidRefKind, kind)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
