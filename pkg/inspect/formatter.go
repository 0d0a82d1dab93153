package inspect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/machlink-protocol/machlink-go/pkg/model"
)

// Formatter renders device trees for display.
type Formatter struct {
	// ShowAttributes includes each component's attribute view.
	ShowAttributes bool

	// ShowReferences includes declared references and their bindings.
	ShowReferences bool

	// IndentWidth is the number of spaces per indent level.
	IndentWidth int
}

// NewFormatter creates a Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowReferences: true,
		IndentWidth:    2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width) + content
}

// FormatDevice renders the whole device tree.
func (f *Formatter) FormatDevice(device *model.Device) string {
	var sb strings.Builder
	f.formatComponent(&sb, device.Root(), 0)
	return sb.String()
}

// FormatComponent renders one component and its subtree.
func (f *Formatter) FormatComponent(c *model.Component) string {
	var sb strings.Builder
	f.formatComponent(&sb, c, 0)
	return sb.String()
}

func (f *Formatter) formatComponent(sb *strings.Builder, c *model.Component, depth int) {
	header := fmt.Sprintf("%s %q", c.PrefixedClass(), c.ID())
	if c.Name() != "" {
		header += fmt.Sprintf(" (%s)", c.Name())
	}
	sb.WriteString(f.Indent(depth, header))
	sb.WriteString("\n")

	if f.ShowAttributes {
		attrs := c.Attributes()
		keys := make([]string, 0, len(attrs))
		for k := range attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(f.Indent(depth+1, fmt.Sprintf("%s = %s", k, attrs[k])))
			sb.WriteString("\n")
		}
	}

	for _, item := range c.DataItems() {
		line := fmt.Sprintf("- [%s] %s %q", item.Category(), item.Type(), item.ID())
		if item.Name() != "" {
			line += fmt.Sprintf(" (%s)", item.Name())
		}
		sb.WriteString(f.Indent(depth+1, line))
		sb.WriteString("\n")
	}

	for _, composition := range c.Compositions() {
		line := fmt.Sprintf("* %s %q", composition.Type(), composition.ID())
		if composition.Name() != "" {
			line += fmt.Sprintf(" (%s)", composition.Name())
		}
		sb.WriteString(f.Indent(depth+1, line))
		sb.WriteString("\n")
	}

	if f.ShowReferences {
		for _, ref := range c.References() {
			sb.WriteString(f.Indent(depth+1, f.formatReference(ref)))
			sb.WriteString("\n")
		}
	}

	for _, child := range c.Children() {
		f.formatComponent(sb, child, depth+1)
	}
}

func (f *Formatter) formatReference(ref *model.Reference) string {
	state := "UNBOUND"
	if ref.Resolved() {
		state = "ok"
	}
	line := fmt.Sprintf("-> %s %q [%s]", ref.Kind(), ref.ID(), state)
	if ref.Name() != "" {
		line += fmt.Sprintf(" (%s)", ref.Name())
	}
	return line
}
