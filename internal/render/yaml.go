// ABOUTME: YAML encoder built on yaml.v3 nodes so key order follows the table.

package render

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/termcolors/pkg/palette"
)

func writeYAML(w io.Writer, p *palette.Palette) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, sec := range p.Sections {
		var body *yaml.Node
		if sec.Sequence {
			body = &yaml.Node{Kind: yaml.SequenceNode}
		} else {
			body = &yaml.Node{Kind: yaml.MappingNode}
		}
		for _, e := range sec.Entries {
			if !sec.Sequence {
				body.Content = append(body.Content, scalar(e.Key))
			}
			body.Content = append(body.Content, colorNode(e))
		}
		root.Content = append(root.Content, scalar(sec.Name), body)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func colorNode(e palette.Entry) *yaml.Node {
	if !e.Result.Known() {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Result.String(), Style: yaml.SingleQuotedStyle}
}
