package richtext

// Resolver supplies the content of a placeholder tag.
type Resolver interface {
	Resolve(name string) (Text, bool)
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(name string) (Text, bool)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(name string) (Text, bool) {
	return f(name)
}

// Placeholders is a fixed set of named placeholders.
type Placeholders map[string]Text

// Resolve implements Resolver.
func (p Placeholders) Resolve(name string) (Text, bool) {
	t, ok := p[name]
	return t, ok
}

// Render produces styled text, asking resolvers in order for each placeholder.
func (t *Template) Render(resolvers ...Resolver) Text {
	var out Text
	renderNodes(&out, t.nodes, Style{}, Actions{}, resolvers)
	return out.Compact()
}

func renderNodes(out *Text, nodes []node, style Style, actions Actions, resolvers []Resolver) {
	for _, n := range nodes {
		switch n := n.(type) {
		case textNode:
			*out = append(*out, Run{Content: string(n), Style: style, Actions: actions})

		case placeholderNode:
			content, ok := resolve(n.name, resolvers)
			if !ok {
				*out = append(*out, Run{Content: n.raw, Style: style, Actions: actions})
				continue
			}
			for _, r := range content {
				*out = append(*out, Run{
					Content: r.Content,
					Style:   r.Style.Merge(style),
					Actions: r.Actions.Merge(actions),
				})
			}

		case *elemNode:
			s, a := style, actions
			switch {
			case n.color != "":
				s.Color = n.color
			case n.deco == "bold":
				s.Bold = true
			case n.deco == "italic":
				s.Italic = true
			case n.deco == "underlined":
				s.Underlined = true
			case n.deco == "strikethrough":
				s.Strikethrough = true
			case n.deco == "obfuscated":
				s.Obfuscated = true
			case n.hover != nil:
				a.Hover = n.hover.Render(resolvers...)
			case n.click != nil:
				a.Click = n.click
			case n.insertion != "":
				a.Insertion = n.insertion
			}
			renderNodes(out, n.children, s, a, resolvers)
		}
	}
}

func resolve(name string, resolvers []Resolver) (Text, bool) {
	for _, r := range resolvers {
		if r == nil {
			continue
		}
		if t, ok := r.Resolve(name); ok {
			return t, true
		}
	}
	return nil, false
}
