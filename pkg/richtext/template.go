package richtext

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTemplate is returned when a template cannot be parsed.
var ErrInvalidTemplate = errors.New("invalid template")

// NamedColors maps the named color tags to their RGB value.
var NamedColors = map[string]string{
	"black":        "#000000",
	"dark_blue":    "#0000AA",
	"dark_green":   "#00AA00",
	"dark_aqua":    "#00AAAA",
	"dark_red":     "#AA0000",
	"dark_purple":  "#AA00AA",
	"gold":         "#FFAA00",
	"gray":         "#AAAAAA",
	"grey":         "#AAAAAA",
	"dark_gray":    "#555555",
	"dark_grey":    "#555555",
	"blue":         "#5555FF",
	"green":        "#55FF55",
	"aqua":         "#55FFFF",
	"red":          "#FF5555",
	"light_purple": "#FF55FF",
	"yellow":       "#FFFF55",
	"white":        "#FFFFFF",
}

var decorations = map[string]string{
	"bold":          "bold",
	"b":             "bold",
	"italic":        "italic",
	"i":             "italic",
	"em":            "italic",
	"underlined":    "underlined",
	"u":             "underlined",
	"strikethrough": "strikethrough",
	"st":            "strikethrough",
	"obfuscated":    "obfuscated",
	"obf":           "obfuscated",
}

var clickActions = map[string]bool{
	"open_url":          true,
	"run_command":       true,
	"suggest_command":   true,
	"copy_to_clipboard": true,
	"change_page":       true,
}

// Template is a parsed rich-text template.
//
// The syntax is a subset of MiniMessage: color tags (<red>, <#1E88E5>, <color:gold>),
// decorations (<bold>, <i>, ...), <hover:show_text:'...'>, <click:action:'value'>,
// <insert:'value'> and <reset>. Any other tag is a placeholder looked up at render time;
// placeholders nobody resolves are rendered literally.
type Template struct {
	source string
	nodes  []node
}

type node interface{}

type textNode string

type placeholderNode struct {
	name string
	raw  string
}

type elemNode struct {
	key       string
	color     string
	deco      string
	hover     *Template
	click     *Click
	insertion string
	children  []node
}

// Parse compiles a template.
func Parse(source string) (*Template, error) {
	p := &parser{src: source}
	nodes, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	return &Template{source: source, nodes: nodes}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(source string) *Template {
	t, err := Parse(source)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the template source.
func (t *Template) String() string {
	return t.source
}

type rawTag struct {
	name    string
	args    []string
	closing bool
	raw     string
}

type parser struct {
	src string
	pos int
}

func (p *parser) parse() ([]node, error) {
	root := &elemNode{}
	stack := []*elemNode{root}
	var buf strings.Builder

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		top := stack[len(stack)-1]
		top.children = append(top.children, textNode(buf.String()))
		buf.Reset()
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]

		if c == '\\' && p.pos+1 < len(p.src) && (p.src[p.pos+1] == '<' || p.src[p.pos+1] == '\\') {
			buf.WriteByte(p.src[p.pos+1])
			p.pos += 2
			continue
		}

		if c != '<' {
			buf.WriteByte(c)
			p.pos++
			continue
		}

		tag, ok, err := p.readTag()
		if err != nil {
			return nil, err
		}
		if !ok {
			buf.WriteByte('<')
			p.pos++
			continue
		}

		flush()
		top := stack[len(stack)-1]

		if tag.closing {
			key := containerKey(tag.name)
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].key == key {
					stack = stack[:i]
					break
				}
			}
			continue
		}

		if tag.name == "reset" {
			stack = stack[:1]
			continue
		}

		elem, err := newElem(tag)
		if err != nil {
			return nil, err
		}
		if elem == nil {
			top.children = append(top.children, placeholderNode{name: tag.name, raw: tag.raw})
			continue
		}
		top.children = append(top.children, elem)
		stack = append(stack, elem)
	}

	flush()
	return root.children, nil
}

// readTag parses a tag at p.pos. It returns ok=false when the '<' does not start a tag.
func (p *parser) readTag() (rawTag, bool, error) {
	start := p.pos
	i := p.pos + 1
	tag := rawTag{}

	if i < len(p.src) && p.src[i] == '/' {
		tag.closing = true
		i++
	}

	nameStart := i
	for i < len(p.src) && isNameChar(p.src[i]) {
		i++
	}
	if i == nameStart || i >= len(p.src) || (p.src[i] != ':' && p.src[i] != '>') {
		return rawTag{}, false, nil
	}
	tag.name = strings.ToLower(p.src[nameStart:i])

	for p.src[i] == ':' {
		i++
		if i >= len(p.src) {
			return rawTag{}, false, fmt.Errorf("unterminated tag at offset %d", start)
		}
		if q := p.src[i]; q == '\'' || q == '"' {
			arg, next, err := readQuoted(p.src, i)
			if err != nil {
				return rawTag{}, false, err
			}
			tag.args = append(tag.args, arg)
			i = next
		} else {
			argStart := i
			for i < len(p.src) && p.src[i] != ':' && p.src[i] != '>' {
				i++
			}
			tag.args = append(tag.args, p.src[argStart:i])
		}
		if i >= len(p.src) {
			return rawTag{}, false, fmt.Errorf("unterminated tag at offset %d", start)
		}
	}

	if p.src[i] != '>' {
		return rawTag{}, false, fmt.Errorf("unexpected %q in tag at offset %d", p.src[i], start)
	}
	i++
	tag.raw = p.src[start:i]
	p.pos = i
	return tag, true, nil
}

func readQuoted(src string, i int) (string, int, error) {
	quote := src[i]
	var b strings.Builder
	for j := i + 1; j < len(src); j++ {
		c := src[j]
		if c == '\\' && j+1 < len(src) && src[j+1] == quote {
			b.WriteByte(quote)
			j++
			continue
		}
		if c == quote {
			return b.String(), j + 1, nil
		}
		b.WriteByte(c)
	}
	return "", 0, fmt.Errorf("unterminated quoted argument at offset %d", i)
}

func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '_' || c == '-' || c == '#' || c == '.'
}

func containerKey(name string) string {
	switch {
	case name == "color" || name == "colour" || name == "c" || strings.HasPrefix(name, "#"):
		return "color"
	case NamedColors[name] != "":
		return "color"
	case decorations[name] != "":
		return decorations[name]
	case name == "insertion":
		return "insert"
	}
	return name
}

// newElem builds a container element. It returns nil for placeholder tags.
func newElem(tag rawTag) (*elemNode, error) {
	key := containerKey(tag.name)
	switch key {
	case "color":
		color := tag.name
		if !strings.HasPrefix(color, "#") && NamedColors[color] == "" {
			if len(tag.args) == 0 {
				return nil, fmt.Errorf("tag <%s> requires a color argument", tag.name)
			}
			color = strings.ToLower(tag.args[0])
		}
		if strings.HasPrefix(color, "#") {
			if !isHexColor(color) {
				return nil, fmt.Errorf("invalid hex color %q", color)
			}
			color = strings.ToUpper(color)
		} else if NamedColors[color] == "" {
			return nil, fmt.Errorf("unknown color %q", color)
		}
		return &elemNode{key: key, color: color}, nil

	case "bold", "italic", "underlined", "strikethrough", "obfuscated":
		return &elemNode{key: key, deco: key}, nil

	case "hover":
		if len(tag.args) < 2 || tag.args[0] != "show_text" {
			return nil, fmt.Errorf("tag <hover> requires show_text and a value")
		}
		inner, err := (&parser{src: tag.args[1]}).parse()
		if err != nil {
			return nil, fmt.Errorf("hover text: %w", err)
		}
		return &elemNode{key: key, hover: &Template{source: tag.args[1], nodes: inner}}, nil

	case "click":
		if len(tag.args) < 2 {
			return nil, fmt.Errorf("tag <click> requires an action and a value")
		}
		if !clickActions[tag.args[0]] {
			return nil, fmt.Errorf("unknown click action %q", tag.args[0])
		}
		return &elemNode{key: key, click: &Click{Action: tag.args[0], Value: tag.args[1]}}, nil

	case "insert":
		if len(tag.args) < 1 {
			return nil, fmt.Errorf("tag <insert> requires a value")
		}
		return &elemNode{key: key, insertion: tag.args[0]}, nil
	}
	return nil, nil
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}
