package elements

import (
	"encoding/json"
	"fmt"

	"github.com/yaklabco/govimwiki/pkg/located"
)

// envelope is the persisted form of one located interface value.
type envelope struct {
	Kind   Kind            `json:"kind"`
	Region located.Region  `json:"region"`
	Value  json.RawMessage `json:"value"`
}

// contentEnvelope is the persisted form of one list item content.
type contentEnvelope struct {
	Content string          `json:"content"`
	Region  located.Region  `json:"region"`
	Value   json.RawMessage `json:"value"`
}

const (
	contentInline = "inline"
	contentList   = "list"
)

func encodeEnvelopes[T Element](items []located.Located[T]) ([]byte, error) {
	out := make([]envelope, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", item.Value.Kind(), err)
		}
		out = append(out, envelope{Kind: item.Value.Kind(), Region: item.Region, Value: raw})
	}
	return json.Marshal(out)
}

func decodeEnvelopes(data []byte, each func(envelope, Element) error) error {
	var envs []envelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return err
	}
	for _, env := range envs {
		e, err := decodeElement(env.Kind, env.Value)
		if err != nil {
			return fmt.Errorf("decoding %s at %s: %w", env.Kind, env.Region, err)
		}
		if err := each(env, e); err != nil {
			return err
		}
	}
	return nil
}

func decodeAs[T Element](data []byte) (Element, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeElement(kind Kind, data []byte) (Element, error) {
	switch kind {
	case KindHeader:
		return decodeAs[Header](data)
	case KindParagraph:
		return decodeAs[Paragraph](data)
	case KindList:
		return decodeAs[List](data)
	case KindDefinitionList:
		return decodeAs[DefinitionList](data)
	case KindTable:
		return decodeAs[Table](data)
	case KindCodeBlock:
		return decodeAs[CodeBlock](data)
	case KindMathBlock:
		return decodeAs[MathBlock](data)
	case KindBlockquote:
		return decodeAs[Blockquote](data)
	case KindDivider:
		return decodeAs[Divider](data)
	case KindPlaceholder:
		return decodeAs[Placeholder](data)
	case KindComment:
		return decodeAs[Comment](data)
	case KindText:
		return decodeAs[Text](data)
	case KindDecoratedText:
		return decodeAs[DecoratedText](data)
	case KindLink:
		return decodeAs[Link](data)
	case KindCodeInline:
		return decodeAs[CodeInline](data)
	case KindMathInline:
		return decodeAs[MathInline](data)
	case KindTags:
		return decodeAs[Tags](data)
	case KindKeyword:
		return decodeAs[Keyword](data)
	case KindListItem:
		return decodeAs[ListItem](data)
	case KindCell:
		return decodeAs[Cell](data)
	case KindTerm:
		return decodeAs[Term](data)
	case KindDefinition:
		return decodeAs[Definition](data)
	default:
		return nil, fmt.Errorf("unknown element kind %s", kind)
	}
}

// MarshalJSON encodes each element with its kind and region.
func (es InlineElements) MarshalJSON() ([]byte, error) {
	return encodeEnvelopes(es)
}

// UnmarshalJSON decodes elements written by MarshalJSON.
func (es *InlineElements) UnmarshalJSON(data []byte) error {
	out := InlineElements{}
	err := decodeEnvelopes(data, func(env envelope, e Element) error {
		inline, ok := e.(InlineElement)
		if !ok {
			return fmt.Errorf("%s is not an inline element", env.Kind)
		}
		out = append(out, located.New(inline, env.Region))
		return nil
	})
	if err != nil {
		return err
	}
	*es = out
	return nil
}

// MarshalJSON encodes each element with its kind and region.
func (es BlockElements) MarshalJSON() ([]byte, error) {
	return encodeEnvelopes(es)
}

// UnmarshalJSON decodes elements written by MarshalJSON.
func (es *BlockElements) UnmarshalJSON(data []byte) error {
	out := BlockElements{}
	err := decodeEnvelopes(data, func(env envelope, e Element) error {
		block, ok := e.(BlockElement)
		if !ok {
			return fmt.Errorf("%s is not a block element", env.Kind)
		}
		out = append(out, located.New(block, env.Region))
		return nil
	})
	if err != nil {
		return err
	}
	*es = out
	return nil
}

// MarshalJSON encodes each content with a discriminator.
func (cs ListItemContents) MarshalJSON() ([]byte, error) {
	out := make([]contentEnvelope, 0, len(cs))
	for _, c := range cs {
		env := contentEnvelope{Region: c.Region}
		switch c.Value.(type) {
		case InlineElementContainer:
			env.Content = contentInline
		case List:
			env.Content = contentList
		default:
			return nil, fmt.Errorf("unsupported list item content %T", c.Value)
		}
		raw, err := json.Marshal(c.Value)
		if err != nil {
			return nil, err
		}
		env.Value = raw
		out = append(out, env)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes contents written by MarshalJSON.
func (cs *ListItemContents) UnmarshalJSON(data []byte) error {
	var envs []contentEnvelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return err
	}
	out := ListItemContents{}
	for _, env := range envs {
		var value ListItemContent
		switch env.Content {
		case contentInline:
			var v InlineElementContainer
			if err := json.Unmarshal(env.Value, &v); err != nil {
				return err
			}
			value = v
		case contentList:
			var v List
			if err := json.Unmarshal(env.Value, &v); err != nil {
				return err
			}
			value = v
		default:
			return fmt.Errorf("unknown list item content %q", env.Content)
		}
		out = append(out, located.New(value, env.Region))
	}
	*cs = out
	return nil
}

// EncodePage serializes a page for persistence.
func EncodePage(page *Page) ([]byte, error) {
	return json.Marshal(page)
}

// DecodePage restores a page written by EncodePage.
func DecodePage(data []byte) (*Page, error) {
	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("decoding page: %w", err)
	}
	return &page, nil
}
