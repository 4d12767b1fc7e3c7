package edit

import "bytes"

// Apply prepares edits and applies them to content.
func Apply(content []byte, edits []TextEdit) ([]byte, error) {
	prepared, err := Prepare(edits, len(content))
	if err != nil {
		return nil, err
	}
	return ApplyPrepared(content, prepared), nil
}

// ApplyPrepared applies edits that already went through Prepare.
func ApplyPrepared(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.NewText) - e.Len()
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.Start])
		out.WriteString(e.NewText)
		cursor = e.End
	}
	out.Write(content[cursor:])
	return out.Bytes()
}
