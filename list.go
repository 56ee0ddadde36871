package mdhtml

// splitList cuts the token run of a whole list into items and parses each
// item's content one level deeper.
func splitList(tokens []Token, lt ListType, cfg *config, ctx *Context, depth int) (*List, error) {
	list := &List{Type: lt}
	var (
		acc         []Token
		open        bool
		col         int
		count       uint64
		blankBefore bool
		// emptyItem is set while the open item has no content; a blank
		// line then closes it.
		emptyItem  bool
		itemClosed bool
	)
	closeItem := func() error {
		if !open {
			return nil
		}
		children, gap, err := parseBlocks(acc, cfg, ctx, depth)
		if err != nil {
			return err
		}
		if gap {
			list.Loose = true
		}
		list.Items = append(list.Items, &ListItem{Children: children})
		return nil
	}

	for _, line := range ToLines(tokens) {
		if line.IsBlank() {
			if open {
				acc = appendLine(acc, line.TrimColumns(col))
				itemClosed = itemClosed || emptyItem
			}
			blankBefore = true
			continue
		}
		if st, ok := listItemStart(line); ok && startsItem(st, lt, count, col, open && !itemClosed) {
			if err := closeItem(); err != nil {
				return nil, err
			}
			if open && blankBefore {
				list.Loose = true
			}
			open = true
			col = st.contentCol
			acc = append([]Token(nil), st.content...)
			count++
			blankBefore = false
			emptyItem = st.content.IsBlank()
			itemClosed = false
			continue
		}
		if indent, _ := line.Indent(); indent >= col {
			line = line.TrimColumns(col)
		}
		acc = appendLine(acc, line)
		blankBefore = false
		emptyItem = false
	}
	if err := closeItem(); err != nil {
		return nil, err
	}
	return list, nil
}

// startsItem reports whether a line parsed as st opens the next item of a
// list of type lt that has count items and an open item at column col.
func startsItem(st itemStart, lt ListType, count uint64, col int, open bool) bool {
	if st.list.Kind != lt.Kind {
		return false
	}
	if lt.Ordered() && st.list.Start != lt.Start+count {
		return false
	}
	return !open || st.indent < col
}

func appendLine(acc []Token, line Line) []Token {
	if len(acc) > 0 {
		acc = append(acc, newlineToken)
	}
	return append(acc, line...)
}
