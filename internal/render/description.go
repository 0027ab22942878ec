package render

import "strings"

// Width budgets for description blocks. These are canonical formatting
// constants; downstream tooling diffs against output produced with exactly
// these values, so they must not be tuned.
const (
	maxLineWidth      = 120 // minus current indentation
	singleLineMax     = 70  // longest description emitted as a one-line block
	wrapTargetMargin  = 40  // sublines target maxLineWidth - indentation - this
	wrapSlack         = 5   // lines within slack of the budget stay unbroken
	minSublineLen     = 15  // never break off a subline shorter than this
	minBrokenSegments = 2   // fewer breaks than this leave the line unbroken
)

// Description formats a free-form documentation string as a quoted block:
// a one-line `"""..."""` when it fits, otherwise a multi-line block with
// every content line indented and escaped. firstInBlock suppresses the
// blank separator line before the block.
func Description(description, indentation string, firstInBlock bool) string {
	if description == "" {
		return ""
	}
	lines := descriptionLines(description, maxLineWidth-len(indentation))

	var b strings.Builder
	if indentation != "" && !firstInBlock {
		b.WriteString("\n")
	}
	b.WriteString(indentation)
	b.WriteString(`"""`)

	if len(lines) == 1 && len(lines[0]) < singleLineMax && !strings.HasSuffix(lines[0], `"`) {
		b.WriteString(escapeQuote(lines[0]))
		b.WriteString("\"\"\"\n")
		return b.String()
	}

	// Account for leading space: a pre-formatted first line stays glued to
	// the opening quotes.
	hasLeadingSpace := strings.HasPrefix(lines[0], " ") || strings.HasPrefix(lines[0], "\t")
	if !hasLeadingSpace {
		b.WriteString("\n")
	}
	for i, line := range lines {
		if i > 0 || !hasLeadingSpace {
			b.WriteString(indentation)
		}
		b.WriteString(escapeQuote(line))
		b.WriteString("\n")
	}
	b.WriteString(indentation)
	b.WriteString("\"\"\"\n")
	return b.String()
}

func escapeQuote(line string) string {
	return strings.ReplaceAll(line, `"""`, `\"""`)
}

func descriptionLines(description string, maxLen int) []string {
	normalized := strings.ReplaceAll(description, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	normalized = strings.TrimSuffix(normalized, "\n")

	var lines []string
	for _, raw := range strings.Split(normalized, "\n") {
		if raw == "" {
			lines = append(lines, raw)
			continue
		}
		// Overlong lines are cut at space boundaries into shorter sublines.
		lines = append(lines, breakLine(raw, maxLen)...)
	}
	return lines
}

// breakLine greedily re-breaks line at whitespace boundaries into sublines
// of at most maxLen-40 characters. Breaking only happens when it meaningfully
// shortens the line: within 5 characters of the budget, or when fewer than
// two boundary cuts are found, the line is left whole.
func breakLine(line string, maxLen int) []string {
	if len(line) < maxLen+wrapSlack {
		return []string{line}
	}
	limit := maxLen - wrapTargetMargin

	type span struct{ start, end int }
	var matches []span
	for p := 0; p < len(line); {
		if p > 0 && line[p] != ' ' {
			p++
			continue
		}
		// At the start of the line the boundary is empty unless the line
		// itself begins with a space.
		chunk := p
		if p > 0 || line[p] == ' ' {
			chunk = p + 1
		}
		end := boundaryWithin(line, chunk, limit)
		if end < 0 {
			p++
			continue
		}
		matches = append(matches, span{p, end})
		p = end
	}
	if len(matches) < minBrokenSegments {
		return []string{line}
	}

	sublines := make([]string, 0, len(matches))
	next := len(line)
	if len(matches) > 1 {
		next = matches[1].start
	}
	sublines = append(sublines, line[:next])
	for k := 1; k < len(matches); k++ {
		next = len(line)
		if k+1 < len(matches) {
			next = matches[k+1].start
		}
		// Drop the boundary space that opened the subline; trailing
		// unbroken text rides along with the last subline.
		sublines = append(sublines, line[matches[k].start+1:next])
	}
	return sublines
}

// boundaryWithin returns the largest end > chunk such that end-chunk is in
// [minSublineLen, limit] and end falls on a space or the end of the line,
// or -1 when no such boundary exists.
func boundaryWithin(line string, chunk, limit int) int {
	max := chunk + limit
	if max > len(line) {
		max = len(line)
	}
	for end := max; end-chunk >= minSublineLen; end-- {
		if end == len(line) || line[end] == ' ' {
			return end
		}
	}
	return -1
}
