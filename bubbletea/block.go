package bubbletea

// MessageBlock is a renderable element in the conversation.
// View takes a width parameter so the root model controls layout and
// blocks are testable in isolation.
type MessageBlock interface {
	View(width int) string
}

// blockSeparator returns the spacing placed between two adjacent blocks.
// Notices hug the block they annotate; everything else gets a blank line.
func blockSeparator(prev, curr MessageBlock) string {
	if _, ok := curr.(*NoticeBlock); ok {
		if _, ok := prev.(*UserMessageBlock); !ok {
			return "\n"
		}
	}
	return "\n\n"
}
