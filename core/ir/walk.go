package ir

// Walk visits elements depth-first in document order, calling fn for every
// element before descending into its children.
func Walk(elements []Element, fn func(Element)) {
	for _, e := range elements {
		fn(e)
		if c, ok := e.(Container); ok {
			Walk(c.Children(), fn)
		}
	}
}

// WalkBible walks every prolog and verse of the Bible in document order.
func WalkBible(b *Bible, fn func(Element)) {
	for _, bk := range b.Books {
		for _, ch := range bk.Chapters {
			Walk(ch.Prolog, fn)
			for _, v := range ch.Verses {
				Walk(v.Content, fn)
			}
		}
	}
}
