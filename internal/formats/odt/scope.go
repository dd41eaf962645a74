package odt

// scopeAction is the deferred work an emitter performs when the subtree
// that pushed it ends. The set of actions is closed.
type scopeAction interface {
	isScopeAction()
}

// resetToDefault ends the active paragraph and restores default styles.
// Every emitter's base entry is a resetToDefault.
type resetToDefault struct{}

// restoreTextStyle switches the text style back after a styled run.
type restoreTextStyle struct {
	style string
}

// emitLiteralClose writes the closing "/" of a literal tag.
type emitLiteralClose struct{}

// emitGrammarClose writes the closing bracket and grammar annotation.
type emitGrammarClose struct {
	text string
}

func (resetToDefault) isScopeAction()   {}
func (restoreTextStyle) isScopeAction() {}
func (emitLiteralClose) isScopeAction() {}
func (emitGrammarClose) isScopeAction() {}
