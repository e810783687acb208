// ============================================================================
// llrec - LL(1) Recognizer
// ============================================================================
//
// Package:     traceviewer
// Description: Message types for the trace viewer
// Author:      msto63
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package traceviewer

import (
	"time"

	"github.com/msto63/llrec/foundation/ll1/lexer"
)

// lexedMsg is sent once the source has been tokenized
type lexedMsg struct {
	tokens []lexer.Token
	err    error
}

// tickMsg drives autoplay
type tickMsg time.Time
